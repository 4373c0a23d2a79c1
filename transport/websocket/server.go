package websocket

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/1-abesh-1/chess-multiplayer/internal/entity"
	"github.com/1-abesh-1/chess-multiplayer/internal/usecase"
)

type roomManager interface {
	CreateOrJoin(ctx context.Context, roomID, connID, color string) (*usecase.JoinOutcome, error)
	JoinAnyOpenSeat(ctx context.Context, roomID, connID string) (*usecase.JoinOutcome, error)
	JoinAsSpectator(ctx context.Context, roomID, connID string) error

	ApplyMove(ctx context.Context, roomID, connID string, move entity.Move) (*entity.MoveRecord, error)
	RelayTheme(ctx context.Context, roomID, connID string, theme json.RawMessage)

	OnDisconnect(ctx context.Context, connID string)
}

type Server struct {
	logger  *slog.Logger
	manager roomManager
	pool    *Pool

	upgrader websocket.Upgrader

	handlers map[string]func(ctx context.Context, client *Client, message *Message) error
}

func New(logger *slog.Logger, manager roomManager, pool *Pool) *Server {
	server := &Server{
		logger:  logger,
		manager: manager,
		pool:    pool,

		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Origin policy is handled by the deployment; the backend
			// accepts any origin.
			CheckOrigin: func(*http.Request) bool { return true },
		},

		handlers: make(map[string]func(context.Context, *Client, *Message) error),
	}

	server.handlers[actionCreateRoom] = server.handleCreateRoom
	server.handlers[actionJoinRoom] = server.handleJoinRoom
	server.handlers[actionJoinAsSpectator] = server.handleJoinAsSpectator
	server.handlers[actionMove] = server.handleMove
	server.handlers[actionThemeChange] = server.handleThemeChange

	return server
}

// Start - starts WebSocket server.
func (that *Server) Start(ctx context.Context, port string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		that.handleConnection(ctx, w, r)
	})

	srv := &http.Server{
		Addr:        ":" + port,
		Handler:     mux,
		ReadTimeout: 0, // connections are long-lived
		IdleTimeout: 30 * time.Second,
	}

	if err := srv.ListenAndServe(); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// handleConnection - upgrades the request and runs the read loop until
// the transport tears down, then reconciles the disconnect exactly once.
func (that *Server) handleConnection(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "handleConnection")

	conn, err := that.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	client := NewClient(uuid.NewString(), conn)
	that.pool.Add(client)

	log = log.With("connID", client.ID)
	log.Info("connection established")

	defer func() {
		that.pool.Remove(client.ID)
		that.manager.OnDisconnect(ctx, client.ID)
		_ = conn.Close()
		log.Info("connection closed")
	}()

	that.readLoop(ctx, client, conn)
}

func (that *Server) readLoop(ctx context.Context, client *Client, conn *websocket.Conn) {
	log := that.logger.With("method", "readLoop", "connID", client.ID)

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Error("error reading message", "error", err)
			}
			return
		}

		var message Message
		if err = json.Unmarshal(raw, &message); err != nil {
			log.Error("failed to unmarshal message", "error", err)
			continue
		}

		handler, ok := that.handlers[message.Action]
		if !ok {
			log.Warn("unknown action", "action", message.Action)
			continue
		}

		if err = handler(ctx, client, &message); err != nil {
			log.Error("error processing message", "action", message.Action, "error", err)
		}
	}
}

// sendNotice - failure notice to the requesting connection only.
func (that *Server) sendNotice(client *Client, action string) error {
	if err := client.Send(action, nil); err != nil {
		return fmt.Errorf("failed to send notice: %w", err)
	}

	return nil
}
