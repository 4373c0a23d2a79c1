package websocket

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// writeWait bounds a single frame write. Room broadcasts run inside the
// room manager's critical section, so a peer that stops reading must
// error out instead of blocking every room in the process.
const writeWait = 10 * time.Second

// Client is one live transport session. Its ID is valid only for the
// session's lifetime.
type Client struct {
	ID string

	conn         *websocket.Conn
	writeTimeout time.Duration
	mu           sync.Mutex
}

func NewClient(id string, conn *websocket.Conn) *Client {
	return &Client{
		ID:           id,
		conn:         conn,
		writeTimeout: writeWait,
	}
}

// Send - writes one action frame to the peer. Serialized per client:
// gorilla connections allow a single concurrent writer.
func (that *Client) Send(action string, payload any) error {
	message := Message{Action: action}

	if payload != nil {
		payloadJSON, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal payload: %w", err)
		}

		message.Payload = payloadJSON
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	if err := that.conn.SetWriteDeadline(time.Now().Add(that.writeTimeout)); err != nil {
		return fmt.Errorf("failed to set write deadline: %w", err)
	}

	if err := that.conn.WriteJSON(message); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return nil
}

// Pool tracks all live connections and delivers room broadcasts. It
// implements the room manager's notifier boundary; delivery failures
// are logged and never propagate into room state.
type Pool struct {
	logger *slog.Logger

	mu      sync.RWMutex
	clients map[string]*Client
}

func NewPool(logger *slog.Logger) *Pool {
	return &Pool{
		logger:  logger,
		clients: make(map[string]*Client),
	}
}

func (that *Pool) Add(client *Client) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.clients[client.ID] = client
}

func (that *Pool) Remove(connID string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	delete(that.clients, connID)
}

func (that *Pool) ToConnection(connID, action string, payload any) {
	that.mu.RLock()
	client, ok := that.clients[connID]
	that.mu.RUnlock()

	if !ok {
		that.logger.Warn("connection not found", "connID", connID, "action", action)
		return
	}

	if err := client.Send(action, payload); err != nil {
		that.logger.Error("failed to send message", "connID", connID, "action", action, "error", err)
	}
}

func (that *Pool) ToMany(connIDs []string, action string, payload any) {
	for _, connID := range connIDs {
		that.ToConnection(connID, action, payload)
	}
}
