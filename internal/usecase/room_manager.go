package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/1-abesh-1/chess-multiplayer/internal/apperror"
	"github.com/1-abesh-1/chess-multiplayer/internal/entity"
	"github.com/1-abesh-1/chess-multiplayer/internal/rules"
)

type rulesEngine interface {
	InitialPosition() string
	Validate(position string, move entity.Move) (*rules.Verdict, error)
}

type moveArchive interface {
	AppendMove(ctx context.Context, roomID string, record entity.MoveRecord) error
	Clear(ctx context.Context, roomID string) error
}

type notifier interface {
	ToConnection(connID, action string, payload any)
	ToMany(connIDs []string, action string, payload any)
}

// JoinOutcome reports a successful seat assignment.
type JoinOutcome struct {
	Color    string
	Created  bool
	Ready    bool
	Position string
}

// RoomSummary is a read-only view of a room for the operator surface.
type RoomSummary struct {
	ID         string `json:"id"`
	IsReady    bool   `json:"isReady"`
	Spectators int    `json:"spectators"`
	Moves      int    `json:"moves"`
}

// RoomManager owns the room store and performs every room operation:
// seat assignment, spectating, move relay, theme relay, and disconnect
// reconciliation. A single mutex serializes all mutations, so for any
// room the applied-move order equals arrival order, as in the original
// single-threaded event loop. Multiple independent managers can coexist;
// there is no package-level state.
type RoomManager struct {
	logger *slog.Logger

	mu       sync.RWMutex
	rooms    map[string]*entity.Room
	registry *connectionRegistry

	rules    rulesEngine
	archive  moveArchive
	notifier notifier
}

func NewRoomManager(logger *slog.Logger, rules rulesEngine, archive moveArchive, notifier notifier) *RoomManager {
	return &RoomManager{
		logger: logger,

		rooms:    make(map[string]*entity.Room),
		registry: newConnectionRegistry(),

		rules:    rules,
		archive:  archive,
		notifier: notifier,
	}
}

// CreateOrJoin - creates the room if roomID is unseen and seats connID
// at the requested color; on an existing room it claims that seat if
// open. Returns apperror.ErrRoomFull when the seat is occupied by
// someone else; no state changes in that case.
func (that *RoomManager) CreateOrJoin(ctx context.Context, roomID, connID, color string) (*JoinOutcome, error) {
	log := that.logger.With("method", "CreateOrJoin", "roomID", roomID)

	if color != entity.ColorWhite && color != entity.ColorBlack {
		return nil, fmt.Errorf("unknown color %q", color)
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	room, exists := that.rooms[roomID]
	if !exists {
		room = entity.NewRoom(roomID, that.rules.InitialPosition())
		room.TakeSeat(color, connID)
		that.rooms[roomID] = room
		that.registry.Join(connID, roomID)

		that.announceSeat(room, connID, color)

		log.Info("room created", "color", color)

		return &JoinOutcome{Color: color, Created: true, Position: room.Position}, nil
	}

	if seated, ok := room.SeatOf(connID); ok {
		// Re-join of a connection that already holds a seat: report the
		// current assignment instead of mutating anything.
		that.notifier.ToConnection(connID, ActionSyncGameState, SyncGameStatePayload{GameState: room.Position})
		return &JoinOutcome{Color: seated, Ready: room.IsReady(), Position: room.Position}, nil
	}

	if !room.TakeSeat(color, connID) {
		return nil, fmt.Errorf("%w: %s seat in room %s", apperror.ErrRoomFull, color, roomID)
	}

	that.registry.Join(connID, roomID)
	that.announceSeat(room, connID, color)

	log.Info("player joined", "color", color, "ready", room.IsReady())

	return &JoinOutcome{Color: color, Ready: room.IsReady(), Position: room.Position}, nil
}

// JoinAnyOpenSeat - seats connID at the first open seat, white before
// black. Returns apperror.ErrRoomNotFound for an unseen roomID and
// apperror.ErrRoomFull when both seats are taken.
func (that *RoomManager) JoinAnyOpenSeat(ctx context.Context, roomID, connID string) (*JoinOutcome, error) {
	log := that.logger.With("method", "JoinAnyOpenSeat", "roomID", roomID)

	that.mu.Lock()
	defer that.mu.Unlock()

	room, exists := that.rooms[roomID]
	if !exists {
		return nil, fmt.Errorf("%w: %s", apperror.ErrRoomNotFound, roomID)
	}

	if seated, ok := room.SeatOf(connID); ok {
		that.notifier.ToConnection(connID, ActionSyncGameState, SyncGameStatePayload{GameState: room.Position})
		return &JoinOutcome{Color: seated, Ready: room.IsReady(), Position: room.Position}, nil
	}

	color, open := room.OpenSeat()
	if !open {
		return nil, fmt.Errorf("%w: room %s", apperror.ErrRoomFull, roomID)
	}

	room.TakeSeat(color, connID)
	that.registry.Join(connID, roomID)
	that.announceSeat(room, connID, color)

	log.Info("player joined", "color", color, "ready", room.IsReady())

	return &JoinOutcome{Color: color, Ready: room.IsReady(), Position: room.Position}, nil
}

// JoinAsSpectator - adds connID to the spectator set regardless of seat
// occupancy and syncs it with the canonical position. A connection that
// already holds a seat keeps it: it still receives the snapshot, but
// the spectator set is left unchanged.
func (that *RoomManager) JoinAsSpectator(ctx context.Context, roomID, connID string) error {
	log := that.logger.With("method", "JoinAsSpectator", "roomID", roomID)

	that.mu.Lock()
	defer that.mu.Unlock()

	room, exists := that.rooms[roomID]
	if !exists {
		return fmt.Errorf("%w: %s", apperror.ErrRoomNotFound, roomID)
	}

	that.notifier.ToConnection(connID, ActionSyncGameState, SyncGameStatePayload{GameState: room.Position})

	if _, seated := room.SeatOf(connID); seated {
		return nil
	}

	room.AddSpectator(connID)
	that.registry.Join(connID, roomID)

	that.notifier.ToMany(room.MemberIDs(), ActionSpectatorJoined, SpectatorCountPayload{Count: len(room.Spectators)})

	log.Info("spectator joined", "count", len(room.Spectators))

	return nil
}

// ApplyMove - re-validates the proposed move against the room's own
// canonical position and, if legal, advances the position, appends the
// move log, and broadcasts the applied move to every other member. The
// client-sent resulting position is never consulted.
func (that *RoomManager) ApplyMove(ctx context.Context, roomID, connID string, move entity.Move) (*entity.MoveRecord, error) {
	log := that.logger.With("method", "ApplyMove", "roomID", roomID)

	that.mu.Lock()
	defer that.mu.Unlock()

	room, exists := that.rooms[roomID]
	if !exists {
		return nil, fmt.Errorf("%w: %s", apperror.ErrUnknownRoom, roomID)
	}

	// Only seated players may move. Turn order between the two seats is
	// enforced by the rules engine: the side to move is part of the
	// position, so a stale or out-of-turn move fails validation.
	if _, seated := room.SeatOf(connID); !seated {
		return nil, fmt.Errorf("%w: connection holds no seat in room %s", apperror.ErrIllegalMove, roomID)
	}

	verdict, err := that.rules.Validate(room.Position, move)
	if err != nil {
		if errors.Is(err, apperror.ErrIllegalMove) {
			return nil, err
		}

		return nil, fmt.Errorf("failed to validate move: %w", err)
	}

	record := entity.MoveRecord{
		Move:     move,
		SAN:      verdict.SAN,
		Position: verdict.Position,
	}

	room.AppendMove(record)

	if err = that.archive.AppendMove(ctx, roomID, record); err != nil {
		// The in-memory room stays authoritative; the audit trail is
		// best-effort.
		log.Error("failed to archive move", "error", err)
	}

	that.notifier.ToMany(room.MemberIDs(connID), ActionMoveMade, MoveMadePayload{
		Move:        move,
		SAN:         verdict.SAN,
		GameState:   verdict.Position,
		Termination: verdict.Termination,
	})

	log.Info("move applied", "san", verdict.SAN, "termination", verdict.Termination)

	return &record, nil
}

// RelayTheme - broadcasts an opaque appearance preference to the other
// room members. No validation, no persistence; an unknown room is
// silently ignored.
func (that *RoomManager) RelayTheme(ctx context.Context, roomID, connID string, theme json.RawMessage) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	room, exists := that.rooms[roomID]
	if !exists {
		return
	}

	that.notifier.ToMany(room.MemberIDs(connID), ActionThemeChanged, ThemeChangedPayload{Theme: theme})
}

// OnDisconnect - reconciles every room connID was a member of: frees
// its seat or spectator membership, notifies the remaining members, and
// deletes rooms that end up empty. Calling it again for the same
// connection is a no-op.
func (that *RoomManager) OnDisconnect(ctx context.Context, connID string) {
	log := that.logger.With("method", "OnDisconnect", "connID", connID)

	that.mu.Lock()
	defer that.mu.Unlock()

	for _, roomID := range that.registry.RoomsOf(connID) {
		room, exists := that.rooms[roomID]
		if !exists {
			continue
		}

		if color, ok := room.Vacate(connID); ok {
			that.notifier.ToMany(room.MemberIDs(), ActionPlayerLeft, nil)
			log.Info("player left", "roomID", roomID, "color", color)
		} else if room.RemoveSpectator(connID) {
			that.notifier.ToMany(room.MemberIDs(), ActionSpectatorLeft, SpectatorCountPayload{Count: len(room.Spectators)})
			log.Info("spectator left", "roomID", roomID, "count", len(room.Spectators))
		}

		if room.IsEmpty() {
			delete(that.rooms, roomID)

			// A later request for the same id must get a brand-new room
			// with an empty history.
			if err := that.archive.Clear(ctx, roomID); err != nil {
				log.Error("failed to clear move archive", "roomID", roomID, "error", err)
			}

			log.Info("room deleted", "roomID", roomID)
		}
	}

	that.registry.Forget(connID)
}

// ListRooms - summaries of all live rooms, ordered by id.
func (that *RoomManager) ListRooms() []RoomSummary {
	that.mu.RLock()
	defer that.mu.RUnlock()

	summaries := make([]RoomSummary, 0, len(that.rooms))
	for _, room := range that.rooms {
		summaries = append(summaries, RoomSummary{
			ID:         room.ID,
			IsReady:    room.IsReady(),
			Spectators: len(room.Spectators),
			Moves:      len(room.MoveLog),
		})
	}

	sort.Slice(summaries, func(i, j int) bool { return summaries[i].ID < summaries[j].ID })

	return summaries
}

// announceSeat - membership broadcast to the whole room plus a position
// snapshot to the joiner alone, so its board matches the canonical
// position even when moves were applied before the join.
func (that *RoomManager) announceSeat(room *entity.Room, connID, color string) {
	that.notifier.ToMany(room.MemberIDs(), ActionPlayerJoined, PlayerJoinedPayload{
		Color:   color,
		Players: room.Players(),
		IsReady: room.IsReady(),
	})

	that.notifier.ToConnection(connID, ActionSyncGameState, SyncGameStatePayload{GameState: room.Position})
}
