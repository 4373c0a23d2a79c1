package websocket

import (
	"encoding/json"

	"github.com/1-abesh-1/chess-multiplayer/internal/entity"
)

// Client-to-server actions.
const (
	actionCreateRoom      = "createRoom"
	actionJoinRoom        = "joinRoom"
	actionJoinAsSpectator = "joinAsSpectator"
	actionMove            = "move"
	actionThemeChange     = "themeChange"
)

// Failure notices, sent to the requesting connection only.
const (
	actionRoomFull     = "roomFull"
	actionRoomNotFound = "roomNotFound"
	actionInvalidMove  = "invalidMove"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type CreateRoomPayload struct {
	RoomID string `json:"roomId"`
	Color  string `json:"color"`
}

type JoinRoomPayload struct {
	RoomID string `json:"roomId"`
}

type MovePayload struct {
	RoomID string      `json:"roomId"`
	Move   entity.Move `json:"move"`
	// GameState is the client's own resulting position. It is accepted
	// for wire compatibility and deliberately ignored: the server
	// re-derives the position from its canonical state.
	GameState string `json:"gameState,omitempty"`
}

type ThemePayload struct {
	RoomID string          `json:"roomId"`
	Theme  json.RawMessage `json:"theme"`
}
