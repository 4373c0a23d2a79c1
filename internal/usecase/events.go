package usecase

import (
	"encoding/json"

	"github.com/1-abesh-1/chess-multiplayer/internal/entity"
)

// Server-to-room actions emitted by the room manager. The wire format
// mirrors the client protocol: every outbound frame is an action name
// plus one of the payloads below.
const (
	ActionPlayerJoined    = "playerJoined"
	ActionPlayerLeft      = "playerLeft"
	ActionSpectatorJoined = "spectatorJoined"
	ActionSpectatorLeft   = "spectatorLeft"
	ActionSyncGameState   = "syncGameState"
	ActionMoveMade        = "moveMade"
	ActionThemeChanged    = "themeChanged"
)

type PlayerJoinedPayload struct {
	Color   string            `json:"color"`
	Players map[string]string `json:"players"`
	IsReady bool              `json:"isReady"`
}

type SpectatorCountPayload struct {
	Count int `json:"count"`
}

type SyncGameStatePayload struct {
	GameState string `json:"gameState"`
}

type MoveMadePayload struct {
	Move        entity.Move `json:"move"`
	SAN         string      `json:"san"`
	GameState   string      `json:"gameState"`
	Termination string      `json:"termination,omitempty"`
}

type ThemeChangedPayload struct {
	Theme json.RawMessage `json:"theme"`
}
