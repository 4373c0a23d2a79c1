package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/1-abesh-1/chess-multiplayer/internal/entity"
)

// MoveArchive is the append-only audit trail of applied moves, one
// Redis list per room. It is written behind the in-memory room state
// and is never used to rebuild it.
type MoveArchive interface {
	AppendMove(ctx context.Context, roomID string, record entity.MoveRecord) error
	Moves(ctx context.Context, roomID string) ([]entity.MoveRecord, error)
	Clear(ctx context.Context, roomID string) error
}

type dbArchive struct {
	client *redis.Client
}

func NewMoveArchive(client *redis.Client) MoveArchive {
	return &dbArchive{
		client: client,
	}
}

func (that *dbArchive) AppendMove(ctx context.Context, roomID string, record entity.MoveRecord) error {
	recordJSON, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("could not marshal move record: %w", err)
	}

	if err = that.client.RPush(ctx, movesKey(roomID), recordJSON).Err(); err != nil {
		return fmt.Errorf("failed to append move: %w", err)
	}

	return nil
}

func (that *dbArchive) Moves(ctx context.Context, roomID string) ([]entity.MoveRecord, error) {
	entries, err := that.client.LRange(ctx, movesKey(roomID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read move archive: %w", err)
	}

	records := make([]entity.MoveRecord, 0, len(entries))
	for _, entry := range entries {
		var record entity.MoveRecord
		if err = json.Unmarshal([]byte(entry), &record); err != nil {
			return nil, fmt.Errorf("failed to unmarshal move record: %w", err)
		}

		records = append(records, record)
	}

	return records, nil
}

func (that *dbArchive) Clear(ctx context.Context, roomID string) error {
	if err := that.client.Del(ctx, movesKey(roomID)).Err(); err != nil {
		return fmt.Errorf("failed to clear move archive: %w", err)
	}

	return nil
}

func movesKey(roomID string) string {
	return "room:" + roomID + ":moves"
}
