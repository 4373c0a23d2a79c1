package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/1-abesh-1/chess-multiplayer/internal/entity"
	"github.com/1-abesh-1/chess-multiplayer/testing/suite"
)

func TestMoveArchive_AppendAndRead(t *testing.T) {
	ctx, st := suite.New(t)

	archive := NewMoveArchive(st.Storage)

	// Given: two applied moves in room r1
	first := entity.MoveRecord{
		Move:     entity.Move{From: "e2", To: "e4"},
		SAN:      "e4",
		Position: "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1",
	}
	second := entity.MoveRecord{
		Move:     entity.Move{From: "e7", To: "e5"},
		SAN:      "e5",
		Position: "rnbqkbnr/pppp1ppp/8/4p3/4P3/8/PPPP1PPP/RNBQKBNR w KQkq e6 0 2",
	}

	// When: both are appended
	require.NoError(t, archive.AppendMove(ctx, "r1", first))
	require.NoError(t, archive.AppendMove(ctx, "r1", second))

	// Then: the archive preserves order and content
	records, err := archive.Moves(ctx, "r1")
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, first, records[0])
	assert.Equal(t, second, records[1])
}

func TestMoveArchive_Isolation(t *testing.T) {
	ctx, st := suite.New(t)

	archive := NewMoveArchive(st.Storage)

	// Given: a move in room r1 only
	record := entity.MoveRecord{Move: entity.Move{From: "d2", To: "d4"}, SAN: "d4", Position: "pos"}
	require.NoError(t, archive.AppendMove(ctx, "r1", record))

	// When: reading a different room
	records, err := archive.Moves(ctx, "r2")

	// Then: it is empty
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestMoveArchive_Clear(t *testing.T) {
	ctx, st := suite.New(t)

	archive := NewMoveArchive(st.Storage)

	record := entity.MoveRecord{Move: entity.Move{From: "e2", To: "e4"}, SAN: "e4", Position: "pos"}
	require.NoError(t, archive.AppendMove(ctx, "r1", record))

	// When: the room's trail is cleared
	require.NoError(t, archive.Clear(ctx, "r1"))

	// Then: a later read sees an empty history
	records, err := archive.Moves(ctx, "r1")
	require.NoError(t, err)
	assert.Empty(t, records)

	// And: clearing an unknown room is not an error
	require.NoError(t, archive.Clear(ctx, "never-existed"))
}
