package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/1-abesh-1/chess-multiplayer/internal/apperror"
	"github.com/1-abesh-1/chess-multiplayer/internal/entity"
)

func TestEngine_InitialPosition(t *testing.T) {
	engine := NewEngine()

	assert.Equal(t, "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1", engine.InitialPosition())
}

func TestEngine_Validate(t *testing.T) {
	engine := NewEngine()

	t.Run("Legal opening move yields the resulting position", func(t *testing.T) {
		// Given: the initial position
		position := engine.InitialPosition()

		// When: white plays e2e4
		verdict, err := engine.Validate(position, entity.Move{From: "e2", To: "e4"})

		// Then: the verdict carries the advanced position and SAN
		require.NoError(t, err)
		assert.Equal(t, "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1", verdict.Position)
		assert.Equal(t, "e4", verdict.SAN)
		assert.Empty(t, verdict.Termination)
	})

	t.Run("Illegal move is rejected", func(t *testing.T) {
		position := engine.InitialPosition()

		// When: white tries to jump a pawn three squares
		_, err := engine.Validate(position, entity.Move{From: "e2", To: "e5"})

		// Then: ErrIllegalMove is surfaced
		require.Error(t, err)
		assert.ErrorIs(t, err, apperror.ErrIllegalMove)
	})

	t.Run("Out-of-turn move is rejected against the current position", func(t *testing.T) {
		// Given: a position where it is black to move
		verdict, err := engine.Validate(engine.InitialPosition(), entity.Move{From: "e2", To: "e4"})
		require.NoError(t, err)

		// When: white moves again
		_, err = engine.Validate(verdict.Position, entity.Move{From: "d2", To: "d4"})

		// Then: the move is illegal
		assert.ErrorIs(t, err, apperror.ErrIllegalMove)
	})

	t.Run("Malformed position is reported as a parse failure, not an illegal move", func(t *testing.T) {
		_, err := engine.Validate("not a position", entity.Move{From: "e2", To: "e4"})

		require.Error(t, err)
		assert.NotErrorIs(t, err, apperror.ErrIllegalMove)
	})

	t.Run("Checkmate is reported as terminal", func(t *testing.T) {
		// Given: the fool's mate sequence up to the final move
		position := engine.InitialPosition()
		for _, move := range []entity.Move{
			{From: "f2", To: "f3"},
			{From: "e7", To: "e5"},
			{From: "g2", To: "g4"},
		} {
			verdict, err := engine.Validate(position, move)
			require.NoError(t, err)
			position = verdict.Position
		}

		// When: black delivers mate
		verdict, err := engine.Validate(position, entity.Move{From: "d8", To: "h4"})

		// Then: the verdict marks the game as checkmate
		require.NoError(t, err)
		assert.Equal(t, TerminationCheckmate, verdict.Termination)
	})

	t.Run("Promotion moves carry the piece letter", func(t *testing.T) {
		// Given: a white pawn one step from promotion
		position := "8/P7/8/8/8/8/8/K6k w - - 0 1"

		// When: the pawn promotes to a queen
		verdict, err := engine.Validate(position, entity.Move{From: "a7", To: "a8", Promotion: "q"})

		// Then: the move is legal and the queen appears on a8
		require.NoError(t, err)
		assert.Contains(t, verdict.Position, "Q7")
	})
}
