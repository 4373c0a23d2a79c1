package rules

import (
	"fmt"

	nchess "github.com/corentings/chess/v2"

	"github.com/1-abesh-1/chess-multiplayer/internal/apperror"
	"github.com/1-abesh-1/chess-multiplayer/internal/entity"
)

const (
	TerminationCheckmate = "checkmate"
	TerminationStalemate = "stalemate"
	TerminationDraw      = "draw"
)

// Verdict is the rules engine's answer to a candidate move: the
// resulting position, the SAN encoding of the move, and - when the move
// ends the game - how it ended. Termination is informational only.
type Verdict struct {
	Position    string
	SAN         string
	Termination string
}

// Engine validates candidate moves against a position and applies them.
// Positions are exchanged as FEN strings; callers never parse them.
type Engine interface {
	InitialPosition() string
	Validate(position string, move entity.Move) (*Verdict, error)
}

type chessEngine struct{}

func NewEngine() Engine {
	return &chessEngine{}
}

func (that *chessEngine) InitialPosition() string {
	return nchess.NewGame().Position().String()
}

// Validate - checks move legality in the given position and returns the
// verdict for a legal move. Illegal moves surface apperror.ErrIllegalMove.
func (that *chessEngine) Validate(position string, move entity.Move) (*Verdict, error) {
	option, err := nchess.FEN(position)
	if err != nil {
		return nil, fmt.Errorf("failed to parse position: %w", err)
	}

	game := nchess.NewGame(option)
	pos := game.Position()

	parsed, err := nchess.UCINotation{}.Decode(pos, move.UCI())
	if err != nil {
		return nil, fmt.Errorf("%w: %s", apperror.ErrIllegalMove, move.UCI())
	}

	if err = game.PushNotationMove(move.UCI(), nchess.UCINotation{}, nil); err != nil {
		return nil, fmt.Errorf("%w: %s", apperror.ErrIllegalMove, move.UCI())
	}

	verdict := &Verdict{
		Position: game.Position().String(),
		SAN:      nchess.AlgebraicNotation{}.Encode(pos, parsed),
	}

	if game.Outcome() != nchess.NoOutcome {
		switch game.Method() {
		case nchess.Checkmate:
			verdict.Termination = TerminationCheckmate
		case nchess.Stalemate:
			verdict.Termination = TerminationStalemate
		default:
			verdict.Termination = TerminationDraw
		}
	}

	return verdict, nil
}
