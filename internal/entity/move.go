package entity

// Move is a candidate move as submitted by a client. Squares use
// algebraic coordinates ("e2", "e4"); Promotion is a single piece
// letter ("q", "r", "b", "n") and is empty for ordinary moves.
type Move struct {
	From      string `json:"from"`
	To        string `json:"to"`
	Promotion string `json:"promotion,omitempty"`
}

// UCI - renders the move in UCI notation, e.g. "e2e4" or "e7e8q".
func (that Move) UCI() string {
	return that.From + that.To + that.Promotion
}

// MoveRecord is one entry of a room's move log: the applied move, its
// SAN encoding, and the canonical position after it was applied.
type MoveRecord struct {
	Move     Move   `json:"move"`
	SAN      string `json:"san"`
	Position string `json:"position"`
}
