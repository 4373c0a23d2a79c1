package entity

const (
	ColorWhite = "white"
	ColorBlack = "black"
)

// Room groups two player seats and any number of spectators around one
// canonical position. The position is a FEN string produced by the
// rules engine; the room only stores and forwards it.
//
// Room carries no locking of its own: all access is serialized by the
// owning RoomManager.
type Room struct {
	ID         string
	Position   string
	White      string
	Black      string
	Spectators map[string]struct{}
	MoveLog    []MoveRecord
}

func NewRoom(id, position string) *Room {
	return &Room{
		ID:         id,
		Position:   position,
		Spectators: make(map[string]struct{}),
	}
}

// TakeSeat - assigns connID to the given color seat. Returns false if
// the seat is occupied; returns true without mutation if connID already
// holds that seat. A connection taking a seat stops being a spectator.
func (that *Room) TakeSeat(color, connID string) bool {
	switch color {
	case ColorWhite:
		if that.White != "" {
			return that.White == connID
		}
		that.White = connID
	case ColorBlack:
		if that.Black != "" {
			return that.Black == connID
		}
		that.Black = connID
	default:
		return false
	}

	delete(that.Spectators, connID)

	return true
}

// OpenSeat - returns the first open seat color, white before black.
func (that *Room) OpenSeat() (string, bool) {
	if that.White == "" {
		return ColorWhite, true
	}

	if that.Black == "" {
		return ColorBlack, true
	}

	return "", false
}

// SeatOf - returns the seat color connID occupies, if any.
func (that *Room) SeatOf(connID string) (string, bool) {
	switch connID {
	case "":
		return "", false
	case that.White:
		return ColorWhite, true
	case that.Black:
		return ColorBlack, true
	}

	return "", false
}

// Vacate - clears the seat occupied by connID and reports which color
// was freed.
func (that *Room) Vacate(connID string) (string, bool) {
	color, ok := that.SeatOf(connID)
	if !ok {
		return "", false
	}

	if color == ColorWhite {
		that.White = ""
	} else {
		that.Black = ""
	}

	return color, true
}

func (that *Room) AddSpectator(connID string) {
	that.Spectators[connID] = struct{}{}
}

func (that *Room) RemoveSpectator(connID string) bool {
	if _, ok := that.Spectators[connID]; !ok {
		return false
	}

	delete(that.Spectators, connID)

	return true
}

// IsReady - true iff both player seats are occupied.
func (that *Room) IsReady() bool {
	return that.White != "" && that.Black != ""
}

// IsEmpty - true iff both seats are empty and no spectators remain;
// an empty room is eligible for deletion.
func (that *Room) IsEmpty() bool {
	return that.White == "" && that.Black == "" && len(that.Spectators) == 0
}

// MemberIDs - all connections in the room, minus the excluded ones.
func (that *Room) MemberIDs(exclude ...string) []string {
	skip := make(map[string]struct{}, len(exclude))
	for _, id := range exclude {
		skip[id] = struct{}{}
	}

	members := make([]string, 0, 2+len(that.Spectators))

	for _, id := range []string{that.White, that.Black} {
		if id == "" {
			continue
		}
		if _, ok := skip[id]; ok {
			continue
		}
		members = append(members, id)
	}

	for id := range that.Spectators {
		if _, ok := skip[id]; ok {
			continue
		}
		members = append(members, id)
	}

	return members
}

// Players - seat occupancy keyed by color, for membership broadcasts.
func (that *Room) Players() map[string]string {
	return map[string]string{
		ColorWhite: that.White,
		ColorBlack: that.Black,
	}
}

func (that *Room) AppendMove(record MoveRecord) {
	that.MoveLog = append(that.MoveLog, record)
	that.Position = record.Position
}
