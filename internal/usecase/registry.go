package usecase

// connectionRegistry tracks which rooms each live connection belongs
// to. In practice a connection occupies at most one room, but nothing
// here assumes it. All access is serialized by RoomManager.mu.
type connectionRegistry struct {
	memberships map[string]map[string]struct{}
}

func newConnectionRegistry() *connectionRegistry {
	return &connectionRegistry{
		memberships: make(map[string]map[string]struct{}),
	}
}

func (that *connectionRegistry) Join(connID, roomID string) {
	rooms, ok := that.memberships[connID]
	if !ok {
		rooms = make(map[string]struct{})
		that.memberships[connID] = rooms
	}

	rooms[roomID] = struct{}{}
}

// RoomsOf - the rooms connID currently belongs to.
func (that *connectionRegistry) RoomsOf(connID string) []string {
	rooms := make([]string, 0, len(that.memberships[connID]))
	for roomID := range that.memberships[connID] {
		rooms = append(rooms, roomID)
	}

	return rooms
}

// Forget - drops every membership of connID.
func (that *connectionRegistry) Forget(connID string) {
	delete(that.memberships, connID)
}
