package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConnectionRegistry(t *testing.T) {
	t.Run("Tracks every room a connection joins", func(t *testing.T) {
		// Given: a connection in two rooms
		registry := newConnectionRegistry()
		registry.Join("conn-a", "r1")
		registry.Join("conn-a", "r2")
		registry.Join("conn-b", "r1")

		// Then: memberships are reported per connection
		assert.ElementsMatch(t, []string{"r1", "r2"}, registry.RoomsOf("conn-a"))
		assert.ElementsMatch(t, []string{"r1"}, registry.RoomsOf("conn-b"))
	})

	t.Run("Joining the same room twice is recorded once", func(t *testing.T) {
		registry := newConnectionRegistry()
		registry.Join("conn-a", "r1")
		registry.Join("conn-a", "r1")

		assert.Len(t, registry.RoomsOf("conn-a"), 1)
	})

	t.Run("Forget drops all memberships of a connection", func(t *testing.T) {
		// Given: two tracked connections
		registry := newConnectionRegistry()
		registry.Join("conn-a", "r1")
		registry.Join("conn-b", "r1")

		// When: one is forgotten
		registry.Forget("conn-a")

		// Then: only that connection's memberships are gone
		assert.Empty(t, registry.RoomsOf("conn-a"))
		assert.Len(t, registry.RoomsOf("conn-b"), 1)

		// And: forgetting an unknown connection is a no-op
		registry.Forget("conn-z")
	})
}
