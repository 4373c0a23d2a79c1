package rest

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/1-abesh-1/chess-multiplayer/internal/usecase"
)

type stubLister struct {
	summaries []usecase.RoomSummary
}

func (that *stubLister) ListRooms() []usecase.RoomSummary {
	return that.summaries
}

func TestPingHandler(t *testing.T) {
	recorder := httptest.NewRecorder()

	pingHandler(recorder, httptest.NewRequest(http.MethodGet, "/ping", nil))

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "pong", recorder.Body.String())
}

func TestRoomsHandler(t *testing.T) {
	t.Run("Lists live rooms as JSON", func(t *testing.T) {
		lister := &stubLister{summaries: []usecase.RoomSummary{
			{ID: "r1", IsReady: true, Spectators: 2, Moves: 7},
		}}

		recorder := httptest.NewRecorder()
		roomsHandler(lister)(recorder, httptest.NewRequest(http.MethodGet, "/rooms", nil))

		require.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, "application/json", recorder.Header().Get("Content-Type"))
		assert.JSONEq(t, `[{"id":"r1","isReady":true,"spectators":2,"moves":7}]`, recorder.Body.String())
	})

	t.Run("Empty store yields an empty list", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		roomsHandler(&stubLister{summaries: []usecase.RoomSummary{}})(recorder, httptest.NewRequest(http.MethodGet, "/rooms", nil))

		require.Equal(t, http.StatusOK, recorder.Code)
		assert.JSONEq(t, `[]`, recorder.Body.String())
	})
}
