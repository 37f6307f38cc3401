package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/saboracaiteria/br.canaa/pkg/protocol"
	"github.com/saboracaiteria/br.canaa/pkg/registry"
)

type staticRooms []protocol.RoomInfo

func (s staticRooms) Rooms() []protocol.RoomInfo { return s }

func TestRoomsHandler(t *testing.T) {
	handler := NoStore(RoomsHandler(staticRooms{{RoomCode: "ABC123", HostName: "alice", Players: 1, MaxPlayers: 50, GameMode: "solo"}}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/rooms", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
	assert.JSONEq(t, `{"rooms":[{"roomCode":"ABC123","hostName":"alice","players":1,"maxPlayers":50,"gameMode":"solo","started":false}]}`, w.Body.String())

	w = httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/rooms", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestRoomsHandlerEmpty(t *testing.T) {
	w := httptest.NewRecorder()
	RoomsHandler(registry.New(registry.DefaultConfig())).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/rooms", nil))
	assert.JSONEq(t, `{"rooms":[]}`, w.Body.String())
}
