package main

import (
	"encoding/json"
	"net/http"

	"github.com/saboracaiteria/br.canaa/pkg/protocol"
)

// NoStore is an http.Handler that disables the browser cache for live
// API responses.
func NoStore(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-store")
		h.ServeHTTP(w, r)
	})
}

type RoomLister interface {
	Rooms() []protocol.RoomInfo
}

// RoomsHandler serves the public room list as JSON.
func RoomsHandler(rooms RoomLister) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		list := rooms.Rooms()
		if list == nil {
			list = []protocol.RoomInfo{}
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(protocol.RoomList{Rooms: list})
	})
}
