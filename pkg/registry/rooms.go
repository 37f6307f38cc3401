package registry

import (
	"sort"

	"github.com/repeale/fp-go"

	"github.com/saboracaiteria/br.canaa/pkg/match"
	"github.com/saboracaiteria/br.canaa/pkg/protocol"
)

// publicRooms lists joinable public rooms, oldest first. Callers hold the
// registry lock.
func (r *Registry) publicRooms() []protocol.RoomInfo {
	matches := make([]*match.Match, 0, len(r.rooms))
	for _, rm := range r.rooms {
		matches = append(matches, rm.match)
	}
	matches = fp.Filter(func(m *match.Match) bool { return m.Listed() })(matches)

	sort.Slice(matches, func(i, j int) bool {
		if !matches[i].CreatedAt.Equal(matches[j].CreatedAt) {
			return matches[i].CreatedAt.Before(matches[j].CreatedAt)
		}
		return matches[i].Code < matches[j].Code
	})

	return fp.Map(func(m *match.Match) protocol.RoomInfo { return m.Info() })(matches)
}

// Rooms is the public room list.
func (r *Registry) Rooms() []protocol.RoomInfo {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	return r.publicRooms()
}

func (r *Registry) listRooms(connID string) []delivery {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	conn, ok := r.connections[connID]
	if !ok {
		return nil
	}
	return []delivery{{conn, protocol.RoomList{Rooms: r.publicRooms()}}}
}

// roomListUpdate pushes the public list to every connection still in the
// lobby. Callers hold the registry lock.
func (r *Registry) roomListUpdate() []delivery {
	event := protocol.RoomListUpdated{Rooms: r.publicRooms()}

	var out []delivery
	for id, conn := range r.connections {
		if _, bound := r.bindings[id]; bound {
			continue
		}
		out = append(out, delivery{conn, event})
	}
	return out
}
