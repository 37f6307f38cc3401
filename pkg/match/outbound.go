package match

import "github.com/saboracaiteria/br.canaa/pkg/protocol"

type Audience uint8

const (
	// ToRoom reaches every participant of the match.
	ToRoom Audience = iota
	// ToOthers reaches every participant except PlayerID.
	ToOthers
	// ToPlayer reaches PlayerID only.
	ToPlayer
)

// Outbound is an event addressed to some subset of a match's participants.
// Delivery is the caller's job; a Match never sees connections.
type Outbound struct {
	Audience Audience
	PlayerID string
	Event    protocol.Event
}

func toRoom(event protocol.Event) Outbound {
	return Outbound{Audience: ToRoom, Event: event}
}

func toOthers(except string, event protocol.Event) Outbound {
	return Outbound{Audience: ToOthers, PlayerID: except, Event: event}
}

func toPlayer(id string, event protocol.Event) Outbound {
	return Outbound{Audience: ToPlayer, PlayerID: id, Event: event}
}

// Reaches reports whether a participant is addressed by o.
func (o Outbound) Reaches(playerID string) bool {
	switch o.Audience {
	case ToRoom:
		return true
	case ToOthers:
		return playerID != o.PlayerID
	case ToPlayer:
		return playerID == o.PlayerID
	default:
		return false
	}
}
