package registry

import (
	"time"

	"github.com/saboracaiteria/br.canaa/pkg/match"
	"github.com/saboracaiteria/br.canaa/pkg/protocol"
)

type NoticeKind string

const (
	NoticeRoomCreated   NoticeKind = "room-created"
	NoticeGameStarted   NoticeKind = "game-started"
	NoticeGameOver      NoticeKind = "game-over"
	NoticeRoomDestroyed NoticeKind = "room-destroyed"
)

// Notice is a room lifecycle change, published for anything that wants to
// record or forward it. Summary is set for NoticeGameOver only.
type Notice struct {
	Kind    NoticeKind        `json:"kind"`
	Room    protocol.RoomInfo `json:"room"`
	At      time.Time         `json:"at"`
	Summary *match.Summary    `json:"summary,omitempty"`
}
