package match

import (
	"time"

	opt "github.com/repeale/fp-go/option"

	"github.com/saboracaiteria/br.canaa/pkg/protocol"
	"github.com/saboracaiteria/br.canaa/pkg/protocol/playerstate"
)

type Player struct {
	ID       string
	Name     string
	TeamID   opt.Option[string]
	Position protocol.Vec3
	Rotation protocol.Rotation
	JoinedAt time.Time
	PlayerState
}

func NewPlayer(id, name string, lives int) *Player {
	return &Player{
		ID:          id,
		Name:        name,
		TeamID:      opt.None[string](),
		JoinedAt:    time.Now(),
		PlayerState: NewPlayerState(lives),
	}
}

// SameTeam is false for teamless players, even against each other.
func (p *Player) SameTeam(other *Player) bool {
	if opt.IsNone(p.TeamID) || opt.IsNone(other.TeamID) {
		return false
	}
	return p.TeamID.Value == other.TeamID.Value
}

func (p *Player) Snapshot() protocol.PlayerSnapshot {
	snapshot := protocol.PlayerSnapshot{
		ID:            p.ID,
		Name:          p.Name,
		Position:      p.Position,
		Rotation:      p.Rotation,
		Health:        p.Health,
		Armor:         p.Armor,
		Lives:         p.Lives,
		Alive:         p.State == playerstate.Alive,
		IsRespawning:  p.State == playerstate.Respawning,
		RespawnTimer:  p.RespawnTimer,
		Eliminated:    p.State == playerstate.Eliminated,
		CurrentWeapon: string(p.CurrentWeapon),
		Kills:         p.Kills,
	}
	if opt.IsSome(p.TeamID) {
		team := p.TeamID.Value
		snapshot.TeamID = &team
	}
	return snapshot
}
