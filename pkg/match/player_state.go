package match

import (
	"github.com/saboracaiteria/br.canaa/pkg/protocol/armour"
	"github.com/saboracaiteria/br.canaa/pkg/protocol/playerstate"
	"github.com/saboracaiteria/br.canaa/pkg/protocol/weapon"
)

type PlayerState struct {
	State playerstate.ID

	// reset at spawn
	Health       float64
	Armor        float64
	RespawnTimer float64

	// kept for the whole match
	Lives         int
	CurrentWeapon weapon.ID
	Kills         int
	Deaths        int
}

func NewPlayerState(lives int) PlayerState {
	ps := PlayerState{}
	ps.Reset(lives)
	return ps
}

// Reset puts the state back to how a fresh player starts a match.
func (ps *PlayerState) Reset(lives int) {
	ps.Lives = lives
	ps.CurrentWeapon = weapon.Default
	ps.Kills = 0
	ps.Deaths = 0
	ps.Spawn()
}

func (ps *PlayerState) Spawn() {
	ps.State = playerstate.Alive
	ps.Health = MaxHealth
	ps.Armor = armour.Spawn
	ps.RespawnTimer = 0
}

func (ps *PlayerState) Alive() bool {
	return ps.State == playerstate.Alive
}

// Contender is true until the player is eliminated; a player waiting to
// respawn can still win.
func (ps *PlayerState) Contender() bool {
	return ps.State != playerstate.Eliminated
}

func (ps *PlayerState) applyDamage(raw float64) {
	ps.Armor, ps.Health = armour.Apply(ps.Armor, ps.Health, raw)
	if ps.Health < 0 {
		ps.Health = 0
	}
}

func (ps *PlayerState) applyZoneDamage(amount float64) {
	ps.Health -= amount
	if ps.Health < 0 {
		ps.Health = 0
	}
}

// Die consumes a life if one is left and otherwise eliminates the player.
// It returns the resulting state.
func (ps *PlayerState) Die(respawnDelay float64) playerstate.ID {
	if ps.State != playerstate.Alive {
		return ps.State
	}

	ps.Health = 0
	ps.Armor = 0
	ps.Deaths++

	if ps.Lives > 0 {
		ps.Lives--
		ps.State = playerstate.Respawning
		ps.RespawnTimer = respawnDelay
	} else {
		ps.State = playerstate.Eliminated
		ps.RespawnTimer = 0
	}
	return ps.State
}

// countdown advances the respawn timer and reports whether it ran out.
func (ps *PlayerState) countdown(dt float64) bool {
	if ps.State != playerstate.Respawning {
		return false
	}
	ps.RespawnTimer -= dt
	if ps.RespawnTimer > timerEpsilon {
		return false
	}
	ps.RespawnTimer = 0
	return true
}
