package match

import (
	"github.com/saboracaiteria/br.canaa/pkg/protocol"
	"github.com/saboracaiteria/br.canaa/pkg/protocol/playerstate"
	"github.com/saboracaiteria/br.canaa/pkg/protocol/weapon"
)

// shoot relays the shot and, when the client reported a valid hit, applies
// damage on the shooter's word. A hit on a teammate is dropped entirely.
func (m *Match) shoot(cmd Shoot) []Outbound {
	shooter, ok := m.players[cmd.PlayerID]
	if !ok || !shooter.Alive() {
		return nil
	}

	var target *Player
	if cmd.HitPlayerID != "" && cmd.HitPlayerID != shooter.ID {
		target = m.players[cmd.HitPlayerID]
	}
	if target != nil && shooter.SameTeam(target) {
		return nil
	}

	wpn := weapon.Normalize(cmd.WeaponType)
	out := []Outbound{toRoom(protocol.BulletFired{
		ShooterID:  shooter.ID,
		From:       cmd.From,
		To:         cmd.To,
		WeaponType: string(wpn),
	})}

	if target == nil || !target.Alive() {
		return out
	}

	target.applyDamage(weapon.Damage(wpn))
	out = append(out, toRoom(protocol.PlayerDamaged{
		PlayerID:  target.ID,
		Health:    target.Health,
		Armor:     target.Armor,
		ShooterID: shooter.ID,
	}))

	if target.Health <= 0 {
		out = append(out, m.kill(target, shooter)...)
	}
	return out
}

// kill drives the victim through death. killer is nil for zone deaths.
func (m *Match) kill(victim, killer *Player) []Outbound {
	state := victim.Die(m.rules.RespawnSeconds)

	var killerID, killerName string
	if killer != nil {
		killer.Kills++
		killerID, killerName = killer.ID, killer.Name
	}

	logger := m.log.With().
		Str("victim", victim.ID).
		Str("killer", killerID).
		Logger()

	if state == playerstate.Respawning {
		logger.Debug().Int("lives", victim.Lives).Msg("player died")
		return []Outbound{toRoom(protocol.PlayerDied{
			VictimID:       victim.ID,
			VictimName:     victim.Name,
			KillerID:       killerID,
			KillerName:     killerName,
			LivesRemaining: victim.Lives,
			RespawnTime:    victim.RespawnTimer,
		})}
	}

	logger.Info().Msg("player eliminated")
	out := []Outbound{toRoom(protocol.PlayerEliminated{
		VictimID:   victim.ID,
		VictimName: victim.Name,
		KillerID:   killerID,
		KillerName: killerName,
	})}
	return append(out, m.checkWinner()...)
}
