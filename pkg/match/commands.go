package match

import "github.com/saboracaiteria/br.canaa/pkg/protocol"

// Command is a player action routed to a single match.
type Command interface {
	Actor() string
}

type Start struct {
	PlayerID string
}

type Move struct {
	PlayerID string
	Position protocol.Vec3
	Rotation protocol.Rotation
}

type Shoot struct {
	PlayerID    string
	From        protocol.Vec3
	To          protocol.Vec3
	WeaponType  string
	HitPlayerID string
}

type ThrowGrenade struct {
	PlayerID string
	Position protocol.Vec3
	Velocity protocol.Vec3
	Type     string
}

type SwitchWeapon struct {
	PlayerID   string
	WeaponType string
}

type RequestRespawn struct {
	PlayerID string
}

func (c Start) Actor() string          { return c.PlayerID }
func (c Move) Actor() string           { return c.PlayerID }
func (c Shoot) Actor() string          { return c.PlayerID }
func (c ThrowGrenade) Actor() string   { return c.PlayerID }
func (c SwitchWeapon) Actor() string   { return c.PlayerID }
func (c RequestRespawn) Actor() string { return c.PlayerID }

// CommandFor maps a decoded in-match message onto a command for playerID.
// The second return is false for messages that are not match commands.
func CommandFor(playerID string, msg protocol.Inbound) (Command, bool) {
	switch msg := msg.(type) {
	case protocol.StartGame:
		return Start{PlayerID: playerID}, true
	case protocol.PlayerMove:
		return Move{
			PlayerID: playerID,
			Position: msg.Position,
			Rotation: msg.Rotation,
		}, true
	case protocol.PlayerShoot:
		return Shoot{
			PlayerID:    playerID,
			From:        msg.From,
			To:          msg.To,
			WeaponType:  msg.WeaponType,
			HitPlayerID: msg.HitPlayerID,
		}, true
	case protocol.ThrowGrenade:
		return ThrowGrenade{
			PlayerID: playerID,
			Position: msg.Position,
			Velocity: msg.Velocity,
			Type:     msg.Type,
		}, true
	case protocol.SwitchWeapon:
		return SwitchWeapon{PlayerID: playerID, WeaponType: msg.WeaponType}, true
	case protocol.RequestRespawn:
		return RequestRespawn{PlayerID: playerID}, true
	default:
		return nil, false
	}
}
