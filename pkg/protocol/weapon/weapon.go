package weapon

import "strings"

type ID string

// Weapon names as the client declares them. Anything else is accepted and
// treated as a standard weapon.
const (
	AssaultRifle ID = "AR"
	SMG          ID = "SMG"
	Shotgun      ID = "SHOTGUN"
	Pistol       ID = "PISTOL"
	Sniper       ID = "SNIPER"

	Default = AssaultRifle
)

const (
	SniperDamage   float64 = 400
	StandardDamage float64 = 50
)

// Damage returns the raw damage of a single hit with the declared weapon.
func Damage(id ID) float64 {
	if id == Sniper {
		return SniperDamage
	}
	return StandardDamage
}

// Normalize trims the declared weapon and falls back to Default when the
// client sent nothing.
func Normalize(s string) ID {
	s = strings.TrimSpace(s)
	if s == "" {
		return Default
	}
	return ID(s)
}
