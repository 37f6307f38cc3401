package armour

const (
	// Absorption is how much armour one point of weapon damage costs. Armour
	// therefore cuts the damage that reaches health by a third while it lasts.
	Absorption = 1.5

	Max   = 150.0
	Spawn = 100.0
)

// Apply spends armour on raw weapon damage and returns the new armour and
// health values. Damage that the remaining armour cannot absorb spills onto
// health at the unabsorbed rate.
func Apply(armour, health, raw float64) (float64, float64) {
	if armour <= 0 {
		return 0, health - raw
	}

	armour -= raw * Absorption
	if armour < 0 {
		health += armour / Absorption
		armour = 0
	}
	return armour, health
}
