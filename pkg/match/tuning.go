package match

const (
	// ReferenceTickRate is the rate the per-tick zone constants were tuned
	// for. Per-tick amounts are scaled by dt*ReferenceTickRate.
	ReferenceTickRate = 60.0

	StartRadius            = 500.0
	MinRadius              = 10.0
	ShrinkPerTick          = 0.12
	ZoneDamagePerTick      = 0.05
	FirstCheckpointRadius  = 350.0
	SecondCheckpointRadius = 150.0
	CheckpointPause        = 30.0

	MaxHealth = 100.0

	SpawnMinDistance = 50.0
	SpawnMaxDistance = 150.0
	SpawnHeight      = 2.0

	DefaultMaxPlayers = 50

	// respawn countdowns accumulate float error over many small ticks
	timerEpsilon = 1e-6
)

// Rules are the per-match knobs that configuration may change.
type Rules struct {
	Lives          int
	RespawnSeconds float64
	MinPlayers     int
}

func DefaultRules() Rules {
	return Rules{
		Lives:          5,
		RespawnSeconds: 5,
		MinPlayers:     2,
	}
}
