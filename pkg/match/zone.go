package match

import (
	"math"

	"github.com/saboracaiteria/br.canaa/pkg/protocol"
)

// Zone is the shrinking safe circle. It pauses once at each checkpoint
// radius and never grows.
type Zone struct {
	Radius     float64
	Center     protocol.Center
	Shrinking  bool
	PauseCount int
	PauseTimer float64
}

func NewZone() Zone {
	return Zone{Radius: StartRadius}
}

func (z *Zone) Start() {
	z.Shrinking = true
}

func (z *Zone) Stop() {
	z.Shrinking = false
}

func (z *Zone) Paused() bool {
	return z.PauseTimer > 0
}

// Update advances the zone by dt seconds. It reports whether players
// outside the circle take damage this tick.
func (z *Zone) Update(dt float64) bool {
	if !z.Shrinking {
		return false
	}

	if z.PauseTimer > 0 {
		z.PauseTimer -= dt
		return false
	}

	switch {
	case z.PauseCount == 0 && z.Radius <= FirstCheckpointRadius:
		z.PauseCount = 1
		z.PauseTimer = CheckpointPause
	case z.PauseCount == 1 && z.Radius <= SecondCheckpointRadius:
		z.PauseCount = 2
		z.PauseTimer = CheckpointPause
	}

	if z.PauseTimer <= 0 && z.Radius > MinRadius {
		z.Radius = math.Max(MinRadius, z.Radius-ShrinkPerTick*dt*ReferenceTickRate)
	}
	return true
}

func (z *Zone) Outside(pos protocol.Vec3) bool {
	return pos.PlanarDistance(z.Center) > z.Radius
}

func (z *Zone) Damage(dt float64) float64 {
	return ZoneDamagePerTick * dt * ReferenceTickRate
}

func (z *Zone) Wire() protocol.ZoneUpdate {
	return protocol.ZoneUpdate{
		Radius:    z.Radius,
		Center:    z.Center,
		Paused:    z.Paused(),
		PauseTime: int(math.Ceil(math.Max(0, z.PauseTimer))),
	}
}
