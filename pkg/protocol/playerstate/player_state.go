package playerstate

type ID uint32

const (
	Alive ID = iota
	Respawning
	// Eliminated is terminal for the rest of the match.
	Eliminated
)

func (id ID) String() string {
	switch id {
	case Alive:
		return "alive"
	case Respawning:
		return "respawning"
	case Eliminated:
		return "eliminated"
	default:
		return "unknown"
	}
}
