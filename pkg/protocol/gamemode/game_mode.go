package gamemode

import (
	"strings"
)

type ID int32

const Unknown ID = -1

const (
	Solo ID = iota
	Duo
	Squad
)

func (gm ID) String() string {
	switch gm {
	case Solo:
		return "solo"
	case Duo:
		return "duo"
	case Squad:
		return "squad"
	default:
		return "unknown"
	}
}

func (gm ID) MarshalText() ([]byte, error) {
	return []byte(gm.String()), nil
}

func (gm *ID) UnmarshalText(text []byte) error {
	*gm = Parse(string(text))
	return nil
}

// Parse accepts the names clients send in create-room. An empty name means
// solo.
func Parse(s string) ID {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "solo", "ffa":
		return Solo
	case "duo", "duos":
		return Duo
	case "squad", "squads":
		return Squad
	default:
		return Unknown
	}
}

func Valid(gm ID) bool {
	switch gm {
	case Solo, Duo, Squad:
		return true
	default:
		return false
	}
}

// PlayersPerTeam is the team capacity for team modes and 0 for solo.
func PlayersPerTeam(gm ID) int {
	switch gm {
	case Duo:
		return 2
	case Squad:
		return 4
	default:
		return 0
	}
}

func IsTeamMode(gm ID) bool {
	return PlayersPerTeam(gm) > 0
}
