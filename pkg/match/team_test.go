package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saboracaiteria/br.canaa/pkg/protocol/gamemode"
)

func teamSizes(m *Match) map[string]int {
	sizes := map[string]int{}
	for _, p := range m.Snapshot() {
		if p.TeamID != nil {
			sizes[*p.TeamID]++
		}
	}
	return sizes
}

func TestDuoAssignment(t *testing.T) {
	m := newTestMatch(gamemode.Duo, DefaultRules())
	joinPlayers(t, m, 4)
	assert.Equal(t, map[string]int{"team-1": 2, "team-2": 2}, teamSizes(m))

	joinPlayers(t, m, 1)
	assert.Equal(t, map[string]int{"team-1": 2, "team-2": 2, "team-3": 1}, teamSizes(m))
	assert.Equal(t, "team-3", *m.Snapshot()["p5"].TeamID)
}

func TestSquadAssignment(t *testing.T) {
	m := newTestMatch(gamemode.Squad, DefaultRules())
	joinPlayers(t, m, 9)
	assert.Equal(t, map[string]int{"team-1": 4, "team-2": 4, "team-3": 1}, teamSizes(m))
}

func TestSoloHasNoTeams(t *testing.T) {
	m := newTestMatch(gamemode.Solo, DefaultRules())
	joinPlayers(t, m, 3)
	assert.Empty(t, teamSizes(m))
}

func TestLeavingFreesTeamSlot(t *testing.T) {
	m := newTestMatch(gamemode.Duo, DefaultRules())
	joinPlayers(t, m, 4)

	m.Remove("p2")
	_, _, err := m.Join("p5", "p5")
	require.NoError(t, err)
	assert.Equal(t, "team-1", *m.Snapshot()["p5"].TeamID)
	assert.Equal(t, map[string]int{"team-1": 2, "team-2": 2}, teamSizes(m))

	m.Remove("p3")
	m.Remove("p4")
	assert.Equal(t, map[string]int{"team-1": 2}, teamSizes(m))

	// team ids are never reused
	_, _, err = m.Join("late", "late")
	require.NoError(t, err)
	assert.Equal(t, "team-3", *m.Snapshot()["late"].TeamID)
}

func TestFriendlyFire(t *testing.T) {
	m := newTestMatch(gamemode.Duo, DefaultRules())
	joinPlayers(t, m, 4)
	startMatch(t, m)

	before := m.Snapshot()
	out := snipe(t, m, "p1", "p2")
	assert.Empty(t, out)
	assert.Equal(t, before, m.Snapshot())

	out = snipe(t, m, "p1", "p3")
	assert.Contains(t, names(out), "player-damaged")
}

func TestTeamRemove(t *testing.T) {
	team := NewTeam("team-1")
	a, b := NewPlayer("a", "a", 1), NewPlayer("b", "b", 1)
	team.Add(a)
	team.Add(b)
	assert.True(t, a.SameTeam(b))

	team.Remove(a)
	assert.Equal(t, 1, team.Size())
	assert.False(t, a.SameTeam(b))
	assert.Equal(t, b, team.Members[0])
}
