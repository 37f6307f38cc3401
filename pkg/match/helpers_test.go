package match

import (
	"fmt"
	"math/rand"
	"testing"

	opt "github.com/repeale/fp-go/option"
	"github.com/stretchr/testify/require"

	"github.com/saboracaiteria/br.canaa/pkg/protocol"
	"github.com/saboracaiteria/br.canaa/pkg/protocol/gamemode"
)

const tick = 1.0 / 60

// oneLife rules eliminate a player on the first lethal hit.
var oneLife = Rules{Lives: 0, RespawnSeconds: 5, MinPlayers: 2}

func newTestMatch(mode gamemode.ID, rules Rules) *Match {
	return New(Options{
		Code:  "ABC123",
		Mode:  mode,
		Rules: rules,
		Rand:  rand.New(rand.NewSource(1)),
	})
}

func joinPlayers(t *testing.T, m *Match, n int) []string {
	t.Helper()
	var joined []string
	for i := 0; i < n; i++ {
		id := fmt.Sprintf("p%d", m.NumPlayers()+1)
		_, _, err := m.Join(id, "name-"+id)
		require.NoError(t, err)
		joined = append(joined, id)
	}
	return joined
}

func startMatch(t *testing.T, m *Match) {
	t.Helper()
	_, err := m.Dispatch(Start{PlayerID: m.HostID()})
	require.NoError(t, err)
}

func snipe(t *testing.T, m *Match, shooter, target string) []Outbound {
	t.Helper()
	out, err := m.Dispatch(Shoot{
		PlayerID:    shooter,
		WeaponType:  "SNIPER",
		HitPlayerID: target,
	})
	require.NoError(t, err)
	return out
}

func names(out []Outbound) []string {
	var result []string
	for _, o := range out {
		result = append(result, o.Event.EventName())
	}
	return result
}

func gameOvers(out []Outbound) []protocol.GameOver {
	var result []protocol.GameOver
	for _, o := range out {
		if over, ok := o.Event.(protocol.GameOver); ok {
			result = append(result, over)
		}
	}
	return result
}

func mustPlayer(t *testing.T, m *Match, id string) Player {
	t.Helper()
	p := m.Player(id)
	require.True(t, opt.IsSome(p), "player %s missing", id)
	return p.Value
}
