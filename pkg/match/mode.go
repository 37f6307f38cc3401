package match

import (
	"github.com/saboracaiteria/br.canaa/pkg/protocol"
	"github.com/saboracaiteria/br.canaa/pkg/protocol/gamemode"
)

// Mode decides team membership and who, if anyone, has won.
type Mode interface {
	ID() gamemode.ID
	Join(*Player)
	Leave(*Player)
	// Winner inspects the players in join order.
	Winner(players []*Player) (protocol.GameOver, bool)
}

func NewMode(id gamemode.ID) Mode {
	if gamemode.IsTeamMode(id) {
		return withTeams(id)
	}
	return withoutTeams()
}

type teamlessMode struct{}

var _ Mode = &teamlessMode{}

func withoutTeams() *teamlessMode {
	return &teamlessMode{}
}

func (*teamlessMode) ID() gamemode.ID { return gamemode.Solo }

func (*teamlessMode) Join(*Player) {}

func (*teamlessMode) Leave(*Player) {}

func (*teamlessMode) Winner(players []*Player) (protocol.GameOver, bool) {
	var last *Player
	for _, p := range players {
		if !p.Contender() {
			continue
		}
		if last != nil {
			return protocol.GameOver{}, false
		}
		last = p
	}
	if last == nil {
		return protocol.GameOver{}, false
	}

	return protocol.GameOver{
		WinnerID:   last.ID,
		WinnerName: last.Name,
		Winners:    []protocol.Winner{toWinner(last)},
	}, true
}

type teamMode struct {
	id gamemode.ID
	*roster
}

var _ Mode = &teamMode{}

func withTeams(id gamemode.ID) *teamMode {
	return &teamMode{
		id:     id,
		roster: newRoster(gamemode.PlayersPerTeam(id)),
	}
}

func (m *teamMode) ID() gamemode.ID { return m.id }

func (m *teamMode) Join(p *Player) {
	m.assign(p)
}

func (m *teamMode) Leave(p *Player) {
	m.leave(p)
}

func (m *teamMode) Winner(players []*Player) (protocol.GameOver, bool) {
	surviving := ""
	for _, p := range players {
		if !p.Contender() || p.TeamID.Value == "" {
			continue
		}
		if surviving != "" && surviving != p.TeamID.Value {
			return protocol.GameOver{}, false
		}
		surviving = p.TeamID.Value
	}

	team := m.byID(surviving)
	if team == nil {
		return protocol.GameOver{}, false
	}

	over := protocol.GameOver{TeamID: team.ID}
	var top *Player
	for _, member := range team.Members {
		over.Winners = append(over.Winners, toWinner(member))
		if top == nil || member.Kills > top.Kills {
			top = member
		}
	}
	over.WinnerID = top.ID
	over.WinnerName = top.Name
	return over, true
}

func toWinner(p *Player) protocol.Winner {
	return protocol.Winner{
		PlayerID:   p.ID,
		PlayerName: p.Name,
		Kills:      p.Kills,
	}
}
