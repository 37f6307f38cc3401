package match

import (
	opt "github.com/repeale/fp-go/option"

	"github.com/saboracaiteria/br.canaa/pkg/ids"
)

type Team struct {
	ID string
	// in join order
	Members []*Player
}

func NewTeam(id string) *Team {
	return &Team{ID: id}
}

func (t *Team) Add(p *Player) {
	t.Members = append(t.Members, p)
	p.TeamID = opt.Some(t.ID)
}

func (t *Team) Remove(p *Player) {
	p.TeamID = opt.None[string]()
	for i, member := range t.Members {
		if member == p {
			t.Members = append(t.Members[:i], t.Members[i+1:]...)
			return
		}
	}
}

func (t *Team) Size() int {
	return len(t.Members)
}

// roster keeps teams in creation order so new players fill the oldest
// team that still has room.
type roster struct {
	perTeam int
	teams   []*Team
	next    int
}

func newRoster(perTeam int) *roster {
	return &roster{perTeam: perTeam}
}

func (r *roster) assign(p *Player) *Team {
	for _, team := range r.teams {
		if team.Size() < r.perTeam {
			team.Add(p)
			return team
		}
	}

	r.next++
	team := NewTeam(ids.TeamID(r.next))
	r.teams = append(r.teams, team)
	team.Add(p)
	return team
}

func (r *roster) leave(p *Player) {
	if opt.IsNone(p.TeamID) {
		return
	}
	id := p.TeamID.Value
	for i, team := range r.teams {
		if team.ID != id {
			continue
		}
		team.Remove(p)
		if team.Size() == 0 {
			r.teams = append(r.teams[:i], r.teams[i+1:]...)
		}
		return
	}
}

func (r *roster) byID(id string) *Team {
	for _, team := range r.teams {
		if team.ID == id {
			return team
		}
	}
	return nil
}
