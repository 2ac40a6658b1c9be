package game

import (
	"github.com/samber/lo"
)

type Team string

const (
	TeamRed  Team = "red"
	TeamBlue Team = "blue"
)

// TeamConfig is the caller-supplied assignment policy for a team-battle
// match: "auto" shuffles and alternates, "manual" applies a player→team
// mapping.
type TeamConfig struct {
	Mode  string          `json:"mode"`
	Teams map[string]Team `json:"teams"`
}

func assignTeamsAuto(players []*Player) {
	shuffled := lo.Shuffle(append([]*Player{}, players...))
	for i, p := range shuffled {
		if i%2 == 0 {
			p.team = TeamRed
		} else {
			p.team = TeamBlue
		}
	}
}

// assignTeamsManual maps by player id; anyone unmapped (or mapped to an
// unknown label) lands on red so nobody sits out.
func assignTeamsManual(players []*Player, mapping map[string]Team) {
	for _, p := range players {
		switch mapping[p.id] {
		case TeamBlue:
			p.team = TeamBlue
		default:
			p.team = TeamRed
		}
	}
}

func clearTeams(players []*Player) {
	for _, p := range players {
		p.team = ""
	}
}

// balancedTeam picks the smaller team for a mid-match join, red on ties.
func balancedTeam(players []*Player) Team {
	reds := lo.CountBy(players, func(p *Player) bool { return p.team == TeamRed })
	blues := lo.CountBy(players, func(p *Player) bool { return p.team == TeamBlue })
	if reds <= blues {
		return TeamRed
	}
	return TeamBlue
}
