package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func makePlayers(n int) []*Player {
	players := make([]*Player, 0, n)
	for i := 0; i < n; i++ {
		players = append(players, &Player{id: string(rune('a' + i))})
	}
	return players
}

func teamCounts(players []*Player) (reds, blues int) {
	for _, p := range players {
		switch p.team {
		case TeamRed:
			reds++
		case TeamBlue:
			blues++
		}
	}
	return
}

func TestAssignTeamsAuto(t *testing.T) {
	t.Run("even count splits evenly", func(t *testing.T) {
		players := makePlayers(6)
		assignTeamsAuto(players)
		reds, blues := teamCounts(players)
		assert.Equal(t, 3, reds)
		assert.Equal(t, 3, blues)
	})

	t.Run("odd count differs by one", func(t *testing.T) {
		players := makePlayers(5)
		assignTeamsAuto(players)
		reds, blues := teamCounts(players)
		assert.Equal(t, 5, reds+blues)
		assert.LessOrEqual(t, reds-blues, 1)
		assert.GreaterOrEqual(t, reds-blues, -1)
	})
}

func TestAssignTeamsManual(t *testing.T) {
	players := makePlayers(3)
	assignTeamsManual(players, map[string]Team{
		"a": TeamBlue,
		"b": "green", // unknown label
	})

	assert.Equal(t, TeamBlue, players[0].team)
	assert.Equal(t, TeamRed, players[1].team)
	assert.Equal(t, TeamRed, players[2].team) // unmapped
}

func TestBalancedTeam(t *testing.T) {
	players := []*Player{
		{id: "a", team: TeamRed},
		{id: "b", team: TeamBlue},
		{id: "c", team: TeamBlue},
	}
	assert.Equal(t, TeamRed, balancedTeam(players))

	players = append(players, &Player{id: "d", team: TeamRed})
	assert.Equal(t, TeamRed, balancedTeam(players)) // red on ties

	players = append(players, &Player{id: "e", team: TeamRed})
	assert.Equal(t, TeamBlue, balancedTeam(players))
}

func TestClearTeams(t *testing.T) {
	players := makePlayers(2)
	assignTeamsAuto(players)
	clearTeams(players)
	for _, p := range players {
		assert.Empty(t, p.team)
	}
}
