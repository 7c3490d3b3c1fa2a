package brackets

import (
	"context"

	"github.com/Dosada05/card-tournaments/models"
)

type RoundRobinGenerator struct{}

func NewRoundRobinGenerator() Generator {
	return &RoundRobinGenerator{}
}

func (g *RoundRobinGenerator) Name() string {
	return "RoundRobin"
}

// Generate emits one match for every unordered player pair (i < j), in
// index order, all under round 1. Round robin has no progression: standings
// are an aggregation over completed matches, computed elsewhere.
func (g *RoundRobinGenerator) Generate(ctx context.Context, params GenerateParams) ([]*models.Match, error) {
	players := params.Players
	n := len(players)
	if n < 2 {
		return nil, ErrNotEnoughPlayers
	}

	matches := make([]*models.Match, 0, n*(n-1)/2)
	matchNumber := 1
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			m := newPendingMatch(params.TournamentID, 1, matchNumber)
			p1 := players[i]
			p2 := players[j]
			m.Player1ID = &p1
			m.Player2ID = &p2
			matches = append(matches, m)
			matchNumber++
		}
	}

	return matches, nil
}
