package brackets

import (
	"context"

	"github.com/Dosada05/card-tournaments/models"
	"github.com/google/uuid"
)

type SingleEliminationGenerator struct{}

func NewSingleEliminationGenerator() Generator {
	return &SingleEliminationGenerator{}
}

func (g *SingleEliminationGenerator) Name() string {
	return "SingleElimination"
}

// Generate pairs consecutive players into round 1 and pre-creates every
// later round with empty player slots, ceil(previous/2) matches per round,
// down to a single final. With an odd player count the last round 1 match
// gets a null player2 (a bye). The bye player is NOT advanced automatically;
// the match stays PENDING until an operator completes it.
func (g *SingleEliminationGenerator) Generate(ctx context.Context, params GenerateParams) ([]*models.Match, error) {
	players := params.Players
	n := len(players)
	if n < 2 {
		return nil, ErrNotEnoughPlayers
	}

	matches := make([]*models.Match, 0, n)

	round := 1
	matchNumber := 1
	for i := 0; i < n; i += 2 {
		m := newPendingMatch(params.TournamentID, round, matchNumber)
		p1 := players[i]
		m.Player1ID = &p1
		if i+1 < n {
			p2 := players[i+1]
			m.Player2ID = &p2
		}
		matches = append(matches, m)
		matchNumber++
	}

	// Placeholder rounds, filled as winners advance.
	remaining := (n + 1) / 2
	round++
	for remaining > 1 {
		matchesInRound := (remaining + 1) / 2
		for mn := 1; mn <= matchesInRound; mn++ {
			matches = append(matches, newPendingMatch(params.TournamentID, round, mn))
		}
		remaining = matchesInRound
		round++
	}

	return matches, nil
}

func newPendingMatch(tournamentID string, round, matchNumber int) *models.Match {
	return &models.Match{
		ID:           uuid.NewString(),
		TournamentID: tournamentID,
		RoundNumber:  round,
		MatchNumber:  matchNumber,
		Player1Score: 0,
		Player2Score: 0,
		Status:       models.MatchStatusPending,
	}
}
