package brackets

import (
	"context"
	"errors"

	"github.com/Dosada05/card-tournaments/models"
)

// ErrNotEnoughPlayers is returned when fewer than two players are supplied
// for bracket generation.
var ErrNotEnoughPlayers = errors.New("not enough players to generate a bracket (minimum 2)")

// GenerateParams carries the input of a generation run: the owning
// tournament and the seeded player order. Pairing follows the given order;
// callers control fairness by shuffling (or not) before calling.
type GenerateParams struct {
	TournamentID string
	Players      []string
}

type Generator interface {
	// Generate builds the full initial match set for a tournament. The
	// returned matches are not persisted and are ordered by round, then
	// match number.
	Generate(ctx context.Context, params GenerateParams) ([]*models.Match, error)

	Name() string
}

// ForFormat returns the generator for a tournament format.
//
// DOUBLE_ELIMINATION degrades to single-elimination semantics: a losers'
// bracket is not implemented, and inventing one here would silently change
// persisted bracket shapes. Unknown formats fall back to single elimination
// as well.
func ForFormat(format models.TournamentFormat) Generator {
	switch format {
	case models.FormatRoundRobin:
		return NewRoundRobinGenerator()
	case models.FormatSingleElimination, models.FormatDoubleElimination:
		return NewSingleEliminationGenerator()
	default:
		return NewSingleEliminationGenerator()
	}
}
