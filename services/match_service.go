package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Dosada05/card-tournaments/brackets"
	"github.com/Dosada05/card-tournaments/models"
	"github.com/Dosada05/card-tournaments/repositories"
)

// UpdateMatchInput is a partial patch of one match; nil fields are left
// untouched.
type UpdateMatchInput struct {
	Player1ID    *string             `json:"player1_id"`
	Player2ID    *string             `json:"player2_id"`
	WinnerID     *string             `json:"winner_id"`
	Player1Score *int                `json:"player1_score"`
	Player2Score *int                `json:"player2_score"`
	Status       *models.MatchStatus `json:"status"`
}

type MatchService interface {
	GetMatchByID(ctx context.Context, matchID string) (*models.Match, error)
	// UpdateMatch patches the match and, when the patch completes it with a
	// winner, advances that winner into the next round as a side effect.
	UpdateMatch(ctx context.Context, matchID string, input UpdateMatchInput) (*models.Match, error)
}

type matchService struct {
	matchRepo repositories.MatchRepository
	hub       *brackets.Hub
	logger    *slog.Logger
}

func NewMatchService(matchRepo repositories.MatchRepository, hub *brackets.Hub, logger *slog.Logger) MatchService {
	return &matchService{
		matchRepo: matchRepo,
		hub:       hub,
		logger:    logger,
	}
}

func (s *matchService) GetMatchByID(ctx context.Context, matchID string) (*models.Match, error) {
	match, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to load match %s: %w", matchID, err)
	}
	return match, nil
}

func (s *matchService) UpdateMatch(ctx context.Context, matchID string, input UpdateMatchInput) (*models.Match, error) {
	match, err := s.GetMatchByID(ctx, matchID)
	if err != nil {
		return nil, err
	}

	if input.Player1ID != nil {
		match.Player1ID = input.Player1ID
	}
	if input.Player2ID != nil {
		match.Player2ID = input.Player2ID
	}
	if input.WinnerID != nil {
		match.WinnerID = input.WinnerID
	}
	if input.Player1Score != nil {
		match.Player1Score = *input.Player1Score
	}
	if input.Player2Score != nil {
		match.Player2Score = *input.Player2Score
	}
	if input.Status != nil {
		if !input.Status.Valid() {
			return nil, ErrMatchInvalidStatus
		}
		match.Status = *input.Status
	}

	if match.Player1Score < 0 || match.Player2Score < 0 {
		return nil, ErrMatchNegativeScore
	}
	if match.WinnerID != nil && !match.HasPlayer(*match.WinnerID) {
		return nil, ErrMatchInvalidWinner
	}

	if match.Status == models.MatchStatusCompleted && match.CompletedAt == nil {
		now := time.Now().UTC()
		match.CompletedAt = &now
	}

	if err := s.matchRepo.Update(ctx, match); err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to update match %s: %w", matchID, err)
	}

	// Advancement failures must not unwind the completed-match write: they
	// are logged and swallowed, leaving a bracket an operator can repair by
	// hand.
	if match.Status == models.MatchStatusCompleted && match.WinnerID != nil {
		if err := s.advanceWinner(ctx, match); err != nil {
			s.logger.Error("failed to advance winner",
				slog.String("match_id", match.ID),
				slog.String("tournament_id", match.TournamentID),
				slog.Any("error", err),
			)
		}
	}

	s.hub.BroadcastToRoom(tournamentRoom(match.TournamentID), brackets.Message{
		Type:    brackets.EventMatchUpdated,
		Payload: match,
	})

	return match, nil
}

// advanceWinner writes the winner of a completed match into its downstream
// slot. Completing the final has no downstream match and is a no-op here;
// the completion reconciler picks the tournament up from there. The slot
// write is not idempotency-guarded: re-completing a match overwrites the
// slot.
func (s *matchService) advanceWinner(ctx context.Context, completed *models.Match) error {
	adv := brackets.NextAdvancement(completed.RoundNumber, completed.MatchNumber)

	next, err := s.matchRepo.FindByPosition(ctx, completed.TournamentID, adv.Round, adv.MatchNumber)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			s.logger.Info("final match completed, no further advancement",
				slog.String("tournament_id", completed.TournamentID),
				slog.String("match_id", completed.ID),
			)
			return nil
		}
		return fmt.Errorf("failed to find next match at round %d match %d: %w", adv.Round, adv.MatchNumber, err)
	}

	if err := s.matchRepo.UpdateSlot(ctx, next.ID, adv.Slot, *completed.WinnerID); err != nil {
		return fmt.Errorf("failed to fill slot %d of match %s: %w", adv.Slot, next.ID, err)
	}

	s.logger.Info("winner advanced",
		slog.String("tournament_id", completed.TournamentID),
		slog.String("winner_id", *completed.WinnerID),
		slog.Int("next_round", adv.Round),
		slog.Int("next_match", adv.MatchNumber),
		slog.Int("slot", adv.Slot),
	)
	return nil
}
