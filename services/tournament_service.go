package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Dosada05/card-tournaments/models"
	"github.com/Dosada05/card-tournaments/repositories"
	"github.com/google/uuid"
)

type CreateTournamentInput struct {
	CardID          *int64                  `json:"card_id"`
	Name            string                  `json:"name"`
	Description     *string                 `json:"description"`
	Format          models.TournamentFormat `json:"format"`
	EntryFeeAmount  string                  `json:"entry_fee_amount"`
	MaxParticipants int                     `json:"max_participants"`
	StartDate       time.Time               `json:"start_date"`
	EndDate         time.Time               `json:"end_date"`
}

type UpdateTournamentInput struct {
	CardID          *int64                   `json:"card_id"`
	Name            *string                  `json:"name"`
	Description     *string                  `json:"description"`
	Format          *models.TournamentFormat `json:"format"`
	EntryFeeAmount  *string                  `json:"entry_fee_amount"`
	MaxParticipants *int                     `json:"max_participants"`
	StartDate       *time.Time               `json:"start_date"`
	EndDate         *time.Time               `json:"end_date"`
}

type TournamentService interface {
	CreateTournament(ctx context.Context, input CreateTournamentInput) (*models.Tournament, error)
	GetTournamentByID(ctx context.Context, id string) (*models.Tournament, error)
	ListTournaments(ctx context.Context, filter repositories.ListTournamentsFilter) ([]models.Tournament, error)
	UpdateTournament(ctx context.Context, id string, input UpdateTournamentInput) (*models.Tournament, error)
	UpdateTournamentStatus(ctx context.Context, id string, status models.TournamentStatus) (*models.Tournament, error)
	DeleteTournament(ctx context.Context, id string) error
	ListResults(ctx context.Context, tournamentID string) ([]*models.TournamentResult, error)
	// CompleteFinishedTournaments scans ONGOING elimination tournaments and
	// finalizes those whose final match is completed: records placements
	// and flips the status to COMPLETED. Run periodically from main.
	CompleteFinishedTournaments(ctx context.Context) error
}

type tournamentService struct {
	tournamentRepo repositories.TournamentRepository
	matchRepo      repositories.MatchRepository
	resultRepo     repositories.ResultRepository
	logger         *slog.Logger
}

func NewTournamentService(
	tournamentRepo repositories.TournamentRepository,
	matchRepo repositories.MatchRepository,
	resultRepo repositories.ResultRepository,
	logger *slog.Logger,
) TournamentService {
	return &tournamentService{
		tournamentRepo: tournamentRepo,
		matchRepo:      matchRepo,
		resultRepo:     resultRepo,
		logger:         logger,
	}
}

func (s *tournamentService) CreateTournament(ctx context.Context, input CreateTournamentInput) (*models.Tournament, error) {
	if input.Name == "" {
		return nil, ErrTournamentNameRequired
	}
	if !input.Format.Valid() {
		return nil, ErrTournamentInvalidFormat
	}
	if input.MaxParticipants <= 0 {
		return nil, ErrTournamentInvalidCapacity
	}
	if !input.EndDate.After(input.StartDate) {
		return nil, ErrTournamentInvalidDateRange
	}

	fee := input.EntryFeeAmount
	if fee == "" {
		fee = "0"
	}

	tournament := &models.Tournament{
		ID:              uuid.NewString(),
		CardID:          input.CardID,
		Name:            input.Name,
		Description:     input.Description,
		Format:          input.Format,
		Status:          models.TournamentStatusUpcoming,
		EntryFeeAmount:  fee,
		MaxParticipants: input.MaxParticipants,
		StartDate:       input.StartDate,
		EndDate:         input.EndDate,
	}

	if err := s.tournamentRepo.Create(ctx, tournament); err != nil {
		if errors.Is(err, repositories.ErrTournamentInvalidCard) {
			return nil, ErrCardNotFound
		}
		return nil, fmt.Errorf("failed to create tournament: %w", err)
	}
	return tournament, nil
}

func (s *tournamentService) GetTournamentByID(ctx context.Context, id string) (*models.Tournament, error) {
	tournament, err := s.tournamentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to load tournament %s: %w", id, err)
	}
	return tournament, nil
}

func (s *tournamentService) ListTournaments(ctx context.Context, filter repositories.ListTournamentsFilter) ([]models.Tournament, error) {
	tournaments, err := s.tournamentRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list tournaments: %w", err)
	}
	return tournaments, nil
}

func (s *tournamentService) UpdateTournament(ctx context.Context, id string, input UpdateTournamentInput) (*models.Tournament, error) {
	tournament, err := s.GetTournamentByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.CardID != nil {
		tournament.CardID = input.CardID
	}
	if input.Name != nil {
		if *input.Name == "" {
			return nil, ErrTournamentNameRequired
		}
		tournament.Name = *input.Name
	}
	if input.Description != nil {
		tournament.Description = input.Description
	}
	if input.Format != nil {
		if !input.Format.Valid() {
			return nil, ErrTournamentInvalidFormat
		}
		tournament.Format = *input.Format
	}
	if input.EntryFeeAmount != nil {
		tournament.EntryFeeAmount = *input.EntryFeeAmount
	}
	if input.MaxParticipants != nil {
		if *input.MaxParticipants <= 0 {
			return nil, ErrTournamentInvalidCapacity
		}
		tournament.MaxParticipants = *input.MaxParticipants
	}
	if input.StartDate != nil {
		tournament.StartDate = *input.StartDate
	}
	if input.EndDate != nil {
		tournament.EndDate = *input.EndDate
	}
	if !tournament.EndDate.After(tournament.StartDate) {
		return nil, ErrTournamentInvalidDateRange
	}

	if err := s.tournamentRepo.Update(ctx, tournament); err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to update tournament %s: %w", id, err)
	}
	return tournament, nil
}

// validStatusTransitions holds the allowed edges of the tournament
// lifecycle. CANCELLED is reachable from any non-terminal state.
var validStatusTransitions = map[models.TournamentStatus][]models.TournamentStatus{
	models.TournamentStatusUpcoming: {models.TournamentStatusOngoing, models.TournamentStatusCancelled},
	models.TournamentStatusOngoing:  {models.TournamentStatusCompleted, models.TournamentStatusCancelled},
}

func (s *tournamentService) UpdateTournamentStatus(ctx context.Context, id string, status models.TournamentStatus) (*models.Tournament, error) {
	if !status.Valid() {
		return nil, ErrTournamentInvalidStatus
	}

	tournament, err := s.GetTournamentByID(ctx, id)
	if err != nil {
		return nil, err
	}

	allowed := false
	for _, next := range validStatusTransitions[tournament.Status] {
		if next == status {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, ErrTournamentInvalidStatusTransition
	}

	if err := s.tournamentRepo.UpdateStatus(ctx, nil, id, status); err != nil {
		return nil, fmt.Errorf("failed to update tournament %s status: %w", id, err)
	}
	tournament.Status = status
	return tournament, nil
}

func (s *tournamentService) DeleteTournament(ctx context.Context, id string) error {
	err := s.tournamentRepo.Delete(ctx, nil, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return ErrTournamentNotFound
		}
		return fmt.Errorf("failed to delete tournament %s: %w", id, err)
	}
	return nil
}

func (s *tournamentService) ListResults(ctx context.Context, tournamentID string) ([]*models.TournamentResult, error) {
	if _, err := s.GetTournamentByID(ctx, tournamentID); err != nil {
		return nil, err
	}
	results, err := s.resultRepo.ListByTournament(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list results for tournament %s: %w", tournamentID, err)
	}
	return results, nil
}

func (s *tournamentService) CompleteFinishedTournaments(ctx context.Context) error {
	tournaments, err := s.tournamentRepo.ListOngoingElimination(ctx)
	if err != nil {
		return fmt.Errorf("failed to list ongoing tournaments: %w", err)
	}

	for _, tournament := range tournaments {
		if err := s.completeIfFinished(ctx, tournament); err != nil {
			// One stuck tournament must not block the rest of the sweep.
			s.logger.Error("failed to finalize tournament",
				slog.String("tournament_id", tournament.ID),
				slog.Any("error", err),
			)
		}
	}
	return nil
}

func (s *tournamentService) completeIfFinished(ctx context.Context, tournament *models.Tournament) error {
	matches, err := s.matchRepo.ListByTournament(ctx, tournament.ID, nil, nil)
	if err != nil {
		return fmt.Errorf("failed to list matches: %w", err)
	}
	if len(matches) == 0 {
		return nil
	}

	final := finalMatch(matches)
	if final == nil || final.Status != models.MatchStatusCompleted || final.WinnerID == nil {
		return nil
	}

	champion := *final.WinnerID
	if err := s.resultRepo.Create(ctx, nil, &models.TournamentResult{
		ID:           uuid.NewString(),
		TournamentID: tournament.ID,
		UserID:       champion,
		Placement:    1,
	}); err != nil && !errors.Is(err, repositories.ErrResultConflict) {
		return fmt.Errorf("failed to record champion: %w", err)
	}

	if runnerUp := finalLoser(final); runnerUp != nil {
		if err := s.resultRepo.Create(ctx, nil, &models.TournamentResult{
			ID:           uuid.NewString(),
			TournamentID: tournament.ID,
			UserID:       *runnerUp,
			Placement:    2,
		}); err != nil && !errors.Is(err, repositories.ErrResultConflict) {
			return fmt.Errorf("failed to record runner-up: %w", err)
		}
	}

	if err := s.tournamentRepo.UpdateStatus(ctx, nil, tournament.ID, models.TournamentStatusCompleted); err != nil {
		return fmt.Errorf("failed to mark tournament completed: %w", err)
	}

	s.logger.Info("tournament completed",
		slog.String("tournament_id", tournament.ID),
		slog.String("winner_id", champion),
	)
	return nil
}

// finalMatch returns the single match of the highest round, or nil if the
// bracket shape is unexpected.
func finalMatch(matches []*models.Match) *models.Match {
	maxRound := 0
	for _, m := range matches {
		if m.RoundNumber > maxRound {
			maxRound = m.RoundNumber
		}
	}
	var final *models.Match
	count := 0
	for _, m := range matches {
		if m.RoundNumber == maxRound {
			final = m
			count++
		}
	}
	if count != 1 {
		return nil
	}
	return final
}

func finalLoser(final *models.Match) *string {
	if final.WinnerID == nil {
		return nil
	}
	if final.Player1ID != nil && *final.Player1ID != *final.WinnerID {
		return final.Player1ID
	}
	if final.Player2ID != nil && *final.Player2ID != *final.WinnerID {
		return final.Player2ID
	}
	return nil
}
