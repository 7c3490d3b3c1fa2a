package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Dosada05/card-tournaments/models"
	"github.com/Dosada05/card-tournaments/repositories"
	"github.com/google/uuid"
)

type RegistrationService interface {
	// RegisterUser enrolls a user into an UPCOMING tournament. Entry fee
	// collection happens in the external payments service before this call.
	RegisterUser(ctx context.Context, tournamentID, userID string) (*models.Registration, error)
	// ListPlayers returns confirmed registrations with user details,
	// ordered by registration date.
	ListPlayers(ctx context.Context, tournamentID string) ([]*models.Registration, error)
	// CancelRegistration releases the roster slot. Only the registration's
	// owner or an admin may cancel it.
	CancelRegistration(ctx context.Context, registrationID, requesterID string, requesterIsAdmin bool) error
}

type registrationService struct {
	registrationRepo repositories.RegistrationRepository
	tournamentRepo   repositories.TournamentRepository
	userRepo         repositories.UserRepository
}

func NewRegistrationService(
	registrationRepo repositories.RegistrationRepository,
	tournamentRepo repositories.TournamentRepository,
	userRepo repositories.UserRepository,
) RegistrationService {
	return &registrationService{
		registrationRepo: registrationRepo,
		tournamentRepo:   tournamentRepo,
		userRepo:         userRepo,
	}
}

func (s *registrationService) RegisterUser(ctx context.Context, tournamentID, userID string) (*models.Registration, error) {
	tournament, err := s.tournamentRepo.GetByID(ctx, tournamentID)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to load tournament %s: %w", tournamentID, err)
	}

	if tournament.Status != models.TournamentStatusUpcoming {
		return nil, ErrRegistrationNotOpen
	}

	count, err := s.registrationRepo.CountByTournament(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to count registrations: %w", err)
	}
	if count >= tournament.MaxParticipants {
		return nil, ErrTournamentFull
	}

	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user %s: %w", userID, err)
	}

	// A cancelled row is reactivated in place; the unique constraint on
	// (user_id, tournament_id) forbids a second row for the same pair.
	existing, err := s.registrationRepo.FindByUserAndTournament(ctx, userID, tournamentID)
	if err == nil {
		if existing.Status != models.RegistrationStatusCancelled {
			return nil, ErrRegistrationConflict
		}
		if err := s.registrationRepo.UpdateStatus(ctx, existing.ID, models.RegistrationStatusConfirmed); err != nil {
			return nil, fmt.Errorf("failed to reactivate registration %s: %w", existing.ID, err)
		}
		existing.Status = models.RegistrationStatusConfirmed
		return existing, nil
	}
	if !errors.Is(err, repositories.ErrRegistrationNotFound) {
		return nil, fmt.Errorf("failed to look up registration for user %s: %w", userID, err)
	}

	reg := &models.Registration{
		ID:               uuid.NewString(),
		UserID:           userID,
		TournamentID:     tournamentID,
		Status:           models.RegistrationStatusConfirmed,
		RegistrationDate: time.Now().UTC(),
	}

	if err := s.registrationRepo.Create(ctx, reg); err != nil {
		if errors.Is(err, repositories.ErrRegistrationConflict) {
			return nil, ErrRegistrationConflict
		}
		return nil, fmt.Errorf("failed to create registration: %w", err)
	}
	return reg, nil
}

func (s *registrationService) ListPlayers(ctx context.Context, tournamentID string) ([]*models.Registration, error) {
	if _, err := s.tournamentRepo.GetByID(ctx, tournamentID); err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to load tournament %s: %w", tournamentID, err)
	}

	confirmed := models.RegistrationStatusConfirmed
	regs, err := s.registrationRepo.ListByTournament(ctx, tournamentID, &confirmed)
	if err != nil {
		return nil, fmt.Errorf("failed to list registrations for tournament %s: %w", tournamentID, err)
	}
	return regs, nil
}

func (s *registrationService) CancelRegistration(ctx context.Context, registrationID, requesterID string, requesterIsAdmin bool) error {
	reg, err := s.registrationRepo.GetByID(ctx, registrationID)
	if err != nil {
		if errors.Is(err, repositories.ErrRegistrationNotFound) {
			return ErrRegistrationNotFound
		}
		return fmt.Errorf("failed to load registration %s: %w", registrationID, err)
	}

	if reg.UserID != requesterID && !requesterIsAdmin {
		return ErrForbiddenOperation
	}

	tournament, err := s.tournamentRepo.GetByID(ctx, reg.TournamentID)
	if err != nil {
		return fmt.Errorf("failed to load tournament %s: %w", reg.TournamentID, err)
	}
	// Once the bracket exists the roster is frozen.
	if tournament.Status != models.TournamentStatusUpcoming {
		return ErrRegistrationNotOpen
	}

	if err := s.registrationRepo.UpdateStatus(ctx, registrationID, models.RegistrationStatusCancelled); err != nil {
		return fmt.Errorf("failed to cancel registration %s: %w", registrationID, err)
	}
	return nil
}
