package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/Dosada05/card-tournaments/brackets"
	"github.com/Dosada05/card-tournaments/models"
	"github.com/Dosada05/card-tournaments/repositories"
	"golang.org/x/sync/errgroup"
)

// BracketView is the full bracket payload for one tournament: the match
// grid plus the confirmed roster, enough for a client to render names.
type BracketView struct {
	Tournament *models.Tournament     `json:"tournament"`
	Matches    []*models.Match        `json:"matches"`
	Players    []*models.Registration `json:"players"`
}

// BracketService is the tournament lifecycle controller: it validates the
// roster, seeds it, dispatches to the right generator, persists the bracket
// in one batch and flips the tournament to ONGOING.
type BracketService interface {
	// StartTournament generates a bracket from a caller-supplied player
	// order (explicit seeding). Returns the number of matches created.
	StartTournament(ctx context.Context, tournamentID string, playerOrder []string) (int, error)
	// GenerateBrackets is the auto-seeding path: it loads confirmed
	// registrations and shuffles them before generation.
	GenerateBrackets(ctx context.Context, tournamentID string) (int, error)
	GetBracketView(ctx context.Context, tournamentID string) (*BracketView, error)
}

type bracketService struct {
	tournamentRepo   repositories.TournamentRepository
	registrationRepo repositories.RegistrationRepository
	matchRepo        repositories.MatchRepository
	hub              *brackets.Hub
	rnd              *rand.Rand
	logger           *slog.Logger
}

func NewBracketService(
	tournamentRepo repositories.TournamentRepository,
	registrationRepo repositories.RegistrationRepository,
	matchRepo repositories.MatchRepository,
	hub *brackets.Hub,
	rnd *rand.Rand,
	logger *slog.Logger,
) BracketService {
	return &bracketService{
		tournamentRepo:   tournamentRepo,
		registrationRepo: registrationRepo,
		matchRepo:        matchRepo,
		hub:              hub,
		rnd:              rnd,
		logger:           logger,
	}
}

func (s *bracketService) StartTournament(ctx context.Context, tournamentID string, playerOrder []string) (int, error) {
	tournament, err := s.loadTournament(ctx, tournamentID)
	if err != nil {
		return 0, err
	}

	if err := s.ensureNoBracket(ctx, tournamentID, ErrTournamentAlreadyStarted); err != nil {
		return 0, err
	}

	if len(playerOrder) < 2 {
		return 0, ErrInsufficientPlayers
	}

	return s.generateAndPersist(ctx, tournament, playerOrder)
}

func (s *bracketService) GenerateBrackets(ctx context.Context, tournamentID string) (int, error) {
	tournament, err := s.loadTournament(ctx, tournamentID)
	if err != nil {
		return 0, err
	}

	if err := s.ensureNoBracket(ctx, tournamentID, ErrBracketsAlreadyExist); err != nil {
		return 0, err
	}

	confirmed := models.RegistrationStatusConfirmed
	regs, err := s.registrationRepo.ListByTournament(ctx, tournamentID, &confirmed)
	if err != nil {
		return 0, fmt.Errorf("failed to list confirmed registrations for tournament %s: %w", tournamentID, err)
	}

	// Real registrations are a hard precondition; nothing is synthesized
	// when the roster is short.
	if len(regs) < 2 {
		return 0, ErrInsufficientPlayers
	}

	players := make([]string, len(regs))
	for i, reg := range regs {
		players[i] = reg.UserID
	}

	return s.generateAndPersist(ctx, tournament, brackets.Shuffle(players, s.rnd))
}

func (s *bracketService) generateAndPersist(ctx context.Context, tournament *models.Tournament, players []string) (int, error) {
	// The no-bracket guard cannot catch a cancelled or completed tournament
	// that never had matches; only UPCOMING may transition to ONGOING.
	if tournament.Status != models.TournamentStatusUpcoming {
		return 0, ErrTournamentInvalidStatusTransition
	}

	generator := brackets.ForFormat(tournament.Format)
	s.logger.Info("generating bracket",
		slog.String("tournament_id", tournament.ID),
		slog.String("format", string(tournament.Format)),
		slog.String("generator", generator.Name()),
		slog.Int("players", len(players)),
	)

	matches, err := generator.Generate(ctx, brackets.GenerateParams{
		TournamentID: tournament.ID,
		Players:      players,
	})
	if err != nil {
		if errors.Is(err, brackets.ErrNotEnoughPlayers) {
			return 0, ErrInsufficientPlayers
		}
		return 0, fmt.Errorf("failed to generate bracket for tournament %s: %w", tournament.ID, err)
	}

	if err := s.matchRepo.CreateBatch(ctx, matches); err != nil {
		return 0, fmt.Errorf("failed to persist bracket for tournament %s: %w", tournament.ID, err)
	}

	if err := s.tournamentRepo.UpdateStatus(ctx, nil, tournament.ID, models.TournamentStatusOngoing); err != nil {
		return 0, fmt.Errorf("failed to mark tournament %s ongoing: %w", tournament.ID, err)
	}

	s.hub.BroadcastToRoom(tournamentRoom(tournament.ID), brackets.Message{
		Type:    brackets.EventBracketGenerated,
		Payload: map[string]interface{}{"tournament_id": tournament.ID, "matches_created": len(matches)},
	})

	return len(matches), nil
}

// GetBracketView loads the tournament, its matches and the confirmed roster
// in parallel.
func (s *bracketService) GetBracketView(ctx context.Context, tournamentID string) (*BracketView, error) {
	view := &BracketView{}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		tournament, err := s.loadTournament(gCtx, tournamentID)
		if err != nil {
			return err
		}
		view.Tournament = tournament
		return nil
	})

	g.Go(func() error {
		matches, err := s.matchRepo.ListByTournament(gCtx, tournamentID, nil, nil)
		if err != nil {
			return fmt.Errorf("failed to list matches for tournament %s: %w", tournamentID, err)
		}
		view.Matches = matches
		return nil
	})

	g.Go(func() error {
		confirmed := models.RegistrationStatusConfirmed
		regs, err := s.registrationRepo.ListByTournament(gCtx, tournamentID, &confirmed)
		if err != nil {
			return fmt.Errorf("failed to list players for tournament %s: %w", tournamentID, err)
		}
		view.Players = regs
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return view, nil
}

func (s *bracketService) loadTournament(ctx context.Context, tournamentID string) (*models.Tournament, error) {
	tournament, err := s.tournamentRepo.GetByID(ctx, tournamentID)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to load tournament %s: %w", tournamentID, err)
	}
	return tournament, nil
}

func (s *bracketService) ensureNoBracket(ctx context.Context, tournamentID string, conflict error) error {
	existing, err := s.matchRepo.ListByTournament(ctx, tournamentID, nil, nil)
	if err != nil {
		return fmt.Errorf("failed to check existing bracket for tournament %s: %w", tournamentID, err)
	}
	if len(existing) > 0 {
		return conflict
	}
	return nil
}

func tournamentRoom(tournamentID string) string {
	return "tournament_" + tournamentID
}
