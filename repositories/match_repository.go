package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Dosada05/card-tournaments/models"
	"github.com/lib/pq"
)

var (
	ErrMatchNotFound          = errors.New("match not found")
	ErrMatchTournamentInvalid = errors.New("match tournament conflict or invalid")
	ErrMatchPlayerInvalid     = errors.New("match player conflict or invalid")
	ErrMatchPositionConflict  = errors.New("match position already taken for this tournament and round")
)

type MatchRepository interface {
	// CreateBatch persists the full initial match set of a tournament in a
	// single transaction: readers see either no bracket or the whole one.
	CreateBatch(ctx context.Context, matches []*models.Match) error
	GetByID(ctx context.Context, id string) (*models.Match, error)
	// FindByPosition locates a match by its bracket coordinates.
	FindByPosition(ctx context.Context, tournamentID string, round, matchNumber int) (*models.Match, error)
	ListByTournament(ctx context.Context, tournamentID string, roundFilter *int, statusFilter *models.MatchStatus) ([]*models.Match, error)
	Update(ctx context.Context, match *models.Match) error
	// UpdateSlot writes a player into slot 1 or 2 of a match. The write is
	// deliberately unguarded: re-advancing the same source match overwrites
	// whatever the slot held.
	UpdateSlot(ctx context.Context, matchID string, slot int, playerID string) error
	DeleteByTournament(ctx context.Context, exec SQLExecutor, tournamentID string) error
}

type postgresMatchRepository struct {
	db *sql.DB
}

func NewPostgresMatchRepository(db *sql.DB) MatchRepository {
	return &postgresMatchRepository{db: db}
}

const matchColumns = `
	id, tournament_id, round_number, match_number, player1_id, player2_id,
	winner_id, player1_score, player2_score, status, created_at, updated_at, completed_at`

func (r *postgresMatchRepository) CreateBatch(ctx context.Context, matches []*models.Match) error {
	if len(matches) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction for match batch: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO matches
			(id, tournament_id, round_number, match_number, player1_id, player2_id,
			 winner_id, player1_score, player2_score, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at, updated_at`

	for _, m := range matches {
		err := tx.QueryRowContext(ctx, query,
			m.ID,
			m.TournamentID,
			m.RoundNumber,
			m.MatchNumber,
			m.Player1ID,
			m.Player2ID,
			m.WinnerID,
			m.Player1Score,
			m.Player2Score,
			m.Status,
		).Scan(&m.CreatedAt, &m.UpdatedAt)
		if err != nil {
			return r.handleMatchError(err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit match batch: %w", err)
	}
	return nil
}

func (r *postgresMatchRepository) GetByID(ctx context.Context, id string) (*models.Match, error) {
	query := `SELECT` + matchColumns + ` FROM matches WHERE id = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *postgresMatchRepository) FindByPosition(ctx context.Context, tournamentID string, round, matchNumber int) (*models.Match, error) {
	query := `SELECT` + matchColumns + `
		FROM matches
		WHERE tournament_id = $1 AND round_number = $2 AND match_number = $3`
	return r.scanOne(r.db.QueryRowContext(ctx, query, tournamentID, round, matchNumber))
}

func (r *postgresMatchRepository) ListByTournament(ctx context.Context, tournamentID string, roundFilter *int, statusFilter *models.MatchStatus) ([]*models.Match, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT` + matchColumns + ` FROM matches WHERE tournament_id = $1`)

	args := []interface{}{tournamentID}
	if roundFilter != nil {
		args = append(args, *roundFilter)
		fmt.Fprintf(&queryBuilder, " AND round_number = $%d", len(args))
	}
	if statusFilter != nil {
		args = append(args, *statusFilter)
		fmt.Fprintf(&queryBuilder, " AND status = $%d", len(args))
	}
	queryBuilder.WriteString(" ORDER BY round_number ASC, match_number ASC")

	rows, err := r.db.QueryContext(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query matches for tournament %s: %w", tournamentID, err)
	}
	defer rows.Close()

	matches := make([]*models.Match, 0)
	for rows.Next() {
		var m models.Match
		if scanErr := rows.Scan(
			&m.ID, &m.TournamentID, &m.RoundNumber, &m.MatchNumber,
			&m.Player1ID, &m.Player2ID, &m.WinnerID,
			&m.Player1Score, &m.Player2Score, &m.Status,
			&m.CreatedAt, &m.UpdatedAt, &m.CompletedAt,
		); scanErr != nil {
			return nil, fmt.Errorf("failed to scan match row: %w", scanErr)
		}
		matches = append(matches, &m)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during match rows iteration: %w", err)
	}
	return matches, nil
}

func (r *postgresMatchRepository) Update(ctx context.Context, m *models.Match) error {
	query := `
		UPDATE matches SET
			player1_id = $1,
			player2_id = $2,
			winner_id = $3,
			player1_score = $4,
			player2_score = $5,
			status = $6,
			completed_at = $7,
			updated_at = now()
		WHERE id = $8
		RETURNING updated_at`

	err := r.db.QueryRowContext(ctx, query,
		m.Player1ID, m.Player2ID, m.WinnerID,
		m.Player1Score, m.Player2Score, m.Status, m.CompletedAt,
		m.ID,
	).Scan(&m.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrMatchNotFound
		}
		return r.handleMatchError(err)
	}
	return nil
}

func (r *postgresMatchRepository) UpdateSlot(ctx context.Context, matchID string, slot int, playerID string) error {
	column := "player1_id"
	if slot == 2 {
		column = "player2_id"
	}
	query := fmt.Sprintf(`UPDATE matches SET %s = $1, updated_at = now() WHERE id = $2`, column)

	result, err := r.db.ExecContext(ctx, query, playerID, matchID)
	if err != nil {
		return r.handleMatchError(err)
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func (r *postgresMatchRepository) DeleteByTournament(ctx context.Context, exec SQLExecutor, tournamentID string) error {
	executor := SQLExecutor(r.db)
	if exec != nil {
		executor = exec
	}
	_, err := executor.ExecContext(ctx, `DELETE FROM matches WHERE tournament_id = $1`, tournamentID)
	if err != nil {
		return fmt.Errorf("failed to delete matches for tournament %s: %w", tournamentID, err)
	}
	return nil
}

func (r *postgresMatchRepository) scanOne(row *sql.Row) (*models.Match, error) {
	m := &models.Match{}
	err := row.Scan(
		&m.ID, &m.TournamentID, &m.RoundNumber, &m.MatchNumber,
		&m.Player1ID, &m.Player2ID, &m.WinnerID,
		&m.Player1Score, &m.Player2Score, &m.Status,
		&m.CreatedAt, &m.UpdatedAt, &m.CompletedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to scan match: %w", err)
	}
	return m, nil
}

func (r *postgresMatchRepository) handleMatchError(err error) error {
	if err == nil {
		return nil
	}
	if pqErr, ok := err.(*pq.Error); ok {
		switch pqErr.Code {
		case "23505": // unique_violation
			if pqErr.Constraint == "matches_tournament_id_round_number_match_number_key" {
				return ErrMatchPositionConflict
			}
		case "23503": // foreign_key_violation
			switch pqErr.Constraint {
			case "matches_tournament_id_fkey":
				return ErrMatchTournamentInvalid
			case "matches_player1_id_fkey", "matches_player2_id_fkey", "matches_winner_id_fkey":
				return ErrMatchPlayerInvalid
			}
		}
	}
	return err
}
