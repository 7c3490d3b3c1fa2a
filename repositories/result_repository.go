package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/card-tournaments/models"
	"github.com/lib/pq"
)

var (
	ErrResultNotFound = errors.New("tournament result not found")
	ErrResultConflict = errors.New("placement already recorded for this tournament")
)

type ResultRepository interface {
	Create(ctx context.Context, exec SQLExecutor, result *models.TournamentResult) error
	// ListByTournament returns placements in ascending order with user
	// details attached.
	ListByTournament(ctx context.Context, tournamentID string) ([]*models.TournamentResult, error)
}

type postgresResultRepository struct {
	db *sql.DB
}

func NewPostgresResultRepository(db *sql.DB) ResultRepository {
	return &postgresResultRepository{db: db}
}

func (r *postgresResultRepository) Create(ctx context.Context, exec SQLExecutor, result *models.TournamentResult) error {
	executor := SQLExecutor(r.db)
	if exec != nil {
		executor = exec
	}

	query := `
		INSERT INTO tournament_results (id, tournament_id, user_id, placement)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at`

	err := executor.QueryRowContext(ctx, query,
		result.ID, result.TournamentID, result.UserID, result.Placement,
	).Scan(&result.CreatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return ErrResultConflict
		}
		return fmt.Errorf("failed to create tournament result: %w", err)
	}
	return nil
}

func (r *postgresResultRepository) ListByTournament(ctx context.Context, tournamentID string) ([]*models.TournamentResult, error) {
	query := `
		SELECT tr.id, tr.tournament_id, tr.user_id, tr.placement, tr.created_at,
		       u.id, u.name, u.email, u.created_at
		FROM tournament_results tr
		JOIN users u ON u.id = tr.user_id
		WHERE tr.tournament_id = $1
		ORDER BY tr.placement ASC`

	rows, err := r.db.QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query results for tournament %s: %w", tournamentID, err)
	}
	defer rows.Close()

	results := make([]*models.TournamentResult, 0)
	for rows.Next() {
		var res models.TournamentResult
		var user models.User
		if scanErr := rows.Scan(
			&res.ID, &res.TournamentID, &res.UserID, &res.Placement, &res.CreatedAt,
			&user.ID, &user.Name, &user.Email, &user.CreatedAt,
		); scanErr != nil {
			return nil, fmt.Errorf("failed to scan result row: %w", scanErr)
		}
		res.User = &user
		results = append(results, &res)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during result rows iteration: %w", err)
	}
	return results, nil
}
