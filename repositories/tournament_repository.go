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
	ErrTournamentNotFound    = errors.New("tournament not found")
	ErrTournamentInvalidCard = errors.New("invalid card reference")
	ErrTournamentInUse       = errors.New("tournament is in use (registrations/matches exist)")
)

type ListTournamentsFilter struct {
	CardID *int64
	Status *models.TournamentStatus
	Limit  int
	Offset int
}

type TournamentRepository interface {
	Create(ctx context.Context, tournament *models.Tournament) error
	GetByID(ctx context.Context, id string) (*models.Tournament, error)
	List(ctx context.Context, filter ListTournamentsFilter) ([]models.Tournament, error)
	Update(ctx context.Context, tournament *models.Tournament) error
	UpdateStatus(ctx context.Context, exec SQLExecutor, id string, status models.TournamentStatus) error
	Delete(ctx context.Context, exec SQLExecutor, id string) error
	// ListOngoingElimination returns ONGOING tournaments whose format uses
	// an elimination bracket, for the completion reconciler.
	ListOngoingElimination(ctx context.Context) ([]*models.Tournament, error)
}

type postgresTournamentRepository struct {
	db *sql.DB
}

func NewPostgresTournamentRepository(db *sql.DB) TournamentRepository {
	return &postgresTournamentRepository{db: db}
}

func (r *postgresTournamentRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

const tournamentColumns = `
	id, card_id, name, description, format, status, entry_fee_amount,
	max_participants, start_date, end_date, created_at, updated_at`

func (r *postgresTournamentRepository) Create(ctx context.Context, t *models.Tournament) error {
	query := `
		INSERT INTO tournaments (
			id, card_id, name, description, format, status,
			entry_fee_amount, max_participants, start_date, end_date
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		t.ID, t.CardID, t.Name, t.Description, t.Format, t.Status,
		t.EntryFeeAmount, t.MaxParticipants, t.StartDate, t.EndDate,
	).Scan(&t.CreatedAt, &t.UpdatedAt)

	return r.handleTournamentError(err)
}

func (r *postgresTournamentRepository) GetByID(ctx context.Context, id string) (*models.Tournament, error) {
	query := `SELECT` + tournamentColumns + ` FROM tournaments WHERE id = $1`

	t := &models.Tournament{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&t.ID, &t.CardID, &t.Name, &t.Description, &t.Format, &t.Status,
		&t.EntryFeeAmount, &t.MaxParticipants, &t.StartDate, &t.EndDate,
		&t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}
	return t, nil
}

func (r *postgresTournamentRepository) List(ctx context.Context, filter ListTournamentsFilter) ([]models.Tournament, error) {
	query := `
		SELECT t.id, t.card_id, t.name, t.description, t.format, t.status,
		       t.entry_fee_amount, t.max_participants, t.start_date, t.end_date,
		       t.created_at, t.updated_at,
		       (SELECT count(*) FROM registrations r WHERE r.tournament_id = t.id) AS registration_count
		FROM tournaments t
		WHERE 1=1`

	args := []interface{}{}
	argID := 1

	if filter.CardID != nil {
		query += fmt.Sprintf(" AND t.card_id = $%d", argID)
		args = append(args, *filter.CardID)
		argID++
	}
	if filter.Status != nil {
		query += fmt.Sprintf(" AND t.status = $%d", argID)
		args = append(args, *filter.Status)
		argID++
	}

	query += " ORDER BY t.created_at DESC"

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argID)
		args = append(args, filter.Limit)
		argID++
	}
	if filter.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argID)
		args = append(args, filter.Offset)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tournaments := make([]models.Tournament, 0)
	for rows.Next() {
		var t models.Tournament
		if scanErr := rows.Scan(
			&t.ID, &t.CardID, &t.Name, &t.Description, &t.Format, &t.Status,
			&t.EntryFeeAmount, &t.MaxParticipants, &t.StartDate, &t.EndDate,
			&t.CreatedAt, &t.UpdatedAt, &t.RegistrationCount,
		); scanErr != nil {
			return nil, scanErr
		}
		tournaments = append(tournaments, t)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return tournaments, nil
}

func (r *postgresTournamentRepository) Update(ctx context.Context, t *models.Tournament) error {
	query := `
		UPDATE tournaments SET
			card_id = $1,
			name = $2,
			description = $3,
			format = $4,
			entry_fee_amount = $5,
			max_participants = $6,
			start_date = $7,
			end_date = $8,
			updated_at = now()
		WHERE id = $9`

	result, err := r.db.ExecContext(ctx, query,
		t.CardID, t.Name, t.Description, t.Format,
		t.EntryFeeAmount, t.MaxParticipants, t.StartDate, t.EndDate,
		t.ID,
	)
	if err != nil {
		return r.handleTournamentError(err)
	}
	return checkAffectedRows(result, ErrTournamentNotFound)
}

func (r *postgresTournamentRepository) UpdateStatus(ctx context.Context, exec SQLExecutor, id string, status models.TournamentStatus) error {
	executor := r.getExecutor(exec)
	query := `UPDATE tournaments SET status = $1, updated_at = now() WHERE id = $2`
	result, err := executor.ExecContext(ctx, query, status, id)
	if err != nil {
		return r.handleTournamentError(err)
	}
	return checkAffectedRows(result, ErrTournamentNotFound)
}

func (r *postgresTournamentRepository) Delete(ctx context.Context, exec SQLExecutor, id string) error {
	executor := r.getExecutor(exec)
	result, err := executor.ExecContext(ctx, `DELETE FROM tournaments WHERE id = $1`, id)
	if err != nil {
		return r.handleTournamentError(err)
	}
	return checkAffectedRows(result, ErrTournamentNotFound)
}

func (r *postgresTournamentRepository) ListOngoingElimination(ctx context.Context) ([]*models.Tournament, error) {
	query := `SELECT` + tournamentColumns + `
		FROM tournaments
		WHERE status = $1 AND format <> $2`

	rows, err := r.db.QueryContext(ctx, query, models.TournamentStatusOngoing, models.FormatRoundRobin)
	if err != nil {
		return nil, fmt.Errorf("failed to query ongoing elimination tournaments: %w", err)
	}
	defer rows.Close()

	var tournaments []*models.Tournament
	for rows.Next() {
		var t models.Tournament
		if scanErr := rows.Scan(
			&t.ID, &t.CardID, &t.Name, &t.Description, &t.Format, &t.Status,
			&t.EntryFeeAmount, &t.MaxParticipants, &t.StartDate, &t.EndDate,
			&t.CreatedAt, &t.UpdatedAt,
		); scanErr != nil {
			return nil, fmt.Errorf("failed to scan tournament row: %w", scanErr)
		}
		tournaments = append(tournaments, &t)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during tournament rows iteration: %w", err)
	}
	return tournaments, nil
}

func (r *postgresTournamentRepository) handleTournamentError(err error) error {
	if err == nil {
		return nil
	}
	if pqErr, ok := err.(*pq.Error); ok {
		if pqErr.Code == "23503" { // foreign_key_violation
			switch pqErr.Constraint {
			case "tournaments_card_id_fkey":
				return ErrTournamentInvalidCard
			default:
				return ErrTournamentInUse
			}
		}
	}
	return err
}
