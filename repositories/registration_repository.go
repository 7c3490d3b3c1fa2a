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
	ErrRegistrationNotFound          = errors.New("registration not found")
	ErrRegistrationConflict          = errors.New("user is already registered for this tournament")
	ErrRegistrationUserInvalid       = errors.New("registration user conflict or invalid")
	ErrRegistrationTournamentInvalid = errors.New("registration tournament conflict or invalid")
)

type RegistrationRepository interface {
	Create(ctx context.Context, reg *models.Registration) error
	GetByID(ctx context.Context, id string) (*models.Registration, error)
	FindByUserAndTournament(ctx context.Context, userID, tournamentID string) (*models.Registration, error)
	// ListByTournament returns registrations ordered by registration date,
	// optionally filtered by status, with user details attached.
	ListByTournament(ctx context.Context, tournamentID string, statusFilter *models.RegistrationStatus) ([]*models.Registration, error)
	// CountByTournament counts registrations holding a roster slot;
	// cancelled rows are kept for reactivation but do not count.
	CountByTournament(ctx context.Context, tournamentID string) (int, error)
	UpdateStatus(ctx context.Context, id string, status models.RegistrationStatus) error
	DeleteByTournament(ctx context.Context, exec SQLExecutor, tournamentID string) error
}

type postgresRegistrationRepository struct {
	db *sql.DB
}

func NewPostgresRegistrationRepository(db *sql.DB) RegistrationRepository {
	return &postgresRegistrationRepository{db: db}
}

func (r *postgresRegistrationRepository) Create(ctx context.Context, reg *models.Registration) error {
	query := `
		INSERT INTO registrations (id, user_id, tournament_id, status, registration_date)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`

	err := r.db.QueryRowContext(ctx, query,
		reg.ID, reg.UserID, reg.TournamentID, reg.Status, reg.RegistrationDate,
	).Scan(&reg.CreatedAt)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Code {
			case "23505": // unique_violation
				if pqErr.Constraint == "registrations_user_id_tournament_id_key" {
					return ErrRegistrationConflict
				}
			case "23503": // foreign_key_violation
				switch pqErr.Constraint {
				case "registrations_user_id_fkey":
					return ErrRegistrationUserInvalid
				case "registrations_tournament_id_fkey":
					return ErrRegistrationTournamentInvalid
				}
			}
		}
		return fmt.Errorf("failed to create registration: %w", err)
	}
	return nil
}

func (r *postgresRegistrationRepository) GetByID(ctx context.Context, id string) (*models.Registration, error) {
	query := `
		SELECT id, user_id, tournament_id, status, registration_date, created_at
		FROM registrations
		WHERE id = $1`

	reg := &models.Registration{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&reg.ID, &reg.UserID, &reg.TournamentID, &reg.Status,
		&reg.RegistrationDate, &reg.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRegistrationNotFound
		}
		return nil, fmt.Errorf("failed to scan registration %s: %w", id, err)
	}
	return reg, nil
}

func (r *postgresRegistrationRepository) FindByUserAndTournament(ctx context.Context, userID, tournamentID string) (*models.Registration, error) {
	query := `
		SELECT id, user_id, tournament_id, status, registration_date, created_at
		FROM registrations
		WHERE user_id = $1 AND tournament_id = $2`

	reg := &models.Registration{}
	err := r.db.QueryRowContext(ctx, query, userID, tournamentID).Scan(
		&reg.ID, &reg.UserID, &reg.TournamentID, &reg.Status,
		&reg.RegistrationDate, &reg.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRegistrationNotFound
		}
		return nil, fmt.Errorf("failed to scan registration for user %s: %w", userID, err)
	}
	return reg, nil
}

func (r *postgresRegistrationRepository) ListByTournament(ctx context.Context, tournamentID string, statusFilter *models.RegistrationStatus) ([]*models.Registration, error) {
	query := `
		SELECT r.id, r.user_id, r.tournament_id, r.status, r.registration_date, r.created_at,
		       u.id, u.name, u.email, u.created_at
		FROM registrations r
		JOIN users u ON u.id = r.user_id
		WHERE r.tournament_id = $1`

	args := []interface{}{tournamentID}
	if statusFilter != nil {
		query += " AND r.status = $2"
		args = append(args, *statusFilter)
	}
	query += " ORDER BY r.registration_date ASC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query registrations for tournament %s: %w", tournamentID, err)
	}
	defer rows.Close()

	regs := make([]*models.Registration, 0)
	for rows.Next() {
		var reg models.Registration
		var user models.User
		if scanErr := rows.Scan(
			&reg.ID, &reg.UserID, &reg.TournamentID, &reg.Status,
			&reg.RegistrationDate, &reg.CreatedAt,
			&user.ID, &user.Name, &user.Email, &user.CreatedAt,
		); scanErr != nil {
			return nil, fmt.Errorf("failed to scan registration row: %w", scanErr)
		}
		reg.User = &user
		regs = append(regs, &reg)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during registration rows iteration: %w", err)
	}
	return regs, nil
}

func (r *postgresRegistrationRepository) CountByTournament(ctx context.Context, tournamentID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT count(*) FROM registrations WHERE tournament_id = $1 AND status <> $2`,
		tournamentID, models.RegistrationStatusCancelled,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count registrations for tournament %s: %w", tournamentID, err)
	}
	return count, nil
}

func (r *postgresRegistrationRepository) UpdateStatus(ctx context.Context, id string, status models.RegistrationStatus) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE registrations SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("failed to update registration status: %w", err)
	}
	return checkAffectedRows(result, ErrRegistrationNotFound)
}

func (r *postgresRegistrationRepository) DeleteByTournament(ctx context.Context, exec SQLExecutor, tournamentID string) error {
	executor := SQLExecutor(r.db)
	if exec != nil {
		executor = exec
	}
	_, err := executor.ExecContext(ctx, `DELETE FROM registrations WHERE tournament_id = $1`, tournamentID)
	if err != nil {
		return fmt.Errorf("failed to delete registrations for tournament %s: %w", tournamentID, err)
	}
	return nil
}
