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
	ErrCardNotFound = errors.New("card not found")
	ErrCardInUse    = errors.New("card is in use (tournaments exist)")
)

type CardRepository interface {
	Create(ctx context.Context, card *models.Card) error
	GetByID(ctx context.Context, id int64) (*models.Card, error)
	List(ctx context.Context) ([]models.Card, error)
	Update(ctx context.Context, card *models.Card) error
	UpdateSrc(ctx context.Context, id int64, src string) error
	Delete(ctx context.Context, id int64) error
}

type postgresCardRepository struct {
	db *sql.DB
}

func NewPostgresCardRepository(db *sql.DB) CardRepository {
	return &postgresCardRepository{db: db}
}

const cardColumns = `id, category, title, src, content, button_text, button_link, created_by, created_at`

func (r *postgresCardRepository) Create(ctx context.Context, c *models.Card) error {
	query := `
		INSERT INTO cards (category, title, src, content, button_text, button_link, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		c.Category, c.Title, c.Src, c.Content, c.ButtonText, c.ButtonLink, c.CreatedBy,
	).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create card: %w", err)
	}
	return nil
}

func (r *postgresCardRepository) GetByID(ctx context.Context, id int64) (*models.Card, error) {
	query := `SELECT ` + cardColumns + ` FROM cards WHERE id = $1`

	c := &models.Card{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&c.ID, &c.Category, &c.Title, &c.Src, &c.Content,
		&c.ButtonText, &c.ButtonLink, &c.CreatedBy, &c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCardNotFound
		}
		return nil, fmt.Errorf("failed to scan card %d: %w", id, err)
	}
	return c, nil
}

func (r *postgresCardRepository) List(ctx context.Context) ([]models.Card, error) {
	query := `SELECT ` + cardColumns + ` FROM cards ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query cards: %w", err)
	}
	defer rows.Close()

	cards := make([]models.Card, 0)
	for rows.Next() {
		var c models.Card
		if scanErr := rows.Scan(
			&c.ID, &c.Category, &c.Title, &c.Src, &c.Content,
			&c.ButtonText, &c.ButtonLink, &c.CreatedBy, &c.CreatedAt,
		); scanErr != nil {
			return nil, fmt.Errorf("failed to scan card row: %w", scanErr)
		}
		cards = append(cards, c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during card rows iteration: %w", err)
	}
	return cards, nil
}

func (r *postgresCardRepository) Update(ctx context.Context, c *models.Card) error {
	query := `
		UPDATE cards SET
			category = $1, title = $2, src = $3, content = $4,
			button_text = $5, button_link = $6
		WHERE id = $7`

	result, err := r.db.ExecContext(ctx, query,
		c.Category, c.Title, c.Src, c.Content, c.ButtonText, c.ButtonLink, c.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update card %d: %w", c.ID, err)
	}
	return checkAffectedRows(result, ErrCardNotFound)
}

func (r *postgresCardRepository) UpdateSrc(ctx context.Context, id int64, src string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE cards SET src = $1 WHERE id = $2`, src, id)
	if err != nil {
		return fmt.Errorf("failed to update card src: %w", err)
	}
	return checkAffectedRows(result, ErrCardNotFound)
}

func (r *postgresCardRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM cards WHERE id = $1`, id)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return ErrCardInUse
		}
		return fmt.Errorf("failed to delete card %d: %w", id, err)
	}
	return checkAffectedRows(result, ErrCardNotFound)
}
