package models

import "time"

// TournamentResult is one final placement row. Placement 1 is the champion.
// Prize payout bookkeeping lives outside this service.
type TournamentResult struct {
	ID           string    `json:"result_id" db:"id"`
	TournamentID string    `json:"tournament_id" db:"tournament_id"`
	UserID       string    `json:"user_id" db:"user_id"`
	Placement    int       `json:"placement" db:"placement"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`

	User *User `json:"user,omitempty" db:"-"`
}
