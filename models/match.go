package models

import "time"

// MatchStatus представляет статусы матча, соответствующие ENUM в БД.
type MatchStatus string

const (
	MatchStatusPending    MatchStatus = "PENDING"
	MatchStatusInProgress MatchStatus = "IN_PROGRESS"
	MatchStatusCompleted  MatchStatus = "COMPLETED"
	MatchStatusCancelled  MatchStatus = "CANCELLED"
)

// Valid reports whether the status is one of the known enum values.
// Unknown strings are rejected at the API boundary instead of being
// passed through to the database.
func (s MatchStatus) Valid() bool {
	switch s {
	case MatchStatusPending, MatchStatusInProgress, MatchStatusCompleted, MatchStatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether the status ends the match lifecycle.
func (s MatchStatus) Terminal() bool {
	return s == MatchStatusCompleted || s == MatchStatusCancelled
}

// Match is one bracket slot of a tournament. Matches for later rounds of
// elimination brackets are pre-created with both player slots null and get
// filled as winners advance. MatchNumber is 1-based and unique within a
// round.
type Match struct {
	ID           string      `json:"match_id" db:"id"`
	TournamentID string      `json:"tournament_id" db:"tournament_id"`
	RoundNumber  int         `json:"round_number" db:"round_number"`
	MatchNumber  int         `json:"match_number" db:"match_number"`
	Player1ID    *string     `json:"player1_id,omitempty" db:"player1_id"`
	Player2ID    *string     `json:"player2_id,omitempty" db:"player2_id"`
	WinnerID     *string     `json:"winner_id,omitempty" db:"winner_id"`
	Player1Score int         `json:"player1_score" db:"player1_score"`
	Player2Score int         `json:"player2_score" db:"player2_score"`
	Status       MatchStatus `json:"status" db:"status"`
	CreatedAt    time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at" db:"updated_at"`
	CompletedAt  *time.Time  `json:"completed_at,omitempty" db:"completed_at"`

	// Опциональные связанные сущности (не мапятся напрямую)
	Player1 *User `json:"player1,omitempty" db:"-"`
	Player2 *User `json:"player2,omitempty" db:"-"`
	Winner  *User `json:"winner,omitempty" db:"-"`
}

// HasPlayer reports whether the given user occupies one of the two slots.
func (m *Match) HasPlayer(userID string) bool {
	if m.Player1ID != nil && *m.Player1ID == userID {
		return true
	}
	if m.Player2ID != nil && *m.Player2ID == userID {
		return true
	}
	return false
}
