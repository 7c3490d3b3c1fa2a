package models

import "time"

// TournamentFormat определяет тип сетки турнира.
type TournamentFormat string

const (
	FormatSingleElimination TournamentFormat = "SINGLE_ELIMINATION"
	FormatDoubleElimination TournamentFormat = "DOUBLE_ELIMINATION"
	FormatRoundRobin        TournamentFormat = "ROUND_ROBIN"
)

func (f TournamentFormat) Valid() bool {
	switch f {
	case FormatSingleElimination, FormatDoubleElimination, FormatRoundRobin:
		return true
	}
	return false
}

// Elimination reports whether the format uses an elimination bracket and
// therefore participates in winner advancement. DOUBLE_ELIMINATION is
// generated with single-elimination semantics: a losers' bracket is not
// implemented.
func (f TournamentFormat) Elimination() bool {
	return f != FormatRoundRobin
}

// TournamentStatus представляет статусы турнира, соответствующие ENUM в БД.
type TournamentStatus string

const (
	TournamentStatusUpcoming  TournamentStatus = "UPCOMING"
	TournamentStatusOngoing   TournamentStatus = "ONGOING"
	TournamentStatusCompleted TournamentStatus = "COMPLETED"
	TournamentStatusCancelled TournamentStatus = "CANCELLED"
)

func (s TournamentStatus) Valid() bool {
	switch s {
	case TournamentStatusUpcoming, TournamentStatusOngoing, TournamentStatusCompleted, TournamentStatusCancelled:
		return true
	}
	return false
}

// Tournament представляет турнир, привязанный к карточке события.
// EntryFeeAmount is kept as a string end to end so decimal fees survive
// JSON serialization untouched; this service never charges the fee.
type Tournament struct {
	ID              string           `json:"tournament_id" db:"id"`
	CardID          *int64           `json:"card_id,omitempty" db:"card_id"`
	Name            string           `json:"name" db:"name"`
	Description     *string          `json:"description,omitempty" db:"description"`
	Format          TournamentFormat `json:"format" db:"format"`
	Status          TournamentStatus `json:"status" db:"status"`
	EntryFeeAmount  string           `json:"entry_fee_amount" db:"entry_fee_amount"`
	MaxParticipants int              `json:"max_participants" db:"max_participants"`
	StartDate       time.Time        `json:"start_date" db:"start_date"`
	EndDate         time.Time        `json:"end_date" db:"end_date"`
	CreatedAt       time.Time        `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at" db:"updated_at"`

	// Опциональные связанные сущности (не мапятся напрямую)
	Card              *Card          `json:"card,omitempty" db:"-"`
	Registrations     []Registration `json:"registrations,omitempty" db:"-"`
	Matches           []Match        `json:"matches,omitempty" db:"-"`
	RegistrationCount int            `json:"registration_count" db:"-"`
}
