package models

import "time"

type RegistrationStatus string

const (
	RegistrationStatusPending   RegistrationStatus = "PENDING"
	RegistrationStatusConfirmed RegistrationStatus = "CONFIRMED"
	RegistrationStatusCancelled RegistrationStatus = "CANCELLED"
)

func (s RegistrationStatus) Valid() bool {
	switch s {
	case RegistrationStatusPending, RegistrationStatusConfirmed, RegistrationStatusCancelled:
		return true
	}
	return false
}

// Registration links a user to a tournament. Only CONFIRMED registrations
// are eligible for seeding when brackets are generated.
type Registration struct {
	ID               string             `json:"registration_id" db:"id"`
	UserID           string             `json:"user_id" db:"user_id"`
	TournamentID     string             `json:"tournament_id" db:"tournament_id"`
	Status           RegistrationStatus `json:"status" db:"status"`
	RegistrationDate time.Time          `json:"registration_date" db:"registration_date"`
	CreatedAt        time.Time          `json:"created_at" db:"created_at"`

	User *User `json:"user,omitempty" db:"-"`
}
