package models

import "time"

// User is the minimal projection of an account this service needs for
// rosters and bracket display. Accounts, credentials and balances are owned
// by the external auth service; rows here mirror its identifiers.
type User struct {
	ID        string    `json:"user_id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Email     string    `json:"email" db:"email"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
