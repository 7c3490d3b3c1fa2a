package models

import "time"

// Card представляет карточку события на главной странице.
// Src holds the public URL of the banner image; it is set either directly
// or through the banner upload endpoint.
type Card struct {
	ID         int64     `json:"card_id" db:"id"`
	Category   string    `json:"category" db:"category"`
	Title      string    `json:"title" db:"title"`
	Src        string    `json:"src" db:"src"`
	Content    string    `json:"content" db:"content"`
	ButtonText *string   `json:"button_text,omitempty" db:"button_text"`
	ButtonLink *string   `json:"button_link,omitempty" db:"button_link"`
	CreatedBy  *string   `json:"created_by,omitempty" db:"created_by"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}
