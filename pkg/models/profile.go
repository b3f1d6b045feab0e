package models

import (
	"time"

	"github.com/google/uuid"
)

// Profile owns one independent shortcut key space, usually one per browser.
type Profile struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	APIKey    string    `db:"api_key" json:"api_key"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// ProfileCreate represents data for registering a new profile
type ProfileCreate struct {
	Name string `json:"name" form:"name" binding:"required,max=100"`
}
