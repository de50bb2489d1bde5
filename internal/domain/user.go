package domain

import "time"

// User is owned by the surrounding admin layer; the engine only needs ids
// for discount scoping and per-user usage counts. Kept here for seeding and
// foreign keys.
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email" validate:"required,email"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
