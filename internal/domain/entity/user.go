package entity

import "time"

// User is an authenticated account. One user owns at most one business
// profile in the current model.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	Status       string // active | disabled

	CreatedAt time.Time
	UpdatedAt time.Time
}
