package entity

import "time"

// Business is the profile a user creates for their shop. Aggregations that
// need a business scope treat its absence as a valid empty state.
type Business struct {
	ID       string
	UserID   string
	Name     string
	Phone    string
	Location string

	CreatedAt time.Time
	UpdatedAt time.Time
}
