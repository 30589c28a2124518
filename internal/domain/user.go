package domain

import "time"

// DefaultProfileImageURL is used for accounts that never uploaded an avatar.
const DefaultProfileImageURL = "https://placehold.co/200x200"

// User represents a registered account. PasswordHash never leaves the server
// boundary; services strip it before returning a user to handlers.
type User struct {
	ID              int64
	Name            string
	Email           string
	PasswordHash    string
	ProfileImageURL string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
