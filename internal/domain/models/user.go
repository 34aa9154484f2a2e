// internal/domain/models/user.go
package models

import "time"

// User is a tracker account. The app is single-user in practice, but the
// owner is stored like any other account so sign-in stays a store lookup.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	FullName     string    `json:"full_name"`
	PasswordHash string    `json:"-"`
	Status       string    `json:"status"` // active | disabled
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
