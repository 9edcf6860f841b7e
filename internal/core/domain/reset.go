package domain

import "time"

// PasswordResetToken is a single-use token letting a user replace their
// password. It is consumed (deleted) on successful reset or discarded once
// past ExpiresAt, never reused.
type PasswordResetToken struct {
	Token     string    `json:"token"`
	UserID    string    `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// Expired reports whether the token is past its expiry at the given instant.
func (t *PasswordResetToken) Expired(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}
