package ports

import "context"

type PasswordResetService interface {
	// Request creates a reset token for the account and dispatches the
	// reset link. It never discloses whether the account exists.
	Request(ctx context.Context, email string) error
	// Reset consumes the token and stores a new password hash.
	Reset(ctx context.Context, token, password string) error
}
