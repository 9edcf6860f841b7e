package ports

import (
	"context"

	"github.com/dextasynergyservices/myweddingpage/internal/core/domain"
)

// ResetTokenRepository stores single-use password-reset tokens.
type ResetTokenRepository interface {
	Create(ctx context.Context, token *domain.PasswordResetToken) error

	// Consume atomically removes and returns the token. Exactly one caller
	// can consume a given token; everyone else gets ErrInvalidResetToken.
	// Expiry is not checked here — the caller decides what to do with a
	// consumed-but-expired token.
	Consume(ctx context.Context, token string) (*domain.PasswordResetToken, error)
}
