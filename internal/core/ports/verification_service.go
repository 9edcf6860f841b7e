package ports

import (
	"context"

	"github.com/dextasynergyservices/myweddingpage/internal/core/domain"
)

type VerificationService interface {
	// Issue generates a fresh code/token pair for the user, persists it,
	// and dispatches it over every channel the user registered with.
	Issue(ctx context.Context, user *domain.User) error
	// VerifyCode activates the account identified by email or WhatsApp
	// handle when the submitted code matches the pending one.
	VerifyCode(ctx context.Context, identifier, code string) (*domain.User, error)
	// VerifyToken activates the account owning the opaque link token.
	VerifyToken(ctx context.Context, token string) (*domain.User, error)
	// Resend reissues the pair for a still-inactive account. Resending for
	// an already-active account is a no-op.
	Resend(ctx context.Context, email string) error
}
