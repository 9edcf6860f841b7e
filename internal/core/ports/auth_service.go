package ports

import (
	"context"

	"github.com/dextasynergyservices/myweddingpage/internal/core/domain"
)

// RegisterInput carries the validated registration payload into the service.
type RegisterInput struct {
	Name     string
	Email    string
	WhatsApp string
	Password string
}

type AuthService interface {
	// Register creates an inactive user and triggers verification issuance.
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	// Login authenticates an active user by email or WhatsApp handle and
	// returns a signed session token alongside the user.
	Login(ctx context.Context, identifier, password string) (string, *domain.User, error)
}
