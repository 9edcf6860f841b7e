package ports

import (
	"context"
	"time"

	"github.com/dextasynergyservices/myweddingpage/internal/core/domain"
)

// UserRepository defines the persistence interface for credential records.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// FindByIdentifier resolves either an email address or a WhatsApp handle.
	FindByIdentifier(ctx context.Context, identifier string) (*domain.User, error)
	FindByVerificationToken(ctx context.Context, token string) (*domain.User, error)

	// SetVerificationPair overwrites the pending verification pair on the
	// user, superseding any earlier issuance.
	SetVerificationPair(ctx context.Context, id, code, token string, issuedAt time.Time) error

	// Activate flips status inactive→active and clears the pending pair in
	// a single conditional update guarded by the current code value. It
	// returns false when the guard did not match (wrong code, already
	// active, or a concurrent verification won the race).
	Activate(ctx context.Context, id, code string) (bool, error)

	UpdatePasswordHash(ctx context.Context, id, hash string) error
	List(ctx context.Context) ([]domain.User, error)
}
