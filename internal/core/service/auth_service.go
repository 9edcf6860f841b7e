package service

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/dextasynergyservices/myweddingpage/internal/core/domain"
	"github.com/dextasynergyservices/myweddingpage/internal/core/ports"
)

// AuthService implements registration and login.
type AuthService struct {
	users     ports.UserRepository
	verifier  ports.VerificationService
	jwtSecret string
	tokenTTL  time.Duration
}

func NewAuthService(users ports.UserRepository, verifier ports.VerificationService, jwtSecret string, tokenTTL time.Duration) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = DefaultSessionTTL
	}
	return &AuthService{users: users, verifier: verifier, jwtSecret: jwtSecret, tokenTTL: tokenTTL}
}

// Register creates an inactive user and issues its verification pair. The
// user keeps its pending pair even when issuance dispatch fails — the caller
// sees the error and can resend.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	if in.Name == "" || in.Password == "" || in.Email == "" {
		return nil, domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Email:        in.Email,
		WhatsApp:     in.WhatsApp,
		Name:         in.Name,
		PasswordHash: string(hash),
		Role:         domain.RoleUser,
		Status:       domain.StatusInactive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	if err := s.verifier.Issue(ctx, created); err != nil {
		return nil, err
	}
	return created, nil
}

// Login authenticates an active account and mints a session credential.
// Unknown identifiers and wrong passwords fail identically so callers cannot
// probe which accounts exist.
func (s *AuthService) Login(ctx context.Context, identifier, password string) (string, *domain.User, error) {
	if identifier == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByIdentifier(ctx, identifier)
	if err != nil {
		return "", nil, domain.ErrInvalidCredentials
	}
	if !user.CanAuthenticate() {
		return "", nil, domain.ErrAccountInactive
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := MintSessionToken(s.jwtSecret, user, s.tokenTTL)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}
