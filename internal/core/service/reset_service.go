package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/dextasynergyservices/myweddingpage/internal/core/domain"
	"github.com/dextasynergyservices/myweddingpage/internal/core/ports"
)

const defaultResetTTL = time.Hour

type passwordResetService struct {
	users      ports.UserRepository
	tokens     ports.ResetTokenRepository
	dispatcher ports.NotificationDispatcher
	tokenTTL   time.Duration
	resetURL   string
	log        zerolog.Logger
}

// NewPasswordResetService returns a PasswordResetService implementation.
func NewPasswordResetService(
	users ports.UserRepository,
	tokens ports.ResetTokenRepository,
	dispatcher ports.NotificationDispatcher,
	tokenTTL time.Duration,
	resetURL string,
	log zerolog.Logger,
) ports.PasswordResetService {
	if tokenTTL <= 0 {
		tokenTTL = defaultResetTTL
	}
	return &passwordResetService{
		users:      users,
		tokens:     tokens,
		dispatcher: dispatcher,
		tokenTTL:   tokenTTL,
		resetURL:   resetURL,
		log:        log,
	}
}

// Request creates a reset token and queues the reset link. Unknown emails
// return success without side effects — the endpoint must not leak which
// accounts exist.
func (s *passwordResetService) Request(ctx context.Context, email string) error {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		s.log.Debug().Str("email", email).Msg("reset requested for unknown email")
		return nil
	}

	now := time.Now().UTC()
	token := &domain.PasswordResetToken{
		Token:     uuid.NewString(),
		UserID:    user.ID,
		ExpiresAt: now.Add(s.tokenTTL),
		CreatedAt: now,
	}
	if err := s.tokens.Create(ctx, token); err != nil {
		return fmt.Errorf("request reset: %w", err)
	}

	s.dispatcher.Enqueue(domain.Notification{
		Channel:     domain.ChannelEmail,
		Destination: user.Email,
		Subject:     "Reset your wedding page password",
		Body:        fmt.Sprintf("Hi %s, reset your password here: %s/%s (valid for %s)", user.Name, s.resetURL, token.Token, s.tokenTTL),
	})

	s.log.Info().Str("user_id", user.ID).Msg("password reset token issued")
	return nil
}

// Reset consumes the token and stores the new password hash. The consume is
// atomic, so a token can succeed at most once; an expired token is removed
// by the same consume and rejected.
func (s *passwordResetService) Reset(ctx context.Context, token, password string) error {
	if token == "" || password == "" {
		return domain.ErrInvalidResetToken
	}

	consumed, err := s.tokens.Consume(ctx, token)
	if err != nil {
		return domain.ErrInvalidResetToken
	}
	if consumed.Expired(time.Now().UTC()) {
		return domain.ErrInvalidResetToken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePasswordHash(ctx, consumed.UserID, string(hash)); err != nil {
		return fmt.Errorf("reset password: %w", err)
	}

	s.log.Info().Str("user_id", consumed.UserID).Msg("password reset completed")
	return nil
}
