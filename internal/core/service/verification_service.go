package service

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"math/big"
	"time"

	"github.com/rs/zerolog"

	"github.com/dextasynergyservices/myweddingpage/internal/core/domain"
	"github.com/dextasynergyservices/myweddingpage/internal/core/ports"
)

// ResendThrottle abstracts the rate-limit store (Redis) gating reissues.
type ResendThrottle interface {
	Allow(ctx context.Context, identifier string) (bool, error)
}

const (
	codeMin      = 100000
	codeSpan     = 900000 // codes are uniform in [100000, 999999]
	tokenBytes   = 32
	defaultTTL   = 30 * time.Minute
	emailSubject = "Verify your wedding page account"
)

type verificationService struct {
	users      ports.UserRepository
	dispatcher ports.NotificationDispatcher
	throttle   ResendThrottle
	codeTTL    time.Duration
	verifyURL  string
	log        zerolog.Logger
}

// NewVerificationService returns a VerificationService implementation.
// verifyURL is the public base for link-based verification; the opaque token
// is appended to it. throttle may be nil, disabling resend rate limiting.
func NewVerificationService(
	users ports.UserRepository,
	dispatcher ports.NotificationDispatcher,
	throttle ResendThrottle,
	codeTTL time.Duration,
	verifyURL string,
	log zerolog.Logger,
) ports.VerificationService {
	if codeTTL <= 0 {
		codeTTL = defaultTTL
	}
	return &verificationService{
		users:      users,
		dispatcher: dispatcher,
		throttle:   throttle,
		codeTTL:    codeTTL,
		verifyURL:  verifyURL,
		log:        log,
	}
}

// Issue stores a fresh pair on the user and queues delivery on every channel
// the user registered with. Delivery is best-effort: the stored pair is not
// rolled back if a send later fails.
func (s *verificationService) Issue(ctx context.Context, user *domain.User) error {
	code, err := generateCode()
	if err != nil {
		return fmt.Errorf("issue verification: %w", err)
	}
	token, err := generateToken()
	if err != nil {
		return fmt.Errorf("issue verification: %w", err)
	}

	issuedAt := time.Now().UTC()
	if err := s.users.SetVerificationPair(ctx, user.ID, code, token, issuedAt); err != nil {
		return fmt.Errorf("issue verification: %w", err)
	}

	link := s.verifyURL + "/" + token
	if user.Email != "" {
		s.dispatcher.Enqueue(domain.Notification{
			Channel:     domain.ChannelEmail,
			Destination: user.Email,
			Subject:     emailSubject,
			Body:        fmt.Sprintf("Hi %s, your verification code is %s. You can also verify directly: %s", user.Name, code, link),
		})
	}
	if user.WhatsApp != "" {
		s.dispatcher.Enqueue(domain.Notification{
			Channel:     domain.ChannelWhatsApp,
			Destination: user.WhatsApp,
			Body:        fmt.Sprintf("Your wedding page verification code is %s", code),
		})
	}

	s.log.Info().Str("user_id", user.ID).Msg("verification pair issued")
	return nil
}

// VerifyCode activates the account when the submitted code matches the
// pending one. Unknown identifier, wrong code, expired pair, and an already
// active account all fail with the same error.
func (s *verificationService) VerifyCode(ctx context.Context, identifier, code string) (*domain.User, error) {
	if identifier == "" || code == "" {
		return nil, domain.ErrInvalidVerification
	}
	user, err := s.users.FindByIdentifier(ctx, identifier)
	if err != nil {
		return nil, domain.ErrInvalidVerification
	}
	return s.activate(ctx, user, code)
}

// VerifyToken activates via the opaque link token.
func (s *verificationService) VerifyToken(ctx context.Context, token string) (*domain.User, error) {
	if token == "" {
		return nil, domain.ErrInvalidVerification
	}
	user, err := s.users.FindByVerificationToken(ctx, token)
	if err != nil {
		return nil, domain.ErrInvalidVerification
	}
	// The token lookup already proved possession; the stored code is the
	// guard value for the conditional activation.
	return s.activate(ctx, user, user.VerificationCode)
}

func (s *verificationService) activate(ctx context.Context, user *domain.User, code string) (*domain.User, error) {
	if !user.PendingVerification() {
		return nil, domain.ErrInvalidVerification
	}
	if user.CodeIssuedAt == nil || time.Now().UTC().Sub(*user.CodeIssuedAt) > s.codeTTL {
		return nil, domain.ErrInvalidVerification
	}
	if subtle.ConstantTimeCompare([]byte(user.VerificationCode), []byte(code)) != 1 {
		return nil, domain.ErrInvalidVerification
	}

	// Compare-and-clear: only one of two racing attempts can win this update.
	ok, err := s.users.Activate(ctx, user.ID, code)
	if err != nil {
		return nil, fmt.Errorf("verify: %w", err)
	}
	if !ok {
		return nil, domain.ErrInvalidVerification
	}

	user.Status = domain.StatusActive
	user.VerificationCode = ""
	user.VerificationToken = ""
	user.CodeIssuedAt = nil

	s.log.Info().Str("user_id", user.ID).Msg("account activated")
	return user, nil
}

// Resend reissues the pair for an inactive account. Already-active accounts
// are a no-op; throttled requests succeed silently so the response shape
// never reveals timing state.
func (s *verificationService) Resend(ctx context.Context, email string) error {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user.Status == domain.StatusActive {
		return nil
	}

	if s.throttle != nil {
		allowed, err := s.throttle.Allow(ctx, email)
		if err != nil {
			s.log.Warn().Err(err).Msg("resend throttle check failed, allowing")
		} else if !allowed {
			s.log.Debug().Str("user_id", user.ID).Msg("resend throttled")
			return nil
		}
	}

	return s.Issue(ctx, user)
}

// generateCode draws a uniform 6-digit numeric code.
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(codeSpan))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+codeMin), nil
}

// generateToken returns an unguessable URL-safe opaque token.
func generateToken() (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
