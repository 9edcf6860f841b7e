package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dextasynergyservices/myweddingpage/internal/core/domain"
)

// DefaultSessionTTL is how long a minted session credential stays valid.
// There is no server-side session table, so a credential cannot be revoked
// before expiry except by rotating the signing secret.
const DefaultSessionTTL = 7 * 24 * time.Hour

// SessionClaims is the exhaustive claim set carried by a session credential:
// the user id (Subject) and role, nothing else.
type SessionClaims struct {
	Role domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// MintSessionToken signs an HS256 credential embedding the user's id and role.
func MintSessionToken(secret string, user *domain.User, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := SessionClaims{
		Role: user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(secret))
}

// ParseSessionToken verifies signature and expiry and returns the embedded
// claims. Any tamper, wrong algorithm, or expiry yields ErrInvalidCredentials.
// Role and status changes made after issuance are not reflected until the
// credential expires — validation never touches the store.
func ParseSessionToken(secret, token string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil || !parsed.Valid {
		return nil, fmt.Errorf("parse session token: %w", domain.ErrInvalidCredentials)
	}
	if claims.Subject == "" || !claims.Role.Valid() {
		return nil, fmt.Errorf("parse session token: %w", domain.ErrInvalidCredentials)
	}
	return claims, nil
}
