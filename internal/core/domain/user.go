package domain

import (
	"errors"
	"time"
)

// Role enumerates the authorization levels a user can hold. Admin accounts
// are pre-seeded; nothing in the public API escalates a role.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// Status represents the verification lifecycle state of an account.
type Status string

const (
	StatusInactive Status = "inactive"
	StatusActive   Status = "active"
)

var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("user already exists")
var ErrAccountInactive = errors.New("account not verified")
var ErrInvalidVerification = errors.New("invalid or expired code")
var ErrInvalidResetToken = errors.New("invalid or expired token")
var ErrForbidden = errors.New("access forbidden")

// User is the credential record used for authentication and role checks.
//
// A user is created StatusInactive with a pending verification pair
// (code + token + issued-at). The three pending fields are co-present: all
// set while verification is outstanding, all cleared together by the
// activation update. An active user never retains the pair.
type User struct {
	ID                string     `json:"id"`
	Email             string     `json:"email,omitempty"`
	WhatsApp          string     `json:"whatsapp,omitempty"`
	Name              string     `json:"name"`
	PasswordHash      string     `json:"-"`
	Role              Role       `json:"role"`
	Status            Status     `json:"status"`
	VerificationCode  string     `json:"-"`
	VerificationToken string     `json:"-"`
	CodeIssuedAt      *time.Time `json:"-"`
	PlanID            string     `json:"plan_id,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// PendingVerification reports whether the user still carries an unconsumed
// verification pair.
func (u *User) PendingVerification() bool {
	return u.Status == StatusInactive && u.VerificationCode != ""
}

// CanAuthenticate reports whether the account may log in at all.
func (u *User) CanAuthenticate() bool {
	return u.Status == StatusActive
}

// Summary is the client-facing projection of a user, safe to return from
// any endpoint.
type Summary struct {
	ID     string `json:"id"`
	Email  string `json:"email,omitempty"`
	Name   string `json:"name"`
	Role   Role   `json:"role"`
	Status Status `json:"status"`
}

// Summary builds the public projection of u.
func (u *User) Summary() Summary {
	return Summary{
		ID:     u.ID,
		Email:  u.Email,
		Name:   u.Name,
		Role:   u.Role,
		Status: u.Status,
	}
}
