package service

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/dextasynergyservices/myweddingpage/internal/core/domain"
)

// stubUserRepo is an in-memory UserRepository with the same conditional
// activation semantics as the Mongo implementation.
type stubUserRepo struct {
	mu     sync.Mutex
	users  map[string]*domain.User
	nextID int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	if u.CodeIssuedAt != nil {
		ts := *u.CodeIssuedAt
		clone.CodeIssuedAt = &ts
	}
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email || (user.WhatsApp != "" && u.WhatsApp == user.WhatsApp) {
			return nil, domain.ErrUserExists
		}
	}
	r.nextID++
	created := cloneUser(user)
	created.ID = "user-" + strconv.Itoa(r.nextID)
	r.users[created.ID] = cloneUser(created)
	return cloneUser(created), nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByIdentifier(_ context.Context, identifier string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == identifier || (u.WhatsApp != "" && u.WhatsApp == identifier) {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByVerificationToken(_ context.Context, token string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.VerificationToken != "" && u.VerificationToken == token {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) SetVerificationPair(_ context.Context, id, code, token string, issuedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.VerificationCode = code
	u.VerificationToken = token
	ts := issuedAt
	u.CodeIssuedAt = &ts
	return nil
}

func (r *stubUserRepo) Activate(_ context.Context, id, code string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return false, nil
	}
	if u.Status != domain.StatusInactive || u.VerificationCode != code {
		return false, nil
	}
	u.Status = domain.StatusActive
	u.VerificationCode = ""
	u.VerificationToken = ""
	u.CodeIssuedAt = nil
	return true, nil
}

func (r *stubUserRepo) UpdatePasswordHash(_ context.Context, id, hash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.PasswordHash = hash
	return nil
}

func (r *stubUserRepo) List(_ context.Context) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, *cloneUser(u))
	}
	return out, nil
}

// stubDispatcher records enqueued notifications without delivering them.
type stubDispatcher struct {
	mu   sync.Mutex
	sent []domain.Notification
}

func (d *stubDispatcher) Enqueue(n domain.Notification) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.sent = append(d.sent, n)
}

func (d *stubDispatcher) EnqueueBatch(ns []domain.Notification) {
	for _, n := range ns {
		d.Enqueue(n)
	}
}

func (d *stubDispatcher) notifications() []domain.Notification {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]domain.Notification, len(d.sent))
	copy(out, d.sent)
	return out
}

// stubThrottle answers Allow with a fixed verdict.
type stubThrottle struct {
	allowed bool
	calls   int
}

func (t *stubThrottle) Allow(context.Context, string) (bool, error) {
	t.calls++
	return t.allowed, nil
}
