package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/leafscan-service/internal/domain"
)

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*domain.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user.ID = uuid.NewString()
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *user
	return &clone, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if strings.EqualFold(user.Email, email) {
			clone := *user
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeUserRepo) Activate(_ context.Context, id string) error {
	return r.update(id, func(u *domain.User) { u.Active = true })
}

func (r *fakeUserRepo) UpdateLastLogin(_ context.Context, id string) error {
	now := time.Now()
	return r.update(id, func(u *domain.User) { u.LastLoginAt = &now })
}

func (r *fakeUserRepo) UpdateProfile(_ context.Context, id string, name *string) error {
	return r.update(id, func(u *domain.User) {
		if name != nil {
			u.Name = *name
		}
	})
}

func (r *fakeUserRepo) UpdatePassword(_ context.Context, id, passwordHash string) error {
	return r.update(id, func(u *domain.User) { u.PasswordHash = passwordHash })
}

func (r *fakeUserRepo) update(id string, fn func(*domain.User)) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return pgx.ErrNoRows
	}
	fn(user)
	user.UpdatedAt = time.Now()
	return nil
}

// fakeOTPRepo reproduces the storage semantics the real repository gets
// from its UNIQUE constraint and conditional update: one row per
// (email, purpose), consume succeeds at most once.
type fakeOTPRepo struct {
	mu      sync.Mutex
	records map[string]*domain.OTPCode
}

func newFakeOTPRepo() *fakeOTPRepo {
	return &fakeOTPRepo{records: make(map[string]*domain.OTPCode)}
}

func otpKey(email string, purpose domain.OTPPurpose) string {
	return email + "|" + string(purpose)
}

func (r *fakeOTPRepo) Upsert(_ context.Context, rec *domain.OTPCode) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec.ID = uuid.NewString()
	clone := *rec
	r.records[otpKey(rec.Email, rec.Purpose)] = &clone
	return nil
}

func (r *fakeOTPRepo) Consume(_ context.Context, email, code string, purpose domain.OTPPurpose, now time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.records[otpKey(email, purpose)]
	if !ok || rec.Used || rec.Code != code || !rec.ExpiresAt.After(now) {
		return false, nil
	}
	rec.Used = true
	return true, nil
}

func (r *fakeOTPRepo) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var deleted int64
	for key, rec := range r.records {
		if rec.Used || !rec.ExpiresAt.After(now) {
			delete(r.records, key)
			deleted++
		}
	}
	return deleted, nil
}

// codeFor exposes the stored plaintext code so tests can play the role of
// the email recipient.
func (r *fakeOTPRepo) codeFor(email string, purpose domain.OTPPurpose) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if rec, ok := r.records[otpKey(email, purpose)]; ok {
		return rec.Code
	}
	return ""
}

// fakeLimiter grants a fixed number of sends, then refuses.
type fakeLimiter struct {
	mu        sync.Mutex
	remaining int
}

func (l *fakeLimiter) Allow(context.Context, string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.remaining <= 0 {
		return false, nil
	}
	l.remaining--
	return true, nil
}

type sentMail struct {
	to      string
	subject string
	body    string
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []sentMail
	err  error
}

func (m *fakeMailer) Send(_ context.Context, to, subject, htmlBody string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sentMail{to: to, subject: subject, body: htmlBody})
	return nil
}

func (m *fakeMailer) sentCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sent)
}
