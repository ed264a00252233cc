package service

import (
	"context"
	"crypto/rand"
	"math/big"
	"strings"
	"time"

	"github.com/spec-kit/leafscan-service/internal/domain"
	"github.com/spec-kit/leafscan-service/internal/repository"
)

// OTPLedger generates, stores and validates single-use time-boxed codes
// scoped per (email, purpose). Codes leave the ledger only through the
// mailer; they are never logged or returned in API responses.
type OTPLedger struct {
	otps    repository.OTPRepository
	codeLen int
	ttl     time.Duration
	now     func() time.Time
}

// NewOTPLedger builds the ledger.
func NewOTPLedger(otps repository.OTPRepository, codeLen int, ttl time.Duration) *OTPLedger {
	if codeLen <= 0 {
		codeLen = 6
	}
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &OTPLedger{otps: otps, codeLen: codeLen, ttl: ttl, now: time.Now}
}

// GenerateCode returns a decimal string with each digit drawn independently
// and uniformly from a cryptographically secure source.
func GenerateCode(length int) (string, error) {
	var sb strings.Builder
	ten := big.NewInt(10)
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, ten)
		if err != nil {
			return "", err
		}
		sb.WriteByte(byte('0' + n.Int64()))
	}
	return sb.String(), nil
}

// Issue supersedes any existing code for (email, purpose) and stores a new
// one with TTL-based expiry, returning the plaintext code for out-of-band
// delivery.
func (l *OTPLedger) Issue(ctx context.Context, email string, purpose domain.OTPPurpose) (string, error) {
	code, err := GenerateCode(l.codeLen)
	if err != nil {
		return "", err
	}

	now := l.now()
	rec := &domain.OTPCode{
		Email:     email,
		Code:      code,
		Purpose:   purpose,
		CreatedAt: now,
		ExpiresAt: now.Add(l.ttl),
	}
	if err := l.otps.Upsert(ctx, rec); err != nil {
		return "", err
	}
	return code, nil
}

// Verify consumes a matching unused, unexpired code. Wrong, expired, used
// and absent codes all yield the same false result.
func (l *OTPLedger) Verify(ctx context.Context, email, code string, purpose domain.OTPPurpose) (bool, error) {
	return l.otps.Consume(ctx, email, code, purpose, l.now())
}

// CleanupExpired bulk-deletes expired or used codes. Safe to run
// concurrently with Issue and Verify.
func (l *OTPLedger) CleanupExpired(ctx context.Context) (int64, error) {
	return l.otps.DeleteExpired(ctx, l.now())
}
