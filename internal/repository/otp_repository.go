package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/leafscan-service/internal/domain"
)

// OTPRepository persists one-time codes. The otp_codes table carries a
// UNIQUE (email, purpose) constraint, so Upsert replaces any prior code for
// the pair in a single statement and the at-most-one-active invariant holds
// even when two issues race.
type OTPRepository interface {
	Upsert(ctx context.Context, rec *domain.OTPCode) error
	Consume(ctx context.Context, email, code string, purpose domain.OTPPurpose, now time.Time) (bool, error)
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

type otpRepository struct {
	pool *pgxpool.Pool
}

// NewOTPRepository returns a Postgres-backed implementation.
func NewOTPRepository(pool *pgxpool.Pool) OTPRepository {
	return &otpRepository{pool: pool}
}

func (r *otpRepository) Upsert(ctx context.Context, rec *domain.OTPCode) error {
	const query = `
        INSERT INTO otp_codes (email, code, purpose, used, created_at, expires_at)
        VALUES ($1, $2, $3, FALSE, $4, $5)
        ON CONFLICT ON CONSTRAINT otp_codes_email_purpose_unique
        DO UPDATE SET code=EXCLUDED.code, used=FALSE,
                      created_at=EXCLUDED.created_at, expires_at=EXCLUDED.expires_at
        RETURNING id`

	return r.pool.QueryRow(ctx, query,
		rec.Email,
		rec.Code,
		string(rec.Purpose),
		rec.CreatedAt,
		rec.ExpiresAt,
	).Scan(&rec.ID)
}

// Consume marks the matching unused, unexpired code as used in a single
// conditional update. Two concurrent calls with the same code succeed at
// most once. Wrong, expired, used and absent codes are indistinguishable
// in the result.
func (r *otpRepository) Consume(ctx context.Context, email, code string, purpose domain.OTPPurpose, now time.Time) (bool, error) {
	const query = `
        UPDATE otp_codes SET used=TRUE
        WHERE email=$1 AND code=$2 AND purpose=$3 AND used=FALSE AND expires_at>$4`

	cmd, err := r.pool.Exec(ctx, query, email, code, string(purpose), now)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() == 1, nil
}

func (r *otpRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	const query = `DELETE FROM otp_codes WHERE expires_at < $1 OR used=TRUE`

	cmd, err := r.pool.Exec(ctx, query, now)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}
