package domain

import "time"

// OTPPurpose discriminates verification codes from password-reset codes
// sharing the same storage.
type OTPPurpose string

const (
	OTPPurposeVerification  OTPPurpose = "verification"
	OTPPurposePasswordReset OTPPurpose = "password_reset"
)

// OTPCode is a single-use, time-boxed code bound to (email, purpose).
// At most one row exists per pair; issuing a new code supersedes the
// previous one.
type OTPCode struct {
	ID        string
	Email     string
	Code      string
	Purpose   OTPPurpose
	Used      bool
	CreatedAt time.Time
	ExpiresAt time.Time
}
