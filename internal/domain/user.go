package domain

import (
	"strings"
	"time"
)

// User is the domain model for app accounts. An account stays inactive
// until its email address has been verified with a one-time code.
type User struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
	LastLoginAt  *time.Time
}

// NormalizeEmail lower-cases and trims an address so lookups and the
// unique index agree on a single representation.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// DefaultName derives a display name from the email local part.
func DefaultName(email string) string {
	if at := strings.Index(email, "@"); at > 0 {
		return email[:at]
	}
	return email
}
