package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserRegistered  EventType = "user_registered"
	EventUserVerified    EventType = "user_verified"
	EventUserLoggedIn    EventType = "user_logged_in"
	EventPasswordChanged EventType = "password_changed"
	EventReportCreated   EventType = "report_created"
)

// Event represents a domain event emitted by services. Payloads never carry
// codes, passwords or hashes.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	UserID    string      `json:"user_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload,omitempty"`
}

// UserRegisteredPayload payload.
type UserRegisteredPayload struct {
	Email string `json:"email"`
}

// PasswordChangedPayload payload.
type PasswordChangedPayload struct {
	// Via distinguishes an authenticated change from an OTP reset.
	Via string `json:"via"`
}

// ReportCreatedPayload payload.
type ReportCreatedPayload struct {
	ReportID    string `json:"report_id"`
	DiseaseName string `json:"disease_name"`
}
