package util

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5"
)

// Stable error codes callers branch on.
const (
	CodeValidationFailed     = "VALIDATION_FAILED"
	CodeDuplicateEmail       = "DUPLICATE_EMAIL"
	CodeAuthFailed           = "AUTH_FAILED"
	CodeVerificationRequired = "VERIFICATION_REQUIRED"
	CodeNotFound             = "NOT_FOUND"
	CodeInvalidOTP           = "INVALID_OTP"
	CodeDeliveryFailed       = "DELIVERY_FAILED"
	CodeRateLimited          = "RATE_LIMITED"
	CodeUnauthorized         = "UNAUTHORIZED"
	CodeInternalError        = "INTERNAL_ERROR"
)

// DomainError standardizes application errors.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	Details    map[string]any
	Err        error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError constructs a DomainError.
func NewDomainError(code, message string, status int, details map[string]any) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status, Details: details}
}

func NewValidationError(message string, details map[string]any) error {
	return NewDomainError(CodeValidationFailed, message, http.StatusBadRequest, details)
}

func NewDuplicateEmail() error {
	return NewDomainError(CodeDuplicateEmail, "email already registered", http.StatusConflict, nil)
}

// NewAuthFailed deliberately carries no detail about which credential was
// wrong, so responses cannot be used for account enumeration.
func NewAuthFailed() error {
	return NewDomainError(CodeAuthFailed, "invalid email or password", http.StatusUnauthorized, nil)
}

func NewVerificationRequired() error {
	return NewDomainError(CodeVerificationRequired,
		"account not verified; a new verification code has been sent", http.StatusForbidden, nil)
}

func NewNotFound(resource string, details map[string]any) error {
	if details == nil {
		details = map[string]any{}
	}
	return &DomainError{
		Code:       CodeNotFound,
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
		Details:    details,
	}
}

// NewInvalidOTP covers wrong, expired, already-used and absent codes alike.
func NewInvalidOTP() error {
	return NewDomainError(CodeInvalidOTP, "invalid or expired code", http.StatusBadRequest, nil)
}

func NewDeliveryFailed(err error) error {
	return &DomainError{
		Code:       CodeDeliveryFailed,
		Message:    "failed to send verification email",
		HTTPStatus: http.StatusBadGateway,
		Err:        err,
	}
}

func NewRateLimited(message string) error {
	return NewDomainError(CodeRateLimited, message, http.StatusTooManyRequests, nil)
}

func NewUnauthorized(message string) error {
	return NewDomainError(CodeUnauthorized, message, http.StatusUnauthorized, nil)
}

func NewInternalError(err error) error {
	return &DomainError{
		Code:       CodeInternalError,
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// ToDomainError converts generic errors to DomainError. Unexpected faults
// collapse to INTERNAL_ERROR so storage details never reach the caller.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	if errors.Is(err, pgx.ErrNoRows) {
		if de, ok := NewNotFound("resource", nil).(*DomainError); ok {
			return de
		}
	}
	return &DomainError{
		Code:       CodeInternalError,
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

func MapError(err error) error {
	return ToDomainError(err)
}
