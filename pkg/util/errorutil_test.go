package util

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDomainErrorMessageAndUnwrap(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	err := NewDeliveryFailed(cause)

	var domainErr *DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, CodeDeliveryFailed, domainErr.Code)
	assert.Equal(t, http.StatusBadGateway, domainErr.HTTPStatus)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestConstructorStatusMapping(t *testing.T) {
	cases := []struct {
		err    error
		code   string
		status int
	}{
		{NewValidationError("bad", nil), CodeValidationFailed, http.StatusBadRequest},
		{NewDuplicateEmail(), CodeDuplicateEmail, http.StatusConflict},
		{NewAuthFailed(), CodeAuthFailed, http.StatusUnauthorized},
		{NewVerificationRequired(), CodeVerificationRequired, http.StatusForbidden},
		{NewNotFound("user", nil), CodeNotFound, http.StatusNotFound},
		{NewInvalidOTP(), CodeInvalidOTP, http.StatusBadRequest},
		{NewDeliveryFailed(errors.New("x")), CodeDeliveryFailed, http.StatusBadGateway},
		{NewRateLimited("slow down"), CodeRateLimited, http.StatusTooManyRequests},
		{NewUnauthorized("missing token"), CodeUnauthorized, http.StatusUnauthorized},
		{NewInternalError(errors.New("x")), CodeInternalError, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		var domainErr *DomainError
		require.ErrorAs(t, tc.err, &domainErr)
		assert.Equal(t, tc.code, domainErr.Code)
		assert.Equal(t, tc.status, domainErr.HTTPStatus)
	}
}

func TestToDomainError(t *testing.T) {
	t.Run("nil stays nil", func(t *testing.T) {
		assert.Nil(t, ToDomainError(nil))
	})

	t.Run("passes through domain errors", func(t *testing.T) {
		original := NewDuplicateEmail()
		mapped := ToDomainError(original)
		assert.Equal(t, CodeDuplicateEmail, mapped.Code)
	})

	t.Run("unwraps wrapped domain errors", func(t *testing.T) {
		wrapped := fmt.Errorf("handling signup: %w", NewDuplicateEmail())
		mapped := ToDomainError(wrapped)
		assert.Equal(t, CodeDuplicateEmail, mapped.Code)
	})

	t.Run("maps missing rows to not found", func(t *testing.T) {
		mapped := ToDomainError(pgx.ErrNoRows)
		assert.Equal(t, CodeNotFound, mapped.Code)
		assert.Equal(t, http.StatusNotFound, mapped.HTTPStatus)
	})

	t.Run("hides unexpected faults", func(t *testing.T) {
		mapped := ToDomainError(errors.New("pq: relation does not exist"))
		assert.Equal(t, CodeInternalError, mapped.Code)
		assert.Equal(t, "internal server error", mapped.Message)
		assert.NotContains(t, mapped.Message, "relation")
	})
}
