package dto

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/spec-kit/leafscan-service/pkg/util"
)

func TestValidateSignupRequest(t *testing.T) {
	valid := SignupRequest{Email: "grower@example.com", Password: "s3cret!"}
	assert.NoError(t, Validate(valid))

	cases := map[string]SignupRequest{
		"missing email":   {Password: "s3cret!"},
		"malformed email": {Email: "not-an-email", Password: "s3cret!"},
		"short password":  {Email: "grower@example.com", Password: "abc"},
	}
	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			err := Validate(req)
			var domainErr *apperrors.DomainError
			require.ErrorAs(t, err, &domainErr)
			assert.Equal(t, apperrors.CodeValidationFailed, domainErr.Code)
			assert.NotEmpty(t, domainErr.Details)
		})
	}
}

func TestValidateVerifyOtpRequest(t *testing.T) {
	assert.NoError(t, Validate(VerifyOtpRequest{Email: "grower@example.com", Otp: "123456"}))
	assert.Error(t, Validate(VerifyOtpRequest{Email: "grower@example.com", Otp: "12a456"}))
	assert.Error(t, Validate(VerifyOtpRequest{Email: "grower@example.com"}))
}

func TestValidateCreateReportRequest(t *testing.T) {
	valid := CreateReportRequest{
		DiseaseName: "anthracnose",
		Severity:    "moderate",
		TreeAge:     "matureTree",
		Location:    "Ratnagiri",
		ImageURI:    "file:///leaf.jpg",
	}
	assert.NoError(t, Validate(valid))

	bad := valid
	bad.Severity = "catastrophic"
	assert.Error(t, Validate(bad))

	bad = valid
	bad.TreeAge = "sapling"
	assert.Error(t, Validate(bad))

	bad = valid
	bad.Coordinates = CoordinatesDTO{Latitude: 123, Longitude: 0}
	assert.Error(t, Validate(bad))
}

func TestValidateSyncReportsRequest(t *testing.T) {
	assert.Error(t, Validate(SyncReportsRequest{}), "empty batch must be rejected")

	item := CreateReportRequest{
		DiseaseName: "die back",
		Severity:    "severe",
		TreeAge:     "oldTree",
		Location:    "Konkan",
		ImageURI:    "file:///leaf.jpg",
	}
	assert.NoError(t, Validate(SyncReportsRequest{Reports: []CreateReportRequest{item}}))

	item.Severity = ""
	assert.Error(t, Validate(SyncReportsRequest{Reports: []CreateReportRequest{item}}),
		"dive must validate nested items")
}

func TestCreateReportRequestToDomain(t *testing.T) {
	ts := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	req := CreateReportRequest{
		DiseaseName: "powdery mildew",
		Severity:    "mild",
		TreeAge:     "youngTree",
		Location:    "Ratnagiri",
		Coordinates: CoordinatesDTO{Latitude: 16.99, Longitude: 73.31},
		ImageURI:    "file:///leaf.jpg",
		Timestamp:   &ts,
	}

	report := req.ToDomain("u1")
	assert.Equal(t, "u1", report.UserID)
	assert.Equal(t, "powdery mildew", report.DiseaseName)
	assert.Equal(t, 16.99, report.Coordinates.Latitude)
	assert.Equal(t, ts, report.ReportedAt)

	req.Timestamp = nil
	assert.True(t, req.ToDomain("u1").ReportedAt.IsZero())
}

func TestValidateUpdateProfileRequest(t *testing.T) {
	name := "Asha"
	assert.NoError(t, Validate(UpdateProfileRequest{Name: &name}))
	assert.NoError(t, Validate(UpdateProfileRequest{}))

	empty := ""
	assert.Error(t, Validate(UpdateProfileRequest{Name: &empty}))
}
