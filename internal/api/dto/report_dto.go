package dto

import (
	"time"

	"github.com/spec-kit/leafscan-service/internal/domain"
)

// CoordinatesDTO carries a GPS point.
type CoordinatesDTO struct {
	Latitude  float64 `json:"latitude" validate:"min=-90,max=90"`
	Longitude float64 `json:"longitude" validate:"min=-180,max=180"`
}

// CreateReportRequest payload for a new disease report. Field names follow
// the mobile client's camelCase convention.
type CreateReportRequest struct {
	ID              string         `json:"id"`
	DiseaseName     string         `json:"diseaseName" validate:"required"`
	Severity        string         `json:"severity" validate:"required,oneof=mild moderate severe"`
	TreeAge         string         `json:"treeAge" validate:"required,oneof=youngTree matureTree oldTree"`
	Location        string         `json:"location" validate:"required"`
	Coordinates     CoordinatesDTO `json:"coordinates"`
	Weather         string         `json:"weather"`
	Notes           string         `json:"notes"`
	ImageURI        string         `json:"imageUri" validate:"required"`
	Symptoms        []string       `json:"symptoms"`
	Recommendations []string       `json:"recommendations"`
	Timestamp       *time.Time     `json:"timestamp"`
}

// ToDomain converts the request into a domain report for the given owner.
func (r CreateReportRequest) ToDomain(userID string) *domain.DiseaseReport {
	report := &domain.DiseaseReport{
		UserID:          userID,
		DiseaseName:     r.DiseaseName,
		Severity:        domain.ReportSeverity(r.Severity),
		TreeAge:         domain.TreeAge(r.TreeAge),
		Location:        r.Location,
		Coordinates:     domain.Coordinates{Latitude: r.Coordinates.Latitude, Longitude: r.Coordinates.Longitude},
		Weather:         r.Weather,
		Notes:           r.Notes,
		ImageURI:        r.ImageURI,
		Symptoms:        r.Symptoms,
		Recommendations: r.Recommendations,
	}
	if r.Timestamp != nil {
		report.ReportedAt = *r.Timestamp
	}
	return report
}

// SyncReportsRequest payload for batch upload of offline reports.
type SyncReportsRequest struct {
	Reports []CreateReportRequest `json:"reports" validate:"required,min=1,dive"`
}

// ReportResponse is the public shape of a disease report.
type ReportResponse struct {
	ID              string         `json:"id"`
	DiseaseName     string         `json:"disease_name"`
	Severity        string         `json:"severity"`
	TreeAge         string         `json:"tree_age"`
	Location        string         `json:"location"`
	Coordinates     CoordinatesDTO `json:"coordinates"`
	Weather         string         `json:"weather"`
	Notes           string         `json:"notes"`
	ImageURI        string         `json:"image_uri"`
	Symptoms        []string       `json:"symptoms"`
	Recommendations []string       `json:"recommendations"`
	UserID          string         `json:"user_id"`
	Synced          bool           `json:"synced"`
	Timestamp       time.Time      `json:"timestamp"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

// NewReportResponse maps a domain report to its public shape.
func NewReportResponse(report *domain.DiseaseReport) ReportResponse {
	return ReportResponse{
		ID:          report.ID,
		DiseaseName: report.DiseaseName,
		Severity:    string(report.Severity),
		TreeAge:     string(report.TreeAge),
		Location:    report.Location,
		Coordinates: CoordinatesDTO{
			Latitude:  report.Coordinates.Latitude,
			Longitude: report.Coordinates.Longitude,
		},
		Weather:         report.Weather,
		Notes:           report.Notes,
		ImageURI:        report.ImageURI,
		Symptoms:        report.Symptoms,
		Recommendations: report.Recommendations,
		UserID:          report.UserID,
		Synced:          report.Synced,
		Timestamp:       report.ReportedAt,
		CreatedAt:       report.CreatedAt,
		UpdatedAt:       report.UpdatedAt,
	}
}

// SyncItemResponse is the per-item outcome of a batch sync.
type SyncItemResponse struct {
	Success    bool            `json:"success"`
	OriginalID string          `json:"original_id,omitempty"`
	Report     *ReportResponse `json:"report,omitempty"`
	Error      string          `json:"error,omitempty"`
}

// StatsResponse summarizes a user's report history.
type StatsResponse struct {
	TotalReports         int64                   `json:"totalReports"`
	DiseaseDistribution  []DiseaseCountResponse  `json:"diseaseDistribution"`
	LocationDistribution []LocationCountResponse `json:"locationDistribution"`
}

// DiseaseCountResponse is one entry of the disease distribution.
type DiseaseCountResponse struct {
	DiseaseName string `json:"disease_name"`
	Count       int64  `json:"count"`
}

// LocationCountResponse is one entry of the location distribution.
type LocationCountResponse struct {
	Location string `json:"location"`
	Count    int64  `json:"count"`
}

// DiagnosisResponse is the enriched classifier verdict.
type DiagnosisResponse struct {
	Prediction      string   `json:"prediction"`
	Name            string   `json:"name"`
	Probability     float64  `json:"probability"`
	Symptoms        []string `json:"symptoms"`
	Recommendations []string `json:"recommendations"`
}
