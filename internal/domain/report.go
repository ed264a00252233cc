package domain

import "time"

// ReportSeverity grades how far a disease has progressed.
type ReportSeverity string

const (
	SeverityMild     ReportSeverity = "mild"
	SeverityModerate ReportSeverity = "moderate"
	SeveritySevere   ReportSeverity = "severe"
)

// TreeAge buckets the affected tree's maturity.
type TreeAge string

const (
	TreeAgeYoung  TreeAge = "youngTree"
	TreeAgeMature TreeAge = "matureTree"
	TreeAgeOld    TreeAge = "oldTree"
)

// Coordinates is a GPS point attached to a report.
type Coordinates struct {
	Latitude  float64
	Longitude float64
}

// DiseaseReport is a user's record of an identified disease in the field.
type DiseaseReport struct {
	ID              string
	UserID          string
	DiseaseName     string
	Severity        ReportSeverity
	TreeAge         TreeAge
	Location        string
	Coordinates     Coordinates
	Weather         string
	Notes           string
	ImageURI        string
	Symptoms        []string
	Recommendations []string
	Synced          bool
	ReportedAt      time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// DiseaseCount is a per-disease tally for report statistics.
type DiseaseCount struct {
	DiseaseName string
	Count       int64
}

// LocationCount is a per-location tally for report statistics.
type LocationCount struct {
	Location string
	Count    int64
}

// ReportStats summarizes a user's report history.
type ReportStats struct {
	TotalReports         int64
	DiseaseDistribution  []DiseaseCount
	LocationDistribution []LocationCount
}
