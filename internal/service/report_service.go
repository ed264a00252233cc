package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/leafscan-service/internal/domain"
	"github.com/spec-kit/leafscan-service/internal/events"
	"github.com/spec-kit/leafscan-service/internal/repository"
	apperrors "github.com/spec-kit/leafscan-service/pkg/util"
)

// ReportService manages a user's disease report history.
type ReportService struct {
	reports    repository.ReportRepository
	dispatcher events.Dispatcher
}

// NewReportService builds the service.
func NewReportService(reports repository.ReportRepository, dispatcher events.Dispatcher) *ReportService {
	return &ReportService{reports: reports, dispatcher: dispatcher}
}

// SyncResult reports the outcome for one item of a batch sync.
type SyncResult struct {
	Success    bool
	OriginalID string
	Report     *domain.DiseaseReport
	Err        error
}

// Create stores a new report owned by the user.
func (s *ReportService) Create(ctx context.Context, report *domain.DiseaseReport) (*domain.DiseaseReport, error) {
	if report.ReportedAt.IsZero() {
		report.ReportedAt = time.Now()
	}
	if report.Symptoms == nil {
		report.Symptoms = []string{}
	}
	if report.Recommendations == nil {
		report.Recommendations = []string{}
	}
	report.Synced = true

	if err := s.reports.Create(ctx, report); err != nil {
		return nil, err
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventReportCreated,
			UserID:    report.UserID,
			Timestamp: time.Now(),
			Payload: events.ReportCreatedPayload{
				ReportID:    report.ID,
				DiseaseName: report.DiseaseName,
			},
		})
	}
	return report, nil
}

// List returns the user's reports, newest first.
func (s *ReportService) List(ctx context.Context, userID string) ([]*domain.DiseaseReport, error) {
	return s.reports.ListByUser(ctx, userID)
}

// Get returns one report scoped to its owner.
func (s *ReportService) Get(ctx context.Context, id, userID string) (*domain.DiseaseReport, error) {
	report, err := s.reports.GetByIDForUser(ctx, id, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("report", nil)
		}
		return nil, err
	}
	return report, nil
}

// Sync stores a batch of offline-captured reports, continuing past
// individual failures and reporting each outcome.
func (s *ReportService) Sync(ctx context.Context, userID string, items []*domain.DiseaseReport, originalIDs []string) []SyncResult {
	results := make([]SyncResult, 0, len(items))
	for i, item := range items {
		originalID := ""
		if i < len(originalIDs) {
			originalID = originalIDs[i]
		}
		item.UserID = userID
		created, err := s.Create(ctx, item)
		if err != nil {
			results = append(results, SyncResult{Success: false, OriginalID: originalID, Err: err})
			continue
		}
		results = append(results, SyncResult{Success: true, OriginalID: originalID, Report: created})
	}
	return results
}

// Stats summarizes the user's history.
func (s *ReportService) Stats(ctx context.Context, userID string) (*domain.ReportStats, error) {
	return s.reports.Stats(ctx, userID)
}
