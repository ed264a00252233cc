package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/leafscan-service/internal/domain"
	"github.com/spec-kit/leafscan-service/internal/events"
	apperrors "github.com/spec-kit/leafscan-service/pkg/util"
)

type fakeReportRepo struct {
	mu      sync.Mutex
	reports []*domain.DiseaseReport
	failOn  string
}

func (r *fakeReportRepo) Create(_ context.Context, report *domain.DiseaseReport) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failOn != "" && report.DiseaseName == r.failOn {
		return errors.New("insert failed")
	}
	report.ID = uuid.NewString()
	now := time.Now()
	report.CreatedAt = now
	report.UpdatedAt = now
	clone := *report
	r.reports = append(r.reports, &clone)
	return nil
}

func (r *fakeReportRepo) ListByUser(_ context.Context, userID string) ([]*domain.DiseaseReport, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.DiseaseReport
	for _, report := range r.reports {
		if report.UserID == userID {
			clone := *report
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ReportedAt.After(out[j].ReportedAt) })
	return out, nil
}

func (r *fakeReportRepo) GetByIDForUser(_ context.Context, id, userID string) (*domain.DiseaseReport, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, report := range r.reports {
		if report.ID == id && report.UserID == userID {
			clone := *report
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeReportRepo) Stats(_ context.Context, userID string) (*domain.ReportStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	diseases := make(map[string]int64)
	locations := make(map[string]int64)
	stats := &domain.ReportStats{}
	for _, report := range r.reports {
		if report.UserID != userID {
			continue
		}
		stats.TotalReports++
		diseases[report.DiseaseName]++
		if report.Location != "" {
			locations[report.Location]++
		}
	}
	for name, count := range diseases {
		stats.DiseaseDistribution = append(stats.DiseaseDistribution, domain.DiseaseCount{DiseaseName: name, Count: count})
	}
	for loc, count := range locations {
		stats.LocationDistribution = append(stats.LocationDistribution, domain.LocationCount{Location: loc, Count: count})
	}
	return stats, nil
}

func newReport(userID, disease string, reportedAt time.Time) *domain.DiseaseReport {
	return &domain.DiseaseReport{
		UserID:      userID,
		DiseaseName: disease,
		Severity:    domain.SeverityModerate,
		TreeAge:     domain.TreeAgeMature,
		Location:    "Ratnagiri",
		ReportedAt:  reportedAt,
	}
}

func TestReportCreateAppliesDefaults(t *testing.T) {
	repo := &fakeReportRepo{}
	svc := NewReportService(repo, events.NewInMemoryDispatcher(nil))

	report := &domain.DiseaseReport{UserID: "u1", DiseaseName: "anthracnose"}
	created, err := svc.Create(context.Background(), report)
	require.NoError(t, err)

	assert.NotEmpty(t, created.ID)
	assert.False(t, created.ReportedAt.IsZero())
	assert.NotNil(t, created.Symptoms)
	assert.NotNil(t, created.Recommendations)
	assert.True(t, created.Synced)
}

func TestReportListNewestFirst(t *testing.T) {
	repo := &fakeReportRepo{}
	svc := NewReportService(repo, nil)
	ctx := context.Background()

	base := time.Now()
	_, err := svc.Create(ctx, newReport("u1", "anthracnose", base.Add(-2*time.Hour)))
	require.NoError(t, err)
	_, err = svc.Create(ctx, newReport("u1", "powdery mildew", base))
	require.NoError(t, err)
	_, err = svc.Create(ctx, newReport("other", "die back", base))
	require.NoError(t, err)

	list, err := svc.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "powdery mildew", list[0].DiseaseName)
	assert.Equal(t, "anthracnose", list[1].DiseaseName)
}

func TestReportGetScopedToOwner(t *testing.T) {
	repo := &fakeReportRepo{}
	svc := NewReportService(repo, nil)
	ctx := context.Background()

	created, err := svc.Create(ctx, newReport("u1", "anthracnose", time.Now()))
	require.NoError(t, err)

	got, err := svc.Get(ctx, created.ID, "u1")
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	_, err = svc.Get(ctx, created.ID, "intruder")
	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, apperrors.CodeNotFound, domainErr.Code)
}

func TestReportSyncContinuesPastFailures(t *testing.T) {
	repo := &fakeReportRepo{failOn: "broken"}
	svc := NewReportService(repo, nil)
	ctx := context.Background()

	items := []*domain.DiseaseReport{
		newReport("", "anthracnose", time.Now()),
		newReport("", "broken", time.Now()),
		newReport("", "sooty mould", time.Now()),
	}
	results := svc.Sync(ctx, "u1", items, []string{"local-1", "local-2", "local-3"})

	require.Len(t, results, 3)
	assert.True(t, results[0].Success)
	assert.Equal(t, "local-1", results[0].OriginalID)
	assert.Equal(t, "u1", results[0].Report.UserID)

	assert.False(t, results[1].Success)
	assert.Equal(t, "local-2", results[1].OriginalID)
	assert.Error(t, results[1].Err)

	assert.True(t, results[2].Success)

	list, err := svc.List(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestReportStats(t *testing.T) {
	repo := &fakeReportRepo{}
	svc := NewReportService(repo, nil)
	ctx := context.Background()

	_, err := svc.Create(ctx, newReport("u1", "anthracnose", time.Now()))
	require.NoError(t, err)
	_, err = svc.Create(ctx, newReport("u1", "anthracnose", time.Now()))
	require.NoError(t, err)
	_, err = svc.Create(ctx, newReport("u1", "die back", time.Now()))
	require.NoError(t, err)

	stats, err := svc.Stats(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.TotalReports)

	counts := make(map[string]int64)
	for _, dc := range stats.DiseaseDistribution {
		counts[dc.DiseaseName] = dc.Count
	}
	assert.Equal(t, int64(2), counts["anthracnose"])
	assert.Equal(t, int64(1), counts["die back"])
}
