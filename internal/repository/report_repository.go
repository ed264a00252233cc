package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/leafscan-service/internal/domain"
)

// ReportRepository persists per-user disease reports.
type ReportRepository interface {
	Create(ctx context.Context, report *domain.DiseaseReport) error
	ListByUser(ctx context.Context, userID string) ([]*domain.DiseaseReport, error)
	GetByIDForUser(ctx context.Context, id, userID string) (*domain.DiseaseReport, error)
	Stats(ctx context.Context, userID string) (*domain.ReportStats, error)
}

type reportRepository struct {
	pool *pgxpool.Pool
}

// NewReportRepository returns a Postgres-backed implementation.
func NewReportRepository(pool *pgxpool.Pool) ReportRepository {
	return &reportRepository{pool: pool}
}

const reportColumns = `id, user_id, disease_name, severity, tree_age, location,
        latitude, longitude, weather, notes, image_uri, symptoms,
        recommendations, synced, reported_at, created_at, updated_at`

func (r *reportRepository) Create(ctx context.Context, report *domain.DiseaseReport) error {
	const query = `
        INSERT INTO disease_reports
            (user_id, disease_name, severity, tree_age, location, latitude, longitude,
             weather, notes, image_uri, symptoms, recommendations, synced, reported_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		report.UserID,
		report.DiseaseName,
		string(report.Severity),
		string(report.TreeAge),
		report.Location,
		report.Coordinates.Latitude,
		report.Coordinates.Longitude,
		report.Weather,
		report.Notes,
		report.ImageURI,
		report.Symptoms,
		report.Recommendations,
		report.Synced,
		report.ReportedAt,
	).Scan(&report.ID, &report.CreatedAt, &report.UpdatedAt)
}

func (r *reportRepository) ListByUser(ctx context.Context, userID string) ([]*domain.DiseaseReport, error) {
	const query = `SELECT ` + reportColumns + `
        FROM disease_reports WHERE user_id=$1 ORDER BY reported_at DESC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reports := make([]*domain.DiseaseReport, 0)
	for rows.Next() {
		report, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		reports = append(reports, report)
	}
	return reports, rows.Err()
}

func (r *reportRepository) GetByIDForUser(ctx context.Context, id, userID string) (*domain.DiseaseReport, error) {
	const query = `SELECT ` + reportColumns + `
        FROM disease_reports WHERE id=$1 AND user_id=$2`

	return scanReport(r.pool.QueryRow(ctx, query, id, userID))
}

func (r *reportRepository) Stats(ctx context.Context, userID string) (*domain.ReportStats, error) {
	stats := &domain.ReportStats{
		DiseaseDistribution:  make([]domain.DiseaseCount, 0),
		LocationDistribution: make([]domain.LocationCount, 0),
	}

	const totalQuery = `SELECT COUNT(*) FROM disease_reports WHERE user_id=$1`
	if err := r.pool.QueryRow(ctx, totalQuery, userID).Scan(&stats.TotalReports); err != nil {
		return nil, err
	}

	const diseaseQuery = `
        SELECT disease_name, COUNT(*) FROM disease_reports
        WHERE user_id=$1 GROUP BY disease_name ORDER BY COUNT(*) DESC`
	rows, err := r.pool.Query(ctx, diseaseQuery, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var dc domain.DiseaseCount
		if err := rows.Scan(&dc.DiseaseName, &dc.Count); err != nil {
			return nil, err
		}
		stats.DiseaseDistribution = append(stats.DiseaseDistribution, dc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	const locationQuery = `
        SELECT location, COUNT(*) FROM disease_reports
        WHERE user_id=$1 GROUP BY location ORDER BY COUNT(*) DESC`
	locRows, err := r.pool.Query(ctx, locationQuery, userID)
	if err != nil {
		return nil, err
	}
	defer locRows.Close()
	for locRows.Next() {
		var lc domain.LocationCount
		if err := locRows.Scan(&lc.Location, &lc.Count); err != nil {
			return nil, err
		}
		stats.LocationDistribution = append(stats.LocationDistribution, lc)
	}
	return stats, locRows.Err()
}

func scanReport(row pgx.Row) (*domain.DiseaseReport, error) {
	var report domain.DiseaseReport
	if err := row.Scan(
		&report.ID,
		&report.UserID,
		&report.DiseaseName,
		&report.Severity,
		&report.TreeAge,
		&report.Location,
		&report.Coordinates.Latitude,
		&report.Coordinates.Longitude,
		&report.Weather,
		&report.Notes,
		&report.ImageURI,
		&report.Symptoms,
		&report.Recommendations,
		&report.Synced,
		&report.ReportedAt,
		&report.CreatedAt,
		&report.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &report, nil
}
