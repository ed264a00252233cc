package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/leafscan-service/internal/api/dto"
	"github.com/spec-kit/leafscan-service/internal/auth"
	"github.com/spec-kit/leafscan-service/internal/domain"
	"github.com/spec-kit/leafscan-service/internal/service"
	apperrors "github.com/spec-kit/leafscan-service/pkg/util"
)

// ReportsHandler exposes disease report history endpoints.
type ReportsHandler struct {
	reports *service.ReportService
}

// NewReportsHandler constructs handler.
func NewReportsHandler(reports *service.ReportService) *ReportsHandler {
	return &ReportsHandler{reports: reports}
}

// Create handles POST /api/reports.
func (h *ReportsHandler) Create(c *fiber.Ctx) error {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("not authenticated")
	}

	var req dto.CreateReportRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	created, err := h.reports.Create(c.UserContext(), req.ToDomain(user.ID))
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.NewReportResponse(created))
}

// List handles GET /api/reports.
func (h *ReportsHandler) List(c *fiber.Ctx) error {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("not authenticated")
	}

	reports, err := h.reports.List(c.UserContext(), user.ID)
	if err != nil {
		return err
	}

	out := make([]dto.ReportResponse, 0, len(reports))
	for _, report := range reports {
		out = append(out, dto.NewReportResponse(report))
	}
	return c.JSON(out)
}

// Get handles GET /api/reports/:id.
func (h *ReportsHandler) Get(c *fiber.Ctx) error {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("not authenticated")
	}

	report, err := h.reports.Get(c.UserContext(), c.Params("id"), user.ID)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewReportResponse(report))
}

// Sync handles POST /api/reports/sync.
func (h *ReportsHandler) Sync(c *fiber.Ctx) error {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("not authenticated")
	}

	var req dto.SyncReportsRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	originalIDs := make([]string, 0, len(req.Reports))
	converted := make([]*domain.DiseaseReport, 0, len(req.Reports))
	for i := range req.Reports {
		originalIDs = append(originalIDs, req.Reports[i].ID)
		converted = append(converted, req.Reports[i].ToDomain(user.ID))
	}

	results := h.reports.Sync(c.UserContext(), user.ID, converted, originalIDs)

	out := make([]dto.SyncItemResponse, 0, len(results))
	for _, res := range results {
		item := dto.SyncItemResponse{Success: res.Success, OriginalID: res.OriginalID}
		if res.Report != nil {
			rr := dto.NewReportResponse(res.Report)
			item.Report = &rr
		}
		if res.Err != nil {
			item.Error = apperrors.ToDomainError(res.Err).Message
		}
		out = append(out, item)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"results": out,
	})
}

// Stats handles GET /api/reports/stats/summary.
func (h *ReportsHandler) Stats(c *fiber.Ctx) error {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("not authenticated")
	}

	stats, err := h.reports.Stats(c.UserContext(), user.ID)
	if err != nil {
		return err
	}

	resp := dto.StatsResponse{
		TotalReports:         stats.TotalReports,
		DiseaseDistribution:  make([]dto.DiseaseCountResponse, 0, len(stats.DiseaseDistribution)),
		LocationDistribution: make([]dto.LocationCountResponse, 0, len(stats.LocationDistribution)),
	}
	for _, dc := range stats.DiseaseDistribution {
		resp.DiseaseDistribution = append(resp.DiseaseDistribution, dto.DiseaseCountResponse{
			DiseaseName: dc.DiseaseName,
			Count:       dc.Count,
		})
	}
	for _, lc := range stats.LocationDistribution {
		resp.LocationDistribution = append(resp.LocationDistribution, dto.LocationCountResponse{
			Location: lc.Location,
			Count:    lc.Count,
		})
	}
	return c.JSON(resp)
}
