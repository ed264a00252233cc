package handlers

import (
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/leafscan-service/internal/api/dto"
	"github.com/spec-kit/leafscan-service/internal/service"
	apperrors "github.com/spec-kit/leafscan-service/pkg/util"
)

// 10 MiB cap on uploaded images.
const maxImageBytes = 10 << 20

// DiagnosisHandler exposes the image classification endpoint.
type DiagnosisHandler struct {
	diagnosis *service.DiagnosisService
}

// NewDiagnosisHandler constructs handler.
func NewDiagnosisHandler(diagnosis *service.DiagnosisService) *DiagnosisHandler {
	return &DiagnosisHandler{diagnosis: diagnosis}
}

// Predict handles POST /predict. The image arrives as the "image" part of a
// multipart form.
func (h *DiagnosisHandler) Predict(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		return apperrors.NewValidationError("image file is required", nil)
	}
	if fileHeader.Size > maxImageBytes {
		return apperrors.NewValidationError("image too large", nil)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return apperrors.NewValidationError("unable to read image", nil)
	}
	defer file.Close()

	image, err := io.ReadAll(io.LimitReader(file, maxImageBytes))
	if err != nil {
		return apperrors.NewValidationError("unable to read image", nil)
	}

	diagnosis, err := h.diagnosis.Diagnose(c.UserContext(), image)
	if err != nil {
		return apperrors.NewInternalError(err)
	}

	return c.JSON(dto.DiagnosisResponse{
		Prediction:      diagnosis.Label,
		Name:            diagnosis.Name,
		Probability:     diagnosis.Probability,
		Symptoms:        diagnosis.Symptoms,
		Recommendations: diagnosis.Recommendations,
	})
}
