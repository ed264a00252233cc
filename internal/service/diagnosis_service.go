package service

import (
	"context"

	"github.com/spec-kit/leafscan-service/internal/classifier"
	"github.com/spec-kit/leafscan-service/internal/domain"
)

// DiagnosisService runs the black-box classifier over an uploaded image and
// enriches the verdict with catalog guidance.
type DiagnosisService struct {
	classifier classifier.Classifier
}

// NewDiagnosisService builds the service.
func NewDiagnosisService(c classifier.Classifier) *DiagnosisService {
	return &DiagnosisService{classifier: c}
}

// Diagnose classifies the image bytes. Labels missing from the catalog
// still produce a verdict, just without symptoms or recommendations.
func (s *DiagnosisService) Diagnose(ctx context.Context, image []byte) (*domain.Diagnosis, error) {
	result, err := s.classifier.Classify(ctx, image)
	if err != nil {
		return nil, err
	}

	diagnosis := &domain.Diagnosis{
		Label:           result.Label,
		Name:            result.Label,
		Probability:     result.Confidence,
		Symptoms:        []string{},
		Recommendations: []string{},
	}
	if info, ok := classifier.Lookup(result.Label); ok {
		diagnosis.Name = info.Name
		diagnosis.Symptoms = info.Symptoms
		diagnosis.Recommendations = info.Recommendations
	}
	return diagnosis, nil
}
