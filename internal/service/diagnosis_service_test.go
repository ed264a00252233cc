package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/leafscan-service/internal/classifier"
)

type fakeClassifier struct {
	result *classifier.Result
	err    error
}

func (f *fakeClassifier) Classify(context.Context, []byte) (*classifier.Result, error) {
	return f.result, f.err
}

func TestDiagnoseEnrichesKnownLabel(t *testing.T) {
	svc := NewDiagnosisService(&fakeClassifier{
		result: &classifier.Result{Label: "powdery_mildew", Confidence: 0.87},
	})

	diagnosis, err := svc.Diagnose(context.Background(), []byte("jpeg"))
	require.NoError(t, err)

	assert.Equal(t, "powdery_mildew", diagnosis.Label)
	assert.Equal(t, "Powdery Mildew", diagnosis.Name)
	assert.InDelta(t, 0.87, diagnosis.Probability, 1e-9)
	assert.NotEmpty(t, diagnosis.Symptoms)
	assert.NotEmpty(t, diagnosis.Recommendations)
}

func TestDiagnoseUnknownLabelPassesThrough(t *testing.T) {
	svc := NewDiagnosisService(&fakeClassifier{
		result: &classifier.Result{Label: "leaf_rust", Confidence: 0.41},
	})

	diagnosis, err := svc.Diagnose(context.Background(), []byte("jpeg"))
	require.NoError(t, err)

	assert.Equal(t, "leaf_rust", diagnosis.Label)
	assert.Equal(t, "leaf_rust", diagnosis.Name)
	assert.Empty(t, diagnosis.Symptoms)
	assert.Empty(t, diagnosis.Recommendations)
}

func TestDiagnosePropagatesClassifierError(t *testing.T) {
	svc := NewDiagnosisService(&fakeClassifier{err: errors.New("inference timeout")})

	_, err := svc.Diagnose(context.Background(), []byte("jpeg"))
	assert.Error(t, err)
}
