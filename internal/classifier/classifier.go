package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/spec-kit/leafscan-service/internal/config"
)

// Result is the raw classifier verdict for one image.
type Result struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
}

// Classifier is the black-box model contract: image bytes in, label and
// confidence out. The model itself lives behind an inference endpoint.
type Classifier interface {
	Classify(ctx context.Context, image []byte) (*Result, error)
}

// HTTPClassifier posts images to an external inference server.
type HTTPClassifier struct {
	url    string
	client *http.Client
}

// NewHTTPClassifier builds a client for the configured endpoint.
func NewHTTPClassifier(cfg config.ClassifierConfig) *HTTPClassifier {
	return &HTTPClassifier{
		url:    cfg.URL,
		client: &http.Client{Timeout: cfg.Timeout()},
	}
}

// Classify sends the image and decodes the verdict.
func (c *HTTPClassifier) Classify(ctx context.Context, image []byte) (*Result, error) {
	if c.url == "" {
		return nil, fmt.Errorf("classifier endpoint not configured")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(image))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/octet-stream")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("classify request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("classifier returned status %d", resp.StatusCode)
	}

	var result Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode classifier response: %w", err)
	}
	if result.Confidence < 0 || result.Confidence > 1 {
		return nil, fmt.Errorf("classifier confidence out of range: %f", result.Confidence)
	}
	return &result, nil
}
