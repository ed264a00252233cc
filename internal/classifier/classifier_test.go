package classifier

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/leafscan-service/internal/config"
)

func TestHTTPClassifierClassify(t *testing.T) {
	var gotBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotBody, _ = io.ReadAll(r.Body)
		assert.Equal(t, "application/octet-stream", r.Header.Get("Content-Type"))
		_ = json.NewEncoder(w).Encode(Result{Label: "powdery_mildew", Confidence: 0.93})
	}))
	defer srv.Close()

	c := NewHTTPClassifier(config.ClassifierConfig{URL: srv.URL, TimeoutSeconds: 5})
	result, err := c.Classify(context.Background(), []byte("jpeg-bytes"))
	require.NoError(t, err)

	assert.Equal(t, "powdery_mildew", result.Label)
	assert.InDelta(t, 0.93, result.Confidence, 1e-9)
	assert.Equal(t, []byte("jpeg-bytes"), gotBody)
}

func TestHTTPClassifierErrors(t *testing.T) {
	t.Run("no endpoint configured", func(t *testing.T) {
		c := NewHTTPClassifier(config.ClassifierConfig{})
		_, err := c.Classify(context.Background(), []byte("x"))
		assert.Error(t, err)
	})

	t.Run("non-200 response", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		c := NewHTTPClassifier(config.ClassifierConfig{URL: srv.URL})
		_, err := c.Classify(context.Background(), []byte("x"))
		assert.Error(t, err)
	})

	t.Run("confidence out of range", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_ = json.NewEncoder(w).Encode(Result{Label: "healthy", Confidence: 1.7})
		}))
		defer srv.Close()

		c := NewHTTPClassifier(config.ClassifierConfig{URL: srv.URL})
		_, err := c.Classify(context.Background(), []byte("x"))
		assert.Error(t, err)
	})

	t.Run("malformed body", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte("not json"))
		}))
		defer srv.Close()

		c := NewHTTPClassifier(config.ClassifierConfig{URL: srv.URL})
		_, err := c.Classify(context.Background(), []byte("x"))
		assert.Error(t, err)
	})
}

func TestCatalogLookup(t *testing.T) {
	info, ok := Lookup("Powdery Mildew")
	require.True(t, ok)
	assert.Equal(t, "Powdery Mildew", info.Name)
	assert.NotEmpty(t, info.Symptoms)
	assert.NotEmpty(t, info.Recommendations)

	info, ok = Lookup("anthracnose")
	require.True(t, ok)
	assert.Equal(t, "Anthracnose", info.Name)

	_, ok = Lookup("leaf rust")
	assert.False(t, ok)
}

func TestCatalogCoversKnownLabels(t *testing.T) {
	for _, label := range []string{
		"anthracnose", "bacterial_canker", "die_back",
		"healthy", "powdery_mildew", "sooty_mould",
	} {
		_, ok := Lookup(label)
		assert.True(t, ok, "missing catalog entry for %q", label)
	}
}
