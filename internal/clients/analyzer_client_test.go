package clients

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/spacesedan/sentidesk/config"
	"github.com/spacesedan/sentidesk/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAnalyzerClient(url string) *AnalyzerClient {
	c := NewAnalyzerClient(context.Background(), config.AnalyzerConfig{
		URL:       url + "/polarity",
		HealthURL: url + "/health",
		Timeout:   time.Second,
	})
	c.Backoff = time.Millisecond
	c.MaxRetries = 3
	return c
}

func TestAnalyzerClient_Polarity(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, USER_AGENT, r.Header.Get("User-Agent"))

		var req models.PolarityRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "great service", req.Text)

		_ = json.NewEncoder(w).Encode(models.PolarityResponse{Polarity: 0.7})
	}))
	defer srv.Close()

	p, err := newTestAnalyzerClient(srv.URL).Polarity(context.Background(), "great service")
	require.NoError(t, err)
	assert.Equal(t, 0.7, p)
}

func TestAnalyzerClient_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req models.PolarityRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req), "body must be replayed")

		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_ = json.NewEncoder(w).Encode(models.PolarityResponse{Polarity: -0.4})
	}))
	defer srv.Close()

	p, err := newTestAnalyzerClient(srv.URL).Polarity(context.Background(), "meh")
	require.NoError(t, err)
	assert.Equal(t, -0.4, p)
	assert.Equal(t, int32(3), calls.Load())
}

func TestAnalyzerClient_GivesUp(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := newTestAnalyzerClient(srv.URL).Polarity(context.Background(), "hello")
	assert.Error(t, err)
	assert.Equal(t, int32(3), calls.Load())
}

func TestAnalyzerClient_ClientErrorsAreNotRetried(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	_, err := newTestAnalyzerClient(srv.URL).Polarity(context.Background(), "hello")
	assert.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestAnalyzerClient_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	defer srv.Close()

	_, err := newTestAnalyzerClient(srv.URL).Polarity(context.Background(), "hello")
	assert.ErrorContains(t, err, "unmarshal")
}

func TestAnalyzerClient_HealthCheck(t *testing.T) {
	var healthy atomic.Bool
	healthy.Store(true)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health" || !healthy.Load() {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := newTestAnalyzerClient(srv.URL)
	assert.NoError(t, c.HealthCheck(context.Background()))

	healthy.Store(false)
	assert.Error(t, c.HealthCheck(context.Background()))

	c.HealthURL = ""
	assert.Error(t, c.HealthCheck(context.Background()))
}

func TestAnalyzerClient_ContextCancelStopsRetries(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := newTestAnalyzerClient(srv.URL)
	c.Backoff = time.Hour

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := c.Polarity(ctx, "hello")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
