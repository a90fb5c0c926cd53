package metrics_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/frameart/storefront/internal/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutcome(t *testing.T) {
	assert.Equal(t, metrics.OutcomeSuccess, metrics.Outcome(nil))
	assert.Equal(t, metrics.OutcomeFailure, metrics.Outcome(errors.New("boom")))
}

func TestMiddleware(t *testing.T) {
	// Arrange
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/gallery/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	handler := metrics.Middleware(mux)(mux)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/gallery/abc123", nil)
	rr := httptest.NewRecorder()

	// Act
	handler.ServeHTTP(rr, req)

	// Assert
	assert.Equal(t, http.StatusTeapot, rr.Code)

	metricsRR := httptest.NewRecorder()
	metrics.Handler().ServeHTTP(metricsRR, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, metricsRR.Code)

	body := metricsRR.Body.String()
	assert.True(t, strings.Contains(body, `path="GET /api/v1/gallery/{id}"`), "route pattern should be used as the path label")
	assert.False(t, strings.Contains(body, "abc123"), "raw ids must not leak into labels")
}
