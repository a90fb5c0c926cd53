package middleware_test

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/frameart/storefront/internal/api/middleware"
	"github.com/frameart/storefront/internal/logger"
	"github.com/stretchr/testify/assert"
)

func TestLogging(t *testing.T) {
	t.Run("Success - Echoes the request id", func(t *testing.T) {
		// Arrange
		var scoped *slog.Logger
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			scoped = logger.FromContext(r.Context())
			w.WriteHeader(http.StatusTeapot)
		})

		req := httptest.NewRequest(http.MethodGet, "/api/v1/gallery", nil)
		req.Header.Set(middleware.RequestIDHeader, "req-42")
		rr := httptest.NewRecorder()

		// Act
		middleware.Logging(next).ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusTeapot, rr.Code)
		assert.Equal(t, "req-42", rr.Header().Get(middleware.RequestIDHeader))
		assert.NotSame(t, slog.Default(), scoped)
	})

	t.Run("Success - Generates a request id", func(t *testing.T) {
		rr := httptest.NewRecorder()

		middleware.Logging(http.NotFoundHandler()).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Len(t, rr.Header().Get(middleware.RequestIDHeader), 36)
	})
}
