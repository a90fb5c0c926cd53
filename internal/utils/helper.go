package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	appErrors "github.com/frameart/storefront/internal/errors"
	"github.com/frameart/storefront/internal/logger"
	"github.com/go-playground/validator/v10"
)

// MaxBodyBytes bounds request bodies. Artwork images arrive as data URLs.
const MaxBodyBytes = 8 << 20

func DecodeJSONBody(r *http.Request, dest any) error {
	log := logger.FromContext(r.Context())

	body, err := io.ReadAll(io.LimitReader(r.Body, MaxBodyBytes+1))
	if err != nil {
		log.Error("Failed to read request body", slog.String("error", err.Error()))

		return fmt.Errorf("failed to read request body: %w", err)
	}

	defer r.Body.Close()

	if len(body) > MaxBodyBytes {
		log.Warn("Request body too large", slog.Int("bytes", len(body)))

		return errors.New("request body too large")
	}

	if len(body) == 0 {
		log.Warn("Empty request body")

		return errors.New("request body cannot be empty")
	}

	if err := json.Unmarshal(body, dest); err != nil {
		log.Warn("Failed to parse request JSON", slog.String("error", err.Error()))

		return fmt.Errorf("invalid JSON format: %w", err)
	}

	return nil
}

func ValidateStruct(validate *validator.Validate, data any) error {
	if err := validate.Struct(data); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return validationErrs
		}

		return fmt.Errorf("unexpected validation error: %w", err)
	}

	return nil
}

// PathID returns the named path value or a validation error when it is blank.
func PathID(r *http.Request, name string) (string, error) {
	id := strings.TrimSpace(r.PathValue(name))
	if id == "" {
		return "", appErrors.ValidationError(fmt.Sprintf("%s is required", name))
	}

	return id, nil
}

// QueryPage reads the 1-based "page" query parameter, defaulting to 1.
func QueryPage(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("page")
	if raw == "" {
		return 1, nil
	}

	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 0, appErrors.ValidationError("page must be a positive integer")
	}

	return page, nil
}
