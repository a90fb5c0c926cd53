package utils

import (
	"errors"
	"log/slog"
	"net/http"

	appErrors "github.com/frameart/storefront/internal/errors"
	"github.com/frameart/storefront/internal/logger"
	"github.com/frameart/storefront/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

// ParseAndValidate decodes and validates the body into dest. On failure it
// has already written the error response.
func ParseAndValidate(r *http.Request, w http.ResponseWriter, dest any, validate *validator.Validate) bool {
	log := logger.FromContext(r.Context())

	if err := DecodeJSONBody(r, dest); err != nil {
		log.Warn("Invalid request", slog.String("error", err.Error()))
		response.Error(w, appErrors.BadRequestError("Invalid request body").WithDetail(err.Error()))

		return false
	}

	if err := ValidateStruct(validate, dest); err != nil {
		log.Warn("Validation failed", slog.String("error", err.Error()))

		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			response.ValidationError(w, validationErrs)
		} else {
			response.Error(w, appErrors.ValidationError("Invalid input data"))
		}

		return false
	}

	return true
}
