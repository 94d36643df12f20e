package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/pratofeito/pratofeito/internal/domain"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error  string            `json:"error"`
	Errors []ValidationError `json:"errors,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, message string, status int, validationErrors []ValidationError) {
	respondJSON(w, status, ErrorResponse{Error: message, Errors: validationErrors})
}

// statusForError maps domain errors onto HTTP status codes. Authorization
// outranks state errors, so ErrForbidden is checked before the rule errors.
func statusForError(err error) int {
	switch {
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrOrderNotFound),
		errors.Is(err, domain.ErrRestaurantNotFound),
		errors.Is(err, domain.ErrProductNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrStatusConflict):
		return http.StatusConflict
	case errors.Is(err, domain.ErrProductUnavailable),
		errors.Is(err, domain.ErrMixedRestaurantCart),
		errors.Is(err, domain.ErrBelowMinimumOrder),
		errors.Is(err, domain.ErrMissingAddress),
		errors.Is(err, domain.ErrInvalidDeliveryType),
		errors.Is(err, domain.ErrInvalidPaymentMethod),
		errors.Is(err, domain.ErrInvalidStatus),
		errors.Is(err, domain.ErrInvalidStatusTransition):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
