package api

import (
	"errors"
	"net/http"

	"github.com/avetrov/facilityhub/internal/domain"
)

// statusFor maps the core error taxonomy onto HTTP codes: validation
// failures are the caller's to fix, missing ids are 404, anything else is
// infrastructure.
func statusFor(err error) int {
	switch {
	case domain.IsValidation(err):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrAccountNotFound),
		errors.Is(err, domain.ErrFacilityNotFound),
		errors.Is(err, domain.ErrBookingNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidWindow):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
