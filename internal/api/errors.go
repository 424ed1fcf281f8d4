package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"jyotish-engine/internal/domain"
	"jyotish-engine/internal/muhurta"
	"jyotish-engine/internal/storage"
)

// errorResponse is the JSON body for all failures.
type errorResponse struct {
	Error string `json:"error"`
}

// statusFor maps typed engine and storage errors to HTTP status codes.
// Unknown errors are internal.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidTimeFormat),
		errors.Is(err, domain.ErrUnsupportedHouseSystem),
		errors.Is(err, domain.ErrUnsupportedAyanamsa),
		errors.Is(err, domain.ErrArithmeticBoundary),
		errors.Is(err, muhurta.ErrUnknownGoal),
		errors.Is(err, storage.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrUnresolvableLocation),
		errors.Is(err, storage.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, storage.ErrDuplicateKey):
		return http.StatusConflict
	case errors.Is(err, domain.ErrEphemerisProvider):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		s.logger.Printf("internal error: %v", err)
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
