package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/jakeadel/bank-demo/internal/adapter/backendclient"
	"github.com/jakeadel/bank-demo/internal/adapter/http/dto"
	"github.com/jakeadel/bank-demo/internal/domain"
)

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, message, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(dto.ErrorResponse{
		Error:   message,
		Message: details,
	})
}

// mapOperationError maps a console operation failure to an HTTP status.
// Backend rejections keep their status; local validation is a 400;
// anything else (transport to the backend) is a 502.
func mapOperationError(err error) int {
	var statusErr *backendclient.StatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode
	}

	switch {
	case errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrNegativeAmount):
		return http.StatusBadRequest
	default:
		return http.StatusBadGateway
	}
}

// accountIDParam parses the {id} URL parameter.
func accountIDParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}
