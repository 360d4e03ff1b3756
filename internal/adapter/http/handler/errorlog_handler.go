package handler

import (
	"net/http"

	"github.com/jakeadel/bank-demo/internal/adapter/http/dto"
	"github.com/jakeadel/bank-demo/internal/usecase"
)

// ErrorLogHandler serves the operator error log.
type ErrorLogHandler struct {
	log *usecase.ErrorLog
}

// NewErrorLogHandler creates a new ErrorLogHandler.
func NewErrorLogHandler(log *usecase.ErrorLog) *ErrorLogHandler {
	return &ErrorLogHandler{log: log}
}

// List returns every recorded failure, oldest first.
func (h *ErrorLogHandler) List(w http.ResponseWriter, r *http.Request) {
	entries := h.log.Entries()
	if entries == nil {
		entries = []string{}
	}
	writeJSON(w, http.StatusOK, dto.ErrorLogResponse{Errors: entries})
}
