package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/jakeadel/bank-demo/internal/adapter/http/dto"
)

// TransferService defines the behavior needed by TransferHandler.
type TransferService interface {
	TransferFunds(ctx context.Context, senderID, receiverID int64, amountDecimal string) error
}

// TransferHandler handles transfer HTTP requests.
type TransferHandler struct {
	transfers TransferService
}

// NewTransferHandler creates a new TransferHandler.
func NewTransferHandler(transfers TransferService) *TransferHandler {
	return &TransferHandler{transfers: transfers}
}

// Create moves funds between two accounts. Balance refreshes and history
// invalidation have already run by the time this returns.
func (h *TransferHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateTransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := h.transfers.TransferFunds(r.Context(), req.SenderID, req.ReceiverID, req.Amount); err != nil {
		writeError(w, mapOperationError(err), "failed to transfer funds", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
