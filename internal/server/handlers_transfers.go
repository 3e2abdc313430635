package server

import (
	"net/http"

	"github.com/bobmcallan/centavo/internal/interfaces"
)

// handleTransfers handles POST /api/transfers. A degraded success (balances
// moved, history missing) still returns 200; the result carries the flags.
func (s *Server) handleTransfers(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}
	var req struct {
		interfaces.TransferRequest
		Amount string `json:"amount,omitempty"`
	}
	if !DecodeJSON(w, r, &req) {
		return
	}
	if !ResolveAmount(w, req.Amount, &req.AmountCents) {
		return
	}
	result, err := s.app.LedgerService.Transfer(r.Context(), req.TransferRequest)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, result)
}
