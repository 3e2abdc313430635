package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/bobmcallan/centavo/internal/interfaces"
)

// handleTransactions handles /api/transactions (GET list, POST create).
func (s *Server) handleTransactions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		filter, ok := parseTransactionFilter(w, r)
		if !ok {
			return
		}
		txs, err := s.app.LedgerService.ListTransactions(r.Context(), filter)
		if err != nil {
			WriteServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, txs)
	case http.MethodPost:
		var req struct {
			interfaces.TransactionRequest
			Amount string `json:"amount,omitempty"`
		}
		if !DecodeJSON(w, r, &req) {
			return
		}
		if !ResolveAmount(w, req.Amount, &req.AmountCents) {
			return
		}
		tx, err := s.app.LedgerService.CreateSimpleTransaction(r.Context(), req.TransactionRequest)
		if err != nil {
			WriteServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusCreated, tx)
	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPost)
	}
}

// handleRecurring handles POST /api/transactions/recurring.
func (s *Server) handleRecurring(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}
	var req interfaces.RecurringRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	instances, err := s.app.LedgerService.CreateRecurringTransaction(r.Context(), req)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, instances)
}

// handleInstallments handles POST /api/transactions/installments.
func (s *Server) handleInstallments(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}
	var req struct {
		interfaces.InstallmentRequest
		Total string `json:"total,omitempty"`
	}
	if !DecodeJSON(w, r, &req) {
		return
	}
	if !ResolveAmount(w, req.Total, &req.TotalCents) {
		return
	}
	instances, err := s.app.LedgerService.CreateInstallmentPurchase(r.Context(), req.InstallmentRequest)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, instances)
}

// handleSettle handles POST /api/transactions/{id}/settle.
func (s *Server) handleSettle(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}
	txID := PathParam(r, "/api/transactions/", "/settle")
	if txID == "" {
		WriteError(w, http.StatusBadRequest, "Transaction ID is required")
		return
	}
	var req struct {
		Settled bool `json:"settled"`
	}
	if !DecodeJSON(w, r, &req) {
		return
	}
	tx, err := s.app.LedgerService.SettleTransaction(r.Context(), txID, req.Settled)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, tx)
}

// handleGroups handles DELETE /api/groups/{id} — remove a whole logical
// intent (a recurrence series or installment plan) at once.
func (s *Server) handleGroups(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodDelete) {
		return
	}
	groupID := PathParam(r, "/api/groups/", "")
	if groupID == "" {
		WriteError(w, http.StatusBadRequest, "Group ID is required")
		return
	}
	deleted, err := s.app.LedgerService.DeleteTransactionGroup(r.Context(), groupID)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]int{"deleted": deleted})
}

// parseTransactionFilter builds a filter from query parameters. Dates use
// YYYY-MM-DD; `to` is exclusive.
func parseTransactionFilter(w http.ResponseWriter, r *http.Request) (interfaces.TransactionFilter, bool) {
	q := r.URL.Query()
	filter := interfaces.TransactionFilter{
		AccountID: q.Get("account_id"),
		CardID:    q.Get("card_id"),
		GroupID:   q.Get("group_id"),
		OrderBy:   q.Get("order_by"),
	}
	if v := q.Get("from"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			WriteError(w, http.StatusBadRequest, "Invalid 'from' date, expected YYYY-MM-DD")
			return filter, false
		}
		filter.From = t
	}
	if v := q.Get("to"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			WriteError(w, http.StatusBadRequest, "Invalid 'to' date, expected YYYY-MM-DD")
			return filter, false
		}
		filter.To = t
	}
	if v := q.Get("settled"); v != "" {
		settled, err := strconv.ParseBool(v)
		if err != nil {
			WriteError(w, http.StatusBadRequest, "Invalid 'settled' value, expected true or false")
			return filter, false
		}
		filter.Settled = &settled
	}
	if v := q.Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 0 {
			WriteError(w, http.StatusBadRequest, "Invalid 'limit' value")
			return filter, false
		}
		filter.Limit = limit
	}
	return filter, true
}
