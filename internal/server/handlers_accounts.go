package server

import (
	"net/http"
)

// handleAccounts handles /api/accounts (GET list, POST create).
func (s *Server) handleAccounts(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		accounts, err := s.app.AccountService.ListAccounts(r.Context())
		if err != nil {
			WriteServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, accounts)
	case http.MethodPost:
		var req struct {
			Name                string `json:"name"`
			OpeningBalanceCents int64  `json:"opening_balance_cents"`
		}
		if !DecodeJSON(w, r, &req) {
			return
		}
		account, err := s.app.AccountService.CreateAccount(r.Context(), req.Name, req.OpeningBalanceCents)
		if err != nil {
			WriteServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusCreated, account)
	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPost)
	}
}

// routeAccounts handles /api/accounts/{id} (GET, PUT, DELETE).
func (s *Server) routeAccounts(w http.ResponseWriter, r *http.Request) {
	accountID := PathParam(r, "/api/accounts/", "")
	if accountID == "" {
		WriteError(w, http.StatusBadRequest, "Account ID is required")
		return
	}

	switch r.Method {
	case http.MethodGet:
		account, err := s.app.AccountService.GetAccount(r.Context(), accountID)
		if err != nil {
			WriteServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, account)
	case http.MethodPut:
		var req struct {
			Name string `json:"name"`
		}
		if !DecodeJSON(w, r, &req) {
			return
		}
		account, err := s.app.AccountService.UpdateAccount(r.Context(), accountID, req.Name)
		if err != nil {
			WriteServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, account)
	case http.MethodDelete:
		deactivated, err := s.app.AccountService.DeleteAccount(r.Context(), accountID)
		if err != nil {
			WriteServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, map[string]interface{}{
			"deleted":     !deactivated,
			"deactivated": deactivated,
		})
	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPut, http.MethodDelete)
	}
}
