package server

import (
	"net/http"
	"strings"
)

// registerRoutes sets up all REST API routes on the mux.
func (s *Server) registerRoutes(mux *http.ServeMux) {
	// System
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/version", s.handleVersion)
	mux.HandleFunc("/api/config", s.handleConfig)
	mux.HandleFunc("/api/shutdown", s.handleShutdown)

	// Accounts
	mux.HandleFunc("/api/accounts", s.handleAccounts)
	mux.HandleFunc("/api/accounts/", s.routeAccounts)

	// Cards
	mux.HandleFunc("/api/cards", s.handleCards)
	mux.HandleFunc("/api/cards/", s.routeCards)

	// Categories
	mux.HandleFunc("/api/categories", s.handleCategories)
	mux.HandleFunc("/api/categories/", s.routeCategories)

	// Transactions
	mux.HandleFunc("/api/transactions", s.handleTransactions)
	mux.HandleFunc("/api/transactions/recurring", s.handleRecurring)
	mux.HandleFunc("/api/transactions/installments", s.handleInstallments)
	mux.HandleFunc("/api/transactions/", s.routeTransactions)
	mux.HandleFunc("/api/groups/", s.handleGroups)

	// Transfers
	mux.HandleFunc("/api/transfers", s.handleTransfers)

	// Dashboard
	mux.HandleFunc("/api/dashboard", s.handleDashboard)
}

// routeTransactions dispatches /api/transactions/{id}/... subroutes.
func (s *Server) routeTransactions(w http.ResponseWriter, r *http.Request) {
	if strings.HasSuffix(r.URL.Path, "/settle") {
		s.handleSettle(w, r)
		return
	}
	WriteError(w, http.StatusNotFound, "Not found")
}
