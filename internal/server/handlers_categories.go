package server

import (
	"net/http"

	"github.com/bobmcallan/centavo/internal/models"
)

// handleCategories handles /api/categories (GET list, POST create).
func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		categories, err := s.app.AccountService.ListCategories(r.Context())
		if err != nil {
			WriteServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, categories)
	case http.MethodPost:
		var req struct {
			Name string                 `json:"name"`
			Kind models.TransactionKind `json:"kind"`
		}
		if !DecodeJSON(w, r, &req) {
			return
		}
		category, err := s.app.AccountService.CreateCategory(r.Context(), req.Name, req.Kind)
		if err != nil {
			WriteServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusCreated, category)
	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPost)
	}
}

// routeCategories handles /api/categories/{id} (DELETE).
func (s *Server) routeCategories(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodDelete) {
		return
	}
	categoryID := PathParam(r, "/api/categories/", "")
	if categoryID == "" {
		WriteError(w, http.StatusBadRequest, "Category ID is required")
		return
	}
	if err := s.app.AccountService.DeleteCategory(r.Context(), categoryID); err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}
