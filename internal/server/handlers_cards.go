package server

import (
	"net/http"

	"github.com/bobmcallan/centavo/internal/models"
)

// handleCards handles /api/cards (GET list, POST create).
func (s *Server) handleCards(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		cards, err := s.app.AccountService.ListCards(r.Context())
		if err != nil {
			WriteServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, cards)
	case http.MethodPost:
		var card models.Card
		if !DecodeJSON(w, r, &card) {
			return
		}
		created, err := s.app.AccountService.CreateCard(r.Context(), &card)
		if err != nil {
			WriteServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusCreated, created)
	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPost)
	}
}

// routeCards handles /api/cards/{id} (GET, PUT, DELETE).
func (s *Server) routeCards(w http.ResponseWriter, r *http.Request) {
	cardID := PathParam(r, "/api/cards/", "")
	if cardID == "" {
		WriteError(w, http.StatusBadRequest, "Card ID is required")
		return
	}

	switch r.Method {
	case http.MethodGet:
		card, err := s.app.AccountService.GetCard(r.Context(), cardID)
		if err != nil {
			WriteServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, card)
	case http.MethodPut:
		var card models.Card
		if !DecodeJSON(w, r, &card) {
			return
		}
		card.ID = cardID
		updated, err := s.app.AccountService.UpdateCard(r.Context(), &card)
		if err != nil {
			WriteServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, updated)
	case http.MethodDelete:
		deactivated, err := s.app.AccountService.DeleteCard(r.Context(), cardID)
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
