package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/bobmcallan/centavo/internal/common"
	"github.com/bobmcallan/centavo/internal/services/account"
	"github.com/bobmcallan/centavo/internal/services/ledger"
)

// ErrorResponse is the standard error format for REST API responses.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

// WriteError writes a JSON error response.
func WriteError(w http.ResponseWriter, statusCode int, message string) {
	WriteJSON(w, statusCode, ErrorResponse{Error: message})
}

// WriteErrorWithCode writes a JSON error response with an error code.
func WriteErrorWithCode(w http.ResponseWriter, statusCode int, message, code string) {
	WriteJSON(w, statusCode, ErrorResponse{Error: message, Code: code})
}

// RequireMethod validates the HTTP method and returns true if it matches.
// If it doesn't match, it writes a 405 response and returns false.
func RequireMethod(w http.ResponseWriter, r *http.Request, methods ...string) bool {
	for _, m := range methods {
		if r.Method == m {
			return true
		}
	}
	w.Header().Set("Allow", strings.Join(methods, ", "))
	WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
	return false
}

// DecodeJSON reads and decodes JSON from the request body into v.
// Returns false and writes a 400 error if decoding fails.
func DecodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if r.Body == nil {
		WriteError(w, http.StatusBadRequest, "Request body is required")
		return false
	}
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB limit
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid JSON: "+err.Error())
		return false
	}
	return true
}

// PathParam extracts a path parameter from the URL path.
// For a pattern like /api/accounts/{id}, calling PathParam(r, "/api/accounts/", "")
// extracts the {id} part.
func PathParam(r *http.Request, prefix, suffix string) string {
	path := r.URL.Path
	if !strings.HasPrefix(path, prefix) {
		return ""
	}
	rest := path[len(prefix):]
	if suffix != "" {
		idx := strings.Index(rest, suffix)
		if idx < 0 {
			return rest
		}
		rest = rest[:idx]
	}
	return strings.Trim(rest, "/")
}

// ResolveAmount fills cents from a decimal amount string ("12.34") when one
// was supplied. Request bodies may carry either representation; the string
// form wins when both are present. Returns false after writing a 400.
func ResolveAmount(w http.ResponseWriter, amount string, cents *int64) bool {
	if amount == "" {
		return true
	}
	v, err := common.ParseCents(amount)
	if err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return false
	}
	*cents = v
	return true
}

// WriteServiceError maps the ledger error taxonomy onto HTTP status codes.
// Compensation failures are reported as 500 with a distinct code so that
// clients never mistake an inconsistent ledger for an ordinary failure.
func WriteServiceError(w http.ResponseWriter, err error) {
	var cerr *ledger.CompensationError
	switch {
	case errors.As(err, &cerr):
		WriteErrorWithCode(w, http.StatusInternalServerError, err.Error(), "compensation_failed")
	case errors.Is(err, ledger.ErrAccountNotFound), errors.Is(err, ledger.ErrCardNotFound):
		WriteErrorWithCode(w, http.StatusNotFound, err.Error(), "not_found")
	case errors.Is(err, ledger.ErrCardInactive):
		WriteErrorWithCode(w, http.StatusUnprocessableEntity, err.Error(), "card_inactive")
	case errors.Is(err, ledger.ErrInstallmentMinimumNotMet):
		WriteErrorWithCode(w, http.StatusUnprocessableEntity, err.Error(), "installment_minimum_not_met")
	case errors.Is(err, ledger.ErrInvalidTransfer),
		errors.Is(err, ledger.ErrInvalidTransaction),
		errors.Is(err, ledger.ErrInvalidRecurrence),
		errors.Is(err, account.ErrInvalidInput):
		WriteErrorWithCode(w, http.StatusBadRequest, err.Error(), "invalid_request")
	case errors.Is(err, ledger.ErrTransferFailed):
		WriteErrorWithCode(w, http.StatusBadGateway, err.Error(), "transfer_failed")
	default:
		WriteError(w, http.StatusInternalServerError, err.Error())
	}
}
