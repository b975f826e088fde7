/**
 * @description
 * This file defines the HTTP handlers for the loan-proxy-service's API
 * endpoints. Handlers are responsible for parsing requests, calling the
 * appropriate service method, and writing the response — including relaying
 * Mambu's own status and body when the upstream call fails.
 *
 * @dependencies
 * - Standard Go libraries for HTTP, JSON, etc.
 * - The service's internal packages for app logic and the Mambu client's
 *   error types.
 */
package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/lendview/loan-proxy-service/internal/domain"
	"github.com/lendview/loan-proxy-service/pkg/mambuclient"
)

// LoanService defines the operations the handlers depend on. It is
// implemented by app.LoanService.
type LoanService interface {
	SearchLoans(ctx context.Context, req domain.SearchRequest) (*domain.SearchLoansResult, error)
	ChangeLoanState(ctx context.Context, loanID, action, notes string) (*domain.UpstreamResult, error)
}

// LoanHandler holds the dependencies for the loan proxy handlers.
type LoanHandler struct {
	service LoanService
	logger  *slog.Logger
}

// NewLoanHandler creates a new LoanHandler.
func NewLoanHandler(service LoanService, logger *slog.Logger) *LoanHandler {
	return &LoanHandler{service: service, logger: logger}
}

// SearchLoansRequest defines the expected JSON body for the loan search route.
type SearchLoansRequest struct {
	FilterCriteria  []domain.FilterCriterion `json:"filterCriteria"`
	SortingCriteria *domain.SortingCriteria  `json:"sortingCriteria"`
}

// SearchLoans handles POST /api/loans-search: it validates the search
// criteria, delegates to the service, and returns the aggregated payload.
func (h *LoanHandler) SearchLoans(w http.ResponseWriter, r *http.Request) {
	var req SearchLoansRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	if req.FilterCriteria == nil {
		writeError(w, http.StatusBadRequest, "filterCriteria is required.")
		return
	}

	result, err := h.service.SearchLoans(r.Context(), domain.SearchRequest{
		FilterCriteria:  req.FilterCriteria,
		SortingCriteria: req.SortingCriteria,
	})
	if err != nil {
		h.writeUpstreamError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// ChangeLoanStateRequest defines the expected JSON body for the state-change route.
type ChangeLoanStateRequest struct {
	LoanAccountID string `json:"loanAccountId"`
	Action        string `json:"action"`
	Notes         string `json:"notes"`
}

// ChangeLoanState handles POST /api/loan-change-state: it validates the
// request and relays Mambu's response verbatim, success or failure.
func (h *LoanHandler) ChangeLoanState(w http.ResponseWriter, r *http.Request) {
	var req ChangeLoanStateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	if req.LoanAccountID == "" || req.Action == "" {
		writeError(w, http.StatusBadRequest, "loanAccountId and action are required.")
		return
	}

	result, err := h.service.ChangeLoanState(r.Context(), req.LoanAccountID, req.Action, req.Notes)
	if err != nil {
		h.writeUpstreamError(w, err)
		return
	}

	writeRaw(w, result.Status, result.Body)
}

// writeUpstreamError maps a service error onto the proxy's failure taxonomy:
// an upstream response is relayed verbatim, an unreachable upstream is 503,
// and anything else is an internal error.
func (h *LoanHandler) writeUpstreamError(w http.ResponseWriter, err error) {
	if apiErr, ok := mambuclient.AsAPIError(err); ok {
		h.logger.Error("relaying mambu error response", "status", apiErr.Status)
		writeRaw(w, apiErr.Status, apiErr.Body)
		return
	}
	if errors.Is(err, mambuclient.ErrNoResponse) {
		h.logger.Error("no response from mambu", "error", err)
		writeError(w, http.StatusServiceUnavailable, "No response from Mambu API.")
		return
	}
	h.logger.Error("error in proxy processing", "error", err)
	writeError(w, http.StatusInternalServerError, "Internal server error.")
}

// writeJSON is a helper to write JSON responses.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// If encoding fails, we can't send a JSON error, so just log it.
		http.Error(w, `{"error":"Failed to encode response"}`, http.StatusInternalServerError)
	}
}

// writeError writes the proxy's own error envelope.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeRaw relays an upstream status and body without reserialization.
func writeRaw(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if len(body) > 0 {
		_, _ = w.Write(body)
	}
}
