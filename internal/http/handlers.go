package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"tracker/internal/analytics"
	"tracker/internal/core"
	"tracker/internal/ledger"
	"tracker/internal/query"
)

const analyticsCacheKey = "analytics"

type transactionResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Amount    float64   `json:"amount"`
	Category  string    `json:"category"`
	Kind      string    `json:"kind"`
	CreatedAt time.Time `json:"createdAt"`
}

func toTransactionResponse(tx core.Transaction) transactionResponse {
	return transactionResponse{
		ID:        tx.ID,
		Title:     tx.Title,
		Amount:    tx.Amount,
		Category:  string(tx.Category),
		Kind:      string(tx.Kind),
		CreatedAt: tx.CreatedAt,
	}
}

type transactionRequest struct {
	Title    string      `json:"title"`
	Amount   json.Number `json:"amount"`
	Category string      `json:"category"`
	Kind     string      `json:"kind"`
}

type analyticsPayload struct {
	Totals      analytics.Totals          `json:"totals"`
	ByCategory  map[core.Category]float64 `json:"byCategory"`
	DailySeries []analytics.DayTotal      `json:"dailySeries"`
	Highest     *transactionResponse      `json:"highest,omitempty"`
	Lowest      *transactionResponse      `json:"lowest,omitempty"`
	Count       int                       `json:"count"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("Failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeMutationError maps domain errors onto HTTP statuses. Returns
// the persistence warning text when the mutation was applied anyway.
func writeMutationError(w http.ResponseWriter, err error) (warning string, handled bool) {
	switch {
	case err == nil:
		return "", false
	case errors.Is(err, ledger.ErrPersistFailed):
		// the in-memory change stuck, tell the caller but do not fail
		return err.Error(), false
	case errors.Is(err, core.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
		return "", true
	case errors.Is(err, core.ErrEmptyTitle),
		errors.Is(err, core.ErrInvalidAmount),
		errors.Is(err, core.ErrInvalidKind):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return "", true
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
		return "", true
	}
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	records := s.ledger.Snapshot()
	records = query.FilterByCategory(records, q.Get("category"))
	records = query.Sort(records, q.Get("sort"), q.Get("dir"))

	out := make([]transactionResponse, len(records))
	for i, tx := range records {
		out[i] = toTransactionResponse(tx)
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"transactions": out,
		"count":        len(out),
	})
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req transactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	tx, err := s.ledger.Add(r.Context(), req.Title, req.Amount.String(), req.Category, core.Kind(req.Kind))
	warning, handled := writeMutationError(w, err)
	if handled {
		return
	}
	s.analyticsCache.Invalidate()

	resp := map[string]any{"transaction": toTransactionResponse(tx)}
	if warning != "" {
		resp["warning"] = warning
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleUpdateTransaction(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req transactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	err := s.ledger.Update(r.Context(), id, req.Title, req.Amount.String(), req.Category)
	warning, handled := writeMutationError(w, err)
	if handled {
		return
	}
	s.analyticsCache.Invalidate()

	resp := map[string]any{"status": "ok"}
	if warning != "" {
		resp["warning"] = warning
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRemoveTransaction(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	err := s.ledger.Remove(r.Context(), id)
	warning, handled := writeMutationError(w, err)
	if handled {
		return
	}
	s.analyticsCache.Invalidate()

	resp := map[string]any{"status": "ok"}
	if warning != "" {
		resp["warning"] = warning
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	err := s.ledger.ResetAll(r.Context())
	warning, handled := writeMutationError(w, err)
	if handled {
		return
	}
	s.analyticsCache.Invalidate()

	resp := map[string]any{"status": "ok"}
	if warning != "" {
		resp["warning"] = warning
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAnalytics(w http.ResponseWriter, r *http.Request) {
	if payload, ok := s.analyticsCache.Get(analyticsCacheKey); ok {
		slog.DebugContext(r.Context(), "Analytics cache hit")
		writeJSON(w, http.StatusOK, payload)
		return
	}

	records := s.ledger.Snapshot()
	payload := analyticsPayload{
		Totals:      analytics.ComputeTotals(records),
		ByCategory:  analytics.CategoryTotals(records),
		DailySeries: analytics.DailySeries(records, s.now()),
		Count:       len(records),
	}
	if max, err := analytics.MaxByAmount(records); err == nil {
		resp := toTransactionResponse(max)
		payload.Highest = &resp
	}
	if min, err := analytics.MinByAmount(records); err == nil {
		resp := toTransactionResponse(min)
		payload.Lowest = &resp
	}

	s.analyticsCache.Set(analyticsCacheKey, payload)
	writeJSON(w, http.StatusOK, payload)
}
