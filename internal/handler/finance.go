package handler

import (
	"net/http"
	"time"

	"marketplace-admin/internal/api"
	"marketplace-admin/internal/finance"

	"github.com/go-chi/chi/v5"
)

type FinanceHandler struct {
	svc finance.Service
}

func NewFinanceHandler(svc finance.Service) *FinanceHandler {
	return &FinanceHandler{svc: svc}
}

func (h *FinanceHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/summary", h.Summary)
}

// queryFinance reads type, from and to (YYYY-MM-DD, inclusive).
func queryFinance(r *http.Request) (*finance.Query, error) {
	q := r.URL.Query()
	fq := &finance.Query{Type: finance.EntryType(q.Get("type"))}
	if fq.Type != "" && !fq.Type.Valid() {
		return nil, api.Invalid("type", "must be Income or Expense")
	}
	if v := q.Get("from"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return nil, api.Invalid("from", "must be a date (YYYY-MM-DD)")
		}
		fq.From = t
	}
	if v := q.Get("to"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return nil, api.Invalid("to", "must be a date (YYYY-MM-DD)")
		}
		fq.To = t.Add(24*time.Hour - time.Nanosecond)
	}
	return fq, nil
}

func (h *FinanceHandler) List(w http.ResponseWriter, r *http.Request) {
	q, err := queryFinance(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	entries, err := h.svc.List(r.Context(), q)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func (h *FinanceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in finance.Input
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, r, err)
		return
	}
	e, err := h.svc.Create(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, e)
}

func (h *FinanceHandler) Summary(w http.ResponseWriter, r *http.Request) {
	q, err := queryFinance(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	s, err := h.svc.Summary(r.Context(), q)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s)
}
