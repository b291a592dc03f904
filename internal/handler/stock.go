package handler

import (
	"net/http"
	"strconv"

	"marketplace-admin/internal/stock"

	"github.com/go-chi/chi/v5"
)

type StockHandler struct {
	svc stock.Service
}

func NewStockHandler(svc stock.Service) *StockHandler {
	return &StockHandler{svc: svc}
}

func (h *StockHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
}

func queryStock(r *http.Request) *stock.Query {
	q := r.URL.Query()
	desc, _ := strconv.ParseBool(q.Get("desc"))
	return &stock.Query{
		Criteria: stock.Criteria{
			Query:    q.Get("q"),
			Category: q.Get("category"),
			Status:   stock.Status(q.Get("status")),
		},
		SortBy: stock.SortField(q.Get("sort")),
		Desc:   desc,
	}
}

type stockItemResponse struct {
	stock.Item
	Status stock.Status `json:"status"`
}

func withStatus(items []stock.Item) []stockItemResponse {
	out := make([]stockItemResponse, len(items))
	for i, it := range items {
		out[i] = stockItemResponse{Item: it, Status: it.Status()}
	}
	return out
}

func (h *StockHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.List(r.Context(), queryStock(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, withStatus(items))
}

func (h *StockHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in stock.Input
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, r, err)
		return
	}
	item, err := h.svc.Create(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, stockItemResponse{Item: *item, Status: item.Status()})
}

func (h *StockHandler) Update(w http.ResponseWriter, r *http.Request) {
	var in stock.Input
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, r, err)
		return
	}
	item, err := h.svc.Update(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stockItemResponse{Item: *item, Status: item.Status()})
}

func (h *StockHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
