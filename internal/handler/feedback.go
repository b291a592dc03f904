package handler

import (
	"net/http"
	"strconv"

	"marketplace-admin/internal/feedback"

	"github.com/go-chi/chi/v5"
)

type FeedbackHandler struct {
	svc feedback.Service
}

func NewFeedbackHandler(svc feedback.Service) *FeedbackHandler {
	return &FeedbackHandler{svc: svc}
}

func (h *FeedbackHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Get("/stats", h.Stats)
	r.Delete("/{id}", h.Delete)
}

func (h *FeedbackHandler) List(w http.ResponseWriter, r *http.Request) {
	minRating, _ := strconv.Atoi(r.URL.Query().Get("minRating"))
	items, err := h.svc.List(r.Context(), minRating)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *FeedbackHandler) Stats(w http.ResponseWriter, r *http.Request) {
	s, err := h.svc.Stats(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s)
}

func (h *FeedbackHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
