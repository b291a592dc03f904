package handler

import (
	"net/http"

	"marketplace-admin/internal/offer"

	"github.com/go-chi/chi/v5"
)

type OfferHandler struct {
	svc offer.Service
}

func NewOfferHandler(svc offer.Service) *OfferHandler {
	return &OfferHandler{svc: svc}
}

func (h *OfferHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Post("/{id}/approve", h.Approve)
	r.Post("/{id}/reject", h.Reject)
}

type offerResponse struct {
	offer.Offer
	Actions []offer.Action `json:"actions"`
}

func withActions(o offer.Offer) offerResponse {
	actions := offer.Actions(o)
	if actions == nil {
		actions = []offer.Action{}
	}
	return offerResponse{Offer: o, Actions: actions}
}

func (h *OfferHandler) List(w http.ResponseWriter, r *http.Request) {
	offers, err := h.svc.List(r.Context(), offer.Status(r.URL.Query().Get("status")))
	if err != nil {
		writeError(w, r, err)
		return
	}
	out := make([]offerResponse, len(offers))
	for i, o := range offers {
		out[i] = withActions(o)
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *OfferHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in offer.Input
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, r, err)
		return
	}
	o, err := h.svc.Create(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, withActions(*o))
}

func (h *OfferHandler) Approve(w http.ResponseWriter, r *http.Request) {
	o, err := h.svc.Approve(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, withActions(*o))
}

func (h *OfferHandler) Reject(w http.ResponseWriter, r *http.Request) {
	o, err := h.svc.Reject(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, withActions(*o))
}
