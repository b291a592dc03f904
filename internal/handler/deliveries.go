package handler

import (
	"net/http"

	"marketplace-admin/internal/delivery"
	"marketplace-admin/internal/order"
	"marketplace-admin/internal/session"

	"github.com/go-chi/chi/v5"
)

// DeliveryHandler exposes the carrier assignment workflow of the caller's
// session.
type DeliveryHandler struct {
	workspaces *Workspaces
}

func NewDeliveryHandler(ws *Workspaces) *DeliveryHandler {
	return &DeliveryHandler{workspaces: ws}
}

func (h *DeliveryHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/refresh", h.Refresh)
	r.Get("/prompt", h.Prompt)
	r.Post("/prompt/confirm", h.Confirm)
	r.Post("/prompt/cancel", h.Cancel)
	r.Post("/{id}/select", h.Select)
}

func (h *DeliveryHandler) workflow(r *http.Request) (*delivery.Workflow, error) {
	s := session.FromContext(r.Context())
	if s == nil {
		return nil, session.ErrNoSession
	}
	return h.workspaces.For(r.Context(), s), nil
}

type promptResponse struct {
	Open   bool             `json:"open"`
	Prompt *delivery.Prompt `json:"prompt,omitempty"`
}

func (h *DeliveryHandler) List(w http.ResponseWriter, r *http.Request) {
	wf, err := h.workflow(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, wf.Views())
}

func (h *DeliveryHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	wf, err := h.workflow(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := wf.Refresh(r.Context()); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, wf.Views())
}

func (h *DeliveryHandler) Prompt(w http.ResponseWriter, r *http.Request) {
	wf, err := h.workflow(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	p, ok := wf.Prompt()
	resp := promptResponse{Open: ok}
	if ok {
		resp.Prompt = &p
	}
	writeJSON(w, http.StatusOK, resp)
}

type selectRequest struct {
	Carrier order.DeliveryMethod `json:"carrier"`
}

func (h *DeliveryHandler) Select(w http.ResponseWriter, r *http.Request) {
	wf, err := h.workflow(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req selectRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	p, err := wf.Select(chi.URLParam(r, "id"), req.Carrier)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, promptResponse{Open: true, Prompt: &p})
}

func (h *DeliveryHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	wf, err := h.workflow(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	updated, err := wf.Confirm(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *DeliveryHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	wf, err := h.workflow(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	wf.Cancel()
	w.WriteHeader(http.StatusNoContent)
}
