package handler

import (
	"net/http"

	"marketplace-admin/internal/order"

	"github.com/go-chi/chi/v5"
)

// OrderHandler serves the admin order list.
type OrderHandler struct {
	svc order.Service
}

func NewOrderHandler(svc order.Service) *OrderHandler {
	return &OrderHandler{svc: svc}
}

func (h *OrderHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Get("/eligible", h.Eligible)
}

func queryOrders(r *http.Request) *order.Query {
	return &order.Query{
		Status: order.Status(r.URL.Query().Get("status")),
		Search: r.URL.Query().Get("q"),
	}
}

func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	orders, err := h.svc.GetOrders(r.Context(), queryOrders(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	if orders == nil {
		orders = []order.Order{}
	}
	writeJSON(w, http.StatusOK, orders)
}

// Eligible lists orders a carrier may be assigned to, without workflow state.
func (h *OrderHandler) Eligible(w http.ResponseWriter, r *http.Request) {
	orders, err := h.svc.GetOrders(r.Context(), nil)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, order.FilterEligible(orders))
}
