package handler

import (
	"net/http"

	"marketplace-admin/internal/metrics"
	"marketplace-admin/internal/notify"
	"marketplace-admin/internal/session"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
)

// SystemHandler serves health, metrics and the notification stream.
type SystemHandler struct {
	metrics    *metrics.Registry
	sessions   *session.Manager
	workspaces *Workspaces
	hub        *notify.Hub
	upgrader   websocket.Upgrader
}

func NewSystemHandler(reg *metrics.Registry, sessions *session.Manager, ws *Workspaces, hub *notify.Hub, origins []string) *SystemHandler {
	allowed := make(map[string]bool, len(origins))
	for _, o := range origins {
		allowed[o] = true
	}
	return &SystemHandler{
		metrics:    reg,
		sessions:   sessions,
		workspaces: ws,
		hub:        hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || allowed[origin]
			},
		},
	}
}

func (h *SystemHandler) RegisterPublicRoutes(r chi.Router) {
	r.Get("/health", h.Health)
}

func (h *SystemHandler) RegisterRoutes(r chi.Router) {
	r.Get("/metrics", h.Metrics)
	r.Get("/ws/notifications", h.Notifications)
}

func (h *SystemHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type metricsResponse struct {
	metrics.Snapshot
	Sessions   int `json:"sessions"`
	Workspaces int `json:"workspaces"`
}

func (h *SystemHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	resp := metricsResponse{Snapshot: h.metrics.Snapshot(), Sessions: h.sessions.Len()}
	if h.workspaces != nil {
		resp.Workspaces = h.workspaces.Len()
	}
	writeJSON(w, http.StatusOK, resp)
}

// Notifications streams the caller's toasts over a websocket.
func (h *SystemHandler) Notifications(w http.ResponseWriter, r *http.Request) {
	s := session.FromContext(r.Context())
	if s == nil {
		writeError(w, r, session.ErrNoSession)
		return
	}
	h.hub.Serve(w, r, s.Key(), h.upgrader)
}
