package handler

import (
	"net/http"
	"time"

	"marketplace-admin/internal/logger"
	"marketplace-admin/internal/middleware"
	"marketplace-admin/internal/session"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// AuthHandler logs operators in against the marketplace API and keeps their
// sessions.
type AuthHandler struct {
	client   session.Poster
	sessions *session.Manager
	secure   bool
}

func NewAuthHandler(client session.Poster, sessions *session.Manager, secureCookies bool) *AuthHandler {
	return &AuthHandler{client: client, sessions: sessions, secure: secureCookies}
}

func (h *AuthHandler) RegisterRoutes(r chi.Router) {
	r.Post("/auth/login", h.Login)
	r.Post("/auth/logout", h.Logout)
}

type loginResponse struct {
	Token     string       `json:"token"`
	Role      string       `json:"role"`
	User      session.User `json:"user"`
	ExpiresAt *time.Time   `json:"expiresAt,omitempty"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var creds session.Credentials
	if err := decodeJSON(r, &creds); err != nil {
		writeError(w, r, err)
		return
	}

	s, err := session.Login(r.Context(), h.client, creds)
	if err != nil {
		writeError(w, r, err)
		return
	}
	h.sessions.Start(s)

	cookie := &http.Cookie{
		Name:     middleware.AccessTokenCookie,
		Value:    s.Token,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteLaxMode,
	}
	resp := loginResponse{Token: s.Token, Role: s.Role, User: s.User}
	if !s.ExpiresAt.IsZero() {
		cookie.Expires = s.ExpiresAt
		resp.ExpiresAt = &s.ExpiresAt
	}
	http.SetCookie(w, cookie)

	logger.FromCtx(r.Context()).Info("operator logged in",
		zap.String("user", s.Key()),
		zap.String("role", s.Role),
	)
	writeJSON(w, http.StatusOK, resp)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if token := middleware.ExtractAccessToken(r); token != "" {
		h.sessions.End(token)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.AccessTokenCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secure,
	})
	writeJSON(w, http.StatusOK, map[string]string{"redirect": session.LoginPath})
}
