package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"marketplace-admin/internal/logger"
	"marketplace-admin/internal/session"
)

// AccessTokenCookie is read before the Authorization header.
const AccessTokenCookie = "access_token"

func ExtractAccessToken(r *http.Request) string {
	if cookie, err := r.Cookie(AccessTokenCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}

// Authenticate attaches the live session for the request's token, if any.
// It never rejects a request; RequireRole does that.
func Authenticate(m *session.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := ExtractAccessToken(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			s, err := m.Lookup(token)
			if err != nil {
				logger.FromCtx(r.Context()).Debug("no session for token")
				next.ServeHTTP(w, r)
				return
			}

			ctx := session.WithSession(r.Context(), s)
			ctx = logger.WithActor(ctx, s.Key())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole admits requests whose session holds one of roles. Missing or
// expired sessions get 401 with the login path to redirect to.
func RequireRole(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			err := session.FromContext(r.Context()).Authorize(time.Now(), roles...)
			switch {
			case err == nil:
				next.ServeHTTP(w, r)
			case errors.Is(err, session.ErrForbidden):
				writeJSON(w, http.StatusForbidden, map[string]string{"error": err.Error()})
			default:
				writeJSON(w, http.StatusUnauthorized, map[string]string{
					"error":    err.Error(),
					"redirect": session.LoginPath,
				})
			}
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
