package session

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	RoleAdmin    = "admin"
	RoleSupplier = "supplier"
	RoleCustomer = "customer"
)

var (
	ErrNoSession      = errors.New("not logged in")
	ErrSessionExpired = errors.New("session expired")
	ErrForbidden      = errors.New("insufficient permissions")
)

// LoginPath is where guards send users without a usable session.
const LoginPath = "/login"

type User struct {
	ID       string `json:"_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
}

// Session is one authenticated operator. The upstream API issued Token.
type Session struct {
	Token     string    `json:"token"`
	Role      string    `json:"role"`
	User      User      `json:"user"`
	ExpiresAt time.Time `json:"expiresAt,omitempty"`
}

// New builds a Session from a login answer. The token is decoded without
// verification (the upstream API owns the key) to learn its expiry and,
// when the answer lacks it, the role.
func New(token, role string, user User) *Session {
	s := &Session{Token: token, Role: role, User: user}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err == nil {
		if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
			s.ExpiresAt = exp.Time
		}
		if s.Role == "" {
			if r, ok := claims["role"].(string); ok {
				s.Role = r
			}
		}
	}
	return s
}

// Key identifies the session in ledgers and notification rooms.
func (s *Session) Key() string {
	if s.User.ID != "" {
		return s.User.ID
	}
	return s.User.Username
}

func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

// Authorize is the route guard: a live session holding one of roles.
func (s *Session) Authorize(now time.Time, roles ...string) error {
	if s == nil || s.Token == "" {
		return ErrNoSession
	}
	if s.Expired(now) {
		return ErrSessionExpired
	}
	for _, r := range roles {
		if s.Role == r {
			return nil
		}
	}
	return ErrForbidden
}

type ctxKey struct{}

func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

func FromContext(ctx context.Context) *Session {
	s, _ := ctx.Value(ctxKey{}).(*Session)
	return s
}
