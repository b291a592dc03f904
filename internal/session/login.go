package session

import (
	"context"
	"errors"
	"strings"

	"marketplace-admin/internal/api"
	"marketplace-admin/internal/logger"

	"go.uber.org/zap"
)

// Poster is the slice of the API client used to log in.
type Poster interface {
	Post(ctx context.Context, path string, body, out any) error
}

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
	Role  string `json:"role"`
	User  User   `json:"user"`
}

// Login exchanges credentials for a Session via POST /api/user/login.
func Login(ctx context.Context, client Poster, creds Credentials) (*Session, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "session"),
		zap.String("method", "Login"),
		zap.String("email", creds.Email),
	)

	creds.Email = strings.TrimSpace(creds.Email)
	if creds.Email == "" {
		return nil, api.Invalid("email", "is required")
	}
	if creds.Password == "" {
		return nil, api.Invalid("password", "is required")
	}

	var resp loginResponse
	if err := client.Post(ctx, "/api/user/login", creds, &resp); err != nil {
		log.Warn("login failed", zap.Error(err))
		return nil, err
	}
	if resp.Token == "" {
		log.Error("login response without token")
		return nil, errors.New("login response did not include a token")
	}

	s := New(resp.Token, strings.ToLower(resp.Role), resp.User)
	log.Info("login success", zap.String("role", s.Role))
	return s, nil
}
