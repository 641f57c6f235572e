package client

import (
	"context"
	"errors"
	"net/http"

	"github.com/futofind/futofind/internal/model"
)

// RegisterRequest is the body of POST /auth/register.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates an account. The response body is ignored; the user
// logs in afterwards.
func (c *Client) Register(ctx context.Context, req RegisterRequest) error {
	return c.sendJSON(ctx, http.MethodPost, "/auth/register", req, nil)
}

// Login exchanges credentials for a session.
func (c *Client) Login(ctx context.Context, email, password string) (*model.Session, error) {
	var s model.Session
	if err := c.sendJSON(ctx, http.MethodPost, "/auth/login", loginRequest{Email: email, Password: password}, &s); err != nil {
		return nil, err
	}
	if s.Token == "" {
		return nil, errors.New("login response carried no credential")
	}
	return &s, nil
}
