package api

import (
	"context"
	"fmt"
	"net/http"
)

// User is the identity the auth service reports.
type User struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	IsPremium bool   `json:"is_premium"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	User    *User  `json:"user"`
}

// authenticates with email and password; the session cookie is stored
// in the client's jar
func (c *Backend) Login(ctx context.Context, email, password string) (*User, error) {
	var resp userResponse
	if err := c.doJSON(ctx, http.MethodPost, "/auth/login", loginRequest{Email: email, Password: password}, &resp); err != nil {
		return nil, err
	}

	if !resp.Success || resp.User == nil {
		return nil, fmt.Errorf("login rejected: %s", resp.Message)
	}

	return resp.User, nil
}

// creates an account and signs it in
func (c *Backend) Register(ctx context.Context, name, email, password string) (*User, error) {
	var resp userResponse
	if err := c.doJSON(ctx, http.MethodPost, "/auth/register", registerRequest{Name: name, Email: email, Password: password}, &resp); err != nil {
		return nil, err
	}

	if !resp.Success || resp.User == nil {
		return nil, fmt.Errorf("registration rejected: %s", resp.Message)
	}

	return resp.User, nil
}

// clears the server-side session
func (c *Backend) Logout(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodPost, "/auth/logout", nil, nil)
}

// fetches the identity bound to the current session cookie
func (c *Backend) CurrentUser(ctx context.Context) (*User, error) {
	var resp userResponse
	if err := c.doJSON(ctx, http.MethodGet, "/auth/me", nil, &resp); err != nil {
		return nil, err
	}

	if !resp.Success || resp.User == nil {
		return nil, fmt.Errorf("no authenticated user")
	}

	return resp.User, nil
}
