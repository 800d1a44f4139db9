package hayai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"terminalcanvas/app"
	"terminalcanvas/domain"
)

// authService implements app.AuthService using the HayAI API.
type authService struct {
	client *Client
}

// NewAuthService creates an AuthService backed by HayAI.
func NewAuthService(client *Client) *authService {
	return &authService{client: client}
}

// loginResponse mirrors the backend's login payload. The backend camelCases
// displayName on output while accepting snake_case on input, so the decode
// tag differs from the request bodies. Tokens are optional: older backends
// issue none and the session is still valid.
type loginResponse struct {
	Success      bool   `json:"success"`
	UserID       int    `json:"user_id"`
	Username     string `json:"username"`
	DisplayName  string `json:"displayName"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	Message      string `json:"message"`
}

func (s *authService) Login(ctx context.Context, username, password string) (app.Identity, app.Tokens, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return app.Identity{}, app.Tokens{}, domain.ErrInvalidCredentials
	}

	body := map[string]string{"username": username, "password": password}
	data, err := s.client.Post(ctx, "/login", body)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized {
			return app.Identity{}, app.Tokens{}, domain.ErrInvalidCredentials
		}
		return app.Identity{}, app.Tokens{}, fmt.Errorf("logging in: %w", err)
	}

	return parseLogin(data)
}

func (s *authService) Register(ctx context.Context, reg app.Registration) (app.Identity, app.Tokens, error) {
	body := map[string]any{
		"username":       strings.TrimSpace(reg.Username),
		"email":          strings.TrimSpace(reg.Email),
		"password":       reg.Password,
		"display_name":   strings.TrimSpace(reg.DisplayName),
		"age_verified":   reg.AgeVerified,
		"terms_accepted": reg.TermsAccepted,
	}
	data, err := s.client.Post(ctx, "/register", body)
	if err != nil {
		return app.Identity{}, app.Tokens{}, fmt.Errorf("registering: %w", err)
	}

	return parseLogin(data)
}

func parseLogin(data []byte) (app.Identity, app.Tokens, error) {
	var resp loginResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return app.Identity{}, app.Tokens{}, fmt.Errorf("parsing login response: %w", err)
	}
	if !resp.Success || resp.UserID == 0 {
		return app.Identity{}, app.Tokens{}, domain.ErrInvalidCredentials
	}

	identity := app.Identity{
		UserID:      resp.UserID,
		Username:    resp.Username,
		DisplayName: resp.DisplayName,
	}
	tokens := app.Tokens{
		Access:  resp.AccessToken,
		Refresh: resp.RefreshToken,
	}
	return identity, tokens, nil
}
