package hayai

import (
	"context"
	"errors"
	"io"
	"net/http"
	"testing"

	"terminalcanvas/domain"
)

func TestAuthService_Login_ParsesIdentityAndTokens(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/login" || r.Method != http.MethodPost {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		io.WriteString(w, `{
			"success": true, "user_id": 7, "username": "mira",
			"displayName": "Mira", "access_token": "acc", "refresh_token": "ref",
			"message": "Giriş başarılı!"
		}`)
	})
	svc := NewAuthService(client)

	identity, tokens, err := svc.Login(context.Background(), "mira", "secret1")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if identity.UserID != 7 || identity.Username != "mira" || !identity.SignedIn() {
		t.Fatalf("unexpected identity: %+v", identity)
	}
	if identity.DisplayName != "Mira" {
		t.Fatalf("display name must decode from the camelCase wire field, got %q", identity.DisplayName)
	}
	if tokens.Access != "acc" || tokens.Refresh != "ref" {
		t.Fatalf("unexpected tokens: %+v", tokens)
	}
}

func TestAuthService_Login_UnauthorizedMapsToInvalidCredentials(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		io.WriteString(w, `{"detail": "Kullanıcı adı veya şifre hatalı"}`)
	})
	svc := NewAuthService(client)

	_, _, err := svc.Login(context.Background(), "mira", "wrong")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_EmptyInputFailsFast(t *testing.T) {
	called := false
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})
	svc := NewAuthService(client)

	if _, _, err := svc.Login(context.Background(), "  ", ""); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if called {
		t.Fatalf("empty credentials must not reach the network")
	}
}
