package app

import "context"

// Tokens are the bearer credentials issued at login.
type Tokens struct {
	Access  string
	Refresh string
}

// Registration is the payload for creating a new account.
type Registration struct {
	Username      string
	Email         string
	Password      string
	DisplayName   string
	AgeVerified   bool
	TermsAccepted bool
}

// AuthService signs users in and registers new accounts.
type AuthService interface {
	// Login exchanges a username/password pair for a session.
	Login(ctx context.Context, username, password string) (Identity, Tokens, error)

	// Register creates an account and signs it in.
	Register(ctx context.Context, reg Registration) (Identity, Tokens, error)
}
