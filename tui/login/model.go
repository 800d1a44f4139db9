// Package login implements the sign-in and registration forms.
package login

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"terminalcanvas/app"
	"terminalcanvas/domain"
)

type mode int

const (
	signInMode mode = iota
	registerMode
)

// DoneMsg is sent when the user is signed in. It is never sent on failure;
// failures stay inside the form.
type DoneMsg struct {
	Identity app.Identity
	Tokens   app.Tokens
}

type authResultMsg struct {
	Identity app.Identity
	Tokens   app.Tokens
	Err      error
}

// Field indexes for the register form. The sign-in form uses the first two.
const (
	fieldUsername = iota
	fieldPassword
	fieldEmail
	fieldDisplayName
	fieldCount
)

// Model holds the state for the auth forms.
type Model struct {
	auth app.AuthService

	mode       mode
	inputs     []textinput.Model
	focus      int
	consent    bool // grown-up permission + terms, register mode only
	submitting bool
	errText    string
}

// New creates the sign-in form.
func New(auth app.AuthService) Model {
	inputs := make([]textinput.Model, fieldCount)

	username := textinput.New()
	username.Placeholder = "username"
	username.CharLimit = 32
	username.Focus()
	inputs[fieldUsername] = username

	password := textinput.New()
	password.Placeholder = "password"
	password.CharLimit = 64
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'
	inputs[fieldPassword] = password

	email := textinput.New()
	email.Placeholder = "parent email"
	email.CharLimit = 128
	inputs[fieldEmail] = email

	display := textinput.New()
	display.Placeholder = "artist name (optional)"
	display.CharLimit = 48
	inputs[fieldDisplayName] = display

	return Model{auth: auth, inputs: inputs}
}

// Init starts cursor blinking.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) fieldOrder() []int {
	if m.mode == registerMode {
		return []int{fieldUsername, fieldEmail, fieldPassword, fieldDisplayName}
	}
	return []int{fieldUsername, fieldPassword}
}

// Update handles messages for the auth forms.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case authResultMsg:
		m.submitting = false
		if msg.Err != nil {
			m.errText = authErrorText(msg.Err)
			return m, nil
		}
		return m, func() tea.Msg {
			return DoneMsg{Identity: msg.Identity, Tokens: msg.Tokens}
		}

	case tea.KeyMsg:
		if m.submitting {
			return m, nil
		}
		switch msg.String() {
		case "tab", "down":
			return m.moveFocus(1), nil
		case "shift+tab", "up":
			return m.moveFocus(-1), nil
		case "ctrl+r":
			m.mode = registerMode
			m.errText = ""
			return m.setFocus(0), nil
		case "ctrl+s", "esc":
			m.mode = signInMode
			m.errText = ""
			m.consent = false
			return m.setFocus(0), nil
		case "ctrl+t":
			if m.mode == registerMode {
				m.consent = !m.consent
			}
			return m, nil
		case "enter":
			return m.submit()
		}
	}

	var cmd tea.Cmd
	order := m.fieldOrder()
	idx := order[m.focus]
	m.inputs[idx], cmd = m.inputs[idx].Update(msg)
	return m, cmd
}

func (m Model) moveFocus(delta int) Model {
	order := m.fieldOrder()
	next := (m.focus + delta + len(order)) % len(order)
	return m.setFocus(next)
}

func (m Model) setFocus(focus int) Model {
	order := m.fieldOrder()
	if focus >= len(order) {
		focus = 0
	}
	m.focus = focus
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
	m.inputs[order[focus]].Focus()
	return m
}

func (m Model) submit() (Model, tea.Cmd) {
	username := strings.TrimSpace(m.inputs[fieldUsername].Value())
	password := m.inputs[fieldPassword].Value()

	if m.mode == signInMode {
		if username == "" || password == "" {
			m.errText = "Please fill in your username and password."
			return m, nil
		}
		m.submitting = true
		m.errText = ""
		auth := m.auth
		return m, func() tea.Msg {
			identity, tokens, err := auth.Login(context.Background(), username, password)
			return authResultMsg{Identity: identity, Tokens: tokens, Err: err}
		}
	}

	email := strings.TrimSpace(m.inputs[fieldEmail].Value())
	if msg, ok := validateRegistration(username, email, password); !ok {
		m.errText = msg
		return m, nil
	}
	if !m.consent {
		m.errText = "Ask a grown-up first, then press ctrl+t to accept the rules."
		return m, nil
	}
	reg := app.Registration{
		Username:      username,
		Email:         email,
		Password:      password,
		DisplayName:   strings.TrimSpace(m.inputs[fieldDisplayName].Value()),
		AgeVerified:   m.consent,
		TermsAccepted: m.consent,
	}
	m.submitting = true
	m.errText = ""
	auth := m.auth
	return m, func() tea.Msg {
		identity, tokens, err := auth.Register(context.Background(), reg)
		return authResultMsg{Identity: identity, Tokens: tokens, Err: err}
	}
}

// validateRegistration applies the same client-side rules the backend
// enforces, so obvious mistakes fail before a round trip.
func validateRegistration(username, email, password string) (string, bool) {
	switch {
	case len(username) < 3 || len(username) > 20:
		return "Username needs 3 to 20 characters.", false
	case !usernameOK(username):
		return "Username can only use letters, numbers, and _.", false
	case email == "" || !strings.Contains(email, "@"):
		return "Please enter a valid email.", false
	case len(password) < 6:
		return "Password needs at least 6 characters.", false
	}
	return "", true
}

func usernameOK(username string) bool {
	for _, r := range username {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
		default:
			return false
		}
	}
	return true
}

func authErrorText(err error) string {
	if errors.Is(err, domain.ErrInvalidCredentials) {
		return "That username or password doesn't match. Try again!"
	}
	return "Couldn't reach the gallery. Try again in a moment!"
}
