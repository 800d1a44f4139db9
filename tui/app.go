// Package tui wires the views into the root Bubble Tea model.
package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"terminalcanvas/app"
	"terminalcanvas/tui/common"
	"terminalcanvas/tui/gallery"
	"terminalcanvas/tui/login"
	"terminalcanvas/tui/search"
	"terminalcanvas/tui/upload"
)

// SessionStore persists the signed-in session across runs.
type SessionStore interface {
	SaveSession(identity app.Identity, tokens app.Tokens) error
	ClearSession() error
}

// Deps holds all dependencies the TUI needs. Plain struct, not a DI container.
type Deps struct {
	Auth     app.AuthService
	Accounts app.AccountService
	Artworks app.ArtworkService
	Users    app.SearchService
	Sessions SessionStore

	// Identity is the session restored at startup; zero means signed out.
	Identity app.Identity
}

type activeView int

const (
	loginView activeView = iota
	galleryView
	searchView
	uploadView
)

// App is the root Bubble Tea model. It routes between sub-views.
type App struct {
	deps   Deps
	active activeView

	login   login.Model
	gallery gallery.Model
	search  search.Model
	upload  upload.Model

	keys   common.KeyMap
	width  int
	height int
}

// NewApp creates the root model with all dependencies wired.
func NewApp(deps Deps) App {
	active := loginView
	if deps.Identity.SignedIn() {
		active = galleryView
	}
	return App{
		deps:    deps,
		active:  active,
		login:   login.New(deps.Auth),
		gallery: gallery.New(deps.Accounts, deps.Artworks, deps.Identity),
		search:  search.New(deps.Users),
		keys:    common.DefaultKeyMap(),
	}
}

// Init delegates to the starting sub-model.
func (a App) Init() tea.Cmd {
	if a.active == loginView {
		return a.login.Init()
	}
	return a.gallery.Init()
}

// Update handles messages and routes to the active sub-model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.gallery, _ = a.gallery.Update(msg)
		a.search, _ = a.search.Update(msg)
		a.login, _ = a.login.Update(msg)
		a.upload, _ = a.upload.Update(msg)
		return a, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.gallery, cmd = a.gallery.Update(msg)
		return a, cmd

	case tea.KeyMsg:
		if a.active == searchView && msg.String() == "esc" {
			a.search = a.search.Reset()
			a.active = galleryView
			return a, nil
		}
		if updated, cmd, handled := a.handleGlobalKey(msg); handled {
			return updated, cmd
		}

	case login.DoneMsg:
		return a.handleSignedIn(msg)

	case search.SelectUserMsg:
		// Leaving the directory tears down its timers and in-flight request.
		a.search = a.search.Reset()
		a.active = galleryView
		var cmd tea.Cmd
		a.gallery, cmd = a.gallery.Update(gallery.OpenProfileMsg{UserID: msg.UserID})
		return a, cmd

	case upload.DoneMsg:
		a.active = galleryView
		if msg.Cancelled || msg.Err != nil {
			return a, nil
		}
		var cmd tea.Cmd
		a.gallery, cmd = a.gallery.Update(gallery.ArtworkCreatedMsg{Artwork: msg.Artwork})
		return a, cmd
	}

	// Delegate to the active sub-model.
	var cmd tea.Cmd
	switch a.active {
	case loginView:
		a.login, cmd = a.login.Update(msg)
	case galleryView:
		a.gallery, cmd = a.gallery.Update(msg)
	case searchView:
		a.search, cmd = a.search.Update(msg)
	case uploadView:
		a.upload, cmd = a.upload.Update(msg)
	}
	return a, cmd
}

// handleGlobalKey routes the view-switching keys. Text-entry views and modal
// gallery states keep every key for themselves.
func (a App) handleGlobalKey(msg tea.KeyMsg) (App, tea.Cmd, bool) {
	if a.active != galleryView || a.gallery.CapturesKeys() {
		return a, nil, false
	}

	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit, true

	case key.Matches(msg, a.keys.Search):
		a.active = searchView
		a.search = a.search.Reset()
		return a, a.search.Init(), true

	case key.Matches(msg, a.keys.Upload):
		if !a.gallery.Identity().SignedIn() {
			return a, nil, false
		}
		a.active = uploadView
		a.upload = upload.New(a.deps.Artworks, a.gallery.Identity().UserID)
		return a, a.upload.Init(), true

	case key.Matches(msg, a.keys.Logout):
		return a.handleLogout()
	}

	return a, nil, false
}

func (a App) handleSignedIn(msg login.DoneMsg) (tea.Model, tea.Cmd) {
	if a.deps.Sessions != nil {
		// Persisting the session is best-effort; a failure only means the
		// user signs in again next run.
		_ = a.deps.Sessions.SaveSession(msg.Identity, msg.Tokens)
	}
	a.active = galleryView
	var cmd tea.Cmd
	a.gallery, cmd = a.gallery.SetIdentity(msg.Identity)
	return a, cmd
}

func (a App) handleLogout() (App, tea.Cmd, bool) {
	if !a.gallery.Identity().SignedIn() {
		return a, nil, false
	}
	if a.deps.Sessions != nil {
		_ = a.deps.Sessions.ClearSession()
	}
	a.active = loginView
	a.login = login.New(a.deps.Auth)
	var cmd tea.Cmd
	a.gallery, cmd = a.gallery.SetIdentity(app.Identity{})
	return a, tea.Batch(cmd, a.login.Init()), true
}

// View renders the active sub-model.
func (a App) View() string {
	switch a.active {
	case loginView:
		return a.login.View()
	case searchView:
		return a.search.View()
	case uploadView:
		return a.upload.View()
	default:
		return a.gallery.View()
	}
}
