// Package search implements the artist directory view: a debounced,
// cancellable user search with stale-result suppression.
package search

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"terminalcanvas/app"
	"terminalcanvas/domain"
	"terminalcanvas/tui/common"
)

// DebounceDelay is how long the query must stay quiet before a request fires.
const DebounceDelay = 350 * time.Millisecond

// minQueryLen is the shortest non-empty query worth sending. An empty query
// is still valid: the backend answers it with a default artist set.
const minQueryLen = 2

type status int

const (
	statusIdle status = iota
	statusTooShort
	statusLoading
	statusError
	statusReady
)

// SelectUserMsg is sent to the root model when the user picks a result.
type SelectUserMsg struct {
	UserID int
}

// debounceFiredMsg is a debounce timer expiring. Gen identifies the timer;
// a stale generation means the timer was superseded by further typing.
type debounceFiredMsg struct {
	Gen int
}

// resultsMsg carries a completed search response. Seq ties it to the request
// that produced it; a stale sequence is discarded without side effects.
type resultsMsg struct {
	Seq      int
	Profiles []app.Profile
	Err      error
}

// Model holds one search session. It owns its debounce generation and the
// cancellation handle of the in-flight request; Reset tears both down when
// the view is left.
type Model struct {
	users app.SearchService

	input   textinput.Model
	keys    common.KeyMap
	status  status
	errText string

	results []app.Profile
	cursor  int

	debounceGen int
	reqSeq      int
	cancel      context.CancelFunc

	width  int
	height int
}

// New creates a search model with an empty session.
func New(users app.SearchService) Model {
	ti := textinput.New()
	ti.Placeholder = "Search artists by name..."
	ti.CharLimit = 50
	ti.Prompt = "🔎 "
	ti.Focus()

	return Model{
		users: users,
		input: ti,
		keys:  common.DefaultKeyMap(),
	}
}

// Init starts the initial default-set fetch for an empty query.
func (m Model) Init() tea.Cmd {
	return m.scheduleDebounce()
}

// Reset tears the session down: pending timers are orphaned, the in-flight
// request is canceled, and the view starts fresh on re-entry.
func (m Model) Reset() Model {
	m.debounceGen++
	m.reqSeq++
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	m.results = nil
	m.cursor = 0
	m.status = statusIdle
	m.errText = ""
	m.input.SetValue("")
	return m
}

// Update handles messages for the search view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case debounceFiredMsg:
		return m.handleDebounceFired(msg)

	case resultsMsg:
		return m.handleResults(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "up", "ctrl+k":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case "down", "ctrl+j":
		if m.cursor < len(m.results)-1 {
			m.cursor++
		}
		return m, nil
	case "enter":
		if m.status == statusReady && m.cursor >= 0 && m.cursor < len(m.results) {
			id := m.results[m.cursor].ID
			return m, func() tea.Msg { return SelectUserMsg{UserID: id} }
		}
		return m, nil
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() == before {
		return m, cmd
	}
	updated, qcmd := m.onQueryChanged()
	return updated, tea.Batch(cmd, qcmd)
}

// onQueryChanged implements the per-keystroke contract: supersede any pending
// timer and in-flight request, then either report a too-short query or arm a
// fresh debounce timer.
func (m Model) onQueryChanged() (Model, tea.Cmd) {
	m.debounceGen++
	m.reqSeq++
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}

	trimmed := strings.TrimSpace(m.input.Value())
	if err := queryError(trimmed); errors.Is(err, domain.ErrQueryTooShort) {
		m.status = statusTooShort
		m.results = nil
		m.cursor = 0
		return m, nil
	}

	return m, m.scheduleDebounce()
}

// queryError classifies a trimmed query before any request is considered.
// Empty is not an error: the backend answers it with the default artist set.
func queryError(query string) error {
	if query != "" && len([]rune(query)) < minQueryLen {
		return domain.ErrQueryTooShort
	}
	return nil
}

func (m Model) scheduleDebounce() tea.Cmd {
	gen := m.debounceGen
	return tea.Tick(DebounceDelay, func(time.Time) tea.Msg {
		return debounceFiredMsg{Gen: gen}
	})
}

func (m Model) handleDebounceFired(msg debounceFiredMsg) (Model, tea.Cmd) {
	if msg.Gen != m.debounceGen {
		// A newer keystroke superseded this timer.
		return m, nil
	}

	m.status = statusLoading
	m.reqSeq++
	seq := m.reqSeq

	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel

	query := strings.TrimSpace(m.input.Value())
	users := m.users
	return m, func() tea.Msg {
		profiles, err := users.SearchUsers(ctx, query)
		return resultsMsg{Seq: seq, Profiles: profiles, Err: err}
	}
}

func (m Model) handleResults(msg resultsMsg) (Model, tea.Cmd) {
	if msg.Seq != m.reqSeq {
		// Superseded request; drop the response silently.
		return m, nil
	}
	m.cancel = nil

	if msg.Err != nil {
		if errors.Is(msg.Err, context.Canceled) {
			// Self-inflicted cancellation is not a user-facing error.
			return m, nil
		}
		m.status = statusError
		m.errText = "Search is unavailable right now. Try again!"
		return m, nil
	}

	if len(msg.Profiles) == 0 {
		m.status = statusError
		m.errText = "No artists found. Try a different name!"
		m.results = nil
		m.cursor = 0
		return m, nil
	}

	m.status = statusReady
	m.errText = ""
	m.results = msg.Profiles
	m.cursor = 0
	return m, nil
}

// Results returns the current result list, for the root model and tests.
func (m Model) Results() []app.Profile {
	return m.results
}
