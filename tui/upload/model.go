// Package upload implements the share-a-drawing form: a file path plus an
// AI transform mode, submitted as one multipart request.
package upload

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"terminalcanvas/app"
	"terminalcanvas/domain"
)

// DoneMsg is sent when the form closes. Cancelled is true when the user
// backed out; otherwise either Artwork or Err is set.
type DoneMsg struct {
	Cancelled bool
	Artwork   domain.Artwork
	Err       error
}

type uploadResultMsg struct {
	Artwork domain.Artwork
	Err     error
}

// Model holds the state for the upload form.
type Model struct {
	artworks app.ArtworkService
	ownerID  int

	path        textinput.Model
	modes       []domain.TransformMode
	modeCursor  int
	pickingMode bool
	submitting  bool
	errText     string
}

// New creates the upload form for the signed-in user.
func New(artworks app.ArtworkService, ownerID int) Model {
	path := textinput.New()
	path.Placeholder = "path to your drawing (png or jpg)"
	path.CharLimit = 256
	path.Width = 48
	path.Focus()

	return Model{
		artworks: artworks,
		ownerID:  ownerID,
		path:     path,
		modes:    domain.TransformModes(),
	}
}

// Init starts cursor blinking.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the upload form.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case uploadResultMsg:
		m.submitting = false
		if msg.Err != nil {
			m.errText = "Upload didn't work. Check the file and try again!"
			return m, nil
		}
		artwork := msg.Artwork
		return m, func() tea.Msg {
			return DoneMsg{Artwork: artwork}
		}

	case tea.KeyMsg:
		if m.submitting {
			return m, nil
		}
		if m.pickingMode {
			return m.handleModeKey(msg)
		}
		switch msg.String() {
		case "esc":
			return m, func() tea.Msg { return DoneMsg{Cancelled: true} }
		case "enter":
			return m.advanceToModePicker()
		}
		var cmd tea.Cmd
		m.path, cmd = m.path.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.path, cmd = m.path.Update(msg)
	return m, cmd
}

// advanceToModePicker validates the chosen file before showing styles.
func (m Model) advanceToModePicker() (Model, tea.Cmd) {
	path := strings.TrimSpace(m.path.Value())
	if msg, ok := validatePath(path); !ok {
		m.errText = msg
		return m, nil
	}
	m.errText = ""
	m.pickingMode = true
	return m, nil
}

func (m Model) handleModeKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.pickingMode = false
		return m, nil
	case "up", "k":
		if m.modeCursor > 0 {
			m.modeCursor--
		}
		return m, nil
	case "down", "j":
		if m.modeCursor < len(m.modes)-1 {
			m.modeCursor++
		}
		return m, nil
	case "enter":
		return m.submit()
	}
	return m, nil
}

func (m Model) submit() (Model, tea.Cmd) {
	path := strings.TrimSpace(m.path.Value())
	mode := m.modes[m.modeCursor]
	m.submitting = true
	m.errText = ""

	artworks := m.artworks
	ownerID := m.ownerID
	return m, func() tea.Msg {
		artwork, err := artworks.Upload(context.Background(), ownerID, path, mode)
		return uploadResultMsg{Artwork: artwork, Err: err}
	}
}

// validatePath checks the file exists and looks like an image before any
// bytes go over the wire.
func validatePath(path string) (string, bool) {
	if path == "" {
		return "Please enter the path to your drawing.", false
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png", ".jpg", ".jpeg", ".gif":
	default:
		return "Only png, jpg, and gif drawings can be shared.", false
	}
	info, err := os.Stat(path)
	if err != nil {
		return "Can't find that file. Check the path!", false
	}
	if info.IsDir() {
		return "That's a folder, not a drawing.", false
	}
	return "", true
}
