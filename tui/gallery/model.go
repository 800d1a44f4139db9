// Package gallery implements the profile-bearing view: an artist's posts
// with optimistic like/visibility mutations, comments, and follow state.
package gallery

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"terminalcanvas/app"
	"terminalcanvas/tui/common"
)

// Model holds the state for the gallery (profile) view.
type Model struct {
	modelServices
	identity app.Identity
	profileState
	galleryState
	commentState
	previewState
	uiState
}

// New creates a gallery model showing the signed-in user's own profile.
func New(accounts app.AccountService, artworks app.ArtworkService, identity app.Identity) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#F5A97F"))

	return Model{
		modelServices: modelServices{
			accounts: accounts,
			artworks: artworks,
		},
		identity: identity,
		profileState: profileState{
			ctx:          selfContext{},
			profileEpoch: 1,
			loading:      true,
		},
		previewState: previewState{
			previews:       make(map[string]string),
			previewLoading: make(map[string]bool),
		},
		uiState: uiState{
			keys:    common.DefaultKeyMap(),
			spinner: s,
		},
	}
}

// Init starts the initial own-profile fetch under the epoch set by New.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.fetchProfile(m.identity.UserID, m.profileEpoch),
		m.fetchFollowStats(m.identity.UserID, m.profileEpoch),
		m.spinner.Tick,
	)
}

// SetIdentity swaps the signed-in user, e.g. after login or logout, and
// refetches the own profile under a new epoch. The spinner tick is restarted
// here because the gallery's Init only runs when it is the starting view.
func (m Model) SetIdentity(identity app.Identity) (Model, tea.Cmd) {
	m.identity = identity
	updated, cmd := m.switchToSelf()
	return updated, tea.Batch(cmd, updated.spinner.Tick)
}

// Identity returns the signed-in user.
func (m Model) Identity() app.Identity {
	return m.identity
}

// CapturesKeys reports whether the gallery is in a modal state (comment
// picker, clear confirmation) that should keep keys away from the root.
func (m Model) CapturesKeys() bool {
	return m.pickerOpen || m.confirmClear
}

// Update handles messages for the gallery view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ensureCursorVisible()
		return m, nil

	case spinner.TickMsg:
		m.spinner, cmd = m.spinner.Update(msg)
		return m, tea.Batch(cmd, m.ensurePreviewCmd())
	}

	switch msg := msg.(type) {
	case OpenProfileMsg, BackToMyProfileMsg, profileLoadedMsg, followStatsMsg, isFollowingMsg:
		return m.handleNavigationMsg(msg)
	case mutationResultMsg, presetCommentsMsg, commentResultMsg, ArtworkCreatedMsg:
		return m.handleMutationMsg(msg)
	case followToggleResultMsg, clearGalleryResultMsg:
		return m.handleSocialMsg(msg)
	case previewLoadedMsg:
		return m.handlePreviewMsg(msg)
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}

	return m, nil
}
