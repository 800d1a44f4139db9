package gallery

import (
	tea "github.com/charmbracelet/bubbletea"

	"terminalcanvas/app"
)

// handleNavigationMsg reconciles whose profile is on screen. Every context
// switch bumps profileEpoch; fetch results carry the epoch they were issued
// under, so responses for an abandoned target are dropped no matter when
// they arrive.
func (m Model) handleNavigationMsg(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case OpenProfileMsg:
		return m.openProfile(msg.UserID)

	case BackToMyProfileMsg:
		return m.switchToSelf()

	case profileLoadedMsg:
		if msg.Epoch != m.profileEpoch || msg.TargetID != m.activeTargetID() {
			return m, nil
		}
		m.loading = false
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.err = nil
		m.profile = msg.Profile
		m.items = msg.Artworks
		m.cursor = 0
		m.startIndex = 0
		return m, m.ensurePreviewCmd()

	case followStatsMsg:
		if msg.Epoch != m.profileEpoch || msg.TargetID != m.activeTargetID() {
			return m, nil
		}
		if msg.Err != nil {
			// Safe default rather than stale counts from a previous target.
			m.stats = app.FollowStats{}
			return m, nil
		}
		m.stats = msg.Stats
		return m, nil

	case isFollowingMsg:
		if msg.Epoch != m.profileEpoch || msg.TargetID != m.activeTargetID() {
			return m, nil
		}
		c, ok := m.ctx.(otherContext)
		if !ok || c.UserID != msg.TargetID {
			return m, nil
		}
		if msg.Err != nil {
			c.IsFollowing = false
		} else {
			c.IsFollowing = msg.Following
		}
		m.ctx = c
		return m, nil
	}

	return m, nil
}

// openProfile resolves a clicked user. Viewing one's own id through any
// path collapses to the self view.
func (m Model) openProfile(userID int) (Model, tea.Cmd) {
	if userID == 0 {
		return m, nil
	}
	if m.identity.SignedIn() && userID == m.identity.UserID {
		return m.switchToSelf()
	}

	m.ctx = otherContext{UserID: userID}
	m.profileEpoch++
	m.resetForContextSwitch()

	cmds := []tea.Cmd{
		m.fetchProfile(userID, m.profileEpoch),
		m.fetchFollowStats(userID, m.profileEpoch),
	}
	if m.identity.SignedIn() {
		cmds = append(cmds, m.fetchIsFollowing(userID, m.profileEpoch))
	}
	return m, tea.Batch(cmds...)
}

// switchToSelf returns to the own profile, resetting follow-derived state
// unconditionally even if fetches for an abandoned target are in flight.
func (m Model) switchToSelf() (Model, tea.Cmd) {
	m.ctx = selfContext{}
	m.profileEpoch++
	m.resetForContextSwitch()

	if !m.identity.SignedIn() {
		m.loading = false
		return m, nil
	}
	return m, tea.Batch(
		m.fetchProfile(m.identity.UserID, m.profileEpoch),
		m.fetchFollowStats(m.identity.UserID, m.profileEpoch),
	)
}

func (m *Model) resetForContextSwitch() {
	m.loading = true
	m.err = nil
	m.profile = app.Profile{}
	m.stats = app.FollowStats{}
	m.items = nil
	m.cursor = 0
	m.startIndex = 0
	m.pickerOpen = false
	m.confirmClear = false
}

// activeTargetID is the user id the gallery currently shows.
func (m Model) activeTargetID() int {
	if c, ok := m.ctx.(otherContext); ok {
		return c.UserID
	}
	return m.identity.UserID
}

// viewingSelf reports whether the own profile is active.
func (m Model) viewingSelf() bool {
	_, other := m.ctx.(otherContext)
	return !other
}
