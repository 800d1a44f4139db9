package gallery

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) handleKeyMsg(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.confirmClear {
		return m.handleConfirmClearKey(msg)
	}
	if m.pickerOpen {
		return m.handlePickerKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
			m.ensureCursorVisible()
		}
		return m, m.ensurePreviewCmd()

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.items)-1 {
			m.cursor++
			m.ensureCursorVisible()
		}
		return m, m.ensurePreviewCmd()

	case key.Matches(msg, m.keys.Refresh):
		m.profileEpoch++
		m.loading = true
		m.err = nil
		target := m.activeTargetID()
		cmds := []tea.Cmd{
			m.fetchProfile(target, m.profileEpoch),
			m.fetchFollowStats(target, m.profileEpoch),
		}
		if !m.viewingSelf() && m.identity.SignedIn() {
			cmds = append(cmds, m.fetchIsFollowing(target, m.profileEpoch))
		}
		return m, tea.Batch(cmds...)

	case key.Matches(msg, m.keys.Back):
		if !m.viewingSelf() {
			return m.switchToSelf()
		}
		return m, nil

	case key.Matches(msg, m.keys.Like):
		return m.toggleLike()

	case key.Matches(msg, m.keys.Visibility):
		return m.toggleVisibility()

	case key.Matches(msg, m.keys.Comment):
		return m.openCommentPicker()

	case key.Matches(msg, m.keys.Follow):
		return m.toggleFollow()

	case key.Matches(msg, m.keys.Clear):
		if !m.viewingSelf() || !m.identity.SignedIn() {
			return m, nil
		}
		if len(m.ownRefs()) == 0 {
			m.status = "Nothing to clear."
			return m, nil
		}
		m.confirmClear = true
		return m, nil
	}

	return m, nil
}

func (m Model) handleConfirmClearKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		m.confirmClear = false
		refs := m.ownRefs()
		m.status = "Clearing gallery..."
		return m, m.clearGalleryCmd(refs)
	case "n", "N", "esc":
		m.confirmClear = false
		return m, nil
	}
	return m, nil
}

// openCommentPicker shows the preset comment list for the selected artwork,
// lazily fetching the catalog the first time.
func (m Model) openCommentPicker() (Model, tea.Cmd) {
	if err := m.requireSignIn(); err != nil {
		m.status = "Sign in to comment."
		return m, nil
	}
	art, ok := m.selectedArtwork()
	if !ok {
		return m, nil
	}
	m.pickerOpen = true
	m.pickerCursor = 0
	m.pickerLocalID = art.LocalID
	if m.presetsLoaded {
		return m, nil
	}
	return m, m.fetchPresetsCmd()
}

func (m Model) handlePickerKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.pickerOpen = false
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if m.pickerCursor > 0 {
			m.pickerCursor--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.pickerCursor < len(m.presets)-1 {
			m.pickerCursor++
		}
		return m, nil

	case key.Matches(msg, m.keys.Select):
		if m.pickerCursor < 0 || m.pickerCursor >= len(m.presets) {
			return m, nil
		}
		text := m.presets[m.pickerCursor]
		idx := m.indexOf(m.pickerLocalID)
		m.pickerOpen = false
		if idx < 0 {
			return m, nil
		}
		ref := m.items[idx].Ref
		m.status = "Sending comment..."
		return m, m.addCommentCmd(m.pickerLocalID, ref, text)
	}
	return m, nil
}

// toggleFollow flips the follow relation with the viewed artist. The state
// change waits for the backend; only the result message mutates it.
func (m Model) toggleFollow() (Model, tea.Cmd) {
	c, ok := m.ctx.(otherContext)
	if !ok {
		return m, nil
	}
	if err := m.requireSignIn(); err != nil {
		m.status = "Sign in to follow artists."
		return m, nil
	}
	return m, m.toggleFollowCmd(c.UserID, !c.IsFollowing)
}
