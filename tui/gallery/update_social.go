package gallery

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// handleSocialMsg reconciles follow toggles and gallery clears.
func (m Model) handleSocialMsg(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case followToggleResultMsg:
		c, ok := m.ctx.(otherContext)
		if !ok || c.UserID != msg.TargetID {
			return m, nil
		}
		if msg.Err != nil {
			m.status = "Couldn't update follow. Try again!"
			return m, nil
		}
		c.IsFollowing = msg.Follow
		m.ctx = c
		if msg.Follow {
			m.stats.Followers++
			m.status = "Following!"
		} else {
			if m.stats.Followers > 0 {
				m.stats.Followers--
			}
			m.status = "Unfollowed."
		}
		return m, nil

	case clearGalleryResultMsg:
		m.status = fmt.Sprintf("Deleted %d of %d artworks.", msg.Deleted, msg.Total)
		if !m.viewingSelf() {
			return m, nil
		}
		// Refetch rather than prune locally so the view matches whatever
		// the backend actually deleted.
		m.profileEpoch++
		m.loading = true
		return m, tea.Batch(
			m.fetchProfile(m.identity.UserID, m.profileEpoch),
			m.fetchFollowStats(m.identity.UserID, m.profileEpoch),
		)
	}

	return m, nil
}
