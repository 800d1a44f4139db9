package gallery

import "terminalcanvas/domain"

// requireSignIn gates social actions on a session.
func (m Model) requireSignIn() error {
	if m.identity.SignedIn() {
		return nil
	}
	return domain.ErrNotSignedIn
}

func (m Model) indexOf(localID string) int {
	for i, a := range m.items {
		if a.LocalID == localID {
			return i
		}
	}
	return -1
}

func (m Model) selectedArtwork() (domain.Artwork, bool) {
	if m.cursor < 0 || m.cursor >= len(m.items) {
		return domain.Artwork{}, false
	}
	return m.items[m.cursor], true
}

// visibleCount is how many artwork cards fit in the current viewport.
func (m Model) visibleCount() int {
	rows := (m.height - chromeHeight) / cardHeight
	if rows < 1 {
		rows = 1
	}
	return rows
}

// ensureCursorVisible scrolls the window so the cursor stays on screen.
func (m *Model) ensureCursorVisible() {
	if len(m.items) == 0 {
		m.cursor = 0
		m.startIndex = 0
		return
	}
	if m.cursor >= len(m.items) {
		m.cursor = len(m.items) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	visible := m.visibleCount()
	if m.cursor < m.startIndex {
		m.startIndex = m.cursor
	}
	if m.cursor >= m.startIndex+visible {
		m.startIndex = m.cursor - visible + 1
	}
	if m.startIndex < 0 {
		m.startIndex = 0
	}
}
