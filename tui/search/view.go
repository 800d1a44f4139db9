package search

import (
	"strings"

	"terminalcanvas/tui/common"
)

// View renders the search view.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(common.AppTitleStyle.Render("Find Artists"))
	b.WriteString("\n\n ")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	switch m.status {
	case statusIdle:
		b.WriteString(common.TaglineStyle.Render("Type a name to find artists."))
	case statusTooShort:
		b.WriteString(common.TaglineStyle.Render("Keep typing! Names need at least 2 letters."))
	case statusLoading:
		b.WriteString(common.TaglineStyle.Render("Searching..."))
	case statusError:
		b.WriteString(common.ErrorStyle.Render(m.errText))
	case statusReady:
		for i, p := range m.results {
			line := p.DisplayName
			if line == "" {
				line = p.Username
			}
			line += common.TimestampStyle.Render("  @" + p.Username)
			if p.Bio != "" {
				width := m.width - 10
				if width < 20 {
					width = 20
				}
				line += "\n" + common.BioStyle.Render(common.Truncate(p.Bio, width))
			}
			if i == m.cursor {
				b.WriteString(common.SelectedStyle.Render(line))
			} else {
				b.WriteString(common.UnselectedStyle.Render(line))
			}
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(common.HelpStyle.Render("enter open profile • esc back • ctrl+c quit"))
	return b.String()
}
