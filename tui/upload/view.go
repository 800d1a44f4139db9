package upload

import (
	"strings"

	"terminalcanvas/tui/common"
)

// View renders the upload form.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(common.AppTitleStyle.Render("Share a drawing") + "\n\n")

	if m.pickingMode {
		b.WriteString(common.TaglineStyle.Render("Pick a style for the AI makeover") + "\n\n")
		for i, mode := range m.modes {
			style := common.PickerInactiveStyle
			prefix := "  "
			if i == m.modeCursor {
				style = common.PickerActiveStyle
				prefix = "> "
			}
			b.WriteString(style.Render(prefix+string(mode)) + "\n")
		}
	} else {
		b.WriteString(" " + m.path.View() + "\n")
	}

	if m.submitting {
		b.WriteString("\n " + common.TimestampStyle.Render("uploading and styling...") + "\n")
	}
	if m.errText != "" {
		b.WriteString("\n " + common.ErrorStyle.Render(m.errText) + "\n")
	}

	if m.pickingMode {
		b.WriteString("\n" + common.HelpStyle.Render(" ↑/↓ style · enter share · esc back"))
	} else {
		b.WriteString("\n" + common.HelpStyle.Render(" enter next · esc cancel"))
	}
	return b.String()
}
