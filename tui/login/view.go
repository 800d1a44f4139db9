package login

import (
	"strings"

	"terminalcanvas/tui/common"
)

var fieldLabels = map[int]string{
	fieldUsername:    "Username",
	fieldPassword:    "Password",
	fieldEmail:       "Email",
	fieldDisplayName: "Artist name",
}

// View renders the auth form.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(common.AppTitleStyle.Render("TerminalCanvas") + "\n")
	if m.mode == registerMode {
		b.WriteString(common.TaglineStyle.Render("Join the gallery") + "\n\n")
	} else {
		b.WriteString(common.TaglineStyle.Render("Sign in to your gallery") + "\n\n")
	}

	for i, idx := range m.fieldOrder() {
		label := fieldLabels[idx]
		style := common.PickerInactiveStyle
		if i == m.focus {
			style = common.PickerActiveStyle
		}
		b.WriteString(style.Render(label) + "\n")
		b.WriteString(" " + m.inputs[idx].View() + "\n")
	}

	if m.mode == registerMode {
		box := "[ ]"
		if m.consent {
			box = "[x]"
		}
		b.WriteString("\n " + common.BioStyle.Render(box+" I have a grown-up's OK and accept the rules") + "\n")
	}

	if m.submitting {
		b.WriteString("\n " + common.TimestampStyle.Render("signing in...") + "\n")
	}
	if m.errText != "" {
		b.WriteString("\n " + common.ErrorStyle.Render(m.errText) + "\n")
	}

	if m.mode == registerMode {
		b.WriteString("\n" + common.HelpStyle.Render(" enter create account · ctrl+t accept rules · esc back to sign in · tab next field"))
	} else {
		b.WriteString("\n" + common.HelpStyle.Render(" enter sign in · ctrl+r create account · tab next field"))
	}
	return b.String()
}
