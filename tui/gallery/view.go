package gallery

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"terminalcanvas/domain"
	"terminalcanvas/tui/common"
)

const (
	// cardHeight is the rendered height of one artwork card including its
	// border, used for viewport math.
	cardHeight = 8
	// chromeHeight is the header plus status/help rows around the list.
	chromeHeight = 10
)

// View renders the gallery.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	switch {
	case m.loading:
		b.WriteString(fmt.Sprintf("\n %s loading gallery...\n", m.spinner.View()))
	case m.err != nil:
		b.WriteString("\n " + common.ErrorStyle.Render("Couldn't load this gallery. Press r to retry.") + "\n")
	case len(m.items) == 0:
		b.WriteString("\n " + common.BioStyle.Render("No artworks yet.") + "\n")
	default:
		b.WriteString(m.renderCards())
	}

	if m.confirmClear {
		b.WriteString("\n" + common.ConfirmStyle.Render(
			fmt.Sprintf("Delete all %d of your artworks? (y/n)", len(m.ownRefs()))) + "\n")
	}
	if m.pickerOpen {
		b.WriteString("\n" + m.renderPicker())
	}

	if m.status != "" {
		b.WriteString("\n" + common.StatusBarStyle.Render(m.status))
	}
	b.WriteString("\n" + common.HelpStyle.Render(m.helpLine()))
	return b.String()
}

func (m Model) renderHeader() string {
	name := m.profile.DisplayName
	if name == "" {
		name = m.profile.Username
	}
	if name == "" {
		name = "gallery"
	}
	title := common.ArtistStyle.Render(name)
	if !m.viewingSelf() {
		if c, ok := m.ctx.(otherContext); ok && c.IsFollowing {
			title += common.FollowBadgeStyle.Render("following")
		}
	} else {
		title += common.TimestampStyle.Render("  (you)")
	}

	counts := common.TimestampStyle.Render(
		fmt.Sprintf("%d followers · %d following", m.stats.Followers, m.stats.Following))

	lines := []string{title, counts}
	if bio := strings.TrimSpace(m.profile.Bio); bio != "" {
		lines = append(lines, common.BioStyle.Render(common.Truncate(bio, maxWidth(m.width-4, 40))))
	}
	if len(m.profile.Interests) > 0 {
		lines = append(lines, common.TimestampStyle.Render("likes: "+strings.Join(m.profile.Interests, ", ")))
	}
	return " " + strings.Join(lines, "\n ")
}

func (m Model) renderCards() string {
	end := m.startIndex + m.visibleCount()
	if end > len(m.items) {
		end = len(m.items)
	}
	cards := make([]string, 0, end-m.startIndex)
	for i := m.startIndex; i < end; i++ {
		cards = append(cards, m.renderCard(m.items[i], i == m.cursor))
	}
	return strings.Join(cards, "\n")
}

func (m Model) renderCard(a domain.Artwork, selected bool) string {
	info := make([]string, 0, 5)

	title := a.Title
	if title == "" {
		title = "(untitled)"
	}
	titleLine := common.ArtistStyle.Render(common.Truncate(title, maxWidth(m.width-30, 24)))
	if a.Visibility == domain.VisibilityPrivate {
		titleLine += common.PrivateBadgeStyle.Render("private")
	}
	info = append(info, titleLine)

	if a.Mode != "" {
		info = append(info, common.TimestampStyle.Render("style: "+string(a.Mode)))
	}

	like := fmt.Sprintf("♡ %d", a.LikeCount)
	if a.IsLiked {
		like = fmt.Sprintf("♥ %d", a.LikeCount)
	}
	info = append(info, common.LikeStyle.Render(like)+
		common.TimestampStyle.Render(fmt.Sprintf("  💬 %d", a.CommentCount)))

	if !a.CreatedAt.IsZero() {
		info = append(info, common.TimestampStyle.Render(common.RelativeTime(a.CreatedAt, time.Now())))
	}

	body := strings.Join(info, "\n")
	if thumb := m.previews[previewURL(a)]; thumb != "" {
		body = lipgloss.JoinHorizontal(lipgloss.Top, thumb, "  ", body)
	}

	style := common.UnselectedStyle
	if selected {
		style = common.SelectedStyle
	}
	return style.Render(body)
}

func (m Model) renderPicker() string {
	var b strings.Builder
	b.WriteString(common.AppTitleStyle.Render("Say something nice") + "\n")
	if !m.presetsLoaded {
		b.WriteString(fmt.Sprintf(" %s loading...\n", m.spinner.View()))
		return b.String()
	}
	for i, preset := range m.presets {
		style := common.PickerInactiveStyle
		prefix := "  "
		if i == m.pickerCursor {
			style = common.PickerActiveStyle
			prefix = "> "
		}
		b.WriteString(style.Render(prefix+preset) + "\n")
	}
	b.WriteString(common.HelpStyle.Render(" enter send · esc cancel"))
	return b.String()
}

func (m Model) helpLine() string {
	if m.viewingSelf() {
		return " ↑/↓ browse · l like · c comment · v visibility · u share · s find artists · X clear · r refresh · q quit"
	}
	return " ↑/↓ browse · l like · c comment · f follow · esc my gallery · r refresh · q quit"
}

func maxWidth(w, fallback int) int {
	if w <= 0 {
		return fallback
	}
	return w
}
