package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"

	"github.com/nikbrunner/marks/internal/tui/layout"
	"github.com/nikbrunner/marks/internal/viewmodel"
)

// renderView creates the complete list view, or a centered modal.
func (a App) renderView() string {
	if a.mode != ModeNormal && a.mode != ModeFilter {
		return a.renderModal()
	}

	content := a.styles.App.Render(
		lipgloss.JoinVertical(lipgloss.Left, a.renderHeader(), a.renderList(), a.renderHelpBar()),
	)

	// Use Place to ensure exact terminal dimensions and prevent overflow
	return lipgloss.Place(a.width, a.height, lipgloss.Left, lipgloss.Top, content)
}

// renderHeader renders the app name, the active filter and the row count.
func (a App) renderHeader() string {
	var b strings.Builder
	b.WriteString(a.styles.Title.Render("marks"))

	switch {
	case a.mode == ModeFilter:
		b.WriteString("  " + a.styles.Filter.Render("filter: ") + a.form.FilterInput.View())
	case a.filter != "":
		b.WriteString("  " + a.styles.Filter.Render("filter: "+a.filter))
	}

	count := fmt.Sprintf("%d bookmarks", len(a.rows))
	if len(a.rows) == 1 {
		count = "1 bookmark"
	}
	b.WriteString("  " + a.styles.Empty.Render(count))

	return b.String() + "\n"
}

// renderList renders the visible window of rows around the cursor.
func (a App) renderList() string {
	if len(a.rows) == 0 {
		if a.filter != "" {
			return a.styles.Empty.Render(fmt.Sprintf("No bookmarks tagged %q.", a.filter))
		}
		return a.styles.Empty.Render("No bookmarks yet. Press a to add one.")
	}

	visible := layout.CalculateVisibleRows(a.height, a.layoutConfig.List)
	offset := layout.CalculateViewportOffset(a.cursor, len(a.rows), visible)
	titleWidth, chipWidth := layout.CalculateRowWidths(a.width, a.layoutConfig.List)

	var lines []string
	for i := offset; i < len(a.rows) && i < offset+visible; i++ {
		lines = append(lines, a.renderRow(a.rows[i], i == a.cursor, titleWidth, chipWidth))
	}
	return strings.Join(lines, "\n")
}

// renderRow renders one bookmark as two lines: marker, swatch, title and
// chips, then the URL.
func (a App) renderRow(row viewmodel.Row, isCursor bool, titleWidth, chipWidth int) string {
	marker := "  "
	titleStyle := a.styles.Item
	if isCursor {
		marker = "▸ "
		titleStyle = a.styles.ItemSelected
	}

	swatch := " "
	if c := a.favicons[row.URL]; c != "" {
		swatch = lipgloss.NewStyle().Foreground(lipgloss.Color(c)).Render("■")
	}

	title, _ := layout.TruncateText(row.Title, titleWidth, a.layoutConfig.Text)
	line := marker + swatch + " " + titleStyle.Render(layout.PadRight(title, titleWidth))

	if chips := a.renderChips(row, isCursor, chipWidth); chips != "" {
		line += " " + chips
	}

	url, _ := layout.TruncateText(row.URL, titleWidth+chipWidth, a.layoutConfig.Text)
	return line + "\n" + "    " + a.styles.URL.Render(url)
}

// renderChips renders the row's tags as colored chips, dropping any that do
// not fit and noting how many were dropped.
func (a App) renderChips(row viewmodel.Row, isCursor bool, maxWidth int) string {
	if len(row.Tags) == 0 {
		return ""
	}

	chips := make([]string, len(row.Tags))
	for i, tag := range row.Tags {
		style := a.styles.Chip
		if isCursor && i == a.chipCursor {
			style = a.styles.ChipSelected
		}
		chips[i] = style.Background(lipgloss.Color(string(tag.Color))).Render(tag.Name)
	}

	kept, dropped := layout.FitSegments(chips, " ", maxWidth)
	out := strings.Join(kept, " ")
	if dropped > 0 {
		out += a.styles.Empty.Render(fmt.Sprintf(" +%d", dropped))
	}
	return out
}

// renderHelpBar renders the message line and the contextual key hints.
func (a App) renderHelpBar() string {
	lines := []string{""}

	if a.messageText != "" {
		lines = append(lines, a.renderMessageLine())
	} else {
		lines = append(lines, "")
	}

	if hints := a.renderHints(a.contextualHints()); hints != "" {
		lines = append(lines, hints)
	}

	return strings.Join(lines, "\n")
}

// renderMessageLine renders the styled message with prefix icon based on type.
func (a App) renderMessageLine() string {
	var msgStyle lipgloss.Style
	var prefix string

	switch a.messageType {
	case MessageError:
		msgStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#CC3333", Dark: "#FF6666"}).
			Bold(true)
		prefix = "✗ "
	case MessageWarning:
		msgStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#CC8800", Dark: "#FFAA00"}).
			Bold(true)
		prefix = "⚠ "
	case MessageSuccess:
		msgStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#338833", Dark: "#66CC66"}).
			Bold(true)
		prefix = "✓ "
	default: // MessageInfo
		msgStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#4A7070", Dark: "#5F8787"}).
			Bold(true)
	}

	return msgStyle.Render(prefix + a.messageText)
}

// renderModal renders the dialog for the current mode, centered on screen.
func (a App) renderModal() string {
	var title string
	var content strings.Builder

	size := layout.CalculateModal(a.width, a.layoutConfig.Modal)
	modalStyle := a.styles.Modal.Width(size.Width)

	switch a.mode {
	case ModeAddURL:
		title = "Add Bookmark"
		content.WriteString("URL:\n")
		content.WriteString(fitInput(a.form.URLInput, size.InputWidth))

	case ModeAddTags:
		title = "Add Bookmark"
		content.WriteString(a.styles.URL.Render(a.form.PendingURL) + "\n\n")
		content.WriteString("Tags (comma-separated):\n")
		content.WriteString(fitInput(a.form.TagsInput, size.InputWidth))

	case ModeEditMenu:
		title = "Edit Bookmark"
		for i, opt := range EditMenuOptions {
			if i == a.form.MenuCursor {
				content.WriteString(a.styles.ItemSelected.Render("▸ " + opt))
			} else {
				content.WriteString(a.styles.Item.Render("  " + opt))
			}
			content.WriteString("\n")
		}

	case ModeEditTitle:
		title = "Edit Title"
		content.WriteString("Title:\n")
		content.WriteString(fitInput(a.form.TitleInput, size.InputWidth))

	case ModeEditTags:
		title = "Edit Tags"
		content.WriteString("Tags (comma-separated):\n")
		content.WriteString(fitInput(a.form.TagsInput, size.InputWidth))

	case ModeNotice:
		title = a.notice.Title
		content.WriteString(a.notice.Text + "\n\n")
		content.WriteString(a.renderHintsInline([]Hint{{Key: "Enter", Desc: "ok"}}))
	}

	if hints := a.renderHints(a.contextualHints()); hints != "" {
		content.WriteString("\n\n" + hints)
	}

	// Only the title text is styled; a styled block would pad the lines after it.
	modal := modalStyle.Render(a.styles.Title.Render(title) + "\n\n" + content.String())
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, modal)
}

// fitInput renders a text input no wider than width.
func fitInput(in textinput.Model, width int) string {
	if in.Width == 0 || in.Width > width {
		in.Width = width
	}
	return in.View()
}
