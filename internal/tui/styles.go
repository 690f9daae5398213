package tui

import "github.com/charmbracelet/lipgloss"

// Styles holds all lipgloss styles for the TUI.
type Styles struct {
	App          lipgloss.Style
	Modal        lipgloss.Style
	Title        lipgloss.Style
	Item         lipgloss.Style
	ItemSelected lipgloss.Style
	URL          lipgloss.Style
	Chip         lipgloss.Style // background is set per tag
	ChipSelected lipgloss.Style
	Filter       lipgloss.Style
	Empty        lipgloss.Style
	HintKey      lipgloss.Style
	HintDesc     lipgloss.Style
}

// Theme is the small set of colors every style is derived from.
type Theme struct {
	Text   lipgloss.TerminalColor
	Muted  lipgloss.TerminalColor
	Accent lipgloss.TerminalColor
	OnChip lipgloss.TerminalColor // text drawn on tag colors
}

// DefaultTheme is muted grey text with a single teal accent.
func DefaultTheme() Theme {
	return Theme{
		Text:   lipgloss.AdaptiveColor{Light: "#3C3C3C", Dark: "#B4B4B4"},
		Muted:  lipgloss.AdaptiveColor{Light: "#8A8A8A", Dark: "#6C6C6C"},
		Accent: lipgloss.AdaptiveColor{Light: "#2F6F6F", Dark: "#63A6A6"},
		OnChip: lipgloss.Color("#000000"),
	}
}

// DefaultStyles returns the styles for DefaultTheme.
func DefaultStyles() Styles {
	return NewStyles(DefaultTheme())
}

// NewStyles derives the full style set from a theme.
func NewStyles(t Theme) Styles {
	text := lipgloss.NewStyle().Foreground(t.Text)
	muted := lipgloss.NewStyle().Foreground(t.Muted)
	accent := lipgloss.NewStyle().Foreground(t.Accent)
	chip := lipgloss.NewStyle().Foreground(t.OnChip).Padding(0, 1)

	return Styles{
		App: lipgloss.NewStyle().Padding(1, 2, 0, 2),
		Modal: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Accent).
			Padding(1, 2),
		Title:        accent.Bold(true),
		Item:         text,
		ItemSelected: accent.Bold(true),
		URL:          muted.Italic(true),
		Chip:         chip,
		ChipSelected: chip.Bold(true).Underline(true),
		Filter:       accent,
		Empty:        muted,
		HintKey:      accent,
		HintDesc:     muted,
	}
}
