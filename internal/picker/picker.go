// Package picker is a small standalone TUI for choosing one search result.
package picker

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nikbrunner/marks/internal/model"
	"github.com/nikbrunner/marks/internal/search"
	"github.com/nikbrunner/marks/internal/tagcolor"
	"github.com/nikbrunner/marks/internal/tui/layout"
)

// chromeLines is the header (2) plus footer (2).
const chromeLines = 4

var (
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#63A6A6"))
	titleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#63A6A6"))
	matchStyle    = lipgloss.NewStyle().Underline(true).Foreground(lipgloss.Color("214"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	chipStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#000000")).Padding(0, 1)
)

type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Choose key.Binding
	Cancel key.Binding
}

var keys = keyMap{
	Up:     key.NewBinding(key.WithKeys("k", "up", "ctrl+p")),
	Down:   key.NewBinding(key.WithKeys("j", "down", "ctrl+n")),
	Choose: key.NewBinding(key.WithKeys("enter")),
	Cancel: key.NewBinding(key.WithKeys("q", "esc", "ctrl+c")),
}

// Picker lists search results and lets the user choose one.
type Picker struct {
	results []search.Result
	query   string
	colors  *tagcolor.Assigner

	cursor int
	chosen bool
	quit   bool

	width  int
	height int
}

// New creates a Picker over results for query.
func New(results []search.Result, query string) Picker {
	return Picker{
		results: results,
		query:   query,
		colors:  tagcolor.New(),
		width:   80,
		height:  24,
	}
}

// Init implements tea.Model.
func (p Picker) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (p Picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.width, p.height = msg.Width, msg.Height

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Cancel):
			p.quit = true
			return p, tea.Quit
		case key.Matches(msg, keys.Choose):
			p.chosen = len(p.results) > 0
			p.quit = !p.chosen
			return p, tea.Quit
		case key.Matches(msg, keys.Down):
			p.cursor = min(p.cursor+1, max(len(p.results)-1, 0))
		case key.Matches(msg, keys.Up):
			p.cursor = max(p.cursor-1, 0)
		}
	}

	return p, nil
}

// visible is how many results fit; each takes two lines.
func (p Picker) visible() int {
	return max((p.height-chromeLines)/2, 1)
}

// View implements tea.Model.
func (p Picker) View() string {
	var b strings.Builder

	noun := "results"
	if len(p.results) == 1 {
		noun = "result"
	}
	b.WriteString(headerStyle.Render(fmt.Sprintf("Search: %s (%d %s)", p.query, len(p.results), noun)))
	b.WriteString("\n\n")

	n := p.visible()
	offset := layout.CalculateViewportOffset(p.cursor, len(p.results), n)
	end := min(offset+n, len(p.results))
	titleWidth := max(p.width-4, 1)

	for i := offset; i < end; i++ {
		bm := p.results[i].Bookmark
		marker, style := "  ", titleStyle
		if i == p.cursor {
			marker, style = "▸ ", selectedStyle
		}

		title, _ := layout.TruncateText(bm.Title, titleWidth, layout.TextConfig{Ellipsis: "..."})
		b.WriteString(marker + highlight(title, p.results[i].MatchedIndexes, style))
		for _, tag := range bm.Tags {
			if tag = strings.TrimSpace(tag); tag != "" {
				b.WriteString(" " + chipStyle.Background(lipgloss.Color(p.colors.ColorFor(tag))).Render(tag))
			}
		}
		b.WriteString("\n  " + dimStyle.Render(bm.URL) + "\n")
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("j/k move  Enter open  q/Esc cancel"))

	return b.String()
}

// highlight renders title with the matched runes emphasised.
// Indexes past a truncated title are ignored.
func highlight(title string, matched []int, base lipgloss.Style) string {
	hits := make(map[int]bool, len(matched))
	for _, i := range matched {
		hits[i] = true
	}

	var b strings.Builder
	for i, r := range []rune(title) {
		style := base
		if hits[i] {
			style = matchStyle
		}
		b.WriteString(style.Render(string(r)))
	}
	return b.String()
}

// Selected returns the chosen bookmark, or false if the user cancelled.
func (p Picker) Selected() (model.Bookmark, bool) {
	if !p.chosen || p.cursor >= len(p.results) {
		return model.Bookmark{}, false
	}
	return p.results[p.cursor].Bookmark, true
}

// Cancelled reports whether the picker closed without a choice.
func (p Picker) Cancelled() bool {
	return p.quit
}
