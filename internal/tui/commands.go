package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nikbrunner/marks/internal/enrich"
	"github.com/nikbrunner/marks/internal/model"
)

// titleFetchedMsg carries the result of a title lookup for a pending add.
type titleFetchedMsg struct {
	URL   string
	Tags  string // raw tag input
	Title string
}

// faviconFetchedMsg carries the swatch color for a URL ("" when absent).
type faviconFetchedMsg struct {
	URL   string
	Color string
}

// fetchTitleCmd looks up the page title off the update loop.
func (a App) fetchTitleCmd(url, tags string) tea.Cmd {
	enricher := a.enricher
	ctx := a.ctx
	return func() tea.Msg {
		title := model.TitleNotFound
		if enricher != nil {
			title = enricher.FetchTitle(ctx, url)
		}
		return titleFetchedMsg{URL: url, Tags: tags, Title: title}
	}
}

// fetchFaviconCmd looks up one favicon off the update loop.
func (a App) fetchFaviconCmd(url string) tea.Cmd {
	enricher := a.enricher
	ctx := a.ctx
	return func() tea.Msg {
		img := enricher.FetchFavicon(ctx, url)
		return faviconFetchedMsg{URL: url, Color: enrich.AverageColor(img)}
	}
}

// faviconCmds starts a lookup for every displayed URL not yet requested.
func (a App) faviconCmds() tea.Cmd {
	if a.enricher == nil {
		return nil
	}

	var cmds []tea.Cmd
	for _, row := range a.rows {
		if _, seen := a.favicons[row.URL]; seen {
			continue
		}
		a.favicons[row.URL] = ""
		cmds = append(cmds, a.fetchFaviconCmd(row.URL))
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}
