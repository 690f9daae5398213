package tui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nikbrunner/marks/internal/logging"
	"github.com/nikbrunner/marks/internal/model"
	"github.com/nikbrunner/marks/internal/storage"
	"github.com/nikbrunner/marks/internal/viewmodel"
)

// Notice texts.
const (
	DuplicateNotice = "This URL already exists in your bookmarks!"
	CopiedPrefix    = "Copied to clipboard: "
)

// refresh reloads the rows. A forced refresh clears the filter.
func (a *App) refresh(force bool) {
	rows, filter, err := viewmodel.Refresh(a.ctx, a.store, a.colors, a.filter, force)
	a.filter = filter
	if err != nil {
		a.logger.Error("refresh failed", "filter", filter, "err", err)
		a.setMessage(MessageError, err.Error())
		return
	}

	a.rows = rows
	a.moveCursor(a.cursor)
}

// refreshWithFavicons reloads the rows and starts favicon lookups for new URLs.
func (a *App) refreshWithFavicons(force bool) tea.Cmd {
	a.refresh(force)
	return a.faviconCmds()
}

func (a *App) setMessage(t MessageType, text string) {
	a.messageType = t
	a.messageText = text
}

func (a *App) showNotice(title, text string) {
	a.mode = ModeNotice
	a.notice = NoticeState{Title: title, Text: text}
}

// handleNormalMode handles keys while browsing the list.
func (a App) handleNormalMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Handle gg sequence
	if key.Matches(msg, a.keys.Top) {
		if a.lastKeyWasG {
			a.moveCursor(0)
			a.lastKeyWasG = false
			return a, nil
		}
		a.lastKeyWasG = true
		return a, nil
	}
	a.lastKeyWasG = false

	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit

	case key.Matches(msg, a.keys.Down):
		a.moveCursor(a.cursor + 1)

	case key.Matches(msg, a.keys.Up):
		a.moveCursor(a.cursor - 1)

	case key.Matches(msg, a.keys.Bottom):
		a.moveCursor(len(a.rows) - 1)

	case key.Matches(msg, a.keys.TagRight):
		a.moveChipCursor(1)

	case key.Matches(msg, a.keys.TagLeft):
		a.moveChipCursor(-1)

	case key.Matches(msg, a.keys.Select):
		if chip, ok := a.selectedChip(); ok {
			a.filter = chip.Name
			a.chipCursor = -1
			a.cursor = 0
			logging.WithOp(a.logger, "filter").Info("filter by tag", "tag", chip.Name)
			return a, a.refreshWithFavicons(false)
		}
		a.copySelected()

	case key.Matches(msg, a.keys.Yank):
		a.copySelected()

	case key.Matches(msg, a.keys.Open):
		if row, ok := a.selectedRow(); ok {
			if err := a.openURL(row.URL); err != nil {
				a.logger.Error("open browser failed", "url", row.URL, "err", err)
				a.setMessage(MessageError, "Could not open browser: "+err.Error())
			}
		}

	case key.Matches(msg, a.keys.Refresh):
		a.favicons = make(map[string]string)
		a.setMessage(MessageInfo, "")
		return a, a.refreshWithFavicons(true)

	case key.Matches(msg, a.keys.Delete):
		if row, ok := a.selectedRow(); ok {
			return a, a.deleteBookmark(row.ID)
		}

	case key.Matches(msg, a.keys.Edit):
		if row, ok := a.selectedRow(); ok {
			a.form.Reset()
			a.form.EditID = row.ID
			a.mode = ModeEditMenu
		}

	case key.Matches(msg, a.keys.Add):
		a.form.Reset()
		a.mode = ModeAddURL
		return a, a.form.URLInput.Focus()

	case key.Matches(msg, a.keys.Filter):
		a.form.FilterInput.SetValue(a.filter)
		a.form.FilterInput.CursorEnd()
		a.mode = ModeFilter
		return a, a.form.FilterInput.Focus()
	}

	return a, nil
}

// copySelected copies the selected row's URL to the clipboard.
func (a *App) copySelected() {
	row, ok := a.selectedRow()
	if !ok {
		return
	}
	if err := a.copyToClipboard(row.URL); err != nil {
		a.logger.Error("clipboard write failed", "err", err)
		a.setMessage(MessageError, "Could not copy: "+err.Error())
		return
	}
	a.setMessage(MessageSuccess, CopiedPrefix+row.URL)
}

// deleteBookmark removes a bookmark and reloads the full list.
func (a *App) deleteBookmark(id int64) tea.Cmd {
	logger := logging.WithOp(a.logger, "delete")
	if err := a.store.Delete(a.ctx, id); err != nil {
		logger.Error("delete failed", "id", id, "err", err)
		a.setMessage(MessageError, err.Error())
		return nil
	}
	logger.Info("bookmark deleted", "id", id)
	a.setMessage(MessageSuccess, "Deleted")
	return a.refreshWithFavicons(true)
}

// handleFilterMode handles keys while typing a tag filter.
func (a App) handleFilterMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		a.form.FilterInput.Blur()
		a.mode = ModeNormal
		return a, nil

	case tea.KeyEnter:
		a.filter = a.form.FilterInput.Value()
		a.form.FilterInput.Blur()
		a.mode = ModeNormal
		a.cursor = 0
		return a, a.refreshWithFavicons(false)
	}

	var cmd tea.Cmd
	a.form.FilterInput, cmd = a.form.FilterInput.Update(msg)
	return a, cmd
}

// handleAddURLMode handles the first add step: entering the URL.
func (a App) handleAddURLMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		a.form.Reset()
		a.mode = ModeNormal
		return a, nil

	case tea.KeyEnter:
		url := strings.TrimSpace(a.form.URLInput.Value())
		if url == "" {
			a.form.Reset()
			a.mode = ModeNormal
			return a, nil
		}

		exists, err := a.store.Exists(a.ctx, url)
		if err != nil {
			a.logger.Error("duplicate check failed", "url", url, "err", err)
			a.form.Reset()
			a.mode = ModeNormal
			a.setMessage(MessageError, err.Error())
			return a, nil
		}
		if exists {
			a.form.Reset()
			a.showNotice("Duplicate URL", DuplicateNotice)
			return a, nil
		}

		a.form.PendingURL = url
		a.form.URLInput.Blur()
		a.mode = ModeAddTags
		return a, a.form.TagsInput.Focus()
	}

	var cmd tea.Cmd
	a.form.URLInput, cmd = a.form.URLInput.Update(msg)
	return a, cmd
}

// handleAddTagsMode handles the second add step. Enter starts the title lookup;
// the bookmark is written when the title arrives.
func (a App) handleAddTagsMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		a.form.Reset()
		a.mode = ModeNormal
		return a, nil

	case tea.KeyEnter:
		url := a.form.PendingURL
		tags := a.form.TagsInput.Value()
		a.form.Reset()
		a.mode = ModeNormal
		a.setMessage(MessageInfo, "Fetching title for "+url+"...")
		return a, a.fetchTitleCmd(url, tags)
	}

	var cmd tea.Cmd
	a.form.TagsInput, cmd = a.form.TagsInput.Update(msg)
	return a, cmd
}

// handleTitleFetched writes a pending bookmark once its title is known.
func (a App) handleTitleFetched(msg titleFetchedMsg) (tea.Model, tea.Cmd) {
	logger := logging.WithOp(a.logger, "add")

	id, err := a.store.Add(a.ctx, model.NewBookmarkParams{
		URL:   msg.URL,
		Title: msg.Title,
		Tags:  model.SplitTagInput(msg.Tags),
	})
	if errors.Is(err, storage.ErrDuplicateURL) {
		logger.Info("duplicate URL rejected", "url", msg.URL)
		a.setMessage(MessageInfo, "")
		a.showNotice("Duplicate URL", DuplicateNotice)
		return a, nil
	}
	if err != nil {
		logger.Error("add failed", "url", msg.URL, "err", err)
		a.setMessage(MessageError, err.Error())
		return a, nil
	}

	logger.Info("bookmark added", "id", id, "url", msg.URL, "title", msg.Title)
	a.setMessage(MessageSuccess, "Added: "+msg.Title)
	return a, a.refreshWithFavicons(true)
}

// handleEditMenuMode handles the Edit Title / Edit Tags / Delete menu.
func (a App) handleEditMenuMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Cancel), key.Matches(msg, a.keys.Quit):
		a.form.Reset()
		a.mode = ModeNormal
		return a, nil

	case key.Matches(msg, a.keys.Down):
		if a.form.MenuCursor < len(EditMenuOptions)-1 {
			a.form.MenuCursor++
		}

	case key.Matches(msg, a.keys.Up):
		if a.form.MenuCursor > 0 {
			a.form.MenuCursor--
		}

	case key.Matches(msg, a.keys.Select):
		return a.selectEditMenu()
	}

	return a, nil
}

func (a App) selectEditMenu() (tea.Model, tea.Cmd) {
	id := a.form.EditID

	switch EditMenuOptions[a.form.MenuCursor] {
	case EditMenuTitle:
		a.form.TitleInput.Reset()
		if row, ok := a.selectedRow(); ok && row.ID == id {
			a.form.TitleInput.SetValue(row.Title)
			a.form.TitleInput.CursorEnd()
		}
		a.mode = ModeEditTitle
		return a, a.form.TitleInput.Focus()

	case EditMenuTags:
		b, err := a.store.Get(a.ctx, id)
		if err != nil {
			a.logger.Error("load bookmark failed", "id", id, "err", err)
			a.form.Reset()
			a.mode = ModeNormal
			a.setMessage(MessageError, err.Error())
			return a, nil
		}
		a.form.TagsInput.SetValue(b.TagString())
		a.form.TagsInput.CursorEnd()
		a.mode = ModeEditTags
		return a, a.form.TagsInput.Focus()

	default:
		a.form.Reset()
		a.mode = ModeNormal
		return a, a.deleteBookmark(id)
	}
}

// handleEditTitleMode handles title editing. The title is stored as typed; empty input leaves it unchanged.
func (a App) handleEditTitleMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		a.form.Reset()
		a.mode = ModeNormal
		return a, nil

	case tea.KeyEnter:
		id := a.form.EditID
		title := a.form.TitleInput.Value()
		a.form.Reset()
		a.mode = ModeNormal
		if title == "" {
			return a, nil
		}

		logger := logging.WithOp(a.logger, "update_title")
		if err := a.store.UpdateTitle(a.ctx, id, title); err != nil {
			logger.Error("update title failed", "id", id, "err", err)
			a.setMessage(MessageError, err.Error())
			return a, nil
		}
		logger.Info("title updated", "id", id, "title", title)
		a.setMessage(MessageSuccess, "Title updated")
		return a, a.refreshWithFavicons(false)
	}

	var cmd tea.Cmd
	a.form.TitleInput, cmd = a.form.TitleInput.Update(msg)
	return a, cmd
}

// handleEditTagsMode handles tag editing. The raw input is stored normalized.
func (a App) handleEditTagsMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		a.form.Reset()
		a.mode = ModeNormal
		return a, nil

	case tea.KeyEnter:
		id := a.form.EditID
		raw := a.form.TagsInput.Value()
		a.form.Reset()
		a.mode = ModeNormal

		logger := logging.WithOp(a.logger, "update_tags")
		if err := a.store.UpdateTags(a.ctx, id, raw); err != nil {
			logger.Error("update tags failed", "id", id, "err", err)
			a.setMessage(MessageError, err.Error())
			return a, nil
		}
		logger.Info("tags updated", "id", id, "tags", model.NormalizeTags(raw))
		a.chipCursor = -1
		a.setMessage(MessageSuccess, "Tags updated")
		return a, a.refreshWithFavicons(false)
	}

	var cmd tea.Cmd
	a.form.TagsInput, cmd = a.form.TagsInput.Update(msg)
	return a, cmd
}
