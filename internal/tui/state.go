package tui

import (
	"github.com/charmbracelet/bubbles/textinput"

	"github.com/nikbrunner/marks/internal/tui/layout"
)

// Mode represents the current interaction mode.
type Mode int

const (
	ModeNormal Mode = iota
	ModeFilter
	ModeAddURL
	ModeAddTags
	ModeEditMenu
	ModeEditTitle
	ModeEditTags
	ModeNotice
)

// MessageType categorizes status bar messages.
type MessageType int

const (
	MessageInfo MessageType = iota
	MessageSuccess
	MessageWarning
	MessageError
)

// Edit menu entries, in display order.
const (
	EditMenuTitle  = "Edit Title"
	EditMenuTags   = "Edit Tags"
	EditMenuDelete = "Delete"
)

// EditMenuOptions lists the edit menu entries.
var EditMenuOptions = []string{EditMenuTitle, EditMenuTags, EditMenuDelete}

// FormState holds the text inputs used by the add, edit and filter flows.
type FormState struct {
	URLInput    textinput.Model
	TagsInput   textinput.Model
	TitleInput  textinput.Model
	FilterInput textinput.Model

	PendingURL string // URL accepted in the first add step
	EditID     int64  // bookmark targeted by the edit menu
	MenuCursor int    // selected edit menu entry
}

// NewFormState creates a FormState with initialized inputs.
func NewFormState(cfg layout.LayoutConfig) FormState {
	urlInput := textinput.New()
	urlInput.Placeholder = "https://..."
	urlInput.CharLimit = cfg.Input.URLCharLimit
	urlInput.Width = cfg.Input.StandardWidth

	tagsInput := textinput.New()
	tagsInput.Placeholder = "tag1, tag2, tag3"
	tagsInput.CharLimit = cfg.Input.TagsCharLimit
	tagsInput.Width = cfg.Input.StandardWidth

	titleInput := textinput.New()
	titleInput.Placeholder = "Title"
	titleInput.CharLimit = cfg.Input.TitleCharLimit
	titleInput.Width = cfg.Input.StandardWidth

	filterInput := textinput.New()
	filterInput.Placeholder = "tag"
	filterInput.CharLimit = cfg.Input.FilterCharLimit
	filterInput.Width = cfg.Input.FilterWidth

	return FormState{
		URLInput:    urlInput,
		TagsInput:   tagsInput,
		TitleInput:  titleInput,
		FilterInput: filterInput,
	}
}

// Reset clears inputs and edit targets for a new session.
func (f *FormState) Reset() {
	f.URLInput.Reset()
	f.TagsInput.Reset()
	f.TitleInput.Reset()
	f.URLInput.Blur()
	f.TagsInput.Blur()
	f.TitleInput.Blur()
	f.FilterInput.Blur()
	f.PendingURL = ""
	f.EditID = 0
	f.MenuCursor = 0
}

// NoticeState holds a blocking notice that must be dismissed.
type NoticeState struct {
	Title string
	Text  string
}
