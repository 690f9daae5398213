package tui

import (
	"context"
	"image"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/cli/browser"

	"github.com/nikbrunner/marks/internal/logging"
	"github.com/nikbrunner/marks/internal/storage"
	"github.com/nikbrunner/marks/internal/tagcolor"
	"github.com/nikbrunner/marks/internal/tui/layout"
	"github.com/nikbrunner/marks/internal/viewmodel"
)

// Enricher looks up page metadata. Failures are reported as the placeholder
// title or a nil image, never as errors.
type Enricher interface {
	FetchTitle(ctx context.Context, url string) string
	FetchFavicon(ctx context.Context, url string) image.Image
}

// App is the main bubbletea model for the bookmark manager.
type App struct {
	ctx      context.Context
	store    storage.Store
	enricher Enricher
	colors   viewmodel.ColorSource
	logger   *log.Logger

	keys         KeyMap
	styles       Styles
	layoutConfig layout.LayoutConfig

	copyToClipboard func(string) error
	openURL         func(string) error

	// List state
	rows       []viewmodel.Row
	filter     string // active tag filter, "" = all
	cursor     int    // selected row index
	chipCursor int    // selected tag chip in the current row, -1 = none

	// url -> "#RRGGBB" swatch; a present key with "" means requested or absent
	favicons map[string]string

	mode   Mode
	form   FormState
	notice NoticeState

	messageText string
	messageType MessageType

	// For gg command
	lastKeyWasG bool

	// Window dimensions
	width  int
	height int
}

// AppParams holds parameters for creating a new App.
type AppParams struct {
	Context      context.Context // optional, defaults to context.Background()
	Store        storage.Store
	Enricher     Enricher              // optional, disables title and favicon lookups if nil
	Colors       viewmodel.ColorSource // optional, uses a fresh tagcolor.Assigner if nil
	Logger       *log.Logger           // optional
	Keys         *KeyMap               // optional, uses default if nil
	Styles       *Styles               // optional, uses default if nil
	LayoutConfig *layout.LayoutConfig  // optional, uses default if nil
	Clipboard    func(string) error    // optional, uses the system clipboard if nil
	OpenURL      func(string) error    // optional, uses the system browser if nil
}

// NewApp creates a new App with the given parameters and loads the list.
func NewApp(params AppParams) App {
	keys := DefaultKeyMap()
	if params.Keys != nil {
		keys = *params.Keys
	}

	styles := DefaultStyles()
	if params.Styles != nil {
		styles = *params.Styles
	}

	layoutCfg := layout.DefaultConfig()
	if params.LayoutConfig != nil {
		layoutCfg = *params.LayoutConfig
	}

	ctx := params.Context
	if ctx == nil {
		ctx = context.Background()
	}

	var colors viewmodel.ColorSource = tagcolor.New()
	if params.Colors != nil {
		colors = params.Colors
	}

	logger := params.Logger
	if logger == nil {
		logger = logging.NewNop()
	}

	copyFn := params.Clipboard
	if copyFn == nil {
		copyFn = clipboard.WriteAll
	}

	openFn := params.OpenURL
	if openFn == nil {
		openFn = browser.OpenURL
	}

	app := App{
		ctx:             ctx,
		store:           params.Store,
		enricher:        params.Enricher,
		colors:          colors,
		logger:          logger,
		keys:            keys,
		styles:          styles,
		layoutConfig:    layoutCfg,
		copyToClipboard: copyFn,
		openURL:         openFn,
		chipCursor:      -1,
		favicons:        make(map[string]string),
		form:            NewFormState(layoutCfg),
		width:           80,
		height:          24,
	}

	app.refresh(false)
	return app
}

// Cursor returns the current cursor position.
func (a App) Cursor() int {
	return a.cursor
}

// ChipCursor returns the selected tag chip index, or -1 if none.
func (a App) ChipCursor() int {
	return a.chipCursor
}

// Rows returns the rows currently displayed.
func (a App) Rows() []viewmodel.Row {
	return a.rows
}

// Filter returns the active tag filter.
func (a App) Filter() string {
	return a.filter
}

// Mode returns the current interaction mode.
func (a App) Mode() Mode {
	return a.mode
}

// Message returns the current status bar message.
func (a App) Message() string {
	return a.messageText
}

// Notice returns the text of the blocking notice, if one is shown.
func (a App) Notice() string {
	if a.mode != ModeNotice {
		return ""
	}
	return a.notice.Text
}

// Favicon returns the swatch color resolved for url, or "".
func (a App) Favicon(url string) string {
	return a.favicons[url]
}

// WithDimensions returns a copy of the app with the given terminal size.
func (a App) WithDimensions(width, height int) App {
	a.width = width
	a.height = height
	return a
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return a.faviconCmds()
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case titleFetchedMsg:
		return a.handleTitleFetched(msg)

	case faviconFetchedMsg:
		a.favicons[msg.URL] = msg.Color
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	return a, nil
}

// handleKey routes a key press to the handler for the current mode.
func (a App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return a, tea.Quit
	}

	switch a.mode {
	case ModeFilter:
		return a.handleFilterMode(msg)
	case ModeAddURL:
		return a.handleAddURLMode(msg)
	case ModeAddTags:
		return a.handleAddTagsMode(msg)
	case ModeEditMenu:
		return a.handleEditMenuMode(msg)
	case ModeEditTitle:
		return a.handleEditTitleMode(msg)
	case ModeEditTags:
		return a.handleEditTagsMode(msg)
	case ModeNotice:
		if key.Matches(msg, a.keys.Select, a.keys.Cancel) {
			a.mode = ModeNormal
			a.notice = NoticeState{}
		}
		return a, nil
	default:
		return a.handleNormalMode(msg)
	}
}

// View implements tea.Model.
func (a App) View() string {
	return a.renderView()
}
