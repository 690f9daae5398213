package layout

// LayoutConfig holds all layout-related configuration values.
type LayoutConfig struct {
	List  ListConfig
	Modal ModalConfig
	Input InputConfig
	Text  TextConfig
}

// ListConfig holds bookmark list dimension configuration.
type ListConfig struct {
	// ChromeLines is subtracted from terminal height for list content.
	// Accounts for: app padding (1) + header (2) + help bar (3) = 6
	ChromeLines int

	// LinesPerRow is how many terminal lines one bookmark occupies (title + URL).
	LinesPerRow int

	// MinRows is the minimum number of bookmarks shown.
	MinRows int

	// ContentPadding is subtracted from terminal width for row rendering.
	// Accounts for app padding (2 each side) + cursor marker + swatch.
	ContentPadding int

	// TitleWidthPercent is the share of the row width given to the title
	// before tag chips.
	TitleWidthPercent int
}

// ModalConfig holds modal dialog configuration.
type ModalConfig struct {
	WidthPercent int // share of the terminal width
	MinWidth     int
	MaxWidth     int

	// ScreenMargin is the space kept free beside a dialog on narrow terminals.
	ScreenMargin int

	// InputInset is what a text input loses to the dialog:
	// horizontal padding (4) + prompt (2) + cursor (1).
	InputInset int
}

// InputConfig holds text input configuration.
type InputConfig struct {
	// Character limits
	TitleCharLimit  int
	URLCharLimit    int
	TagsCharLimit   int
	FilterCharLimit int

	// Display widths
	StandardWidth int // Used for title, URL, tags
	FilterWidth   int // Used for the inline filter input (narrower)
}

// TextConfig holds text truncation configuration.
type TextConfig struct {
	// Ellipsis is the string used to indicate truncation.
	Ellipsis string
}

// DefaultConfig returns the default layout configuration.
func DefaultConfig() LayoutConfig {
	return LayoutConfig{
		List: ListConfig{
			ChromeLines:       6, // app padding (1) + header (2) + help bar (3)
			LinesPerRow:       2,
			MinRows:           1,
			ContentPadding:    8,
			TitleWidthPercent: 60,
		},
		Modal: ModalConfig{
			WidthPercent: 50,
			MinWidth:     40,
			MaxWidth:     80,
			ScreenMargin: 4,
			InputInset:   7,
		},
		Input: InputConfig{
			TitleCharLimit:  200,
			URLCharLimit:    2000,
			TagsCharLimit:   200,
			FilterCharLimit: 50,
			StandardWidth:   50,
			FilterWidth:     30,
		},
		Text: TextConfig{
			Ellipsis: "...",
		},
	}
}
