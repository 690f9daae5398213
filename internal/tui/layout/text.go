package layout

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// StripANSI removes ANSI escape sequences from a string.
func StripANSI(s string) string {
	return ansi.Strip(s)
}

// VisibleLength returns the number of terminal cells s occupies.
// Escape sequences take none and wide runes take two.
func VisibleLength(s string) int {
	return ansi.StringWidth(s)
}

// TruncateText shortens text to maxWidth cells, ending in the configured
// ellipsis, and reports whether anything was cut.
func TruncateText(text string, maxWidth int, cfg TextConfig) (string, bool) {
	if VisibleLength(text) <= maxWidth {
		return text, false
	}
	if maxWidth <= 0 {
		return "", true
	}
	if VisibleLength(cfg.Ellipsis) >= maxWidth {
		return ansi.Truncate(cfg.Ellipsis, maxWidth, ""), true
	}
	return ansi.Truncate(text, maxWidth, cfg.Ellipsis), true
}

// PadRight pads text with spaces up to width cells.
// Text already at or over width is returned unchanged.
func PadRight(text string, width int) string {
	n := VisibleLength(text)
	if n >= width {
		return text
	}
	return text + strings.Repeat(" ", width-n)
}

// FitSegments keeps the leading segments whose combined width, separated by
// sep, fits in maxWidth. It reports how many were dropped.
func FitSegments(segments []string, sep string, maxWidth int) (kept []string, dropped int) {
	sepWidth := VisibleLength(sep)
	used := 0
	for i, s := range segments {
		w := VisibleLength(s)
		if i > 0 {
			w += sepWidth
		}
		if used+w > maxWidth {
			return kept, len(segments) - i
		}
		used += w
		kept = append(kept, s)
	}
	return kept, 0
}
