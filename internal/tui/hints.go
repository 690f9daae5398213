package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

// Hint is one "key:desc" entry of the help bar.
type Hint struct {
	Key  string
	Desc string
}

func hintFor(b key.Binding) Hint {
	h := b.Help()
	return Hint{Key: h.Key, Desc: h.Desc}
}

// joinedHint merges two bindings into one entry, e.g. "j/k:move".
func joinedHint(a, b key.Binding, desc string) Hint {
	return Hint{Key: a.Help().Key + "/" + b.Help().Key, Desc: desc}
}

// hintLine styles hints joined by sep, with keyDescSep between key and description.
func (a App) hintLine(hints []Hint, keyDescSep, sep string) string {
	parts := make([]string, 0, len(hints))
	for _, h := range hints {
		parts = append(parts, a.styles.HintKey.Render(h.Key)+keyDescSep+a.styles.HintDesc.Render(h.Desc))
	}
	return strings.Join(parts, sep)
}

// renderHints renders the help bar: "j/k:move h/l:tag y:copy".
func (a App) renderHints(hints []Hint) string {
	return a.hintLine(hints, ":", " ")
}

// renderHintsInline renders hints inside a dialog: "Enter ok  Esc cancel".
func (a App) renderHintsInline(hints []Hint) string {
	return a.hintLine(hints, " ", "  ")
}

// contextualHints returns the hints for the current mode in display order.
func (a App) contextualHints() []Hint {
	k := a.keys
	confirm := func(desc string) Hint { return Hint{Key: "Enter", Desc: desc} }

	switch a.mode {
	case ModeNormal:
		return a.normalHints()
	case ModeFilter:
		return []Hint{{Key: "type", Desc: "tag"}, confirm("apply"), hintFor(k.Cancel)}
	case ModeEditMenu:
		return []Hint{joinedHint(k.Down, k.Up, "move"), confirm("select"), hintFor(k.Cancel)}
	case ModeAddURL:
		return []Hint{confirm("next"), hintFor(k.Cancel)}
	case ModeAddTags, ModeEditTitle, ModeEditTags:
		return []Hint{confirm("save"), hintFor(k.Cancel)}
	default:
		// The notice renders its own hint.
		return nil
	}
}

// normalHints lists navigation, then actions, then edits, then quit.
// Chip hints only appear when the selected row has tags.
func (a App) normalHints() []Hint {
	k := a.keys
	hints := []Hint{joinedHint(k.Down, k.Up, "move")}

	if row, ok := a.selectedRow(); ok && len(row.Tags) > 0 {
		hints = append(hints, joinedHint(k.TagLeft, k.TagRight, "tag"))
	}
	if _, ok := a.selectedChip(); ok {
		hints = append(hints, hintFor(k.Select))
	}

	for _, b := range []key.Binding{k.Yank, k.Open, k.Filter, k.Refresh, k.Add, k.Edit, k.Delete, k.Quit} {
		hints = append(hints, hintFor(b))
	}
	return hints
}
