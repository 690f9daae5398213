package tui

import "github.com/nikbrunner/marks/internal/viewmodel"

// selectedRow returns the row under the cursor, or false if the list is empty.
func (a App) selectedRow() (viewmodel.Row, bool) {
	if a.cursor < 0 || a.cursor >= len(a.rows) {
		return viewmodel.Row{}, false
	}
	return a.rows[a.cursor], true
}

// selectedChip returns the tag chip under the chip cursor, or false if none.
func (a App) selectedChip() (viewmodel.TagChip, bool) {
	row, ok := a.selectedRow()
	if !ok || a.chipCursor < 0 || a.chipCursor >= len(row.Tags) {
		return viewmodel.TagChip{}, false
	}
	return row.Tags[a.chipCursor], true
}

// moveCursor sets the row cursor and drops the chip selection.
func (a *App) moveCursor(to int) {
	if to >= len(a.rows) {
		to = len(a.rows) - 1
	}
	if to < 0 {
		to = 0
	}
	a.cursor = to
	a.chipCursor = -1
}

// moveChipCursor steps the chip cursor by delta. Stepping left of the first
// chip clears the chip selection.
func (a *App) moveChipCursor(delta int) {
	row, ok := a.selectedRow()
	if !ok || len(row.Tags) == 0 {
		a.chipCursor = -1
		return
	}

	next := a.chipCursor + delta
	if next < -1 {
		next = -1
	}
	if next >= len(row.Tags) {
		next = len(row.Tags) - 1
	}
	a.chipCursor = next
}
