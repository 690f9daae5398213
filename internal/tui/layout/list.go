package layout

// CalculateVisibleRows computes how many bookmarks fit on screen.
// Returns at least MinRows.
func CalculateVisibleRows(terminalHeight int, cfg ListConfig) int {
	perRow := cfg.LinesPerRow
	if perRow < 1 {
		perRow = 1
	}

	rows := (terminalHeight - cfg.ChromeLines) / perRow
	if rows < cfg.MinRows {
		return cfg.MinRows
	}
	return rows
}

// CalculateRowWidths splits the terminal width into title and chip columns.
func CalculateRowWidths(terminalWidth int, cfg ListConfig) (titleWidth, chipWidth int) {
	content := terminalWidth - cfg.ContentPadding
	if content < 1 {
		return 1, 0
	}

	titleWidth = content * cfg.TitleWidthPercent / 100
	if titleWidth < 1 {
		titleWidth = 1
	}
	return titleWidth, content - titleWidth
}

// CalculateViewportOffset calculates the scroll offset needed to keep the
// selected item visible within the viewport.
func CalculateViewportOffset(selected, total, viewportHeight int) int {
	if total <= viewportHeight {
		return 0
	}

	// Keep selection roughly centered, but clamp to valid range
	offset := selected - viewportHeight/2
	if offset < 0 {
		offset = 0
	}

	maxOffset := total - viewportHeight
	if offset > maxOffset {
		offset = maxOffset
	}

	return offset
}
