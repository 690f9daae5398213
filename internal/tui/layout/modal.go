package layout

// ModalSize is the computed geometry of a dialog.
type ModalSize struct {
	Width      int // dialog width, padding included, border excluded
	InputWidth int // visible characters of a text input inside the dialog
}

// CalculateModal sizes a dialog as WidthPercent of the terminal, clamped to
// [MinWidth, MaxWidth] and never wider than the terminal minus a margin.
func CalculateModal(terminalWidth int, cfg ModalConfig) ModalSize {
	width := clamp(terminalWidth*cfg.WidthPercent/100, cfg.MinWidth, cfg.MaxWidth)
	width = max(min(width, terminalWidth-cfg.ScreenMargin), 1)

	return ModalSize{
		Width:      width,
		InputWidth: max(width-cfg.InputInset, 1),
	}
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
