package layout

// CalculateModalWidth returns the width of a centered modal: DefaultWidthPercent
// of the terminal, clamped to [MinWidth, MaxWidth] and kept 4 columns inside
// the terminal edge.
func CalculateModalWidth(terminalWidth int, cfg ModalConfig) int {
	width := terminalWidth * cfg.DefaultWidthPercent / 100
	width = min(max(width, cfg.MinWidth), cfg.MaxWidth)
	width = min(width, terminalWidth-4)
	return max(width, 1)
}

// CalculateListWindow returns the [start, end) slice of a list of total rows
// to draw so that selected stays visible. The window only scrolls once the
// selection moves past the last visible row.
func CalculateListWindow(selected, total, maxVisible int) (start, end int) {
	if maxVisible <= 0 || total <= 0 {
		return 0, 0
	}
	if total <= maxVisible {
		return 0, total
	}

	selected = min(max(selected, 0), total-1)
	start = max(selected-maxVisible+1, 0)
	return start, start + maxVisible
}
