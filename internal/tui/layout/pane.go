package layout

// PaneLayout holds calculated pane dimensions.
type PaneLayout struct {
	StripWidth   int
	DetailsWidth int
}

// CalculatePaneHeight computes the content height for panes.
// Returns at least MinHeight.
func CalculatePaneHeight(terminalHeight int, cfg PaneConfig) int {
	height := terminalHeight - cfg.HeightReduction
	if height < cfg.MinHeight {
		return cfg.MinHeight
	}
	return height
}

// CalculatePaneWidths splits the terminal width between the image strip
// and the details pane, enforcing the minimum width of each.
func CalculatePaneWidths(terminalWidth int, cfg PaneConfig) PaneLayout {
	available := terminalWidth - cfg.WidthOffset

	strip := available * cfg.StripPercent / 100
	if strip < cfg.MinStripWidth {
		strip = cfg.MinStripWidth
	}

	details := available - strip
	if details < cfg.MinDetailsWidth {
		details = cfg.MinDetailsWidth
	}

	return PaneLayout{
		StripWidth:   strip,
		DetailsWidth: details,
	}
}

// CalculateItemWidth computes the width available for item content.
func CalculateItemWidth(paneWidth int, cfg PaneConfig) int {
	return paneWidth - cfg.ContentPadding
}

// CalculateVisibleHeight computes the visible item count in a pane.
func CalculateVisibleHeight(paneHeight, headerLines int) int {
	height := paneHeight - headerLines
	if height < 1 {
		return 1
	}
	return height
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

// CalculateStripWindow returns the [start, end) range of images shown in
// the strip so that current stays centered where possible.
func CalculateStripWindow(current, total, slots int) (start, end int) {
	if total <= 0 || slots <= 0 {
		return 0, 0
	}
	start = CalculateViewportOffset(current, total, slots)
	end = start + slots
	if end > total {
		end = total
	}
	return start, end
}
