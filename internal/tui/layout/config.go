package layout

// LayoutConfig holds all layout-related configuration values.
type LayoutConfig struct {
	Pane  PaneConfig
	Modal ModalConfig
	Input InputConfig
	Text  TextConfig
}

// PaneConfig holds pane dimension configuration.
type PaneConfig struct {
	// HeightReduction is subtracted from terminal height for pane content.
	// Accounts for: app padding (1) + header (1) + pane borders (2) + status line (1) + help bar (2) = 7
	HeightReduction int

	// MinHeight is the minimum pane height.
	MinHeight int

	// WidthOffset is subtracted before splitting the width between the two panes.
	// Accounts for app padding and the borders of both panes.
	WidthOffset int

	// StripPercent is the share of the available width given to the image strip.
	StripPercent int

	// MinStripWidth is the minimum width of the image strip pane.
	MinStripWidth int

	// MinDetailsWidth is the minimum width of the details pane.
	MinDetailsWidth int

	// ContentPadding is subtracted from pane width for item rendering.
	ContentPadding int
}

// ModalConfig holds modal dialog configuration.
type ModalConfig struct {
	// DefaultWidthPercent is the standard modal width as percentage of terminal width.
	DefaultWidthPercent int

	// MinWidth is the minimum modal width in characters.
	MinWidth int

	// MaxWidth is the maximum modal width in characters.
	MaxWidth int

	// PickerMaxVisible: max items shown in the category and image pickers.
	PickerMaxVisible int

	// HelpKeyColumnWidth: width of the key column in the help overlay.
	HelpKeyColumnWidth int
}

// InputConfig holds text input configuration.
type InputConfig struct {
	PathCharLimit     int
	CategoryCharLimit int

	StandardWidth int
}

// TextConfig holds text truncation configuration.
type TextConfig struct {
	// Ellipsis is the string used to indicate truncation.
	Ellipsis string
}

// DefaultConfig returns the default layout configuration.
func DefaultConfig() LayoutConfig {
	return LayoutConfig{
		Pane: PaneConfig{
			HeightReduction: 7, // app padding (1) + header (1) + pane borders (2) + status (1) + help bar (2)
			MinHeight:       5,
			WidthOffset:     8,
			StripPercent:    60,
			MinStripWidth:   30,
			MinDetailsWidth: 24,
			ContentPadding:  4,
		},
		Modal: ModalConfig{
			DefaultWidthPercent: 40,
			MinWidth:            50,
			MaxWidth:            80,
			PickerMaxVisible:    8,
			HelpKeyColumnWidth:  12,
		},
		Input: InputConfig{
			PathCharLimit:     4096,
			CategoryCharLimit: 64,
			StandardWidth:     50,
		},
		Text: TextConfig{
			Ellipsis: "...",
		},
	}
}
