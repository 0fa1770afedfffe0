package tui

import "github.com/charmbracelet/lipgloss"

// Styles holds all lipgloss styles for the TUI.
type Styles struct {
	App          lipgloss.Style
	Pane         lipgloss.Style
	PaneActive   lipgloss.Style
	Title        lipgloss.Style
	Header       lipgloss.Style // Source -> output line above the panes
	Item         lipgloss.Style
	ItemSelected lipgloss.Style
	Label        lipgloss.Style // Category tag next to an image name
	Unlabeled    lipgloss.Style
	Meta         lipgloss.Style
	Count        lipgloss.Style
	Help         lipgloss.Style
	Empty        lipgloss.Style
	Progress     lipgloss.Style
	HintKey      lipgloss.Style // Key portion of hints (e.g., "1-9", "Enter")
	HintDesc     lipgloss.Style // Description portion of hints (e.g., "classify", "cancel")
	Error        lipgloss.Style
	Success      lipgloss.Style
	Info         lipgloss.Style
}

// DefaultStyles returns the default style configuration.
// Grayscale with a single desaturated teal accent.
func DefaultStyles() Styles {
	primary := lipgloss.AdaptiveColor{Light: "#505050", Dark: "#A0A0A0"} // main text
	subtle := lipgloss.AdaptiveColor{Light: "#888888", Dark: "#606060"}  // secondary text
	accent := lipgloss.AdaptiveColor{Light: "#4A7070", Dark: "#5F8787"}  // desaturated teal
	border := lipgloss.AdaptiveColor{Light: "#888888", Dark: "#505050"}  // inactive borders

	return Styles{
		App: lipgloss.NewStyle().
			PaddingTop(1).
			PaddingLeft(2).
			PaddingRight(2),

		Pane: lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(border).
			Padding(0, 1),

		PaneActive: lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(accent).
			Padding(0, 1),

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(accent),

		Header: lipgloss.NewStyle().
			Foreground(subtle).
			PaddingLeft(1),

		Item: lipgloss.NewStyle().
			Foreground(primary).
			PaddingLeft(1),

		ItemSelected: lipgloss.NewStyle().
			PaddingLeft(1).
			Background(accent).
			Foreground(lipgloss.Color("#1A1A1A")),

		Label: lipgloss.NewStyle().
			Foreground(accent),

		Unlabeled: lipgloss.NewStyle().
			Foreground(subtle).
			Italic(true),

		Meta: lipgloss.NewStyle().
			Foreground(subtle),

		Count: lipgloss.NewStyle().
			Foreground(subtle),

		Help: lipgloss.NewStyle().
			Foreground(subtle).
			Padding(1, 0),

		Empty: lipgloss.NewStyle().
			Foreground(subtle),

		Progress: lipgloss.NewStyle().
			Foreground(accent).
			Bold(true),

		HintKey: lipgloss.NewStyle().
			Foreground(subtle),

		HintDesc: lipgloss.NewStyle().
			Foreground(subtle),

		Error: lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#CC3333", Dark: "#FF6666"}).
			Bold(true),

		Success: lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#338833", Dark: "#66CC66"}).
			Bold(true),

		Info: lipgloss.NewStyle().
			Foreground(accent).
			Bold(true),
	}
}
