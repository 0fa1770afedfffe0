package picker

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/nikbrunner/lbl/internal/search"
	"github.com/nikbrunner/lbl/internal/tui/layout"
)

const defaultMaxVisible = 10

var (
	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")).
			Bold(true)

	normalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	matchStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("99")).
			Underline(true)

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("99")).
			Bold(true)

	footerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244"))
)

// Picker is a fuzzy-filtered list for choosing one of a set of strings.
// It never quits the program; callers check Done after each Update.
type Picker struct {
	title      string
	items      []string
	input      textinput.Model
	results    []search.Result
	cursor     int
	selected   bool
	cancelled  bool
	maxVisible int
}

// New creates a Picker over items with the given title.
func New(title string, items []string) Picker {
	input := textinput.New()
	input.Placeholder = "type to filter..."
	input.CharLimit = 100
	input.Width = 40
	input.Focus()

	return Picker{
		title:      title,
		items:      items,
		input:      input,
		results:    search.Fuzzy(items, ""),
		maxVisible: defaultMaxVisible,
	}
}

// Init implements tea.Model.
func (p Picker) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (p Picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil
	}

	switch keyMsg.Type {
	case tea.KeyEsc, tea.KeyCtrlC:
		p.cancelled = true
		return p, nil

	case tea.KeyEnter:
		if len(p.results) > 0 {
			p.selected = true
		}
		return p, nil

	case tea.KeyDown, tea.KeyCtrlN, tea.KeyTab:
		if p.cursor < len(p.results)-1 {
			p.cursor++
		}
		return p, nil

	case tea.KeyUp, tea.KeyCtrlP, tea.KeyShiftTab:
		if p.cursor > 0 {
			p.cursor--
		}
		return p, nil
	}

	before := p.input.Value()
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	if p.input.Value() != before {
		p.results = search.Fuzzy(p.items, p.input.Value())
		p.cursor = 0
	}
	return p, cmd
}

// View implements tea.Model.
func (p Picker) View() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render(fmt.Sprintf("%s (%d/%d)", p.title, len(p.results), len(p.items))))
	b.WriteString("\n")
	b.WriteString(p.input.View())
	b.WriteString("\n\n")

	if len(p.results) == 0 {
		b.WriteString(footerStyle.Render("  no matches"))
		b.WriteString("\n")
	}

	start, end := layout.CalculateListWindow(p.cursor, len(p.results), p.maxVisible)
	for i := start; i < end; i++ {
		r := p.results[i]
		prefix := "  "
		style := normalStyle
		if i == p.cursor {
			prefix = "> "
			style = selectedStyle
		}
		b.WriteString(prefix + highlight(r, style) + "\n")
	}

	b.WriteString("\n")
	b.WriteString(footerStyle.Render("↑/↓: move  Enter: choose  Esc: cancel"))

	return b.String()
}

// highlight renders r.Text with matched characters emphasised.
func highlight(r search.Result, base lipgloss.Style) string {
	if len(r.MatchedIndexes) == 0 {
		return base.Render(r.Text)
	}

	matched := make(map[int]bool, len(r.MatchedIndexes))
	for _, idx := range r.MatchedIndexes {
		matched[idx] = true
	}

	var b strings.Builder
	for i, ch := range r.Text {
		if matched[i] {
			b.WriteString(matchStyle.Render(string(ch)))
		} else {
			b.WriteString(base.Render(string(ch)))
		}
	}
	return b.String()
}

// Done reports whether the user chose an item or cancelled.
func (p Picker) Done() bool {
	return p.selected || p.cancelled
}

// Selected returns the index (into the original items) of the chosen item.
func (p Picker) Selected() (int, bool) {
	if p.cancelled || !p.selected || p.cursor >= len(p.results) {
		return 0, false
	}
	return p.results[p.cursor].Index, true
}

// Cancelled returns true if the user cancelled the selection.
func (p Picker) Cancelled() bool {
	return p.cancelled
}

// Query returns the current filter text.
func (p Picker) Query() string {
	return p.input.Value()
}
