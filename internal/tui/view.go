package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/nikbrunner/lbl/internal/model"
	"github.com/nikbrunner/lbl/internal/tui/layout"
)

// renderView creates the complete view for the current mode.
func (a App) renderView() string {
	if a.mode == ModeSetup || a.session == nil {
		return a.renderSetup()
	}

	switch a.mode {
	case ModeHelp:
		return a.renderHelpOverlay()
	case ModePickCategory, ModeJump, ModeAddCategory:
		return a.renderModal()
	}

	paneHeight := layout.CalculatePaneHeight(a.height, a.layoutConfig.Pane)
	panes := layout.CalculatePaneWidths(a.width, a.layoutConfig.Pane)

	columns := lipgloss.JoinHorizontal(
		lipgloss.Top,
		a.renderStripPane(panes.StripWidth, paneHeight),
		a.renderDetailsPane(panes.DetailsWidth, paneHeight),
	)

	content := a.styles.App.Render(
		lipgloss.JoinVertical(lipgloss.Left, a.renderHeader(), columns, a.renderHelpBar()),
	)

	// Use Place to ensure exact terminal dimensions and prevent overflow
	return lipgloss.Place(a.width, a.height, lipgloss.Left, lipgloss.Top, content)
}

// renderHeader renders "source → output" above the panes.
func (a App) renderHeader() string {
	// terminal width minus app padding (left=2, right=2) and the arrow
	half := (a.width - 4 - 3) / 2
	src := layout.TruncatePathFromLeft(a.session.SourceDir(), half, a.layoutConfig.Text)
	dst := layout.TruncatePathFromLeft(a.session.OutputDir(), half, a.layoutConfig.Text)
	return a.styles.Header.Render(src + " → " + dst)
}

// renderStripPane renders the image list centered on the current image.
func (a App) renderStripPane(width, height int) string {
	var content strings.Builder

	total := a.session.Len()
	current := a.session.Index()

	content.WriteString(a.styles.Title.Render("Images") + " ")
	content.WriteString(a.styles.Progress.Render(fmt.Sprintf("%d/%d", current+1, total)) + "\n\n")

	visible := layout.CalculateVisibleHeight(height, 2)
	itemWidth := layout.CalculateItemWidth(width, a.layoutConfig.Pane)

	start, end := layout.CalculateStripWindow(current, total, visible)
	for i := start; i < end; i++ {
		img, _ := a.session.ImageAt(i)
		content.WriteString(a.renderImageLine(img, i == current, itemWidth) + "\n")
	}

	return a.styles.PaneActive.
		Width(width).
		Height(height).
		Render(strings.TrimRight(content.String(), "\n"))
}

// renderImageLine renders "name   [category]" with the name truncated to fit.
func (a App) renderImageLine(img model.ImageRef, selected bool, maxWidth int) string {
	tag := "·"
	if cat, ok := a.session.CategoryOf(img); ok {
		tag = "[" + cat + "]"
	}

	nameWidth := maxWidth - layout.VisibleLength(tag) - 1
	name, _ := layout.TruncateFilename(img.Name, nameWidth, a.layoutConfig.Text)

	padding := maxWidth - layout.VisibleLength(name) - layout.VisibleLength(tag)
	if padding < 1 {
		padding = 1
	}

	if selected {
		return a.styles.ItemSelected.Render(name + strings.Repeat(" ", padding) + tag)
	}
	return a.styles.Item.Render(name+strings.Repeat(" ", padding)) + a.styles.Label.Render(tag)
}

// renderDetailsPane renders metadata of the current image and the category list.
func (a App) renderDetailsPane(width, height int) string {
	var content strings.Builder
	itemWidth := layout.CalculateItemWidth(width, a.layoutConfig.Pane)

	img := a.session.Current()
	name, _ := layout.TruncateFilename(img.Name, itemWidth, a.layoutConfig.Text)
	content.WriteString(a.styles.Title.Render(name) + "\n")

	current, classified := a.session.CategoryOf(img)
	if classified {
		content.WriteString(a.styles.Label.Render("→ "+current) + "\n")
	} else {
		content.WriteString(a.styles.Unlabeled.Render("unclassified") + "\n")
	}

	if a.infoErr != nil {
		content.WriteString(a.styles.Empty.Render("metadata unavailable") + "\n")
	} else {
		meta := a.info.Dimensions()
		if a.info.Format != "" {
			meta += " " + a.info.Format
		}
		meta += ", " + a.info.HumanSize()
		content.WriteString(a.styles.Meta.Render(meta) + "\n")
		if a.info.TakenAt != nil {
			content.WriteString(a.styles.Meta.Render("taken "+a.info.TakenAt.Format("2006-01-02 15:04")) + "\n")
		}
	}

	content.WriteString("\n" + a.styles.Title.Render("Categories") + "\n")
	counts := a.session.Counts()
	for i, c := range a.session.Categories() {
		prefix := "    "
		if i < 9 {
			prefix = fmt.Sprintf("[%d] ", i+1)
		}
		suffix := fmt.Sprintf(" %d", counts[c.Name])
		line, _ := layout.TruncateWithPrefixSuffix(c.Name, itemWidth, prefix, suffix, a.layoutConfig.Text)
		if classified && c.Name == current {
			content.WriteString(a.styles.Label.Render(line) + "\n")
		} else {
			content.WriteString(a.styles.Item.Render(line) + "\n")
		}
	}

	content.WriteString("\n")
	content.WriteString(a.styles.Count.Render(fmt.Sprintf("classified %d/%d", a.session.Classified(), a.session.Len())) + "\n")
	if p, ok := a.session.Pending(); ok {
		undo := fmt.Sprintf("u: undo %s → %s", p.Image.Name, p.Category)
		undo, _ = layout.TruncateText(undo, itemWidth, a.layoutConfig.Text)
		content.WriteString(a.styles.Meta.Render(undo) + "\n")
	}

	return a.styles.Pane.
		Width(width).
		Height(height).
		Render(strings.TrimRight(content.String(), "\n"))
}

// renderHelpBar renders the message line and contextual hints.
func (a App) renderHelpBar() string {
	var lines []string

	if a.messageText != "" {
		lines = append(lines, a.renderMessageLine())
	} else {
		lines = append(lines, "")
	}

	if hints := a.renderHints(a.getContextualHints()); hints != "" {
		lines = append(lines, hints)
	}

	return strings.Join(lines, "\n")
}

// renderMessageLine renders the styled message with prefix icon based on type.
func (a App) renderMessageLine() string {
	switch a.messageType {
	case MessageError:
		return a.styles.Error.Render("✗ " + a.messageText)
	case MessageSuccess:
		return a.styles.Success.Render("✓ " + a.messageText)
	default:
		return a.styles.Info.Render(a.messageText)
	}
}

// renderModal renders the picker and input dialogs over the main view.
func (a App) renderModal() string {
	accent := lipgloss.AdaptiveColor{Light: "#4A7070", Dark: "#5F8787"}
	modalWidth := layout.CalculateModalWidth(a.width, a.layoutConfig.Modal)
	modalStyle := lipgloss.NewStyle().
		Border(lipgloss.ThickBorder()).
		BorderForeground(accent).
		Padding(1, 2).
		Width(modalWidth)

	var body string
	switch a.mode {
	case ModePickCategory, ModeJump:
		body = a.picker.View()
	case ModeAddCategory:
		var b strings.Builder
		b.WriteString(a.styles.Title.Render("Add Category") + "\n\n")
		b.WriteString("Name:\n")
		b.WriteString(a.addCategory.Input.View() + "\n\n")
		if a.messageType == MessageError && a.messageText != "" {
			b.WriteString(a.renderMessageLine() + "\n\n")
		}
		b.WriteString(a.renderHintsInline([]Hint{{Key: "Enter", Desc: "add"}, {Key: "Esc", Desc: "cancel"}}))
		body = b.String()
	}

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, modalStyle.Render(body))
}

// renderSetup renders the startup form.
func (a App) renderSetup() string {
	accent := lipgloss.AdaptiveColor{Light: "#4A7070", Dark: "#5F8787"}
	modalWidth := layout.CalculateModalWidth(a.width, a.layoutConfig.Modal)
	modalStyle := lipgloss.NewStyle().
		Border(lipgloss.ThickBorder()).
		BorderForeground(accent).
		Padding(1, 2).
		Width(modalWidth)

	labels := [fieldCount]string{"Source directory", "Output directory", "Categories", "Start at image (0-based)"}

	var b strings.Builder
	b.WriteString(a.styles.Title.Render("lbl setup") + "\n\n")
	for i, label := range labels {
		if i == a.setup.Focused {
			b.WriteString(a.styles.Label.Render(label) + "\n")
		} else {
			b.WriteString(label + "\n")
		}
		b.WriteString(a.setup.Inputs[i].View() + "\n\n")
	}
	if a.setup.Error != "" {
		b.WriteString(a.styles.Error.Render("✗ "+a.setup.Error) + "\n\n")
	}
	b.WriteString(a.renderHints(a.getContextualHints()))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, modalStyle.Render(b.String()))
}

// renderHelpOverlay renders the key reference.
func (a App) renderHelpOverlay() string {
	modalStyle := lipgloss.NewStyle().Padding(1, 2)
	keyCol := lipgloss.NewStyle().Width(a.layoutConfig.Modal.HelpKeyColumnWidth)

	sections := []struct {
		title string
		rows  [][2]string
	}{
		{"nav", [][2]string{
			{"h/l", "previous/next"},
			{"gg", "first image"},
			{"G", "last image"},
			{"/", "jump to image"},
		}},
		{"label", [][2]string{
			{"1-9", "classify into category N"},
			{"c", "pick category"},
			{"u", "undo last classify"},
			{"a", "add category"},
		}},
		{"misc", [][2]string{
			{"y", "yank image path"},
			{"?", "toggle help"},
			{"q", "quit"},
		}},
	}

	var b strings.Builder
	for i, s := range sections {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(a.styles.Title.Render(s.title) + "\n")
		for _, row := range s.rows {
			b.WriteString(keyCol.Render(row[0]) + row[1] + "\n")
		}
	}
	b.WriteString(a.styles.Help.Render("[?/esc] close"))

	return lipgloss.Place(a.width, a.height, lipgloss.Left, lipgloss.Top, modalStyle.Render(b.String()))
}
