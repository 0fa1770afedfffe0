package tui

import "strings"

// Hint represents a single keybind hint for display.
type Hint struct {
	Key  string // Display key (e.g., "1-9", "Enter")
	Desc string // Short description (e.g., "classify", "cancel")
}

// renderHint renders a single hint as "key:desc" with styling.
func (a App) renderHint(h Hint) string {
	return a.styles.HintKey.Render(h.Key) + ":" + a.styles.HintDesc.Render(h.Desc)
}

// renderHints renders hints in horizontal format for the bottom bar: "h/l:move 1-9:classify"
func (a App) renderHints(hints HintSet) string {
	all := hints.All()
	if len(all) == 0 {
		return ""
	}

	parts := make([]string, len(all))
	for i, h := range all {
		parts[i] = a.renderHint(h)
	}
	return strings.Join(parts, " ")
}

// renderHintsInline renders hints in inline format for modals: "Enter confirm  Esc cancel"
func (a App) renderHintsInline(hints []Hint) string {
	if len(hints) == 0 {
		return ""
	}

	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = a.styles.HintKey.Render(h.Key) + " " + a.styles.HintDesc.Render(h.Desc)
	}
	return strings.Join(parts, "  ")
}

// HintSet is an ordered collection of hints by group.
type HintSet struct {
	Nav    []Hint
	Action []Hint
	System []Hint
}

// All returns all hints flattened in display order.
func (h HintSet) All() []Hint {
	result := make([]Hint, 0, len(h.Nav)+len(h.Action)+len(h.System))
	result = append(result, h.Nav...)
	result = append(result, h.Action...)
	result = append(result, h.System...)
	return result
}

// getContextualHints returns the appropriate hints for the current mode.
func (a App) getContextualHints() HintSet {
	switch a.mode {
	case ModeNormal:
		return HintSet{
			Nav: []Hint{
				{Key: "h/l", Desc: "move"},
				{Key: "gg/G", Desc: "ends"},
				{Key: "/", Desc: "jump"},
			},
			Action: []Hint{
				{Key: "1-9", Desc: "classify"},
				{Key: "c", Desc: "pick"},
				{Key: "u", Desc: "undo"},
				{Key: "a", Desc: "add cat"},
				{Key: "y", Desc: "yank"},
			},
			System: []Hint{
				{Key: "?", Desc: "help"},
				{Key: "q", Desc: "quit"},
			},
		}
	case ModeSetup:
		return HintSet{
			Nav:    []Hint{{Key: "Tab", Desc: "next field"}},
			Action: []Hint{{Key: "Enter", Desc: "start"}},
			System: []Hint{{Key: "Esc", Desc: "quit"}},
		}
	case ModePickCategory, ModeJump:
		return HintSet{
			Nav:    []Hint{{Key: "↑/↓", Desc: "move"}},
			Action: []Hint{{Key: "Enter", Desc: "choose"}},
			System: []Hint{{Key: "Esc", Desc: "cancel"}},
		}
	case ModeAddCategory:
		return HintSet{
			Action: []Hint{{Key: "Enter", Desc: "add"}},
			System: []Hint{{Key: "Esc", Desc: "cancel"}},
		}
	case ModeHelp:
		return HintSet{
			System: []Hint{{Key: "?/q/Esc", Desc: "close"}},
		}
	default:
		return HintSet{}
	}
}
