package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/nikbrunner/lbl/internal/tui/layout"
)

// Mode is the current interaction mode of the App.
type Mode int

const (
	ModeNormal Mode = iota
	ModeSetup
	ModePickCategory
	ModeJump
	ModeAddCategory
	ModeHelp
)

// MessageType controls how the status line is styled.
type MessageType int

const (
	MessageInfo MessageType = iota
	MessageSuccess
	MessageError
)

// Setup form field indexes.
const (
	fieldSource = iota
	fieldOutput
	fieldCategories
	fieldStart
	fieldCount
)

// SetupState holds the inputs of the startup form.
type SetupState struct {
	Inputs  [fieldCount]textinput.Model
	Focused int
	Error   string
}

// NewSetupState creates the setup form, prefilled with any known values.
func NewSetupState(cfg layout.LayoutConfig, source, output string, categories []string, start int) SetupState {
	var s SetupState

	placeholders := [fieldCount]string{
		"~/photos/unsorted",
		"~/photos/sorted",
		"red, black, other",
		"0",
	}
	values := [fieldCount]string{source, output, strings.Join(categories, ", "), strconv.Itoa(start)}

	for i := range s.Inputs {
		input := textinput.New()
		input.Placeholder = placeholders[i]
		input.CharLimit = cfg.Input.PathCharLimit
		input.Width = cfg.Input.StandardWidth
		input.SetValue(values[i])
		s.Inputs[i] = input
	}
	s.focus(0)
	return s
}

// focus moves input focus to field i.
func (s *SetupState) focus(i int) {
	s.Focused = (i + fieldCount) % fieldCount
	for j := range s.Inputs {
		if j == s.Focused {
			s.Inputs[j].Focus()
		} else {
			s.Inputs[j].Blur()
		}
	}
}

// Values returns the trimmed form values.
func (s SetupState) Values() (source, output, categories, start string) {
	return strings.TrimSpace(s.Inputs[fieldSource].Value()),
		strings.TrimSpace(s.Inputs[fieldOutput].Value()),
		strings.TrimSpace(s.Inputs[fieldCategories].Value()),
		strings.TrimSpace(s.Inputs[fieldStart].Value())
}

// ParseStartIndex parses the 0-based start index field. Blank means 0.
func ParseStartIndex(value string) (int, error) {
	if value == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid start index %q", value)
	}
	return n, nil
}

// AddCategoryState holds the input for adding a category at runtime.
type AddCategoryState struct {
	Input textinput.Model
}

// NewAddCategoryState creates a new AddCategoryState with initialized input.
func NewAddCategoryState(cfg layout.LayoutConfig) AddCategoryState {
	input := textinput.New()
	input.Placeholder = "category name"
	input.CharLimit = cfg.Input.CategoryCharLimit
	input.Width = cfg.Input.StandardWidth
	return AddCategoryState{Input: input}
}

// Reset clears the input for a new entry.
func (s *AddCategoryState) Reset() {
	s.Input.Reset()
}
