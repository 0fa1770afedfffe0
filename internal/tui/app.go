package tui

import (
	"errors"
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/nikbrunner/lbl/internal/config"
	"github.com/nikbrunner/lbl/internal/imageinfo"
	"github.com/nikbrunner/lbl/internal/labeler"
	"github.com/nikbrunner/lbl/internal/picker"
	"github.com/nikbrunner/lbl/internal/tui/layout"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// OpenFunc opens a session from the values entered in the setup form.
type OpenFunc func(source, output string, categories []string, start int) (*labeler.Session, error)

// App is the main bubbletea model for the labeler.
type App struct {
	session      *labeler.Session
	open         OpenFunc
	keys         KeyMap
	styles       Styles
	layoutConfig layout.LayoutConfig
	logger       *zap.Logger

	mode        Mode
	autoAdvance bool

	setup       SetupState
	addCategory AddCategoryState
	picker      picker.Picker
	pickerNames []string // items the open picker was built from

	clipboard func(string) error
	describe  func(afero.Fs, string) (imageinfo.Info, error)

	// Metadata of the current image, reloaded when the cursor moves
	info    imageinfo.Info
	infoErr error
	infoFor string

	messageText string
	messageType MessageType

	// For gg command
	lastKeyWasG bool

	// Window dimensions
	width  int
	height int
}

// AppParams holds parameters for creating a new App.
type AppParams struct {
	Session *labeler.Session // nil starts with the setup form
	Open    OpenFunc         // required when Session is nil

	// Prefill for the setup form
	Source     string
	Output     string
	Categories []string
	StartIndex int

	AutoAdvance bool
	Logger      *zap.Logger
	Clipboard   func(string) error                              // optional, defaults to the system clipboard
	Describe    func(afero.Fs, string) (imageinfo.Info, error) // optional, defaults to imageinfo.Describe
	Keys        *KeyMap                                         // optional, uses default if nil
	Styles      *Styles                                         // optional, uses default if nil
}

// NewApp creates a new App with the given parameters.
func NewApp(params AppParams) App {
	keys := DefaultKeyMap()
	if params.Keys != nil {
		keys = *params.Keys
	}

	styles := DefaultStyles()
	if params.Styles != nil {
		styles = *params.Styles
	}

	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	clip := params.Clipboard
	if clip == nil {
		clip = clipboard.WriteAll
	}

	describe := params.Describe
	if describe == nil {
		describe = imageinfo.Describe
	}

	cfg := layout.DefaultConfig()

	app := App{
		session:      params.Session,
		open:         params.Open,
		keys:         keys,
		styles:       styles,
		layoutConfig: cfg,
		logger:       logger,
		autoAdvance:  params.AutoAdvance,
		addCategory:  NewAddCategoryState(cfg),
		clipboard:    clip,
		describe:     describe,
		width:        80,
		height:       24,
	}

	if app.session == nil {
		app.mode = ModeSetup
		app.setup = NewSetupState(cfg, params.Source, params.Output, params.Categories, params.StartIndex)
	} else {
		app.refreshInfo()
	}

	return app
}

// Session returns the active session, nil while the setup form is shown.
func (a App) Session() *labeler.Session {
	return a.session
}

// Mode returns the current interaction mode.
func (a App) Mode() Mode {
	return a.mode
}

// Message returns the status line text and its type.
func (a App) Message() (string, MessageType) {
	return a.messageText, a.messageType
}

// SetupError returns the error shown on the setup form, if any.
func (a App) SetupError() string {
	return a.setup.Error
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case tea.KeyMsg:
		switch a.mode {
		case ModeSetup:
			return a.updateSetup(msg)
		case ModePickCategory, ModeJump:
			return a.updatePicker(msg)
		case ModeAddCategory:
			return a.updateAddCategory(msg)
		case ModeHelp:
			return a.updateHelp(msg)
		default:
			return a.updateNormal(msg)
		}
	}

	// Non-key messages (cursor blink) go to the focused input
	var cmd tea.Cmd
	switch a.mode {
	case ModeSetup:
		a.setup.Inputs[a.setup.Focused], cmd = a.setup.Inputs[a.setup.Focused].Update(msg)
	case ModeAddCategory:
		a.addCategory.Input, cmd = a.addCategory.Input.Update(msg)
	case ModePickCategory, ModeJump:
		var m tea.Model
		m, cmd = a.picker.Update(msg)
		a.picker = m.(picker.Picker)
	}
	return a, cmd
}

func (a App) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Handle gg sequence
	if key.Matches(msg, a.keys.First) {
		if a.lastKeyWasG {
			a.session.JumpTo(0)
			a.lastKeyWasG = false
			a.clearMessage()
			a.refreshInfo()
			return a, nil
		}
		a.lastKeyWasG = true
		return a, nil
	}
	a.lastKeyWasG = false

	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit

	case key.Matches(msg, a.keys.Next):
		a.clearMessage()
		if !a.session.Advance() {
			a.setMessage(MessageInfo, "Last image")
		}

	case key.Matches(msg, a.keys.Prev):
		a.clearMessage()
		if !a.session.Retreat() {
			a.setMessage(MessageInfo, "First image")
		}

	case key.Matches(msg, a.keys.Last):
		a.clearMessage()
		a.session.JumpTo(a.session.Len() - 1)

	case key.Matches(msg, a.keys.Classify):
		n := int(msg.Runes[0] - '0')
		cats := a.session.CategoryNames()
		if n < 1 || n > len(cats) {
			a.setMessage(MessageError, fmt.Sprintf("No category %d", n))
			return a, nil
		}
		a.classify(cats[n-1])

	case key.Matches(msg, a.keys.PickCategory):
		a.clearMessage()
		a.pickerNames = a.session.CategoryNames()
		a.picker = picker.New("Classify "+a.session.Current().Name, a.pickerNames)
		a.mode = ModePickCategory
		return a, a.picker.Init()

	case key.Matches(msg, a.keys.Jump):
		a.clearMessage()
		images := a.session.Images()
		a.pickerNames = make([]string, len(images))
		for i, img := range images {
			a.pickerNames[i] = img.Name
		}
		a.picker = picker.New("Jump to image", a.pickerNames)
		a.mode = ModeJump
		return a, a.picker.Init()

	case key.Matches(msg, a.keys.Undo):
		a.undo()

	case key.Matches(msg, a.keys.AddCategory):
		a.clearMessage()
		a.addCategory.Reset()
		a.mode = ModeAddCategory
		cmd := a.addCategory.Input.Focus()
		return a, cmd

	case key.Matches(msg, a.keys.YankPath):
		path := a.session.Current().Path
		if err := a.clipboard(path); err != nil {
			a.logger.Warn("clipboard write failed", zap.Error(err))
			a.setMessage(MessageError, "Clipboard: "+err.Error())
		} else {
			a.setMessage(MessageSuccess, "Copied "+path)
		}

	case key.Matches(msg, a.keys.Help):
		a.mode = ModeHelp
	}

	a.refreshInfo()
	return a, nil
}

// classify assigns the current image and advances when configured to.
func (a *App) classify(category string) {
	img := a.session.Current()
	if err := a.session.ClassifyCurrent(category); err != nil {
		if errors.Is(err, labeler.ErrIO) {
			a.setMessage(MessageError, "Copy failed: "+err.Error())
		} else {
			a.setMessage(MessageError, err.Error())
		}
		return
	}

	a.setMessage(MessageSuccess, fmt.Sprintf("%s → %s", img.Name, category))
	if a.autoAdvance {
		if !a.session.Advance() && a.session.Classified() == a.session.Len() {
			a.setMessage(MessageSuccess, fmt.Sprintf("%s → %s, all %d images classified", img.Name, category, a.session.Len()))
		}
	}
	a.refreshInfo()
}

func (a *App) undo() {
	img, err := a.session.Undo()
	switch {
	case errors.Is(err, labeler.ErrNothingToUndo):
		a.setMessage(MessageInfo, "Nothing to undo")
	case err != nil:
		a.setMessage(MessageError, "Undo failed: "+err.Error())
	default:
		a.setMessage(MessageSuccess, "Undid "+img.Name)
	}
}

func (a App) updatePicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m, cmd := a.picker.Update(msg)
	a.picker = m.(picker.Picker)

	if !a.picker.Done() {
		return a, cmd
	}

	mode := a.mode
	a.mode = ModeNormal
	idx, ok := a.picker.Selected()
	if !ok {
		return a, nil
	}

	switch mode {
	case ModePickCategory:
		a.classify(a.pickerNames[idx])
	case ModeJump:
		a.session.JumpTo(idx)
		a.refreshInfo()
	}
	return a, nil
}

func (a App) updateAddCategory(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc, tea.KeyCtrlC:
		a.mode = ModeNormal
		return a, nil

	case tea.KeyEnter:
		c, err := a.session.AddCategory(a.addCategory.Input.Value())
		if err != nil {
			a.setMessage(MessageError, err.Error())
			return a, nil
		}
		a.mode = ModeNormal
		if c.ID < 9 {
			a.setMessage(MessageSuccess, fmt.Sprintf("Added %s [%d]", c.Name, c.ID+1))
		} else {
			a.setMessage(MessageSuccess, "Added "+c.Name)
		}
		return a, nil
	}

	var cmd tea.Cmd
	a.addCategory.Input, cmd = a.addCategory.Input.Update(msg)
	return a, cmd
}

func (a App) updateHelp(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, a.keys.Help, a.keys.Quit) || msg.Type == tea.KeyEsc {
		a.mode = ModeNormal
	}
	return a, nil
}

func (a App) updateSetup(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc, tea.KeyCtrlC:
		return a, tea.Quit

	case tea.KeyTab, tea.KeyDown:
		a.setup.focus(a.setup.Focused + 1)
		return a, nil

	case tea.KeyShiftTab, tea.KeyUp:
		a.setup.focus(a.setup.Focused - 1)
		return a, nil

	case tea.KeyEnter:
		if a.setup.Focused < fieldCount-1 {
			a.setup.focus(a.setup.Focused + 1)
			return a, nil
		}
		return a.submitSetup()
	}

	var cmd tea.Cmd
	a.setup.Inputs[a.setup.Focused], cmd = a.setup.Inputs[a.setup.Focused].Update(msg)
	return a, cmd
}

func (a App) submitSetup() (tea.Model, tea.Cmd) {
	source, output, cats, startValue := a.setup.Values()
	categories := config.ParseCategories(cats)

	cfg := config.Config{Source: source, Output: output, Categories: categories}
	if err := cfg.Validate(); err != nil {
		a.setup.Error = err.Error()
		return a, nil
	}
	start, err := ParseStartIndex(startValue)
	if err != nil {
		a.setup.Error = err.Error()
		return a, nil
	}
	if a.open == nil {
		a.setup.Error = "no session opener configured"
		return a, nil
	}

	s, err := a.open(source, output, categories, start)
	if err != nil {
		a.logger.Warn("setup: opening session", zap.Error(err))
		a.setup.Error = err.Error()
		return a, nil
	}

	a.session = s
	a.mode = ModeNormal
	a.setup.Error = ""
	a.setMessage(MessageInfo, fmt.Sprintf("Loaded %d images, %d already classified", s.Len(), s.Classified()))
	a.refreshInfo()
	return a, nil
}

// refreshInfo reloads metadata when the current image changed.
func (a *App) refreshInfo() {
	if a.session == nil {
		return
	}
	cur := a.session.Current()
	if cur.Path == a.infoFor {
		return
	}
	a.infoFor = cur.Path
	a.info, a.infoErr = a.describe(a.session.Fs(), cur.Path)
	if a.infoErr != nil {
		a.logger.Debug("reading image metadata", zap.String("image", cur.Name), zap.Error(a.infoErr))
	}
}

func (a *App) setMessage(t MessageType, text string) {
	a.messageType = t
	a.messageText = text
}

func (a *App) clearMessage() {
	a.messageText = ""
}

// View implements tea.Model.
func (a App) View() string {
	return a.renderView()
}
