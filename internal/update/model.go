package update

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/log"
	"github.com/sandeepkv93/tudu/internal/logging"
	"github.com/sandeepkv93/tudu/internal/model"
	"github.com/sandeepkv93/tudu/internal/tasklist"
)

type Mode string

const (
	// ModeInput sends keystrokes to the new-task field.
	ModeInput Mode = "input"
	// ModeList moves a cursor over the filtered view.
	ModeList Mode = "list"
)

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	All         string
	Active      string
	Completed   string
	CycleFilter string
	Palette     string
	Help        string
	Quit        string
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

type Notification struct {
	Title string
	Body  string
	Level string
	At    time.Time
}

type Model struct {
	List          *tasklist.List
	Mode          Mode
	Cursor        int
	Palette       CommandPaletteState
	HelpVisible   bool
	Notifications []Notification
	Status        StatusBar
	Keys          GlobalKeyMap
	Quitting      bool
	LastError     error

	ctx    context.Context
	logger *log.Logger
	// Bubble components used for rich TUI controls
	taskInput    textinput.Model
	commandInput textinput.Model
	helpModel    help.Model
	helpViewport viewport.Model
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

type AddTaskMsg struct {
	Text string
}

type ToggleTaskMsg struct {
	ID string
}

type RemoveTaskMsg struct {
	ID string
}

type SetFilterMsg struct {
	Filter model.Filter
}

// NewModel builds the TUI around an opened list. The new-task field starts
// focused.
func NewModel(ctx context.Context, list *tasklist.List, logger *log.Logger) Model {
	if logger == nil {
		logger = logging.Discard()
	}
	m := Model{
		List: list,
		Mode: ModeInput,
		Keys: GlobalKeyMap{
			All:         "1",
			Active:      "2",
			Completed:   "3",
			CycleFilter: "tab",
			Palette:     "/",
			Help:        "?",
			Quit:        "q",
		},
		ctx:    ctx,
		logger: logger,
	}
	m.initBubbleComponents()
	return m
}

func (m *Model) initBubbleComponents() {
	m.taskInput = textinput.New()
	m.taskInput.Prompt = "add> "
	m.taskInput.Placeholder = "What needs to be done?"
	m.taskInput.CharLimit = 512
	m.taskInput.Width = 48
	m.taskInput.Focus()

	m.commandInput = textinput.New()
	m.commandInput.Prompt = "/"
	m.commandInput.CharLimit = 256
	m.commandInput.Width = 40

	m.helpModel = help.New()
	m.helpViewport = viewport.New(42, 14)
}

// InputValue is the text typed into the new-task field.
func (m Model) InputValue() string {
	return m.taskInput.Value()
}
