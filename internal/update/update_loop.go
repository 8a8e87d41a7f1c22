package update

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/tudu/internal/model"
	"github.com/sandeepkv93/tudu/internal/views"
)

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		m.clampCursor()

		if typed.String() == "ctrl+c" {
			m.Quitting = true
			return m, tea.Quit
		}

		if m.Palette.Active {
			return m.handlePaletteKey(typed)
		}

		if m.Mode == ModeInput {
			return m.handleInputKey(typed)
		}

		switch typed.String() {
		case m.Keys.Palette:
			m.openPalette()
			return m, textinput.Blink
		case m.Keys.Help:
			m.toggleHelp()
			return m, nil
		case m.Keys.Quit:
			m.Quitting = true
			return m, tea.Quit
		}
		return m.handleListKey(typed), nil
	case tea.WindowSizeMsg:
		m.taskInput.Width = max(typed.Width/2-12, 20)
		return m, nil
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		m.notify("Status", typed.Text, levelFromError(typed.IsError))
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	case AppErrorMsg:
		m.LastError = typed.Err
		if typed.Err != nil {
			m.Status = StatusBar{Text: typed.Err.Error(), IsError: true}
			m.notify("Error", typed.Err.Error(), "error")
		}
		return m, nil
	case AddTaskMsg:
		m.addTask(typed.Text)
		return m, nil
	case ToggleTaskMsg:
		m.toggleTask(typed.ID)
		return m, nil
	case RemoveTaskMsg:
		m.removeTask(typed.ID)
		return m, nil
	case SetFilterMsg:
		m.setFilter(typed.Filter)
		return m, nil
	}

	return m, nil
}

func (m Model) View() string {
	status := ""
	if m.Status.Text != "" {
		if m.Status.IsError {
			status = fmt.Sprintf("status: error: %s", m.Status.Text)
		} else {
			status = fmt.Sprintf("status: %s", m.Status.Text)
		}
	}

	rightPane := strings.TrimSpace(m.renderCommandPalette() + m.renderHelpIfVisible())

	return views.RenderApp(views.AppData{
		Header:       fmt.Sprintf("tudu | filter: %s | mode: %s | tasks: %d", m.List.Filter(), m.Mode, m.List.Len()),
		LeftPane:     m.renderTaskView(),
		RightPane:    rightPane,
		StatusLine:   status,
		StatusError:  m.Status.IsError,
		Notification: m.renderNotificationsView(),
		Footer: fmt.Sprintf("%s | keys: enter add | space toggle | x delete | %s filter | %s cmd | %s help | %s quit",
			views.RenderCount(m.List.ActiveCount()), m.Keys.CycleFilter, m.Keys.Palette, m.Keys.Help, m.Keys.Quit),
	})
}

func (m Model) renderTaskView() string {
	filtered := m.List.FilteredView()
	items := make([]views.TaskItemData, 0, len(filtered))
	for i, task := range filtered {
		items = append(items, views.TaskItemData{
			Position:  i + 1,
			ID:        task.ID,
			Text:      task.Text,
			Completed: task.Completed,
			Selected:  m.Mode == ModeList && i == m.Cursor,
		})
	}
	filters := make([]string, 0, len(model.Filters))
	for _, f := range model.Filters {
		filters = append(filters, string(f))
	}
	return views.RenderTaskPanel(views.TaskPanelData{
		InputView: m.taskInput.View(),
		Filter:    string(m.List.Filter()),
		Filters:   filters,
		Items:     items,
	})
}
