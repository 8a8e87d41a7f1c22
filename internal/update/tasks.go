package update

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/tudu/internal/model"
)

func (m Model) handleInputKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.addTask(m.taskInput.Value())
		return m, nil
	case "esc", "down":
		m.enterListMode()
		return m, nil
	case m.Keys.CycleFilter:
		m.setFilter(m.List.Filter().Next())
		return m, nil
	}
	var cmd tea.Cmd
	m.taskInput, cmd = m.taskInput.Update(msg)
	return m, cmd
}

func (m Model) handleListKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "i", "enter":
		m.enterInputMode()
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case "down", "j":
		if m.Cursor < len(m.List.FilteredView())-1 {
			m.Cursor++
		}
	case " ":
		if task, ok := m.taskAtCursor(); ok {
			m.toggleTask(task.ID)
		}
	case "x", "delete", "backspace":
		if task, ok := m.taskAtCursor(); ok {
			m.removeTask(task.ID)
		}
	case "C":
		m.clearCompleted()
	case m.Keys.All:
		m.setFilter(model.FilterAll)
	case m.Keys.Active:
		m.setFilter(model.FilterActive)
	case m.Keys.Completed:
		m.setFilter(model.FilterCompleted)
	case m.Keys.CycleFilter:
		m.setFilter(m.List.Filter().Next())
	}
	return m
}

func (m *Model) enterListMode() {
	m.Mode = ModeList
	m.taskInput.Blur()
	m.clampCursor()
}

func (m *Model) enterInputMode() {
	m.Mode = ModeInput
	m.taskInput.Focus()
}

func (m Model) taskAtCursor() (model.Task, bool) {
	view := m.List.FilteredView()
	if m.Cursor < 0 || m.Cursor >= len(view) {
		return model.Task{}, false
	}
	return view[m.Cursor], true
}

func (m *Model) clampCursor() {
	n := len(m.List.FilteredView())
	if m.Cursor >= n {
		m.Cursor = n - 1
	}
	if m.Cursor < 0 {
		m.Cursor = 0
	}
}

// addTask clears the input only when a task was actually added, so blank
// submissions leave whatever whitespace the user typed.
func (m *Model) addTask(text string) {
	task, added, err := m.List.Add(m.ctx, text)
	if !added {
		return
	}
	m.taskInput.SetValue("")
	if m.reportSaveError(err) {
		return
	}
	m.Status = StatusBar{Text: fmt.Sprintf("added: %s", task.Text)}
}

func (m *Model) toggleTask(id string) {
	task, ok, err := m.List.Toggle(m.ctx, id)
	if !ok {
		return
	}
	m.clampCursor()
	if m.reportSaveError(err) {
		return
	}
	verb := "reopened"
	if task.Completed {
		verb = "completed"
	}
	m.Status = StatusBar{Text: fmt.Sprintf("%s: %s", verb, task.Text)}
}

func (m *Model) removeTask(id string) {
	task, _ := m.List.Get(id)
	ok, err := m.List.Remove(m.ctx, id)
	if !ok {
		return
	}
	m.clampCursor()
	if m.reportSaveError(err) {
		return
	}
	m.Status = StatusBar{Text: fmt.Sprintf("removed: %s", task.Text)}
}

func (m *Model) clearCompleted() {
	n, err := m.List.ClearCompleted(m.ctx)
	if n == 0 {
		return
	}
	m.clampCursor()
	if m.reportSaveError(err) {
		return
	}
	m.Status = StatusBar{Text: fmt.Sprintf("cleared %d completed", n)}
}

func (m *Model) setFilter(f model.Filter) {
	if err := m.List.SetFilter(f); err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return
	}
	m.clampCursor()
	m.Status = StatusBar{Text: fmt.Sprintf("filter: %s", f)}
}

// reportSaveError surfaces a failed write. The in-memory change stays.
func (m *Model) reportSaveError(err error) bool {
	if err == nil {
		return false
	}
	m.LastError = err
	m.logger.Error("save failed", "err", err)
	m.Status = StatusBar{Text: err.Error(), IsError: true}
	m.notify("Save Failed", err.Error(), "error")
	return true
}
