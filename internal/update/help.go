package update

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/sandeepkv93/tudu/internal/views"
)

type KeyBinding struct {
	Key    string
	Action string
}

type helpKeyMap struct {
	short []key.Binding
	full  [][]key.Binding
}

func (k helpKeyMap) ShortHelp() []key.Binding  { return k.short }
func (k helpKeyMap) FullHelp() [][]key.Binding { return k.full }

func (m *Model) toggleHelp() {
	m.HelpVisible = !m.HelpVisible
	if m.HelpVisible {
		m.helpViewport.SetContent(views.RenderMarkdown(m.helpMarkdown(), m.helpViewport.Width))
		m.helpViewport.GotoTop()
	}
}

func (m Model) renderHelpIfVisible() string {
	if !m.HelpVisible {
		return ""
	}
	return m.renderHelpView()
}

func (m Model) renderHelpView() string {
	bindings := m.helpBindings()
	var plain []string
	for _, kb := range m.modeBindings() {
		plain = append(plain, fmt.Sprintf("- %s: %s", kb.Key, kb.Action))
	}
	return views.RenderHelpPanel(views.HelpPanelData{
		Filter:   string(m.List.Filter()),
		Bindings: plain,
		HelpView: m.helpModel.View(helpKeyMap{
			short: bindings,
			full:  [][]key.Binding{bindings},
		}) + "\n\n" + m.helpViewport.View(),
	})
}

func (m Model) globalBindings() []KeyBinding {
	return []KeyBinding{
		{Key: m.Keys.CycleFilter, Action: "cycle filter"},
		{Key: m.Keys.Palette, Action: "open command palette"},
		{Key: m.Keys.Help, Action: "toggle help panel"},
		{Key: m.Keys.Quit, Action: "quit app"},
	}
}

func (m Model) modeBindings() []KeyBinding {
	if m.Mode == ModeInput {
		return []KeyBinding{
			{Key: "enter", Action: "add task"},
			{Key: "esc", Action: "move to the list"},
		}
	}
	return []KeyBinding{
		{Key: "j/k", Action: "move cursor"},
		{Key: "space", Action: "toggle completed"},
		{Key: "x", Action: "delete task"},
		{Key: "C", Action: "clear completed"},
		{Key: m.Keys.All + "/" + m.Keys.Active + "/" + m.Keys.Completed, Action: "show all/active/completed"},
		{Key: "i", Action: "type a new task"},
	}
}

func (m Model) helpBindings() []key.Binding {
	out := make([]key.Binding, 0, len(m.globalBindings())+len(m.modeBindings()))
	for _, kb := range m.globalBindings() {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	for _, kb := range m.modeBindings() {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	return out
}

func (m Model) helpMarkdown() string {
	var b strings.Builder
	b.WriteString("## Commands\n\n")
	for _, line := range []string{
		"`add <text>` appends a task",
		"`toggle <n|id>` flips completion",
		"`rm <n|id>` deletes a task",
		"`filter all|active|completed`",
		"`clear` removes completed tasks",
	} {
		b.WriteString("- " + line + "\n")
	}
	return b.String()
}
