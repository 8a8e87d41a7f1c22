package views

import (
	"fmt"
	"strings"
)

const EmptyListText = "(no tasks)"

type TaskItemData struct {
	Position  int
	ID        string
	Text      string
	Completed bool
	Selected  bool
}

type TaskPanelData struct {
	InputView string
	Filter    string
	Filters   []string
	Items     []TaskItemData
}

type HelpPanelData struct {
	Filter   string
	Bindings []string
	HelpView string
}

func RenderTaskPanel(data TaskPanelData) string {
	var b strings.Builder
	b.WriteString(data.InputView + "\n")
	b.WriteString(RenderFilterBar(data.Filter, data.Filters) + "\n\n")
	if len(data.Items) == 0 {
		b.WriteString("  " + EmptyListText)
		return b.String()
	}
	for _, item := range data.Items {
		b.WriteString(renderTaskLine(item) + "\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func renderTaskLine(item TaskItemData) string {
	cursor := " "
	if item.Selected {
		cursor = cursorStyle.Render(">")
	}
	box := "[ ]"
	text := item.Text
	if item.Completed {
		box = "[x]"
		text = doneStyle.Render(text)
	}
	return fmt.Sprintf("%s %2d. %s %s", cursor, item.Position, box, text)
}

func RenderFilterBar(active string, filters []string) string {
	parts := make([]string, 0, len(filters))
	for _, f := range filters {
		if f == active {
			parts = append(parts, activeTabStyle.Render("["+f+"]"))
			continue
		}
		parts = append(parts, " "+f+" ")
	}
	return "filter: " + strings.Join(parts, " ")
}

// RenderCount formats the active count for the footer.
func RenderCount(active int) string {
	if active == 1 {
		return "1 item left"
	}
	return fmt.Sprintf("%d items left", active)
}

func RenderCommandPalette(active bool, input string) string {
	if !active {
		return ""
	}
	return fmt.Sprintf("command: %s\n(add <text> | toggle <n> | rm <n> | filter <mode> | clear)", input)
}

func RenderNotification(level string, body string) string {
	if strings.TrimSpace(body) == "" {
		return ""
	}
	return fmt.Sprintf("notification: [%s] %s", strings.ToUpper(level), body)
}

func RenderHelpPanel(data HelpPanelData) string {
	return fmt.Sprintf("help (%s):\n%s\n\n%s",
		data.Filter,
		strings.Join(data.Bindings, "\n"),
		data.HelpView,
	)
}

// TaskListMarkdown renders items as a markdown checklist under title.
func TaskListMarkdown(title string, items []TaskItemData, active int) string {
	var b strings.Builder
	b.WriteString("# " + title + "\n\n")
	if len(items) == 0 {
		b.WriteString("_" + EmptyListText + "_\n")
	}
	for _, item := range items {
		box := " "
		if item.Completed {
			box = "x"
		}
		b.WriteString(fmt.Sprintf("%d. [%s] %s\n", item.Position, box, escapeMarkdown(item.Text)))
	}
	b.WriteString("\n" + RenderCount(active) + "\n")
	return b.String()
}

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`, "*", `\*`, "_", `\_`, "`", "\\`", "#", `\#`, "[", `\[`, "]", `\]`, "<", `\<`,
)

func escapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}
