package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/sandeepkv93/tudu/internal/commands"
	"github.com/sandeepkv93/tudu/internal/model"
	"github.com/sandeepkv93/tudu/internal/views"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// runCommand opens the list, applies one command through the same handlers
// the palette uses and prints the result. filter selects the view that
// numeric references count positions in; empty means all.
func runCommand(cmd *cobra.Command, flags *globalFlags, filter string, c commands.Command) error {
	f := model.FilterAll
	if filter != "" {
		parsed, err := model.ParseFilter(filter)
		if err != nil {
			return err
		}
		f = parsed
	}
	s, err := openSession(cmd.Context(), flags)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.list.SetFilter(f); err != nil {
		return err
	}

	res, err := commands.Execute(c, commands.Bind(cmd.Context(), s.list))
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), res.Message)
	return nil
}

func addCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "add <text>...",
		Short: "Append a task",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCommand(cmd, flags, "", commands.Command{
				Type: commands.TypeAdd,
				Add:  &commands.AddArgs{Text: strings.Join(args, " ")},
			})
		},
	}
}

func toggleCmd(flags *globalFlags) *cobra.Command {
	var filter string
	cmd := &cobra.Command{
		Use:     "toggle <n|id>",
		Aliases: []string{"done"},
		Short:   "Flip a task between active and completed",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCommand(cmd, flags, filter, commands.Command{
				Type:   commands.TypeToggle,
				Toggle: &commands.RefArgs{Ref: args[0]},
			})
		},
	}
	cmd.Flags().StringVarP(&filter, "filter", "f", string(model.FilterAll), "view that <n> counts positions in, as printed by list --filter")
	return cmd
}

func removeCmd(flags *globalFlags) *cobra.Command {
	var filter string
	cmd := &cobra.Command{
		Use:     "rm <n|id>",
		Aliases: []string{"delete"},
		Short:   "Delete a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCommand(cmd, flags, filter, commands.Command{
				Type:   commands.TypeRemove,
				Remove: &commands.RefArgs{Ref: args[0]},
			})
		},
	}
	cmd.Flags().StringVarP(&filter, "filter", "f", string(model.FilterAll), "view that <n> counts positions in, as printed by list --filter")
	return cmd
}

func clearCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete every completed task",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCommand(cmd, flags, "", commands.Command{Type: commands.TypeClear})
		},
	}
}

func listCmd(flags *globalFlags) *cobra.Command {
	var (
		filter   string
		markdown bool
	)
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Print the tasks that match a filter",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := model.ParseFilter(filter)
			if err != nil {
				return err
			}
			s, err := openSession(cmd.Context(), flags)
			if err != nil {
				return err
			}
			defer s.Close()

			if err := s.list.SetFilter(f); err != nil {
				return err
			}
			items := make([]views.TaskItemData, 0)
			for i, t := range s.list.FilteredView() {
				items = append(items, views.TaskItemData{Position: i + 1, ID: t.ID, Text: t.Text, Completed: t.Completed})
			}

			out := cmd.OutOrStdout()
			if markdown {
				md := views.TaskListMarkdown(fmt.Sprintf("Tasks (%s)", f), items, s.list.ActiveCount())
				fmt.Fprintln(out, views.RenderMarkdown(md, 80))
				return nil
			}
			writePlainList(out, items, s.list.ActiveCount())
			if at, ok := s.store.SavedAt(cmd.Context()); ok {
				fmt.Fprintf(out, "saved %s\n", at.Local().Format("2006-01-02 15:04"))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&filter, "filter", "f", string(model.FilterAll), "all, active or completed")
	cmd.Flags().BoolVarP(&markdown, "markdown", "m", false, "Render as markdown")
	return cmd
}

func writePlainList(w io.Writer, items []views.TaskItemData, active int) {
	if len(items) == 0 {
		fmt.Fprintln(w, views.EmptyListText)
	}
	for _, item := range items {
		box := "[ ]"
		if item.Completed {
			box = "[x]"
		}
		fmt.Fprintf(w, "%2d. %s %s  (%s)\n", item.Position, box, item.Text, shortID(item.ID))
	}
	fmt.Fprintln(w, views.RenderCount(active))
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func exportCmd(flags *globalFlags) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the full list as JSON or YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd.Context(), flags)
			if err != nil {
				return err
			}
			defer s.Close()
			return writeExport(cmd.OutOrStdout(), s.list.Tasks(), format)
		},
	}
	cmd.Flags().StringVar(&format, "format", "json", "json or yaml")
	return cmd
}

func writeExport(w io.Writer, tasks []model.Task, format string) error {
	if tasks == nil {
		tasks = []model.Task{}
	}
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(tasks)
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(tasks); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported export format %q", format)
	}
}
