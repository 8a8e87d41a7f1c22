package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/tudu/internal/update"
	"github.com/spf13/cobra"
)

func runTUI(cmd *cobra.Command, flags *globalFlags) error {
	s, err := openSession(cmd.Context(), flags)
	if err != nil {
		return err
	}
	defer s.Close()

	program := tea.NewProgram(update.NewModel(cmd.Context(), s.list, s.logger))
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("tudu failed: %w", err)
	}
	return nil
}
