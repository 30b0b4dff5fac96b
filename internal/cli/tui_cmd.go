package cli

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newTUICmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive app",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(app)
		},
	}
}

// runTUI runs the full-screen app until the user quits. Views that own
// engines are closed by the model before the program exits.
func runTUI(app *App) error {
	p := tea.NewProgram(newAppModel(app), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
