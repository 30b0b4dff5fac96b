package cli

import (
	"github.com/alexanderramin/restwell/internal/service"
	"github.com/alexanderramin/restwell/internal/winddown"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Diary    service.DiaryService
	Learning service.LearningService
	Coach    service.CoachService

	// NewEngine builds a fresh wind-down engine. Each TUI mount and each
	// headless run owns its engine and closes it when done.
	NewEngine func(opts ...winddown.Option) *winddown.Engine

	// IsInteractive reports whether stdin is a terminal. When nil the root
	// command prints help instead of starting the TUI.
	IsInteractive func() bool
}

// NewRootCmd creates the top-level "restwell" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "restwell",
		Short: "Wind-down sessions, sleep diary and CBT-I coaching",
		Long: `restwell helps you wind down before bed and track how you sleep.

Run without arguments in a terminal to open the interactive app.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.IsInteractive != nil && app.IsInteractive() {
				return runTUI(app)
			}
			return cmd.Help()
		},
	}

	root.AddCommand(
		newTUICmd(app),
		newWindDownCmd(app),
		newCoachCmd(app),
		newDiaryCmd(app),
		newLearnCmd(app),
	)

	return root
}
