package cli

import (
	"fmt"

	"github.com/alexanderramin/restwell/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newLearnCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "learn",
		Short: "CBT-I learning modules and sleep tips",
	}
	cmd.AddCommand(
		newLearnListCmd(app),
		newLearnShowCmd(app),
		newLearnProgressCmd(app),
		newLearnResetCmd(app),
		newLearnTipsCmd(app),
	)
	return cmd
}

func newLearnListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List modules with progress",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			statuses, err := app.Learning.List(cmd.Context())
			if err != nil {
				return err
			}
			ov, err := app.Learning.Overall(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatModules(statuses, ov))
			return nil
		},
	}
}

func newLearnShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show a module's topics and progress",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveModuleID(args[0])
			if err != nil {
				return err
			}
			st, err := app.Learning.Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatModule(st))
			return nil
		},
	}
}

func newLearnProgressCmd(app *App) *cobra.Command {
	var percent int

	cmd := &cobra.Command{
		Use:   "progress ID",
		Short: "Record progress on a module",
		Long:  `Record how far you are through a module. Progress never goes down; use "learn reset" to start over.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveModuleID(args[0])
			if err != nil {
				return err
			}
			st, err := app.Learning.RecordProgress(cmd.Context(), id, percent)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n",
				formatter.Bold(st.Module.Title),
				formatter.RenderProgress(st.Progress.Percent, 20))
			return nil
		},
	}

	cmd.Flags().IntVar(&percent, "percent", 100, "Progress percentage (0-100)")
	return cmd
}

func newLearnResetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "reset ID",
		Short: "Clear a module's progress",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveModuleID(args[0])
			if err != nil {
				return err
			}
			if err := app.Learning.ResetProgress(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Reset module %d\n", id)
			return nil
		},
	}
}

func newLearnTipsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "tips",
		Short: "Show quick sleep tips",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatTips(app.Learning.Tips()))
			return nil
		},
	}
}
