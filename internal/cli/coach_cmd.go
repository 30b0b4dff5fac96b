package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/restwell/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newCoachCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "coach",
		Short: "Ask the sleep coach",
	}
	cmd.AddCommand(
		newCoachAskCmd(app),
		newCoachQuestionsCmd(app),
	)
	return cmd
}

func newCoachAskCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "ask QUESTION",
		Short: "Ask one question and print the reply",
		Long: `Ask the coach a single question. A bare number picks the matching
entry from "restwell coach questions".`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			question := resolveQuickQuestion(app.Coach.QuickQuestions(), strings.Join(args, " "))

			stop := func() {}
			if app.Coach.TypingDelay() > 0 {
				stop = formatter.StartSpinner(cmd.ErrOrStderr(), "Coach is typing...")
			}
			reply, err := app.Coach.Ask(cmd.Context(), question)
			stop()
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatCoachReply(reply))
			return nil
		},
	}
}

func newCoachQuestionsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "questions",
		Short: "List the quick questions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, formatter.Header("Quick questions"))
			fmt.Fprint(out, formatter.FormatQuickQuestions(app.Coach.QuickQuestions()))
			return nil
		},
	}
}

// resolveQuickQuestion maps "1".."N" to the numbered quick question and
// returns any other input unchanged.
func resolveQuickQuestion(qs []string, input string) string {
	n, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil || n < 1 || n > len(qs) {
		return input
	}
	return qs[n-1]
}
