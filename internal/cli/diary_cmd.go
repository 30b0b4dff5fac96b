package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/restwell/internal/cli/formatter"
	"github.com/alexanderramin/restwell/internal/domain"
	"github.com/spf13/cobra"
)

// defaultDiaryDays is the window used by list and summary.
const defaultDiaryDays = 7

func newDiaryCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diary",
		Short: "Record and review the sleep diary",
	}
	cmd.AddCommand(
		newDiaryLogCmd(app),
		newDiaryListCmd(app),
		newDiaryShowCmd(app),
		newDiaryRemoveCmd(app),
		newDiarySummaryCmd(app),
	)
	return cmd
}

func newDiaryLogCmd(app *App) *cobra.Command {
	e := domain.DefaultDiaryEntry(time.Now())
	var night string
	var quality int

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Log a night of sleep",
		Long: `Log one night. Times are HH:MM; a wake time earlier than bed time
is taken to be the next morning. --night defaults to last night.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			entry := e
			entry.NightOf = time.Time{}
			if night != "" {
				t, err := time.Parse(dateLayout, night)
				if err != nil {
					return fmt.Errorf("invalid --night %q (want YYYY-MM-DD)", night)
				}
				entry.NightOf = t
			}
			entry.Quality = domain.SleepQuality(quality)
			entry.Note = strings.TrimSpace(entry.Note)

			if err := app.Diary.Log(cmd.Context(), &entry); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, formatter.FormatDiaryEntry(&entry))
			fmt.Fprintf(out, "Logged %s\n", formatter.TruncID(entry.ID))
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&night, "night", "", "Date the night began (YYYY-MM-DD)")
	f.Var(newClockFlag(&e.BedTime, e.BedTime), "bed", "Time you went to bed")
	f.Var(newClockFlag(&e.SleepTime, e.SleepTime), "asleep", "Time you fell asleep")
	f.Var(newClockFlag(&e.WakeTime, e.WakeTime), "wake", "Time you woke up")
	f.Var(newClockFlag(&e.OutOfBedTime, e.OutOfBedTime), "out", "Time you got out of bed")
	f.IntVar(&e.NightWakeups, "wakeups", e.NightWakeups, "Number of night wakeups")
	f.IntVar(&e.WakeMinutes, "awake-min", e.WakeMinutes, "Minutes awake during the night")
	f.IntVar(&quality, "quality", int(e.Quality), "Sleep quality 0 (poor) to 4 (excellent)")
	f.StringVar(&e.Note, "note", "", "Free-form note")

	return cmd
}

func newDiaryListCmd(app *App) *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List recent nights",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := app.Diary.ListRecent(cmd.Context(), days)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatDiaryList(entries, time.Now()))
			return nil
		},
	}

	cmd.Flags().IntVar(&days, "days", defaultDiaryDays, "How many days back to list")
	return cmd
}

func newDiaryShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show one diary entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveDiaryID(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			e, err := app.Diary.GetByID(cmd.Context(), id)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatDiaryEntry(e))
			return nil
		},
	}
}

func newDiaryRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "remove ID",
		Aliases: []string{"rm"},
		Short:   "Delete a diary entry",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveDiaryID(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			if err := app.Diary.Delete(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", formatter.TruncID(id))
			return nil
		},
	}
}

func newDiarySummaryCmd(app *App) *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Average sleep efficiency and quality",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.Diary.Summary(cmd.Context(), days)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatDiarySummary(s))
			return nil
		},
	}

	cmd.Flags().IntVar(&days, "days", defaultDiaryDays, "How many days to summarize")
	return cmd
}
