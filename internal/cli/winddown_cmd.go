package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/alexanderramin/restwell/internal/cli/formatter"
	"github.com/alexanderramin/restwell/internal/domain"
	"github.com/alexanderramin/restwell/internal/winddown"
	"github.com/spf13/cobra"
)

// completionPoll bounds how long a run waits when a completion event was
// dropped by a full subscriber channel.
const completionPoll = 200 * time.Millisecond

func newWindDownCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "winddown",
		Aliases: []string{"wd"},
		Short:   "Guided wind-down activities",
	}
	cmd.AddCommand(
		newWindDownActivitiesCmd(),
		newWindDownRunCmd(app),
	)
	return cmd
}

func newWindDownActivitiesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "activities",
		Short: "List the wind-down activities",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatActivities(domain.Activities()))
			return nil
		},
	}
}

func newWindDownRunCmd(app *App) *cobra.Command {
	var activities activityList
	var tick time.Duration

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run activities in the terminal without the full-screen app",
		Long: `Run one or more wind-down activities back to back, printing a
progress line on every tick. Without --activity all three run in order.
Ctrl+C stops the session.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			keys := []domain.ActivityKey(activities)
			if len(keys) == 0 {
				keys = domain.ActivityKeys()
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			engine := app.NewEngine(winddown.WithInterval(tick))
			defer engine.Close()

			out := cmd.OutOrStdout()
			err := runWindDown(ctx, out, engine, keys)
			if errors.Is(err, context.Canceled) {
				fmt.Fprintln(out, formatter.Dim("Stopped."))
				return nil
			}
			return err
		},
	}

	cmd.Flags().Var(&activities, "activity", "Activity to run (repeatable): breathing, journaling, meditation")
	cmd.Flags().DurationVar(&tick, "tick", 0, "Wall time per session second (default from RESTWELL_TICK_INTERVAL)")

	return cmd
}

// runWindDown plays each activity to completion in order. It returns
// ctx.Err() when ctx ends first.
func runWindDown(ctx context.Context, out io.Writer, engine *winddown.Engine, keys []domain.ActivityKey) error {
	return playActivities(ctx, out, engine, engine.Subscribe(64), keys)
}

func playActivities(ctx context.Context, out io.Writer, engine *winddown.Engine, events <-chan winddown.Event, keys []domain.ActivityKey) error {
	for _, key := range keys {
		// A completion seen by the poll can leave its event buffered.
		drainEvents(events)
		if err := engine.SwitchActivity(key); err != nil {
			return err
		}
		if err := engine.ToggleRun(); err != nil {
			return err
		}
		fmt.Fprintln(out, formatter.FormatProgressLine(engine.Snapshot()))
		if err := awaitCompletion(ctx, out, engine, events, key); err != nil {
			return err
		}
	}
	return nil
}

// drainEvents discards events already buffered on ch.
func drainEvents(ch <-chan winddown.Event) {
	for {
		select {
		case _, ok := <-ch:
			if !ok {
				return
			}
		default:
			return
		}
	}
}

func awaitCompletion(ctx context.Context, out io.Writer, engine *winddown.Engine, events <-chan winddown.Event, key domain.ActivityKey) error {
	poll := time.NewTicker(completionPoll)
	defer poll.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return winddown.ErrEngineClosed
			}
			switch ev.Type {
			case winddown.EventTick, winddown.EventPhase:
				fmt.Fprintln(out, formatter.FormatProgressLine(ev.Snapshot))
			case winddown.EventCompleted:
				if ev.Activity == key {
					fmt.Fprintln(out, formatter.FormatCompletion(ev.Snapshot))
					return nil
				}
			}
		case <-poll.C:
			snap := engine.Snapshot()
			if snap.Activity.Key == key && snap.Status == domain.RunCompleted {
				fmt.Fprintln(out, formatter.FormatCompletion(snap))
				return nil
			}
		}
	}
}
