package main

import (
	"fmt"
	"os"

	"github.com/alexanderramin/restwell/internal/cli"
	"github.com/alexanderramin/restwell/internal/coach"
	"github.com/alexanderramin/restwell/internal/config"
	"github.com/alexanderramin/restwell/internal/db"
	"github.com/alexanderramin/restwell/internal/repository"
	"github.com/alexanderramin/restwell/internal/service"
	"github.com/alexanderramin/restwell/internal/winddown"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger, logCloser, err := cfg.NewLogger()
	if err != nil {
		return err
	}
	defer logCloser.Close()

	// Open database
	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	script, err := coach.LoadScript(cfg.CoachScript)
	if err != nil {
		return fmt.Errorf("loading coach script: %w", err)
	}

	// Wire repositories
	diaryRepo := repository.NewSQLiteDiaryRepo(database)
	progressRepo := repository.NewSQLiteLearningProgressRepo(database)

	// Wire unit of work for transactional operations
	uow := db.NewSQLiteUnitOfWork(database)

	observer := service.NewLogUseCaseObserver(logger)
	engineLogger := logger.With("component", "winddown")

	app := &cli.App{
		Diary:    service.NewDiaryService(diaryRepo, observer),
		Learning: service.NewLearningService(progressRepo, uow, observer),
		Coach:    service.NewCoachService(coach.New(script), cfg.CoachDelay, observer),
		NewEngine: func(opts ...winddown.Option) *winddown.Engine {
			base := []winddown.Option{
				winddown.WithInterval(cfg.TickInterval),
				winddown.WithLogger(engineLogger),
			}
			return winddown.NewEngine(winddown.SystemClock{}, append(base, opts...)...)
		},
	}

	// Launch the TUI only on an interactive terminal.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
