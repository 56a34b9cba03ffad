package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"

	"github.com/lox/blackjack-cli/internal/config"
	"github.com/lox/blackjack-cli/internal/display"
	"github.com/lox/blackjack-cli/internal/game"
	"github.com/lox/blackjack-cli/internal/history"
	"github.com/lox/blackjack-cli/internal/randutil"
	"github.com/lox/blackjack-cli/internal/tui"
)

// Run loads the config, applies flag overrides and plays until the player
// leaves
func (cli *CLI) Run() error {
	cfg, err := config.LoadConfig(cli.Config)
	if err != nil {
		return err
	}
	cli.apply(cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logger, closeLog, err := openLog(cfg.Log)
	if err != nil {
		return err
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	seed := randutil.Resolve(cfg.Game.Seed)
	logger.Info("Starting blackjack",
		"version", version,
		"seed", seed,
		"decks", cfg.Game.Decks,
		"balance", cfg.Game.StartingBalance,
		"ui", cfg.UI.Mode)

	format, err := display.ParseFormat(cfg.UI.Cards)
	if err != nil {
		return err
	}
	color := cfg.ColorEnabled() && !cli.NoColor && !termenv.EnvNoColor()
	styles := display.NewStyles(os.Stdout, color)

	recorder := history.NewRecorder(logger)
	opts := []game.Option{
		game.WithRNG(randutil.New(seed)),
		game.WithDecks(cfg.Game.Decks),
		game.WithStartingBalance(cfg.Game.StartingBalance),
		game.WithWinThreshold(cfg.Game.WinThreshold),
		game.WithLogger(logger),
	}
	newGame := func(ui game.UI) *game.Game {
		g := game.NewGame(ui, opts...)
		g.EventBus().Subscribe(recorder)
		g.EventBus().Subscribe(game.NewEventLogger(logger))
		return g
	}

	if cfg.UI.Mode == "tui" {
		err = playTUI(ctx, logger, display.NewRenderer(format, styles), newGame)
	} else {
		err = playText(ctx, logger, format, styles, newGame)
	}

	if cli.History != "" {
		if saveErr := recorder.Save(cli.History); saveErr != nil {
			logger.Error("Failed to save history", "path", cli.History, "error", saveErr)
			err = errors.Join(err, saveErr)
		} else {
			logger.Info("Saved history", "path", cli.History, "rounds", recorder.Rounds())
		}
	}
	return err
}

// apply overrides config values with the flags that were given
func (cli *CLI) apply(cfg *config.Config) {
	if cli.Decks != 0 {
		cfg.Game.Decks = cli.Decks
	}
	if cli.Balance != 0 {
		cfg.Game.StartingBalance = cli.Balance
	}
	if cli.Seed != 0 {
		cfg.Game.Seed = cli.Seed
	}
	if cli.UI != "" {
		cfg.UI.Mode = cli.UI
	}
	if cli.Cards != "" {
		cfg.UI.Cards = cli.Cards
	}
	if cli.NoColor {
		color := false
		cfg.UI.Color = &color
	}
	if cli.LogLevel != "" {
		cfg.Log.Level = cli.LogLevel
	}
	if cli.LogFile != "" {
		cfg.Log.File = cli.LogFile
	}
}

// openLog sends the log to a file so it never interleaves with the table
func openLog(settings *config.LogSettings) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(settings.Level)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid log level: %w", err)
	}

	f, err := os.OpenFile(settings.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}

	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Prefix:          "MAIN",
		Level:           level,
	})
	closeLog := func() {
		if err := f.Close(); err != nil {
			log.Error("Failed to close log file", "error", err)
		}
	}
	return logger, closeLog, nil
}

func playText(ctx context.Context, logger *log.Logger, format display.Format, styles display.Styles,
	newGame func(game.UI) *game.Game,
) error {
	fmt.Print(titleStyle.Render(" ♠ ♥ Blackjack ♦ ♣ "))
	fmt.Println()

	console := display.NewConsole(os.Stdin, os.Stdout,
		display.WithFormat(format),
		display.WithStyles(styles),
		display.WithLogger(logger))
	g := newGame(console)

	// A read from stdin can't be interrupted, so an interrupt stops waiting
	// for the game instead
	errc := make(chan error, 1)
	go func() { errc <- g.Run(ctx) }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		logger.Info("Interrupted")
		return nil
	}
}

func playTUI(ctx context.Context, logger *log.Logger, render *display.Renderer,
	newGame func(game.UI) *game.Game,
) error {
	model := tui.NewTUIModel(logger, render)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	g := newGame(tui.NewBridge(model, program))

	errc := make(chan error, 1)
	go func() {
		errc <- g.Run(ctx)
		model.SendQuitSignal()
	}()

	_, runErr := program.Run()
	model.Stop()
	if errors.Is(runErr, tea.ErrProgramKilled) {
		runErr = nil
	}

	gameErr := <-errc
	if errors.Is(gameErr, context.Canceled) {
		gameErr = nil
	}
	return errors.Join(runErr, gameErr)
}
