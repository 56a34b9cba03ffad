package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"

	"github.com/lox/blackjack-cli/internal/fileutil"
	"github.com/lox/blackjack-cli/internal/randutil"
	"github.com/lox/blackjack-cli/internal/simulator"
)

type CLI struct {
	Sessions  int    `default:"100" help:"Number of sessions to simulate"`
	Rounds    int    `default:"1000" help:"Maximum rounds per session"`
	Strategy  string `default:"basic" enum:"basic,dealer,stand,random" help:"Bot strategy: basic, dealer, stand, random"`
	Bet       int    `default:"10" help:"Flat bet per round"`
	Decks     int    `default:"3" help:"Decks in the shoe"`
	Balance   int    `default:"1000" help:"Starting balance"`
	Threshold int    `default:"20000" help:"Balance that ends a session as a win"`
	Seed      int64  `default:"0" help:"RNG seed (0 for random)"`
	Workers   int    `default:"0" help:"Sessions played in parallel (0 for one per CPU)"`
	Insurance bool   `help:"Always take insurance when offered"`
	Out       string `help:"Write a JSON summary to this file"`
	Verbose   bool   `short:"v" help:"Verbose logging"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli)

	seed := randutil.Resolve(cli.Seed)

	var logger *log.Logger
	if cli.Verbose {
		logger = log.NewWithOptions(os.Stderr, log.Options{Level: log.DebugLevel})
	} else {
		logger = log.NewWithOptions(os.Stderr, log.Options{Level: log.WarnLevel})
	}

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Starting simulation: %d sessions x %d rounds, %s strategy (seed: %d)\n",
		cli.Sessions, cli.Rounds, cli.Strategy, seed)

	sim := simulator.New(simulator.Config{
		Sessions:        cli.Sessions,
		Rounds:          cli.Rounds,
		Strategy:        cli.Strategy,
		Bet:             cli.Bet,
		Insurance:       cli.Insurance,
		Decks:           cli.Decks,
		StartingBalance: cli.Balance,
		WinThreshold:    cli.Threshold,
		Seed:            seed,
		Workers:         cli.Workers,
		Logger:          logger,
	})

	startTime := time.Now()
	report, err := sim.Run(runCtx)
	ctx.FatalIfErrorf(err)
	duration := time.Since(startTime)

	simulator.PrintSummary(os.Stdout, report)
	fmt.Printf("\nCompleted in %s (%.0f rounds/sec)\n",
		duration.Round(time.Millisecond), float64(report.Stats.Rounds)/duration.Seconds())

	if cli.Out != "" {
		err := fileutil.WriteJSONAtomic(cli.Out, report.Summary())
		ctx.FatalIfErrorf(err)
		fmt.Printf("Summary written to %s\n", cli.Out)
	}
}
