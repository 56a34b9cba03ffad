package simulator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/lox/blackjack-cli/internal/bot"
	"github.com/lox/blackjack-cli/internal/game"
	"github.com/lox/blackjack-cli/internal/randutil"
	"github.com/lox/blackjack-cli/internal/statistics"
)

// ErrLedger is returned when a round's transfers do not add up to the
// player's balance change
var ErrLedger = errors.New("ledger mismatch")

// Config holds configuration for running simulations
type Config struct {
	Sessions        int
	Rounds          int // per session; a session also ends on game over or epic win
	Strategy        string
	Bet             int
	Insurance       bool
	Decks           int
	StartingBalance int
	WinThreshold    int
	Seed            int64
	Workers         int
	Logger          *log.Logger
}

// SessionResult summarises one simulated session
type SessionResult struct {
	Index        int
	Seed         int64
	SessionID    string
	Rounds       int
	FinalBalance int
	State        game.SessionState
	Stats        *statistics.Statistics
}

// Report is the outcome of a whole simulation
type Report struct {
	Config   Config
	Sessions []SessionResult
	Stats    *statistics.Statistics
}

// GameOvers returns how many sessions went broke
func (r *Report) GameOvers() int { return r.countState(game.GameOver) }

// EpicWins returns how many sessions reached the win threshold
func (r *Report) EpicWins() int { return r.countState(game.EpicWin) }

func (r *Report) countState(state game.SessionState) int {
	n := 0
	for _, s := range r.Sessions {
		if s.State == state {
			n++
		}
	}
	return n
}

// Simulator runs blackjack sessions with a bot in place of the player
type Simulator struct {
	config Config
}

// New creates a new simulator with the given configuration
func New(config Config) *Simulator {
	if config.Workers <= 0 {
		config.Workers = runtime.NumCPU()
	}
	if config.Decks <= 0 {
		config.Decks = game.DefaultDecks
	}
	if config.StartingBalance <= 0 {
		config.StartingBalance = game.DefaultStartingBalance
	}
	if config.WinThreshold <= 0 {
		config.WinThreshold = game.DefaultWinThreshold
	}
	if config.Bet <= 0 {
		config.Bet = 10
	}
	if config.Strategy == "" {
		config.Strategy = "basic"
	}
	if config.Logger == nil {
		config.Logger = log.New(io.Discard)
	}
	return &Simulator{config: config}
}

// Run plays every session and merges the results. Sessions run in
// parallel, but each is seeded from Config.Seed and its index, so a report
// does not depend on the worker count.
func (s *Simulator) Run(ctx context.Context) (*Report, error) {
	if s.config.Sessions <= 0 || s.config.Rounds <= 0 {
		return nil, fmt.Errorf("need at least one session and one round, got %d x %d",
			s.config.Sessions, s.config.Rounds)
	}
	if _, err := bot.New(s.config.Strategy, randutil.New(0)); err != nil {
		return nil, err
	}

	results := make([]SessionResult, s.config.Sessions)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.config.Workers)
	for i := range s.config.Sessions {
		g.Go(func() error {
			res, err := s.playSession(ctx, i)
			if err != nil {
				return fmt.Errorf("session %d: %w", i, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := &statistics.Statistics{}
	for _, r := range results {
		total.Merge(r.Stats)
	}
	if err := total.Validate(); err != nil {
		return nil, fmt.Errorf("statistics validation failed: %w", err)
	}

	s.config.Logger.Info("Simulation complete",
		"sessions", s.config.Sessions,
		"rounds", total.Rounds,
		"net", total.AllNet,
		"return", total.Return())

	return &Report{Config: s.config, Sessions: results, Stats: total}, nil
}

func (s *Simulator) playSession(ctx context.Context, index int) (SessionResult, error) {
	seed := randutil.Derive(s.config.Seed, index)
	logger := s.config.Logger.With("session", index)

	strategy, err := bot.New(s.config.Strategy, randutil.New(randutil.Derive(seed, 1)))
	if err != nil {
		return SessionResult{}, err
	}
	player := bot.NewBot(strategy,
		bot.WithBet(s.config.Bet),
		bot.WithInsurance(s.config.Insurance),
		bot.WithLogger(logger))

	g := game.NewGame(player,
		game.WithRNG(randutil.New(seed)),
		game.WithDecks(s.config.Decks),
		game.WithStartingBalance(s.config.StartingBalance),
		game.WithWinThreshold(s.config.WinThreshold),
		game.WithLogger(logger))

	stats := &statistics.Statistics{}
	var ledgerErr error
	g.EventBus().Subscribe(game.EventSubscriberFunc(func(e game.GameEvent) {
		end, ok := e.(game.RoundEndEvent)
		if !ok {
			return
		}
		r := end.Result
		if r.Net() != r.Settled() && ledgerErr == nil {
			ledgerErr = fmt.Errorf("%w in round %d: balance moved %d, transfers %d",
				ErrLedger, r.Round, r.Net(), r.Settled())
		}
		stats.Add(r)
	}))

	g.StartSession()
	played := 0
	for played < s.config.Rounds && g.State() == game.Playing {
		if _, err := g.PlayRound(ctx); err != nil {
			return SessionResult{}, err
		}
		if ledgerErr != nil {
			return SessionResult{}, ledgerErr
		}
		played++
	}

	logger.Debug("Session finished", "rounds", played, "balance", g.Player().Balance(), "state", g.State())
	return SessionResult{
		Index:        index,
		Seed:         seed,
		SessionID:    g.SessionID(),
		Rounds:       played,
		FinalBalance: g.Player().Balance(),
		State:        g.State(),
		Stats:        stats,
	}, nil
}
