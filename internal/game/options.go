package game

import (
	"io"
	rand "math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/blackjack-cli/internal/deck"
)

const (
	// DefaultDecks is the shoe size used by the house
	DefaultDecks = 3
	// DefaultStartingBalance is the credit a new session starts with
	DefaultStartingBalance = 1000
	// DefaultWinThreshold ends a session as an epic win
	DefaultWinThreshold = 20000
)

// Option configures a Game during creation
type Option func(*gameConfig)

type gameConfig struct {
	shoe            *deck.Shoe
	decks           int
	rng             *rand.Rand
	logger          *log.Logger
	clock           quartz.Clock
	bus             EventBus
	startingBalance int
	winThreshold    int
	sessionID       string
}

func defaultConfig() *gameConfig {
	return &gameConfig{
		decks:           DefaultDecks,
		startingBalance: DefaultStartingBalance,
		winThreshold:    DefaultWinThreshold,
	}
}

// WithShoe uses a prepared shoe; it overrides WithDecks and WithRNG
func WithShoe(shoe *deck.Shoe) Option {
	return func(c *gameConfig) {
		c.shoe = shoe
	}
}

// WithDecks sets the number of decks in the shoe. Default is 3.
func WithDecks(n int) Option {
	return func(c *gameConfig) {
		c.decks = n
	}
}

// WithRNG sets the random source used to shuffle the shoe
func WithRNG(rng *rand.Rand) Option {
	return func(c *gameConfig) {
		c.rng = rng
	}
}

// WithLogger sets the logger. Default discards everything.
func WithLogger(logger *log.Logger) Option {
	return func(c *gameConfig) {
		c.logger = logger
	}
}

// WithClock sets the clock used for event timestamps and round durations
func WithClock(clock quartz.Clock) Option {
	return func(c *gameConfig) {
		c.clock = clock
	}
}

// WithEventBus publishes on an existing bus instead of a fresh one
func WithEventBus(bus EventBus) Option {
	return func(c *gameConfig) {
		c.bus = bus
	}
}

// WithStartingBalance sets the credits each session starts with. Default is 1000.
func WithStartingBalance(balance int) Option {
	return func(c *gameConfig) {
		c.startingBalance = balance
	}
}

// WithWinThreshold sets the balance that ends a session as an epic win.
// Default is 20000.
func WithWinThreshold(threshold int) Option {
	return func(c *gameConfig) {
		c.winThreshold = threshold
	}
}

// WithSessionID fixes the session ID instead of generating one
func WithSessionID(id string) Option {
	return func(c *gameConfig) {
		c.sessionID = id
	}
}

func (c *gameConfig) complete() {
	if c.logger == nil {
		c.logger = log.New(io.Discard)
	}
	if c.clock == nil {
		c.clock = quartz.NewReal()
	}
	if c.bus == nil {
		c.bus = NewEventBus()
	}
}

