// Package bot plays blackjack without a human. A Bot drives a Strategy
// through the game.UI interface, so the engine cannot tell it from a person.
package bot

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/lox/blackjack-cli/internal/deck"
	"github.com/lox/blackjack-cli/internal/game"
)

// Strategy picks an action for one hand
type Strategy interface {
	Name() string
	Decide(hand game.HandView, dealerUp deck.Card, legal []game.Action) game.Action
}

// Bot adapts a Strategy to game.UI with a flat bet and a fixed insurance
// policy. It never asks to restart.
type Bot struct {
	strategy Strategy
	bet      int
	insure   bool
	logger   *log.Logger

	view game.TableView
}

// Option configures a Bot
type Option func(*Bot)

// WithBet sets the flat bet. Bets are capped at the balance.
func WithBet(bet int) Option {
	return func(b *Bot) { b.bet = bet }
}

// WithInsurance makes the bot accept every insurance offer
func WithInsurance(insure bool) Option {
	return func(b *Bot) { b.insure = insure }
}

// WithLogger sets the logger for decisions
func WithLogger(logger *log.Logger) Option {
	return func(b *Bot) { b.logger = logger }
}

// NewBot creates a bot playing strategy
func NewBot(strategy Strategy, opts ...Option) *Bot {
	b := &Bot{strategy: strategy, bet: 10, logger: log.Default()}
	for _, opt := range opts {
		opt(b)
	}
	b.logger = b.logger.WithPrefix("bot")
	return b
}

// Strategy returns the strategy the bot plays
func (b *Bot) Strategy() Strategy { return b.strategy }

func (b *Bot) PromptBet(max int) (int, error) {
	return min(b.bet, max), nil
}

func (b *Bot) PromptInsurance() (bool, error) {
	return b.insure, nil
}

func (b *Bot) PromptAction(hand int, legal []game.Action) (game.Action, error) {
	if hand < 0 || hand >= len(b.view.Hands) || len(b.view.Dealer.Cards) == 0 {
		return 0, fmt.Errorf("bot has no view of hand %d", hand)
	}

	hv := b.view.Hands[hand]
	up := b.view.Dealer.Cards[0]
	action := b.strategy.Decide(hv, up, legal)
	if !slices.Contains(legal, action) {
		action = game.Stand
	}

	b.logger.Debug("Bot decision",
		"strategy", b.strategy.Name(),
		"hand", hand,
		"cards", hv.Cards,
		"score", hv.Score,
		"dealerUp", up,
		"action", action)
	return action, nil
}

func (b *Bot) PromptRestart() (bool, error) { return false, nil }

func (b *Bot) ShowRound(round, balance int) {}

func (b *Bot) ShowHiddenDealerHand(view game.TableView) { b.view = view }

func (b *Bot) ShowAllHands(view game.TableView) { b.view = view }

func (b *Bot) ShowScores(view game.TableView, hand int) { b.view = view }

func (b *Bot) Announce(a game.Announcement) {}

// Names lists the strategies New understands
var Names = []string{"basic", "dealer", "stand", "random"}

// New returns the strategy registered under name. rng is only used by the
// random strategy.
func New(name string, rng *rand.Rand) (Strategy, error) {
	switch strings.ToLower(name) {
	case "basic":
		return BasicStrategy{}, nil
	case "dealer":
		return DealerMimic{}, nil
	case "stand":
		return AlwaysStand{}, nil
	case "random":
		if rng == nil {
			return nil, fmt.Errorf("random strategy needs an rng")
		}
		return NewRandom(rng), nil
	default:
		return nil, fmt.Errorf("unknown strategy %q (want one of %s)", name, strings.Join(Names, ", "))
	}
}
