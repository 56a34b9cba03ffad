package game

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/blackjack-cli/internal/deck"
	"github.com/lox/blackjack-cli/internal/gameid"
	"github.com/lox/blackjack-cli/internal/randutil"
)

// Game is the round controller. It owns the player, the dealer and the shoe
// for a whole session and is not safe for concurrent use.
type Game struct {
	player *Player
	dealer *Dealer
	shoe   *deck.Shoe
	ui     UI

	logger *log.Logger
	clock  quartz.Clock
	bus    EventBus

	sessionID       string
	startingBalance int
	winThreshold    int

	round int
	phase Phase
	state SessionState

	// per-round
	settled bool
	result  *RoundResult
}

// NewGame creates a round controller that talks to ui
func NewGame(ui UI, opts ...Option) *Game {
	if ui == nil {
		panic("ui is required for game creation")
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	cfg.complete()

	shoe := cfg.shoe
	if shoe == nil {
		rng := cfg.rng
		if rng == nil {
			rng = randutil.New(randutil.Resolve(0))
		}
		shoe = deck.NewShoe(cfg.decks, rng)
	}

	sessionID := cfg.sessionID
	if sessionID == "" {
		sessionID = gameid.NewGenerator(cfg.clock, nil).Generate()
	}

	g := &Game{
		player:          NewPlayer(cfg.startingBalance),
		dealer:          NewDealer(),
		shoe:            shoe,
		ui:              ui,
		logger:          cfg.logger.WithPrefix("game"),
		clock:           cfg.clock,
		bus:             cfg.bus,
		sessionID:       sessionID,
		startingBalance: cfg.startingBalance,
		winThreshold:    cfg.winThreshold,
		round:           1,
	}
	return g
}

// Player returns the player
func (g *Game) Player() *Player { return g.player }

// Dealer returns the dealer
func (g *Game) Dealer() *Dealer { return g.dealer }

// Shoe returns the card supply
func (g *Game) Shoe() *deck.Shoe { return g.shoe }

// Round returns the number of the round about to be (or being) played
func (g *Game) Round() int { return g.round }

// Phase returns the current step of the round
func (g *Game) Phase() Phase { return g.phase }

// State returns whether the session can continue
func (g *Game) State() SessionState { return g.state }

// SessionID returns the current session's ID
func (g *Game) SessionID() string { return g.sessionID }

// EventBus returns the bus events are published on
func (g *Game) EventBus() EventBus { return g.bus }

// StartSession resets the balance and round counter. The shoe carries over.
func (g *Game) StartSession() {
	g.player.SetBalance(g.startingBalance)
	g.player.ClearHands()
	g.dealer.ClearHands()
	g.round = 1
	g.state = Playing
	g.phase = Betting
	g.logger.Info("Session started", "session", g.sessionID, "balance", g.startingBalance, "decks", g.shoe.Decks())
}

// Run plays sessions until the user declines a restart, quits, or ctx is
// cancelled. Leaving via ErrQuit is not an error.
func (g *Game) Run(ctx context.Context) error {
	for {
		g.StartSession()

		err := g.playSession(ctx)
		g.publish(SessionEndEvent{
			SessionID: g.sessionID,
			State:     g.state,
			Rounds:    g.round,
			Balance:   g.player.Balance(),
		})
		if errors.Is(err, ErrQuit) {
			g.logger.Info("Player quit", "round", g.round, "balance", g.player.Balance())
			return nil
		}
		if err != nil {
			return err
		}

		again, err := g.ui.PromptRestart()
		if errors.Is(err, ErrQuit) || (err == nil && !again) {
			g.logger.Info("Player left the table", "balance", g.player.Balance())
			return nil
		}
		if err != nil {
			return fmt.Errorf("prompt restart: %w", err)
		}

		g.sessionID = gameid.NewGenerator(g.clock, nil).Generate()
	}
}

func (g *Game) playSession(ctx context.Context) error {
	for {
		res, err := g.PlayRound(ctx)
		if err != nil {
			return err
		}

		switch res.State {
		case GameOver:
			g.ui.Announce(AnnounceGameOver)
			return nil
		case EpicWin:
			g.ui.Announce(AnnounceEpicWin)
			return nil
		}
	}
}

// PlayRound plays one full round: bet, deal, insurance, actions, dealer
// play, settlement and teardown. On error the table is cleared and no
// RoundResult is produced.
func (g *Game) PlayRound(ctx context.Context) (*RoundResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if g.state != Playing {
		return nil, fmt.Errorf("session is over (%s)", g.state)
	}

	start := g.clock.Now()
	g.settled = false
	g.phase = Betting
	g.result = &RoundResult{
		SessionID:    g.sessionID,
		Round:        g.round,
		StartBalance: g.player.Balance(),
	}

	g.publish(RoundStartEvent{SessionID: g.sessionID, Round: g.round, Balance: g.player.Balance()})
	g.ui.ShowRound(g.round, g.player.Balance())

	if err := g.playRound(ctx); err != nil {
		g.player.ClearHands()
		g.dealer.ClearHands()
		g.phase = Betting
		return nil, err
	}

	return g.teardown(start), nil
}

func (g *Game) playRound(ctx context.Context) error {
	balance := g.player.Balance()
	bet, err := g.ui.PromptBet(balance)
	if err != nil {
		return fmt.Errorf("prompt bet: %w", err)
	}
	if bet <= 0 || bet > balance {
		return fmt.Errorf("%w: %d with balance %d", ErrInvalidBet, bet, balance)
	}
	g.player.PlaceBet(bet)
	g.player.PlaceSideBet(0)
	g.result.InitialBet = bet

	first, second := g.deal(false), g.deal(false)
	playerHand := NewHand(first, second)
	g.player.AddHand(playerHand)

	first, second = g.deal(true), g.deal(true)
	dealerHand := NewHand(first, second)
	g.dealer.AddHand(dealerHand)

	g.phase = Dealt
	g.logger.Debug("Dealt", "round", g.round, "bet", bet, "player", playerHand, "dealerUp", dealerHand.FirstCard())
	g.ui.ShowHiddenDealerHand(g.view(true))

	if up := dealerHand.FirstCard(); up.IsAce() || up.IsTenValue() {
		over, err := g.offerInsurance(playerHand, dealerHand)
		if err != nil {
			return err
		}
		if over {
			return nil
		}
	}

	return g.actionLoop(ctx)
}

// offerInsurance runs the side bet. It reports true when the dealer had
// blackjack and the round is already settled.
func (g *Game) offerInsurance(playerHand, dealerHand *Hand) (bool, error) {
	g.phase = InsuranceOffer
	g.ui.Announce(AnnounceInsuranceOffer)

	accept, err := g.ui.PromptInsurance()
	if err != nil {
		return false, fmt.Errorf("prompt insurance: %w", err)
	}
	if !accept {
		g.result.Insurance = InsuranceDeclined
		g.publish(InsuranceEvent{Round: g.round, Outcome: InsuranceDeclined})
		return false, nil
	}

	sideBet := halfEven(float64(g.player.Bet()) * 0.5)
	g.player.PlaceSideBet(sideBet)
	g.result.SideBet = sideBet

	if g.dealer.HasBlackjack(dealerHand) {
		playerHand.Stand()
		g.settleIfDone()

		g.ui.Announce(AnnounceInsuranceWin)
		g.transferInsurance(InsuranceWon, 2*sideBet)
		return true, nil
	}

	g.ui.Announce(AnnounceInsuranceLose)
	g.transferInsurance(InsuranceLost, -sideBet)
	return false, nil
}

func (g *Game) transferInsurance(outcome InsuranceOutcome, delta int) {
	g.player.AddToBalance(delta)
	g.result.Insurance = outcome
	g.result.InsuranceDelta = delta
	g.logger.Info("Insurance resolved", "round", g.round, "sideBet", g.player.SideBet(), "outcome", outcome, "delta", delta)
	g.publish(InsuranceEvent{Round: g.round, SideBet: g.player.SideBet(), Outcome: outcome, Delta: delta})
}

// actionLoop makes passes over the player's hands until all of them stand.
// A split changes the hand list, so the pass restarts right after one.
func (g *Game) actionLoop(ctx context.Context) error {
	g.phase = ActionLoop
	for {
		hands := g.player.Hands()
		for i, h := range hands {
			if h.IsStanding() {
				continue
			}
			if h.Resolve() == Blackjack {
				g.logger.Debug("Hand has 21, standing", "round", g.round, "hand", i)
				h.Stand()
				g.settleIfDone()
				continue
			}

			g.ui.ShowScores(g.view(true), i)
			legal := LegalActions(h)
			action, err := g.ui.PromptAction(i, legal)
			if err != nil {
				return fmt.Errorf("prompt action: %w", err)
			}
			if !slices.Contains(legal, action) {
				return fmt.Errorf("%w: %s on hand %d", ErrIllegalAction, action, i)
			}

			g.apply(i, h, action)
			if action == Split {
				break
			}
		}

		if g.player.AllHandsStanding() {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		g.ui.ShowHiddenDealerHand(g.view(true))
	}
}

func (g *Game) apply(index int, h *Hand, action Action) {
	g.result.Actions = append(g.result.Actions, ActionRecord{Hand: index, Action: action})

	switch action {
	case Hit:
		h.AddCard(g.deal(false))
		g.bustCheck(h)
	case Stand:
		h.Stand()
		g.settleIfDone()
	case DoubleDown:
		// one bet for the whole round, doubled even when several hands are live
		g.player.PlaceBet(g.player.Bet() * 2)
		h.AddCard(g.deal(false))
		g.bustCheck(h)
		if !h.IsStanding() {
			h.Stand()
			g.settleIfDone()
		}
	case Split:
		g.split(h)
	}

	g.logger.Debug("Action", "round", g.round, "hand", index, "action", action, "cards", h)
	g.publish(PlayerActionEvent{Round: g.round, Hand: index, Action: action, Bet: g.player.Bet()})
}

func (g *Game) bustCheck(h *Hand) {
	if !h.IsBust() {
		return
	}
	g.ui.Announce(AnnounceBust)
	h.Stand()
	g.settleIfDone()
}

// split replaces h with two hands, each keeping one card and drawing one.
// There is no limit on how often a hand may be split again.
func (g *Game) split(h *Hand) {
	cards := h.Cards()
	left := NewHand(cards[0], g.deal(false))
	right := NewHand(cards[1], g.deal(false))
	g.player.AddHand(left)
	g.player.AddHand(right)
	g.player.RemoveHand(h)
}

// deal takes the next card from the shoe
func (g *Game) deal(toDealer bool) deck.Card {
	c := g.shoe.Deal()
	g.publish(CardDealtEvent{Round: g.round, ToDealer: toDealer, Card: c, Remaining: g.shoe.Remaining()})
	return c
}

func (g *Game) teardown(start time.Time) *RoundResult {
	g.phase = Teardown
	res := g.result

	if dh := g.dealer.Hand(); dh != nil {
		res.DealerCards = dh.Cards()
		res.DealerScore = dh.FinalScore()
		res.DealerBlackjack = g.dealer.HasBlackjack(dh)
	}
	res.Bet = g.player.Bet()

	g.player.ClearHands()
	g.dealer.ClearHands()

	balance := g.player.Balance()
	switch {
	case balance <= 0:
		g.state = GameOver
	case balance >= g.winThreshold:
		g.state = EpicWin
	default:
		g.round++
	}

	res.EndBalance = balance
	res.State = g.state
	res.Duration = g.clock.Since(start)

	g.logger.Info("Round complete",
		"round", res.Round,
		"bet", res.Bet,
		"net", res.Net(),
		"balance", balance,
		"state", g.state)
	g.publish(RoundEndEvent{Result: res})

	g.phase = Betting
	g.result = nil
	return res
}

func (g *Game) view(hidden bool) TableView {
	v := TableView{
		Round:        g.round,
		Balance:      g.player.Balance(),
		Bet:          g.player.Bet(),
		SideBet:      g.player.SideBet(),
		DealerHidden: hidden,
	}
	if hidden {
		v.Dealer = newHandView(g.dealer.FirstCardOnly())
	} else {
		v.Dealer = newHandView(g.dealer.Hand())
	}
	for _, h := range g.player.hands {
		v.Hands = append(v.Hands, newHandView(h))
	}
	return v
}
