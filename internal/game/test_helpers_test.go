package game

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/blackjack-cli/internal/deck"
	"github.com/lox/blackjack-cli/internal/randutil"
)

// scriptedUI answers prompts from fixed scripts and records what it was shown.
// An exhausted script answers ErrQuit.
type scriptedUI struct {
	bets      []int
	insurance []bool
	actions   []Action
	restarts  []bool

	announcements []Announcement
	offered       [][]Action
	insuranceAsks int
	rounds        []int
	lastView      TableView
}

func (s *scriptedUI) PromptBet(max int) (int, error) {
	if len(s.bets) == 0 {
		return 0, ErrQuit
	}
	bet := s.bets[0]
	s.bets = s.bets[1:]
	return bet, nil
}

func (s *scriptedUI) PromptInsurance() (bool, error) {
	s.insuranceAsks++
	if len(s.insurance) == 0 {
		return false, ErrQuit
	}
	ans := s.insurance[0]
	s.insurance = s.insurance[1:]
	return ans, nil
}

func (s *scriptedUI) PromptAction(hand int, legal []Action) (Action, error) {
	s.offered = append(s.offered, legal)
	if len(s.actions) == 0 {
		return 0, ErrQuit
	}
	a := s.actions[0]
	s.actions = s.actions[1:]
	return a, nil
}

func (s *scriptedUI) PromptRestart() (bool, error) {
	if len(s.restarts) == 0 {
		return false, ErrQuit
	}
	ans := s.restarts[0]
	s.restarts = s.restarts[1:]
	return ans, nil
}

func (s *scriptedUI) ShowRound(round, balance int)        { s.rounds = append(s.rounds, round) }
func (s *scriptedUI) ShowHiddenDealerHand(view TableView) { s.lastView = view }
func (s *scriptedUI) ShowAllHands(view TableView)         { s.lastView = view }
func (s *scriptedUI) ShowScores(view TableView, hand int) { s.lastView = view }
func (s *scriptedUI) Announce(a Announcement)             { s.announcements = append(s.announcements, a) }

func (s *scriptedUI) announced(a Announcement) int {
	n := 0
	for _, got := range s.announcements {
		if got == a {
			n++
		}
	}
	return n
}

// policyUI plays a fixed-bet hit-below-17 game, splitting and doubling at
// random, to drive long property tests.
type policyUI struct {
	bet      int
	lastView TableView
	roll     func(n int) int
}

func (p *policyUI) PromptBet(max int) (int, error) { return min(p.bet, max), nil }
func (p *policyUI) PromptInsurance() (bool, error) { return p.roll(2) == 0, nil }
func (p *policyUI) PromptRestart() (bool, error)   { return false, nil }

func (p *policyUI) PromptAction(hand int, legal []Action) (Action, error) {
	for _, a := range legal {
		if a == Split && p.roll(2) == 0 {
			return Split, nil
		}
	}
	if p.roll(10) == 0 {
		return DoubleDown, nil
	}
	if p.lastView.Hands[hand].Score < 17 {
		return Hit, nil
	}
	return Stand, nil
}

func (p *policyUI) ShowRound(round, balance int)        {}
func (p *policyUI) ShowHiddenDealerHand(view TableView) { p.lastView = view }
func (p *policyUI) ShowAllHands(view TableView)         { p.lastView = view }
func (p *policyUI) ShowScores(view TableView, hand int) { p.lastView = view }
func (p *policyUI) Announce(a Announcement)             {}

// newTestGame builds a game whose first deals are cards, in order:
// player, player, dealer, dealer, then whatever the actions draw.
func newTestGame(t *testing.T, ui UI, cards string, opts ...Option) *Game {
	t.Helper()
	shoe := deck.NewStackedShoe(1, randutil.New(42), deck.MustParseCards(cards)...)
	base := []Option{
		WithShoe(shoe),
		WithLogger(log.New(io.Discard)),
		WithClock(quartz.NewMock(t)),
		WithSessionID("test-session"),
	}
	g := NewGame(ui, append(base, opts...)...)
	g.StartSession()
	return g
}

func hand(cards string) *Hand {
	cs := deck.MustParseCards(cards)
	h := NewHand(cs[0], cs[1])
	for _, c := range cs[2:] {
		h.AddCard(c)
	}
	return h
}
