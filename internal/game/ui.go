package game

import (
	"errors"

	"github.com/lox/blackjack-cli/internal/deck"
)

var (
	// ErrQuit is returned by a UI when the user leaves the table
	ErrQuit = errors.New("player quit")

	// ErrInvalidBet means a UI returned a bet outside (0, balance]
	ErrInvalidBet = errors.New("invalid bet")

	// ErrIllegalAction means a UI returned an action it was not offered
	ErrIllegalAction = errors.New("illegal action")
)

// UI is the presentation boundary. Prompts block until the user gives a
// valid answer; the implementation re-prompts on bad input. A prompt only
// returns an error for I/O failure or ErrQuit. Show* and Announce are purely
// informational.
type UI interface {
	// PromptBet asks for a bet in (0, max]
	PromptBet(max int) (int, error)
	// PromptInsurance asks whether to take the insurance side bet
	PromptInsurance() (bool, error)
	// PromptAction asks what to do with the hand at index hand
	PromptAction(hand int, legal []Action) (Action, error)
	// PromptRestart asks whether to start a new session
	PromptRestart() (bool, error)

	ShowRound(round, balance int)
	ShowHiddenDealerHand(view TableView)
	ShowAllHands(view TableView)
	ShowScores(view TableView, hand int)
	Announce(a Announcement)
}

// HandView is a read-only snapshot of a hand
type HandView struct {
	Cards    []deck.Card
	Scores   []int
	Score    int // FinalScore
	Standing bool
	Bust     bool
}

// TableView is a read-only snapshot of the table handed to the UI. While
// DealerHidden is set, Dealer only holds the up-card.
type TableView struct {
	Round        int
	Balance      int
	Bet          int
	SideBet      int
	DealerHidden bool
	Dealer       HandView
	Hands        []HandView
}

func newHandView(h *Hand) HandView {
	if h == nil {
		return HandView{}
	}
	return HandView{
		Cards:    h.Cards(),
		Scores:   h.Scores(),
		Score:    h.FinalScore(),
		Standing: h.IsStanding(),
		Bust:     h.IsBust(),
	}
}
