package game

import (
	"time"

	"github.com/lox/blackjack-cli/internal/deck"
)

// HandResult is how one player hand settled
type HandResult struct {
	Index     int
	Cards     []deck.Card
	Score     int // FinalScore at settlement
	Blackjack bool
	Bust      bool
	Outcome   Outcome
	Delta     int // credits paid (+) or collected (-)
}

// ActionRecord is one decision taken during the action loop
type ActionRecord struct {
	Hand   int
	Action Action
}

// RoundResult summarises a completed round
type RoundResult struct {
	SessionID string
	Round     int

	InitialBet int
	Bet        int // after any double downs
	SideBet    int

	Insurance      InsuranceOutcome
	InsuranceDelta int

	Actions []ActionRecord
	Hands   []HandResult

	DealerCards     []deck.Card
	DealerScore     int
	DealerBlackjack bool

	StartBalance int
	EndBalance   int
	State        SessionState
	Duration     time.Duration
}

// Net returns the balance change over the round
func (r *RoundResult) Net() int {
	return r.EndBalance - r.StartBalance
}

// Settled returns the sum of every transfer made during the round. It
// always equals Net for a finished round.
func (r *RoundResult) Settled() int {
	total := r.InsuranceDelta
	for _, h := range r.Hands {
		total += h.Delta
	}
	return total
}
