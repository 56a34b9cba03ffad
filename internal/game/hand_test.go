package game

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lox/blackjack-cli/internal/deck"
	"github.com/lox/blackjack-cli/internal/randutil"
)

func TestHandScores(t *testing.T) {
	tests := []struct {
		name    string
		cards   string
		scores  []int
		resolve int
		final   int
	}{
		{"no aces", "Th 7c", []int{17}, 17, 17},
		{"court cards", "Kh Qc", []int{20}, 20, 20},
		{"blackjack", "As Kh", []int{11, 21}, 21, 21},
		{"soft seventeen", "Ah 6c", []int{7, 17}, 17, 17},
		{"two aces", "Ah Ad", []int{2, 12, 12, 22}, 12, 12},
		{"soft hand turns hard", "Ah 6c 9d", []int{16, 26}, 16, 16},
		{"bust", "Th 7c 5h", []int{22}, 0, 22},
		{"bust with ace", "Kh Qc Ad", []int{21, 31}, 21, 21},
		{"hard bust with aces", "Kh Qc Ad As", []int{22, 32, 32, 42}, 0, 22},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := hand(tt.cards)
			assert.Equal(t, tt.scores, h.Scores())
			assert.Equal(t, tt.resolve, h.Resolve())
			assert.Equal(t, tt.final, h.FinalScore())
			assert.Equal(t, tt.resolve == 0, h.IsBust())
		})
	}
}

func TestHandScoresWithoutAcesIsSum(t *testing.T) {
	shoe := deck.NewShoe(1, randutil.New(3))
	for range 200 {
		h := NewHand(shoe.Deal(), shoe.Deal())
		for h.Len() < 4 {
			h.AddCard(shoe.Deal())
		}
		hasAce := false
		sum := 0
		for _, c := range h.Cards() {
			hasAce = hasAce || c.IsAce()
			sum += c.Value()
		}
		if hasAce {
			assert.Len(t, h.Scores(), 1<<aces(h))
			continue
		}
		assert.Equal(t, []int{sum}, h.Scores(), "hand %s", h)
	}
}

func TestResolveIsAScoreOrZero(t *testing.T) {
	shoe := deck.NewShoe(2, randutil.New(11))
	for range 500 {
		h := NewHand(shoe.Deal(), shoe.Deal())
		for range int(shoe.Remaining() % 4) {
			h.AddCard(shoe.Deal())
		}
		r := h.Resolve()
		assert.LessOrEqual(t, r, Blackjack)
		if r != 0 {
			assert.True(t, slices.Contains(h.Scores(), r), "resolve %d not in %v", r, h.Scores())
		}
	}
}

func TestHandCanSplit(t *testing.T) {
	assert.True(t, hand("8h 8c").CanSplit())
	assert.True(t, hand("Ah As").CanSplit())
	assert.False(t, hand("Kh Qc").CanSplit(), "same value is not same rank")
	assert.False(t, hand("8h 8c 2d").CanSplit())
}

func TestHandStandAndCards(t *testing.T) {
	h := hand("9h 2c")
	assert.False(t, h.IsStanding())
	h.Stand()
	assert.True(t, h.IsStanding())

	cards := h.Cards()
	cards[0] = deck.NewCard(deck.Spades, deck.King)
	assert.Equal(t, deck.NewCard(deck.Hearts, deck.Nine), h.FirstCard(), "Cards() must return a copy")
	assert.Equal(t, "9♥ 2♣ (11)", h.String())
}

func aces(h *Hand) int {
	n := 0
	for _, c := range h.Cards() {
		if c.IsAce() {
			n++
		}
	}
	return n
}
