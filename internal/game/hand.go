package game

import (
	"strconv"
	"strings"

	"github.com/lox/blackjack-cli/internal/deck"
)

// Blackjack is the best possible total
const Blackjack = 21

// Hand is a set of dealt cards plus a stand flag. A hand is created with
// two cards and only grows until the round ends.
type Hand struct {
	cards    []deck.Card
	standing bool
}

// NewHand creates a hand from its first two cards
func NewHand(first, second deck.Card) *Hand {
	return &Hand{cards: []deck.Card{first, second}}
}

// AddCard appends a dealt card
func (h *Hand) AddCard(c deck.Card) {
	h.cards = append(h.cards, c)
}

// Cards returns a copy of the hand's cards in deal order
func (h *Hand) Cards() []deck.Card {
	cards := make([]deck.Card, len(h.cards))
	copy(cards, h.cards)
	return cards
}

// Len returns the number of cards held
func (h *Hand) Len() int {
	return len(h.cards)
}

// FirstCard returns the first card dealt into the hand
func (h *Hand) FirstCard() deck.Card {
	return h.cards[0]
}

// IsStanding reports whether the hand is finished
func (h *Hand) IsStanding() bool {
	return h.standing
}

// Stand marks the hand as finished
func (h *Hand) Stand() {
	h.standing = true
}

// Scores returns every achievable total. Each ace contributes either 1 or
// 11, so a hand with n aces yields 2^n totals. Duplicates are kept; the
// first total is always the all-aces-low one.
func (h *Hand) Scores() []int {
	totals := []int{0}
	for _, c := range h.cards {
		next := make([]int, 0, len(totals)*2)
		for _, t := range totals {
			next = append(next, t+c.Value())
			if c.IsAce() {
				next = append(next, t+10+c.Value())
			}
		}
		totals = next
	}
	return totals
}

// Resolve returns the best total not over 21, or 0 if the hand is bust
func (h *Hand) Resolve() int {
	best := 0
	for _, s := range h.Scores() {
		if s <= Blackjack && s > best {
			best = s
		}
	}
	return best
}

// FinalScore is Resolve for a live hand and the lowest total for a bust one
func (h *Hand) FinalScore() int {
	if best := h.Resolve(); best != 0 {
		return best
	}
	return h.Scores()[0]
}

// IsBust reports whether every total is over 21
func (h *Hand) IsBust() bool {
	return h.Resolve() == 0
}

// CanSplit reports whether the hand is exactly two cards of the same rank
func (h *Hand) CanSplit() bool {
	return len(h.cards) == 2 && h.cards[0].Rank() == h.cards[1].Rank()
}

// String returns the cards and scores, e.g. "A♠ 7♥ (8/18)"
func (h *Hand) String() string {
	parts := make([]string, 0, len(h.cards))
	for _, c := range h.cards {
		parts = append(parts, c.String())
	}
	scores := make([]string, 0)
	for _, s := range h.Scores() {
		scores = append(scores, strconv.Itoa(s))
	}
	return strings.Join(parts, " ") + " (" + strings.Join(scores, "/") + ")"
}
