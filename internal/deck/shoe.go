package deck

import (
	"fmt"
	rand "math/rand/v2"
)

// CardsPerDeck is the size of a standard deck
const CardsPerDeck = 52

// Shoe dispenses cards from one or more decks until it runs dry, then
// rebuilds and reshuffles every deck. A dealt card never returns to the shoe.
type Shoe struct {
	decks      int
	cards      []Card
	rng        *rand.Rand
	reshuffles int
}

// NewShoe builds a shuffled shoe of the given number of decks.
// The RNG is required so that tests can make dealing deterministic.
func NewShoe(decks int, rng *rand.Rand) *Shoe {
	if decks < 1 {
		panic("shoe needs at least one deck")
	}
	if rng == nil {
		panic("rng is required for shoe creation")
	}

	s := &Shoe{decks: decks, rng: rng}
	s.build()
	s.shuffle()
	return s
}

// NewStackedShoe builds a shoe whose first deals are exactly the given cards,
// in order. Once they are used up the shoe refills like any other.
func NewStackedShoe(decks int, rng *rand.Rand, cards ...Card) *Shoe {
	if decks < 1 {
		panic("shoe needs at least one deck")
	}
	if rng == nil {
		panic("rng is required for shoe creation")
	}

	stacked := make([]Card, len(cards))
	for i, c := range cards {
		if c.IsZero() {
			panic(fmt.Sprintf("stacked card %d is not a real card", i))
		}
		stacked[i] = c
	}
	return &Shoe{decks: decks, rng: rng, cards: stacked}
}

// Deal removes and returns the first card. An empty shoe is rebuilt and
// reshuffled first, so every call yields a card.
func (s *Shoe) Deal() Card {
	if len(s.cards) == 0 {
		s.build()
		s.shuffle()
		s.reshuffles++
	}

	card := s.cards[0]
	s.cards = s.cards[1:]
	return card
}

// Remaining returns the number of cards left before the next rebuild
func (s *Shoe) Remaining() int {
	return len(s.cards)
}

// Size returns the number of cards in a freshly built shoe
func (s *Shoe) Size() int {
	return s.decks * CardsPerDeck
}

// Decks returns the number of decks the shoe is built from
func (s *Shoe) Decks() int {
	return s.decks
}

// Reshuffles returns how many times the shoe has been rebuilt after running dry
func (s *Shoe) Reshuffles() int {
	return s.reshuffles
}

func (s *Shoe) build() {
	s.cards = make([]Card, 0, s.Size())
	for range s.decks {
		s.cards = append(s.cards, NewDeck().cards...)
	}
}

// shuffle swaps every position with a random index in [0, n-2]. The last
// slot is never picked as a swap target, so this is not a uniform permutation.
func (s *Shoe) shuffle() {
	n := len(s.cards)
	if n < 2 {
		return
	}
	for i := range s.cards {
		j := s.rng.IntN(n - 1)
		s.cards[i], s.cards[j] = s.cards[j], s.cards[i]
	}
}
