package deck

// Deck is an ordered, unshuffled 52-card deck. Shuffling is the shoe's job.
type Deck struct {
	cards []Card
}

// NewDeck creates a new standard 52-card deck
func NewDeck() *Deck {
	d := &Deck{cards: make([]Card, 0, 52)}
	for rank := Ace; rank <= King; rank++ {
		for _, suit := range Suits {
			d.cards = append(d.cards, NewCard(suit, rank))
		}
	}
	return d
}

// Cards returns a copy of the deck's cards
func (d *Deck) Cards() []Card {
	cards := make([]Card, len(d.cards))
	copy(cards, d.cards)
	return cards
}

// Len returns the number of cards in the deck
func (d *Deck) Len() int {
	return len(d.cards)
}
