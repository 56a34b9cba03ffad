package deck

import "fmt"

// Suit represents a card suit
type Suit int

const (
	Hearts Suit = iota + 1
	Diamonds
	Clubs
	Spades
)

// Suits lists every suit in deck-building order
var Suits = [...]Suit{Hearts, Diamonds, Clubs, Spades}

// String returns the suit symbol
func (s Suit) String() string {
	switch s {
	case Hearts:
		return "♥"
	case Diamonds:
		return "♦"
	case Clubs:
		return "♣"
	case Spades:
		return "♠"
	default:
		return "?"
	}
}

// Name returns the suit's English name, e.g. "Spades"
func (s Suit) Name() string {
	switch s {
	case Hearts:
		return "Hearts"
	case Diamonds:
		return "Diamonds"
	case Clubs:
		return "Clubs"
	case Spades:
		return "Spades"
	default:
		return "Unknown"
	}
}

// IsRed returns true if the suit is red (Hearts or Diamonds)
func (s Suit) IsRed() bool {
	return s == Hearts || s == Diamonds
}

// Rank represents a card rank. Aces are low (1), court cards are 11-13.
type Rank int

const (
	Ace Rank = iota + 1
	Two
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
)

// String returns the short rank label used on card faces
func (r Rank) String() string {
	switch r {
	case Ace:
		return "A"
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	default:
		if r >= Two && r <= Ten {
			return fmt.Sprintf("%d", int(r))
		}
		return "?"
	}
}

// Card is an immutable playing card carrying its blackjack value.
// Build cards with NewCard so the value is set; the zero Card is invalid.
type Card struct {
	suit  Suit
	rank  Rank
	value int
}

// NewCard creates a new card. Court cards are worth 10 and everything else
// its pip value; an ace is worth 1 here and the 11 alternative is left to
// hand scoring.
func NewCard(suit Suit, rank Rank) Card {
	value := int(rank)
	if rank > Ten {
		value = 10
	}
	return Card{suit: suit, rank: rank, value: value}
}

// Suit returns the card's suit
func (c Card) Suit() Suit { return c.suit }

// Rank returns the card's rank
func (c Card) Rank() Rank { return c.rank }

// Value returns the blackjack game value (1-10)
func (c Card) Value() int { return c.value }

// IsAce returns true if the card is an Ace
func (c Card) IsAce() bool {
	return c.value == 1
}

// IsTenValue returns true for tens and court cards
func (c Card) IsTenValue() bool {
	return c.value == 10
}

// IsZero reports whether c was never built with NewCard
func (c Card) IsZero() bool {
	return c.value == 0
}

// IsRed returns true if the card is red
func (c Card) IsRed() bool {
	return c.suit.IsRed()
}

// String returns the string representation of a card (e.g., "A♠")
func (c Card) String() string {
	return fmt.Sprintf("%s%s", c.rank, c.suit)
}

// Describe returns the long form, e.g. "10 of Hearts"
func (c Card) Describe() string {
	return fmt.Sprintf("%s of %s", c.rank, c.suit.Name())
}
