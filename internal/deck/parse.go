package deck

import (
	"fmt"
	"strings"
	"unicode"
)

// ParseCard parses a single card such as "As", "10h", "Td" or "K♣".
func ParseCard(s string) (Card, error) {
	cards, err := ParseCards(s)
	if err != nil {
		return Card{}, err
	}
	if len(cards) != 1 {
		return Card{}, fmt.Errorf("expected one card in %q, got %d", s, len(cards))
	}
	return cards[0], nil
}

// ParseCards parses a run of cards, e.g. "AsKd", "As Kd" or "10h 10c".
// Ranks are A, 2-9, T or 10, J, Q, K; suits are h, d, c, s or their symbols.
func ParseCards(s string) ([]Card, error) {
	runes := []rune(strings.TrimSpace(s))
	cards := []Card{}

	for i := 0; i < len(runes); {
		if unicode.IsSpace(runes[i]) || runes[i] == ',' {
			i++
			continue
		}

		var rank Rank
		switch unicode.ToUpper(runes[i]) {
		case 'A':
			rank = Ace
		case 'T':
			rank = Ten
		case 'J':
			rank = Jack
		case 'Q':
			rank = Queen
		case 'K':
			rank = King
		case '1':
			if i+1 < len(runes) && runes[i+1] == '0' {
				rank = Ten
				i++
			} else {
				return nil, fmt.Errorf("invalid rank at position %d in %q", i, s)
			}
		default:
			if runes[i] >= '2' && runes[i] <= '9' {
				rank = Rank(runes[i] - '0')
			} else {
				return nil, fmt.Errorf("invalid rank %q in %q", runes[i], s)
			}
		}
		i++

		if i >= len(runes) {
			return nil, fmt.Errorf("missing suit after %s in %q", rank, s)
		}

		var suit Suit
		switch unicode.ToLower(runes[i]) {
		case 'h', '♥':
			suit = Hearts
		case 'd', '♦':
			suit = Diamonds
		case 'c', '♣':
			suit = Clubs
		case 's', '♠':
			suit = Spades
		default:
			return nil, fmt.Errorf("invalid suit %q in %q", runes[i], s)
		}
		i++

		cards = append(cards, NewCard(suit, rank))
	}

	return cards, nil
}

// MustParseCards is ParseCards for tests and fixtures; it panics on error.
func MustParseCards(s string) []Card {
	cards, err := ParseCards(s)
	if err != nil {
		panic(err)
	}
	return cards
}
