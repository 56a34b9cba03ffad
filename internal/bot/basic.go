package bot

import (
	"github.com/lox/blackjack-cli/internal/deck"
	"github.com/lox/blackjack-cli/internal/game"
)

// decision is a chart cell
type decision byte

const (
	hit         decision = 'H'
	stand       decision = 'S'
	double      decision = 'D' // double if allowed, otherwise hit
	doubleStand decision = 'd' // double if allowed, otherwise stand
	split       decision = 'P'
)

// Chart columns are the dealer up-card: 2 through 10, then ace.
var hardChart = map[int]string{
	8:  "HHHHHHHHHH",
	9:  "HDDDDHHHHH",
	10: "DDDDDDDDHH",
	11: "DDDDDDDDDH",
	12: "HHSSSHHHHH",
	13: "SSSSSHHHHH",
	14: "SSSSSHHHHH",
	15: "SSSSSHHHHH",
	16: "SSSSSHHHHH",
}

// soft totals, keyed by the total with the ace counted as 11
var softChart = map[int]string{
	12: "HHHHHHHHHH",
	13: "HHHDDHHHHH",
	14: "HHHDDHHHHH",
	15: "HHDDDHHHHH",
	16: "HHDDDHHHHH",
	17: "HDDDDHHHHH",
	18: "SddddSSHHH",
	19: "SSSSSSSSSS",
}

// pairs, keyed by the card value (ace is 11)
var pairChart = map[int]string{
	2:  "PPPPPPHHHH",
	3:  "PPPPPPHHHH",
	4:  "HHHPPHHHHH",
	6:  "PPPPPHHHHH",
	7:  "PPPPPPHHHH",
	8:  "PPPPPPPPPP",
	9:  "PPPPPSPPSS",
	11: "PPPPPPPPPP",
}

// BasicStrategy plays the standard chart for a dealer that stands on all 17s
type BasicStrategy struct{}

func (BasicStrategy) Name() string { return "basic" }

func (BasicStrategy) Decide(hand game.HandView, dealerUp deck.Card, legal []game.Action) game.Action {
	col := upCardColumn(dealerUp)
	canDouble := len(hand.Cards) == 2 && has(legal, game.DoubleDown)

	if has(legal, game.Split) && len(hand.Cards) == 2 {
		if row, ok := pairChart[cardValue(hand.Cards[0])]; ok && decision(row[col]) == split {
			return game.Split
		}
	}

	var d decision
	switch total := hand.Score; {
	case hand.Bust || total >= 21:
		return game.Stand
	case isSoft(hand):
		d = stand
		if row, ok := softChart[total]; ok {
			d = decision(row[col])
		}
	case total <= 8:
		d = hit
	case total >= 17:
		d = stand
	default:
		d = decision(hardChart[total][col])
	}

	switch d {
	case double:
		if canDouble {
			return game.DoubleDown
		}
		return game.Hit
	case doubleStand:
		if canDouble {
			return game.DoubleDown
		}
		return game.Stand
	case hit:
		return game.Hit
	default:
		return game.Stand
	}
}

// isSoft reports whether the best total counts an ace as 11
func isSoft(h game.HandView) bool {
	return len(h.Scores) > 0 && !h.Bust && h.Score != h.Scores[0]
}

func upCardColumn(c deck.Card) int {
	if c.IsAce() {
		return 9
	}
	return c.Value() - 2
}

func cardValue(c deck.Card) int {
	if c.IsAce() {
		return 11
	}
	return c.Value()
}

func has(actions []game.Action, a game.Action) bool {
	for _, x := range actions {
		if x == a {
			return true
		}
	}
	return false
}
