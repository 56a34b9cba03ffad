package bot

import (
	"math/rand/v2"

	"github.com/lox/blackjack-cli/internal/deck"
	"github.com/lox/blackjack-cli/internal/game"
)

// DealerMimic plays the house rule: hit below 17, never double or split
type DealerMimic struct{}

func (DealerMimic) Name() string { return "dealer" }

func (DealerMimic) Decide(hand game.HandView, _ deck.Card, _ []game.Action) game.Action {
	if hand.Score < game.DealerStandsOn {
		return game.Hit
	}
	return game.Stand
}

// AlwaysStand stands on whatever it is dealt
type AlwaysStand struct{}

func (AlwaysStand) Name() string { return "stand" }

func (AlwaysStand) Decide(game.HandView, deck.Card, []game.Action) game.Action {
	return game.Stand
}

// Random picks uniformly among the legal actions
type Random struct {
	rng *rand.Rand
}

// NewRandom creates a random strategy
func NewRandom(rng *rand.Rand) *Random {
	return &Random{rng: rng}
}

func (r *Random) Name() string { return "random" }

func (r *Random) Decide(_ game.HandView, _ deck.Card, legal []game.Action) game.Action {
	if len(legal) == 0 {
		return game.Stand
	}
	return legal[r.rng.IntN(len(legal))]
}
