package bot

import (
	"context"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/blackjack-cli/internal/deck"
	"github.com/lox/blackjack-cli/internal/game"
	"github.com/lox/blackjack-cli/internal/randutil"
)

func view(cards string) game.HandView {
	cs := deck.MustParseCards(cards)
	h := game.NewHand(cs[0], cs[1])
	for _, c := range cs[2:] {
		h.AddCard(c)
	}
	return game.HandView{
		Cards:  h.Cards(),
		Scores: h.Scores(),
		Score:  h.FinalScore(),
		Bust:   h.IsBust(),
	}
}

func up(card string) deck.Card {
	return deck.MustParseCards(card)[0]
}

var (
	noSplit   = []game.Action{game.Hit, game.Stand, game.DoubleDown}
	withSplit = []game.Action{game.Hit, game.Stand, game.DoubleDown, game.Split}
)

func TestBasicStrategy(t *testing.T) {
	tests := []struct {
		name  string
		hand  string
		up    string
		legal []game.Action
		want  game.Action
	}{
		{"hard 8 hits", "5h 3c", "6d", noSplit, game.Hit},
		{"hard 11 doubles", "6h 5c", "Td", noSplit, game.DoubleDown},
		{"hard 11 hits against ace", "6h 5c", "As", noSplit, game.Hit},
		{"hard 10 hits against ten", "6h 4c", "Kd", noSplit, game.Hit},
		{"three-card 11 hits", "2h 4c 5d", "6d", noSplit, game.Hit},
		{"hard 12 stands against 4", "Th 2c", "4d", noSplit, game.Stand},
		{"hard 12 hits against 2", "Th 2c", "2d", noSplit, game.Hit},
		{"hard 16 stands against 6", "Th 6c", "6d", noSplit, game.Stand},
		{"hard 16 hits against 7", "Th 6c", "7d", noSplit, game.Hit},
		{"hard 17 stands", "Th 7c", "As", noSplit, game.Stand},
		{"soft 18 doubles against 5", "Ah 7c", "5d", noSplit, game.DoubleDown},
		{"three-card soft 18 stands against 5", "Ah 3c 4d", "5d", noSplit, game.Stand},
		{"soft 18 hits against 9", "Ah 7c", "9d", noSplit, game.Hit},
		{"soft 19 stands", "Ah 8c", "Td", noSplit, game.Stand},
		{"ace ace nine stands", "Ah Ac 9d", "Td", noSplit, game.Stand},
		{"aces split", "Ah Ac", "Td", withSplit, game.Split},
		{"eights split", "8h 8c", "As", withSplit, game.Split},
		{"tens stand", "Kh Kc", "6d", withSplit, game.Stand},
		{"fives double", "5h 5c", "6d", withSplit, game.DoubleDown},
		{"nines stand against 7", "9h 9c", "7d", withSplit, game.Stand},
		{"nines split against 8", "9h 9c", "8d", withSplit, game.Split},
		{"twenty-one stands", "7h 7c 7d", "8d", noSplit, game.Stand},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BasicStrategy{}.Decide(view(tt.hand), up(tt.up), tt.legal)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBasicStrategySoftTwelveHits(t *testing.T) {
	// unsplittable A A (split not offered) is soft 12
	got := BasicStrategy{}.Decide(view("Ah Ac"), up("6d"), noSplit)
	assert.Equal(t, game.Hit, got)
}

func TestSimpleStrategies(t *testing.T) {
	assert.Equal(t, game.Hit, DealerMimic{}.Decide(view("Th 6c"), up("2d"), noSplit))
	assert.Equal(t, game.Stand, DealerMimic{}.Decide(view("Th 7c"), up("2d"), noSplit))
	assert.Equal(t, game.Stand, AlwaysStand{}.Decide(view("2h 3c"), up("2d"), noSplit))

	r := NewRandom(randutil.New(1))
	for range 50 {
		assert.Contains(t, withSplit, r.Decide(view("8h 8c"), up("2d"), withSplit))
	}
}

func TestNew(t *testing.T) {
	for _, name := range Names {
		s, err := New(name, randutil.New(1))
		require.NoError(t, err, name)
		assert.Equal(t, name, s.Name())
	}

	_, err := New("random", nil)
	assert.Error(t, err)
	_, err = New("card-counter", nil)
	assert.ErrorContains(t, err, "unknown strategy")
}

func TestBotCapsBetAtBalance(t *testing.T) {
	b := NewBot(AlwaysStand{}, WithBet(50), WithLogger(log.New(io.Discard)))
	bet, err := b.PromptBet(30)
	require.NoError(t, err)
	assert.Equal(t, 30, bet)

	bet, err = b.PromptBet(1000)
	require.NoError(t, err)
	assert.Equal(t, 50, bet)
}

func TestBotWithoutViewErrors(t *testing.T) {
	b := NewBot(AlwaysStand{}, WithLogger(log.New(io.Discard)))
	_, err := b.PromptAction(0, noSplit)
	assert.Error(t, err)
}

func TestBotPlaysFullRounds(t *testing.T) {
	for _, name := range Names {
		t.Run(name, func(t *testing.T) {
			strategy, err := New(name, randutil.New(3))
			require.NoError(t, err)

			b := NewBot(strategy, WithBet(10), WithInsurance(true), WithLogger(log.New(io.Discard)))
			g := game.NewGame(b,
				game.WithRNG(randutil.New(99)),
				game.WithLogger(log.New(io.Discard)),
				game.WithClock(quartz.NewMock(t)),
			)
			g.StartSession()

			for range 200 {
				res, err := g.PlayRound(context.Background())
				require.NoError(t, err)
				assert.Equal(t, res.Net(), res.Settled())
				if res.State != game.Playing {
					break
				}
			}
		})
	}
}
