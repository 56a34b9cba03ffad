package game

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/blackjack-cli/internal/deck"
	"github.com/lox/blackjack-cli/internal/randutil"
)

func TestPlayRound_StandBeatsBustDealer(t *testing.T) {
	ui := &scriptedUI{bets: []int{100}, actions: []Action{Stand}}
	g := newTestGame(t, ui, "Th 9c 8s 7d Ts")

	res, err := g.PlayRound(context.Background())
	require.NoError(t, err)

	require.Len(t, res.Hands, 1)
	assert.Equal(t, Win, res.Hands[0].Outcome)
	assert.Equal(t, 100, res.Hands[0].Delta)
	assert.Equal(t, 1100, g.Player().Balance())
	assert.Equal(t, 25, res.DealerScore)
	assert.Len(t, res.DealerCards, 3)
	assert.Equal(t, NoInsurance, res.Insurance)
	assert.Zero(t, ui.insuranceAsks)
	assert.Equal(t, 2, g.Round())
	assert.Empty(t, g.Player().Hands(), "hands are cleared at teardown")
	assert.Empty(t, g.Dealer().Hands())
}

func TestPlayRound_PlayerBustLosesWithoutDealerPlay(t *testing.T) {
	ui := &scriptedUI{bets: []int{100}, actions: []Action{Hit}}
	g := newTestGame(t, ui, "Th 7c 9s 8d 5h")

	res, err := g.PlayRound(context.Background())
	require.NoError(t, err)

	require.Len(t, res.Hands, 1)
	hr := res.Hands[0]
	assert.True(t, hr.Bust)
	assert.Equal(t, 22, hr.Score)
	assert.Equal(t, Lose, hr.Outcome)
	assert.Equal(t, -100, hr.Delta)
	assert.Len(t, res.DealerCards, 2, "dealer does not draw against a bust hand")
	assert.Equal(t, 1, ui.announced(AnnounceBust))
	assert.Equal(t, 1, ui.announced(AnnounceLose))
	assert.Equal(t, 900, g.Player().Balance())
}

func TestPlayRound_BustLosesEvenIfDealerBusts(t *testing.T) {
	// Two hands after a split: the first stands and the dealer busts drawing
	// for it, then the second hand, already bust, settles against a bust dealer.
	ui := &scriptedUI{bets: []int{10}, actions: []Action{Split, Stand, Hit}}
	g := newTestGame(t, ui, "8h 8c 9s 6d Ts 5c Qh Kd")

	res, err := g.PlayRound(context.Background())
	require.NoError(t, err)
	require.Len(t, res.Hands, 2)

	// left: 8h Ts = 18, right: 8c 5c Qh = 23, dealer 9s 6d Kd = 25
	assert.False(t, res.Hands[0].Bust)
	assert.Equal(t, Win, res.Hands[0].Outcome)
	assert.True(t, res.Hands[1].Bust)
	assert.Equal(t, Lose, res.Hands[1].Outcome)
	assert.Equal(t, -10, res.Hands[1].Delta)
	assert.Greater(t, res.DealerScore, 21)
	assert.Equal(t, 0, res.Net())
}

func TestCompare_BustAgainstBustDealer(t *testing.T) {
	g := newTestGame(t, &scriptedUI{}, "Th 9c 8s 7d")
	assert.Equal(t, Lose, g.compare(hand("Th 8c 5d"), hand("9s 6d Kd"), 0))
	assert.Equal(t, Win, g.compare(hand("Th 8c"), hand("9s 6d Kd"), 0))
}

func TestPlayRound_BlackjackPaysThreeToTwo(t *testing.T) {
	ui := &scriptedUI{bets: []int{100}}
	g := newTestGame(t, ui, "As Kh 9s 7d 2c")

	res, err := g.PlayRound(context.Background())
	require.NoError(t, err)

	require.Len(t, res.Hands, 1)
	assert.True(t, res.Hands[0].Blackjack)
	assert.Equal(t, BlackjackWin, res.Hands[0].Outcome)
	assert.Equal(t, 150, res.Net())
	assert.Empty(t, ui.offered, "a natural 21 is never asked for an action")
	assert.Equal(t, 1, ui.announced(AnnounceBlackjackWin))
}

func TestPlayRound_BothBlackjackPush(t *testing.T) {
	ui := &scriptedUI{bets: []int{100}, insurance: []bool{false}}
	g := newTestGame(t, ui, "As Kh Ad Qc")

	res, err := g.PlayRound(context.Background())
	require.NoError(t, err)

	assert.True(t, res.DealerBlackjack)
	assert.Equal(t, Push, res.Hands[0].Outcome)
	assert.Equal(t, 0, res.Net())
}

func TestPlayRound_DeclinedInsuranceDealerBlackjack(t *testing.T) {
	ui := &scriptedUI{bets: []int{100}, insurance: []bool{false}, actions: []Action{Stand}}
	g := newTestGame(t, ui, "Th 8c Ah Kd")

	res, err := g.PlayRound(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, ui.insuranceAsks)
	assert.Equal(t, InsuranceDeclined, res.Insurance)
	assert.Zero(t, res.InsuranceDelta)
	assert.Zero(t, res.SideBet)
	assert.Equal(t, BlackjackLose, res.Hands[0].Outcome)
	assert.Equal(t, -100, res.Net(), "player loses the bet, not the side bet")
	assert.Zero(t, ui.announced(AnnounceInsuranceWin)+ui.announced(AnnounceInsuranceLose))
}

func TestPlayRound_InsuranceWins(t *testing.T) {
	ui := &scriptedUI{bets: []int{100}, insurance: []bool{true}}
	g := newTestGame(t, ui, "Th 8c Ah Kd")

	res, err := g.PlayRound(context.Background())
	require.NoError(t, err)

	assert.Empty(t, ui.offered, "round ends before the action loop")
	assert.Equal(t, 50, res.SideBet)
	assert.Equal(t, InsuranceWon, res.Insurance)
	assert.Equal(t, 100, res.InsuranceDelta)
	require.Len(t, res.Hands, 1)
	assert.Equal(t, BlackjackLose, res.Hands[0].Outcome)
	assert.Equal(t, 0, res.Net())
	assert.Equal(t, 1, ui.announced(AnnounceInsuranceWin))
}

func TestPlayRound_InsuranceLosesPlayContinues(t *testing.T) {
	ui := &scriptedUI{bets: []int{100}, insurance: []bool{true}, actions: []Action{Stand}}
	g := newTestGame(t, ui, "Th 9c Kh 7d")

	res, err := g.PlayRound(context.Background())
	require.NoError(t, err)

	assert.Equal(t, InsuranceLost, res.Insurance)
	assert.Equal(t, -50, res.InsuranceDelta)
	assert.Equal(t, Win, res.Hands[0].Outcome)
	assert.Equal(t, 50, res.Net())
}

func TestPlayRound_InsuranceRoundsHalfEven(t *testing.T) {
	ui := &scriptedUI{bets: []int{5}, insurance: []bool{true}, actions: []Action{Stand}}
	g := newTestGame(t, ui, "Th 9c Kh 7d")

	res, err := g.PlayRound(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, res.SideBet, "2.5 rounds to 2")
}

func TestPlayRound_SplitAcesAreNotBlackjack(t *testing.T) {
	ui := &scriptedUI{bets: []int{100}, actions: []Action{Split}}
	g := newTestGame(t, ui, "Ah Ad 9s 7d Kh Qs 2c")

	res, err := g.PlayRound(context.Background())
	require.NoError(t, err)

	require.Len(t, ui.offered, 1)
	assert.Contains(t, ui.offered[0], Split)

	require.Len(t, res.Hands, 2)
	for _, hr := range res.Hands {
		assert.Equal(t, 21, hr.Score)
		assert.False(t, hr.Blackjack)
		assert.Equal(t, Win, hr.Outcome)
		assert.Equal(t, 100, hr.Delta, "split 21 pays 1:1")
	}
	assert.Equal(t, 18, res.DealerScore)
	assert.Equal(t, 200, res.Net())
}

func TestPlayRound_SplitOnlyOfferedForPairs(t *testing.T) {
	ui := &scriptedUI{bets: []int{10}, actions: []Action{Stand}}
	g := newTestGame(t, ui, "Kh Qc 9s 8d")

	_, err := g.PlayRound(context.Background())
	require.NoError(t, err)
	require.Len(t, ui.offered, 1)
	assert.Equal(t, []Action{Hit, Stand, DoubleDown}, ui.offered[0])
}

func TestPlayRound_ResplitHasNoLimit(t *testing.T) {
	ui := &scriptedUI{bets: []int{10}, actions: []Action{Split, Split, Stand, Stand, Stand}}
	g := newTestGame(t, ui, "8h 8c 9d Ts 8d Ks 2c 3c")

	res, err := g.PlayRound(context.Background())
	require.NoError(t, err)

	// 8h 8c -> [8h 8d] [8c Ks]; [8h 8d] -> [8c Ks] [8h 2c] [8d 3c]
	require.Len(t, res.Hands, 3)
	assert.Equal(t, 18, res.Hands[0].Score)
	assert.Equal(t, 10, res.Hands[1].Score)
	assert.Equal(t, 11, res.Hands[2].Score)
	assert.Equal(t, 19, res.DealerScore)
	assert.Equal(t, -30, res.Net())
}

func TestPlayRound_DoubleDown(t *testing.T) {
	ui := &scriptedUI{bets: []int{100}, actions: []Action{DoubleDown}}
	g := newTestGame(t, ui, "5h 6c 9s 7d Th 8c")

	res, err := g.PlayRound(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 100, res.InitialBet)
	assert.Equal(t, 200, res.Bet)
	require.Len(t, res.Hands, 1)
	assert.Equal(t, 21, res.Hands[0].Score)
	assert.False(t, res.Hands[0].Blackjack)
	assert.Equal(t, Win, res.Hands[0].Outcome)
	assert.Equal(t, 200, res.Net())
	assert.Equal(t, []ActionRecord{{Hand: 0, Action: DoubleDown}}, res.Actions)
}

func TestPlayRound_DoubleDownDoublesTheWholeBet(t *testing.T) {
	// after a split, doubling one hand doubles the single round bet, so the
	// other hand settles at the doubled stake too
	ui := &scriptedUI{bets: []int{10}, actions: []Action{Split, DoubleDown, Stand}}
	g := newTestGame(t, ui, "9h 9c 7d Ts 2h Kd 9s")

	res, err := g.PlayRound(context.Background())
	require.NoError(t, err)

	// left 9h 2h 9s = 20, right 9c Kd = 19, dealer 7d Ts = 17
	assert.Equal(t, 20, res.Bet)
	require.Len(t, res.Hands, 2)
	assert.Equal(t, 20, res.Hands[0].Delta)
	assert.Equal(t, 20, res.Hands[1].Delta)
}

func TestPlayRound_HitToTwentyOneAutoStands(t *testing.T) {
	ui := &scriptedUI{bets: []int{10}, actions: []Action{Hit}}
	g := newTestGame(t, ui, "9h 2c 9s 8d Th")

	res, err := g.PlayRound(context.Background())
	require.NoError(t, err)
	assert.Len(t, ui.offered, 1)
	assert.Equal(t, 21, res.Hands[0].Score)
	assert.Equal(t, Win, res.Hands[0].Outcome)
}

func TestPlayRound_DealerHitsSoftHands(t *testing.T) {
	ui := &scriptedUI{bets: []int{10}, actions: []Action{Stand}}
	// dealer Ac 5d is soft 16 and must draw; 2h makes soft 18
	g := newTestGame(t, ui, "Th 9c 5d Ac 2h", WithStartingBalance(500))

	res, err := g.PlayRound(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 18, res.DealerScore)
	assert.Equal(t, Win, res.Hands[0].Outcome)
	assert.Equal(t, 510, g.Player().Balance())
}

func TestPlayRound_InvalidBet(t *testing.T) {
	for _, bet := range []int{0, -5, 1001} {
		ui := &scriptedUI{bets: []int{bet}}
		g := newTestGame(t, ui, "Th 9c 8s 7d")

		_, err := g.PlayRound(context.Background())
		assert.ErrorIs(t, err, ErrInvalidBet, "bet %d", bet)
		assert.Equal(t, 1000, g.Player().Balance())
	}
}

func TestPlayRound_IllegalAction(t *testing.T) {
	ui := &scriptedUI{bets: []int{10}, actions: []Action{Split}}
	g := newTestGame(t, ui, "Th 9c 8s 7d")

	_, err := g.PlayRound(context.Background())
	require.ErrorIs(t, err, ErrIllegalAction)
	assert.Empty(t, g.Player().Hands())
	assert.Empty(t, g.Dealer().Hands())
	assert.Equal(t, 1, g.Round())
}

func TestPlayRound_CancelledContext(t *testing.T) {
	ui := &scriptedUI{bets: []int{10}}
	g := newTestGame(t, ui, "Th 9c 8s 7d")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := g.PlayRound(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPlayRound_GameOver(t *testing.T) {
	ui := &scriptedUI{bets: []int{100}, actions: []Action{Stand}}
	g := newTestGame(t, ui, "Th 6c 9d Ts", WithStartingBalance(100))

	res, err := g.PlayRound(context.Background())
	require.NoError(t, err)
	assert.Equal(t, GameOver, res.State)
	assert.Equal(t, GameOver, g.State())
	assert.Equal(t, 1, g.Round(), "round counter stops on a terminal state")

	_, err = g.PlayRound(context.Background())
	assert.Error(t, err)
}

func TestPlayRound_EpicWin(t *testing.T) {
	ui := &scriptedUI{bets: []int{100}, actions: []Action{Stand}}
	g := newTestGame(t, ui, "Th 9c 8s 7d Ts", WithWinThreshold(1100))

	res, err := g.PlayRound(context.Background())
	require.NoError(t, err)
	assert.Equal(t, EpicWin, res.State)
}

func TestRun_AnnouncesAndRestarts(t *testing.T) {
	ui := &scriptedUI{
		bets:     []int{100, 100},
		actions:  []Action{Stand, Stand},
		restarts: []bool{true, false},
	}
	g := newTestGame(t, ui, "Th 6c 9d Ts Th 6c 9d Ts", WithStartingBalance(100))

	var ends []SessionEndEvent
	g.EventBus().Subscribe(EventSubscriberFunc(func(e GameEvent) {
		if se, ok := e.(SessionEndEvent); ok {
			ends = append(ends, se)
		}
	}))

	require.NoError(t, g.Run(context.Background()))
	assert.Equal(t, 2, ui.announced(AnnounceGameOver))
	assert.Equal(t, []int{1, 1}, ui.rounds)
	require.Len(t, ends, 2)
	assert.Equal(t, GameOver, ends[0].State)
	assert.NotEqual(t, ends[0].SessionID, ends[1].SessionID, "a restart starts a new session")
}

func TestRun_QuitIsNotAnError(t *testing.T) {
	ui := &scriptedUI{}
	g := newTestGame(t, ui, "Th 9c 8s 7d")
	assert.NoError(t, g.Run(context.Background()))
}

type failingUI struct{ scriptedUI }

func (f *failingUI) PromptBet(int) (int, error) { return 0, io.ErrUnexpectedEOF }

func TestRun_PropagatesUIErrors(t *testing.T) {
	g := newTestGame(t, &failingUI{}, "Th 9c 8s 7d")
	err := g.Run(context.Background())
	assert.True(t, errors.Is(err, io.ErrUnexpectedEOF))
}

func TestEventsPublished(t *testing.T) {
	ui := &scriptedUI{bets: []int{100}, actions: []Action{Hit, Stand}}
	g := newTestGame(t, ui, "Th 2c 9s 8d 5h")

	counts := make(map[EventType]int)
	g.EventBus().Subscribe(EventSubscriberFunc(func(e GameEvent) {
		counts[e.EventType()]++
		assert.False(t, e.Timestamp().IsZero())
	}))

	_, err := g.PlayRound(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, counts[EventTypeRoundStart])
	assert.Equal(t, 5, counts[EventTypeCardDealt])
	assert.Equal(t, 2, counts[EventTypePlayerAction])
	assert.Equal(t, 1, counts[EventTypeHandSettled])
	assert.Equal(t, 1, counts[EventTypeRoundEnd])
}

func TestTableViewHidesHoleCard(t *testing.T) {
	ui := &scriptedUI{bets: []int{10}, actions: []Action{Hit, Stand}}
	g := newTestGame(t, ui, "Th 2c 8s 7d 5h Ts")

	var hidden TableView
	g.EventBus().Subscribe(EventSubscriberFunc(func(e GameEvent) {
		if _, ok := e.(PlayerActionEvent); ok && hidden.Round == 0 {
			hidden = ui.lastView
		}
	}))
	_, err := g.PlayRound(context.Background())
	require.NoError(t, err)

	assert.True(t, hidden.DealerHidden)
	assert.Len(t, hidden.Dealer.Cards, 1)
	assert.Equal(t, 8, hidden.Dealer.Score)
	assert.Len(t, hidden.Hands, 1)

	assert.False(t, ui.lastView.DealerHidden)
	assert.Len(t, ui.lastView.Dealer.Cards, 3)
}

func TestPayout(t *testing.T) {
	tests := []struct {
		outcome Outcome
		bet     int
		want    int
	}{
		{BlackjackWin, 100, 150},
		{BlackjackWin, 5, 8}, // 7.5 -> 8
		{BlackjackWin, 3, 4}, // 4.5 -> 4
		{Win, 40, 40},
		{Lose, 40, -40},
		{BlackjackLose, 40, -40},
		{Push, 40, 0},
	}
	for _, tt := range tests {
		t.Run(tt.outcome.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, payout(tt.outcome, tt.bet))
		})
	}
}

// Long random run: cards are conserved within a shoe lifetime, every round's
// transfers add up to the balance change, and every hand settles once.
func TestConservationProperties(t *testing.T) {
	rng := randutil.New(2024)
	ui := &policyUI{bet: 10, roll: rng.IntN}
	shoe := deck.NewShoe(3, randutil.New(77))
	g := NewGame(ui,
		WithShoe(shoe),
		WithLogger(log.New(io.Discard)),
		WithClock(quartz.NewMock(t)),
		WithStartingBalance(1_000_000),
		WithWinThreshold(10_000_000),
	)
	g.StartSession()

	dealt := 0
	settledHands := 0
	g.EventBus().Subscribe(EventSubscriberFunc(func(e GameEvent) {
		switch ev := e.(type) {
		case CardDealtEvent:
			dealt++
			if shoe.Reshuffles() == 0 {
				assert.Equal(t, shoe.Size(), dealt+ev.Remaining, "cards out + cards left")
			}
		case HandSettledEvent:
			settledHands++
		}
	}))

	for range 400 {
		settledHands = 0
		res, err := g.PlayRound(context.Background())
		require.NoError(t, err)

		assert.Equal(t, res.Net(), res.Settled(), "round %d", res.Round)
		assert.Equal(t, len(res.Hands), settledHands, "round %d", res.Round)
		seen := make(map[int]bool)
		for _, hr := range res.Hands {
			assert.False(t, seen[hr.Index], "hand %d settled twice", hr.Index)
			seen[hr.Index] = true
			switch hr.Outcome {
			case BlackjackWin:
				assert.Equal(t, halfEven(float64(res.Bet)*1.5), hr.Delta)
			case Win:
				assert.Equal(t, res.Bet, hr.Delta)
			case Lose, BlackjackLose:
				assert.Equal(t, -res.Bet, hr.Delta)
			case Push:
				assert.Zero(t, hr.Delta)
			}
		}
	}
	assert.Positive(t, shoe.Reshuffles(), "400 rounds should run a 3-deck shoe dry")
}
