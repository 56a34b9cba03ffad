package game

import "math"

// DealerStandsOn is the total at which the dealer stops drawing
const DealerStandsOn = 17

// settleIfDone settles the round the moment the last player hand stands.
// Each round settles at most once.
func (g *Game) settleIfDone() {
	if g.settled || !g.player.AllHandsStanding() {
		return
	}
	g.settled = true
	g.settle()
}

// settle compares every player hand to the dealer. The dealer only plays
// out for a live hand, and whatever it drew stays for the next hand.
func (g *Game) settle() {
	g.phase = Settlement
	dealerHand := g.dealer.Hand()
	hands := g.player.Hands()
	g.logger.Debug("Settlement", "round", g.round, "hands", len(hands), "bet", g.player.Bet())
	g.ui.ShowAllHands(g.view(false))

	for i, h := range hands {
		var dealerScore int
		if !h.IsBust() && dealerHand.Resolve() < DealerStandsOn {
			dealerScore = g.dealerPlays()
			g.ui.ShowAllHands(g.view(false))
		} else {
			dealerScore = dealerHand.Resolve()
		}

		outcome := g.compare(h, dealerHand, dealerScore)
		delta := payout(outcome, g.player.Bet())
		g.player.AddToBalance(delta)
		g.ui.Announce(outcome.Announcement())

		hr := HandResult{
			Index:     i,
			Cards:     h.Cards(),
			Score:     h.FinalScore(),
			Blackjack: g.player.HasBlackjack(h),
			Bust:      h.IsBust(),
			Outcome:   outcome,
			Delta:     delta,
		}
		g.result.Hands = append(g.result.Hands, hr)

		g.logger.Info("Hand settled",
			"round", g.round,
			"hand", i,
			"player", h.FinalScore(),
			"dealer", dealerHand.FinalScore(),
			"outcome", outcome,
			"delta", delta)
		g.publish(HandSettledEvent{Round: g.round, Result: hr})
	}
}

// dealerPlays draws until the dealer reaches 17 or busts and returns the
// resolved total (0 when bust)
func (g *Game) dealerPlays() int {
	g.phase = DealerPlay
	h := g.dealer.Hand()
	for {
		best := h.Resolve()
		switch {
		case best == 0:
			g.logger.Debug("Dealer bust", "round", g.round, "cards", h)
			return 0
		case best < DealerStandsOn:
			h.AddCard(g.deal(true))
		default:
			return best
		}
	}
}

// compare decides a hand. Blackjacks are checked first, then a bust player
// hand loses whatever the dealer did, then totals are compared with a
// bust dealer counting as 0.
func (g *Game) compare(h, dealerHand *Hand, dealerScore int) Outcome {
	playerBJ := g.player.HasBlackjack(h)
	dealerBJ := g.dealer.HasBlackjack(dealerHand)
	best := h.Resolve()

	switch {
	case playerBJ && !dealerBJ:
		return BlackjackWin
	case dealerBJ && !playerBJ:
		return BlackjackLose
	case best == 0:
		return Lose
	case best > dealerScore:
		return Win
	case best < dealerScore:
		return Lose
	default:
		return Push
	}
}

// payout returns the balance change for an outcome on bet
func payout(o Outcome, bet int) int {
	switch o {
	case BlackjackWin:
		return halfEven(float64(bet) * 1.5)
	case Win:
		return bet
	case Lose, BlackjackLose:
		return -bet
	default:
		return 0
	}
}

// halfEven rounds to the nearest integer, ties to even (2.5 -> 2, 3.5 -> 4)
func halfEven(x float64) int {
	return int(math.RoundToEven(x))
}

func (g *Game) publish(event GameEvent) {
	now := g.clock.Now()
	switch e := event.(type) {
	case RoundStartEvent:
		e.timestamp = now
		event = e
	case CardDealtEvent:
		e.timestamp = now
		event = e
	case PlayerActionEvent:
		e.timestamp = now
		event = e
	case InsuranceEvent:
		e.timestamp = now
		event = e
	case HandSettledEvent:
		e.timestamp = now
		event = e
	case RoundEndEvent:
		e.timestamp = now
		event = e
	case SessionEndEvent:
		e.timestamp = now
		event = e
	}
	g.bus.Publish(event)
}
