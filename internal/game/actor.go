package game

import "slices"

// Actor is the capability set shared by the player and the dealer
type Actor interface {
	Hands() []*Hand
	AddHand(h *Hand)
	RemoveHand(h *Hand) bool
	ClearHands()
	AllHandsStanding() bool
	HasBlackjack(h *Hand) bool
}

// seat holds the hands for either kind of actor
type seat struct {
	hands []*Hand
}

// Hands returns the actor's hands in play order. The slice is a copy; the
// hands are not.
func (s *seat) Hands() []*Hand {
	return slices.Clone(s.hands)
}

// AddHand appends a hand
func (s *seat) AddHand(h *Hand) {
	s.hands = append(s.hands, h)
}

// RemoveHand removes h, reporting whether it was held
func (s *seat) RemoveHand(h *Hand) bool {
	i := slices.Index(s.hands, h)
	if i < 0 {
		return false
	}
	s.hands = slices.Delete(s.hands, i, i+1)
	return true
}

// ClearHands discards every hand
func (s *seat) ClearHands() {
	s.hands = nil
}

// AllHandsStanding is true when every hand stands, and for no hands at all
func (s *seat) AllHandsStanding() bool {
	for _, h := range s.hands {
		if !h.IsStanding() {
			return false
		}
	}
	return true
}

// HasBlackjack requires a sole two-card hand totalling 21. A 21 made after
// a split never counts.
func (s *seat) HasBlackjack(h *Hand) bool {
	return h.Resolve() == Blackjack && len(s.hands) == 1 && s.hands[0].Len() == 2
}

// Player is the human (or bot) side of the table
type Player struct {
	seat
	balance int
	bet     int
	sideBet int
}

// NewPlayer creates a player with a starting balance
func NewPlayer(balance int) *Player {
	return &Player{balance: balance}
}

// Balance returns the current credits
func (p *Player) Balance() int { return p.balance }

// SetBalance overwrites the credits, used when a session restarts
func (p *Player) SetBalance(balance int) { p.balance = balance }

// AddToBalance applies delta without any checks; a round may leave the
// balance negative until teardown notices.
func (p *Player) AddToBalance(delta int) { p.balance += delta }

// PlaceBet sets the main bet. There is one bet per round, shared by every
// hand after a split.
func (p *Player) PlaceBet(bet int) { p.bet = bet }

// Bet returns the main bet
func (p *Player) Bet() int { return p.bet }

// PlaceSideBet sets the insurance bet
func (p *Player) PlaceSideBet(bet int) { p.sideBet = bet }

// SideBet returns the insurance bet
func (p *Player) SideBet() int { return p.sideBet }

// Dealer plays a single hand by fixed rules
type Dealer struct {
	seat
}

// NewDealer creates a dealer
func NewDealer() *Dealer {
	return &Dealer{}
}

// Hand returns the dealer's hand, or nil between rounds
func (d *Dealer) Hand() *Hand {
	if len(d.hands) == 0 {
		return nil
	}
	return d.hands[0]
}

// FirstCardOnly returns a throwaway one-card hand holding the up-card, for
// display while the hole card is hidden. The real hand is untouched.
func (d *Dealer) FirstCardOnly() *Hand {
	h := d.Hand()
	if h == nil {
		return nil
	}
	return &Hand{cards: h.cards[:1:1]}
}

var (
	_ Actor = (*Player)(nil)
	_ Actor = (*Dealer)(nil)
)
