package game

import (
	"fmt"
	"strings"
)

// Action is a player decision on a single hand
type Action int

const (
	Hit Action = iota + 1
	Stand
	DoubleDown
	Split
)

// String returns the action as shown to players
func (a Action) String() string {
	switch a {
	case Hit:
		return "hit"
	case Stand:
		return "stand"
	case DoubleDown:
		return "double down"
	case Split:
		return "split"
	default:
		return "unknown"
	}
}

// ParseAction accepts the full names and the usual shorthands
func ParseAction(s string) (Action, error) {
	switch strings.Join(strings.Fields(strings.ToLower(s)), " ") {
	case "hit", "h":
		return Hit, nil
	case "stand", "s":
		return Stand, nil
	case "double down", "double", "doubledown", "dd", "d":
		return DoubleDown, nil
	case "split", "p":
		return Split, nil
	default:
		return 0, fmt.Errorf("unknown action %q", s)
	}
}

// LegalActions returns what may be done with h. Split is only offered for
// two cards of the same rank, so an unequal split can never be requested.
func LegalActions(h *Hand) []Action {
	actions := []Action{Hit, Stand, DoubleDown}
	if h.CanSplit() {
		actions = append(actions, Split)
	}
	return actions
}

// Phase is a step of the round state machine
type Phase int

const (
	Betting Phase = iota
	Dealt
	InsuranceOffer
	ActionLoop
	DealerPlay
	Settlement
	Teardown
)

func (p Phase) String() string {
	switch p {
	case Betting:
		return "betting"
	case Dealt:
		return "dealt"
	case InsuranceOffer:
		return "insurance"
	case ActionLoop:
		return "action"
	case DealerPlay:
		return "dealer"
	case Settlement:
		return "settlement"
	case Teardown:
		return "teardown"
	default:
		return "unknown"
	}
}

// SessionState tells whether a session can keep playing rounds
type SessionState int

const (
	Playing SessionState = iota
	GameOver
	EpicWin
)

func (s SessionState) String() string {
	switch s {
	case Playing:
		return "playing"
	case GameOver:
		return "game over"
	case EpicWin:
		return "epic win"
	default:
		return "unknown"
	}
}

// Outcome is how one player hand settled against the dealer
type Outcome int

const (
	Push Outcome = iota
	Win
	Lose
	BlackjackWin
	BlackjackLose
)

func (o Outcome) String() string {
	switch o {
	case Push:
		return "push"
	case Win:
		return "win"
	case Lose:
		return "lose"
	case BlackjackWin:
		return "blackjack win"
	case BlackjackLose:
		return "blackjack lose"
	default:
		return "unknown"
	}
}

// Announcement returns the message the UI shows for o
func (o Outcome) Announcement() Announcement {
	switch o {
	case Win:
		return AnnounceWin
	case Lose:
		return AnnounceLose
	case BlackjackWin:
		return AnnounceBlackjackWin
	case BlackjackLose:
		return AnnounceBlackjackLose
	default:
		return AnnouncePush
	}
}

// InsuranceOutcome records what happened to the side bet
type InsuranceOutcome int

const (
	NoInsurance InsuranceOutcome = iota
	InsuranceDeclined
	InsuranceWon
	InsuranceLost
)

func (i InsuranceOutcome) String() string {
	switch i {
	case NoInsurance:
		return "not offered"
	case InsuranceDeclined:
		return "declined"
	case InsuranceWon:
		return "won"
	case InsuranceLost:
		return "lost"
	default:
		return "unknown"
	}
}

// Announcement is one of the fixed messages the UI can be asked to show
type Announcement int

const (
	AnnounceWin Announcement = iota + 1
	AnnounceLose
	AnnouncePush
	AnnounceBlackjackWin
	AnnounceBlackjackLose
	AnnounceBust
	AnnounceInsuranceOffer
	AnnounceInsuranceWin
	AnnounceInsuranceLose
	AnnounceGameOver
	AnnounceEpicWin
)

func (a Announcement) String() string {
	switch a {
	case AnnounceWin:
		return "win"
	case AnnounceLose:
		return "lose"
	case AnnouncePush:
		return "push"
	case AnnounceBlackjackWin:
		return "blackjack_win"
	case AnnounceBlackjackLose:
		return "blackjack_lose"
	case AnnounceBust:
		return "bust"
	case AnnounceInsuranceOffer:
		return "insurance_offer"
	case AnnounceInsuranceWin:
		return "insurance_win"
	case AnnounceInsuranceLose:
		return "insurance_lose"
	case AnnounceGameOver:
		return "game_over"
	case AnnounceEpicWin:
		return "epic_win"
	default:
		return "unknown"
	}
}
