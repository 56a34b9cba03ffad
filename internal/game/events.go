package game

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/lox/blackjack-cli/internal/deck"
)

// EventType identifies a game event
type EventType string

const (
	EventTypeRoundStart   EventType = "round_start"
	EventTypeCardDealt    EventType = "card_dealt"
	EventTypePlayerAction EventType = "player_action"
	EventTypeInsurance    EventType = "insurance"
	EventTypeHandSettled  EventType = "hand_settled"
	EventTypeRoundEnd     EventType = "round_end"
	EventTypeSessionEnd   EventType = "session_end"
)

// String returns the string representation of the event type
func (et EventType) String() string {
	return string(et)
}

// GameEvent is anything published on the EventBus
type GameEvent interface {
	EventType() EventType
	Timestamp() time.Time
}

// RoundStartEvent is published before the bet is taken
type RoundStartEvent struct {
	SessionID string
	Round     int
	Balance   int
	timestamp time.Time
}

func (e RoundStartEvent) EventType() EventType { return EventTypeRoundStart }
func (e RoundStartEvent) Timestamp() time.Time { return e.timestamp }

// CardDealtEvent is published for every card leaving the shoe
type CardDealtEvent struct {
	Round     int
	ToDealer  bool
	Card      deck.Card
	Remaining int // cards left in the shoe
	timestamp time.Time
}

func (e CardDealtEvent) EventType() EventType { return EventTypeCardDealt }
func (e CardDealtEvent) Timestamp() time.Time { return e.timestamp }

// PlayerActionEvent is published once an action has been applied
type PlayerActionEvent struct {
	Round     int
	Hand      int
	Action    Action
	Bet       int // main bet after the action
	timestamp time.Time
}

func (e PlayerActionEvent) EventType() EventType { return EventTypePlayerAction }
func (e PlayerActionEvent) Timestamp() time.Time { return e.timestamp }

// InsuranceEvent is published when an offered side bet is decided
type InsuranceEvent struct {
	Round     int
	SideBet   int
	Outcome   InsuranceOutcome
	Delta     int
	timestamp time.Time
}

func (e InsuranceEvent) EventType() EventType { return EventTypeInsurance }
func (e InsuranceEvent) Timestamp() time.Time { return e.timestamp }

// HandSettledEvent is published once per player hand at settlement
type HandSettledEvent struct {
	Round     int
	Result    HandResult
	timestamp time.Time
}

func (e HandSettledEvent) EventType() EventType { return EventTypeHandSettled }
func (e HandSettledEvent) Timestamp() time.Time { return e.timestamp }

// RoundEndEvent is published after teardown with the full result
type RoundEndEvent struct {
	Result    *RoundResult
	timestamp time.Time
}

func (e RoundEndEvent) EventType() EventType { return EventTypeRoundEnd }
func (e RoundEndEvent) Timestamp() time.Time { return e.timestamp }

// SessionEndEvent is published when a session stops, terminal or not
type SessionEndEvent struct {
	SessionID string
	State     SessionState
	Rounds    int
	Balance   int
	timestamp time.Time
}

func (e SessionEndEvent) EventType() EventType { return EventTypeSessionEnd }
func (e SessionEndEvent) Timestamp() time.Time { return e.timestamp }

// EventSubscriber can subscribe to game events
type EventSubscriber interface {
	OnEvent(event GameEvent)
}

// EventSubscriberFunc adapts a function to EventSubscriber
type EventSubscriberFunc func(event GameEvent)

// OnEvent calls f(event)
func (f EventSubscriberFunc) OnEvent(event GameEvent) { f(event) }

// EventBus manages event publishing and subscription
type EventBus interface {
	Subscribe(subscriber EventSubscriber)
	Unsubscribe(subscriber EventSubscriber)
	Publish(event GameEvent)
}

// SimpleEventBus delivers events synchronously, in subscription order
type SimpleEventBus struct {
	subscribers []EventSubscriber
}

// NewEventBus creates a new event bus
func NewEventBus() EventBus {
	return &SimpleEventBus{
		subscribers: make([]EventSubscriber, 0),
	}
}

// Subscribe adds a subscriber to receive events
func (bus *SimpleEventBus) Subscribe(subscriber EventSubscriber) {
	bus.subscribers = append(bus.subscribers, subscriber)
}

// Unsubscribe removes a subscriber. Func subscribers are not comparable and
// cannot be removed.
func (bus *SimpleEventBus) Unsubscribe(subscriber EventSubscriber) {
	if _, ok := subscriber.(EventSubscriberFunc); ok {
		return
	}
	for i, sub := range bus.subscribers {
		if _, ok := sub.(EventSubscriberFunc); ok {
			continue
		}
		if sub == subscriber {
			bus.subscribers = append(bus.subscribers[:i], bus.subscribers[i+1:]...)
			break
		}
	}
}

// Publish sends an event to all subscribers
func (bus *SimpleEventBus) Publish(event GameEvent) {
	for _, subscriber := range bus.subscribers {
		subscriber.OnEvent(event)
	}
}

// EventLogger writes every event to a logger at debug level
type EventLogger struct {
	logger *log.Logger
}

// NewEventLogger creates an event logger
func NewEventLogger(logger *log.Logger) *EventLogger {
	return &EventLogger{logger: logger.WithPrefix("events")}
}

// OnEvent logs event with its fields
func (l *EventLogger) OnEvent(event GameEvent) {
	switch e := event.(type) {
	case RoundStartEvent:
		l.logger.Debug(e.EventType().String(), "session", e.SessionID, "round", e.Round, "balance", e.Balance)
	case CardDealtEvent:
		l.logger.Debug(e.EventType().String(), "round", e.Round, "dealer", e.ToDealer, "card", e.Card, "remaining", e.Remaining)
	case PlayerActionEvent:
		l.logger.Debug(e.EventType().String(), "round", e.Round, "hand", e.Hand, "action", e.Action, "bet", e.Bet)
	case InsuranceEvent:
		l.logger.Debug(e.EventType().String(), "round", e.Round, "sideBet", e.SideBet, "outcome", e.Outcome, "delta", e.Delta)
	case HandSettledEvent:
		l.logger.Debug(e.EventType().String(), "round", e.Round, "hand", e.Result.Index, "outcome", e.Result.Outcome, "delta", e.Result.Delta)
	case RoundEndEvent:
		l.logger.Debug(e.EventType().String(), "round", e.Result.Round, "net", e.Result.Net(), "duration", e.Result.Duration)
	case SessionEndEvent:
		l.logger.Debug(e.EventType().String(), "session", e.SessionID, "state", e.State, "rounds", e.Rounds, "balance", e.Balance)
	default:
		l.logger.Debug(event.EventType().String())
	}
}
