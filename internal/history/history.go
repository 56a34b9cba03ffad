// Package history keeps a record of every round played at the table and
// saves it as YAML.
package history

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"

	"github.com/lox/blackjack-cli/internal/deck"
	"github.com/lox/blackjack-cli/internal/fileutil"
	"github.com/lox/blackjack-cli/internal/game"
)

// History is the file format
type History struct {
	Sessions []Session `yaml:"sessions"`
}

// Session groups the rounds of one session
type Session struct {
	ID      string    `yaml:"id"`
	State   string    `yaml:"state,omitempty"`
	Balance int       `yaml:"balance"`
	Ended   time.Time `yaml:"ended,omitempty"`
	Rounds  []Round   `yaml:"rounds"`
}

// Round is one settled round
type Round struct {
	Round      int           `yaml:"round"`
	Time       time.Time     `yaml:"time"`
	Duration   time.Duration `yaml:"duration"`
	InitialBet int           `yaml:"initial_bet"`
	Bet        int           `yaml:"bet"`
	SideBet    int           `yaml:"side_bet,omitempty"`
	Insurance  string        `yaml:"insurance,omitempty"`
	Actions    []string      `yaml:"actions,flow,omitempty"`
	Hands      []Hand        `yaml:"hands"`
	Dealer     Hand          `yaml:"dealer"`
	Start      int           `yaml:"start_balance"`
	End        int           `yaml:"end_balance"`
}

// Hand is a player or dealer hand at settlement
type Hand struct {
	Cards   []string `yaml:"cards,flow"`
	Score   int      `yaml:"score"`
	Outcome string   `yaml:"outcome,omitempty"`
	Delta   int      `yaml:"delta,omitempty"`
}

// Recorder subscribes to a game's events and accumulates a History.
// It is safe to read from another goroutine while the game runs.
type Recorder struct {
	logger *log.Logger

	mu      sync.Mutex
	history History
}

// NewRecorder creates an empty recorder. A nil logger discards output.
func NewRecorder(logger *log.Logger) *Recorder {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Recorder{logger: logger.WithPrefix("history")}
}

// OnEvent implements game.EventSubscriber
func (r *Recorder) OnEvent(event game.GameEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch e := event.(type) {
	case game.RoundEndEvent:
		s := r.session(e.Result.SessionID)
		s.Rounds = append(s.Rounds, newRound(e.Result, e.Timestamp()))
		s.Balance = e.Result.EndBalance
	case game.SessionEndEvent:
		s := r.session(e.SessionID)
		s.State = e.State.String()
		s.Balance = e.Balance
		s.Ended = e.Timestamp()
	}
}

// session returns the entry for id, creating it if needed
func (r *Recorder) session(id string) *Session {
	for i := range r.history.Sessions {
		if r.history.Sessions[i].ID == id {
			return &r.history.Sessions[i]
		}
	}
	r.history.Sessions = append(r.history.Sessions, Session{ID: id})
	return &r.history.Sessions[len(r.history.Sessions)-1]
}

// History returns a copy of what has been recorded
func (r *Recorder) History() History {
	r.mu.Lock()
	defer r.mu.Unlock()

	h := History{Sessions: make([]Session, len(r.history.Sessions))}
	for i, s := range r.history.Sessions {
		s.Rounds = append([]Round(nil), s.Rounds...)
		h.Sessions[i] = s
	}
	return h
}

// Rounds returns the number of rounds recorded across all sessions
func (r *Recorder) Rounds() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, s := range r.history.Sessions {
		n += len(s.Rounds)
	}
	return n
}

// Encode writes the history as YAML
func (r *Recorder) Encode(w io.Writer) error {
	h := r.History()
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&h); err != nil {
		return fmt.Errorf("history: encode: %w", err)
	}
	return enc.Close()
}

// Save writes the history to path atomically
func (r *Recorder) Save(path string) error {
	if err := fileutil.WriteAtomic(path, 0o644, r.Encode); err != nil {
		return err
	}
	r.logger.Info("History saved", "path", path, "rounds", r.Rounds())
	return nil
}

// Load reads a history file written by Save
func Load(path string) (History, error) {
	f, err := os.Open(path)
	if err != nil {
		return History{}, fmt.Errorf("history: %w", err)
	}
	defer f.Close()

	var h History
	if err := yaml.NewDecoder(f).Decode(&h); err != nil {
		return History{}, fmt.Errorf("history: decode %s: %w", path, err)
	}
	return h, nil
}

func newRound(res *game.RoundResult, at time.Time) Round {
	round := Round{
		Round:      res.Round,
		Time:       at,
		Duration:   res.Duration,
		InitialBet: res.InitialBet,
		Bet:        res.Bet,
		SideBet:    res.SideBet,
		Dealer:     Hand{Cards: cardStrings(res.DealerCards), Score: res.DealerScore},
		Start:      res.StartBalance,
		End:        res.EndBalance,
	}
	if res.Insurance != game.NoInsurance {
		round.Insurance = res.Insurance.String()
	}
	for _, a := range res.Actions {
		round.Actions = append(round.Actions, fmt.Sprintf("%d:%s", a.Hand, a.Action))
	}
	for _, h := range res.Hands {
		round.Hands = append(round.Hands, Hand{
			Cards:   cardStrings(h.Cards),
			Score:   h.Score,
			Outcome: h.Outcome.String(),
			Delta:   h.Delta,
		})
	}
	return round
}

func cardStrings(cards []deck.Card) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.String()
	}
	return out
}
