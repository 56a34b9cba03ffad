package statistics

import (
	"fmt"
	"math"
	"sort"

	"github.com/lox/blackjack-cli/internal/game"
)

// Statistics aggregates round results. Net figures are in credits per round.
type Statistics struct {
	Rounds  int
	SumNet  float64
	SumNet2 float64   // Sum of squares for variance calculation
	Values  []float64 // Store all values for median/percentile calculation

	// Per hand outcomes; a split round contributes several hands
	Hands           int
	Wins            int
	Losses          int
	Pushes          int
	BlackjackWins   int
	BlackjackLosses int
	Busts           int
	HandNet         int

	// Actions
	Doubles int
	Splits  int

	// Insurance side bet
	InsuranceOffered int
	InsuranceTaken   int
	InsuranceWon     int
	InsuranceNet     int

	// Wagered is the final main bet of every settled hand plus side bets
	Wagered int
	AllNet  int // Total net for the ledger check

	MaxWin  int
	MaxLoss int
}

// Add incorporates a finished round
func (s *Statistics) Add(r *game.RoundResult) {
	net := r.Net()
	s.Rounds++
	s.SumNet += float64(net)
	s.SumNet2 += float64(net) * float64(net)
	s.Values = append(s.Values, float64(net))
	s.AllNet += net

	if net > s.MaxWin {
		s.MaxWin = net
	}
	if net < s.MaxLoss {
		s.MaxLoss = net
	}

	for _, h := range r.Hands {
		s.Hands++
		s.HandNet += h.Delta
		s.Wagered += r.Bet
		if h.Bust {
			s.Busts++
		}
		switch h.Outcome {
		case game.Win:
			s.Wins++
		case game.Lose:
			s.Losses++
		case game.Push:
			s.Pushes++
		case game.BlackjackWin:
			s.BlackjackWins++
		case game.BlackjackLose:
			s.BlackjackLosses++
		}
	}

	for _, a := range r.Actions {
		switch a.Action {
		case game.DoubleDown:
			s.Doubles++
		case game.Split:
			s.Splits++
		}
	}

	if r.Insurance != game.NoInsurance {
		s.InsuranceOffered++
	}
	if r.Insurance == game.InsuranceWon || r.Insurance == game.InsuranceLost {
		s.InsuranceTaken++
		s.Wagered += r.SideBet
	}
	if r.Insurance == game.InsuranceWon {
		s.InsuranceWon++
	}
	s.InsuranceNet += r.InsuranceDelta
}

// Merge folds other into s
func (s *Statistics) Merge(other *Statistics) {
	s.Rounds += other.Rounds
	s.SumNet += other.SumNet
	s.SumNet2 += other.SumNet2
	s.Values = append(s.Values, other.Values...)

	s.Hands += other.Hands
	s.Wins += other.Wins
	s.Losses += other.Losses
	s.Pushes += other.Pushes
	s.BlackjackWins += other.BlackjackWins
	s.BlackjackLosses += other.BlackjackLosses
	s.Busts += other.Busts
	s.HandNet += other.HandNet

	s.Doubles += other.Doubles
	s.Splits += other.Splits

	s.InsuranceOffered += other.InsuranceOffered
	s.InsuranceTaken += other.InsuranceTaken
	s.InsuranceWon += other.InsuranceWon
	s.InsuranceNet += other.InsuranceNet

	s.Wagered += other.Wagered
	s.AllNet += other.AllNet
	s.MaxWin = max(s.MaxWin, other.MaxWin)
	s.MaxLoss = min(s.MaxLoss, other.MaxLoss)
}

// Mean returns the arithmetic mean net result per round
func (s *Statistics) Mean() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return s.SumNet / float64(s.Rounds)
}

// Variance returns the sample variance of all results
func (s *Statistics) Variance() float64 {
	if s.Rounds < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.SumNet2 - float64(s.Rounds)*mean*mean) / float64(s.Rounds-1)
}

// StdDev returns the sample standard deviation of all results
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean
func (s *Statistics) StdError() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Rounds))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// Return is the net result per credit wagered (the player's edge)
func (s *Statistics) Return() float64 {
	if s.Wagered == 0 {
		return 0
	}
	return float64(s.AllNet) / float64(s.Wagered)
}

// WinRate returns the share of hands won, blackjacks included
func (s *Statistics) WinRate() float64 {
	if s.Hands == 0 {
		return 0
	}
	return float64(s.Wins+s.BlackjackWins) / float64(s.Hands)
}

// Median returns the median value of all results
func (s *Statistics) Median() float64 {
	return s.Percentile(0.5)
}

// Percentile returns the value at the given percentile (0.0 to 1.0)
func (s *Statistics) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1

	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// IsLedgerBalanced checks that hand and insurance transfers add up to the
// balance change
func (s *Statistics) IsLedgerBalanced() bool {
	return s.AllNet == s.HandNet+s.InsuranceNet
}

// Validate performs consistency checks on the aggregated data
func (s *Statistics) Validate() error {
	if !s.IsLedgerBalanced() {
		return fmt.Errorf("ledger mismatch: net=%d, hands=%d, insurance=%d",
			s.AllNet, s.HandNet, s.InsuranceNet)
	}

	if s.Rounds <= 0 {
		return fmt.Errorf("invalid rounds count: %d", s.Rounds)
	}

	if len(s.Values) != s.Rounds {
		return fmt.Errorf("values array length (%d) does not match rounds count (%d)",
			len(s.Values), s.Rounds)
	}

	outcomes := s.Wins + s.Losses + s.Pushes + s.BlackjackWins + s.BlackjackLosses
	if outcomes != s.Hands {
		return fmt.Errorf("outcome total (%d) does not match hands (%d)", outcomes, s.Hands)
	}

	if s.Hands < s.Rounds {
		return fmt.Errorf("fewer hands (%d) than rounds (%d)", s.Hands, s.Rounds)
	}

	if s.InsuranceWon > s.InsuranceTaken || s.InsuranceTaken > s.InsuranceOffered {
		return fmt.Errorf("insurance counts out of order: offered=%d taken=%d won=%d",
			s.InsuranceOffered, s.InsuranceTaken, s.InsuranceWon)
	}

	return nil
}
