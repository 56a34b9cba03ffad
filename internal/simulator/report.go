package simulator

import (
	"fmt"
	"io"
)

// Summary is the machine-readable form of a Report
type Summary struct {
	Strategy        string  `json:"strategy"`
	Sessions        int     `json:"sessions"`
	Rounds          int     `json:"rounds"`
	Hands           int     `json:"hands"`
	Seed            int64   `json:"seed"`
	Bet             int     `json:"bet"`
	Decks           int     `json:"decks"`
	Insurance       bool    `json:"insurance"`
	Net             int     `json:"net"`
	Wagered         int     `json:"wagered"`
	Return          float64 `json:"return"`
	Mean            float64 `json:"mean_per_round"`
	StdDev          float64 `json:"std_dev"`
	StdError        float64 `json:"std_error"`
	CI95Low         float64 `json:"ci95_low"`
	CI95High        float64 `json:"ci95_high"`
	Wins            int     `json:"wins"`
	Losses          int     `json:"losses"`
	Pushes          int     `json:"pushes"`
	BlackjackWins   int     `json:"blackjack_wins"`
	BlackjackLosses int     `json:"blackjack_losses"`
	Busts           int     `json:"busts"`
	Doubles         int     `json:"doubles"`
	Splits          int     `json:"splits"`
	InsuranceTaken  int     `json:"insurance_taken"`
	InsuranceWon    int     `json:"insurance_won"`
	InsuranceNet    int     `json:"insurance_net"`
	GameOvers       int     `json:"game_overs"`
	EpicWins        int     `json:"epic_wins"`
}

// Summary flattens the report for JSON output
func (r *Report) Summary() Summary {
	st := r.Stats
	low, high := st.ConfidenceInterval95()
	return Summary{
		Strategy:        r.Config.Strategy,
		Sessions:        len(r.Sessions),
		Rounds:          st.Rounds,
		Hands:           st.Hands,
		Seed:            r.Config.Seed,
		Bet:             r.Config.Bet,
		Decks:           r.Config.Decks,
		Insurance:       r.Config.Insurance,
		Net:             st.AllNet,
		Wagered:         st.Wagered,
		Return:          st.Return(),
		Mean:            st.Mean(),
		StdDev:          st.StdDev(),
		StdError:        st.StdError(),
		CI95Low:         low,
		CI95High:        high,
		Wins:            st.Wins,
		Losses:          st.Losses,
		Pushes:          st.Pushes,
		BlackjackWins:   st.BlackjackWins,
		BlackjackLosses: st.BlackjackLosses,
		Busts:           st.Busts,
		Doubles:         st.Doubles,
		Splits:          st.Splits,
		InsuranceTaken:  st.InsuranceTaken,
		InsuranceWon:    st.InsuranceWon,
		InsuranceNet:    st.InsuranceNet,
		GameOvers:       r.GameOvers(),
		EpicWins:        r.EpicWins(),
	}
}

// PrintSummary writes a human-readable summary of the report
func PrintSummary(w io.Writer, r *Report) {
	st := r.Stats
	low, high := st.ConfidenceInterval95()
	pct := func(n int) float64 {
		if st.Hands == 0 {
			return 0
		}
		return float64(n) / float64(st.Hands) * 100
	}

	fmt.Fprintf(w, "\n=== FINAL RESULTS: %s strategy ===\n", r.Config.Strategy)
	fmt.Fprintf(w, "Sessions: %d (%d game over, %d epic win)\n", len(r.Sessions), r.GameOvers(), r.EpicWins())
	fmt.Fprintf(w, "Rounds played: %d, hands settled: %d\n", st.Rounds, st.Hands)

	fmt.Fprintf(w, "\n=== STATISTICAL RESULTS ===\n")
	fmt.Fprintf(w, "Net: %+d credits on %d wagered (%.3f%% return)\n", st.AllNet, st.Wagered, st.Return()*100)
	fmt.Fprintf(w, "Mean: %.4f credits/round\n", st.Mean())
	fmt.Fprintf(w, "Median: %.4f credits/round\n", st.Median())
	fmt.Fprintf(w, "Std Dev: %.4f\n", st.StdDev())
	fmt.Fprintf(w, "Std Error: %.4f\n", st.StdError())
	fmt.Fprintf(w, "95%% CI: [%.4f, %.4f] credits/round\n", low, high)
	fmt.Fprintf(w, "Largest win: %+d, largest loss: %+d\n", st.MaxWin, st.MaxLoss)

	fmt.Fprintf(w, "\n=== OUTCOMES ===\n")
	fmt.Fprintf(w, "Wins: %d (%.1f%%)\n", st.Wins, pct(st.Wins))
	fmt.Fprintf(w, "Blackjacks: %d (%.1f%%)\n", st.BlackjackWins, pct(st.BlackjackWins))
	fmt.Fprintf(w, "Losses: %d (%.1f%%), %d to dealer blackjack\n", st.Losses+st.BlackjackLosses,
		pct(st.Losses+st.BlackjackLosses), st.BlackjackLosses)
	fmt.Fprintf(w, "Pushes: %d (%.1f%%)\n", st.Pushes, pct(st.Pushes))
	fmt.Fprintf(w, "Busts: %d (%.1f%%)\n", st.Busts, pct(st.Busts))
	fmt.Fprintf(w, "Doubles: %d, splits: %d\n", st.Doubles, st.Splits)

	if st.InsuranceOffered > 0 {
		fmt.Fprintf(w, "\n=== INSURANCE ===\n")
		fmt.Fprintf(w, "Offered: %d, taken: %d, won: %d, net: %+d\n",
			st.InsuranceOffered, st.InsuranceTaken, st.InsuranceWon, st.InsuranceNet)
	}
}
