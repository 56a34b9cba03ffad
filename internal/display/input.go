package display

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/lox/blackjack-cli/internal/game"
)

// IsQuit reports whether a typed line asks to leave the table
func IsQuit(line string) bool {
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "q", "quit", "exit":
		return true
	}
	return false
}

// ParseBet reads a bet in (0, max]. When the input can't be used it returns
// the complaint to show instead.
func ParseBet(line string, max int) (int, string) {
	bet, err := strconv.Atoi(strings.TrimSpace(line))
	switch {
	case err != nil:
		return 0, "Sorry, I didn't understand that. Try again."
	case bet <= 0:
		return 0, "A bet has to be at least 1 credit."
	case bet > max:
		return 0, fmt.Sprintf("That is more than your balance of %d. Try a lower amount.", max)
	}
	return bet, ""
}

// ParseYesNo reads y/yes/n/no. ok is false for anything else.
func ParseYesNo(line string) (answer, ok bool) {
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, true
	case "n", "no":
		return false, true
	}
	return false, false
}

// ParseChoice reads an action and checks it was offered
func ParseChoice(line string, legal []game.Action) (game.Action, bool) {
	action, err := game.ParseAction(line)
	if err != nil || !slices.Contains(legal, action) {
		return 0, false
	}
	return action, true
}

// OptionNames returns the display names of actions
func OptionNames(legal []game.Action) []string {
	names := make([]string, len(legal))
	for i, a := range legal {
		names[i] = a.String()
	}
	return names
}
