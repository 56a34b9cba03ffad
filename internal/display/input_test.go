package display

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lox/blackjack-cli/internal/game"
)

func TestParseBet(t *testing.T) {
	tests := []struct {
		line      string
		want      int
		complaint string
	}{
		{"10", 10, ""},
		{"  100 ", 100, ""},
		{"ten", 0, "didn't understand"},
		{"0", 0, "at least 1"},
		{"-3", 0, "at least 1"},
		{"101", 0, "balance of 100"},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, complaint := ParseBet(tt.line, 100)
			assert.Equal(t, tt.want, got)
			if tt.complaint == "" {
				assert.Empty(t, complaint)
			} else {
				assert.Contains(t, complaint, tt.complaint)
			}
		})
	}
}

func TestParseChoice(t *testing.T) {
	legal := []game.Action{game.Hit, game.Stand}

	a, ok := ParseChoice("H", legal)
	assert.True(t, ok)
	assert.Equal(t, game.Hit, a)

	_, ok = ParseChoice("split", legal)
	assert.False(t, ok)

	_, ok = ParseChoice("", legal)
	assert.False(t, ok)
}

func TestParseYesNoAndQuit(t *testing.T) {
	ans, ok := ParseYesNo(" YES")
	assert.True(t, ans)
	assert.True(t, ok)

	_, ok = ParseYesNo("sure")
	assert.False(t, ok)

	assert.True(t, IsQuit("Quit\n"))
	assert.False(t, IsQuit("quitter"))
}
