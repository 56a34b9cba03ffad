package testing

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/stretchr/testify/require"

	"github.com/lox/blackjack-cli/internal/deck"
	"github.com/lox/blackjack-cli/internal/display"
	"github.com/lox/blackjack-cli/internal/game"
	"github.com/lox/blackjack-cli/internal/history"
	"github.com/lox/blackjack-cli/internal/randutil"
	"github.com/lox/blackjack-cli/internal/tui"
)

// TestScenario defines a complete scripted session
type TestScenario struct {
	Name            string
	Cards           string   // dealt first, in order: player, player, dealer, dealer, draws
	Input           []string // lines typed by the player, in order
	StartingBalance int
	ExpectedLog     []string // entries that must appear in the game log
	ExpectedSidebar []string // content that must appear in the sidebar
	WantBalance     int
	WantRounds      int // rounds in the recorded history
}

// TestTable wires a game to a test-mode TUI and a history recorder
type TestTable struct {
	Game     *game.Game
	TUI      *tui.TUIModel
	Recorder *history.Recorder
	t        *testing.T
}

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
}

func stackedShoe(cards string) *deck.Shoe {
	return deck.NewStackedShoe(1, randutil.New(7), deck.MustParseCards(cards)...)
}

func gameOptions(t *testing.T, sc TestScenario) []game.Option {
	opts := []game.Option{
		game.WithShoe(stackedShoe(sc.Cards)),
		game.WithLogger(quietLogger()),
		game.WithClock(quartz.NewMock(t)),
	}
	if sc.StartingBalance > 0 {
		opts = append(opts, game.WithStartingBalance(sc.StartingBalance))
	}
	return opts
}

// NewTestTable builds a table for sc with its input already queued
func NewTestTable(t *testing.T, sc TestScenario) *TestTable {
	t.Helper()

	render := display.NewRenderer(display.FormatText, display.PlainStyles())
	model := tui.NewTUIModelWithOptions(quietLogger(), render, true)
	require.NoError(t, model.InjectInput(sc.Input...))

	recorder := history.NewRecorder(quietLogger())
	g := game.NewGame(tui.NewBridge(model, nil), gameOptions(t, sc)...)
	g.EventBus().Subscribe(recorder)

	return &TestTable{Game: g, TUI: model, Recorder: recorder, t: t}
}

// Run plays sessions until the scripted input runs out or is quit
func (tt *TestTable) Run() {
	tt.t.Helper()
	require.NoError(tt.t, tt.Game.Run(context.Background()))
}

// AssertExpectedLog checks every entry appears somewhere in the game log
func (tt *TestTable) AssertExpectedLog(expected ...string) {
	tt.t.Helper()
	entries := strings.Join(tt.TUI.GetCapturedLog(), "\n")
	for _, entry := range expected {
		require.Contains(tt.t, entries, entry,
			"Expected log entry not found: %s\nActual log:\n%s", entry, entries)
	}
}

// AssertSidebar checks the sidebar shows every expected string
func (tt *TestTable) AssertSidebar(expected ...string) {
	tt.t.Helper()
	sidebar := tt.TUI.GetSidebarContent()
	for _, content := range expected {
		require.Contains(tt.t, sidebar, content,
			"Expected sidebar content not found: %s\nActual sidebar:\n%s", content, sidebar)
	}
}

// RunConsole plays sc through the line-oriented console and returns what
// it printed
func RunConsole(t *testing.T, sc TestScenario) (*game.Game, string) {
	t.Helper()

	var out bytes.Buffer
	input := strings.Join(sc.Input, "\n") + "\n"
	console := display.NewConsole(strings.NewReader(input), &out,
		display.WithFormat(display.FormatText),
		display.WithStyles(display.PlainStyles()))

	g := game.NewGame(console, gameOptions(t, sc)...)
	require.NoError(t, g.Run(context.Background()))
	return g, out.String()
}
