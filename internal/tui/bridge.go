package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lox/blackjack-cli/internal/display"
	"github.com/lox/blackjack-cli/internal/game"
)

// Bridge implements game.UI on top of a TUIModel. The game calls it from
// its own goroutine; screen updates go through the Bubble Tea program so the
// model is only touched by the UI loop.
type Bridge struct {
	tui     *TUIModel
	program *tea.Program
	render  *display.Renderer

	// hands is the hand count of the last table shown
	hands int
}

// NewBridge creates a bridge. program may be nil for a test-mode model, in
// which case updates are applied to the model directly.
func NewBridge(tui *TUIModel, program *tea.Program) *Bridge {
	return &Bridge{
		tui:     tui,
		program: program,
		render:  tui.render,
	}
}

func (b *Bridge) send(msg tea.Msg) {
	if b.program == nil {
		b.tui.Update(msg)
		return
	}
	b.program.Send(msg)
}

func (b *Bridge) log(lines ...string) {
	b.send(logMsg{lines: lines})
}

// logBlock splits multi-line output, such as card boxes, into log entries
func (b *Bridge) logBlock(block string) {
	b.log(strings.Split(block, "\n")...)
}

func (b *Bridge) complain(msg string) {
	b.log(b.render.Styles().Error.Render(msg))
}

// ask shows prompt and waits for a line. Typing quit leaves the table.
func (b *Bridge) ask(prompt string, options []string) (string, error) {
	b.send(promptMsg{prompt: prompt, options: options})
	line, err := b.tui.WaitForInput()
	b.send(promptMsg{})
	if err != nil {
		return "", err
	}
	if display.IsQuit(line) {
		return "", game.ErrQuit
	}
	return line, nil
}

func (b *Bridge) PromptBet(max int) (int, error) {
	for {
		line, err := b.ask(fmt.Sprintf("Place your bet (1-%d)", max), nil)
		if err != nil {
			return 0, err
		}
		bet, complaint := display.ParseBet(line, max)
		if complaint == "" {
			b.log(fmt.Sprintf("Ok, you are betting %d credits.", bet))
			return bet, nil
		}
		b.complain(complaint)
	}
}

func (b *Bridge) PromptInsurance() (bool, error) {
	return b.yesNo("Accept insurance?")
}

func (b *Bridge) PromptRestart() (bool, error) {
	return b.yesNo("Do you want to play again?")
}

func (b *Bridge) yesNo(prompt string) (bool, error) {
	for {
		line, err := b.ask(prompt, []string{"y", "n"})
		if err != nil {
			return false, err
		}
		if answer, ok := display.ParseYesNo(line); ok {
			return answer, nil
		}
		b.complain("Please answer y or n.")
	}
}

func (b *Bridge) PromptAction(hand int, legal []game.Action) (game.Action, error) {
	prompt := "What do you want to do?"
	if b.hands > 1 {
		prompt = fmt.Sprintf("What do you want to do with hand #%d?", hand+1)
	}
	for {
		line, err := b.ask(prompt, display.OptionNames(legal))
		if err != nil {
			return 0, err
		}
		if action, ok := display.ParseChoice(line, legal); ok {
			b.log(fmt.Sprintf("(Your action was: %s)", action))
			return action, nil
		}
		b.complain("Error! Invalid action.")
	}
}

func (b *Bridge) ShowRound(round, balance int) {
	b.send(roundMsg{round: round, balance: balance})
	b.send(tableMsg{view: game.TableView{Round: round, Balance: balance}})
	b.log("")
	b.send(logMsg{lines: []string{fmt.Sprintf("Round %d • Balance: %d credits", round, balance)}, bold: true})
}

func (b *Bridge) ShowHiddenDealerHand(view game.TableView) {
	b.hands = len(view.Hands)
	b.send(tableMsg{view: view})
	b.logBlock(b.render.Table(view))
}

func (b *Bridge) ShowAllHands(view game.TableView) {
	b.hands = len(view.Hands)
	b.send(tableMsg{view: view})
	b.logBlock(b.render.Table(view))
	b.log(fmt.Sprintf("Total bet: %d", view.Bet))
}

func (b *Bridge) ShowScores(view game.TableView, hand int) {
	b.hands = len(view.Hands)
	b.send(tableMsg{view: view})
	if hand < 0 || hand >= len(view.Hands) {
		return
	}
	if len(view.Hands) > 1 {
		b.log(fmt.Sprintf("Your scores for hand #%d: %s", hand+1, b.render.Scores(view.Hands[hand])))
		return
	}
	b.log("Your scores: " + b.render.Scores(view.Hands[hand]))
}

func (b *Bridge) Announce(a game.Announcement) {
	b.logBlock(b.render.Banner(a))
}
