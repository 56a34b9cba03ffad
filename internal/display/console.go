// Package display is the line-oriented terminal front end. Console reads
// answers from an io.Reader and draws the table on an io.Writer, so it works
// the same on a terminal, a pipe or a test buffer.
package display

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/lox/blackjack-cli/internal/game"
)

// Console implements game.UI on plain streams
type Console struct {
	in     *bufio.Reader
	out    io.Writer
	render *Renderer
	logger *log.Logger
}

// ConsoleOption configures a Console
type ConsoleOption func(*consoleConfig)

type consoleConfig struct {
	format Format
	styles *Styles
	logger *log.Logger
}

// WithFormat sets the card format
func WithFormat(f Format) ConsoleOption {
	return func(c *consoleConfig) { c.format = f }
}

// WithStyles overrides the styles derived from the output stream
func WithStyles(s Styles) ConsoleOption {
	return func(c *consoleConfig) { c.styles = &s }
}

// WithLogger sets the logger for input handling
func WithLogger(logger *log.Logger) ConsoleOption {
	return func(c *consoleConfig) { c.logger = logger }
}

// NewConsole creates a console reading from in and writing to out
func NewConsole(in io.Reader, out io.Writer, opts ...ConsoleOption) *Console {
	cfg := &consoleConfig{format: FormatASCII, logger: log.New(io.Discard)}
	for _, opt := range opts {
		opt(cfg)
	}
	styles := NewStyles(out, true)
	if cfg.styles != nil {
		styles = *cfg.styles
	}

	return &Console{
		in:     bufio.NewReader(in),
		out:    out,
		render: NewRenderer(cfg.format, styles),
		logger: cfg.logger.WithPrefix("console"),
	}
}

// readLine returns the next trimmed input line. EOF and the quit commands
// give game.ErrQuit.
func (c *Console) readLine() (string, error) {
	line, err := c.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		if errors.Is(err, io.EOF) {
			return "", game.ErrQuit
		}
		return "", fmt.Errorf("read input: %w", err)
	}

	if IsQuit(line) {
		return "", game.ErrQuit
	}
	return strings.TrimSpace(line), nil
}

func (c *Console) printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}

func (c *Console) println(s string) {
	fmt.Fprintln(c.out, s)
}

func (c *Console) invalid(msg string) {
	c.println(c.render.styles.Error.Render(msg))
}

func (c *Console) PromptBet(max int) (int, error) {
	for {
		c.printf("Place your bet (1-%d, q to quit): ", max)
		line, err := c.readLine()
		if err != nil {
			return 0, err
		}

		bet, complaint := ParseBet(line, max)
		if complaint == "" {
			c.printf("Ok, you are betting %d credits.\n", bet)
			return bet, nil
		}
		c.logger.Debug("Rejected bet", "input", line, "max", max)
		c.invalid(complaint)
	}
}

func (c *Console) PromptInsurance() (bool, error) {
	return c.yesNo("Accept insurance? [y/n]: ")
}

func (c *Console) PromptRestart() (bool, error) {
	return c.yesNo("Do you want to play again? [y/n]: ")
}

func (c *Console) yesNo(prompt string) (bool, error) {
	for {
		c.printf("%s", prompt)
		line, err := c.readLine()
		if err != nil {
			return false, err
		}
		if answer, ok := ParseYesNo(line); ok {
			return answer, nil
		}
		c.invalid("Please answer y or n.")
	}
}

func (c *Console) PromptAction(hand int, legal []game.Action) (game.Action, error) {
	options := c.render.styles.Actions.Render(strings.Join(OptionNames(legal), ", "))

	for {
		c.printf("Options: %s\nWhat do you want to do? ", options)
		line, err := c.readLine()
		if err != nil {
			return 0, err
		}

		action, ok := ParseChoice(line, legal)
		if !ok {
			c.logger.Debug("Rejected action", "hand", hand, "input", line)
			c.invalid("Error! Invalid action.")
			continue
		}
		c.printf("(Your action was: %s)\n", action)
		return action, nil
	}
}

func (c *Console) ShowRound(round, balance int) {
	c.println("")
	c.println(c.render.styles.Header.Render("Let's Play Blackjack"))
	c.printf("Round %d\t\tBalance: %d credits\n", round, balance)
}

func (c *Console) ShowHiddenDealerHand(view game.TableView) {
	c.println(c.render.styles.Info.Render("======== [?] [ ] ========"))
	c.println(c.render.Table(view))
	c.println(c.render.styles.Info.Render("========================="))
}

func (c *Console) ShowAllHands(view game.TableView) {
	c.println(c.render.styles.Info.Render("========================="))
	c.println(c.render.Table(view))
	c.printf("Total bet: %d\n", view.Bet)
	c.println(c.render.styles.Info.Render("========================="))
}

func (c *Console) ShowScores(view game.TableView, hand int) {
	if hand < 0 || hand >= len(view.Hands) {
		return
	}
	if len(view.Hands) > 1 {
		c.printf("Your scores for hand #%d: %s\n", hand+1, c.render.Scores(view.Hands[hand]))
		return
	}
	c.printf("Your scores: %s\n", c.render.Scores(view.Hands[hand]))
}

func (c *Console) Announce(a game.Announcement) {
	c.println(c.render.Banner(a))
}
