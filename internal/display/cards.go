package display

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lox/blackjack-cli/internal/deck"
	"github.com/lox/blackjack-cli/internal/game"
)

// Format selects how cards are drawn
type Format int

const (
	// FormatASCII draws each card as a small box, side by side
	FormatASCII Format = iota
	// FormatText writes one "A card shows" line per card
	FormatText
)

func (f Format) String() string {
	if f == FormatText {
		return "text"
	}
	return "ascii"
}

// ParseFormat accepts "ascii" or "text"
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "ascii", "":
		return FormatASCII, nil
	case "text":
		return FormatText, nil
	default:
		return 0, fmt.Errorf("unknown card format %q (want ascii or text)", s)
	}
}

// Renderer turns cards and hands into styled strings
type Renderer struct {
	format Format
	styles Styles
}

// NewRenderer creates a card renderer
func NewRenderer(format Format, styles Styles) *Renderer {
	return &Renderer{format: format, styles: styles}
}

// Format returns the card format in use
func (r *Renderer) Format() Format { return r.format }

// Styles returns the styles the renderer draws with
func (r *Renderer) Styles() Styles { return r.styles }

// Card renders a card in short form, coloured by suit
func (r *Renderer) Card(c deck.Card) string {
	if c.IsRed() {
		return r.styles.RedCard.Render(c.String())
	}
	return r.styles.BlackCard.Render(c.String())
}

// Cards renders a row of cards. hidden adds a face-down card after them.
func (r *Renderer) Cards(cards []deck.Card, hidden bool) string {
	if r.format == FormatText {
		var b strings.Builder
		for _, c := range cards {
			fmt.Fprintf(&b, "\tA card shows: %s\n", r.suited(c, c.Describe()))
		}
		if hidden {
			b.WriteString("\tA card lies face down\n")
		}
		return strings.TrimSuffix(b.String(), "\n")
	}

	boxes := make([]string, 0, len(cards)+1)
	for _, c := range cards {
		boxes = append(boxes, r.box(c))
	}
	if hidden {
		boxes = append(boxes, faceDown)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, joinWithGap(boxes)...)
}

// Hand renders one hand view with a caption
func (r *Renderer) Hand(caption string, h game.HandView, hidden bool) string {
	var b strings.Builder
	b.WriteString(r.styles.HandInfo.Render(caption))
	b.WriteString("\n")
	b.WriteString(r.Cards(h.Cards, hidden))
	return b.String()
}

// Table renders the dealer and every player hand
func (r *Renderer) Table(v game.TableView) string {
	var b strings.Builder
	b.WriteString(r.Hand("Dealer's hand:", v.Dealer, v.DealerHidden))
	for i, h := range v.Hands {
		b.WriteString("\n")
		b.WriteString(r.Hand(handCaption(i, len(v.Hands)), h, false))
	}
	return b.String()
}

// Scores renders the possible totals of a hand, "2/12" style, with its
// state when it is bust or standing
func (r *Renderer) Scores(h game.HandView) string {
	parts := make([]string, len(h.Scores))
	for i, s := range h.Scores {
		parts[i] = fmt.Sprint(s)
	}
	out := strings.Join(parts, "/")
	switch {
	case h.Bust:
		out += " " + r.styles.Error.Render("[bust]")
	case h.Standing:
		out += " " + r.styles.Info.Render("[stand]")
	}
	return out
}

func (r *Renderer) suited(c deck.Card, s string) string {
	if c.IsRed() {
		return r.styles.RedCard.Render(s)
	}
	return r.styles.BlackCard.Render(s)
}

func (r *Renderer) box(c deck.Card) string {
	rank := c.Rank().String()
	suit := r.suited(c, c.Suit().String())
	return strings.Join([]string{
		"┌─────┐",
		fmt.Sprintf("│%-2s   │", rank),
		fmt.Sprintf("│  %s  │", suit),
		fmt.Sprintf("│   %2s│", rank),
		"└─────┘",
	}, "\n")
}

const faceDown = "┌─────┐\n│░░░░░│\n│░░?░░│\n│░░░░░│\n└─────┘"

func joinWithGap(boxes []string) []string {
	out := make([]string, 0, len(boxes)*2)
	for i, b := range boxes {
		if i > 0 {
			out = append(out, " ")
		}
		out = append(out, b)
	}
	return out
}

func handCaption(i, n int) string {
	if n == 1 {
		return "Your hand:"
	}
	return fmt.Sprintf("Your hand #%d:", i+1)
}
