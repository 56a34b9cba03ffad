package display

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/lox/blackjack-cli/internal/game"
)

// Message returns the line shown for an announcement
func Message(a game.Announcement) string {
	switch a {
	case game.AnnounceWin:
		return "Player wins! Pays 1:1."
	case game.AnnounceLose:
		return "Dealer wins. Bet collected."
	case game.AnnounceBlackjackWin:
		return "Blackjack! Pays 3:2."
	case game.AnnounceBlackjackLose:
		return "Dealer has blackjack. Bet collected."
	case game.AnnouncePush:
		return "Push. Your bet comes back."
	case game.AnnounceBust:
		return "Bust!"
	case game.AnnounceInsuranceOffer:
		return "Dealer might have blackjack. Would you like insurance?"
	case game.AnnounceInsuranceWin:
		return "Dealer had blackjack. Insurance pays 2:1."
	case game.AnnounceInsuranceLose:
		return "No blackjack for the dealer. Insurance bet collected."
	case game.AnnounceGameOver:
		return "G A M E   O V E R"
	case game.AnnounceEpicWin:
		return "You broke the bank. An absolute legend!"
	default:
		return a.String()
	}
}

// Banner renders an announcement in a box, coloured by how good it is for
// the player
func (r *Renderer) Banner(a game.Announcement) string {
	var tone lipgloss.Style
	switch a {
	case game.AnnounceWin, game.AnnounceBlackjackWin, game.AnnounceInsuranceWin, game.AnnounceEpicWin:
		tone = r.styles.Success
	case game.AnnounceLose, game.AnnounceBlackjackLose, game.AnnounceBust,
		game.AnnounceInsuranceLose, game.AnnounceGameOver:
		tone = r.styles.Error
	case game.AnnouncePush:
		tone = r.styles.Info
	default:
		tone = r.styles.Warning
	}
	return r.styles.Banner.BorderForeground(tone.GetForeground()).Render(tone.Render(Message(a)))
}
