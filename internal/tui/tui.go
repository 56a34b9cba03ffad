// Package tui is the full-screen terminal front end, built on Bubble Tea.
// The model owns the screen; Bridge adapts it to game.UI so the game can run
// on its own goroutine and block on prompts.
package tui

import (
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/lox/blackjack-cli/internal/display"
	"github.com/lox/blackjack-cli/internal/game"
)

const (
	inputBuffer     = 1
	testInputBuffer = 32
	sidebarWidth    = 28
)

// TUIModel is the Bubble Tea model for the blackjack table
type TUIModel struct {
	logger *log.Logger
	render *display.Renderer

	// UI components
	logViewport viewport.Model
	actionInput textinput.Model

	// State
	gameLog     []string
	answers     chan string
	quitSignal  chan bool
	done        chan struct{}
	closeOnce   sync.Once
	quitting    bool
	focusedPane int // 0 = log, 1 = input

	// Table state for the sidebar
	round   int
	balance int
	table   game.TableView
	prompt  string
	options []string

	// Dimensions
	width       int
	height      int
	initialized bool

	// Test mode
	testMode    bool
	capturedLog []string
}

// QuitMsg is a custom message to signal quit
type QuitMsg struct{}

// logMsg appends lines to the game log
type logMsg struct {
	lines []string
	bold  bool
}

// roundMsg updates the round header
type roundMsg struct {
	round   int
	balance int
}

// tableMsg replaces the sidebar's table snapshot
type tableMsg struct {
	view game.TableView
}

// promptMsg sets the question shown above the input. An empty prompt means
// the game is not waiting for the player.
type promptMsg struct {
	prompt  string
	options []string
}

// NewTUIModel creates a new TUI model
func NewTUIModel(logger *log.Logger, render *display.Renderer) *TUIModel {
	return NewTUIModelWithOptions(logger, render, false)
}

// NewTUIModelWithOptions creates a new TUI model with test mode option. In
// test mode nothing is drawn and log entries are captured for assertions.
func NewTUIModelWithOptions(logger *log.Logger, render *display.Renderer, testMode bool) *TUIModel {
	// Properly sized when WindowSizeMsg arrives
	vp := viewport.New(10, 5)
	vp.SetContent("")

	ti := textinput.New()
	ti.Placeholder = "Enter to continue, 'quit' to exit"
	ti.Focus()
	ti.CharLimit = 40
	ti.Width = 40
	ti.PromptStyle = PromptStyle
	ti.TextStyle = InputTextStyle
	ti.Prompt = "> "

	buffer := inputBuffer
	if testMode {
		buffer = testInputBuffer
	}

	return &TUIModel{
		logger:      logger.WithPrefix("tui"),
		render:      render,
		logViewport: vp,
		actionInput: ti,
		gameLog:     []string{},
		answers:     make(chan string, buffer),
		quitSignal:  make(chan bool, 1),
		done:        make(chan struct{}),
		focusedPane: 1,
		testMode:    testMode,
		capturedLog: []string{},
	}
}

// Init initializes the TUI model
func (m *TUIModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.listenForQuit())
}

// listenForQuit returns a command that listens for quit signals
func (m *TUIModel) listenForQuit() tea.Cmd {
	return func() tea.Msg {
		<-m.quitSignal
		return QuitMsg{}
	}
}

// Update handles messages in the TUI
func (m *TUIModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case QuitMsg:
		m.quit()
		return m, tea.Sequence(tea.ClearScreen, tea.Quit)

	case logMsg:
		for _, line := range msg.lines {
			if msg.bold {
				m.AddBoldLogEntry(line)
			} else {
				m.AddLogEntry(line)
			}
		}
		return m, nil

	case roundMsg:
		m.round = msg.round
		m.balance = msg.balance
		return m, nil

	case tableMsg:
		m.table = msg.view
		m.balance = msg.view.Balance
		return m, nil

	case promptMsg:
		m.prompt = msg.prompt
		m.options = msg.options
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.logger.Debug("Updating dimensions", "width", m.width, "height", m.height)

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quit()
			return m, tea.Sequence(tea.ClearScreen, tea.Quit)
		case "tab":
			if m.focusedPane == 0 {
				m.focusedPane = 1
				m.actionInput.Focus()
			} else {
				m.focusedPane = 0
				m.actionInput.Blur()
			}
		case "enter":
			if m.focusedPane == 1 {
				m.processInput(m.actionInput.Value())
				m.actionInput.SetValue("")
			}
		case "up", "k":
			if m.focusedPane == 0 {
				m.logViewport.ScrollUp(1)
			}
		case "down", "j":
			if m.focusedPane == 0 {
				m.logViewport.ScrollDown(1)
			}
		case "pgup", "b":
			if m.focusedPane == 0 {
				m.logViewport.HalfPageUp()
			}
		case "pgdown", "f":
			if m.focusedPane == 0 {
				m.logViewport.HalfPageDown()
			}
		case "home", "g":
			if m.focusedPane == 0 {
				m.logViewport.GotoTop()
			}
		case "end", "G":
			if m.focusedPane == 0 {
				m.logViewport.GotoBottom()
			}
		}
	}

	var cmd tea.Cmd
	if m.focusedPane == 1 {
		m.actionInput, cmd = m.actionInput.Update(msg)
		cmds = append(cmds, cmd)
	}

	m.logViewport, cmd = m.logViewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// View renders the TUI
func (m *TUIModel) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	actionContent := m.renderActionPane()
	actionHeight := lipgloss.Height(actionContent)

	actionStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(BlurredBorderColor).
		Width(max(m.width-2, 1)).
		Height(max(actionHeight, 1))
	if m.focusedPane == 1 {
		actionStyle = actionStyle.BorderForeground(FocusedBorderColor)
	}
	actionPane := actionStyle.Render(actionContent)

	paneHeight := max(m.height-actionHeight-4, 1)

	sidebarContent := m.renderSidebarPane()
	width := max(sidebarWidth, lipgloss.Width(sidebarContent))
	sidebarPane := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(BlurredBorderColor).
		Width(width).
		Height(paneHeight).
		Render(sidebarContent)

	logWidth := max(m.width-width-4, 1)
	m.logViewport.SetContent(m.renderLogPane())
	m.logViewport.Width = logWidth
	m.logViewport.Height = paneHeight

	if !m.initialized && logWidth > 1 && paneHeight > 1 {
		m.logViewport.GotoBottom()
		m.initialized = true
	}

	logStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(BlurredBorderColor).
		Width(logWidth).
		Height(paneHeight)
	if m.focusedPane == 0 {
		logStyle = logStyle.BorderForeground(FocusedBorderColor)
	}
	logPane := logStyle.Render(m.logViewport.View())

	topRow := lipgloss.JoinHorizontal(lipgloss.Top, logPane, sidebarPane)
	return lipgloss.JoinVertical(lipgloss.Top, topRow, actionPane)
}

func (m *TUIModel) renderLogPane() string {
	return strings.Join(m.gameLog, "\n")
}

// renderSidebarPane shows the round, the money on the table and the scores
func (m *TUIModel) renderSidebarPane() string {
	styles := m.render.Styles()
	var content strings.Builder

	content.WriteString(SidebarTitleStyle.Render("Blackjack"))
	content.WriteString("\n\n")
	if m.round > 0 {
		fmt.Fprintf(&content, "Round:   %d\n", m.round)
	}
	content.WriteString(styles.Warning.Render(fmt.Sprintf("Balance: %d", m.balance)))
	content.WriteString("\n")
	if m.table.Bet > 0 {
		fmt.Fprintf(&content, "Bet:     %d\n", m.table.Bet)
	}
	if m.table.SideBet > 0 {
		fmt.Fprintf(&content, "Insured: %d\n", m.table.SideBet)
	}

	if len(m.table.Dealer.Cards) > 0 {
		content.WriteString("\n")
		content.WriteString(styles.HandInfo.Render("Dealer"))
		content.WriteString("\n  ")
		for _, c := range m.table.Dealer.Cards {
			content.WriteString(m.render.Card(c))
			content.WriteString(" ")
		}
		if m.table.DealerHidden {
			content.WriteString("??")
		} else {
			content.WriteString("= " + m.render.Scores(m.table.Dealer))
		}
		content.WriteString("\n")
	}

	for i, h := range m.table.Hands {
		content.WriteString("\n")
		content.WriteString(styles.HandInfo.Render(fmt.Sprintf("Hand #%d", i+1)))
		content.WriteString("\n  ")
		for _, c := range h.Cards {
			content.WriteString(m.render.Card(c))
			content.WriteString(" ")
		}
		content.WriteString("= " + m.render.Scores(h))
		content.WriteString("\n")
	}

	return content.String()
}

// renderActionPane renders the prompt, the options and the input field
func (m *TUIModel) renderActionPane() string {
	styles := m.render.Styles()
	var content strings.Builder

	if m.prompt == "" {
		content.WriteString(styles.HandInfo.Render("Waiting..."))
		m.actionInput.Placeholder = "Enter to continue, 'quit' to exit"
	} else {
		content.WriteString(styles.HandInfo.Render(m.prompt))
		m.actionInput.Placeholder = "Type your answer, 'quit' to exit"
	}
	content.WriteString("\n")

	if len(m.options) > 0 {
		opts := make([]string, len(m.options))
		for i, o := range m.options {
			opts[i] = "[" + o + "]"
		}
		content.WriteString(styles.Actions.Render("Actions: " + strings.Join(opts, " ")))
		content.WriteString("\n")
	}

	content.WriteString(m.actionInput.View())
	content.WriteString("\n")

	if m.focusedPane == 0 {
		content.WriteString(HelpStyle.Render("Log focused: ↑↓ scroll, PgUp/PgDn half page, Home/End, Tab to input"))
	} else {
		content.WriteString(HelpStyle.Render("Tab to scroll log • Enter to submit • Ctrl+C to quit"))
	}

	return content.String()
}

// AddLogEntry adds an entry to the game log
func (m *TUIModel) AddLogEntry(entry string) {
	m.gameLog = append(m.gameLog, entry)

	if m.testMode {
		m.capturedLog = append(m.capturedLog, entry)
		return
	}

	m.logViewport.SetContent(strings.Join(m.gameLog, "\n"))
	if m.logViewport.Height > 0 && m.logViewport.Width > 0 {
		m.logViewport.GotoBottom()
	}
}

// AddBoldLogEntry adds a bold entry to the end of the game log
func (m *TUIModel) AddBoldLogEntry(entry string) {
	if m.testMode {
		m.gameLog = append(m.gameLog, entry)
		m.capturedLog = append(m.capturedLog, entry)
		return
	}
	m.AddLogEntry(lipgloss.NewStyle().Bold(true).Render(entry))
}

// ClearLog clears the game log
func (m *TUIModel) ClearLog() {
	m.gameLog = []string{}
	m.logViewport.SetContent("")
}

// processInput hands a typed line to whoever is waiting in WaitForInput.
// Input typed while nobody is waiting is dropped.
func (m *TUIModel) processInput(input string) {
	line := strings.TrimSpace(input)
	select {
	case m.answers <- line:
	default:
		m.logger.Debug("Dropping input, no prompt waiting", "input", line)
	}
}

// WaitForInput blocks until the player submits a line. It returns
// game.ErrQuit once the TUI has quit, and in test mode once the injected
// input runs out.
func (m *TUIModel) WaitForInput() (string, error) {
	if m.testMode {
		select {
		case line := <-m.answers:
			return line, nil
		default:
			return "", game.ErrQuit
		}
	}
	select {
	case line := <-m.answers:
		return line, nil
	case <-m.done:
		return "", game.ErrQuit
	}
}

// Done is closed when the TUI quits
func (m *TUIModel) Done() <-chan struct{} {
	return m.done
}

func (m *TUIModel) quit() {
	m.quitting = true
	m.closeOnce.Do(func() { close(m.done) })
}

// Stop releases any prompt still waiting for input. Use it once the program
// has exited by other means.
func (m *TUIModel) Stop() {
	m.quit()
}

// SendQuitSignal signals the TUI to quit gracefully
func (m *TUIModel) SendQuitSignal() {
	select {
	case m.quitSignal <- true:
	default:
		// Channel is full, quit signal already sent
	}
}

// GetCapturedLog returns the captured log entries (test mode only)
func (m *TUIModel) GetCapturedLog() []string {
	if !m.testMode {
		return nil
	}
	result := make([]string, len(m.capturedLog))
	copy(result, m.capturedLog)
	return result
}

// InjectInput queues a line as if the player typed it (test mode only)
func (m *TUIModel) InjectInput(lines ...string) error {
	if !m.testMode {
		return fmt.Errorf("input injection only available in test mode")
	}
	for _, line := range lines {
		select {
		case m.answers <- line:
		default:
			return fmt.Errorf("input channel full")
		}
	}
	return nil
}

// GetSidebarContent returns the rendered sidebar
func (m *TUIModel) GetSidebarContent() string {
	return m.renderSidebarPane()
}

// IsTestMode returns whether the TUI is in test mode
func (m *TUIModel) IsTestMode() bool {
	return m.testMode
}
