// Package tui is a full screen front end for a counting session: a scrolling
// log of commands and their output, a sidebar with the count, and an action
// pane showing the round and the advice for each hand.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/lox/blackjack-advisor/internal/card"
	"github.com/lox/blackjack-advisor/internal/session"
)

// Exec runs one command line and returns whatever it printed. more is false
// once the user asked to leave.
type Exec func(line string) (output string, more bool, err error)

const (
	logPane = iota
	inputPane
)

// Model is the Bubble Tea model for a session
type Model struct {
	sess   *session.Session
	exec   Exec
	logger *log.Logger

	logViewport viewport.Model
	input       textinput.Model

	entries     []string
	focusedPane int
	quitting    bool

	width       int
	height      int
	initialized bool
}

// New creates a model that sends input lines to exec and reads the round
// back from sess
func New(sess *session.Session, exec Exec, logger *log.Logger) *Model {
	vp := viewport.New(10, 5)
	vp.SetContent("")

	ti := textinput.New()
	ti.Placeholder = "Cards (10 6), dealer 9, stand, split, undo, help"
	ti.Focus()
	ti.CharLimit = 100
	ti.Width = 60
	ti.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575")).Bold(true)
	ti.Prompt = "> "

	return &Model{
		sess:        sess,
		exec:        exec,
		logger:      logger.WithPrefix("tui"),
		logViewport: vp,
		input:       ti,
		focusedPane: inputPane,
	}
}

// Init starts the cursor blinking
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles key presses and resizes
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.logger.Debug("Resized", "width", m.width, "height", m.height)

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		case "tab":
			if m.focusedPane == logPane {
				m.focusedPane = inputPane
				m.input.Focus()
			} else {
				m.focusedPane = logPane
				m.input.Blur()
			}
		case "enter":
			if m.focusedPane == inputPane {
				line := strings.TrimSpace(m.input.Value())
				m.input.SetValue("")
				if !m.Submit(line) {
					return m, tea.Quit
				}
			}
		case "up", "k":
			if m.focusedPane == logPane {
				m.logViewport.ScrollUp(1)
			}
		case "down", "j":
			if m.focusedPane == logPane {
				m.logViewport.ScrollDown(1)
			}
		case "pgup":
			if m.focusedPane == logPane {
				m.logViewport.HalfPageUp()
			}
		case "pgdown":
			if m.focusedPane == logPane {
				m.logViewport.HalfPageDown()
			}
		case "home":
			if m.focusedPane == logPane {
				m.logViewport.GotoTop()
			}
		case "end":
			if m.focusedPane == logPane {
				m.logViewport.GotoBottom()
			}
		}
	}

	var cmd tea.Cmd
	if m.focusedPane == inputPane {
		m.input, cmd = m.input.Update(msg)
		cmds = append(cmds, cmd)
	}
	m.logViewport, cmd = m.logViewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// Submit runs a line as if it had been typed and reports whether the
// session continues
func (m *Model) Submit(line string) bool {
	if line == "" {
		return true
	}

	m.AddLogEntry(HeaderStyle.Render("> " + line))
	out, more, err := m.exec(line)
	if out = strings.TrimRight(out, "\n"); out != "" {
		m.AddLogEntry(out)
	}
	if err != nil {
		m.AddLogEntry(ErrorStyle.Render("Error: " + err.Error()))
	}
	if !more {
		m.quitting = true
	}
	return more
}

// AddLogEntry appends to the log and scrolls to the bottom
func (m *Model) AddLogEntry(entry string) {
	m.entries = append(m.entries, entry)
	m.logViewport.SetContent(strings.Join(m.entries, "\n"))
	if m.logViewport.Height > 0 && m.logViewport.Width > 0 {
		m.logViewport.GotoBottom()
	}
}

// Entries returns the log
func (m *Model) Entries() []string {
	return append([]string(nil), m.entries...)
}

// Quitting reports whether the user has left
func (m *Model) Quitting() bool {
	return m.quitting
}

// View renders the three panes
func (m *Model) View() string {
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
		BorderForeground(m.borderColor(inputPane)).
		Width(max(m.width-2, 1)).
		Height(max(actionHeight, 1))
	actionPane := actionStyle.Render(actionContent)

	sidebarContent := m.renderSidebarPane()
	sidebarWidth := max(lipgloss.Width(sidebarContent), 28)
	paneHeight := max(m.height-actionHeight-4, 1)

	sidebarPane := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#626262")).
		Width(sidebarWidth).
		Height(paneHeight).
		Render(sidebarContent)

	logWidth := max(m.width-sidebarWidth-4, 1)
	m.logViewport.Width = logWidth
	m.logViewport.Height = paneHeight
	if !m.initialized && logWidth > 1 && paneHeight > 1 {
		m.logViewport.GotoBottom()
		m.initialized = true
	}

	logPane := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.borderColor(logPane)).
		Width(logWidth).
		Height(paneHeight).
		Render(m.logViewport.View())

	topRow := lipgloss.JoinHorizontal(lipgloss.Top, logPane, sidebarPane)
	return lipgloss.JoinVertical(lipgloss.Top, topRow, actionPane)
}

func (m *Model) borderColor(pane int) lipgloss.Color {
	if m.focusedPane == pane {
		return lipgloss.Color("#04B575")
	}
	return lipgloss.Color("#626262")
}

func (m *Model) renderSidebarPane() string {
	snap := m.sess.Snapshot()

	var b strings.Builder
	b.WriteString(HeaderStyle.Render(" " + snap.System + " "))
	b.WriteString("\n\n")

	row := func(label, value string) {
		fmt.Fprintf(&b, "%s %s\n", LabelStyle.Render(fmt.Sprintf("%-11s", label)), value)
	}
	row("Running", fmt.Sprintf("%+.1f", snap.RunningCount))
	row("True", fmt.Sprintf("%+.2f", snap.TrueCount))
	row("Decks left", fmt.Sprintf("%.2f", snap.DecksRemaining))
	row("Seen", fmt.Sprintf("%d/%d", snap.CardsSeen, snap.TotalCards))
	row("Penetration", fmt.Sprintf("%.0f%%", snap.Penetration*100))
	row("Trend", snap.Trend.String())
	row("Advantage", fmt.Sprintf("%.0f%%", snap.Advantage*100))
	b.WriteString("\n")
	b.WriteString(AdviceStyle.Render(snap.Betting.Label))
	b.WriteString("\n")
	b.WriteString(InfoStyle.Render(snap.Betting.Explanation))

	return b.String()
}

func (m *Model) renderActionPane() string {
	snap := m.sess.Snapshot()

	var b strings.Builder
	dealer := "-"
	if len(snap.Dealer) > 0 {
		dealer = card.Join(snap.Dealer)
	}
	fmt.Fprintf(&b, "%s %s", LabelStyle.Render("Dealer"), dealer)
	if len(snap.Dealer) > 0 && snap.Dealer[0].IsAce() {
		if snap.Insurance {
			b.WriteString("   " + AdviceStyle.Render("take insurance"))
		} else {
			b.WriteString("   " + InfoStyle.Render("no insurance"))
		}
	}
	b.WriteString("\n")

	for _, h := range snap.Hands {
		style, marker := HandStyle, "  "
		if h.Current {
			style, marker = CurrentHandStyle, "> "
		}
		b.WriteString(style.Render(fmt.Sprintf("%sHand %d: %s", marker, h.Index+1, h.Display)))
		if h.Advice != nil {
			advice := AdviceStyle
			if h.Advice.Deviation {
				advice = DeviationStyle
			}
			label := h.Advice.Display
			if label == "" || !h.Advice.Action.Playable() {
				label = h.Advice.Action.String()
			}
			fmt.Fprintf(&b, "   %s %s", advice.Render(strings.ToUpper(label)), InfoStyle.Render(h.Advice.Explanation))
		}
		b.WriteString("\n")
	}

	b.WriteString(m.input.View())
	b.WriteString("\n")
	if m.focusedPane == logPane {
		b.WriteString(InfoStyle.Render("Log focused: ↑↓ scroll, PgUp/PgDn half page, Home/End, Tab to input"))
	} else {
		b.WriteString(InfoStyle.Render("Tab to scroll log • Enter to submit • Ctrl+C to quit"))
	}
	return b.String()
}
