// Package tui renders the live state of every in-flight connection attempt:
// pending/running/succeeded/failed/cancelled, one line per candidate,
// updated as the orchestrator and racer progress.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"racetcp/domain/dial"
)

var (
	pendingStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	runningStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("33"))
	succeededStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	failedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	cancelledStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Italic(true)
)

func styleFor(s dial.AttemptState) lipgloss.Style {
	switch s {
	case dial.Running:
		return runningStyle
	case dial.Succeeded:
		return succeededStyle
	case dial.Failed:
		return failedStyle
	case dial.Cancelled:
		return cancelledStyle
	default:
		return pendingStyle
	}
}

// AttemptUpdateMsg reports a state transition for one candidate, identified
// by its sockaddr (IPSockaddr.String()) since the orchestrator may reorder
// candidates internally via interleaving.
type AttemptUpdateMsg struct {
	Key   string
	State dial.AttemptState
	Err   error
}

// DoneMsg signals the race finished; the model stops and the program quits.
type DoneMsg struct {
	WinnerIndex int
}

type row struct {
	key   string
	addr  string
	state dial.AttemptState
	err   error
}

// Model is the Bubble Tea program driven by an external goroutine pumping
// AttemptUpdateMsg/DoneMsg through Program.Send as the orchestrator and racer
// progress.
type Model struct {
	rows        []row
	index       map[string]int
	spinner     spinner.Model
	winnerIndex int
	quitting    bool
}

func NewModel(addrs []dial.AddrCandidate) Model {
	rows := make([]row, len(addrs))
	index := make(map[string]int, len(addrs))
	for i, a := range addrs {
		key := a.Sockaddr.String()
		rows[i] = row{key: key, addr: fmt.Sprintf("%s (%s)", a.Sockaddr, a.Family), state: dial.Pending}
		index[key] = i
	}
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = runningStyle
	return Model{rows: rows, index: index, spinner: s, winnerIndex: -1}
}

func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.quitting = true
			return m, tea.Quit
		}
	case AttemptUpdateMsg:
		if i, ok := m.index[msg.Key]; ok {
			m.rows[i].state = msg.State
			m.rows[i].err = msg.Err
		}
		return m, nil
	case DoneMsg:
		m.quitting = true
		m.winnerIndex = msg.WinnerIndex
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) View() string {
	var b strings.Builder
	for i, r := range m.rows {
		marker := "-"
		if r.state == dial.Running {
			marker = m.spinner.View()
		} else if i == m.winnerIndex {
			marker = "*"
		}
		line := fmt.Sprintf("%s %-28s %s", marker, r.addr, r.state)
		if r.err != nil {
			line += fmt.Sprintf(" (%s)", r.err)
		}
		b.WriteString(styleFor(r.state).Render(line))
		b.WriteString("\n")
	}
	if m.quitting {
		b.WriteString("\n")
	}
	return b.String()
}
