package tui

import (
	"math/rand"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/lguibr/pongduel/render"
	"github.com/lguibr/pongduel/room"
	"github.com/lguibr/pongduel/utils"
)

// HoldTimeout stops the paddle when no repeat of a movement key arrives in
// time. Terminals only report key presses, never releases.
const HoldTimeout = 180 * time.Millisecond

type tickMsg time.Time

// releaseMsg fires HoldTimeout after a movement key. It is stale when another
// movement key arrived since.
type releaseMsg struct{ seq int }

// Model plays one local game against the AI.
type Model struct {
	session *room.Session
	period  time.Duration
	keys    KeyMap
	help    help.Model

	cols, rows int
	holdSeq    int
}

func New(cfg utils.Config, rng *rand.Rand) (Model, error) {
	session, err := room.NewSession(cfg, rng)
	if err != nil {
		return Model{}, err
	}
	return Model{
		session: session,
		period:  cfg.GameTickPeriod,
		keys:    DefaultKeyMap,
		help:    help.New(),
		cols:    render.DefaultCols,
		rows:    render.DefaultRows,
	}, nil
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.period, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		m.session.Advance(m.period)
		return m, m.tick()

	case releaseMsg:
		if msg.seq == m.holdSeq {
			m.session.Press(room.ActionStop)
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		return m.hold(room.ActionUp)
	case key.Matches(msg, m.keys.Down):
		return m.hold(room.ActionDown)
	case key.Matches(msg, m.keys.Space):
		m.session.Press(room.ActionSpace)
	case key.Matches(msg, m.keys.Pause):
		m.session.Press(room.ActionPause)
	}
	return m, nil
}

func (m Model) hold(action room.Action) (tea.Model, tea.Cmd) {
	m.session.Press(action)
	m.holdSeq++
	seq := m.holdSeq
	return m, tea.Tick(HoldTimeout, func(time.Time) tea.Msg { return releaseMsg{seq: seq} })
}

// resize fits the field to the window, leaving room for the border, the
// scoreboard and the help line.
func (m *Model) resize(width, height int) {
	m.cols = clamp(width-2, 16, render.DefaultCols*2)
	m.rows = clamp(height-5, 6, render.DefaultRows*2)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func (m Model) State() room.State { return m.session.State() }

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(render.Styled(m.session.State(), m.cols, m.rows))
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}
