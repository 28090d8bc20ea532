package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lguibr/pongduel/room"
)

var (
	BorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62"))

	ScoreStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("170"))
	DeuceStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	OverlayStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("231"))
	BallStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("226"))
	HumanStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	AIStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	NetStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// Styled renders state for a color terminal at cols x rows.
func Styled(state room.State, cols, rows int) string {
	if cols < 1 || rows < 1 {
		return ""
	}
	lines, first, end := field(state, cols, rows)
	styled := make([]string, len(lines))
	for r, line := range lines {
		if r >= first && r < end {
			styled[r] = OverlayStyle.Render(line)
			continue
		}
		styled[r] = styleLine(line, cols)
	}

	header := ScoreStyle.Render(Scoreboard(state))
	if state.Score.Deuce {
		header = ScoreStyle.Render(strings.TrimSuffix(Scoreboard(state), "  (deuce)")) + "  " + DeuceStyle.Render("(deuce)")
	}
	body := BorderStyle.Render(strings.Join(styled, "\n"))
	return lipgloss.JoinVertical(lipgloss.Center, header, body)
}

// styleLine colors each glyph. Paddles left of the net are the human's.
func styleLine(line string, cols int) string {
	var b strings.Builder
	for c, ch := range []rune(line) {
		glyph := string(ch)
		switch ch {
		case ballChar:
			b.WriteString(BallStyle.Render(glyph))
		case paddleChar:
			if c < cols/2 {
				b.WriteString(HumanStyle.Render(glyph))
			} else {
				b.WriteString(AIStyle.Render(glyph))
			}
		case centerChar:
			b.WriteString(NetStyle.Render(glyph))
		default:
			b.WriteString(glyph)
		}
	}
	return b.String()
}
