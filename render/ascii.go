package render

import (
	"fmt"
	"math"
	"strings"

	"github.com/lguibr/pongduel/arena"
	"github.com/lguibr/pongduel/game"
	"github.com/lguibr/pongduel/room"
)

// Default grid size in characters. Terminal cells are about twice as tall as
// they are wide, so the default keeps the field's proportions.
const (
	DefaultCols = 64
	DefaultRows = 20
)

const (
	ballChar   = 'O'
	paddleChar = '#'
	centerChar = ':'
	emptyChar  = ' '
)

// grid is a character canvas mapped onto the play field.
type grid struct {
	cols, rows int
	field      game.FieldBounds
	cells      [][]rune
}

func newGrid(field game.FieldBounds, cols, rows int) *grid {
	cells := make([][]rune, rows)
	for r := range cells {
		cells[r] = make([]rune, cols)
		for c := range cells[r] {
			cells[r][c] = emptyChar
		}
	}
	return &grid{cols: cols, rows: rows, field: field, cells: cells}
}

func (g *grid) col(x float64) int {
	width := g.field.Width()
	if width <= 0 {
		return 0
	}
	return clampIndex(int(math.Floor((x-g.field.Left)/width*float64(g.cols))), g.cols)
}

func (g *grid) row(y float64) int {
	span := g.field.Span()
	if span <= 0 {
		return 0
	}
	return clampIndex(int(math.Floor((y-g.field.Top)/span*float64(g.rows))), g.rows)
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

func (g *grid) set(r, c int, ch rune) {
	if r >= 0 && r < g.rows && c >= 0 && c < g.cols {
		g.cells[r][c] = ch
	}
}

// text writes s centered on row r.
func (g *grid) text(r int, s string) {
	runes := []rune(s)
	start := (g.cols - len(runes)) / 2
	for i, ch := range runes {
		g.set(r, start+i, ch)
	}
}

func (g *grid) lines() []string {
	out := make([]string, g.rows)
	for r, row := range g.cells {
		out[r] = string(row)
	}
	return out
}

func (g *grid) drawCenterLine() {
	c := g.cols / 2
	for r := 0; r < g.rows; r += 2 {
		g.set(r, c, centerChar)
	}
}

func (g *grid) drawPaddle(p arena.Paddle) {
	c := g.col(p.X + p.PunchOffset)
	for r := g.row(p.Top()); r <= g.row(p.Bottom()-1e-9); r++ {
		g.set(r, c, paddleChar)
	}
}

func (g *grid) drawBall(b *arena.Ball) {
	if b == nil {
		return
	}
	g.set(g.row(b.Y), g.col(b.X), ballChar)
}

// overlay returns the message lines shown over the field in phase.
func overlay(state room.State) []string {
	switch state.Phase {
	case game.Splash:
		return []string{"Pong Duel", "", "Press SPACE to start"}
	case game.Paused:
		return []string{"PAUSED", "", "Press SPACE to continue"}
	case game.RoundEnd:
		title := "Defeat!"
		if state.Outcome == game.Victory {
			title = "Victory!"
		}
		return []string{
			title,
			fmt.Sprintf("Final Score: %d - %d", state.Score.Left, state.Score.Right),
			"",
			"Press SPACE to play again",
		}
	}
	return nil
}

// field draws the play field of state without a border. It also returns
// the rows covered by the overlay message, as [first, end).
func field(state room.State, cols, rows int) (lines []string, first, end int) {
	g := newGrid(state.Arena.Field, cols, rows)
	g.drawCenterLine()
	g.drawPaddle(state.Arena.Left)
	g.drawPaddle(state.Arena.Right)
	g.drawBall(state.Arena.Ball)

	msg := overlay(state)
	first = (rows - len(msg)) / 2
	for i, line := range msg {
		g.text(first+i, line)
	}
	return g.lines(), first, first + len(msg)
}

// Scoreboard is the one-line header above the field.
func Scoreboard(state room.State) string {
	board := fmt.Sprintf("You %2d : %-2d AI", state.Score.Left, state.Score.Right)
	if state.Score.Deuce {
		board += "  (deuce)"
	}
	return board
}

// Frame renders state as plain ASCII at the default size.
func Frame(state room.State) string {
	return FrameSize(state, DefaultCols, DefaultRows)
}

// FrameSize renders state on a cols x rows field inside an ASCII border,
// with the scoreboard on top.
func FrameSize(state room.State, cols, rows int) string {
	if cols < 1 || rows < 1 {
		return ""
	}
	var b strings.Builder
	b.WriteString(centered(Scoreboard(state), cols+2))
	b.WriteByte('\n')

	edge := "+" + strings.Repeat("-", cols) + "+\n"
	b.WriteString(edge)
	lines, _, _ := field(state, cols, rows)
	for _, line := range lines {
		b.WriteByte('|')
		b.WriteString(line)
		b.WriteString("|\n")
	}
	b.WriteString(edge)
	return b.String()
}

func centered(s string, width int) string {
	pad := (width - len([]rune(s))) / 2
	if pad <= 0 {
		return s
	}
	return strings.Repeat(" ", pad) + s
}
