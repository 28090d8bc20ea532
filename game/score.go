// File: game/score.go
package game

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/lguibr/pongduel/utils"
)

// Side identifies a paddle. Left is the human player, Right the AI.
type Side int

const (
	Left Side = iota
	Right
)

func (s Side) String() string {
	if s == Left {
		return "left"
	}
	return "right"
}

func (s Side) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s Side) Opponent() Side {
	if s == Left {
		return Right
	}
	return Left
}

// Rules are the win condition and serve rotation of a match.
type Rules struct {
	WinThreshold  int
	WinMargin     int
	ServesPerTurn int
}

func RulesFromConfig(cfg utils.Config) Rules {
	return Rules{
		WinThreshold:  cfg.WinThreshold,
		WinMargin:     cfg.WinMargin,
		ServesPerTurn: cfg.ServesPerTurn,
	}
}

func (r Rules) Validate() error {
	var errs []error
	if r.WinThreshold <= 0 {
		errs = append(errs, fmt.Errorf("%w: win threshold must be > 0, got %d", utils.ErrInvalidConfig, r.WinThreshold))
	}
	if r.WinMargin <= 0 {
		errs = append(errs, fmt.Errorf("%w: win margin must be > 0, got %d", utils.ErrInvalidConfig, r.WinMargin))
	}
	if r.ServesPerTurn <= 0 {
		errs = append(errs, fmt.Errorf("%w: serves per turn must be > 0, got %d", utils.ErrInvalidConfig, r.ServesPerTurn))
	}
	return errors.Join(errs...)
}

// deuceFloor is the score both sides must hold for deuce: one point short
// of being able to close out the match with the required margin.
func (r Rules) deuceFloor() int {
	return r.WinThreshold - r.WinMargin + 1
}

// Score is the public view of a match score.
type Score struct {
	Left   int  `json:"left"`
	Right  int  `json:"right"`
	Deuce  bool `json:"deuce"`
	Server Side `json:"server"`
}

// Points returns side's points.
func (s Score) Points(side Side) int {
	if side == Left {
		return s.Left
	}
	return s.Right
}

// MatchStatus is returned from every goal.
type MatchStatus struct {
	Score  Score `json:"score"`
	Over   bool  `json:"over"`
	Winner Side  `json:"winner"`
}

// MatchState tracks points, deuce and serve rotation for one match. Points
// only increase until Reset.
type MatchState struct {
	rules      Rules
	rng        *rand.Rand
	score      Score
	serveCount int
}

// NewMatchState draws the first server from rng.
func NewMatchState(rules Rules, rng *rand.Rand) (*MatchState, error) {
	if err := rules.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		rng = utils.NewRand(0)
	}
	m := &MatchState{rules: rules, rng: rng}
	m.Reset()
	return m, nil
}

// OnGoal awards a point to side. Goals reported after the match is over are
// ignored so the final score stays intact until Reset.
func (m *MatchState) OnGoal(side Side) MatchStatus {
	if m.IsMatchOver() {
		return m.Status()
	}

	if side == Left {
		m.score.Left++
	} else {
		m.score.Right++
	}

	over := m.IsMatchOver()
	m.score.Deuce = !over && m.inDeuceRange()

	// Server switches every ServesPerTurn points, every point in deuce.
	m.serveCount++
	switchAfter := m.rules.ServesPerTurn
	if m.score.Deuce {
		switchAfter = 1
	}
	if m.serveCount >= switchAfter {
		m.score.Server = m.score.Server.Opponent()
		m.serveCount = 0
	}

	return m.Status()
}

func (m *MatchState) inDeuceRange() bool {
	floor := m.rules.deuceFloor()
	return m.score.Left >= floor && m.score.Right >= floor
}

func (m *MatchState) hasWon(side Side) bool {
	own := m.score.Points(side)
	opp := m.score.Points(side.Opponent())
	return own >= m.rules.WinThreshold && own-opp >= m.rules.WinMargin
}

// IsMatchOver reports whether either side has met the win condition.
func (m *MatchState) IsMatchOver() bool {
	return m.hasWon(Left) || m.hasWon(Right)
}

// Winner returns the winning side once the match is over.
func (m *MatchState) Winner() (Side, bool) {
	switch {
	case m.hasWon(Left):
		return Left, true
	case m.hasWon(Right):
		return Right, true
	}
	return Left, false
}

func (m *MatchState) Score() Score { return m.score }

func (m *MatchState) Status() MatchStatus {
	winner, over := m.Winner()
	return MatchStatus{Score: m.score, Over: over, Winner: winner}
}

// Reset zeroes both scores, clears deuce and draws a new first server.
func (m *MatchState) Reset() {
	server := Left
	if m.rng.Intn(2) == 1 {
		server = Right
	}
	m.score = Score{Server: server}
	m.serveCount = 0
}
