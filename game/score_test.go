// File: game/score_test.go
package game

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lguibr/pongduel/utils"
)

var standardRules = Rules{WinThreshold: 11, WinMargin: 2, ServesPerTurn: 2}

func newTestMatchState(t *testing.T, rules Rules) *MatchState {
	t.Helper()
	m, err := NewMatchState(rules, utils.NewRand(1))
	require.NoError(t, err)
	return m
}

func scoreTo(m *MatchState, left, right int) {
	for m.Score().Left < left || m.Score().Right < right {
		if m.Score().Left < left {
			m.OnGoal(Left)
		}
		if m.Score().Right < right {
			m.OnGoal(Right)
		}
	}
}

func TestMatchState_WinByMargin(t *testing.T) {
	m := newTestMatchState(t, standardRules)

	scoreTo(m, 10, 10)
	assert.False(t, m.IsMatchOver())
	assert.True(t, m.Score().Deuce)

	status := m.OnGoal(Left)
	assert.Equal(t, 11, status.Score.Left)
	assert.Equal(t, 10, status.Score.Right)
	assert.False(t, status.Over, "11-10 does not meet the margin")
	assert.True(t, status.Score.Deuce)

	status = m.OnGoal(Left)
	assert.True(t, status.Over)
	assert.Equal(t, Left, status.Winner)
	assert.False(t, status.Score.Deuce)

	winner, ok := m.Winner()
	assert.True(t, ok)
	assert.Equal(t, Left, winner)
}

func TestMatchState_StraightWin(t *testing.T) {
	m := newTestMatchState(t, standardRules)
	for i := 0; i < 10; i++ {
		assert.False(t, m.OnGoal(Right).Over)
	}
	status := m.OnGoal(Right)
	assert.True(t, status.Over)
	assert.Equal(t, Right, status.Winner)
	assert.Equal(t, 11, status.Score.Right)
	assert.Equal(t, 0, status.Score.Left)
	assert.False(t, status.Score.Deuce)
}

func TestMatchState_DeuceHoldsThroughAdvantage(t *testing.T) {
	m := newTestMatchState(t, standardRules)
	scoreTo(m, 9, 10)
	assert.False(t, m.Score().Deuce, "9-10 is not deuce")

	m.OnGoal(Left)
	assert.True(t, m.Score().Deuce)
	m.OnGoal(Right) // 10-11 advantage right
	assert.True(t, m.Score().Deuce)
	assert.False(t, m.IsMatchOver())
	m.OnGoal(Left) // 11-11
	assert.True(t, m.Score().Deuce)
	m.OnGoal(Right)
	m.OnGoal(Right) // 11-13
	assert.True(t, m.IsMatchOver())
	winner, _ := m.Winner()
	assert.Equal(t, Right, winner)
}

func TestMatchState_IsMatchOverIsIdempotent(t *testing.T) {
	m := newTestMatchState(t, standardRules)
	scoreTo(m, 5, 3)
	for i := 0; i < 5; i++ {
		assert.False(t, m.IsMatchOver())
	}
	scoreTo(m, 11, 3)
	for i := 0; i < 5; i++ {
		assert.True(t, m.IsMatchOver())
	}
}

func TestMatchState_GoalsAfterMatchOverAreIgnored(t *testing.T) {
	m := newTestMatchState(t, standardRules)
	scoreTo(m, 11, 0)
	final := m.Score()

	status := m.OnGoal(Right)
	assert.Equal(t, final, status.Score)
	assert.True(t, status.Over)
	assert.Equal(t, Left, status.Winner)
}

func TestMatchState_ScoresOnlyIncrease(t *testing.T) {
	m := newTestMatchState(t, standardRules)
	rng := utils.NewRand(3)
	prev := m.Score()
	for !m.IsMatchOver() {
		side := Left
		if rng.Intn(2) == 1 {
			side = Right
		}
		m.OnGoal(side)
		cur := m.Score()
		assert.GreaterOrEqual(t, cur.Left, prev.Left)
		assert.GreaterOrEqual(t, cur.Right, prev.Right)
		assert.Equal(t, prev.Left+prev.Right+1, cur.Left+cur.Right)
		prev = cur
	}
}

func TestMatchState_Reset(t *testing.T) {
	m := newTestMatchState(t, standardRules)
	scoreTo(m, 10, 10)
	require.True(t, m.Score().Deuce)

	m.Reset()
	score := m.Score()
	assert.Equal(t, 0, score.Left)
	assert.Equal(t, 0, score.Right)
	assert.False(t, score.Deuce)
	assert.False(t, m.IsMatchOver())
}

func TestMatchState_ServeRotation(t *testing.T) {
	m := newTestMatchState(t, standardRules)
	first := m.Score().Server

	m.OnGoal(Left)
	assert.Equal(t, first, m.Score().Server, "server keeps two serves")
	m.OnGoal(Right)
	assert.Equal(t, first.Opponent(), m.Score().Server)
	m.OnGoal(Right)
	m.OnGoal(Right)
	assert.Equal(t, first, m.Score().Server)

	// During deuce the serve alternates every point.
	m.Reset()
	scoreTo(m, 10, 10)
	require.True(t, m.Score().Deuce)
	before := m.Score().Server
	m.OnGoal(Left)
	assert.Equal(t, before.Opponent(), m.Score().Server)
	m.OnGoal(Right)
	assert.Equal(t, before, m.Score().Server)
}

func TestMatchState_CustomRules(t *testing.T) {
	m := newTestMatchState(t, Rules{WinThreshold: 5, WinMargin: 1, ServesPerTurn: 1})
	scoreTo(m, 4, 4)
	assert.False(t, m.Score().Deuce, "margin 1 has no deuce until both reach 5")
	status := m.OnGoal(Right)
	assert.True(t, status.Over)
	assert.Equal(t, Right, status.Winner)
}

func TestRules_Validate(t *testing.T) {
	assert.NoError(t, standardRules.Validate())

	for _, rules := range []Rules{
		{WinThreshold: 0, WinMargin: 2, ServesPerTurn: 2},
		{WinThreshold: 11, WinMargin: 0, ServesPerTurn: 2},
		{WinThreshold: 11, WinMargin: -1, ServesPerTurn: 2},
		{WinThreshold: 11, WinMargin: 2, ServesPerTurn: 0},
	} {
		err := rules.Validate()
		assert.Error(t, err)
		assert.True(t, errors.Is(err, utils.ErrInvalidConfig))

		_, err = NewMatchState(rules, nil)
		assert.Error(t, err)
	}
}

func TestSide(t *testing.T) {
	assert.Equal(t, Right, Left.Opponent())
	assert.Equal(t, Left, Right.Opponent())
	assert.Equal(t, "left", Left.String())
	assert.Equal(t, "right", Right.String())
}
