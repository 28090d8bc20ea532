// File: game/match.go
package game

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/lguibr/pongduel/utils"
)

// EventKind names a discrete event reported by the host.
type EventKind int

const (
	WallBounce EventKind = iota
	PaddleHit
	GoalScored
	PauseToggle
	StartInput
)

func (k EventKind) String() string {
	switch k {
	case WallBounce:
		return "wallBounce"
	case PaddleHit:
		return "paddleHit"
	case GoalScored:
		return "goalScored"
	case PauseToggle:
		return "pauseToggle"
	case StartInput:
		return "startInput"
	}
	return fmt.Sprintf("eventKind(%d)", int(k))
}

func (k EventKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// Event is a discrete host event. Side is the scorer for GoalScored and the
// paddle for PaddleHit; other kinds ignore it.
type Event struct {
	Kind EventKind `json:"kind"`
	Side Side      `json:"side"`
}

// Frame is everything the host reports for one tick. Ball is nil while no
// ball is in play, for example during the serve delay.
type Frame struct {
	Ball      *KinematicSample
	AIPaddleY float64
	Events    []Event
}

// TickResult is everything the core hands back to the host for one tick.
type TickResult struct {
	Command     Command      `json:"command"`
	Phase       Phase        `json:"phase"`
	Outcome     Outcome      `json:"outcome"`
	Score       Score        `json:"score"`
	Intercept   Intercept    `json:"intercept"`
	MatchOver   bool         `json:"matchOver"`
	Transitions []Transition `json:"transitions,omitempty"`
	MatchID     string       `json:"matchId"`
}

// Match runs the per-tick pipeline: goals, phase evaluation, inputs and then
// prediction and AI decision. Goals go first so a point scored on the last
// playing step still counts when a pause arrives on the next tick.
//
// Match is not safe for concurrent use; the owner serializes calls to Tick.
type Match struct {
	geo       Geometry
	params    AIParams
	aimOffset float64
	tick      time.Duration
	reaction  time.Duration

	phases  *PhaseMachine
	state   *MatchState
	outcome Outcome

	entropy *ulid.MonotonicEntropy
	matchID string

	// The AI re-reads the ball every reaction period and steers toward the
	// held intercept in between.
	intercept     Intercept
	sinceSample   time.Duration
	sampledBefore bool
}

// NewMatch validates cfg and returns a match sitting in Splash.
func NewMatch(cfg utils.Config, rng *rand.Rand) (*Match, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		rng = utils.NewRand(time.Now().UnixNano())
	}
	state, err := NewMatchState(RulesFromConfig(cfg), rng)
	if err != nil {
		return nil, err
	}
	geo := NewGeometry(cfg)
	return &Match{
		geo:       geo,
		params:    NewAIParams(cfg, geo),
		aimOffset: cfg.AIAimOffset,
		tick:      cfg.GameTickPeriod,
		reaction:  cfg.AIReactionTime,
		phases:    NewPhaseMachine(),
		state:     state,
		entropy:   ulid.Monotonic(rng, 0),
	}, nil
}

func (m *Match) Geometry() Geometry { return m.geo }
func (m *Match) Phase() Phase       { return m.phases.Phase() }
func (m *Match) Score() Score       { return m.state.Score() }
func (m *Match) MatchID() string    { return m.matchID }
func (m *Match) Outcome() Outcome   { return m.outcome }

// Tick advances the core by one simulation step.
func (m *Match) Tick(frame Frame) TickResult {
	result := TickResult{}

	// 1. Goals. Only counted while playing.
	if m.phases.Phase() == Playing {
		for _, ev := range frame.Events {
			if ev.Kind != GoalScored {
				continue
			}
			if status := m.state.OnGoal(ev.Side); status.Over {
				break
			}
		}
	}

	// 2. Phase evaluation.
	if m.phases.Phase() == Playing && m.state.IsMatchOver() {
		if t, ok := m.phases.Fire(MatchEnded); ok {
			m.onTransition(t)
			result.Transitions = append(result.Transitions, t)
			result.MatchOver = true
		}
	}

	// 3. Inputs. The frame that ends the match leaves RoundEnd in place.
	for _, ev := range frame.Events {
		if result.MatchOver {
			break
		}
		var fired PhaseEvent
		switch ev.Kind {
		case StartInput:
			fired = StartRequested
		case PauseToggle:
			fired = PauseToggled
		default:
			continue
		}
		if t, ok := m.phases.Fire(fired); ok {
			m.onTransition(t)
			result.Transitions = append(result.Transitions, t)
		}
	}

	// 4. Prediction and decision.
	result.Command = HoldCommand
	if m.phases.Phase() == Playing {
		m.observe(frame.Ball)
		result.Intercept = m.intercept
		result.Command = Decide(frame.AIPaddleY, m.intercept, m.params)
	}

	result.Phase = m.phases.Phase()
	result.Outcome = m.outcome
	result.Score = m.state.Score()
	result.MatchID = m.matchID
	return result
}

// observe refreshes the held intercept once the reaction period has elapsed.
func (m *Match) observe(ball *KinematicSample) {
	if ball == nil {
		m.forgetIntercept()
		return
	}
	m.sinceSample += m.tick
	if m.sampledBefore && m.sinceSample < m.reaction {
		return
	}
	m.sinceSample = 0
	m.sampledBefore = true
	target := Predict(*ball, m.geo.BallBounds, m.geo.RightContactX)
	m.intercept = target.Aim(m.aimOffset, m.geo.PaddleMinY, m.geo.PaddleMaxY)
}

func (m *Match) forgetIntercept() {
	m.intercept = NoIntercept
	m.sinceSample = 0
	m.sampledBefore = false
}

func (m *Match) onTransition(t Transition) {
	if t.To != Playing {
		// Frozen world: nothing stale survives a pause or round end.
		m.forgetIntercept()
	}
	switch {
	case t.StartsNewMatch():
		m.state.Reset()
		m.outcome = Undecided
		m.matchID = m.newMatchID()
	case t.From == Splash && t.To == Playing:
		m.matchID = m.newMatchID()
	case t.To == RoundEnd:
		if winner, ok := m.state.Winner(); ok {
			m.outcome = OutcomeFor(winner)
		}
	}
}

func (m *Match) newMatchID() string {
	return ulid.MustNew(ulid.Now(), m.entropy).String()
}
