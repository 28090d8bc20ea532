// File: room/session.go
package room

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/lguibr/pongduel/arena"
	"github.com/lguibr/pongduel/game"
	"github.com/lguibr/pongduel/utils"
)

// Action is a player input, already decoded from whatever the client sent.
type Action int

const (
	ActionNone Action = iota
	ActionUp
	ActionDown
	ActionStop
	ActionSpace
	ActionStart
	ActionPause
)

// ActionFromInput decodes a client key name.
func ActionFromInput(input string) (Action, error) {
	switch utils.InputFromString(input) {
	case utils.InputUp:
		return ActionUp, nil
	case utils.InputDown:
		return ActionDown, nil
	case utils.InputStop:
		return ActionStop, nil
	case utils.InputSpace:
		return ActionSpace, nil
	case utils.InputStart:
		return ActionStart, nil
	case utils.InputPause:
		return ActionPause, nil
	}
	return ActionNone, fmt.Errorf("%w: %q", ErrUnknownInput, input)
}

// Stats are counters for the current match.
type Stats struct {
	WallBounces  int `json:"wallBounces"`
	PaddleHits   int `json:"paddleHits"`
	Rally        int `json:"rally"`
	LongestRally int `json:"longestRally"`
}

// State is the render-ready view of a session.
type State struct {
	MatchID     string            `json:"matchId"`
	Tick        uint64            `json:"tick"`
	Phase       game.Phase        `json:"phase"`
	Outcome     game.Outcome      `json:"outcome"`
	Score       game.Score        `json:"score"`
	Arena       arena.Snapshot    `json:"arena"`
	Intercept   game.Intercept    `json:"intercept"`
	AI          game.Command      `json:"ai"`
	Human       game.Command      `json:"human"`
	Stats       Stats             `json:"stats"`
	Events      []game.Event      `json:"events,omitempty"`
	Transitions []game.Transition `json:"transitions,omitempty"`
}

// Session is one human-versus-AI game: the core match driven by the arena
// host. It is not safe for concurrent use.
type Session struct {
	cfg   utils.Config
	match *game.Match
	arena *arena.Arena

	human   game.Command
	pending []game.Event // inputs waiting for the next tick
	carried []game.Event // arena events waiting for the next tick

	tick  uint64
	last  game.TickResult
	seen  []game.Event
	stats Stats
}

func NewSession(cfg utils.Config, rng *rand.Rand) (*Session, error) {
	match, err := game.NewMatch(cfg, rng)
	if err != nil {
		return nil, fmt.Errorf("new session: %w", err)
	}
	s := &Session{
		cfg:   cfg,
		match: match,
		arena: arena.New(cfg),
		human: game.HoldCommand,
	}
	s.last = game.TickResult{Phase: match.Phase(), Score: match.Score(), Command: game.HoldCommand}
	return s, nil
}

func (s *Session) Phase() game.Phase { return s.match.Phase() }

// Press queues an action. Space starts from Splash and RoundEnd and toggles
// pause otherwise; paddle actions take effect on the next step.
func (s *Session) Press(action Action) {
	switch action {
	case ActionUp:
		s.human = game.Command{Direction: game.Up, Speed: s.cfg.PaddleSpeed}
	case ActionDown:
		s.human = game.Command{Direction: game.Down, Speed: s.cfg.PaddleSpeed}
	case ActionStop:
		s.human = game.HoldCommand
	case ActionStart:
		s.pending = append(s.pending, game.Event{Kind: game.StartInput})
	case ActionPause:
		s.pending = append(s.pending, game.Event{Kind: game.PauseToggle})
	case ActionSpace:
		switch s.match.Phase() {
		case game.Splash, game.RoundEnd:
			s.pending = append(s.pending, game.Event{Kind: game.StartInput})
		default:
			s.pending = append(s.pending, game.Event{Kind: game.PauseToggle})
		}
	}
}

// Advance runs one tick: the core reads the arena, then the arena steps with
// the resulting commands while the phase is Playing.
func (s *Session) Advance(dt time.Duration) game.TickResult {
	s.tick++

	frame := s.arena.Frame()
	frame.Events = append(frame.Events, s.carried...)
	frame.Events = append(frame.Events, s.pending...)
	s.carried = nil
	s.pending = nil

	result := s.match.Tick(frame)
	for _, t := range result.Transitions {
		if t.To == game.Playing && (t.From == game.Splash || t.From == game.RoundEnd) {
			s.arena.Reset()
			s.stats = Stats{}
			s.human = game.HoldCommand
		}
	}

	s.seen = nil
	if result.Phase == game.Playing {
		if s.arena.NeedsServe() {
			s.arena.ScheduleServe(result.Score.Server)
		}
		events := s.arena.Step(dt, s.human, result.Command)
		s.count(events)
		s.carried = events
		s.seen = events
	}

	s.last = result
	return result
}

func (s *Session) count(events []game.Event) {
	for _, ev := range events {
		switch ev.Kind {
		case game.WallBounce:
			s.stats.WallBounces++
		case game.PaddleHit:
			s.stats.PaddleHits++
			s.stats.Rally++
			if s.stats.Rally > s.stats.LongestRally {
				s.stats.LongestRally = s.stats.Rally
			}
		case game.GoalScored:
			s.stats.Rally = 0
		}
	}
}

func (s *Session) State() State {
	return State{
		MatchID:     s.last.MatchID,
		Tick:        s.tick,
		Phase:       s.last.Phase,
		Outcome:     s.last.Outcome,
		Score:       s.last.Score,
		Arena:       s.arena.Snapshot(),
		Intercept:   s.last.Intercept,
		AI:          s.last.Command,
		Human:       s.human,
		Stats:       s.stats,
		Events:      append([]game.Event(nil), s.seen...),
		Transitions: append([]game.Transition(nil), s.last.Transitions...),
	}
}
