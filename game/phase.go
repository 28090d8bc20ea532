// File: game/phase.go
package game

import "fmt"

// Phase is the top-level game mode.
type Phase int

const (
	Splash Phase = iota
	Playing
	Paused
	RoundEnd
)

func (p Phase) String() string {
	switch p {
	case Splash:
		return "splash"
	case Playing:
		return "playing"
	case Paused:
		return "paused"
	case RoundEnd:
		return "roundEnd"
	}
	return fmt.Sprintf("phase(%d)", int(p))
}

func (p Phase) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

// PhaseEvent drives phase transitions.
type PhaseEvent int

const (
	StartRequested PhaseEvent = iota
	PauseToggled
	MatchEnded
)

func (e PhaseEvent) String() string {
	switch e {
	case StartRequested:
		return "start"
	case PauseToggled:
		return "pause"
	case MatchEnded:
		return "matchOver"
	}
	return fmt.Sprintf("event(%d)", int(e))
}

func (e PhaseEvent) MarshalText() ([]byte, error) { return []byte(e.String()), nil }

// Transition records one phase change.
type Transition struct {
	From  Phase      `json:"from"`
	To    Phase      `json:"to"`
	Event PhaseEvent `json:"event"`
}

// StartsNewMatch is true for the RoundEnd to Playing transition, the only
// point where the score is reset.
func (t Transition) StartsNewMatch() bool {
	return t.From == RoundEnd && t.To == Playing
}

type transitionKey struct {
	from  Phase
	event PhaseEvent
}

var transitions = map[transitionKey]Phase{
	{Splash, StartRequested}:   Playing,
	{Playing, PauseToggled}:    Paused,
	{Paused, PauseToggled}:     Playing,
	{Playing, MatchEnded}:      RoundEnd,
	{RoundEnd, StartRequested}: Playing,
}

// PhaseMachine holds the current phase. The zero value starts in Splash.
type PhaseMachine struct {
	phase Phase
}

func NewPhaseMachine() *PhaseMachine {
	return &PhaseMachine{phase: Splash}
}

func (m *PhaseMachine) Phase() Phase { return m.phase }

// Fire applies event. It returns false and leaves the phase untouched when
// the event has no transition from the current phase.
func (m *PhaseMachine) Fire(event PhaseEvent) (Transition, bool) {
	next, ok := transitions[transitionKey{m.phase, event}]
	if !ok {
		return Transition{}, false
	}
	t := Transition{From: m.phase, To: next, Event: event}
	m.phase = next
	return t, true
}

// Outcome is the RoundEnd result seen from the human (Left) side.
type Outcome int

const (
	Undecided Outcome = iota
	Victory
	Defeat
)

func (o Outcome) String() string {
	switch o {
	case Victory:
		return "victory"
	case Defeat:
		return "defeat"
	}
	return "undecided"
}

func (o Outcome) MarshalText() ([]byte, error) { return []byte(o.String()), nil }

func OutcomeFor(winner Side) Outcome {
	if winner == Left {
		return Victory
	}
	return Defeat
}
