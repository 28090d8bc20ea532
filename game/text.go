// File: game/text.go
package game

import "fmt"

// parseText returns the candidate whose String form equals text.
func parseText[T fmt.Stringer](text []byte, kind string, candidates ...T) (T, error) {
	for _, candidate := range candidates {
		if candidate.String() == string(text) {
			return candidate, nil
		}
	}
	var zero T
	return zero, fmt.Errorf("unknown %s %q", kind, text)
}

func (p *Phase) UnmarshalText(text []byte) (err error) {
	*p, err = parseText(text, "phase", Splash, Playing, Paused, RoundEnd)
	return err
}

func (e *PhaseEvent) UnmarshalText(text []byte) (err error) {
	*e, err = parseText(text, "phase event", StartRequested, PauseToggled, MatchEnded)
	return err
}

func (o *Outcome) UnmarshalText(text []byte) (err error) {
	*o, err = parseText(text, "outcome", Undecided, Victory, Defeat)
	return err
}

func (s *Side) UnmarshalText(text []byte) (err error) {
	*s, err = parseText(text, "side", Left, Right)
	return err
}

func (d *Direction) UnmarshalText(text []byte) (err error) {
	*d, err = parseText(text, "direction", Hold, Up, Down)
	return err
}

func (k *EventKind) UnmarshalText(text []byte) (err error) {
	*k, err = parseText(text, "event kind", WallBounce, PaddleHit, GoalScored, PauseToggle, StartInput)
	return err
}
