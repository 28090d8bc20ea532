// File: game/predictor.go
package game

import (
	"math"

	"github.com/lguibr/pongduel/utils"
)

// KinematicSample is the ball position and velocity for the current tick.
type KinematicSample struct {
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
	VX float64 `json:"vx"`
	VY float64 `json:"vy"`
}

// Intercept is the predicted crossing of the ball with a paddle's control
// axis. The zero value means no intercept is imminent.
type Intercept struct {
	Y             float64 `json:"y"`
	TimeToArrival float64 `json:"timeToArrival"`
	Bounces       int     `json:"bounces"`
	ArrivalVY     float64 `json:"arrivalVy"` // vertical velocity when the ball arrives
	Imminent      bool    `json:"imminent"`
}

// NoIntercept is returned when the ball will not reach the target.
var NoIntercept = Intercept{}

// Predict extrapolates the ball to targetX, folding the straight-line
// position back into [bounds.Top, bounds.Bottom] as a triangle wave so any
// number of elastic wall reflections is handled in constant time.
func Predict(sample KinematicSample, bounds FieldBounds, targetX float64) Intercept {
	if !utils.IsFinite(sample.X, sample.Y, sample.VX, sample.VY, targetX) {
		return NoIntercept
	}
	if math.Abs(sample.VX) < utils.Epsilon {
		return NoIntercept
	}
	span := bounds.Span()
	if span < utils.Epsilon || !utils.IsFinite(bounds.Top, bounds.Bottom) {
		return NoIntercept
	}

	dx := targetX - sample.X
	if dx*sample.VX < 0 {
		// Receding.
		return NoIntercept
	}

	t := dx / sample.VX
	unfolded := sample.Y + sample.VY*t
	if !utils.IsFinite(t, unfolded) {
		return NoIntercept
	}

	y, bounces := fold(unfolded, bounds.Top, span)

	arrivalVY := sample.VY
	if bounces%2 == 1 {
		arrivalVY = -arrivalVY
	}

	return Intercept{
		Y:             y,
		TimeToArrival: t,
		Bounces:       bounces,
		ArrivalVY:     arrivalVY,
		Imminent:      true,
	}
}

// fold maps an unbounded coordinate onto [top, top+span] by mirroring at
// each wall and reports how many walls were crossed.
func fold(y, top, span float64) (float64, int) {
	period := 2 * span
	offset := y - top

	p := math.Mod(offset, period)
	if p < 0 {
		p += period
	}
	if p > span {
		p = period - p
	}

	crossings := math.Min(math.Abs(math.Floor(offset/span)), math.MaxInt32)

	folded := top + p
	// Guard against rounding just outside the walls.
	return utils.Clamp(folded, top, top+span), int(crossings)
}

// Aim shifts the target against the arrival direction so the ball meets the
// paddle off-center, which puts an angle on the return. The result stays in
// [lo, hi]. A non-imminent intercept is returned unchanged.
func (i Intercept) Aim(offset, lo, hi float64) Intercept {
	if !i.Imminent || offset == 0 {
		return i
	}
	if i.ArrivalVY > 0 {
		i.Y -= offset
	} else {
		i.Y += offset
	}
	i.Y = utils.Clamp(i.Y, lo, hi)
	return i
}
