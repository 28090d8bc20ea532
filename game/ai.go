// File: game/ai.go
package game

import (
	"math"

	"github.com/lguibr/pongduel/utils"
)

// Direction is the movement requested for a paddle along its control axis.
type Direction int

const (
	Hold Direction = iota
	Up
	Down
)

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	}
	return "hold"
}

func (d Direction) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

// Command is what the host applies to a paddle for one tick.
type Command struct {
	Direction Direction `json:"direction"`
	Speed     float64   `json:"speed"`
}

// HoldCommand keeps the paddle still.
var HoldCommand = Command{Direction: Hold}

// Velocity returns the signed vertical velocity. Up moves toward Top, which
// is the smaller y.
func (c Command) Velocity() float64 {
	switch c.Direction {
	case Up:
		return -c.Speed
	case Down:
		return c.Speed
	}
	return 0
}

// AIParams are the controller's tuning knobs plus the field facts it needs.
type AIParams struct {
	MaxSpeed       float64 // hard cap on the commanded speed
	Deadzone       float64 // hold when this close to the target
	IdleSpeedRatio float64 // fraction of MaxSpeed used while recentering
	Tick           float64 // seconds per tick, used to avoid overshooting; 0 disables
	CenterY        float64
	MinY           float64 // paddle center travel limits
	MaxY           float64
}

// NewAIParams builds the controller parameters from config and geometry.
func NewAIParams(cfg utils.Config, geo Geometry) AIParams {
	return AIParams{
		MaxSpeed:       cfg.AIMaxSpeed,
		Deadzone:       cfg.AIDeadzone,
		IdleSpeedRatio: cfg.AIIdleSpeedRatio,
		Tick:           cfg.GameTickPeriod.Seconds(),
		CenterY:        geo.Field.CenterY(),
		MinY:           geo.PaddleMinY,
		MaxY:           geo.PaddleMaxY,
	}
}

// Decide returns the command moving a paddle at paddleY toward the
// intercept. With no imminent intercept the paddle drifts back to the field
// center at reduced speed. Decide keeps no state between calls.
func Decide(paddleY float64, intercept Intercept, p AIParams) Command {
	target := p.CenterY
	speed := p.MaxSpeed * p.IdleSpeedRatio
	if intercept.Imminent {
		target = intercept.Y
		speed = p.MaxSpeed
	}
	if p.MinY <= p.MaxY {
		target = utils.Clamp(target, p.MinY, p.MaxY)
	}

	diff := target - paddleY
	distance := math.Abs(diff)
	if !utils.IsFinite(diff) || distance <= p.Deadzone {
		return HoldCommand
	}

	if p.Tick > 0 {
		speed = math.Min(speed, distance/p.Tick)
	}
	speed = utils.Clamp(speed, 0, p.MaxSpeed)

	if diff < 0 {
		return Command{Direction: Up, Speed: speed}
	}
	return Command{Direction: Down, Speed: speed}
}
