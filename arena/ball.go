// File: arena/ball.go
package arena

import (
	"math"

	"github.com/lguibr/pongduel/game"
)

type Ball struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	VX     float64 `json:"vx"`
	VY     float64 `json:"vy"`
	Radius float64 `json:"radius"`
}

func NewBall(x, y, vx, vy, radius float64) *Ball {
	return &Ball{X: x, Y: y, VX: vx, VY: vy, Radius: radius}
}

func (ball *Ball) Move(seconds float64) {
	ball.X += ball.VX * seconds
	ball.Y += ball.VY * seconds
}

func (ball *Ball) Speed() float64 {
	return math.Hypot(ball.VX, ball.VY)
}

// Sample is the kinematic snapshot the core reads each tick.
func (ball *Ball) Sample() game.KinematicSample {
	return game.KinematicSample{X: ball.X, Y: ball.Y, VX: ball.VX, VY: ball.VY}
}

// MaintainSpeed renormalizes the velocity to target once it has drifted
// further than tolerance, keeping its direction.
func (ball *Ball) MaintainSpeed(target, tolerance float64) bool {
	speed := ball.Speed()
	if math.Abs(speed-target) <= tolerance || speed == 0 {
		return false
	}
	scale := target / speed
	ball.VX *= scale
	ball.VY *= scale
	return true
}

func (ball *Ball) ReflectVelocityX() { ball.VX = -ball.VX }
func (ball *Ball) ReflectVelocityY() { ball.VY = -ball.VY }
