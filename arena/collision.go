// File: arena/collision.go
package arena

import (
	"math"

	"github.com/lguibr/pongduel/game"
	"github.com/lguibr/pongduel/utils"
)

// maxWallFolds bounds the reflections resolved in one step. A step long
// enough to need more is clamped onto the wall.
const maxWallFolds = 4

// CollideWalls mirrors the ball back inside bounds and reports whether it
// touched a wall.
func (ball *Ball) CollideWalls(bounds game.FieldBounds) bool {
	bounced := false
	for i := 0; i < maxWallFolds; i++ {
		switch {
		case ball.Y < bounds.Top:
			ball.Y = 2*bounds.Top - ball.Y
			ball.VY = math.Abs(ball.VY)
		case ball.Y > bounds.Bottom:
			ball.Y = 2*bounds.Bottom - ball.Y
			ball.VY = -math.Abs(ball.VY)
		default:
			return bounced
		}
		bounced = true
	}
	ball.Y = utils.Clamp(ball.Y, bounds.Top, bounds.Bottom)
	return bounced
}

// CollidePaddle checks whether the ball crossed the paddle's contact line
// while moving from prevX, prevY to its current position. On a hit the ball
// is mirrored back in front of the paddle and leaves at an angle
// proportional to how far from the paddle center it struck.
func (ball *Ball) CollidePaddle(paddle *Paddle, contactX, prevX, prevY, maxBounceAngle float64) bool {
	if paddle == nil {
		return false
	}

	approaching := ball.VX > 0
	if paddle.Side == game.Left {
		approaching = ball.VX < 0
	}
	if !approaching {
		return false
	}

	crossed := prevX <= contactX && ball.X >= contactX
	if paddle.Side == game.Left {
		crossed = prevX >= contactX && ball.X <= contactX
	}
	if !crossed {
		return false
	}

	frac := 1.0
	if dx := ball.X - prevX; math.Abs(dx) > utils.Epsilon {
		frac = (contactX - prevX) / dx
	}
	yAt := prevY + (ball.Y-prevY)*frac

	reach := paddle.HalfHeight + ball.Radius
	offset := yAt - paddle.Y
	if math.Abs(offset) > reach {
		return false
	}

	angle := utils.Clamp(offset/reach, -1, 1) * maxBounceAngle
	speed := ball.Speed()
	direction := -1.0
	if paddle.Side == game.Left {
		direction = 1.0
	}
	ball.VX = direction * speed * math.Cos(angle)
	ball.VY = speed * math.Sin(angle)
	ball.X = 2*contactX - ball.X
	return true
}

// CrossedGoal reports the side that scores when the ball center leaves the
// field through a goal line.
func (ball *Ball) CrossedGoal(field game.FieldBounds) (game.Side, bool) {
	switch {
	case ball.X < field.Left:
		return game.Right, true
	case ball.X > field.Right:
		return game.Left, true
	}
	return game.Left, false
}
