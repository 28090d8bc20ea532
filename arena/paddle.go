// File: arena/paddle.go
package arena

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/lguibr/pongduel/game"
)

type Paddle struct {
	Side       game.Side `json:"side"`
	X          float64   `json:"x"`
	Y          float64   `json:"y"`
	HalfWidth  float64   `json:"halfWidth"`
	HalfHeight float64   `json:"halfHeight"`
	Velocity   float64   `json:"velocity"`
	// PunchOffset is the visual x displacement toward the field after a hit.
	PunchOffset float64 `json:"punchOffset"`

	punch *gween.Tween
}

func NewPaddle(side game.Side, geo game.Geometry) *Paddle {
	return &Paddle{
		Side:       side,
		X:          geo.PaddleX(side),
		Y:          geo.Field.CenterY(),
		HalfWidth:  geo.PaddleHalfWidth,
		HalfHeight: geo.PaddleHalfHeight,
	}
}

func (paddle *Paddle) Top() float64    { return paddle.Y - paddle.HalfHeight }
func (paddle *Paddle) Bottom() float64 { return paddle.Y + paddle.HalfHeight }

// Move applies cmd for seconds and keeps the paddle inside [minY, maxY].
func (paddle *Paddle) Move(cmd game.Command, seconds, minY, maxY float64) {
	paddle.Velocity = cmd.Velocity()
	y := paddle.Y + paddle.Velocity*seconds
	if y < minY {
		y = minY
	}
	if y > maxY {
		y = maxY
	}
	paddle.Y = y
}

// Punch knocks the paddle toward the field and eases it back to rest over
// duration seconds. A punch already in flight is not restarted.
func (paddle *Paddle) Punch(distance float64, duration float32) {
	if paddle.punch != nil {
		return
	}
	if paddle.Side == game.Right {
		distance = -distance
	}
	paddle.PunchOffset = distance
	paddle.punch = gween.New(float32(distance), 0, duration, ease.OutQuad)
}

func (paddle *Paddle) IsPunching() bool { return paddle.punch != nil }

// Animate advances the punch tween.
func (paddle *Paddle) Animate(seconds float32) {
	if paddle.punch == nil {
		return
	}
	value, finished := paddle.punch.Update(seconds)
	paddle.PunchOffset = float64(value)
	if finished {
		paddle.PunchOffset = 0
		paddle.punch = nil
	}
}

func (paddle *Paddle) Reset(y float64) {
	paddle.Y = y
	paddle.Velocity = 0
	paddle.PunchOffset = 0
	paddle.punch = nil
}
