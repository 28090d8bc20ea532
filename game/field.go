// File: game/field.go
package game

import (
	"github.com/lguibr/pongduel/utils"
)

// FieldBounds is the play-field rectangle. Coordinates grow right and down,
// so Top < Bottom and Left < Right. Top and Bottom are the reflection walls,
// Left and Right the goal lines.
type FieldBounds struct {
	Top    float64 `json:"top"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
	Right  float64 `json:"right"`
}

func (b FieldBounds) Span() float64    { return b.Bottom - b.Top }
func (b FieldBounds) Width() float64   { return b.Right - b.Left }
func (b FieldBounds) CenterY() float64 { return (b.Top + b.Bottom) / 2 }
func (b FieldBounds) CenterX() float64 { return (b.Left + b.Right) / 2 }

// Inset shrinks the walls by r. Used to turn wall lines into the lines a ball
// center of radius r reflects on.
func (b FieldBounds) Inset(r float64) FieldBounds {
	return FieldBounds{Top: b.Top + r, Bottom: b.Bottom - r, Left: b.Left + r, Right: b.Right - r}
}

func (b FieldBounds) Contains(x, y float64) bool {
	return x >= b.Left && x <= b.Right && y >= b.Top && y <= b.Bottom
}

// Geometry holds every derived line shared by the core and the host
// simulation, computed once from the config.
type Geometry struct {
	Field      FieldBounds `json:"field"`
	BallBounds FieldBounds `json:"-"` // lines the ball center reflects on
	BallRadius float64     `json:"ballRadius"`

	PaddleHalfHeight float64 `json:"paddleHalfHeight"`
	PaddleHalfWidth  float64 `json:"paddleHalfWidth"`
	LeftPaddleX      float64 `json:"leftPaddleX"`
	RightPaddleX     float64 `json:"rightPaddleX"`

	// Ball-center x at the moment it touches a paddle face.
	LeftContactX  float64 `json:"-"`
	RightContactX float64 `json:"-"`

	// Travel limits of a paddle center.
	PaddleMinY float64 `json:"-"`
	PaddleMaxY float64 `json:"-"`
}

func NewGeometry(cfg utils.Config) Geometry {
	field := FieldBounds{Top: 0, Bottom: cfg.FieldHeight, Left: 0, Right: cfg.FieldWidth}
	radius := cfg.BallSize / 2
	halfHeight := cfg.PaddleHeight / 2
	halfWidth := cfg.PaddleWidth / 2

	leftX := field.Left + cfg.PaddleInset
	rightX := field.Right - cfg.PaddleInset

	return Geometry{
		Field:            field,
		BallBounds:       field.Inset(radius),
		BallRadius:       radius,
		PaddleHalfHeight: halfHeight,
		PaddleHalfWidth:  halfWidth,
		LeftPaddleX:      leftX,
		RightPaddleX:     rightX,
		LeftContactX:     leftX + halfWidth + radius,
		RightContactX:    rightX - halfWidth - radius,
		PaddleMinY:       field.Top + halfHeight,
		PaddleMaxY:       field.Bottom - halfHeight,
	}
}

// ContactX returns the ball-center x at which side's paddle is touched.
func (g Geometry) ContactX(side Side) float64 {
	if side == Left {
		return g.LeftContactX
	}
	return g.RightContactX
}

// PaddleX returns the paddle center x of side.
func (g Geometry) PaddleX(side Side) float64 {
	if side == Left {
		return g.LeftPaddleX
	}
	return g.RightPaddleX
}

// ClampPaddle keeps a paddle center inside its travel limits.
func (g Geometry) ClampPaddle(y float64) float64 {
	return utils.Clamp(y, g.PaddleMinY, g.PaddleMaxY)
}
