// File: arena/arena.go
package arena

import (
	"time"

	"github.com/lguibr/pongduel/game"
	"github.com/lguibr/pongduel/utils"
)

// Arena is the kinematic host the core runs against: two paddles, one ball
// and the serve timer. It reports discrete events and never decides score or
// phase.
type Arena struct {
	cfg utils.Config
	geo game.Geometry

	Ball  *Ball // nil while waiting for a serve
	Left  *Paddle
	Right *Paddle

	serving bool
	serveIn time.Duration
	server  game.Side
}

func New(cfg utils.Config) *Arena {
	geo := game.NewGeometry(cfg)
	return &Arena{
		cfg:   cfg,
		geo:   geo,
		Left:  NewPaddle(game.Left, geo),
		Right: NewPaddle(game.Right, geo),
	}
}

func (a *Arena) Geometry() game.Geometry { return a.geo }

// Reset removes the ball and recenters both paddles.
func (a *Arena) Reset() {
	a.Ball = nil
	a.serving = false
	a.serveIn = 0
	center := a.geo.Field.CenterY()
	a.Left.Reset(center)
	a.Right.Reset(center)
}

// NeedsServe is true when no ball is in play and no serve is scheduled.
func (a *Arena) NeedsServe() bool {
	return a.Ball == nil && !a.serving
}

// ScheduleServe launches a ball from the field center toward the receiver
// once the serve delay has elapsed.
func (a *Arena) ScheduleServe(server game.Side) {
	a.Ball = nil
	a.serving = true
	a.serveIn = a.cfg.ServeDelay
	a.server = server
}

func (a *Arena) ServeIn() time.Duration {
	if !a.serving {
		return 0
	}
	return a.serveIn
}

func (a *Arena) serve() {
	direction := 1.0
	if a.server == game.Right {
		direction = -1.0
	}
	a.Ball = NewBall(
		a.geo.Field.CenterX(),
		a.geo.Field.CenterY(),
		direction*a.cfg.BallSpeed,
		0,
		a.geo.BallRadius,
	)
	a.serving = false
	a.serveIn = 0
}

// Step advances the world by dt with the given paddle commands and returns
// the events it produced, in the order they happened.
func (a *Arena) Step(dt time.Duration, left, right game.Command) []game.Event {
	seconds := dt.Seconds()
	var events []game.Event

	for _, step := range []struct {
		paddle *Paddle
		cmd    game.Command
	}{{a.Left, left}, {a.Right, right}} {
		step.paddle.Move(step.cmd, seconds, a.geo.PaddleMinY, a.geo.PaddleMaxY)
		step.paddle.Animate(float32(seconds))
	}

	if a.Ball == nil {
		if a.serving {
			a.serveIn -= dt
			if a.serveIn <= 0 {
				a.serve()
			}
		}
		return events
	}

	ball := a.Ball
	prevX, prevY := ball.X, ball.Y
	ball.Move(seconds)

	if ball.CollideWalls(a.geo.BallBounds) {
		events = append(events, game.Event{Kind: game.WallBounce})
	}

	for _, paddle := range []*Paddle{a.Left, a.Right} {
		if ball.CollidePaddle(paddle, a.geo.ContactX(paddle.Side), prevX, prevY, a.cfg.MaxBounceAngle) {
			paddle.Punch(a.cfg.PunchDistance, float32(a.cfg.PunchDuration.Seconds()))
			events = append(events, game.Event{Kind: game.PaddleHit, Side: paddle.Side})
		}
	}

	if scorer, ok := ball.CrossedGoal(a.geo.Field); ok {
		a.Ball = nil
		events = append(events, game.Event{Kind: game.GoalScored, Side: scorer})
		return events
	}

	ball.MaintainSpeed(a.cfg.BallSpeed, a.cfg.SpeedTolerance)
	return events
}

// Frame is the kinematic view handed to the core for the next tick.
func (a *Arena) Frame() game.Frame {
	frame := game.Frame{AIPaddleY: a.Right.Y}
	if a.Ball != nil {
		sample := a.Ball.Sample()
		frame.Ball = &sample
	}
	return frame
}

// Snapshot is a render-ready copy of the arena.
type Snapshot struct {
	Field   game.FieldBounds `json:"field"`
	Ball    *Ball            `json:"ball"`
	Left    Paddle           `json:"left"`
	Right   Paddle           `json:"right"`
	ServeIn float64          `json:"serveIn"`
}

func (a *Arena) Snapshot() Snapshot {
	snap := Snapshot{
		Field:   a.geo.Field,
		Left:    *a.Left,
		Right:   *a.Right,
		ServeIn: a.ServeIn().Seconds(),
	}
	snap.Left.punch = nil
	snap.Right.punch = nil
	if a.Ball != nil {
		ball := *a.Ball
		snap.Ball = &ball
	}
	return snap
}
