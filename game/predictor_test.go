// File: game/predictor_test.go
package game

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lguibr/pongduel/utils"
)

var testBounds = FieldBounds{Top: 0, Bottom: 10, Left: 0, Right: 16}

// simulateBounces walks the ball wall to wall, reflecting vy at each wall,
// until it reaches targetX.
func simulateBounces(s KinematicSample, b FieldBounds, targetX float64) (float64, int) {
	x, y, vx, vy := s.X, s.Y, s.VX, s.VY
	remaining := (targetX - x) / vx
	bounces := 0
	for remaining > 0 {
		var toWall float64
		switch {
		case vy > 0:
			toWall = (b.Bottom - y) / vy
		case vy < 0:
			toWall = (b.Top - y) / vy
		default:
			toWall = math.Inf(1)
		}
		if toWall >= remaining {
			y += vy * remaining
			break
		}
		y += vy * toWall
		remaining -= toWall
		vy = -vy
		bounces++
	}
	return y, bounces
}

func TestPredict_StraightLine(t *testing.T) {
	sample := KinematicSample{X: 2, Y: 5, VX: 4, VY: 1}
	got := Predict(sample, testBounds, 14)

	require.True(t, got.Imminent)
	assert.InDelta(t, 3.0, got.TimeToArrival, 1e-9)
	assert.InDelta(t, 8.0, got.Y, 1e-9)
	assert.Equal(t, 0, got.Bounces)
	assert.InDelta(t, 1.0, got.ArrivalVY, 1e-9)
}

func TestPredict_SingleBounceMirrorsOffWall(t *testing.T) {
	// Unfolded y is 12, two past the bottom wall, so the mirror is 8.
	sample := KinematicSample{X: 0, Y: 4, VX: 2, VY: 2}
	got := Predict(sample, testBounds, 8)

	require.True(t, got.Imminent)
	assert.InDelta(t, 8.0, got.Y, 1e-9)
	assert.Equal(t, 1, got.Bounces)
	assert.InDelta(t, -2.0, got.ArrivalVY, 1e-9)

	// Same off the top wall, ball moving left.
	sample = KinematicSample{X: 10, Y: 3, VX: -1, VY: -1}
	got = Predict(sample, testBounds, 5)
	require.True(t, got.Imminent)
	assert.InDelta(t, 2.0, got.Y, 1e-9)
	assert.Equal(t, 1, got.Bounces)
}

func TestPredict_MatchesBounceByBounceSimulation(t *testing.T) {
	for _, wantBounces := range []int{1, 2, 3, 4, 5, 7, 12} {
		for _, vy := range []float64{1, -1} {
			// Keep the landing point off the walls so the bounce count is unambiguous.
			travel := (float64(wantBounces) + 0.45) * testBounds.Span()
			sample := KinematicSample{X: 1, Y: 3, VX: 3, VY: vy * 3}
			targetX := sample.X + travel

			wantY, simulated := simulateBounces(sample, testBounds, targetX)
			got := Predict(sample, testBounds, targetX)

			require.True(t, got.Imminent)
			assert.InDelta(t, wantY, got.Y, 1e-6, "bounces=%d vy=%v", wantBounces, vy)
			assert.Equal(t, simulated, got.Bounces, "bounces=%d vy=%v", wantBounces, vy)
		}
	}
}

func TestPredict_InterceptStaysInsideBounds(t *testing.T) {
	rng := utils.NewRand(42)
	for i := 0; i < 5000; i++ {
		sample := KinematicSample{
			X:  rng.Float64() * testBounds.Width(),
			Y:  rng.Float64() * testBounds.Span(),
			VX: (rng.Float64()*2 - 1) * 50,
			VY: (rng.Float64()*2 - 1) * 500,
		}
		targetX := testBounds.Right
		if sample.VX < 0 {
			targetX = testBounds.Left
		}
		got := Predict(sample, testBounds, targetX)
		if !got.Imminent {
			continue
		}
		assert.GreaterOrEqual(t, got.Y, testBounds.Top)
		assert.LessOrEqual(t, got.Y, testBounds.Bottom)
	}
}

func TestPredict_NoIntercept(t *testing.T) {
	testCases := []struct {
		name    string
		sample  KinematicSample
		bounds  FieldBounds
		targetX float64
	}{
		{"zero vx", KinematicSample{X: 3, Y: 3, VX: 0, VY: 5}, testBounds, 15},
		{"underflowing vx", KinematicSample{X: 3, Y: 3, VX: 1e-300, VY: 5}, testBounds, 15},
		{"receding", KinematicSample{X: 3, Y: 3, VX: -4, VY: 1}, testBounds, 15},
		{"degenerate span", KinematicSample{X: 3, Y: 5, VX: 4, VY: 1}, FieldBounds{Top: 5, Bottom: 5, Right: 16}, 15},
		{"nan position", KinematicSample{X: math.NaN(), Y: 3, VX: 4, VY: 1}, testBounds, 15},
		{"infinite vy", KinematicSample{X: 3, Y: 3, VX: 4, VY: math.Inf(1)}, testBounds, 15},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := Predict(tc.sample, tc.bounds, tc.targetX)
			assert.Equal(t, NoIntercept, got)
			assert.False(t, got.Imminent)
		})
	}
}

func TestPredict_BallOnWallLine(t *testing.T) {
	sample := KinematicSample{X: 0, Y: testBounds.Bottom, VX: 1, VY: 0}
	got := Predict(sample, testBounds, 5)
	require.True(t, got.Imminent)
	assert.InDelta(t, testBounds.Bottom, got.Y, 1e-9)

	sample = KinematicSample{X: 0, Y: testBounds.Top, VX: 1, VY: -1}
	got = Predict(sample, testBounds, 4)
	require.True(t, got.Imminent)
	assert.InDelta(t, 4.0, got.Y, 1e-9)
}

func TestIntercept_Aim(t *testing.T) {
	down := Intercept{Y: 5, ArrivalVY: 2, Imminent: true}
	up := Intercept{Y: 5, ArrivalVY: -2, Imminent: true}

	assert.InDelta(t, 4.5, down.Aim(0.5, 0, 10).Y, 1e-9)
	assert.InDelta(t, 5.5, up.Aim(0.5, 0, 10).Y, 1e-9)
	assert.InDelta(t, 5.0, down.Aim(0, 0, 10).Y, 1e-9)

	clamped := Intercept{Y: 1.2, ArrivalVY: 1, Imminent: true}.Aim(0.5, 1, 9)
	assert.InDelta(t, 1.0, clamped.Y, 1e-9)

	assert.Equal(t, NoIntercept, NoIntercept.Aim(0.5, 0, 10))
}
