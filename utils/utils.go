package utils

import (
	"math"
	"math/rand"
	"strings"
	"time"
)

// Epsilon is the tolerance used for float comparisons across the game.
const Epsilon = 1e-9

// Canonical input names accepted from clients.
const (
	InputUp    = "up"
	InputDown  = "down"
	InputStop  = "stop"
	InputSpace = "space"
	InputStart = "start"
	InputPause = "pause"
)

// InputFromString normalizes a client key name to one of the Input constants.
// Unknown names map to "".
func InputFromString(input string) string {
	if input == " " {
		return InputSpace
	}
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "arrowup", "up", "w", "k":
		return InputUp
	case "arrowdown", "down", "s", "j":
		return InputDown
	case "none", "stop", "release":
		return InputStop
	case "space", "spacebar":
		return InputSpace
	case "start", "enter":
		return InputStart
	case "pause", "p", "escape":
		return InputPause
	}
	return ""
}

func Clamp(value, lo, hi float64) float64 {
	if value < lo {
		return lo
	}
	if value > hi {
		return hi
	}
	return value
}

// IsFinite reports whether every value is neither NaN nor infinite.
func IsFinite(values ...float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// NewRand returns a rand.Rand seeded from the clock, or from seed when it is non-zero.
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}
