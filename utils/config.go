// File: utils/config.go
package utils

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig wraps every validation failure reported by Config.Validate.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds all configurable game parameters. It is supplied once at
// startup and never mutated afterwards.
type Config struct {
	// Timing
	GameTickPeriod time.Duration `json:"gameTickPeriod" yaml:"gameTickPeriod" toml:"gameTickPeriod"` // Time between simulation ticks

	// Field
	FieldWidth  float64 `json:"fieldWidth" yaml:"fieldWidth" toml:"fieldWidth"`    // Distance between the goal lines
	FieldHeight float64 `json:"fieldHeight" yaml:"fieldHeight" toml:"fieldHeight"` // Distance between the top and bottom walls

	// Ball
	BallSize       float64       `json:"ballSize" yaml:"ballSize" toml:"ballSize"`                   // Diameter
	BallSpeed      float64       `json:"ballSpeed" yaml:"ballSpeed" toml:"ballSpeed"`                // Speed the ball is held at
	SpeedTolerance float64       `json:"speedTolerance" yaml:"speedTolerance" toml:"speedTolerance"` // Drift allowed before the speed is corrected
	ServeDelay     time.Duration `json:"serveDelay" yaml:"serveDelay" toml:"serveDelay"`             // Pause between a goal and the next serve

	// Paddles
	PaddleSpeed    float64       `json:"paddleSpeed" yaml:"paddleSpeed" toml:"paddleSpeed"`          // Human paddle speed
	PaddleHeight   float64       `json:"paddleHeight" yaml:"paddleHeight" toml:"paddleHeight"`       // Length along the control axis
	PaddleWidth    float64       `json:"paddleWidth" yaml:"paddleWidth" toml:"paddleWidth"`          // Thickness
	PaddleInset    float64       `json:"paddleInset" yaml:"paddleInset" toml:"paddleInset"`          // Distance from goal line to paddle center
	MaxBounceAngle float64       `json:"maxBounceAngle" yaml:"maxBounceAngle" toml:"maxBounceAngle"` // Radians, reached on an edge hit
	PunchDistance  float64       `json:"punchDistance" yaml:"punchDistance" toml:"punchDistance"`    // Visual recoil on a hit
	PunchDuration  time.Duration `json:"punchDuration" yaml:"punchDuration" toml:"punchDuration"`

	// Match rules
	WinThreshold  int `json:"winThreshold" yaml:"winThreshold" toml:"winThreshold"`    // Points needed to win
	WinMargin     int `json:"winMargin" yaml:"winMargin" toml:"winMargin"`             // Lead needed to win
	ServesPerTurn int `json:"servesPerTurn" yaml:"servesPerTurn" toml:"servesPerTurn"` // Serves before the server switches (1 during deuce)

	// AI
	AIMaxSpeed       float64       `json:"aiMaxSpeed" yaml:"aiMaxSpeed" toml:"aiMaxSpeed"`                   // Cap on AI paddle speed
	AIDeadzone       float64       `json:"aiDeadzone" yaml:"aiDeadzone" toml:"aiDeadzone"`                   // Hold band around the target
	AIIdleSpeedRatio float64       `json:"aiIdleSpeedRatio" yaml:"aiIdleSpeedRatio" toml:"aiIdleSpeedRatio"` // Fraction of max speed used to recenter
	AIReactionTime   time.Duration `json:"aiReactionTime" yaml:"aiReactionTime" toml:"aiReactionTime"`       // Time between AI decisions, 0 decides every tick
	AIAimOffset      float64       `json:"aiAimOffset" yaml:"aiAimOffset" toml:"aiAimOffset"`                // Off-center aim to put an angle on returns
}

// DefaultConfig returns a Config struct with default values.
func DefaultConfig() Config {
	paddleHeight := 2.0

	return Config{
		// Timing
		GameTickPeriod: 10 * time.Millisecond,

		// Field
		FieldWidth:  16,
		FieldHeight: 10,

		// Ball
		BallSize:       0.3,
		BallSpeed:      10,
		SpeedTolerance: 0.5,
		ServeDelay:     750 * time.Millisecond,

		// Paddles
		PaddleSpeed:    20,
		PaddleHeight:   paddleHeight,
		PaddleWidth:    0.5,
		PaddleInset:    0.35,
		MaxBounceAngle: 1.0, // ~57 degrees
		PunchDistance:  0.15,
		PunchDuration:  50 * time.Millisecond,

		// Match rules
		WinThreshold:  11,
		WinMargin:     2,
		ServesPerTurn: 2,

		// AI
		AIMaxSpeed:       20,
		AIDeadzone:       0.1,
		AIIdleSpeedRatio: 0.5,
		AIReactionTime:   300 * time.Millisecond,
		AIAimOffset:      paddleHeight / 4,
	}
}

// Validate reports every malformed option at once.
func (c Config) Validate() error {
	var errs []error
	fail := func(format string, args ...interface{}) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]interface{}{ErrInvalidConfig}, args...)...))
	}

	if c.GameTickPeriod <= 0 {
		fail("gameTickPeriod must be > 0, got %s", c.GameTickPeriod)
	}
	if c.FieldWidth <= 0 || c.FieldHeight <= 0 {
		fail("field must have a positive size, got %vx%v", c.FieldWidth, c.FieldHeight)
	}
	if c.BallSize <= 0 {
		fail("ballSize must be > 0, got %v", c.BallSize)
	} else if c.BallSize >= c.FieldHeight || c.BallSize >= c.FieldWidth {
		fail("ballSize %v does not fit a %vx%v field", c.BallSize, c.FieldWidth, c.FieldHeight)
	}
	if c.BallSpeed <= 0 {
		fail("ballSpeed must be > 0, got %v", c.BallSpeed)
	}
	if c.SpeedTolerance < 0 {
		fail("speedTolerance must be >= 0, got %v", c.SpeedTolerance)
	}
	if c.ServeDelay < 0 {
		fail("serveDelay must be >= 0, got %s", c.ServeDelay)
	}
	if c.PaddleSpeed <= 0 {
		fail("paddleSpeed must be > 0, got %v", c.PaddleSpeed)
	}
	if c.PaddleHeight <= 0 || c.PaddleWidth <= 0 {
		fail("paddle must have a positive size, got %vx%v", c.PaddleWidth, c.PaddleHeight)
	}
	if c.PaddleHeight > c.FieldHeight {
		fail("paddleHeight %v exceeds fieldHeight %v", c.PaddleHeight, c.FieldHeight)
	}
	if c.PaddleInset-c.PaddleWidth/2 < 0 || c.PaddleInset*2 >= c.FieldWidth {
		fail("paddleInset %v places the paddles outside the field", c.PaddleInset)
	}
	if c.MaxBounceAngle <= 0 || c.MaxBounceAngle >= 1.5 {
		fail("maxBounceAngle must be in (0, 1.5) radians, got %v", c.MaxBounceAngle)
	}
	if c.PunchDistance < 0 || c.PunchDuration < 0 {
		fail("punch distance and duration must be >= 0")
	}
	if c.WinThreshold <= 0 {
		fail("winThreshold must be > 0, got %d", c.WinThreshold)
	}
	if c.WinMargin <= 0 {
		fail("winMargin must be > 0, got %d", c.WinMargin)
	}
	if c.ServesPerTurn <= 0 {
		fail("servesPerTurn must be > 0, got %d", c.ServesPerTurn)
	}
	if c.AIMaxSpeed <= 0 {
		fail("aiMaxSpeed must be > 0, got %v", c.AIMaxSpeed)
	}
	if c.AIDeadzone <= 0 {
		fail("aiDeadzone must be > 0, got %v", c.AIDeadzone)
	}
	if c.AIIdleSpeedRatio <= 0 || c.AIIdleSpeedRatio > 1 {
		fail("aiIdleSpeedRatio must be in (0, 1], got %v", c.AIIdleSpeedRatio)
	}
	if c.AIReactionTime < 0 {
		fail("aiReactionTime must be >= 0, got %s", c.AIReactionTime)
	}
	if c.AIAimOffset < 0 || c.AIAimOffset > c.PaddleHeight/2 {
		fail("aiAimOffset must be in [0, paddleHeight/2], got %v", c.AIAimOffset)
	}

	return errors.Join(errs...)
}

// LoadConfig reads a YAML or TOML file over DefaultConfig and validates the
// result. Options missing from the file keep their default value.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing yaml config %s: %w", path, err)
		}
	case ".toml":
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return cfg, fmt.Errorf("parsing toml config %s: %w", path, err)
		}
	default:
		return cfg, fmt.Errorf("unsupported config format %q (want .yaml, .yml or .toml)", ext)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
