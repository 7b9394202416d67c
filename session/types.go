// =======================
// session/types.go
// =======================

package session

import (
	"errors"
	"fmt"
	"time"

	"cubecast/cube"
)

const (
	DefaultFrameDelay = 13 * time.Millisecond
	MinFrameDelay     = time.Millisecond
	FirstStep         = 30
	LastStep          = 999_999
	DefaultIterations = LastStep - FirstStep + 1
	MaxIterations     = 10_000_000 // keep one client from pinning a goroutine forever

	CanvasWidth  = 50
	CanvasHeight = 60
	OriginX      = 5
	OriginY      = 10

	OuterSize = 30.0
	InnerSize = 5.0

	// FeatureEvery is how many steps each banner feature stays up.
	FeatureEvery = 100
)

// ClearScreen wipes the terminal and homes the cursor.
const ClearScreen = "\x1b[2J\x1b[1;1H"

// Center is where both cubes sit.
var Center = cube.Point3{X: 20, Y: 20, Z: 20}

// InnerTilt is the fixed X-axis tilt of the inner cube.
var InnerTilt = radians(30)

// Features cycle through the banner's feature slot. Read only.
var Features = [...]string{"processor 🚀", "button 🧱", "method 💳"}

// ErrConfig wraps every configuration problem.
var ErrConfig = errors.New("invalid session config")

// Config controls one animation session.
type Config struct {
	Iterations int           `json:"iterations"`
	FrameDelay time.Duration `json:"frame_delay"`
	Mode       cube.Mode     `json:"mode"`
	Color      bool          `json:"color"`   // ANSI styling on frames and banner
	Rainbow    bool          `json:"rainbow"` // hue follows the rotation
	Banner     bool          `json:"banner"`
}

// DefaultConfig mirrors the classic animation.
func DefaultConfig() Config {
	return Config{
		Iterations: DefaultIterations,
		FrameDelay: DefaultFrameDelay,
		Mode:       cube.ModeLiteral,
		Color:      true,
		Banner:     true,
	}
}

// Validate checks the config is safe to run.
func (c Config) Validate() error {
	if c.Iterations < 1 || c.Iterations > MaxIterations {
		return fmt.Errorf("%w: iterations %d out of range [1, %d]", ErrConfig, c.Iterations, MaxIterations)
	}
	if c.FrameDelay < 0 {
		return fmt.Errorf("%w: negative frame delay %s", ErrConfig, c.FrameDelay)
	}
	if c.FrameDelay > 0 && c.FrameDelay < MinFrameDelay {
		return fmt.Errorf("%w: frame delay %s below %s", ErrConfig, c.FrameDelay, MinFrameDelay)
	}
	if _, err := cube.ParseMode(c.Mode.String()); err != nil {
		return fmt.Errorf("%w: %v", ErrConfig, err)
	}
	return nil
}
