// =======================
// session/scene.go
// =======================

package session

import (
	"fmt"
	"math"

	"cubecast/canvas"
	"cubecast/cube"
)

func radians(deg float64) float64 { return deg * math.Pi / 180 }

// Angle is the rotation, in radians, used at step. It wraps every 360 steps.
func Angle(step int) float64 {
	return radians(float64(step % 360))
}

// Scene is the pair of nested cubes every session animates.
type Scene struct {
	outer, inner cube.Cube
}

// NewScene builds the outer and inner cube around Center.
func NewScene(mode cube.Mode) (*Scene, error) {
	outer := cube.New(Center, OuterSize).WithMode(mode)
	inner := cube.New(Center, InnerSize).WithMode(mode)

	if err := outer.Validate(); err != nil {
		return nil, fmt.Errorf("outer cube: %w", err)
	}
	if err := inner.Validate(); err != nil {
		return nil, fmt.Errorf("inner cube: %w", err)
	}
	return &Scene{outer: outer, inner: inner}, nil
}

// Pose turns both cubes for step. The outer cube spins on all three axes;
// the inner one spins on Y and keeps a fixed X tilt.
func (s *Scene) Pose(step int) (outer, inner cube.Cube) {
	r := Angle(step)
	outer = s.outer.RotateZ(r).RotateY(r).RotateX(r)
	inner = s.inner.RotateZ(0).RotateY(r).RotateX(InnerTilt)
	return outer, inner
}

// Render clears cv, draws step onto it and returns the frame text.
func (s *Scene) Render(cv *canvas.Canvas, step int) string {
	cv.Clear()
	outer, inner := s.Pose(step)
	outer.Draw(cv, OriginX, OriginY)
	inner.Draw(cv, OriginX, OriginY)
	return cv.Frame()
}
