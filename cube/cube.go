// =======================
// cube/cube.go
// =======================

// Package cube models a wireframe cube that can be turned about its own
// center and projected onto a dot canvas.
package cube

import (
	"errors"
	"fmt"
)

// ErrEdgeIndex is returned by Validate when an edge names a missing corner.
var ErrEdgeIndex = errors.New("edge index out of range")

const (
	NodeCount = 8
	EdgeCount = 12
)

// Edge joins two corners by index.
type Edge struct{ A, B int }

// Mode selects which rotation formula a cube uses.
type Mode int

const (
	// ModeLiteral is the single-quadrant arctangent formula with per-axis
	// sign correction, including the Y-axis size taken from the (x,y) pair.
	ModeLiteral Mode = iota
	// ModeCorrected is ModeLiteral with the Y-axis size taken from (x,z).
	ModeCorrected
	// ModeExact turns nodes with rotation matrices.
	ModeExact
)

var modeNames = map[Mode]string{
	ModeLiteral:   "literal",
	ModeCorrected: "corrected",
	ModeExact:     "exact",
}

func (m Mode) String() string {
	if s, ok := modeNames[m]; ok {
		return s
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode maps a mode name back to its Mode.
func ParseMode(s string) (Mode, error) {
	for m, name := range modeNames {
		if name == s {
			return m, nil
		}
	}
	return ModeLiteral, fmt.Errorf("unknown rotation mode %q (want literal, corrected or exact)", s)
}

// Modes lists every rotation mode in declaration order.
func Modes() []Mode { return []Mode{ModeLiteral, ModeCorrected, ModeExact} }

// wireframe is the topology shared by every cube: the near face loop
// 0-1-2-3, the far face loop 4-5-6-7 and the four edges joining them.
var wireframe = [EdgeCount]Edge{
	{0, 1}, {1, 2}, {2, 3}, {3, 0},
	{0, 4}, {4, 5}, {5, 6}, {6, 7},
	{4, 7}, {7, 1}, {2, 6}, {5, 3},
}

// Cube is an immutable value. Rotations return a new Cube and leave the
// receiver untouched.
type Cube struct {
	center Point3
	nodes  [NodeCount]Point3
	edges  [EdgeCount]Edge
	mode   Mode
}

// New builds an axis-aligned cube of the given edge size around center.
// A negative size mirrors the corners.
func New(center Point3, size float64) Cube {
	h := size / 2
	x, y, z := center.X, center.Y, center.Z

	return Cube{
		center: center,
		nodes: [NodeCount]Point3{
			{x - h, y - h, z - h},
			{x + h, y - h, z - h},
			{x + h, y + h, z - h},
			{x - h, y + h, z - h},
			{x - h, y - h, z + h},
			{x - h, y + h, z + h},
			{x + h, y + h, z + h},
			{x + h, y - h, z + h},
		},
		edges: wireframe,
	}
}

// WithMode returns a copy of c that rotates with m.
func (c Cube) WithMode(m Mode) Cube {
	c.mode = m
	return c
}

func (c Cube) Mode() Mode { return c.mode }

// Center is the fixed point all rotations turn about.
func (c Cube) Center() Point3 { return c.center }

// Nodes returns a copy of the corners in index order.
func (c Cube) Nodes() [NodeCount]Point3 { return c.nodes }

// Edges returns a copy of the wireframe topology.
func (c Cube) Edges() [EdgeCount]Edge { return c.edges }

// Validate checks that every edge references an existing node.
func (c Cube) Validate() error {
	for i, e := range c.edges {
		if e.A < 0 || e.A >= NodeCount || e.B < 0 || e.B >= NodeCount {
			return fmt.Errorf("edge %d (%d,%d): %w", i, e.A, e.B, ErrEdgeIndex)
		}
	}
	return nil
}
