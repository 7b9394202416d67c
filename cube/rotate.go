// =======================
// cube/rotate.go
// =======================

package cube

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Each axis rotation works on the two coordinates of its plane. For a node
// (a,b) and center (ca,cb) the literal formula takes the single-quadrant
// angle atan((b-cb)/(a-ca)), advances it by theta through the angle-sum
// identities, and multiplies by a sign factor picked from the a coordinate
// to land back in the right half-plane.

func planarAngle(a, b, ca, cb float64) float64 {
	return math.Atan((b - cb) / (a - ca))
}

func planarSize(a, b, ca, cb float64) float64 {
	return math.Sqrt(math.Pow(a-ca, 2) + math.Pow(b-cb, 2))
}

// cos(x+y)
func sumCos(x, y float64) float64 {
	return math.Cos(x)*math.Cos(y) - math.Sin(x)*math.Sin(y)
}

// sin(x+y)
func sumSin(x, y float64) float64 {
	return math.Sin(x)*math.Cos(y) + math.Cos(x)*math.Sin(y)
}

// turn moves (a,b) by theta around (ca,cb). A node sitting on the center
// has no angle; it stays on the center instead of turning into NaN. A node
// level with the center on a lies straight above or below it, so it takes
// the angle ±π/2 with no half-plane flip.
func turn(a, b, ca, cb, size, factor, theta float64) (float64, float64) {
	if a == ca && b == cb {
		return ca, cb
	}
	angle := planarAngle(a, b, ca, cb)
	if a == ca {
		angle, factor = math.Copysign(math.Pi/2, b-cb), 1
	}
	return ca + size*sumCos(angle, theta)*factor,
		cb + size*sumSin(angle, theta)*factor
}

// RotateX turns the cube by theta radians in the (y,z) plane.
func (c Cube) RotateX(theta float64) Cube {
	if c.mode == ModeExact {
		return c.transform(mgl64.Rotate3DX(theta))
	}

	cy, cz := c.center.Y, c.center.Z
	for i, n := range c.nodes {
		factor := -1.0
		if n.Y > cy {
			factor = 1
		}
		size := planarSize(n.Y, n.Z, cy, cz)
		c.nodes[i].Y, c.nodes[i].Z = turn(n.Y, n.Z, cy, cz, size, factor, theta)
	}
	return c
}

// RotateY turns the cube by theta radians in the (x,z) plane.
//
// In ModeLiteral the in-plane size pairs the node's z with the center's y,
// so distances are only kept when the center has equal y and z.
// ModeCorrected measures size in the (x,z) plane.
func (c Cube) RotateY(theta float64) Cube {
	if c.mode == ModeExact {
		// mgl64 turns z towards x for positive angles; the planar
		// formula turns x towards z.
		return c.transform(mgl64.Rotate3DY(-theta))
	}

	cx, cz := c.center.X, c.center.Z
	for i, n := range c.nodes {
		factor := -1.0
		if n.X > cx {
			factor = 1
		}
		size := planarSize(n.X, n.Z, cx, cz)
		if c.mode == ModeLiteral {
			size = planarSize(n.X, n.Z, cx, c.center.Y)
		}
		c.nodes[i].X, c.nodes[i].Z = turn(n.X, n.Z, cx, cz, size, factor, theta)
	}
	return c
}

// RotateZ turns the cube by theta radians in the (x,y) plane.
func (c Cube) RotateZ(theta float64) Cube {
	if c.mode == ModeExact {
		return c.transform(mgl64.Rotate3DZ(theta))
	}

	cx, cy := c.center.X, c.center.Y
	for i, n := range c.nodes {
		factor := 1.0
		if n.X < cx {
			factor = -1
		}
		size := planarSize(n.X, n.Y, cx, cy)
		c.nodes[i].X, c.nodes[i].Y = turn(n.X, n.Y, cx, cy, size, factor, theta)
	}
	return c
}

func (c Cube) transform(m mgl64.Mat3) Cube {
	for i, n := range c.nodes {
		c.nodes[i] = n.RotateAbout(c.center, m)
	}
	return c
}
