// =======================
// cube/point.go
// =======================

package cube

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"gonum.org/v1/gonum/spatial/r3"
)

// Point3 holds a 3D coordinate.
type Point3 struct{ X, Y, Z float64 }

// Add returns p+q.
func (p Point3) Add(q Point3) Point3 {
	return Point3{p.X + q.X, p.Y + q.Y, p.Z + q.Z}
}

// Sub returns p-q.
func (p Point3) Sub(q Point3) Point3 {
	return Point3{p.X - q.X, p.Y - q.Y, p.Z - q.Z}
}

// Distance is the Euclidean distance between p and q.
func (p Point3) Distance(q Point3) float64 {
	return r3.Norm(r3.Sub(p.vec(), q.vec()))
}

// Finite reports whether every coordinate is a real number.
func (p Point3) Finite() bool {
	for _, v := range [3]float64{p.X, p.Y, p.Z} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (p Point3) vec() r3.Vec { return r3.Vec{X: p.X, Y: p.Y, Z: p.Z} }

// RotateAbout turns p around center using a proper rotation matrix.
func (p Point3) RotateAbout(center Point3, m mgl64.Mat3) Point3 {
	d := p.Sub(center)
	v := m.Mul3x1(mgl64.Vec3{d.X, d.Y, d.Z})
	return center.Add(Point3{v[0], v[1], v[2]})
}
