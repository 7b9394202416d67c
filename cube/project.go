// =======================
// cube/project.go
// =======================

package cube

// Drawer is the surface a cube is projected onto.
type Drawer interface {
	Line(x0, y0, x1, y1 int)
	Text(x, y, width int, label string)
}

// NodeLabel marks every corner.
const NodeLabel = "*"

// Draw projects the cube orthographically onto d, dropping depth. Each
// coordinate is truncated toward zero before the origin offset is added.
// Edges are drawn first, then corner labels. Corners with non-finite
// coordinates are skipped. d is returned for chaining.
func (c Cube) Draw(d Drawer, originX, originY int) Drawer {
	for _, e := range c.edges {
		p0, p1 := c.nodes[e.A], c.nodes[e.B]
		if !p0.Finite() || !p1.Finite() {
			continue
		}
		x0, y0 := project(p0, originX, originY)
		x1, y1 := project(p1, originX, originY)
		d.Line(x0, y0, x1, y1)
	}

	for _, n := range c.nodes {
		if !n.Finite() {
			continue
		}
		x, y := project(n, originX, originY)
		d.Text(x, y, 1, NodeLabel)
	}

	return d
}

func project(p Point3, originX, originY int) (int, int) {
	return int(p.X) + originX, int(p.Y) + originY
}
