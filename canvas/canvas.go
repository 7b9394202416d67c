// =======================
// canvas/canvas.go
// =======================

// Package canvas is a braille dot matrix. Every character cell packs a 2x4
// block of dots into one rune of the U+2800 range, so a canvas of w by h
// dots renders as ceil(w/2) columns and ceil(h/4) rows of text.
package canvas

import (
	"math/bits"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

const brailleBase = 0x2800

// pixelMap[y%4][x%2] is the dot bit inside a cell.
var pixelMap = [4][2]uint8{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

type cell struct {
	dots uint8
	text string // overrides dots when set
	cont bool   // covered by a wide label on the left
}

// Canvas is a fixed-size grid of dots. It is not safe for concurrent use.
type Canvas struct {
	width, height int
	cols, rows    int
	cells         []cell
}

// New returns an empty canvas of width x height dots.
func New(width, height int) *Canvas {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	cols, rows := (width+1)/2, (height+3)/4
	return &Canvas{
		width:  width,
		height: height,
		cols:   cols,
		rows:   rows,
		cells:  make([]cell, cols*rows),
	}
}

// Width and Height are in dots.
func (c *Canvas) Width() int  { return c.width }
func (c *Canvas) Height() int { return c.height }

// Cols and Rows are in character cells.
func (c *Canvas) Cols() int { return c.cols }
func (c *Canvas) Rows() int { return c.rows }

func (c *Canvas) at(col, row int) *cell {
	if col < 0 || row < 0 || col >= c.cols || row >= c.rows {
		return nil
	}
	return &c.cells[row*c.cols+col]
}

// Set turns on the dot at (x,y). Dots outside the canvas are dropped.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 || x >= c.width || y >= c.height {
		return
	}
	c.at(x/2, y/4).dots |= pixelMap[y%4][x%2]
}

// Get reports whether the dot at (x,y) is on.
func (c *Canvas) Get(x, y int) bool {
	if x < 0 || y < 0 || x >= c.width || y >= c.height {
		return false
	}
	return c.at(x/2, y/4).dots&pixelMap[y%4][x%2] != 0
}

// Line sets every dot on the segment from (x0,y0) to (x1,y1), stepping
// along the longer axis. Only steps inside the canvas on that axis are walked.
func (c *Canvas) Line(x0, y0, x1, y1 int) {
	dx, xdir := span(x0, x1)
	dy, ydir := span(y0, y1)

	steps, minor := dx, dy
	start, dir, size := x0, xdir, c.width
	if dy > dx {
		steps, minor = dy, dx
		start, dir, size = y0, ydir, c.height
	}
	if steps == 0 {
		c.Set(x0, y0)
		return
	}

	first, last, ok := visible(start, dir, steps, size)
	if !ok {
		return
	}
	for i := first; ; i++ {
		off := scale(i, minor, steps)
		if dy > dx {
			c.Set(x0+int(off)*xdir, y0+int(i)*ydir)
		} else {
			c.Set(x0+int(i)*xdir, y0+int(off)*ydir)
		}
		if i == last {
			break
		}
	}
}

// span is the unsigned distance |b-a| and the direction from a to b.
func span(a, b int) (uint64, int) {
	if a <= b {
		return uint64(b) - uint64(a), 1
	}
	return uint64(a) - uint64(b), -1
}

// visible is the range of i in [0,steps] for which start+i*dir lies in
// [0,size).
func visible(start, dir int, steps uint64, size int) (first, last uint64, ok bool) {
	if size <= 0 {
		return 0, 0, false
	}
	if dir > 0 {
		if start >= size {
			return 0, 0, false
		}
		if start < 0 {
			first = -uint64(start)
		}
		last = uint64(size-1) - uint64(start)
	} else {
		if start < 0 {
			return 0, 0, false
		}
		if start >= size {
			first = uint64(start) - uint64(size-1)
		}
		last = uint64(start)
	}
	if last > steps {
		last = steps
	}
	return first, last, first <= last
}

// scale is i*minor/steps without overflow. Callers keep i and minor at or
// below steps.
func scale(i, minor, steps uint64) uint64 {
	hi, lo := bits.Mul64(i, minor)
	q, _ := bits.Div64(hi, lo, steps)
	return q
}

// Text stamps label into the cells starting at the cell holding dot (x,y).
// At most width grapheme clusters are written; wide clusters take two cells.
// Anything falling off the right edge is dropped.
func (c *Canvas) Text(x, y, width int, label string) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4

	g := uniseg.NewGraphemes(label)
	for n := 0; n < width && g.Next(); n++ {
		s := g.Str()
		w := runewidth.StringWidth(s)
		if w < 1 {
			w = 1
		}
		cl := c.at(col, row)
		if cl == nil {
			return
		}
		*cl = cell{text: s}
		for i := 1; i < w; i++ {
			if next := c.at(col+i, row); next != nil {
				*next = cell{cont: true}
			}
		}
		col += w
	}
}

// Clear wipes every dot and label.
func (c *Canvas) Clear() {
	for i := range c.cells {
		c.cells[i] = cell{}
	}
}

// Lines renders each text row. Empty cells are spaces.
func (c *Canvas) Lines() []string {
	lines := make([]string, 0, c.rows)
	var sb strings.Builder
	for row := 0; row < c.rows; row++ {
		sb.Reset()
		for col := 0; col < c.cols; col++ {
			cl := c.cells[row*c.cols+col]
			switch {
			case cl.cont:
			case cl.text != "":
				sb.WriteString(cl.text)
			case cl.dots == 0:
				sb.WriteByte(' ')
			default:
				sb.WriteRune(rune(brailleBase + int(cl.dots)))
			}
		}
		lines = append(lines, sb.String())
	}
	return lines
}

// Frame renders the whole grid as newline separated rows.
func (c *Canvas) Frame() string {
	return strings.Join(c.Lines(), "\n")
}

func (c *Canvas) String() string { return c.Frame() }
