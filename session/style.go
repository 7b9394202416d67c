// =======================
// session/style.go
// =======================

package session

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// Style paints text with ANSI SGR sequences. The zero Style leaves text
// untouched.
type Style struct {
	Fg    tcell.Color
	Attrs tcell.AttrMask
}

const reset = "\x1b[0m"

var (
	FrameStyle   = Style{Fg: tcell.ColorPurple, Attrs: tcell.AttrBold | tcell.AttrBlink}
	TitleStyle   = Style{Attrs: tcell.AttrBold}
	TagStyle     = Style{Attrs: tcell.AttrBold | tcell.AttrItalic}
	FeatureStyle = Style{Fg: tcell.ColorPurple, Attrs: tcell.AttrBold | tcell.AttrItalic | tcell.AttrUnderline}
	JoinStyle    = Style{Fg: tcell.ColorNavy, Attrs: tcell.AttrBold}
	EmailStyle   = Style{Attrs: tcell.AttrBold}
)

var attrCodes = []struct {
	mask tcell.AttrMask
	code string
}{
	{tcell.AttrBold, "1"},
	{tcell.AttrDim, "2"},
	{tcell.AttrItalic, "3"},
	{tcell.AttrUnderline, "4"},
	{tcell.AttrBlink, "5"},
	{tcell.AttrReverse, "7"},
	{tcell.AttrStrikeThrough, "9"},
}

// Paint wraps s in the style's escape sequence and a trailing reset.
func (st Style) Paint(s string) string {
	codes := st.codes()
	if len(codes) == 0 {
		return s
	}
	return "\x1b[" + strings.Join(codes, ";") + "m" + s + reset
}

func (st Style) codes() []string {
	var codes []string
	for _, a := range attrCodes {
		if st.Attrs&a.mask != 0 {
			codes = append(codes, a.code)
		}
	}
	if c := colorCode(st.Fg); c != "" {
		codes = append(codes, c)
	}
	return codes
}

// colorCode picks the shortest SGR foreground form for c: the 8 basic
// and 8 bright colors, the 256 palette, then 24-bit.
func colorCode(c tcell.Color) string {
	if !c.Valid() {
		return ""
	}
	if c.IsRGB() {
		r, g, b := c.RGB()
		return fmt.Sprintf("38;2;%d;%d;%d", r, g, b)
	}

	idx := int(c - tcell.ColorValid)
	switch {
	case idx < 8:
		return fmt.Sprintf("%d", 30+idx)
	case idx < 16:
		return fmt.Sprintf("%d", 90+idx-8)
	default:
		return fmt.Sprintf("38;5;%d", idx)
	}
}

// Hue is a saturated color whose hue tracks the rotation angle of step.
func Hue(step int) tcell.Color {
	r, g, b := colorful.Hsv(float64(step%360), 0.7, 0.95).RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// frameStyle is the style a frame is written with at step.
func frameStyle(cfg Config, step int) Style {
	switch {
	case !cfg.Color:
		return Style{}
	case cfg.Rainbow:
		return Style{Fg: Hue(step), Attrs: FrameStyle.Attrs}
	}
	return FrameStyle
}
