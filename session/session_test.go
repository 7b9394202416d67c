package session

import (
	"bytes"
	"context"
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"cubecast/canvas"
	"cubecast/cube"

	"github.com/gdamore/tcell/v2"
	. "github.com/smartystreets/goconvey/convey"
)

func quickConfig(iterations int) Config {
	cfg := DefaultConfig()
	cfg.Iterations = iterations
	cfg.FrameDelay = 0
	cfg.Color = false
	return cfg
}

var errBroken = errors.New("broken pipe")

// failAfter accepts n writes and fails every later one.
type failAfter struct {
	n      int
	writes int
}

func (f *failAfter) Write(p []byte) (int, error) {
	if f.writes >= f.n {
		return 0, errBroken
	}
	f.writes++
	return len(p), nil
}

func TestConfig(t *testing.T) {
	Convey("The default config is valid", t, func() {
		cfg := DefaultConfig()
		So(cfg.Validate(), ShouldBeNil)
		So(cfg.Iterations, ShouldEqual, LastStep-FirstStep+1)
		So(cfg.FrameDelay, ShouldEqual, 13*time.Millisecond)
	})

	Convey("Bad values are rejected", t, func() {
		bad := []func(*Config){
			func(c *Config) { c.Iterations = 0 },
			func(c *Config) { c.Iterations = MaxIterations + 1 },
			func(c *Config) { c.FrameDelay = -time.Second },
			func(c *Config) { c.FrameDelay = time.Microsecond },
			func(c *Config) { c.Mode = cube.Mode(7) },
		}
		for _, mutate := range bad {
			cfg := DefaultConfig()
			mutate(&cfg)
			So(errors.Is(cfg.Validate(), ErrConfig), ShouldBeTrue)
		}
	})
}

func TestScene(t *testing.T) {
	Convey("Angles wrap every full turn", t, func() {
		So(Angle(390), ShouldAlmostEqual, math.Pi/6, 1e-12)
		So(Angle(360), ShouldEqual, 0.0)
	})

	Convey("A scene", t, func() {
		scene, err := NewScene(cube.ModeLiteral)
		So(err, ShouldBeNil)

		Convey("keeps every corner at its distance from the center", func() {
			outer, inner := scene.Pose(77)
			for _, n := range outer.Nodes() {
				So(n.Distance(Center), ShouldAlmostEqual, OuterSize/2*math.Sqrt(3), 1e-9)
			}
			for _, n := range inner.Nodes() {
				So(n.Distance(Center), ShouldAlmostEqual, InnerSize/2*math.Sqrt(3), 1e-9)
			}
		})

		Convey("renders a full braille frame with corner marks", func() {
			frame := scene.Render(canvas.New(CanvasWidth, CanvasHeight), FirstStep)
			So(strings.Count(frame, "\n"), ShouldEqual, CanvasHeight/4-1)
			So(frame, ShouldContainSubstring, cube.NodeLabel)
		})

		Convey("renders the same step the same way on a reused canvas", func() {
			cv := canvas.New(CanvasWidth, CanvasHeight)
			first := scene.Render(cv, 123)
			scene.Render(cv, 200)
			So(scene.Render(cv, 123), ShouldEqual, first)
		})
	})
}

func TestStyle(t *testing.T) {
	Convey("Styles render SGR sequences", t, func() {
		So(Style{}.Paint("x"), ShouldEqual, "x")
		So(FrameStyle.Paint("x"), ShouldEqual, "\x1b[1;5;35mx\x1b[0m")
		So(JoinStyle.Paint("x"), ShouldEqual, "\x1b[1;34mx\x1b[0m")
		So(Style{Fg: tcell.ColorBlue}.Paint("x"), ShouldEqual, "\x1b[94mx\x1b[0m")
		So(Style{Fg: tcell.PaletteColor(200)}.Paint("x"), ShouldEqual, "\x1b[38;5;200mx\x1b[0m")
		So(Style{Fg: tcell.NewRGBColor(1, 2, 3)}.Paint("x"), ShouldEqual, "\x1b[38;2;1;2;3mx\x1b[0m")
	})

	Convey("Hue starts red", t, func() {
		c := Hue(0)
		So(c.IsRGB(), ShouldBeTrue)
		r, g, b := c.RGB()
		So(r, ShouldBeGreaterThan, g)
		So(r, ShouldBeGreaterThan, b)
	})

	Convey("Frames follow the color options", t, func() {
		cfg := DefaultConfig()
		So(frameStyle(cfg, 40), ShouldResemble, FrameStyle)
		cfg.Rainbow = true
		So(frameStyle(cfg, 40).Fg, ShouldEqual, Hue(40))
		cfg.Color = false
		So(frameStyle(cfg, 40), ShouldResemble, Style{})
	})
}

func TestBanner(t *testing.T) {
	Convey("The banner shows the feature", t, func() {
		var buf bytes.Buffer
		So(RenderBanner(&buf, Feature(4), false), ShouldBeNil)
		So(buf.String(), ShouldContainSubstring, Title)
		So(buf.String(), ShouldContainSubstring, TagLine+" button 🧱")
		So(buf.String(), ShouldContainSubstring, JoinUs+" "+Email)
		So(buf.String(), ShouldNotContainSubstring, "\x1b[")
	})

	Convey("Colored banners are styled", t, func() {
		var buf bytes.Buffer
		So(RenderBanner(&buf, Feature(0), true), ShouldBeNil)
		So(buf.String(), ShouldContainSubstring, FeatureStyle.Paint("processor 🚀"))
	})
}

func TestRun(t *testing.T) {
	Convey("Running a short session", t, func() {
		var buf bytes.Buffer
		err := Run(context.Background(), &buf, quickConfig(3))
		So(err, ShouldBeNil)
		out := buf.String()

		Convey("writes a frame, a banner and a clear per step", func() {
			So(strings.Count(out, ClearScreen), ShouldEqual, 3)
			So(strings.Count(out, Title), ShouldEqual, 3)
			So(out, ShouldNotContainSubstring, reset)
		})

		Convey("starts with the first step's frame", func() {
			scene, _ := NewScene(cube.ModeLiteral)
			first := scene.Render(canvas.New(CanvasWidth, CanvasHeight), FirstStep)
			So(strings.HasPrefix(out, first), ShouldBeTrue)
		})
	})

	Convey("Color wraps each frame", t, func() {
		var buf bytes.Buffer
		cfg := quickConfig(1)
		cfg.Color = true
		So(Run(context.Background(), &buf, cfg), ShouldBeNil)
		So(strings.HasPrefix(buf.String(), "\x1b[1;5;35m"), ShouldBeTrue)
	})

	Convey("The feature advances after step 99", t, func() {
		var buf bytes.Buffer
		So(Run(context.Background(), &buf, quickConfig(71)), ShouldBeNil)
		So(strings.Count(buf.String(), Features[0]), ShouldEqual, 70)
		So(strings.Count(buf.String(), Features[1]), ShouldEqual, 1)
	})

	Convey("Banners can be turned off", t, func() {
		var buf bytes.Buffer
		cfg := quickConfig(2)
		cfg.Banner = false
		So(Run(context.Background(), &buf, cfg), ShouldBeNil)
		So(buf.String(), ShouldNotContainSubstring, Title)
	})

	Convey("A cancelled context stops before writing", t, func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		var buf bytes.Buffer
		err := Run(ctx, &buf, quickConfig(5))
		So(errors.Is(err, context.Canceled), ShouldBeTrue)
		So(buf.Len(), ShouldEqual, 0)
	})

	Convey("The pause honours the context", t, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()
		cfg := quickConfig(5)
		cfg.FrameDelay = time.Hour
		var buf bytes.Buffer
		err := Run(ctx, &buf, cfg)
		So(errors.Is(err, context.DeadlineExceeded), ShouldBeTrue)
		So(buf.String(), ShouldNotContainSubstring, ClearScreen)
	})

	Convey("A failed write ends the session with that error", t, func() {
		w := &failAfter{n: 2}
		err := Run(context.Background(), w, quickConfig(5))
		So(errors.Is(err, errBroken), ShouldBeTrue)
	})

	Convey("An invalid config is refused", t, func() {
		err := Run(context.Background(), &bytes.Buffer{}, Config{})
		So(errors.Is(err, ErrConfig), ShouldBeTrue)
	})
}

func TestBenchmark(t *testing.T) {
	Convey("Every mode is measured", t, func() {
		results, err := Benchmark(2)
		So(err, ShouldBeNil)
		So(len(results), ShouldEqual, len(cube.Modes()))
		for i, r := range results {
			So(r.Mode, ShouldEqual, cube.Modes()[i].String())
			So(r.Frames, ShouldEqual, 2)
			So(r.FrameBytes, ShouldBeGreaterThan, 0)
		}

		var buf bytes.Buffer
		PrintBenchmarkResults(&buf, results)
		So(buf.String(), ShouldContainSubstring, "corrected")
	})

	Convey("Zero iterations is an error", t, func() {
		_, err := Benchmark(0)
		So(errors.Is(err, ErrConfig), ShouldBeTrue)
	})
}
