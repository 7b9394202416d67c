// main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cubecast/canvas"
	"cubecast/cube"
	"cubecast/server"
	"cubecast/session"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"
)

func main() {
	addr := flag.String("addr", "0.0.0.0:3333", "TCP address to stream frames on")
	wsAddr := flag.String("ws", "", "WebSocket address to stream frames on (empty disables)")
	iterations := flag.Int("iterations", session.DefaultIterations, "Frames per session")
	delay := flag.Duration("delay", session.DefaultFrameDelay, "Pause between frames")
	mode := flag.String("mode", cube.ModeLiteral.String(), "Rotation formula: literal, corrected or exact")
	color := flag.Bool("color", true, "Style frames and banner with ANSI colors")
	rainbow := flag.Bool("rainbow", false, "Tint frames by rotation angle")
	banner := flag.Bool("banner", true, "Send the welcome banner after every frame")
	preview := flag.Bool("preview", false, "Play the animation in this terminal instead of serving")
	bench := flag.Int("bench", 0, "Render N frames per rotation mode, print timings and exit")
	flag.Parse()

	cfg, err := buildConfig(*iterations, *delay, *mode, *color, *rainbow, *banner)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		flag.Usage()
		os.Exit(1)
	}

	if *bench > 0 {
		results, err := session.Benchmark(*bench)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Benchmark failed: %v\n", err)
			os.Exit(1)
		}
		session.PrintBenchmarkResults(os.Stdout, results)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *preview {
		if err := runPreview(ctx, cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Preview error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := serve(ctx, cfg, *addr, *wsAddr); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}

func buildConfig(iterations int, delay time.Duration, mode string, color, rainbow, banner bool) (session.Config, error) {
	m, err := cube.ParseMode(mode)
	if err != nil {
		return session.Config{}, err
	}

	cfg := session.DefaultConfig()
	cfg.Iterations = iterations
	cfg.FrameDelay = delay
	cfg.Mode = m
	cfg.Color = color
	cfg.Rainbow = rainbow
	cfg.Banner = banner

	if err := cfg.Validate(); err != nil {
		return session.Config{}, err
	}
	return cfg, nil
}

func serve(ctx context.Context, cfg session.Config, addr, wsAddr string) error {
	logger := log.New(os.Stdout, "", log.LstdFlags)
	srv := server.New(cfg, logger)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return srv.ListenAndServe(ctx, addr) })
	if wsAddr != "" {
		g.Go(func() error { return srv.ListenAndServeWebSocket(ctx, wsAddr) })
	}
	return g.Wait()
}

// PreviewRenderer plays the scene on a local tcell screen.
type PreviewRenderer struct {
	scene   *session.Scene
	cv      *canvas.Canvas
	mode    cube.Mode
	step    int
	paused  bool
	rainbow bool
}

func NewPreviewRenderer(mode cube.Mode, rainbow bool) (*PreviewRenderer, error) {
	scene, err := session.NewScene(mode)
	if err != nil {
		return nil, err
	}
	return &PreviewRenderer{
		scene:   scene,
		cv:      canvas.New(session.CanvasWidth, session.CanvasHeight),
		mode:    mode,
		step:    session.FirstStep,
		rainbow: rainbow,
	}, nil
}

func (pr *PreviewRenderer) update() {
	if !pr.paused {
		pr.step++
	}
	pr.scene.Render(pr.cv, pr.step)
}

// cycleMode switches to the next rotation formula, keeping the step.
func (pr *PreviewRenderer) cycleMode() error {
	modes := cube.Modes()
	next := modes[(int(pr.mode)+1)%len(modes)]
	scene, err := session.NewScene(next)
	if err != nil {
		return err
	}
	pr.scene, pr.mode = scene, next
	return nil
}

func (pr *PreviewRenderer) frameColor() tcell.Color {
	if pr.rainbow {
		return session.Hue(pr.step)
	}
	return tcell.ColorPurple
}

func (pr *PreviewRenderer) render(s tcell.Screen, w, h int) {
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	drawText(s, 1, 0, style, "cubecast preview | Space:pause M:mode R:rainbow Q:quit")

	frameStyle := tcell.StyleDefault.Foreground(pr.frameColor()).Bold(true)
	for i, line := range pr.cv.Lines() {
		if 2+i >= h-1 {
			break
		}
		drawText(s, 1, 2+i, frameStyle, line)
	}

	info := fmt.Sprintf("Mode: %s | Step: %d | Angle: %3d° | Feature: %s",
		pr.mode, pr.step, pr.step%360, session.FeatureAt(pr.step))
	drawText(s, 1, h-1, tcell.StyleDefault.Foreground(tcell.ColorDarkGray), info)
}

func runPreview(ctx context.Context, cfg session.Config) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("preview needs a terminal on stdout")
	}

	s, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("screen init failed: %w", err)
	}
	if err := s.Init(); err != nil {
		return fmt.Errorf("screen start failed: %w", err)
	}
	defer s.Fini()

	renderer, err := NewPreviewRenderer(cfg.Mode, cfg.Rainbow)
	if err != nil {
		return err
	}

	events := make(chan tcell.Event)
	quit := make(chan struct{})
	defer close(quit)
	go s.ChannelEvents(events, quit)

	delay := cfg.FrameDelay
	if delay <= 0 {
		delay = session.DefaultFrameDelay
	}
	ticker := time.NewTicker(delay)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				switch ev.Key() {
				case tcell.KeyEscape, tcell.KeyCtrlC:
					return nil
				case tcell.KeyRune:
					switch ev.Rune() {
					case 'q', 'Q':
						return nil
					case ' ':
						renderer.paused = !renderer.paused
					case 'm', 'M':
						if err := renderer.cycleMode(); err != nil {
							return err
						}
					case 'r', 'R':
						renderer.rainbow = !renderer.rainbow
					}
				}
			case *tcell.EventResize:
				s.Sync()
			}
		case <-ticker.C:
			renderer.update()
			s.Clear()
			w, h := s.Size()

			if w <= 10 || h <= 4 {
				continue
			}

			renderer.render(s, w, h)
			s.Show()
		}
	}
}

func drawText(s tcell.Screen, x, y int, style tcell.Style, str string) {
	for _, r := range str {
		s.SetContent(x, y, r, nil, style)
		x += runewidth.RuneWidth(r)
	}
}
