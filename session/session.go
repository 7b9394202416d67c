// =======================
// session/session.go
// =======================

// Package session drives one client's animation: it turns the scene, draws
// each frame on a braille canvas and writes it, followed by the banner and
// a screen clear, at a fixed pace.
package session

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"cubecast/canvas"
)

// Run streams frames to w. It returns nil once every iteration is written,
// ctx.Err() if ctx ends first, or the first write error. Nothing is shared
// between runs, so any number may run at once.
func Run(ctx context.Context, w io.Writer, cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	scene, err := NewScene(cfg.Mode)
	if err != nil {
		return err
	}

	cv := canvas.New(CanvasWidth, CanvasHeight)
	var banner bytes.Buffer

	for step := FirstStep; step < FirstStep+cfg.Iterations; step++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		frame := frameStyle(cfg, step).Paint(scene.Render(cv, step))
		if _, err := io.WriteString(w, frame); err != nil {
			return fmt.Errorf("step %d: write frame: %w", step, err)
		}

		if cfg.Banner {
			banner.Reset()
			if err := RenderBanner(&banner, FeatureAt(step), cfg.Color); err != nil {
				return fmt.Errorf("step %d: %w", step, err)
			}
			if _, err := w.Write(banner.Bytes()); err != nil {
				return fmt.Errorf("step %d: write banner: %w", step, err)
			}
		}

		if err := sleep(ctx, cfg.FrameDelay); err != nil {
			return err
		}
		if _, err := io.WriteString(w, ClearScreen); err != nil {
			return fmt.Errorf("step %d: clear screen: %w", step, err)
		}
	}
	return nil
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
