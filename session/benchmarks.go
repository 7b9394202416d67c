// =======================
// session/benchmarks.go
// =======================

package session

import (
	"fmt"
	"io"
	"time"

	"cubecast/canvas"
	"cubecast/cube"
)

// BenchmarkInfo holds rendering metrics for one rotation mode
type BenchmarkInfo struct {
	Mode       string        `json:"mode"`
	Frames     int           `json:"frames"`
	FrameTime  time.Duration `json:"frame_time"`
	FrameBytes int           `json:"frame_bytes"`
	Throughput float64       `json:"frames_per_second"`
}

// Benchmark renders iterations frames with every rotation mode.
func Benchmark(iterations int) ([]BenchmarkInfo, error) {
	if iterations < 1 || iterations > MaxIterations {
		return nil, fmt.Errorf("%w: benchmark iterations %d out of range [1, %d]", ErrConfig, iterations, MaxIterations)
	}

	modes := cube.Modes()
	results := make([]BenchmarkInfo, 0, len(modes))

	for _, mode := range modes {
		scene, err := NewScene(mode)
		if err != nil {
			return nil, fmt.Errorf("failed to build scene for mode %s: %w", mode, err)
		}
		cv := canvas.New(CanvasWidth, CanvasHeight)

		start := time.Now()
		var totalBytes int
		for i := 0; i < iterations; i++ {
			totalBytes += len(scene.Render(cv, FirstStep+i))
		}
		duration := time.Since(start)

		fps := 0.0
		if s := duration.Seconds(); s > 0 {
			fps = float64(iterations) / s
		}

		results = append(results, BenchmarkInfo{
			Mode:       mode.String(),
			Frames:     iterations,
			FrameTime:  duration / time.Duration(iterations),
			FrameBytes: totalBytes / iterations,
			Throughput: fps,
		})
	}

	return results, nil
}

// PrintBenchmarkResults writes the results as a table
func PrintBenchmarkResults(w io.Writer, results []BenchmarkInfo) {
	fmt.Fprintln(w, "Cube Frame Benchmark Results")
	fmt.Fprintln(w, "============================")
	fmt.Fprintf(w, "%-10s | %-8s | %-12s | %-11s | %-10s\n",
		"Mode", "Frames", "Time/Frame", "Bytes/Frame", "Frames/s")
	fmt.Fprintln(w, "-----------|----------|--------------|-------------|-----------")

	for _, r := range results {
		fmt.Fprintf(w, "%-10s | %-8d | %-12s | %-11d | %-10.0f\n",
			r.Mode,
			r.Frames,
			r.FrameTime.String(),
			r.FrameBytes,
			r.Throughput)
	}
}
