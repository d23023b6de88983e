// Package profiler reports frame rate, renderer throughput, and Go heap
// statistics at a fixed cadence through slog.
package profiler

import (
	"log/slog"
	"runtime"
	"time"

	"github.com/chewxy/math32"

	"github.com/prism3d/prism-go/engine/renderer"
)

// Profiler tracks frame rate, renderer activity, and memory statistics for
// performance monitoring. Outputs stats to the log at a configurable interval.
type Profiler struct {
	stats          *renderer.Statistics
	logger         *slog.Logger
	frameCount     int
	lastTime       time.Time
	updateInterval time.Duration
	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64
	lastUploaded   int64
}

// Option configures a Profiler.
type Option func(*Profiler)

// WithInterval sets the reporting interval. Non-positive durations are
// ignored.
//
// Parameters:
//   - d: time between reports
//
// Returns:
//   - Option: option function to apply
func WithInterval(d time.Duration) Option {
	return func(p *Profiler) {
		if d > 0 {
			p.updateInterval = d
		}
	}
}

// WithLogger sets the logger reports are written to. Defaults to
// slog.Default().
//
// Parameters:
//   - logger: destination logger
//
// Returns:
//   - Option: option function to apply
func WithLogger(logger *slog.Logger) Option {
	return func(p *Profiler) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// NewProfiler creates a new Profiler reading renderer counters from stats.
// Update interval defaults to 1 second.
//
// Parameters:
//   - stats: renderer statistics to include in reports (nil for heap-only reports)
//   - options: functional options to configure the profiler
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler(stats *renderer.Statistics, options ...Option) *Profiler {
	p := &Profiler{
		stats:          stats,
		logger:         slog.Default(),
		lastTime:       time.Now(),
		updateInterval: time.Second,
	}
	for _, opt := range options {
		opt(p)
	}
	return p
}

// Tick should be called once per frame to track frame timing, after drawing
// and before the renderer's frame-end call clears the per-frame counters.
// Logs performance statistics when the update interval has elapsed.
// Statistics include: FPS, renderer activity, heap usage, allocation rate,
// GC count/pause times.
//
// Returns:
//   - bool: true if stats were logged this tick, false otherwise
func (p *Profiler) Tick() bool {
	p.frameCount++
	currentTime := time.Now()
	elapsed := currentTime.Sub(p.lastTime)
	if elapsed < p.updateInterval {
		return false
	}

	seconds := float32(elapsed.Seconds())
	fps := round2(float32(p.frameCount) / seconds)

	runtime.ReadMemStats(&p.memStats)
	// Alloc: live heap bytes. TotalAlloc: cumulative allocations, tracks churn.
	allocMB := round2(float32(p.memStats.Alloc) / 1024 / 1024)
	allocDelta := p.memStats.TotalAlloc - p.lastTotalAlloc
	allocRateMB := round2(float32(allocDelta) / 1024 / 1024 / seconds)

	gcCount := p.memStats.NumGC
	var lastPauseUs, maxPauseUs uint64
	if gcCount > 0 {
		// PauseNs is a circular buffer of the last 256 GC pauses.
		lastPauseUs = p.memStats.PauseNs[(gcCount-1)%256] / 1000

		startIdx := p.lastGCCount
		if gcCount-startIdx > 256 {
			startIdx = gcCount - 256
		}
		for i := startIdx; i < gcCount; i++ {
			pause := p.memStats.PauseNs[i%256] / 1000
			if pause > maxPauseUs {
				maxPauseUs = pause
			}
		}
	}

	attrs := []any{
		slog.Float64("fps", float64(fps)),
		slog.Float64("heap_mb", float64(allocMB)),
		slog.Float64("alloc_mb_per_s", float64(allocRateMB)),
		slog.Uint64("gc_count", uint64(gcCount)),
		slog.Uint64("gc_last_pause_us", lastPauseUs),
		slog.Uint64("gc_max_pause_us", maxPauseUs),
	}
	if p.stats != nil {
		snap := p.stats.Snapshot()
		uploadRateMB := round2(float32(snap.Memory-p.lastUploaded) / 1024 / 1024 / seconds)
		attrs = append(attrs,
			slog.Int("draw_calls", snap.DrawCalls),
			slog.Int("vertices", snap.Vertices),
			slog.Int("triangles", snap.Triangles),
			slog.Int("shaders", snap.Shaders),
			slog.Int("textures", snap.Textures),
			slog.Int("buffers", snap.Buffers),
			slog.Float64("upload_mb_per_s", float64(uploadRateMB)),
		)
		p.lastUploaded = snap.Memory
	}
	p.logger.Info("frame stats", attrs...)

	p.frameCount = 0
	p.lastTime = currentTime
	p.lastGCCount = gcCount
	p.lastTotalAlloc = p.memStats.TotalAlloc
	return true
}

// round2 rounds to two decimals so log output stays readable.
func round2(v float32) float32 {
	return math32.Round(v*100) / 100
}
