package profiler

import (
	"log"
	"runtime"
	"time"
)

// Stats is one profiler sample covering the frames since the previous sample.
type Stats struct {
	FPS         float64
	Frames      int
	HeapMB      float64
	AllocRateMB float64
	SysMB       float64
	NumGC       uint32
	LastPause   time.Duration
	MaxPause    time.Duration
}

// Profiler tracks frame rate and memory statistics for performance monitoring.
// Outputs stats to the log at a configurable interval. Not safe for concurrent use; the
// render loop owns it.
type Profiler struct {
	frameCount int
	lastTime   time.Time
	interval   time.Duration
	now        func() time.Time
	logf       func(format string, args ...any)

	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64
	last           Stats
}

// NewProfiler creates a new Profiler. The interval defaults to 1 second.
//
// Parameters:
//   - options: functional options applied over the defaults
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler(options ...ProfilerOption) *Profiler {
	p := &Profiler{
		interval: time.Second,
		now:      time.Now,
		logf:     log.Printf,
	}
	for _, opt := range options {
		opt(p)
	}
	p.lastTime = p.now()
	return p
}

// Interval returns how often stats are logged.
func (p *Profiler) Interval() time.Duration {
	return p.interval
}

// Last returns the most recently logged sample, or the zero Stats before the first one.
func (p *Profiler) Last() Stats {
	return p.last
}

// Tick should be called once per rendered frame. When the interval has elapsed it samples
// FPS, heap usage, allocation rate and GC pauses, and logs them.
//
// Returns:
//   - bool: true if stats were logged this tick, false otherwise
func (p *Profiler) Tick() bool {
	p.frameCount++
	now := p.now()
	elapsed := now.Sub(p.lastTime)
	if elapsed < p.interval || elapsed <= 0 {
		return false
	}

	runtime.ReadMemStats(&p.memStats)
	s := Stats{
		FPS:         float64(p.frameCount) / elapsed.Seconds(),
		Frames:      p.frameCount,
		HeapMB:      toMB(p.memStats.Alloc),
		AllocRateMB: toMB(p.memStats.TotalAlloc-p.lastTotalAlloc) / elapsed.Seconds(),
		SysMB:       toMB(p.memStats.Sys),
		NumGC:       p.memStats.NumGC,
	}
	s.LastPause, s.MaxPause = pauses(&p.memStats, p.lastGCCount)

	p.logf("[Profiler] FPS: %.2f | Heap: %.2f MB | Alloc Rate: %.2f MB/s | GC: %d (last: %s, max: %s) | Sys: %.2f MB",
		s.FPS, s.HeapMB, s.AllocRateMB, s.NumGC, s.LastPause, s.MaxPause, s.SysMB)

	p.last = s
	p.frameCount = 0
	p.lastTime = now
	p.lastGCCount = s.NumGC
	p.lastTotalAlloc = p.memStats.TotalAlloc
	return true
}

// pauses returns the most recent GC pause and the longest pause since sinceGC.
// PauseNs is a circular buffer of the last 256 pauses.
func pauses(m *runtime.MemStats, sinceGC uint32) (last, longest time.Duration) {
	if m.NumGC == 0 {
		return 0, 0
	}
	last = time.Duration(m.PauseNs[(m.NumGC-1)%256])

	start := sinceGC
	if m.NumGC-start > 256 {
		start = m.NumGC - 256
	}
	for i := start; i < m.NumGC; i++ {
		longest = max(longest, time.Duration(m.PauseNs[i%256]))
	}
	return last, longest
}

func toMB(b uint64) float64 {
	return float64(b) / 1024 / 1024
}
