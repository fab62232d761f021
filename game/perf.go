package game

import (
	"sort"
	"time"
)

// PerfStats keeps a rolling window of durations per named phase.
type PerfStats struct {
	samples    map[string]*perfWindow
	maxSamples int
}

type perfWindow struct {
	buf   []time.Duration
	next  int
	total time.Duration
}

// NewPerfStats creates a tracker averaging over the last maxSamples entries.
func NewPerfStats(maxSamples int) *PerfStats {
	if maxSamples <= 0 {
		maxSamples = 120 // ~2 seconds of samples at 60fps
	}
	return &PerfStats{
		samples:    make(map[string]*perfWindow),
		maxSamples: maxSamples,
	}
}

// Record adds a duration sample for the named phase.
func (p *PerfStats) Record(name string, d time.Duration) {
	w := p.samples[name]
	if w == nil {
		w = &perfWindow{buf: make([]time.Duration, 0, p.maxSamples)}
		p.samples[name] = w
	}
	if len(w.buf) < p.maxSamples {
		w.buf = append(w.buf, d)
	} else {
		w.total -= w.buf[w.next]
		w.buf[w.next] = d
		w.next = (w.next + 1) % p.maxSamples
	}
	w.total += d
}

// Measure runs fn and records its duration.
func (p *PerfStats) Measure(name string, fn func()) {
	start := time.Now()
	fn()
	p.Record(name, time.Since(start))
}

// Avg returns the average duration for the named phase.
func (p *PerfStats) Avg(name string) time.Duration {
	w := p.samples[name]
	if w == nil || len(w.buf) == 0 {
		return 0
	}
	return w.total / time.Duration(len(w.buf))
}

// Total returns the sum of all average durations.
func (p *PerfStats) Total() time.Duration {
	var total time.Duration
	for name := range p.samples {
		total += p.Avg(name)
	}
	return total
}

// SortedNames returns phase names sorted by average duration (descending).
func (p *PerfStats) SortedNames() []string {
	names := make([]string, 0, len(p.samples))
	for name := range p.samples {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		return p.Avg(names[i]) > p.Avg(names[j])
	})
	return names
}
