// Package metrics derives AMAT and per-level contributions from a
// completed hierarchy and memory pairing, per §4.6.
package metrics

import (
	"time"

	"github.com/yigitbektasgursoy/cache-simulator/internal/cache"
	"github.com/yigitbektasgursoy/cache-simulator/internal/hierarchy"
	"github.com/yigitbektasgursoy/cache-simulator/internal/memory"
)

// LevelStats is one level's contribution to the report.
type LevelStats struct {
	Name            string
	Hits            uint64
	Misses          uint64
	HitRate         float64
	Latency         uint64
	InclusionPolicy string
}

// Report is the full set of derived metrics for one simulation run.
type Report struct {
	TestName     string
	Levels       []LevelStats
	AMAT         float64
	MemoryReads  uint64
	MemoryWrites uint64
	WallClock    time.Duration
}

// Collector computes Report values from a Hierarchy and Memory.
type Collector struct{}

// New returns a Collector. It holds no state of its own; every
// simulation run is self-contained per §5.
func New() Collector { return Collector{} }

// Collect derives the report for one completed run. elapsed is the
// observational wall-clock duration of replaying the trace; it plays
// no part in the simulated AMAT.
func (Collector) Collect(testName string, h *hierarchy.Hierarchy, m *memory.Memory, elapsed time.Duration) Report {
	levels := h.Levels()
	stats := make([]LevelStats, len(levels))
	missProduct := 1.0
	amat := 0.0

	for i, l := range levels {
		hits := l.Hits()
		misses := l.Misses()
		rate := hitRate(hits, misses)
		cfg := l.Config()

		stats[i] = LevelStats{
			Name:            cfg.Name,
			Hits:            hits,
			Misses:          misses,
			HitRate:         rate,
			Latency:         cfg.AccessLatency,
			InclusionPolicy: inclusionLabel(i, cfg),
		}

		amat += missProduct * float64(cfg.AccessLatency)
		missProduct *= 1 - rate
	}

	amat += missProduct * float64(m.Latency)

	return Report{
		TestName:     testName,
		Levels:       stats,
		AMAT:         amat,
		MemoryReads:  m.Reads(),
		MemoryWrites: m.Writes(),
		WallClock:    elapsed,
	}
}

func hitRate(hits, misses uint64) float64 {
	total := hits + misses
	if total == 0 {
		return 0
	}
	return float64(hits) / float64(total)
}

// inclusionLabel reports "-" for level 1, which ignores inclusion
// policy entirely (§3).
func inclusionLabel(index int, cfg cache.Config) string {
	if index == 0 {
		return "-"
	}
	return cfg.InclusionPolicy.String()
}
