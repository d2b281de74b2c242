// Package sim drives one simulation run: it pulls accesses from a
// trace.Producer, replays each against a hierarchy.Hierarchy, records
// main-memory traffic for every miss and every write-through write
// that reaches memory, and hands the finished pair to the metrics
// collector.
package sim

import (
	"time"

	"github.com/yigitbektasgursoy/cache-simulator/internal/access"
	"github.com/yigitbektasgursoy/cache-simulator/internal/hierarchy"
	"github.com/yigitbektasgursoy/cache-simulator/internal/memory"
	"github.com/yigitbektasgursoy/cache-simulator/internal/metrics"
	"github.com/yigitbektasgursoy/cache-simulator/internal/trace"
)

// Run replays every access producer yields against h, accounting for
// main memory traffic on a hierarchy miss, and returns the derived
// report under testName. It does not reset h or m first; callers that
// want a clean run should call their Reset methods beforehand.
func Run(testName string, producer trace.Producer, h *hierarchy.Hierarchy, m *memory.Memory) metrics.Report {
	start := time.Now()
	for {
		a, ok := producer.Next()
		if !ok {
			break
		}
		result := h.Access(a.Address, a.Kind)
		if !result.Hit {
			m.Access(a.Kind)
		} else if result.WriteThroughToMemory {
			m.Access(access.Write)
		}
	}
	elapsed := time.Since(start)

	return metrics.New().Collect(testName, h, m, elapsed)
}
