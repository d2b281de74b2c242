// Package memory models the main memory behind the last cache level: a
// fixed latency and two traffic counters. It holds no contents.
package memory

import "github.com/yigitbektasgursoy/cache-simulator/internal/access"

// Memory is stateless with respect to contents; it only tracks latency
// and read/write counts.
type Memory struct {
	Latency uint64

	reads  uint64
	writes uint64
}

// New returns a Memory with the given fixed access latency.
func New(latency uint64) *Memory {
	return &Memory{Latency: latency}
}

// Access records one read or write and returns the configured latency.
func (m *Memory) Access(kind access.Kind) uint64 {
	if kind == access.Write {
		m.writes++
	} else {
		m.reads++
	}
	return m.Latency
}

// Reads returns the number of write-less accesses counted so far.
func (m *Memory) Reads() uint64 { return m.reads }

// Writes returns the number of write accesses counted so far.
func (m *Memory) Writes() uint64 { return m.writes }

// Reset zeros the traffic counters; the latency is unaffected.
func (m *Memory) Reset() {
	m.reads = 0
	m.writes = 0
}
