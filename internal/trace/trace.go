// Package trace supplies the memory-reference producers that drive a
// simulation run: a file-backed reader, a synthetic pattern generator,
// and a thin callback adapter.
package trace

import (
	"github.com/yigitbektasgursoy/cache-simulator/internal/access"
)

// Producer yields one memory access at a time. Next returns ok=false
// once the trace is exhausted.
type Producer interface {
	Next() (access.MemoryAccess, bool)
	// Reset rewinds the producer to its starting state.
	// CallbackProducer's Reset does nothing.
	Reset()
	// Clone returns an independent copy positioned at the start, so the
	// same trace can be replayed against several configurations without
	// re-parsing a file or re-seeding randomness differently. Producers
	// that cannot support this (CallbackProducer) return an error.
	Clone() (Producer, error)
}
