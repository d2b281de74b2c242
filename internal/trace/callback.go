package trace

import (
	"github.com/yigitbektasgursoy/cache-simulator/internal/access"
	"github.com/yigitbektasgursoy/cache-simulator/internal/errs"
)

// CallbackProducer adapts an arbitrary Go function into a Producer. It
// cannot support Clone or Reset in general, since the wrapped function
// may close over external, non-replayable state (a socket, a live
// generator with no rewind).
type CallbackProducer struct {
	fn func() (access.MemoryAccess, bool)
}

// NewCallbackProducer wraps next.
func NewCallbackProducer(next func() (access.MemoryAccess, bool)) *CallbackProducer {
	return &CallbackProducer{fn: next}
}

// Next implements Producer.
func (p *CallbackProducer) Next() (access.MemoryAccess, bool) { return p.fn() }

// Reset is a no-op; callers relying on rewind semantics should not use
// a CallbackProducer.
func (p *CallbackProducer) Reset() {}

// Clone always fails: a callback closure's internal state is opaque to
// this package.
func (p *CallbackProducer) Clone() (Producer, error) {
	return nil, errs.NewConfigError("callback trace", "callback producers cannot be cloned")
}
