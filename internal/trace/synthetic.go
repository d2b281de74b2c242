package trace

import (
	"math/rand"

	"github.com/yigitbektasgursoy/cache-simulator/internal/access"
	"github.com/yigitbektasgursoy/cache-simulator/internal/errs"
)

// Pattern names a synthetic address-generation scheme.
type Pattern int

const (
	Sequential Pattern = iota
	Random
	Strided
	Looping
)

func (p Pattern) String() string {
	switch p {
	case Sequential:
		return "Sequential"
	case Random:
		return "Random"
	case Strided:
		return "Strided"
	case Looping:
		return "Looping"
	default:
		return "Sequential"
	}
}

// ParsePattern defaults to Sequential on an unrecognized name.
func ParsePattern(s string) Pattern {
	switch s {
	case "Sequential", "sequential":
		return Sequential
	case "Random", "random":
		return Random
	case "Strided", "strided":
		return Strided
	case "Looping", "looping":
		return Looping
	default:
		return Sequential
	}
}

// strideWidth is the fixed stride used by the Strided pattern, one
// block of a typical 64-byte cache line.
const strideWidth = 64

// loopPoolSize bounds the Looping pattern's address pool.
const loopPoolSize = 100

// SyntheticSpec parameterizes a SyntheticProducer.
type SyntheticSpec struct {
	Pattern      Pattern
	StartAddress uint64
	EndAddress   uint64
	NumAccesses  int
	ReadRatio    float64
	Seed         int64
}

// SyntheticProducer generates a reproducible stream of accesses from a
// SyntheticSpec without reading any file.
type SyntheticProducer struct {
	spec SyntheticSpec
	rng  *rand.Rand
	pool []uint64
	i    int
}

// NewSyntheticProducer validates spec and returns a ready producer.
func NewSyntheticProducer(spec SyntheticSpec) (*SyntheticProducer, error) {
	if spec.ReadRatio < 0 || spec.ReadRatio > 1 {
		return nil, errs.NewConfigError("synthetic trace", "readRatio must be within [0,1]")
	}
	if spec.NumAccesses <= 0 {
		return nil, errs.NewConfigError("synthetic trace", "numAccesses must be positive")
	}
	if spec.EndAddress < spec.StartAddress {
		return nil, errs.NewConfigError("synthetic trace", "endAddress must not be less than startAddress")
	}

	p := &SyntheticProducer{spec: spec}
	p.rng = rand.New(rand.NewSource(spec.Seed))
	if spec.Pattern == Looping {
		p.pool = p.buildPool()
	}
	return p, nil
}

func (p *SyntheticProducer) buildPool() []uint64 {
	span := p.spec.EndAddress - p.spec.StartAddress + 1
	n := loopPoolSize
	if span < uint64(n) {
		n = int(span)
	}
	pool := make([]uint64, n)
	for i := range pool {
		pool[i] = p.spec.StartAddress + p.rng.Uint64()%span
	}
	return pool
}

// Next implements Producer.
func (p *SyntheticProducer) Next() (access.MemoryAccess, bool) {
	if p.i >= p.spec.NumAccesses {
		return access.MemoryAccess{}, false
	}

	var addr uint64
	span := p.spec.EndAddress - p.spec.StartAddress + 1

	switch p.spec.Pattern {
	case Sequential:
		addr = p.spec.StartAddress + uint64(p.i)%span
	case Strided:
		addr = p.spec.StartAddress + (uint64(p.i)*strideWidth)%span
	case Random:
		addr = p.spec.StartAddress + p.rng.Uint64()%span
	case Looping:
		addr = p.pool[p.i%len(p.pool)]
	default:
		addr = p.spec.StartAddress
	}

	kind := access.Read
	if p.rng.Float64() >= p.spec.ReadRatio {
		kind = access.Write
	}

	p.i++
	return access.MemoryAccess{Address: addr, Kind: kind}, true
}

// Reset implements Producer: it rewinds the cursor and reseeds the
// random source so a second pass reproduces the identical sequence.
func (p *SyntheticProducer) Reset() {
	p.i = 0
	p.rng = rand.New(rand.NewSource(p.spec.Seed))
	if p.spec.Pattern == Looping {
		p.pool = p.buildPool()
	}
}

// Clone implements Producer.
func (p *SyntheticProducer) Clone() (Producer, error) {
	return NewSyntheticProducer(p.spec)
}
