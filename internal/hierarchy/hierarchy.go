// Package hierarchy implements the multi-level inclusion-policy state
// machine that coordinates an ordered tower of cache levels: inclusive
// back-invalidation, exclusive victim caching and promotion, and NINE's
// per-level independence.
package hierarchy

import (
	"github.com/yigitbektasgursoy/cache-simulator/internal/access"
	"github.com/yigitbektasgursoy/cache-simulator/internal/cache"
)

// Result is the outcome of one user-visible reference against the
// whole hierarchy.
type Result struct {
	Hit bool
	// Latency is the cumulative simulated cache latency of this
	// access across every level it touched. It never includes main
	// memory latency; the caller adds that on a miss.
	Latency uint64
	// WriteThroughToMemory is true when a write hit at a write-through
	// L0 is carried down past every lower level without meeting a
	// write-back level, so the caller must also record a main-memory
	// write (see SPEC_FULL.md §5, Open Question decision 2).
	WriteThroughToMemory bool
}

// evictionTracker is the single-slot scratch buffer of §4.4.2: it
// holds the most recent displacement out of L0 for the duration of one
// Access call.
type evictionTracker struct {
	valid   bool
	address uint64
	entry   cache.Entry
}

func (t *evictionTracker) set(address uint64, entry cache.Entry) {
	t.valid = true
	t.address = address
	t.entry = entry
}

// Hierarchy is an ordered tower L[0]..L[n-1], L[0] closest to the CPU.
type Hierarchy struct {
	levels []*cache.Level

	// preL0Valid records, for the most recent Access made while L[1] is
	// Exclusive, whether address was already resident in L[0] before
	// that access began; other accesses leave it unchanged. It is
	// purely observational (§4.4 Step A) and has no effect on the
	// outcome; it exists for tests and diagnostics.
	preL0Valid bool
}

// New builds a Hierarchy over levels, ordered closest-to-CPU first.
func New(levels []*cache.Level) *Hierarchy {
	return &Hierarchy{levels: levels}
}

// Levels returns the underlying level list, closest-to-CPU first.
func (h *Hierarchy) Levels() []*cache.Level { return h.levels }

// Access performs one memory reference against the hierarchy,
// implementing §4.4 Steps A through E.
func (h *Hierarchy) Access(address uint64, kind access.Kind) Result {
	n := len(h.levels)
	l0 := h.levels[0]

	// Step A: observational L0 pre-state, only meaningful when L1 is
	// Exclusive relative to L0.
	if n > 1 && h.levels[1].Config().InclusionPolicy == cache.Exclusive {
		_, _, h.preL0Valid = l0.Probe(address)
	}

	var total uint64
	var tracker evictionTracker

	// Step B.
	outB := l0.Access(address, kind)
	total += outB.Latency
	if outB.EvictedValid {
		tracker.set(outB.EvictedAddress, outB.EvictedEntry)
	}

	hitAny := outB.Hit
	writeThroughMem := false

	if hitAny {
		// Write-through propagation only matters on a hit: a miss
		// cascade (handled below) already carries the write down to
		// every level it touches.
		if kind == access.Write && !l0.Config().WriteBack && n > 1 {
			lat, reached := h.propagateWriteThrough(1, address)
			total += lat
			writeThroughMem = reached
		}
		return Result{Hit: true, Latency: total, WriteThroughToMemory: writeThroughMem}
	}

	allocate := kind == access.Read || (kind == access.Write && l0.Config().WriteAllocate)
	if !allocate {
		// Write-miss with no-write-allocate at L0 is a write-around:
		// the reference bypasses the rest of the hierarchy entirely
		// and goes straight to main memory (§9 Open Question 2).
		return Result{Hit: false, Latency: total}
	}

	// Steps C, D, and E merged: search for a hit while each visited
	// level's own Access call performs its own miss-allocation; apply
	// the inclusion-policy bookkeeping for whatever that level just
	// did, then victim-cache whatever the previous boundary evicted
	// into this level if this L[i-1]->L[i] boundary is Exclusive. A
	// chain of consecutive Exclusive boundaries lets one eviction
	// cascade arbitrarily deep, not just from L0 into L1: each level's
	// own capacity eviction becomes the candidate tracker for the next
	// boundary regardless of that level's own inclusion policy, and the
	// next iteration's Exclusive check decides whether to consume it.
	for i := 1; i < n; i++ {
		li := h.levels[i]
		exclusiveBoundary := li.Config().InclusionPolicy == cache.Exclusive

		outI := li.Access(address, kind)
		total += outI.Latency

		if outI.Hit {
			hitAny = true
			if exclusiveBoundary {
				if entry, ok := li.GetEntry(address); ok {
					li.Invalidate(address)
					fi := l0.ForceInstall(address, entry, kind)
					if fi.EvictedValid {
						tracker.set(fi.EvictedAddress, fi.EvictedEntry)
					}
				}
			}
			// On a hit at L1 the tracker holds whatever was displaced
			// out of L0 by this access (a fresh eviction from promoting
			// address in, or the Step B eviction if the promotion was an
			// in-place overwrite); it belongs one boundary down, at L1.
			// On a deeper hit the i == 1 iteration has already
			// victim-cached that displacement into an Exclusive L1, and
			// the tracker then holds L[i-1]'s own eviction, which is not
			// installed anywhere.
			if i == 1 && h.levels[1].Config().InclusionPolicy == cache.Exclusive &&
				tracker.valid && tracker.address != address {
				h.levels[1].ForceInstall(tracker.address, tracker.entry, access.Write)
			}
			break
		}

		switch li.Config().InclusionPolicy {
		case cache.Inclusive:
			if outI.EvictedValid {
				h.backInvalidate(outI.EvictedAddress, i)
			}
		case cache.Exclusive:
			// L[i] must not end up holding address; only L0 may.
			li.Invalidate(address)
		case cache.NINE:
			// Independent occupancy: leave as-is.
		}

		next := evictionTracker{}
		if outI.EvictedValid {
			next.set(outI.EvictedAddress, outI.EvictedEntry)
		}

		// Victim-cache whatever the previous boundary evicted into li,
		// now that li no longer holds address itself.
		if exclusiveBoundary && tracker.valid && tracker.address != address {
			fi := li.ForceInstall(tracker.address, tracker.entry, access.Write)
			if fi.EvictedValid {
				next.set(fi.EvictedAddress, fi.EvictedEntry)
			}
		}
		tracker = next
	}

	return Result{Hit: hitAny, Latency: total, WriteThroughToMemory: writeThroughMem}
}

// backInvalidate removes address from every level above fromLevel
// (§4.4.1), preserving the Inclusive invariant when a block leaves a
// lower level.
func (h *Hierarchy) backInvalidate(address uint64, fromLevel int) {
	for j := 0; j < fromLevel; j++ {
		h.levels[j].Invalidate(address)
	}
}

// propagateWriteThrough carries a synthetic write access down from
// startIdx until it meets a write-back level (which absorbs it) or
// falls off the end of the hierarchy (reachedMemory = true).
func (h *Hierarchy) propagateWriteThrough(startIdx int, address uint64) (latency uint64, reachedMemory bool) {
	for idx := startIdx; idx < len(h.levels); idx++ {
		lvl := h.levels[idx]
		out := lvl.Access(address, access.Write)
		latency += out.Latency
		if lvl.Config().WriteBack {
			return latency, false
		}
	}
	return latency, true
}

// Reset reinitializes every level in the hierarchy.
func (h *Hierarchy) Reset() {
	for _, l := range h.levels {
		l.Reset()
	}
}
