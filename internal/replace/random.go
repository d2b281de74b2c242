package replace

import "math/rand"

// randomPolicy tracks occupancy only; OnAccess is otherwise a no-op.
// Victim prefers an empty way, else draws uniformly from [0, numWays)
// using a policy-owned, seedable RNG so runs are reproducible.
type randomPolicy struct {
	occupancy
	rng  *rand.Rand
	seed int64
}

func newRandomPolicy(numSets, numWays int, seed int64) *randomPolicy {
	return &randomPolicy{
		occupancy: newOccupancy(numSets, numWays),
		rng:       rand.New(rand.NewSource(seed)),
		seed:      seed,
	}
}

func (p *randomPolicy) OnAccess(set, way int) {
	p.mark(set, way)
}

func (p *randomPolicy) Forget(set, way int) {
	p.unmark(set, way)
}

func (p *randomPolicy) Victim(set, numWays int) int {
	if w := p.emptyWay(set); w >= 0 {
		return w
	}
	return p.rng.Intn(numWays)
}

func (p *randomPolicy) Reset() {
	p.occupancy.reset()
	p.rng = rand.New(rand.NewSource(p.seed))
}

func (p *randomPolicy) Clone() Policy {
	return &randomPolicy{
		occupancy: p.occupancy.clone(),
		rng:       rand.New(rand.NewSource(p.seed)),
		seed:      p.seed,
	}
}
