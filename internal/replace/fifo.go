package replace

import "container/list"

// fifoPolicy maintains, per set, the insertion order of ways (not
// access order): OnAccess appends a way only the first time it is
// installed; repeated hits never reorder it. Victim pops the front of
// the queue, i.e. oldest-inserted-first (§9 Open Question 1 — the
// queue-based, front-removal orientation).
type fifoPolicy struct {
	occupancy
	queue []*list.List
	elems []map[int]*list.Element
}

func newFIFOPolicy(numSets, numWays int) *fifoPolicy {
	p := &fifoPolicy{
		occupancy: newOccupancy(numSets, numWays),
		queue:     make([]*list.List, numSets),
		elems:     make([]map[int]*list.Element, numSets),
	}
	for i := 0; i < numSets; i++ {
		p.queue[i] = list.New()
		p.elems[i] = make(map[int]*list.Element)
	}
	return p
}

func (p *fifoPolicy) OnAccess(set, way int) {
	p.mark(set, way)
	if _, ok := p.elems[set][way]; ok {
		return
	}
	p.elems[set][way] = p.queue[set].PushBack(way)
}

func (p *fifoPolicy) Victim(set, numWays int) int {
	if w := p.emptyWay(set); w >= 0 {
		return w
	}
	front := p.queue[set].Front()
	if front == nil {
		return 0
	}
	return front.Value.(int)
}

func (p *fifoPolicy) Forget(set, way int) {
	p.unmark(set, way)
	if e, ok := p.elems[set][way]; ok {
		p.queue[set].Remove(e)
		delete(p.elems[set], way)
	}
}

func (p *fifoPolicy) Reset() {
	p.occupancy.reset()
	for i := range p.queue {
		p.queue[i].Init()
		p.elems[i] = make(map[int]*list.Element)
	}
}

func (p *fifoPolicy) Clone() Policy {
	c := &fifoPolicy{
		occupancy: p.occupancy.clone(),
		queue:     make([]*list.List, len(p.queue)),
		elems:     make([]map[int]*list.Element, len(p.elems)),
	}
	for i, l := range p.queue {
		c.queue[i] = list.New()
		c.elems[i] = make(map[int]*list.Element)
		for e := l.Front(); e != nil; e = e.Next() {
			way := e.Value.(int)
			c.elems[i][way] = c.queue[i].PushBack(way)
		}
	}
	return c
}
