package replace

import "container/list"

// lruPolicy maintains, per set, a recency order over installed ways
// using container/list: front is MRU, back is LRU.
type lruPolicy struct {
	occupancy
	order []*list.List
	elems []map[int]*list.Element
}

func newLRUPolicy(numSets, numWays int) *lruPolicy {
	p := &lruPolicy{
		occupancy: newOccupancy(numSets, numWays),
		order:     make([]*list.List, numSets),
		elems:     make([]map[int]*list.Element, numSets),
	}
	for i := 0; i < numSets; i++ {
		p.order[i] = list.New()
		p.elems[i] = make(map[int]*list.Element)
	}
	return p
}

func (p *lruPolicy) OnAccess(set, way int) {
	p.mark(set, way)
	if e, ok := p.elems[set][way]; ok {
		p.order[set].MoveToFront(e)
		return
	}
	p.elems[set][way] = p.order[set].PushFront(way)
}

func (p *lruPolicy) Victim(set, numWays int) int {
	if w := p.emptyWay(set); w >= 0 {
		return w
	}
	back := p.order[set].Back()
	if back == nil {
		return 0
	}
	return back.Value.(int)
}

func (p *lruPolicy) Forget(set, way int) {
	p.unmark(set, way)
	if e, ok := p.elems[set][way]; ok {
		p.order[set].Remove(e)
		delete(p.elems[set], way)
	}
}

func (p *lruPolicy) Reset() {
	p.occupancy.reset()
	for i := range p.order {
		p.order[i].Init()
		p.elems[i] = make(map[int]*list.Element)
	}
}

func (p *lruPolicy) Clone() Policy {
	c := &lruPolicy{
		occupancy: p.occupancy.clone(),
		order:     make([]*list.List, len(p.order)),
		elems:     make([]map[int]*list.Element, len(p.elems)),
	}
	for i, l := range p.order {
		c.order[i] = list.New()
		c.elems[i] = make(map[int]*list.Element)
		for e := l.Front(); e != nil; e = e.Next() {
			way := e.Value.(int)
			c.elems[i][way] = c.order[i].PushBack(way)
		}
	}
	return c
}
