// ═══════════════════════════════════════════════════════════════════════════════
// RESULT COMPARATOR
// ═══════════════════════════════════════════════════════════════════════════════
// Rather than rank matches with a single BM25-style scalar plus a
// tie-breaking proximity pass, this comparator produces a strict total order
// with no scalar at all: attributes are grouped into priority tiers, and two
// documents are compared tier by tier, highest priority first, each tier
// contributing first a match-distance comparison and then a proximity
// comparison before the next tier is ever consulted. A document only reaches
// a lower tier if every higher tier tied exactly.
//
// The tier table is a derived, rarely-changing structure memoized per
// Searcher with sync.Once, rebuilt only when the attribute registry changes.
// Per-call scratch space is pooled with sync.Pool so that ranking a results
// page under concurrent queries doesn't thrash the allocator the way a fresh
// slice per Compare call would.
// ═══════════════════════════════════════════════════════════════════════════════

package fts

import "sync"

// tierAttr names one attribute's contribution to a tier: which direction's
// orientation index holds it, and its slot index within that direction's
// per-document attrs.
type tierAttr struct {
	Direction Direction
	AttrIndex int
}

// tier groups every attribute sharing one priority level. Lower Priority
// values are consulted first; within a tier, every listed attribute
// contributes to the same pair of sub-scores rather than being compared
// separately.
type tier struct {
	Priority uint8
	Attrs    []tierAttr
}

// tierTable is a Searcher's memoized, priority-sorted tier list alongside a
// sync.Once guarding its one-time construction.
type tierTable struct {
	once  sync.Once
	tiers []tier
}

// slot is one query-index's best-known contribution to a tier's score,
// merged across every attribute the tier lists. Because it is only ever
// overwritten on a strict distance improvement, the first attribute (in
// tier order) and first position (within that attribute's word sequence)
// reaching a given distance keeps the slot — realizing "first wins on tie".
type slot struct {
	distance    MatchDistance
	hasDistance bool
	position    int
	hasPosition bool
}

// tierScratch is the pooled per-side buffer a comparator borrows for the
// duration of a single tier comparison.
type tierScratch struct {
	slots []slot
}

func (s *tierScratch) reset(n int) {
	if cap(s.slots) < n {
		s.slots = make([]slot, n)
		return
	}
	s.slots = s.slots[:n]
	for i := range s.slots {
		s.slots[i] = slot{}
	}
}

// resultComparator implements a strict total order over the documents an
// executionResult matched, grounded in one query's own tier table and
// IndexToQuery maps. Build one per query; never share across queries, since
// its IndexToQuery maps are query-specific.
type resultComparator struct {
	tiers    []tier
	forward  *orientationIndex
	backward *orientationIndex
	fwdI2Q   *indexToQuery
	bwdI2Q   *indexToQuery
	queryLen int
	pool     sync.Pool
}

func newResultComparator(tiers []tier, forward, backward *orientationIndex, res executionResult) *resultComparator {
	queryLen := res.Forward.len()
	if res.Backward.len() > queryLen {
		queryLen = res.Backward.len()
	}
	return &resultComparator{
		tiers:    tiers,
		forward:  forward,
		backward: backward,
		fwdI2Q:   res.Forward,
		bwdI2Q:   res.Backward,
		queryLen: queryLen,
		pool: sync.Pool{New: func() any {
			return &tierScratch{}
		}},
	}
}

func (c *resultComparator) borrow() *tierScratch {
	s := c.pool.Get().(*tierScratch)
	s.reset(c.queryLen)
	return s
}

func (c *resultComparator) release(s *tierScratch) {
	c.pool.Put(s)
}

// orientationFor resolves which orientation index and IndexToQuery a tier
// attribute's direction maps to.
func (c *resultComparator) orientationFor(dir Direction) (*orientationIndex, *indexToQuery) {
	if dir == Backward {
		return c.backward, c.bwdI2Q
	}
	return c.forward, c.fwdI2Q
}

// fill merges every attribute in tier into scratch for doc: for each word in
// each listed attribute's word sequence (in original, repeats-included
// order), look up its best attribution via that direction's IndexToQuery and
// keep the minimum distance seen per query index, alongside the position of
// the occurrence that produced it.
func (c *resultComparator) fill(scratch *tierScratch, doc DocID, t tier) {
	for _, ta := range t.Attrs {
		orient, i2q := c.orientationFor(ta.Direction)
		rec, ok := orient.docs[doc]
		if !ok || ta.AttrIndex >= len(rec.attrs) {
			continue
		}
		words := rec.attrs[ta.AttrIndex].words
		for pos, w := range words {
			entry, ok := i2q.get(w)
			if !ok {
				continue
			}
			qi := entry.QueryIndex
			if qi >= len(scratch.slots) {
				continue
			}
			s := &scratch.slots[qi]
			if !s.hasDistance || entry.Distance.Less(s.distance) {
				s.distance = entry.Distance
				s.hasDistance = true
				s.position = pos
				s.hasPosition = true
			}
		}
	}
}

// Compare returns a negative number if lid ranks ahead of rid, a positive
// number if rid ranks ahead of lid, and zero if every tier ties exactly.
func (c *resultComparator) Compare(lid, rid DocID) int {
	lUsed, rUsed := 0, 0

	for _, t := range c.tiers {
		ls := c.borrow()
		rs := c.borrow()
		c.fill(ls, lid, t)
		c.fill(rs, rid, t)

		lMatched := anyMatched(ls)
		rMatched := anyMatched(rs)
		if lMatched {
			lUsed++
		}
		if rMatched {
			rUsed++
		}

		cmp := compareMatchDistance(ls, rs)
		if cmp == 0 {
			cmp = compareProximity(ls, rs)
		}
		c.release(ls)
		c.release(rs)
		if cmp != 0 {
			return cmp
		}
	}

	// Every tier tied; the side that needed fewer tiers to fully account for
	// its matches sorts first.
	if lUsed != rUsed {
		if lUsed > rUsed {
			return 1
		}
		return -1
	}
	return 0
}

func anyMatched(s *tierScratch) bool {
	for _, sl := range s.slots {
		if sl.hasDistance {
			return true
		}
	}
	return false
}

// rankedSlot is one matched query index carried alongside its distance, kept
// together so a tie in distance can still break deterministically on
// query_index.
type rankedSlot struct {
	distance MatchDistance
	index    int
}

// compareMatchDistance realizes the match-distance sub-score: build each
// side's list of matched (distance, query_index) pairs, sort each list
// ascending by distance then query_index, and compare the two lists
// lexicographically. A shorter list — fewer matched query terms — compares
// worse than a longer one at the point the longer list keeps a value where
// the shorter one has none.
func compareMatchDistance(l, r *tierScratch) int {
	lv := rankedSlots(l)
	rv := rankedSlots(r)

	n := len(lv)
	if len(rv) < n {
		n = len(rv)
	}
	for i := 0; i < n; i++ {
		if lv[i].distance.Kind != rv[i].distance.Kind || lv[i].distance.Value != rv[i].distance.Value {
			if lv[i].distance.Less(rv[i].distance) {
				return -1
			}
			return 1
		}
		if lv[i].index != rv[i].index {
			if lv[i].index < rv[i].index {
				return -1
			}
			return 1
		}
	}
	if len(lv) != len(rv) {
		if len(lv) < len(rv) {
			return 1
		}
		return -1
	}
	return 0
}

func rankedSlots(s *tierScratch) []rankedSlot {
	out := make([]rankedSlot, 0, len(s.slots))
	for i, sl := range s.slots {
		if sl.hasDistance {
			out = append(out, rankedSlot{distance: sl.distance, index: i})
		}
	}
	sortRankedSlots(out)
	return out
}

// sortRankedSlots is a small insertion sort: tier widths are bounded by how
// many query terms an attribute can match, never large enough to need
// anything fancier.
func sortRankedSlots(s []rankedSlot) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && rankedSlotLess(s[j], s[j-1]); j-- {
			s[j], s[j-1] = s[j-1], s[j]
		}
	}
}

func rankedSlotLess(a, b rankedSlot) bool {
	if a.distance.Kind != b.distance.Kind || a.distance.Value != b.distance.Value {
		return a.distance.Less(b.distance)
	}
	return a.index < b.index
}

// proximityScore is the count/proximity/seq triple computed from a tier's
// matched positions, per the (count desc, proximity asc, seq desc) ordering.
type proximityScore struct {
	count      int
	proximity  int
	seq        int
}

// compareProximity ranks more matched positions ahead of fewer, tighter
// spans ahead of looser ones, and more query-order-respecting adjacent pairs
// ahead of fewer.
func compareProximity(l, r *tierScratch) int {
	lp := buildProximity(l)
	rp := buildProximity(r)

	if lp.count != rp.count {
		if lp.count > rp.count {
			return -1
		}
		return 1
	}
	if lp.proximity != rp.proximity {
		if lp.proximity < rp.proximity {
			return -1
		}
		return 1
	}
	if lp.seq != rp.seq {
		if lp.seq > rp.seq {
			return -1
		}
		return 1
	}
	return 0
}

func buildProximity(s *tierScratch) proximityScore {
	var score proximityScore
	min, max := -1, -1
	prevPos := -1
	prevSet := false

	for _, sl := range s.slots {
		if !sl.hasPosition {
			prevSet = false
			continue
		}
		score.count++
		if min == -1 || sl.position < min {
			min = sl.position
		}
		if sl.position > max {
			max = sl.position
		}
		if prevSet && prevPos < sl.position {
			score.seq++
		}
		prevPos = sl.position
		prevSet = true
	}

	if score.count > 0 {
		score.proximity = max - min
	}
	return score
}
