package fts

import "github.com/RoaringBitmap/roaring"

// i2qEntry is one interned word's best-known attribution to a query term:
// how closely it matched, which query term produced that match, and the
// bitmap of documents the underlying table row carries.
type i2qEntry struct {
	Distance   MatchDistance
	QueryIndex int
	Docs       *roaring.Bitmap
}

// betterThan reports whether a is a strictly better attribution than b,
// comparing (Distance, QueryIndex) lexicographically — closer distance
// wins, ties broken toward the earlier query term.
func (a i2qEntry) betterThan(b i2qEntry) bool {
	if a.Distance.Kind != b.Distance.Kind {
		return a.Distance.Kind == DistanceExact
	}
	if a.Distance.Value != b.Distance.Value {
		return a.Distance.Value < b.Distance.Value
	}
	return a.QueryIndex < b.QueryIndex
}

// indexToQuery is the reverse lookup a query executor builds while scanning
// one orientation's word tables: given a word identity, which query term
// best explains why it matched. A comparator later walks a document's own
// word lists through this map to score how well that document answers the
// query.
type indexToQuery struct {
	entries map[WordID]i2qEntry
	queryLen int
}

func newIndexToQuery() *indexToQuery {
	return &indexToQuery{entries: make(map[WordID]i2qEntry)}
}

// add records match as a candidate attribution for word at queryIndex,
// keeping whichever of the existing and new attribution is better.
func (m *indexToQuery) add(queryIndex int, match wordMatch) {
	if queryIndex+1 > m.queryLen {
		m.queryLen = queryIndex + 1
	}
	cand := i2qEntry{Distance: match.Distance, QueryIndex: queryIndex, Docs: match.Docs}
	if existing, ok := m.entries[match.Word]; !ok || cand.betterThan(existing) {
		m.entries[match.Word] = cand
	}
}

// get returns the best-known attribution for word, if any.
func (m *indexToQuery) get(word WordID) (i2qEntry, bool) {
	e, ok := m.entries[word]
	return e, ok
}

// len returns one past the highest query index ever added, the size a
// per-query-index match-distance vector needs.
func (m *indexToQuery) len() int {
	return m.queryLen
}
