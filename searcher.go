// ═══════════════════════════════════════════════════════════════════════════════
// SEARCHER FACADE
// ═══════════════════════════════════════════════════════════════════════════════
// Searcher is the one type calling code constructs directly. It owns the
// attribute registry, the two orientation indices, and the memoized tier
// table a comparator needs, and translates the caller's attribute-id/DocID
// vocabulary into the dense per-direction indices the lower components
// require. This facade is where slog calls live for the whole package —
// word tables, the interner, the query executor, and the comparator all
// stay silent, and only mutation and query entry points log.
//
// Writes (SetAttribute, RemoveAttribute, InsertDocAttribute, RemoveDoc) are
// expected to run on a single goroutine at a time; Query is read-only and
// safe to call concurrently once
// writes have stopped, which is also why the tier table is memoized behind
// sync.Once rather than recomputed on every query.
// ═══════════════════════════════════════════════════════════════════════════════

package fts

import (
	"log/slog"
	"sort"
	"sync"

	"github.com/RoaringBitmap/roaring"
)

// AttributeOptions describes how a registered attribute's words are routed:
// which orientation it feeds, the priority tier it ranks in (lower sorts
// first), and, optionally, which culture partition it belongs to.
type AttributeOptions struct {
	Direction  Direction
	Priority   uint8
	Culture    uint8
	HasCulture bool
}

type attributeRecord struct {
	id       AttributeID
	opts     AttributeOptions
	dirIndex int
}

// tierCache is a lazily-built, memoized priority grouping of every
// registered attribute. sync.Once can't be reset, so invalidation replaces
// the whole cache (and its Once) rather than clearing one in place.
type tierCache struct {
	once  sync.Once
	tiers []tier
}

// Searcher owns every document and attribute indexed under one logical
// collection. The zero value is not usable; construct with NewSearcher or
// NewSearcherWithBuckets.
type Searcher struct {
	attrs map[AttributeID]*attributeRecord
	order []AttributeID

	forwardOrder  []AttributeID
	backwardOrder []AttributeID

	maxCultureFwd int
	maxCultureBwd int

	forward  *orientationIndex
	backward *orientationIndex

	tiers         *tierCache
	buckets       []FuzzyBucket
	tokenizerOpts TokenizerOptions

	log *slog.Logger
}

// NewSearcher builds an empty Searcher using the default fuzzy-edit buckets
// and tokenizer options.
func NewSearcher() *Searcher {
	return NewSearcherWithBuckets(DefaultFuzzyBuckets)
}

// NewSearcherWithBuckets builds an empty Searcher with a caller-supplied
// fuzzy edit-distance bucket table in place of DefaultFuzzyBuckets.
func NewSearcherWithBuckets(buckets []FuzzyBucket) *Searcher {
	s := &Searcher{
		attrs:         make(map[AttributeID]*attributeRecord),
		maxCultureFwd: -1,
		maxCultureBwd: -1,
		forward:       newOrientationIndex(Forward),
		backward:      newOrientationIndex(Backward),
		tiers:         &tierCache{},
		buckets:       buckets,
		tokenizerOpts: DefaultTokenizerOptions(),
		log:           slog.Default(),
	}
	return s
}

func (s *Searcher) invalidateTiers() {
	s.tiers = &tierCache{}
}

func (s *Searcher) orientationFor(dir Direction) *orientationIndex {
	if dir == Backward {
		return s.backward
	}
	return s.forward
}

// SetAttribute registers a new attribute under id with the given options.
// It returns false without effect if id is already registered; updating an
// existing attribute's options is not supported — remove it and register it
// again instead.
func (s *Searcher) SetAttribute(id AttributeID, opts AttributeOptions) bool {
	if _, exists := s.attrs[id]; exists {
		return false
	}

	var dirOrder *[]AttributeID
	var maxCulture *int
	if opts.Direction == Backward {
		dirOrder, maxCulture = &s.backwardOrder, &s.maxCultureBwd
	} else {
		dirOrder, maxCulture = &s.forwardOrder, &s.maxCultureFwd
	}

	dirIndex := len(*dirOrder)
	*dirOrder = append(*dirOrder, id)

	rec := &attributeRecord{id: id, opts: opts, dirIndex: dirIndex}
	s.attrs[id] = rec
	s.order = append(s.order, id)

	if opts.HasCulture && int(opts.Culture) > *maxCulture {
		*maxCulture = int(opts.Culture)
		s.orientationFor(opts.Direction).ensureCulture(*maxCulture, s.directionMetas(opts.Direction))
	}

	s.invalidateTiers()
	s.log.Info("attribute registered", slog.Uint64("attributeID", uint64(id)),
		slog.String("direction", opts.Direction.String()), slog.Int("priority", int(opts.Priority)))
	return true
}

// RemoveAttribute unregisters id, dropping every document's words for it
// from its orientation index and compacting the remaining attributes' dense
// indices within that direction. Reports whether id was registered.
func (s *Searcher) RemoveAttribute(id AttributeID) bool {
	rec, ok := s.attrs[id]
	if !ok {
		return false
	}

	info := attrCultureInfo{HasCulture: rec.opts.HasCulture, Culture: rec.opts.Culture}
	s.orientationFor(rec.opts.Direction).removeAttribute(rec.dirIndex, info)

	dirOrder := &s.forwardOrder
	if rec.opts.Direction == Backward {
		dirOrder = &s.backwardOrder
	}
	compacted := (*dirOrder)[:0]
	for _, other := range *dirOrder {
		if other == id {
			continue
		}
		compacted = append(compacted, other)
	}
	*dirOrder = compacted
	for i, other := range *dirOrder {
		s.attrs[other].dirIndex = i
	}

	delete(s.attrs, id)
	for i, other := range s.order {
		if other == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}

	s.invalidateTiers()
	s.log.Info("attribute removed", slog.Uint64("attributeID", uint64(id)))
	return true
}

// directionMetas returns, in dense-index order, the culture info of every
// attribute currently registered in dir — the shape ensureCulture and
// removeDoc need to know which word table(s) each attribute slot feeds.
func (s *Searcher) directionMetas(dir Direction) []attrCultureInfo {
	order := s.forwardOrder
	if dir == Backward {
		order = s.backwardOrder
	}
	metas := make([]attrCultureInfo, len(order))
	for i, id := range order {
		rec := s.attrs[id]
		metas[i] = attrCultureInfo{HasCulture: rec.opts.HasCulture, Culture: rec.opts.Culture}
	}
	return metas
}

// InsertDocAttribute tokenizes value and stores it as doc's contribution to
// the attribute named by id, replacing any previous value doc held for that
// attribute. Returns ErrAttributeNotFound if id isn't registered.
func (s *Searcher) InsertDocAttribute(doc DocID, id AttributeID, value string) error {
	rec, ok := s.attrs[id]
	if !ok {
		return ErrAttributeNotFound
	}
	info := attrCultureInfo{HasCulture: rec.opts.HasCulture, Culture: rec.opts.Culture}
	s.orientationFor(rec.opts.Direction).insertAttribute(doc, rec.dirIndex, info, value, s.tokenizerOpts)
	s.log.Debug("document attribute indexed", slog.Uint64("docID", uint64(doc)),
		slog.Uint64("attributeID", uint64(id)), slog.Int("length", len(value)))
	return nil
}

// RemoveDoc clears every attribute doc contributed, in both orientations.
func (s *Searcher) RemoveDoc(doc DocID) {
	s.forward.removeDoc(doc, s.directionMetas(Forward))
	s.backward.removeDoc(doc, s.directionMetas(Backward))
	s.log.Info("document removed", slog.Uint64("docID", uint64(doc)))
}

func (s *Searcher) getTiers() []tier {
	tc := s.tiers
	tc.once.Do(func() { tc.tiers = s.buildTiers() })
	return tc.tiers
}

// buildTiers groups every registered attribute by priority, ascending, and
// within a tier preserves each attribute's original registration order.
func (s *Searcher) buildTiers() []tier {
	byPriority := make(map[uint8][]tierAttr)
	for _, id := range s.order {
		rec := s.attrs[id]
		byPriority[rec.opts.Priority] = append(byPriority[rec.opts.Priority], tierAttr{
			Direction: rec.opts.Direction,
			AttrIndex: rec.dirIndex,
		})
	}

	priorities := make([]uint8, 0, len(byPriority))
	for p := range byPriority {
		priorities = append(priorities, p)
	}
	sort.Slice(priorities, func(i, j int) bool { return priorities[i] < priorities[j] })

	tiers := make([]tier, 0, len(priorities))
	for _, p := range priorities {
		tiers = append(tiers, tier{Priority: p, Attrs: byPriority[p]})
	}
	return tiers
}

// Query runs sq against the current index state and returns its matched
// documents alongside a comparator for ordering them.
func (s *Searcher) Query(sq SearchQuery) *SearchResults {
	exec := queryExecutor{forward: s.forward, backward: s.backward, buckets: s.buckets}
	res := exec.execute(&sq)
	tiers := s.getTiers()
	cmp := newResultComparator(tiers, s.forward, s.backward, res)

	s.log.Debug("query executed", slog.Int("terms", len(sq.Words)),
		slog.Uint64("matched", uint64(res.Docs.GetCardinality())))

	return &SearchResults{
		docs:     res.Docs,
		forward:  res.Forward,
		backward: res.Backward,
		cmp:      cmp,
	}
}

// SearchResults is the outcome of one Query call: the matched document set,
// plus enough state to rank and explain those matches.
type SearchResults struct {
	docs     *roaring.Bitmap
	forward  *indexToQuery
	backward *indexToQuery
	cmp      *resultComparator
}

// ContainsDoc reports whether doc is among the matched results.
func (r *SearchResults) ContainsDoc(doc DocID) bool {
	return r.docs.Contains(uint32(doc))
}

// Len reports how many documents matched.
func (r *SearchResults) Len() int {
	return int(r.docs.GetCardinality())
}

// DocIDs returns every matched document id in ascending order.
func (r *SearchResults) DocIDs() []DocID {
	ids := make([]DocID, 0, r.docs.GetCardinality())
	it := r.docs.Iterator()
	for it.HasNext() {
		ids = append(ids, DocID(it.Next()))
	}
	return ids
}

// Compare orders two matched documents: ahead of one another, or tied. It
// implements the total order a caller's own sort.Slice comparator can defer
// to directly.
func (r *SearchResults) Compare(a, b DocID) int {
	return r.cmp.Compare(a, b)
}

// AttributeMatch names one attribute's contribution to why a document
// matched: the attribute's direction and dense index, the matched word, how
// closely it matched, and which query term it answered.
type AttributeMatch struct {
	Direction  Direction
	AttrIndex  int
	Word       string
	Distance   MatchDistance
	QueryIndex int
}

// Matches enumerates every (word, distance, query_index) explanation for why
// doc is present in the results, across both orientations' attributes.
func (r *SearchResults) Matches(doc DocID) []AttributeMatch {
	var out []AttributeMatch
	out = appendOrientationMatches(out, r.cmp.forward, r.forward, doc, Forward)
	out = appendOrientationMatches(out, r.cmp.backward, r.backward, doc, Backward)
	return out
}

func appendOrientationMatches(out []AttributeMatch, orient *orientationIndex, i2q *indexToQuery, doc DocID, dir Direction) []AttributeMatch {
	rec, ok := orient.docs[doc]
	if !ok {
		return out
	}
	for attrIndex, attr := range rec.attrs {
		for _, w := range attr.words {
			entry, ok := i2q.get(w)
			if !ok {
				continue
			}
			out = append(out, AttributeMatch{
				Direction:  dir,
				AttrIndex:  attrIndex,
				Word:       orient.interner.text(w),
				Distance:   entry.Distance,
				QueryIndex: entry.QueryIndex,
			})
		}
	}
	return out
}
