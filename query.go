// ═══════════════════════════════════════════════════════════════════════════════
// QUERY EXECUTOR
// ═══════════════════════════════════════════════════════════════════════════════
// A SearchQuery is a flat list of WordQuery terms; the executor runs each one
// against both orientation indices and folds the results into three running
// roaring bitmaps — required, optional, denied — using intersection, union,
// and union respectively. Unlike a boolean query builder with a tree of
// nested AND/OR/NOT operators, presence here isn't a tree at all; it's a flat
// classification per term, resolved once at the end.
// ═══════════════════════════════════════════════════════════════════════════════

package fts

import "github.com/RoaringBitmap/roaring"

// executionResult is the internal product of running a SearchQuery: the
// final doc bitmap plus the forward and backward IndexToQuery maps a
// comparator needs to score individual documents afterward.
type executionResult struct {
	Docs     *roaring.Bitmap
	Forward  *indexToQuery
	Backward *indexToQuery
}

// queryExecutor runs a SearchQuery against a pair of orientation indices.
type queryExecutor struct {
	forward  *orientationIndex
	backward *orientationIndex
	buckets  []FuzzyBucket
}

func (e *queryExecutor) execute(sq *SearchQuery) executionResult {
	var required, optional, denied *roaring.Bitmap
	requiredDead := false

	fwdI2Q := newIndexToQuery()
	bwdI2Q := newIndexToQuery()

	fwdTable := e.forward.queryTable(sq.Culture, sq.HasCulture)
	bwdTable := e.backward.queryTable(sq.Culture, sq.HasCulture)

	for i := range sq.Words {
		q := &sq.Words[i]
		fwdMatches := q.evaluate(fwdTable, Forward, e.buckets)
		bwdMatches := q.evaluate(bwdTable, Backward, e.buckets)

		switch q.Presence {
		case Optional:
			optional = unionMatchesInto(optional, fwdMatches, bwdMatches)
		case Denied:
			denied = unionMatchesInto(denied, fwdMatches, bwdMatches)
		case Required:
			if !requiredDead {
				if len(fwdMatches) == 0 && len(bwdMatches) == 0 {
					required = roaring.New()
					requiredDead = true
				} else {
					wordDocs := unionMatches(fwdMatches, bwdMatches)
					if required == nil {
						required = wordDocs
					} else {
						required = roaring.And(required, wordDocs)
					}
				}
			}
		}

		for _, m := range fwdMatches {
			fwdI2Q.add(q.QueryIndex, m)
		}
		for _, m := range bwdMatches {
			bwdI2Q.add(q.QueryIndex, m)
		}
	}

	docs := combinePresence(required, optional)
	if denied != nil {
		docs = roaring.AndNot(docs, denied)
	}

	return executionResult{Docs: docs, Forward: fwdI2Q, Backward: bwdI2Q}
}

func unionMatches(a, b []wordMatch) *roaring.Bitmap {
	out := roaring.New()
	for _, m := range a {
		out.Or(m.Docs)
	}
	for _, m := range b {
		out.Or(m.Docs)
	}
	return out
}

func unionMatchesInto(acc *roaring.Bitmap, a, b []wordMatch) *roaring.Bitmap {
	if acc == nil {
		acc = roaring.New()
	}
	for _, m := range a {
		acc.Or(m.Docs)
	}
	for _, m := range b {
		acc.Or(m.Docs)
	}
	return acc
}

// combinePresence realizes "(optional ∪ required if both, else whichever
// exists)" from both running bitmaps, neither of which may exist.
func combinePresence(required, optional *roaring.Bitmap) *roaring.Bitmap {
	switch {
	case required != nil && optional != nil:
		return roaring.Or(required, optional)
	case required != nil:
		return required
	case optional != nil:
		return optional
	default:
		return roaring.New()
	}
}
