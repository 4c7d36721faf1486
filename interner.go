package fts

// interner is a content-addressed arena of interned words, shared by every
// word table within one orientation index. Two table rows for the same text
// — in the same culture table or across culture tables — always resolve to
// the same WordID; the interner additionally reference-counts how many live
// table rows currently point at each id, so a word can be retired the moment
// its last row disappears (I3).
type interner struct {
	words []string
	refs  []int32
	byWord map[string]WordID
	free   []WordID
}

func newInterner() *interner {
	return &interner{
		byWord: make(map[string]WordID),
	}
}

// intern returns the WordID for word, creating one if it has never been seen
// (or has been fully retired and its slot recycled), and bumping its
// reference count. Callers use this exactly once per new table row; reusing
// an existing row's id for additional culture tables goes through retain
// instead, so that re-insertion never double-counts a reference no new row
// was created for.
func (in *interner) intern(word string) WordID {
	if id, ok := in.byWord[word]; ok {
		in.refs[id]++
		return id
	}

	var id WordID
	if n := len(in.free); n > 0 {
		id = in.free[n-1]
		in.free = in.free[:n-1]
		in.words[id] = word
		in.refs[id] = 1
	} else {
		id = WordID(len(in.words))
		in.words = append(in.words, word)
		in.refs = append(in.refs, 1)
	}
	in.byWord[word] = id
	return id
}

// retain bumps the reference count of an already-interned id, used when a
// second (or third, ...) culture table gains its own row for a word that
// some other table already holds.
func (in *interner) retain(id WordID) {
	in.refs[id]++
}

// release drops one reference to id and, if it was the last one, retires the
// word entirely: its text slot is cleared and its id is queued for reuse.
// Reports whether the word was retired.
func (in *interner) release(id WordID) bool {
	in.refs[id]--
	if in.refs[id] > 0 {
		return false
	}
	delete(in.byWord, in.words[id])
	in.words[id] = ""
	in.free = append(in.free, id)
	return true
}

// text returns the interned string for id. The id must currently be live.
func (in *interner) text(id WordID) string {
	return in.words[id]
}

// liveCount reports how many distinct words currently hold at least one
// reference. Exposed for invariant checks in tests.
func (in *interner) liveCount() int {
	return len(in.byWord)
}

// resetRefs zeroes every live word's reference count without touching its
// text or id, used by ensureCulture to rebuild table-side refcounts from
// scratch via a full replay rather than unwinding each discarded table row
// individually.
func (in *interner) resetRefs() {
	for id := range in.refs {
		if in.words[id] != "" {
			in.refs[id] = 0
		}
	}
}
