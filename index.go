// ═══════════════════════════════════════════════════════════════════════════════
// ORIENTATION INDEX
// ═══════════════════════════════════════════════════════════════════════════════
// An orientationIndex is everything a single direction (Forward or Backward)
// needs: the interner its word tables share, a culture-partitioned set of
// word tables (or a single cultureless default table when no culture
// attribute has ever been declared), and a per-document record of which
// interned words each of the document's attributes in this direction
// currently contributes.
//
// A Searcher owns exactly two of these — one per direction — and routes each
// attribute's inserts, removals, and queries to whichever one matches the
// attribute's declared direction.
// ═══════════════════════════════════════════════════════════════════════════════

package fts

// attrCultureInfo is the culture-partitioning fact an orientationIndex needs
// about an attribute to route its words to the right table(s). It is handed
// down by the Searcher, which owns the attribute registry.
type attrCultureInfo struct {
	HasCulture bool
	Culture    uint8
}

// docAttr is the word sequence one document contributed to one attribute,
// in original insertion order (including repeats), which is what the
// comparator's proximity-sequence score needs.
type docAttr struct {
	words []WordID
}

type docRecord struct {
	attrs []docAttr
}

type orientationIndex struct {
	direction     Direction
	interner      *interner
	defaultTable  *wordTable
	cultureTables []*wordTable
	docs          map[DocID]*docRecord
}

func newOrientationIndex(dir Direction) *orientationIndex {
	return &orientationIndex{
		direction:    dir,
		interner:     newInterner(),
		defaultTable: newWordTable(),
		docs:         make(map[DocID]*docRecord),
	}
}

// selectTables returns the table(s) an attribute with the given culture
// configuration feeds on insert/removal: a cultureless attribute feeds every
// culture table (or the single default table, if no culture has ever been
// declared); a cultured attribute feeds only its own culture's table.
func (o *orientationIndex) selectTables(info attrCultureInfo) []*wordTable {
	if len(o.cultureTables) == 0 {
		return []*wordTable{o.defaultTable}
	}
	if !info.HasCulture {
		return o.cultureTables
	}
	if int(info.Culture) < len(o.cultureTables) {
		return []*wordTable{o.cultureTables[info.Culture]}
	}
	return []*wordTable{o.cultureTables[0]}
}

// queryTable picks the single table a query against a given requested
// culture should run against, falling back to culture 0 if the requested
// culture doesn't have its own table (or the query names no culture).
func (o *orientationIndex) queryTable(culture uint8, hasCulture bool) *wordTable {
	if len(o.cultureTables) == 0 {
		return o.defaultTable
	}
	if hasCulture && int(culture) < len(o.cultureTables) {
		return o.cultureTables[culture]
	}
	return o.cultureTables[0]
}

func (o *orientationIndex) directionalWord(word string) string {
	if o.direction == Backward {
		return reverseString(word)
	}
	return word
}

func (o *orientationIndex) record(doc DocID) *docRecord {
	rec, ok := o.docs[doc]
	if !ok {
		rec = &docRecord{}
		o.docs[doc] = rec
	}
	return rec
}

// insertAttribute sets doc's word list for attrIndex to the tokens derived
// from value, replacing whatever that attribute previously held for doc. It
// returns false only when value yields no words and doc held nothing for
// attrIndex; otherwise it returns true, even if the words are unchanged.
func (o *orientationIndex) insertAttribute(doc DocID, attrIndex int, info attrCultureInfo, value string, opts TokenizerOptions) bool {
	tokens := splitWords(value, opts)
	targets := o.selectTables(info)

	newWords := make([]WordID, 0, len(tokens))
	for _, tok := range tokens {
		tok = o.directionalWord(tok)
		if tok == "" {
			continue
		}
		id := targets[0].insertWord(o.interner, tok, doc)
		for _, tbl := range targets[1:] {
			tbl.insertByID(o.interner, id, tok, doc)
		}
		newWords = append(newWords, id)
	}

	rec, existed := o.docs[doc]
	var prevWords []WordID
	hadSlot := false
	if existed && attrIndex < len(rec.attrs) {
		prevWords = rec.attrs[attrIndex].words
		hadSlot = prevWords != nil
	}

	if len(newWords) == 0 && !hadSlot {
		return false
	}

	removed := wordsMinus(prevWords, newWords)
	if len(removed) > 0 {
		o.releaseWords(doc, o.record(doc), attrIndex, removed, targets)
	}

	rec = o.record(doc)
	for len(rec.attrs) <= attrIndex {
		rec.attrs = append(rec.attrs, docAttr{})
	}
	if newWords == nil {
		newWords = []WordID{}
	}
	rec.attrs[attrIndex] = docAttr{words: newWords}
	return true
}

// removeAttribute clears column attrIndex from every document's record and
// physically removes that slot, shifting every later attribute's slot down
// by one to preserve the dense 0..n indexing a direction's attribute slots
// require.
func (o *orientationIndex) removeAttribute(attrIndex int, info attrCultureInfo) {
	targets := o.selectTables(info)
	for doc, rec := range o.docs {
		if attrIndex < len(rec.attrs) {
			words := rec.attrs[attrIndex].words
			if words != nil {
				o.releaseWords(doc, rec, attrIndex, dedupeWords(words), targets)
			}
			rec.attrs = append(rec.attrs[:attrIndex], rec.attrs[attrIndex+1:]...)
		}
	}
}

// removeDoc drops every attribute doc contributed, across every table it
// touched, then removes doc's record. Because per-document storage is a
// plain map keyed on the caller's own DocID, removing and later reinserting
// the same id is trivially stable: there is no slot to renumber or recycle.
func (o *orientationIndex) removeDoc(doc DocID, metas []attrCultureInfo) {
	rec, ok := o.docs[doc]
	if !ok {
		return
	}
	for attrIndex, attr := range rec.attrs {
		if attr.words == nil {
			continue
		}
		info := attrCultureInfo{}
		if attrIndex < len(metas) {
			info = metas[attrIndex]
		}
		targets := o.selectTables(info)
		// The whole record goes away, so no other attribute of doc keeps a
		// word alive: release against an empty record.
		o.releaseWords(doc, &docRecord{}, attrIndex, dedupeWords(attr.words), targets)
	}
	delete(o.docs, doc)
}

// releaseWords removes doc's reference to each word in words from targets,
// skipping any word that another attribute of the same document still
// holds.
func (o *orientationIndex) releaseWords(doc DocID, rec *docRecord, excludeAttrIndex int, words []WordID, targets []*wordTable) {
	for _, w := range words {
		if wordStillReferenced(rec, excludeAttrIndex, w) {
			continue
		}
		text := o.interner.text(w)
		for _, tbl := range targets {
			tbl.removeWord(o.interner, text, doc)
		}
	}
}

func wordStillReferenced(rec *docRecord, excludeAttrIndex int, w WordID) bool {
	for i, attr := range rec.attrs {
		if i == excludeAttrIndex {
			continue
		}
		for _, other := range attr.words {
			if other == w {
				return true
			}
		}
	}
	return false
}

func wordsMinus(a, b []WordID) []WordID {
	if len(a) == 0 {
		return nil
	}
	inB := make(map[WordID]bool, len(b))
	for _, w := range b {
		inB[w] = true
	}
	var out []WordID
	seen := make(map[WordID]bool)
	for _, w := range a {
		if inB[w] || seen[w] {
			continue
		}
		seen[w] = true
		out = append(out, w)
	}
	return out
}

func dedupeWords(words []WordID) []WordID {
	seen := make(map[WordID]bool, len(words))
	out := make([]WordID, 0, len(words))
	for _, w := range words {
		if !seen[w] {
			seen[w] = true
			out = append(out, w)
		}
	}
	return out
}

// ensureCulture resizes the orientation's culture tables to match maxCulture
// (maxCulture < 0 means no attribute declares a culture at all, collapsing
// back to the single default table), then rebuilds every table from the
// current document records. A full rebuild rather than an incremental patch
// keeps this rare, topology-changing operation simple and correct at the
// cost of being O(documents); ensureCulture only runs when attributes are
// registered or removed, never on the query or insert hot path.
func (o *orientationIndex) ensureCulture(maxCulture int, metas []attrCultureInfo) {
	o.interner.resetRefs()

	if maxCulture < 0 {
		o.defaultTable = newWordTable()
		o.cultureTables = nil
	} else {
		tables := make([]*wordTable, maxCulture+1)
		for i := range tables {
			tables[i] = newWordTable()
		}
		o.cultureTables = tables
		o.defaultTable = newWordTable()
	}

	for doc, rec := range o.docs {
		for attrIndex, attr := range rec.attrs {
			if attr.words == nil {
				continue
			}
			info := attrCultureInfo{}
			if attrIndex < len(metas) {
				info = metas[attrIndex]
			}
			targets := o.selectTables(info)
			for _, w := range attr.words {
				text := o.interner.text(w)
				targets[0].insertByID(o.interner, w, text, doc)
				for _, tbl := range targets[1:] {
					tbl.insertByID(o.interner, w, text, doc)
				}
			}
		}
	}
}
