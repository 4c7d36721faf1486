package fts

import (
	"math/rand"
	"strings"
	"time"

	"github.com/RoaringBitmap/roaring"
)

// wordRow is one entry of a word table: the interned word it represents, the
// capped rune length used by distance scoring, and the bitmap of documents
// that currently reference it through at least one attribute feeding this
// table.
type wordRow struct {
	id   WordID
	word string
	len  uint8
	docs *roaring.Bitmap
}

// wordMatch is one hit produced by evaluating an operator against a table:
// the row that matched, how closely it matched, and the doc bitmap to fold
// into the executor's accumulators.
type wordMatch struct {
	Word     WordID
	Text     string
	Distance MatchDistance
	Docs     *roaring.Bitmap
}

// wordTable is a single culture's (or the cultureless default's) sorted
// collection of word rows, backed by a skip list keyed on the word text.
// It is direction-agnostic: a Backward orientation table holds exactly the
// same structure, just populated with reversed strings by its caller.
type wordTable struct {
	rows *wordSkipList
}

func newWordTable() *wordTable {
	return &wordTable{rows: newWordSkipList(rand.New(rand.NewSource(time.Now().UnixNano())))}
}

// insertWord adds doc to the row for word, creating the row (and interning
// the word) if this is the first table to see it. It returns the resulting
// WordID so the caller can reuse the same identity in sibling culture tables
// without re-interning.
func (t *wordTable) insertWord(in *interner, word string, doc DocID) WordID {
	if node, _ := t.rows.search(word); node != nil {
		node.row.docs.Add(uint32(doc))
		return node.row.id
	}

	id := in.intern(word)
	row := &wordRow{id: id, word: word, len: capRuneLen(len([]rune(word))), docs: roaring.New()}
	row.docs.Add(uint32(doc))
	t.rows.insert(row)
	return id
}

// insertByID adds doc to the row for word using an already-interned id. If
// this table does not yet have a row for word, it creates one and retains a
// fresh reference on id rather than interning a new word.
func (t *wordTable) insertByID(in *interner, id WordID, word string, doc DocID) {
	node, created := t.rows.insert(&wordRow{id: id, word: word, len: capRuneLen(len([]rune(word))), docs: roaring.New()})
	if created {
		in.retain(id)
	}
	node.row.docs.Add(uint32(doc))
}

// removeWord drops doc from word's row, releasing the row (and the
// interner's reference to its word) entirely once no document remains.
func (t *wordTable) removeWord(in *interner, word string, doc DocID) {
	node, _ := t.rows.search(word)
	if node == nil {
		return
	}
	node.row.docs.Remove(uint32(doc))
	if node.row.docs.IsEmpty() {
		t.rows.delete(word)
		in.release(node.row.id)
	}
}

func (t *wordTable) eq(word string) []wordMatch {
	node, _ := t.rows.search(word)
	if node == nil {
		return nil
	}
	return []wordMatch{exactMatch(node.row, len([]rune(word)))}
}

// startsWith binary-searches the insertion point of prefix, then scans
// forward while rows still carry it as a prefix.
func (t *wordTable) startsWith(prefix string) []wordMatch {
	var out []wordMatch
	qlen := len([]rune(prefix))
	t.rows.ascend(prefix, func(row *wordRow) bool {
		if !strings.HasPrefix(row.word, prefix) {
			return false
		}
		out = append(out, exactMatch(row, qlen))
		return true
	})
	return out
}

// endsWith has no binary-search shortcut on a forward table, so it scans
// every row in order and tests the suffix directly.
func (t *wordTable) endsWith(suffix string) []wordMatch {
	var out []wordMatch
	qlen := len([]rune(suffix))
	t.rows.ascend("", func(row *wordRow) bool {
		if strings.HasSuffix(row.word, suffix) {
			out = append(out, exactMatch(row, qlen))
		}
		return true
	})
	return out
}

func (t *wordTable) contains(substr string) []wordMatch {
	var out []wordMatch
	qlen := len([]rune(substr))
	t.rows.ascend("", func(row *wordRow) bool {
		if strings.Contains(row.word, substr) {
			out = append(out, exactMatch(row, qlen))
		}
		return true
	})
	return out
}

// fuzzy scans every row, asking the automaton whether it falls within its
// bounded edit distance. A zero-edit hit collapses to an Exact distance tag
// (it is, after all, exactly as good a match); anything else is tagged Fuzzy.
func (t *wordTable) fuzzy(dfa *levenshteinAutomaton, qlen int) []wordMatch {
	var out []wordMatch
	t.rows.ascend("", func(row *wordRow) bool {
		edits, ok := dfa.evaluate([]rune(row.word))
		if !ok {
			return true
		}
		value := absInt(int(row.len) - qlen)
		kind := DistanceFuzzy
		if edits == 0 {
			kind = DistanceExact
		}
		out = append(out, wordMatch{
			Word:     row.id,
			Text:     row.word,
			Distance: MatchDistance{Kind: kind, Value: value + edits},
			Docs:     row.docs,
		})
		return true
	})
	return out
}

func (t *wordTable) len() int { return t.rows.len() }

func exactMatch(row *wordRow, qlen int) wordMatch {
	return wordMatch{
		Word:     row.id,
		Text:     row.word,
		Distance: MatchDistance{Kind: DistanceExact, Value: absInt(int(row.len) - qlen)},
		Docs:     row.docs,
	}
}

func absInt(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
