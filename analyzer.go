// ═══════════════════════════════════════════════════════════════════════════════
// TOKENIZATION OVERVIEW
// ═══════════════════════════════════════════════════════════════════════════════
// Raw attribute text is turned into the word sequence that actually lands in
// the word tables through a single-pass scanner over a short, fixed
// classification:
//
//  1. Splitting     → a run of letters or a run of digits is one token;
//                      # and ° are one-rune tokens of their own, but only
//                      when whitespace precedes them; anything else just
//                      separates
//  2. Case folding  → "Quick" → "quick"
//  3. Diacritic fold → "café" → "cafe" (optional, on by default)
//  4. Numeric guard  → tokens that are all digits are kept verbatim
//
// There is no stemming and no stopword removal: every surviving token is
// treated as meaningful, and language-specific reduction is left to a caller
// that wants it. A numeric guard keeps digit runs from being folded through
// the diacritic pass, where they have no defined meaning anyway.
// ═══════════════════════════════════════════════════════════════════════════════

package fts

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// TokenizerOptions holds configuration for the splitting/normalizing pipeline
// that turns attribute text into table keys.
type TokenizerOptions struct {
	// MinTokenLength discards tokens shorter than this many runes. Default 1
	// (nothing is discarded).
	MinTokenLength int
	// FoldDiacritics strips combining marks after NFD normalization, so "é"
	// and "e" intern to the same word. Default true.
	FoldDiacritics bool
}

// DefaultTokenizerOptions returns the pipeline configuration used when a
// Searcher is constructed with NewSearcher.
func DefaultTokenizerOptions() TokenizerOptions {
	return TokenizerOptions{
		MinTokenLength: 1,
		FoldDiacritics: true,
	}
}

// diacriticStripper removes Unicode Mn (nonspacing mark) runes left behind by
// NFD decomposition, e.g. turning "é" (e + combining acute) into "e".
var diacriticStripper = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// runeClass is the scanner's character classification. Sentinel runes (#,
// °) are split out from Other because they sometimes contribute a token of
// their own, which no other Other rune ever does.
type runeClass int

const (
	classWhitespace runeClass = iota
	classAlphabetic
	classNumeric
	classSentinel
	classOther
)

func classify(r rune) runeClass {
	switch {
	case unicode.IsSpace(r):
		return classWhitespace
	case r == '#' || r == '°':
		return classSentinel
	case unicode.IsLetter(r):
		return classAlphabetic
	case unicode.IsNumber(r):
		return classNumeric
	default:
		return classOther
	}
}

// splitWords tokenizes raw text per opts with a single-pass scanner: a run
// of alphabetics becomes one lowercased, diacritic-folded token; a run of
// digits becomes one verbatim token; a sentinel (#, °) becomes its own
// single-rune token, but only when whitespace immediately precedes it —
// otherwise it is just a separator, same as any other Other rune. The start
// of the text counts as whitespace-preceded.
func splitWords(text string, opts TokenizerOptions) []string {
	runesIn := []rune(text)
	n := len(runesIn)

	var out []string
	precededByWhitespace := true

	for i := 0; i < n; {
		switch classify(runesIn[i]) {
		case classWhitespace:
			i++
			precededByWhitespace = true

		case classAlphabetic:
			start := i
			for i < n && classify(runesIn[i]) == classAlphabetic {
				i++
			}
			out = appendToken(out, normalizeToken(string(runesIn[start:i]), opts), opts)
			precededByWhitespace = false

		case classNumeric:
			start := i
			for i < n && classify(runesIn[i]) == classNumeric {
				i++
			}
			out = appendToken(out, string(runesIn[start:i]), opts)
			precededByWhitespace = false

		case classSentinel:
			if precededByWhitespace {
				out = appendToken(out, string(runesIn[i]), opts)
			}
			i++
			precededByWhitespace = false

		default:
			i++
			precededByWhitespace = false
		}
	}
	return out
}

func appendToken(out []string, tok string, opts TokenizerOptions) []string {
	if len([]rune(tok)) < opts.MinTokenLength {
		return out
	}
	return append(out, tok)
}

// normalizeToken lowercases tok and, unless the token is purely numeric or
// diacritic folding is disabled, strips its combining marks.
func normalizeToken(tok string, opts TokenizerOptions) string {
	tok = strings.ToLower(tok)
	if !opts.FoldDiacritics || isNumeric(tok) {
		return tok
	}
	folded, _, err := transform.String(diacriticStripper, tok)
	if err != nil {
		return tok
	}
	return folded
}

func isNumeric(tok string) bool {
	if tok == "" {
		return false
	}
	for _, r := range tok {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// SplitWords tokenizes text with the default tokenizer options. It is the
// small convenience helper external callers can use to build WordQuery
// values without writing their own splitter; it is not a substitute for a
// real query-syntax parser.
func SplitWords(text string) []string {
	return splitWords(text, DefaultTokenizerOptions())
}

// reverseString reverses s by rune, used to compute a Backward orientation's
// stored form of a word (and a WordQuery's reversed form for matching it).
func reverseString(s string) string {
	r := []rune(s)
	for i, j := 0, len(r)-1; i < j; i, j = i+1, j-1 {
		r[i], r[j] = r[j], r[i]
	}
	return string(r)
}
