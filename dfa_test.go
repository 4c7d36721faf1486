package fts

import "testing"

func TestLevenshteinAutomaton_Evaluate(t *testing.T) {
	tests := []struct {
		query     string
		candidate string
		maxEdits  int
		wantDist  int
		wantOK    bool
	}{
		{"country", "country", 2, 0, true},
		{"country", "county", 2, 1, true},
		{"country", "elephant", 2, 0, false},
		// The prefix "sittin" is two substitutions away from "kitten", so the
		// prefix distance is 2 (the whole-word distance of 3 never applies).
		{"kitten", "sitting", 3, 2, true},
		{"kitten", "sitting", 1, 0, false},
		// A short query still matches a much longer candidate when it is an
		// exact prefix of it — this is the whole point of prefix semantics,
		// and is why "bal" finds "balance" and "balle" despite the large
		// length gap.
		{"bal", "balance", 1, 0, true},
		{"bal", "balle", 1, 0, true},
		{"bal", "balloon", 1, 0, true},
		{"bal", "xylophone", 1, 0, false},
	}

	for _, tt := range tests {
		dfa := newLevenshteinAutomaton([]rune(tt.query), tt.maxEdits)
		dist, ok := dfa.evaluate([]rune(tt.candidate))
		if ok != tt.wantOK {
			t.Fatalf("evaluate(%q vs %q, max %d) ok = %v, want %v", tt.query, tt.candidate, tt.maxEdits, ok, tt.wantOK)
		}
		if ok && dist != tt.wantDist {
			t.Fatalf("evaluate(%q vs %q, max %d) = %d, want %d", tt.query, tt.candidate, tt.maxEdits, dist, tt.wantDist)
		}
	}
}

func TestMaxEditsForLength(t *testing.T) {
	tests := []struct {
		n    int
		want int
	}{
		{1, 0},
		{2, 0},
		{3, 1},
		{5, 1},
		{6, 2},
		{8, 2},
		{9, 3},
		{40, 3},
	}
	for _, tt := range tests {
		if got := maxEditsForLength(DefaultFuzzyBuckets, tt.n); got != tt.want {
			t.Fatalf("maxEditsForLength(%d) = %d, want %d", tt.n, got, tt.want)
		}
	}
}
