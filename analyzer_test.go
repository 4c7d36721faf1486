package fts

import (
	"reflect"
	"testing"
)

func TestSplitWords_AlphaAndNumericRuns(t *testing.T) {
	got := SplitWords("Quick brown 123 café")
	want := []string{"quick", "brown", "123", "cafe"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("SplitWords() = %v, want %v", got, want)
	}
}

func TestSplitWords_SentinelRequiresWhitespace(t *testing.T) {
	tests := []struct {
		text string
		want []string
	}{
		// Whitespace-preceded sentinels emit their own token.
		{"issue #42", []string{"issue", "#", "42"}},
		{"temp °5", []string{"temp", "°", "5"}},
		// A sentinel at the very start of the text counts as
		// whitespace-preceded.
		{"#42", []string{"#", "42"}},
		// A sentinel with no preceding whitespace is just a separator: it
		// ends the current token run but contributes no token of its own.
		{"room#42", []string{"room", "42"}},
		{"20°c", []string{"20", "c"}},
		// Back-to-back sentinels: the first is whitespace-preceded and
		// emits, the second immediately follows a non-whitespace sentinel
		// and does not.
		{"a ##b", []string{"a", "#", "b"}},
	}

	for _, tt := range tests {
		got := SplitWords(tt.text)
		if !reflect.DeepEqual(got, tt.want) {
			t.Fatalf("SplitWords(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestSplitWords_MinTokenLength(t *testing.T) {
	opts := TokenizerOptions{MinTokenLength: 2, FoldDiacritics: true}
	got := splitWords("a bb # 42", opts)
	want := []string{"bb", "42"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("splitWords() = %v, want %v", got, want)
	}
}

func TestSplitWords_DiacriticFoldDisabled(t *testing.T) {
	opts := TokenizerOptions{MinTokenLength: 1, FoldDiacritics: false}
	got := splitWords("café", opts)
	want := []string{"café"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("splitWords() = %v, want %v", got, want)
	}
}
