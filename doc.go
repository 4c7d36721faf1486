// Package fts implements the core of an in-memory full-text search engine
// for small-to-medium document collections.
//
// ═══════════════════════════════════════════════════════════════════════════════
// WHAT THIS PACKAGE DOES
// ═══════════════════════════════════════════════════════════════════════════════
// Callers register typed string attributes (named fields with a direction, a
// priority, and an optional culture) on a Searcher, feed documents through
// Searcher.InsertDocAttribute, and run a sequence of WordQuery tokens through
// Searcher.Query. Results come back as a SearchResults set that knows which
// documents matched and, for each one, which words matched which query terms
// at what distance; SearchResults.Compare then orders two result rows by
// attribute-priority tiers.
//
// The textual query parser (the surface syntax of "+machine -learning
// *python") is deliberately NOT part of this package's concerns: a caller's
// parser is expected to emit WordQuery values directly.
//
// ═══════════════════════════════════════════════════════════════════════════════
// WHY TWO ORIENTATIONS?
// ═══════════════════════════════════════════════════════════════════════════════
// Every attribute is indexed in exactly one of two orientations: Forward
// (natural word order) or Backward (character-reversed). A suffix query
// ("*main.go") against a Backward-oriented attribute becomes a prefix lookup
// against the reversed table — the same binary-search speed a normal prefix
// query gets on a Forward table. Equal/contains/fuzzy operators don't care
// about orientation (reversing both sides of a comparison doesn't change the
// answer), only prefix and suffix swap roles across the boundary.
// ═══════════════════════════════════════════════════════════════════════════════
package fts
