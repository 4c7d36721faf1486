package fts

import "errors"

// ErrAttributeNotFound is returned when an operation names an AttributeID
// that the Searcher has never registered or has already removed. It is the
// only fallible outcome the public API exposes: every other internal lookup
// (a missing word row, an absent document record, an unpopulated culture
// table) resolves to an empty result or a no-op rather than an error, per
// this package's error-handling stance of having no other fallible public
// operations.
var ErrAttributeNotFound = errors.New("fts: attribute not found")
