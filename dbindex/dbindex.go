// Package dbindex defines the seed lookup surface spec.md section 4.C3
// describes: a backend-agnostic contract implemented concretely by
// saindex (suffix-array-backed) and left as honest stubs for the FM-index
// and bidirectional FM-index backends spec.md names but does not require
// a working implementation of.
package dbindex

import "github.com/gobio/blastcore/errs"

// Seed is one exact match between a query and a subject suffix: the
// query offset, the subject id and offset, and its length, per spec.md
// section 3's seed tuple (qryId, subjId, qryStart, subjStart, length).
type Seed struct {
	QryStart  int
	SubjID    int32
	SubjStart int32
	Length    int32
}

// Index is the seed lookup surface every backend implements: given a
// query sequence and a minimum seed length, return every maximal exact
// match of length >= minLen between the query and the indexed subject
// set, per spec.md section 4.C3.
type Index interface {
	// Seeds returns every seed of length >= minLen anchored anywhere in
	// query. Implementations may return seeds in any order; matchstore
	// imposes the canonical ordering.
	Seeds(query []byte, minLen int) ([]Seed, error)
}

// ErrNotImplemented is returned by backends spec.md names but does not
// require a working implementation of (FM-index, bidirectional FM-index),
// per spec.md section 7's IndexError kind.
var ErrNotImplemented = errs.New(errs.Index, "backend not implemented")
