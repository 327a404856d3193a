// Package seqset implements the in-memory Sequence/SequenceSet container
// spec.md section 3 describes and the non-goals list requires ("the core
// consumes a sequence container"), grounded on the concatenated-buffer +
// per-sequence-size-table shape of index.RefSeq / index.RefSeqInfo in the
// teacher.
package seqset

import (
	"sync"

	"github.com/gobio/blastcore/alphabet"
	"github.com/gobio/blastcore/errs"
)

// span records where one sequence lives within the concatenated Data
// buffer of a SequenceSet.
type span struct {
	offset int
	length int
}

// SequenceSet is a finite ordered, read-only-after-Freeze collection of
// sequences over a single Alphabet. Elements are addressed by
// (sequence-id, offset), per spec.md section 3.
type SequenceSet struct {
	Alphabet *alphabet.Alphabet

	ids   [][]byte
	data  []byte
	spans []span

	frozen bool
}

// New creates an empty SequenceSet over the given alphabet.
func New(a *alphabet.Alphabet) *SequenceSet {
	return &SequenceSet{
		Alphabet: a,
		ids:      make([][]byte, 0, 128),
		data:     make([]byte, 0, 1<<20),
		spans:    make([]span, 0, 128),
	}
}

// Add appends one sequence, validating every symbol against the set's
// alphabet. It returns a QueryError if seq is empty or contains a symbol
// outside the alphabet, per spec.md section 7 ("QueryError - query
// sequence violates the declared alphabet or is empty").
func (s *SequenceSet) Add(id []byte, seq []byte) error {
	if s.frozen {
		return errs.New(errs.Internal, "cannot Add to a frozen SequenceSet")
	}
	if len(seq) == 0 {
		return errs.Newf(errs.Query, "sequence %q is empty", id)
	}
	for i, b := range seq {
		if !s.Alphabet.Contains(b) {
			return errs.Newf(errs.Query, "sequence %q: symbol %q at offset %d is not valid for alphabet %s", id, b, i, s.Alphabet.Name)
		}
	}

	offset := len(s.data)
	s.data = append(s.data, seq...)
	s.spans = append(s.spans, span{offset: offset, length: len(seq)})
	s.ids = append(s.ids, append([]byte(nil), id...))
	return nil
}

// Freeze marks the set read-only. Len/Sequence/ID are only valid after
// Freeze in this API's contract, mirroring "read-only after load" in
// spec.md section 3.
func (s *SequenceSet) Freeze() { s.frozen = true }

// Len returns the number of sequences.
func (s *SequenceSet) Len() int { return len(s.spans) }

// SeqLen returns the length of sequence id.
func (s *SequenceSet) SeqLen(id int) int { return s.spans[id].length }

// TotalLen returns the sum of all sequence lengths (the "N" of spec.md
// section 4.C2, and BLAST's effective database length D).
func (s *SequenceSet) TotalLen() int { return len(s.data) }

// Sequence returns a view of sequence id's symbols. The returned slice
// aliases the set's internal buffer and must not be mutated.
func (s *SequenceSet) Sequence(id int) []byte {
	sp := s.spans[id]
	return s.data[sp.offset : sp.offset+sp.length]
}

// Symbol returns the symbol at (id, offset).
func (s *SequenceSet) Symbol(id, offset int) byte {
	sp := s.spans[id]
	return s.data[sp.offset+offset]
}

// ID returns the identifier of sequence id.
func (s *SequenceSet) ID(id int) []byte { return s.ids[id] }

// Builder accumulates sequences for a SequenceSet from a pooled,
// reusable staging buffer, mirroring index.PoolRefSeq's recycling of
// RefSeq values across a batch-insert pipeline.
type Builder struct {
	ID  []byte
	Seq []byte
}

// Pool recycles Builder values the way index.PoolRefSeq does.
var Pool = &sync.Pool{New: func() interface{} {
	return &Builder{
		ID:  make([]byte, 0, 128),
		Seq: make([]byte, 0, 10<<20),
	}
}}

// Reset clears a Builder for reuse.
func (b *Builder) Reset() {
	b.ID = b.ID[:0]
	b.Seq = b.Seq[:0]
}
