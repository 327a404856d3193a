// Package align implements the banded local Smith-Waterman aligner of
// spec.md section 4.C5, generalizing the teacher's global
// Needleman-Wunsch kernel (lexicmap/index/align/nw.go) to local
// alignment, an explicit diagonal band, free end-gaps, and a runtime
// affine/linear gap-cost switch.
package align

import (
	"sync"
)

// Pointer records where a cell's optimal score came from, mirroring the
// teacher's Pointer enum (lexicmap/index/align/nw.go) plus a Stop value
// for the local-alignment "score fell to zero, start over here" case.
type Pointer uint8

const (
	Stop Pointer = iota // local alignment origin; traceback ends here
	Top
	Left
	Diag
)

// Options configures one Aligner, mirroring the shape of the teacher's
// AlignOptions but generalized to the spec's scoring model: substitution
// scores per aligned symbol pair (instead of one flat match/mismatch
// pair, to support amino-acid scoring matrices) plus affine gap costs.
// GapOpen == 0 selects the linear-gap kernel, per spec.md section 4.C5.
type Options struct {
	Score func(a, b byte) int // substitution score for one aligned pair
	GapOpen    int
	GapExtend  int

	SaveAlignment bool
}

// DefaultOptions gives simple nucleotide match/mismatch scoring with
// affine gaps, matching the teacher's DefaultAlignOptions defaults
// (match=+1, mismatch=-1) generalized to a scoring function plus an
// affine gap model (gapOpen=5, gapExtend=2).
var DefaultOptions = Options{
	Score: func(a, b byte) int {
		if a == b {
			return 1
		}
		return -1
	},
	GapOpen:   5,
	GapExtend: 2,
}

// Linear reports whether these options select the linear-gap kernel,
// per spec.md's "gapOpen = 0 enables the linear-gap kernel" rule.
func (o *Options) Linear() bool { return o.GapOpen == 0 }

// Result holds one banded local alignment, mirroring the teacher's
// AlignResult / poolAlignResult recycling pattern.
type Result struct {
	Score   int
	Len     int
	Matches int
	Gaps    int

	QryStart, QryEnd   int // half-open range of a consumed by the alignment
	SubjStart, SubjEnd int // half-open range of b consumed by the alignment

	AlignA []byte
	AlignM []byte
	AlignB []byte
}

// Reset clears a Result for reuse from the pool.
func (r *Result) Reset() {
	r.Score, r.Len, r.Matches, r.Gaps = 0, 0, 0, 0
	r.QryStart, r.QryEnd, r.SubjStart, r.SubjEnd = 0, 0, 0, 0
	r.AlignA = r.AlignA[:0]
	r.AlignM = r.AlignM[:0]
	r.AlignB = r.AlignB[:0]
}

var poolResult = &sync.Pool{New: func() interface{} {
	return &Result{
		AlignA: make([]byte, 0, 256),
		AlignM: make([]byte, 0, 256),
		AlignB: make([]byte, 0, 256),
	}
}}

// RecycleResult returns r to the pool, mirroring
// lexicmap/index/align/nw.go's RecycleAlignResult.
func RecycleResult(r *Result) { poolResult.Put(r) }

// Aligner runs the banded local Smith-Waterman kernel with reusable
// scratch matrices, mirroring the teacher's Aligner's reused scores/
// pointers slices.
type Aligner struct {
	Options *Options

	linear linearKernel
	affine affineKernel
}

// NewAligner returns an Aligner using opts, allocating its reusable
// matrices lazily on first use (mirroring the teacher's eager 4<<20
// preallocation would over-commit memory for the many small per-seed
// alignments spec.md's workload implies; lazy growth via append matches
// index.RefSeq's incremental buffer growth instead).
func NewAligner(opts *Options) *Aligner {
	return &Aligner{Options: opts}
}

// Align runs one banded local alignment of a against b, constrained to
// diagonals [lowerDiag, upperDiag] (diagonal d = j - i), per spec.md
// section 4.C5. The caller must RecycleResult the return value.
func (alg *Aligner) Align(a, b []byte, lowerDiag, upperDiag int) *Result {
	if alg.Options.Linear() {
		return alg.linear.run(alg.Options, a, b, lowerDiag, upperDiag)
	}
	return alg.affine.run(alg.Options, a, b, lowerDiag, upperDiag)
}

// UnbandedDiagonals returns the (lowerDiag, upperDiag) pair spec.md
// section 4.C5 defines for b = +infinity: "lowerDiag = -|row0|,
// upperDiag = +|row1|".
func UnbandedDiagonals(row0, row1 []byte) (int, int) {
	return -len(row0), len(row1)
}

// DiagonalsFromBand derives (lowerDiag, upperDiag) around a seed
// diagonal seedDiag (subjStart - qryStart) from a resolved band width,
// clamped to the unbanded extent when b is config.Band's +infinity
// sentinel.
func DiagonalsFromBand(seedDiag, width, row0Len, row1Len int) (int, int) {
	if width >= row0Len+row1Len {
		return -row0Len, row1Len
	}
	return seedDiag - width, seedDiag + width
}
