// Package alphabet implements the fixed finite alphabets, reductions, and
// six-frame translation described in spec.md section 4.C1.
package alphabet

import "github.com/gobio/blastcore/errs"

// Alphabet is an immutable descriptor: a name, an ordinal size, and the
// total order over symbol bytes used by every suffix/prefix comparator
// in the suffix-array builder and the seed lookup surface.
type Alphabet struct {
	Name string
	Size int // ordinal-size: number of distinct symbols

	// rank maps a symbol byte to its ordinal position in the order used
	// by OrdLess; symbols outside the alphabet map to -1.
	rank [256]int16

	// reduction, if non-nil, maps a super-alphabet symbol byte to this
	// alphabet's symbol byte (e.g. AminoAcid -> Murphy10).
	reduction map[byte]byte
}

// OrdLess reports whether symbol a sorts strictly before symbol b under
// this alphabet's total order.
func (a *Alphabet) OrdLess(x, y byte) bool {
	return a.rank[x] < a.rank[y]
}

// Contains reports whether b is a valid symbol of this alphabet.
func (a *Alphabet) Contains(b byte) bool {
	return a.rank[b] >= 0
}

// Reduce maps a symbol of the alphabet this one reduces from onto this
// alphabet's symbol set. It returns ok=false if this alphabet has no
// reduction map or the symbol is unmapped.
func (a *Alphabet) Reduce(b byte) (byte, bool) {
	if a.reduction == nil {
		return 0, false
	}
	r, ok := a.reduction[b]
	return r, ok
}

// ReduceSeq reduces every symbol of seq in place through Reduce, and
// returns a QueryError-kind error at the first unmapped symbol.
func (a *Alphabet) ReduceSeq(seq []byte) error {
	if a.reduction == nil {
		return nil
	}
	for i, b := range seq {
		r, ok := a.reduction[b]
		if !ok {
			return errs.Newf(errs.Query, "symbol %q at offset %d is not valid for alphabet %s", b, i, a.Name)
		}
		seq[i] = r
	}
	return nil
}

func newAlphabet(name string, symbols string) *Alphabet {
	a := &Alphabet{Name: name, Size: len(symbols)}
	for i := range a.rank {
		a.rank[i] = -1
	}
	for i := 0; i < len(symbols); i++ {
		a.rank[symbols[i]] = int16(i)
	}
	return a
}

// DNA5 is the 5-symbol nucleotide alphabet: A, C, G, T, N.
var DNA5 = newAlphabet("DNA5", "ACGTN")

// AminoAcid is the standard 20-symbol amino acid alphabet plus the
// ambiguity symbol X, ordered alphabetically.
var AminoAcid = newAlphabet("AminoAcid", "ACDEFGHIKLMNPQRSTVWYX")

// murphy10Groups partitions the 20 standard amino acids into Murphy's
// 10-letter reduced alphabet, https://doi.org/10.1093/protein/13.3.149 .
var murphy10Groups = map[byte]byte{
	'L': 'L', 'V': 'L', 'I': 'L', 'M': 'L',
	'C': 'C',
	'A': 'A',
	'G': 'G',
	'S': 'S', 'T': 'S',
	'P': 'P',
	'F': 'F', 'Y': 'F', 'W': 'F',
	'E': 'E', 'D': 'E', 'N': 'E', 'Q': 'E',
	'K': 'K', 'R': 'K',
	'H': 'H',
	'X': 'X',
}

// Murphy10 is the 10-letter reduced amino-acid alphabet used to shrink
// the effective search space for distantly related proteins.
var Murphy10 = func() *Alphabet {
	a := newAlphabet("Murphy10", "LCAGSPFEKHX")
	a.reduction = murphy10Groups
	return a
}()

// dna5ReducedGroups groups purines and pyrimidines; used only as a
// reduction target, never as a primary sequence alphabet.
var dna5ReducedGroups = map[byte]byte{
	'A': 'R', 'G': 'R',
	'C': 'Y', 'T': 'Y',
	'N': 'N',
}

// Dna5Reduced is the purine/pyrimidine/ambiguous reduction of DNA5.
var Dna5Reduced = func() *Alphabet {
	a := newAlphabet("Dna5Reduced", "RYN")
	a.reduction = dna5ReducedGroups
	return a
}()

// ByName resolves an alphabet descriptor by its Name field, for
// Config-driven selection (subjOrigAlphabet, reducedAlphabet, ...).
func ByName(name string) (*Alphabet, bool) {
	switch name {
	case DNA5.Name:
		return DNA5, true
	case AminoAcid.Name:
		return AminoAcid, true
	case Murphy10.Name:
		return Murphy10, true
	case Dna5Reduced.Name:
		return Dna5Reduced, true
	default:
		return nil, false
	}
}
