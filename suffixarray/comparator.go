package suffixarray

import (
	"sort"

	"github.com/gobio/blastcore/seqset"
)

// symbolAt returns the symbol of suffix e at distance skip from its
// start, and ok=false past the end of its sequence (treated as sorting
// before every real symbol, matching the "$" sentinel convention of the
// "banana$" scenario in spec.md section 8).
func symbolAt(ss *seqset.SequenceSet, e Entry, skip int) (byte, bool) {
	offset := int(e.Offset) + skip
	if offset >= ss.SeqLen(int(e.SeqID)) {
		return 0, false
	}
	return ss.Symbol(int(e.SeqID), offset), true
}

// compareSuffixes lexicographically compares the suffixes starting at a
// and b, beginning at position skip within each, stopping after at most
// limit symbols (limit<0 means unbounded). A suffix that runs out of
// symbols sorts before one that still has symbols remaining.
//
// When limit>=0 (phase 1's bounded q-gram comparison), two suffixes that
// both run out of symbols within the window, or otherwise match across
// it, are left tied (0): bucket discovery is keyed on content only, and
// any such tie is resolved later by phase 2.
//
// When limit<0 (phase 2's unbounded full-suffix comparison), two
// suffixes that both run out of symbols with identical content so far
// are genuinely equal in content but distinct SA entries; spec.md
// section 3's SA-entry invariant and section 8's SA-stability property
// ("for equal content, higher seq-id first") require a deterministic
// order even without a per-sequence sentinel symbol, so the tie is
// broken by descending SeqID.
func compareSuffixes(ss *seqset.SequenceSet, a, b Entry, skip, limit int) int {
	for i := 0; limit < 0 || i < limit; i++ {
		sa, oka := symbolAt(ss, a, skip+i)
		sb, okb := symbolAt(ss, b, skip+i)
		switch {
		case !oka && !okb:
			if limit < 0 {
				return tieBreakBySeqID(a, b)
			}
			return 0
		case !oka:
			return -1
		case !okb:
			return 1
		case ss.Alphabet.OrdLess(sa, sb):
			return -1
		case ss.Alphabet.OrdLess(sb, sa):
			return 1
		}
	}
	return 0
}

// tieBreakBySeqID orders two SA entries with identical suffix content by
// descending SeqID (higher seq-id first), per spec.md section 8's SA
// stability property.
func tieBreakBySeqID(a, b Entry) int {
	switch {
	case a.SeqID > b.SeqID:
		return -1
	case a.SeqID < b.SeqID:
		return 1
	default:
		return 0
	}
}

// sortableBucket is a sort.Interface over one phase-1 bucket, comparing
// full suffixes from position skip onward (the q-gram prefix is already
// known equal across the bucket).
type sortableBucket struct {
	ss   *seqset.SequenceSet
	e    []Entry
	skip int
}

func (s sortableBucket) Len() int      { return len(s.e) }
func (s sortableBucket) Swap(i, j int) { s.e[i], s.e[j] = s.e[j], s.e[i] }
func (s sortableBucket) Less(i, j int) bool {
	return compareSuffixes(s.ss, s.e[i], s.e[j], s.skip, -1) < 0
}

// SymbolAt exports symbolAt for backends (saindex) that binary-search the
// suffix array directly instead of only comparing full suffixes.
func SymbolAt(ss *seqset.SequenceSet, e Entry, skip int) (byte, bool) {
	return symbolAt(ss, e, skip)
}

// CompareSuffixes exports compareSuffixes for backends that need the same
// suffix ordering the builder used, e.g. to verify SA invariants.
func CompareSuffixes(ss *seqset.SequenceSet, a, b Entry, skip, limit int) int {
	return compareSuffixes(ss, a, b, skip, limit)
}

// sortSequential runs Go's library sort over a single bucket. Per
// spec.md's Design Note on phase 2, each bucket is sorted sequentially;
// only bucket-to-bucket dispatch is parallel.
func sortSequential(b sortableBucket) {
	sort.Sort(b)
}
