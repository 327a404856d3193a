package matchstore

import (
	"sort"

	"github.com/twotwotwo/sorts/sortutil"
	"github.com/zeebo/wyhash"
)

// seedHash returns a fast, non-cryptographic fingerprint of a match's
// seed coordinates, used by the putative-duplicate filter to cheaply test
// set membership without comparing full structs. The putative-abundant
// filter does not hash; it works from interval sizes alone.
// Grounded on shenwei356/LexicMap's use of zeebo/wyhash for k-mer
// fingerprints (lexicmap/index/kmer_location.go uses util.Hash64, itself
// wyhash-backed).
func seedHash(m Match) uint64 {
	var buf [20]byte
	putInt32(buf[0:4], m.QryID)
	putInt32(buf[4:8], m.SubjID)
	putInt32(buf[8:12], m.QryStart)
	putInt32(buf[12:16], m.SubjStart)
	putInt32(buf[16:20], m.Length)
	return wyhash.Hash(buf[:], 0)
}

func putInt32(b []byte, v int32) {
	u := uint32(v)
	b[0] = byte(u)
	b[1] = byte(u >> 8)
	b[2] = byte(u >> 16)
	b[3] = byte(u >> 24)
}

// FilterDuplicates removes matches that are exact coordinate duplicates
// of an earlier match in the same store, per spec.md section 6's
// filterPutativeDuplicates option. Matches must already be sorted (see
// Sort) so duplicates are adjacent.
//
// A duplicate hash is emitted once: the first match (in current store
// order) whose hash is found is kept, every later match sharing that
// hash is dropped. Candidacy is tested against a sorted, deduplicated
// copy of every match's seed hash via binary search, mirroring
// util.UniqUint64s's sort-then-collapse shape in the teacher (itself
// built on sortutil.Uint64s for the plain-uint64-keyed pass) rather
// than an insertion-order set.
func (s *Store) FilterDuplicates() {
	if len(s.Matches) < 2 {
		return
	}
	hashes := make([]uint64, len(s.Matches))
	for i, m := range s.Matches {
		hashes[i] = seedHash(m)
	}
	uniq := append([]uint64(nil), hashes...)
	sortutil.Uint64s(uniq)
	uniq = dedupeSortedUint64s(uniq)

	emitted := make(map[uint64]struct{}, len(uniq))
	out := s.Matches[:0]
	for i, m := range s.Matches {
		h := hashes[i]
		j := sort.Search(len(uniq), func(k int) bool { return uniq[k] >= h })
		if j == len(uniq) || uniq[j] != h {
			continue // cannot happen: h came from hashes, which seeded uniq
		}
		if _, dup := emitted[h]; dup {
			continue
		}
		emitted[h] = struct{}{}
		out = append(out, m)
	}
	s.Matches = out
}

func dedupeSortedUint64s(sorted []uint64) []uint64 {
	if len(sorted) < 2 {
		return sorted
	}
	j := 0
	for i := 1; i < len(sorted); i++ {
		if sorted[i] != sorted[j] {
			j++
			sorted[j] = sorted[i]
		}
	}
	return sorted[:j+1]
}

// FilterAbundant drops every match belonging to a (trueQryId, subjGroup)
// interval whose size exceeds maxPerGroup, per spec.md section 6's
// filterPutativeAbundant option: a subject region matched by an
// implausibly large number of seeds is more likely a low-complexity
// repeat than a biologically meaningful hit.
func (s *Store) FilterAbundant(ivs []Interval, maxPerGroup int) {
	if maxPerGroup <= 0 {
		return
	}
	kept := make([]Match, 0, len(s.Matches))
	for _, iv := range ivs {
		if iv.size() > maxPerGroup {
			continue
		}
		kept = append(kept, s.Matches[iv.Begin:iv.End]...)
	}
	s.Matches = kept
}

// MergeSiblings collapses adjacent seeds within the same interval whose
// (qryStart, subjStart) diagonals match and whose ranges touch or
// overlap into a single longer seed, per spec.md section 6's
// mergePutativeSiblings option. Matches within each interval must
// already be in lexicographic order (the hyper-sort post-condition).
func (s *Store) MergeSiblings(ivs []Interval) {
	merged := make([]Match, 0, len(s.Matches))
	for _, iv := range ivs {
		merged = append(merged, mergeSiblingsInRange(s.Matches[iv.Begin:iv.End])...)
	}
	s.Matches = merged
}

func mergeSiblingsInRange(ms []Match) []Match {
	if len(ms) == 0 {
		return ms
	}
	out := make([]Match, 0, len(ms))
	cur := ms[0]
	for _, m := range ms[1:] {
		sameDiag := m.QryID == cur.QryID && m.SubjID == cur.SubjID &&
			(m.QryStart-m.SubjStart) == (cur.QryStart-cur.SubjStart)
		touches := m.QryStart <= cur.QryStart+cur.Length
		if sameDiag && touches {
			end := cur.QryStart + cur.Length
			if mEnd := m.QryStart + m.Length; mEnd > end {
				end = mEnd
			}
			cur.Length = end - cur.QryStart
			continue
		}
		out = append(out, cur)
		cur = m
	}
	out = append(out, cur)
	return out
}
