package taxonomy

import (
	"sort"

	"github.com/gobio/blastcore/matchstore"
	"github.com/gobio/blastcore/stats"
	"github.com/rdleal/intervalst/interval"
)

// MergeOverlappingHSPs groups matches by subject and merges any whose
// query ranges overlap into a single record spanning the union. Score
// and bit-score are taken from the highest-scoring HSP in the group, but
// the merged E-value is the sum-statistic combination (stats.SumEValue)
// of every HSP folded into it: several overlapping HSPs against the same
// subject region are corroborating evidence for one hit, jointly more
// significant than any single one of them. This is the taxonomy-filtered
// search path's post-processing step: once matches have been grouped by
// a shared LCA-derived taxid (by the caller, via taxidOf), overlapping
// HSPs against the same subject within one taxid group are redundant
// evidence for the same hit and are collapsed before reporting.
//
// Grounded on lexicmap/cmd/gen-masks.go's per-genome interval.SearchTree
// usage (AnyIntersection before Insert to avoid re-covering a region
// already claimed by a higher-priority k-mer); here the same
// "does-this-range-already-overlap" check merges HSPs instead of
// discarding candidate k-mer positions.
func MergeOverlappingHSPs(matches []matchstore.Match, taxidOf func(subjID int32) uint32) []matchstore.Match {
	if len(matches) == 0 {
		return matches
	}

	byGroup := make(map[groupKey][]matchstore.Match)
	for _, m := range matches {
		k := groupKey{taxid: taxidOf(m.SubjID), subjID: m.SubjID}
		byGroup[k] = append(byGroup[k], m)
	}

	cmpFn := func(a, b int32) int { return int(a - b) }
	out := make([]matchstore.Match, 0, len(matches))
	for _, group := range byGroup {
		sort.Slice(group, func(i, j int) bool { return group[i].QryStart < group[j].QryStart })

		tree := interval.NewSearchTree[int, int32](cmpFn)
		merged := make([]*mergedHSP, 0, len(group))

		for i := range group {
			m := group[i]
			start := m.QryStart
			end := m.QryStart + m.Length
			if idx, ok := tree.AnyIntersection(start, end); ok {
				target := merged[idx]
				if m.QryStart < target.match.QryStart {
					target.match.QryStart = m.QryStart
				}
				if end := m.QryStart + m.Length; end > target.match.QryStart+target.match.Length {
					target.match.Length = end - target.match.QryStart
				}
				// Index the record's widened range so later HSPs that
				// overlap only the extension still merge into it.
				tree.Insert(target.match.QryStart, target.match.QryStart+target.match.Length, idx)
				if m.Score > target.match.Score {
					target.match.Score = m.Score
					target.match.BitScore = m.BitScore
				}
				target.evalues = append(target.evalues, m.EValue)
				continue
			}
			mCopy := m
			merged = append(merged, &mergedHSP{match: mCopy, evalues: []float64{m.EValue}})
			tree.Insert(start, end, len(merged)-1)
		}

		for _, mh := range merged {
			mh.match.EValue = stats.SumEValue(mh.evalues)
			out = append(out, mh.match)
		}
	}
	return out
}

// mergedHSP tracks one output record's running match alongside every
// input HSP's E-value folded into it, so the final combined E-value can
// be computed once all overlaps for that record are known.
type mergedHSP struct {
	match   matchstore.Match
	evalues []float64
}

type groupKey struct {
	taxid  uint32
	subjID int32
}
