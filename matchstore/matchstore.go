// Package matchstore implements the per-worker seed/match accumulation
// array and hyper-sort pipeline of spec.md section 4.C3/C4, grounded on
// the teacher's Chainer2's in-place region slicing
// (lexicmap/index/chaining2.go) for the "scratch buffer, then swap into
// the live buffer" reuse pattern.
package matchstore

import (
	"sort"
	"sync"

	"github.com/gobio/blastcore/dbindex"
)

// Match is one seed or extended alignment, per spec.md section 3's
// (qryId, subjId, qryStart, subjStart, length, score) tuple. qryId is
// frame-expanded; TrueQryID = qryId / qNumFrames.
type Match struct {
	QryID     int32
	SubjID    int32
	QryStart  int32
	SubjStart int32
	Length    int32
	Score     int32
	EValue    float64
	BitScore  float64
}

// FromSeed builds a Match from a dbindex.Seed anchored at query qryID.
func FromSeed(qryID int32, s dbindex.Seed) Match {
	return Match{
		QryID:     qryID,
		SubjID:    s.SubjID,
		QryStart:  int32(s.QryStart),
		SubjStart: s.SubjStart,
		Length:    s.Length,
	}
}

// Interval is a maximal run of the sorted match array sharing the same
// (trueQryId, subjId/sNumFrames), per spec.md section 3's "Match sort
// interval".
type Interval struct {
	TrueQryID int32
	Begin     int
	End       int
}

func (iv Interval) size() int { return iv.End - iv.Begin }

// Store accumulates matches for one worker and reorders them for
// cache-friendly extension, mirroring the teacher's "worker-local,
// pooled, reused-across-blocks" scratch buffers (index.PoolRefSeq /
// poolMaskResult).
type Store struct {
	Matches []Match
	scratch []Match
}

// Pool recycles Store values across blocks within the same worker, per
// spec.md section 5 "Scratch for hyper-sort is exactly the size of the
// live seed array; it is reused across blocks within the same worker."
var Pool = &sync.Pool{New: func() interface{} {
	return &Store{
		Matches: make([]Match, 0, 1<<16),
		scratch: make([]Match, 0, 1<<16),
	}
}}

// Reset clears a Store for reuse, keeping its backing arrays.
func (s *Store) Reset() {
	s.Matches = s.Matches[:0]
}

// Add appends one match to the store's live array.
func (s *Store) Add(m Match) {
	s.Matches = append(s.Matches, m)
}

// matchSort is the regular sort.Interface ordering matches by (qryId,
// subjId, qryStart, subjStart) ascending, per spec.md section 4.C4
// "Regular sort."
type matchSort []Match

func (m matchSort) Len() int      { return len(m) }
func (m matchSort) Swap(i, j int) { m[i], m[j] = m[j], m[i] }
func (m matchSort) Less(i, j int) bool {
	a, b := m[i], m[j]
	if a.QryID != b.QryID {
		return a.QryID < b.QryID
	}
	if a.SubjID != b.SubjID {
		return a.SubjID < b.SubjID
	}
	if a.QryStart != b.QryStart {
		return a.QryStart < b.QryStart
	}
	return a.SubjStart < b.SubjStart
}

// Sort totally orders s.Matches by (qryId, subjId, qryStart, subjStart).
func (s *Store) Sort() {
	sort.Sort(matchSort(s.Matches))
}

// DiscoverIntervals sweeps the (already-sorted) match array once and cuts
// a new interval whenever the array ends, qryId's true query id changes,
// or subjId/sNumFrames changes, per spec.md section 4.C4 "Interval
// discovery."
func (s *Store) DiscoverIntervals(qNumFrames, sNumFrames int32) []Interval {
	n := len(s.Matches)
	if n == 0 {
		return nil
	}
	var ivs []Interval
	begin := 0
	curTrueQry := trueQryID(s.Matches[0].QryID, qNumFrames)
	curSubjGroup := subjGroup(s.Matches[0].SubjID, sNumFrames)
	for i := 1; i < n; i++ {
		tq := trueQryID(s.Matches[i].QryID, qNumFrames)
		sg := subjGroup(s.Matches[i].SubjID, sNumFrames)
		if tq != curTrueQry || sg != curSubjGroup {
			ivs = append(ivs, Interval{TrueQryID: curTrueQry, Begin: begin, End: i})
			begin = i
			curTrueQry = tq
			curSubjGroup = sg
		}
	}
	ivs = append(ivs, Interval{TrueQryID: curTrueQry, Begin: begin, End: n})
	return ivs
}

func trueQryID(qryID, qNumFrames int32) int32 {
	if qNumFrames <= 0 {
		qNumFrames = 1
	}
	return qryID / qNumFrames
}

func subjGroup(subjID, sNumFrames int32) int32 {
	if sNumFrames <= 0 {
		sNumFrames = 1
	}
	return subjID / sNumFrames
}

// HyperSort stably reorders intervals by descending size and writes
// matches out in interval order into the store's scratch buffer, then
// swaps it into the live buffer, per spec.md section 4.C4 "Hyper-sort."
// It is idempotent: calling it twice on the already-reordered array
// yields the same array, since DiscoverIntervals on the reordered array
// still cuts the same (now contiguous, descending-size) intervals and a
// stable sort of already-sorted keys is a no-op.
func (s *Store) HyperSort(ivs []Interval) {
	ordered := make([]Interval, len(ivs))
	copy(ordered, ivs)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].size() > ordered[j].size()
	})

	if cap(s.scratch) < len(s.Matches) {
		s.scratch = make([]Match, 0, len(s.Matches))
	}
	s.scratch = s.scratch[:0]
	for _, iv := range ordered {
		s.scratch = append(s.scratch, s.Matches[iv.Begin:iv.End]...)
	}
	s.Matches, s.scratch = s.scratch, s.Matches
}
