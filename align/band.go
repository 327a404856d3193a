package align

import "github.com/gobio/blastcore/config"

// BandMemo memoizes config.Band.Width per seqLen for one worker, per
// spec.md section 4.C5: "memoized per seqLen per worker." It is a plain
// map with no locking, mirroring stats.WorkerCache's "worker-local cache
// guarantees data-race freedom without locking" design.
type BandMemo struct {
	band  config.Band
	cache map[int]int
}

// NewBandMemo creates a BandMemo for one worker's fixed band policy.
func NewBandMemo(band config.Band) *BandMemo {
	return &BandMemo{band: band, cache: make(map[int]int)}
}

// Width returns band.Width(seqLen), computing and caching it on first
// use for this seqLen. Constant band policies (band >= 0) do not benefit
// from memoization but are cached anyway for a uniform call site.
func (m *BandMemo) Width(seqLen int) int {
	if w, ok := m.cache[seqLen]; ok {
		return w
	}
	w := m.band.Width(seqLen)
	m.cache[seqLen] = w
	return w
}
