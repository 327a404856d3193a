package stats

// WorkerCache is a per-worker, lock-free memoization of LengthAdjustment
// keyed by query length, per spec.md section 4.C6: "Cache is per-worker;
// entries are never evicted within a single search" and "a worker-local
// cache guarantees data-race freedom without locking." One WorkerCache
// must never be shared across goroutines.
type WorkerCache struct {
	scheme Scheme
	dbLen  int
	cache  map[int]int

	recomputations int
}

// NewWorkerCache creates a cache for one worker, fixed to one database
// total length and scoring scheme for the lifetime of the search (per
// spec.md's "LengthAdjustmentCache ... deterministic pure function of
// (queryLen, dbTotalLen, scoringScheme)" — dbTotalLen and scheme are
// invariant within a search, so the cache need only key on queryLen).
func NewWorkerCache(dbLen int, scheme Scheme) *WorkerCache {
	return &WorkerCache{scheme: scheme, dbLen: dbLen, cache: make(map[int]int)}
}

// LengthAdjustment returns the cached length adjustment for queryLen,
// computing and storing it on the first call for that length.
func (c *WorkerCache) LengthAdjustment(queryLen int) int {
	if v, ok := c.cache[queryLen]; ok {
		return v
	}
	c.recomputations++
	v := LengthAdjustment(queryLen, c.dbLen, c.scheme)
	c.cache[queryLen] = v
	return v
}

// Recomputations returns the number of times LengthAdjustment actually
// ran the fixed-point iteration (as opposed to a cache hit), exposed for
// the cache-idempotence testable property in spec.md section 8.
func (c *WorkerCache) Recomputations() int { return c.recomputations }

// EValue computes and returns the E-value for a match's raw score at
// query length q, using this worker's cached length adjustment, and
// mirrors the mutation spec.md section 4.C6 describes ("the call
// populates the match's eValue field in-place") by returning both the
// eValue and bitScore for the caller to assign.
func (c *WorkerCache) EValue(score, q int) (eValue, bitScore float64) {
	l := c.LengthAdjustment(q)
	effQ := q - l
	effD := c.dbLen - l
	if effQ < 0 {
		effQ = 0
	}
	if effD < 0 {
		effD = 0
	}
	return EValue(score, effQ, effD, c.scheme), BitScore(score, c.scheme)
}
