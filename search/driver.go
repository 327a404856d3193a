package search

import (
	"sync"
	"sync/atomic"

	"github.com/gobio/blastcore/align"
	"github.com/gobio/blastcore/alphabet"
	"github.com/gobio/blastcore/config"
	"github.com/gobio/blastcore/dbindex"
	"github.com/gobio/blastcore/errs"
	"github.com/gobio/blastcore/internal/logging"
	"github.com/gobio/blastcore/matchstore"
	"github.com/gobio/blastcore/seqset"
	"github.com/gobio/blastcore/stats"
	"github.com/gobio/blastcore/taxonomy"
)

var log = logging.MustGetLogger("search")

// Stats aggregates per-worker counters merged under a mutex, per spec.md
// section 4's "per-worker statistics merged under mutex."
type Stats struct {
	mu sync.Mutex

	QueriesProcessed int64
	SeedsFound       int64
	MatchesEmitted   int64
}

func (s *Stats) merge(queries, seeds, matches int64) {
	s.mu.Lock()
	s.QueriesProcessed += queries
	s.SeedsFound += seeds
	s.MatchesEmitted += matches
	s.mu.Unlock()
}

// lockedSink serializes Emit calls from concurrent workers, so the
// caller's Sink is only ever mutated under mutual exclusion.
type lockedSink struct {
	mu   sync.Mutex
	sink Sink
}

func (s *lockedSink) Emit(qryID, subjID []byte, m matchstore.Match) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sink.Emit(qryID, subjID, m)
}

// Driver runs the block-partitioned, dynamically scheduled search
// pipeline of spec.md section 4.C8.
type Driver struct {
	Config   *config.Config
	Index    dbindex.Index
	Subjects *seqset.SequenceSet
	Scheme   stats.Scheme

	// TaxidOf and Taxonomy are optional. When both are set, matches
	// emitted for one query are passed through
	// taxonomy.MergeOverlappingHSPs (grouped by TaxidOf(subjId)) before
	// reaching the Sink, collapsing redundant overlapping HSPs against
	// the same subject per spec.md section 4.C7's taxonomic
	// post-processing. Taxonomy itself is consulted by callers wanting
	// an LCA across the taxids of a query's surviving hits; the Driver
	// does not compute that LCA, only the pre-merge.
	TaxidOf  func(subjID int32) uint32
	Taxonomy *taxonomy.Tree
}

// NewDriver constructs a Driver over a built index and its subject set.
func NewDriver(cfg *config.Config, idx dbindex.Index, subjects *seqset.SequenceSet, scheme stats.Scheme) *Driver {
	return &Driver{Config: cfg, Index: idx, Subjects: subjects, Scheme: scheme}
}

// blockSize picks a block size in the "tens to hundreds" range spec.md
// section 4.C8 describes, scaled down for small query sets so small
// searches still get more than one block when there is more than one
// worker.
func blockSize(numQueries, numWorkers int) int {
	if numWorkers < 1 {
		numWorkers = 1
	}
	size := numQueries / (numWorkers * 4)
	if size < 1 {
		size = 1
	}
	if size > 256 {
		size = 256
	}
	return size
}

// Run partitions queries into blocks and processes them with numWorkers
// goroutines pulling blocks on demand, per spec.md section 4.C8. progress,
// if non-nil, is invoked from worker 0 only after each of its blocks
// completes, per spec.md section 5's cancellation & timeouts note.
func (d *Driver) Run(queries *seqset.SequenceSet, sink Sink, numWorkers int, progress func(percent int)) (*Stats, error) {
	if err := d.Config.Validate(); err != nil {
		return nil, err
	}
	program, err := d.Config.ResolvedProgram()
	if err != nil {
		return nil, err
	}
	qNumFrames, sNumFrames, err := alphabet.FrameMultiplier(program)
	if err != nil {
		return nil, err
	}

	if numWorkers < 1 {
		numWorkers = 1
	}
	n := queries.Len()
	bs := blockSize(n, numWorkers)
	nBlocks := (n + bs - 1) / bs
	if nBlocks == 0 {
		return &Stats{}, nil
	}

	overall := &Stats{}
	locked := &lockedSink{sink: sink}
	var nextBlock int64
	var wg sync.WaitGroup
	var firstErr error
	var errMu sync.Mutex

	worker := func(workerID int) {
		defer wg.Done()
		w := newWorkerState(d, qNumFrames, sNumFrames)
		for {
			b := atomic.AddInt64(&nextBlock, 1) - 1
			if b >= int64(nBlocks) {
				return
			}
			begin := int(b) * bs
			end := begin + bs
			if end > n {
				end = n
			}
			qCount, seedCount, matchCount, err := w.processBlock(queries, begin, end, locked)
			if err != nil {
				errMu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				errMu.Unlock()
				return
			}
			overall.merge(qCount, seedCount, matchCount)
			if workerID == 0 && progress != nil {
				progress(int(100 * (b + 1) / int64(nBlocks)))
			}
		}
	}

	wg.Add(numWorkers)
	for i := 0; i < numWorkers; i++ {
		go worker(i)
	}
	wg.Wait()

	if firstErr != nil {
		return overall, firstErr
	}
	log.Infof("search complete: %d queries, %d seeds, %d matches emitted",
		overall.QueriesProcessed, overall.SeedsFound, overall.MatchesEmitted)
	return overall, nil
}

// workerState holds one worker's reusable pipeline state, mirroring the
// teacher's per-goroutine pooled Query/Aligner pattern in
// lexicmap/cmd/search.go.
type workerState struct {
	d          *Driver
	qNumFrames int32
	sNumFrames int32

	store    *matchstore.Store
	aligner  *align.Aligner
	bandMemo *align.BandMemo
	cache    *stats.WorkerCache

	code *alphabet.GeneticCode
}

func newWorkerState(d *Driver, qNumFrames, sNumFrames int) *workerState {
	code, _ := alphabet.GeneticCodeByIndex(d.Config.GeneticCodeIndex)
	return &workerState{
		d:          d,
		qNumFrames: int32(qNumFrames),
		sNumFrames: int32(sNumFrames),
		store:      &matchstore.Store{},
		aligner: align.NewAligner(&align.Options{
			Score:     substitutionScore,
			GapOpen:   d.Config.GapOpen,
			GapExtend: d.Config.GapExtend,
		}),
		bandMemo: align.NewBandMemo(d.Config.Band),
		cache:    stats.NewWorkerCache(d.Subjects.TotalLen(), d.Scheme),
		code:     code,
	}
}

func substitutionScore(a, b byte) int {
	if a == b {
		return 2
	}
	return -3
}

// frameSequences returns the physical query sequences to search for one
// true query, per spec.md section 3's frame-expanded id convention:
// index i of the result corresponds to physical qryId trueId*qNumFrames+i.
func (w *workerState) frameSequences(seq []byte) [][]byte {
	if w.qNumFrames == 1 {
		return [][]byte{seq}
	}
	frames := alphabet.Translate6Frames(seq, w.code)
	out := make([][]byte, len(frames))
	for i := range frames {
		out[i] = frames[i]
	}
	return out
}

// processBlock runs the per-block pipeline of spec.md section 4.C8 steps
// 1-5 over queries[begin:end).
func (w *workerState) processBlock(queries *seqset.SequenceSet, begin, end int, sink Sink) (qCount, seedCount, matchCount int64, err error) {
	for trueID := begin; trueID < end; trueID++ {
		qSeq := queries.Sequence(trueID)
		frames := w.frameSequences(qSeq)

		w.store.Reset()
		for frame, frameSeq := range frames {
			if len(frameSeq) == 0 {
				continue
			}
			seeds, serr := w.d.Index.Seeds(frameSeq, w.d.Config.MinSeedLen)
			if serr != nil {
				return qCount, seedCount, matchCount, serr
			}
			physicalQryID := int32(trueID)*w.qNumFrames + int32(frame)
			for _, s := range seeds {
				w.store.Add(matchstore.FromSeed(physicalQryID, s))
			}
			seedCount += int64(len(seeds))
		}

		useHyperSort := w.d.Config.FilterPutativeAbundant || w.d.Config.FilterPutativeDuplicates || w.d.Config.MergePutativeSiblings
		w.store.Sort()
		var ivs []matchstore.Interval
		if useHyperSort {
			ivs = w.store.DiscoverIntervals(w.qNumFrames, w.sNumFrames)
			if w.d.Config.FilterPutativeDuplicates {
				w.store.FilterDuplicates()
				ivs = w.store.DiscoverIntervals(w.qNumFrames, w.sNumFrames)
			}
			if w.d.Config.MergePutativeSiblings {
				w.store.MergeSiblings(ivs)
				ivs = w.store.DiscoverIntervals(w.qNumFrames, w.sNumFrames)
			}
			if w.d.Config.FilterPutativeAbundant {
				w.store.FilterAbundant(ivs, 1000)
				ivs = w.store.DiscoverIntervals(w.qNumFrames, w.sNumFrames)
			}
			w.store.HyperSort(ivs)
		}

		survivors := make([]matchstore.Match, 0, len(w.store.Matches))
		for _, m := range w.store.Matches {
			frame := int(m.QryID % w.qNumFrames)
			frameSeq := frames[frame]
			if int(m.SubjID) >= w.d.Subjects.Len() {
				return qCount, seedCount, matchCount, errs.Newf(errs.Internal, "subjId %d out of range", m.SubjID)
			}
			subjSeq := w.d.Subjects.Sequence(int(m.SubjID))

			seedDiag := int(m.SubjStart) - int(m.QryStart)
			width := w.bandMemo.Width(maxInt(len(frameSeq), len(subjSeq)))
			lo, hi := align.DiagonalsFromBand(seedDiag, width, len(frameSeq), len(subjSeq))

			res := w.aligner.Align(frameSeq, subjSeq, lo, hi)
			m.Score = int32(res.Score)
			m.QryStart = int32(res.QryStart)
			m.SubjStart = int32(res.SubjStart)
			m.Length = int32(res.QryEnd - res.QryStart)
			eValue, bitScore := w.cache.EValue(res.Score, len(frameSeq))
			m.EValue, m.BitScore = eValue, bitScore
			align.RecycleResult(res)

			if eValue > w.d.Config.EValueThreshold {
				continue
			}
			survivors = append(survivors, m)
		}

		if w.d.TaxidOf != nil && w.d.Taxonomy != nil {
			survivors = taxonomy.MergeOverlappingHSPs(survivors, w.d.TaxidOf)
		}
		for _, m := range survivors {
			if serr := sink.Emit(queries.ID(trueID), w.d.Subjects.ID(int(m.SubjID)), m); serr != nil {
				return qCount, seedCount, matchCount, serr
			}
			matchCount++
		}
		qCount++
	}
	return qCount, seedCount, matchCount, nil
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
