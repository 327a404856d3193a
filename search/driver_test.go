package search

import (
	"sync"
	"testing"

	"github.com/gobio/blastcore/alphabet"
	"github.com/gobio/blastcore/config"
	"github.com/gobio/blastcore/matchstore"
	"github.com/gobio/blastcore/saindex"
	"github.com/gobio/blastcore/seqset"
	"github.com/gobio/blastcore/stats"
	"github.com/gobio/blastcore/taxonomy"
)

type collectingSink struct {
	mu      sync.Mutex
	matches []matchstore.Match
}

func (s *collectingSink) Emit(qryID, subjID []byte, m matchstore.Match) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.matches = append(s.matches, m)
	return nil
}

func TestDriverRunFindsExactMatch(t *testing.T) {
	subjects := seqset.New(alphabet.DNA5)
	if err := subjects.Add([]byte("subj1"), []byte("TTTTACGTACGTACGTACGTTTTT")); err != nil {
		t.Fatalf("Add: %v", err)
	}
	subjects.Freeze()

	idx := saindex.New(subjects, config.DefaultParallel, 2, nil)

	cfg := config.DefaultConfig
	cfg.MinSeedLen = 8
	cfg.EValueThreshold = 1e6 // permissive: this test checks discovery, not statistical filtering

	d := NewDriver(&cfg, idx, subjects, stats.DefaultScheme)

	queries := seqset.New(alphabet.DNA5)
	if err := queries.Add([]byte("q1"), []byte("ACGTACGTACGTACGT")); err != nil {
		t.Fatalf("Add: %v", err)
	}
	queries.Freeze()

	sink := &collectingSink{}
	st, err := d.Run(queries, sink, 2, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if st.QueriesProcessed != 1 {
		t.Errorf("QueriesProcessed = %d, want 1", st.QueriesProcessed)
	}
	if len(sink.matches) == 0 {
		t.Fatal("expected at least one emitted match")
	}
	for _, m := range sink.matches {
		if m.Score <= 0 {
			t.Errorf("emitted match has non-positive score %d", m.Score)
		}
	}
}

func TestDriverMergesOverlappingHSPsWhenTaxonomyIsWired(t *testing.T) {
	subjects := seqset.New(alphabet.DNA5)
	if err := subjects.Add([]byte("subj1"), []byte("TTTTACGTACGTACGTACGTTTTT")); err != nil {
		t.Fatalf("Add: %v", err)
	}
	subjects.Freeze()

	idx := saindex.New(subjects, config.DefaultParallel, 2, nil)

	cfg := config.DefaultConfig
	cfg.MinSeedLen = 8
	cfg.EValueThreshold = 1e6

	tree, err := taxonomy.New([]uint32{0, 0}, []uint32{0, 1})
	if err != nil {
		t.Fatalf("New tree: %v", err)
	}

	d := NewDriver(&cfg, idx, subjects, stats.DefaultScheme)
	d.Taxonomy = tree
	d.TaxidOf = func(subjID int32) uint32 { return 1 }

	queries := seqset.New(alphabet.DNA5)
	if err := queries.Add([]byte("q1"), []byte("ACGTACGTACGTACGT")); err != nil {
		t.Fatalf("Add: %v", err)
	}
	queries.Freeze()

	sink := &collectingSink{}
	if _, err := d.Run(queries, sink, 2, nil); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(sink.matches) == 0 {
		t.Fatal("expected at least one emitted match after taxonomic merge")
	}
}

func TestBlockSizeWithinBounds(t *testing.T) {
	for _, n := range []int{1, 10, 1000, 100000} {
		bs := blockSize(n, 4)
		if bs < 1 || bs > 256 {
			t.Errorf("blockSize(%d, 4) = %d, out of [1,256]", n, bs)
		}
	}
}

func TestDriverRejectsInvalidConfig(t *testing.T) {
	subjects := seqset.New(alphabet.DNA5)
	_ = subjects.Add([]byte("s"), []byte("ACGT"))
	subjects.Freeze()
	idx := saindex.New(subjects, config.DefaultParallel, 1, nil)

	cfg := config.DefaultConfig
	cfg.QryOrigAlphabet = nil

	d := NewDriver(&cfg, idx, subjects, stats.DefaultScheme)
	queries := seqset.New(alphabet.DNA5)
	_ = queries.Add([]byte("q"), []byte("ACGT"))
	queries.Freeze()

	if _, err := d.Run(queries, &collectingSink{}, 1, nil); err == nil {
		t.Fatal("expected validation error for nil QryOrigAlphabet")
	}
}
