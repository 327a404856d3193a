package saindex

import (
	"sort"
	"testing"

	"github.com/gobio/blastcore/alphabet"
	"github.com/gobio/blastcore/config"
	"github.com/gobio/blastcore/seqset"
)

func buildIndex(t *testing.T, id, seq string) *Index {
	t.Helper()
	ss := seqset.New(alphabet.DNA5)
	if err := ss.Add([]byte(id), []byte(seq)); err != nil {
		t.Fatalf("Add: %v", err)
	}
	ss.Freeze()
	return New(ss, config.DefaultParallel, 2, nil)
}

func TestSeedsExactMatch(t *testing.T) {
	idx := buildIndex(t, "s0", "ACGTACGTN")
	seeds, err := idx.Seeds([]byte("ACGT"), 4)
	if err != nil {
		t.Fatalf("Seeds: %v", err)
	}
	var starts []int32
	for _, s := range seeds {
		if s.QryStart != 0 {
			t.Fatalf("unexpected qryStart %d", s.QryStart)
		}
		starts = append(starts, s.SubjStart)
	}
	sort.Slice(starts, func(i, j int) bool { return starts[i] < starts[j] })
	want := []int32{0, 4}
	if len(starts) != len(want) {
		t.Fatalf("got %v subject starts, want %v", starts, want)
	}
	for i := range want {
		if starts[i] != want[i] {
			t.Fatalf("got %v, want %v", starts, want)
		}
	}
}

func TestSeedsRespectMinLen(t *testing.T) {
	idx := buildIndex(t, "s0", "ACGTTTTT")
	seeds, err := idx.Seeds([]byte("ACGTAAAA"), 5)
	if err != nil {
		t.Fatalf("Seeds: %v", err)
	}
	if len(seeds) != 0 {
		t.Fatalf("got %d seeds, want 0 since the common prefix is only 4 symbols", len(seeds))
	}
}

func TestSeedsNoMatch(t *testing.T) {
	idx := buildIndex(t, "s0", "AAAAAAAA")
	seeds, err := idx.Seeds([]byte("TTTTTTTT"), 2)
	if err != nil {
		t.Fatalf("Seeds: %v", err)
	}
	if len(seeds) != 0 {
		t.Fatalf("got %d seeds, want 0", len(seeds))
	}
}

func TestSeedsRejectsNonPositiveMinLen(t *testing.T) {
	idx := buildIndex(t, "s0", "ACGT")
	if _, err := idx.Seeds([]byte("ACGT"), 0); err == nil {
		t.Fatal("expected error for minLen=0")
	}
}
