package matchstore

import "testing"

func TestFilterDuplicatesRemovesExactRepeats(t *testing.T) {
	s := newStoreWith(
		Match{QryID: 0, SubjID: 0, QryStart: 0, SubjStart: 0, Length: 10},
		Match{QryID: 0, SubjID: 0, QryStart: 0, SubjStart: 0, Length: 10},
		Match{QryID: 0, SubjID: 0, QryStart: 1, SubjStart: 1, Length: 10},
	)
	s.FilterDuplicates()
	if len(s.Matches) != 2 {
		t.Fatalf("got %d matches, want 2", len(s.Matches))
	}
}

func TestFilterAbundantDropsOversizedGroups(t *testing.T) {
	s := newStoreWith(
		Match{QryID: 0, SubjID: 0, QryStart: 0, SubjStart: 0, Length: 3},
		Match{QryID: 0, SubjID: 0, QryStart: 1, SubjStart: 1, Length: 3},
		Match{QryID: 0, SubjID: 0, QryStart: 2, SubjStart: 2, Length: 3},
		Match{QryID: 1, SubjID: 1, QryStart: 0, SubjStart: 0, Length: 3},
	)
	ivs := s.DiscoverIntervals(1, 1)
	s.FilterAbundant(ivs, 2)
	if len(s.Matches) != 1 {
		t.Fatalf("got %d matches, want 1 (only the size-1 group survives)", len(s.Matches))
	}
	if s.Matches[0].QryID != 1 {
		t.Fatalf("surviving match has QryID %d, want 1", s.Matches[0].QryID)
	}
}

func TestMergeSiblingsCollapsesOverlappingDiagonal(t *testing.T) {
	s := newStoreWith(
		Match{QryID: 0, SubjID: 0, QryStart: 0, SubjStart: 0, Length: 5},
		Match{QryID: 0, SubjID: 0, QryStart: 3, SubjStart: 3, Length: 5},
	)
	ivs := s.DiscoverIntervals(1, 1)
	s.MergeSiblings(ivs)
	if len(s.Matches) != 1 {
		t.Fatalf("got %d matches, want 1 merged", len(s.Matches))
	}
	if s.Matches[0].Length != 8 {
		t.Fatalf("merged length = %d, want 8", s.Matches[0].Length)
	}
}

func TestMergeSiblingsKeepsDisjointDiagonalsSeparate(t *testing.T) {
	s := newStoreWith(
		Match{QryID: 0, SubjID: 0, QryStart: 0, SubjStart: 0, Length: 3},
		Match{QryID: 0, SubjID: 0, QryStart: 10, SubjStart: 2, Length: 3},
	)
	ivs := s.DiscoverIntervals(1, 1)
	s.MergeSiblings(ivs)
	if len(s.Matches) != 2 {
		t.Fatalf("got %d matches, want 2 (different diagonals)", len(s.Matches))
	}
}
