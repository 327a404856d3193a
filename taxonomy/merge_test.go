package taxonomy

import (
	"testing"

	"github.com/gobio/blastcore/matchstore"
)

func TestMergeOverlappingHSPsCollapsesSameSubjectOverlaps(t *testing.T) {
	matches := []matchstore.Match{
		{SubjID: 1, QryStart: 0, Length: 20, Score: 30},
		{SubjID: 1, QryStart: 10, Length: 20, Score: 50},
		{SubjID: 1, QryStart: 100, Length: 10, Score: 10},
	}
	taxidOf := func(subjID int32) uint32 { return 9 }

	out := MergeOverlappingHSPs(matches, taxidOf)
	if len(out) != 2 {
		t.Fatalf("expected 2 merged records, got %d: %+v", len(out), out)
	}

	var overlapping, disjoint matchstore.Match
	for _, m := range out {
		if m.QryStart == 0 {
			overlapping = m
		} else {
			disjoint = m
		}
	}
	if overlapping.Score != 50 {
		t.Errorf("merged overlap should keep the higher score 50, got %d", overlapping.Score)
	}
	if overlapping.Length < 30 {
		t.Errorf("merged overlap should span through offset 30, got length %d", overlapping.Length)
	}
	if disjoint.QryStart != 100 {
		t.Errorf("disjoint HSP at offset 100 should survive untouched, got %+v", disjoint)
	}
}

func TestMergeOverlappingHSPsKeepsDifferentTaxaSeparate(t *testing.T) {
	matches := []matchstore.Match{
		{SubjID: 1, QryStart: 0, Length: 20, Score: 30},
		{SubjID: 2, QryStart: 0, Length: 20, Score: 30},
	}
	taxidOf := func(subjID int32) uint32 { return uint32(subjID) }

	out := MergeOverlappingHSPs(matches, taxidOf)
	if len(out) != 2 {
		t.Fatalf("expected matches against different subjects to stay separate, got %d", len(out))
	}
}

func TestMergeOverlappingHSPsEmptyInput(t *testing.T) {
	if out := MergeOverlappingHSPs(nil, func(int32) uint32 { return 0 }); len(out) != 0 {
		t.Errorf("expected empty output for empty input, got %v", out)
	}
}
