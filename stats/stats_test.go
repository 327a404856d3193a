package stats

import (
	"math"
	"testing"
)

func TestLengthAdjustmentPurity(t *testing.T) {
	a := LengthAdjustment(300, 1_000_000, DefaultScheme)
	b := LengthAdjustment(300, 1_000_000, DefaultScheme)
	if a != b {
		t.Fatalf("LengthAdjustment not pure: %d vs %d", a, b)
	}
}

func TestLengthAdjustmentBounded(t *testing.T) {
	l := LengthAdjustment(50, 100, DefaultScheme)
	if l < 0 || l >= 50 {
		t.Fatalf("LengthAdjustment(50,100) = %d, out of [0,50)", l)
	}
}

func TestLengthAdjustmentDegenerateInputs(t *testing.T) {
	if l := LengthAdjustment(0, 1000, DefaultScheme); l != 0 {
		t.Errorf("LengthAdjustment(0, ...) = %d, want 0", l)
	}
	if l := LengthAdjustment(10, 0, DefaultScheme); l != 0 {
		t.Errorf("LengthAdjustment(..., 0) = %d, want 0", l)
	}
}

// TestEValueCacheIdempotence encodes spec.md section 8 scenario 4
// literally: two back-to-back calls with ql=300 on the same worker
// produce identical eValue/bitScore and the second call performs no
// length-adjustment recomputation.
func TestEValueCacheIdempotence(t *testing.T) {
	c := NewWorkerCache(5_000_000, DefaultScheme)

	e1, b1 := c.EValue(50, 300)
	recomputationsAfterFirst := c.Recomputations()

	e2, b2 := c.EValue(50, 300)
	recomputationsAfterSecond := c.Recomputations()

	if e1 != e2 {
		t.Errorf("eValue differs across calls: %v vs %v", e1, e2)
	}
	if b1 != b2 {
		t.Errorf("bitScore differs across calls: %v vs %v", b1, b2)
	}
	if recomputationsAfterFirst != 1 {
		t.Errorf("expected 1 recomputation after first call, got %d", recomputationsAfterFirst)
	}
	if recomputationsAfterSecond != recomputationsAfterFirst {
		t.Errorf("second call triggered a recomputation: %d -> %d", recomputationsAfterFirst, recomputationsAfterSecond)
	}
}

func TestEValueDecreasesWithScore(t *testing.T) {
	scheme := DefaultScheme
	low := EValue(20, 300, 1_000_000, scheme)
	high := EValue(60, 300, 1_000_000, scheme)
	if high >= low {
		t.Fatalf("EValue(60) = %v should be < EValue(20) = %v", high, low)
	}
}

func TestBitScoreIncreasesWithScore(t *testing.T) {
	scheme := DefaultScheme
	if BitScore(60, scheme) <= BitScore(20, scheme) {
		t.Fatalf("BitScore should increase with raw score")
	}
}

func TestSumProbabilityTailMonotoneDecreasing(t *testing.T) {
	if SumProbabilityTail(2) <= SumProbabilityTail(3) {
		t.Fatalf("tail probability should decrease as z increases")
	}
}

func TestSumEValueSingletonIsUnchanged(t *testing.T) {
	if got := SumEValue([]float64{0.01}); got != 0.01 {
		t.Fatalf("SumEValue of one E-value should pass it through unchanged, got %v", got)
	}
}

// TestSumEValueMoreCorroboratingHSPsIsMoreSignificant checks the
// sum-statistic direction: several HSPs at the same individual E-value
// combine to a smaller (more significant) E-value than any one alone.
func TestSumEValueMoreCorroboratingHSPsIsMoreSignificant(t *testing.T) {
	one := SumEValue([]float64{0.05})
	two := SumEValue([]float64{0.05, 0.05})
	three := SumEValue([]float64{0.05, 0.05, 0.05})
	if !(three < two && two < one) {
		t.Fatalf("combined E-value should decrease as corroborating HSPs accumulate: one=%v two=%v three=%v", one, two, three)
	}
}

func TestSumEValueEmptyIsInfinite(t *testing.T) {
	if got := SumEValue(nil); !math.IsInf(got, 1) {
		t.Fatalf("SumEValue(nil) = %v, want +Inf", got)
	}
}
