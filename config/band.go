package config

import "math"

// Width resolves a Band policy to a concrete width for a sequence of the
// given length, per spec.md section 4.C5:
//
//	band = -1 -> b = +infinity (unbanded)
//	band = -2 -> b = floor(sqrt(seqLen))
//	band = -3 -> b = ceil(log2(seqLen))
//	band >= 0 -> b = band (constant)
//
// The per-seqLen memoization spec.md describes ("memoized per seqLen per
// worker") is the caller's responsibility (see align.BandMemo); Width
// itself is a pure function of (b, seqLen).
func (b Band) Width(seqLen int) int {
	switch {
	case b == BandUnbanded:
		return math.MaxInt
	case b == BandSqrt:
		return int(math.Sqrt(float64(seqLen)))
	case b == BandLog2:
		if seqLen <= 1 {
			return 0
		}
		return int(math.Ceil(math.Log2(float64(seqLen))))
	default:
		return int(b)
	}
}
