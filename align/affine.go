package align

import "math"

// negInf is the "unreachable" sentinel for DP cells outside the band.
const negInf = math.MinInt32 / 2

// state names which of the three Gotoh planes a cell's optimal score
// came from, or stop for a local-alignment restart (score clamped to
// zero). Mirrors the teacher's Pointer enum generalized to three planes.
type state uint8

const (
	stop state = iota
	fromM
	fromIx
	fromIy
)

// affineKernel implements the three-plane Gotoh recurrence for banded,
// local, affine-gap Smith-Waterman, generalizing
// lexicmap/index/align/nw.go's single-matrix global NW kernel.
type affineKernel struct {
	m, ix, iy             []int
	mFrom, ixFrom, iyFrom []state
}

func (k *affineKernel) ensure(n int) {
	if cap(k.m) < n {
		k.m = make([]int, n)
		k.ix = make([]int, n)
		k.iy = make([]int, n)
		k.mFrom = make([]state, n)
		k.ixFrom = make([]state, n)
		k.iyFrom = make([]state, n)
	}
	k.m = k.m[:n]
	k.ix = k.ix[:n]
	k.iy = k.iy[:n]
	k.mFrom = k.mFrom[:n]
	k.ixFrom = k.ixFrom[:n]
	k.iyFrom = k.iyFrom[:n]
}

func (k *affineKernel) run(o *Options, a, b []byte, lowerDiag, upperDiag int) *Result {
	h := len(a) + 1
	w := len(b) + 1
	n := h * w
	k.ensure(n)

	for i := range k.m[:n] {
		k.m[i], k.ix[i], k.iy[i] = negInf, negInf, negInf
		k.mFrom[i], k.ixFrom[i], k.iyFrom[i] = stop, stop, stop
	}
	// row 0 / col 0: local alignment can start anywhere, so the border is
	// all zero in the M plane (free end-gaps).
	for j := 0; j < w; j++ {
		k.m[idx(0, j, w)] = 0
	}
	for i := 0; i < h; i++ {
		k.m[idx(i, 0, w)] = 0
	}

	bestScore, bestI, bestJ := 0, 0, 0
	gapOpen, gapExtend := o.GapOpen, o.GapExtend

	for i := 1; i < h; i++ {
		lo, hi := bandCols(i, lowerDiag, upperDiag, w)
		for j := lo; j <= hi; j++ {
			if j < 1 {
				continue
			}
			cur := idx(i, j, w)
			diagIdx := idx(i-1, j-1, w)
			topIdx := idx(i-1, j, w)
			leftIdx := idx(i, j-1, w)

			// Ix: gap consuming a[i-1], moving down from row i-1.
			openFromM := addInf(k.m[topIdx], -gapOpen)
			extFromIx := addInf(k.ix[topIdx], -gapExtend)
			ixScore, ixFrom := maxGapsLeft(openFromM, fromM, extFromIx, fromIx)
			k.ix[cur], k.ixFrom[cur] = ixScore, ixFrom

			// Iy: gap consuming b[j-1], moving right from column j-1.
			openFromM2 := addInf(k.m[leftIdx], -gapOpen)
			extFromIy := addInf(k.iy[leftIdx], -gapExtend)
			iyScore, iyFrom := maxGapsLeft(openFromM2, fromM, extFromIy, fromIy)
			k.iy[cur], k.iyFrom[cur] = iyScore, iyFrom

			// M: diagonal substitution from the best of the three planes.
			s := o.Score(a[i-1], b[j-1])
			diagM := addInf(k.m[diagIdx], s)
			diagIx := addInf(k.ix[diagIdx], s)
			diagIy := addInf(k.iy[diagIdx], s)
			best, bestFrom := diagM, fromM
			if diagIx >= best {
				best, bestFrom = diagIx, fromIx
			}
			if diagIy >= best {
				best, bestFrom = diagIy, fromIy
			}
			if best < 0 {
				best, bestFrom = 0, stop
			}
			k.m[cur], k.mFrom[cur] = best, bestFrom

			if best > bestScore {
				bestScore, bestI, bestJ = best, i, j
			}
		}
	}

	return k.traceback(o, a, b, w, bestScore, bestI, bestJ)
}

// addInf adds delta to x unless x is already the unreachable sentinel.
func addInf(x, delta int) int {
	if x <= negInf {
		return negInf
	}
	return x + delta
}

// maxGapsLeft picks the larger of two (score, predecessor) pairs; on a
// tie it prefers continuing the existing gap (extension) over opening a
// new one, the "gaps-left" tie-break of spec.md section 4.C5 applied to
// gap-plane transitions: fewer, longer gaps sort before many short ones.
func maxGapsLeft(openScore int, openFrom state, extScore int, extFrom state) (int, state) {
	if extScore >= openScore {
		return extScore, extFrom
	}
	return openScore, openFrom
}

// bandCols returns the inclusive column range [lo, hi] of row i allowed
// by the diagonal band [lowerDiag, upperDiag], clipped to the matrix.
func bandCols(i, lowerDiag, upperDiag, w int) (int, int) {
	lo := i + lowerDiag
	hi := i + upperDiag
	if lo < 0 {
		lo = 0
	}
	if hi > w-1 {
		hi = w - 1
	}
	return lo, hi
}

func (k *affineKernel) traceback(o *Options, a, b []byte, w, score, i, j int) *Result {
	r := poolResult.Get().(*Result)
	r.Reset()
	r.Score = score
	r.QryEnd, r.SubjEnd = i, j

	if score == 0 {
		r.QryStart, r.SubjStart = i, j
		return r
	}

	plane := fromM
	for {
		cur := idx(i, j, w)
		switch plane {
		case fromM:
			from := k.mFrom[cur]
			if from == stop {
				r.QryStart, r.SubjStart = i, j
				if o.SaveAlignment {
					reverse(r.AlignA)
					reverse(r.AlignM)
					reverse(r.AlignB)
				}
				return r
			}
			r.Len++
			if a[i-1] == b[j-1] {
				r.Matches++
			}
			if o.SaveAlignment {
				r.AlignA = append(r.AlignA, a[i-1])
				r.AlignB = append(r.AlignB, b[j-1])
				if a[i-1] == b[j-1] {
					r.AlignM = append(r.AlignM, '|')
				} else {
					r.AlignM = append(r.AlignM, ' ')
				}
			}
			i, j, plane = i-1, j-1, from
		case fromIx:
			r.Len++
			r.Gaps++
			if o.SaveAlignment {
				r.AlignA = append(r.AlignA, a[i-1])
				r.AlignB = append(r.AlignB, '-')
				r.AlignM = append(r.AlignM, ' ')
			}
			from := k.ixFrom[cur]
			i, plane = i-1, from
		case fromIy:
			r.Len++
			r.Gaps++
			if o.SaveAlignment {
				r.AlignA = append(r.AlignA, '-')
				r.AlignB = append(r.AlignB, b[j-1])
				r.AlignM = append(r.AlignM, ' ')
			}
			from := k.iyFrom[cur]
			j, plane = j-1, from
		}
	}
}

func idx(i, j, w int) int { return i*w + j }

func reverse(s []byte) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}
