package align

// linearKernel implements single-matrix banded local alignment with a
// flat per-symbol gap cost, the kernel selected when GapOpen == 0 per
// spec.md section 4.C5. It mirrors
// lexicmap/index/align/nw.go's single-matrix Global kernel, adapted to
// local scoring (clamp at zero), a diagonal band, and free end-gaps
// (already implied by the zero-clamped border, same as the affine
// kernel's row 0 / column 0 initialization).
type linearKernel struct {
	scores   []int
	pointers []Pointer
}

func (k *linearKernel) ensure(n int) {
	if cap(k.scores) < n {
		k.scores = make([]int, n)
		k.pointers = make([]Pointer, n)
	}
	k.scores = k.scores[:n]
	k.pointers = k.pointers[:n]
}

func (k *linearKernel) run(o *Options, a, b []byte, lowerDiag, upperDiag int) *Result {
	h := len(a) + 1
	w := len(b) + 1
	n := h * w
	k.ensure(n)

	for i := range k.scores {
		k.scores[i] = 0
		k.pointers[i] = Stop
	}

	gap := -o.GapExtend
	bestScore, bestI, bestJ := 0, 0, 0

	for i := 1; i < h; i++ {
		lo, hi := bandCols(i, lowerDiag, upperDiag, w)
		for j := lo; j <= hi; j++ {
			if j < 1 {
				continue
			}
			cur := idx(i, j, w)
			s := o.Score(a[i-1], b[j-1])

			diag := k.scores[idx(i-1, j-1, w)] + s
			top := k.scores[idx(i-1, j, w)] + gap
			left := k.scores[idx(i, j-1, w)] + gap

			best, p := diag, Diag
			if top >= best {
				best, p = top, Top
			}
			if left >= best {
				best, p = left, Left
			}
			if best < 0 {
				best, p = 0, Stop
			}

			k.scores[cur] = best
			k.pointers[cur] = p
			if best > bestScore {
				bestScore, bestI, bestJ = best, i, j
			}
		}
	}

	return k.traceback(o, a, b, w, bestScore, bestI, bestJ)
}

func (k *linearKernel) traceback(o *Options, a, b []byte, w, score, i, j int) *Result {
	r := poolResult.Get().(*Result)
	r.Reset()
	r.Score = score
	r.QryEnd, r.SubjEnd = i, j

	for {
		cur := idx(i, j, w)
		p := k.pointers[cur]
		if p == Stop {
			r.QryStart, r.SubjStart = i, j
			if o.SaveAlignment {
				reverse(r.AlignA)
				reverse(r.AlignM)
				reverse(r.AlignB)
			}
			return r
		}

		r.Len++
		switch p {
		case Diag:
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
			i, j = i-1, j-1
		case Top:
			r.Gaps++
			if o.SaveAlignment {
				r.AlignA = append(r.AlignA, a[i-1])
				r.AlignB = append(r.AlignB, '-')
				r.AlignM = append(r.AlignM, ' ')
			}
			i--
		case Left:
			r.Gaps++
			if o.SaveAlignment {
				r.AlignA = append(r.AlignA, '-')
				r.AlignB = append(r.AlignB, b[j-1])
				r.AlignM = append(r.AlignM, ' ')
			}
			j--
		}
	}
}
