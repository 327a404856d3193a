// Package stats implements the Karlin-Altschul length adjustment and
// E-value/bit-score statistics of spec.md section 4.C6, grounded on the
// classical BLAST statistics formulation and using the standard
// library's math.Erfc/math.Erfcinv for the score-to-probability tail
// term and its inverse (the sum-statistic combination taxonomy merging
// uses) instead of a hand-rolled complementary error function.
package stats

import (
	"math"
)

// Scheme is a scoring scheme's Karlin-Altschul parameters: K and lambda
// describe the score distribution of local alignments under the random
// model, per spec.md section 4.C6.
type Scheme struct {
	Lambda float64
	K      float64

	// alphaOverLambda / beta approximate the length-adjustment scheme
	// BLAST+ uses to relate expected-score-per-aligned-pair to the
	// effective-length correction; both are scheme-specific constants
	// supplied by the caller (derived offline from the substitution
	// matrix), not computed by this package.
	AlphaOverLambda float64
	Beta            float64
}

// DefaultScheme approximates BLASTN's default K/lambda for a simple
// match/mismatch scoring scheme, used when the caller has not supplied
// scheme-specific statistics.
var DefaultScheme = Scheme{
	Lambda:          1.28,
	K:               0.46,
	AlphaOverLambda: 1.0,
	Beta:            0,
}

const maxLengthAdjustmentIterations = 20

// LengthAdjustment runs the Karlin-Altschul iterative fixed-point for
// effective length, per spec.md section 4.C6: queryLen (post-translation,
// i.e. already divided by 3 for translated queries) and dbTotalLen are
// the nominal lengths; scheme carries K/lambda/alpha/beta. The iteration
// mirrors BLAST+'s BlastKarlinLHtoK length-adjustment fixpoint: start
// from 0 and converge on
//
//	l = (alphaOverLambda * (ln(K) + ln((queryLen-l)*(dbTotalLen-l)))) + beta
//
// clamped to [0, min(queryLen, dbTotalLen)-1] and capped at a bounded
// iteration count (BLAST+ uses the same bounded-iteration-then-accept
// structure rather than iterating to numerical convergence).
func LengthAdjustment(queryLen, dbTotalLen int, scheme Scheme) int {
	if queryLen <= 1 || dbTotalLen <= 1 {
		return 0
	}
	maxLen := queryLen
	if dbTotalLen < maxLen {
		maxLen = dbTotalLen
	}
	lenAdj := 0.0
	for iter := 0; iter < maxLengthAdjustmentIterations; iter++ {
		effQ := float64(queryLen) - lenAdj
		effD := float64(dbTotalLen) - lenAdj
		if effQ < 1 || effD < 1 {
			break
		}
		next := scheme.AlphaOverLambda*(math.Log(scheme.K)+math.Log(effQ*effD)) + scheme.Beta
		if next < 0 {
			next = 0
		}
		if int(next) == int(lenAdj) {
			lenAdj = next
			break
		}
		lenAdj = next
	}
	result := int(lenAdj)
	if result >= maxLen {
		result = maxLen - 1
	}
	if result < 0 {
		result = 0
	}
	return result
}

// EValue computes the Karlin-Altschul E-value for a raw score over
// effective query/database lengths, per spec.md section 4.C6:
// E = K * effQueryLen * effDBLen * exp(-lambda * score).
func EValue(score int, effQueryLen, effDBLen int, scheme Scheme) float64 {
	if effQueryLen <= 0 || effDBLen <= 0 {
		return math.Inf(1)
	}
	searchSpace := float64(effQueryLen) * float64(effDBLen)
	return scheme.K * searchSpace * math.Exp(-scheme.Lambda*float64(score))
}

// BitScore converts a raw score to a bit score using the scheme's K and
// lambda, BLAST's standard normalization:
// bitScore = (lambda*score - ln(K)) / ln(2).
func BitScore(score int, scheme Scheme) float64 {
	return (scheme.Lambda*float64(score) - math.Log(scheme.K)) / math.Ln2
}

// SumProbabilityTail uses the complementary error function to compute the
// upper-tail probability of a normalized score under the Gumbel-like
// extreme value approximation BLAST uses for gapped alignments,
// computed with math.Erfc rather than a hand-rolled series.
func SumProbabilityTail(z float64) float64 {
	return 0.5 * math.Erfc(z/math.Sqrt2)
}

// SumEValue combines the E-values of several HSPs that support the same
// merged hit (e.g. overlapping seeds against one subject that
// taxonomy.MergeOverlappingHSPs collapses into a single record) into one
// combined E-value, per BLAST's sum-statistic idea: several
// weak-but-corroborating HSPs are jointly more significant than any one
// of them taken alone. Each E-value is mapped to the standard-normal
// z-score whose SumProbabilityTail reproduces it (via math.Erfcinv,
// Erfc's inverse), the z-scores are summed and rescaled
// for independence, and SumProbabilityTail maps the combined z back to a
// probability.
func SumEValue(evalues []float64) float64 {
	switch len(evalues) {
	case 0:
		return math.Inf(1)
	case 1:
		return evalues[0]
	}
	z := 0.0
	for _, e := range evalues {
		z += zScoreFromEValue(e)
	}
	return SumProbabilityTail(z / math.Sqrt(float64(len(evalues))))
}

// zScoreFromEValue inverts SumProbabilityTail: the z such that
// SumProbabilityTail(z) == e. E-values are clamped just inside (0,1)
// first, since Erfcinv's domain is (0,2) and an E-value at or beyond 1
// carries no meaningful tail-probability interpretation to invert.
func zScoreFromEValue(e float64) float64 {
	p := 2 * e
	switch {
	case p <= 0:
		p = 1e-300
	case p >= 2:
		p = 2 - 1e-12
	}
	return math.Sqrt2 * math.Erfcinv(p)
}
