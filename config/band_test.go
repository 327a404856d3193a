package config

import (
	"math"
	"testing"
)

// TestBandSelection encodes spec.md section 8 scenario 3 literally:
// seqLen=64, band=-3 -> b=6; band=-2 -> b=8; band=5 -> b=5; band=-1 -> INT_MAX.
func TestBandSelection(t *testing.T) {
	cases := []struct {
		band Band
		want int
	}{
		{BandLog2, 6},
		{BandSqrt, 8},
		{Band(5), 5},
		{BandUnbanded, math.MaxInt},
	}
	for _, c := range cases {
		if got := c.band.Width(64); got != c.want {
			t.Errorf("Band(%d).Width(64) = %d, want %d", c.band, got, c.want)
		}
	}
}
