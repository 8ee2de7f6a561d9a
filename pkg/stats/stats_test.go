package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMean(t *testing.T) {
	assert.Equal(t, 0.0, Mean(nil))
	assert.Equal(t, 2.0, Mean([]float64{1, 2, 3}))
}

func TestStdDev(t *testing.T) {
	assert.Equal(t, 0.0, StdDev([]float64{5}))
	// population stddev of {2,4,4,4,5,5,7,9} is exactly 2
	got := StdDev([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	assert.InDelta(t, 2.0, got, 1e-12)
}

func TestMedian(t *testing.T) {
	assert.Equal(t, 0.0, Median(nil))
	assert.Equal(t, 3.0, Median([]float64{5, 1, 3}))
	assert.Equal(t, 2.5, Median([]float64{4, 1, 2, 3}))

	// input must stay untouched
	in := []float64{9, 1, 5}
	_ = Median(in)
	assert.Equal(t, []float64{9, 1, 5}, in)
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 1.0, Clamp(3, 0, 1))
	assert.Equal(t, 0.0, Clamp(-3, 0, 1))
	assert.Equal(t, 0.4, Clamp(0.4, 0, 1))
	assert.Equal(t, 1.0, Clamp01(math.Inf(1)))
}

func TestBandDeviation(t *testing.T) {
	cases := []struct {
		name      string
		v, lo, hi float64
		want      float64
	}{
		{"inside", 5, 0, 10, 0},
		{"below", -5, 0, 10, 0.5},
		{"above", 15, 0, 10, 0.5},
		{"degenerate band", 3, 2, 2, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, BandDeviation(tc.v, tc.lo, tc.hi), 1e-12)
		})
	}
}
