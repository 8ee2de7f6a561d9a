package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuantityBand(t *testing.T) {
	cases := []struct {
		name     string
		quantity string
		want     Band
	}{
		{"plain range", "400-600", Band{Min: 400, Max: 600}},
		{"spaced range", " 80 - 130 ", Band{Min: 80, Max: 130}},
		{"decimal range", "2.5-4.5", Band{Min: 2.5, Max: 4.5}},
		{"single value", "500", Band{}},
		{"inverted range", "600-400", Band{}},
		{"not numeric", "as required", Band{}},
		{"empty", "", Band{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := Material{Quantity: tc.quantity}
			assert.Equal(t, tc.want, m.QuantityBand())
		})
	}
}

func TestMergeQuantities(t *testing.T) {
	cases := []struct {
		name string
		a, b string
		want string
	}{
		{"both parse", "400-600", "100-200", "500-800"},
		{"decimals", "2.5-4", "0.5-1", "3-5"},
		{"left malformed", "n/a", "100-200", "100-200"},
		{"right malformed", "100-200", "n/a", "100-200"},
		{"both malformed", "x", "y", "y"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, MergeQuantities(tc.a, tc.b))
		})
	}
}

func TestBand(t *testing.T) {
	b := Band{Min: 5.5, Max: 7.0}
	assert.True(t, b.Contains(5.5))
	assert.True(t, b.Contains(7.0))
	assert.False(t, b.Contains(7.01))
	assert.InDelta(t, 1.5, b.Width(), 1e-9)
	assert.InDelta(t, 6.25, b.Mid(), 1e-9)

	inverted := Band{Min: 7, Max: 5}
	assert.InDelta(t, 0, inverted.Width(), 1e-9)
}

func TestOptimalOrFull(t *testing.T) {
	full := ParameterRange{Min: 0, Max: 14}
	assert.Equal(t, Band{Min: 0, Max: 14}, full.OptimalOrFull())

	withOpt := ParameterRange{Min: 0, Max: 14, Optimal: &Band{Min: 6, Max: 7.5}}
	assert.Equal(t, Band{Min: 6, Max: 7.5}, withOpt.OptimalOrFull())
}
