package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSoilParameterUnmarshalTolerant(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want float64
	}{
		{"plain number", `{"value": 6.5}`, 6.5},
		{"quoted number", `{"value": "6.5"}`, 6.5},
		{"decimal comma", `{"value": "6,5"}`, 6.5},
		{"padded string", `{"value": " 250 "}`, 250},
		{"integer", `{"value": 180}`, 180},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var p SoilParameter
			require.NoError(t, json.Unmarshal([]byte(tc.in), &p))
			assert.InDelta(t, tc.want, p.Value, 1e-9)
		})
	}
}

func TestSoilParameterUnmarshalRejectsGarbage(t *testing.T) {
	var p SoilParameter
	err := json.Unmarshal([]byte(`{"name":"pH","value":"high"}`), &p)
	require.ErrorIs(t, err, ErrInvalidInput)

	err = json.Unmarshal([]byte(`{"value": "Infinity"}`), &p)
	require.Error(t, err)
}

func TestSoilParameterUnmarshalConfidenceString(t *testing.T) {
	var p SoilParameter
	require.NoError(t, json.Unmarshal([]byte(`{"value": 7, "confidence": "0,85"}`), &p))
	assert.InDelta(t, 0.85, p.Confidence, 1e-9)
}

func TestSoilReportUnmarshal(t *testing.T) {
	doc := `{
		"sample_id": "S-42",
		"farm_size_ha": 2.5,
		"season": "rabi",
		"soil_type": "loam",
		"nutrients": {
			"pH": {"value": "6,8", "confidence": 0.9},
			"nitrogen": {"value": 250, "unit": "kg/ha"}
		},
		"micronutrients": {
			"zinc": {"value": "0.4", "unit": "ppm"}
		}
	}`
	var r SoilReport
	require.NoError(t, json.Unmarshal([]byte(doc), &r))

	assert.Equal(t, "S-42", r.SampleID)
	assert.Equal(t, SeasonRabi, r.Season)
	require.NotNil(t, r.Nutrients.PH)
	assert.InDelta(t, 6.8, r.Nutrients.PH.Value, 1e-9)
	assert.InDelta(t, 250, r.Nutrients.Nitrogen.Value, 1e-9)
	assert.InDelta(t, 0.4, r.Micronutrients[NutrientZinc].Value, 1e-9)
	require.NoError(t, r.Validate())
}

func TestSoilReportValidate(t *testing.T) {
	var nilReport *SoilReport
	require.ErrorIs(t, nilReport.Validate(), ErrInvalidInput)

	r := &SoilReport{FarmSizeHa: -2}
	require.ErrorIs(t, r.Validate(), ErrInvalidInput)

	require.NoError(t, (&SoilReport{}).Validate())
}
