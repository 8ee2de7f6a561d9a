package advisor

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrilytics/soilcore/internal/model"
)

func newEngine(t *testing.T, opts Options) *Engine {
	t.Helper()
	e, err := New(opts)
	require.NoError(t, err)
	return e
}

func macro(value, optMin, optMax float64) *model.SoilParameter {
	return &model.SoilParameter{
		Value:      value,
		Unit:       "kg/ha",
		Range:      model.ParameterRange{Min: 0, Max: 1000, Optimal: &model.Band{Min: optMin, Max: optMax}},
		Status:     model.StatusAdequate,
		Confidence: 0.9,
	}
}

func healthyReport() *model.SoilReport {
	return &model.SoilReport{
		SampleID:   "S-001",
		FarmSizeHa: 2,
		Season:     model.SeasonKharif,
		Nutrients: model.SoilNutrients{
			PH: &model.SoilParameter{
				Value:      6.8,
				Range:      model.ParameterRange{Min: 0, Max: 14, Optimal: &model.Band{Min: 6.0, Max: 7.5}},
				Status:     model.StatusOptimal,
				Confidence: 0.9,
			},
			Nitrogen:   macro(250, 200, 280),
			Phosphorus: macro(22, 15, 30),
			Potassium:  macro(160, 120, 200),
		},
	}
}

func deficientReport() *model.SoilReport {
	r := healthyReport()
	r.SampleID = "S-002"
	n := macro(80, 200, 280)
	n.Status = model.StatusDeficient
	r.Nutrients.Nitrogen = n
	return r
}

func TestAnalyzeHealthySample(t *testing.T) {
	e := newEngine(t, Options{})

	adv, err := e.Analyze(healthyReport())
	require.NoError(t, err)

	assert.Equal(t, "S-001", adv.SampleID)
	assert.True(t, adv.Validation.Valid)
	assert.Empty(t, adv.Deficiencies)
	assert.Nil(t, adv.Strategy, "no deficiencies means no remediation strategy")
	require.NotNil(t, adv.Crops)
	assert.Greater(t, adv.Crops.EvaluatedCrops, 0)
	for _, rec := range adv.Crops.TopRecommendations {
		assert.Equal(t, model.SeasonKharif, rec.Season, "report season narrows the crop search")
	}
}

func TestAnalyzeDeficientSample(t *testing.T) {
	e := newEngine(t, Options{})

	adv, err := e.Analyze(deficientReport())
	require.NoError(t, err)

	require.NotEmpty(t, adv.Deficiencies)
	assert.Equal(t, model.NutrientNitrogen, adv.Deficiencies[0].Parameter)
	require.NotEmpty(t, adv.Plans)
	require.NotNil(t, adv.Strategy)
	assert.NotEmpty(t, adv.Strategy.PrioritizedActions)
	assert.Equal(t, "INR", adv.Strategy.TotalCost.Currency)
}

func TestAnalyzeStopsOnInvalidSample(t *testing.T) {
	e := newEngine(t, Options{})
	r := healthyReport()
	r.Nutrients.Nitrogen = macro(-50, 200, 280) // critical issue

	adv, err := e.Analyze(r)
	require.NoError(t, err)

	assert.False(t, adv.Validation.Valid)
	assert.Nil(t, adv.Crops)
	assert.Empty(t, adv.Plans)
}

func TestAnalyzeContinueOnInvalid(t *testing.T) {
	e := newEngine(t, Options{ContinueOnInvalid: true})
	r := healthyReport()
	r.Nutrients.Nitrogen = macro(-50, 200, 280)

	adv, err := e.Analyze(r)
	require.NoError(t, err)

	assert.False(t, adv.Validation.Valid)
	assert.NotNil(t, adv.Crops, "downstream stages still run when asked to")
}

func TestAnalyzeSimulation(t *testing.T) {
	e := newEngine(t, Options{Simulate: true})

	adv, err := e.Analyze(deficientReport())
	require.NoError(t, err)

	require.NotNil(t, adv.Simulation)
	assert.NotEmpty(t, adv.Simulation.AppliedChanges)
}

func TestAnalyzeStructuralErrors(t *testing.T) {
	e := newEngine(t, Options{})

	_, err := e.Analyze(nil)
	require.ErrorIs(t, err, model.ErrInvalidInput)

	r := healthyReport()
	r.FarmSizeHa = -1
	_, err = e.Analyze(r)
	require.ErrorIs(t, err, model.ErrInvalidInput)
}

func TestAnalyzeMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	e := newEngine(t, Options{Registerer: reg})

	_, err := e.Analyze(deficientReport())
	require.NoError(t, err)
	_, err = e.Analyze(nil)
	require.Error(t, err)

	assert.InDelta(t, 1, testutil.ToFloat64(e.metrics.analyses), 1e-9)
	assert.InDelta(t, 1, testutil.ToFloat64(e.metrics.failures), 1e-9)
	assert.Greater(t, testutil.ToFloat64(e.metrics.deficiencies), 0.0)
}
