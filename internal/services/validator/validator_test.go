package validator

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrilytics/soilcore/internal/model"
)

func param(name string, value float64, unit string, min, max float64, status model.ParameterStatus) *model.SoilParameter {
	return &model.SoilParameter{
		Name:       name,
		Value:      value,
		Unit:       unit,
		Range:      model.ParameterRange{Min: min, Max: max},
		Status:     status,
		Confidence: 0.9,
	}
}

func nominalSample() *model.SoilNutrients {
	return &model.SoilNutrients{
		PH:         param("pH", 6.8, "", 3, 11, model.StatusOptimal),
		Nitrogen:   param("nitrogen", 245, "kg/ha", 0, 1000, model.StatusAdequate),
		Phosphorus: param("phosphorus", 18, "kg/ha", 0, 200, model.StatusAdequate),
		Potassium:  param("potassium", 156, "kg/ha", 0, 1000, model.StatusAdequate),
	}
}

func TestValidateNominalSample(t *testing.T) {
	v := New(nil)
	res, err := v.Validate(nominalSample(), nil, model.DefaultValidationOptions())
	require.NoError(t, err)

	assert.True(t, res.Valid)
	assert.GreaterOrEqual(t, res.Confidence, 0.7)
	for _, issue := range res.Issues {
		assert.NotEqual(t, model.SeverityCritical, issue.Severity)
		assert.NotEqual(t, model.SeverityError, issue.Severity)
	}
	require.NotNil(t, res.StatisticalAnalysis)
	assert.Empty(t, res.StatisticalAnalysis.Outliers)
	assert.InDelta(t, 1.0, res.StatisticalAnalysis.ConsistencyScore, 1e-9)
}

func TestValidateNegativeNitrogen(t *testing.T) {
	v := New(nil)
	s := nominalSample()
	s.Nitrogen = param("nitrogen", -50, "kg/ha", 0, 1000, model.StatusDeficient)

	res, err := v.Validate(s, nil, model.DefaultValidationOptions())
	require.NoError(t, err)

	assert.False(t, res.Valid)
	var found bool
	for _, issue := range res.Issues {
		if issue.Parameter == "nitrogen" && issue.Severity == model.SeverityCritical {
			found = true
			assert.True(t, strings.Contains(issue.Issue, "Negative value detected"), "issue text: %s", issue.Issue)
		}
	}
	assert.True(t, found, "expected a critical nitrogen issue, got %+v", res.Issues)
}

func TestValidateExtremePH(t *testing.T) {
	v := New(nil)
	s := nominalSample()
	s.PH = param("pH", 2.0, "", 3, 11, model.StatusDeficient)

	res, err := v.Validate(s, nil, model.DefaultValidationOptions())
	require.NoError(t, err)

	assert.False(t, res.Valid)
	var critical bool
	for _, issue := range res.Issues {
		if issue.Parameter == "pH" && issue.Severity == model.SeverityCritical {
			critical = true
		}
	}
	assert.True(t, critical, "pH=2.0 must raise a critical issue")

	require.NotNil(t, res.StatisticalAnalysis)
	require.NotEmpty(t, res.StatisticalAnalysis.Outliers)
	assert.Equal(t, "pH", res.StatisticalAnalysis.Outliers[0].Parameter)
	assert.Greater(t, res.StatisticalAnalysis.Outliers[0].DeviationScore, 0.0)
}

func TestValidateTypicalRangeWarning(t *testing.T) {
	v := New(nil)
	s := nominalSample()
	s.PH = param("pH", 3.5, "", 3, 11, model.StatusDeficient) // plausible, not typical

	res, err := v.Validate(s, nil, model.DefaultValidationOptions())
	require.NoError(t, err)

	assert.True(t, res.Valid, "a typical-range violation alone must not invalidate")
	var warned bool
	for _, issue := range res.Issues {
		if issue.Parameter == "pH" && issue.Severity == model.SeverityWarning {
			warned = true
		}
	}
	assert.True(t, warned)
}

func TestValidateStrictModeEscalates(t *testing.T) {
	v := New(nil)
	s := nominalSample()
	s.PH = param("pH", 3.5, "", 3, 11, model.StatusDeficient)

	opts := model.DefaultValidationOptions()
	opts.StrictMode = true
	res, err := v.Validate(s, nil, opts)
	require.NoError(t, err)
	assert.False(t, res.Valid)
}

func TestValidateMissingRequired(t *testing.T) {
	v := New(nil)
	s := nominalSample()
	s.Potassium = nil
	s.Phosphorus = nil

	res, err := v.Validate(s, nil, model.DefaultValidationOptions())
	require.NoError(t, err)

	assert.True(t, res.Valid)
	var count int
	for _, issue := range res.Issues {
		if issue.Severity == model.SeverityWarning && strings.Contains(issue.Issue, "missing") {
			count++
			assert.Contains(t, issue.Parameter, "phosphorus")
			assert.Contains(t, issue.Parameter, "potassium")
		}
	}
	assert.Equal(t, 1, count, "missing parameters must produce a single warning")
}

func TestValidateNPRatioAnomaly(t *testing.T) {
	v := New(nil)

	t.Run("nitrogen heavy", func(t *testing.T) {
		s := nominalSample()
		s.Nitrogen = param("nitrogen", 600, "kg/ha", 0, 1000, model.StatusExcessive)
		s.Phosphorus = param("phosphorus", 10, "kg/ha", 0, 200, model.StatusDeficient)

		res, err := v.Validate(s, nil, model.DefaultValidationOptions())
		require.NoError(t, err)
		require.Len(t, res.Anomalies, 1)
		assert.Equal(t, "N:P ratio", res.Anomalies[0].Parameter)
		assert.Equal(t, model.AnomalyMedium, res.Anomalies[0].Severity)
		assert.NotEmpty(t, res.Anomalies[0].PossibleCauses)
	})

	t.Run("disabled", func(t *testing.T) {
		s := nominalSample()
		s.Nitrogen = param("nitrogen", 600, "kg/ha", 0, 1000, model.StatusExcessive)
		s.Phosphorus = param("phosphorus", 10, "kg/ha", 0, 200, model.StatusDeficient)

		opts := model.DefaultValidationOptions()
		opts.EnableCrossParameterChecks = false
		res, err := v.Validate(s, nil, opts)
		require.NoError(t, err)
		assert.Empty(t, res.Anomalies)
	})
}

func TestValidateConfidenceClamped(t *testing.T) {
	v := New(nil)
	s := &model.SoilNutrients{
		PH:         param("pH", 15, "", 3, 11, model.StatusExcessive),
		Nitrogen:   param("nitrogen", -1, "kg/ha", 0, 1000, model.StatusDeficient),
		Phosphorus: param("phosphorus", -1, "kg/ha", 0, 200, model.StatusDeficient),
		Potassium:  param("potassium", -1, "kg/ha", 0, 1000, model.StatusDeficient),
	}
	micros := model.Micronutrients{
		model.NutrientZinc: *param("zinc", -3, "ppm", 0, 100, model.StatusDeficient),
		model.NutrientIron: *param("iron", -3, "ppm", 0, 300, model.StatusDeficient),
	}

	res, err := v.Validate(s, micros, model.DefaultValidationOptions())
	require.NoError(t, err)
	assert.False(t, res.Valid)
	assert.GreaterOrEqual(t, res.Confidence, 0.0)
	assert.LessOrEqual(t, res.Confidence, 1.0)
	assert.Equal(t, 0.0, res.Confidence)
}

func TestValidateLowExtractionConfidence(t *testing.T) {
	v := New(nil)
	s := nominalSample()
	s.PH.Confidence = 0.3

	res, err := v.Validate(s, nil, model.DefaultValidationOptions())
	require.NoError(t, err)
	assert.True(t, res.Valid)
	var info bool
	for _, issue := range res.Issues {
		if issue.Parameter == "pH" && issue.Severity == model.SeverityInfo {
			info = true
		}
	}
	assert.True(t, info)
}

func TestValidateDeterministic(t *testing.T) {
	v := New(nil)
	s := nominalSample()
	s.PH = param("pH", 9.8, "", 3, 11, model.StatusExcessive)
	micros := model.Micronutrients{
		model.NutrientZinc:   *param("zinc", 0.1, "ppm", 0, 100, model.StatusDeficient),
		model.NutrientBoron:  *param("boron", 0.05, "ppm", 0, 20, model.StatusDeficient),
		model.NutrientCopper: *param("copper", 12, "ppm", 0, 50, model.StatusExcessive),
	}

	a, err := v.Validate(s, micros, model.DefaultValidationOptions())
	require.NoError(t, err)
	b, err := v.Validate(s, micros, model.DefaultValidationOptions())
	require.NoError(t, err)

	if diff := cmp.Diff(a, b); diff != "" {
		t.Fatalf("validation not deterministic (-first +second):\n%s", diff)
	}
}

func TestValidateNilNutrients(t *testing.T) {
	v := New(nil)
	_, err := v.Validate(nil, nil, model.DefaultValidationOptions())
	require.ErrorIs(t, err, model.ErrInvalidInput)
}
