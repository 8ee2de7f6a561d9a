// Package validator performs the data-quality pass over one soil sample:
// range checks, statistical outlier detection, cross-parameter consistency
// and an overall confidence score. Findings are returned inside the result,
// never raised; only structurally broken input is an error.
package validator

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/agrilytics/soilcore/internal/model"
	"github.com/agrilytics/soilcore/pkg/stats"
)

// Confidence penalties per finding class.
const (
	penaltyCritical      = 0.25
	penaltyNegative      = 0.3
	penaltyTypical       = 0.1
	penaltyMissing       = 0.1
	penaltyLowConfidence = 0.05
)

// N:P agronomic plausibility window. Ratios outside it are flagged.
const (
	npRatioHigh = 25.0
	npRatioLow  = 5.0
)

// bounds carries the plausibility windows for one parameter: absolute is
// the hard clinical range, typical the range seen in ordinary field samples.
type bounds struct {
	absolute model.Band
	typical  model.Band
}

var paramBounds = map[model.Nutrient]bounds{
	model.NutrientPH:                     {absolute: model.Band{Min: 3, Max: 11}, typical: model.Band{Min: 4, Max: 9.5}},
	model.NutrientNitrogen:               {absolute: model.Band{Min: 0, Max: 1000}, typical: model.Band{Min: 50, Max: 600}},
	model.NutrientPhosphorus:             {absolute: model.Band{Min: 0, Max: 200}, typical: model.Band{Min: 5, Max: 100}},
	model.NutrientPotassium:              {absolute: model.Band{Min: 0, Max: 1000}, typical: model.Band{Min: 50, Max: 500}},
	model.NutrientOrganicCarbon:          {absolute: model.Band{Min: 0, Max: 10}, typical: model.Band{Min: 0.2, Max: 3}},
	model.NutrientElectricalConductivity: {absolute: model.Band{Min: 0, Max: 16}, typical: model.Band{Min: 0, Max: 4}},
	model.NutrientZinc:                   {absolute: model.Band{Min: 0, Max: 100}, typical: model.Band{Min: 0.2, Max: 20}},
	model.NutrientIron:                   {absolute: model.Band{Min: 0, Max: 300}, typical: model.Band{Min: 2, Max: 100}},
	model.NutrientManganese:              {absolute: model.Band{Min: 0, Max: 200}, typical: model.Band{Min: 1, Max: 50}},
	model.NutrientCopper:                 {absolute: model.Band{Min: 0, Max: 50}, typical: model.Band{Min: 0.2, Max: 10}},
	model.NutrientBoron:                  {absolute: model.Band{Min: 0, Max: 20}, typical: model.Band{Min: 0.1, Max: 5}},
	model.NutrientSulfur:                 {absolute: model.Band{Min: 0, Max: 200}, typical: model.Band{Min: 5, Max: 80}},
}

// Validator is stateless; one instance is safe for concurrent use.
type Validator struct {
	log *zap.Logger
}

func New(log *zap.Logger) *Validator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Validator{log: log}
}

// Validate runs every configured check over the sample. Identical input
// always produces identical output: parameters are visited in a fixed order
// and nothing here reads a clock or random source.
func (v *Validator) Validate(nutrients *model.SoilNutrients, micros model.Micronutrients, opts model.ValidationOptions) (model.ValidationResult, error) {
	if nutrients == nil {
		return model.ValidationResult{}, model.InvalidInputf("nutrients")
	}
	if opts.ConfidenceThreshold == 0 {
		opts.ConfidenceThreshold = model.DefaultValidationOptions().ConfidenceThreshold
	}

	res := model.ValidationResult{
		Issues:    []model.Issue{},
		Anomalies: []model.Anomaly{},
	}
	confidence := 1.0

	for _, key := range model.MacroKeys {
		if p := nutrients.Get(key); p != nil {
			confidence -= v.checkParameter(key, *p, opts, &res)
		}
	}
	for _, key := range model.MicronutrientKeys {
		if p, ok := micros[key]; ok {
			confidence -= v.checkParameter(key, p, opts, &res)
		}
	}

	if missing := missingRequired(nutrients); len(missing) > 0 {
		res.Issues = append(res.Issues, model.Issue{
			Parameter:  strings.Join(missing, ", "),
			Issue:      fmt.Sprintf("Required parameter(s) missing: %s", strings.Join(missing, ", ")),
			Severity:   model.SeverityWarning,
			Suggestion: "Ask the lab for a complete pH/N/P/K panel",
			Confidence: 0.9,
		})
		confidence -= penaltyMissing
	}

	if opts.EnableStatisticalAnalysis {
		res.StatisticalAnalysis = v.statisticalPass(nutrients, micros)
	}
	if opts.EnableCrossParameterChecks {
		v.crossParameterPass(nutrients, &res)
	}

	res.Confidence = stats.Clamp01(confidence)
	res.Valid = true
	for _, issue := range res.Issues {
		if issue.Severity.Blocking() {
			res.Valid = false
			break
		}
	}
	res.Recommendations = buildRecommendations(res)

	v.log.Debug("validation finished",
		zap.Bool("valid", res.Valid),
		zap.Float64("confidence", res.Confidence),
		zap.Int("issues", len(res.Issues)),
		zap.Int("anomalies", len(res.Anomalies)))
	return res, nil
}

// checkParameter applies the range rules to one parameter and returns the
// confidence penalty it earned.
func (v *Validator) checkParameter(key model.Nutrient, p model.SoilParameter, opts model.ValidationOptions, res *model.ValidationResult) float64 {
	penalty := 0.0
	name := parameterLabel(key, p)

	if key != model.NutrientPH && p.Value < 0 {
		res.Issues = append(res.Issues, model.Issue{
			Parameter:  name,
			Issue:      fmt.Sprintf("Negative value detected: %g %s", p.Value, p.Unit),
			Severity:   model.SeverityCritical,
			Suggestion: "Reject this reading and re-test the sample",
			Confidence: 1,
		})
		return penaltyNegative
	}

	b, known := paramBounds[key]
	if !known {
		return 0
	}

	switch {
	case !b.absolute.Contains(p.Value):
		res.Issues = append(res.Issues, model.Issue{
			Parameter:  name,
			Issue:      fmt.Sprintf("Value %g %s is outside the physically plausible range %g-%g", p.Value, p.Unit, b.absolute.Min, b.absolute.Max),
			Severity:   model.SeverityCritical,
			Suggestion: "Likely an extraction or transcription error; re-read the report",
			Confidence: 0.95,
		})
		penalty += penaltyCritical
	case !b.typical.Contains(p.Value):
		sev := model.SeverityWarning
		if opts.StrictMode {
			sev = model.SeverityError
		}
		res.Issues = append(res.Issues, model.Issue{
			Parameter:  name,
			Issue:      fmt.Sprintf("Value %g %s is outside the typical range %g-%g", p.Value, p.Unit, b.typical.Min, b.typical.Max),
			Severity:   sev,
			Suggestion: "Unusual but possible; confirm against the printed report",
			Confidence: 0.8,
		})
		penalty += penaltyTypical
	}

	if p.Confidence > 0 && p.Confidence < opts.ConfidenceThreshold {
		res.Issues = append(res.Issues, model.Issue{
			Parameter:  name,
			Issue:      fmt.Sprintf("Extraction confidence %.2f below threshold %.2f", p.Confidence, opts.ConfidenceThreshold),
			Severity:   model.SeverityInfo,
			Suggestion: "Verify this value against the original document",
			Confidence: 0.7,
		})
		penalty += penaltyLowConfidence
	}
	return penalty
}

// statisticalPass flags parameters outside their typical band and scores
// overall agreement. Deviations are normalised by band width so parameters
// with different units compare fairly.
func (v *Validator) statisticalPass(nutrients *model.SoilNutrients, micros model.Micronutrients) *model.StatisticalAnalysis {
	analysis := &model.StatisticalAnalysis{Outliers: []model.Outlier{}}
	var deviations []float64

	visit := func(key model.Nutrient, p model.SoilParameter) {
		b, known := paramBounds[key]
		if !known {
			return
		}
		d := stats.BandDeviation(p.Value, b.typical.Min, b.typical.Max)
		deviations = append(deviations, d)
		if d > 0 {
			analysis.Outliers = append(analysis.Outliers, model.Outlier{
				Parameter:      parameterLabel(key, p),
				Value:          p.Value,
				ExpectedRange:  b.typical,
				DeviationScore: d,
			})
		}
	}
	for _, key := range model.MacroKeys {
		if p := nutrients.Get(key); p != nil {
			visit(key, *p)
		}
	}
	for _, key := range model.MicronutrientKeys {
		if p, ok := micros[key]; ok {
			visit(key, p)
		}
	}

	analysis.ConsistencyScore = stats.Clamp01(1 - stats.Mean(deviations))
	return analysis
}

// crossParameterPass checks relationships between parameters. Currently the
// N:P ratio, which sits between 5 and 25 in agronomically plausible samples.
func (v *Validator) crossParameterPass(nutrients *model.SoilNutrients, res *model.ValidationResult) {
	n, p := nutrients.Nitrogen, nutrients.Phosphorus
	if n == nil || p == nil || p.Value <= 0 || n.Value <= 0 {
		return
	}
	ratio := n.Value / p.Value
	if ratio <= npRatioHigh && ratio >= npRatioLow {
		return
	}

	desc := "unusually nitrogen-rich relative to phosphorus"
	causes := []string{"phosphorus reading understated", "recent heavy nitrogen application"}
	if ratio < npRatioLow {
		desc = "unusually phosphorus-rich relative to nitrogen"
		causes = []string{"nitrogen reading understated", "long-term phosphate build-up"}
	}
	res.Anomalies = append(res.Anomalies, model.Anomaly{
		Parameter:         "N:P ratio",
		Issue:             fmt.Sprintf("N:P ratio %.1f outside the plausible window %.0f-%.0f", ratio, npRatioLow, npRatioHigh),
		Severity:          model.AnomalyMedium,
		Description:       desc,
		PossibleCauses:    causes,
		RecommendedAction: "Cross-check nitrogen and phosphorus figures with the lab",
	})
}

func missingRequired(nutrients *model.SoilNutrients) []string {
	var missing []string
	for _, key := range model.RequiredKeys {
		if nutrients.Get(key) == nil {
			missing = append(missing, string(key))
		}
	}
	return missing
}

func buildRecommendations(res model.ValidationResult) []string {
	var recs []string
	if !res.Valid {
		recs = append(recs, "Re-test the sample before acting on these results")
	}
	if len(res.Anomalies) > 0 {
		recs = append(recs, "Review flagged anomalies with the testing laboratory")
	}
	if res.Valid && res.Confidence < 0.7 {
		recs = append(recs, "Treat derived recommendations as provisional until values are confirmed")
	}
	if len(recs) == 0 {
		recs = append(recs, "Data quality is sufficient for advisory use")
	}
	return recs
}

// parameterLabel prefers the display name from the report, falling back to
// the canonical key.
func parameterLabel(key model.Nutrient, p model.SoilParameter) string {
	if p.Name != "" {
		return p.Name
	}
	return string(key)
}
