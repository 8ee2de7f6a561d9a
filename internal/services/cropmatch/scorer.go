// Package cropmatch scores the crop knowledge base against raw soil
// parameters, ranks and filters the results, projects yield and
// profitability, and runs the deterministic improved-soil simulation.
package cropmatch

import (
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/agrilytics/soilcore/internal/kb"
	"github.com/agrilytics/soilcore/internal/model"
	"github.com/agrilytics/soilcore/internal/model/entities"
	"github.com/agrilytics/soilcore/pkg/stats"
)

// Scoring constants. A factor scoring under limitingScore is reported as
// limiting; crops under retainScore are dropped; suitableScore marks a crop
// as genuinely suitable.
const (
	limitingScore = 60.0
	retainScore   = 40.0
	suitableScore = 70.0
)

// Per-season caps for the season buckets.
var seasonCaps = map[model.Season]int{
	model.SeasonKharif:    5,
	model.SeasonRabi:      5,
	model.SeasonZaid:      3,
	model.SeasonPerennial: 3,
}

// Scorer is stateless; one instance is safe for concurrent use.
type Scorer struct {
	log *zap.Logger
	kb  *kb.KB
}

func New(log *zap.Logger, knowledge *kb.KB) *Scorer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Scorer{log: log, kb: knowledge}
}

// Recommend evaluates every crop in the knowledge base against the sample.
func (s *Scorer) Recommend(nutrients *model.SoilNutrients, micros model.Micronutrients, opts model.CropRecommendationOptions) (model.CropSuitabilityAnalysis, error) {
	if nutrients == nil {
		return model.CropSuitabilityAnalysis{}, model.InvalidInputf("nutrients")
	}
	if opts.MaxRecommendations <= 0 {
		opts.MaxRecommendations = model.DefaultCropOptions().MaxRecommendations
	}
	if opts.Season == "" {
		opts.Season = model.SeasonAll
	}

	var retained []model.CropRecommendation
	evaluated, suitable := 0, 0
	for _, crop := range s.kb.Crops() {
		if opts.Season != model.SeasonAll && crop.Season != opts.Season {
			continue
		}
		evaluated++
		rec := s.scoreCrop(crop, nutrients)
		if rec.SuitabilityScore >= suitableScore {
			suitable++
		}
		if rec.SuitabilityScore >= retainScore {
			retained = append(retained, rec)
		}
	}

	sort.SliceStable(retained, func(a, b int) bool {
		return retained[a].SuitabilityScore > retained[b].SuitabilityScore
	})

	bySeason := make(map[model.Season][]model.CropRecommendation, len(model.SeasonOrder))
	for _, rec := range retained {
		if len(bySeason[rec.Season]) < seasonCaps[rec.Season] {
			bySeason[rec.Season] = append(bySeason[rec.Season], rec)
		}
	}

	top := retained
	if len(top) > opts.MaxRecommendations {
		top = top[:opts.MaxRecommendations]
	}

	analysis := model.CropSuitabilityAnalysis{
		TopRecommendations: top,
		BySeason:           bySeason,
		SuitableCrops:      suitable,
		EvaluatedCrops:     evaluated,
		SoilLimitations:    soilLimitations(nutrients),
	}
	s.log.Debug("crop scoring finished",
		zap.Int("evaluated", evaluated),
		zap.Int("retained", len(retained)),
		zap.Int("suitable", suitable))
	return analysis, nil
}

func (s *Scorer) scoreCrop(crop entities.CropProfile, nutrients *model.SoilNutrients) model.CropRecommendation {
	type factor struct {
		key   model.Nutrient
		band  model.Band
		param *model.SoilParameter
	}
	factors := []factor{
		{model.NutrientPH, crop.PH, nutrients.PH},
		{model.NutrientNitrogen, crop.Nitrogen, nutrients.Nitrogen},
		{model.NutrientPhosphorus, crop.Phosphorus, nutrients.Phosphorus},
		{model.NutrientPotassium, crop.Potassium, nutrients.Potassium},
	}

	var limiting []model.LimitingFactor
	var improvements []string
	scores := make([]float64, len(factors))
	nutrientScores := make([]float64, 0, 3)
	for i, f := range factors {
		score := neutralScore
		if f.param != nil {
			score = parameterSuitability(f.param.Value, f.band)
		}
		scores[i] = score
		if f.key != model.NutrientPH {
			nutrientScores = append(nutrientScores, score)
		}
		if f.param != nil && score < limitingScore {
			direction := "excess"
			if f.param.Value < f.band.Min {
				direction = "deficiency"
			}
			limiting = append(limiting, model.LimitingFactor{
				Parameter: f.key,
				Score:     score,
				Direction: direction,
			})
			improvements = append(improvements, improvementHint(f.key, direction))
		}
	}

	// equal weights: 25% per factor
	overall := stats.Clamp(stats.Mean(scores), 0, 100)

	rec := model.CropRecommendation{
		CropID:           crop.ID,
		Name:             crop.Name,
		SuitabilityScore: overall,
		Confidence:       scoreConfidence(nutrients),
		Season:           crop.Season,
		SoilCompatibility: model.SoilCompatibility{
			PHSuitability:       scores[0],
			NutrientSuitability: stats.Mean(nutrientScores),
			OverallSoilMatch:    overall,
			LimitingFactors:     limiting,
		},
		Requirements:     crop.Requirements(),
		Projections:      project(crop, overall),
		SoilImprovements: improvements,
	}
	return rec
}

// neutralScore stands in for a factor the report did not measure.
const neutralScore = 50.0

// parameterSuitability returns 100 inside the band, then decays linearly:
// score = max(0, 100 - (distance/tolerance) x 60) with the tolerance window
// set to half the band width.
func parameterSuitability(value float64, b model.Band) float64 {
	if b.Contains(value) {
		return 100
	}
	tolerance := b.Width() * 0.5
	if tolerance <= 0 {
		tolerance = 1
	}
	distance := b.Min - value
	if value > b.Max {
		distance = value - b.Max
	}
	return stats.Clamp(100-(distance/tolerance)*60, 0, 100)
}

// scoreConfidence averages the extraction confidences of the four scored
// parameters. A missing parameter counts as 0.4, an unreported confidence
// as 0.75.
func scoreConfidence(nutrients *model.SoilNutrients) float64 {
	var confs []float64
	for _, key := range model.RequiredKeys {
		p := nutrients.Get(key)
		switch {
		case p == nil:
			confs = append(confs, 0.4)
		case p.Confidence > 0:
			confs = append(confs, p.Confidence)
		default:
			confs = append(confs, 0.75)
		}
	}
	return stats.Clamp01(stats.Mean(confs))
}

func improvementHint(key model.Nutrient, direction string) string {
	if direction == "excess" {
		return fmt.Sprintf("hold back further %s inputs this season", key)
	}
	switch key {
	case model.NutrientPH:
		return "correct soil reaction before sowing"
	case model.NutrientNitrogen:
		return "raise nitrogen with a split top dressing"
	case model.NutrientPhosphorus:
		return "band a phosphate dose below the seed line"
	case model.NutrientPotassium:
		return "broadcast a potash dose before land preparation"
	}
	return fmt.Sprintf("correct the %s shortfall before sowing", key)
}

// limitation thresholds for the crop-independent soil constraints.
var limitationBands = []struct {
	key         model.Nutrient
	band        model.Band
	lowDesc     string
	highDesc    string
	suggestions []string
}{
	{
		key:      model.NutrientPH,
		band:     model.Band{Min: 6.0, Max: 7.5},
		lowDesc:  "acidic reaction restricts nutrient availability",
		highDesc: "alkaline reaction locks up micronutrients",
		suggestions: []string{
			"apply a liming or acidifying amendment per a remediation plan",
			"re-test pH after one season",
		},
	},
	{
		key:      model.NutrientNitrogen,
		band:     model.Band{Min: 280, Max: 560},
		lowDesc:  "available nitrogen below the medium fertility band",
		highDesc: "available nitrogen above the medium fertility band",
		suggestions: []string{
			"plan split nitrogen applications",
			"grow a legume in rotation",
		},
	},
	{
		key:      model.NutrientPhosphorus,
		band:     model.Band{Min: 10, Max: 25},
		lowDesc:  "available phosphorus below the medium fertility band",
		highDesc: "available phosphorus above the medium fertility band",
		suggestions: []string{
			"band phosphate at sowing",
			"avoid broadcast phosphate on this soil",
		},
	},
	{
		key:      model.NutrientPotassium,
		band:     model.Band{Min: 120, Max: 280},
		lowDesc:  "available potassium below the medium fertility band",
		highDesc: "available potassium above the medium fertility band",
		suggestions: []string{
			"apply potash before land preparation",
			"return crop residues to the field",
		},
	},
}

// soilLimitations runs the static threshold checks, independent of any
// crop.
func soilLimitations(nutrients *model.SoilNutrients) []model.SoilLimitation {
	var out []model.SoilLimitation
	for _, rule := range limitationBands {
		p := nutrients.Get(rule.key)
		if p == nil {
			continue
		}
		switch {
		case p.Value < rule.band.Min:
			out = append(out, model.SoilLimitation{
				Parameter:   rule.key,
				Description: rule.lowDesc,
				Suggestions: rule.suggestions,
			})
		case p.Value > rule.band.Max:
			out = append(out, model.SoilLimitation{
				Parameter:   rule.key,
				Description: rule.highDesc,
				Suggestions: rule.suggestions,
			})
		}
	}
	return out
}
