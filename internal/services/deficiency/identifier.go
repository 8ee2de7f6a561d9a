// Package deficiency turns a validated sample into a ranked list of
// nutrient deficiencies. Tiering rules are fixed per parameter; the
// agronomic knowledge attached to each finding comes from the embedded
// knowledge base.
package deficiency

import (
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/agrilytics/soilcore/internal/kb"
	"github.com/agrilytics/soilcore/internal/model"
)

// pH tier boundaries.
const (
	phOptimalMin   = 6.0
	phOptimalMax   = 7.5
	phModerateLow  = 5.5
	phModerateHigh = 8.0
	phSevereLow    = 5.0
	phSevereHigh   = 8.5
)

// Organic carbon thresholds (percent).
const (
	ocOptimalMin  = 0.5
	ocModerateMin = 0.4
	ocSevereMin   = 0.25
)

// Severity multipliers relative to the optimal minimum: a macro nutrient
// under half its optimal floor is severe, a micronutrient under 30%.
const (
	macroSevereFraction = 0.5
	microSevereFraction = 0.3
)

// importanceWeight ranks parameters for the output ordering. pH gates the
// availability of everything else, so it outranks the nutrients themselves.
var importanceWeight = map[model.Nutrient]float64{
	model.NutrientPH:            1.2,
	model.NutrientNitrogen:      1.1,
	model.NutrientPhosphorus:    1.0,
	model.NutrientPotassium:     1.0,
	model.NutrientOrganicCarbon: 0.9,
}

func weightOf(n model.Nutrient) float64 {
	if w, ok := importanceWeight[n]; ok {
		return w
	}
	return 0.8
}

// Identifier is stateless; one instance is safe for concurrent use.
type Identifier struct {
	log *zap.Logger
	kb  *kb.KB
}

func New(log *zap.Logger, knowledge *kb.KB) *Identifier {
	if log == nil {
		log = zap.NewNop()
	}
	return &Identifier{log: log, kb: knowledge}
}

// Identify returns all deficiencies of the sample, sorted by
// severity x importance, most pressing first. soilType and cropType are
// optional context that sharpen the attached cause/impact strings.
//
// A quirk kept from the field-tested rules: an excessive reading is
// reported as a mild deficiency of the same parameter rather than as a
// separate surplus category.
func (i *Identifier) Identify(nutrients *model.SoilNutrients, micros model.Micronutrients, soilType, cropType string) ([]model.SoilDeficiency, error) {
	if nutrients == nil {
		return nil, model.InvalidInputf("nutrients")
	}

	var out []model.SoilDeficiency
	if d := i.checkPH(nutrients.PH, soilType); d != nil {
		out = append(out, *d)
	}
	for _, key := range []model.Nutrient{model.NutrientNitrogen, model.NutrientPhosphorus, model.NutrientPotassium} {
		if d := i.checkMacro(key, nutrients.Get(key)); d != nil {
			out = append(out, *d)
		}
	}
	if d := i.checkOrganicCarbon(nutrients.OrganicCarbon); d != nil {
		out = append(out, *d)
	}
	for _, key := range model.MicronutrientKeys {
		if p, ok := micros[key]; ok {
			if d := i.checkMicro(key, p); d != nil {
				out = append(out, *d)
			}
		}
	}

	if cropType != "" {
		note := fmt.Sprintf("expected to limit %s performance on this field", cropType)
		for idx := range out {
			// copy before appending: the impact slices are shared KB data
			impacts := make([]string, 0, len(out[idx].ImpactOnCrops)+1)
			impacts = append(impacts, out[idx].ImpactOnCrops...)
			out[idx].ImpactOnCrops = append(impacts, note)
		}
	}

	sort.SliceStable(out, func(a, b int) bool {
		wa := out[a].DeficiencyType.Weight() * weightOf(out[a].Parameter)
		wb := out[b].DeficiencyType.Weight() * weightOf(out[b].Parameter)
		return wa > wb
	})

	i.log.Debug("deficiencies identified", zap.Int("count", len(out)))
	return out, nil
}

func (i *Identifier) checkPH(p *model.SoilParameter, soilType string) *model.SoilDeficiency {
	if p == nil {
		return nil
	}
	v := p.Value
	optimal := model.Band{Min: phOptimalMin, Max: phOptimalMax}
	if optimal.Contains(v) {
		return nil
	}

	var tier model.DeficiencyTier
	switch {
	case v < phSevereLow || v > phSevereHigh:
		tier = model.TierSevere
	case v < phModerateLow || v > phModerateHigh:
		tier = model.TierModerate
	default:
		tier = model.TierMild
	}

	acid := v < phOptimalMin
	deficit := phOptimalMin - v
	if !acid {
		deficit = v - phOptimalMax
	}

	rec := i.kb.Knowledge(model.NutrientPH, tier, acid)
	causes := rec.Causes
	if soilType != "" {
		causes = append(append([]string{}, causes...),
			fmt.Sprintf("pattern consistent with %s soils in the region", soilType))
	}
	return &model.SoilDeficiency{
		Parameter:      model.NutrientPH,
		DeficiencyType: tier,
		CurrentValue:   v,
		OptimalRange:   optimal,
		DeficitAmount:  deficit,
		ImpactOnCrops:  rec.Impacts,
		Symptoms:       rec.Symptoms,
		Causes:         causes,
	}
}

func (i *Identifier) checkMacro(key model.Nutrient, p *model.SoilParameter) *model.SoilDeficiency {
	if p == nil || p.Status == model.StatusOptimal || p.Status == model.StatusAdequate {
		return nil
	}
	optimal := p.Range.OptimalOrFull()

	var tier model.DeficiencyTier
	switch p.Status {
	case model.StatusDeficient:
		if p.Value < optimal.Min*macroSevereFraction {
			tier = model.TierSevere
		} else {
			tier = model.TierModerate
		}
	case model.StatusExcessive:
		tier = model.TierMild
	default:
		return nil
	}

	deficit := optimal.Min - p.Value
	if deficit < 0 {
		deficit = 0
	}
	rec := i.kb.Knowledge(key, tier, false)
	return &model.SoilDeficiency{
		Parameter:      key,
		DeficiencyType: tier,
		CurrentValue:   p.Value,
		OptimalRange:   optimal,
		DeficitAmount:  deficit,
		ImpactOnCrops:  rec.Impacts,
		Symptoms:       rec.Symptoms,
		Causes:         rec.Causes,
	}
}

func (i *Identifier) checkOrganicCarbon(p *model.SoilParameter) *model.SoilDeficiency {
	if p == nil || p.Value >= ocOptimalMin {
		return nil
	}
	var tier model.DeficiencyTier
	switch {
	case p.Value < ocSevereMin:
		tier = model.TierSevere
	case p.Value < ocModerateMin:
		tier = model.TierModerate
	default:
		tier = model.TierMild
	}
	rec := i.kb.Knowledge(model.NutrientOrganicCarbon, tier, false)
	return &model.SoilDeficiency{
		Parameter:      model.NutrientOrganicCarbon,
		DeficiencyType: tier,
		CurrentValue:   p.Value,
		OptimalRange:   model.Band{Min: ocOptimalMin, Max: p.Range.Max},
		DeficitAmount:  ocOptimalMin - p.Value,
		ImpactOnCrops:  rec.Impacts,
		Symptoms:       rec.Symptoms,
		Causes:         rec.Causes,
	}
}

func (i *Identifier) checkMicro(key model.Nutrient, p model.SoilParameter) *model.SoilDeficiency {
	if p.Status == model.StatusOptimal || p.Status == model.StatusAdequate {
		return nil
	}
	optimal := p.Range.OptimalOrFull()

	var tier model.DeficiencyTier
	switch p.Status {
	case model.StatusDeficient:
		if p.Value < optimal.Min*microSevereFraction {
			tier = model.TierSevere
		} else {
			tier = model.TierModerate
		}
	case model.StatusExcessive:
		tier = model.TierMild
	default:
		return nil
	}

	deficit := optimal.Min - p.Value
	if deficit < 0 {
		deficit = 0
	}
	rec := i.kb.Knowledge(key, tier, false)
	return &model.SoilDeficiency{
		Parameter:      key,
		DeficiencyType: tier,
		CurrentValue:   p.Value,
		OptimalRange:   optimal,
		DeficitAmount:  deficit,
		ImpactOnCrops:  rec.Impacts,
		Symptoms:       rec.Symptoms,
		Causes:         rec.Causes,
	}
}
