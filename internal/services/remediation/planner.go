// Package remediation turns a deficiency list into costed, time-phased
// action plans, and merges per-deficiency plans into one integrated
// strategy. Material selection is rule-driven against the amendment catalog
// in the knowledge base.
package remediation

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/agrilytics/soilcore/internal/kb"
	"github.com/agrilytics/soilcore/internal/model"
)

// Economic assumptions behind payback figures. A flat seasonal yield value
// and uplift, not a market model; consumers must present payback numbers as
// rough guidance.
const (
	assumedSeasonalValuePerHa = 50000.0
	assumedYieldUplift        = 0.25
	longTermHorizonYears      = 3.0
	currency                  = "INR"
)

// Immediate-action effectiveness by tier, inorganic baseline. Organic
// variants score organicPenalty lower.
var immediateEffectiveness = map[model.DeficiencyTier]float64{
	model.TierSevere:   88,
	model.TierModerate: 82,
	model.TierMild:     72,
}

const organicPenalty = 12

// Long-term effectiveness, lifted to 95 under a sustainable-focus plan.
const (
	longTermEffectiveness    = 85.0
	sustainableEffectiveness = 95.0
)

// severityFactor scales catalog dosing bands by deficiency tier.
var severityFactor = map[model.DeficiencyTier]float64{
	model.TierSevere:   1.5,
	model.TierModerate: 1.0,
	model.TierMild:     0.6,
}

// Planner is stateless; one instance is safe for concurrent use.
type Planner struct {
	log *zap.Logger
	kb  *kb.KB
}

func New(log *zap.Logger, knowledge *kb.KB) *Planner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Planner{log: log, kb: knowledge}
}

// Generate produces one remediation plan per deficiency, preserving input
// order. farmSizeHa defaults to 1 when zero; budget is optional.
func (p *Planner) Generate(defs []model.SoilDeficiency, farmSizeHa float64, budget *model.Budget, prefs model.PlannerPreferences) ([]model.RemediationPlan, error) {
	if farmSizeHa < 0 {
		return nil, model.InvalidInputf("farm size %g ha", farmSizeHa)
	}
	if farmSizeHa == 0 {
		farmSizeHa = 1
	}

	plans := make([]model.RemediationPlan, 0, len(defs))
	for _, d := range defs {
		plan := p.planFor(d, farmSizeHa, budget, prefs)
		plans = append(plans, plan)
	}
	p.log.Debug("remediation plans generated", zap.Int("plans", len(plans)), zap.Float64("farm_size_ha", farmSizeHa))
	return plans, nil
}

func (p *Planner) planFor(d model.SoilDeficiency, farmSizeHa float64, budget *model.Budget, prefs model.PlannerPreferences) model.RemediationPlan {
	r := recipeFor(d)

	immediate := p.buildImmediate(d, r, budget, farmSizeHa, prefs)
	longTerm := p.buildLongTerm(d, r, prefs)

	cost := p.costEstimate(immediate, longTerm, farmSizeHa)
	if budget != nil && cost.Max > budget.Max && len(immediate) > 0 {
		immediate[0].Precautions = append(immediate[0].Precautions,
			fmt.Sprintf("estimated cost up to %.0f %s exceeds the stated budget; consider phased application", cost.Max, currency))
	}

	return model.RemediationPlan{
		Deficiency:       d,
		ImmediateActions: immediate,
		LongTermActions:  longTerm,
		SeasonalTiming:   p.kb.Calendar(d.Parameter),
		CostEstimate:     cost,
		ExpectedResults:  p.kb.Outcome(d.Parameter, d.DeficiencyType),
	}
}

func (p *Planner) buildImmediate(d model.SoilDeficiency, r recipe, budget *model.Budget, farmSizeHa float64, prefs model.PlannerPreferences) []model.RemediationAction {
	name := r.immediateInorganic
	organic := false
	if prefs.Organic && r.immediateOrganic != "" {
		name = r.immediateOrganic
		organic = true
	} else if budget != nil && r.immediateOrganic != "" {
		// a budget cap picks the cheaper of the two variants
		if cheaperMaterial(p.kb, r.immediateOrganic, r.immediateInorganic, d.DeficiencyType, farmSizeHa) == r.immediateOrganic {
			name = r.immediateOrganic
			organic = true
		}
	}

	mat, ok := p.kb.Material(name)
	if !ok {
		return nil
	}
	mat = scaleMaterial(mat, severityFactor[d.DeficiencyType])

	eff := immediateEffectiveness[d.DeficiencyType]
	if organic {
		eff -= organicPenalty
	}

	frequency := "single application, repeat after soil re-test"
	if prefs.QuickResults {
		frequency = "single full dose at the earliest application window"
	}

	action := model.RemediationAction{
		ID:                fmt.Sprintf("%s-%s-immediate", d.Parameter, d.DeficiencyType),
		Action:            fmt.Sprintf("Apply %s", mat.Name),
		Description:       fmt.Sprintf("Correct the %s %s shortfall with %s at %s %s per hectare", d.DeficiencyType, d.Parameter, mat.Name, mat.Quantity, mat.Unit),
		Materials:         []model.Material{mat},
		ApplicationMethod: r.method,
		Dosage:            fmt.Sprintf("%s %s/ha", mat.Quantity, mat.Unit),
		Frequency:         frequency,
		Precautions:       r.precautions,
		Effectiveness:     eff,
	}
	return []model.RemediationAction{action}
}

func (p *Planner) buildLongTerm(d model.SoilDeficiency, r recipe, prefs model.PlannerPreferences) []model.RemediationAction {
	eff := longTermEffectiveness
	if prefs.SustainableFocus {
		eff = sustainableEffectiveness
	}

	var actions []model.RemediationAction
	for idx, name := range r.longTerm {
		mat, ok := p.kb.Material(name)
		if !ok {
			continue
		}
		actions = append(actions, model.RemediationAction{
			ID:                fmt.Sprintf("%s-%s-longterm-%d", d.Parameter, d.DeficiencyType, idx+1),
			Action:            fmt.Sprintf("Build up with %s", mat.Name),
			Description:       fmt.Sprintf("Multi-year %s programme using %s to hold %s in the optimal band", mat.Name, mat.Name, d.Parameter),
			Materials:         []model.Material{mat},
			ApplicationMethod: "incorporate before the season, repeat annually",
			Dosage:            fmt.Sprintf("%s %s/ha per year", mat.Quantity, mat.Unit),
			Frequency:         fmt.Sprintf("annually for %d years", int(longTermHorizonYears)),
			Precautions:       nil,
			Effectiveness:     eff,
		})
	}

	if prefs.SustainableFocus {
		compost, okC := p.kb.Material("compost")
		green, okG := p.kb.Material("green manure seed")
		var mats []model.Material
		if okC {
			mats = append(mats, compost)
		}
		if okG {
			mats = append(mats, green)
		}
		actions = append(actions, model.RemediationAction{
			ID:                fmt.Sprintf("%s-%s-longterm-soilhealth", d.Parameter, d.DeficiencyType),
			Action:            "Integrated soil health management",
			Description:       "Rotation with green manure, regular compost and minimal tillage to stabilise the whole nutrient profile",
			Materials:         mats,
			ApplicationMethod: "season-long practice change",
			Dosage:            "as per rotation plan",
			Frequency:         "every season",
			Effectiveness:     90,
		})
	}
	return actions
}

// costEstimate derives the plan cost from the selected actions: immediate
// actions count once, long-term actions for the full horizon.
func (p *Planner) costEstimate(immediate, longTerm []model.RemediationAction, farmSizeHa float64) model.CostEstimate {
	var lo, hi float64
	for _, a := range immediate {
		b := actionCost(a, farmSizeHa, 1)
		lo += b.Min
		hi += b.Max
	}
	for _, a := range longTerm {
		b := actionCost(a, farmSizeHa, longTermHorizonYears)
		lo += b.Min
		hi += b.Max
	}
	return withPayback(model.CostEstimate{Min: lo, Max: hi, Currency: currency}, farmSizeHa)
}

// actionCost prices one action from its material dosing bands.
func actionCost(a model.RemediationAction, farmSizeHa, years float64) model.Band {
	var lo, hi float64
	for _, m := range a.Materials {
		b := m.QuantityBand()
		lo += b.Min * m.CostPerUnit * farmSizeHa * years
		hi += b.Max * m.CostPerUnit * farmSizeHa * years
	}
	return model.Band{Min: lo, Max: hi}
}

// withPayback fills the fixed-assumption payback fields.
func withPayback(c model.CostEstimate, farmSizeHa float64) model.CostEstimate {
	seasonalGain := assumedSeasonalValuePerHa * assumedYieldUplift * farmSizeHa
	if seasonalGain <= 0 {
		return c
	}
	avg := (c.Min + c.Max) / 2
	seasons := int(math.Ceil(avg / seasonalGain))
	if seasons < 1 {
		seasons = 1
	}
	if seasons == 1 {
		c.PaybackPeriod = "1 season"
	} else {
		c.PaybackPeriod = fmt.Sprintf("%d seasons", seasons)
	}
	if avg > 0 {
		// two cropping seasons of uplift per year against the average cost
		c.CostBenefitRatio = math.Round(2*seasonalGain/avg*100) / 100
	}
	return c
}

// scaleMaterial multiplies the catalog dosing band by the severity factor.
func scaleMaterial(m model.Material, factor float64) model.Material {
	if factor == 0 {
		factor = 1
	}
	b := m.QuantityBand()
	m.Quantity = fmt.Sprintf("%g-%g", round1(b.Min*factor), round1(b.Max*factor))
	return m
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }

// cheaperMaterial compares the max-cost of two catalog entries at the given
// tier and returns the cheaper name.
func cheaperMaterial(k *kb.KB, a, b string, tier model.DeficiencyTier, farmSizeHa float64) string {
	ma, okA := k.Material(a)
	mb, okB := k.Material(b)
	if !okA || !okB {
		if okA {
			return a
		}
		return b
	}
	costMax := func(m model.Material) float64 {
		return scaleMaterial(m, severityFactor[tier]).QuantityBand().Max * m.CostPerUnit * farmSizeHa
	}
	if costMax(ma) <= costMax(mb) {
		return a
	}
	return b
}
