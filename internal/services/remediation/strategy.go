package remediation

import (
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/agrilytics/soilcore/internal/model"
)

// IntegratedStrategy merges all per-deficiency plans into one prioritised
// programme. Unlike the per-plan output, material quantities for the same
// amendment are summed and the total cost is recomputed from the selected
// actions, so the headline numbers stay consistent with the action list.
func (p *Planner) IntegratedStrategy(defs []model.SoilDeficiency, farmSizeHa float64, budget *model.Budget) (model.IntegratedStrategy, error) {
	if farmSizeHa == 0 {
		farmSizeHa = 1
	}
	plans, err := p.Generate(defs, farmSizeHa, budget, model.PlannerPreferences{})
	if err != nil {
		return model.IntegratedStrategy{}, err
	}

	var immediate, longTerm []model.RemediationAction
	for _, plan := range plans {
		immediate = append(immediate, plan.ImmediateActions...)
		longTerm = append(longTerm, plan.LongTermActions...)
	}

	prioritized := make([]model.RemediationAction, 0, len(immediate)+len(longTerm))
	prioritized = append(prioritized, immediate...)
	prioritized = append(prioritized, longTerm...)
	sort.SliceStable(prioritized, func(a, b int) bool {
		return prioritized[a].Effectiveness > prioritized[b].Effectiveness
	})

	combined := combineMaterials(prioritized)

	immCost := sumActionCosts(immediate, farmSizeHa, 1)
	ltCost := sumActionCosts(longTerm, farmSizeHa, longTermHorizonYears)
	total := withPayback(model.CostEstimate{
		Min:      immCost.Min + ltCost.Min,
		Max:      immCost.Max + ltCost.Max,
		Currency: currency,
	}, farmSizeHa)

	timeline := []model.TimelinePhase{
		{
			Phase:    "immediate",
			Duration: "0-1 month",
			Actions:  actionNames(immediate),
			Cost:     model.CostEstimate{Min: immCost.Min, Max: immCost.Max, Currency: currency},
		},
		{
			Phase:    "short-term",
			Duration: "1-6 months",
			Actions:  []string{"monitor crop response", "re-test treated parameters"},
			// flat re-test charge, not derived from the action list
			Cost: model.CostEstimate{Min: 500, Max: 1500, Currency: currency},
		},
		{
			Phase:    "long-term",
			Duration: "6-36 months",
			Actions:  actionNames(longTerm),
			Cost:     model.CostEstimate{Min: ltCost.Min, Max: ltCost.Max, Currency: currency},
		},
	}

	strategy := model.IntegratedStrategy{
		PrioritizedActions: prioritized,
		CombinedMaterials:  combined,
		TotalCost:          total,
		Timeline:           timeline,
		Synergies:          synergiesFor(defs),
		Warnings:           warningsFor(defs, prioritized, total, budget),
	}
	p.log.Debug("integrated strategy built",
		zap.Int("actions", len(prioritized)),
		zap.Int("materials", len(combined)),
		zap.Float64("total_cost_max", total.Max))
	return strategy, nil
}

// combineMaterials merges duplicate amendments by (name, unit), summing
// their dosing bands. Order follows first appearance in the prioritised
// action list.
func combineMaterials(actions []model.RemediationAction) []model.Material {
	type matKey struct{ name, unit string }
	index := map[matKey]int{}
	var out []model.Material
	for _, a := range actions {
		for _, m := range a.Materials {
			key := matKey{m.Name, m.Unit}
			if at, ok := index[key]; ok {
				out[at].Quantity = model.MergeQuantities(out[at].Quantity, m.Quantity)
				continue
			}
			index[key] = len(out)
			out = append(out, m)
		}
	}
	return out
}

func sumActionCosts(actions []model.RemediationAction, farmSizeHa, years float64) model.Band {
	var lo, hi float64
	for _, a := range actions {
		b := actionCost(a, farmSizeHa, years)
		lo += b.Min
		hi += b.Max
	}
	return model.Band{Min: lo, Max: hi}
}

func actionNames(actions []model.RemediationAction) []string {
	names := make([]string, 0, len(actions))
	for _, a := range actions {
		names = append(names, a.Action)
	}
	return names
}

// synergiesFor picks the advisory strings that apply to this deficiency
// combination.
func synergiesFor(defs []model.SoilDeficiency) []string {
	has := map[model.Nutrient]bool{}
	micros := 0
	for _, d := range defs {
		has[d.Parameter] = true
		switch d.Parameter {
		case model.NutrientPH, model.NutrientNitrogen, model.NutrientPhosphorus,
			model.NutrientPotassium, model.NutrientOrganicCarbon:
		default:
			micros++
		}
	}

	var out []string
	if has[model.NutrientPH] && (has[model.NutrientNitrogen] || has[model.NutrientPhosphorus] || has[model.NutrientPotassium]) {
		out = append(out, "correcting pH first improves the efficiency of every fertiliser application that follows")
	}
	if has[model.NutrientOrganicCarbon] && len(defs) > 1 {
		out = append(out, "organic matter additions buffer the release of the other amendments")
	}
	if micros >= 2 {
		out = append(out, "a combined chelate spray can cover several micronutrients in one pass")
	}
	return out
}

func warningsFor(defs []model.SoilDeficiency, actions []model.RemediationAction, total model.CostEstimate, budget *model.Budget) []string {
	var out []string

	usesLime, usesUrea := false, false
	for _, a := range actions {
		for _, m := range a.Materials {
			switch m.Name {
			case "agricultural lime":
				usesLime = true
			case "urea":
				usesUrea = true
			}
		}
	}
	if usesLime && usesUrea {
		out = append(out, "lime and urea must not go on in the same pass; separate applications by 2-3 weeks")
	}
	for _, d := range defs {
		if d.Parameter == model.NutrientPH && d.DeficiencyType == model.TierSevere {
			out = append(out, "severe pH correction is gradual; re-test before the second season instead of re-dosing")
			break
		}
	}
	if budget != nil && total.Max > budget.Max {
		out = append(out, fmt.Sprintf("estimated total cost %.0f-%.0f %s exceeds the stated budget of %.0f", total.Min, total.Max, total.Currency, budget.Max))
	}
	return out
}
