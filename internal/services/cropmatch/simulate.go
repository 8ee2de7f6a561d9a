package cropmatch

import (
	"fmt"

	"github.com/agrilytics/soilcore/internal/model"
)

// Fixed simulation deltas. The forward model is deliberately crude: nudge each
// out-of-band parameter toward its agronomic comfort zone by a fixed step and
// re-score. It is a "what could remediation buy you" comparison, not a soil
// chemistry model.
const (
	simAcidPHBelow  = 6.0
	simAcidPHDelta  = 1.0
	simAcidPHCap    = 6.5
	simAlkalinePH   = 7.5
	simAlkalineDrop = 0.8
	simAlkalineMin  = 7.0
)

var simNutrientSteps = []struct {
	key       model.Nutrient
	threshold float64
	delta     float64
	ceiling   float64
}{
	{model.NutrientNitrogen, 280, 50, 280},
	{model.NutrientPhosphorus, 25, 10, 25},
	{model.NutrientPotassium, 150, 40, 190},
}

// SimulateImprovedSoil re-runs the scorer against a copy of the sample with
// the fixed improvement deltas applied, and reports both analyses plus the
// list of changes that were made.
func (s *Scorer) SimulateImprovedSoil(nutrients *model.SoilNutrients, micros model.Micronutrients, opts model.CropRecommendationOptions) (model.ImprovedSoilSimulation, error) {
	current, err := s.Recommend(nutrients, micros, opts)
	if err != nil {
		return model.ImprovedSoilSimulation{}, err
	}

	improved, changes := applyImprovements(nutrients)
	after, err := s.Recommend(improved, micros, opts)
	if err != nil {
		return model.ImprovedSoilSimulation{}, err
	}

	return model.ImprovedSoilSimulation{
		Current:        current,
		Improved:       after,
		AppliedChanges: changes,
	}, nil
}

// applyImprovements deep-copies the nutrients and nudges out-of-band values.
func applyImprovements(nutrients *model.SoilNutrients) (*model.SoilNutrients, []string) {
	out := &model.SoilNutrients{
		PH:                     cloneParam(nutrients.PH),
		Nitrogen:               cloneParam(nutrients.Nitrogen),
		Phosphorus:             cloneParam(nutrients.Phosphorus),
		Potassium:              cloneParam(nutrients.Potassium),
		OrganicCarbon:          cloneParam(nutrients.OrganicCarbon),
		ElectricalConductivity: cloneParam(nutrients.ElectricalConductivity),
	}
	var changes []string

	if p := out.PH; p != nil {
		switch {
		case p.Value < simAcidPHBelow:
			raised := p.Value + simAcidPHDelta
			if raised > simAcidPHCap {
				raised = simAcidPHCap
			}
			changes = append(changes, fmt.Sprintf("pH raised from %.1f to %.1f (liming)", p.Value, raised))
			p.Value = raised
		case p.Value > simAlkalinePH:
			lowered := p.Value - simAlkalineDrop
			if lowered < simAlkalineMin {
				lowered = simAlkalineMin
			}
			changes = append(changes, fmt.Sprintf("pH lowered from %.1f to %.1f (acidifying amendment)", p.Value, lowered))
			p.Value = lowered
		}
	}

	for _, step := range simNutrientSteps {
		p := out.Get(step.key)
		if p == nil || p.Value >= step.threshold {
			continue
		}
		raised := p.Value + step.delta
		if raised > step.ceiling {
			raised = step.ceiling
		}
		changes = append(changes, fmt.Sprintf("%s raised from %g to %g (fertilisation)", step.key, p.Value, raised))
		p.Value = raised
	}

	return out, changes
}

func cloneParam(p *model.SoilParameter) *model.SoilParameter {
	if p == nil {
		return nil
	}
	c := *p
	return &c
}
