package remediation

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrilytics/soilcore/internal/model"
)

func micronDeficiency(n model.Nutrient, tier model.DeficiencyTier) model.SoilDeficiency {
	return model.SoilDeficiency{
		Parameter:      n,
		DeficiencyType: tier,
		CurrentValue:   0.1,
		OptimalRange:   model.Band{Min: 0.6, Max: 20},
		DeficitAmount:  0.5,
	}
}

func TestIntegratedStrategyPrioritisesByEffectiveness(t *testing.T) {
	p := newPlanner(t)
	defs := []model.SoilDeficiency{
		acidPH(model.TierSevere, 4.5),
		severeNitrogen(),
		micronDeficiency(model.NutrientZinc, model.TierMild),
	}

	s, err := p.IntegratedStrategy(defs, 1, nil)
	require.NoError(t, err)

	require.NotEmpty(t, s.PrioritizedActions)
	for i := 1; i < len(s.PrioritizedActions); i++ {
		assert.GreaterOrEqual(t,
			s.PrioritizedActions[i-1].Effectiveness,
			s.PrioritizedActions[i].Effectiveness,
			"actions must be sorted by effectiveness, descending")
	}
}

func TestIntegratedStrategyMergesMaterials(t *testing.T) {
	// zinc and iron both carry a farmyard manure build-up programme; the
	// combined list must hold it once with summed quantities.
	p := newPlanner(t)
	defs := []model.SoilDeficiency{
		micronDeficiency(model.NutrientZinc, model.TierModerate),
		micronDeficiency(model.NutrientIron, model.TierModerate),
	}

	s, err := p.IntegratedStrategy(defs, 1, nil)
	require.NoError(t, err)

	var fym []model.Material
	for _, m := range s.CombinedMaterials {
		if m.Name == "farmyard manure" {
			fym = append(fym, m)
		}
	}
	require.Len(t, fym, 1, "duplicate materials must be merged")
	assert.Equal(t, "10000-20000", fym[0].Quantity)
}

func TestIntegratedStrategyCostConsistency(t *testing.T) {
	p := newPlanner(t)
	defs := []model.SoilDeficiency{
		acidPH(model.TierModerate, 5.3),
		severeNitrogen(),
	}

	s, err := p.IntegratedStrategy(defs, 2, nil)
	require.NoError(t, err)

	assert.LessOrEqual(t, s.TotalCost.Min, s.TotalCost.Max)
	require.Len(t, s.Timeline, 3)
	var phaseMin, phaseMax float64
	for _, phase := range s.Timeline {
		assert.LessOrEqual(t, phase.Cost.Min, phase.Cost.Max, "phase %s", phase.Phase)
		phaseMin += phase.Cost.Min
		phaseMax += phase.Cost.Max
	}
	// total is derived from the action phases, excluding the flat re-test
	// charge of the short-term phase
	assert.InDelta(t, s.TotalCost.Min, phaseMin-500, 1e-6)
	assert.InDelta(t, s.TotalCost.Max, phaseMax-1500, 1e-6)
}

func TestIntegratedStrategyAdvisories(t *testing.T) {
	p := newPlanner(t)
	defs := []model.SoilDeficiency{
		acidPH(model.TierSevere, 4.2),
		severeNitrogen(),
	}

	s, err := p.IntegratedStrategy(defs, 1, nil)
	require.NoError(t, err)

	var limeUrea, phRetest, synergy bool
	for _, w := range s.Warnings {
		if strings.Contains(w, "lime and urea") {
			limeUrea = true
		}
		if strings.Contains(w, "re-test") {
			phRetest = true
		}
	}
	for _, syn := range s.Synergies {
		if strings.Contains(syn, "pH first") {
			synergy = true
		}
	}
	assert.True(t, limeUrea, "warnings: %v", s.Warnings)
	assert.True(t, phRetest, "warnings: %v", s.Warnings)
	assert.True(t, synergy, "synergies: %v", s.Synergies)
}

func TestIntegratedStrategyBudgetWarning(t *testing.T) {
	p := newPlanner(t)
	defs := []model.SoilDeficiency{severeNitrogen()}

	s, err := p.IntegratedStrategy(defs, 5, &model.Budget{Max: 1000})
	require.NoError(t, err)

	var warned bool
	for _, w := range s.Warnings {
		if strings.Contains(w, "budget") {
			warned = true
		}
	}
	assert.True(t, warned)
}

func TestIntegratedStrategyDeterministic(t *testing.T) {
	p := newPlanner(t)
	defs := []model.SoilDeficiency{
		acidPH(model.TierSevere, 4.5),
		severeNitrogen(),
		micronDeficiency(model.NutrientZinc, model.TierModerate),
		micronDeficiency(model.NutrientIron, model.TierMild),
	}

	a, err := p.IntegratedStrategy(defs, 1.5, nil)
	require.NoError(t, err)
	b, err := p.IntegratedStrategy(defs, 1.5, nil)
	require.NoError(t, err)

	if diff := cmp.Diff(a, b); diff != "" {
		t.Fatalf("strategy not deterministic (-first +second):\n%s", diff)
	}
}
