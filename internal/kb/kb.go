// Package kb loads the static agronomy knowledge base embedded as YAML:
// crop profiles, deficiency knowledge, the amendment catalog, application
// calendars and expected-outcome records. The base is parsed once and shared
// read-only between all engine components.
package kb

import (
	"embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/agrilytics/soilcore/internal/model"
	"github.com/agrilytics/soilcore/internal/model/entities"
)

//go:embed data/*.yaml
var dataFS embed.FS

type KB struct {
	crops     []entities.CropProfile
	nutrients map[string]map[model.DeficiencyTier]entities.NutrientKnowledge
	materials map[string]model.Material
	calendars map[string]model.SeasonalTiming
	outcomes  map[string]map[model.DeficiencyTier]model.ExpectedResults
}

var (
	loadOnce sync.Once
	loaded   *KB
	loadErr  error
)

// Load parses the embedded knowledge base. The result is cached; every call
// after the first returns the same instance.
func Load() (*KB, error) {
	loadOnce.Do(func() { loaded, loadErr = parse() })
	return loaded, loadErr
}

func parse() (*KB, error) {
	k := &KB{
		materials: make(map[string]model.Material),
	}

	var cropDoc struct {
		Crops []entities.CropProfile `yaml:"crops"`
	}
	if err := readYAML("data/crops.yaml", &cropDoc); err != nil {
		return nil, err
	}
	k.crops = cropDoc.Crops

	if err := readYAML("data/nutrients.yaml", &k.nutrients); err != nil {
		return nil, err
	}

	var matDoc struct {
		Materials []entities.MaterialSpec `yaml:"materials"`
	}
	if err := readYAML("data/materials.yaml", &matDoc); err != nil {
		return nil, err
	}
	for _, spec := range matDoc.Materials {
		k.materials[spec.Name] = model.Material{
			Name:         spec.Name,
			Type:         model.MaterialType(spec.Type),
			Quantity:     spec.Quantity,
			Unit:         spec.Unit,
			CostPerUnit:  spec.CostPerUnit,
			Availability: spec.Availability,
			Alternatives: spec.Alternatives,
		}
	}

	var calDoc struct {
		Calendars map[string]model.SeasonalTiming `yaml:"calendars"`
	}
	if err := readYAML("data/calendars.yaml", &calDoc); err != nil {
		return nil, err
	}
	k.calendars = calDoc.Calendars

	var outDoc struct {
		Outcomes map[string]map[model.DeficiencyTier]model.ExpectedResults `yaml:"outcomes"`
	}
	if err := readYAML("data/outcomes.yaml", &outDoc); err != nil {
		return nil, err
	}
	k.outcomes = outDoc.Outcomes

	if err := k.check(); err != nil {
		return nil, err
	}
	return k, nil
}

func readYAML(path string, out any) error {
	raw, err := dataFS.ReadFile(path)
	if err != nil {
		return fmt.Errorf("kb: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("kb: parse %s: %w", path, err)
	}
	return nil
}

// check guards against broken edits to the embedded documents.
func (k *KB) check() error {
	if len(k.crops) == 0 {
		return fmt.Errorf("kb: no crop profiles")
	}
	for _, c := range k.crops {
		for _, b := range []model.Band{c.PH, c.Nitrogen, c.Phosphorus, c.Potassium, c.YieldTPerHa, c.PricePerTon, c.CostPerHa} {
			if b.Max < b.Min {
				return fmt.Errorf("kb: crop %s has inverted band", c.ID)
			}
		}
	}
	for name, m := range k.materials {
		if b := m.QuantityBand(); b.Max <= 0 {
			return fmt.Errorf("kb: material %q has unparseable quantity %q", name, m.Quantity)
		}
	}
	return nil
}

// Crops returns all crop profiles in document order. Callers must not
// modify the returned slice.
func (k *KB) Crops() []entities.CropProfile { return k.crops }

// Knowledge returns the agronomy record for a parameter and tier. pH
// resolves to the acid or alkaline record; parameters without a detailed
// record get a generic one naming the parameter.
func (k *KB) Knowledge(n model.Nutrient, tier model.DeficiencyTier, acid bool) entities.NutrientKnowledge {
	key := string(n)
	if n == model.NutrientPH {
		if acid {
			key = "pH_acid"
		} else {
			key = "pH_alkaline"
		}
	}
	if tiers, ok := k.nutrients[key]; ok {
		if rec, ok := tiers[tier]; ok {
			return rec
		}
	}
	return entities.NutrientKnowledge{
		Impacts:  []string{fmt.Sprintf("%s deficiency effects on yield and quality", n)},
		Symptoms: []string{fmt.Sprintf("%s deficiency symptoms", n)},
		Causes:   []string{fmt.Sprintf("inadequate %s supply or availability", n)},
	}
}

// Material looks up one amendment by catalog name.
func (k *KB) Material(name string) (model.Material, bool) {
	m, ok := k.materials[name]
	return m, ok
}

// Calendar returns the application calendar for a parameter. All
// micronutrients share one calendar; unknown parameters fall back to it.
func (k *KB) Calendar(n model.Nutrient) model.SeasonalTiming {
	if c, ok := k.calendars[string(n)]; ok {
		return c
	}
	return k.calendars["micronutrient"]
}

// Outcome returns the expected-result record for a parameter and tier, with
// the shared micronutrient record as fallback.
func (k *KB) Outcome(n model.Nutrient, tier model.DeficiencyTier) model.ExpectedResults {
	if tiers, ok := k.outcomes[string(n)]; ok {
		if rec, ok := tiers[tier]; ok {
			return rec
		}
	}
	if rec, ok := k.outcomes["micronutrient"][tier]; ok {
		return rec
	}
	return model.ExpectedResults{
		TimeToImprovement: "one season",
		YieldImpact:       "gradual improvement",
	}
}
