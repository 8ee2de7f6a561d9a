package model

// Nutrient identifies a measured soil parameter. Keeping this a typed key
// (instead of raw strings sprinkled through the engine) lets every knowledge
// table be a map lookup with an explicit fallback.
type Nutrient string

const (
	NutrientPH                     Nutrient = "pH"
	NutrientNitrogen               Nutrient = "nitrogen"
	NutrientPhosphorus             Nutrient = "phosphorus"
	NutrientPotassium              Nutrient = "potassium"
	NutrientOrganicCarbon          Nutrient = "organicCarbon"
	NutrientElectricalConductivity Nutrient = "electricalConductivity"

	NutrientZinc      Nutrient = "zinc"
	NutrientIron      Nutrient = "iron"
	NutrientManganese Nutrient = "manganese"
	NutrientCopper    Nutrient = "copper"
	NutrientBoron     Nutrient = "boron"
	NutrientSulfur    Nutrient = "sulfur"
)

// MicronutrientKeys is the fixed iteration order for micronutrient maps.
// Map iteration order would leak into issue/deficiency ordering otherwise.
var MicronutrientKeys = []Nutrient{
	NutrientZinc,
	NutrientIron,
	NutrientManganese,
	NutrientCopper,
	NutrientBoron,
	NutrientSulfur,
}

// ParameterStatus is the classification attached by the extraction stage.
type ParameterStatus string

const (
	StatusDeficient ParameterStatus = "deficient"
	StatusAdequate  ParameterStatus = "adequate"
	StatusExcessive ParameterStatus = "excessive"
	StatusOptimal   ParameterStatus = "optimal"
)

// Band is a closed numeric interval.
type Band struct {
	Min float64 `json:"min" yaml:"min"`
	Max float64 `json:"max" yaml:"max"`
}

// Contains reports whether v falls inside the band (inclusive).
func (b Band) Contains(v float64) bool { return v >= b.Min && v <= b.Max }

// Width returns the band width, never negative.
func (b Band) Width() float64 {
	if b.Max < b.Min {
		return 0
	}
	return b.Max - b.Min
}

// Mid returns the band midpoint.
func (b Band) Mid() float64 { return (b.Min + b.Max) / 2 }

// ParameterRange is the valid range for a parameter with an optional
// narrower optimal band.
type ParameterRange struct {
	Min     float64 `json:"min" yaml:"min"`
	Max     float64 `json:"max" yaml:"max"`
	Optimal *Band   `json:"optimal,omitempty" yaml:"optimal,omitempty"`
}

// OptimalOrFull returns the optimal band when present, otherwise the full
// valid range.
func (r ParameterRange) OptimalOrFull() Band {
	if r.Optimal != nil {
		return *r.Optimal
	}
	return Band{Min: r.Min, Max: r.Max}
}

// SoilParameter is a single measured value as produced by the extraction
// stage. The engine never mutates it.
type SoilParameter struct {
	Name       string          `json:"name"`
	Value      float64         `json:"value"`
	Unit       string          `json:"unit"`
	Range      ParameterRange  `json:"range"`
	Status     ParameterStatus `json:"status"`
	Confidence float64         `json:"confidence"`
}

// SoilNutrients groups the macro parameters of one sample. pH and NPK are
// required by the pipeline; a nil pointer means the lab report did not carry
// the measurement.
type SoilNutrients struct {
	PH                     *SoilParameter `json:"pH,omitempty"`
	Nitrogen               *SoilParameter `json:"nitrogen,omitempty"`
	Phosphorus             *SoilParameter `json:"phosphorus,omitempty"`
	Potassium              *SoilParameter `json:"potassium,omitempty"`
	OrganicCarbon          *SoilParameter `json:"organicCarbon,omitempty"`
	ElectricalConductivity *SoilParameter `json:"electricalConductivity,omitempty"`
}

// Get returns the parameter for a macro nutrient key, nil when absent or
// when the key is not a macro nutrient.
func (s *SoilNutrients) Get(n Nutrient) *SoilParameter {
	if s == nil {
		return nil
	}
	switch n {
	case NutrientPH:
		return s.PH
	case NutrientNitrogen:
		return s.Nitrogen
	case NutrientPhosphorus:
		return s.Phosphorus
	case NutrientPotassium:
		return s.Potassium
	case NutrientOrganicCarbon:
		return s.OrganicCarbon
	case NutrientElectricalConductivity:
		return s.ElectricalConductivity
	}
	return nil
}

// MacroKeys is the fixed iteration order for SoilNutrients fields.
var MacroKeys = []Nutrient{
	NutrientPH,
	NutrientNitrogen,
	NutrientPhosphorus,
	NutrientPotassium,
	NutrientOrganicCarbon,
	NutrientElectricalConductivity,
}

// RequiredKeys are the parameters every usable report must carry.
var RequiredKeys = []Nutrient{
	NutrientPH,
	NutrientNitrogen,
	NutrientPhosphorus,
	NutrientPotassium,
}

// Micronutrients is the optional trace-element map of a sample.
type Micronutrients map[Nutrient]SoilParameter
