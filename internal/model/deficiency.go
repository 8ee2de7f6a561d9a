package model

// DeficiencyTier classifies how far a parameter sits from its optimal band.
// Excessive readings are folded into the mild tier; see the identifier docs
// before "fixing" that.
type DeficiencyTier string

const (
	TierSevere   DeficiencyTier = "severe"
	TierModerate DeficiencyTier = "moderate"
	TierMild     DeficiencyTier = "mild"
)

// Weight is the tier's contribution to the ranking weight.
func (t DeficiencyTier) Weight() float64 {
	switch t {
	case TierSevere:
		return 3
	case TierModerate:
		return 2
	default:
		return 1
	}
}

// SoilDeficiency is one identified shortfall (or surplus) with the agronomic
// knowledge attached for downstream rendering.
type SoilDeficiency struct {
	Parameter      Nutrient       `json:"parameter"`
	DeficiencyType DeficiencyTier `json:"deficiencyType"`
	CurrentValue   float64        `json:"currentValue"`
	OptimalRange   Band           `json:"optimalRange"`
	DeficitAmount  float64        `json:"deficitAmount"`
	ImpactOnCrops  []string       `json:"impactOnCrops"`
	Symptoms       []string       `json:"symptoms"`
	Causes         []string       `json:"causes"`
}
