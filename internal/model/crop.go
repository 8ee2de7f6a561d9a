package model

// Season is the Indian cropping season a crop belongs to.
type Season string

const (
	SeasonKharif    Season = "kharif"
	SeasonRabi      Season = "rabi"
	SeasonZaid      Season = "zaid"
	SeasonPerennial Season = "perennial"
	SeasonAll       Season = "all"
)

// SeasonOrder is the fixed bucket order of a suitability analysis.
var SeasonOrder = []Season{SeasonKharif, SeasonRabi, SeasonZaid, SeasonPerennial}

// LimitingFactor names a parameter that drags a crop's score down, with the
// direction of the mismatch.
type LimitingFactor struct {
	Parameter Nutrient `json:"parameter"`
	Score     float64  `json:"score"`
	Direction string   `json:"direction"` // "deficiency" or "excess"
}

// SoilCompatibility breaks a crop's score into its sub-scores.
type SoilCompatibility struct {
	PHSuitability       float64          `json:"pHSuitability"`
	NutrientSuitability float64          `json:"nutrientSuitability"`
	OverallSoilMatch    float64          `json:"overallSoilMatch"`
	LimitingFactors     []LimitingFactor `json:"limitingFactors"`
}

// CropRequirements echoes the knowledge-base bands the crop was scored
// against so consumers can render "needs vs has" tables.
type CropRequirements struct {
	PH               Band     `json:"pH"`
	Nitrogen         Band     `json:"nitrogen"`
	Phosphorus       Band     `json:"phosphorus"`
	Potassium        Band     `json:"potassium"`
	WaterRequirement string   `json:"waterRequirement"`
	SoilTypes        []string `json:"soilTypes"`
	DurationDays     int      `json:"durationDays"`
}

// Profitability is the projected economics band for one crop.
type Profitability struct {
	GrossIncome Band    `json:"grossIncome"`
	InputCosts  Band    `json:"inputCosts"`
	NetProfit   Band    `json:"netProfit"`
	ROI         float64 `json:"roi"`
}

// CropProjections scales knowledge-base ranges by the suitability score.
type CropProjections struct {
	ExpectedYield Band          `json:"expectedYield"` // t/ha
	MarketPrice   Band          `json:"marketPrice"`   // currency/t
	Profitability Profitability `json:"profitability"`
	RiskFactors   []string      `json:"riskFactors"`
}

// CropRecommendation is one scored crop.
type CropRecommendation struct {
	CropID            string            `json:"cropId"`
	Name              string            `json:"name"`
	SuitabilityScore  float64           `json:"suitabilityScore"`
	Confidence        float64           `json:"confidence"`
	Season            Season            `json:"season"`
	SoilCompatibility SoilCompatibility `json:"soilCompatibility"`
	Requirements      CropRequirements  `json:"requirements"`
	Projections       CropProjections   `json:"projections"`
	SoilImprovements  []string          `json:"soilImprovements"`
}

// SoilLimitation is a crop-independent soil constraint with improvement
// suggestions.
type SoilLimitation struct {
	Parameter   Nutrient `json:"parameter"`
	Description string   `json:"description"`
	Suggestions []string `json:"suggestions"`
}

// CropSuitabilityAnalysis is the full scorer output.
type CropSuitabilityAnalysis struct {
	TopRecommendations []CropRecommendation            `json:"topRecommendations"`
	BySeason           map[Season][]CropRecommendation `json:"bySeason"`
	SuitableCrops      int                             `json:"suitableCrops"`
	EvaluatedCrops     int                             `json:"evaluatedCrops"`
	SoilLimitations    []SoilLimitation                `json:"soilLimitations"`
}

// ImprovedSoilSimulation compares current scoring against the deterministic
// "what-if improved soil" forward model. The model nudges out-of-band
// parameters by fixed deltas; it approximates nothing about real soil
// chemistry and consumers must present it as such.
type ImprovedSoilSimulation struct {
	Current        CropSuitabilityAnalysis `json:"current"`
	Improved       CropSuitabilityAnalysis `json:"improved"`
	AppliedChanges []string                `json:"appliedChanges"`
}

// CropRecommendationOptions tunes the scorer.
type CropRecommendationOptions struct {
	Season              Season  `json:"season"`
	FarmSizeHa          float64 `json:"farmSize"`
	RiskTolerance       string  `json:"riskTolerance"`
	MarketFocus         string  `json:"marketFocus"`
	OrganicPreference   bool    `json:"organicPreference"`
	ExperienceLevel     string  `json:"experienceLevel"`
	IrrigationAvailable bool    `json:"irrigationAvailable"`
	MaxRecommendations  int     `json:"maxRecommendations"`
}

// DefaultCropOptions scores every season and returns at most ten crops.
func DefaultCropOptions() CropRecommendationOptions {
	return CropRecommendationOptions{
		Season:             SeasonAll,
		FarmSizeHa:         1,
		MaxRecommendations: 10,
	}
}
