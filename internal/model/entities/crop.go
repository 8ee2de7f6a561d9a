// Package entities holds the static knowledge-base record types. The
// records themselves live in embedded YAML under internal/kb.
package entities

import "github.com/agrilytics/soilcore/internal/model"

// CropProfile is one crop's agronomic requirements and base economics.
// Yield is t/ha, price is per tonne, cost is per hectare per season.
type CropProfile struct {
	ID               string       `yaml:"id"`
	Name             string       `yaml:"name"`
	Season           model.Season `yaml:"season"`
	PH               model.Band   `yaml:"ph"`
	Nitrogen         model.Band   `yaml:"nitrogen"`
	Phosphorus       model.Band   `yaml:"phosphorus"`
	Potassium        model.Band   `yaml:"potassium"`
	WaterRequirement string       `yaml:"waterRequirement"`
	SoilTypes        []string     `yaml:"soilTypes"`
	YieldTPerHa      model.Band   `yaml:"yieldTPerHa"`
	PricePerTon      model.Band   `yaml:"pricePerTon"`
	CostPerHa        model.Band   `yaml:"costPerHa"`
	DurationDays     int          `yaml:"durationDays"`
	RiskFactors      []string     `yaml:"riskFactors"`
}

// Requirements converts the profile into the value object echoed on each
// recommendation.
func (c CropProfile) Requirements() model.CropRequirements {
	return model.CropRequirements{
		PH:               c.PH,
		Nitrogen:         c.Nitrogen,
		Phosphorus:       c.Phosphorus,
		Potassium:        c.Potassium,
		WaterRequirement: c.WaterRequirement,
		SoilTypes:        c.SoilTypes,
		DurationDays:     c.DurationDays,
	}
}
