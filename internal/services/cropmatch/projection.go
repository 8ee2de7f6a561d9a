package cropmatch

import (
	"math"

	"github.com/agrilytics/soilcore/internal/model"
	"github.com/agrilytics/soilcore/internal/model/entities"
)

// project scales the crop's base yield, price and cost ranges by
// suitabilityScore/100 and derives the economics bands from the scaled
// figures.
func project(crop entities.CropProfile, suitabilityScore float64) model.CropProjections {
	factor := suitabilityScore / 100

	yield := scaleBand(crop.YieldTPerHa, factor)
	price := scaleBand(crop.PricePerTon, factor)
	cost := scaleBand(crop.CostPerHa, factor)

	gross := model.Band{Min: yield.Min * price.Min, Max: yield.Max * price.Max}
	// worst case pairs the lowest income with the highest spend
	net := model.Band{Min: gross.Min - cost.Max, Max: gross.Max - cost.Min}

	roi := 0.0
	if mean := bandMean(cost); mean > 0 {
		roi = round1(bandMean(net) / mean * 100)
	}

	risks := append([]string(nil), crop.RiskFactors...)
	if suitabilityScore < limitingScore {
		risks = append(risks, "soil mismatch raises establishment risk")
	}

	return model.CropProjections{
		ExpectedYield: yield,
		MarketPrice:   price,
		Profitability: model.Profitability{
			GrossIncome: gross,
			InputCosts:  cost,
			NetProfit:   net,
			ROI:         roi,
		},
		RiskFactors: risks,
	}
}

func scaleBand(b model.Band, factor float64) model.Band {
	return model.Band{Min: round1(b.Min * factor), Max: round1(b.Max * factor)}
}

func bandMean(b model.Band) float64 { return (b.Min + b.Max) / 2 }

func round1(v float64) float64 { return math.Round(v*10) / 10 }
