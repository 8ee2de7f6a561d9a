package remediation

import "github.com/agrilytics/soilcore/internal/model"

// recipe names the catalog materials and field practice for one deficiency
// class. Immediate entries are fast-acting; longTerm entries are the
// sustainability-oriented build-up programme.
type recipe struct {
	immediateInorganic string
	immediateOrganic   string
	longTerm           []string
	method             string
	precautions        []string
}

var acidSoilRecipe = recipe{
	immediateInorganic: "agricultural lime",
	immediateOrganic:   "wood ash",
	longTerm:           []string{"compost"},
	method:             "broadcast evenly and incorporate into the top 15 cm",
	precautions: []string{
		"do not apply together with nitrogen fertiliser; keep 2-3 weeks apart",
		"split doses above 500 kg/ha across two applications",
	},
}

var alkalineSoilRecipe = recipe{
	immediateInorganic: "elemental sulfur",
	immediateOrganic:   "compost",
	longTerm:           []string{"gypsum"},
	method:             "broadcast and incorporate, then irrigate lightly",
	precautions: []string{
		"keep livestock off the field until after the first irrigation",
	},
}

var nutrientRecipes = map[model.Nutrient]recipe{
	model.NutrientNitrogen: {
		immediateInorganic: "urea",
		immediateOrganic:   "fermented liquid manure",
		longTerm:           []string{"legume cover crop seed", "rhizobium culture"},
		method:             "top dress along rows and irrigate within 24 hours",
		precautions: []string{
			"avoid application before forecast heavy rain",
			"do not combine with lime in the same pass",
		},
	},
	model.NutrientPhosphorus: {
		immediateInorganic: "diammonium phosphate",
		immediateOrganic:   "bone meal",
		longTerm:           []string{"rock phosphate", "phosphate solubilising biofertiliser"},
		method:             "drill 5 cm below and beside the seed line",
		precautions: []string{
			"band placement only; broadcast phosphate is largely fixed in soil",
		},
	},
	model.NutrientPotassium: {
		immediateInorganic: "muriate of potash",
		immediateOrganic:   "wood ash",
		longTerm:           []string{"compost"},
		method:             "broadcast before final land preparation",
		precautions: []string{
			"use sulphate of potash instead on chloride-sensitive crops",
		},
	},
	model.NutrientOrganicCarbon: {
		immediateInorganic: "compost",
		immediateOrganic:   "compost",
		longTerm:           []string{"farmyard manure", "green manure seed"},
		method:             "spread and incorporate before the monsoon",
		precautions: []string{
			"use fully decomposed material to avoid nitrogen tie-up",
		},
	},
	model.NutrientZinc: {
		immediateInorganic: "zinc sulphate",
		longTerm:           []string{"farmyard manure"},
		method:             "soil application with first weeding, or 0.5% foliar spray",
		precautions: []string{
			"do not mix with phosphatic fertiliser in the same pass",
		},
	},
	model.NutrientIron: {
		immediateInorganic: "ferrous sulphate",
		longTerm:           []string{"farmyard manure"},
		method:             "foliar spray at 1% in the early morning",
		precautions: []string{
			"soil application is ineffective on calcareous fields; prefer foliar",
		},
	},
	model.NutrientManganese: {
		immediateInorganic: "manganese sulphate",
		longTerm:           []string{"farmyard manure"},
		method:             "foliar spray at 0.5%",
		precautions:        nil,
	},
	model.NutrientCopper: {
		immediateInorganic: "copper sulphate",
		longTerm:           []string{"farmyard manure"},
		method:             "soil application once; copper persists for years",
		precautions: []string{
			"narrow safety margin; never exceed the recommended dose",
		},
	},
	model.NutrientBoron: {
		immediateInorganic: "borax",
		longTerm:           []string{"farmyard manure"},
		method:             "broadcast mixed with sand for even spread",
		precautions: []string{
			"toxicity threshold is close to the deficiency dose; measure carefully",
		},
	},
	model.NutrientSulfur: {
		immediateInorganic: "gypsum",
		longTerm:           []string{"farmyard manure"},
		method:             "broadcast before sowing",
		precautions:        nil,
	},
}

// genericMicroRecipe covers any parameter without a dedicated entry.
var genericMicroRecipe = recipe{
	immediateInorganic: "micronutrient chelate mix",
	longTerm:           []string{"farmyard manure"},
	method:             "foliar spray per label using the chelate mix",
	precautions:        nil,
}

func recipeFor(d model.SoilDeficiency) recipe {
	if d.Parameter == model.NutrientPH {
		if d.CurrentValue < d.OptimalRange.Min {
			return acidSoilRecipe
		}
		return alkalineSoilRecipe
	}
	if r, ok := nutrientRecipes[d.Parameter]; ok {
		return r
	}
	return genericMicroRecipe
}
