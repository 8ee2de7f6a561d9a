package entities

// NutrientKnowledge is the static agronomy record attached to a deficiency:
// what it does to crops, how it shows in the field, and why it happens.
type NutrientKnowledge struct {
	Impacts  []string `yaml:"impacts"`
	Symptoms []string `yaml:"symptoms"`
	Causes   []string `yaml:"causes"`
}

// MaterialSpec is one catalog entry for a soil amendment. Quantity is the
// baseline per-hectare dosing band before severity scaling.
type MaterialSpec struct {
	Name         string   `yaml:"name"`
	Type         string   `yaml:"type"`
	Quantity     string   `yaml:"quantity"`
	Unit         string   `yaml:"unit"`
	CostPerUnit  float64  `yaml:"costPerUnit"`
	Availability string   `yaml:"availability"`
	Alternatives []string `yaml:"alternatives"`
}
