package model

import (
	"fmt"
	"strconv"
	"strings"
)

// MaterialType classifies a soil amendment.
type MaterialType string

const (
	MaterialOrganic    MaterialType = "organic"
	MaterialInorganic  MaterialType = "inorganic"
	MaterialBiological MaterialType = "biological"
)

// Material is one amendment with its dosing range and unit economics.
// Quantity is a "<min>-<max>" string per hectare, kept as text because lab
// advisories print it verbatim.
type Material struct {
	Name         string       `json:"name"`
	Type         MaterialType `json:"type"`
	Quantity     string       `json:"quantity"`
	Unit         string       `json:"unit"`
	CostPerUnit  float64      `json:"costPerUnit"`
	Availability string       `json:"availability"`
	Alternatives []string     `json:"alternatives"`
}

// QuantityBand parses the "<min>-<max>" dosing string. Malformed strings
// yield a zero band rather than an error; the costing layer treats that as
// "no cost contribution".
func (m Material) QuantityBand() Band {
	lo, hi, ok := parseRangeString(m.Quantity)
	if !ok {
		return Band{}
	}
	return Band{Min: lo, Max: hi}
}

func parseRangeString(s string) (lo, hi float64, ok bool) {
	parts := strings.SplitN(strings.TrimSpace(s), "-", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	lo, err1 := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	hi, err2 := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err1 != nil || err2 != nil || hi < lo {
		return 0, 0, false
	}
	return lo, hi, true
}

// RemediationAction is one corrective step of a plan.
type RemediationAction struct {
	ID                string     `json:"id"`
	Action            string     `json:"action"`
	Description       string     `json:"description"`
	Materials         []Material `json:"materials"`
	ApplicationMethod string     `json:"applicationMethod"`
	Dosage            string     `json:"dosage"`
	Frequency         string     `json:"frequency"`
	Precautions       []string   `json:"precautions"`
	Effectiveness     float64    `json:"effectiveness"`
}

// MonthPlan is one entry of a seasonal application calendar.
type MonthPlan struct {
	Month    string   `json:"month" yaml:"month"`
	Actions  []string `json:"actions" yaml:"actions"`
	Priority string   `json:"priority" yaml:"priority"`
}

// SeasonalTiming is the static application calendar for one parameter.
type SeasonalTiming struct {
	BestSeason      string      `json:"bestSeason" yaml:"bestSeason"`
	AvoidSeasons    []string    `json:"avoidSeasons" yaml:"avoidSeasons"`
	MonthlySchedule []MonthPlan `json:"monthlySchedule" yaml:"monthlySchedule"`
}

// CostEstimate is a min/max cost band plus the fixed-assumption payback
// figures. The payback model assumes a flat seasonal yield value and uplift
// (see planner docs); it is an approximation, not a market model.
type CostEstimate struct {
	Min              float64 `json:"min"`
	Max              float64 `json:"max"`
	Currency         string  `json:"currency"`
	PaybackPeriod    string  `json:"paybackPeriod"`
	CostBenefitRatio float64 `json:"costBenefitRatio"`
}

// ExpectedResults is the static outcome record for one (parameter, tier).
type ExpectedResults struct {
	TimeToImprovement      string   `json:"timeToImprovement" yaml:"timeToImprovement"`
	YieldImpact            string   `json:"yieldImpact" yaml:"yieldImpact"`
	SustainabilityBenefits []string `json:"sustainabilityBenefits" yaml:"sustainabilityBenefits"`
}

// RemediationPlan corrects one deficiency.
type RemediationPlan struct {
	Deficiency       SoilDeficiency      `json:"deficiency"`
	ImmediateActions []RemediationAction `json:"immediateActions"`
	LongTermActions  []RemediationAction `json:"longTermActions"`
	SeasonalTiming   SeasonalTiming      `json:"seasonalTiming"`
	CostEstimate     CostEstimate        `json:"costEstimate"`
	ExpectedResults  ExpectedResults     `json:"expectedResults"`
}

// PlannerPreferences biases material selection.
type PlannerPreferences struct {
	Organic          bool `json:"organic"`
	QuickResults     bool `json:"quickResults"`
	SustainableFocus bool `json:"sustainableFocus"`
}

// Budget bounds total spend for the integrated strategy, in the catalog
// currency per whole farm.
type Budget struct {
	Max float64 `json:"max"`
}

// TimelinePhase is one phase of the integrated strategy.
type TimelinePhase struct {
	Phase    string       `json:"phase"`
	Duration string       `json:"duration"`
	Actions  []string     `json:"actions"`
	Cost     CostEstimate `json:"cost"`
}

// IntegratedStrategy merges all per-deficiency plans into one ordered
// programme.
type IntegratedStrategy struct {
	PrioritizedActions []RemediationAction `json:"prioritizedActions"`
	CombinedMaterials  []Material          `json:"combinedMaterials"`
	TotalCost          CostEstimate        `json:"totalCost"`
	Timeline           []TimelinePhase     `json:"timeline"`
	Synergies          []string            `json:"synergies"`
	Warnings           []string            `json:"warnings"`
}

// MergeQuantities sums two "<min>-<max>" dosing strings. Either side failing
// to parse returns the other unchanged.
func MergeQuantities(a, b string) string {
	alo, ahi, aok := parseRangeString(a)
	blo, bhi, bok := parseRangeString(b)
	switch {
	case aok && bok:
		return fmt.Sprintf("%g-%g", alo+blo, ahi+bhi)
	case aok:
		return a
	default:
		return b
	}
}
