package model

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// SoilReport is the one-document input bundling a sample's measurements and
// metadata. It is what the extraction stage hands over and what soilctl
// reads from disk.
type SoilReport struct {
	SampleID       string         `json:"sample_id"`
	FarmSizeHa     float64        `json:"farm_size_ha"`
	Season         Season         `json:"season"`
	SoilType       string         `json:"soil_type"`
	CropType       string         `json:"crop_type"`
	Nutrients      SoilNutrients  `json:"nutrients"`
	Micronutrients Micronutrients `json:"micronutrients"`
}

// Lab exports disagree on numeric encoding: values arrive as numbers,
// quoted numbers, or with decimal commas. Accept all of them.
func (p *SoilParameter) UnmarshalJSON(b []byte) error {
	var m map[string]json.RawMessage
	if err := json.Unmarshal(b, &m); err != nil {
		return err
	}
	if raw, ok := m["name"]; ok {
		_ = json.Unmarshal(raw, &p.Name)
	}
	if raw, ok := m["unit"]; ok {
		_ = json.Unmarshal(raw, &p.Unit)
	}
	if raw, ok := m["status"]; ok {
		_ = json.Unmarshal(raw, &p.Status)
	}
	if raw, ok := m["range"]; ok {
		if err := json.Unmarshal(raw, &p.Range); err != nil {
			return err
		}
	}
	if raw, ok := m["value"]; ok {
		v, ok2 := flexFloat(raw)
		if !ok2 {
			return InvalidInputf("parameter %q: unparseable value %s", p.Name, string(raw))
		}
		p.Value = v
	}
	if raw, ok := m["confidence"]; ok {
		if v, ok2 := flexFloat(raw); ok2 {
			p.Confidence = v
		}
	}
	return nil
}

// flexFloat reads a JSON number or a numeric string ("12.5", "12,5").
func flexFloat(raw json.RawMessage) (float64, bool) {
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return 0, false
	}
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// Validate checks the report for structural problems only. Out-of-range
// values are the validator's business, not an error here.
func (r *SoilReport) Validate() error {
	if r == nil {
		return InvalidInputf("soil report is nil")
	}
	if r.FarmSizeHa < 0 {
		return InvalidInputf("farm size %g ha", r.FarmSizeHa)
	}
	return nil
}
