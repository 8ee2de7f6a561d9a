package model

// IssueSeverity grades a data-quality finding.
type IssueSeverity string

const (
	SeverityInfo     IssueSeverity = "info"
	SeverityWarning  IssueSeverity = "warning"
	SeverityError    IssueSeverity = "error"
	SeverityCritical IssueSeverity = "critical"
)

// Blocking reports whether the severity invalidates the whole sample.
func (s IssueSeverity) Blocking() bool {
	return s == SeverityError || s == SeverityCritical
}

// AnomalySeverity grades a cross-parameter or statistical anomaly.
type AnomalySeverity string

const (
	AnomalyLow    AnomalySeverity = "low"
	AnomalyMedium AnomalySeverity = "medium"
	AnomalyHigh   AnomalySeverity = "high"
)

// Issue is a single data-quality finding about one parameter.
type Issue struct {
	Parameter  string        `json:"parameter"`
	Issue      string        `json:"issue"`
	Severity   IssueSeverity `json:"severity"`
	Suggestion string        `json:"suggestion"`
	Confidence float64       `json:"confidence"`
}

// Anomaly is a suspicious-but-not-invalid pattern in the data.
type Anomaly struct {
	Parameter         string          `json:"parameter"`
	Issue             string          `json:"issue"`
	Severity          AnomalySeverity `json:"severity"`
	Description       string          `json:"description"`
	PossibleCauses    []string        `json:"possibleCauses"`
	RecommendedAction string          `json:"recommendedAction"`
}

// Outlier flags a parameter far outside the range seen in field samples.
type Outlier struct {
	Parameter      string  `json:"parameter"`
	Value          float64 `json:"value"`
	ExpectedRange  Band    `json:"expectedRange"`
	DeviationScore float64 `json:"deviationScore"`
}

// StatisticalAnalysis summarises the optional outlier pass.
type StatisticalAnalysis struct {
	Outliers         []Outlier `json:"outliers"`
	ConsistencyScore float64   `json:"consistencyScore"`
}

// ValidationResult is the data-quality verdict for one sample.
type ValidationResult struct {
	Valid               bool                 `json:"valid"`
	Confidence          float64              `json:"confidence"`
	Issues              []Issue              `json:"issues"`
	Anomalies           []Anomaly            `json:"anomalies"`
	Recommendations     []string             `json:"recommendations"`
	StatisticalAnalysis *StatisticalAnalysis `json:"statisticalAnalysis,omitempty"`
}

// ValidationOptions tunes the validator. The zero value runs every optional
// pass with the default confidence threshold; use DefaultValidationOptions
// for explicit defaults.
type ValidationOptions struct {
	StrictMode                 bool    `json:"strictMode"`
	EnableStatisticalAnalysis  bool    `json:"enableStatisticalAnalysis"`
	EnableCrossParameterChecks bool    `json:"enableCrossParameterValidation"`
	ConfidenceThreshold        float64 `json:"confidenceThreshold"`
}

// DefaultValidationOptions enables the statistical and cross-parameter
// passes with a 0.5 extraction-confidence floor.
func DefaultValidationOptions() ValidationOptions {
	return ValidationOptions{
		EnableStatisticalAnalysis:  true,
		EnableCrossParameterChecks: true,
		ConfidenceThreshold:        0.5,
	}
}
