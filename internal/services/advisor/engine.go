// Package advisor is the facade over the full advisory pipeline: data
// quality validation, deficiency identification, remediation planning and
// crop suitability scoring in one call.
package advisor

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/agrilytics/soilcore/internal/kb"
	"github.com/agrilytics/soilcore/internal/model"
	"github.com/agrilytics/soilcore/internal/services/cropmatch"
	"github.com/agrilytics/soilcore/internal/services/deficiency"
	"github.com/agrilytics/soilcore/internal/services/remediation"
	"github.com/agrilytics/soilcore/internal/services/validator"
)

// Options configures the engine. The zero value is usable: nop logger,
// private metrics registry, default validation and crop options, and the
// pipeline stops after validation when the sample fails hard.
type Options struct {
	Logger      *zap.Logger
	Registerer  prometheus.Registerer
	Validation  *model.ValidationOptions
	Crop        *model.CropRecommendationOptions
	Preferences model.PlannerPreferences
	Budget      *model.Budget

	// ContinueOnInvalid runs the downstream stages even when validation
	// reports the sample unusable. The advisory then carries the issues
	// alongside whatever the later stages could still produce.
	ContinueOnInvalid bool

	// Simulate adds the improved-soil what-if comparison to the advisory.
	Simulate bool
}

// AdvisoryReport is the combined output of one Analyze call. Sections after
// Validation are nil when the pipeline stopped early.
type AdvisoryReport struct {
	SampleID     string                         `json:"sampleId"`
	Validation   model.ValidationResult         `json:"validation"`
	Deficiencies []model.SoilDeficiency         `json:"deficiencies,omitempty"`
	Plans        []model.RemediationPlan        `json:"plans,omitempty"`
	Strategy     *model.IntegratedStrategy      `json:"strategy,omitempty"`
	Crops        *model.CropSuitabilityAnalysis `json:"crops,omitempty"`
	Simulation   *model.ImprovedSoilSimulation  `json:"simulation,omitempty"`
}

// Engine wires the four pipeline components behind one entry point.
type Engine struct {
	log       *zap.Logger
	opts      Options
	metrics   *metrics
	validator *validator.Validator
	deficient *deficiency.Identifier
	planner   *remediation.Planner
	scorer    *cropmatch.Scorer
}

// New loads the embedded knowledge base and assembles the pipeline.
func New(opts Options) (*Engine, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	knowledge, err := kb.Load()
	if err != nil {
		return nil, err
	}
	return &Engine{
		log:       log,
		opts:      opts,
		metrics:   newMetrics(opts.Registerer),
		validator: validator.New(log),
		deficient: deficiency.New(log, knowledge),
		planner:   remediation.New(log, knowledge),
		scorer:    cropmatch.New(log, knowledge),
	}, nil
}

// Analyze runs the full pipeline over one report. Structural problems with
// the report itself return ErrInvalidInput; soil-quality findings land in
// the advisory instead.
func (e *Engine) Analyze(report *model.SoilReport) (AdvisoryReport, error) {
	start := time.Now()
	if err := report.Validate(); err != nil {
		e.metrics.failures.Inc()
		return AdvisoryReport{}, err
	}

	valOpts := model.DefaultValidationOptions()
	if e.opts.Validation != nil {
		valOpts = *e.opts.Validation
	}
	validation, err := e.validator.Validate(&report.Nutrients, report.Micronutrients, valOpts)
	if err != nil {
		e.metrics.failures.Inc()
		return AdvisoryReport{}, err
	}
	e.metrics.analyses.Inc()
	for _, issue := range validation.Issues {
		e.metrics.issues.WithLabelValues(string(issue.Severity)).Inc()
	}

	out := AdvisoryReport{SampleID: report.SampleID, Validation: validation}
	if !validation.Valid && !e.opts.ContinueOnInvalid {
		e.log.Warn("sample failed validation, stopping pipeline",
			zap.String("sampleId", report.SampleID),
			zap.Int("issues", len(validation.Issues)))
		e.metrics.duration.Observe(time.Since(start).Seconds())
		return out, nil
	}

	defs, err := e.deficient.Identify(&report.Nutrients, report.Micronutrients, report.SoilType, report.CropType)
	if err != nil {
		return AdvisoryReport{}, err
	}
	out.Deficiencies = defs
	e.metrics.deficiencies.Add(float64(len(defs)))

	if len(defs) > 0 {
		plans, err := e.planner.Generate(defs, report.FarmSizeHa, e.opts.Budget, e.opts.Preferences)
		if err != nil {
			return AdvisoryReport{}, err
		}
		out.Plans = plans

		strategy, err := e.planner.IntegratedStrategy(defs, report.FarmSizeHa, e.opts.Budget)
		if err != nil {
			return AdvisoryReport{}, err
		}
		out.Strategy = &strategy
	}

	cropOpts := model.DefaultCropOptions()
	if e.opts.Crop != nil {
		cropOpts = *e.opts.Crop
	}
	if cropOpts.Season == model.SeasonAll && report.Season != "" {
		cropOpts.Season = report.Season
	}
	if report.FarmSizeHa > 0 {
		cropOpts.FarmSizeHa = report.FarmSizeHa
	}

	crops, err := e.scorer.Recommend(&report.Nutrients, report.Micronutrients, cropOpts)
	if err != nil {
		return AdvisoryReport{}, err
	}
	out.Crops = &crops

	if e.opts.Simulate {
		sim, err := e.scorer.SimulateImprovedSoil(&report.Nutrients, report.Micronutrients, cropOpts)
		if err != nil {
			return AdvisoryReport{}, err
		}
		out.Simulation = &sim
	}

	e.metrics.duration.Observe(time.Since(start).Seconds())
	e.log.Info("analysis complete",
		zap.String("sampleId", report.SampleID),
		zap.Bool("valid", validation.Valid),
		zap.Int("deficiencies", len(defs)),
		zap.Int("cropsEvaluated", crops.EvaluatedCrops))
	return out, nil
}
