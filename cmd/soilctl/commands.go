package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/agrilytics/soilcore/internal/kb"
	"github.com/agrilytics/soilcore/internal/model"
	"github.com/agrilytics/soilcore/internal/services/advisor"
	"github.com/agrilytics/soilcore/internal/services/cropmatch"
	"github.com/agrilytics/soilcore/internal/services/deficiency"
	"github.com/agrilytics/soilcore/internal/services/remediation"
	"github.com/agrilytics/soilcore/internal/services/validator"
)

var validateCmd = &cobra.Command{
	Use:   "validate <report.json>",
	Short: "Check a soil report for data quality problems",
	Args:  cobra.ExactArgs(1),
	RunE:  runValidate,
}

var deficienciesCmd = &cobra.Command{
	Use:   "deficiencies <report.json>",
	Short: "Identify nutrient deficiencies in a soil report",
	Args:  cobra.ExactArgs(1),
	RunE:  runDeficiencies,
}

var planCmd = &cobra.Command{
	Use:   "plan <report.json>",
	Short: "Generate remediation plans and an integrated strategy",
	Args:  cobra.ExactArgs(1),
	RunE:  runPlan,
}

var cropsCmd = &cobra.Command{
	Use:   "crops <report.json>",
	Short: "Rank crops by suitability for the sampled soil",
	Args:  cobra.ExactArgs(1),
	RunE:  runCrops,
}

var simulateCmd = &cobra.Command{
	Use:   "simulate <report.json>",
	Short: "Compare crop suitability before and after soil improvement",
	Args:  cobra.ExactArgs(1),
	RunE:  runSimulate,
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze <report.json>",
	Short: "Run the full advisory pipeline in one pass",
	Args:  cobra.ExactArgs(1),
	RunE:  runAnalyze,
}

func init() {
	validateCmd.Flags().BoolVar(&strictMode, "strict", false, "escalate atypical values to errors")

	planCmd.Flags().BoolVar(&organicPref, "organic", false, "prefer organic materials")
	planCmd.Flags().BoolVar(&sustainable, "sustainable", false, "emphasise long-term soil health")
	planCmd.Flags().BoolVar(&quickResults, "quick", false, "bias toward fast-acting materials")
	planCmd.Flags().Float64Var(&budgetMax, "budget", 0, "budget cap in INR (0 = unlimited)")

	cropsCmd.Flags().StringVar(&seasonFlag, "season", "", "limit to one season (kharif, rabi, zaid, perennial)")
	cropsCmd.Flags().Float64Var(&farmSizeFlag, "farm-size", 0, "farm size in hectares (overrides the report)")
	simulateCmd.Flags().StringVar(&seasonFlag, "season", "", "limit to one season (kharif, rabi, zaid, perennial)")

	analyzeCmd.Flags().BoolVar(&strictMode, "strict", false, "escalate atypical values to errors")
	analyzeCmd.Flags().BoolVar(&organicPref, "organic", false, "prefer organic materials")
	analyzeCmd.Flags().Float64Var(&budgetMax, "budget", 0, "budget cap in INR (0 = unlimited)")
	analyzeCmd.Flags().BoolVar(&continueFlag, "continue-on-invalid", false, "run all stages even when validation fails")
}

func loadReport(path string) (*model.SoilReport, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var r model.SoilReport
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return &r, nil
}

func emit(v any) error {
	enc := json.NewEncoder(os.Stdout)
	if pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}

func runValidate(cmd *cobra.Command, args []string) error {
	r, err := loadReport(args[0])
	if err != nil {
		return err
	}
	opts := model.DefaultValidationOptions()
	opts.StrictMode = strictMode

	res, err := validator.New(logger).Validate(&r.Nutrients, r.Micronutrients, opts)
	if err != nil {
		return err
	}
	return emit(res)
}

func runDeficiencies(cmd *cobra.Command, args []string) error {
	r, err := loadReport(args[0])
	if err != nil {
		return err
	}
	knowledge, err := kb.Load()
	if err != nil {
		return err
	}
	defs, err := deficiency.New(logger, knowledge).Identify(&r.Nutrients, r.Micronutrients, r.SoilType, r.CropType)
	if err != nil {
		return err
	}
	return emit(defs)
}

func runPlan(cmd *cobra.Command, args []string) error {
	r, err := loadReport(args[0])
	if err != nil {
		return err
	}
	knowledge, err := kb.Load()
	if err != nil {
		return err
	}

	id := deficiency.New(logger, knowledge)
	defs, err := id.Identify(&r.Nutrients, r.Micronutrients, r.SoilType, r.CropType)
	if err != nil {
		return err
	}
	if len(defs) == 0 {
		logger.Info("no deficiencies found, nothing to plan", zap.String("sampleId", r.SampleID))
		return emit(struct {
			Plans    []model.RemediationPlan `json:"plans"`
			Strategy any                     `json:"strategy"`
		}{Plans: []model.RemediationPlan{}})
	}

	budget := budgetFlag()
	planner := remediation.New(logger, knowledge)
	plans, err := planner.Generate(defs, r.FarmSizeHa, budget, model.PlannerPreferences{
		Organic:          organicPref,
		QuickResults:     quickResults,
		SustainableFocus: sustainable,
	})
	if err != nil {
		return err
	}
	strategy, err := planner.IntegratedStrategy(defs, r.FarmSizeHa, budget)
	if err != nil {
		return err
	}
	return emit(struct {
		Plans    []model.RemediationPlan  `json:"plans"`
		Strategy model.IntegratedStrategy `json:"strategy"`
	}{Plans: plans, Strategy: strategy})
}

func runCrops(cmd *cobra.Command, args []string) error {
	r, err := loadReport(args[0])
	if err != nil {
		return err
	}
	knowledge, err := kb.Load()
	if err != nil {
		return err
	}
	analysis, err := cropmatch.New(logger, knowledge).Recommend(&r.Nutrients, r.Micronutrients, cropOptions(r))
	if err != nil {
		return err
	}
	return emit(analysis)
}

func runSimulate(cmd *cobra.Command, args []string) error {
	r, err := loadReport(args[0])
	if err != nil {
		return err
	}
	knowledge, err := kb.Load()
	if err != nil {
		return err
	}
	sim, err := cropmatch.New(logger, knowledge).SimulateImprovedSoil(&r.Nutrients, r.Micronutrients, cropOptions(r))
	if err != nil {
		return err
	}
	return emit(sim)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	r, err := loadReport(args[0])
	if err != nil {
		return err
	}
	valOpts := model.DefaultValidationOptions()
	valOpts.StrictMode = strictMode

	engine, err := advisor.New(advisor.Options{
		Logger:            logger,
		Validation:        &valOpts,
		Preferences:       model.PlannerPreferences{Organic: organicPref},
		Budget:            budgetFlag(),
		ContinueOnInvalid: continueFlag,
		Simulate:          true,
	})
	if err != nil {
		return err
	}
	adv, err := engine.Analyze(r)
	if err != nil {
		return err
	}
	return emit(adv)
}

func budgetFlag() *model.Budget {
	if budgetMax <= 0 {
		return nil
	}
	return &model.Budget{Max: budgetMax}
}

func cropOptions(r *model.SoilReport) model.CropRecommendationOptions {
	opts := model.DefaultCropOptions()
	if seasonFlag != "" {
		opts.Season = model.Season(seasonFlag)
	} else if r.Season != "" {
		opts.Season = r.Season
	}
	if farmSizeFlag > 0 {
		opts.FarmSizeHa = farmSizeFlag
	} else if r.FarmSizeHa > 0 {
		opts.FarmSizeHa = r.FarmSizeHa
	}
	return opts
}
