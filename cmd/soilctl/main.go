// soilctl runs the soil advisory pipeline over JSON reports from disk:
// file in, JSON on stdout, logs on stderr. No network, no persistence.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	logger *zap.Logger

	verbose bool
	pretty  bool

	seasonFlag   string
	strictMode   bool
	organicPref  bool
	sustainable  bool
	quickResults bool
	budgetMax    float64
	farmSizeFlag float64
	continueFlag bool
)

var rootCmd = &cobra.Command{
	Use:   "soilctl",
	Short: "Soil test advisory engine",
	Long: `soilctl turns a structured soil test report into advisories:
data quality validation, nutrient deficiency identification, remediation
plans and crop suitability rankings.

The input is a JSON soil report file; results are printed to stdout.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger = newLogger(verbose)
	},
}

func newLogger(verbose bool) *zap.Logger {
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	log, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return log
}

func main() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging on stderr")
	rootCmd.PersistentFlags().BoolVar(&pretty, "pretty", false, "indent JSON output")

	rootCmd.AddCommand(validateCmd, deficienciesCmd, planCmd, cropsCmd, simulateCmd, analyzeCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "soilctl:", err)
		os.Exit(1)
	}
}
