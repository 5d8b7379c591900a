package main

import (
	"fmt"
	"os"
	"runtime/debug"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/rgehrsitz/itrgo/internal/calculation"
	"github.com/rgehrsitz/itrgo/internal/config"
	"github.com/rgehrsitz/itrgo/internal/domain"
	"github.com/rgehrsitz/itrgo/internal/output"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "itrgo %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(cmd.OutOrStdout(), info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.Main.Path + " " + bi.GoVersion
	}
	return ""
}

// newLogger builds the zap logger shared by the commands
func newLogger(level string, production bool) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	cfg := zap.NewDevelopmentConfig()
	if production {
		cfg = zap.NewProductionConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.OutputPaths = []string{"stderr"}
	return cfg.Build()
}

// newEngine creates the calculation engine, with a rules file if given and
// debug logging to stderr if requested.
func newEngine(cmd *cobra.Command) (*calculation.CalculationEngine, error) {
	engine := calculation.NewCalculationEngine()
	if rulesFile, _ := cmd.Flags().GetString("rules"); rulesFile != "" {
		rules, err := config.NewInputParser().LoadRules(rulesFile)
		if err != nil {
			return nil, err
		}
		if engine, err = calculation.NewCalculationEngineWithRules(rules); err != nil {
			return nil, err
		}
	}

	if debugMode, _ := cmd.Flags().GetBool("debug"); debugMode {
		logger, err := newLogger("debug", false)
		if err != nil {
			return nil, err
		}
		engine.SetLogger(logger.Sugar())
	}
	return engine, nil
}

var rootCmd = &cobra.Command{
	Use:   "itrgo",
	Short: "Indian income tax regime calculator",
	Long: `Compares the old and new income tax regimes (FY 2024-25) for a set of
income and deduction figures, runs what-if scenarios, and serves the
advisory HTTP API.`,
	SilenceUsage: true,
}

var calculateCmd = &cobra.Command{
	Use:   "calculate [facts-file]",
	Short: "Calculate tax under both regimes",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		inputFile := args[0]

		facts, err := config.NewInputParser().LoadFromFile(inputFile)
		if err != nil {
			return err
		}

		engine, err := newEngine(cmd)
		if err != nil {
			return err
		}
		analysis, err := engine.Analyze(*facts)
		if err != nil {
			return err
		}

		outputFormat, _ := cmd.Flags().GetString("format")
		f := output.NewFormatter(outputFormat, engine.TaxCalc)
		if f == nil {
			return fmt.Errorf("unsupported output format: %s (available: %s)",
				outputFormat, strings.Join(output.AvailableFormatterNames(), ", "))
		}

		if write, _ := cmd.Flags().GetBool("write"); write {
			filename, err := output.WriteFormatted(f, analysis, reportExtension(f.Name()))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", filename)
		} else {
			data, err := f.Format(analysis)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), string(data))
		}

		if dir, _ := cmd.Flags().GetString("save-summary"); dir != "" {
			paths, err := output.WriteRegimeSummaries(analysis, dir)
			if err != nil {
				return err
			}
			for _, p := range paths {
				fmt.Fprintf(cmd.OutOrStdout(), "Summary saved to %s\n", p)
			}
		}
		return nil
	},
}

func reportExtension(formatter string) string {
	switch formatter {
	case "csv", "json", "html":
		return formatter
	}
	return "txt"
}

var validateCmd = &cobra.Command{
	Use:   "validate [facts-file]",
	Short: "Validate a facts file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		inputFile := args[0]

		if _, err := config.NewInputParser().LoadFromFile(inputFile); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Facts file %s is valid\n", inputFile)

		if rulesFile, _ := cmd.Flags().GetString("rules"); rulesFile != "" {
			if _, err := config.NewInputParser().LoadRules(rulesFile); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Rules file %s is valid\n", rulesFile)
		}
		return nil
	},
}

var exampleCmd = &cobra.Command{
	Use:   "example [output-file]",
	Short: "Generate an example facts file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		outputFile := args[0]

		if err := output.SaveFacts(exampleFacts(), outputFile); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Example facts saved to %s\n", outputFile)
		return nil
	},
}

func exampleFacts() domain.FinancialFacts {
	return domain.FinancialFacts{
		GrossSalary:     decimal.NewFromInt(1500000),
		OtherIncome:     decimal.NewFromInt(20000),
		Deduction80C:    decimal.NewFromInt(150000),
		Deduction80D:    decimal.NewFromInt(25000),
		HRAExemption:    decimal.NewFromInt(120000),
		ProfessionalTax: decimal.NewFromInt(2500),
	}
}

func init() {
	calculateCmd.Flags().StringP("format", "f", "console", "Output format ("+strings.Join(output.AvailableFormatterNames(), ", ")+")")
	calculateCmd.Flags().String("rules", "", "Path to a regime rules YAML file")
	calculateCmd.Flags().Bool("debug", false, "Enable debug output for detailed calculations")
	calculateCmd.Flags().Bool("write", false, "Write the report to tax_report_<timestamp>.<ext> instead of stdout")
	calculateCmd.Flags().String("save-summary", "", "Directory to save one plain-text summary per regime")

	validateCmd.Flags().String("rules", "", "Also validate a regime rules YAML file")

	rootCmd.AddCommand(calculateCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(exampleCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(extractCmd)
	rootCmd.AddCommand(adviseCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd())
}

func main() {
	decimal.MarshalJSONWithoutQuotes = true

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
