package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rgehrsitz/itrgo/internal/compare"
	"github.com/rgehrsitz/itrgo/internal/config"
	"github.com/rgehrsitz/itrgo/internal/transform"
)

var compareCmd = &cobra.Command{
	Use:   "compare [facts-file]",
	Short: "Compare the declared facts against what-if scenarios",
	Long: `Compare the declared figures against what-if scenarios built from
templates or ad-hoc transforms, under both regimes.

Examples:
  itrgo compare facts.yaml --with max_80c,health_cover_self
  itrgo compare facts.yaml --transform add_deduction:field=deduction80D,amount=25000
  itrgo compare facts.yaml --with max_old_regime --format csv
  itrgo compare --list-templates
`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, err := newEngine(cmd)
		if err != nil {
			return err
		}
		compareEngine := compare.NewCompareEngine(engine)

		if listTemplates, _ := cmd.Flags().GetBool("list-templates"); listTemplates {
			fmt.Fprint(cmd.OutOrStdout(), transform.GetTemplateHelp(compareEngine.TemplateRegistry))
			return nil
		}

		if len(args) == 0 {
			return fmt.Errorf("facts file required for comparison (use --list-templates to see available templates)")
		}
		inputFile := args[0]

		facts, err := config.NewInputParser().LoadFromFile(inputFile)
		if err != nil {
			return err
		}

		baseScenarioName, _ := cmd.Flags().GetString("base")
		templatesStr, _ := cmd.Flags().GetString("with")
		transformSpecs, _ := cmd.Flags().GetStringArray("transform")
		outputFormat, _ := cmd.Flags().GetString("format")

		templateNames := transform.ParseTemplateList(templatesStr)
		if len(templateNames) == 0 && len(transformSpecs) == 0 {
			return fmt.Errorf("--with or --transform is required (use --list-templates to see available templates)")
		}

		comparisonSet, err := compareEngine.Compare(cmd.Context(), *facts, compare.CompareOptions{
			BaseScenarioName: baseScenarioName,
			Templates:        templateNames,
			Transforms:       transformSpecs,
			ConfigPath:       inputFile,
		})
		if err != nil {
			return fmt.Errorf("comparison failed: %w", err)
		}

		switch strings.ToLower(outputFormat) {
		case "csv":
			out, err := (&compare.CSVFormatter{}).Format(comparisonSet)
			if err != nil {
				return fmt.Errorf("failed to format CSV: %w", err)
			}
			fmt.Fprint(cmd.OutOrStdout(), out)

		case "json":
			out, err := (&compare.JSONFormatter{Pretty: true}).Format(comparisonSet)
			if err != nil {
				return fmt.Errorf("failed to format JSON: %w", err)
			}
			fmt.Fprint(cmd.OutOrStdout(), out)

		case "compact":
			fmt.Fprint(cmd.OutOrStdout(), (&compare.TableFormatter{}).FormatCompact(comparisonSet))

		case "table", "console", "":
			fmt.Fprint(cmd.OutOrStdout(), (&compare.TableFormatter{}).Format(comparisonSet))

		default:
			return fmt.Errorf("unknown output format: %s (valid: table, compact, csv, json)", outputFormat)
		}
		return nil
	},
}

func init() {
	compareCmd.Flags().String("base", compare.DefaultBaseScenarioName, "Label for the declared figures")
	compareCmd.Flags().String("with", "", "Comma-separated list of templates to compare")
	compareCmd.Flags().StringArray("transform", nil, "Ad-hoc transform (name:key=value,...); repeatable")
	compareCmd.Flags().StringP("format", "f", "table", "Output format (table, compact, csv, json)")
	compareCmd.Flags().Bool("list-templates", false, "List all available what-if templates")
	compareCmd.Flags().String("rules", "", "Path to a regime rules YAML file")
	compareCmd.Flags().Bool("debug", false, "Enable debug output for detailed calculations")
}
