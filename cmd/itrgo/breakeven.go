package main

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/rgehrsitz/itrgo/internal/breakeven"
	"github.com/rgehrsitz/itrgo/internal/config"
)

var breakevenCmd = &cobra.Command{
	Use:   "breakeven [facts-file]",
	Short: "Find the extra deduction at which the old regime pays off",
	Long: `Searches for the smallest increase of one old-regime deduction that makes
the old regime cost no more than the new regime. With --salaries the search
is repeated for each salary, holding the other figures fixed.

Examples:
  itrgo breakeven facts.yaml
  itrgo breakeven facts.yaml --field hraExemption
  itrgo breakeven facts.yaml --salaries 1000000,1500000,2000000 --format json
`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		facts, err := config.NewInputParser().LoadFromFile(args[0])
		if err != nil {
			return err
		}
		engine, err := newEngine(cmd)
		if err != nil {
			return err
		}

		field, _ := cmd.Flags().GetString("field")
		salaryArgs, _ := cmd.Flags().GetStringSlice("salaries")
		outputFormat, _ := cmd.Flags().GetString("format")

		format := strings.ToLower(outputFormat)
		if format != "table" && format != "json" {
			return fmt.Errorf("unknown output format: %s (valid: table, json)", outputFormat)
		}

		solver := breakeven.NewDefaultSolver(engine)

		if len(salaryArgs) > 0 {
			salaries := make([]decimal.Decimal, 0, len(salaryArgs))
			for _, s := range salaryArgs {
				v, err := decimal.NewFromString(strings.TrimSpace(s))
				if err != nil {
					return fmt.Errorf("invalid salary %q: %w", s, err)
				}
				salaries = append(salaries, v)
			}

			sweep, err := solver.Sweep(cmd.Context(), *facts, field, salaries)
			if err != nil {
				return err
			}
			if format == "json" {
				out, err := (&breakeven.JSONFormatter{Pretty: true}).FormatSweep(sweep)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), out)
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), (&breakeven.TableFormatter{}).FormatSweep(sweep))
			return nil
		}

		result, err := solver.Solve(cmd.Context(), breakeven.Request{Facts: *facts, Field: field})
		if err != nil {
			return err
		}
		if format == "json" {
			out, err := (&breakeven.JSONFormatter{Pretty: true}).Format(result)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		}
		fmt.Fprint(cmd.OutOrStdout(), (&breakeven.TableFormatter{}).Format(result))
		return nil
	},
}

func init() {
	breakevenCmd.Flags().String("field", breakeven.DefaultField, "Deduction to raise ("+strings.Join(breakeven.DeductionFields, ", ")+")")
	breakevenCmd.Flags().StringSlice("salaries", nil, "Comma-separated salaries to sweep")
	breakevenCmd.Flags().StringP("format", "f", "table", "Output format (table, json)")
	breakevenCmd.Flags().String("rules", "", "Path to a regime rules YAML file")
	breakevenCmd.Flags().Bool("debug", false, "Enable debug output for detailed calculations")

	rootCmd.AddCommand(breakevenCmd)
}
