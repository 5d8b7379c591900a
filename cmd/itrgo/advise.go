package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/rgehrsitz/itrgo/internal/advisor"
	"github.com/rgehrsitz/itrgo/internal/config"
	"github.com/rgehrsitz/itrgo/internal/domain"
	"github.com/rgehrsitz/itrgo/internal/output"
)

// newGenerator is swapped in tests
var newGenerator = func(ctx context.Context, apiKey, model string) (advisor.Generator, error) {
	return advisor.NewGeminiGenerator(ctx, apiKey, model)
}

// newAdvisor builds an advisor from the environment. The returned cleanup
// closes the cache.
func newAdvisor(ctx context.Context, logger *zap.Logger) (*advisor.Advisor, func(), error) {
	cfg, err := config.LoadServerConfig()
	if err != nil {
		return nil, nil, err
	}
	if cfg.GeminiAPIKey == "" {
		return nil, nil, errors.New("GEMINI_API_KEY is not set")
	}

	gen, err := newGenerator(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		return nil, nil, err
	}

	cache := newCache(cfg, logger)
	return advisor.NewAdvisor(gen, cache, logger), func() { _ = cache.Close() }, nil
}

// newCache connects to Redis when REDIS_ADDR is set
func newCache(cfg *config.ServerConfig, logger *zap.Logger) advisor.Cache {
	if cfg.RedisAddr == "" {
		return advisor.NopCache{}
	}
	rc := advisor.NewRedisCache(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.AdviceCacheTTL)
	if rc.Available() {
		logger.Info("advice cache enabled", zap.String("addr", cfg.RedisAddr), zap.Duration("ttl", cfg.AdviceCacheTTL))
	} else {
		logger.Warn("redis unavailable, advice caching disabled", zap.String("addr", cfg.RedisAddr))
	}
	return rc
}

// withAdvisor runs fn with an advisor and a bounded context
func withAdvisor(cmd *cobra.Command, fn func(ctx context.Context, adv *advisor.Advisor) error) error {
	logger, err := newLogger("warn", false)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	timeout, _ := cmd.Flags().GetDuration("timeout")
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	adv, cleanup, err := newAdvisor(ctx, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	return fn(ctx, adv)
}

// printMarkdown renders markdown for the terminal unless --raw is set
func printMarkdown(cmd *cobra.Command, md string) error {
	if raw, _ := cmd.Flags().GetBool("raw"); raw {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), md)
		return err
	}
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
	if err != nil {
		return err
	}
	out, err := r.Render(md)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(cmd.OutOrStdout(), out)
	return err
}

var extractCmd = &cobra.Command{
	Use:   "extract [text...]",
	Short: "Extract income and deduction figures from free text",
	Long: `Asks the text generator to pull the six figures out of a description
such as "I earn 15 lakh, pay 2500 professional tax and put 1.5 lakh in PPF".
Reads the text from stdin when no arguments are given.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		text := strings.Join(args, " ")
		if text == "" || text == "-" {
			data, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return err
			}
			text = string(data)
		}

		return withAdvisor(cmd, func(ctx context.Context, adv *advisor.Advisor) error {
			facts, err := adv.ExtractFacts(ctx, text)
			if err != nil {
				return err
			}

			data, err := yaml.Marshal(facts)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), string(data))

			if summary, _ := cmd.Flags().GetBool("summary"); summary {
				engine, err := newEngine(cmd)
				if err != nil {
					return err
				}
				analysis, err := engine.Analyze(facts)
				if err != nil {
					return err
				}
				report, err := output.ConsoleFormatter{}.Format(analysis)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout())
				fmt.Fprint(cmd.OutOrStdout(), string(report))
			}

			if file, _ := cmd.Flags().GetString("save"); file != "" {
				if err := output.SaveFacts(facts, file); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Facts saved to %s\n", file)
			}
			return nil
		})
	},
}

var adviseCmd = &cobra.Command{
	Use:   "advise",
	Short: "Generate financial suggestions with the text generator",
}

var adviseTaxCmd = &cobra.Command{
	Use:   "tax [facts-file]",
	Short: "Tax-saving suggestions for a calculation",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		facts, err := config.NewInputParser().LoadFromFile(args[0])
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

		return withAdvisor(cmd, func(ctx context.Context, adv *advisor.Advisor) error {
			md, err := adv.RecommendTax(ctx, analysis)
			if err != nil {
				return err
			}
			return printMarkdown(cmd, md)
		})
	},
}

var adviseRetirementCmd = &cobra.Command{
	Use:   "retirement",
	Short: "Retirement corpus and savings plan",
	RunE: func(cmd *cobra.Command, args []string) error {
		req := domain.RetirementRequest{
			Age:       flagString(cmd, "age"),
			RetireAge: flagString(cmd, "retire-age"),
			Salary:    flagString(cmd, "salary"),
			Savings:   flagString(cmd, "savings"),
			Notes:     flagString(cmd, "notes"),
		}
		return withAdvisor(cmd, func(ctx context.Context, adv *advisor.Advisor) error {
			md, err := adv.PlanRetirement(ctx, req)
			if err != nil {
				return err
			}
			return printMarkdown(cmd, md)
		})
	},
}

var adviseInsuranceCmd = &cobra.Command{
	Use:   "insurance",
	Short: "Life and health insurance cover",
	RunE: func(cmd *cobra.Command, args []string) error {
		req := domain.InsuranceRequest{
			Age:          flagString(cmd, "age"),
			AnnualIncome: flagString(cmd, "income"),
			Dependents:   flagString(cmd, "dependents"),
			Liabilities:  flagString(cmd, "liabilities"),
			Notes:        flagString(cmd, "notes"),
		}
		return withAdvisor(cmd, func(ctx context.Context, adv *advisor.Advisor) error {
			md, err := adv.CalculateInsurance(ctx, req)
			if err != nil {
				return err
			}
			return printMarkdown(cmd, md)
		})
	},
}

var adviseInvestmentCmd = &cobra.Command{
	Use:   "investment",
	Short: "Asset allocation for a lump sum",
	RunE: func(cmd *cobra.Command, args []string) error {
		req := domain.InvestmentRequest{
			Amount:   flagString(cmd, "amount"),
			Duration: flagString(cmd, "duration"),
			Risk:     flagString(cmd, "risk"),
			Notes:    flagString(cmd, "notes"),
		}
		return withAdvisor(cmd, func(ctx context.Context, adv *advisor.Advisor) error {
			md, err := adv.RecommendInvestments(ctx, req)
			if err != nil {
				return err
			}
			return printMarkdown(cmd, md)
		})
	},
}

var adviseLoanCmd = &cobra.Command{
	Use:   "loan",
	Short: "EMI and interest analysis for a loan",
	RunE: func(cmd *cobra.Command, args []string) error {
		req := domain.LoanRequest{
			LoanAmount:   flagString(cmd, "amount"),
			InterestRate: flagString(cmd, "rate"),
			LoanTenure:   flagString(cmd, "tenure"),
			Notes:        flagString(cmd, "notes"),
		}
		return withAdvisor(cmd, func(ctx context.Context, adv *advisor.Advisor) error {
			md, err := adv.AnalyzeLoan(ctx, req)
			if err != nil {
				return err
			}
			return printMarkdown(cmd, md)
		})
	},
}

func flagString(cmd *cobra.Command, name string) string {
	v, _ := cmd.Flags().GetString(name)
	return v
}

func init() {
	extractCmd.Flags().String("save", "", "Save the extracted figures as a facts YAML file")
	extractCmd.Flags().Duration("timeout", time.Minute, "Generation timeout")
	extractCmd.Flags().Bool("summary", true, "Also print the tax under both regimes")
	extractCmd.Flags().String("rules", "", "Path to a regime rules YAML file")
	extractCmd.Flags().Bool("debug", false, "Enable debug output for detailed calculations")

	adviseCmd.PersistentFlags().Bool("raw", false, "Print markdown without terminal rendering")
	adviseCmd.PersistentFlags().Duration("timeout", time.Minute, "Generation timeout")

	adviseTaxCmd.Flags().String("rules", "", "Path to a regime rules YAML file")
	adviseTaxCmd.Flags().Bool("debug", false, "Enable debug output for detailed calculations")

	adviseRetirementCmd.Flags().String("age", "", "Current age")
	adviseRetirementCmd.Flags().String("retire-age", "", "Desired retirement age")
	adviseRetirementCmd.Flags().String("salary", "", "Annual salary in lakhs")
	adviseRetirementCmd.Flags().String("savings", "", "Existing retirement savings in lakhs")
	adviseRetirementCmd.Flags().String("notes", "", "Anything else to consider")
	for _, name := range []string{"age", "retire-age", "salary", "savings"} {
		_ = adviseRetirementCmd.MarkFlagRequired(name)
	}

	adviseInsuranceCmd.Flags().String("age", "", "Current age")
	adviseInsuranceCmd.Flags().String("income", "", "Annual income in lakhs")
	adviseInsuranceCmd.Flags().String("dependents", "", "Number of financial dependents")
	adviseInsuranceCmd.Flags().String("liabilities", "0", "Total outstanding loans in lakhs")
	adviseInsuranceCmd.Flags().String("notes", "", "Specific goals or notes")
	for _, name := range []string{"age", "income", "dependents"} {
		_ = adviseInsuranceCmd.MarkFlagRequired(name)
	}

	adviseInvestmentCmd.Flags().String("amount", "", "Amount to invest in lakhs")
	adviseInvestmentCmd.Flags().String("duration", "", "Investment duration in years")
	adviseInvestmentCmd.Flags().String("risk", "moderate", "Risk tolerance (low, moderate, high)")
	adviseInvestmentCmd.Flags().String("notes", "", "Specific goals or notes")
	for _, name := range []string{"amount", "duration"} {
		_ = adviseInvestmentCmd.MarkFlagRequired(name)
	}

	adviseLoanCmd.Flags().String("amount", "", "Loan amount in lakhs")
	adviseLoanCmd.Flags().String("rate", "", "Annual interest rate in percent")
	adviseLoanCmd.Flags().String("tenure", "", "Loan tenure in years")
	adviseLoanCmd.Flags().String("notes", "", "Specific questions or notes")
	for _, name := range []string{"amount", "rate", "tenure"} {
		_ = adviseLoanCmd.MarkFlagRequired(name)
	}

	adviseCmd.AddCommand(adviseTaxCmd, adviseRetirementCmd, adviseInsuranceCmd, adviseInvestmentCmd, adviseLoanCmd)
}
