package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/rgehrsitz/itrgo/internal/advisor"
	"github.com/rgehrsitz/itrgo/internal/domain"
)

const factsFile = "../../internal/config/testdata/facts_old.yaml"

// resetFlags restores every flag to its default so package-level commands
// can be executed repeatedly.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return buf.String(), err
}

// fakeGenerator replaces the Gemini client for the duration of a test
func fakeGenerator(t *testing.T, reply string) *[]string {
	t.Helper()
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("REDIS_ADDR", "")

	var inputs []string
	orig := newGenerator
	newGenerator = func(context.Context, string, string) (advisor.Generator, error) {
		return advisor.GeneratorFunc(func(_ context.Context, _, input string) (string, error) {
			inputs = append(inputs, input)
			return reply, nil
		}), nil
	}
	t.Cleanup(func() { newGenerator = orig })
	return &inputs
}

func TestRootCommand(t *testing.T) {
	if rootCmd.Use != "itrgo" {
		t.Errorf("Expected root command use to be 'itrgo', got %s", rootCmd.Use)
	}
	if rootCmd.Short == "" || rootCmd.Long == "" {
		t.Error("Expected root command to have descriptions")
	}

	out, err := execute(t, "", "--help")
	if err != nil {
		t.Errorf("Expected no error for help command, got %v", err)
	}
	if !strings.Contains(out, "calculate") {
		t.Error("Expected help to list the calculate command")
	}
}

func TestCommandSubcommands(t *testing.T) {
	expectedCommands := []string{"calculate", "compare", "breakeven", "validate", "example", "extract", "advise", "serve", "version"}

	for _, expected := range expectedCommands {
		found := false
		for _, c := range rootCmd.Commands() {
			if c.Name() == expected {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("Expected command '%s' to be registered with root command", expected)
		}
	}

	var adviseNames []string
	for _, c := range adviseCmd.Commands() {
		adviseNames = append(adviseNames, c.Name())
	}
	if got := strings.Join(adviseNames, ","); got != "insurance,investment,loan,retirement,tax" {
		t.Errorf("Unexpected advise subcommands: %s", got)
	}
}

func TestRootCommand_InvalidCommand(t *testing.T) {
	if _, err := execute(t, "", "invalid-command"); err == nil {
		t.Error("Expected error for invalid command")
	}
	if _, err := execute(t, "", "--invalid-flag"); err == nil {
		t.Error("Expected error for invalid flag")
	}
}

func TestCalculate_Console(t *testing.T) {
	out, err := execute(t, "", "calculate", factsFile, "--format", "console")
	if err != nil {
		t.Fatalf("calculate failed: %v", err)
	}
	for _, want := range []string{"INCOME TAX SUMMARY", "₹85,800", "₹1,48,200"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected output to contain %q\n%s", want, out)
		}
	}
}

func TestCalculate_JSON(t *testing.T) {
	out, err := execute(t, "", "calculate", factsFile, "--format", "json")
	if err != nil {
		t.Fatalf("calculate failed: %v", err)
	}

	var analysis domain.RegimeAnalysis
	if err := json.Unmarshal([]byte(out), &analysis); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, out)
	}
	if !analysis.NewRegime.TotalTaxPayable.Equal(decimal.NewFromInt(85800)) {
		t.Errorf("Expected new regime total 85800, got %s", analysis.NewRegime.TotalTaxPayable)
	}
	if analysis.Comparison.Best != domain.RegimeNew {
		t.Errorf("Expected new regime to be best, got %s", analysis.Comparison.Best)
	}
}

func TestCalculate_SaveSummary(t *testing.T) {
	dir := t.TempDir()
	out, err := execute(t, "", "calculate", factsFile, "--format", "text", "--save-summary", dir)
	if err != nil {
		t.Fatalf("calculate failed: %v", err)
	}
	for _, name := range []string{"Tax_Summary_new_Regime.txt", "Tax_Summary_old_Regime.txt"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("Expected %s to be written: %v", name, err)
		}
	}
	if !strings.Contains(out, "Summary saved to") {
		t.Errorf("Expected save confirmation, got %s", out)
	}
}

func TestCalculate_Errors(t *testing.T) {
	if _, err := execute(t, "", "calculate", factsFile, "--format", "pdf"); err == nil {
		t.Error("Expected error for unsupported format")
	}
	if _, err := execute(t, "", "calculate", "missing.yaml", "--format", "console"); err == nil {
		t.Error("Expected error for missing facts file")
	}
	if _, err := execute(t, "", "calculate"); err == nil {
		t.Error("Expected error without a facts file")
	}
}

func TestValidate(t *testing.T) {
	out, err := execute(t, "", "validate", factsFile, "--rules", "../../internal/config/testdata/rules_2025.yaml")
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if !strings.Contains(out, "is valid") {
		t.Errorf("Expected validity message, got %s", out)
	}

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(bad, []byte("grossSalary: -1\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := execute(t, "", "validate", bad); err == nil {
		t.Error("Expected error for negative salary")
	}
}

func TestExampleRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "example.yaml")
	if _, err := execute(t, "", "example", path); err != nil {
		t.Fatalf("example failed: %v", err)
	}
	if _, err := execute(t, "", "validate", path); err != nil {
		t.Errorf("Expected generated example to validate, got %v", err)
	}
}

func TestCompare(t *testing.T) {
	out, err := execute(t, "", "compare", factsFile, "--with", "max_80c,raise_10pct", "--format", "table")
	if err != nil {
		t.Fatalf("compare failed: %v", err)
	}
	for _, want := range []string{"declared", "max_80c", "raise_10pct"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected compare output to contain %q\n%s", want, out)
		}
	}

	out, err = execute(t, "", "compare", factsFile,
		"--transform", "add_deduction:field=deduction80D,amount=25000", "--format", "csv")
	if err != nil {
		t.Fatalf("compare with transform failed: %v", err)
	}
	if !strings.Contains(out, "add_deduction") {
		t.Errorf("Expected transform scenario in CSV output\n%s", out)
	}
}

func TestCompare_ListTemplatesAndErrors(t *testing.T) {
	out, err := execute(t, "", "compare", "--list-templates")
	if err != nil {
		t.Fatalf("list templates failed: %v", err)
	}
	if !strings.Contains(out, "max_old_regime") {
		t.Errorf("Expected template list, got %s", out)
	}

	if _, err := execute(t, "", "compare", factsFile); err == nil {
		t.Error("Expected error without --with or --transform")
	}
	if _, err := execute(t, "", "compare", factsFile, "--with", "no_such_template"); err == nil {
		t.Error("Expected error for unknown template")
	}
	if _, err := execute(t, "", "compare", factsFile, "--with", "max_80c", "--format", "xml"); err == nil {
		t.Error("Expected error for unknown format")
	}
}

func TestBreakeven(t *testing.T) {
	out, err := execute(t, "", "breakeven", factsFile)
	if err != nil {
		t.Fatalf("breakeven failed: %v", err)
	}
	if !strings.Contains(out, "₹2,49,998") {
		t.Errorf("Expected break-even amount in output\n%s", out)
	}

	out, err = execute(t, "", "breakeven", factsFile, "--salaries", "1000000,1200000", "--format", "json")
	if err != nil {
		t.Fatalf("breakeven sweep failed: %v", err)
	}
	var sweep struct {
		Rows []struct {
			ExtraDeduction decimal.Decimal `json:"extraDeduction"`
		} `json:"rows"`
	}
	if err := json.Unmarshal([]byte(out), &sweep); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, out)
	}
	if len(sweep.Rows) != 2 || !sweep.Rows[0].ExtraDeduction.Equal(decimal.NewFromInt(199998)) {
		t.Errorf("Unexpected sweep %+v", sweep)
	}

	if _, err := execute(t, "", "breakeven", factsFile, "--field", "professionalTax"); err == nil {
		t.Error("Expected error for a new-regime field")
	}
	if _, err := execute(t, "", "breakeven", factsFile, "--salaries", "ten"); err == nil {
		t.Error("Expected error for a non-numeric salary")
	}
}

func TestExtract(t *testing.T) {
	inputs := fakeGenerator(t, "```json\n{\"grossSalary\": 1500000, \"deduction80C\": 150000}\n```")
	path := filepath.Join(t.TempDir(), "extracted.yaml")

	out, err := execute(t, "I earn 15 lakh and put 1.5 lakh in PPF", "extract", "--save", path)
	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}
	if len(*inputs) != 1 || !strings.Contains((*inputs)[0], "15 lakh") {
		t.Errorf("Expected stdin text to reach the generator, got %v", *inputs)
	}
	if !strings.Contains(out, "grossSalary") {
		t.Errorf("Expected extracted facts in output\n%s", out)
	}
	if !strings.Contains(out, "INCOME TAX SUMMARY") {
		t.Errorf("Expected both regime summaries after the facts\n%s", out)
	}
	if _, err := execute(t, "", "validate", path); err != nil {
		t.Errorf("Expected saved facts to validate, got %v", err)
	}
}

func TestAdvise(t *testing.T) {
	inputs := fakeGenerator(t, "## Plan\n\n"+advisor.Disclaimer)

	out, err := execute(t, "", "advise", "loan", "--amount", "50", "--rate", "8.5", "--tenure", "20", "--raw")
	if err != nil {
		t.Fatalf("advise loan failed: %v", err)
	}
	if !strings.Contains(out, "## Plan") {
		t.Errorf("Expected raw markdown, got %s", out)
	}
	if !strings.Contains((*inputs)[0], "Tenure (years): 20") {
		t.Errorf("Unexpected generator input %q", (*inputs)[0])
	}

	if _, err := execute(t, "", "advise", "tax", factsFile, "--raw"); err != nil {
		t.Fatalf("advise tax failed: %v", err)
	}
	if !strings.Contains((*inputs)[1], "totalTaxPayable") {
		t.Errorf("Expected the calculation to be sent as JSON, got %q", (*inputs)[1])
	}

	if _, err := execute(t, "", "advise", "retirement", "--age", "30"); err == nil {
		t.Error("Expected error for missing required flags")
	}
}

func TestAdvise_NoAPIKey(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("GEMINI_API_KEY", "")

	_, err := execute(t, "", "advise", "investment", "--amount", "5", "--duration", "10")
	if err == nil || !strings.Contains(err.Error(), "GEMINI_API_KEY") {
		t.Errorf("Expected missing key error, got %v", err)
	}
}

func TestReportExtension(t *testing.T) {
	for formatter, want := range map[string]string{"csv": "csv", "json": "json", "html": "html", "console": "txt", "verbose": "txt"} {
		if got := reportExtension(formatter); got != want {
			t.Errorf("reportExtension(%s) = %s, want %s", formatter, got, want)
		}
	}
}
