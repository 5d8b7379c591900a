package output

import (
	"fmt"
	"io"
	"os"

	"github.com/rgehrsitz/itrgo/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// GenerateReport renders analysis with the named formatter and writes it to w
func GenerateReport(w io.Writer, analysis *domain.RegimeAnalysis, format string) error {
	f := GetFormatterByName(format)
	if f == nil {
		return fmt.Errorf("unsupported output format: %s", format)
	}
	data, err := f.Format(analysis)
	if err != nil {
		return fmt.Errorf("%s formatter: %w", f.Name(), err)
	}
	_, err = w.Write(data)
	return err
}

// SaveFacts writes facts as a YAML input file that can be loaded again
func SaveFacts(facts domain.FinancialFacts, filename string) error {
	data, err := yaml.Marshal(facts)
	if err != nil {
		return err
	}
	return os.WriteFile(filename, data, 0644)
}

// FormatCurrency formats an amount in rupees with Indian digit grouping
func FormatCurrency(amount decimal.Decimal) string {
	return domain.FormatRupees(amount)
}

// FormatPercentage formats a decimal as percentage
func FormatPercentage(amount decimal.Decimal) string {
	return amount.StringFixed(2) + "%"
}
