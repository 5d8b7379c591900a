package output

import (
	"bytes"
	"encoding/csv"

	"github.com/rgehrsitz/itrgo/internal/domain"
)

// CSVSummarizer implements the simple summary CSV output (one row per regime).
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string { return "csv" }

func (c CSVSummarizer) Format(analysis *domain.RegimeAnalysis) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Regime", "GrossTotalIncome", "TotalDeductions", "TaxableIncome", "TaxBeforeCess", "Cess", "TotalTaxPayable", "Best"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, regime := range domain.Regimes {
		s := analysis.Summary(regime)
		best := "false"
		if regime == analysis.Comparison.Best {
			best = "true"
		}
		row := []string{
			string(regime),
			s.GrossTotalIncome.StringFixed(0),
			s.TotalDeductions.StringFixed(0),
			s.TaxableIncome.StringFixed(0),
			s.TaxBeforeCess.StringFixed(0),
			s.Cess.StringFixed(0),
			s.TotalTaxPayable.StringFixed(0),
			best,
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
