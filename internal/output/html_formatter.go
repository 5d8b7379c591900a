package output

import (
	"bytes"
	_ "embed"
	"html/template"
	"time"

	"github.com/rgehrsitz/itrgo/internal/domain"
)

// HTMLFormatter produces a standalone HTML report.
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"curr": FormatCurrency,
	"pct":  FormatPercentage,
}).Parse(htmlTemplateSource))

type htmlSummary struct {
	domain.TaxSummary
	Title string
	Best  bool
}

func (h HTMLFormatter) Format(analysis *domain.RegimeAnalysis) ([]byte, error) {
	var buf bytes.Buffer
	summaries := make([]htmlSummary, 0, len(domain.Regimes))
	for _, regime := range domain.Regimes {
		summaries = append(summaries, htmlSummary{
			TaxSummary: analysis.Summary(regime),
			Title:      regime.Title(),
			Best:       regime == analysis.Comparison.Best,
		})
	}
	data := struct {
		*domain.RegimeAnalysis
		Summaries   []htmlSummary
		BestTitle   string
		Generated   string
		Assumptions []string
	}{analysis, summaries, analysis.Comparison.Best.Title(), time.Now().Format("2006-01-02 15:04"), DefaultAssumptions}
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
