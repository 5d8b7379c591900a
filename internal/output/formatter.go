package output

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/rgehrsitz/itrgo/internal/calculation"
	"github.com/rgehrsitz/itrgo/internal/domain"
)

// Formatter renders a regime analysis in one output format.
type Formatter interface {
	Name() string
	Format(analysis *domain.RegimeAnalysis) ([]byte, error)
}

// FormatterFunc adapts a plain function to the Formatter interface.
type FormatterFunc struct {
	ID string
	F  func(analysis *domain.RegimeAnalysis) ([]byte, error)
}

func (f FormatterFunc) Name() string { return f.ID }

func (f FormatterFunc) Format(analysis *domain.RegimeAnalysis) ([]byte, error) {
	return f.F(analysis)
}

var formatAliases = map[string]string{
	"console-verbose": "verbose",
	"detailed":        "verbose",
	"txt":             "text",
	"summary":         "text",
}

// NewFormatter returns the formatter registered under name (or an alias),
// or nil. calc supplies the rules used for breakdowns; nil means built-in.
func NewFormatter(name string, calc *calculation.TaxCalculator) Formatter {
	name = strings.ToLower(strings.TrimSpace(name))
	if canonical, ok := formatAliases[name]; ok {
		name = canonical
	}
	switch name {
	case "console":
		return ConsoleFormatter{}
	case "verbose":
		return ConsoleVerboseFormatter{Calculator: calc}
	case "csv":
		return CSVSummarizer{}
	case "json":
		return JSONFormatter{Pretty: true}
	case "html":
		return HTMLFormatter{}
	case "text":
		return TextSummaryFormatter{}
	}
	return nil
}

// GetFormatterByName returns a formatter with the built-in rules
func GetFormatterByName(name string) Formatter {
	return NewFormatter(name, nil)
}

// AvailableFormatterNames lists the canonical formatter names
func AvailableFormatterNames() []string {
	return []string{"console", "verbose", "csv", "json", "html", "text"}
}

// AvailableFormatAliases lists the accepted aliases, sorted
func AvailableFormatAliases() []string {
	aliases := make([]string, 0, len(formatAliases))
	for alias := range formatAliases {
		aliases = append(aliases, alias)
	}
	sort.Strings(aliases)
	return aliases
}

// WriteFormatted renders analysis and writes it to tax_report_<timestamp>.<ext>
// in the working directory, returning the file name.
func WriteFormatted(f Formatter, analysis *domain.RegimeAnalysis, ext string) (string, error) {
	data, err := f.Format(analysis)
	if err != nil {
		return "", err
	}
	filename := fmt.Sprintf("tax_report_%s.%s", time.Now().Format("20060102_150405"), ext)
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", filename, err)
	}
	return filename, nil
}

// WriteRegimeSummaries writes one Tax_Summary_<regime>_Regime.txt per
// regime into dir and returns the paths in display order.
func WriteRegimeSummaries(analysis *domain.RegimeAnalysis, dir string) ([]string, error) {
	paths := make([]string, 0, len(domain.Regimes))
	for _, regime := range domain.Regimes {
		summary := analysis.Summary(regime)
		text := SummaryText(summary, regime == analysis.Comparison.Best)
		path := filepath.Join(dir, SummaryFileName(regime))
		if err := os.WriteFile(path, []byte(text), 0644); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
