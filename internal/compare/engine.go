package compare

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/itrgo/internal/calculation"
	"github.com/rgehrsitz/itrgo/internal/domain"
	"github.com/rgehrsitz/itrgo/internal/transform"
)

// DefaultBaseScenarioName labels the facts as declared
const DefaultBaseScenarioName = "declared"

// CompareEngine orchestrates regime and what-if comparison
type CompareEngine struct {
	CalcEngine        *calculation.CalculationEngine
	MetricsCalculator *MetricsCalculator
	TemplateRegistry  *transform.TemplateRegistry
	TransformRegistry *transform.TransformRegistry
}

// NewCompareEngine creates a new comparison engine
func NewCompareEngine(calcEngine *calculation.CalculationEngine) *CompareEngine {
	return &CompareEngine{
		CalcEngine:        calcEngine,
		MetricsCalculator: NewMetricsCalculator(),
		TemplateRegistry:  transform.CreateBuiltInTemplates(calcEngine.TaxCalc.Rules.Old.Section80CCap),
		TransformRegistry: transform.NewTransformRegistry(),
	}
}

// CompareOptions configures comparison behavior
type CompareOptions struct {
	BaseScenarioName string   // Label for the declared facts
	Templates        []string // List of template names to apply
	Transforms       []string // Ad-hoc transform specs ("name:key=value,...")
	ConfigPath       string   // Source file, for display
}

// Compare analyses the declared facts and each requested what-if scenario
func (ce *CompareEngine) Compare(
	ctx context.Context,
	facts domain.FinancialFacts,
	options CompareOptions,
) (*ComparisonSet, error) {

	baseName := options.BaseScenarioName
	if baseName == "" {
		baseName = DefaultBaseScenarioName
	}

	baseAnalysis, err := ce.CalcEngine.Analyze(facts)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate base scenario: %w", err)
	}
	baseResult := ce.MetricsCalculator.CalculateMetrics(baseName, baseAnalysis)

	alternatives := []ComparisonResult{}

	for _, templateName := range options.Templates {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		template, ok := ce.TemplateRegistry.Get(templateName)
		if !ok {
			return nil, fmt.Errorf("template %s not found", templateName)
		}

		modified, err := transform.ApplyTemplate(facts, template)
		if err != nil {
			return nil, fmt.Errorf("failed to apply template %s: %w", templateName, err)
		}

		altResult, err := ce.runScenario(template.Name, template.Description, modified, baseResult)
		if err != nil {
			return nil, err
		}
		alternatives = append(alternatives, altResult)
	}

	for _, spec := range options.Transforms {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		tr, err := ce.TransformRegistry.ParseTransformSpec(spec)
		if err != nil {
			return nil, fmt.Errorf("invalid transform %q: %w", spec, err)
		}

		modified, err := transform.ApplyTransforms(facts, []transform.FactsTransform{tr})
		if err != nil {
			return nil, err
		}

		altResult, err := ce.runScenario(tr.Name(), tr.Description(), modified, baseResult)
		if err != nil {
			return nil, err
		}
		alternatives = append(alternatives, altResult)
	}

	compSet := &ComparisonSet{
		BaseScenarioName:   baseName,
		BaseResult:         &baseResult,
		AlternativeResults: alternatives,
		ConfigPath:         options.ConfigPath,
		Rules:              ce.CalcEngine.TaxCalc.Rules,
	}

	compSet.Recommendations = GenerateRecommendations(compSet)

	return compSet, nil
}

func (ce *CompareEngine) runScenario(name, description string, facts domain.FinancialFacts, base ComparisonResult) (ComparisonResult, error) {
	analysis, err := ce.CalcEngine.Analyze(facts)
	if err != nil {
		return ComparisonResult{}, fmt.Errorf("failed to calculate scenario %s: %w", name, err)
	}

	result := ce.MetricsCalculator.CalculateMetrics(name, analysis)
	result.Description = description
	return ce.MetricsCalculator.CalculateComparison(result, base), nil
}
