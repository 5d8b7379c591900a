package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/rgehrsitz/itrgo/internal/calculation"
	"github.com/rgehrsitz/itrgo/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// InputParser handles parsing of facts and rules files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// factsDocument mirrors domain.FinancialFacts with optional fields so that a
// missing grossSalary can be told apart from an explicit zero.
type factsDocument struct {
	GrossSalary     *decimal.Decimal `yaml:"grossSalary" json:"grossSalary"`
	OtherIncome     *decimal.Decimal `yaml:"otherIncome" json:"otherIncome"`
	Deduction80C    *decimal.Decimal `yaml:"deduction80C" json:"deduction80C"`
	Deduction80D    *decimal.Decimal `yaml:"deduction80D" json:"deduction80D"`
	HRAExemption    *decimal.Decimal `yaml:"hraExemption" json:"hraExemption"`
	ProfessionalTax *decimal.Decimal `yaml:"professionalTax" json:"professionalTax"`
}

func (doc factsDocument) toFacts() (domain.FinancialFacts, error) {
	if doc.GrossSalary == nil {
		return domain.FinancialFacts{}, fmt.Errorf("%w: grossSalary is required", domain.ErrInvalidInput)
	}
	facts := domain.FinancialFacts{
		GrossSalary:     *doc.GrossSalary,
		OtherIncome:     valueOrZero(doc.OtherIncome),
		Deduction80C:    valueOrZero(doc.Deduction80C),
		Deduction80D:    valueOrZero(doc.Deduction80D),
		HRAExemption:    valueOrZero(doc.HRAExemption),
		ProfessionalTax: valueOrZero(doc.ProfessionalTax),
	}
	if err := facts.Validate(); err != nil {
		return domain.FinancialFacts{}, err
	}
	return facts, nil
}

func valueOrZero(v *decimal.Decimal) decimal.Decimal {
	if v == nil {
		return decimal.Zero
	}
	return *v
}

// LoadFromFile loads financial facts from a YAML or JSON file
func (ip *InputParser) LoadFromFile(filename string) (*domain.FinancialFacts, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	facts, err := ip.ParseFacts(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return facts, nil
}

// ParseFacts decodes YAML (or JSON, which YAML accepts) into validated facts.
func (ip *InputParser) ParseFacts(data []byte) (*domain.FinancialFacts, error) {
	var doc factsDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: failed to parse YAML: %v", domain.ErrInvalidInput, err)
	}
	facts, err := doc.toFacts()
	if err != nil {
		return nil, err
	}
	return &facts, nil
}

// DecodeFactsJSON decodes a JSON object carrying the six fact names. Absent
// or null optional fields default to zero; a missing grossSalary, a
// non-numeric value or a negative amount is rejected with ErrInvalidInput.
func DecodeFactsJSON(data []byte) (domain.FinancialFacts, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return domain.FinancialFacts{}, fmt.Errorf("%w: empty document", domain.ErrInvalidInput)
	}
	var doc factsDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return domain.FinancialFacts{}, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	return doc.toFacts()
}

// LoadRules loads a regime rules file. Sections left out of the file keep
// the built-in values.
func (ip *InputParser) LoadRules(filename string) (calculation.RulesSet, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return calculation.RulesSet{}, fmt.Errorf("failed to read rules file %s: %w", filename, err)
	}

	rules := calculation.DefaultRulesSet()
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return calculation.RulesSet{}, fmt.Errorf("failed to parse rules YAML: %w", err)
	}
	if err := rules.Validate(); err != nil {
		return calculation.RulesSet{}, fmt.Errorf("rules validation failed: %w", err)
	}
	return rules, nil
}
