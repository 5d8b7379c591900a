package transform

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// TransformRegistry provides a central registry for all available transforms.
// It enables creation of transforms from string parameters, useful for CLI commands.
type TransformRegistry struct {
	factories map[string]TransformFactory
}

// TransformFactory is a function that creates a transform from parameters.
type TransformFactory func(params map[string]string) (FactsTransform, error)

// NewTransformRegistry creates a new registry with all built-in transforms registered.
func NewTransformRegistry() *TransformRegistry {
	registry := &TransformRegistry{
		factories: make(map[string]TransformFactory),
	}

	registry.Register("set_deduction", createSetDeduction)
	registry.Register("add_deduction", createAddDeduction)
	registry.Register("maximize_80c", createMaximize80C)
	registry.Register("adjust_income", createAdjustIncome)

	return registry
}

// Register adds a transform factory to the registry.
func (r *TransformRegistry) Register(name string, factory TransformFactory) {
	r.factories[name] = factory
}

// Create creates a transform by name with the given parameters.
func (r *TransformRegistry) Create(name string, params map[string]string) (FactsTransform, error) {
	factory, exists := r.factories[name]
	if !exists {
		return nil, fmt.Errorf("unknown transform: %s", name)
	}

	return factory(params)
}

// List returns the names of all registered transforms, sorted.
func (r *TransformRegistry) List() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseTransformSpec parses a transform specification string.
// Format: "transform_name:param1=value1,param2=value2"
// Example: "set_deduction:field=deduction80D,amount=25000"
func (r *TransformRegistry) ParseTransformSpec(spec string) (FactsTransform, error) {
	name, paramsStr, found := strings.Cut(spec, ":")
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("invalid transform spec format, expected 'name:params', got: %s", spec)
	}

	params := make(map[string]string)
	paramsStr = strings.TrimSpace(paramsStr)
	if found && paramsStr != "" {
		for _, paramPair := range strings.Split(paramsStr, ",") {
			kv := strings.SplitN(paramPair, "=", 2)
			if len(kv) != 2 {
				return nil, fmt.Errorf("invalid parameter format, expected 'key=value', got: %s", paramPair)
			}
			params[strings.TrimSpace(kv[0])] = strings.TrimSpace(kv[1])
		}
	}

	return r.Create(name, params)
}

// Factory functions for each transform

func createSetDeduction(params map[string]string) (FactsTransform, error) {
	field, amount, err := fieldAndAmount("set_deduction", params)
	if err != nil {
		return nil, err
	}
	return &SetDeduction{Field: field, Amount: amount}, nil
}

func createAddDeduction(params map[string]string) (FactsTransform, error) {
	field, amount, err := fieldAndAmount("add_deduction", params)
	if err != nil {
		return nil, err
	}
	return &AddDeduction{Field: field, Amount: amount}, nil
}

func createMaximize80C(params map[string]string) (FactsTransform, error) {
	capStr, ok := params["cap"]
	if !ok {
		return &Maximize80C{Cap: DefaultSection80CCap}, nil
	}
	limit, err := decimal.NewFromString(capStr)
	if err != nil {
		return nil, fmt.Errorf("invalid cap value: %w", err)
	}
	return &Maximize80C{Cap: limit}, nil
}

func createAdjustIncome(params map[string]string) (FactsTransform, error) {
	pctStr, ok := params["percent"]
	if !ok {
		return nil, fmt.Errorf("adjust_income requires 'percent' parameter")
	}
	pct, err := decimal.NewFromString(pctStr)
	if err != nil {
		return nil, fmt.Errorf("invalid percent value: %w", err)
	}
	return &AdjustIncome{Percent: pct}, nil
}

func fieldAndAmount(transformName string, params map[string]string) (string, decimal.Decimal, error) {
	field, ok := params["field"]
	if !ok {
		return "", decimal.Zero, fmt.Errorf("%s requires 'field' parameter", transformName)
	}
	amountStr, ok := params["amount"]
	if !ok {
		return "", decimal.Zero, fmt.Errorf("%s requires 'amount' parameter", transformName)
	}
	amount, err := decimal.NewFromString(amountStr)
	if err != nil {
		return "", decimal.Zero, fmt.Errorf("invalid amount value: %w", err)
	}
	return field, amount, nil
}
