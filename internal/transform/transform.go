package transform

import (
	"fmt"

	"github.com/rgehrsitz/itrgo/internal/domain"
)

// FactsTransform defines the interface for all what-if transformations.
// Transforms are composable operations that return a modified copy of the
// facts, enabling scenario comparison and interactive exploration.
type FactsTransform interface {
	// Apply returns a new set of facts; the input is never modified.
	Apply(base domain.FinancialFacts) (domain.FinancialFacts, error)

	// Name returns a short identifier for this transform (e.g., "maximize_80c").
	Name() string

	// Description returns a human-readable description of what this transform does.
	Description() string

	// Validate checks if the transform parameters are valid without applying it.
	Validate(base domain.FinancialFacts) error
}

// ApplyTransforms applies a sequence of transforms to the base facts.
// Transforms are applied in order, with each transform receiving the output of the previous one.
// The result is validated so that no transform can produce negative amounts.
func ApplyTransforms(base domain.FinancialFacts, transforms []FactsTransform) (domain.FinancialFacts, error) {
	current := base

	for i, transform := range transforms {
		if transform == nil {
			return domain.FinancialFacts{}, fmt.Errorf("transform at index %d is nil", i)
		}

		if err := transform.Validate(current); err != nil {
			return domain.FinancialFacts{}, fmt.Errorf("transform %s validation failed: %w", transform.Name(), err)
		}

		next, err := transform.Apply(current)
		if err != nil {
			return domain.FinancialFacts{}, fmt.Errorf("transform %s failed: %w", transform.Name(), err)
		}

		if err := next.Validate(); err != nil {
			return domain.FinancialFacts{}, NewTransformError(transform.Name(), "apply", "result is not valid", err)
		}
		current = next
	}

	return current, nil
}

// TransformError represents an error that occurred during transformation.
type TransformError struct {
	TransformName string
	Operation     string
	Reason        string
	Err           error
}

func (e *TransformError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("transform %s (%s): %s: %v", e.TransformName, e.Operation, e.Reason, e.Err)
	}
	return fmt.Sprintf("transform %s (%s): %s", e.TransformName, e.Operation, e.Reason)
}

func (e *TransformError) Unwrap() error {
	return e.Err
}

// NewTransformError creates a new TransformError.
func NewTransformError(transformName, operation, reason string, err error) error {
	return &TransformError{
		TransformName: transformName,
		Operation:     operation,
		Reason:        reason,
		Err:           err,
	}
}
