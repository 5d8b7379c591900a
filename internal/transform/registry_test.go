package transform

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestTransformRegistry_List(t *testing.T) {
	names := NewTransformRegistry().List()
	expected := []string{"add_deduction", "adjust_income", "maximize_80c", "set_deduction"}

	if len(names) != len(expected) {
		t.Fatalf("Expected %d transforms, got %v", len(expected), names)
	}
	for i := range expected {
		if names[i] != expected[i] {
			t.Errorf("Expected %s at %d, got %s", expected[i], i, names[i])
		}
	}
}

func TestTransformRegistry_ParseTransformSpec(t *testing.T) {
	registry := NewTransformRegistry()

	tr, err := registry.ParseTransformSpec("set_deduction:field=deduction80D,amount=25000")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	set, ok := tr.(*SetDeduction)
	if !ok {
		t.Fatalf("Expected *SetDeduction, got %T", tr)
	}
	if set.Field != "deduction80D" || !set.Amount.Equal(decimal.NewFromInt(25000)) {
		t.Errorf("Unexpected transform %+v", set)
	}

	tr, err = registry.ParseTransformSpec("maximize_80c")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if m := tr.(*Maximize80C); !m.Cap.Equal(DefaultSection80CCap) {
		t.Errorf("Expected default cap, got %s", m.Cap)
	}
}

func TestTransformRegistry_ParseTransformSpec_Errors(t *testing.T) {
	registry := NewTransformRegistry()

	specs := []string{
		"",
		"unknown:foo=bar",
		"set_deduction:field=deduction80D",
		"set_deduction:amount=100",
		"set_deduction:field=deduction80D,amount=lots",
		"add_deduction:field=deduction80D,amount",
		"adjust_income:",
		"adjust_income:percent=ten",
		"maximize_80c:cap=x",
	}

	for _, spec := range specs {
		if _, err := registry.ParseTransformSpec(spec); err == nil {
			t.Errorf("Expected error for spec %q", spec)
		}
	}
}
