package domain

import (
	"errors"
	"testing"
)

func formula(t *testing.T, percentages map[string]string) *FeedFormula {
	t.Helper()
	var ingredients []FormulaIngredient
	for materialID, pct := range percentages {
		ingredients = append(ingredients, FormulaIngredient{
			MaterialID: materialID,
			Percentage: dec(t, pct),
		})
	}
	f, err := NewFeedFormula("layer mix", ingredients)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return f
}

func TestNewFeedFormula_Validation(t *testing.T) {
	tests := []struct {
		name        string
		formulaName string
		ingredients []FormulaIngredient
		expectError bool
	}{
		{
			name:        "valid formula",
			formulaName: "layer mix",
			ingredients: []FormulaIngredient{{MaterialID: "MAT-1", Percentage: DecimalFromInt(100)}},
		},
		{
			name:        "blank name",
			formulaName: "  ",
			ingredients: []FormulaIngredient{{MaterialID: "MAT-1", Percentage: DecimalFromInt(100)}},
			expectError: true,
		},
		{
			name:        "no ingredients",
			formulaName: "empty",
			expectError: true,
		},
		{
			name:        "ingredient without material",
			formulaName: "broken",
			ingredients: []FormulaIngredient{{MaterialID: "", Percentage: DecimalFromInt(100)}},
			expectError: true,
		},
		{
			name:        "zero percentage",
			formulaName: "broken",
			ingredients: []FormulaIngredient{{MaterialID: "MAT-1", Percentage: ZeroDecimal()}},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewFeedFormula(tt.formulaName, tt.ingredients)
			if tt.expectError && err == nil {
				t.Errorf("expected error, got nil")
			}
			if !tt.expectError && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestFeedFormula_Validate(t *testing.T) {
	tests := []struct {
		name        string
		percentages map[string]string
		expectError bool
	}{
		{
			name:        "exactly 100",
			percentages: map[string]string{"MAT-1": "60", "MAT-2": "40"},
		},
		{
			name:        "within tolerance",
			percentages: map[string]string{"MAT-1": "60.005", "MAT-2": "40"},
		},
		{
			name:        "totals 99",
			percentages: map[string]string{"MAT-1": "60", "MAT-2": "39"},
			expectError: true,
		},
		{
			name:        "just outside tolerance",
			percentages: map[string]string{"MAT-1": "60.011", "MAT-2": "40"},
			expectError: true,
		},
		{
			name:        "overshoots 100",
			percentages: map[string]string{"MAT-1": "60", "MAT-2": "45"},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := formula(t, tt.percentages)
			err := f.Validate()
			if tt.expectError {
				if !errors.Is(err, ErrValidation) {
					t.Fatalf("expected validation error, got %v", err)
				}
				var invalid *FormulaInvalidError
				if !errors.As(err, &invalid) {
					t.Fatalf("expected FormulaInvalidError, got %v", err)
				}
				if !invalid.Total.Equal(f.PercentageTotal()) {
					t.Errorf("error should carry the offending total")
				}
			} else if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}
