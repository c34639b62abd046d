package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// FormulaIngredient ties a raw material to its share of a feed formula.
type FormulaIngredient struct {
	MaterialID string  `bson:"materialId" json:"materialId"`
	Percentage Decimal `bson:"percentage" json:"percentage"`
}

// FeedFormula is a named recipe: a set of (material, percentage) pairs that
// must total 100% before any batch can be produced from it.
type FeedFormula struct {
	FormulaID   string              `bson:"formulaId" json:"formulaId"`
	Name        string              `bson:"name" json:"name"`
	Ingredients []FormulaIngredient `bson:"ingredients" json:"ingredients"`
	CreatedAt   time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time           `bson:"updatedAt" json:"updatedAt"`
}

// formulaTolerance is the allowed deviation of the percentage total from 100.
var formulaTolerance = mustDecimal("0.01")

// NewFeedFormula creates a formula. Ingredient percentages are validated at
// production time as well, so editing a formula into an invalid state is
// caught before it can consume stock.
func NewFeedFormula(name string, ingredients []FormulaIngredient) (*FeedFormula, error) {
	if strings.TrimSpace(name) == "" {
		return nil, NewValidationError("name", "is required")
	}
	if len(ingredients) == 0 {
		return nil, NewValidationError("ingredients", "at least one ingredient is required")
	}
	for _, ing := range ingredients {
		if ing.MaterialID == "" {
			return nil, NewValidationError("ingredients", "every ingredient needs a material")
		}
		if !ing.Percentage.IsPositive() {
			return nil, NewValidationError("ingredients", "percentages must be positive")
		}
	}

	now := time.Now().UTC()
	return &FeedFormula{
		FormulaID:   fmt.Sprintf("FRM-%s", uuid.New().String()[:8]),
		Name:        name,
		Ingredients: ingredients,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// PercentageTotal sums the ingredient percentages.
func (f *FeedFormula) PercentageTotal() Decimal {
	total := ZeroDecimal()
	for _, ing := range f.Ingredients {
		total = total.Add(ing.Percentage)
	}
	return total
}

// Validate gates production: the percentage total must equal 100 within the
// tolerance. An invalid formula mutates nothing downstream because this runs
// before any stock is touched.
func (f *FeedFormula) Validate() error {
	total := f.PercentageTotal()
	deviation := total.Sub(DecimalFromInt(100)).Abs()
	if deviation.GreaterThan(formulaTolerance) {
		return &FormulaInvalidError{FormulaID: f.FormulaID, Total: total}
	}
	return nil
}

func mustDecimal(s string) Decimal {
	d, err := DecimalFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}
