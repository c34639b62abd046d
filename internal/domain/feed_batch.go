package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// BatchIngredientUsage records how much of one material a batch consumed and
// what that consumption cost at production time.
type BatchIngredientUsage struct {
	MaterialID    string  `bson:"materialId" json:"materialId"`
	Amount        Decimal `bson:"amount" json:"amount"`
	CostBase      Money   `bson:"costBase" json:"costBase"`
	CostSecondary Money   `bson:"costSecondary" json:"costSecondary"`
}

// FeedBatch is one production run: quantity plus the cost derived from the
// formula's ingredients at the raw-material unit costs in force when the
// batch was made. Immutable once created.
type FeedBatch struct {
	BatchID           string                 `bson:"batchId" json:"batchId"`
	FormulaID         string                 `bson:"formulaId" json:"formulaId"`
	FeedID            string                 `bson:"feedId" json:"feedId"`
	QuantityKg        Decimal                `bson:"quantityKg" json:"quantityKg"`
	CostBase          Money                  `bson:"costBase" json:"costBase"`
	CostSecondary     Money                  `bson:"costSecondary" json:"costSecondary"`
	UnitCostBase      Money                  `bson:"unitCostBase" json:"unitCostBase"`
	UnitCostSecondary Money                  `bson:"unitCostSecondary" json:"unitCostSecondary"`
	Ingredients       []BatchIngredientUsage `bson:"ingredients" json:"ingredients"`
	ProducedAt        time.Time              `bson:"producedAt" json:"producedAt"`
	ProducedBy        string                 `bson:"producedBy" json:"producedBy"`
}

// BatchPlan is the computed consumption and cost of a batch before any stock
// is touched. The coordinator applies the plan inside its unit of work.
type BatchPlan struct {
	Usages        []BatchIngredientUsage
	CostBase      Money
	CostSecondary Money
}

// PlanBatch validates the formula and computes, per ingredient,
//
//	amount_i = quantityKg * percentage_i / 100
//
// priced at each material's current unit cost. Nothing is mutated here; the
// caller decreases material stock with the returned amounts. A zero-quantity
// batch yields a plan with zero amounts and zero cost.
func PlanBatch(formula *FeedFormula, materials map[string]*RawMaterial, quantityKg Decimal, baseCurrency, secondaryCurrency string) (*BatchPlan, error) {
	if quantityKg.IsNegative() {
		return nil, NewValidationError("quantityKg", "cannot be negative")
	}
	if err := formula.Validate(); err != nil {
		return nil, err
	}

	plan := &BatchPlan{
		CostBase:      ZeroMoney(baseCurrency),
		CostSecondary: ZeroMoney(secondaryCurrency),
	}
	hundred := DecimalFromInt(100)

	for _, ing := range formula.Ingredients {
		material, ok := materials[ing.MaterialID]
		if !ok {
			return nil, fmt.Errorf("ingredient %s: %w", ing.MaterialID, ErrMaterialNotFound)
		}

		amount, err := quantityKg.Mul(ing.Percentage).Div(hundred)
		if err != nil {
			return nil, err
		}

		costBase, err := material.ConsumptionCost(amount, CurrencyBase)
		if err != nil {
			return nil, err
		}
		costSecondary, err := material.ConsumptionCost(amount, CurrencySecondary)
		if err != nil {
			return nil, err
		}

		plan.Usages = append(plan.Usages, BatchIngredientUsage{
			MaterialID:    ing.MaterialID,
			Amount:        amount,
			CostBase:      costBase,
			CostSecondary: costSecondary,
		})

		plan.CostBase, err = plan.CostBase.Add(costBase)
		if err != nil {
			return nil, err
		}
		plan.CostSecondary, err = plan.CostSecondary.Add(costSecondary)
		if err != nil {
			return nil, err
		}
	}

	return plan, nil
}

// NewFeedBatch materializes an immutable batch record from an applied plan.
func NewFeedBatch(formulaID, feedID string, quantityKg Decimal, plan *BatchPlan, producedBy string) (*FeedBatch, error) {
	unitCostBase := ZeroMoney(plan.CostBase.Currency())
	unitCostSecondary := ZeroMoney(plan.CostSecondary.Currency())
	if !quantityKg.IsZero() {
		var err error
		unitCostBase, err = plan.CostBase.Divide(quantityKg)
		if err != nil {
			return nil, err
		}
		unitCostSecondary, err = plan.CostSecondary.Divide(quantityKg)
		if err != nil {
			return nil, err
		}
	}

	return &FeedBatch{
		BatchID:           fmt.Sprintf("BATCH-%s-%s", time.Now().UTC().Format("20060102150405"), uuid.New().String()[:8]),
		FormulaID:         formulaID,
		FeedID:            feedID,
		QuantityKg:        quantityKg,
		CostBase:          plan.CostBase,
		CostSecondary:     plan.CostSecondary,
		UnitCostBase:      unitCostBase,
		UnitCostSecondary: unitCostSecondary,
		Ingredients:       plan.Usages,
		ProducedAt:        time.Now().UTC(),
		ProducedBy:        producedBy,
	}, nil
}
