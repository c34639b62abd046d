package domain

import (
	"errors"
	"testing"
)

func stockedMaterial(t *testing.T, stock, unitCostBase, unitCostSecondary string) *RawMaterial {
	t.Helper()
	m := newMaterial(t)
	if err := m.RecordPurchase(dec(t, stock), money(t, unitCostBase, "USD"), money(t, unitCostSecondary, "SYP"), CostingLastPurchase); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return m
}

func TestPlanBatch(t *testing.T) {
	maize := stockedMaterial(t, "1000", "0.40", "5400")
	soy := stockedMaterial(t, "500", "0.80", "10800")

	f := formula(t, map[string]string{
		maize.MaterialID: "70",
		soy.MaterialID:   "30",
	})
	materials := map[string]*RawMaterial{
		maize.MaterialID: maize,
		soy.MaterialID:   soy,
	}

	plan, err := PlanBatch(f, materials, dec(t, "200"), "USD", "SYP")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(plan.Usages) != 2 {
		t.Fatalf("expected 2 usages, got %d", len(plan.Usages))
	}

	byMaterial := map[string]BatchIngredientUsage{}
	for _, u := range plan.Usages {
		byMaterial[u.MaterialID] = u
	}

	// 200kg at 70% maize is 140kg, at 30% soy is 60kg.
	if got := byMaterial[maize.MaterialID].Amount; got.String() != "140" {
		t.Errorf("expected 140kg maize, got %s", got.String())
	}
	if got := byMaterial[soy.MaterialID].Amount; got.String() != "60" {
		t.Errorf("expected 60kg soy, got %s", got.String())
	}

	// 140*0.40 + 60*0.80 = 104
	if plan.CostBase.Amount().String() != "104" {
		t.Errorf("expected cost 104, got %s", plan.CostBase.Amount().String())
	}

	// Planning must not touch the materials.
	if maize.CurrentStock.String() != "1000" || soy.CurrentStock.String() != "500" {
		t.Errorf("planning mutated material stock")
	}
}

func TestPlanBatch_InvalidFormula(t *testing.T) {
	maize := stockedMaterial(t, "1000", "0.40", "5400")
	f := formula(t, map[string]string{maize.MaterialID: "99"})

	_, err := PlanBatch(f, map[string]*RawMaterial{maize.MaterialID: maize}, dec(t, "100"), "USD", "SYP")
	if !errors.Is(err, ErrValidation) {
		t.Errorf("expected validation error for 99%% formula, got %v", err)
	}
}

func TestPlanBatch_MissingMaterial(t *testing.T) {
	f := formula(t, map[string]string{"MAT-missing": "100"})

	_, err := PlanBatch(f, map[string]*RawMaterial{}, dec(t, "100"), "USD", "SYP")
	if !errors.Is(err, ErrMaterialNotFound) {
		t.Errorf("expected material not found, got %v", err)
	}
}

func TestPlanBatch_ZeroQuantity(t *testing.T) {
	maize := stockedMaterial(t, "1000", "0.40", "5400")
	f := formula(t, map[string]string{maize.MaterialID: "100"})

	plan, err := PlanBatch(f, map[string]*RawMaterial{maize.MaterialID: maize}, ZeroDecimal(), "USD", "SYP")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !plan.CostBase.IsZero() {
		t.Errorf("expected zero cost, got %s", plan.CostBase)
	}
	for _, u := range plan.Usages {
		if !u.Amount.IsZero() {
			t.Errorf("expected zero usage for %s, got %s", u.MaterialID, u.Amount.String())
		}
	}
}

func TestNewFeedBatch(t *testing.T) {
	maize := stockedMaterial(t, "1000", "0.40", "5400")
	f := formula(t, map[string]string{maize.MaterialID: "100"})
	materials := map[string]*RawMaterial{maize.MaterialID: maize}

	plan, err := PlanBatch(f, materials, dec(t, "200"), "USD", "SYP")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	batch, err := NewFeedBatch(f.FormulaID, "FEED-1", dec(t, "200"), plan, "tester")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if batch.CostBase.Amount().String() != "80" {
		t.Errorf("expected batch cost 80, got %s", batch.CostBase.Amount().String())
	}
	if batch.UnitCostBase.Amount().String() != "0.4" {
		t.Errorf("expected unit cost 0.4, got %s", batch.UnitCostBase.Amount().String())
	}
	if batch.FormulaID != f.FormulaID || batch.FeedID != "FEED-1" {
		t.Errorf("batch lost its references")
	}
}

func TestNewFeedBatch_ZeroQuantity(t *testing.T) {
	plan := &BatchPlan{
		CostBase:      ZeroMoney("USD"),
		CostSecondary: ZeroMoney("SYP"),
	}

	batch, err := NewFeedBatch("FRM-1", "FEED-1", ZeroDecimal(), plan, "tester")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !batch.UnitCostBase.IsZero() {
		t.Errorf("zero-quantity batch should have zero unit cost, got %s", batch.UnitCostBase)
	}
}
