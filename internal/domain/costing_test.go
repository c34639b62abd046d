package domain

import (
	"testing"
)

func newMaterial(t *testing.T) *RawMaterial {
	t.Helper()
	m, err := NewRawMaterial("maize", "kg", "USD", "SYP", ZeroDecimal())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return m
}

func TestRecordPurchase_LastPurchase(t *testing.T) {
	m := newMaterial(t)

	if err := m.RecordPurchase(dec(t, "100"), money(t, "0.40", "USD"), money(t, "5400", "SYP"), CostingLastPurchase); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := m.RecordPurchase(dec(t, "50"), money(t, "0.60", "USD"), money(t, "8100", "SYP"), CostingLastPurchase); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if m.CurrentStock.String() != "150" {
		t.Errorf("expected stock 150, got %s", m.CurrentStock.String())
	}
	// Last purchase wins regardless of earlier rates.
	if m.UnitCostBase.Amount().String() != "0.6" {
		t.Errorf("expected unit cost 0.6, got %s", m.UnitCostBase.Amount().String())
	}
	if m.TotalQuantityPurchased.String() != "150" {
		t.Errorf("expected total purchased 150, got %s", m.TotalQuantityPurchased.String())
	}
	if m.TotalValuePurchasedBase.Amount().String() != "70" {
		t.Errorf("expected total value 70, got %s", m.TotalValuePurchasedBase.Amount().String())
	}
}

func TestRecordPurchase_MovingAverage(t *testing.T) {
	m := newMaterial(t)

	if err := m.RecordPurchase(dec(t, "100"), money(t, "0.40", "USD"), money(t, "5400", "SYP"), CostingMovingAverage); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := m.RecordPurchase(dec(t, "50"), money(t, "0.60", "USD"), money(t, "8100", "SYP"), CostingMovingAverage); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// (100*0.40 + 50*0.60) / 150 = 70/150
	want, err := money(t, "70", "USD").Divide(dec(t, "150"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !m.UnitCostBase.Equals(want) {
		t.Errorf("expected moving average %s, got %s", want, m.UnitCostBase)
	}
}

func TestCostingPolicies_Diverge(t *testing.T) {
	last := newMaterial(t)
	avg := newMaterial(t)

	purchases := []struct {
		qty, rateBase, rateSecondary string
	}{
		{"100", "0.40", "5400"},
		{"50", "0.60", "8100"},
	}
	for _, p := range purchases {
		if err := last.RecordPurchase(dec(t, p.qty), money(t, p.rateBase, "USD"), money(t, p.rateSecondary, "SYP"), CostingLastPurchase); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := avg.RecordPurchase(dec(t, p.qty), money(t, p.rateBase, "USD"), money(t, p.rateSecondary, "SYP"), CostingMovingAverage); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if last.UnitCostBase.Equals(avg.UnitCostBase) {
		t.Errorf("policies should diverge after purchases at different rates, both %s", last.UnitCostBase)
	}

	// Historical average is policy-independent.
	lastAvg, err := last.AverageUnitCost(CurrencyBase)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	avgAvg, err := avg.AverageUnitCost(CurrencyBase)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !lastAvg.Equals(avgAvg) {
		t.Errorf("average unit cost differs across policies: %s vs %s", lastAvg, avgAvg)
	}
}

func TestAverageUnitCost_NoPurchases(t *testing.T) {
	m := newMaterial(t)

	avg, err := m.AverageUnitCost(CurrencyBase)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !avg.IsZero() {
		t.Errorf("expected zero cost with no purchases, got %s", avg)
	}
}

func TestConsumptionCost(t *testing.T) {
	m := newMaterial(t)
	if err := m.RecordPurchase(dec(t, "100"), money(t, "0.50", "USD"), money(t, "6750", "SYP"), CostingLastPurchase); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cost, err := m.ConsumptionCost(dec(t, "30"), CurrencyBase)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cost.Amount().String() != "15" {
		t.Errorf("expected 15, got %s", cost.Amount().String())
	}

	costSec, err := m.ConsumptionCost(dec(t, "30"), CurrencySecondary)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if costSec.Amount().String() != "202500" {
		t.Errorf("expected 202500, got %s", costSec.Amount().String())
	}
}

func TestRecordPurchase_Validation(t *testing.T) {
	m := newMaterial(t)

	if err := m.RecordPurchase(ZeroDecimal(), money(t, "0.50", "USD"), money(t, "6750", "SYP"), CostingLastPurchase); err == nil {
		t.Errorf("expected error for zero quantity")
	}
	if err := m.RecordPurchase(dec(t, "10"), money(t, "0.50", "USD"), money(t, "6750", "SYP"), CostingPolicy("FIFO")); err == nil {
		t.Errorf("expected error for unknown policy")
	}
}
