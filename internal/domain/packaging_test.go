package domain

import (
	"errors"
	"testing"
)

func TestPackagingForEggs(t *testing.T) {
	tests := []struct {
		name        string
		eggs        int64
		wantTrays   string
		wantCartons string
	}{
		{name: "one full carton", eggs: 360, wantTrays: "12", wantCartons: "1"},
		{name: "quarter carton", eggs: 90, wantTrays: "3", wantCartons: "0.25"},
		{name: "partial tray", eggs: 45, wantTrays: "1.5", wantCartons: "0.125"},
		{name: "no eggs", eggs: 0, wantTrays: "0", wantCartons: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cartons, trays := PackagingForEggs(tt.eggs)
			if trays.String() != tt.wantTrays {
				t.Errorf("expected %s trays, got %s", tt.wantTrays, trays.String())
			}
			if cartons.String() != tt.wantCartons {
				t.Errorf("expected %s cartons, got %s", tt.wantCartons, cartons.String())
			}
		})
	}
}

func TestPackagingStock_ConsumeRoundsUp(t *testing.T) {
	p := NewPackagingStock("USD")
	p.Cartons = 10
	p.Trays = 40

	// A fractional need consumes whole units: 2.1 cartons takes 3.
	got, err := p.Consume(dec(t, "2.1"), dec(t, "25.2"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Cartons != 3 {
		t.Errorf("expected 3 cartons consumed, got %d", got.Cartons)
	}
	if got.Trays != 26 {
		t.Errorf("expected 26 trays consumed, got %d", got.Trays)
	}
	if p.Cartons != 7 || p.Trays != 14 {
		t.Errorf("expected 7 cartons and 14 trays remaining, got %d/%d", p.Cartons, p.Trays)
	}
}

func TestPackagingStock_ConsumeExactFit(t *testing.T) {
	p := NewPackagingStock("USD")
	p.Cartons = 2
	p.Trays = 24

	got, err := p.Consume(dec(t, "2"), dec(t, "24"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Cartons != 2 || got.Trays != 24 {
		t.Errorf("expected exact consumption 2/24, got %d/%d", got.Cartons, got.Trays)
	}
	if p.Cartons != 0 || p.Trays != 0 {
		t.Errorf("expected empty stock, got %d/%d", p.Cartons, p.Trays)
	}
}

func TestPackagingStock_ConsumeReportsAllShortfalls(t *testing.T) {
	p := NewPackagingStock("USD")
	p.Cartons = 1
	p.Trays = 5

	_, err := p.Consume(dec(t, "2.1"), dec(t, "25.2"))
	if !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("expected insufficient stock error, got %v", err)
	}

	var insufficient *InsufficientPackagingError
	if !errors.As(err, &insufficient) {
		t.Fatalf("expected InsufficientPackagingError, got %T", err)
	}
	if len(insufficient.Shortfalls) != 2 {
		t.Fatalf("expected both shortfalls reported, got %d", len(insufficient.Shortfalls))
	}

	byItem := map[string]PackagingShortfall{}
	for _, s := range insufficient.Shortfalls {
		byItem[s.Item] = s
	}
	if s := byItem["cartons"]; s.Needed != 3 || s.Available != 1 {
		t.Errorf("cartons shortfall: expected needed 3 available 1, got %d/%d", s.Needed, s.Available)
	}
	if s := byItem["trays"]; s.Needed != 26 || s.Available != 5 {
		t.Errorf("trays shortfall: expected needed 26 available 5, got %d/%d", s.Needed, s.Available)
	}

	// A shortfall on either item must leave both untouched.
	if p.Cartons != 1 || p.Trays != 5 {
		t.Errorf("shortfall must not mutate stock, got %d/%d", p.Cartons, p.Trays)
	}
}

func TestPackagingStock_Replenish(t *testing.T) {
	p := NewPackagingStock("USD")
	noCost := ZeroMoney("USD")

	if err := p.Replenish(5, 60, noCost, noCost); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Cartons != 5 || p.Trays != 60 {
		t.Errorf("expected 5/60, got %d/%d", p.Cartons, p.Trays)
	}

	if err := p.Replenish(-1, 0, noCost, noCost); !errors.Is(err, ErrValidation) {
		t.Errorf("expected validation error for negative replenishment, got %v", err)
	}
}

func TestPackagingStock_ReplenishRecordsUnitCost(t *testing.T) {
	p := NewPackagingStock("USD")

	if err := p.Replenish(10, 120, money(t, "0.9", "USD"), money(t, "0.3", "USD")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.UnitCostCartonBase.String() != "0.9 USD" {
		t.Errorf("expected carton cost 0.9 USD, got %s", p.UnitCostCartonBase.String())
	}
	if p.UnitCostTrayBase.String() != "0.3 USD" {
		t.Errorf("expected tray cost 0.3 USD, got %s", p.UnitCostTrayBase.String())
	}

	// A costless top-up keeps the previous rates.
	if err := p.Replenish(5, 0, ZeroMoney("USD"), ZeroMoney("USD")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Cartons != 15 {
		t.Errorf("expected 15 cartons, got %d", p.Cartons)
	}
	if p.UnitCostCartonBase.String() != "0.9 USD" || p.UnitCostTrayBase.String() != "0.3 USD" {
		t.Errorf("costless replenishment must keep rates, got %s / %s",
			p.UnitCostCartonBase.String(), p.UnitCostTrayBase.String())
	}
}

func TestPackagingStock_IsLowStock(t *testing.T) {
	p := NewPackagingStock("USD")
	p.Cartons = 10
	p.Trays = 100
	p.CartonThreshold = 5
	p.TrayThreshold = 50

	if p.IsLowStock() {
		t.Errorf("stock above both thresholds should not be low")
	}

	p.Trays = 50
	if !p.IsLowStock() {
		t.Errorf("trays at threshold should flag low stock")
	}
}
