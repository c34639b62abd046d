package domain

import (
	"errors"
	"testing"
)

func TestStockLevel_Decrease(t *testing.T) {
	tests := []struct {
		name        string
		current     string
		request     string
		want        string
		expectError bool
	}{
		{name: "full deduction", current: "100", request: "100", want: "0"},
		{name: "partial deduction", current: "100", request: "37.5", want: "62.5"},
		{name: "beyond stock fails whole", current: "10", request: "10.1", want: "10", expectError: true},
		{name: "negative request", current: "10", request: "-1", want: "10", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			level := StockLevel{CurrentStock: dec(t, tt.current)}
			err := level.Decrease("maize", dec(t, tt.request))
			if tt.expectError && err == nil {
				t.Errorf("expected error, got nil")
			}
			if !tt.expectError && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if level.CurrentStock.String() != tt.want {
				t.Errorf("expected stock %s, got %s", tt.want, level.CurrentStock.String())
			}
		})
	}
}

func TestStockLevel_DecreaseReportsShortfall(t *testing.T) {
	level := StockLevel{CurrentStock: dec(t, "5")}

	err := level.Decrease("maize", dec(t, "8"))
	if !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("expected insufficient stock error, got %v", err)
	}

	var insufficient *InsufficientStockError
	if !errors.As(err, &insufficient) {
		t.Fatalf("expected InsufficientStockError, got %T", err)
	}
	if insufficient.Entity != "maize" {
		t.Errorf("expected entity maize, got %s", insufficient.Entity)
	}
	if insufficient.Requested.String() != "8" || insufficient.Available.String() != "5" {
		t.Errorf("expected requested 8 available 5, got %s/%s",
			insufficient.Requested.String(), insufficient.Available.String())
	}
}

func TestStockLevel_IsLowStock(t *testing.T) {
	tests := []struct {
		name      string
		current   string
		threshold string
		want      bool
	}{
		{name: "above threshold", current: "100", threshold: "20", want: false},
		{name: "at threshold", current: "20", threshold: "20", want: true},
		{name: "below threshold", current: "5", threshold: "20", want: true},
		{name: "no threshold configured", current: "0", threshold: "0", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			level := StockLevel{
				CurrentStock:      dec(t, tt.current),
				LowStockThreshold: dec(t, tt.threshold),
			}
			if got := level.IsLowStock(); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestFinishedFeed_BlendBatch(t *testing.T) {
	feed, err := NewFinishedFeed("layer mash", "USD", "SYP", ZeroDecimal())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// First batch into empty stock: 100kg at 50 USD total.
	if err := feed.BlendBatch(dec(t, "100"), money(t, "50", "USD"), money(t, "675000", "SYP")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if feed.CurrentStock.String() != "100" {
		t.Errorf("expected stock 100, got %s", feed.CurrentStock.String())
	}
	if feed.UnitCostBase.Amount().String() != "0.5" {
		t.Errorf("expected unit cost 0.5, got %s", feed.UnitCostBase.Amount().String())
	}

	// Second batch at a higher cost moves the average.
	// (100*0.5 + 100) / 200 = 0.75
	if err := feed.BlendBatch(dec(t, "100"), money(t, "100", "USD"), money(t, "1350000", "SYP")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if feed.CurrentStock.String() != "200" {
		t.Errorf("expected stock 200, got %s", feed.CurrentStock.String())
	}
	if feed.UnitCostBase.Amount().String() != "0.75" {
		t.Errorf("expected unit cost 0.75, got %s", feed.UnitCostBase.Amount().String())
	}
}

func TestFinishedFeed_BlendZeroQuantityBatch(t *testing.T) {
	feed, err := NewFinishedFeed("layer mash", "USD", "SYP", ZeroDecimal())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Empty stock plus a zero batch must not divide by zero or change state.
	if err := feed.BlendBatch(ZeroDecimal(), ZeroMoney("USD"), ZeroMoney("SYP")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !feed.CurrentStock.IsZero() {
		t.Errorf("expected empty stock, got %s", feed.CurrentStock.String())
	}
	if !feed.UnitCostBase.IsZero() {
		t.Errorf("expected zero unit cost, got %s", feed.UnitCostBase.Amount().String())
	}

	// Zero batch into existing stock leaves the cost alone too.
	if err := feed.BlendBatch(dec(t, "50"), money(t, "25", "USD"), money(t, "337500", "SYP")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	before := feed.UnitCostBase
	if err := feed.BlendBatch(ZeroDecimal(), ZeroMoney("USD"), ZeroMoney("SYP")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !feed.UnitCostBase.Equals(before) {
		t.Errorf("zero batch changed unit cost: %s -> %s", before, feed.UnitCostBase)
	}
}
