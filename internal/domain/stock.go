package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// StockLevel is the quantity-and-cost state shared by every inventoriable
// entity. Quantities are decimals because feed and raw materials are weighed
// in fractional kilograms.
type StockLevel struct {
	CurrentStock      Decimal `bson:"currentStock" json:"currentStock"`
	UnitCostBase      Money   `bson:"unitCostBase" json:"unitCostBase"`
	UnitCostSecondary Money   `bson:"unitCostSecondary" json:"unitCostSecondary"`
	LowStockThreshold Decimal `bson:"lowStockThreshold" json:"lowStockThreshold"`
}

// Increase adds quantity to the level.
func (s *StockLevel) Increase(qty Decimal) error {
	if qty.IsNegative() {
		return NewValidationError("quantity", "cannot be negative")
	}
	s.CurrentStock = s.CurrentStock.Add(qty)
	return nil
}

// Decrease removes quantity from the level. Stock never goes negative: a
// request beyond the current stock fails whole, with no partial deduction.
func (s *StockLevel) Decrease(entity string, qty Decimal) error {
	if qty.IsNegative() {
		return NewValidationError("quantity", "cannot be negative")
	}
	if qty.GreaterThan(s.CurrentStock) {
		return &InsufficientStockError{
			Entity:    entity,
			Requested: qty,
			Available: s.CurrentStock,
		}
	}
	s.CurrentStock = s.CurrentStock.Sub(qty)
	return nil
}

// IsLowStock reports whether the level has fallen to or below its threshold.
func (s *StockLevel) IsLowStock() bool {
	return !s.LowStockThreshold.IsZero() && !s.CurrentStock.GreaterThan(s.LowStockThreshold)
}

// RawMaterial is a purchasable feed ingredient. Besides its live stock level
// it accumulates everything ever purchased, which feeds the weighted-average
// cost basis.
type RawMaterial struct {
	MaterialID string `bson:"materialId" json:"materialId"`
	Name       string `bson:"name" json:"name"`
	Unit       string `bson:"unit" json:"unit"` // "kg", "bag", ...

	StockLevel `bson:",inline"`

	TotalQuantityPurchased       Decimal `bson:"totalQuantityPurchased" json:"totalQuantityPurchased"`
	TotalValuePurchasedBase      Money   `bson:"totalValuePurchasedBase" json:"totalValuePurchasedBase"`
	TotalValuePurchasedSecondary Money   `bson:"totalValuePurchasedSecondary" json:"totalValuePurchasedSecondary"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// NewRawMaterial creates a raw material with empty stock.
func NewRawMaterial(name, unit, baseCurrency, secondaryCurrency string, lowStockThreshold Decimal) (*RawMaterial, error) {
	if strings.TrimSpace(name) == "" {
		return nil, NewValidationError("name", "is required")
	}
	if unit == "" {
		unit = "kg"
	}

	now := time.Now().UTC()
	return &RawMaterial{
		MaterialID: fmt.Sprintf("MAT-%s", uuid.New().String()[:8]),
		Name:       name,
		Unit:       unit,
		StockLevel: StockLevel{
			UnitCostBase:      ZeroMoney(baseCurrency),
			UnitCostSecondary: ZeroMoney(secondaryCurrency),
			LowStockThreshold: lowStockThreshold,
		},
		TotalValuePurchasedBase:      ZeroMoney(baseCurrency),
		TotalValuePurchasedSecondary: ZeroMoney(secondaryCurrency),
		CreatedAt:                    now,
		UpdatedAt:                    now,
	}, nil
}

// FinishedFeed is produced feed ready for sale. Its unit cost is the running
// weighted average over every batch blended into it.
type FinishedFeed struct {
	FeedID string `bson:"feedId" json:"feedId"`
	Name   string `bson:"name" json:"name"`

	StockLevel `bson:",inline"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// NewFinishedFeed creates a finished feed with empty stock.
func NewFinishedFeed(name, baseCurrency, secondaryCurrency string, lowStockThreshold Decimal) (*FinishedFeed, error) {
	if strings.TrimSpace(name) == "" {
		return nil, NewValidationError("name", "is required")
	}

	now := time.Now().UTC()
	return &FinishedFeed{
		FeedID: fmt.Sprintf("FEED-%s", uuid.New().String()[:8]),
		Name:   name,
		StockLevel: StockLevel{
			UnitCostBase:      ZeroMoney(baseCurrency),
			UnitCostSecondary: ZeroMoney(secondaryCurrency),
			LowStockThreshold: lowStockThreshold,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// BlendBatch folds a freshly produced batch into the running stock: the unit
// cost becomes the weighted average of the existing stock at its old cost and
// the batch at its production cost.
//
//	newAvg = (oldStock*oldCost + qty*batchUnitCost) / (oldStock + qty)
//
// A zero-quantity batch leaves both stock and cost untouched; the combined
// quantity is guarded so this never divides by zero.
func (f *FinishedFeed) BlendBatch(qtyKg Decimal, batchCostBase, batchCostSecondary Money) error {
	if qtyKg.IsNegative() {
		return NewValidationError("quantityKg", "cannot be negative")
	}

	combined := f.CurrentStock.Add(qtyKg)
	if combined.IsZero() {
		return nil
	}

	newCostBase, err := blendUnitCost(f.CurrentStock, f.UnitCostBase, batchCostBase, combined)
	if err != nil {
		return err
	}
	newCostSecondary, err := blendUnitCost(f.CurrentStock, f.UnitCostSecondary, batchCostSecondary, combined)
	if err != nil {
		return err
	}

	f.UnitCostBase = newCostBase
	f.UnitCostSecondary = newCostSecondary
	f.CurrentStock = combined
	f.UpdatedAt = time.Now().UTC()
	return nil
}

func blendUnitCost(oldStock Decimal, oldUnitCost Money, batchCost Money, combined Decimal) (Money, error) {
	oldValue, err := oldUnitCost.Multiply(oldStock)
	if err != nil {
		return Money{}, err
	}
	totalValue, err := oldValue.Add(batchCost)
	if err != nil {
		return Money{}, err
	}
	return totalValue.Divide(combined)
}
