package domain

import (
	"time"
)

// CostingPolicy selects which unit cost raw-material consumption is priced at.
// The books accumulate purchase totals either way; the policy only decides
// what a kilogram costs when it leaves the store.
type CostingPolicy string

const (
	// CostingLastPurchase prices consumption at the most recent purchase rate.
	CostingLastPurchase CostingPolicy = "LAST_PURCHASE"

	// CostingMovingAverage prices consumption at cumulative purchased value
	// divided by cumulative purchased quantity.
	CostingMovingAverage CostingPolicy = "MOVING_AVERAGE"
)

// DefaultCostingPolicy matches the long-standing behavior of the books:
// last purchase rate wins.
const DefaultCostingPolicy = CostingLastPurchase

// IsValid checks if the costing policy is valid
func (p CostingPolicy) IsValid() bool {
	return p == CostingLastPurchase || p == CostingMovingAverage
}

// String returns the string representation of the policy
func (p CostingPolicy) String() string {
	return string(p)
}

// RecordPurchase registers a purchase against the material: stock goes up,
// the cumulative purchase totals grow, and the unit cost for future
// consumption is set according to the costing policy.
func (m *RawMaterial) RecordPurchase(qty Decimal, rateBase, rateSecondary Money, policy CostingPolicy) error {
	if !qty.IsPositive() {
		return NewValidationError("quantity", "must be positive")
	}
	if !policy.IsValid() {
		return NewValidationError("costingPolicy", "unknown policy "+string(policy))
	}

	valueBase, err := rateBase.Multiply(qty)
	if err != nil {
		return err
	}
	valueSecondary, err := rateSecondary.Multiply(qty)
	if err != nil {
		return err
	}

	totalBase, err := m.TotalValuePurchasedBase.Add(valueBase)
	if err != nil {
		return err
	}
	totalSecondary, err := m.TotalValuePurchasedSecondary.Add(valueSecondary)
	if err != nil {
		return err
	}

	if err := m.Increase(qty); err != nil {
		return err
	}
	m.TotalQuantityPurchased = m.TotalQuantityPurchased.Add(qty)
	m.TotalValuePurchasedBase = totalBase
	m.TotalValuePurchasedSecondary = totalSecondary

	switch policy {
	case CostingLastPurchase:
		m.UnitCostBase = rateBase
		m.UnitCostSecondary = rateSecondary
	case CostingMovingAverage:
		avgBase, err := totalBase.Divide(m.TotalQuantityPurchased)
		if err != nil {
			return err
		}
		avgSecondary, err := totalSecondary.Divide(m.TotalQuantityPurchased)
		if err != nil {
			return err
		}
		m.UnitCostBase = avgBase
		m.UnitCostSecondary = avgSecondary
	}

	m.UpdatedAt = time.Now().UTC()
	return nil
}

// AverageUnitCost returns the historical weighted-average purchase cost for
// the requested currency role, regardless of the active costing policy. Used
// for reporting; returns zero money when nothing was ever purchased.
func (m *RawMaterial) AverageUnitCost(role CurrencyRole) (Money, error) {
	total := m.TotalValuePurchasedBase
	if role == CurrencySecondary {
		total = m.TotalValuePurchasedSecondary
	}
	if m.TotalQuantityPurchased.IsZero() {
		return ZeroMoney(total.Currency()), nil
	}
	return total.Divide(m.TotalQuantityPurchased)
}

// ConsumptionCost prices a quantity leaving the store at the material's
// current unit cost for the requested currency role.
func (m *RawMaterial) ConsumptionCost(qty Decimal, role CurrencyRole) (Money, error) {
	unitCost := m.UnitCostBase
	if role == CurrencySecondary {
		unitCost = m.UnitCostSecondary
	}
	return unitCost.Multiply(qty)
}
