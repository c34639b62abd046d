package domain

import (
	"time"
)

// Packaging geometry: eggs go on trays, trays go in cartons.
const (
	EggsPerTray    = 30
	TraysPerCarton = 12
)

// PackagingConsumption reports the whole units actually consumed.
type PackagingConsumption struct {
	Cartons int64 `json:"cartons"`
	Trays   int64 `json:"trays"`
}

// PackagingStock holds the carton and tray counts as one aggregate so that a
// sale consuming both either gets both or neither.
type PackagingStock struct {
	StockID            string `bson:"stockId" json:"stockId"`
	Cartons            int64  `bson:"cartons" json:"cartons"`
	Trays              int64  `bson:"trays" json:"trays"`
	CartonThreshold    int64  `bson:"cartonThreshold" json:"cartonThreshold"`
	TrayThreshold      int64  `bson:"trayThreshold" json:"trayThreshold"`
	UnitCostCartonBase Money  `bson:"unitCostCartonBase" json:"unitCostCartonBase"`
	UnitCostTrayBase   Money  `bson:"unitCostTrayBase" json:"unitCostTrayBase"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// PackagingStockID is the single packaging stock document the business keeps.
const PackagingStockID = "PACKAGING-STOCK"

// NewPackagingStock creates the packaging aggregate with empty stock.
func NewPackagingStock(baseCurrency string) *PackagingStock {
	now := time.Now().UTC()
	return &PackagingStock{
		StockID:            PackagingStockID,
		UnitCostCartonBase: ZeroMoney(baseCurrency),
		UnitCostTrayBase:   ZeroMoney(baseCurrency),
		CreatedAt:          now,
		UpdatedAt:          now,
	}
}

// PackagingForEggs derives the fractional carton and tray needs for an egg
// quantity. The caller passes these to Consume, which rounds up.
func PackagingForEggs(eggCount int64) (cartonsNeeded, traysNeeded Decimal) {
	eggs := DecimalFromInt(eggCount)
	traysNeeded, _ = eggs.Div(DecimalFromInt(EggsPerTray))
	cartonsNeeded, _ = traysNeeded.Div(DecimalFromInt(TraysPerCarton))
	return cartonsNeeded, traysNeeded
}

// Consume deducts packaging for a sale. Fractional needs round up: a partial
// carton still consumes a full carton. Both stocks are verified before either
// is touched, and a failure reports every shortfall with needed-vs-available
// detail.
func (p *PackagingStock) Consume(cartonsNeeded, traysNeeded Decimal) (PackagingConsumption, error) {
	if cartonsNeeded.IsNegative() || traysNeeded.IsNegative() {
		return PackagingConsumption{}, NewValidationError("packaging", "needs cannot be negative")
	}

	cartons := cartonsNeeded.Ceil()
	trays := traysNeeded.Ceil()

	var shortfalls []PackagingShortfall
	if cartons > p.Cartons {
		shortfalls = append(shortfalls, PackagingShortfall{Item: "cartons", Needed: cartons, Available: p.Cartons})
	}
	if trays > p.Trays {
		shortfalls = append(shortfalls, PackagingShortfall{Item: "trays", Needed: trays, Available: p.Trays})
	}
	if len(shortfalls) > 0 {
		return PackagingConsumption{}, &InsufficientPackagingError{Shortfalls: shortfalls}
	}

	p.Cartons -= cartons
	p.Trays -= trays
	p.UpdatedAt = time.Now().UTC()

	return PackagingConsumption{Cartons: cartons, Trays: trays}, nil
}

// Replenish adds whole packaging units to stock. Non-zero unit costs replace
// the current per-carton and per-tray costs, last rate wins; zero costs keep
// the previous ones.
func (p *PackagingStock) Replenish(cartons, trays int64, unitCostCarton, unitCostTray Money) error {
	if cartons < 0 || trays < 0 {
		return NewValidationError("packaging", "replenishment cannot be negative")
	}
	p.Cartons += cartons
	p.Trays += trays
	if !unitCostCarton.IsZero() {
		p.UnitCostCartonBase = unitCostCarton
	}
	if !unitCostTray.IsZero() {
		p.UnitCostTrayBase = unitCostTray
	}
	p.UpdatedAt = time.Now().UTC()
	return nil
}

// IsLowStock reports whether either packaging unit is at or below threshold.
func (p *PackagingStock) IsLowStock() bool {
	return (p.CartonThreshold > 0 && p.Cartons <= p.CartonThreshold) ||
		(p.TrayThreshold > 0 && p.Trays <= p.TrayThreshold)
}
