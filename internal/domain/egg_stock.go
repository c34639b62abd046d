package domain

import (
	"fmt"
	"time"
)

// EggGrade identifies one of the three egg sizes the business trades.
type EggGrade string

const (
	EggLarge  EggGrade = "LARGE"
	EggMedium EggGrade = "MEDIUM"
	EggSmall  EggGrade = "SMALL"
)

// IsValid checks if the egg grade is valid
func (g EggGrade) IsValid() bool {
	switch g {
	case EggLarge, EggMedium, EggSmall:
		return true
	default:
		return false
	}
}

// String returns the string representation of the grade
func (g EggGrade) String() string {
	return string(g)
}

// EggGradeLevel is the stock state of one grade. Eggs are counted in whole
// units.
type EggGradeLevel struct {
	Count             int64 `bson:"count" json:"count"`
	UnitCostBase      Money `bson:"unitCostBase" json:"unitCostBase"`
	UnitCostSecondary Money `bson:"unitCostSecondary" json:"unitCostSecondary"`
	LowStockThreshold int64 `bson:"lowStockThreshold" json:"lowStockThreshold"`
}

// IsLowStock reports whether the grade has fallen to or below its threshold.
func (l EggGradeLevel) IsLowStock() bool {
	return l.LowStockThreshold > 0 && l.Count <= l.LowStockThreshold
}

// EggConsumption reports how many eggs each grade contributed to a sale.
type EggConsumption struct {
	Large  int64 `json:"large"`
	Medium int64 `json:"medium"`
	Small  int64 `json:"small"`
}

// Total returns the total eggs consumed across grades.
func (c EggConsumption) Total() int64 {
	return c.Large + c.Medium + c.Small
}

// EggStock holds the three graded egg counts as one aggregate, so a sale that
// spans grades is a single check-then-act mutation.
type EggStock struct {
	StockID string        `bson:"stockId" json:"stockId"`
	Large   EggGradeLevel `bson:"large" json:"large"`
	Medium  EggGradeLevel `bson:"medium" json:"medium"`
	Small   EggGradeLevel `bson:"small" json:"small"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// EggStockID is the single egg stock document the business keeps.
const EggStockID = "EGG-STOCK"

// NewEggStock creates the egg stock aggregate with all grades empty.
func NewEggStock(baseCurrency, secondaryCurrency string) *EggStock {
	level := EggGradeLevel{
		UnitCostBase:      ZeroMoney(baseCurrency),
		UnitCostSecondary: ZeroMoney(secondaryCurrency),
	}
	now := time.Now().UTC()
	return &EggStock{
		StockID:   EggStockID,
		Large:     level,
		Medium:    level,
		Small:     level,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// TotalAvailable returns the total eggs on hand across all grades.
func (s *EggStock) TotalAvailable() int64 {
	return s.Large.Count + s.Medium.Count + s.Small.Count
}

// Consume deducts the requested quantity across grades in the fixed
// precedence Large, then Medium, then Small. Largest first is the stated
// sales policy, not a stock-balancing heuristic. The availability check runs
// before any deduction, so a shortfall mutates nothing.
func (s *EggStock) Consume(requested int64) (EggConsumption, error) {
	if requested <= 0 {
		return EggConsumption{}, NewValidationError("quantity", "must be positive")
	}

	available := s.TotalAvailable()
	if requested > available {
		return EggConsumption{}, &InsufficientStockError{
			Entity:    "eggs",
			Requested: DecimalFromInt(requested),
			Available: DecimalFromInt(available),
		}
	}

	consumption := EggConsumption{}
	remaining := requested

	consumption.Large = min(s.Large.Count, remaining)
	remaining -= consumption.Large

	consumption.Medium = min(s.Medium.Count, remaining)
	remaining -= consumption.Medium

	consumption.Small = min(s.Small.Count, remaining)
	remaining -= consumption.Small

	if remaining != 0 {
		// Unreachable given the precheck; kept as an invariant guard.
		return EggConsumption{}, fmt.Errorf("egg consumption left %d unallocated", remaining)
	}

	s.Large.Count -= consumption.Large
	s.Medium.Count -= consumption.Medium
	s.Small.Count -= consumption.Small
	s.UpdatedAt = time.Now().UTC()

	return consumption, nil
}

// AddLay records produced or purchased eggs into one grade. A non-zero unit
// cost becomes the grade's current cost, last rate wins. A zero cost keeps
// whatever the grade already carries, so routine lays need no cost estimate.
func (s *EggStock) AddLay(grade EggGrade, count int64, unitCostBase, unitCostSecondary Money) error {
	if !grade.IsValid() {
		return NewValidationError("grade", fmt.Sprintf("unknown egg grade %q", grade))
	}
	if count <= 0 {
		return NewValidationError("count", "must be positive")
	}

	level := s.level(grade)
	level.Count += count
	if !unitCostBase.IsZero() {
		level.UnitCostBase = unitCostBase
	}
	if !unitCostSecondary.IsZero() {
		level.UnitCostSecondary = unitCostSecondary
	}
	s.UpdatedAt = time.Now().UTC()
	return nil
}

// Grade returns the level for the requested grade.
func (s *EggStock) Grade(grade EggGrade) EggGradeLevel {
	return *s.level(grade)
}

func (s *EggStock) level(grade EggGrade) *EggGradeLevel {
	switch grade {
	case EggLarge:
		return &s.Large
	case EggMedium:
		return &s.Medium
	default:
		return &s.Small
	}
}
