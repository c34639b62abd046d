package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Domain errors
var (
	// ErrValidation is the sentinel matched by all input validation failures
	ErrValidation = errors.New("validation failed")

	// ErrInsufficientStock is the sentinel matched by all stock shortfalls
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrInvalidExchangeRate is returned when an exchange rate is zero or negative
	ErrInvalidExchangeRate = errors.New("exchange rate must be positive")

	// ErrPartyNotFound is returned when a party cannot be found
	ErrPartyNotFound = errors.New("party not found")

	// ErrMaterialNotFound is returned when a raw material cannot be found
	ErrMaterialNotFound = errors.New("raw material not found")

	// ErrFeedNotFound is returned when a finished feed record cannot be found
	ErrFeedNotFound = errors.New("finished feed not found")

	// ErrEggStockNotFound is returned when the egg stock record cannot be found
	ErrEggStockNotFound = errors.New("egg stock not found")

	// ErrPackagingNotFound is returned when the packaging stock record cannot be found
	ErrPackagingNotFound = errors.New("packaging stock not found")

	// ErrFormulaNotFound is returned when a feed formula cannot be found
	ErrFormulaNotFound = errors.New("feed formula not found")

	// ErrBatchNotFound is returned when a feed batch cannot be found
	ErrBatchNotFound = errors.New("feed batch not found")

	// ErrEntryNotFound is returned when a ledger entry cannot be found
	ErrEntryNotFound = errors.New("ledger entry not found")

	// ErrPartyHasHistory is returned when deleting a party that ledger entries
	// still reference
	ErrPartyHasHistory = errors.New("party has ledger history")

	// ErrPersistence wraps store failures surfaced by repositories
	ErrPersistence = errors.New("persistence failure")
)

// ValidationError reports a rejected input field. It matches ErrValidation
// under errors.Is.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// NewValidationError creates a ValidationError for a field.
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// InsufficientStockError reports a stock shortfall with requested-vs-available
// detail. It matches ErrInsufficientStock under errors.Is.
type InsufficientStockError struct {
	Entity    string
	Requested Decimal
	Available Decimal
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s: requested %s, available %s",
		e.Entity, e.Requested.String(), e.Available.String())
}

func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}

// PackagingShortfall describes one insufficient packaging unit.
type PackagingShortfall struct {
	Item      string
	Needed    int64
	Available int64
}

// InsufficientPackagingError reports every packaging shortfall at once, so the
// caller learns about cartons and trays in a single failure. Matches
// ErrInsufficientStock under errors.Is.
type InsufficientPackagingError struct {
	Shortfalls []PackagingShortfall
}

func (e *InsufficientPackagingError) Error() string {
	parts := make([]string, len(e.Shortfalls))
	for i, s := range e.Shortfalls {
		parts[i] = fmt.Sprintf("%s: needed %d, available %d", s.Item, s.Needed, s.Available)
	}
	return "insufficient packaging: " + strings.Join(parts, "; ")
}

func (e *InsufficientPackagingError) Is(target error) bool {
	return target == ErrInsufficientStock
}

// FormulaInvalidError reports a formula whose ingredient percentages do not
// total 100%. Matches ErrValidation under errors.Is.
type FormulaInvalidError struct {
	FormulaID string
	Total     Decimal
}

func (e *FormulaInvalidError) Error() string {
	return fmt.Sprintf("formula %s ingredient percentages total %s%%, expected 100%%",
		e.FormulaID, e.Total.String())
}

func (e *FormulaInvalidError) Is(target error) bool {
	return target == ErrValidation
}
