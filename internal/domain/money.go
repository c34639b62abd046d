package domain

import (
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Money represents a monetary value with currency.
// The amount is an exact decimal: the business runs two currencies side by
// side with fractional exchange rates, so integer minor units do not work.
type Money struct {
	amount   Decimal
	currency string // ISO 4217 currency code (USD, SYP, etc.)
}

// Errors
var (
	ErrInvalidCurrency  = errors.New("invalid currency code")
	ErrCurrencyMismatch = errors.New("currency mismatch")
	ErrNegativeMoney    = errors.New("money amount cannot be negative")
)

// NewMoney creates a new Money value object. Amounts are non-negative;
// direction is expressed by the debit/credit side an amount lands on.
func NewMoney(amount Decimal, currency string) (Money, error) {
	if amount.IsNegative() {
		return Money{}, ErrNegativeMoney
	}
	if len(currency) != 3 {
		return Money{}, ErrInvalidCurrency
	}
	return Money{amount: amount, currency: currency}, nil
}

// MoneyFromString parses an amount string into Money.
func MoneyFromString(amount, currency string) (Money, error) {
	d, err := DecimalFromString(amount)
	if err != nil {
		return Money{}, fmt.Errorf("invalid amount %q: %w", amount, err)
	}
	return NewMoney(d, currency)
}

// ZeroMoney creates a zero money value
func ZeroMoney(currency string) Money {
	return Money{amount: ZeroDecimal(), currency: currency}
}

// Amount returns the decimal amount
func (m Money) Amount() Decimal {
	return m.amount
}

// Currency returns the ISO 4217 currency code
func (m Money) Currency() string {
	return m.currency
}

// IsZero returns true if the amount is zero
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// IsPositive returns true if the amount is greater than zero
func (m Money) IsPositive() bool {
	return m.amount.IsPositive()
}

// Add adds two money values (must have same currency)
func (m Money) Add(other Money) (Money, error) {
	if m.currency != other.currency {
		return Money{}, ErrCurrencyMismatch
	}
	return Money{amount: m.amount.Add(other.amount), currency: m.currency}, nil
}

// Subtract subtracts other from this money (must have same currency).
// The result may not go negative; stock values never do.
func (m Money) Subtract(other Money) (Money, error) {
	if m.currency != other.currency {
		return Money{}, ErrCurrencyMismatch
	}
	if m.amount.LessThan(other.amount) {
		return Money{}, ErrNegativeMoney
	}
	return Money{amount: m.amount.Sub(other.amount), currency: m.currency}, nil
}

// Multiply scales the amount by a quantity.
func (m Money) Multiply(qty Decimal) (Money, error) {
	if qty.IsNegative() {
		return Money{}, ErrNegativeMoney
	}
	return Money{amount: m.amount.Mul(qty), currency: m.currency}, nil
}

// Divide divides the amount by a divisor (for weighted average calculations)
func (m Money) Divide(divisor Decimal) (Money, error) {
	q, err := m.amount.Div(divisor)
	if err != nil {
		return Money{}, err
	}
	if q.IsNegative() {
		return Money{}, ErrNegativeMoney
	}
	return Money{amount: q, currency: m.currency}, nil
}

// Equals checks if two money values are equal (amount and currency)
func (m Money) Equals(other Money) bool {
	return m.amount.Equal(other.amount) && m.currency == other.currency
}

// GreaterThan checks if this money is greater than other
func (m Money) GreaterThan(other Money) (bool, error) {
	if m.currency != other.currency {
		return false, ErrCurrencyMismatch
	}
	return m.amount.GreaterThan(other.amount), nil
}

// LessThan checks if this money is less than other
func (m Money) LessThan(other Money) (bool, error) {
	if m.currency != other.currency {
		return false, ErrCurrencyMismatch
	}
	return m.amount.LessThan(other.amount), nil
}

// String returns a string representation of the money
func (m Money) String() string {
	return fmt.Sprintf("%s %s", m.amount.String(), m.currency)
}

// MarshalBSONValue implements bson.ValueMarshaler
func (m Money) MarshalBSONValue() (bsontype.Type, []byte, error) {
	doc := primitive.D{
		{Key: "amount", Value: m.amount.String()},
		{Key: "currency", Value: m.currency},
	}
	return bson.MarshalValue(doc)
}

// UnmarshalBSONValue implements bson.ValueUnmarshaler
func (m *Money) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	var doc primitive.D
	if err := bson.UnmarshalValue(t, data, &doc); err != nil {
		return err
	}

	docMap := doc.Map()
	if amount, ok := docMap["amount"].(string); ok {
		parsed, err := DecimalFromString(amount)
		if err != nil {
			return err
		}
		m.amount = parsed
	}
	if currency, ok := docMap["currency"].(string); ok {
		m.currency = currency
	}
	return nil
}
