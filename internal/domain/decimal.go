package domain

import (
	"errors"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// Decimal is an arbitrary-precision decimal value object used for stock
// quantities, percentages and exchange rates. Amounts of money use Money,
// which carries a currency alongside the figure.
type Decimal struct {
	value decimal.Decimal
}

var ErrDecimalDivisionByZero = errors.New("division by zero")

// NewDecimal wraps a shopspring decimal.
func NewDecimal(d decimal.Decimal) Decimal {
	return Decimal{value: d}
}

// DecimalFromString parses a decimal from its string form.
func DecimalFromString(s string) (Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Decimal{}, err
	}
	return Decimal{value: d}, nil
}

// DecimalFromInt builds a decimal from an integer count.
func DecimalFromInt(n int64) Decimal {
	return Decimal{value: decimal.NewFromInt(n)}
}

// ZeroDecimal returns the zero value.
func ZeroDecimal() Decimal {
	return Decimal{}
}

func (d Decimal) Add(other Decimal) Decimal {
	return Decimal{value: d.value.Add(other.value)}
}

func (d Decimal) Sub(other Decimal) Decimal {
	return Decimal{value: d.value.Sub(other.value)}
}

func (d Decimal) Mul(other Decimal) Decimal {
	return Decimal{value: d.value.Mul(other.value)}
}

// Div divides by other, failing on a zero divisor.
func (d Decimal) Div(other Decimal) (Decimal, error) {
	if other.value.IsZero() {
		return Decimal{}, ErrDecimalDivisionByZero
	}
	return Decimal{value: d.value.Div(other.value)}, nil
}

func (d Decimal) Neg() Decimal {
	return Decimal{value: d.value.Neg()}
}

func (d Decimal) Abs() Decimal {
	return Decimal{value: d.value.Abs()}
}

// Cmp returns -1, 0 or 1 comparing d against other.
func (d Decimal) Cmp(other Decimal) int {
	return d.value.Cmp(other.value)
}

func (d Decimal) Equal(other Decimal) bool {
	return d.value.Equal(other.value)
}

func (d Decimal) LessThan(other Decimal) bool {
	return d.value.LessThan(other.value)
}

func (d Decimal) GreaterThan(other Decimal) bool {
	return d.value.GreaterThan(other.value)
}

func (d Decimal) IsZero() bool {
	return d.value.IsZero()
}

func (d Decimal) IsNegative() bool {
	return d.value.IsNegative()
}

func (d Decimal) IsPositive() bool {
	return d.value.IsPositive()
}

// Ceil rounds up to the next whole unit. Partial packaging units are always
// consumed whole, so rounding here is toward positive infinity.
func (d Decimal) Ceil() int64 {
	return d.value.Ceil().IntPart()
}

// Round rounds half away from zero to the given number of fractional digits.
func (d Decimal) Round(places int32) Decimal {
	return Decimal{value: d.value.Round(places)}
}

func (d Decimal) String() string {
	return d.value.String()
}

// Unwrap exposes the underlying shopspring decimal for interop.
func (d Decimal) Unwrap() decimal.Decimal {
	return d.value
}

// MarshalBSONValue implements bson.ValueMarshaler. Values are stored as
// strings so that precision survives the round trip.
func (d Decimal) MarshalBSONValue() (bsontype.Type, []byte, error) {
	return bson.MarshalValue(d.value.String())
}

// UnmarshalBSONValue implements bson.ValueUnmarshaler
func (d *Decimal) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	var s string
	if err := bson.UnmarshalValue(t, data, &s); err != nil {
		return err
	}
	parsed, err := decimal.NewFromString(s)
	if err != nil {
		return err
	}
	d.value = parsed
	return nil
}

// MarshalJSON implements json.Marshaler
func (d Decimal) MarshalJSON() ([]byte, error) {
	return d.value.MarshalJSON()
}

// UnmarshalJSON implements json.Unmarshaler
func (d *Decimal) UnmarshalJSON(data []byte) error {
	return d.value.UnmarshalJSON(data)
}
