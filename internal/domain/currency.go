package domain

// CurrencyRole selects which side of the bi-currency ledger an amount or
// query refers to.
type CurrencyRole string

const (
	CurrencyBase      CurrencyRole = "base"
	CurrencySecondary CurrencyRole = "secondary"
)

// IsValid checks if the currency role is valid
func (r CurrencyRole) IsValid() bool {
	return r == CurrencyBase || r == CurrencySecondary
}

// String returns the string representation of the role
func (r CurrencyRole) String() string {
	return string(r)
}

// CurrencyConverter converts between the base and secondary currency using a
// single shared exchange rate. It is pure computation over values: one unit
// of base currency equals Rate units of secondary currency.
type CurrencyConverter struct {
	base      string
	secondary string
	rate      Decimal
}

// NewCurrencyConverter creates a converter. The rate must be strictly positive.
func NewCurrencyConverter(base, secondary string, rate Decimal) (CurrencyConverter, error) {
	if len(base) != 3 || len(secondary) != 3 {
		return CurrencyConverter{}, ErrInvalidCurrency
	}
	if !rate.IsPositive() {
		return CurrencyConverter{}, ErrInvalidExchangeRate
	}
	return CurrencyConverter{base: base, secondary: secondary, rate: rate}, nil
}

// Base returns the base currency code.
func (c CurrencyConverter) Base() string {
	return c.base
}

// Secondary returns the secondary currency code.
func (c CurrencyConverter) Secondary() string {
	return c.secondary
}

// Rate returns the exchange rate in use.
func (c CurrencyConverter) Rate() Decimal {
	return c.rate
}

// ToSecondary converts a base-currency amount to the secondary currency.
func (c CurrencyConverter) ToSecondary(m Money) (Money, error) {
	if m.Currency() != c.base {
		return Money{}, ErrCurrencyMismatch
	}
	return NewMoney(m.Amount().Mul(c.rate), c.secondary)
}

// ToBase converts a secondary-currency amount back to the base currency.
func (c CurrencyConverter) ToBase(m Money) (Money, error) {
	if m.Currency() != c.secondary {
		return Money{}, ErrCurrencyMismatch
	}
	amount, err := m.Amount().Div(c.rate)
	if err != nil {
		return Money{}, err
	}
	return NewMoney(amount, c.base)
}
