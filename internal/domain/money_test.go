package domain

import (
	"testing"
)

// Helpers shared by the domain tests.
func dec(t *testing.T, s string) Decimal {
	t.Helper()
	d, err := DecimalFromString(s)
	if err != nil {
		t.Fatalf("bad decimal %q: %v", s, err)
	}
	return d
}

func money(t *testing.T, amount, currency string) Money {
	t.Helper()
	m, err := MoneyFromString(amount, currency)
	if err != nil {
		t.Fatalf("bad money %s %s: %v", amount, currency, err)
	}
	return m
}

func TestNewMoney(t *testing.T) {
	tests := []struct {
		name        string
		amount      string
		currency    string
		expectError bool
	}{
		{name: "valid amount", amount: "125.50", currency: "USD", expectError: false},
		{name: "zero amount", amount: "0", currency: "USD", expectError: false},
		{name: "negative amount", amount: "-1", currency: "USD", expectError: true},
		{name: "bad currency code", amount: "10", currency: "US", expectError: true},
		{name: "empty currency", amount: "10", currency: "", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := MoneyFromString(tt.amount, tt.currency)
			if tt.expectError && err == nil {
				t.Errorf("expected error, got nil")
			}
			if !tt.expectError && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestMoney_Arithmetic(t *testing.T) {
	a := money(t, "10.50", "USD")
	b := money(t, "4.25", "USD")

	sum, err := a.Add(b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sum.Amount().String() != "14.75" {
		t.Errorf("expected 14.75, got %s", sum.Amount().String())
	}

	diff, err := a.Subtract(b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff.Amount().String() != "6.25" {
		t.Errorf("expected 6.25, got %s", diff.Amount().String())
	}

	if _, err := b.Subtract(a); err == nil {
		t.Errorf("expected error subtracting below zero")
	}

	other := money(t, "1", "SYP")
	if _, err := a.Add(other); err != ErrCurrencyMismatch {
		t.Errorf("expected currency mismatch, got %v", err)
	}
}

func TestMoney_MultiplyDivide(t *testing.T) {
	unit := money(t, "3.20", "USD")

	total, err := unit.Multiply(dec(t, "12.5"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total.Amount().String() != "40" {
		t.Errorf("expected 40, got %s", total.Amount().String())
	}

	avg, err := total.Divide(dec(t, "12.5"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !avg.Equals(unit) {
		t.Errorf("expected %s back, got %s", unit, avg)
	}

	if _, err := total.Divide(ZeroDecimal()); err == nil {
		t.Errorf("expected division by zero error")
	}
}

func TestCurrencyConverter(t *testing.T) {
	tests := []struct {
		name        string
		rate        string
		expectError bool
	}{
		{name: "positive rate", rate: "13500", expectError: false},
		{name: "fractional rate", rate: "0.85", expectError: false},
		{name: "zero rate", rate: "0", expectError: true},
		{name: "negative rate", rate: "-2", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCurrencyConverter("USD", "SYP", dec(t, tt.rate))
			if tt.expectError && err == nil {
				t.Errorf("expected error, got nil")
			}
			if !tt.expectError && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestCurrencyConverter_RoundTrip(t *testing.T) {
	conv, err := NewCurrencyConverter("USD", "SYP", dec(t, "13500"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	base := money(t, "10", "USD")
	secondary, err := conv.ToSecondary(base)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if secondary.Amount().String() != "135000" {
		t.Errorf("expected 135000, got %s", secondary.Amount().String())
	}
	if secondary.Currency() != "SYP" {
		t.Errorf("expected SYP, got %s", secondary.Currency())
	}

	back, err := conv.ToBase(secondary)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !back.Equals(base) {
		t.Errorf("round trip changed the amount: %s -> %s", base, back)
	}

	if _, err := conv.ToSecondary(secondary); err != ErrCurrencyMismatch {
		t.Errorf("expected currency mismatch converting SYP as base, got %v", err)
	}
}
