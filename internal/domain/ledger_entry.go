package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// LedgerEntryID represents a unique identifier for a ledger entry
type LedgerEntryID struct {
	value string
}

// NewLedgerEntryID creates a new unique ledger entry ID
func NewLedgerEntryID() LedgerEntryID {
	timestamp := time.Now().UTC().Format("20060102150405")
	return LedgerEntryID{
		value: fmt.Sprintf("LE-%s-%s", timestamp, uuid.New().String()[:8]),
	}
}

// ParseLedgerEntryID parses a string into a LedgerEntryID
func ParseLedgerEntryID(s string) (LedgerEntryID, error) {
	if s == "" {
		return LedgerEntryID{}, errors.New("ledger entry ID cannot be empty")
	}
	return LedgerEntryID{value: s}, nil
}

// String returns the string representation
func (id LedgerEntryID) String() string {
	return id.value
}

// MarshalBSONValue implements bson.ValueMarshaler
func (id LedgerEntryID) MarshalBSONValue() (bsontype.Type, []byte, error) {
	return bson.MarshalValue(id.value)
}

// UnmarshalBSONValue implements bson.ValueUnmarshaler
func (id *LedgerEntryID) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	return bson.UnmarshalValue(t, data, &id.value)
}

// LedgerTransactionID groups the entries posted by one business operation
// (a sale plus its automatic cash payment, the reversal pair, etc.).
type LedgerTransactionID struct {
	value string
}

// NewLedgerTransactionID creates a new unique transaction ID
func NewLedgerTransactionID() LedgerTransactionID {
	timestamp := time.Now().UTC().Format("20060102150405")
	return LedgerTransactionID{
		value: fmt.Sprintf("LTXN-%s-%s", timestamp, uuid.New().String()[:8]),
	}
}

// ParseLedgerTransactionID parses a string into a LedgerTransactionID
func ParseLedgerTransactionID(s string) (LedgerTransactionID, error) {
	if s == "" {
		return LedgerTransactionID{}, errors.New("ledger transaction ID cannot be empty")
	}
	return LedgerTransactionID{value: s}, nil
}

// String returns the string representation
func (id LedgerTransactionID) String() string {
	return id.value
}

// MarshalBSONValue implements bson.ValueMarshaler
func (id LedgerTransactionID) MarshalBSONValue() (bsontype.Type, []byte, error) {
	return bson.MarshalValue(id.value)
}

// UnmarshalBSONValue implements bson.ValueUnmarshaler
func (id *LedgerTransactionID) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	return bson.UnmarshalValue(t, data, &id.value)
}

// EntryAmounts carries the four amount legs of one ledger entry. For each
// currency at most one side may be non-zero; at least one of the four must
// be non-zero.
type EntryAmounts struct {
	DebitBase       Money
	CreditBase      Money
	DebitSecondary  Money
	CreditSecondary Money
}

// LedgerEntry is one immutable debit/credit record tied to a party and a
// business event. Entries are only ever appended; corrections go through
// reversal entries, never mutation of history.
type LedgerEntry struct {
	EntryID         LedgerEntryID       `bson:"entryId" json:"entryId"`
	TransactionID   LedgerTransactionID `bson:"transactionId" json:"transactionId"`
	PartyID         string              `bson:"partyId" json:"partyId"`
	Date            time.Time           `bson:"date" json:"date"`
	Description     string              `bson:"description" json:"description"`
	DebitBase       Money               `bson:"debitBase" json:"debitBase"`
	CreditBase      Money               `bson:"creditBase" json:"creditBase"`
	DebitSecondary  Money               `bson:"debitSecondary" json:"debitSecondary"`
	CreditSecondary Money               `bson:"creditSecondary" json:"creditSecondary"`
	// ExchangeRate records the rate used at posting time; zero means no rate
	// was involved (single-currency entry).
	ExchangeRate  Decimal   `bson:"exchangeRate" json:"exchangeRate"`
	ReferenceType string    `bson:"referenceType" json:"referenceType"` // "sale", "purchase", "expense", "payment", "adjustment", "reversal"
	ReferenceID   string    `bson:"referenceId" json:"referenceId"`     // back reference for audit/display only
	CreatedAt     time.Time `bson:"createdAt" json:"createdAt"`
	CreatedBy     string    `bson:"createdBy" json:"createdBy"`
}

// NewLedgerEntry creates a well-formed immutable entry.
func NewLedgerEntry(
	transactionID LedgerTransactionID,
	partyID string,
	date time.Time,
	description string,
	amounts EntryAmounts,
	exchangeRate Decimal,
	referenceType, referenceID, createdBy string,
) (LedgerEntry, error) {
	if partyID == "" {
		return LedgerEntry{}, NewValidationError("partyId", "is required")
	}
	if strings.TrimSpace(description) == "" {
		return LedgerEntry{}, NewValidationError("description", "is required")
	}
	if !amounts.DebitBase.IsZero() && !amounts.CreditBase.IsZero() {
		return LedgerEntry{}, NewValidationError("amounts", "base currency cannot carry both debit and credit")
	}
	if !amounts.DebitSecondary.IsZero() && !amounts.CreditSecondary.IsZero() {
		return LedgerEntry{}, NewValidationError("amounts", "secondary currency cannot carry both debit and credit")
	}
	if amounts.DebitBase.IsZero() && amounts.CreditBase.IsZero() &&
		amounts.DebitSecondary.IsZero() && amounts.CreditSecondary.IsZero() {
		return LedgerEntry{}, NewValidationError("amounts", "at least one amount must be non-zero")
	}
	if exchangeRate.IsNegative() {
		return LedgerEntry{}, ErrInvalidExchangeRate
	}

	return LedgerEntry{
		EntryID:         NewLedgerEntryID(),
		TransactionID:   transactionID,
		PartyID:         partyID,
		Date:            date,
		Description:     description,
		DebitBase:       amounts.DebitBase,
		CreditBase:      amounts.CreditBase,
		DebitSecondary:  amounts.DebitSecondary,
		CreditSecondary: amounts.CreditSecondary,
		ExchangeRate:    exchangeRate,
		ReferenceType:   referenceType,
		ReferenceID:     referenceID,
		CreatedAt:       time.Now().UTC(),
		CreatedBy:       createdBy,
	}, nil
}

// NewReversalEntry builds the compensating entry for an existing one: every
// leg swaps sides, leaving the original untouched. This is the only
// correction mechanism the ledger offers.
func NewReversalEntry(original LedgerEntry, reason, createdBy string) (LedgerEntry, error) {
	if strings.TrimSpace(reason) == "" {
		return LedgerEntry{}, NewValidationError("reason", "is required")
	}

	return NewLedgerEntry(
		NewLedgerTransactionID(),
		original.PartyID,
		time.Now().UTC(),
		fmt.Sprintf("Reversal of %s: %s", original.EntryID.String(), reason),
		EntryAmounts{
			DebitBase:       original.CreditBase,
			CreditBase:      original.DebitBase,
			DebitSecondary:  original.CreditSecondary,
			CreditSecondary: original.DebitSecondary,
		},
		original.ExchangeRate,
		"reversal",
		original.EntryID.String(),
		createdBy,
	)
}

// Debit returns the debit amount for the requested currency role.
func (e LedgerEntry) Debit(role CurrencyRole) Money {
	if role == CurrencySecondary {
		return e.DebitSecondary
	}
	return e.DebitBase
}

// Credit returns the credit amount for the requested currency role.
func (e LedgerEntry) Credit(role CurrencyRole) Money {
	if role == CurrencySecondary {
		return e.CreditSecondary
	}
	return e.CreditBase
}

// Delta returns debit minus credit for the requested currency role. Positive
// means the party owes the business.
func (e LedgerEntry) Delta(role CurrencyRole) Decimal {
	return e.Debit(role).Amount().Sub(e.Credit(role).Amount())
}

// IsReversal reports whether this entry compensates a previous one.
func (e LedgerEntry) IsReversal() bool {
	return e.ReferenceType == "reversal"
}
