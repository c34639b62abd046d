package application

import (
	"time"

	"github.com/agrifarm-platform/finance-service/internal/domain"
)

// PaymentMethod selects how a sale, purchase or expense is settled.
type PaymentMethod string

const (
	// PaymentCash settles immediately: the coordinator posts the automatic
	// counter entry in the same transaction, leaving the party balance flat.
	PaymentCash PaymentMethod = "CASH"

	// PaymentCredit leaves the amount on the party balance.
	PaymentCredit PaymentMethod = "CREDIT"
)

// IsValid checks if the payment method is valid
func (m PaymentMethod) IsValid() bool {
	return m == PaymentCash || m == PaymentCredit
}

// PaymentDirection distinguishes money coming in from money going out.
type PaymentDirection string

const (
	// PaymentReceipt is money received from a party (credit on their ledger).
	PaymentReceipt PaymentDirection = "RECEIPT"

	// PaymentDisbursement is money paid out to a party (debit on their ledger).
	PaymentDisbursement PaymentDirection = "DISBURSEMENT"
)

// IsValid checks if the payment direction is valid
func (d PaymentDirection) IsValid() bool {
	return d == PaymentReceipt || d == PaymentDisbursement
}

// PostEntryCommand represents the command to post one ledger entry
type PostEntryCommand struct {
	TransactionID   domain.LedgerTransactionID
	PartyID         string
	Date            time.Time
	Description     string
	DebitBase       domain.Decimal
	CreditBase      domain.Decimal
	DebitSecondary  domain.Decimal
	CreditSecondary domain.Decimal
	ExchangeRate    domain.Decimal
	ReferenceType   string
	ReferenceID     string
	CreatedBy       string
}

// RecordEggSaleCommand represents the command to sell eggs with packaging
type RecordEggSaleCommand struct {
	PartyID      string
	Date         time.Time
	Quantity     int64
	UnitPrice    domain.Decimal
	ExchangeRate domain.Decimal
	Method       PaymentMethod
	Notes        string
	CreatedBy    string
}

// RecordFeedSaleCommand represents the command to sell finished feed
type RecordFeedSaleCommand struct {
	PartyID      string
	FeedID       string
	Date         time.Time
	QuantityKg   domain.Decimal
	UnitPrice    domain.Decimal
	ExchangeRate domain.Decimal
	Method       PaymentMethod
	Notes        string
	CreatedBy    string
}

// RecordPurchaseCommand represents the command to purchase raw material
type RecordPurchaseCommand struct {
	PartyID      string
	MaterialID   string
	Date         time.Time
	Quantity     domain.Decimal
	UnitCost     domain.Decimal
	ExchangeRate domain.Decimal
	Method       PaymentMethod
	Notes        string
	CreatedBy    string
}

// RecordExpenseCommand represents the command to record a general expense
type RecordExpenseCommand struct {
	PartyID      string
	Date         time.Time
	Amount       domain.Decimal
	ExchangeRate domain.Decimal
	Category     string
	Method       PaymentMethod
	Notes        string
	CreatedBy    string
}

// RecordPaymentCommand represents the command to record a standalone payment
type RecordPaymentCommand struct {
	PartyID      string
	Date         time.Time
	Amount       domain.Decimal
	ExchangeRate domain.Decimal
	Direction    PaymentDirection
	Notes        string
	CreatedBy    string
}

// ProduceFeedBatchCommand represents the command to produce a feed batch
type ProduceFeedBatchCommand struct {
	FormulaID  string
	FeedID     string
	QuantityKg domain.Decimal
	ProducedBy string
}

// RecordManualAdjustmentCommand represents an explicit admin correction entry
type RecordManualAdjustmentCommand struct {
	PartyID         string
	Date            time.Time
	Description     string
	DebitBase       domain.Decimal
	CreditBase      domain.Decimal
	DebitSecondary  domain.Decimal
	CreditSecondary domain.Decimal
	ExchangeRate    domain.Decimal
	CreatedBy       string
}

// CreatePartyCommand represents the command to register a party
type CreatePartyCommand struct {
	Name    string
	Kind    domain.PartyKind
	Phone   string
	Address string
}

// CreateMaterialCommand represents the command to register a raw material
type CreateMaterialCommand struct {
	Name              string
	Unit              string
	LowStockThreshold domain.Decimal
}

// CreateFeedCommand represents the command to register a finished feed
type CreateFeedCommand struct {
	Name              string
	LowStockThreshold domain.Decimal
}

// CreateFormulaCommand represents the command to register a feed formula
type CreateFormulaCommand struct {
	Name        string
	Ingredients []domain.FormulaIngredient
}

// AddEggLayCommand represents the command to record produced eggs. Unit
// costs are optional; zero keeps the grade's current cost.
type AddEggLayCommand struct {
	Grade             domain.EggGrade
	Count             int64
	UnitCostBase      domain.Decimal
	UnitCostSecondary domain.Decimal
}

// ReplenishPackagingCommand represents the command to add packaging stock.
// Unit costs are optional; zero keeps the current per-unit cost.
type ReplenishPackagingCommand struct {
	Cartons        int64
	Trays          int64
	UnitCostCarton domain.Decimal
	UnitCostTray   domain.Decimal
}
