package application

import (
	"github.com/agrifarm-platform/finance-service/internal/domain"
)

// TransactionResult is the common outcome of a coordinated operation: the
// transaction grouping ID and every ledger entry it posted.
type TransactionResult struct {
	TransactionID string               `json:"transactionId"`
	Entries       []domain.LedgerEntry `json:"entries"`
}

// EggSaleResult reports what an egg sale consumed and posted.
type EggSaleResult struct {
	TransactionResult
	Consumption    domain.EggConsumption       `json:"consumption"`
	Packaging      domain.PackagingConsumption `json:"packaging"`
	TotalBase      domain.Decimal              `json:"totalBase"`
	TotalSecondary domain.Decimal              `json:"totalSecondary"`
}

// FeedSaleResult reports what a feed sale consumed and posted.
type FeedSaleResult struct {
	TransactionResult
	TotalBase      domain.Decimal `json:"totalBase"`
	TotalSecondary domain.Decimal `json:"totalSecondary"`
}

// PurchaseResult reports the posted purchase and the material's updated cost.
type PurchaseResult struct {
	TransactionResult
	TotalBase      domain.Decimal `json:"totalBase"`
	TotalSecondary domain.Decimal `json:"totalSecondary"`
	UnitCostBase   domain.Money   `json:"unitCostBase"`
}

// BatchResult reports a produced batch and the feed stock it blended into.
type BatchResult struct {
	Batch *domain.FeedBatch    `json:"batch"`
	Feed  *domain.FinishedFeed `json:"feed"`
}
