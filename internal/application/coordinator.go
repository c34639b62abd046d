package application

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/agrifarm-platform/finance-service/internal/domain"
)

// TransactionCoordinator is the single writer for every business operation
// that touches stock and the ledger together. Each operation runs inside one
// unit of work: stock mutations first, ledger postings second, so a stock
// shortfall can never leave an orphaned entry. Observers are notified only
// after a successful commit.
type TransactionCoordinator struct {
	uow       domain.UnitOfWork
	ledger    *LedgerService
	materials domain.RawMaterialRepository
	feeds     domain.FinishedFeedRepository
	eggs      domain.EggStockRepository
	packaging domain.PackagingStockRepository
	formulas  domain.FormulaRepository
	batches   domain.FeedBatchRepository

	cache ReportCache
	audit AuditLog

	baseCurrency      string
	secondaryCurrency string
	costingPolicy     domain.CostingPolicy

	logger *zap.Logger
}

// NewTransactionCoordinator creates a TransactionCoordinator. The cache and
// audit observers may be nil.
func NewTransactionCoordinator(
	uow domain.UnitOfWork,
	ledger *LedgerService,
	materials domain.RawMaterialRepository,
	feeds domain.FinishedFeedRepository,
	eggs domain.EggStockRepository,
	packaging domain.PackagingStockRepository,
	formulas domain.FormulaRepository,
	batches domain.FeedBatchRepository,
	cache ReportCache,
	audit AuditLog,
	baseCurrency, secondaryCurrency string,
	costingPolicy domain.CostingPolicy,
	logger *zap.Logger,
) *TransactionCoordinator {
	if !costingPolicy.IsValid() {
		costingPolicy = domain.DefaultCostingPolicy
	}
	return &TransactionCoordinator{
		uow:               uow,
		ledger:            ledger,
		materials:         materials,
		feeds:             feeds,
		eggs:              eggs,
		packaging:         packaging,
		formulas:          formulas,
		batches:           batches,
		cache:             cache,
		audit:             audit,
		baseCurrency:      baseCurrency,
		secondaryCurrency: secondaryCurrency,
		costingPolicy:     costingPolicy,
		logger:            logger.Named("coordinator"),
	}
}

// operationState tracks where a coordinated operation stands. The transitions
// are Opened -> Validated -> Mutated -> Posted -> Committed, with Failed
// reachable from anywhere; there is no partial rollback state because the
// unit of work rolls back whole.
type operationState string

const (
	stateOpened    operationState = "OPENED"
	stateValidated operationState = "VALIDATED"
	stateMutated   operationState = "MUTATED"
	statePosted    operationState = "POSTED"
	stateCommitted operationState = "COMMITTED"
	stateFailed    operationState = "FAILED"
)

type operation struct {
	name   string
	state  operationState
	logger *zap.Logger
}

func (c *TransactionCoordinator) begin(name string) *operation {
	op := &operation{name: name, state: stateOpened, logger: c.logger}
	op.log()
	return op
}

func (o *operation) advance(s operationState) {
	o.state = s
	o.log()
}

func (o *operation) fail(err error) {
	o.state = stateFailed
	o.logger.Warn("operation failed",
		zap.String("operation", o.name),
		zap.Error(err))
}

func (o *operation) log() {
	o.logger.Debug("operation state",
		zap.String("operation", o.name),
		zap.String("state", string(o.state)))
}

// RecordEggSale sells eggs: graded stock is consumed largest first, packaging
// is consumed with ceiling rounding, and the sale is posted against the
// customer. A cash sale additionally posts the payment entry in the same
// transaction.
func (c *TransactionCoordinator) RecordEggSale(ctx context.Context, cmd RecordEggSaleCommand) (*EggSaleResult, error) {
	op := c.begin("egg_sale")

	if err := c.validateParty(cmd.PartyID); err != nil {
		op.fail(err)
		return nil, err
	}
	if cmd.Quantity <= 0 {
		err := domain.NewValidationError("quantity", "must be positive")
		op.fail(err)
		return nil, err
	}
	if err := c.validateMonetaryCommon(cmd.UnitPrice, cmd.ExchangeRate, cmd.Method); err != nil {
		op.fail(err)
		return nil, err
	}
	conv, err := c.converter(cmd.ExchangeRate)
	if err != nil {
		op.fail(err)
		return nil, err
	}
	op.advance(stateValidated)

	totalBase := cmd.UnitPrice.Mul(domain.DecimalFromInt(cmd.Quantity))
	totalSecondary, err := c.secondaryAmount(totalBase, conv)
	if err != nil {
		op.fail(err)
		return nil, err
	}

	result := &EggSaleResult{TotalBase: totalBase, TotalSecondary: totalSecondary}
	err = c.uow.Execute(ctx, func(tx domain.Tx) error {
		eggStock, err := c.eggs.Find(tx.Context())
		if err != nil {
			return err
		}
		if eggStock == nil {
			return domain.ErrEggStockNotFound
		}
		consumption, err := eggStock.Consume(cmd.Quantity)
		if err != nil {
			return err
		}

		packStock, err := c.packaging.Find(tx.Context())
		if err != nil {
			return err
		}
		if packStock == nil {
			return domain.ErrPackagingNotFound
		}
		cartonsNeeded, traysNeeded := domain.PackagingForEggs(cmd.Quantity)
		packaging, err := packStock.Consume(cartonsNeeded, traysNeeded)
		if err != nil {
			return err
		}

		if err := c.eggs.Save(tx, eggStock); err != nil {
			return err
		}
		if err := c.packaging.Save(tx, packStock); err != nil {
			return err
		}
		op.advance(stateMutated)

		txnID := domain.NewLedgerTransactionID()
		description := c.describe(fmt.Sprintf("Egg sale: %d eggs", cmd.Quantity), cmd.Notes)
		entries, err := c.postSale(tx, txnID, cmd.PartyID, cmd.Date, description,
			totalBase, totalSecondary, cmd.ExchangeRate, cmd.Method, cmd.CreatedBy)
		if err != nil {
			return err
		}
		op.advance(statePosted)

		result.TransactionID = txnID.String()
		result.Entries = entries
		result.Consumption = consumption
		result.Packaging = packaging
		return nil
	})
	if err != nil {
		op.fail(err)
		return nil, err
	}
	op.advance(stateCommitted)

	c.afterCommit(cmd.CreatedBy, "egg_sale", "transaction", result.TransactionID,
		fmt.Sprintf("sold %d eggs to %s", cmd.Quantity, cmd.PartyID),
		"sales*", "stock*", "parties*")
	return result, nil
}

// RecordFeedSale sells finished feed from stock.
func (c *TransactionCoordinator) RecordFeedSale(ctx context.Context, cmd RecordFeedSaleCommand) (*FeedSaleResult, error) {
	op := c.begin("feed_sale")

	if err := c.validateParty(cmd.PartyID); err != nil {
		op.fail(err)
		return nil, err
	}
	if !cmd.QuantityKg.IsPositive() {
		err := domain.NewValidationError("quantityKg", "must be positive")
		op.fail(err)
		return nil, err
	}
	if err := c.validateMonetaryCommon(cmd.UnitPrice, cmd.ExchangeRate, cmd.Method); err != nil {
		op.fail(err)
		return nil, err
	}
	conv, err := c.converter(cmd.ExchangeRate)
	if err != nil {
		op.fail(err)
		return nil, err
	}
	op.advance(stateValidated)

	totalBase := cmd.UnitPrice.Mul(cmd.QuantityKg)
	totalSecondary, err := c.secondaryAmount(totalBase, conv)
	if err != nil {
		op.fail(err)
		return nil, err
	}

	result := &FeedSaleResult{TotalBase: totalBase, TotalSecondary: totalSecondary}
	err = c.uow.Execute(ctx, func(tx domain.Tx) error {
		feed, err := c.feeds.FindByID(tx.Context(), cmd.FeedID)
		if err != nil {
			return err
		}
		if feed == nil {
			return fmt.Errorf("feed %s: %w", cmd.FeedID, domain.ErrFeedNotFound)
		}
		if err := feed.Decrease(feed.Name, cmd.QuantityKg); err != nil {
			return err
		}
		if err := c.feeds.Save(tx, feed); err != nil {
			return err
		}
		op.advance(stateMutated)

		txnID := domain.NewLedgerTransactionID()
		description := c.describe(fmt.Sprintf("Feed sale: %skg %s", cmd.QuantityKg.String(), feed.Name), cmd.Notes)
		entries, err := c.postSale(tx, txnID, cmd.PartyID, cmd.Date, description,
			totalBase, totalSecondary, cmd.ExchangeRate, cmd.Method, cmd.CreatedBy)
		if err != nil {
			return err
		}
		op.advance(statePosted)

		result.TransactionID = txnID.String()
		result.Entries = entries
		return nil
	})
	if err != nil {
		op.fail(err)
		return nil, err
	}
	op.advance(stateCommitted)

	c.afterCommit(cmd.CreatedBy, "feed_sale", "transaction", result.TransactionID,
		fmt.Sprintf("sold %skg feed to %s", cmd.QuantityKg.String(), cmd.PartyID),
		"sales*", "stock*", "parties*")
	return result, nil
}

// RecordPurchase buys raw material from a supplier: stock and cost basis are
// updated per the costing policy and the amount is credited to the supplier.
// A cash purchase posts the payment debit in the same transaction.
func (c *TransactionCoordinator) RecordPurchase(ctx context.Context, cmd RecordPurchaseCommand) (*PurchaseResult, error) {
	op := c.begin("purchase")

	if err := c.validateParty(cmd.PartyID); err != nil {
		op.fail(err)
		return nil, err
	}
	if !cmd.Quantity.IsPositive() {
		err := domain.NewValidationError("quantity", "must be positive")
		op.fail(err)
		return nil, err
	}
	if err := c.validateMonetaryCommon(cmd.UnitCost, cmd.ExchangeRate, cmd.Method); err != nil {
		op.fail(err)
		return nil, err
	}
	conv, err := c.converter(cmd.ExchangeRate)
	if err != nil {
		op.fail(err)
		return nil, err
	}
	op.advance(stateValidated)

	totalBase := cmd.UnitCost.Mul(cmd.Quantity)
	totalSecondary, err := c.secondaryAmount(totalBase, conv)
	if err != nil {
		op.fail(err)
		return nil, err
	}

	result := &PurchaseResult{TotalBase: totalBase, TotalSecondary: totalSecondary}
	err = c.uow.Execute(ctx, func(tx domain.Tx) error {
		material, err := c.materials.FindByID(tx.Context(), cmd.MaterialID)
		if err != nil {
			return err
		}
		if material == nil {
			return fmt.Errorf("material %s: %w", cmd.MaterialID, domain.ErrMaterialNotFound)
		}

		rateBase, err := domain.NewMoney(cmd.UnitCost, c.baseCurrency)
		if err != nil {
			return err
		}
		rateSecondary := domain.ZeroMoney(c.secondaryCurrency)
		if conv != nil {
			if rateSecondary, err = conv.ToSecondary(rateBase); err != nil {
				return err
			}
		}
		if err := material.RecordPurchase(cmd.Quantity, rateBase, rateSecondary, c.costingPolicy); err != nil {
			return err
		}
		if err := c.materials.Save(tx, material); err != nil {
			return err
		}
		op.advance(stateMutated)

		txnID := domain.NewLedgerTransactionID()
		description := c.describe(fmt.Sprintf("Purchase: %s %s %s", cmd.Quantity.String(), material.Unit, material.Name), cmd.Notes)
		entry, err := c.ledger.Post(tx, PostEntryCommand{
			TransactionID:   txnID,
			PartyID:         cmd.PartyID,
			Date:            cmd.Date,
			Description:     description,
			CreditBase:      totalBase,
			CreditSecondary: totalSecondary,
			ExchangeRate:    cmd.ExchangeRate,
			ReferenceType:   "purchase",
			ReferenceID:     cmd.MaterialID,
			CreatedBy:       cmd.CreatedBy,
		})
		if err != nil {
			return err
		}
		entries := []domain.LedgerEntry{entry}

		if cmd.Method == PaymentCash {
			payment, err := c.ledger.Post(tx, PostEntryCommand{
				TransactionID:  txnID,
				PartyID:        cmd.PartyID,
				Date:           cmd.Date,
				Description:    "Cash payment: " + description,
				DebitBase:      totalBase,
				DebitSecondary: totalSecondary,
				ExchangeRate:   cmd.ExchangeRate,
				ReferenceType:  "payment",
				ReferenceID:    entry.EntryID.String(),
				CreatedBy:      cmd.CreatedBy,
			})
			if err != nil {
				return err
			}
			entries = append(entries, payment)
		}
		op.advance(statePosted)

		result.TransactionID = txnID.String()
		result.Entries = entries
		result.UnitCostBase = material.UnitCostBase
		return nil
	})
	if err != nil {
		op.fail(err)
		return nil, err
	}
	op.advance(stateCommitted)

	c.afterCommit(cmd.CreatedBy, "purchase", "transaction", result.TransactionID,
		fmt.Sprintf("purchased %s of %s from %s", cmd.Quantity.String(), cmd.MaterialID, cmd.PartyID),
		"purchases*", "stock*", "parties*")
	return result, nil
}

// RecordExpense posts a general expense against the payee party. Cash expenses
// post the settling payment in the same transaction.
func (c *TransactionCoordinator) RecordExpense(ctx context.Context, cmd RecordExpenseCommand) (*TransactionResult, error) {
	op := c.begin("expense")

	if err := c.validateParty(cmd.PartyID); err != nil {
		op.fail(err)
		return nil, err
	}
	if err := c.validateMonetaryCommon(cmd.Amount, cmd.ExchangeRate, cmd.Method); err != nil {
		op.fail(err)
		return nil, err
	}
	if strings.TrimSpace(cmd.Category) == "" {
		err := domain.NewValidationError("category", "is required")
		op.fail(err)
		return nil, err
	}
	conv, err := c.converter(cmd.ExchangeRate)
	if err != nil {
		op.fail(err)
		return nil, err
	}
	op.advance(stateValidated)

	totalSecondary, err := c.secondaryAmount(cmd.Amount, conv)
	if err != nil {
		op.fail(err)
		return nil, err
	}

	result := &TransactionResult{}
	err = c.uow.Execute(ctx, func(tx domain.Tx) error {
		// No stock involved; the expense skips straight to posting.
		op.advance(stateMutated)

		txnID := domain.NewLedgerTransactionID()
		description := c.describe("Expense ("+cmd.Category+")", cmd.Notes)
		entry, err := c.ledger.Post(tx, PostEntryCommand{
			TransactionID:   txnID,
			PartyID:         cmd.PartyID,
			Date:            cmd.Date,
			Description:     description,
			CreditBase:      cmd.Amount,
			CreditSecondary: totalSecondary,
			ExchangeRate:    cmd.ExchangeRate,
			ReferenceType:   "expense",
			ReferenceID:     cmd.Category,
			CreatedBy:       cmd.CreatedBy,
		})
		if err != nil {
			return err
		}
		entries := []domain.LedgerEntry{entry}

		if cmd.Method == PaymentCash {
			payment, err := c.ledger.Post(tx, PostEntryCommand{
				TransactionID:  txnID,
				PartyID:        cmd.PartyID,
				Date:           cmd.Date,
				Description:    "Cash payment: " + description,
				DebitBase:      cmd.Amount,
				DebitSecondary: totalSecondary,
				ExchangeRate:   cmd.ExchangeRate,
				ReferenceType:  "payment",
				ReferenceID:    entry.EntryID.String(),
				CreatedBy:      cmd.CreatedBy,
			})
			if err != nil {
				return err
			}
			entries = append(entries, payment)
		}
		op.advance(statePosted)

		result.TransactionID = txnID.String()
		result.Entries = entries
		return nil
	})
	if err != nil {
		op.fail(err)
		return nil, err
	}
	op.advance(stateCommitted)

	c.afterCommit(cmd.CreatedBy, "expense", "transaction", result.TransactionID,
		fmt.Sprintf("expense %s (%s) to %s", cmd.Amount.String(), cmd.Category, cmd.PartyID),
		"expenses*", "parties*")
	return result, nil
}

// RecordPayment posts a standalone payment: a receipt credits the party, a
// disbursement debits them.
func (c *TransactionCoordinator) RecordPayment(ctx context.Context, cmd RecordPaymentCommand) (*TransactionResult, error) {
	op := c.begin("payment")

	if err := c.validateParty(cmd.PartyID); err != nil {
		op.fail(err)
		return nil, err
	}
	if !cmd.Amount.IsPositive() {
		err := domain.NewValidationError("amount", "must be positive")
		op.fail(err)
		return nil, err
	}
	if !cmd.Direction.IsValid() {
		err := domain.NewValidationError("direction", "must be RECEIPT or DISBURSEMENT")
		op.fail(err)
		return nil, err
	}
	conv, err := c.converter(cmd.ExchangeRate)
	if err != nil {
		op.fail(err)
		return nil, err
	}
	op.advance(stateValidated)

	totalSecondary, err := c.secondaryAmount(cmd.Amount, conv)
	if err != nil {
		op.fail(err)
		return nil, err
	}

	result := &TransactionResult{}
	err = c.uow.Execute(ctx, func(tx domain.Tx) error {
		op.advance(stateMutated)

		post := PostEntryCommand{
			TransactionID: domain.NewLedgerTransactionID(),
			PartyID:       cmd.PartyID,
			Date:          cmd.Date,
			Description:   c.describe("Payment "+strings.ToLower(string(cmd.Direction)), cmd.Notes),
			ExchangeRate:  cmd.ExchangeRate,
			ReferenceType: "payment",
			CreatedBy:     cmd.CreatedBy,
		}
		if cmd.Direction == PaymentReceipt {
			post.CreditBase = cmd.Amount
			post.CreditSecondary = totalSecondary
		} else {
			post.DebitBase = cmd.Amount
			post.DebitSecondary = totalSecondary
		}

		entry, err := c.ledger.Post(tx, post)
		if err != nil {
			return err
		}
		op.advance(statePosted)

		result.TransactionID = post.TransactionID.String()
		result.Entries = []domain.LedgerEntry{entry}
		return nil
	})
	if err != nil {
		op.fail(err)
		return nil, err
	}
	op.advance(stateCommitted)

	c.afterCommit(cmd.CreatedBy, "payment", "transaction", result.TransactionID,
		fmt.Sprintf("%s %s for %s", strings.ToLower(string(cmd.Direction)), cmd.Amount.String(), cmd.PartyID),
		"payments*", "parties*")
	return result, nil
}

// ProduceFeedBatch runs one production: the formula is validated, every
// ingredient is consumed at quantity x percentage / 100, the batch cost is
// priced at current material unit costs, and the result blends into the
// finished feed's weighted average. No party is involved, so nothing is
// posted to the ledger.
func (c *TransactionCoordinator) ProduceFeedBatch(ctx context.Context, cmd ProduceFeedBatchCommand) (*BatchResult, error) {
	op := c.begin("feed_batch")

	if cmd.QuantityKg.IsNegative() {
		err := domain.NewValidationError("quantityKg", "cannot be negative")
		op.fail(err)
		return nil, err
	}
	if strings.TrimSpace(cmd.ProducedBy) == "" {
		err := domain.NewValidationError("producedBy", "is required")
		op.fail(err)
		return nil, err
	}
	op.advance(stateValidated)

	result := &BatchResult{}
	err := c.uow.Execute(ctx, func(tx domain.Tx) error {
		formula, err := c.formulas.FindByID(tx.Context(), cmd.FormulaID)
		if err != nil {
			return err
		}
		if formula == nil {
			return fmt.Errorf("formula %s: %w", cmd.FormulaID, domain.ErrFormulaNotFound)
		}

		materials := make(map[string]*domain.RawMaterial, len(formula.Ingredients))
		for _, ing := range formula.Ingredients {
			material, err := c.materials.FindByID(tx.Context(), ing.MaterialID)
			if err != nil {
				return err
			}
			if material == nil {
				return fmt.Errorf("material %s: %w", ing.MaterialID, domain.ErrMaterialNotFound)
			}
			materials[ing.MaterialID] = material
		}

		plan, err := domain.PlanBatch(formula, materials, cmd.QuantityKg, c.baseCurrency, c.secondaryCurrency)
		if err != nil {
			return err
		}

		for _, usage := range plan.Usages {
			material := materials[usage.MaterialID]
			if err := material.Decrease(material.Name, usage.Amount); err != nil {
				return err
			}
			if err := c.materials.Save(tx, material); err != nil {
				return err
			}
		}

		feed, err := c.feeds.FindByID(tx.Context(), cmd.FeedID)
		if err != nil {
			return err
		}
		if feed == nil {
			return fmt.Errorf("feed %s: %w", cmd.FeedID, domain.ErrFeedNotFound)
		}
		if err := feed.BlendBatch(cmd.QuantityKg, plan.CostBase, plan.CostSecondary); err != nil {
			return err
		}
		if err := c.feeds.Save(tx, feed); err != nil {
			return err
		}
		op.advance(stateMutated)

		batch, err := domain.NewFeedBatch(cmd.FormulaID, cmd.FeedID, cmd.QuantityKg, plan, cmd.ProducedBy)
		if err != nil {
			return err
		}
		if err := c.batches.Save(tx, batch); err != nil {
			return err
		}
		op.advance(statePosted)

		result.Batch = batch
		result.Feed = feed
		return nil
	})
	if err != nil {
		op.fail(err)
		return nil, err
	}
	op.advance(stateCommitted)

	c.afterCommit(cmd.ProducedBy, "feed_batch", "batch", result.Batch.BatchID,
		fmt.Sprintf("produced %skg from formula %s", cmd.QuantityKg.String(), cmd.FormulaID),
		"production*", "stock*")
	return result, nil
}

// RecordManualAdjustment posts a single explicit correction entry through the
// normal invariants; it exists so admin fixes never bypass the ledger rules.
func (c *TransactionCoordinator) RecordManualAdjustment(ctx context.Context, cmd RecordManualAdjustmentCommand) (*TransactionResult, error) {
	op := c.begin("manual_adjustment")
	op.advance(stateValidated)

	result := &TransactionResult{}
	err := c.uow.Execute(ctx, func(tx domain.Tx) error {
		op.advance(stateMutated)

		post := PostEntryCommand{
			TransactionID:   domain.NewLedgerTransactionID(),
			PartyID:         cmd.PartyID,
			Date:            cmd.Date,
			Description:     cmd.Description,
			DebitBase:       cmd.DebitBase,
			CreditBase:      cmd.CreditBase,
			DebitSecondary:  cmd.DebitSecondary,
			CreditSecondary: cmd.CreditSecondary,
			ExchangeRate:    cmd.ExchangeRate,
			ReferenceType:   "adjustment",
			CreatedBy:       cmd.CreatedBy,
		}
		entry, err := c.ledger.Post(tx, post)
		if err != nil {
			return err
		}
		op.advance(statePosted)

		result.TransactionID = post.TransactionID.String()
		result.Entries = []domain.LedgerEntry{entry}
		return nil
	})
	if err != nil {
		op.fail(err)
		return nil, err
	}
	op.advance(stateCommitted)

	c.afterCommit(cmd.CreatedBy, "manual_adjustment", "transaction", result.TransactionID,
		"manual adjustment for "+cmd.PartyID,
		"parties*")
	return result, nil
}

// ReverseEntry posts the compensating entry for a previous one inside its own
// unit of work.
func (c *TransactionCoordinator) ReverseEntry(ctx context.Context, entryID, reason, reversedBy string) (*TransactionResult, error) {
	op := c.begin("reversal")
	op.advance(stateValidated)

	result := &TransactionResult{}
	err := c.uow.Execute(ctx, func(tx domain.Tx) error {
		op.advance(stateMutated)
		reversal, err := c.ledger.Reverse(tx, entryID, reason, reversedBy)
		if err != nil {
			return err
		}
		op.advance(statePosted)

		result.TransactionID = reversal.TransactionID.String()
		result.Entries = []domain.LedgerEntry{reversal}
		return nil
	})
	if err != nil {
		op.fail(err)
		return nil, err
	}
	op.advance(stateCommitted)

	c.afterCommit(reversedBy, "reversal", "ledger_entry", entryID,
		"reversed entry "+entryID+": "+reason,
		"parties*", "sales*", "purchases*", "expenses*", "payments*")
	return result, nil
}

// postSale posts the sale debit plus, for cash sales, the automatic payment
// credit under the same transaction ID.
func (c *TransactionCoordinator) postSale(
	tx domain.Tx,
	txnID domain.LedgerTransactionID,
	partyID string,
	date time.Time,
	description string,
	totalBase, totalSecondary, exchangeRate domain.Decimal,
	method PaymentMethod,
	createdBy string,
) ([]domain.LedgerEntry, error) {
	entry, err := c.ledger.Post(tx, PostEntryCommand{
		TransactionID:  txnID,
		PartyID:        partyID,
		Date:           date,
		Description:    description,
		DebitBase:      totalBase,
		DebitSecondary: totalSecondary,
		ExchangeRate:   exchangeRate,
		ReferenceType:  "sale",
		ReferenceID:    txnID.String(),
		CreatedBy:      createdBy,
	})
	if err != nil {
		return nil, err
	}
	entries := []domain.LedgerEntry{entry}

	if method == PaymentCash {
		payment, err := c.ledger.Post(tx, PostEntryCommand{
			TransactionID:   txnID,
			PartyID:         partyID,
			Date:            date,
			Description:     "Cash payment: " + description,
			CreditBase:      totalBase,
			CreditSecondary: totalSecondary,
			ExchangeRate:    exchangeRate,
			ReferenceType:   "payment",
			ReferenceID:     entry.EntryID.String(),
			CreatedBy:       createdBy,
		})
		if err != nil {
			return nil, err
		}
		entries = append(entries, payment)
	}
	return entries, nil
}

func (c *TransactionCoordinator) validateParty(partyID string) error {
	if strings.TrimSpace(partyID) == "" {
		return domain.NewValidationError("partyId", "is required")
	}
	return nil
}

func (c *TransactionCoordinator) validateMonetaryCommon(amount, exchangeRate domain.Decimal, method PaymentMethod) error {
	if !amount.IsPositive() {
		return domain.NewValidationError("amount", "must be positive")
	}
	if exchangeRate.IsNegative() {
		return domain.ErrInvalidExchangeRate
	}
	if !method.IsValid() {
		return domain.NewValidationError("method", "must be CASH or CREDIT")
	}
	return nil
}

// converter builds a currency converter for the command's rate; a zero rate
// means the operation is single-currency and no secondary legs are posted.
func (c *TransactionCoordinator) converter(rate domain.Decimal) (*domain.CurrencyConverter, error) {
	if rate.IsZero() {
		return nil, nil
	}
	conv, err := domain.NewCurrencyConverter(c.baseCurrency, c.secondaryCurrency, rate)
	if err != nil {
		return nil, err
	}
	return &conv, nil
}

func (c *TransactionCoordinator) secondaryAmount(baseAmount domain.Decimal, conv *domain.CurrencyConverter) (domain.Decimal, error) {
	if conv == nil {
		return domain.ZeroDecimal(), nil
	}
	base, err := domain.NewMoney(baseAmount, c.baseCurrency)
	if err != nil {
		return domain.Decimal{}, err
	}
	secondary, err := conv.ToSecondary(base)
	if err != nil {
		return domain.Decimal{}, err
	}
	return secondary.Amount(), nil
}

func (c *TransactionCoordinator) describe(base, notes string) string {
	if strings.TrimSpace(notes) == "" {
		return base
	}
	return base + " - " + notes
}

// afterCommit notifies the observers. Cache invalidation is synchronous and
// cheap; the audit call is fire-and-forget so a slow or dead audit endpoint
// never blocks the caller.
func (c *TransactionCoordinator) afterCommit(userID, actionType, entityType, entityID, description string, patterns ...string) {
	if c.cache != nil {
		for _, pattern := range patterns {
			c.cache.Invalidate(pattern)
		}
	}
	if c.audit != nil {
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := c.audit.LogAction(ctx, userID, userID, actionType, entityType, entityID, description); err != nil {
				c.logger.Warn("audit log failed",
					zap.String("action", actionType),
					zap.Error(err))
			}
		}()
	}
}
