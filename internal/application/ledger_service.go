package application

import (
	"context"
	"fmt"
	"iter"
	"strings"

	"go.uber.org/zap"

	"github.com/agrifarm-platform/finance-service/internal/domain"
)

// LedgerService owns the accounting ledger: posting entries, reversing them,
// and the derived balance queries. Posting requires an open unit of work; the
// Tx parameter makes that a compile-time requirement rather than a runtime
// convention.
type LedgerService struct {
	parties           domain.PartyRepository
	entries           domain.LedgerEntryRepository
	baseCurrency      string
	secondaryCurrency string
	logger            *zap.Logger
}

// NewLedgerService creates a LedgerService.
func NewLedgerService(
	parties domain.PartyRepository,
	entries domain.LedgerEntryRepository,
	baseCurrency, secondaryCurrency string,
	logger *zap.Logger,
) *LedgerService {
	return &LedgerService{
		parties:           parties,
		entries:           entries,
		baseCurrency:      baseCurrency,
		secondaryCurrency: secondaryCurrency,
		logger:            logger.Named("ledger"),
	}
}

// Post validates and appends one ledger entry inside the caller's unit of work.
func (s *LedgerService) Post(tx domain.Tx, cmd PostEntryCommand) (domain.LedgerEntry, error) {
	party, err := s.parties.FindByID(tx.Context(), cmd.PartyID)
	if err != nil {
		return domain.LedgerEntry{}, err
	}
	if party == nil {
		return domain.LedgerEntry{}, fmt.Errorf("party %s: %w", cmd.PartyID, domain.ErrPartyNotFound)
	}

	amounts, err := s.buildAmounts(cmd)
	if err != nil {
		return domain.LedgerEntry{}, err
	}

	entry, err := domain.NewLedgerEntry(
		cmd.TransactionID,
		cmd.PartyID,
		cmd.Date,
		cmd.Description,
		amounts,
		cmd.ExchangeRate,
		cmd.ReferenceType,
		cmd.ReferenceID,
		cmd.CreatedBy,
	)
	if err != nil {
		return domain.LedgerEntry{}, err
	}

	if err := s.entries.Append(tx, entry); err != nil {
		return domain.LedgerEntry{}, err
	}

	s.logger.Debug("ledger entry posted",
		zap.String("entryId", entry.EntryID.String()),
		zap.String("partyId", entry.PartyID),
		zap.String("referenceType", entry.ReferenceType))
	return entry, nil
}

// Reverse posts the compensating entry for an existing one. The original stays
// untouched; this is the only correction the ledger supports.
func (s *LedgerService) Reverse(tx domain.Tx, entryID, reason, reversedBy string) (domain.LedgerEntry, error) {
	original, err := s.entries.FindByID(tx.Context(), entryID)
	if err != nil {
		return domain.LedgerEntry{}, err
	}
	if original == nil {
		return domain.LedgerEntry{}, fmt.Errorf("entry %s: %w", entryID, domain.ErrEntryNotFound)
	}

	reversal, err := domain.NewReversalEntry(*original, reason, reversedBy)
	if err != nil {
		return domain.LedgerEntry{}, err
	}
	if err := s.entries.Append(tx, reversal); err != nil {
		return domain.LedgerEntry{}, err
	}

	s.logger.Info("ledger entry reversed",
		zap.String("originalId", entryID),
		zap.String("reversalId", reversal.EntryID.String()),
		zap.String("reason", reason))
	return reversal, nil
}

// Balance returns the party balance for one currency, derived by summing the
// party's entries.
func (s *LedgerService) Balance(ctx context.Context, partyID string, role domain.CurrencyRole) (domain.Decimal, error) {
	entries, err := s.partyEntries(ctx, partyID)
	if err != nil {
		return domain.Decimal{}, err
	}
	return domain.Balance(entries, role), nil
}

// RunningBalance returns the party statement as a lazy sequence of lines.
func (s *LedgerService) RunningBalance(ctx context.Context, partyID string, role domain.CurrencyRole) (iter.Seq[domain.RunningBalanceLine], error) {
	entries, err := s.partyEntries(ctx, partyID)
	if err != nil {
		return nil, err
	}
	return domain.RunningBalance(entries, role), nil
}

// Summary returns per-currency totals and entry metadata for a party.
func (s *LedgerService) Summary(ctx context.Context, partyID string) (domain.LedgerSummary, error) {
	entries, err := s.partyEntries(ctx, partyID)
	if err != nil {
		return domain.LedgerSummary{}, err
	}
	return domain.Summarize(entries), nil
}

// Transaction returns every entry posted by one business operation.
func (s *LedgerService) Transaction(ctx context.Context, transactionID string) ([]domain.LedgerEntry, error) {
	return s.entries.FindByTransactionID(ctx, transactionID)
}

func (s *LedgerService) partyEntries(ctx context.Context, partyID string) ([]domain.LedgerEntry, error) {
	if strings.TrimSpace(partyID) == "" {
		return nil, domain.NewValidationError("partyId", "is required")
	}
	party, err := s.parties.FindByID(ctx, partyID)
	if err != nil {
		return nil, err
	}
	if party == nil {
		return nil, fmt.Errorf("party %s: %w", partyID, domain.ErrPartyNotFound)
	}
	return s.entries.FindByParty(ctx, partyID)
}

// buildAmounts turns the command's plain decimals into money legs in the
// service's configured currencies.
func (s *LedgerService) buildAmounts(cmd PostEntryCommand) (domain.EntryAmounts, error) {
	var amounts domain.EntryAmounts
	var err error

	if amounts.DebitBase, err = s.moneyLeg(cmd.DebitBase, s.baseCurrency); err != nil {
		return domain.EntryAmounts{}, err
	}
	if amounts.CreditBase, err = s.moneyLeg(cmd.CreditBase, s.baseCurrency); err != nil {
		return domain.EntryAmounts{}, err
	}
	if amounts.DebitSecondary, err = s.moneyLeg(cmd.DebitSecondary, s.secondaryCurrency); err != nil {
		return domain.EntryAmounts{}, err
	}
	if amounts.CreditSecondary, err = s.moneyLeg(cmd.CreditSecondary, s.secondaryCurrency); err != nil {
		return domain.EntryAmounts{}, err
	}
	return amounts, nil
}

func (s *LedgerService) moneyLeg(amount domain.Decimal, currency string) (domain.Money, error) {
	if amount.IsZero() {
		return domain.ZeroMoney(currency), nil
	}
	return domain.NewMoney(amount, currency)
}
