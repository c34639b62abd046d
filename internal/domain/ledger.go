package domain

import (
	"iter"
	"slices"
	"time"
)

// Ledger computations are derived, never stored: the append-only entry log is
// the single source of truth and every balance below is recomputed from it.

// RunningBalanceLine is one row of a party statement: the entry's amounts plus
// the cumulative balance as of that entry.
type RunningBalanceLine struct {
	EntryID     string    `json:"entryId"`
	Date        time.Time `json:"date"`
	Description string    `json:"description"`
	Debit       Decimal   `json:"debit"`
	Credit      Decimal   `json:"credit"`
	Balance     Decimal   `json:"balance"`
}

// CurrencyTotals aggregates one currency across a set of entries.
type CurrencyTotals struct {
	Debit   Decimal `json:"debit"`
	Credit  Decimal `json:"credit"`
	Balance Decimal `json:"balance"`
}

// LedgerSummary condenses a party's ledger: totals per currency, entry count
// and the date of the most recent entry.
type LedgerSummary struct {
	Base          CurrencyTotals `json:"base"`
	Secondary     CurrencyTotals `json:"secondary"`
	EntryCount    int            `json:"entryCount"`
	LastEntryDate time.Time      `json:"lastEntryDate,omitzero"`
}

// Balance sums debit minus credit for the requested currency across all
// entries. Positive means the party owes the business; negative means the
// business owes the party.
func Balance(entries []LedgerEntry, role CurrencyRole) Decimal {
	total := ZeroDecimal()
	for _, e := range entries {
		total = total.Add(e.Delta(role))
	}
	return total
}

// RunningBalance yields the entries in date order, each carrying the
// cumulative balance as of that entry. The sequence is lazy, finite and
// restartable: ranging over it twice with no intervening writes produces
// identical lines, because everything is recomputed from the entry set on
// each iteration.
func RunningBalance(entries []LedgerEntry, role CurrencyRole) iter.Seq[RunningBalanceLine] {
	return func(yield func(RunningBalanceLine) bool) {
		ordered := sortedByDate(entries)

		balance := ZeroDecimal()
		for _, e := range ordered {
			balance = balance.Add(e.Delta(role))
			line := RunningBalanceLine{
				EntryID:     e.EntryID.String(),
				Date:        e.Date,
				Description: e.Description,
				Debit:       e.Debit(role).Amount(),
				Credit:      e.Credit(role).Amount(),
				Balance:     balance,
			}
			if !yield(line) {
				return
			}
		}
	}
}

// Summarize computes per-currency totals, entry count and last entry date.
func Summarize(entries []LedgerEntry) LedgerSummary {
	summary := LedgerSummary{EntryCount: len(entries)}
	for _, e := range entries {
		summary.Base.Debit = summary.Base.Debit.Add(e.DebitBase.Amount())
		summary.Base.Credit = summary.Base.Credit.Add(e.CreditBase.Amount())
		summary.Secondary.Debit = summary.Secondary.Debit.Add(e.DebitSecondary.Amount())
		summary.Secondary.Credit = summary.Secondary.Credit.Add(e.CreditSecondary.Amount())
		if e.Date.After(summary.LastEntryDate) {
			summary.LastEntryDate = e.Date
		}
	}
	summary.Base.Balance = summary.Base.Debit.Sub(summary.Base.Credit)
	summary.Secondary.Balance = summary.Secondary.Debit.Sub(summary.Secondary.Credit)
	return summary
}

// sortedByDate orders entries date ascending with a stable tie-break on
// creation time and entry ID, so repeated statements never reorder.
func sortedByDate(entries []LedgerEntry) []LedgerEntry {
	ordered := slices.Clone(entries)
	slices.SortStableFunc(ordered, func(a, b LedgerEntry) int {
		if c := a.Date.Compare(b.Date); c != 0 {
			return c
		}
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		if a.EntryID.String() < b.EntryID.String() {
			return -1
		}
		if a.EntryID.String() > b.EntryID.String() {
			return 1
		}
		return 0
	})
	return ordered
}
