package application_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrifarm-platform/finance-service/internal/application"
	"github.com/agrifarm-platform/finance-service/internal/domain"
)

func TestPartyService_UpdateAppliesOnlyGivenFields(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	party := f.customer(t)

	newName := "Village Shop & Sons"
	updated, err := f.parties.Update(ctx, party.PartyID, domain.PartyUpdate{Name: &newName})
	require.NoError(t, err)
	assert.Equal(t, newName, updated.Name)
	assert.Equal(t, party.Kind, updated.Kind)
}

func TestPartyService_DeleteWithoutHistory(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	party := f.customer(t)

	require.NoError(t, f.parties.Delete(ctx, party.PartyID, false, "admin"))

	_, err := f.parties.Get(ctx, party.PartyID)
	assert.ErrorIs(t, err, domain.ErrPartyNotFound)
}

func TestPartyService_DeleteWithHistoryNeedsForce(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	party := f.customer(t)

	_, err := f.coordinator.RecordManualAdjustment(ctx, application.RecordManualAdjustmentCommand{
		PartyID:     party.PartyID,
		Date:        time.Now().UTC(),
		Description: "opening balance",
		DebitBase:   decVal(t, "80"),
		CreatedBy:   "admin",
	})
	require.NoError(t, err)

	err = f.parties.Delete(ctx, party.PartyID, false, "admin")
	assert.ErrorIs(t, err, domain.ErrPartyHasHistory)

	// The party and its ledger survive the refused deletion.
	_, err = f.parties.Get(ctx, party.PartyID)
	require.NoError(t, err)
}

func TestPartyService_ForceDeleteSettlesAndKeepsEntries(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	party := f.customer(t)

	_, err := f.coordinator.RecordManualAdjustment(ctx, application.RecordManualAdjustmentCommand{
		PartyID:     party.PartyID,
		Date:        time.Now().UTC(),
		Description: "opening balance",
		DebitBase:   decVal(t, "80"),
		CreatedBy:   "admin",
	})
	require.NoError(t, err)
	_, err = f.coordinator.RecordPayment(ctx, application.RecordPaymentCommand{
		PartyID:   party.PartyID,
		Date:      time.Now().UTC(),
		Amount:    decVal(t, "30"),
		Direction: application.PaymentReceipt,
		CreatedBy: "admin",
	})
	require.NoError(t, err)

	require.NoError(t, f.parties.Delete(ctx, party.PartyID, true, "admin"))

	_, err = f.parties.Get(ctx, party.PartyID)
	assert.ErrorIs(t, err, domain.ErrPartyNotFound)

	// Every original entry gained a reversal; history is never erased.
	entries, err := f.entries.FindByParty(ctx, party.PartyID)
	require.NoError(t, err)
	require.Len(t, entries, 4)
	assert.True(t, domain.Balance(entries, domain.CurrencyBase).IsZero())
}
