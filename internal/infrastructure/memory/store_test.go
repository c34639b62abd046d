package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrifarm-platform/finance-service/internal/domain"
)

func TestUnitOfWork_CommitKeepsWrites(t *testing.T) {
	store := NewStore()
	uow := NewUnitOfWork(store)
	parties := NewPartyRepository(store)

	party, err := domain.NewParty("Village Shop", domain.PartyCustomer, "", "")
	require.NoError(t, err)

	err = uow.Execute(context.Background(), func(tx domain.Tx) error {
		return parties.Save(tx, party)
	})
	require.NoError(t, err)

	found, err := parties.FindByID(context.Background(), party.PartyID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, party.Name, found.Name)
}

func TestUnitOfWork_FailureRestoresEverything(t *testing.T) {
	store := NewStore()
	uow := NewUnitOfWork(store)
	parties := NewPartyRepository(store)
	entries := NewLedgerEntryRepository(store)
	eggs := NewEggStockRepository(store)

	party, err := domain.NewParty("Village Shop", domain.PartyCustomer, "", "")
	require.NoError(t, err)
	stock := domain.NewEggStock("USD", "SYP")
	require.NoError(t, stock.AddLay(domain.EggLarge, 10, domain.ZeroMoney("USD"), domain.ZeroMoney("SYP")))
	require.NoError(t, uow.Execute(context.Background(), func(tx domain.Tx) error {
		if err := parties.Save(tx, party); err != nil {
			return err
		}
		return eggs.Save(tx, stock)
	}))

	boom := errors.New("boom")
	err = uow.Execute(context.Background(), func(tx domain.Tx) error {
		mutated, err := eggs.Find(tx.Context())
		if err != nil {
			return err
		}
		if _, err := mutated.Consume(5); err != nil {
			return err
		}
		if err := eggs.Save(tx, mutated); err != nil {
			return err
		}
		entry, err := domain.NewLedgerEntry(
			domain.NewLedgerTransactionID(),
			party.PartyID,
			stock.CreatedAt,
			"doomed entry",
			domain.EntryAmounts{DebitBase: mustMoney(t, "5", "USD")},
			domain.ZeroDecimal(),
			"sale", "", "tester",
		)
		if err != nil {
			return err
		}
		if err := entries.Append(tx, entry); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	restored, err := eggs.Find(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(10), restored.Large.Count)

	count, err := entries.CountByParty(context.Background(), party.PartyID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestRepositories_ReturnCopies(t *testing.T) {
	store := NewStore()
	uow := NewUnitOfWork(store)
	materials := NewRawMaterialRepository(store)

	material, err := domain.NewRawMaterial("maize", "kg", "USD", "SYP", domain.ZeroDecimal())
	require.NoError(t, err)
	require.NoError(t, uow.Execute(context.Background(), func(tx domain.Tx) error {
		return materials.Save(tx, material)
	}))

	first, err := materials.FindByID(context.Background(), material.MaterialID)
	require.NoError(t, err)
	first.Name = "mutated"

	second, err := materials.FindByID(context.Background(), material.MaterialID)
	require.NoError(t, err)
	assert.Equal(t, "maize", second.Name, "mutating a returned aggregate must not touch the store")
}

func mustMoney(t *testing.T, amount, currency string) domain.Money {
	t.Helper()
	d, err := domain.DecimalFromString(amount)
	require.NoError(t, err)
	m, err := domain.NewMoney(d, currency)
	require.NoError(t, err)
	return m
}
