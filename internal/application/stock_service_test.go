package application_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrifarm-platform/finance-service/internal/application"
	"github.com/agrifarm-platform/finance-service/internal/domain"
)

func TestStockService_EggLayRecordsUnitCost(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	stock, err := f.stock.AddEggLay(ctx, application.AddEggLayCommand{
		Grade:             domain.EggLarge,
		Count:             100,
		UnitCostBase:      decVal(t, "0.12"),
		UnitCostSecondary: decVal(t, "600"),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(100), stock.Large.Count)
	assert.Equal(t, "0.12 USD", stock.Large.UnitCostBase.String())
	assert.Equal(t, "600 SYP", stock.Large.UnitCostSecondary.String())

	// A later lay without a cost keeps the recorded rate.
	stock, err = f.stock.AddEggLay(ctx, application.AddEggLayCommand{
		Grade: domain.EggLarge,
		Count: 40,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(140), stock.Large.Count)
	assert.Equal(t, "0.12 USD", stock.Large.UnitCostBase.String())
}

func TestStockService_EggLayRejectsNegativeCost(t *testing.T) {
	f := newFixture(t)

	_, err := f.stock.AddEggLay(context.Background(), application.AddEggLayCommand{
		Grade:        domain.EggLarge,
		Count:        10,
		UnitCostBase: decVal(t, "-0.1"),
	})
	assert.ErrorIs(t, err, domain.ErrNegativeMoney)
}

func TestStockService_PackagingReplenishRecordsUnitCost(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	stock, err := f.stock.ReplenishPackaging(ctx, application.ReplenishPackagingCommand{
		Cartons:        10,
		Trays:          120,
		UnitCostCarton: decVal(t, "0.9"),
		UnitCostTray:   decVal(t, "0.3"),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(10), stock.Cartons)
	assert.Equal(t, "0.9 USD", stock.UnitCostCartonBase.String())
	assert.Equal(t, "0.3 USD", stock.UnitCostTrayBase.String())

	stock, err = f.stock.ReplenishPackaging(ctx, application.ReplenishPackagingCommand{
		Cartons: 5,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(15), stock.Cartons)
	assert.Equal(t, "0.9 USD", stock.UnitCostCartonBase.String())
}
