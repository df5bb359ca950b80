package inventory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockledger-api/internal/application/inventory"
	"github.com/jhoicas/stockledger-api/internal/domain"
	"github.com/jhoicas/stockledger-api/internal/domain/entity"
)

func TestBreakKit_CreditsComponentsOnce(t *testing.T) {
	f := newFixture(t, false, nil)
	f.store.SetStock(partA, 5)
	ctx := context.Background()

	kit := mustCreateKit(t, f, kitInput("K-1",
		inventory.KitItemInput{PartID: partA, Quantity: 2},
		inventory.KitItemInput{PartID: partB, Quantity: 3},
	))

	res, err := f.breakKit.BreakKit(ctx, testUsr, kit.ID)
	require.NoError(t, err)
	assert.Equal(t, "K-1", res.KitNo)
	require.Len(t, res.ReturnedItems, 2)
	assert.Equal(t, inventory.ReturnedItem{PartID: partA, PartNo: "A-100", Quantity: 2}, res.ReturnedItems[0])

	assert.Equal(t, int64(7), f.qty(t, partA))
	assert.Equal(t, int64(3), f.qty(t, partB), "el stock se crea en cero si no existía")

	_, err = f.kits.Get(ctx, kit.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound, "el kit desarmado ya no existe")

	_, err = f.breakKit.BreakKit(ctx, testUsr, kit.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, int64(7), f.qty(t, partA), "un segundo desarme no acredita nada")

	movs, err := f.stock.ListMovements(ctx, partA, 10, 0)
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.Equal(t, entity.MovementKindKitBreak, movs[0].Kind)
	assert.Equal(t, kit.ID, movs[0].ReferenceID)
}

func TestBreakKit_UnknownKit(t *testing.T) {
	f := newFixture(t, false, nil)
	_, err := f.breakKit.BreakKit(context.Background(), testUsr, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestBreakKit_FailedCreditRollsBack(t *testing.T) {
	f := newFixture(t, false, withRepos(func(r *inventory.Repos) {
		r.Stock = failingStock{StockRepository: r.Stock, failPartID: partB}
	}))
	f.store.SetStock(partA, 5)
	ctx := context.Background()
	kit := mustCreateKit(t, f, kitInput("K-1",
		inventory.KitItemInput{PartID: partA, Quantity: 2},
		inventory.KitItemInput{PartID: partB, Quantity: 3},
	))

	_, err := f.breakKit.BreakKit(ctx, testUsr, kit.ID)
	assert.ErrorIs(t, err, domain.ErrTransactionFailed)
	assert.ErrorIs(t, err, errDiskFull)
	assert.Equal(t, int64(5), f.qty(t, partA), "el crédito del primer componente se deshace")
	_, exists := f.store.Quantity(partB)
	assert.False(t, exists)

	stored, err := f.kits.Get(ctx, kit.ID)
	require.NoError(t, err)
	assert.Len(t, stored.Items, 2)
}

func TestBreakKit_FailedDeleteRollsBackCredits(t *testing.T) {
	f := newFixture(t, false, withRepos(func(r *inventory.Repos) {
		r.Kits = failingKitDelete{KitRepository: r.Kits}
	}))
	f.store.SetStock(partA, 5)
	ctx := context.Background()
	kit := mustCreateKit(t, f, kitInput("K-1", inventory.KitItemInput{PartID: partA, Quantity: 2}))

	_, err := f.breakKit.BreakKit(ctx, testUsr, kit.ID)
	assert.ErrorIs(t, err, errDiskFull)
	assert.Equal(t, int64(5), f.qty(t, partA))

	stored, err := f.kits.Get(ctx, kit.ID)
	require.NoError(t, err)
	assert.Len(t, stored.Items, 1)

	movs, err := f.stock.ListMovements(ctx, partA, 10, 0)
	require.NoError(t, err)
	assert.Empty(t, movs)
}
