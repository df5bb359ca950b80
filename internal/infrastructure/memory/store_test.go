package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockledger-api/internal/application/inventory"
	"github.com/jhoicas/stockledger-api/internal/domain"
	"github.com/jhoicas/stockledger-api/internal/domain/entity"
)

func TestStore_RunCommitsOnSuccess(t *testing.T) {
	s := NewStore()
	err := s.Run(context.Background(), func(r inventory.Repos) error {
		qty, err := r.Stock.ApplyDelta(context.Background(), "p1", 4)
		require.NoError(t, err)
		assert.Equal(t, int64(4), qty)
		return nil
	})
	require.NoError(t, err)

	qty, ok := s.Quantity("p1")
	assert.True(t, ok)
	assert.Equal(t, int64(4), qty)
}

func TestStore_RunDiscardsOnError(t *testing.T) {
	s := NewStore()
	s.SetStock("p1", 10)
	boom := errors.New("boom")

	err := s.Run(context.Background(), func(r inventory.Repos) error {
		_, _ = r.Stock.ApplyDelta(context.Background(), "p1", -3)
		_ = r.Movements.Create(context.Background(), &entity.StockMovement{ID: "m1", PartID: "p1", Delta: -3})
		return boom
	})
	assert.ErrorIs(t, err, domain.ErrTransactionFailed)
	assert.ErrorIs(t, err, boom)

	qty, _ := s.Quantity("p1")
	assert.Equal(t, int64(10), qty)
	_ = s.Run(context.Background(), func(r inventory.Repos) error {
		movs, err := r.Movements.ListByPart(context.Background(), "p1", 10, 0)
		require.NoError(t, err)
		assert.Empty(t, movs)
		return nil
	})
}

func TestStore_DomainErrorsPassThrough(t *testing.T) {
	s := NewStore()
	err := s.Run(context.Background(), func(inventory.Repos) error { return domain.ErrNotFound })
	assert.Equal(t, domain.ErrNotFound, err)
}

func TestStore_ItemsAreIsolatedBetweenUnits(t *testing.T) {
	s := NewStore()
	s.AddParts(entity.Part{ID: "p1", PartNo: "P-1", Cost: decimal.NewFromInt(1)})
	ctx := context.Background()
	kit := &entity.Kit{ID: "k1", KitNo: "K-1", Items: []entity.KitItem{{ID: "i1", KitID: "k1", PartID: "p1", Quantity: 1}}}
	require.NoError(t, s.Run(ctx, func(r inventory.Repos) error { return r.Kits.Create(ctx, kit) }))

	// Agregar componentes en una unidad que falla no debe tocar el slice confirmado
	_ = s.Run(ctx, func(r inventory.Repos) error {
		require.NoError(t, r.Kits.CreateItems(ctx, "k1", []entity.KitItem{{ID: "i2", KitID: "k1", PartID: "p1", Quantity: 2}}))
		return errors.New("abort")
	})

	require.NoError(t, s.Run(ctx, func(r inventory.Repos) error {
		got, err := r.Kits.GetByID(ctx, "k1")
		require.NoError(t, err)
		assert.Len(t, got.Items, 1)
		return nil
	}))
}

func TestStore_KitNoIsUnique(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	err := s.Run(ctx, func(r inventory.Repos) error {
		require.NoError(t, r.Kits.Create(ctx, &entity.Kit{ID: "k1", KitNo: "K-1"}))
		return r.Kits.Create(ctx, &entity.Kit{ID: "k2", KitNo: "K-1"})
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestPaginate(t *testing.T) {
	list := []int{1, 2, 3, 4, 5}
	assert.Equal(t, []int{1, 2}, paginate(list, 2, 0))
	assert.Equal(t, []int{4, 5}, paginate(list, 10, 3))
	assert.Equal(t, []int{}, paginate(list, 2, 9))
	assert.Equal(t, []int{1, 2}, paginate(list, 2, -1))
}

func TestStockRepo_GetForUpdate(t *testing.T) {
	s := NewStore()
	s.SetStock("p1", 6)
	ctx := context.Background()

	err := s.Run(ctx, func(r inventory.Repos) error {
		st, err := r.Stock.GetForUpdate(ctx, "p1")
		require.NoError(t, err)
		assert.Equal(t, int64(6), st.Quantity)

		missing, err := r.Stock.GetForUpdate(ctx, "p2")
		require.NoError(t, err)
		assert.Equal(t, entity.Stock{PartID: "p2"}, *missing)
		return nil
	})
	require.NoError(t, err)

	_, ok := s.Quantity("p2")
	assert.False(t, ok, "leer sin fila no la crea")
}
