package inventory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockledger-api/internal/application/inventory"
	"github.com/jhoicas/stockledger-api/internal/domain/entity"
	"github.com/jhoicas/stockledger-api/internal/domain/repository"
	"github.com/jhoicas/stockledger-api/internal/infrastructure/memory"
	"github.com/jhoicas/stockledger-api/pkg/logger"
)

const (
	partA   = "part-a" // costo 10
	partB   = "part-b" // costo 5
	partC   = "part-c" // costo 2.5
	testUsr = "user-1"
)

var testDate = time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

type fixture struct {
	store       *memory.Store
	runner      inventory.TxRunner
	adjustments *inventory.AdjustmentUseCase
	kits        *inventory.KitUseCase
	breakKit    *inventory.BreakKitUseCase
	stock       *inventory.StockUseCase
}

// newFixture arma los casos de uso sobre el almacén en memoria con tres repuestos.
// wrap permite decorar el TxRunner (inyección de fallas).
func newFixture(t *testing.T, strict bool, wrap func(inventory.TxRunner) inventory.TxRunner) *fixture {
	t.Helper()
	store := memory.NewStore()
	store.AddParts(
		entity.Part{ID: partA, PartNo: "A-100", Description: "Filtro", Cost: decimal.NewFromInt(10)},
		entity.Part{ID: partB, PartNo: "B-200", Description: "Bujía", Cost: decimal.NewFromInt(5)},
		entity.Part{ID: partC, PartNo: "C-300", Description: "Empaque", Cost: decimal.RequireFromString("2.5")},
	)
	var runner inventory.TxRunner = store
	if wrap != nil {
		runner = wrap(store)
	}
	log := logger.Nop()
	ledger := inventory.NewStockLedger(strict, log)
	return &fixture{
		store:       store,
		runner:      runner,
		adjustments: inventory.NewAdjustmentUseCase(runner, ledger, log),
		kits:        inventory.NewKitUseCase(runner, log),
		breakKit:    inventory.NewBreakKitUseCase(runner, ledger, log),
		stock:       inventory.NewStockUseCase(runner),
	}
}

func (f *fixture) qty(t *testing.T, partID string) int64 {
	t.Helper()
	q, _ := f.store.Quantity(partID)
	return q
}

func line(partID string, adjusted int64) inventory.AdjustmentItemInput {
	id := partID
	return inventory.AdjustmentItemInput{PartID: &id, AdjustedQuantity: adjusted}
}

func adjustmentInput(lines ...inventory.AdjustmentItemInput) inventory.AdjustmentInput {
	return inventory.AdjustmentInput{Date: testDate, Items: lines}
}

func mustCreateAdjustment(t *testing.T, f *fixture, lines ...inventory.AdjustmentItemInput) *entity.InventoryAdjustment {
	t.Helper()
	adj, err := f.adjustments.Create(context.Background(), testUsr, adjustmentInput(lines...))
	require.NoError(t, err)
	return adj
}

var errDiskFull = errors.New("disk full")

// failingRunner decora los repositorios de cada transacción para simular un fallo de almacenamiento.
type failingRunner struct {
	inner inventory.TxRunner
}

func (r failingRunner) Run(ctx context.Context, fn func(repos inventory.Repos) error) error {
	return r.inner.Run(ctx, func(repos inventory.Repos) error {
		repos.Adjustments = failingAdjustments{AdjustmentRepository: repos.Adjustments}
		return fn(repos)
	})
}

// failingAdjustments falla al insertar líneas nuevas, es decir, entre revertir y reaplicar.
type failingAdjustments struct {
	repository.AdjustmentRepository
}

func (failingAdjustments) CreateItems(context.Context, string, []entity.InventoryAdjustmentItem) error {
	return errDiskFull
}

// decoratingRunner permite reemplazar repositorios de cada transacción en un test.
type decoratingRunner struct {
	inner    inventory.TxRunner
	decorate func(*inventory.Repos)
}

func (r decoratingRunner) Run(ctx context.Context, fn func(repos inventory.Repos) error) error {
	return r.inner.Run(ctx, func(repos inventory.Repos) error {
		r.decorate(&repos)
		return fn(repos)
	})
}

func withRepos(decorate func(*inventory.Repos)) func(inventory.TxRunner) inventory.TxRunner {
	return func(inner inventory.TxRunner) inventory.TxRunner {
		return decoratingRunner{inner: inner, decorate: decorate}
	}
}

// interleavedStock simula otra sesión que suma extra al repuesto justo antes del primer delta.
type interleavedStock struct {
	repository.StockRepository
	partID string
	extra  int64
	done   *bool
}

func (s interleavedStock) ApplyDelta(ctx context.Context, partID string, delta int64) (int64, error) {
	if partID == s.partID && !*s.done {
		*s.done = true
		if _, err := s.StockRepository.ApplyDelta(ctx, partID, s.extra); err != nil {
			return 0, err
		}
	}
	return s.StockRepository.ApplyDelta(ctx, partID, delta)
}

// failingStock falla al aplicar un delta sobre failPartID.
type failingStock struct {
	repository.StockRepository
	failPartID string
}

func (s failingStock) ApplyDelta(ctx context.Context, partID string, delta int64) (int64, error) {
	if partID == s.failPartID {
		return 0, errDiskFull
	}
	return s.StockRepository.ApplyDelta(ctx, partID, delta)
}

// failingKitDelete falla al borrar la cabecera del kit, después de acreditar los componentes.
type failingKitDelete struct {
	repository.KitRepository
}

func (failingKitDelete) Delete(context.Context, string) error {
	return errDiskFull
}
