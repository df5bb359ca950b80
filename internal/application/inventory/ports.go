package inventory

import (
	"context"

	"github.com/jhoicas/stockledger-api/internal/domain/repository"
)

// Repos agrupa los repositorios atados a una misma transacción.
type Repos struct {
	Stock       repository.StockRepository
	Parts       repository.PartRepository
	Adjustments repository.AdjustmentRepository
	Kits        repository.KitRepository
	Movements   repository.StockMovementRepository
}

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza atomicidad para el motor de stock: si fn devuelve error no queda nada aplicado.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos Repos) error) error
}
