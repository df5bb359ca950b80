package repository

import (
	"context"

	"github.com/jhoicas/stockledger-api/internal/domain/entity"
)

// StockRepository define el puerto para consultar/actualizar la cantidad de un repuesto.
// Usado dentro de transacciones para garantizar consistencia.
type StockRepository interface {
	// GetQuantity devuelve la cantidad actual; found=false si el repuesto aún no tiene fila de stock.
	GetQuantity(ctx context.Context, partID string) (qty int64, found bool, err error)
	// GetForUpdate bloquea la fila (SELECT FOR UPDATE). Sin fila devuelve un Stock en cero no persistido.
	GetForUpdate(ctx context.Context, partID string) (*entity.Stock, error)
	// ApplyDelta suma delta a la cantidad (creando la fila en cero si no existe) y devuelve la nueva cantidad.
	ApplyDelta(ctx context.Context, partID string, delta int64) (int64, error)
}
