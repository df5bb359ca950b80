package inventory

import (
	"context"
	"fmt"

	"github.com/jhoicas/stockledger-api/internal/domain"
	"github.com/jhoicas/stockledger-api/internal/domain/entity"
)

// StockUseCase consultas de stock y del diario de movimientos (solo lectura).
type StockUseCase struct {
	txRunner TxRunner
}

// NewStockUseCase construye el caso de uso.
func NewStockUseCase(txRunner TxRunner) *StockUseCase {
	return &StockUseCase{txRunner: txRunner}
}

// StockLevel cantidad de un repuesto. Exists=false si todavía no tiene fila de stock.
type StockLevel struct {
	PartID   string
	PartNo   string
	Quantity int64
	Exists   bool
}

// GetStock devuelve la cantidad actual del repuesto; domain.ErrNotFound si no está en el catálogo.
func (uc *StockUseCase) GetStock(ctx context.Context, partID string) (*StockLevel, error) {
	var level *StockLevel
	err := uc.txRunner.Run(ctx, func(r Repos) error {
		part, err := r.Parts.GetByID(ctx, partID)
		if err != nil {
			return err
		}
		if part == nil {
			return fmt.Errorf("%w: repuesto %s", domain.ErrNotFound, partID)
		}
		qty, found, err := r.Stock.GetQuantity(ctx, partID)
		if err != nil {
			return err
		}
		level = &StockLevel{PartID: part.ID, PartNo: part.PartNo, Quantity: qty, Exists: found}
		return nil
	})
	return level, err
}

// ListMovements devuelve el diario de deltas de un repuesto (más recientes primero).
func (uc *StockUseCase) ListMovements(ctx context.Context, partID string, limit, offset int) ([]*entity.StockMovement, error) {
	var list []*entity.StockMovement
	err := uc.txRunner.Run(ctx, func(r Repos) error {
		part, err := r.Parts.GetByID(ctx, partID)
		if err != nil {
			return err
		}
		if part == nil {
			return fmt.Errorf("%w: repuesto %s", domain.ErrNotFound, partID)
		}
		list, err = r.Movements.ListByPart(ctx, partID, limit, offset)
		return err
	})
	return list, err
}
