package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/stockledger-api/internal/domain"
	"github.com/jhoicas/stockledger-api/internal/domain/entity"
	"github.com/jhoicas/stockledger-api/internal/domain/inventory"
	"github.com/jhoicas/stockledger-api/pkg/logger"
)

// StockLedger es el único punto de escritura de cantidades: aplica deltas sobre el
// StockRepository de la transacción en curso y deja una fila en el diario de movimientos.
type StockLedger struct {
	strict bool
	log    *logger.Logger
	now    func() time.Time
}

// NewStockLedger construye el ledger. Con strict=true un delta que deja stock negativo
// devuelve domain.ErrInsufficientStock (y la transacción se deshace); por defecto solo se registra un warning.
func NewStockLedger(strict bool, log *logger.Logger) *StockLedger {
	return &StockLedger{strict: strict, log: log.Component("stock_ledger"), now: time.Now}
}

// Apply aplica los eventos en orden dentro de la transacción de repos.
func (l *StockLedger) Apply(ctx context.Context, repos Repos, events []inventory.DeltaEvent, referenceID, userID string) error {
	for _, ev := range events {
		if _, err := l.ApplyOne(ctx, repos, ev, referenceID, userID); err != nil {
			return err
		}
	}
	return nil
}

// ApplyOne aplica un evento y devuelve la cantidad resultante.
func (l *StockLedger) ApplyOne(ctx context.Context, repos Repos, ev inventory.DeltaEvent, referenceID, userID string) (int64, error) {
	newQty, err := repos.Stock.ApplyDelta(ctx, ev.PartID, ev.Delta)
	if err != nil {
		return 0, err
	}
	if newQty < 0 {
		if l.strict {
			return 0, fmt.Errorf("%w: el repuesto %s quedaría en %d", domain.ErrInsufficientStock, ev.PartID, newQty)
		}
		l.log.Warn().
			Str("part_id", ev.PartID).
			Int64("delta", ev.Delta).
			Int64("quantity", newQty).
			Str("reference_id", referenceID).
			Msg("stock negativo")
	}
	mov := &entity.StockMovement{
		ID:                uuid.New().String(),
		PartID:            ev.PartID,
		Kind:              ev.Kind,
		Delta:             ev.Delta,
		ResultingQuantity: newQty,
		ReferenceID:       referenceID,
		CreatedAt:         l.now(),
		CreatedBy:         userID,
	}
	if err := repos.Movements.Create(ctx, mov); err != nil {
		return 0, err
	}
	l.log.Debug().Str("part_id", ev.PartID).Str("kind", ev.Kind).Int64("delta", ev.Delta).Int64("quantity", newQty).Msg("delta aplicado")
	return newQty, nil
}
