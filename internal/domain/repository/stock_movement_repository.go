package repository

import (
	"context"

	"github.com/jhoicas/stockledger-api/internal/domain/entity"
)

// StockMovementRepository define el puerto de persistencia del diario de stock.
type StockMovementRepository interface {
	Create(ctx context.Context, movement *entity.StockMovement) error
	ListByPart(ctx context.Context, partID string, limit, offset int) ([]*entity.StockMovement, error)
}
