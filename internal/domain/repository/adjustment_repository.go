package repository

import (
	"context"

	"github.com/jhoicas/stockledger-api/internal/domain/entity"
)

// AdjustmentRepository define el puerto de persistencia para ajustes de inventario.
// Los ítems se borran explícitamente (DeleteItems) antes de la cabecera.
type AdjustmentRepository interface {
	Create(ctx context.Context, adj *entity.InventoryAdjustment) error
	// GetByID carga cabecera e ítems; (nil, nil) si no existe.
	GetByID(ctx context.Context, id string) (*entity.InventoryAdjustment, error)
	// GetForUpdate igual que GetByID pero bloquea la cabecera.
	GetForUpdate(ctx context.Context, id string) (*entity.InventoryAdjustment, error)
	UpdateHeader(ctx context.Context, adj *entity.InventoryAdjustment) error
	CreateItems(ctx context.Context, adjustmentID string, items []entity.InventoryAdjustmentItem) error
	DeleteItems(ctx context.Context, adjustmentID string) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, limit, offset int) ([]*entity.InventoryAdjustment, error)
}
