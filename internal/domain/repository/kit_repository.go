package repository

import (
	"context"

	"github.com/jhoicas/stockledger-api/internal/domain/entity"
)

// KitRepository define el puerto de persistencia para kits y sus componentes.
type KitRepository interface {
	Create(ctx context.Context, kit *entity.Kit) error
	// GetByID carga el kit con sus ítems; (nil, nil) si no existe.
	GetByID(ctx context.Context, id string) (*entity.Kit, error)
	GetForUpdate(ctx context.Context, id string) (*entity.Kit, error)
	GetByKitNo(ctx context.Context, kitNo string) (*entity.Kit, error)
	Update(ctx context.Context, kit *entity.Kit) error
	CreateItems(ctx context.Context, kitID string, items []entity.KitItem) error
	DeleteItems(ctx context.Context, kitID string) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, limit, offset int) ([]*entity.Kit, error)
}
