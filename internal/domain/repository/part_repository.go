package repository

import (
	"context"

	"github.com/jhoicas/stockledger-api/internal/domain/entity"
)

// PartRepository puerto de solo lectura sobre el catálogo de repuestos.
// GetByID devuelve (nil, nil) si el repuesto no existe.
type PartRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Part, error)
}
