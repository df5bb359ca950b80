package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/stockledger-api/internal/domain/entity"
	"github.com/jhoicas/stockledger-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// GetQuantity obtiene la cantidad actual; found=false si no hay fila.
func (r *StockRepo) GetQuantity(ctx context.Context, partID string) (int64, bool, error) {
	var qty int64
	err := r.q.QueryRow(ctx, `SELECT quantity FROM stock WHERE part_id = $1`, partID).Scan(&qty)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("get stock: %w", err)
	}
	return qty, true, nil
}

// GetForUpdate obtiene el stock y bloquea la fila para update (SELECT FOR UPDATE).
func (r *StockRepo) GetForUpdate(ctx context.Context, partID string) (*entity.Stock, error) {
	query := `
		SELECT part_id, quantity, updated_at
		FROM stock WHERE part_id = $1
		FOR UPDATE`
	var s entity.Stock
	err := r.q.QueryRow(ctx, query, partID).Scan(&s.PartID, &s.Quantity, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.Stock{PartID: partID}, nil
		}
		return nil, fmt.Errorf("get stock for update: %w", err)
	}
	return &s, nil
}

// ApplyDelta suma el delta en una sola sentencia: crea la fila en cero si falta y
// el ON CONFLICT toma el bloqueo de fila, así dos transacciones no pierden actualizaciones.
func (r *StockRepo) ApplyDelta(ctx context.Context, partID string, delta int64) (int64, error) {
	query := `
		INSERT INTO stock (part_id, quantity, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (part_id)
		DO UPDATE SET quantity = stock.quantity + EXCLUDED.quantity, updated_at = now()
		RETURNING quantity`
	var qty int64
	if err := r.q.QueryRow(ctx, query, partID, delta).Scan(&qty); err != nil {
		return 0, fmt.Errorf("apply stock delta: %w", err)
	}
	return qty, nil
}
