package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/stockledger-api/internal/domain"
	"github.com/jhoicas/stockledger-api/internal/domain/entity"
	"github.com/jhoicas/stockledger-api/internal/domain/repository"
)

var _ repository.PartRepository = (*PartRepo)(nil)

// PartRepo lectura del catálogo de repuestos sobre PostgreSQL (usable con pool o tx).
type PartRepo struct {
	q Querier
}

// NewPartRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPartRepository(q Querier) *PartRepo {
	return &PartRepo{q: q}
}

// GetByID obtiene un repuesto por ID.
func (r *PartRepo) GetByID(ctx context.Context, id string) (*entity.Part, error) {
	if !validID(id) {
		return nil, nil
	}
	query := `
		SELECT id, part_no, description, cost, created_at, updated_at
		FROM parts WHERE id = $1`
	var p entity.Part
	err := r.q.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.PartNo, &p.Description, &p.Cost, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get part: %w", err)
	}
	return &p, nil
}

// Upsert inserta o actualiza un repuesto por part_no (semillas de desarrollo).
func (r *PartRepo) Upsert(ctx context.Context, p *entity.Part) error {
	query := `
		INSERT INTO parts (id, part_no, description, cost, created_at, updated_at)
		VALUES ($1, $2, $3, $4, now(), now())
		ON CONFLICT (part_no)
		DO UPDATE SET description = EXCLUDED.description, cost = EXCLUDED.cost, updated_at = now()`
	_, err := r.q.Exec(ctx, query, p.ID, p.PartNo, p.Description, p.Cost)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("upsert part: %w", err)
	}
	return nil
}
