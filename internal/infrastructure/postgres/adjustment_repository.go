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

var _ repository.AdjustmentRepository = (*AdjustmentRepo)(nil)

// AdjustmentRepo ajustes de inventario sobre PostgreSQL (usable con pool o tx).
type AdjustmentRepo struct {
	q Querier
}

// NewAdjustmentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAdjustmentRepository(q Querier) *AdjustmentRepo {
	return &AdjustmentRepo{q: q}
}

const adjustmentColumns = `id, adjustment_no, date, notes, total, created_at, updated_at, created_by`

// Create persiste cabecera y líneas.
func (r *AdjustmentRepo) Create(ctx context.Context, adj *entity.InventoryAdjustment) error {
	query := `
		INSERT INTO inventory_adjustments (` + adjustmentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		adj.ID, nullString(adj.AdjustmentNo), adj.Date, adj.Notes, adj.Total,
		adj.CreatedAt, adj.UpdatedAt, nullString(adj.CreatedBy),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert adjustment: %w", err)
	}
	return r.CreateItems(ctx, adj.ID, adj.Items)
}

// GetByID obtiene un ajuste con sus líneas.
func (r *AdjustmentRepo) GetByID(ctx context.Context, id string) (*entity.InventoryAdjustment, error) {
	return r.get(ctx, id, false)
}

// GetForUpdate obtiene el ajuste bloqueando la cabecera (SELECT FOR UPDATE).
func (r *AdjustmentRepo) GetForUpdate(ctx context.Context, id string) (*entity.InventoryAdjustment, error) {
	return r.get(ctx, id, true)
}

func (r *AdjustmentRepo) get(ctx context.Context, id string, forUpdate bool) (*entity.InventoryAdjustment, error) {
	if !validID(id) {
		return nil, nil
	}
	query := `SELECT ` + adjustmentColumns + ` FROM inventory_adjustments WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	a, err := scanAdjustment(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get adjustment: %w", err)
	}
	items, err := r.listItems(ctx, id)
	if err != nil {
		return nil, err
	}
	a.Items = items
	return a, nil
}

// UpdateHeader actualiza los campos de cabecera (las líneas se reemplazan aparte).
func (r *AdjustmentRepo) UpdateHeader(ctx context.Context, adj *entity.InventoryAdjustment) error {
	query := `
		UPDATE inventory_adjustments SET adjustment_no = $2, date = $3, notes = $4, total = $5, updated_at = $6
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query, adj.ID, nullString(adj.AdjustmentNo), adj.Date, adj.Notes, adj.Total, adj.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update adjustment: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// CreateItems inserta las líneas en un batch, conservando el orden con line_no.
func (r *AdjustmentRepo) CreateItems(ctx context.Context, adjustmentID string, items []entity.InventoryAdjustmentItem) error {
	if len(items) == 0 {
		return nil
	}
	query := `
		INSERT INTO inventory_adjustment_items
			(id, adjustment_id, line_no, part_id, part_no, description, previous_quantity, adjusted_quantity, new_quantity, reason)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	batch := &pgx.Batch{}
	for i, it := range items {
		batch.Queue(query, it.ID, adjustmentID, i+1, it.PartID, it.PartNo, it.Description,
			it.PreviousQuantity, it.AdjustedQuantity, it.NewQuantity, it.Reason)
	}
	if err := r.q.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("insert adjustment items: %w", err)
	}
	return nil
}

// DeleteItems borra todas las líneas del ajuste.
func (r *AdjustmentRepo) DeleteItems(ctx context.Context, adjustmentID string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM inventory_adjustment_items WHERE adjustment_id = $1`, adjustmentID); err != nil {
		return fmt.Errorf("delete adjustment items: %w", err)
	}
	return nil
}

// Delete elimina la cabecera. Las líneas deben borrarse antes con DeleteItems.
func (r *AdjustmentRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM inventory_adjustments WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete adjustment: %w", err)
	}
	return nil
}

// List lista ajustes por fecha descendente con sus líneas.
func (r *AdjustmentRepo) List(ctx context.Context, limit, offset int) ([]*entity.InventoryAdjustment, error) {
	query := `SELECT ` + adjustmentColumns + ` FROM inventory_adjustments
		ORDER BY date DESC, created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list adjustments: %w", err)
	}
	list := []*entity.InventoryAdjustment{}
	for rows.Next() {
		a, err := scanAdjustment(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan adjustment: %w", err)
		}
		list = append(list, a)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}
	// Las líneas se cargan después de cerrar rows: en una tx no puede haber dos consultas abiertas.
	for _, a := range list {
		if a.Items, err = r.listItems(ctx, a.ID); err != nil {
			return nil, err
		}
	}
	return list, nil
}

func (r *AdjustmentRepo) listItems(ctx context.Context, adjustmentID string) ([]entity.InventoryAdjustmentItem, error) {
	query := `
		SELECT id, adjustment_id, part_id, part_no, description, previous_quantity, adjusted_quantity, new_quantity, reason
		FROM inventory_adjustment_items WHERE adjustment_id = $1 ORDER BY line_no`
	rows, err := r.q.Query(ctx, query, adjustmentID)
	if err != nil {
		return nil, fmt.Errorf("list adjustment items: %w", err)
	}
	defer rows.Close()
	items := []entity.InventoryAdjustmentItem{}
	for rows.Next() {
		var it entity.InventoryAdjustmentItem
		if err := rows.Scan(&it.ID, &it.AdjustmentID, &it.PartID, &it.PartNo, &it.Description,
			&it.PreviousQuantity, &it.AdjustedQuantity, &it.NewQuantity, &it.Reason); err != nil {
			return nil, fmt.Errorf("scan adjustment item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func scanAdjustment(row pgx.Row) (*entity.InventoryAdjustment, error) {
	var a entity.InventoryAdjustment
	var adjustmentNo, createdBy *string
	if err := row.Scan(&a.ID, &adjustmentNo, &a.Date, &a.Notes, &a.Total, &a.CreatedAt, &a.UpdatedAt, &createdBy); err != nil {
		return nil, err
	}
	if adjustmentNo != nil {
		a.AdjustmentNo = *adjustmentNo
	}
	if createdBy != nil {
		a.CreatedBy = *createdBy
	}
	return &a, nil
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
