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

var _ repository.KitRepository = (*KitRepo)(nil)

// KitRepo kits y componentes sobre PostgreSQL (usable con pool o tx).
type KitRepo struct {
	q Querier
}

// NewKitRepository construye el adaptador. Pasar pool o tx (Querier).
func NewKitRepository(q Querier) *KitRepo {
	return &KitRepo{q: q}
}

const kitColumns = `id, kit_no, name, description, total_cost, markup_pct, price, status, created_at, updated_at`

// Create persiste el kit y sus componentes.
func (r *KitRepo) Create(ctx context.Context, kit *entity.Kit) error {
	query := `
		INSERT INTO kits (` + kitColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		kit.ID, kit.KitNo, kit.Name, kit.Description, kit.TotalCost, kit.MarkupPct, kit.Price,
		kit.Status, kit.CreatedAt, kit.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert kit: %w", err)
	}
	return r.CreateItems(ctx, kit.ID, kit.Items)
}

// GetByID obtiene un kit con sus componentes.
func (r *KitRepo) GetByID(ctx context.Context, id string) (*entity.Kit, error) {
	if !validID(id) {
		return nil, nil
	}
	return r.getWhere(ctx, `id = $1`, id, false)
}

// GetForUpdate obtiene el kit bloqueando su fila (SELECT FOR UPDATE).
func (r *KitRepo) GetForUpdate(ctx context.Context, id string) (*entity.Kit, error) {
	if !validID(id) {
		return nil, nil
	}
	return r.getWhere(ctx, `id = $1`, id, true)
}

// GetByKitNo obtiene un kit por su código.
func (r *KitRepo) GetByKitNo(ctx context.Context, kitNo string) (*entity.Kit, error) {
	return r.getWhere(ctx, `kit_no = $1`, kitNo, false)
}

func (r *KitRepo) getWhere(ctx context.Context, where string, arg any, forUpdate bool) (*entity.Kit, error) {
	query := `SELECT ` + kitColumns + ` FROM kits WHERE ` + where
	if forUpdate {
		query += ` FOR UPDATE`
	}
	kit, err := scanKit(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get kit: %w", err)
	}
	if kit.Items, err = r.listItems(ctx, kit.ID); err != nil {
		return nil, err
	}
	return kit, nil
}

// Update actualiza la cabecera del kit.
func (r *KitRepo) Update(ctx context.Context, kit *entity.Kit) error {
	query := `
		UPDATE kits SET kit_no = $2, name = $3, description = $4, total_cost = $5, markup_pct = $6,
			price = $7, status = $8, updated_at = $9
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		kit.ID, kit.KitNo, kit.Name, kit.Description, kit.TotalCost, kit.MarkupPct, kit.Price, kit.Status, kit.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update kit: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// CreateItems inserta los componentes en un batch.
func (r *KitRepo) CreateItems(ctx context.Context, kitID string, items []entity.KitItem) error {
	if len(items) == 0 {
		return nil
	}
	query := `
		INSERT INTO kit_items (id, kit_id, line_no, part_id, part_no, quantity, unit_cost)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	batch := &pgx.Batch{}
	for i, it := range items {
		batch.Queue(query, it.ID, kitID, i+1, it.PartID, it.PartNo, it.Quantity, it.UnitCost)
	}
	if err := r.q.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("insert kit items: %w", err)
	}
	return nil
}

// DeleteItems borra los componentes del kit.
func (r *KitRepo) DeleteItems(ctx context.Context, kitID string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM kit_items WHERE kit_id = $1`, kitID); err != nil {
		return fmt.Errorf("delete kit items: %w", err)
	}
	return nil
}

// Delete elimina el kit. Los componentes deben borrarse antes con DeleteItems.
func (r *KitRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM kits WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete kit: %w", err)
	}
	return nil
}

// List lista kits por kit_no con sus componentes.
func (r *KitRepo) List(ctx context.Context, limit, offset int) ([]*entity.Kit, error) {
	query := `SELECT ` + kitColumns + ` FROM kits ORDER BY kit_no LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list kits: %w", err)
	}
	list := []*entity.Kit{}
	for rows.Next() {
		kit, err := scanKit(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan kit: %w", err)
		}
		list = append(list, kit)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, kit := range list {
		if kit.Items, err = r.listItems(ctx, kit.ID); err != nil {
			return nil, err
		}
	}
	return list, nil
}

func (r *KitRepo) listItems(ctx context.Context, kitID string) ([]entity.KitItem, error) {
	query := `
		SELECT id, kit_id, part_id, part_no, quantity, unit_cost
		FROM kit_items WHERE kit_id = $1 ORDER BY line_no`
	rows, err := r.q.Query(ctx, query, kitID)
	if err != nil {
		return nil, fmt.Errorf("list kit items: %w", err)
	}
	defer rows.Close()
	items := []entity.KitItem{}
	for rows.Next() {
		var it entity.KitItem
		if err := rows.Scan(&it.ID, &it.KitID, &it.PartID, &it.PartNo, &it.Quantity, &it.UnitCost); err != nil {
			return nil, fmt.Errorf("scan kit item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func scanKit(row pgx.Row) (*entity.Kit, error) {
	var k entity.Kit
	if err := row.Scan(&k.ID, &k.KitNo, &k.Name, &k.Description, &k.TotalCost, &k.MarkupPct, &k.Price,
		&k.Status, &k.CreatedAt, &k.UpdatedAt); err != nil {
		return nil, err
	}
	return &k, nil
}
