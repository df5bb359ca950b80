package memory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/stockledger-api/internal/domain"
	"github.com/jhoicas/stockledger-api/internal/domain/entity"
	"github.com/jhoicas/stockledger-api/internal/domain/repository"
)

// Verify interface compliance
var (
	_ repository.StockRepository         = (*StockRepo)(nil)
	_ repository.PartRepository          = (*PartRepo)(nil)
	_ repository.AdjustmentRepository    = (*AdjustmentRepo)(nil)
	_ repository.KitRepository           = (*KitRepo)(nil)
	_ repository.StockMovementRepository = (*StockMovementRepo)(nil)
)

// StockRepo stock en memoria.
type StockRepo struct{ st *state }

// GetQuantity devuelve la cantidad y si existe la fila.
func (r *StockRepo) GetQuantity(_ context.Context, partID string) (int64, bool, error) {
	s, ok := r.st.stock[partID]
	return s.Quantity, ok, nil
}

// GetForUpdate no necesita bloquear: Store.Run ya serializa la transacción completa.
func (r *StockRepo) GetForUpdate(_ context.Context, partID string) (*entity.Stock, error) {
	s, ok := r.st.stock[partID]
	if !ok {
		return &entity.Stock{PartID: partID}, nil
	}
	return &s, nil
}

// ApplyDelta suma delta creando la fila en cero si no existe.
func (r *StockRepo) ApplyDelta(_ context.Context, partID string, delta int64) (int64, error) {
	s := r.st.stock[partID]
	s.PartID = partID
	s.Quantity += delta
	s.UpdatedAt = time.Now()
	r.st.stock[partID] = s
	return s.Quantity, nil
}

// PartRepo catálogo en memoria.
type PartRepo struct{ st *state }

// GetByID devuelve (nil, nil) si no existe.
func (r *PartRepo) GetByID(_ context.Context, id string) (*entity.Part, error) {
	p, ok := r.st.parts[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

// AdjustmentRepo ajustes en memoria; las líneas se guardan aparte como en la tabla hija.
type AdjustmentRepo struct{ st *state }

// Create guarda cabecera y líneas.
func (r *AdjustmentRepo) Create(_ context.Context, adj *entity.InventoryAdjustment) error {
	if _, ok := r.st.adjustments[adj.ID]; ok {
		return domain.ErrDuplicate
	}
	if r.adjustmentNoTaken(adj.ID, adj.AdjustmentNo) {
		return domain.ErrDuplicate
	}
	header := *adj
	header.Items = nil
	r.st.adjustments[adj.ID] = header
	r.st.adjItems[adj.ID] = append([]entity.InventoryAdjustmentItem(nil), adj.Items...)
	return nil
}

// GetByID carga cabecera e ítems.
func (r *AdjustmentRepo) GetByID(_ context.Context, id string) (*entity.InventoryAdjustment, error) {
	a, ok := r.st.adjustments[id]
	if !ok {
		return nil, nil
	}
	a.Items = append([]entity.InventoryAdjustmentItem(nil), r.st.adjItems[id]...)
	return &a, nil
}

// GetForUpdate equivale a GetByID dentro de Store.Run.
func (r *AdjustmentRepo) GetForUpdate(ctx context.Context, id string) (*entity.InventoryAdjustment, error) {
	return r.GetByID(ctx, id)
}

// UpdateHeader actualiza los campos de cabecera.
func (r *AdjustmentRepo) UpdateHeader(_ context.Context, adj *entity.InventoryAdjustment) error {
	if _, ok := r.st.adjustments[adj.ID]; !ok {
		return domain.ErrNotFound
	}
	if r.adjustmentNoTaken(adj.ID, adj.AdjustmentNo) {
		return domain.ErrDuplicate
	}
	header := *adj
	header.Items = nil
	r.st.adjustments[adj.ID] = header
	return nil
}

// adjustmentNoTaken replica el UNIQUE (nullable) de adjustment_no.
func (r *AdjustmentRepo) adjustmentNoTaken(id, no string) bool {
	if no == "" {
		return false
	}
	for otherID, a := range r.st.adjustments {
		if otherID != id && a.AdjustmentNo == no {
			return true
		}
	}
	return false
}

// CreateItems agrega líneas al ajuste.
func (r *AdjustmentRepo) CreateItems(_ context.Context, adjustmentID string, items []entity.InventoryAdjustmentItem) error {
	if _, ok := r.st.adjustments[adjustmentID]; !ok {
		return domain.ErrNotFound
	}
	r.st.adjItems[adjustmentID] = append(r.st.adjItems[adjustmentID], items...)
	return nil
}

// DeleteItems borra todas las líneas del ajuste.
func (r *AdjustmentRepo) DeleteItems(_ context.Context, adjustmentID string) error {
	delete(r.st.adjItems, adjustmentID)
	return nil
}

// Delete borra la cabecera.
func (r *AdjustmentRepo) Delete(_ context.Context, id string) error {
	delete(r.st.adjustments, id)
	return nil
}

// List ordena por fecha descendente.
func (r *AdjustmentRepo) List(ctx context.Context, limit, offset int) ([]*entity.InventoryAdjustment, error) {
	list := make([]*entity.InventoryAdjustment, 0, len(r.st.adjustments))
	for id := range r.st.adjustments {
		a, _ := r.GetByID(ctx, id)
		list = append(list, a)
	}
	sort.Slice(list, func(i, j int) bool {
		if !list[i].Date.Equal(list[j].Date) {
			return list[i].Date.After(list[j].Date)
		}
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
	return paginate(list, limit, offset), nil
}

// KitRepo kits en memoria.
type KitRepo struct{ st *state }

// Create guarda el kit y sus componentes.
func (r *KitRepo) Create(_ context.Context, kit *entity.Kit) error {
	if _, ok := r.st.kits[kit.ID]; ok {
		return domain.ErrDuplicate
	}
	for _, k := range r.st.kits {
		if k.KitNo == kit.KitNo {
			return domain.ErrDuplicate
		}
	}
	header := *kit
	header.Items = nil
	r.st.kits[kit.ID] = header
	r.st.kitItems[kit.ID] = append([]entity.KitItem(nil), kit.Items...)
	return nil
}

// GetByID carga el kit con sus componentes.
func (r *KitRepo) GetByID(_ context.Context, id string) (*entity.Kit, error) {
	k, ok := r.st.kits[id]
	if !ok {
		return nil, nil
	}
	k.Items = append([]entity.KitItem(nil), r.st.kitItems[id]...)
	return &k, nil
}

// GetForUpdate equivale a GetByID dentro de Store.Run.
func (r *KitRepo) GetForUpdate(ctx context.Context, id string) (*entity.Kit, error) {
	return r.GetByID(ctx, id)
}

// GetByKitNo busca por código.
func (r *KitRepo) GetByKitNo(ctx context.Context, kitNo string) (*entity.Kit, error) {
	for id, k := range r.st.kits {
		if k.KitNo == kitNo {
			return r.GetByID(ctx, id)
		}
	}
	return nil, nil
}

// Update actualiza la cabecera del kit.
func (r *KitRepo) Update(_ context.Context, kit *entity.Kit) error {
	if _, ok := r.st.kits[kit.ID]; !ok {
		return domain.ErrNotFound
	}
	header := *kit
	header.Items = nil
	r.st.kits[kit.ID] = header
	return nil
}

// CreateItems agrega componentes.
func (r *KitRepo) CreateItems(_ context.Context, kitID string, items []entity.KitItem) error {
	if _, ok := r.st.kits[kitID]; !ok {
		return domain.ErrNotFound
	}
	r.st.kitItems[kitID] = append(r.st.kitItems[kitID], items...)
	return nil
}

// DeleteItems borra los componentes.
func (r *KitRepo) DeleteItems(_ context.Context, kitID string) error {
	delete(r.st.kitItems, kitID)
	return nil
}

// Delete borra el kit.
func (r *KitRepo) Delete(_ context.Context, id string) error {
	delete(r.st.kits, id)
	return nil
}

// List ordena por kit_no.
func (r *KitRepo) List(ctx context.Context, limit, offset int) ([]*entity.Kit, error) {
	list := make([]*entity.Kit, 0, len(r.st.kits))
	for id := range r.st.kits {
		k, _ := r.GetByID(ctx, id)
		list = append(list, k)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].KitNo < list[j].KitNo })
	return paginate(list, limit, offset), nil
}

// StockMovementRepo diario de stock en memoria (append-only).
type StockMovementRepo struct{ st *state }

// Create agrega un movimiento.
func (r *StockMovementRepo) Create(_ context.Context, m *entity.StockMovement) error {
	r.st.movements = append(r.st.movements, *m)
	return nil
}

// ListByPart devuelve los movimientos del repuesto, más recientes primero.
func (r *StockMovementRepo) ListByPart(_ context.Context, partID string, limit, offset int) ([]*entity.StockMovement, error) {
	var list []*entity.StockMovement
	for i := len(r.st.movements) - 1; i >= 0; i-- {
		if r.st.movements[i].PartID == partID {
			m := r.st.movements[i]
			list = append(list, &m)
		}
	}
	return paginate(list, limit, offset), nil
}
