package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/stockledger-api/internal/domain"
	"github.com/jhoicas/stockledger-api/internal/domain/entity"
	"github.com/jhoicas/stockledger-api/internal/domain/inventory"
	"github.com/jhoicas/stockledger-api/pkg/logger"
	"github.com/shopspring/decimal"
)

// AdjustmentUseCase registra, edita y anula ajustes de inventario de forma transaccional.
// Editar usa revertir-y-reaplicar: se deshacen todos los deltas previos y se aplican los nuevos
// en la misma transacción, sin calcular diferencias entre conjuntos de líneas.
type AdjustmentUseCase struct {
	txRunner TxRunner
	ledger   *StockLedger
	log      *logger.Logger
	now      func() time.Time
}

// NewAdjustmentUseCase construye el caso de uso.
func NewAdjustmentUseCase(txRunner TxRunner, ledger *StockLedger, log *logger.Logger) *AdjustmentUseCase {
	return &AdjustmentUseCase{
		txRunner: txRunner,
		ledger:   ledger,
		log:      log.Component("adjustments"),
		now:      time.Now,
	}
}

// AdjustmentInput entrada para crear o editar un ajuste.
type AdjustmentInput struct {
	AdjustmentNo string
	Total        decimal.Decimal
	Date         time.Time
	Notes        string
	Items        []AdjustmentItemInput
}

// AdjustmentItemInput línea del ajuste. PartID nil o vacío = línea libre sin efecto en stock.
// PreviousQuantity solo se usa al editar y en líneas libres; al crear se deriva de la cantidad resultante.
type AdjustmentItemInput struct {
	PartID           *string
	PartNo           string
	Description      string
	PreviousQuantity int64
	AdjustedQuantity int64
	Reason           string
}

// Create aplica el delta de cada línea con repuesto y registra como NewQuantity la cantidad
// devuelta por el upsert (PreviousQuantity = NewQuantity - AdjustedQuantity). Persiste cabecera
// + líneas. Todo o nada.
func (uc *AdjustmentUseCase) Create(ctx context.Context, userID string, in AdjustmentInput) (*entity.InventoryAdjustment, error) {
	if err := validateAdjustment(in); err != nil {
		return nil, err
	}
	now := uc.now()
	adj := &entity.InventoryAdjustment{
		ID:           uuid.New().String(),
		AdjustmentNo: strings.TrimSpace(in.AdjustmentNo),
		Date:         in.Date,
		Notes:        in.Notes,
		Total:        in.Total,
		CreatedAt:    now,
		UpdatedAt:    now,
		CreatedBy:    userID,
	}

	err := uc.txRunner.Run(ctx, func(r Repos) error {
		items := make([]entity.InventoryAdjustmentItem, 0, len(in.Items))
		for _, line := range in.Items {
			item, err := newAdjustmentItem(ctx, r, adj.ID, line)
			if err != nil {
				return err
			}
			if item.HasPart() {
				// Previa y nueva salen de la cantidad que devuelve el upsert
				ev := inventory.DeltaEvent{PartID: *item.PartID, Delta: item.AdjustedQuantity, Kind: entity.MovementKindAdjustment}
				newQty, err := uc.ledger.ApplyOne(ctx, r, ev, adj.ID, userID)
				if err != nil {
					return err
				}
				item.NewQuantity = newQty
				item.PreviousQuantity = newQty - item.AdjustedQuantity
			} else {
				item.NewQuantity = item.PreviousQuantity + item.AdjustedQuantity
			}
			items = append(items, item)
		}
		adj.Items = items
		return r.Adjustments.Create(ctx, adj)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("adjustment_id", adj.ID).Int("items", len(adj.Items)).Msg("ajuste registrado")
	return adj, nil
}

// Update reemplaza el ajuste completo: revierte cada línea previa con repuesto (-AdjustedQuantity),
// borra las líneas, persiste las nuevas con NewQuantity = PreviousQuantity (del payload) + AdjustedQuantity,
// aplica sus deltas y actualiza la cabecera. Cualquier error deja stock y ajuste como estaban.
func (uc *AdjustmentUseCase) Update(ctx context.Context, userID, id string, in AdjustmentInput) (*entity.InventoryAdjustment, error) {
	if err := validateAdjustment(in); err != nil {
		return nil, err
	}
	var result *entity.InventoryAdjustment

	err := uc.txRunner.Run(ctx, func(r Repos) error {
		existing, err := r.Adjustments.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if existing == nil {
			return fmt.Errorf("%w: ajuste %s", domain.ErrNotFound, id)
		}

		// 1. Revertir los deltas del estado anterior
		if err := uc.ledger.Apply(ctx, r, inventory.RevertEvents(existing.Items), existing.ID, userID); err != nil {
			return err
		}
		// 2. Borrar las líneas anteriores
		if err := r.Adjustments.DeleteItems(ctx, existing.ID); err != nil {
			return err
		}
		// 3. Persistir y aplicar las nuevas líneas
		items := make([]entity.InventoryAdjustmentItem, 0, len(in.Items))
		for _, line := range in.Items {
			item, err := newAdjustmentItem(ctx, r, existing.ID, line)
			if err != nil {
				return err
			}
			item.NewQuantity = item.PreviousQuantity + item.AdjustedQuantity
			items = append(items, item)
		}
		if err := r.Adjustments.CreateItems(ctx, existing.ID, items); err != nil {
			return err
		}
		if err := uc.ledger.Apply(ctx, r, inventory.ApplyEvents(items), existing.ID, userID); err != nil {
			return err
		}
		// 4. Cabecera
		existing.AdjustmentNo = strings.TrimSpace(in.AdjustmentNo)
		existing.Date = in.Date
		existing.Notes = in.Notes
		existing.Total = in.Total
		existing.UpdatedAt = uc.now()
		if err := r.Adjustments.UpdateHeader(ctx, existing); err != nil {
			return err
		}
		existing.Items = items
		result = existing
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("adjustment_id", id).Int("items", len(result.Items)).Msg("ajuste actualizado")
	return result, nil
}

// Delete revierte los deltas de cada línea con repuesto y elimina líneas y cabecera.
func (uc *AdjustmentUseCase) Delete(ctx context.Context, userID, id string) error {
	err := uc.txRunner.Run(ctx, func(r Repos) error {
		existing, err := r.Adjustments.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if existing == nil {
			return fmt.Errorf("%w: ajuste %s", domain.ErrNotFound, id)
		}
		if err := uc.ledger.Apply(ctx, r, inventory.RevertEvents(existing.Items), existing.ID, userID); err != nil {
			return err
		}
		if err := r.Adjustments.DeleteItems(ctx, existing.ID); err != nil {
			return err
		}
		return r.Adjustments.Delete(ctx, existing.ID)
	})
	if err != nil {
		return err
	}
	uc.log.Info().Str("adjustment_id", id).Msg("ajuste eliminado")
	return nil
}

// Get obtiene un ajuste con sus líneas.
func (uc *AdjustmentUseCase) Get(ctx context.Context, id string) (*entity.InventoryAdjustment, error) {
	var adj *entity.InventoryAdjustment
	err := uc.txRunner.Run(ctx, func(r Repos) error {
		found, err := r.Adjustments.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if found == nil {
			return fmt.Errorf("%w: ajuste %s", domain.ErrNotFound, id)
		}
		adj = found
		return nil
	})
	return adj, err
}

// List lista ajustes (más recientes primero) con paginación.
func (uc *AdjustmentUseCase) List(ctx context.Context, limit, offset int) ([]*entity.InventoryAdjustment, error) {
	var list []*entity.InventoryAdjustment
	err := uc.txRunner.Run(ctx, func(r Repos) error {
		var err error
		list, err = r.Adjustments.List(ctx, limit, offset)
		return err
	})
	return list, err
}

func validateAdjustment(in AdjustmentInput) error {
	if len(in.Items) == 0 {
		return fmt.Errorf("%w: el ajuste requiere al menos una línea", domain.ErrInvalidInput)
	}
	if in.Date.IsZero() {
		return fmt.Errorf("%w: la fecha es obligatoria", domain.ErrInvalidInput)
	}
	for i, it := range in.Items {
		if partIDOf(it.PartID) == nil && strings.TrimSpace(it.PartNo) == "" {
			return fmt.Errorf("%w: línea %d sin repuesto ni part_no", domain.ErrInvalidInput, i+1)
		}
	}
	return nil
}

// newAdjustmentItem arma la línea y verifica que el repuesto exista en el catálogo.
func newAdjustmentItem(ctx context.Context, r Repos, adjustmentID string, line AdjustmentItemInput) (entity.InventoryAdjustmentItem, error) {
	item := entity.InventoryAdjustmentItem{
		ID:               uuid.New().String(),
		AdjustmentID:     adjustmentID,
		PartID:           partIDOf(line.PartID),
		PartNo:           strings.TrimSpace(line.PartNo),
		Description:      line.Description,
		PreviousQuantity: line.PreviousQuantity,
		AdjustedQuantity: line.AdjustedQuantity,
		Reason:           line.Reason,
	}
	if !item.HasPart() {
		return item, nil
	}
	part, err := r.Parts.GetByID(ctx, *item.PartID)
	if err != nil {
		return item, err
	}
	if part == nil {
		return item, fmt.Errorf("%w: repuesto %s", domain.ErrNotFound, *item.PartID)
	}
	if item.PartNo == "" {
		item.PartNo = part.PartNo
	}
	return item, nil
}

func partIDOf(p *string) *string {
	if p == nil {
		return nil
	}
	id := strings.TrimSpace(*p)
	if id == "" {
		return nil
	}
	return &id
}
