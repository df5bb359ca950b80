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

// KitUseCase compone kits a partir del catálogo de repuestos.
// Componer, editar o eliminar un kit no mueve stock; solo BreakKit devuelve componentes.
type KitUseCase struct {
	txRunner TxRunner
	log      *logger.Logger
	now      func() time.Time
}

// NewKitUseCase construye el caso de uso.
func NewKitUseCase(txRunner TxRunner, log *logger.Logger) *KitUseCase {
	return &KitUseCase{txRunner: txRunner, log: log.Component("kits"), now: time.Now}
}

// KitInput entrada para crear o editar un kit. MarkupPct es el margen porcentual sobre el costo.
type KitInput struct {
	KitNo       string
	Name        string
	Description string
	MarkupPct   decimal.Decimal
	Status      string
	Items       []KitItemInput
}

// KitItemInput componente solicitado.
type KitItemInput struct {
	PartID   string
	Quantity int64
}

// Create valida la composición, calcula TotalCost con el costo actual de cada repuesto y
// Price con el margen, y persiste kit + componentes en una transacción.
func (uc *KitUseCase) Create(ctx context.Context, in KitInput) (*entity.Kit, error) {
	if err := validateKit(in); err != nil {
		return nil, err
	}
	now := uc.now()
	kit := &entity.Kit{
		ID:          uuid.New().String(),
		KitNo:       strings.TrimSpace(in.KitNo),
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		MarkupPct:   in.MarkupPct,
		Status:      kitStatus(in.Status),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err := uc.txRunner.Run(ctx, func(r Repos) error {
		dup, err := r.Kits.GetByKitNo(ctx, kit.KitNo)
		if err != nil {
			return err
		}
		if dup != nil {
			return fmt.Errorf("%w: kit_no %s", domain.ErrDuplicate, kit.KitNo)
		}
		items, total, err := priceKitItems(ctx, r, kit.ID, in.Items)
		if err != nil {
			return err
		}
		kit.Items = items
		kit.TotalCost = total
		kit.Price = inventory.KitPrice(total, kit.MarkupPct)
		return r.Kits.Create(ctx, kit)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("kit_id", kit.ID).Str("kit_no", kit.KitNo).Str("total_cost", kit.TotalCost.String()).Msg("kit creado")
	return kit, nil
}

// Update recalcula costo y precio y reemplaza el conjunto completo de componentes (borrar y recrear).
func (uc *KitUseCase) Update(ctx context.Context, id string, in KitInput) (*entity.Kit, error) {
	if err := validateKit(in); err != nil {
		return nil, err
	}
	var result *entity.Kit

	err := uc.txRunner.Run(ctx, func(r Repos) error {
		kit, err := r.Kits.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if kit == nil {
			return fmt.Errorf("%w: kit %s", domain.ErrNotFound, id)
		}
		kitNo := strings.TrimSpace(in.KitNo)
		if kitNo != kit.KitNo {
			dup, err := r.Kits.GetByKitNo(ctx, kitNo)
			if err != nil {
				return err
			}
			if dup != nil && dup.ID != kit.ID {
				return fmt.Errorf("%w: kit_no %s", domain.ErrDuplicate, kitNo)
			}
		}
		items, total, err := priceKitItems(ctx, r, kit.ID, in.Items)
		if err != nil {
			return err
		}
		kit.KitNo = kitNo
		kit.Name = strings.TrimSpace(in.Name)
		kit.Description = in.Description
		kit.MarkupPct = in.MarkupPct
		kit.Status = kitStatus(in.Status)
		kit.TotalCost = total
		kit.Price = inventory.KitPrice(total, in.MarkupPct)
		kit.UpdatedAt = uc.now()
		if err := r.Kits.Update(ctx, kit); err != nil {
			return err
		}
		if err := r.Kits.DeleteItems(ctx, kit.ID); err != nil {
			return err
		}
		if err := r.Kits.CreateItems(ctx, kit.ID, items); err != nil {
			return err
		}
		kit.Items = items
		result = kit
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("kit_id", id).Str("total_cost", result.TotalCost.String()).Msg("kit actualizado")
	return result, nil
}

// Delete elimina el kit y sus componentes. No devuelve stock: para eso está BreakKit.
func (uc *KitUseCase) Delete(ctx context.Context, id string) error {
	err := uc.txRunner.Run(ctx, func(r Repos) error {
		kit, err := r.Kits.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if kit == nil {
			return fmt.Errorf("%w: kit %s", domain.ErrNotFound, id)
		}
		if err := r.Kits.DeleteItems(ctx, kit.ID); err != nil {
			return err
		}
		return r.Kits.Delete(ctx, kit.ID)
	})
	if err != nil {
		return err
	}
	uc.log.Info().Str("kit_id", id).Msg("kit eliminado sin devolución de stock")
	return nil
}

// Get obtiene un kit con sus componentes.
func (uc *KitUseCase) Get(ctx context.Context, id string) (*entity.Kit, error) {
	var kit *entity.Kit
	err := uc.txRunner.Run(ctx, func(r Repos) error {
		found, err := r.Kits.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if found == nil {
			return fmt.Errorf("%w: kit %s", domain.ErrNotFound, id)
		}
		kit = found
		return nil
	})
	return kit, err
}

// List lista kits con paginación.
func (uc *KitUseCase) List(ctx context.Context, limit, offset int) ([]*entity.Kit, error) {
	var list []*entity.Kit
	err := uc.txRunner.Run(ctx, func(r Repos) error {
		var err error
		list, err = r.Kits.List(ctx, limit, offset)
		return err
	})
	return list, err
}

func validateKit(in KitInput) error {
	if strings.TrimSpace(in.KitNo) == "" || strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("%w: kit_no y name son obligatorios", domain.ErrInvalidInput)
	}
	if n := len(in.Items); n < inventory.MinKitItems || n > inventory.MaxKitItems {
		return fmt.Errorf("%w: un kit lleva entre %d y %d componentes (recibidos %d)",
			domain.ErrInvalidInput, inventory.MinKitItems, inventory.MaxKitItems, n)
	}
	if in.MarkupPct.IsNegative() {
		return fmt.Errorf("%w: markup_pct no puede ser negativo", domain.ErrInvalidInput)
	}
	switch in.Status {
	case "", entity.KitStatusActive, entity.KitStatusInactive:
	default:
		return fmt.Errorf("%w: status %q", domain.ErrInvalidInput, in.Status)
	}
	for i, it := range in.Items {
		if strings.TrimSpace(it.PartID) == "" {
			return fmt.Errorf("%w: componente %d sin part_id", domain.ErrInvalidInput, i+1)
		}
		if it.Quantity < 1 {
			return fmt.Errorf("%w: componente %d con cantidad %d", domain.ErrInvalidInput, i+1, it.Quantity)
		}
	}
	return nil
}

func kitStatus(s string) string {
	if s == "" {
		return entity.KitStatusActive
	}
	return s
}

// priceKitItems busca el costo actual de cada repuesto y devuelve los componentes y el costo total.
func priceKitItems(ctx context.Context, r Repos, kitID string, in []KitItemInput) ([]entity.KitItem, decimal.Decimal, error) {
	items := make([]entity.KitItem, 0, len(in))
	lines := make([]inventory.CostLine, 0, len(in))
	for _, it := range in {
		partID := strings.TrimSpace(it.PartID)
		part, err := r.Parts.GetByID(ctx, partID)
		if err != nil {
			return nil, decimal.Zero, err
		}
		if part == nil {
			return nil, decimal.Zero, fmt.Errorf("%w: repuesto %s", domain.ErrNotFound, partID)
		}
		items = append(items, entity.KitItem{
			ID:       uuid.New().String(),
			KitID:    kitID,
			PartID:   part.ID,
			PartNo:   part.PartNo,
			Quantity: it.Quantity,
			UnitCost: part.Cost,
		})
		lines = append(lines, inventory.CostLine{UnitCost: part.Cost, Quantity: it.Quantity})
	}
	return items, inventory.KitCostCalculator(lines), nil
}
