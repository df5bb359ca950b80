package inventory

import (
	"context"
	"fmt"

	"github.com/jhoicas/stockledger-api/internal/domain"
	"github.com/jhoicas/stockledger-api/internal/domain/inventory"
	"github.com/jhoicas/stockledger-api/pkg/logger"
)

// BreakKitUseCase desarma un kit: devuelve al stock la cantidad de cada componente y elimina el kit.
type BreakKitUseCase struct {
	txRunner TxRunner
	ledger   *StockLedger
	log      *logger.Logger
}

// NewBreakKitUseCase construye el caso de uso.
func NewBreakKitUseCase(txRunner TxRunner, ledger *StockLedger, log *logger.Logger) *BreakKitUseCase {
	return &BreakKitUseCase{txRunner: txRunner, ledger: ledger, log: log.Component("break_kit")}
}

// ReturnedItem componente devuelto al stock.
type ReturnedItem struct {
	PartID   string
	PartNo   string
	Quantity int64
}

// BreakKitResult resultado para el reporte del caller.
type BreakKitResult struct {
	KitID         string
	KitNo         string
	ReturnedItems []ReturnedItem
}

// BreakKit acredita +Quantity por componente y elimina el kit, todo en una transacción.
// Un segundo BreakKit sobre el mismo id devuelve domain.ErrNotFound sin acreditar nada.
func (uc *BreakKitUseCase) BreakKit(ctx context.Context, userID, id string) (*BreakKitResult, error) {
	var result *BreakKitResult

	err := uc.txRunner.Run(ctx, func(r Repos) error {
		kit, err := r.Kits.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if kit == nil {
			return fmt.Errorf("%w: kit %s", domain.ErrNotFound, id)
		}
		returned := make([]ReturnedItem, 0, len(kit.Items))
		for _, it := range kit.Items {
			part, err := r.Parts.GetByID(ctx, it.PartID)
			if err != nil {
				return err
			}
			if part == nil {
				return fmt.Errorf("%w: repuesto %s del kit %s", domain.ErrNotFound, it.PartID, kit.KitNo)
			}
			returned = append(returned, ReturnedItem{PartID: part.ID, PartNo: part.PartNo, Quantity: it.Quantity})
		}
		if err := uc.ledger.Apply(ctx, r, inventory.KitReturnEvents(kit.Items), kit.ID, userID); err != nil {
			return err
		}
		if err := r.Kits.DeleteItems(ctx, kit.ID); err != nil {
			return err
		}
		if err := r.Kits.Delete(ctx, kit.ID); err != nil {
			return err
		}
		result = &BreakKitResult{KitID: kit.ID, KitNo: kit.KitNo, ReturnedItems: returned}
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("kit_id", id).Int("returned_items", len(result.ReturnedItems)).Msg("kit desarmado")
	return result, nil
}
