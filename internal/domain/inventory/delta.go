package inventory

import "github.com/jhoicas/stockledger-api/internal/domain/entity"

// DeltaEvent cambio de stock con signo listo para aplicarse en una transacción.
// Kind usa los tipos de entity.StockMovement.
type DeltaEvent struct {
	PartID string
	Delta  int64
	Kind   string
}

// RevertEvents produce los deltas que deshacen las líneas de un ajuste (-AdjustedQuantity).
// Las líneas sin repuesto no generan evento.
func RevertEvents(items []entity.InventoryAdjustmentItem) []DeltaEvent {
	events := make([]DeltaEvent, 0, len(items))
	for _, it := range items {
		if !it.HasPart() {
			continue
		}
		events = append(events, DeltaEvent{PartID: *it.PartID, Delta: -it.AdjustedQuantity, Kind: entity.MovementKindAdjustmentRevert})
	}
	return events
}

// ApplyEvents produce los deltas que aplican las líneas de un ajuste (+AdjustedQuantity).
func ApplyEvents(items []entity.InventoryAdjustmentItem) []DeltaEvent {
	events := make([]DeltaEvent, 0, len(items))
	for _, it := range items {
		if !it.HasPart() {
			continue
		}
		events = append(events, DeltaEvent{PartID: *it.PartID, Delta: it.AdjustedQuantity, Kind: entity.MovementKindAdjustment})
	}
	return events
}

// KitReturnEvents produce los créditos de stock al desarmar un kit (+Quantity por componente).
func KitReturnEvents(items []entity.KitItem) []DeltaEvent {
	events := make([]DeltaEvent, 0, len(items))
	for _, it := range items {
		events = append(events, DeltaEvent{PartID: it.PartID, Delta: it.Quantity, Kind: entity.MovementKindKitBreak})
	}
	return events
}

// NetByPart suma los deltas por repuesto. Útil para verificar que revertir y reaplicar
// el mismo conjunto de líneas es neutro.
func NetByPart(events []DeltaEvent) map[string]int64 {
	net := make(map[string]int64, len(events))
	for _, e := range events {
		net[e.PartID] += e.Delta
	}
	return net
}
