package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryAdjustment cabecera de un ajuste de inventario.
// Total es informativo; la fuente de verdad son los ítems.
type InventoryAdjustment struct {
	ID           string
	AdjustmentNo string
	Date         time.Time
	Notes        string
	Total        decimal.Decimal
	Items        []InventoryAdjustmentItem
	CreatedAt    time.Time
	UpdatedAt    time.Time
	CreatedBy    string
}

// InventoryAdjustmentItem línea de un ajuste. PartID nil = línea de texto libre sin efecto en stock.
type InventoryAdjustmentItem struct {
	ID               string
	AdjustmentID     string
	PartID           *string
	PartNo           string
	Description      string
	PreviousQuantity int64 // foto de la cantidad al crear la línea
	AdjustedQuantity int64 // delta con signo
	NewQuantity      int64 // PreviousQuantity + AdjustedQuantity
	Reason           string
}

// HasPart indica si la línea referencia un repuesto con stock.
func (i InventoryAdjustmentItem) HasPart() bool {
	return i.PartID != nil && *i.PartID != ""
}
