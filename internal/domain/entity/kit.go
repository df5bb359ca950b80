package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un kit.
const (
	KitStatusActive   = "ACTIVE"
	KitStatusInactive = "INACTIVE"
)

// Kit agrupa repuestos con cantidades fijas y se vende como unidad.
// TotalCost y Price se recalculan al crear/editar, no siguen el costo vivo del repuesto.
type Kit struct {
	ID          string
	KitNo       string
	Name        string
	Description string
	TotalCost   decimal.Decimal
	MarkupPct   decimal.Decimal
	Price       decimal.Decimal
	Status      string
	Items       []KitItem
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// KitItem componente de un kit; el kit es dueño exclusivo de sus ítems.
type KitItem struct {
	ID       string
	KitID    string
	PartID   string
	PartNo   string
	Quantity int64
	UnitCost decimal.Decimal // costo del repuesto al momento del cálculo
}
