package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Part representa un repuesto del catálogo. El motor de stock solo lee Cost y PartNo;
// el alta y edición del catálogo pertenecen a otro módulo.
type Part struct {
	ID          string
	PartNo      string // código visible, único
	Description string
	Cost        decimal.Decimal // costo unitario (>= 0)
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
