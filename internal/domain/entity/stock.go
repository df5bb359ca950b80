package entity

import "time"

// Stock representa la cantidad disponible de un repuesto (una fila por repuesto).
// Se crea perezosamente con el primer delta; Quantity puede quedar negativa.
type Stock struct {
	PartID    string
	Quantity  int64
	UpdatedAt time.Time
}
