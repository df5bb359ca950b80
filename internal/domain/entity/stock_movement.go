package entity

import "time"

// Tipos de movimiento de stock registrados en el diario.
const (
	MovementKindAdjustment       = "ADJUSTMENT"        // aplicación de un ítem de ajuste
	MovementKindAdjustmentRevert = "ADJUSTMENT_REVERT" // reversión de un ítem al editar o eliminar
	MovementKindKitBreak         = "KIT_BREAK"         // devolución de componentes al desarmar un kit
)

// StockMovement es una fila del diario de stock: un delta aplicado y la cantidad resultante.
type StockMovement struct {
	ID                string
	PartID            string
	Kind              string
	Delta             int64 // positivo entrada, negativo salida
	ResultingQuantity int64
	ReferenceID       string // ajuste o kit que originó el delta
	CreatedAt         time.Time
	CreatedBy         string
}
