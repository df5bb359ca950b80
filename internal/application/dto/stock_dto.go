package dto

import (
	"time"

	"github.com/jhoicas/stockledger-api/internal/domain/entity"
)

// StockResponse respuesta de GET /api/stock/:partId.
type StockResponse struct {
	PartID   string `json:"part_id"`
	PartNo   string `json:"part_no"`
	Quantity int64  `json:"quantity"`
	Exists   bool   `json:"exists"` // false si el repuesto nunca tuvo movimientos
}

// StockMovementResponse fila del diario de stock.
type StockMovementResponse struct {
	ID                string    `json:"id"`
	Kind              string    `json:"kind"`
	Delta             int64     `json:"delta"`
	ResultingQuantity int64     `json:"resulting_quantity"`
	ReferenceID       string    `json:"reference_id"`
	CreatedAt         time.Time `json:"created_at"`
	CreatedBy         string    `json:"created_by,omitempty"`
}

// NewStockMovementResponses mapea el diario.
func NewStockMovementResponses(list []*entity.StockMovement) []StockMovementResponse {
	out := make([]StockMovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, StockMovementResponse{
			ID:                m.ID,
			Kind:              m.Kind,
			Delta:             m.Delta,
			ResultingQuantity: m.ResultingQuantity,
			ReferenceID:       m.ReferenceID,
			CreatedAt:         m.CreatedAt,
			CreatedBy:         m.CreatedBy,
		})
	}
	return out
}
