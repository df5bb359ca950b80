package dto

import (
	"time"

	"github.com/jhoicas/stockledger-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// AdjustmentRequest body para POST /api/adjustments y PUT /api/adjustments/:id.
// Date acepta "2006-01-02" o RFC3339.
type AdjustmentRequest struct {
	AdjustmentNo string                  `json:"adjustment_no,omitempty"`
	Total        decimal.Decimal         `json:"total"`
	Date         string                  `json:"date"`
	Notes        string                  `json:"notes,omitempty"`
	Items        []AdjustmentItemRequest `json:"items"`
}

// AdjustmentItemRequest línea del ajuste. previous_quantity solo se respeta al editar.
type AdjustmentItemRequest struct {
	PartID           *string `json:"part_id,omitempty"`
	PartNo           string  `json:"part_no"`
	Description      string  `json:"description,omitempty"`
	PreviousQuantity int64   `json:"previous_quantity"`
	AdjustedQuantity int64   `json:"adjusted_quantity"`
	Reason           string  `json:"reason,omitempty"`
}

// AdjustmentResponse ajuste persistido con new_quantity calculado por línea.
type AdjustmentResponse struct {
	ID           string                   `json:"id"`
	AdjustmentNo string                   `json:"adjustment_no,omitempty"`
	Date         time.Time                `json:"date"`
	Notes        string                   `json:"notes,omitempty"`
	Total        decimal.Decimal          `json:"total"`
	Items        []AdjustmentItemResponse `json:"items"`
	CreatedAt    time.Time                `json:"created_at"`
	UpdatedAt    time.Time                `json:"updated_at"`
}

// AdjustmentItemResponse línea persistida.
type AdjustmentItemResponse struct {
	ID               string  `json:"id"`
	PartID           *string `json:"part_id"`
	PartNo           string  `json:"part_no"`
	Description      string  `json:"description,omitempty"`
	PreviousQuantity int64   `json:"previous_quantity"`
	AdjustedQuantity int64   `json:"adjusted_quantity"`
	NewQuantity      int64   `json:"new_quantity"`
	Reason           string  `json:"reason,omitempty"`
}

// AdjustmentListResponse listado paginado.
type AdjustmentListResponse struct {
	Items []AdjustmentResponse `json:"items"`
	Page  PageResponse         `json:"page"`
}

// NewAdjustmentResponse mapea la entidad a la respuesta HTTP.
func NewAdjustmentResponse(a *entity.InventoryAdjustment) AdjustmentResponse {
	items := make([]AdjustmentItemResponse, 0, len(a.Items))
	for _, it := range a.Items {
		items = append(items, AdjustmentItemResponse{
			ID:               it.ID,
			PartID:           it.PartID,
			PartNo:           it.PartNo,
			Description:      it.Description,
			PreviousQuantity: it.PreviousQuantity,
			AdjustedQuantity: it.AdjustedQuantity,
			NewQuantity:      it.NewQuantity,
			Reason:           it.Reason,
		})
	}
	return AdjustmentResponse{
		ID:           a.ID,
		AdjustmentNo: a.AdjustmentNo,
		Date:         a.Date,
		Notes:        a.Notes,
		Total:        a.Total,
		Items:        items,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
}
