package dto

import (
	"time"

	"github.com/jhoicas/stockledger-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// KitRequest body para POST /api/kits y PUT /api/kits/:id.
type KitRequest struct {
	KitNo       string           `json:"kit_no"`
	Name        string           `json:"name"`
	Description string           `json:"description,omitempty"`
	MarkupPct   decimal.Decimal  `json:"markup_pct"`       // margen % sobre total_cost
	Status      string           `json:"status,omitempty"` // ACTIVE | INACTIVE
	Items       []KitItemRequest `json:"items"`
}

// KitItemRequest componente solicitado.
type KitItemRequest struct {
	PartID   string `json:"part_id"`
	Quantity int64  `json:"quantity"`
}

// KitResponse kit con costo y precio calculados.
type KitResponse struct {
	ID          string            `json:"id"`
	KitNo       string            `json:"kit_no"`
	Name        string            `json:"name"`
	Description string            `json:"description,omitempty"`
	TotalCost   decimal.Decimal   `json:"total_cost"`
	MarkupPct   decimal.Decimal   `json:"markup_pct"`
	Price       decimal.Decimal   `json:"price"`
	Status      string            `json:"status"`
	Items       []KitItemResponse `json:"items"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// KitItemResponse componente persistido.
type KitItemResponse struct {
	ID       string          `json:"id"`
	PartID   string          `json:"part_id"`
	PartNo   string          `json:"part_no"`
	Quantity int64           `json:"quantity"`
	UnitCost decimal.Decimal `json:"unit_cost"`
}

// KitListResponse listado paginado.
type KitListResponse struct {
	Items []KitResponse `json:"items"`
	Page  PageResponse  `json:"page"`
}

// BreakKitResponse respuesta de POST /api/kits/:id/break.
type BreakKitResponse struct {
	Message       string                 `json:"message"`
	ReturnedItems []ReturnedItemResponse `json:"returned_items"`
}

// ReturnedItemResponse componente devuelto al stock.
type ReturnedItemResponse struct {
	PartID   string `json:"part_id"`
	PartNo   string `json:"part_no"`
	Quantity int64  `json:"quantity"`
}

// NewKitResponse mapea la entidad a la respuesta HTTP.
func NewKitResponse(k *entity.Kit) KitResponse {
	items := make([]KitItemResponse, 0, len(k.Items))
	for _, it := range k.Items {
		items = append(items, KitItemResponse{
			ID:       it.ID,
			PartID:   it.PartID,
			PartNo:   it.PartNo,
			Quantity: it.Quantity,
			UnitCost: it.UnitCost,
		})
	}
	return KitResponse{
		ID:          k.ID,
		KitNo:       k.KitNo,
		Name:        k.Name,
		Description: k.Description,
		TotalCost:   k.TotalCost,
		MarkupPct:   k.MarkupPct,
		Price:       k.Price,
		Status:      k.Status,
		Items:       items,
		CreatedAt:   k.CreatedAt,
		UpdatedAt:   k.UpdatedAt,
	}
}
