package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/stockledger-api/internal/application/dto"
	"github.com/jhoicas/stockledger-api/internal/application/inventory"
)

// StockHandler consultas de stock por repuesto.
type StockHandler struct {
	uc *inventory.StockUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(uc *inventory.StockUseCase) *StockHandler {
	return &StockHandler{uc: uc}
}

// Get godoc
// @Summary      Stock de un repuesto
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        partId  path  string  true  "ID del repuesto"
// @Success      200  {object}  dto.StockResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock/{partId} [get]
func (h *StockHandler) Get(c *fiber.Ctx) error {
	level, err := h.uc.GetStock(c.Context(), c.Params("partId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.StockResponse{
		PartID:   level.PartID,
		PartNo:   level.PartNo,
		Quantity: level.Quantity,
		Exists:   level.Exists,
	})
}

// Movements godoc
// @Summary      Diario de movimientos de un repuesto
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        partId  path   string  true   "ID del repuesto"
// @Param        limit   query  int     false  "máximo 100"
// @Param        offset  query  int     false  "desplazamiento"
// @Success      200  {array}   dto.StockMovementResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock/{partId}/movements [get]
func (h *StockHandler) Movements(c *fiber.Ctx) error {
	page := pageFromQuery(c)
	list, err := h.uc.ListMovements(c.Context(), c.Params("partId"), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewStockMovementResponses(list))
}
