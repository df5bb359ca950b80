package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/stockledger-api/internal/application/dto"
	"github.com/jhoicas/stockledger-api/internal/application/inventory"
)

// KitHandler composición, edición y desarme de kits (protegido).
type KitHandler struct {
	kits     *inventory.KitUseCase
	breakKit *inventory.BreakKitUseCase
}

// NewKitHandler construye el handler.
func NewKitHandler(kits *inventory.KitUseCase, breakKit *inventory.BreakKitUseCase) *KitHandler {
	return &KitHandler{kits: kits, breakKit: breakKit}
}

// Create godoc
// @Summary      Crear kit
// @Description  Entre 1 y 10 componentes; total_cost = suma de costo unitario * cantidad, price = total_cost * (1 + markup_pct/100).
// @Tags         kits
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.KitRequest  true  "kit_no, name, markup_pct, items[]"
// @Success      201   {object}  dto.KitResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/kits [post]
func (h *KitHandler) Create(c *fiber.Ctx) error {
	var in dto.KitRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	kit, err := h.kits.Create(c.Context(), inventory.KitInputFromRequest(in))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewKitResponse(kit))
}

// Update godoc
// @Summary      Editar kit
// @Description  Reemplaza los componentes y recalcula costo y precio. No mueve stock.
// @Tags         kits
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path      string          true  "ID del kit"
// @Param        body  body      dto.KitRequest  true  "kit completo"
// @Success      200   {object}  dto.KitResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/kits/{id} [put]
func (h *KitHandler) Update(c *fiber.Ctx) error {
	var in dto.KitRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	kit, err := h.kits.Update(c.Context(), c.Params("id"), inventory.KitInputFromRequest(in))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewKitResponse(kit))
}

// Delete godoc
// @Summary      Eliminar kit
// @Description  Elimina el kit sin devolver componentes al stock (usar /break para devolverlos).
// @Tags         kits
// @Security     Bearer
// @Param        id  path  string  true  "ID del kit"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/kits/{id} [delete]
func (h *KitHandler) Delete(c *fiber.Ctx) error {
	if err := h.kits.Delete(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Break godoc
// @Summary      Desarmar kit
// @Description  Devuelve al stock la cantidad de cada componente y elimina el kit, de forma atómica.
// @Tags         kits
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del kit"
// @Success      200  {object}  dto.BreakKitResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/kits/{id}/break [post]
func (h *KitHandler) Break(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return unauthorized(c)
	}
	res, err := h.breakKit.BreakKit(c.Context(), userID, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	returned := make([]dto.ReturnedItemResponse, 0, len(res.ReturnedItems))
	for _, it := range res.ReturnedItems {
		returned = append(returned, dto.ReturnedItemResponse{PartID: it.PartID, PartNo: it.PartNo, Quantity: it.Quantity})
	}
	return c.JSON(dto.BreakKitResponse{
		Message:       fmt.Sprintf("kit %s desarmado", res.KitNo),
		ReturnedItems: returned,
	})
}

// GetByID godoc
// @Summary      Obtener kit
// @Tags         kits
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del kit"
// @Success      200  {object}  dto.KitResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/kits/{id} [get]
func (h *KitHandler) GetByID(c *fiber.Ctx) error {
	kit, err := h.kits.Get(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewKitResponse(kit))
}

// List godoc
// @Summary      Listar kits
// @Tags         kits
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "máximo 100"
// @Param        offset  query  int  false  "desplazamiento"
// @Success      200  {object}  dto.KitListResponse
// @Router       /api/kits [get]
func (h *KitHandler) List(c *fiber.Ctx) error {
	page := pageFromQuery(c)
	list, err := h.kits.List(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	items := make([]dto.KitResponse, 0, len(list))
	for _, k := range list {
		items = append(items, dto.NewKitResponse(k))
	}
	return c.JSON(dto.KitListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Count: len(items)},
	})
}
