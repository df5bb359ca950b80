package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/stockledger-api/internal/application/inventory"
	"github.com/jhoicas/stockledger-api/pkg/jwt"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AdjustmentUC *inventory.AdjustmentUseCase
	KitUC        *inventory.KitUseCase
	BreakKitUC   *inventory.BreakKitUseCase
	StockUC      *inventory.StockUseCase
	JWTSecret    string
}

// Router registra las rutas de la API. Todo /api requiere Bearer Token;
// las mutaciones además requieren rol admin o bodeguero.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))
	writer := RequireRole(jwt.RoleAdmin, jwt.RoleBodeguero)

	// Ajustes de inventario
	adjustments := api.Group("/adjustments")
	adjustmentHandler := NewAdjustmentHandler(deps.AdjustmentUC)
	adjustments.Post("/", writer, adjustmentHandler.Create)
	adjustments.Get("/", adjustmentHandler.List)
	adjustments.Get("/:id", adjustmentHandler.GetByID)
	adjustments.Put("/:id", writer, adjustmentHandler.Update)
	adjustments.Delete("/:id", writer, adjustmentHandler.Delete)

	// Kits
	kits := api.Group("/kits")
	kitHandler := NewKitHandler(deps.KitUC, deps.BreakKitUC)
	kits.Post("/", writer, kitHandler.Create)
	kits.Get("/", kitHandler.List)
	kits.Get("/:id", kitHandler.GetByID)
	kits.Put("/:id", writer, kitHandler.Update)
	kits.Delete("/:id", writer, kitHandler.Delete)
	kits.Post("/:id/break", writer, kitHandler.Break)

	// Stock (solo lectura)
	stock := api.Group("/stock")
	stockHandler := NewStockHandler(deps.StockUC)
	stock.Get("/:partId", stockHandler.Get)
	stock.Get("/:partId/movements", stockHandler.Movements)
}
