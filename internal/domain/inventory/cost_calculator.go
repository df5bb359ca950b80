package inventory

import "github.com/shopspring/decimal"

// Límites de composición de un kit.
const (
	MinKitItems = 1
	MaxKitItems = 10
)

var hundred = decimal.NewFromInt(100)

// KitCostCalculator implementa el costo de un kit (servicio de dominio).
// CostoTotal = Σ (CostoRepuesto * Cantidad)
func KitCostCalculator(lines []CostLine) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.UnitCost.Mul(decimal.NewFromInt(l.Quantity)))
	}
	return total
}

// CostLine par costo unitario / cantidad usado en el cálculo.
type CostLine struct {
	UnitCost decimal.Decimal
	Quantity int64
}

// KitPrice aplica el margen porcentual sobre el costo total y redondea a 2 decimales.
// Precio = CostoTotal * (1 + Margen/100)
func KitPrice(totalCost, markupPct decimal.Decimal) decimal.Decimal {
	factor := decimal.NewFromInt(1).Add(markupPct.Div(hundred))
	return totalCost.Mul(factor).Round(2)
}
