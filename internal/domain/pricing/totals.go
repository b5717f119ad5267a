package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Distripos-api/internal/domain/entity"
)

// RecalculateStockTotals recalcula los derivados del producto:
// TotalPV = PV×Qty, TotalBV = BV×Qty, Total = Price×Qty.
// Se invoca en cada mutación (alta, edición, reabastecimiento).
func RecalculateStockTotals(s *entity.Stock) {
	s.TotalPV = s.PV.Mul(s.Qty)
	s.TotalBV = s.BV.Mul(s.Qty)
	s.Total = s.Price.Mul(s.Qty)
}

// RecalculateShopStockTotals recalcula los derivados de una fila de stock emitido.
func RecalculateShopStockTotals(ss *entity.ShopStock) {
	ss.TotalPV = ss.PV.Mul(ss.Qty)
	ss.TotalBV = ss.BV.Mul(ss.Qty)
	ss.Total = ss.Price.Mul(ss.Qty)
}

// LoanAmount calcula el monto de un crédito: precio unitario × cantidad.
func LoanAmount(unitPrice, quantity decimal.Decimal) decimal.Decimal {
	return unitPrice.Mul(quantity)
}
