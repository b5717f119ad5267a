package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ShopStock es la fila de stock emitido a una tienda: una copia (snapshot) de los
// términos del producto al momento de la emisión. Un cambio posterior de precio en
// Stock NO se propaga aquí salvo que la edición del producto reescriba las filas.
// La fila se elimina cuando su cantidad llega a cero tras una venta.
type ShopStock struct {
	ShopID      string
	StockID     string
	ProductCode string
	Name        string
	Price       decimal.Decimal
	Qty         decimal.Decimal
	PV          decimal.Decimal
	BV          decimal.Decimal
	TotalPV     decimal.Decimal
	TotalBV     decimal.Decimal
	Total       decimal.Decimal
	IssuedAt    time.Time
	HalfPrice   bool
}
