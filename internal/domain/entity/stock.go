package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Stock representa un producto del inventario central de la distribuidora.
// PV/BV son los puntos de volumen del plan de lealtad; TotalPv, TotalBv y Total
// son derivados de (pv, bv, price) × qty y se recalculan en cada mutación.
type Stock struct {
	ID            string
	CategoryID    string
	ProductCode   string
	Name          string
	Description   string
	Price         decimal.Decimal // precio de venta a miembros
	PurchasePrice decimal.Decimal // costo de compra
	Qty           decimal.Decimal
	PV            decimal.Decimal
	BV            decimal.Decimal
	TotalPV       decimal.Decimal // PV × Qty
	TotalBV       decimal.Decimal // BV × Qty
	Total         decimal.Decimal // Price × Qty
	Date          time.Time
	HalfPrice     bool // elegible para clientes a mitad de precio
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
