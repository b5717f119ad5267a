package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de cliente para la venta. Determinan el precio unitario efectivo.
const (
	ClientTypeMember        = "Member"         // precio de lista del producto
	ClientTypeHPClient      = "HP Client"      // mitad del precio de lista
	ClientTypeNonMember     = "Non-Member"     // precio acordado, obligatorio > 0
	ClientTypeWorkingClient = "Working Client" // precio acordado, obligatorio > 0
)

// Sale representa una línea de venta. UnitPrice se resuelve por tipo de cliente
// al momento de la creación y es inmutable después.
type Sale struct {
	ID         string
	Date       time.Time
	Quantity   decimal.Decimal
	Paid       bool // false cuando la venta quedó a crédito (con fecha de pago prometida)
	ClientType string
	UnitPrice  decimal.Decimal
	StockID    string
	CustomerID *string
	ShopID     string
	CreatedAt  time.Time
}
