package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Loan representa el crédito abierto por una venta no pagada.
// Invariante: 0 <= Balance <= Amount. Balance solo baja vía Payment y solo
// sube al revertir un abono eliminado.
type Loan struct {
	ID         string
	SaleID     string
	CustomerID string
	Amount     decimal.Decimal
	Balance    decimal.Decimal
	Date       time.Time
	CreatedAt  time.Time
}
