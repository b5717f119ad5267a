package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment representa un abono a un préstamo. Balance guarda el saldo del préstamo
// DESPUÉS de aplicar este abono (snapshot, no un total que la fila controle).
type Payment struct {
	ID      string
	LoanID  string
	Date    time.Time
	Amount  decimal.Decimal
	Balance decimal.Decimal
}
