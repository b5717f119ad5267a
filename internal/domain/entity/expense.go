package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense representa un gasto operativo, usado por el reporte diario de pérdidas y ganancias.
type Expense struct {
	ID          string
	Description string
	Amount      decimal.Decimal
	Date        time.Time
	CreatedAt   time.Time
}
