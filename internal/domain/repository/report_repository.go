package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// DailyProfitLoss agregado de un día calendario: ventas, gastos y utilidad.
type DailyProfitLoss struct {
	Date          time.Time
	SalesTotal    decimal.Decimal
	ExpensesTotal decimal.Decimal
	Profit        decimal.Decimal // SalesTotal - ExpensesTotal
}

// TopProduct producto con mayor ingreso en el período del dashboard.
type TopProduct struct {
	StockID     string
	ProductCode string
	Name        string
	UnitsSold   decimal.Decimal
	Revenue     decimal.Decimal
}

// DashboardSummary agregados globales para el tablero de administración.
type DashboardSummary struct {
	SalesToday     decimal.Decimal
	SalesMonth     decimal.Decimal
	OpenLoans      int64
	LoansBalance   decimal.Decimal
	StockValuation decimal.Decimal // SUM(price × qty) del inventario central
	TopProducts    []TopProduct
}

// ReportRepository consultas de solo lectura para reportes de pérdidas y ganancias.
// El total de venta usa unit_price y cae al precio de lista cuando unit_price es nulo.
type ReportRepository interface {
	GetDailyProfitLoss(ctx context.Context, date time.Time) (*DailyProfitLoss, error)
	// GetMonthlyProfitLoss devuelve un bucket por día calendario del mes con ventas.
	GetMonthlyProfitLoss(ctx context.Context, month time.Month, year int) ([]DailyProfitLoss, error)
	GetDashboardSummary(ctx context.Context) (*DashboardSummary, error)
}
