package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProfitLossResponse ventas, gastos y utilidad de un día calendario.
type ProfitLossResponse struct {
	Date          time.Time       `json:"date"`
	SalesTotal    decimal.Decimal `json:"sales_total"`
	ExpensesTotal decimal.Decimal `json:"expenses_total"`
	Profit        decimal.Decimal `json:"profit"`
}

// MonthlyProfitLossResponse un bucket por día con actividad del mes.
type MonthlyProfitLossResponse struct {
	Month int                  `json:"month"`
	Year  int                  `json:"year"`
	Days  []ProfitLossResponse `json:"days"`
}

// TopProductResponse producto con mayor ingreso del período del tablero.
type TopProductResponse struct {
	StockID     string          `json:"stock_id"`
	ProductCode string          `json:"product_code"`
	Name        string          `json:"name"`
	UnitsSold   decimal.Decimal `json:"units_sold"`
	Revenue     decimal.Decimal `json:"revenue"`
}

// DashboardResponse agregados del tablero de administración.
type DashboardResponse struct {
	SalesToday     decimal.Decimal      `json:"sales_today"`
	SalesMonth     decimal.Decimal      `json:"sales_month"`
	OpenLoans      int64                `json:"open_loans"`
	LoansBalance   decimal.Decimal      `json:"loans_balance"`
	StockValuation decimal.Decimal      `json:"stock_valuation"`
	TopProducts    []TopProductResponse `json:"top_products"`
}
