package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleLineRequest una línea del lote de venta.
type SaleLineRequest struct {
	StockID   string           `json:"stock_id"`
	Quantity  decimal.Decimal  `json:"quantity"`
	Date      time.Time        `json:"date"`
	UnitPrice *decimal.Decimal `json:"unit_price"` // requerido para Non-Member / Working Client
}

// CreateSaleRequest lote de venta. El lote entero se confirma o se revierte.
type CreateSaleRequest struct {
	ShopID      string            `json:"shop_id"`
	CustomerID  *string           `json:"customer_id"`
	ClientType  string            `json:"client_type"` // vacío = "Member"
	PaymentDate *time.Time        `json:"payment_date"`
	Lines       []SaleLineRequest `json:"lines"`
}

// SaleLineError identifica la línea que hizo fallar el lote.
type SaleLineError struct {
	Line    int    `json:"line"`
	StockID string `json:"stock_id"`
	Message string `json:"message"`
}

// SaleResponse salida de una venta con nombres resueltos.
type SaleResponse struct {
	ID           string          `json:"id"`
	Date         time.Time       `json:"date"`
	Quantity     decimal.Decimal `json:"quantity"`
	Paid         bool            `json:"paid"`
	ClientType   string          `json:"client_type"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	Total        decimal.Decimal `json:"total"`
	StockID      string          `json:"stock_id"`
	StockName    string          `json:"stock_name"`
	ProductCode  string          `json:"product_code"`
	ShopID       string          `json:"shop_id"`
	ShopName     string          `json:"shop_name"`
	CustomerID   *string         `json:"customer_id,omitempty"`
	CustomerName string          `json:"customer_name,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}

// SearchSalesRequest filtros para la búsqueda de ventas.
type SearchSalesRequest struct {
	Search      string     `query:"search"`
	ShopID      string     `query:"shop_id"`
	Distributor string     `query:"distributor"`
	StartDate   *time.Time `query:"start_date"`
	EndDate     *time.Time `query:"end_date"`
}
