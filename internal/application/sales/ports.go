package sales

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Distripos-api/internal/domain/repository"
)

// TxRunner ejecuta un callback con repositorios atados a una transacción.
// Cualquier error del callback revierte todo lo escrito dentro de él.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		saleRepo repository.SaleRepository,
		shopStockRepo repository.ShopStockRepository,
		stockRepo repository.StockRepository,
		loanRepo repository.LoanRepository,
		paymentRepo repository.PaymentRepository,
	) error) error
}

// SaleEvent evento publicado por cada línea de venta confirmada.
type SaleEvent struct {
	SaleID     string
	ShopID     string
	StockID    string
	CustomerID string
	ClientType string
	Quantity   decimal.Decimal
	UnitPrice  decimal.Decimal
	Total      decimal.Decimal
	Date       time.Time
}

// EventPublisher publica eventos de venta después del commit (best effort).
type EventPublisher interface {
	PublishSaleCreated(ctx context.Context, evt SaleEvent)
}

// ReportCacheInvalidator invalida los reportes cacheados tras una mutación.
type ReportCacheInvalidator interface {
	InvalidateReports(ctx context.Context)
}

// ReceiptLine una línea del comprobante de venta.
type ReceiptLine struct {
	ProductName string
	ProductCode string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	Subtotal    decimal.Decimal
}

// Receipt datos del comprobante que el generador de PDF renderiza.
type Receipt struct {
	Number       string
	Date         time.Time
	ShopName     string
	CustomerName string
	ClientType   string
	Lines        []ReceiptLine
	Total        decimal.Decimal
	OnCredit     bool
	DueDate      *time.Time
}

// ReceiptGenerator renderiza el comprobante de una venta en PDF.
type ReceiptGenerator interface {
	GenerateReceiptPDF(ctx context.Context, receipt *Receipt) ([]byte, error)
}
