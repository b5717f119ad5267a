package sales

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Distripos-api/internal/application/dto"
	"github.com/jhoicas/Distripos-api/internal/domain"
	"github.com/jhoicas/Distripos-api/internal/domain/entity"
	"github.com/jhoicas/Distripos-api/internal/domain/pricing"
	"github.com/jhoicas/Distripos-api/internal/domain/repository"
)

// LineError identifica la línea del lote que provocó el rechazo completo.
type LineError struct {
	Line    int
	StockID string
	Err     error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("línea %d (stock %s): %v", e.Line, e.StockID, e.Err)
}

func (e *LineError) Unwrap() error { return e.Err }

// UseCase casos de uso de ventas: creación por lote transaccional, consultas,
// eliminación con restauración de inventario y comprobante en PDF.
type UseCase struct {
	tx           TxRunner
	saleRepo     repository.SaleRepository
	stockRepo    repository.StockRepository
	shopRepo     repository.ShopRepository
	customerRepo repository.CustomerRepository
	publisher    EventPublisher
	cache        ReportCacheInvalidator
	receipts     ReceiptGenerator
}

// NewUseCase construye el caso de uso. publisher y cache pueden ser nil.
func NewUseCase(
	tx TxRunner,
	saleRepo repository.SaleRepository,
	stockRepo repository.StockRepository,
	shopRepo repository.ShopRepository,
	customerRepo repository.CustomerRepository,
	publisher EventPublisher,
	cache ReportCacheInvalidator,
	receipts ReceiptGenerator,
) *UseCase {
	return &UseCase{
		tx:           tx,
		saleRepo:     saleRepo,
		stockRepo:    stockRepo,
		shopRepo:     shopRepo,
		customerRepo: customerRepo,
		publisher:    publisher,
		cache:        cache,
		receipts:     receipts,
	}
}

// Create registra un lote de ventas en una sola transacción: resuelve el precio
// por tipo de cliente, descuenta el stock de la tienda (con bloqueo de fila) y
// abre el crédito cuando hay cliente y fecha de pago. Si cualquier línea falla,
// el lote entero se revierte y el error identifica la línea (*LineError).
func (uc *UseCase) Create(ctx context.Context, in dto.CreateSaleRequest) ([]dto.SaleResponse, error) {
	if len(in.Lines) == 0 || in.ShopID == "" {
		return nil, domain.ErrInvalidInput
	}
	clientType := in.ClientType
	if clientType == "" {
		clientType = entity.ClientTypeMember
	}

	shop, err := uc.shopRepo.GetByID(in.ShopID)
	if err != nil {
		return nil, err
	}
	if shop == nil {
		return nil, domain.ErrNotFound
	}

	var customerName string
	if in.CustomerID != nil {
		customer, err := uc.customerRepo.GetByID(*in.CustomerID)
		if err != nil {
			return nil, err
		}
		if customer == nil {
			return nil, domain.ErrNotFound
		}
		customerName = customer.Name
	}

	now := time.Now()
	responses := make([]dto.SaleResponse, 0, len(in.Lines))
	events := make([]SaleEvent, 0, len(in.Lines))

	err = uc.tx.Run(ctx, func(
		saleRepo repository.SaleRepository,
		shopStockRepo repository.ShopStockRepository,
		stockRepo repository.StockRepository,
		loanRepo repository.LoanRepository,
		_ repository.PaymentRepository,
	) error {
		for i, line := range in.Lines {
			if line.StockID == "" || !line.Quantity.GreaterThan(decimal.Zero) {
				return &LineError{Line: i, StockID: line.StockID, Err: domain.ErrInvalidInput}
			}

			stock, err := stockRepo.GetByID(line.StockID)
			if err != nil {
				return &LineError{Line: i, StockID: line.StockID, Err: err}
			}
			if stock == nil {
				return &LineError{Line: i, StockID: line.StockID, Err: domain.ErrNotFound}
			}

			unitPrice, err := pricing.ResolveUnitPrice(clientType, stock.Price, line.UnitPrice)
			if err != nil {
				return &LineError{Line: i, StockID: line.StockID, Err: err}
			}

			date := line.Date
			if date.IsZero() {
				date = now
			}
			sale := &entity.Sale{
				ID:         uuid.New().String(),
				Date:       date,
				Quantity:   line.Quantity,
				Paid:       in.PaymentDate == nil,
				ClientType: clientType,
				UnitPrice:  unitPrice,
				StockID:    line.StockID,
				CustomerID: in.CustomerID,
				ShopID:     in.ShopID,
				CreatedAt:  now,
			}
			if err := saleRepo.Create(sale); err != nil {
				return &LineError{Line: i, StockID: line.StockID, Err: err}
			}

			// Bloquea la fila de la tienda: decrementos concurrentes se serializan.
			row, err := shopStockRepo.GetForUpdate(in.ShopID, line.StockID)
			if err != nil {
				return &LineError{Line: i, StockID: line.StockID, Err: err}
			}
			if row == nil {
				return &LineError{Line: i, StockID: line.StockID, Err: domain.ErrStockNotIssued}
			}
			newQty := row.Qty.Sub(line.Quantity)
			if newQty.LessThanOrEqual(decimal.Zero) {
				if err := shopStockRepo.Delete(in.ShopID, line.StockID); err != nil {
					return &LineError{Line: i, StockID: line.StockID, Err: err}
				}
			} else {
				row.Qty = newQty
				row.IssuedAt = now
				pricing.RecalculateShopStockTotals(row)
				if err := shopStockRepo.Update(row); err != nil {
					return &LineError{Line: i, StockID: line.StockID, Err: err}
				}
			}

			if in.CustomerID != nil && in.PaymentDate != nil {
				amount := pricing.LoanAmount(unitPrice, line.Quantity)
				loan := &entity.Loan{
					ID:         uuid.New().String(),
					SaleID:     sale.ID,
					CustomerID: *in.CustomerID,
					Amount:     amount,
					Balance:    amount,
					Date:       *in.PaymentDate,
					CreatedAt:  now,
				}
				if err := loanRepo.Create(loan); err != nil {
					return &LineError{Line: i, StockID: line.StockID, Err: err}
				}
			}

			responses = append(responses, dto.SaleResponse{
				ID:           sale.ID,
				Date:         sale.Date,
				Quantity:     sale.Quantity,
				Paid:         sale.Paid,
				ClientType:   sale.ClientType,
				UnitPrice:    sale.UnitPrice,
				Total:        sale.UnitPrice.Mul(sale.Quantity),
				StockID:      stock.ID,
				StockName:    stock.Name,
				ProductCode:  stock.ProductCode,
				ShopID:       shop.ID,
				ShopName:     shop.Name,
				CustomerID:   in.CustomerID,
				CustomerName: customerName,
				CreatedAt:    sale.CreatedAt,
			})
			evt := SaleEvent{
				SaleID:     sale.ID,
				ShopID:     sale.ShopID,
				StockID:    sale.StockID,
				ClientType: sale.ClientType,
				Quantity:   sale.Quantity,
				UnitPrice:  sale.UnitPrice,
				Total:      sale.UnitPrice.Mul(sale.Quantity),
				Date:       sale.Date,
			}
			if in.CustomerID != nil {
				evt.CustomerID = *in.CustomerID
			}
			events = append(events, evt)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Post-commit: eventos y cache, nunca afectan el resultado de la venta.
	if uc.publisher != nil {
		for _, evt := range events {
			uc.publisher.PublishSaleCreated(ctx, evt)
		}
	}
	if uc.cache != nil {
		uc.cache.InvalidateReports(ctx)
	}
	return responses, nil
}
