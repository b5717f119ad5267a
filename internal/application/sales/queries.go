package sales

import (
	"context"
	"strings"

	"github.com/jhoicas/Distripos-api/internal/application/dto"
	"github.com/jhoicas/Distripos-api/internal/domain"
	"github.com/jhoicas/Distripos-api/internal/domain/repository"
)

// pageSize tamaño del bloque de carga incremental del listado de ventas.
const pageSize = 30

// GetSales devuelve las ventas más recientes, tope 30×page (carga incremental).
func (uc *UseCase) GetSales(ctx context.Context, page int) ([]dto.SaleResponse, error) {
	if page < 1 {
		page = 1
	}
	rows, err := uc.saleRepo.ListNewest(pageSize * page)
	if err != nil {
		return nil, err
	}
	return toSaleResponses(rows), nil
}

// SearchSales busca ventas con filtros dinámicos por producto, tienda,
// distribuidor y rango de fechas.
func (uc *UseCase) SearchSales(ctx context.Context, in dto.SearchSalesRequest) ([]dto.SaleResponse, error) {
	rows, err := uc.saleRepo.Search(repository.SaleFilter{
		Search:      in.Search,
		ShopID:      in.ShopID,
		Distributor: in.Distributor,
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
	})
	if err != nil {
		return nil, err
	}
	return toSaleResponses(rows), nil
}

// GetByID obtiene una venta con sus nombres resueltos.
func (uc *UseCase) GetByID(ctx context.Context, id string) (*dto.SaleResponse, error) {
	row, err := uc.saleRepo.GetRowByID(id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, nil
	}
	resp := toSaleResponse(row)
	return &resp, nil
}

// Delete elimina la venta en una transacción: restaura la cantidad vendida en la
// fila canónica del producto (no en el snapshot de la tienda) y borra los
// préstamos asociados con sus abonos.
func (uc *UseCase) Delete(ctx context.Context, id string) error {
	err := uc.tx.Run(ctx, func(
		saleRepo repository.SaleRepository,
		_ repository.ShopStockRepository,
		stockRepo repository.StockRepository,
		loanRepo repository.LoanRepository,
		_ repository.PaymentRepository,
	) error {
		sale, err := saleRepo.GetByID(id)
		if err != nil {
			return err
		}
		if sale == nil {
			return domain.ErrNotFound
		}
		if err := stockRepo.AddQty(sale.StockID, sale.Quantity); err != nil {
			return err
		}
		if err := loanRepo.DeleteBySale(id); err != nil {
			return err
		}
		return saleRepo.Delete(id)
	})
	if err != nil {
		return err
	}
	if uc.cache != nil {
		uc.cache.InvalidateReports(ctx)
	}
	return nil
}

// Receipt genera el comprobante en PDF de una venta.
func (uc *UseCase) Receipt(ctx context.Context, id string) ([]byte, error) {
	row, err := uc.saleRepo.GetRowByID(id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, domain.ErrNotFound
	}
	total := row.Sale.UnitPrice.Mul(row.Sale.Quantity)
	receipt := &Receipt{
		Number:       "V-" + strings.ToUpper(shortID(row.Sale.ID)),
		Date:         row.Sale.Date,
		ShopName:     row.ShopName,
		CustomerName: row.CustomerName,
		ClientType:   row.Sale.ClientType,
		Lines: []ReceiptLine{{
			ProductName: row.StockName,
			ProductCode: row.ProductCode,
			Quantity:    row.Sale.Quantity,
			UnitPrice:   row.Sale.UnitPrice,
			Subtotal:    total,
		}},
		Total:    total,
		OnCredit: !row.Sale.Paid,
	}
	return uc.receipts.GenerateReceiptPDF(ctx, receipt)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func toSaleResponse(row *repository.SaleRow) dto.SaleResponse {
	return dto.SaleResponse{
		ID:           row.Sale.ID,
		Date:         row.Sale.Date,
		Quantity:     row.Sale.Quantity,
		Paid:         row.Sale.Paid,
		ClientType:   row.Sale.ClientType,
		UnitPrice:    row.Sale.UnitPrice,
		Total:        row.Sale.UnitPrice.Mul(row.Sale.Quantity),
		StockID:      row.Sale.StockID,
		StockName:    row.StockName,
		ProductCode:  row.ProductCode,
		ShopID:       row.Sale.ShopID,
		ShopName:     row.ShopName,
		CustomerID:   row.Sale.CustomerID,
		CustomerName: row.CustomerName,
		CreatedAt:    row.Sale.CreatedAt,
	}
}

func toSaleResponses(rows []*repository.SaleRow) []dto.SaleResponse {
	items := make([]dto.SaleResponse, 0, len(rows))
	for _, row := range rows {
		items = append(items, toSaleResponse(row))
	}
	return items
}
