package stock

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Distripos-api/internal/application/dto"
	"github.com/jhoicas/Distripos-api/internal/application/sales"
	"github.com/jhoicas/Distripos-api/internal/domain"
	"github.com/jhoicas/Distripos-api/internal/domain/entity"
	"github.com/jhoicas/Distripos-api/internal/domain/pricing"
	"github.com/jhoicas/Distripos-api/internal/domain/repository"
)

// UseCase casos de uso del inventario central: alta, edición con propagación a
// tiendas, reabastecimiento, emisión a tiendas y baja.
type UseCase struct {
	tx            sales.TxRunner
	stockRepo     repository.StockRepository
	shopStockRepo repository.ShopStockRepository
	shopRepo      repository.ShopRepository
	categoryRepo  repository.CategoryRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	tx sales.TxRunner,
	stockRepo repository.StockRepository,
	shopStockRepo repository.ShopStockRepository,
	shopRepo repository.ShopRepository,
	categoryRepo repository.CategoryRepository,
) *UseCase {
	return &UseCase{
		tx:            tx,
		stockRepo:     stockRepo,
		shopStockRepo: shopStockRepo,
		shopRepo:      shopRepo,
		categoryRepo:  categoryRepo,
	}
}

// Create registra un producto nuevo con sus derivados calculados.
func (uc *UseCase) Create(ctx context.Context, in dto.CreateStockRequest) (*dto.StockResponse, error) {
	if in.Name == "" || in.ProductCode == "" || in.Qty.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.stockRepo.GetByProductCode(in.ProductCode)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	if in.CategoryID != "" {
		category, err := uc.categoryRepo.GetByID(in.CategoryID)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return nil, domain.ErrNotFound
		}
	}

	now := time.Now()
	date := in.Date
	if date.IsZero() {
		date = now
	}
	s := &entity.Stock{
		ID:            uuid.New().String(),
		CategoryID:    in.CategoryID,
		ProductCode:   in.ProductCode,
		Name:          in.Name,
		Description:   in.Description,
		Price:         in.Price,
		PurchasePrice: in.PurchasePrice,
		Qty:           in.Qty,
		PV:            in.PV,
		BV:            in.BV,
		Date:          date,
		HalfPrice:     in.HalfPrice,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	pricing.RecalculateStockTotals(s)
	if err := uc.stockRepo.Create(s); err != nil {
		return nil, err
	}
	resp := toStockResponse(s)
	return &resp, nil
}

// GetByID obtiene un producto por ID.
func (uc *UseCase) GetByID(ctx context.Context, id string) (*dto.StockResponse, error) {
	s, err := uc.stockRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, nil
	}
	resp := toStockResponse(s)
	return &resp, nil
}

// List lista productos con paginación.
func (uc *UseCase) List(ctx context.Context, limit, offset int) ([]dto.StockResponse, error) {
	list, err := uc.stockRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	return toStockResponses(list), nil
}

// Search busca productos por nombre o código.
func (uc *UseCase) Search(ctx context.Context, term string) ([]dto.StockResponse, error) {
	list, err := uc.stockRepo.Search(term)
	if err != nil {
		return nil, err
	}
	return toStockResponses(list), nil
}

// Update edita el producto, recalcula derivados y reescribe el snapshot de
// términos (código, nombre, precio, pv, bv) en todas las tiendas que lo tengan.
func (uc *UseCase) Update(ctx context.Context, id string, in dto.UpdateStockRequest) (*dto.StockResponse, error) {
	s, err := uc.stockRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, nil
	}
	if in.CategoryID != nil {
		s.CategoryID = *in.CategoryID
	}
	if in.ProductCode != nil {
		s.ProductCode = *in.ProductCode
	}
	if in.Name != nil {
		s.Name = *in.Name
	}
	if in.Description != nil {
		s.Description = *in.Description
	}
	if in.Price != nil {
		s.Price = *in.Price
	}
	if in.PurchasePrice != nil {
		s.PurchasePrice = *in.PurchasePrice
	}
	if in.Qty != nil {
		if in.Qty.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		s.Qty = *in.Qty
	}
	if in.PV != nil {
		s.PV = *in.PV
	}
	if in.BV != nil {
		s.BV = *in.BV
	}
	if in.HalfPrice != nil {
		s.HalfPrice = *in.HalfPrice
	}
	s.UpdatedAt = time.Now()
	pricing.RecalculateStockTotals(s)
	if err := uc.stockRepo.Update(s); err != nil {
		return nil, err
	}
	if err := uc.shopStockRepo.RefreshTerms(
		s.ID, s.ProductCode, s.Name, s.Price, s.PV, s.BV, s.HalfPrice,
	); err != nil {
		return nil, err
	}
	resp := toStockResponse(s)
	return &resp, nil
}

// Restock reabastece: suma la cantidad del lote y sobreescribe precio, pv, bv y
// fecha con los términos nuevos, con la fila bloqueada.
func (uc *UseCase) Restock(ctx context.Context, id string, in dto.RestockRequest) (*dto.StockResponse, error) {
	if !in.Qty.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	var updated *entity.Stock
	err := uc.tx.Run(ctx, func(
		_ repository.SaleRepository,
		_ repository.ShopStockRepository,
		stockRepo repository.StockRepository,
		_ repository.LoanRepository,
		_ repository.PaymentRepository,
	) error {
		s, err := stockRepo.GetForUpdate(id)
		if err != nil {
			return err
		}
		if s == nil {
			return domain.ErrNotFound
		}
		s.Qty = s.Qty.Add(in.Qty)
		s.Price = in.Price
		s.PurchasePrice = in.PurchasePrice
		s.PV = in.PV
		s.BV = in.BV
		if !in.Date.IsZero() {
			s.Date = in.Date
		}
		s.UpdatedAt = time.Now()
		pricing.RecalculateStockTotals(s)
		if err := stockRepo.Update(s); err != nil {
			return err
		}
		updated = s
		return nil
	})
	if err != nil {
		return nil, err
	}
	resp := toStockResponse(updated)
	return &resp, nil
}

// IssueToShop mueve cantidad del inventario central al snapshot de una tienda,
// en una transacción: descuenta la fila canónica bloqueada y hace upsert aditivo
// de la fila de la tienda con los términos vigentes.
func (uc *UseCase) IssueToShop(ctx context.Context, stockID string, in dto.IssueStockRequest) (*dto.ShopStockResponse, error) {
	if in.ShopID == "" || !in.Qty.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	shop, err := uc.shopRepo.GetByID(in.ShopID)
	if err != nil {
		return nil, err
	}
	if shop == nil {
		return nil, domain.ErrNotFound
	}

	var issued *entity.ShopStock
	err = uc.tx.Run(ctx, func(
		_ repository.SaleRepository,
		shopStockRepo repository.ShopStockRepository,
		stockRepo repository.StockRepository,
		_ repository.LoanRepository,
		_ repository.PaymentRepository,
	) error {
		s, err := stockRepo.GetForUpdate(stockID)
		if err != nil {
			return err
		}
		if s == nil {
			return domain.ErrNotFound
		}
		if s.Qty.LessThan(in.Qty) {
			return domain.ErrInsufficientStock
		}
		s.Qty = s.Qty.Sub(in.Qty)
		s.UpdatedAt = time.Now()
		pricing.RecalculateStockTotals(s)
		if err := stockRepo.Update(s); err != nil {
			return err
		}

		row := &entity.ShopStock{
			ShopID:      in.ShopID,
			StockID:     stockID,
			ProductCode: s.ProductCode,
			Name:        s.Name,
			Price:       s.Price,
			Qty:         in.Qty,
			PV:          s.PV,
			BV:          s.BV,
			IssuedAt:    time.Now(),
			HalfPrice:   s.HalfPrice,
		}
		pricing.RecalculateShopStockTotals(row)
		if err := shopStockRepo.Upsert(row); err != nil {
			return err
		}
		issued, err = shopStockRepo.Get(in.ShopID, stockID)
		return err
	})
	if err != nil {
		return nil, err
	}
	resp := toShopStockResponse(issued)
	return &resp, nil
}

// Delete elimina el producto: primero purga su snapshot de todas las tiendas y
// después la fila canónica, en una transacción.
func (uc *UseCase) Delete(ctx context.Context, id string) error {
	return uc.tx.Run(ctx, func(
		_ repository.SaleRepository,
		shopStockRepo repository.ShopStockRepository,
		stockRepo repository.StockRepository,
		_ repository.LoanRepository,
		_ repository.PaymentRepository,
	) error {
		s, err := stockRepo.GetByID(id)
		if err != nil {
			return err
		}
		if s == nil {
			return domain.ErrNotFound
		}
		if err := shopStockRepo.DeleteByStock(id); err != nil {
			return err
		}
		return stockRepo.Delete(id)
	})
}

func toStockResponse(s *entity.Stock) dto.StockResponse {
	return dto.StockResponse{
		ID:            s.ID,
		CategoryID:    s.CategoryID,
		ProductCode:   s.ProductCode,
		Name:          s.Name,
		Description:   s.Description,
		Price:         s.Price,
		PurchasePrice: s.PurchasePrice,
		Qty:           s.Qty,
		PV:            s.PV,
		BV:            s.BV,
		TotalPV:       s.TotalPV,
		TotalBV:       s.TotalBV,
		Total:         s.Total,
		Date:          s.Date,
		HalfPrice:     s.HalfPrice,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}

func toStockResponses(list []*entity.Stock) []dto.StockResponse {
	items := make([]dto.StockResponse, 0, len(list))
	for _, s := range list {
		items = append(items, toStockResponse(s))
	}
	return items
}

func toShopStockResponse(ss *entity.ShopStock) dto.ShopStockResponse {
	if ss == nil {
		return dto.ShopStockResponse{}
	}
	return dto.ShopStockResponse{
		ShopID:      ss.ShopID,
		StockID:     ss.StockID,
		ProductCode: ss.ProductCode,
		Name:        ss.Name,
		Price:       ss.Price,
		Qty:         ss.Qty,
		PV:          ss.PV,
		BV:          ss.BV,
		TotalPV:     ss.TotalPV,
		TotalBV:     ss.TotalBV,
		Total:       ss.Total,
		IssuedAt:    ss.IssuedAt,
		HalfPrice:   ss.HalfPrice,
	}
}
