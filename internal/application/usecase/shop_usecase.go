package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Distripos-api/internal/application/dto"
	"github.com/jhoicas/Distripos-api/internal/domain"
	"github.com/jhoicas/Distripos-api/internal/domain/entity"
	"github.com/jhoicas/Distripos-api/internal/domain/repository"
)

// ShopUseCase casos de uso CRUD para puntos de venta.
type ShopUseCase struct {
	repo          repository.ShopRepository
	shopStockRepo repository.ShopStockRepository
}

// NewShopUseCase construye el caso de uso.
func NewShopUseCase(repo repository.ShopRepository, shopStockRepo repository.ShopStockRepository) *ShopUseCase {
	return &ShopUseCase{repo: repo, shopStockRepo: shopStockRepo}
}

// Create registra un punto de venta.
func (uc *ShopUseCase) Create(in dto.CreateShopRequest) (*dto.ShopResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	shop := &entity.Shop{
		ID:           uuid.New().String(),
		Name:         in.Name,
		SerialNumber: in.SerialNumber,
		Location:     in.Location,
		Contact:      in.Contact,
		UserID:       in.UserID,
		CreatedAt:    time.Now(),
	}
	if err := uc.repo.Create(shop); err != nil {
		return nil, err
	}
	return toShopResponse(shop), nil
}

// GetByID obtiene un punto de venta con su stock emitido.
func (uc *ShopUseCase) GetByID(id string) (*dto.ShopDetailResponse, error) {
	shop, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if shop == nil {
		return nil, nil
	}
	stocks, err := uc.shopStockRepo.ListByShop(id)
	if err != nil {
		return nil, err
	}
	detail := &dto.ShopDetailResponse{
		Shop:   *toShopResponse(shop),
		Stocks: make([]dto.ShopStockResponse, 0, len(stocks)),
	}
	for _, ss := range stocks {
		detail.Stocks = append(detail.Stocks, toShopStockDTO(ss))
	}
	return detail, nil
}

// Update edita un punto de venta. Los campos nil no se tocan.
func (uc *ShopUseCase) Update(id string, in dto.UpdateShopRequest) (*dto.ShopResponse, error) {
	shop, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if shop == nil {
		return nil, nil
	}
	if in.Name != nil {
		shop.Name = *in.Name
	}
	if in.SerialNumber != nil {
		shop.SerialNumber = *in.SerialNumber
	}
	if in.Location != nil {
		shop.Location = *in.Location
	}
	if in.Contact != nil {
		shop.Contact = *in.Contact
	}
	if in.UserID != nil {
		shop.UserID = *in.UserID
	}
	if err := uc.repo.Update(shop); err != nil {
		return nil, err
	}
	return toShopResponse(shop), nil
}

// List lista puntos de venta con paginación.
func (uc *ShopUseCase) List(limit, offset int) ([]dto.ShopResponse, error) {
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ShopResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toShopResponse(s))
	}
	return items, nil
}

// Delete elimina un punto de venta.
func (uc *ShopUseCase) Delete(id string) error {
	return uc.repo.Delete(id)
}

func toShopResponse(s *entity.Shop) *dto.ShopResponse {
	return &dto.ShopResponse{
		ID:           s.ID,
		Name:         s.Name,
		SerialNumber: s.SerialNumber,
		Location:     s.Location,
		Contact:      s.Contact,
		UserID:       s.UserID,
		CreatedAt:    s.CreatedAt,
	}
}

func toShopStockDTO(ss *entity.ShopStock) dto.ShopStockResponse {
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
