package repository

import "github.com/jhoicas/Distripos-api/internal/domain/entity"

// ShopRepository define el puerto de persistencia para Shop (DIP).
type ShopRepository interface {
	Create(shop *entity.Shop) error
	GetByID(id string) (*entity.Shop, error)
	Update(shop *entity.Shop) error
	List(limit, offset int) ([]*entity.Shop, error)
	Delete(id string) error
}
