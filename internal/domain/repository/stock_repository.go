package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Distripos-api/internal/domain/entity"
)

// StockRepository define el puerto de persistencia para Stock (DIP).
type StockRepository interface {
	Create(stock *entity.Stock) error
	GetByID(id string) (*entity.Stock, error)
	GetByProductCode(code string) (*entity.Stock, error)
	// GetForUpdate bloquea la fila (SELECT FOR UPDATE); usar dentro de una transacción.
	GetForUpdate(id string) (*entity.Stock, error)
	Update(stock *entity.Stock) error
	// AddQty suma delta (puede ser negativo) a la cantidad canónica y recalcula
	// los derivados en una sola sentencia atómica.
	AddQty(id string, delta decimal.Decimal) error
	List(limit, offset int) ([]*entity.Stock, error)
	Search(term string) ([]*entity.Stock, error)
	Delete(id string) error
}
