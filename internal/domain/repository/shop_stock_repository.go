package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Distripos-api/internal/domain/entity"
)

// ShopStockRepository define el puerto para el stock emitido a tiendas
// (tabla relacional shop_stocks que reemplaza al snapshot embebido).
type ShopStockRepository interface {
	Get(shopID, stockID string) (*entity.ShopStock, error)
	// GetForUpdate bloquea la fila de la tienda (SELECT FOR UPDATE) para cerrar
	// la carrera de decrementos concurrentes; usar dentro de una transacción.
	GetForUpdate(shopID, stockID string) (*entity.ShopStock, error)
	// Upsert inserta la fila o suma la cantidad a la existente, refrescando
	// el snapshot de términos (precio, pv, bv) e issued_at.
	Upsert(row *entity.ShopStock) error
	Update(row *entity.ShopStock) error
	Delete(shopID, stockID string) error
	// DeleteByStock purga el producto de todas las tiendas (previo a borrar la fila canónica).
	DeleteByStock(stockID string) error
	// RefreshTerms reescribe el snapshot (código, nombre, precio, pv, bv, half_price)
	// en todas las tiendas que tengan el producto y recalcula sus derivados.
	RefreshTerms(stockID, productCode, name string, price, pv, bv decimal.Decimal, halfPrice bool) error
	ListByShop(shopID string) ([]*entity.ShopStock, error)
}
