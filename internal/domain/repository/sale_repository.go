package repository

import (
	"time"

	"github.com/jhoicas/Distripos-api/internal/domain/entity"
)

// SaleFilter filtros dinámicos para la búsqueda de ventas.
// Los campos vacíos no participan del WHERE.
type SaleFilter struct {
	Search      string // nombre de producto (LIKE)
	ShopID      string
	Distributor string // nombre del cliente (LIKE)
	StartDate   *time.Time
	EndDate     *time.Time
}

// SaleRow resultado de lectura con nombres resueltos de producto, tienda y cliente.
type SaleRow struct {
	Sale         entity.Sale
	StockName    string
	ProductCode  string
	ShopName     string
	CustomerName string
}

// SaleRepository define el puerto de persistencia para Sale (DIP).
type SaleRepository interface {
	Create(sale *entity.Sale) error
	GetByID(id string) (*entity.Sale, error)
	GetRowByID(id string) (*SaleRow, error)
	// ListNewest devuelve las ventas más recientes, tope limit (carga incremental, sin offset).
	ListNewest(limit int) ([]*SaleRow, error)
	Search(filter SaleFilter) ([]*SaleRow, error)
	Delete(id string) error
}
