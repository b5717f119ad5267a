package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateStockRequest entrada para crear un producto del inventario central.
type CreateStockRequest struct {
	CategoryID    string          `json:"category_id"`
	ProductCode   string          `json:"product_code"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	Qty           decimal.Decimal `json:"qty"`
	PV            decimal.Decimal `json:"pv"`
	BV            decimal.Decimal `json:"bv"`
	Date          time.Time       `json:"date"`
	HalfPrice     bool            `json:"half_price"`
}

// UpdateStockRequest entrada para editar un producto. Los campos nil no se tocan.
// Un cambio de precio/pv/bv se propaga al snapshot de todas las tiendas.
type UpdateStockRequest struct {
	CategoryID    *string          `json:"category_id"`
	ProductCode   *string          `json:"product_code"`
	Name          *string          `json:"name"`
	Description   *string          `json:"description"`
	Price         *decimal.Decimal `json:"price"`
	PurchasePrice *decimal.Decimal `json:"purchase_price"`
	Qty           *decimal.Decimal `json:"qty"`
	PV            *decimal.Decimal `json:"pv"`
	BV            *decimal.Decimal `json:"bv"`
	HalfPrice     *bool            `json:"half_price"`
}

// RestockRequest entrada para reabastecer: suma cantidad y sobreescribe los
// términos (precio, pv, bv, fecha) con los del nuevo lote.
type RestockRequest struct {
	Qty           decimal.Decimal `json:"qty"`
	Price         decimal.Decimal `json:"price"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	PV            decimal.Decimal `json:"pv"`
	BV            decimal.Decimal `json:"bv"`
	Date          time.Time       `json:"date"`
}

// IssueStockRequest entrada para emitir cantidad del inventario central a una tienda.
type IssueStockRequest struct {
	ShopID string          `json:"shop_id"`
	Qty    decimal.Decimal `json:"qty"`
}

// StockResponse salida de un producto del inventario central.
type StockResponse struct {
	ID            string          `json:"id"`
	CategoryID    string          `json:"category_id"`
	ProductCode   string          `json:"product_code"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	Qty           decimal.Decimal `json:"qty"`
	PV            decimal.Decimal `json:"pv"`
	BV            decimal.Decimal `json:"bv"`
	TotalPV       decimal.Decimal `json:"total_pv"`
	TotalBV       decimal.Decimal `json:"total_bv"`
	Total         decimal.Decimal `json:"total"`
	Date          time.Time       `json:"date"`
	HalfPrice     bool            `json:"half_price"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ShopStockResponse fila de stock emitido a una tienda.
type ShopStockResponse struct {
	ShopID      string          `json:"shop_id"`
	StockID     string          `json:"stock_id"`
	ProductCode string          `json:"product_code"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Qty         decimal.Decimal `json:"qty"`
	PV          decimal.Decimal `json:"pv"`
	BV          decimal.Decimal `json:"bv"`
	TotalPV     decimal.Decimal `json:"total_pv"`
	TotalBV     decimal.Decimal `json:"total_bv"`
	Total       decimal.Decimal `json:"total"`
	IssuedAt    time.Time       `json:"issued_at"`
	HalfPrice   bool            `json:"half_price"`
}

// CreateCategoryRequest entrada para crear una categoría.
type CreateCategoryRequest struct {
	Name string `json:"name"`
}

// CategoryResponse salida de una categoría.
type CategoryResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
