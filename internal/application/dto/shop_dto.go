package dto

import "time"

// CreateShopRequest entrada para crear un punto de venta.
type CreateShopRequest struct {
	Name         string `json:"name"`
	SerialNumber string `json:"serial_number"`
	Location     string `json:"location"`
	Contact      string `json:"contact"`
	UserID       string `json:"user_id"`
}

// UpdateShopRequest entrada para editar un punto de venta. Los campos nil no se tocan.
type UpdateShopRequest struct {
	Name         *string `json:"name"`
	SerialNumber *string `json:"serial_number"`
	Location     *string `json:"location"`
	Contact      *string `json:"contact"`
	UserID       *string `json:"user_id"`
}

// ShopResponse salida de un punto de venta.
type ShopResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	SerialNumber string    `json:"serial_number"`
	Location     string    `json:"location"`
	Contact      string    `json:"contact"`
	UserID       string    `json:"user_id"`
	CreatedAt    time.Time `json:"created_at"`
}

// ShopDetailResponse punto de venta con su stock emitido.
type ShopDetailResponse struct {
	Shop   ShopResponse        `json:"shop"`
	Stocks []ShopStockResponse `json:"stocks"`
}
