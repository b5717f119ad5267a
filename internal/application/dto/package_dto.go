package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreatePackageRequest entrada para crear un paquete de afiliación.
type CreatePackageRequest struct {
	Name            string          `json:"name"`
	Amount          decimal.Decimal `json:"amount"`
	RegistrationFee decimal.Decimal `json:"registration_fee"`
	IsPaid          bool            `json:"is_paid"`
}

// UpdatePackageRequest entrada para editar un paquete. Los campos nil no se tocan.
type UpdatePackageRequest struct {
	Name            *string          `json:"name"`
	Amount          *decimal.Decimal `json:"amount"`
	RegistrationFee *decimal.Decimal `json:"registration_fee"`
	IsPaid          *bool            `json:"is_paid"`
}

// PackageResponse salida de un paquete.
type PackageResponse struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Amount          decimal.Decimal `json:"amount"`
	RegistrationFee decimal.Decimal `json:"registration_fee"`
	IsPaid          bool            `json:"is_paid"`
	CreatedAt       time.Time       `json:"created_at"`
}
