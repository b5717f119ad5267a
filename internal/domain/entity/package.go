package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Package representa un paquete de afiliación del plan de distribución.
type Package struct {
	ID              string
	Name            string
	Amount          decimal.Decimal
	RegistrationFee decimal.Decimal
	IsPaid          bool
	CreatedAt       time.Time
}
