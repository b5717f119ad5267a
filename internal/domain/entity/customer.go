package entity

import "time"

// Customer representa un distribuidor/cliente registrado.
// PackageID es opcional; nil significa sin paquete asociado.
type Customer struct {
	ID        string
	Name      string
	Email     string
	Location  string
	Phone     string
	PackageID *string
	CreatedAt time.Time
	UpdatedAt time.Time
}
