package entity

import "time"

// Shop representa un punto de venta de la distribuidora.
type Shop struct {
	ID           string
	Name         string
	SerialNumber string
	Location     string
	Contact      string
	UserID       string // encargado del punto de venta
	CreatedAt    time.Time
}
