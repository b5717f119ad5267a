package entity

import "time"

// Category agrupa los productos del catálogo (ej. suplementos, cuidado personal).
type Category struct {
	ID        string
	Name      string
	CreatedAt time.Time
}
