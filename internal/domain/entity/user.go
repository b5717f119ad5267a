package entity

import "time"

// Roles de personal.
const (
	RoleAdmin    = "admin"
	RoleVendedor = "vendedor"
)

// User representa un miembro del personal con acceso al sistema.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         string
	Status       string // "active" | "disabled"
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
