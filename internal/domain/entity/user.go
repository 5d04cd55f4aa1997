package entity

import "time"

// Roles válidos para User.
const (
	RoleOwner = "owner"
	RoleStaff = "staff"
)

// User representa un usuario del sistema (pertenece a un Shop).
type User struct {
	ID           string
	ShopID       string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string // owner, staff
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
