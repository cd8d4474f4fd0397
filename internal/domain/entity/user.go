package entity

import "time"

// Roles de usuario. El núcleo confía en el userID/rol que entrega la capa de
// identidad; la autorización (ej. borrar requiere admin) se aplica en el borde HTTP.
const (
	RoleAdmin   = "admin"
	RoleCashier = "cashier"
)

// User representa un usuario autenticable del sistema.
type User struct {
	ID           string
	Username     string // único
	PasswordHash string // bcrypt
	Role         string // admin | cashier
	IsActive     bool
	CreatedAt    time.Time
}
