package entity

import "time"

// Roles de la aplicación.
const (
	RoleAdmin    = "administrador"
	RoleSeller   = "vendedor"
	RoleReadOnly = "consulta"
)

// ValidRole valida el rol.
func ValidRole(r string) bool {
	switch r {
	case RoleAdmin, RoleSeller, RoleReadOnly:
		return true
	}
	return false
}

// User representa un usuario del sistema.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	Role         string
	FullName     string
	Active       bool
	CreatedAt    time.Time
}
