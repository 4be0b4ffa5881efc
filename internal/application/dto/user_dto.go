package dto

import "time"

// CreateUserRequest alta de usuario (solo administrador).
type CreateUserRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
	FullName string `json:"full_name"`
}

// UpdateUserRequest actualización parcial; campos nil no se tocan.
type UpdateUserRequest struct {
	Email    *string `json:"email"`
	Role     *string `json:"role"`
	FullName *string `json:"full_name"`
	Active   *bool   `json:"active"`
	Password *string `json:"password"`
}

// UserResponse representación pública del usuario (sin hash).
type UserResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	FullName  string    `json:"full_name"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}
