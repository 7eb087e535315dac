package dto

import "github.com/vigiamar/operaciones-api/internal/models"

// UserDTO represents a user in API responses
type UserDTO struct {
	ID     uint64 `json:"id"`
	Nombre string `json:"nombre"`
	Email  string `json:"email"`
	Rol    string `json:"rol"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:     user.ID,
		Nombre: user.Name,
		Email:  user.Email,
		Rol:    user.Rol,
	}
}
