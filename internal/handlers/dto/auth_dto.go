package dto

import (
	"time"

	"github.com/viniciusmp/pessoas-backend/internal/domain/entities"
)

// RegisterRequest representa a requisição de registro
type RegisterRequest struct {
	Name     string `json:"name" binding:"required,notblank,max=255"`
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,min=6"`
}

// LoginRequest representa a requisição de login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// UserResponse representa a resposta de um usuário.
// A senha (e o hash) nunca aparecem na resposta.
type UserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// ToUserResponse converte uma entidade User para UserResponse
func ToUserResponse(user *entities.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email.String(),
		CreatedAt: user.CreatedAt,
	}
}
