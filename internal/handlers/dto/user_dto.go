package dto

import (
	"time"

	"github.com/rafabene/avaliapro-backend/internal/domain/entities"
)

// UserResponse representa a resposta de um usuário
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Address   string    `json:"address,omitempty"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// ToUserResponse converte uma entidade User para UserResponse
func ToUserResponse(user *entities.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Email:     user.Email.String(),
		Name:      user.Name,
		Address:   user.Address,
		Role:      string(user.Role),
		CreatedAt: user.CreatedAt,
	}
}

// ToUserResponses converte uma lista de entidades User para UserResponse
func ToUserResponses(users []*entities.User) []UserResponse {
	responses := make([]UserResponse, len(users))
	for i, user := range users {
		responses[i] = ToUserResponse(user)
	}
	return responses
}

// UserSummary é a projeção resumida de um usuário em respostas aninhadas
type UserSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ToUserSummary converte uma entidade User para UserSummary
func ToUserSummary(user *entities.User) *UserSummary {
	if user == nil {
		return nil
	}
	return &UserSummary{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email.String(),
	}
}
