package dto

import (
	"time"

	"github.com/rafabene/avaliapro-backend/internal/domain/entities"
)

// CreateRatingRequest representa a requisição para criar uma avaliação.
// A faixa 1-5 é validada no serviço, depois da resolução da loja.
type CreateRatingRequest struct {
	StoreID string  `json:"store_id" binding:"required,uuid"`
	Rating  int     `json:"rating" binding:"required"`
	Comment *string `json:"comment"`
	UserID  string  `json:"user_id" binding:"omitempty,uuid"` // somente admin
}

// UpdateRatingRequest representa a requisição para atualizar uma avaliação
type UpdateRatingRequest struct {
	Rating  *int    `json:"rating"`
	Comment *string `json:"comment"`
}

// RatingResponse representa a resposta de uma avaliação
type RatingResponse struct {
	ID        string       `json:"id"`
	Rating    int          `json:"rating"`
	Comment   *string      `json:"comment,omitempty"`
	UserID    string       `json:"user_id"`
	StoreID   string       `json:"store_id"`
	User      *UserSummary `json:"user,omitempty"`
	StoreName string       `json:"store_name,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
}

// ToRatingResponse converte uma entidade Rating para RatingResponse
func ToRatingResponse(rating *entities.Rating) RatingResponse {
	response := RatingResponse{
		ID:        rating.ID,
		Rating:    rating.Value,
		Comment:   rating.Comment,
		UserID:    rating.UserID,
		StoreID:   rating.StoreID,
		User:      ToUserSummary(rating.User),
		CreatedAt: rating.CreatedAt,
	}

	if rating.Store != nil {
		response.StoreName = rating.Store.Name
	}

	return response
}

// ToRatingResponses converte uma lista de entidades Rating para RatingResponse
func ToRatingResponses(ratings []*entities.Rating) []RatingResponse {
	responses := make([]RatingResponse, len(ratings))
	for i, rating := range ratings {
		responses[i] = ToRatingResponse(rating)
	}
	return responses
}
