package dto

import (
	"time"

	"github.com/rafabene/avaliapro-backend/internal/domain/entities"
)

// CreateStoreRequest representa a requisição para criar uma loja.
// Validação de shape no binding; faixas e política ficam no serviço.
type CreateStoreRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required"`
	Address string `json:"address" binding:"required"`
	OwnerID string `json:"owner_id" binding:"omitempty,uuid"`
}

// UpdateStoreRequest representa a requisição para atualizar uma loja
type UpdateStoreRequest struct {
	Name    *string `json:"name"`
	Email   *string `json:"email"`
	Address *string `json:"address"`
	OwnerID *string `json:"owner_id" binding:"omitempty,uuid"`
}

// StoreResponse representa a resposta de uma loja.
// average_rating e total_ratings são derivados, nunca aceitos na entrada.
type StoreResponse struct {
	ID            string           `json:"id"`
	Name          string           `json:"name"`
	Email         string           `json:"email"`
	Address       string           `json:"address"`
	AverageRating float64          `json:"average_rating"`
	TotalRatings  int64            `json:"total_ratings"`
	Owner         *UserSummary     `json:"owner,omitempty"`
	UserRating    *int             `json:"user_rating,omitempty"`
	UserComment   *string          `json:"user_comment,omitempty"`
	Ratings       []RatingResponse `json:"ratings,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
}

// ToStoreResponse converte uma entidade Store para StoreResponse
func ToStoreResponse(store *entities.Store) StoreResponse {
	response := StoreResponse{
		ID:            store.ID,
		Name:          store.Name,
		Email:         store.Email.String(),
		Address:       store.Address,
		AverageRating: store.AverageRating,
		TotalRatings:  store.TotalRatings,
		Owner:         ToUserSummary(store.Owner),
		CreatedAt:     store.CreatedAt,
	}

	if store.UserRating != nil {
		response.UserRating = &store.UserRating.Value
		response.UserComment = store.UserRating.Comment
	}

	for _, rating := range store.Ratings {
		response.Ratings = append(response.Ratings, ToRatingResponse(rating))
	}

	return response
}

// ToStoreResponses converte uma lista de entidades Store para StoreResponse
func ToStoreResponses(stores []*entities.Store) []StoreResponse {
	responses := make([]StoreResponse, len(stores))
	for i, store := range stores {
		responses[i] = ToStoreResponse(store)
	}
	return responses
}
