package dto

import (
	"github.com/rafabene/avaliapro-backend/internal/services"
)

// AdminDashboardResponse é a visão global do admin
type AdminDashboardResponse struct {
	TotalUsers     int64            `json:"total_users"`
	TotalOwners    int64            `json:"total_owners"`
	TotalStores    int64            `json:"total_stores"`
	TotalRatings   int64            `json:"total_ratings"`
	AverageRating  float64          `json:"average_rating"`
	RecentStores   []StoreResponse  `json:"recent_stores"`
	TopRatedStores []StoreResponse  `json:"top_rated_stores"`
	RecentRatings  []RatingResponse `json:"recent_ratings"`
}

// ToAdminDashboardResponse converte as estatísticas do admin
func ToAdminDashboardResponse(stats *services.AdminDashboardStats) AdminDashboardResponse {
	return AdminDashboardResponse{
		TotalUsers:     stats.TotalUsers,
		TotalOwners:    stats.TotalOwners,
		TotalStores:    stats.TotalStores,
		TotalRatings:   stats.TotalRatings,
		AverageRating:  stats.AverageRating,
		RecentStores:   ToStoreResponses(stats.RecentStores),
		TopRatedStores: ToStoreResponses(stats.TopRatedStores),
		RecentRatings:  ToRatingResponses(stats.RecentRatings),
	}
}

// OwnerDashboardResponse é a visão do owner sobre as lojas dele
type OwnerDashboardResponse struct {
	TotalStores   int64            `json:"total_stores"`
	TotalRatings  int64            `json:"total_ratings"`
	AverageRating float64          `json:"average_rating"`
	BestStore     *StoreResponse   `json:"best_store,omitempty"`
	RecentRatings []RatingResponse `json:"recent_ratings"`
	Stores        []StoreResponse  `json:"stores"`
}

// ToOwnerDashboardResponse converte as estatísticas do owner
func ToOwnerDashboardResponse(stats *services.OwnerDashboardStats) OwnerDashboardResponse {
	response := OwnerDashboardResponse{
		TotalStores:   stats.TotalStores,
		TotalRatings:  stats.TotalRatings,
		AverageRating: stats.AverageRating,
		RecentRatings: ToRatingResponses(stats.RecentRatings),
		Stores:        ToStoreResponses(stats.Stores),
	}
	if stats.BestStore != nil {
		best := ToStoreResponse(stats.BestStore)
		response.BestStore = &best
	}
	return response
}

// UserDashboardResponse é a visão pessoal do usuário
type UserDashboardResponse struct {
	TotalRatings      int64            `json:"total_ratings"`
	FavoriteRating    *RatingResponse  `json:"favorite_rating,omitempty"`
	RecentActivity    []RatingResponse `json:"recent_activity"`
	RecommendedStores []StoreResponse  `json:"recommended_stores"`
}

// ToUserDashboardResponse converte as estatísticas do usuário
func ToUserDashboardResponse(stats *services.UserDashboardStats) UserDashboardResponse {
	response := UserDashboardResponse{
		TotalRatings:      stats.TotalRatings,
		RecentActivity:    ToRatingResponses(stats.RecentActivity),
		RecommendedStores: ToStoreResponses(stats.RecommendedStores),
	}
	if stats.FavoriteRating != nil {
		favorite := ToRatingResponse(stats.FavoriteRating)
		response.FavoriteRating = &favorite
	}
	return response
}
