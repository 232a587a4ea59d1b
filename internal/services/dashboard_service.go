package services

import (
	"context"
	"math"

	"github.com/rafabene/avaliapro-backend/internal/domain/entities"
	"github.com/rafabene/avaliapro-backend/internal/domain/ports"
	"github.com/rafabene/avaliapro-backend/internal/domain/repositories"
)

// DashboardService monta as estatísticas por papel. Somente leitura:
// tudo deriva dos campos desnormalizados mantidos pelo agregador, sem
// reagregar linhas de avaliação (não há como divergir do invariante).
type DashboardService struct {
	userRepo   repositories.UserRepository
	storeRepo  repositories.StoreRepository
	ratingRepo repositories.RatingRepository
	logger     ports.Logger
}

// NewDashboardService cria um novo DashboardService
func NewDashboardService(
	userRepo repositories.UserRepository,
	storeRepo repositories.StoreRepository,
	ratingRepo repositories.RatingRepository,
	logger ports.Logger,
) *DashboardService {
	return &DashboardService{
		userRepo:   userRepo,
		storeRepo:  storeRepo,
		ratingRepo: ratingRepo,
		logger:     logger,
	}
}

// AdminDashboardStats é a visão global do admin
type AdminDashboardStats struct {
	TotalUsers     int64
	TotalOwners    int64
	TotalStores    int64
	TotalRatings   int64
	AverageRating  float64
	RecentStores   []*entities.Store
	TopRatedStores []*entities.Store
	RecentRatings  []*entities.Rating
}

// AdminStats monta a visão global: contagens, média global (média dos
// agregados das lojas avaliadas), lojas recentes e mais bem avaliadas,
// avaliações recentes
func (s *DashboardService) AdminStats(ctx context.Context) (*AdminDashboardStats, error) {
	totalUsers, err := s.userRepo.CountByRole(ctx, entities.RoleUser)
	if err != nil {
		return nil, err
	}
	totalOwners, err := s.userRepo.CountByRole(ctx, entities.RoleOwner)
	if err != nil {
		return nil, err
	}
	totalStores, err := s.storeRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	totalRatings, err := s.ratingRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	average, err := s.storeRepo.GlobalAverage(ctx)
	if err != nil {
		return nil, err
	}
	recentStores, err := s.storeRepo.Recent(ctx, 5)
	if err != nil {
		return nil, err
	}
	topRated, err := s.storeRepo.TopRated(ctx, 5)
	if err != nil {
		return nil, err
	}
	recentRatings, err := s.ratingRepo.Recent(ctx, 10)
	if err != nil {
		return nil, err
	}

	return &AdminDashboardStats{
		TotalUsers:     totalUsers,
		TotalOwners:    totalOwners,
		TotalStores:    totalStores,
		TotalRatings:   totalRatings,
		AverageRating:  roundTenth(average),
		RecentStores:   recentStores,
		TopRatedStores: topRated,
		RecentRatings:  recentRatings,
	}, nil
}

// OwnerDashboardStats é a visão do owner, restrita às lojas dele
type OwnerDashboardStats struct {
	TotalStores   int64
	TotalRatings  int64
	AverageRating float64
	BestStore     *entities.Store
	RecentRatings []*entities.Rating
	Stores        []*entities.Store
}

// OwnerStats monta a visão do owner a partir dos agregados das lojas dele
func (s *DashboardService) OwnerStats(ctx context.Context, ownerID string) (*OwnerDashboardStats, error) {
	stores, err := s.storeRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	stats := &OwnerDashboardStats{
		TotalStores: int64(len(stores)),
		Stores:      stores,
	}

	var sum float64
	storeIDs := make([]string, 0, len(stores))
	for _, store := range stores {
		stats.TotalRatings += store.TotalRatings
		sum += store.AverageRating
		storeIDs = append(storeIDs, store.ID)

		if stats.BestStore == nil || store.AverageRating > stats.BestStore.AverageRating {
			stats.BestStore = store
		}
	}
	if len(stores) > 0 {
		stats.AverageRating = roundTenth(sum / float64(len(stores)))
	}

	if len(storeIDs) > 0 {
		recent, err := s.ratingRepo.ListByStores(ctx, storeIDs, 5)
		if err != nil {
			return nil, err
		}
		stats.RecentRatings = recent
	}

	return stats, nil
}

// UserDashboardStats é a visão pessoal do usuário
type UserDashboardStats struct {
	TotalRatings      int64
	FavoriteRating    *entities.Rating
	RecentActivity    []*entities.Rating
	RecommendedStores []*entities.Store
}

// UserStats monta a visão pessoal: contagem de avaliações, a melhor
// nota dada e recomendações de lojas ainda não avaliadas, ranqueadas
// pela média global
func (s *DashboardService) UserStats(ctx context.Context, userID string) (*UserDashboardStats, error) {
	myRatings, err := s.ratingRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	stats := &UserDashboardStats{
		TotalRatings: int64(len(myRatings)),
	}

	rated := make(map[string]bool, len(myRatings))
	for _, rating := range myRatings {
		rated[rating.StoreID] = true
		if stats.FavoriteRating == nil || rating.Value > stats.FavoriteRating.Value {
			stats.FavoriteRating = rating
		}
	}

	if len(myRatings) > 5 {
		stats.RecentActivity = myRatings[:5]
	} else {
		stats.RecentActivity = myRatings
	}

	topRated, err := s.storeRepo.TopRated(ctx, 10)
	if err != nil {
		return nil, err
	}
	for _, store := range topRated {
		if rated[store.ID] {
			continue
		}
		stats.RecommendedStores = append(stats.RecommendedStores, store)
		if len(stats.RecommendedStores) == 5 {
			break
		}
	}

	return stats, nil
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}
