package repositories

import (
	"context"

	"github.com/rafabene/avaliapro-backend/internal/domain/entities"
)

// RatingRepository define a interface para persistência de avaliações
type RatingRepository interface {
	Create(ctx context.Context, rating *entities.Rating) error
	FindByID(ctx context.Context, id string) (*entities.Rating, error)
	FindByUserAndStore(ctx context.Context, userID, storeID string) (*entities.Rating, error)
	Update(ctx context.Context, rating *entities.Rating) error
	Delete(ctx context.Context, id string) error

	ListByStore(ctx context.Context, storeID string) ([]*entities.Rating, error)
	ListByUser(ctx context.Context, userID string) ([]*entities.Rating, error)
	ListByStores(ctx context.Context, storeIDs []string, limit int) ([]*entities.Rating, error)
	List(ctx context.Context, filters RatingFilters) ([]*entities.Rating, error)
	Recent(ctx context.Context, limit int) ([]*entities.Rating, error)

	Count(ctx context.Context) (int64, error)

	// SummaryByStore calcula média e contagem das avaliações de uma loja
	// direto no banco (0, 0 para conjunto vazio)
	SummaryByStore(ctx context.Context, storeID string) (average float64, total int64, err error)

	// StoreIDsByUser lista as lojas que possuem avaliação do usuário
	StoreIDsByUser(ctx context.Context, userID string) ([]string, error)
}

// RatingFilters contém filtros para listagem administrativa de avaliações
type RatingFilters struct {
	StoreID string
	UserID  string
	Value   *int
}
