package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rafabene/avaliapro-backend/internal/domain/entities"
	domainerrors "github.com/rafabene/avaliapro-backend/internal/domain/errors"
	"github.com/rafabene/avaliapro-backend/internal/domain/repositories"
)

// RatingRepository implementa repositories.RatingRepository
type RatingRepository struct {
	db *gorm.DB
}

// NewRatingRepository cria um novo RatingRepository
func NewRatingRepository(db *gorm.DB) repositories.RatingRepository {
	return &RatingRepository{db: db}
}

func (r *RatingRepository) Create(ctx context.Context, rating *entities.Rating) error {
	model := r.toModel(rating)
	if model.ID == "" {
		model.ID = uuid.NewString()
	}

	db := r.getDB(ctx)
	if err := db.Create(model).Error; err != nil {
		// Corrida entre a checagem de duplicidade e o insert: o índice
		// único (user_id, store_id) é a garantia final
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domainerrors.ErrRatingExists
		}
		return err
	}

	rating.ID = model.ID
	rating.CreatedAt = time.Unix(model.CreatedAt, 0)
	rating.UpdatedAt = time.Unix(model.UpdatedAt, 0)
	return nil
}

func (r *RatingRepository) FindByID(ctx context.Context, id string) (*entities.Rating, error) {
	var model RatingModel

	db := r.getDB(ctx)
	if err := db.Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return ratingToEntity(&model)
}

func (r *RatingRepository) FindByUserAndStore(ctx context.Context, userID, storeID string) (*entities.Rating, error) {
	var model RatingModel

	db := r.getDB(ctx)
	err := db.Where("user_id = ? AND store_id = ?", userID, storeID).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return ratingToEntity(&model)
}

func (r *RatingRepository) Update(ctx context.Context, rating *entities.Rating) error {
	db := r.getDB(ctx)
	return db.Model(&RatingModel{}).Where("id = ?", rating.ID).Updates(map[string]interface{}{
		"rating":  rating.Value,
		"comment": rating.Comment,
	}).Error
}

func (r *RatingRepository) Delete(ctx context.Context, id string) error {
	db := r.getDB(ctx)
	return db.Delete(&RatingModel{}, "id = ?", id).Error
}

func (r *RatingRepository) ListByStore(ctx context.Context, storeID string) ([]*entities.Rating, error) {
	var models []*RatingModel

	db := r.getDB(ctx)
	err := db.Preload("User").
		Where("store_id = ?", storeID).Order("created_at DESC").Find(&models).Error
	if err != nil {
		return nil, err
	}

	return r.toEntities(models)
}

func (r *RatingRepository) ListByUser(ctx context.Context, userID string) ([]*entities.Rating, error) {
	var models []*RatingModel

	db := r.getDB(ctx)
	err := db.Preload("Store").
		Where("user_id = ?", userID).Order("created_at DESC").Find(&models).Error
	if err != nil {
		return nil, err
	}

	return r.toEntities(models)
}

func (r *RatingRepository) ListByStores(ctx context.Context, storeIDs []string, limit int) ([]*entities.Rating, error) {
	var models []*RatingModel

	db := r.getDB(ctx)
	err := db.Preload("User").Preload("Store").
		Where("store_id IN ?", storeIDs).
		Order("created_at DESC").Limit(limit).Find(&models).Error
	if err != nil {
		return nil, err
	}

	return r.toEntities(models)
}

func (r *RatingRepository) List(ctx context.Context, filters repositories.RatingFilters) ([]*entities.Rating, error) {
	var models []*RatingModel

	db := r.getDB(ctx)
	query := db.Model(&RatingModel{}).Preload("User").Preload("Store")

	if filters.StoreID != "" {
		query = query.Where("store_id = ?", filters.StoreID)
	}
	if filters.UserID != "" {
		query = query.Where("user_id = ?", filters.UserID)
	}
	if filters.Value != nil {
		query = query.Where("rating = ?", *filters.Value)
	}

	if err := query.Order("created_at DESC").Find(&models).Error; err != nil {
		return nil, err
	}

	return r.toEntities(models)
}

func (r *RatingRepository) Recent(ctx context.Context, limit int) ([]*entities.Rating, error) {
	var models []*RatingModel

	db := r.getDB(ctx)
	err := db.Preload("User").Preload("Store").
		Order("created_at DESC").Limit(limit).Find(&models).Error
	if err != nil {
		return nil, err
	}

	return r.toEntities(models)
}

func (r *RatingRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	db := r.getDB(ctx)
	err := db.Model(&RatingModel{}).Count(&count).Error
	return count, err
}

// SummaryByStore calcula média e contagem direto no banco. Dentro de
// uma transação a leitura enxerga as escritas ainda não comitadas.
func (r *RatingRepository) SummaryByStore(ctx context.Context, storeID string) (float64, int64, error) {
	var result struct {
		Average float64
		Total   int64
	}

	db := r.getDB(ctx)
	err := db.Model(&RatingModel{}).
		Select("COALESCE(AVG(rating), 0) AS average, COUNT(*) AS total").
		Where("store_id = ?", storeID).
		Scan(&result).Error
	if err != nil {
		return 0, 0, err
	}

	return result.Average, result.Total, nil
}

func (r *RatingRepository) StoreIDsByUser(ctx context.Context, userID string) ([]string, error) {
	var storeIDs []string
	db := r.getDB(ctx)
	err := db.Model(&RatingModel{}).
		Where("user_id = ?", userID).
		Distinct().Pluck("store_id", &storeIDs).Error
	return storeIDs, err
}

// getDB extrai DB do contexto (para suportar transações)
func (r *RatingRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(txKey).(*gorm.DB); ok {
		return tx
	}
	return r.db
}

func (r *RatingRepository) toModel(rating *entities.Rating) *RatingModel {
	return &RatingModel{
		ID:      rating.ID,
		Value:   rating.Value,
		Comment: rating.Comment,
		UserID:  rating.UserID,
		StoreID: rating.StoreID,
	}
}

func (r *RatingRepository) toEntities(models []*RatingModel) ([]*entities.Rating, error) {
	ratings := make([]*entities.Rating, 0, len(models))

	for _, model := range models {
		rating, err := ratingToEntity(model)
		if err != nil {
			return nil, err
		}
		ratings = append(ratings, rating)
	}

	return ratings, nil
}
