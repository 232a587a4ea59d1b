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

// StoreRepository implementa repositories.StoreRepository
type StoreRepository struct {
	db *gorm.DB
}

// NewStoreRepository cria um novo StoreRepository
func NewStoreRepository(db *gorm.DB) repositories.StoreRepository {
	return &StoreRepository{db: db}
}

func (r *StoreRepository) Create(ctx context.Context, store *entities.Store) error {
	model := r.toModel(store)
	if model.ID == "" {
		model.ID = uuid.NewString()
	}

	db := r.getDB(ctx)
	if err := db.Create(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domainerrors.ErrStoreEmailExists
		}
		return err
	}

	store.ID = model.ID
	store.CreatedAt = time.Unix(model.CreatedAt, 0)
	store.UpdatedAt = time.Unix(model.UpdatedAt, 0)
	return nil
}

func (r *StoreRepository) FindByID(ctx context.Context, id string) (*entities.Store, error) {
	var model StoreModel

	db := r.getDB(ctx)
	err := db.Preload("Owner").Preload("Ratings").Preload("Ratings.User").
		Where("id = ?", id).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return storeToEntity(&model)
}

func (r *StoreRepository) FindByEmail(ctx context.Context, email string) (*entities.Store, error) {
	var model StoreModel

	db := r.getDB(ctx)
	if err := db.Where("email = ?", email).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return storeToEntity(&model)
}

func (r *StoreRepository) Update(ctx context.Context, store *entities.Store) error {
	db := r.getDB(ctx)
	// Somente campos editáveis pelo cliente: os agregados passam
	// exclusivamente por UpdateAggregate
	updates := map[string]interface{}{
		"name":     store.Name,
		"email":    store.Email.String(),
		"address":  store.Address,
		"owner_id": store.OwnerID,
	}
	err := db.Model(&StoreModel{}).Where("id = ?", store.ID).Updates(updates).Error
	if err != nil && errors.Is(err, gorm.ErrDuplicatedKey) {
		return domainerrors.ErrStoreEmailExists
	}
	return err
}

func (r *StoreRepository) Delete(ctx context.Context, id string) error {
	db := r.getDB(ctx)
	// Hard delete: cascata remove as avaliações da loja
	return db.Delete(&StoreModel{}, "id = ?", id).Error
}

func (r *StoreRepository) List(ctx context.Context, filters repositories.StoreFilters) ([]*entities.Store, error) {
	var models []*StoreModel

	db := r.getDB(ctx)
	query := db.Model(&StoreModel{}).Preload("Owner")

	if filters.Search != "" {
		pattern := "%" + filters.Search + "%"
		query = query.Where("LOWER(name) LIKE LOWER(?) OR LOWER(address) LIKE LOWER(?)", pattern, pattern)
	}
	if filters.Name != "" {
		query = query.Where("LOWER(name) LIKE LOWER(?)", "%"+filters.Name+"%")
	}
	if filters.Address != "" {
		query = query.Where("LOWER(address) LIKE LOWER(?)", "%"+filters.Address+"%")
	}

	// Avaliação do usuário autenticado anexada a cada loja
	if filters.ViewerID != "" {
		query = query.Preload("Ratings", "user_id = ?", filters.ViewerID)
	}

	if err := query.Order("name ASC").Find(&models).Error; err != nil {
		return nil, err
	}

	return r.toEntities(models, filters.ViewerID)
}

func (r *StoreRepository) ListByOwner(ctx context.Context, ownerID string) ([]*entities.Store, error) {
	var models []*StoreModel

	db := r.getDB(ctx)
	err := db.Preload("Ratings").Preload("Ratings.User").
		Where("owner_id = ?", ownerID).Order("name ASC").Find(&models).Error
	if err != nil {
		return nil, err
	}

	return r.toEntities(models, "")
}

// LockAggregate trava a linha da loja até o commit da transação
// corrente. Um UPDATE sem efeito serve de lock de linha tanto no
// Postgres quanto no sqlite, que não aceita SELECT ... FOR UPDATE.
func (r *StoreRepository) LockAggregate(ctx context.Context, storeID string) error {
	db := r.getDB(ctx)
	return db.Exec("UPDATE stores SET total_ratings = total_ratings WHERE id = ?", storeID).Error
}

// UpdateAggregate grava o resumo derivado da loja. Chamado somente
// pelo agregador, dentro da transação da mutação que o disparou.
func (r *StoreRepository) UpdateAggregate(ctx context.Context, storeID string, average float64, total int64) error {
	db := r.getDB(ctx)
	return db.Model(&StoreModel{}).Where("id = ?", storeID).Updates(map[string]interface{}{
		"average_rating": average,
		"total_ratings":  total,
	}).Error
}

func (r *StoreRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	db := r.getDB(ctx)
	err := db.Model(&StoreModel{}).Count(&count).Error
	return count, err
}

// GlobalAverage calcula a média das médias desnormalizadas das lojas
// que têm ao menos uma avaliação (0 se nenhuma)
func (r *StoreRepository) GlobalAverage(ctx context.Context) (float64, error) {
	var average float64
	db := r.getDB(ctx)
	err := db.Model(&StoreModel{}).
		Select("COALESCE(AVG(average_rating), 0)").
		Where("total_ratings > 0").
		Scan(&average).Error
	return average, err
}

func (r *StoreRepository) Recent(ctx context.Context, limit int) ([]*entities.Store, error) {
	var models []*StoreModel

	db := r.getDB(ctx)
	err := db.Preload("Owner").Order("created_at DESC").Limit(limit).Find(&models).Error
	if err != nil {
		return nil, err
	}

	return r.toEntities(models, "")
}

func (r *StoreRepository) TopRated(ctx context.Context, limit int) ([]*entities.Store, error) {
	var models []*StoreModel

	db := r.getDB(ctx)
	err := db.Preload("Owner").
		Where("total_ratings > 0").
		Order("average_rating DESC").Limit(limit).Find(&models).Error
	if err != nil {
		return nil, err
	}

	return r.toEntities(models, "")
}

// getDB extrai DB do contexto (para suportar transações)
func (r *StoreRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(txKey).(*gorm.DB); ok {
		return tx
	}
	return r.db
}

func (r *StoreRepository) toModel(store *entities.Store) *StoreModel {
	return &StoreModel{
		ID:            store.ID,
		Name:          store.Name,
		Email:         store.Email.String(),
		Address:       store.Address,
		OwnerID:       store.OwnerID,
		AverageRating: store.AverageRating,
		TotalRatings:  store.TotalRatings,
	}
}

func (r *StoreRepository) toEntities(models []*StoreModel, viewerID string) ([]*entities.Store, error) {
	stores := make([]*entities.Store, 0, len(models))

	for _, model := range models {
		store, err := storeToEntity(model)
		if err != nil {
			return nil, err
		}
		if viewerID != "" {
			for _, rating := range store.Ratings {
				if rating.UserID == viewerID {
					store.UserRating = rating
					break
				}
			}
		}
		stores = append(stores, store)
	}

	return stores, nil
}
