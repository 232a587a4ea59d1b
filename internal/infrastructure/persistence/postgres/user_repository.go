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

// UserRepository implementa repositories.UserRepository
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository cria um novo UserRepository
func NewUserRepository(db *gorm.DB) repositories.UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *entities.User) error {
	model := r.toModel(user)
	if model.ID == "" {
		model.ID = uuid.NewString()
	}

	db := r.getDB(ctx)
	if err := db.Create(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domainerrors.ErrEmailAlreadyExists
		}
		return err
	}

	user.ID = model.ID
	user.CreatedAt = time.Unix(model.CreatedAt, 0)
	user.UpdatedAt = time.Unix(model.UpdatedAt, 0)
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*entities.User, error) {
	var model UserModel

	db := r.getDB(ctx)
	if err := db.Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return userToEntity(&model)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	var model UserModel

	db := r.getDB(ctx)
	if err := db.Where("email = ?", email).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return userToEntity(&model)
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	db := r.getDB(ctx)
	// Hard delete: as FKs com ON DELETE CASCADE removem lojas do
	// usuário e avaliações feitas por ele
	return db.Delete(&UserModel{}, "id = ?", id).Error
}

func (r *UserRepository) List(ctx context.Context, filters repositories.UserFilters) ([]*entities.User, error) {
	var models []*UserModel

	db := r.getDB(ctx)
	query := db.Model(&UserModel{})

	// Aplicar filtros
	if filters.Role != nil {
		query = query.Where("role = ?", string(*filters.Role))
	}

	// Paginação
	page := filters.Page
	if page < 1 {
		page = 1
	}
	pageSize := filters.PageSize
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}

	offset := (page - 1) * pageSize
	query = query.Order("created_at DESC").Limit(pageSize).Offset(offset)

	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}

	return r.toEntities(models)
}

func (r *UserRepository) CountByRole(ctx context.Context, role entities.Role) (int64, error) {
	var count int64
	db := r.getDB(ctx)
	err := db.Model(&UserModel{}).Where("role = ?", string(role)).Count(&count).Error
	return count, err
}

// getDB extrai DB do contexto (para suportar transações)
func (r *UserRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(txKey).(*gorm.DB); ok {
		return tx
	}
	return r.db
}

// toModel não copia os timestamps: eles pertencem ao banco
// (autoCreateTime/autoUpdateTime só preenchem campos zerados)
func (r *UserRepository) toModel(user *entities.User) *UserModel {
	return &UserModel{
		ID:           user.ID,
		Email:        user.Email.String(),
		Name:         user.Name,
		PasswordHash: user.PasswordHash,
		Address:      user.Address,
		Role:         string(user.Role),
	}
}

func (r *UserRepository) toEntities(models []*UserModel) ([]*entities.User, error) {
	users := make([]*entities.User, 0, len(models))

	for _, model := range models {
		user, err := userToEntity(model)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	return users, nil
}
