package services

import (
	"context"

	"github.com/rafabene/avaliapro-backend/internal/domain/entities"
	"github.com/rafabene/avaliapro-backend/internal/domain/errors"
	"github.com/rafabene/avaliapro-backend/internal/domain/ports"
	"github.com/rafabene/avaliapro-backend/internal/domain/repositories"
)

// UserService contém a lógica de negócio para usuários
type UserService struct {
	userRepo   repositories.UserRepository
	ratingRepo repositories.RatingRepository
	aggregator *RatingAggregator
	uow        ports.UnitOfWork
	logger     ports.Logger
}

// NewUserService cria um novo UserService
func NewUserService(
	userRepo repositories.UserRepository,
	ratingRepo repositories.RatingRepository,
	aggregator *RatingAggregator,
	uow ports.UnitOfWork,
	logger ports.Logger,
) *UserService {
	return &UserService{
		userRepo:   userRepo,
		ratingRepo: ratingRepo,
		aggregator: aggregator,
		uow:        uow,
		logger:     logger,
	}
}

// GetUser busca um usuário por ID
func (s *UserService) GetUser(ctx context.Context, id string) (*entities.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.ErrUserNotFound
	}
	return user, nil
}

// ListUsers lista usuários com filtros (admin)
func (s *UserService) ListUsers(ctx context.Context, actor entities.Actor, filters repositories.UserFilters) ([]*entities.User, error) {
	if !actor.HasPermission(entities.PermissionUserRead) {
		return nil, errors.ErrForbidden
	}
	return s.userRepo.List(ctx, filters)
}

// DeleteUser remove um usuário (admin). Cascata: as lojas dele e as
// avaliações que ele fez somem juntas; lojas de terceiros que perderam
// uma avaliação dele têm o agregado recomposto na mesma transação.
func (s *UserService) DeleteUser(ctx context.Context, actor entities.Actor, id string) error {
	if !actor.HasPermission(entities.PermissionUserDelete) {
		return errors.ErrForbidden
	}

	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return errors.ErrUserNotFound
	}

	return s.uow.WithTransaction(ctx, func(txCtx context.Context) error {
		affectedStores, err := s.ratingRepo.StoreIDsByUser(txCtx, id)
		if err != nil {
			return err
		}

		if err := s.userRepo.Delete(txCtx, id); err != nil {
			return err
		}

		// Lojas do próprio usuário já foram removidas pela cascata;
		// para essas o recompute atualiza zero linhas.
		for _, storeID := range affectedStores {
			if err := s.aggregator.Recompute(txCtx, storeID); err != nil {
				return err
			}
		}

		s.logger.Info("user deleted", "user_id", id, "recomputed_stores", len(affectedStores))
		return nil
	})
}
