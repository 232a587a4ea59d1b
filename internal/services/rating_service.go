package services

import (
	"context"

	"github.com/rafabene/avaliapro-backend/internal/domain/entities"
	"github.com/rafabene/avaliapro-backend/internal/domain/errors"
	"github.com/rafabene/avaliapro-backend/internal/domain/ports"
	"github.com/rafabene/avaliapro-backend/internal/domain/repositories"
)

// RatingService contém a lógica de negócio para avaliações.
// Toda mutação roda em transação única com o recompute do agregado da
// loja: o resumo desnormalizado nunca fica visível em estado obsoleto.
type RatingService struct {
	ratingRepo repositories.RatingRepository
	storeRepo  repositories.StoreRepository
	userRepo   repositories.UserRepository
	aggregator *RatingAggregator
	uow        ports.UnitOfWork
	logger     ports.Logger
}

// NewRatingService cria um novo RatingService
func NewRatingService(
	ratingRepo repositories.RatingRepository,
	storeRepo repositories.StoreRepository,
	userRepo repositories.UserRepository,
	aggregator *RatingAggregator,
	uow ports.UnitOfWork,
	logger ports.Logger,
) *RatingService {
	return &RatingService{
		ratingRepo: ratingRepo,
		storeRepo:  storeRepo,
		userRepo:   userRepo,
		aggregator: aggregator,
		uow:        uow,
		logger:     logger,
	}
}

// CreateRatingInput representa os dados para criar uma avaliação
type CreateRatingInput struct {
	StoreID string
	Value   int
	Comment *string
	UserID  string // somente admin: avalia em nome de outro usuário
}

// CreateRating cria uma avaliação. Usuários avaliam por si; admins podem
// avaliar em nome de qualquer usuário — a regra de uma avaliação por par
// (usuário, loja) vale igualmente para os dois caminhos.
func (s *RatingService) CreateRating(ctx context.Context, actor entities.Actor, input CreateRatingInput) (*entities.Rating, error) {
	store, err := s.storeRepo.FindByID(ctx, input.StoreID)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, errors.ErrStoreNotFound
	}

	authorID := actor.ID
	if input.UserID != "" && input.UserID != actor.ID {
		if !actor.HasPermission(entities.PermissionRatingCreateAny) {
			return nil, errors.ErrForbidden
		}
		author, err := s.userRepo.FindByID(ctx, input.UserID)
		if err != nil {
			return nil, err
		}
		if author == nil {
			return nil, errors.ErrUserNotFound
		}
		authorID = input.UserID
	} else if !actor.HasPermission(entities.PermissionRatingCreate) &&
		!actor.HasPermission(entities.PermissionRatingCreateAny) {
		return nil, errors.ErrForbidden
	}

	rating := &entities.Rating{
		Value:   input.Value,
		Comment: input.Comment,
		UserID:  authorID,
		StoreID: input.StoreID,
	}
	if err := rating.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.ratingRepo.FindByUserAndStore(ctx, authorID, input.StoreID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errors.ErrRatingExists
	}

	err = s.uow.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.ratingRepo.Create(txCtx, rating); err != nil {
			return err
		}
		return s.aggregator.Recompute(txCtx, input.StoreID)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("rating created",
		"rating_id", rating.ID,
		"store_id", input.StoreID,
		"user_id", authorID,
		"value", input.Value,
	)

	return rating, nil
}

// UpdateRatingInput representa os campos atualizáveis de uma avaliação
type UpdateRatingInput struct {
	Value   *int
	Comment *string
}

// UpdateRating atualiza uma avaliação (autor ou admin)
func (s *RatingService) UpdateRating(ctx context.Context, actor entities.Actor, id string, input UpdateRatingInput) (*entities.Rating, error) {
	rating, err := s.ratingRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rating == nil {
		return nil, errors.ErrRatingNotFound
	}

	if err := s.authorizeRatingMutation(actor, rating); err != nil {
		return nil, err
	}

	if input.Value != nil {
		rating.Value = *input.Value
	}
	if input.Comment != nil {
		rating.Comment = input.Comment
	}
	if err := rating.Validate(); err != nil {
		return nil, err
	}

	err = s.uow.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.ratingRepo.Update(txCtx, rating); err != nil {
			return err
		}
		return s.aggregator.Recompute(txCtx, rating.StoreID)
	})
	if err != nil {
		return nil, err
	}

	return rating, nil
}

// DeleteRating remove uma avaliação (autor ou admin)
func (s *RatingService) DeleteRating(ctx context.Context, actor entities.Actor, id string) error {
	rating, err := s.ratingRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if rating == nil {
		return errors.ErrRatingNotFound
	}

	if err := s.authorizeRatingMutation(actor, rating); err != nil {
		return err
	}

	return s.uow.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.ratingRepo.Delete(txCtx, id); err != nil {
			return err
		}
		return s.aggregator.Recompute(txCtx, rating.StoreID)
	})
}

// RatingsByStore lista as avaliações de uma loja (público)
func (s *RatingService) RatingsByStore(ctx context.Context, storeID string) ([]*entities.Rating, error) {
	return s.ratingRepo.ListByStore(ctx, storeID)
}

// MyRatings lista as avaliações do usuário autenticado
func (s *RatingService) MyRatings(ctx context.Context, userID string) ([]*entities.Rating, error) {
	return s.ratingRepo.ListByUser(ctx, userID)
}

// ListRatings lista avaliações com filtros (admin)
func (s *RatingService) ListRatings(ctx context.Context, filters repositories.RatingFilters) ([]*entities.Rating, error) {
	return s.ratingRepo.List(ctx, filters)
}

// authorizeRatingMutation aplica a política: admin altera qualquer
// avaliação, usuário somente as próprias
func (s *RatingService) authorizeRatingMutation(actor entities.Actor, rating *entities.Rating) error {
	if actor.HasPermission(entities.PermissionRatingManageAny) {
		return nil
	}
	if actor.HasPermission(entities.PermissionRatingManageOwn) && rating.IsAuthoredBy(actor.ID) {
		return nil
	}
	return errors.ErrForbidden
}
