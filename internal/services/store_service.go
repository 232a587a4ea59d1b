package services

import (
	"context"

	"github.com/rafabene/avaliapro-backend/internal/domain/entities"
	"github.com/rafabene/avaliapro-backend/internal/domain/errors"
	"github.com/rafabene/avaliapro-backend/internal/domain/ports"
	"github.com/rafabene/avaliapro-backend/internal/domain/repositories"
	"github.com/rafabene/avaliapro-backend/internal/domain/valueobjects"
)

// StoreService contém a lógica de negócio para lojas
type StoreService struct {
	storeRepo repositories.StoreRepository
	userRepo  repositories.UserRepository
	uow       ports.UnitOfWork
	logger    ports.Logger
}

// NewStoreService cria um novo StoreService
func NewStoreService(
	storeRepo repositories.StoreRepository,
	userRepo repositories.UserRepository,
	uow ports.UnitOfWork,
	logger ports.Logger,
) *StoreService {
	return &StoreService{
		storeRepo: storeRepo,
		userRepo:  userRepo,
		uow:       uow,
		logger:    logger,
	}
}

// CreateStoreInput representa os dados para criar uma loja
type CreateStoreInput struct {
	Name    string
	Email   string
	Address string
	OwnerID string // obrigatório para admin; ignorado para owner (é ele mesmo)
}

// CreateStore cria uma loja. Owners criam para si; admins precisam
// indicar um usuário com role owner.
func (s *StoreService) CreateStore(ctx context.Context, actor entities.Actor, input CreateStoreInput) (*entities.Store, error) {
	if !actor.HasPermission(entities.PermissionStoreCreate) {
		return nil, errors.ErrForbidden
	}

	ownerID := input.OwnerID
	if actor.Role == entities.RoleOwner {
		ownerID = actor.ID
	}
	if ownerID == "" {
		return nil, errors.ErrInvalidOwner
	}

	owner, err := s.userRepo.FindByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if owner == nil || owner.Role != entities.RoleOwner {
		return nil, errors.ErrInvalidOwner
	}

	email, err := valueobjects.NewEmail(input.Email)
	if err != nil {
		return nil, errors.ErrInvalidEmail
	}

	store := &entities.Store{
		Name:    input.Name,
		Email:   email,
		Address: input.Address,
		OwnerID: &ownerID,
	}
	if err := store.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.storeRepo.FindByEmail(ctx, email.String())
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errors.ErrStoreEmailExists
	}

	if err := s.storeRepo.Create(ctx, store); err != nil {
		return nil, err
	}

	s.logger.Info("store created", "store_id", store.ID, "owner_id", ownerID)

	return s.storeRepo.FindByID(ctx, store.ID)
}

// UpdateStoreInput representa os campos atualizáveis de uma loja
type UpdateStoreInput struct {
	Name    *string
	Email   *string
	Address *string
	OwnerID *string // somente admin pode reatribuir
}

// UpdateStore atualiza uma loja. Ordem de verificação: recurso existe,
// política permite, payload válido, unicidade de email.
func (s *StoreService) UpdateStore(ctx context.Context, actor entities.Actor, id string, input UpdateStoreInput) (*entities.Store, error) {
	store, err := s.storeRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, errors.ErrStoreNotFound
	}

	if err := s.authorizeStoreMutation(actor, store); err != nil {
		return nil, err
	}

	if input.OwnerID != nil && (store.OwnerID == nil || *input.OwnerID != *store.OwnerID) {
		if !actor.HasPermission(entities.PermissionStoreReassignOwner) {
			return nil, errors.ErrForbidden
		}
		owner, err := s.userRepo.FindByID(ctx, *input.OwnerID)
		if err != nil {
			return nil, err
		}
		if owner == nil || owner.Role != entities.RoleOwner {
			return nil, errors.ErrInvalidOwner
		}
		store.OwnerID = input.OwnerID
	}

	if input.Name != nil {
		store.Name = *input.Name
	}
	if input.Address != nil {
		store.Address = *input.Address
	}
	if input.Email != nil {
		email, err := valueobjects.NewEmail(*input.Email)
		if err != nil {
			return nil, errors.ErrInvalidEmail
		}
		if email.String() != store.Email.String() {
			existing, err := s.storeRepo.FindByEmail(ctx, email.String())
			if err != nil {
				return nil, err
			}
			if existing != nil && existing.ID != store.ID {
				return nil, errors.ErrStoreEmailExists
			}
		}
		store.Email = email
	}

	if err := store.Validate(); err != nil {
		return nil, err
	}

	if err := s.storeRepo.Update(ctx, store); err != nil {
		return nil, err
	}

	return s.storeRepo.FindByID(ctx, store.ID)
}

// DeleteStore remove uma loja e, por cascata, suas avaliações
func (s *StoreService) DeleteStore(ctx context.Context, actor entities.Actor, id string) error {
	store, err := s.storeRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if store == nil {
		return errors.ErrStoreNotFound
	}

	if err := s.authorizeStoreMutation(actor, store); err != nil {
		return err
	}

	// As avaliações da loja morrem junto (cascata no banco); nenhum
	// outro agregado é afetado.
	return s.uow.WithTransaction(ctx, func(txCtx context.Context) error {
		return s.storeRepo.Delete(txCtx, id)
	})
}

// GetStore busca uma loja por ID, anexando a avaliação do chamador
func (s *StoreService) GetStore(ctx context.Context, viewerID, id string) (*entities.Store, error) {
	store, err := s.storeRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, errors.ErrStoreNotFound
	}

	if viewerID != "" {
		s.attachViewerRating(store, viewerID)
	}

	return store, nil
}

// ListStores lista lojas com filtros de busca
func (s *StoreService) ListStores(ctx context.Context, filters repositories.StoreFilters) ([]*entities.Store, error) {
	return s.storeRepo.List(ctx, filters)
}

// MyStores lista as lojas do owner autenticado
func (s *StoreService) MyStores(ctx context.Context, ownerID string) ([]*entities.Store, error) {
	return s.storeRepo.ListByOwner(ctx, ownerID)
}

// authorizeStoreMutation aplica a política: admin altera qualquer loja,
// owner somente as próprias. Loja existente mas alheia: Forbidden, não
// NotFound.
func (s *StoreService) authorizeStoreMutation(actor entities.Actor, store *entities.Store) error {
	if actor.HasPermission(entities.PermissionStoreManageAny) {
		return nil
	}
	if actor.HasPermission(entities.PermissionStoreManageOwn) && store.IsOwnedBy(actor.ID) {
		return nil
	}
	return errors.ErrForbidden
}

func (s *StoreService) attachViewerRating(store *entities.Store, viewerID string) {
	for _, rating := range store.Ratings {
		if rating.UserID == viewerID {
			store.UserRating = rating
			return
		}
	}
}
