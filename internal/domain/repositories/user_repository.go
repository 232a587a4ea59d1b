package repositories

import (
	"context"

	"github.com/rafabene/avaliapro-backend/internal/domain/entities"
)

// UserRepository define a interface para persistência de usuários.
// Delete é cascata: remove também as lojas do usuário e as avaliações
// que ele fez (o chamador deve recompor os agregados das lojas afetadas).
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	FindByID(ctx context.Context, id string) (*entities.User, error)
	FindByEmail(ctx context.Context, email string) (*entities.User, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filters UserFilters) ([]*entities.User, error)
	CountByRole(ctx context.Context, role entities.Role) (int64, error)
}

// UserFilters contém filtros para listagem de usuários
type UserFilters struct {
	Role     *entities.Role
	Page     int // Página (começa em 1)
	PageSize int // Itens por página (default: 20, max: 100)
}
