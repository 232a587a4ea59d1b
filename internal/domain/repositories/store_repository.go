package repositories

import (
	"context"

	"github.com/rafabene/avaliapro-backend/internal/domain/entities"
)

// StoreRepository define a interface para persistência de lojas.
// UpdateAggregate é o único caminho de escrita para os campos
// derivados (average_rating, total_ratings).
type StoreRepository interface {
	Create(ctx context.Context, store *entities.Store) error
	FindByID(ctx context.Context, id string) (*entities.Store, error)
	FindByEmail(ctx context.Context, email string) (*entities.Store, error)
	Update(ctx context.Context, store *entities.Store) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filters StoreFilters) ([]*entities.Store, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*entities.Store, error)

	// LockAggregate adquire o lock de escrita da linha da loja, mantido
	// até o fim da transação corrente; serializa recomputes concorrentes
	LockAggregate(ctx context.Context, storeID string) error
	UpdateAggregate(ctx context.Context, storeID string, average float64, total int64) error

	Count(ctx context.Context) (int64, error)
	GlobalAverage(ctx context.Context) (float64, error)
	Recent(ctx context.Context, limit int) ([]*entities.Store, error)
	TopRated(ctx context.Context, limit int) ([]*entities.Store, error)
}

// StoreFilters contém filtros para listagem de lojas
type StoreFilters struct {
	Search  string // busca em nome ou endereço
	Name    string
	Address string

	// ID do usuário autenticado: quando presente, a avaliação dele
	// é anexada a cada loja retornada
	ViewerID string
}
