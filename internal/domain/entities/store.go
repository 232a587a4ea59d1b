package entities

import (
	"time"

	"github.com/rafabene/avaliapro-backend/internal/domain/errors"
	"github.com/rafabene/avaliapro-backend/internal/domain/valueobjects"
)

// Store representa uma loja avaliável.
// AverageRating e TotalRatings são derivados: somente o agregador de
// avaliações escreve nesses campos, nunca o cliente.
type Store struct {
	ID            string
	Name          string
	Email         valueobjects.Email
	Address       string
	OwnerID       *string
	AverageRating float64
	TotalRatings  int64
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// Preenchidos opcionalmente pelos repositórios
	Owner      *User
	Ratings    []*Rating
	UserRating *Rating // avaliação do usuário autenticado, se houver
}

// IsOwnedBy verifica se a loja pertence ao usuário informado
func (s *Store) IsOwnedBy(userID string) bool {
	return s.OwnerID != nil && *s.OwnerID == userID
}

// Validate valida regras de negócio da entidade Store
func (s *Store) Validate() error {
	if len(s.Name) < 3 || len(s.Name) > 60 {
		return errors.ErrInvalidStoreName
	}

	if s.Email.String() == "" {
		return errors.ErrInvalidEmail
	}

	if s.Address == "" || len(s.Address) > 400 {
		return errors.ErrInvalidAddress
	}

	return nil
}
