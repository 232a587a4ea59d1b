package entities

import (
	"time"

	"github.com/rafabene/avaliapro-backend/internal/domain/errors"
)

// Rating representa a avaliação de um usuário para uma loja.
// Invariante: no máximo uma avaliação por par (usuário, loja),
// garantida por índice único no banco.
type Rating struct {
	ID        string
	Value     int
	Comment   *string
	UserID    string
	StoreID   string
	CreatedAt time.Time
	UpdatedAt time.Time

	// Preenchidos opcionalmente pelos repositórios
	User  *User
	Store *Store
}

// IsAuthoredBy verifica se a avaliação foi feita pelo usuário informado
func (r *Rating) IsAuthoredBy(userID string) bool {
	return r.UserID == userID
}

// Validate valida regras de negócio da entidade Rating
func (r *Rating) Validate() error {
	if r.Value < 1 || r.Value > 5 {
		return errors.ErrInvalidRatingValue
	}

	if r.UserID == "" || r.StoreID == "" {
		return errors.ErrInvalidRatingRefs
	}

	return nil
}
