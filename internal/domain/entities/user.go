package entities

import (
	"time"

	"github.com/rafabene/avaliapro-backend/internal/domain/errors"
	"github.com/rafabene/avaliapro-backend/internal/domain/valueobjects"
)

// User representa um usuário do sistema
type User struct {
	ID           string
	Email        valueobjects.Email
	Name         string
	PasswordHash string
	Address      string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsAdmin verifica se o usuário é admin
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// HasPermission verifica se o usuário tem uma permissão
func (u *User) HasPermission(permission Permission) bool {
	return u.Role.HasPermission(permission)
}

// Validate valida regras de negócio da entidade User
func (u *User) Validate() error {
	if u.Email.String() == "" {
		return errors.ErrInvalidEmail
	}

	if len(u.Name) < 20 || len(u.Name) > 60 {
		return errors.ErrInvalidNameLength
	}

	if len(u.Address) > 400 {
		return errors.ErrInvalidAddress
	}

	if !u.Role.IsValid() {
		return errors.ErrInvalidRole
	}

	return nil
}
