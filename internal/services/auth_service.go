package services

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"github.com/rafabene/avaliapro-backend/internal/domain/entities"
	"github.com/rafabene/avaliapro-backend/internal/domain/errors"
	"github.com/rafabene/avaliapro-backend/internal/domain/ports"
	"github.com/rafabene/avaliapro-backend/internal/domain/repositories"
	"github.com/rafabene/avaliapro-backend/internal/domain/valueobjects"
)

const bcryptCost = 10

// AuthService contém a lógica de cadastro e login
type AuthService struct {
	userRepo repositories.UserRepository
	issuer   ports.TokenIssuer
	logger   ports.Logger
}

// NewAuthService cria um novo AuthService
func NewAuthService(
	userRepo repositories.UserRepository,
	issuer ports.TokenIssuer,
	logger ports.Logger,
) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		issuer:   issuer,
		logger:   logger,
	}
}

// SignupInput representa os dados de cadastro
type SignupInput struct {
	Name     string
	Email    string
	Password string
	Address  string
	Role     string
}

// Signup cadastra um novo usuário e emite o token inicial.
// Role é imutável após a criação; admin não é auto-atribuível.
func (s *AuthService) Signup(ctx context.Context, input SignupInput) (*entities.User, string, error) {
	email, err := valueobjects.NewEmail(input.Email)
	if err != nil {
		return nil, "", errors.ErrInvalidEmail
	}

	role := entities.Role(input.Role)
	if input.Role == "" {
		role = entities.RoleUser
	}
	if !role.IsValid() || role == entities.RoleAdmin {
		return nil, "", errors.ErrInvalidRole
	}

	if len(input.Password) < 8 || len(input.Password) > 16 {
		return nil, "", errors.ErrInvalidPasswordLength
	}

	user := &entities.User{
		Email:   email,
		Name:    input.Name,
		Address: input.Address,
		Role:    role,
	}
	if err := user.Validate(); err != nil {
		return nil, "", err
	}

	existing, err := s.userRepo.FindByEmail(ctx, email.String())
	if err != nil {
		return nil, "", err
	}
	if existing != nil {
		return nil, "", errors.ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcryptCost)
	if err != nil {
		return nil, "", err
	}
	user.PasswordHash = string(hash)

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := s.issuer.Issue(user.ID, user.Role)
	if err != nil {
		return nil, "", err
	}

	s.logger.Info("user registered", "user_id", user.ID, "role", string(user.Role))

	return user, token, nil
}

// Login autentica por email e senha e emite um token
func (s *AuthService) Login(ctx context.Context, email, password string) (*entities.User, string, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, "", err
	}
	if user == nil {
		return nil, "", errors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", errors.ErrInvalidCredentials
	}

	token, err := s.issuer.Issue(user.ID, user.Role)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}
