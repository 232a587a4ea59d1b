package services

import (
	"context"
	"testing"
	"time"

	"github.com/rafabene/avaliapro-backend/internal/domain/entities"
	"github.com/rafabene/avaliapro-backend/internal/domain/errors"
)

func TestAuthService_Signup(t *testing.T) {
	t.Run("cadastro básico vira user com token", func(t *testing.T) {
		env := newTestEnv(t)

		user, token, err := env.auth.Signup(context.Background(), SignupInput{
			Name:     "Maria Aparecida dos Santos",
			Email:    "maria@example.com",
			Password: "senhaforte1",
		})
		if err != nil {
			t.Fatalf("esperava sucesso, obteve erro: %v", err)
		}

		if user.Role != entities.RoleUser {
			t.Errorf("esperava role padrão user, obteve '%s'", user.Role)
		}
		if token == "" {
			t.Error("esperava token emitido no cadastro")
		}
		if user.PasswordHash == "senhaforte1" {
			t.Error("senha não pode ser armazenada em claro")
		}
	})

	t.Run("cadastro persiste created_at real", func(t *testing.T) {
		env := newTestEnv(t)

		user, _, err := env.auth.Signup(context.Background(), SignupInput{
			Name:     "Ana Beatriz Costa Ferreira",
			Email:    "ana@example.com",
			Password: "senhaforte1",
		})
		if err != nil {
			t.Fatalf("esperava sucesso, obteve erro: %v", err)
		}

		// Recarrega do banco: o timestamp gravado tem que ser o do
		// momento do insert, nunca o zero de time.Time
		persisted, err := env.users.FindByID(context.Background(), user.ID)
		if err != nil {
			t.Fatalf("falha ao recarregar usuário: %v", err)
		}
		if age := time.Since(persisted.CreatedAt); age < 0 || age > time.Minute {
			t.Errorf("created_at persistido fora do esperado: %v", persisted.CreatedAt)
		}
		if persisted.UpdatedAt.Before(persisted.CreatedAt) {
			t.Errorf("updated_at %v anterior a created_at %v", persisted.UpdatedAt, persisted.CreatedAt)
		}
	})

	t.Run("cadastro como owner é permitido", func(t *testing.T) {
		env := newTestEnv(t)

		user, _, err := env.auth.Signup(context.Background(), SignupInput{
			Name:     "José Carlos Pereira Lima",
			Email:    "jose@example.com",
			Password: "senhaforte1",
			Role:     "owner",
		})
		if err != nil {
			t.Fatalf("esperava sucesso, obteve erro: %v", err)
		}
		if user.Role != entities.RoleOwner {
			t.Errorf("esperava role owner, obteve '%s'", user.Role)
		}
	})

	t.Run("admin não é auto-atribuível", func(t *testing.T) {
		env := newTestEnv(t)

		_, _, err := env.auth.Signup(context.Background(), SignupInput{
			Name:     "Pretenso Administrador Geral",
			Email:    "pretenso@example.com",
			Password: "senhaforte1",
			Role:     "admin",
		})
		if err != errors.ErrInvalidRole {
			t.Errorf("esperava ErrInvalidRole, obteve %v", err)
		}
	})

	t.Run("senha fora da faixa 8-16", func(t *testing.T) {
		env := newTestEnv(t)

		for _, password := range []string{"curta", "senha-comprida-demais-para-valer"} {
			_, _, err := env.auth.Signup(context.Background(), SignupInput{
				Name:     "Candidato de Senha Inválida",
				Email:    uniqueEmail(),
				Password: password,
			})
			if err != errors.ErrInvalidPasswordLength {
				t.Errorf("senha '%s': esperava ErrInvalidPasswordLength, obteve %v", password, err)
			}
		}
	})

	t.Run("nome curto demais", func(t *testing.T) {
		env := newTestEnv(t)

		_, _, err := env.auth.Signup(context.Background(), SignupInput{
			Name:     "Maria Silva",
			Email:    "marias@example.com",
			Password: "senhaforte1",
		})
		if err != errors.ErrInvalidNameLength {
			t.Errorf("esperava ErrInvalidNameLength, obteve %v", err)
		}
	})

	t.Run("email duplicado é conflito", func(t *testing.T) {
		env := newTestEnv(t)

		_, _, err := env.auth.Signup(context.Background(), SignupInput{
			Name:     "Primeiro Usuário do Email",
			Email:    "duplicado@example.com",
			Password: "senhaforte1",
		})
		if err != nil {
			t.Fatalf("primeiro cadastro deveria funcionar: %v", err)
		}

		_, _, err = env.auth.Signup(context.Background(), SignupInput{
			Name:     "Segundo Usuário do Email",
			Email:    "duplicado@example.com",
			Password: "senhaforte1",
		})
		if err != errors.ErrEmailAlreadyExists {
			t.Errorf("esperava ErrEmailAlreadyExists, obteve %v", err)
		}
	})

	t.Run("email malformado", func(t *testing.T) {
		env := newTestEnv(t)

		_, _, err := env.auth.Signup(context.Background(), SignupInput{
			Name:     "Candidato de Email Inválido",
			Email:    "nao-eh-email",
			Password: "senhaforte1",
		})
		if err != errors.ErrInvalidEmail {
			t.Errorf("esperava ErrInvalidEmail, obteve %v", err)
		}
	})
}

func TestAuthService_Login(t *testing.T) {
	env := newTestEnv(t)

	_, _, err := env.auth.Signup(context.Background(), SignupInput{
		Name:     "Usuária Registrada de Login",
		Email:    "login@example.com",
		Password: "senhaforte1",
	})
	if err != nil {
		t.Fatalf("falha no cadastro de preparação: %v", err)
	}

	t.Run("credenciais corretas emitem token", func(t *testing.T) {
		user, token, err := env.auth.Login(context.Background(), "login@example.com", "senhaforte1")
		if err != nil {
			t.Fatalf("esperava sucesso, obteve erro: %v", err)
		}
		if token == "" {
			t.Error("esperava token emitido no login")
		}
		if user.Email.String() != "login@example.com" {
			t.Errorf("email inesperado: %s", user.Email.String())
		}
	})

	t.Run("senha errada", func(t *testing.T) {
		_, _, err := env.auth.Login(context.Background(), "login@example.com", "senhaerrada")
		if err != errors.ErrInvalidCredentials {
			t.Errorf("esperava ErrInvalidCredentials, obteve %v", err)
		}
	})

	t.Run("email desconhecido tem a mesma resposta de senha errada", func(t *testing.T) {
		_, _, err := env.auth.Login(context.Background(), "ninguem@example.com", "senhaforte1")
		if err != errors.ErrInvalidCredentials {
			t.Errorf("esperava ErrInvalidCredentials, obteve %v", err)
		}
	})
}
