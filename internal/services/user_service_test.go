package services

import (
	"context"
	"testing"

	"github.com/rafabene/avaliapro-backend/internal/domain/entities"
	"github.com/rafabene/avaliapro-backend/internal/domain/errors"
	"github.com/rafabene/avaliapro-backend/internal/domain/repositories"
)

func TestUserService_DeleteUser(t *testing.T) {
	t.Run("remover usuário leva lojas e avaliações dele e recompõe agregados", func(t *testing.T) {
		env := newTestEnv(t)
		admin := env.seedUser(t, "Administrador Exterminador", uniqueEmail(), entities.RoleAdmin)
		victim := env.seedUser(t, "Proprietário Que Também Avalia", uniqueEmail(), entities.RoleOwner)
		survivor := env.seedUser(t, "Proprietário Sobrevivente Um", uniqueEmail(), entities.RoleOwner)
		rater := env.seedUser(t, "Usuário Comum Que Fica", uniqueEmail(), entities.RoleUser)

		victimStore := env.seedStore(t, "Loja da Vítima", uniqueEmail(), victim.ID)
		otherStore := env.seedStore(t, "Loja Que Fica", uniqueEmail(), survivor.ID)

		env.rate(t, rater, victimStore.ID, 5)
		target := env.seedUser(t, "Usuário Comum Removível", uniqueEmail(), entities.RoleUser)
		env.rate(t, target, otherStore.ID, 1)
		env.rate(t, rater, otherStore.ID, 5)
		// otherStore: (1+5)/2 = 3.0

		if err := env.userSvc.DeleteUser(context.Background(), actorOf(admin), target.ID); err != nil {
			t.Fatalf("esperava sucesso, obteve erro: %v", err)
		}

		// O usuário sumiu
		gone, err := env.users.FindByID(context.Background(), target.ID)
		if err != nil {
			t.Fatalf("erro inesperado: %v", err)
		}
		if gone != nil {
			t.Error("esperava usuário removido")
		}

		// A loja alheia perdeu a avaliação dele e o agregado foi recomposto
		reloaded := env.reloadStore(t, otherStore.ID)
		if reloaded.AverageRating != 5.0 || reloaded.TotalRatings != 1 {
			t.Errorf("esperava agregado 5.0/1 após a remoção, obteve %.1f/%d",
				reloaded.AverageRating, reloaded.TotalRatings)
		}
	})

	t.Run("remover um owner remove as lojas dele em cascata", func(t *testing.T) {
		env := newTestEnv(t)
		admin := env.seedUser(t, "Administrador Exterminador B", uniqueEmail(), entities.RoleAdmin)
		owner := env.seedUser(t, "Proprietário Removível Total", uniqueEmail(), entities.RoleOwner)
		rater := env.seedUser(t, "Usuário Comum Avaliador Final", uniqueEmail(), entities.RoleUser)

		store := env.seedStore(t, "Loja Que Morre Junto", uniqueEmail(), owner.ID)
		rating := env.rate(t, rater, store.ID, 4)

		if err := env.userSvc.DeleteUser(context.Background(), actorOf(admin), owner.ID); err != nil {
			t.Fatalf("esperava sucesso, obteve erro: %v", err)
		}

		goneStore, err := env.stores.FindByID(context.Background(), store.ID)
		if err != nil {
			t.Fatalf("erro inesperado: %v", err)
		}
		if goneStore != nil {
			t.Error("esperava loja removida em cascata")
		}

		goneRating, err := env.ratings.FindByID(context.Background(), rating.ID)
		if err != nil {
			t.Fatalf("erro inesperado: %v", err)
		}
		if goneRating != nil {
			t.Error("esperava avaliação removida em cascata com a loja")
		}
	})

	t.Run("não-admin não remove usuários", func(t *testing.T) {
		env := newTestEnv(t)
		owner := env.seedUser(t, "Proprietário Sem Poderes", uniqueEmail(), entities.RoleOwner)
		target := env.seedUser(t, "Usuário Comum Intocável", uniqueEmail(), entities.RoleUser)

		if err := env.userSvc.DeleteUser(context.Background(), actorOf(owner), target.ID); err != errors.ErrForbidden {
			t.Errorf("esperava ErrForbidden, obteve %v", err)
		}
	})

	t.Run("usuário inexistente é NotFound", func(t *testing.T) {
		env := newTestEnv(t)
		admin := env.seedUser(t, "Administrador Exterminador C", uniqueEmail(), entities.RoleAdmin)

		err := env.userSvc.DeleteUser(context.Background(), actorOf(admin),
			"66666666-6666-4666-8666-666666666666")
		if err != errors.ErrUserNotFound {
			t.Errorf("esperava ErrUserNotFound, obteve %v", err)
		}
	})
}

func TestUserService_ListUsers(t *testing.T) {
	t.Run("admin lista com filtro de role", func(t *testing.T) {
		env := newTestEnv(t)
		admin := env.seedUser(t, "Administrador Listador Um", uniqueEmail(), entities.RoleAdmin)
		env.seedUser(t, "Proprietário Listável Um", uniqueEmail(), entities.RoleOwner)
		env.seedUser(t, "Usuário Comum Listável Um", uniqueEmail(), entities.RoleUser)
		env.seedUser(t, "Usuário Comum Listável Dois", uniqueEmail(), entities.RoleUser)

		role := entities.RoleUser
		users, err := env.userSvc.ListUsers(context.Background(), actorOf(admin), repositories.UserFilters{
			Role: &role,
		})
		if err != nil {
			t.Fatalf("esperava sucesso, obteve erro: %v", err)
		}
		if len(users) != 2 {
			t.Errorf("esperava 2 usuários com role user, obteve %d", len(users))
		}
		for _, user := range users {
			if user.Role != entities.RoleUser {
				t.Errorf("filtro vazou: obteve role '%s'", user.Role)
			}
		}
	})

	t.Run("não-admin não lista usuários", func(t *testing.T) {
		env := newTestEnv(t)
		user := env.seedUser(t, "Usuário Comum Curioso Um", uniqueEmail(), entities.RoleUser)

		_, err := env.userSvc.ListUsers(context.Background(), actorOf(user), repositories.UserFilters{})
		if err != errors.ErrForbidden {
			t.Errorf("esperava ErrForbidden, obteve %v", err)
		}
	})
}

func TestUserService_GetUser(t *testing.T) {
	env := newTestEnv(t)
	user := env.seedUser(t, "Usuário Comum Localizável", uniqueEmail(), entities.RoleUser)

	t.Run("encontra por ID", func(t *testing.T) {
		found, err := env.userSvc.GetUser(context.Background(), user.ID)
		if err != nil {
			t.Fatalf("esperava sucesso, obteve erro: %v", err)
		}
		if found.ID != user.ID {
			t.Errorf("esperava ID %s, obteve %s", user.ID, found.ID)
		}
	})

	t.Run("inexistente é NotFound", func(t *testing.T) {
		_, err := env.userSvc.GetUser(context.Background(), "77777777-7777-4777-8777-777777777777")
		if err != errors.ErrUserNotFound {
			t.Errorf("esperava ErrUserNotFound, obteve %v", err)
		}
	})
}
