package services

import (
	"context"
	"testing"

	"github.com/rafabene/avaliapro-backend/internal/domain/entities"
	"github.com/rafabene/avaliapro-backend/internal/domain/errors"
	"github.com/rafabene/avaliapro-backend/internal/domain/repositories"
)

func TestStoreService_CreateStore(t *testing.T) {
	t.Run("owner cria loja para si mesmo", func(t *testing.T) {
		env := newTestEnv(t)
		owner := env.seedUser(t, "Proprietário Criador Um", uniqueEmail(), entities.RoleOwner)

		store, err := env.storeSvc.CreateStore(context.Background(), actorOf(owner), CreateStoreInput{
			Name:    "Empório do Bairro",
			Email:   "emporio@example.com",
			Address: "Rua Principal, 10",
		})
		if err != nil {
			t.Fatalf("esperava sucesso, obteve erro: %v", err)
		}

		if !store.IsOwnedBy(owner.ID) {
			t.Error("esperava loja atribuída ao próprio owner")
		}
		if store.AverageRating != 0 || store.TotalRatings != 0 {
			t.Errorf("loja nova deveria nascer com agregado 0/0, obteve %.1f/%d",
				store.AverageRating, store.TotalRatings)
		}
	})

	t.Run("owner não cria loja para outro owner", func(t *testing.T) {
		env := newTestEnv(t)
		owner := env.seedUser(t, "Proprietário Criador Dois", uniqueEmail(), entities.RoleOwner)
		other := env.seedUser(t, "Proprietário Criador Três", uniqueEmail(), entities.RoleOwner)

		store, err := env.storeSvc.CreateStore(context.Background(), actorOf(owner), CreateStoreInput{
			Name:    "Loja Emprestada",
			Email:   "emprestada@example.com",
			Address: "Rua Principal, 11",
			OwnerID: other.ID,
		})
		if err != nil {
			t.Fatalf("esperava sucesso, obteve erro: %v", err)
		}

		// OwnerID do payload é ignorado para owners: a loja é dele mesmo
		if !store.IsOwnedBy(owner.ID) {
			t.Error("esperava loja atribuída ao chamador, não ao owner do payload")
		}
	})

	t.Run("admin cria loja para um owner", func(t *testing.T) {
		env := newTestEnv(t)
		admin := env.seedUser(t, "Administrador Criador Um", uniqueEmail(), entities.RoleAdmin)
		owner := env.seedUser(t, "Proprietário Criador Quatro", uniqueEmail(), entities.RoleOwner)

		store, err := env.storeSvc.CreateStore(context.Background(), actorOf(admin), CreateStoreInput{
			Name:    "Mercearia Delegada",
			Email:   "delegada@example.com",
			Address: "Rua Principal, 12",
			OwnerID: owner.ID,
		})
		if err != nil {
			t.Fatalf("esperava sucesso, obteve erro: %v", err)
		}
		if !store.IsOwnedBy(owner.ID) {
			t.Error("esperava loja atribuída ao owner indicado")
		}
	})

	t.Run("admin sem owner indicado", func(t *testing.T) {
		env := newTestEnv(t)
		admin := env.seedUser(t, "Administrador Criador Dois", uniqueEmail(), entities.RoleAdmin)

		_, err := env.storeSvc.CreateStore(context.Background(), actorOf(admin), CreateStoreInput{
			Name:    "Loja Sem Dono",
			Email:   "semdono@example.com",
			Address: "Rua Principal, 13",
		})
		if err != errors.ErrInvalidOwner {
			t.Errorf("esperava ErrInvalidOwner, obteve %v", err)
		}
	})

	t.Run("dono indicado precisa ter role owner", func(t *testing.T) {
		env := newTestEnv(t)
		admin := env.seedUser(t, "Administrador Criador Três", uniqueEmail(), entities.RoleAdmin)
		user := env.seedUser(t, "Usuário Comum Sem Lojas Um", uniqueEmail(), entities.RoleUser)

		_, err := env.storeSvc.CreateStore(context.Background(), actorOf(admin), CreateStoreInput{
			Name:    "Loja Dono Errado",
			Email:   "donoerrado@example.com",
			Address: "Rua Principal, 14",
			OwnerID: user.ID,
		})
		if err != errors.ErrInvalidOwner {
			t.Errorf("esperava ErrInvalidOwner, obteve %v", err)
		}
	})

	t.Run("usuário comum não cria loja", func(t *testing.T) {
		env := newTestEnv(t)
		user := env.seedUser(t, "Usuário Comum Sem Lojas Dois", uniqueEmail(), entities.RoleUser)

		_, err := env.storeSvc.CreateStore(context.Background(), actorOf(user), CreateStoreInput{
			Name:    "Loja Proibida",
			Email:   "proibida@example.com",
			Address: "Rua Principal, 15",
		})
		if err != errors.ErrForbidden {
			t.Errorf("esperava ErrForbidden, obteve %v", err)
		}
	})

	t.Run("email de loja é único", func(t *testing.T) {
		env := newTestEnv(t)
		owner := env.seedUser(t, "Proprietário Criador Cinco", uniqueEmail(), entities.RoleOwner)
		env.seedStore(t, "Loja Original", "repetido@example.com", owner.ID)

		_, err := env.storeSvc.CreateStore(context.Background(), actorOf(owner), CreateStoreInput{
			Name:    "Loja Clonada",
			Email:   "repetido@example.com",
			Address: "Rua Principal, 16",
		})
		if err != errors.ErrStoreEmailExists {
			t.Errorf("esperava ErrStoreEmailExists, obteve %v", err)
		}
	})

	t.Run("nome curto demais", func(t *testing.T) {
		env := newTestEnv(t)
		owner := env.seedUser(t, "Proprietário Criador Seis", uniqueEmail(), entities.RoleOwner)

		_, err := env.storeSvc.CreateStore(context.Background(), actorOf(owner), CreateStoreInput{
			Name:    "ab",
			Email:   "curta@example.com",
			Address: "Rua Principal, 17",
		})
		if err != errors.ErrInvalidStoreName {
			t.Errorf("esperava ErrInvalidStoreName, obteve %v", err)
		}
	})
}

func TestStoreService_UpdateStore(t *testing.T) {
	t.Run("owner atualiza a própria loja", func(t *testing.T) {
		env := newTestEnv(t)
		owner := env.seedUser(t, "Proprietário Editor Um", uniqueEmail(), entities.RoleOwner)
		store := env.seedStore(t, "Loja Antes", uniqueEmail(), owner.ID)

		newName := "Loja Depois"
		updated, err := env.storeSvc.UpdateStore(context.Background(), actorOf(owner), store.ID, UpdateStoreInput{
			Name: &newName,
		})
		if err != nil {
			t.Fatalf("esperava sucesso, obteve erro: %v", err)
		}
		if updated.Name != "Loja Depois" {
			t.Errorf("esperava nome atualizado, obteve '%s'", updated.Name)
		}
	})

	t.Run("loja alheia existente é Forbidden, não NotFound", func(t *testing.T) {
		env := newTestEnv(t)
		owner := env.seedUser(t, "Proprietário Editor Dois", uniqueEmail(), entities.RoleOwner)
		other := env.seedUser(t, "Proprietário Editor Três", uniqueEmail(), entities.RoleOwner)
		store := env.seedStore(t, "Loja Alheia", uniqueEmail(), owner.ID)

		newName := "Invasão"
		_, err := env.storeSvc.UpdateStore(context.Background(), actorOf(other), store.ID, UpdateStoreInput{
			Name: &newName,
		})
		if err != errors.ErrForbidden {
			t.Errorf("esperava ErrForbidden, obteve %v", err)
		}
	})

	t.Run("loja inexistente é NotFound", func(t *testing.T) {
		env := newTestEnv(t)
		owner := env.seedUser(t, "Proprietário Editor Quatro", uniqueEmail(), entities.RoleOwner)

		newName := "Fantasma"
		_, err := env.storeSvc.UpdateStore(context.Background(), actorOf(owner),
			"44444444-4444-4444-8444-444444444444", UpdateStoreInput{Name: &newName})
		if err != errors.ErrStoreNotFound {
			t.Errorf("esperava ErrStoreNotFound, obteve %v", err)
		}
	})

	t.Run("owner não reatribui a própria loja", func(t *testing.T) {
		env := newTestEnv(t)
		owner := env.seedUser(t, "Proprietário Editor Cinco", uniqueEmail(), entities.RoleOwner)
		other := env.seedUser(t, "Proprietário Editor Seis", uniqueEmail(), entities.RoleOwner)
		store := env.seedStore(t, "Loja Presa", uniqueEmail(), owner.ID)

		_, err := env.storeSvc.UpdateStore(context.Background(), actorOf(owner), store.ID, UpdateStoreInput{
			OwnerID: &other.ID,
		})
		if err != errors.ErrForbidden {
			t.Errorf("esperava ErrForbidden na reatribuição, obteve %v", err)
		}
	})

	t.Run("admin reatribui para outro owner válido", func(t *testing.T) {
		env := newTestEnv(t)
		admin := env.seedUser(t, "Administrador Editor Um", uniqueEmail(), entities.RoleAdmin)
		owner := env.seedUser(t, "Proprietário Editor Sete", uniqueEmail(), entities.RoleOwner)
		other := env.seedUser(t, "Proprietário Editor Oito", uniqueEmail(), entities.RoleOwner)
		store := env.seedStore(t, "Loja Transferida", uniqueEmail(), owner.ID)

		updated, err := env.storeSvc.UpdateStore(context.Background(), actorOf(admin), store.ID, UpdateStoreInput{
			OwnerID: &other.ID,
		})
		if err != nil {
			t.Fatalf("esperava sucesso, obteve erro: %v", err)
		}
		if !updated.IsOwnedBy(other.ID) {
			t.Error("esperava loja transferida para o novo owner")
		}
	})

	t.Run("reatribuição para usuário comum é inválida", func(t *testing.T) {
		env := newTestEnv(t)
		admin := env.seedUser(t, "Administrador Editor Dois", uniqueEmail(), entities.RoleAdmin)
		owner := env.seedUser(t, "Proprietário Editor Nove", uniqueEmail(), entities.RoleOwner)
		user := env.seedUser(t, "Usuário Comum Sem Lojas Três", uniqueEmail(), entities.RoleUser)
		store := env.seedStore(t, "Loja Travada", uniqueEmail(), owner.ID)

		_, err := env.storeSvc.UpdateStore(context.Background(), actorOf(admin), store.ID, UpdateStoreInput{
			OwnerID: &user.ID,
		})
		if err != errors.ErrInvalidOwner {
			t.Errorf("esperava ErrInvalidOwner, obteve %v", err)
		}
	})

	t.Run("email novo colidindo com outra loja é conflito", func(t *testing.T) {
		env := newTestEnv(t)
		owner := env.seedUser(t, "Proprietário Editor Dez", uniqueEmail(), entities.RoleOwner)
		env.seedStore(t, "Loja Dona do Email", "ocupado@example.com", owner.ID)
		store := env.seedStore(t, "Loja Cobiçosa", uniqueEmail(), owner.ID)

		taken := "ocupado@example.com"
		_, err := env.storeSvc.UpdateStore(context.Background(), actorOf(owner), store.ID, UpdateStoreInput{
			Email: &taken,
		})
		if err != errors.ErrStoreEmailExists {
			t.Errorf("esperava ErrStoreEmailExists, obteve %v", err)
		}
	})
}

func TestStoreService_DeleteStore(t *testing.T) {
	t.Run("remover a loja leva as avaliações junto", func(t *testing.T) {
		env := newTestEnv(t)
		owner := env.seedUser(t, "Proprietário Removedor Um", uniqueEmail(), entities.RoleOwner)
		user := env.seedUser(t, "Usuário Comum Avaliador Extra", uniqueEmail(), entities.RoleUser)
		store := env.seedStore(t, "Loja Condenada", uniqueEmail(), owner.ID)

		rating := env.rate(t, user, store.ID, 4)

		if err := env.storeSvc.DeleteStore(context.Background(), actorOf(owner), store.ID); err != nil {
			t.Fatalf("esperava sucesso, obteve erro: %v", err)
		}

		gone, err := env.stores.FindByID(context.Background(), store.ID)
		if err != nil {
			t.Fatalf("erro inesperado: %v", err)
		}
		if gone != nil {
			t.Error("esperava loja removida")
		}

		orphan, err := env.ratings.FindByID(context.Background(), rating.ID)
		if err != nil {
			t.Fatalf("erro inesperado: %v", err)
		}
		if orphan != nil {
			t.Error("esperava avaliação removida em cascata")
		}
	})

	t.Run("owner não remove loja alheia", func(t *testing.T) {
		env := newTestEnv(t)
		owner := env.seedUser(t, "Proprietário Removedor Dois", uniqueEmail(), entities.RoleOwner)
		other := env.seedUser(t, "Proprietário Removedor Três", uniqueEmail(), entities.RoleOwner)
		store := env.seedStore(t, "Loja Protegida", uniqueEmail(), owner.ID)

		if err := env.storeSvc.DeleteStore(context.Background(), actorOf(other), store.ID); err != errors.ErrForbidden {
			t.Errorf("esperava ErrForbidden, obteve %v", err)
		}
	})

	t.Run("admin remove qualquer loja", func(t *testing.T) {
		env := newTestEnv(t)
		admin := env.seedUser(t, "Administrador Removedor Um", uniqueEmail(), entities.RoleAdmin)
		owner := env.seedUser(t, "Proprietário Removedor Quatro", uniqueEmail(), entities.RoleOwner)
		store := env.seedStore(t, "Loja Qualquer", uniqueEmail(), owner.ID)

		if err := env.storeSvc.DeleteStore(context.Background(), actorOf(admin), store.ID); err != nil {
			t.Errorf("esperava sucesso, obteve erro: %v", err)
		}
	})
}

func TestStoreService_Listing(t *testing.T) {
	t.Run("busca por nome e anexa a avaliação do viewer", func(t *testing.T) {
		env := newTestEnv(t)
		owner := env.seedUser(t, "Proprietário Listagem Um", uniqueEmail(), entities.RoleOwner)
		user := env.seedUser(t, "Usuário Comum Listador Um", uniqueEmail(), entities.RoleUser)
		match := env.seedStore(t, "Padaria Aurora", uniqueEmail(), owner.ID)
		env.seedStore(t, "Mercado Sem Par", uniqueEmail(), owner.ID)

		env.rate(t, user, match.ID, 4)

		stores, err := env.storeSvc.ListStores(context.Background(), repositories.StoreFilters{
			Name:     "aurora",
			ViewerID: user.ID,
		})
		if err != nil {
			t.Fatalf("esperava sucesso, obteve erro: %v", err)
		}

		if len(stores) != 1 {
			t.Fatalf("esperava 1 loja, obteve %d", len(stores))
		}
		if stores[0].UserRating == nil {
			t.Fatal("esperava a avaliação do viewer anexada")
		}
		if stores[0].UserRating.Value != 4 {
			t.Errorf("esperava nota 4 anexada, obteve %d", stores[0].UserRating.Value)
		}
	})

	t.Run("minhas lojas retorna só as do owner", func(t *testing.T) {
		env := newTestEnv(t)
		owner := env.seedUser(t, "Proprietário Listagem Dois", uniqueEmail(), entities.RoleOwner)
		other := env.seedUser(t, "Proprietário Listagem Três", uniqueEmail(), entities.RoleOwner)
		env.seedStore(t, "Loja do Primeiro", uniqueEmail(), owner.ID)
		env.seedStore(t, "Loja do Segundo", uniqueEmail(), other.ID)

		stores, err := env.storeSvc.MyStores(context.Background(), owner.ID)
		if err != nil {
			t.Fatalf("esperava sucesso, obteve erro: %v", err)
		}
		if len(stores) != 1 || stores[0].Name != "Loja do Primeiro" {
			t.Errorf("esperava somente a loja do primeiro owner, obteve %d lojas", len(stores))
		}
	})

	t.Run("busca de loja inexistente é NotFound", func(t *testing.T) {
		env := newTestEnv(t)

		_, err := env.storeSvc.GetStore(context.Background(), "",
			"55555555-5555-4555-8555-555555555555")
		if err != errors.ErrStoreNotFound {
			t.Errorf("esperava ErrStoreNotFound, obteve %v", err)
		}
	})
}
