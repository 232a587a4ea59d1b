package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/rafabene/avaliapro-backend/internal/domain/entities"
	"github.com/rafabene/avaliapro-backend/internal/domain/ports"
	"github.com/rafabene/avaliapro-backend/internal/domain/repositories"
	"github.com/rafabene/avaliapro-backend/internal/domain/valueobjects"
	infraauth "github.com/rafabene/avaliapro-backend/internal/infrastructure/auth"
	"github.com/rafabene/avaliapro-backend/internal/infrastructure/persistence/postgres"
)

// nopLogger silencia o log nos testes
type nopLogger struct{}

func (nopLogger) Info(msg string, args ...any)  {}
func (nopLogger) Error(msg string, args ...any) {}
func (nopLogger) Debug(msg string, args ...any) {}
func (nopLogger) Warn(msg string, args ...any)  {}
func (l nopLogger) With(args ...any) ports.Logger {
	return l
}

// testEnv monta a pilha completa de serviços sobre um SQLite em memória,
// com o mesmo schema e as mesmas cascatas do banco real
type testEnv struct {
	db         *gorm.DB
	users      repositories.UserRepository
	stores     repositories.StoreRepository
	ratings    repositories.RatingRepository
	uow        ports.UnitOfWork
	aggregator *RatingAggregator
	auth       *AuthService
	userSvc    *UserService
	storeSvc   *StoreService
	ratingSvc  *RatingService
	dashboard  *DashboardService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	// Banco nomeado por teste: cache=shared mantém o mesmo banco entre
	// conexões, e uma única conexão evita "database is locked"
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("falha ao abrir banco de teste: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("falha ao obter sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := postgres.Migrate(db); err != nil {
		t.Fatalf("falha ao migrar schema: %v", err)
	}

	logger := nopLogger{}
	users := postgres.NewUserRepository(db)
	stores := postgres.NewStoreRepository(db)
	ratings := postgres.NewRatingRepository(db)
	uow := postgres.NewUnitOfWork(db)
	issuer := infraauth.NewJWTIssuer("segredo-de-teste", time.Hour)
	aggregator := NewRatingAggregator(stores, ratings, logger)

	return &testEnv{
		db:         db,
		users:      users,
		stores:     stores,
		ratings:    ratings,
		uow:        uow,
		aggregator: aggregator,
		auth:       NewAuthService(users, issuer, logger),
		userSvc:    NewUserService(users, ratings, aggregator, uow, logger),
		storeSvc:   NewStoreService(stores, users, uow, logger),
		ratingSvc:  NewRatingService(ratings, stores, users, aggregator, uow, logger),
		dashboard:  NewDashboardService(users, stores, ratings, logger),
	}
}

func (e *testEnv) seedUser(t *testing.T, name, emailAddr string, role entities.Role) *entities.User {
	t.Helper()

	email, err := valueobjects.NewEmail(emailAddr)
	if err != nil {
		t.Fatalf("falha ao criar email: %v", err)
	}

	user := &entities.User{
		Email:        email,
		Name:         name,
		PasswordHash: "hash-irrelevante",
		Role:         role,
	}
	if err := e.users.Create(context.Background(), user); err != nil {
		t.Fatalf("falha ao criar usuário de teste: %v", err)
	}
	return user
}

func (e *testEnv) seedStore(t *testing.T, name, emailAddr, ownerID string) *entities.Store {
	t.Helper()

	email, err := valueobjects.NewEmail(emailAddr)
	if err != nil {
		t.Fatalf("falha ao criar email: %v", err)
	}

	store := &entities.Store{
		Name:    name,
		Email:   email,
		Address: "Rua de Teste, 1",
		OwnerID: &ownerID,
	}
	if err := e.stores.Create(context.Background(), store); err != nil {
		t.Fatalf("falha ao criar loja de teste: %v", err)
	}
	return store
}

// rate cria uma avaliação pelo caminho de serviço, disparando o recompute
func (e *testEnv) rate(t *testing.T, user *entities.User, storeID string, value int) *entities.Rating {
	t.Helper()

	rating, err := e.ratingSvc.CreateRating(context.Background(), actorOf(user), CreateRatingInput{
		StoreID: storeID,
		Value:   value,
	})
	if err != nil {
		t.Fatalf("falha ao criar avaliação de teste: %v", err)
	}
	return rating
}

func (e *testEnv) reloadStore(t *testing.T, id string) *entities.Store {
	t.Helper()

	store, err := e.stores.FindByID(context.Background(), id)
	if err != nil {
		t.Fatalf("falha ao recarregar loja: %v", err)
	}
	if store == nil {
		t.Fatalf("loja %s não existe mais", id)
	}
	return store
}

func actorOf(user *entities.User) entities.Actor {
	return entities.Actor{ID: user.ID, Role: user.Role}
}

// uniqueEmail gera um email que não colide entre seeds do mesmo teste
func uniqueEmail() string {
	return "u-" + uuid.NewString() + "@example.com"
}
