package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/rafabene/avaliapro-backend/internal/domain/entities"
	"github.com/rafabene/avaliapro-backend/internal/handlers/dto"
	httphandlers "github.com/rafabene/avaliapro-backend/internal/handlers/http"
	"github.com/rafabene/avaliapro-backend/internal/handlers/middleware"
	"github.com/rafabene/avaliapro-backend/internal/infrastructure/auth"
	"github.com/rafabene/avaliapro-backend/internal/infrastructure/config"
	"github.com/rafabene/avaliapro-backend/internal/infrastructure/i18n"
	"github.com/rafabene/avaliapro-backend/internal/infrastructure/logging"
	"github.com/rafabene/avaliapro-backend/internal/infrastructure/persistence/postgres"
	"github.com/rafabene/avaliapro-backend/internal/services"
)

func main() {
	// Carregar configurações
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	// Inicializar logger
	logger := logging.NewSlogLogger(cfg.Logging.Level)
	logger.Info("starting avaliapro backend",
		"env", cfg.Env,
		"version", "dev",
	)

	// Conectar ao banco de dados
	db, err := postgres.NewDatabaseConnection(&cfg.Database, logger)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		log.Fatal(err)
	}
	if err := postgres.Migrate(db); err != nil {
		logger.Error("failed to run migrations", "error", err)
		log.Fatal(err)
	}

	// Inicializar i18n
	i18nService, err := i18n.NewService(i18n.Locales(), "en")
	if err != nil {
		logger.Error("failed to initialize i18n", "error", err)
		log.Fatal(err)
	}
	logger.Info("i18n initialized",
		"default_language", i18nService.GetDefaultLanguage(),
		"supported_languages", i18nService.GetSupportedLanguages(),
	)

	// Validações customizadas dos DTOs
	if err := dto.RegisterValidators(); err != nil {
		logger.Error("failed to register validators", "error", err)
		log.Fatal(err)
	}

	// Inicializar repositories
	userRepo := postgres.NewUserRepository(db)
	storeRepo := postgres.NewStoreRepository(db)
	ratingRepo := postgres.NewRatingRepository(db)
	uow := postgres.NewUnitOfWork(db)

	// Inicializar services
	issuer := auth.NewJWTIssuer(cfg.JWT.Secret, cfg.JWT.AccessExpiry)
	aggregator := services.NewRatingAggregator(storeRepo, ratingRepo, logger)
	authService := services.NewAuthService(userRepo, issuer, logger)
	userService := services.NewUserService(userRepo, ratingRepo, aggregator, uow, logger)
	storeService := services.NewStoreService(storeRepo, userRepo, uow, logger)
	ratingService := services.NewRatingService(ratingRepo, storeRepo, userRepo, aggregator, uow, logger)
	dashboardService := services.NewDashboardService(userRepo, storeRepo, ratingRepo, logger)

	// Inicializar handlers
	authHandler := httphandlers.NewAuthHandler(authService, logger)
	userHandler := httphandlers.NewUserHandler(userService, logger)
	storeHandler := httphandlers.NewStoreHandler(storeService, logger)
	ratingHandler := httphandlers.NewRatingHandler(ratingService, logger)
	dashboardHandler := httphandlers.NewDashboardHandler(dashboardService, logger)
	dashboardStream := httphandlers.NewDashboardStreamHandler(dashboardService, logger)

	// Setup Gin
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()

	// Middleware global para adicionar base URL ao contexto
	router.Use(func(c *gin.Context) {
		c.Set("base_url", cfg.Server.BaseURL)
		c.Next()
	})

	// Middleware i18n
	i18nMiddleware := middleware.NewI18nMiddleware(i18nService)
	router.Use(i18nMiddleware.DetectLanguage())

	// Middleware CORS
	corsConfig := cors.DefaultConfig()
	if cfg.CORS.AllowedOrigins == "*" {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = strings.Split(cfg.CORS.AllowedOrigins, ",")
		corsConfig.AllowCredentials = true
	}
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	router.Use(cors.New(corsConfig))

	// Middleware de autenticação
	authMiddleware := middleware.NewAuthMiddleware(issuer)

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"env":    cfg.Env,
		})
	})

	// API routes
	v1 := router.Group("/api/v1")
	{
		// Auth
		authRoutes := v1.Group("/auth")
		{
			authRoutes.POST("/signup", authHandler.Signup)
			authRoutes.POST("/login", authHandler.Login)
		}

		// Avaliações de uma loja são públicas
		v1.GET("/ratings/store/:storeId", ratingHandler.RatingsByStore)

		// Rotas autenticadas
		authed := v1.Group("")
		authed.Use(authMiddleware.RequireAuth())
		{
			authed.GET("/users/me", userHandler.Me)

			// Stores
			stores := authed.Group("/stores")
			{
				stores.GET("", storeHandler.ListStores)
				stores.GET("/mine", authMiddleware.RequireRole(entities.RoleOwner, entities.RoleAdmin), storeHandler.MyStores)
				stores.GET("/:id", storeHandler.GetStore)
				stores.POST("", storeHandler.CreateStore)
				stores.PUT("/:id", storeHandler.UpdateStore)
				stores.DELETE("/:id", storeHandler.DeleteStore)
			}

			// Ratings
			ratings := authed.Group("/ratings")
			{
				ratings.GET("/user", ratingHandler.MyRatings)
				ratings.POST("", ratingHandler.CreateRating)
				ratings.PUT("/:id", ratingHandler.UpdateRating)
				ratings.DELETE("/:id", ratingHandler.DeleteRating)
			}

			// Dashboards por papel
			dashboard := authed.Group("/dashboard")
			{
				dashboard.GET("/admin/stats", authMiddleware.RequireRole(entities.RoleAdmin), dashboardHandler.AdminStats)
				dashboard.GET("/admin/stream", authMiddleware.RequireRole(entities.RoleAdmin), dashboardStream.Stream)
				dashboard.GET("/owner/stats", authMiddleware.RequireRole(entities.RoleOwner), dashboardHandler.OwnerStats)
				dashboard.GET("/user/stats", authMiddleware.RequireRole(entities.RoleUser), dashboardHandler.UserStats)
			}

			// Administração
			admin := authed.Group("/admin")
			admin.Use(authMiddleware.RequireRole(entities.RoleAdmin))
			{
				admin.GET("/users", userHandler.ListUsers)
				admin.GET("/users/:id", userHandler.GetUser)
				admin.DELETE("/users/:id", userHandler.DeleteUser)
				admin.GET("/stores", storeHandler.ListStores)
				admin.GET("/ratings", ratingHandler.ListRatings)
				admin.POST("/ratings", ratingHandler.CreateRating)
			}
		}
	}

	// HTTP Server
	srv := &http.Server{
		Addr:              cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown
	go func() {
		logger.Info("server starting",
			"host", cfg.Server.Host,
			"port", cfg.Server.Port,
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server failed", "error", err)
			log.Fatal(err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	logger.Info("server exited")
}
