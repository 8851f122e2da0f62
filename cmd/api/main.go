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
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/viniciusmp/pessoas-backend/docs"
	"github.com/viniciusmp/pessoas-backend/internal/handlers/dto"
	httphandlers "github.com/viniciusmp/pessoas-backend/internal/handlers/http"
	"github.com/viniciusmp/pessoas-backend/internal/handlers/middleware"
	"github.com/viniciusmp/pessoas-backend/internal/handlers/ws"
	"github.com/viniciusmp/pessoas-backend/internal/infrastructure/config"
	"github.com/viniciusmp/pessoas-backend/internal/infrastructure/i18n"
	"github.com/viniciusmp/pessoas-backend/internal/infrastructure/logging"
	"github.com/viniciusmp/pessoas-backend/internal/infrastructure/persistence/postgres"
	"github.com/viniciusmp/pessoas-backend/internal/infrastructure/token"
	"github.com/viniciusmp/pessoas-backend/internal/services"
)

//	@title			Pessoas API
//	@version		1.0
//	@description	Cadastro de pessoas físicas e jurídicas com autenticação.
//	@BasePath		/api

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization

func main() {
	// Carregar .env (ausência não é erro em produção)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	// Inicializar logger
	logger := logging.NewSlogLogger(cfg.Logging.Level)
	logger.Info("starting pessoas backend",
		"env", cfg.Env,
		"version", "dev",
	)

	// Conectar ao banco de dados (roda as migrations)
	db, err := postgres.NewDatabaseConnection(&cfg.Database, logger)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		log.Fatal(err)
	}

	// Dados de exemplo
	if cfg.Database.Seed {
		if err := postgres.Seed(context.Background(), db, logger); err != nil {
			logger.Error("failed to seed database", "error", err)
			log.Fatal(err)
		}
	}

	// Inicializar i18n
	i18nService, err := i18n.NewService("./internal/infrastructure/i18n/locales", "pt-BR")
	if err != nil {
		logger.Error("failed to initialize i18n", "error", err)
		log.Fatal(err)
	}
	logger.Info("i18n initialized",
		"default_language", i18nService.GetDefaultLanguage(),
		"supported_languages", i18nService.GetSupportedLanguages(),
	)

	// Inicializar repositories
	userRepo := postgres.NewUserRepository(db)
	personRepo := postgres.NewPersonRepository(db)
	uow := postgres.NewUnitOfWork(db)

	// Tokens de sessão
	tokens := token.NewManager(cfg.JWT.Secret, cfg.JWT.Expiry)

	// Inicializar services
	authService := services.NewAuthService(userRepo, tokens, logger)
	personService := services.NewPersonService(personRepo, uow, logger)

	// Feed de alterações via websocket
	hub := ws.NewHub(logger)

	// Inicializar handlers
	authHandler := httphandlers.NewAuthHandler(authService)
	personHandler := httphandlers.NewPersonHandler(personService, hub)

	// Validações customizadas (cpf_cnpj)
	dto.RegisterValidators()

	// Setup Gin
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()

	// Middleware i18n
	i18nMiddleware := middleware.NewI18nMiddleware(i18nService)
	router.Use(i18nMiddleware.DetectLanguage())

	// Middleware CORS
	router.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Split(cfg.CORS.AllowedOrigins, ","),
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"env":    cfg.Env,
		})
	})

	// Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API routes
	api := router.Group("/api")
	{
		// Auth
		api.POST("/register", authHandler.Register)
		api.POST("/login", authHandler.Login)
		api.POST("/logout", authHandler.Logout)
		api.GET("/me", middleware.RequireAuth(tokens), authHandler.Me)

		// Feed de alterações
		api.GET("/ws", middleware.RequireAuth(tokens), hub.Handle)

		// People: listagem e mutações exigem sessão autenticada
		people := api.Group("/people", middleware.RequireAuth(tokens))
		{
			people.GET("", personHandler.List)
			people.POST("", personHandler.Create)
			people.GET("/search", personHandler.Search)
			people.GET("/:id", personHandler.Show)
			people.PUT("/:id", personHandler.Update)
			people.DELETE("/:id", personHandler.Delete)
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
