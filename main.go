package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/jobportal/backend/agent"
	"github.com/jobportal/backend/auth"
	"github.com/jobportal/backend/config"
	_ "github.com/jobportal/backend/docs"
	"github.com/jobportal/backend/gemini"
	"github.com/jobportal/backend/handlers"
	"github.com/jobportal/backend/logger"
	"github.com/jobportal/backend/mcp"
	"github.com/jobportal/backend/notify"
	"github.com/jobportal/backend/openaiclient"
	"github.com/jobportal/backend/storage"
	"github.com/jobportal/backend/tools"
)

// @title Job Portal Chat API
// @version 1.0
// @description Job-board chat assistant: keyword intent routing, job suggestions with pagination, and chat moderation.

// @contact.name API Support

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080
// @BasePath /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load .env file if present (for local development)
	envErr := godotenv.Load()

	// default console logger until the configured one is built
	boot := logger.GetLogger()

	cfg, err := config.Load()
	if err != nil {
		boot.Fatal().Err(err).Msg("failed to load configuration")
	}

	log, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		boot.Fatal().Err(err).Str("level", cfg.LogLevel).Str("format", cfg.LogFormat).Msg("invalid logger configuration")
	}
	if envErr != nil {
		log.Info().Msg("no .env file found, using environment variables")
	}

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("configuration error")
	}

	// Set Gin mode based on debug setting
	if cfg.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()

	// Jobs always come from the job board database
	log.Info().Msg("connecting to database...")
	db, err := storage.OpenDatabase(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	if cfg.RunMigrations && cfg.StorageBackend == config.StorageBackendPostgres {
		if err := storage.Migrate(ctx, db); err != nil {
			log.Fatal().Err(err).Msg("failed to run migrations")
		}
		log.Info().Msg("migrations applied")
	}

	chatStore, err := newChatStore(ctx, cfg, db)
	if err != nil {
		log.Fatal().Err(err).Str("backend", cfg.StorageBackend).Msg("failed to initialize chat store")
	}
	defer chatStore.Close()
	log.Info().Str("backend", cfg.StorageBackend).Msg("chat store initialized")

	jobLookup := storage.NewPostgresJobLookup(db)

	var images storage.ImageResolver = storage.PassthroughImages{}
	if cfg.JobImageBucket != "" {
		signer, err := storage.NewImageSigner(ctx, cfg)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize Cloud Storage client")
		}
		defer signer.Close()
		images = signer
		log.Info().Str("bucket", cfg.JobImageBucket).Msg("job image signing enabled")
	}

	generator, closeGenerator, err := newPhraseGenerator(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Str("provider", cfg.PhraseProvider).Msg("failed to initialize phrase generator")
	}
	defer closeGenerator()

	// Wire services
	registry := notify.NewRegistry(notify.DefaultBuffer)
	chatAgent := agent.NewChatAgent(chatStore, jobLookup, agent.NewComposer(generator), images)
	chatAdmin := agent.NewChatAdmin(chatStore, chatAgent, registry)
	jwtService := auth.NewJWTService(cfg)

	toolRegistry := tools.NewToolRegistry()
	toolRegistry.Register(tools.NewClassifyIntentTool())
	toolRegistry.Register(tools.NewDetectFiltersTool(jobLookup))
	toolRegistry.Register(tools.NewSearchJobsTool(jobLookup, images))
	mcpServer := mcp.NewServer(toolRegistry)

	// Create Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(logger.GinMiddleware())
	router.Use(cors.New(corsConfig(cfg.CORSOrigins)))

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/health", handlers.HealthCheck)

	api := router.Group("/api")
	handlers.RegisterRoutes(api, jwtService,
		handlers.NewChatHandler(chatAgent),
		handlers.NewAdminHandler(chatAdmin),
		handlers.NewNotificationHandler(registry),
	)
	// MCP endpoints for external AI agents
	mcpServer.RegisterRoutes(api)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       60 * time.Second,
		// no WriteTimeout: notification streams stay open
		IdleTimeout: 120 * time.Second,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	// Give outstanding requests 30 seconds to complete
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		return
	}

	log.Info().Msg("server exited gracefully")
}

func newChatStore(ctx context.Context, cfg *config.Config, db *gorm.DB) (storage.ChatStore, error) {
	if cfg.StorageBackend == config.StorageBackendFirestore {
		return storage.NewFirestoreChatStore(ctx, cfg)
	}
	return storage.NewPostgresChatStore(db), nil
}

// newPhraseGenerator builds the configured provider behind a circuit breaker.
// The returned func releases the provider's client.
func newPhraseGenerator(ctx context.Context, cfg *config.Config, log zerolog.Logger) (agent.PhraseGenerator, func(), error) {
	noop := func() {}

	switch cfg.PhraseProvider {
	case config.PhraseProviderGemini:
		client, err := gemini.NewClient(ctx, cfg)
		if err != nil {
			return nil, noop, err
		}
		log.Info().Str("provider", client.Name()).Msg("phrase generator initialized")
		return agent.NewBreakerGenerator(client.Name(), client), func() { _ = client.Close() }, nil
	case config.PhraseProviderOpenAI:
		client := openaiclient.NewClient(cfg)
		log.Info().Str("provider", client.Name()).Msg("phrase generator initialized")
		return agent.NewBreakerGenerator(client.Name(), client), noop, nil
	default:
		log.Info().Msg("phrase generator disabled, replies use the fixed text")
		return nil, noop, nil
	}
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	for _, origin := range origins {
		if origin == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}
