package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"lingua-tutor/internal/adapter/model"
	"lingua-tutor/internal/config"
	"lingua-tutor/internal/domain"
	"lingua-tutor/internal/handler"
	"lingua-tutor/internal/logger"
	"lingua-tutor/internal/middleware"
	"lingua-tutor/internal/repository"
	"lingua-tutor/internal/repository/filestore"
	"lingua-tutor/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

// requestLogger is a middleware that logs HTTP requests
func requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		path := c.Path()
		method := c.Method()

		err := c.Next()

		duration := time.Since(start)
		status := c.Response().StatusCode()

		logger.Get().Info("HTTP Request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.Duration("duration", duration),
			zap.String("ip", c.IP()),
		)

		return err
	}
}

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	// Local file stores. These are always available and double as the
	// fallback backend when the hosted database misbehaves.
	userStore := filestore.NewUserStore(cfg.Storage.DataDir)
	wordStore := filestore.NewWordStore(cfg.Storage.DataDir)
	grammarStore := filestore.NewGrammarStore(cfg.Storage.DataDir)

	var userRepo domain.UserRepository = userStore
	var wordRepo domain.WordRepository = wordStore
	var grammarRepo domain.GrammarRepository = grammarStore

	// Hosted database, when configured, becomes the primary backend with
	// the file stores behind it.
	if cfg.Database.URL != "" {
		db, err := repository.NewSQLXPostgresDB(cfg.Database.URL)
		if err != nil {
			appLogger.Warn("Failed to connect to database, using local files only", zap.Error(err))
		} else {
			appLogger.Info("Connected to database")
			userRepo = repository.NewFailoverUserRepository(repository.NewSQLXUserRepository(db), userStore, appLogger)
			wordRepo = repository.NewFailoverWordRepository(repository.NewSQLXWordRepository(db), wordStore, appLogger)
			grammarRepo = repository.NewFailoverGrammarRepository(repository.NewSQLXGrammarRepository(db), grammarStore, appLogger)
			defer db.Close()
		}
	} else {
		appLogger.Info("DATABASE_URL not set, using local files only")
	}

	// External model. Without an API key the scoring and ingestion paths
	// answer with an availability error instead of failing at startup.
	var gateway domain.ModelGateway
	if cfg.Gemini.APIKey != "" {
		g, err := model.NewGeminiGateway(context.Background(), cfg.Gemini.APIKey, cfg.Gemini.Model, appLogger)
		if err != nil {
			appLogger.Warn("Failed to initialize model gateway", zap.Error(err))
		} else {
			gateway = g
			appLogger.Info("Model gateway initialized", zap.String("model", cfg.Gemini.Model))
		}
	} else {
		appLogger.Warn("GEMINI_API_KEY not set, model-backed scoring is disabled")
	}

	registry := service.NewJobRegistry(cfg.Scoring.MaxConcurrent, cfg.Scoring.CallTimeout, appLogger)

	// Initialize services
	authService, err := service.NewAuthService(userRepo, cfg)
	if err != nil {
		appLogger.Fatal("Failed to create AuthService", zap.Error(err))
	}
	userService := service.NewUserService(userRepo)
	contentService := service.NewContentService(wordRepo, grammarRepo)
	scoringService := service.NewScoringService(gateway, registry)
	ingestService := service.NewIngestService(gateway, wordRepo, grammarRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	adminHandler := handler.NewAdminHandler(userService, ingestService)
	scoreHandler := handler.NewScoreHandler(scoringService)
	contentHandler := handler.NewContentHandler(contentService)

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		BodyLimit:    cfg.Server.BodyLimit,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(requestLogger())
	app.Use(cors.New(cors.Config{AllowOrigins: "*", AllowMethods: "GET,POST,PUT,DELETE,OPTIONS", AllowHeaders: "Origin,Content-Type,Accept,Authorization", MaxAge: 300}))
	app.Use(recover.New())

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "中国語学習アプリ API", "status": "running"})
	})

	apiGroup := app.Group("/api")

	// Auth routes
	authGroup := apiGroup.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Get("/me", middleware.Protected(authService), authHandler.Me)

	// Scoring routes. These stay open: the practice widgets submit and
	// poll without a token.
	scoreGroup := apiGroup.Group("/score")
	scoreGroup.Post("/sorting", scoreHandler.ScoreSorting)
	scoreGroup.Post("/handwriting", scoreHandler.ScoreHandwriting)
	scoreGroup.Post("/writing", scoreHandler.ScoreWriting)
	scoreGroup.Get("/result/:task_id", scoreHandler.GetResult)

	// Study material routes
	apiGroup.Get("/words", middleware.Protected(authService), contentHandler.GetWords)
	apiGroup.Get("/grammar", middleware.Protected(authService), contentHandler.GetGrammar)
	apiGroup.Get("/lessons", middleware.Protected(authService), contentHandler.GetLessons)

	// Admin routes. Uploading stays open to every signed-in user so
	// students can ingest their own textbook pages.
	adminGroup := apiGroup.Group("/admin")
	adminGroup.Post("/upload-textbook", middleware.Protected(authService), adminHandler.UploadTextbook)
	adminGroup.Get("/users", middleware.Protected(authService), middleware.AdminOnly(authService), adminHandler.ListUsers)
	adminGroup.Put("/users/:student_id", middleware.Protected(authService), middleware.AdminOnly(authService), adminHandler.UpdateUser)
	adminGroup.Delete("/users/:student_id", middleware.Protected(authService), middleware.AdminOnly(authService), adminHandler.DeleteUser)

	// Start server
	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("env", cfg.Logger.Env))
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		appLogger.Fatal("Server forced to shutdown", zap.Error(err))
	}
	registry.Wait()
	appLogger.Info("Server exited gracefully")
}
