// @title Student Employability Prediction API
// @version 1.0
// @description Web backend for uploading student evaluations and predicting employability.
// @host localhost:8080
// @BasePath /
// @schemes http https
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
// @description Type 'Bearer YOUR_JWT_TOKEN' to authorize.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/Lanziify/seps-web-server/internal/adapter"
	"github.com/Lanziify/seps-web-server/internal/adapter/classifier"
	"github.com/Lanziify/seps-web-server/internal/adapter/mailer"
	"github.com/Lanziify/seps-web-server/internal/config"
	"github.com/Lanziify/seps-web-server/internal/database"
	"github.com/Lanziify/seps-web-server/internal/domain"
	"github.com/Lanziify/seps-web-server/internal/handler"
	"github.com/Lanziify/seps-web-server/internal/logger"
	"github.com/Lanziify/seps-web-server/internal/middleware"
	"github.com/Lanziify/seps-web-server/internal/repository"
	"github.com/Lanziify/seps-web-server/internal/service"
	"github.com/Lanziify/seps-web-server/internal/validation"

	_ "github.com/Lanziify/seps-web-server/cmd/api/docs"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
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
			zap.String("user_agent", c.Get("User-Agent")),
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

	// Connect to database
	db, err := database.NewSQLXPostgresDB(cfg.GetDSN())
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Initialize Redis client
	redisClient, err := adapter.NewRedisClient(cfg.Redis)
	if err != nil {
		appLogger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	appLogger.Info("Successfully connected to Redis")
	cacheAdapter := adapter.NewRedisCacheAdapter(redisClient)

	// Load the model artifact
	baggedTree, err := classifier.NewBaggedTreeClassifier(cfg.Model.Path)
	if err != nil {
		appLogger.Fatal("Failed to load classifier model", zap.Error(err), zap.String("path", cfg.Model.Path))
	}
	appLogger.Info("Classifier model loaded", zap.String("path", cfg.Model.Path))

	// Outbound mail
	var appMailer domain.Mailer
	switch cfg.Mail.Provider {
	case "sendgrid":
		appMailer = mailer.NewSendgridMailer(cfg.Mail)
		appLogger.Info("SendGrid mailer initialized")
	default:
		appMailer = mailer.NewConsoleMailer()
		appLogger.Info("Console mailer initialized; outbound mail will be logged only")
	}

	// Initialize repositories
	userRepository := repository.NewSQLXUserRepository(db)
	refreshTokenRepository := repository.NewSQLXRefreshTokenRepository(db)
	blocklistRepository := repository.NewSQLXBlocklistRepository(db)
	datasetRepository := repository.NewSQLXDatasetRepository(db)
	predictionRepository := repository.NewSQLXPredictionRepository(db)
	classificationRepository := repository.NewSQLXClassificationRepository(db)
	txManager := repository.NewTransactionManagerAdapter(db)

	// Initialize services
	hasher := service.NewBcryptHasher(cfg.Auth.BcryptCost)

	verificationService, err := service.NewEmailVerificationService(userRepository, appMailer, cfg)
	if err != nil {
		appLogger.Fatal("Failed to create EmailVerificationService", zap.Error(err))
	}

	tokenService, err := service.NewTokenService(refreshTokenRepository, blocklistRepository, userRepository, cacheAdapter, txManager, cfg)
	if err != nil {
		appLogger.Fatal("Failed to create TokenService", zap.Error(err))
	}

	userService := service.NewUserService(userRepository, hasher, verificationService, txManager)
	predictionService := service.NewPredictionService(datasetRepository, predictionRepository, classificationRepository, baggedTree, txManager)

	// Initialize handlers
	validator := validation.NewValidator()
	authHandler := handler.NewAuthHandler(userService, tokenService, verificationService, validator)
	userHandler := handler.NewUserHandler(userService)
	predictionHandler := handler.NewPredictionHandler(predictionService, validator)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(requestLogger())
	app.Use(cors.New(cors.Config{AllowOrigins: "*", AllowMethods: "GET,POST,PUT,DELETE,OPTIONS", AllowHeaders: "Origin,Content-Type,Accept,Authorization", MaxAge: 300}))
	app.Use(recover.New())

	// Swagger handler
	app.Get("/swagger/*", swagger.HandlerDefault)

	// Auth routes
	app.Post("/register", authHandler.Register)
	app.Get("/confirm_email/:token", authHandler.ConfirmEmail)
	app.Post("/login", authHandler.Login)
	app.Delete("/logout", middleware.Protected(tokenService), authHandler.Logout)

	// User routes
	app.Get("/user", middleware.Protected(tokenService), userHandler.GetProfile)
	app.Get("/users", userHandler.ListUsers)

	// Dataset and prediction routes
	app.Post("/upload", middleware.Protected(tokenService), predictionHandler.Upload)
	app.Get("/dataset", middleware.Protected(tokenService), predictionHandler.ListDataset)
	app.Post("/predict", middleware.Protected(tokenService), predictionHandler.Predict)
	app.Post("/upload_predict", middleware.Protected(tokenService), predictionHandler.UploadAndPredict)
	app.Get("/predictions", middleware.Protected(tokenService), predictionHandler.ListPredictions)

	// Registered last so the wildcard segment cannot shadow the fixed routes.
	app.Get("/:user_id/refresh_token", middleware.RefreshGuard(tokenService), authHandler.RefreshToken)

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
	appLogger.Info("Server exited gracefully")
}
