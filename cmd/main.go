package main

import (
	"context"
	"log"

	config "voter-registration-backend/config"
	"voter-registration-backend/middleware"
	"voter-registration-backend/token"
	"voter-registration-backend/utils"

	// Routes
	officer_routes "voter-registration-backend/officers/routes"
	registration_repositories "voter-registration-backend/registrations/repositories"
	registration_routes "voter-registration-backend/registrations/routes"

	// bleve
	bleveControllers "voter-registration-backend/bleve/controllers"
	bleveRepositories "voter-registration-backend/bleve/repositories"
	bleveRoutes "voter-registration-backend/bleve/routes"
	bleveServices "voter-registration-backend/bleve/services"

	// Uploads
	uploads_services "voter-registration-backend/uploads/services"

	// Background jobs
	"voter-registration-backend/tasks"

	// WebSocket
	"voter-registration-backend/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// Initialize Zap logger
	config.InitLogger()

	// Load environment variables
	err := godotenv.Load(".env")
	if err != nil {
		config.Logger.Fatal("Error loading .env file", zap.Error(err))
	}

	app := fiber.New()

	// Apply CORS middleware from middleware package
	middleware.InitCors(app)

	// Initialize database and configs
	db := config.ConfigureDatabase()
	port := config.GetEnv("PORT")
	ctx := context.Background()

	// Redis client for Asynq and other uses
	redisAddr := config.GetEnv("REDIS_ADDRESS")
	if redisAddr == "" {
		redisAddr = "localhost:6379" // Default for development
		config.Logger.Warn("REDIS_ADDRESS not set, using default: localhost:6379")
	}

	redisClient := config.InitRedisServer(ctx)

	asynqRedisOpt := asynq.RedisClientOpt{
		Addr:     redisAddr,
		Password: "",
		DB:       0,
	}

	asynqClient := asynq.NewClient(asynqRedisOpt)
	defer asynqClient.Close()

	tokenKey := config.GetEnv("TOKEN_SYMMETRIC_KEY")
	tokenMaker, err := token.NewPasetoMaker(tokenKey)
	if err != nil {
		config.Logger.Fatal("Cannot create token maker", zap.Error(err))
	}

	indexPath := config.GetEnv("BLEVE_INDEX_PATH")
	if indexPath == "" {
		indexPath = "./bleve_data" // Default for local development
		config.Logger.Warn("BLEVE_INDEX_PATH not set, using default: ./bleve_data")
	}

	baseURL := config.GetEnv("BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080" // Default backend URL
		config.Logger.Warn("BASE_URL not set, using default", zap.String("url", baseURL))
	}

	// Initialize the mailer
	utils.InitializeMailer()

	mailer := utils.GetMailer()
	if mailer == nil {
		config.Logger.Fatal("Mailer not initialized")
		log.Fatalf("Mailer not initialized")
	}

	// Date location
	if err := utils.InitializeDateLocation(); err != nil {
		config.Logger.Fatal("Failed to initialize date location", zap.Error(err))
	}

	// ------ WebSocket Hub Initialization for Status Updates ------
	config.Logger.Info("Initializing WebSocket hub for application status updates...")
	wsHub := websocket.NewHub()
	go wsHub.Run()

	// Serve static files
	app.Static("/public", "./public")
	app.Static("/uploads", "./uploads")

	// ID photo storage
	fileStorage := utils.NewLocalBucketStorage("./uploads", baseURL)
	if err := fileStorage.EnsureBuckets(uploads_services.GovernmentIdsBucket, uploads_services.IdSelfiesBucket); err != nil {
		config.Logger.Fatal("Failed to prepare upload buckets", zap.Error(err))
	}
	uploadService := uploads_services.NewUploadService(fileStorage, db)

	// Bleve search
	bleveIndexingService := bleveServices.NewIndexingService(config.Logger, indexPath)
	bleveServiceRepo, bleveInterfaceRepo := bleveRepositories.NewBleveRepository(bleveIndexingService)

	appCtx := &middleware.AppContext{
		PasetoMaker: tokenMaker,
		Ctx:         ctx,
		RedisClient: redisClient,
	}

	// Routes
	registration_routes.RegistrationRouterInit(app, db, appCtx, uploadService, bleveInterfaceRepo)
	officer_routes.OfficerRouterInit(app, db, appCtx, asynqClient, wsHub, bleveInterfaceRepo)

	bleveController := bleveControllers.NewSearchController(bleveServiceRepo)
	bleveRoutes.InitBleveRoutes(app, bleveController, appCtx)

	// ------ WebSocket Route for Real-time Status Updates ------
	wsHandler := websocket.NewWsHandler(wsHub, tokenMaker)
	app.Get("/ws", wsHandler.HandleWebSocket)
	config.Logger.Info("WebSocket endpoint registered at /ws")

	// Seed the first officer account so the review queue is reachable
	config.SeedInitialOfficer(db)

	// Rebuild the applicant search index from the database on demand
	if config.GetEnv("REINDEX_SEARCH_ON_BOOT") == "true" {
		applicantRepo := registration_repositories.NewApplicantRepository(db)
		applicants, total, err := applicantRepo.GetFilteredApplicants(10000, 0)
		if err != nil {
			config.Logger.Error("Failed to load applicants for search reindex", zap.Error(err))
		} else if err := bleveServiceRepo.IndexExistingApplicants(applicants); err != nil {
			config.Logger.Error("Failed to rebuild applicant search index", zap.Error(err))
		} else {
			config.Logger.Info("Applicant search index rebuilt",
				zap.Int("indexed", len(applicants)),
				zap.Int64("total", total))
		}
	}

	// Asynq worker for status notification emails
	asynqServer := asynq.NewServer(asynqRedisOpt, asynq.Config{Concurrency: 5})
	go func() {
		if err := asynqServer.Run(tasks.NewMux(db)); err != nil {
			config.Logger.Fatal("Asynq worker failed", zap.Error(err))
		}
	}()

	// Background cleanup of abandoned submissions
	go tasks.RunScheduledReaper(db)

	// Start the application
	config.Logger.Info("Server starting with WebSocket support", zap.String("port", port))
	config.Logger.Fatal("Server failed", zap.String("port", port), zap.Error(app.Listen(":"+port)))
}
