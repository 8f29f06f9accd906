package app

import (
	"context"
	"fmt"
	"net/http"

	"reliefhub_backend/database"
	"reliefhub_backend/internal/config"
	"reliefhub_backend/internal/geocode"
	"reliefhub_backend/internal/handlers"
	"reliefhub_backend/internal/logger"
	"reliefhub_backend/internal/middleware"
	"reliefhub_backend/internal/repositories"
	"reliefhub_backend/internal/routes"
	"reliefhub_backend/internal/services"
	"reliefhub_backend/internal/validator"
	"reliefhub_backend/internal/workers"
	"reliefhub_backend/ws"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	logger.Info("Connecting to database...")
	gormDB, err := database.ConnectGorm()
	if err != nil {
		logger.Fatal("Failed to connect to GORM", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected")

	if err := database.AutoMigrate(gormDB); err != nil {
		logger.Fatal("AutoMigrate failed", "error", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ginRouter := SetupRouter(ctx, cfg, gormDB)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info(fmt.Sprintf("Server starting on %s", address))
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

// SetupRouter builds the whole object graph and returns a ready engine.
// The reminder worker is started here and stops when ctx is cancelled.
func SetupRouter(ctx context.Context, cfg *config.Config, gormDB *gorm.DB) *gin.Engine {
	wsManager := ws.NewManager()
	go wsManager.Run()
	wsHandler := ws.NewHandler(wsManager)

	resolver := geocode.NewNominatimResolver(cfg.Geocode.BaseURL, &http.Client{
		Timeout: cfg.GeocodeTimeout(),
	})

	serviceContainer, resourceRepo := initializeServices(gormDB, resolver, wsManager)
	appHandlers := initializeHandlers(serviceContainer)

	reminderWorker := workers.NewReminderWorker(
		resourceRepo,
		serviceContainer.DispatchService,
		cfg.SweepInterval(),
		cfg.StalenessThreshold(),
	)
	reminderWorker.Start(ctx)

	ginRouter := initializeGinRouter()
	routes.RegisterRoutes(ginRouter, appHandlers, wsHandler)

	return ginRouter
}

func initializeServices(gormDB *gorm.DB, resolver geocode.Resolver, notifier services.Notifier) (*services.ServiceContainer, repositories.ResourceRequestRepository) {
	userRepo := repositories.NewUserRepository(gormDB)
	profileRepo := repositories.NewProfileRepository(gormDB)
	programRepo := repositories.NewProgramRepository(gormDB)
	resourceRepo := repositories.NewResourceRequestRepository(gormDB)
	emergencyRepo := repositories.NewEmergencyRepository(gormDB)
	notificationRepo := repositories.NewNotificationRepository(gormDB)

	dispatchService := services.NewDispatchService(notificationRepo, profileRepo, programRepo, notifier)
	authService := services.NewAuthService(userRepo, profileRepo)
	profileService := services.NewProfileService(profileRepo)
	programService := services.NewProgramService(programRepo, profileRepo, dispatchService)
	resourceService := services.NewResourceService(resourceRepo, programRepo, profileRepo, dispatchService)
	emergencyService := services.NewEmergencyService(emergencyRepo, profileRepo, resolver, dispatchService)
	feedService := services.NewFeedService(notificationRepo, programRepo, resourceRepo, emergencyRepo, profileRepo)
	actionService := services.NewActionService(programRepo, resourceRepo, emergencyRepo)

	return &services.ServiceContainer{
		AuthService:      authService,
		ProfileService:   profileService,
		ProgramService:   programService,
		ResourceService:  resourceService,
		EmergencyService: emergencyService,
		DispatchService:  dispatchService,
		FeedService:      feedService,
		ActionService:    actionService,
	}, resourceRepo
}

func initializeHandlers(serviceContainer *services.ServiceContainer) *handlers.AppHandlers {
	customValidator := validator.New()
	return handlers.NewAppHandlers(serviceContainer, customValidator)
}

func initializeGinRouter() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware())
	return router
}
