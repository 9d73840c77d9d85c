package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"

	"adops_backend/database"
	"adops_backend/internal/config"
	"adops_backend/internal/email"
	"adops_backend/internal/handlers"
	"adops_backend/internal/logger"
	"adops_backend/internal/middleware"
	"adops_backend/internal/models"
	"adops_backend/internal/repositories"
	"adops_backend/internal/routes"
	"adops_backend/internal/services"
	"adops_backend/internal/storage"
	"adops_backend/internal/validator"
	"adops_backend/internal/workers"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig

	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	gormDB, err := database.ConnectGorm()
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}

	// The analytics repository runs on database/sql directly.
	sqlDB, err := sql.Open("postgres", cfg.Database.DSN)
	if err != nil {
		logger.Fatal("Failed to open database/sql connection", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected")

	if err := database.AutoMigrate(); err != nil {
		logger.Fatal("Migration failed", "error", err)
	}

	if err := seedFirstAdmin(gormDB); err != nil {
		logger.Fatal("Failed to seed first admin user", "error", err)
	}

	ginRouter := SetupRouter(cfg, gormDB, sqlDB)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	workers.NewApprovalWorker(
		repositories.NewApprovalRepository(gormDB),
		cfg.Approvals.ExpiryDays,
	).Start(ctx)
	workers.NewTokenWorker(repositories.NewUserRepository(gormDB)).Start(ctx)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("Server starting", "address", address)
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

// SetupRouter wires repositories, services and handlers into a ready
// gin engine. Tests call this directly against their own database.
func SetupRouter(cfg *config.Config, gormDB *gorm.DB, sqlDB *sql.DB) *gin.Engine {
	store, err := storage.NewStorage(storage.Config{
		BasePath: cfg.Storage.BasePath,
		BaseURL:  cfg.Storage.BaseURL,
	})
	if err != nil {
		logger.Fatal("Failed to initialize storage", "error", err)
	}

	serviceContainer := initializeServices(cfg, gormDB, sqlDB, store)
	appHandlers := handlers.NewAppHandlers(serviceContainer, validator.New(), cfg)

	ginRouter := initializeGinRouter(gormDB)
	routes.RegisterRoutes(ginRouter, appHandlers, cfg.Storage.BasePath)

	return ginRouter
}

func initializeServices(cfg *config.Config, gormDB *gorm.DB, sqlDB *sql.DB, store storage.Storage) *services.ServiceContainer {
	var mailer email.Provider
	mailer, err := email.NewSMTPProvider(cfg)
	if err != nil {
		logger.Warn("SMTP not configured, email notifications disabled", "reason", err)
		mailer = email.NoopProvider{}
	}

	userRepo := repositories.NewUserRepository(gormDB)
	campaignRepo := repositories.NewCampaignRepository(gormDB)
	creativeRepo := repositories.NewCreativeRepository(gormDB)
	approvalRepo := repositories.NewApprovalRepository(gormDB)
	analyticsRepo := repositories.NewAnalyticsRepository(sqlDB)

	analyticsService := services.NewAnalyticsService(analyticsRepo, campaignRepo)

	return &services.ServiceContainer{
		AuthService:      services.NewAuthService(userRepo),
		UserService:      services.NewUserService(userRepo),
		CampaignService:  services.NewCampaignService(campaignRepo),
		CreativeService:  services.NewCreativeService(creativeRepo, campaignRepo, store),
		ApprovalService:  services.NewApprovalService(approvalRepo, campaignRepo, userRepo, mailer),
		AnalyticsService: analyticsService,
		ExportService:    services.NewExportService(analyticsService),
	}
}

func initializeGinRouter(db *gorm.DB) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.MetricsMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.DBMiddleware(db))
	return router
}

// seedFirstAdmin creates the bootstrap admin account on an empty
// install. Controlled by FIRST_ADMIN_EMAIL / FIRST_ADMIN_PASSWORD.
func seedFirstAdmin(db *gorm.DB) error {
	adminEmail := os.Getenv("FIRST_ADMIN_EMAIL")
	adminPassword := os.Getenv("FIRST_ADMIN_PASSWORD")

	if adminEmail == "" || adminPassword == "" {
		logger.Warn("FIRST_ADMIN_EMAIL or FIRST_ADMIN_PASSWORD is not set. Skipping admin seeding.")
		return nil
	}

	var existing models.User
	result := db.Where("email = ?", adminEmail).First(&existing)
	if result.Error == nil {
		logger.Info("Admin user already exists. Skipping creation.", "email", adminEmail)
		return nil
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check for admin user: %w", result.Error)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	admin := &models.User{
		Email:        adminEmail,
		Name:         "Administrator",
		PasswordHash: string(hashed),
		Role:         models.UserRoleAdmin,
		Status:       models.UserStatusActive,
	}
	if err := db.Create(admin).Error; err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	logger.Info("First admin user created", "email", adminEmail)
	return nil
}
