package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"craftfolio/internal/assets"
	"craftfolio/internal/caching"
	"craftfolio/internal/config"
	"craftfolio/internal/handlers"
	"craftfolio/internal/jobs/background"
	"craftfolio/internal/middleware"
	"craftfolio/internal/repositories"
	"craftfolio/internal/services"
	"craftfolio/pkg/database"
)

const version = "1.0.0"

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	pool, err := database.NewPool(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	assetStore, err := assets.NewMinioStore(cfg.MinioEndpoint, cfg.MinioAccessKey,
		cfg.MinioSecretKey, cfg.MinioBucket, cfg.MinioUseSSL)
	if err != nil {
		log.Fatalf("Failed to initialize asset store: %v", err)
	}

	// Create repositories
	categoryRepo := repositories.NewCategoryRepo(pool)
	projectRepo := repositories.NewProjectRepo(pool)
	userRepo := repositories.NewUserRepo(pool)

	// Create cache service
	cacheSvc := caching.NewRedisCacheService(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)

	// Create services
	ordering := services.NewCategoryOrdering(categoryRepo)
	ledger := services.NewRelationshipLedger(categoryRepo, projectRepo)
	mediaSync := services.NewMediaSyncService(assetStore, cfg.MediaPageSize, cfg.MediaMaxPages)

	categorySvc := services.NewCategoryService(categoryRepo, ordering, ledger, mediaSync, cacheSvc)
	projectSvc := services.NewProjectService(projectRepo, categoryRepo, ledger, mediaSync, cacheSvc)
	authSvc := services.NewAuthService(userRepo, cfg.JWTSecret, cfg.TokenTTL)
	userSvc := services.NewUserService(userRepo, mediaSync)
	mailerSvc := services.NewSMTPMailer(cfg.SMTPAddr, cfg.SMTPUsername, cfg.SMTPPassword, cfg.OwnerEmail)

	// Create handlers
	categoryHandlers := handlers.NewCategoryHandlers(categorySvc)
	projectHandlers := handlers.NewProjectHandlers(projectSvc)
	userHandlers := handlers.NewUserHandlers(authSvc, userSvc, mailerSvc)
	assetHandlers := handlers.NewAssetHandlers(assetStore)
	healthHandlers := handlers.NewHealthHandlers(pool)

	// Create Echo instance
	e := echo.New()

	// Global middleware
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Use(echoMiddleware.RemoveTrailingSlash())

	e.GET("/health", healthHandlers.Health)

	authRequired := middleware.JWTMiddleware(userRepo, cfg.JWTSecret)

	v1 := e.Group("/api/v1")

	// Public routes
	v1.POST("/register", userHandlers.Register)
	v1.POST("/login", userHandlers.Login)
	v1.POST("/logout", userHandlers.Logout)
	v1.POST("/forgot-password", userHandlers.ForgotPassword)
	v1.PUT("/reset-password/:token", userHandlers.ResetPassword)
	v1.POST("/mail", userHandlers.SendMail)

	v1.GET("/categories", categoryHandlers.ListCategories)
	v1.GET("/category/:id", categoryHandlers.CategoryDetails)
	v1.GET("/projects", projectHandlers.ListProjects)
	v1.GET("/project/:id", projectHandlers.ProjectDetails)
	v1.GET("/category/:id/projects", projectHandlers.ListProjectsByCategory)
	v1.GET("/some-of-my-work", projectHandlers.Showcase)
	v1.GET("/resume", userHandlers.ResumeDetails)

	// Protected routes
	protected := v1.Group("", authRequired)

	protected.GET("/me", userHandlers.UserDetails)
	protected.PUT("/update-password", userHandlers.UpdatePassword)

	protected.POST("/category", categoryHandlers.CreateCategory)
	protected.PUT("/category/:id", categoryHandlers.UpdateCategory)
	protected.DELETE("/category/:id", categoryHandlers.DeleteCategory)
	protected.PUT("/category/cloudinary/:id", categoryHandlers.RefreshCategory)
	protected.GET("/category/names", categoryHandlers.CategoryFolderNames)

	protected.POST("/project", projectHandlers.CreateProject)
	protected.PUT("/project/:id", projectHandlers.UpdateProject)
	protected.DELETE("/project/:id", projectHandlers.DeleteProject)
	protected.PUT("/project/cloudinary/:id", projectHandlers.RefreshProject)
	protected.GET("/project/names", projectHandlers.ProjectFolderNames)

	protected.PUT("/resume/:id", userHandlers.UpdateResume)
	protected.PUT("/resume/cloudinary/:id", userHandlers.RefreshUserImage)

	protected.GET("/cloudinary/usage", assetHandlers.UsageStats)

	// Background media refresh, disabled unless an interval is configured
	if cfg.MediaRefreshInterval > 0 {
		scheduler := background.NewJobScheduler(categorySvc, projectSvc, cfg.MediaRefreshInterval)
		if err := scheduler.Start(); err != nil {
			log.Fatalf("Failed to start job scheduler: %v", err)
		}
		defer func() {
			if err := scheduler.Stop(); err != nil {
				log.Printf("Failed to stop job scheduler: %v", err)
			}
		}()
	}

	log.Printf("craftfolio server v%s starting on port %s", version, cfg.Port)

	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
