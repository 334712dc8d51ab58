package router

import (
	"database/sql"
	"net/http"

	"streetbite_backend/internal/handlers"
	"streetbite_backend/internal/metrics"
	"streetbite_backend/internal/middleware"
	"streetbite_backend/internal/repositories"
	"streetbite_backend/internal/services"
	"streetbite_backend/pkg/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"
)

// Options carries everything the router needs besides the database.
type Options struct {
	Sessions       sessions.Store
	Tokens         *utils.JWTManager
	Images         services.ImageStore
	Metrics        *metrics.Metrics
	Calendar       services.Calendar
	PricingMode    string
	UploadDir      string
	MaxUploadBytes int64
	AllowedOrigins []string
}

// New builds the engine with every repository, service and handler wired in.
func New(db *sql.DB, opts Options) *gin.Engine {
	// Initialize Repositories
	authRepo := repositories.NewAuthRepository(db)
	settingRepo := repositories.NewSettingRepository(db)
	catalogRepo := repositories.NewCatalogRepository(db)
	orderRepo := repositories.NewOrderRepository(db)
	pageViewRepo := repositories.NewPageViewRepository(db)
	reportRepo := repositories.NewReportRepository(db)

	// Initialize Services
	authService := services.NewAuthService(authRepo, db, opts.Tokens)
	settingService := services.NewSettingService(settingRepo, db)
	catalogService := services.NewCatalogService(catalogRepo, opts.Images, db)
	orderService := services.NewOrderService(orderRepo, catalogRepo, settingService, db, opts.Calendar, opts.PricingMode, opts.Metrics)
	pageViewService := services.NewPageViewService(pageViewRepo, opts.Calendar, opts.Metrics)
	reportService := services.NewReportService(reportRepo, orderRepo, pageViewRepo, opts.Calendar)

	// Initialize Handlers
	sessionAuth := middleware.NewSessionAuth(opts.Sessions, authService)
	authHandler := handlers.NewAuthHandler(authService, sessionAuth)
	publicHandler := handlers.NewPublicHandler(settingService, catalogService, orderService, pageViewService)
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	orderHandler := handlers.NewOrderHandler(orderService)
	settingHandler := handlers.NewSettingHandler(settingService)
	reportHandler := handlers.NewReportHandler(reportService)

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(utils.GinLogger())
	engine.Use(middleware.RequestMetrics(opts.Metrics))
	engine.Use(cors.New(corsConfig(opts.AllowedOrigins)))
	if opts.MaxUploadBytes > 0 {
		engine.MaxMultipartMemory = opts.MaxUploadBytes
	}

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	if opts.Metrics != nil {
		engine.GET("/metrics", gin.WrapH(opts.Metrics.Handler()))
	}
	if opts.UploadDir != "" {
		engine.Static("/uploads", opts.UploadDir)
	}

	SetupPublicRoutes(&engine.RouterGroup, publicHandler)
	SetupAuthRoutes(engine.Group("/auth"), authHandler, sessionAuth.RequireAdmin())

	admin := engine.Group("/admin")
	admin.Use(sessionAuth.RequireAdmin())
	{
		admin.GET("/dashboard", reportHandler.GetDashboard)
		admin.PUT("/account", authHandler.UpdateAccount)

		SetupCategoryRoutes(admin, catalogHandler)
		SetupItemRoutes(admin, catalogHandler)
		SetupSettingsRoutes(admin, settingHandler)
		SetupOrderRoutes(admin, orderHandler)
	}

	return engine
}

func corsConfig(origins []string) cors.Config {
	config := cors.DefaultConfig()
	config.AllowOrigins = origins
	if len(origins) == 0 {
		config.AllowAllOrigins = true
	}
	config.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	// cookies cannot be combined with a wildcard origin
	config.AllowCredentials = len(origins) > 0
	return config
}
