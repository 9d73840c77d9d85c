package routes

import (
	"net/http"

	"adops_backend/internal/handlers"
	"adops_backend/internal/middleware"
	"adops_backend/internal/models"
	"adops_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

// RegisterRoutes mounts every HTTP route on the engine. Handlers come
// in fully constructed; this package only decides paths and guards.
func RegisterRoutes(ginRouter *gin.Engine, appHandlers *handlers.AppHandlers, assetDir string) {
	ginRouter.GET("/health", healthCheck)
	ginRouter.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := ginRouter.Group("/api/v1")

	// Public surface: registration and login.
	appHandlers.Auth.RegisterRoutes(api)

	// Uploaded creative assets are served directly.
	api.Static("/assets", assetDir)

	// Everything else requires a valid access token.
	authed := api.Group("")
	authed.Use(middleware.AuthMiddleware())
	{
		appHandlers.Campaign.RegisterRoutes(authed)
		appHandlers.Creative.RegisterRoutes(authed)
		appHandlers.Approval.RegisterRoutes(authed)
		appHandlers.Analytics.RegisterRoutes(authed)
		appHandlers.Export.RegisterRoutes(authed)
	}

	// Record ingestion, account management and dashboard stats are an
	// admin-only surface.
	admin := api.Group("/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.RequireRoles(models.UserRoleAdmin))
	{
		appHandlers.Analytics.RegisterAdminRoutes(admin)
		appHandlers.User.RegisterAdminRoutes(admin)
		appHandlers.Campaign.RegisterAdminRoutes(admin)
	}
}

// healthCheck pings the database placed in the gin context by
// DBMiddleware.
func healthCheck(c *gin.Context) {
	db, ok := c.Get(string(contextkeys.DBContextKey))
	if !ok {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "database": "missing"})
		return
	}

	gormDB, ok := db.(*gorm.DB)
	if !ok {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "database": "missing"})
		return
	}

	sqlDB, err := gormDB.DB()
	if err == nil {
		err = sqlDB.Ping()
	}
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "database": "down"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok", "database": "up"})
}
