package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/solacehq/solace/internal/interfaces/http/handlers"
	"github.com/solacehq/solace/internal/interfaces/http/middleware"
)

// AdminBillingRouteConfig holds dependencies for administrative billing routes.
type AdminBillingRouteConfig struct {
	CatalogHandler    *handlers.CatalogHandler
	QuarantineHandler *handlers.QuarantineHandler
	AuthMiddleware    *middleware.AuthMiddleware
}

// SetupAdminBillingRoutes configures operator-facing catalog and quarantine
// routes.
func SetupAdminBillingRoutes(engine *gin.Engine, cfg *AdminBillingRouteConfig) {
	admin := engine.Group("/admin/billing")
	admin.Use(cfg.AuthMiddleware.RequireAdmin())
	{
		admin.GET("/catalog", cfg.CatalogHandler.List)
		admin.POST("/catalog", cfg.CatalogHandler.Upsert)

		admin.GET("/quarantine", cfg.QuarantineHandler.List)
		admin.POST("/quarantine/:id/replay", cfg.QuarantineHandler.Replay)
	}
}
