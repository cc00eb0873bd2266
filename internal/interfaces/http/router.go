package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/solacehq/solace/internal/interfaces/http/middleware"
	"github.com/solacehq/solace/internal/interfaces/http/routes"
)

// SetupRoutes configures the middleware chain and all HTTP routes.
func (c *Container) SetupRoutes() {
	c.engine.Use(middleware.RequestLogger(c.log.Named("http")))
	c.engine.Use(middleware.Recovery())
	c.engine.Use(middleware.ErrorHandler())
	c.engine.Use(middleware.CORS(c.cfg.Server.AllowedOrigins))
	c.engine.Use(middleware.SecurityHeaders())

	c.engine.GET("/health", c.healthCheck)

	routes.SetupBillingRoutes(c.engine, &routes.BillingRouteConfig{
		WebhookHandler:      c.hdlrs.webhook,
		EntitlementHandler:  c.hdlrs.entitlement,
		AccountTokenHandler: c.hdlrs.accountToken,
		AccountLinkHandler:  c.hdlrs.accountLink,
		AuthMiddleware:      c.authMiddleware,
		WebhookRateLimiter:  c.webhookRateLimiter,
	})

	routes.SetupAdminBillingRoutes(c.engine, &routes.AdminBillingRouteConfig{
		CatalogHandler:    c.hdlrs.catalog,
		QuarantineHandler: c.hdlrs.quarantine,
		AuthMiddleware:    c.authMiddleware,
	})
}

func (c *Container) healthCheck(ctx *gin.Context) {
	sqlDB, err := c.db.DB()
	if err != nil || sqlDB.PingContext(ctx.Request.Context()) != nil {
		ctx.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
}
