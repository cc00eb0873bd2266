package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/solacehq/solace/internal/interfaces/http/handlers"
	"github.com/solacehq/solace/internal/interfaces/http/middleware"
)

// BillingRouteConfig holds dependencies for billing routes.
type BillingRouteConfig struct {
	WebhookHandler      *handlers.WebhookHandler
	EntitlementHandler  *handlers.EntitlementHandler
	AccountTokenHandler *handlers.AccountTokenHandler
	AccountLinkHandler  *handlers.AccountLinkHandler
	AuthMiddleware      *middleware.AuthMiddleware
	WebhookRateLimiter  *middleware.RateLimiter
}

// SetupBillingRoutes configures billing routes. Webhook endpoints are
// unauthenticated and rate limited; everything else requires a bearer token.
func SetupBillingRoutes(engine *gin.Engine, cfg *BillingRouteConfig) {
	billing := engine.Group("/billing")
	{
		webhooks := billing.Group("/webhooks")
		if cfg.WebhookRateLimiter != nil {
			webhooks.Use(cfg.WebhookRateLimiter.Limit())
		}
		{
			webhooks.POST("/apple", cfg.WebhookHandler.HandleAppleStore)
			webhooks.POST("/google", cfg.WebhookHandler.HandleGooglePlay)
			webhooks.POST("/stripe", cfg.WebhookHandler.HandleStripe)
		}

		protected := billing.Group("")
		protected.Use(cfg.AuthMiddleware.RequireAuth())
		{
			protected.GET("/entitlement", cfg.EntitlementHandler.GetMyEntitlement)
			protected.POST("/account-tokens", cfg.AccountTokenHandler.Issue)
			protected.DELETE("/account-tokens/:token", cfg.AccountTokenHandler.Deactivate)
			protected.POST("/links", cfg.AccountLinkHandler.Create)
		}
	}
}
