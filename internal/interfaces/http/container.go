package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/solacehq/solace/internal/application/billing/providers"
	"github.com/solacehq/solace/internal/application/billing/services"
	"github.com/solacehq/solace/internal/domain/billing"
	"github.com/solacehq/solace/internal/infrastructure/auth"
	"github.com/solacehq/solace/internal/infrastructure/cache"
	"github.com/solacehq/solace/internal/infrastructure/config"
	"github.com/solacehq/solace/internal/interfaces/http/middleware"
	"github.com/solacehq/solace/internal/shared/logger"
)

// Container wires the billing core together: repositories, normalizers, use
// cases, handlers, and middleware. It owns graceful shutdown of what it
// creates.
type Container struct {
	engine *gin.Engine
	db     *gorm.DB
	cfg    *config.Config
	log    logger.Interface
	redis  *redis.Client

	repos *repositories
	ucs   *useCases
	hdlrs *handlerSet

	registry         *providers.Registry
	identityResolver *services.IdentityResolver
	entCache         cache.EntitlementCache

	jwtSvc             *auth.JWTService
	authMiddleware     *middleware.AuthMiddleware
	webhookRateLimiter *middleware.RateLimiter
}

type repositories struct {
	lineage      billing.LineageRepository
	accountToken billing.AccountTokenRepository
	accountLink  billing.AccountLinkRepository
	catalog      billing.CatalogRepository
	webhookEvent billing.WebhookEventRepository
}

// NewContainer builds the full wiring. redisClient may be nil; caching and
// webhook rate limiting are skipped then.
func NewContainer(db *gorm.DB, redisClient *redis.Client, cfg *config.Config, log logger.Interface) *Container {
	c := &Container{
		engine: gin.New(),
		db:     db,
		cfg:    cfg,
		log:    log,
		redis:  redisClient,
	}

	c.registry = providers.NewRegistry(
		providers.NewAppleStoreNormalizer(),
		providers.NewGooglePlayNormalizer(),
		providers.NewStripeNormalizer(),
	)

	if redisClient != nil && cfg.Billing.EntitlementCacheTTLMinutes > 0 {
		ttl := time.Duration(cfg.Billing.EntitlementCacheTTLMinutes) * time.Minute
		c.entCache = cache.NewRedisEntitlementCache(redisClient, ttl, log.Named("entitlement-cache"))
	}

	c.wireRepositories()
	c.identityResolver = services.NewIdentityResolver(c.repos.accountToken, c.repos.accountLink, log.Named("identity-resolver"))
	c.wireUseCases()
	c.wireHandlers()

	c.jwtSvc = auth.NewJWTService(cfg.Auth.JWT.Secret, cfg.Auth.JWT.AccessExpMinutes)
	c.authMiddleware = middleware.NewAuthMiddleware(c.jwtSvc, log)
	if redisClient != nil {
		c.webhookRateLimiter = middleware.NewRateLimiter(redisClient, 300, time.Minute)
	}

	return c
}

// Engine returns the Gin engine.
func (c *Container) Engine() *gin.Engine {
	return c.engine
}

// Shutdown releases container-owned resources.
func (c *Container) Shutdown() {
	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			c.log.Warnw("failed to close redis client", "error", err)
		}
	}
}
