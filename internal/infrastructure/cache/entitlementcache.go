package cache

import (
	"context"
	"fmt"
	"math/rand"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/solacehq/solace/internal/shared/logger"
)

// CachedEntitlement represents a cached entitlement decision for one user
type CachedEntitlement struct {
	Entitled  bool       // Whether the user currently holds paid access
	PlanID    uint       // Plan backing the entitlement, zero when not entitled
	Status    string     // Status of the determining lineage
	ExpiresAt *time.Time // Expiry of the determining lineage, nil when unbounded
	NotFound  bool       // Null marker: user confirmed to have no lineages in DB
}

// EntitlementCache defines the interface for entitlement caching
type EntitlementCache interface {
	GetEntitlement(ctx context.Context, userID uint) (*CachedEntitlement, error)
	SetEntitlement(ctx context.Context, userID uint, entitlement *CachedEntitlement) error
	InvalidateEntitlement(ctx context.Context, userID uint) error
	// SetNullMarker caches a short-lived marker indicating the user has no
	// lineages in DB, preventing repeated DB lookups (cache penetration protection).
	SetNullMarker(ctx context.Context, userID uint) error
}

const (
	entitlementKeyPrefix = "billing:entitlement:"
	baseEntitlementTTL   = 10 * time.Minute
	entitlementTTLJitter = 5 * time.Minute // TTL range: 10-15 min (anti-stampede)
	nullMarkerTTL        = 2 * time.Minute // Short TTL for not-found markers (anti-penetration)
	fieldEntitled        = "entitled"
	fieldPlanID          = "plan_id"
	fieldStatus          = "status"
	fieldExpiresAt       = "expires_at"
	fieldNullMarker      = "_null"
)

// RedisEntitlementCache implements EntitlementCache using Redis Hash
type RedisEntitlementCache struct {
	client *redis.Client
	logger logger.Interface
	ttl    time.Duration
}

// NewRedisEntitlementCache creates a new Redis-based entitlement cache
func NewRedisEntitlementCache(client *redis.Client, ttl time.Duration, logger logger.Interface) *RedisEntitlementCache {
	if ttl <= 0 {
		ttl = baseEntitlementTTL
	}
	return &RedisEntitlementCache{
		client: client,
		logger: logger,
		ttl:    ttl,
	}
}

func (c *RedisEntitlementCache) key(userID uint) string {
	return fmt.Sprintf("%s%d", entitlementKeyPrefix, userID)
}

// GetEntitlement retrieves a cached entitlement decision
func (c *RedisEntitlementCache) GetEntitlement(ctx context.Context, userID uint) (*CachedEntitlement, error) {
	key := c.key(userID)

	result, err := c.client.HGetAll(ctx, key).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get entitlement from cache: %w", err)
	}

	if len(result) == 0 {
		return nil, nil // Cache miss
	}

	// Detect null marker (anti-penetration)
	if result[fieldNullMarker] == "1" {
		return &CachedEntitlement{NotFound: true}, nil
	}

	entitlement := &CachedEntitlement{}

	if entitledStr, ok := result[fieldEntitled]; ok {
		entitlement.Entitled = entitledStr == "1"
	}

	if planIDStr, ok := result[fieldPlanID]; ok {
		planID, _ := strconv.ParseUint(planIDStr, 10, 64)
		entitlement.PlanID = uint(planID)
	}

	if status, ok := result[fieldStatus]; ok {
		entitlement.Status = status
	}

	if expiresAtStr, ok := result[fieldExpiresAt]; ok && expiresAtStr != "" {
		expiresAtUnix, _ := strconv.ParseInt(expiresAtStr, 10, 64)
		expiresAt := time.Unix(expiresAtUnix, 0).UTC()
		entitlement.ExpiresAt = &expiresAt
	}

	return entitlement, nil
}

// SetEntitlement stores an entitlement decision in cache
func (c *RedisEntitlementCache) SetEntitlement(ctx context.Context, userID uint, entitlement *CachedEntitlement) error {
	key := c.key(userID)

	expiresAtStr := ""
	if entitlement.ExpiresAt != nil {
		expiresAtStr = strconv.FormatInt(entitlement.ExpiresAt.Unix(), 10)
	}

	fields := map[string]interface{}{
		fieldEntitled:  boolToInt(entitlement.Entitled),
		fieldPlanID:    entitlement.PlanID,
		fieldStatus:    entitlement.Status,
		fieldExpiresAt: expiresAtStr,
	}

	pipe := c.client.Pipeline()
	pipe.HSet(ctx, key, fields)
	pipe.Expire(ctx, key, c.ttlWithJitter())

	_, err := pipe.Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to set entitlement in cache: %w", err)
	}

	c.logger.Debugw("entitlement cached",
		"user_id", userID,
		"entitled", entitlement.Entitled,
		"plan_id", entitlement.PlanID,
	)

	return nil
}

// InvalidateEntitlement removes the cached decision after a lineage write
func (c *RedisEntitlementCache) InvalidateEntitlement(ctx context.Context, userID uint) error {
	key := c.key(userID)

	if err := c.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to invalidate entitlement cache: %w", err)
	}

	c.logger.Debugw("entitlement cache invalidated",
		"user_id", userID,
	)

	return nil
}

// SetNullMarker stores a short-lived marker indicating the user has no
// lineages in DB. This prevents cache penetration from repeated lookups.
func (c *RedisEntitlementCache) SetNullMarker(ctx context.Context, userID uint) error {
	key := c.key(userID)

	pipe := c.client.Pipeline()
	pipe.HSet(ctx, key, fieldNullMarker, "1")
	pipe.Expire(ctx, key, nullMarkerTTL)

	_, err := pipe.Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to set null marker in cache: %w", err)
	}

	c.logger.Debugw("entitlement null marker set",
		"user_id", userID,
		"ttl", nullMarkerTTL,
	)

	return nil
}

// ttlWithJitter returns a randomized TTL to prevent cache stampede.
func (c *RedisEntitlementCache) ttlWithJitter() time.Duration {
	jitter := time.Duration(rand.Int63n(int64(entitlementTTLJitter)))
	return c.ttl + jitter
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
