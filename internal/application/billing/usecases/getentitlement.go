package usecases

import (
	"context"
	"time"

	"github.com/solacehq/solace/internal/domain/billing"
	"github.com/solacehq/solace/internal/infrastructure/cache"
	"github.com/solacehq/solace/internal/shared/errors"
	"github.com/solacehq/solace/internal/shared/goroutine"
	"github.com/solacehq/solace/internal/shared/logger"
)

const cacheWriteTimeout = 5 * time.Second

type GetEntitlementQuery struct {
	UserID uint
}

type GetEntitlementResult struct {
	Entitled  bool
	PlanID    uint
	Status    string
	ExpiresAt *time.Time
}

// GetEntitlementUseCase answers the one question the rest of the product
// asks: does this user currently hold paid access, and under which plan.
// Reads go through the Redis cache; webhook application invalidates it.
type GetEntitlementUseCase struct {
	lineageRepo billing.LineageRepository
	entCache    cache.EntitlementCache
	logger      logger.Interface
}

func NewGetEntitlementUseCase(
	lineageRepo billing.LineageRepository,
	entCache cache.EntitlementCache,
	logger logger.Interface,
) *GetEntitlementUseCase {
	return &GetEntitlementUseCase{
		lineageRepo: lineageRepo,
		entCache:    entCache,
		logger:      logger,
	}
}

func (uc *GetEntitlementUseCase) Execute(ctx context.Context, query GetEntitlementQuery) (*GetEntitlementResult, error) {
	if query.UserID == 0 {
		return nil, errors.NewValidationError("user ID is required")
	}

	if uc.entCache != nil {
		cached, err := uc.entCache.GetEntitlement(ctx, query.UserID)
		if err != nil {
			// Cache trouble degrades to a DB read.
			uc.logger.Warnw("entitlement cache read failed", "user_id", query.UserID, "error", err)
		} else if cached != nil {
			if cached.NotFound {
				return &GetEntitlementResult{Entitled: false}, nil
			}
			return &GetEntitlementResult{
				Entitled:  cached.Entitled,
				PlanID:    cached.PlanID,
				Status:    cached.Status,
				ExpiresAt: cached.ExpiresAt,
			}, nil
		}
	}

	lineages, err := uc.lineageRepo.ListByUserID(ctx, query.UserID)
	if err != nil {
		uc.logger.Errorw("failed to list lineages", "user_id", query.UserID, "error", err)
		return nil, err
	}

	if len(lineages) == 0 {
		uc.cacheNullMarker(query.UserID)
		return &GetEntitlementResult{Entitled: false}, nil
	}

	result := &GetEntitlementResult{}
	if best := billing.SelectEntitled(lineages); best != nil {
		result.Entitled = true
		result.PlanID = best.PlanID()
		result.Status = best.Status().String()
		result.ExpiresAt = best.ExpiresAt()
	}

	uc.cacheResult(query.UserID, result)
	return result, nil
}

func (uc *GetEntitlementUseCase) cacheResult(userID uint, result *GetEntitlementResult) {
	if uc.entCache == nil {
		return
	}
	goroutine.SafeGo(uc.logger, "cache-entitlement", func() {
		ctx, cancel := context.WithTimeout(context.Background(), cacheWriteTimeout)
		defer cancel()
		err := uc.entCache.SetEntitlement(ctx, userID, &cache.CachedEntitlement{
			Entitled:  result.Entitled,
			PlanID:    result.PlanID,
			Status:    result.Status,
			ExpiresAt: result.ExpiresAt,
		})
		if err != nil {
			uc.logger.Warnw("failed to cache entitlement", "user_id", userID, "error", err)
		}
	})
}

func (uc *GetEntitlementUseCase) cacheNullMarker(userID uint) {
	if uc.entCache == nil {
		return
	}
	goroutine.SafeGo(uc.logger, "cache-entitlement-null-marker", func() {
		ctx, cancel := context.WithTimeout(context.Background(), cacheWriteTimeout)
		defer cancel()
		if err := uc.entCache.SetNullMarker(ctx, userID); err != nil {
			uc.logger.Warnw("failed to cache null marker", "user_id", userID, "error", err)
		}
	})
}
