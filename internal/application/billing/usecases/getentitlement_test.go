package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solacehq/solace/internal/domain/billing"
	vo "github.com/solacehq/solace/internal/domain/billing/valueobjects"
	"github.com/solacehq/solace/internal/infrastructure/cache"
)

func seedActiveLineage(t *testing.T, repo *fakeLineageRepository, userID, planID uint, expiresAt time.Time) {
	t.Helper()
	event := &billing.NotificationEvent{
		Provider:              vo.ProviderStripe,
		Environment:           vo.EnvironmentProduction,
		Kind:                  vo.KindInitialPurchase,
		OriginalTransactionID: "sub_seed",
		LatestTransactionID:   "sub_seed",
		StoreProductID:        "price_premium_monthly",
		ExpiresAt:             &expiresAt,
		AutoRenewEnabled:      true,
		RawPayload:            []byte(`{}`),
	}
	err := repo.ApplyLocked(context.Background(), event.Provider, event.OriginalTransactionID,
		func(current *billing.SubscriptionLineage) (*billing.SubscriptionLineage, error) {
			lineage, err := billing.NewSubscriptionLineage(userID, planID, event)
			if err != nil {
				return nil, err
			}
			if _, err := lineage.ApplyEvent(event); err != nil {
				return nil, err
			}
			return lineage, nil
		})
	require.NoError(t, err)
}

func TestGetEntitlementUseCase_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("entitled user resolved from database", func(t *testing.T) {
		lineageRepo := newFakeLineageRepository()
		entCache := newMockEntitlementCache()
		expiresAt := time.Now().UTC().Add(30 * 24 * time.Hour).Truncate(time.Second)
		seedActiveLineage(t, lineageRepo, 42, 3, expiresAt)

		uc := NewGetEntitlementUseCase(lineageRepo, entCache, &mockLogger{})
		result, err := uc.Execute(ctx, GetEntitlementQuery{UserID: 42})
		require.NoError(t, err)
		assert.True(t, result.Entitled)
		assert.Equal(t, uint(3), result.PlanID)
		assert.Equal(t, "active", result.Status)
		require.NotNil(t, result.ExpiresAt)
		assert.True(t, result.ExpiresAt.Equal(expiresAt))

		assert.Eventually(t, func() bool {
			cached, _ := entCache.GetEntitlement(ctx, 42)
			return cached != nil && cached.Entitled
		}, time.Second, 10*time.Millisecond)
	})

	t.Run("user without lineages gets null marker", func(t *testing.T) {
		lineageRepo := newFakeLineageRepository()
		entCache := newMockEntitlementCache()

		uc := NewGetEntitlementUseCase(lineageRepo, entCache, &mockLogger{})
		result, err := uc.Execute(ctx, GetEntitlementQuery{UserID: 42})
		require.NoError(t, err)
		assert.False(t, result.Entitled)

		assert.Eventually(t, func() bool {
			cached, _ := entCache.GetEntitlement(ctx, 42)
			return cached != nil && cached.NotFound
		}, time.Second, 10*time.Millisecond)
	})

	t.Run("cache hit skips the database", func(t *testing.T) {
		entCache := newMockEntitlementCache()
		expiresAt := time.Now().UTC().Add(24 * time.Hour)
		require.NoError(t, entCache.SetEntitlement(ctx, 42, &cache.CachedEntitlement{
			Entitled:  true,
			PlanID:    7,
			Status:    "active",
			ExpiresAt: &expiresAt,
		}))

		// An empty repo would report not entitled if it were consulted.
		uc := NewGetEntitlementUseCase(newFakeLineageRepository(), entCache, &mockLogger{})
		result, err := uc.Execute(ctx, GetEntitlementQuery{UserID: 42})
		require.NoError(t, err)
		assert.True(t, result.Entitled)
		assert.Equal(t, uint(7), result.PlanID)
	})

	t.Run("null marker hit reports not entitled", func(t *testing.T) {
		lineageRepo := newFakeLineageRepository()
		seedActiveLineage(t, lineageRepo, 42, 3, time.Now().UTC().Add(24*time.Hour))
		entCache := newMockEntitlementCache()
		require.NoError(t, entCache.SetNullMarker(ctx, 42))

		uc := NewGetEntitlementUseCase(lineageRepo, entCache, &mockLogger{})
		result, err := uc.Execute(ctx, GetEntitlementQuery{UserID: 42})
		require.NoError(t, err)
		assert.False(t, result.Entitled)
	})

	t.Run("cache read failure degrades to database", func(t *testing.T) {
		lineageRepo := newFakeLineageRepository()
		seedActiveLineage(t, lineageRepo, 42, 3, time.Now().UTC().Add(24*time.Hour))
		entCache := newMockEntitlementCache()
		entCache.GetFunc = func(ctx context.Context, userID uint) (*cache.CachedEntitlement, error) {
			return nil, assert.AnError
		}

		uc := NewGetEntitlementUseCase(lineageRepo, entCache, &mockLogger{})
		result, err := uc.Execute(ctx, GetEntitlementQuery{UserID: 42})
		require.NoError(t, err)
		assert.True(t, result.Entitled)
	})

	t.Run("expired lineage does not entitle", func(t *testing.T) {
		lineageRepo := newFakeLineageRepository()
		entCache := newMockEntitlementCache()
		event := &billing.NotificationEvent{
			Provider:              vo.ProviderStripe,
			Environment:           vo.EnvironmentProduction,
			Kind:                  vo.KindInitialPurchase,
			OriginalTransactionID: "sub_seed",
			LatestTransactionID:   "sub_seed",
			StoreProductID:        "price_premium_monthly",
			AutoRenewEnabled:      true,
			RawPayload:            []byte(`{}`),
		}
		expireEvent := &billing.NotificationEvent{
			Provider:              vo.ProviderStripe,
			Environment:           vo.EnvironmentProduction,
			Kind:                  vo.KindExpired,
			OriginalTransactionID: "sub_seed",
			LatestTransactionID:   "sub_seed_2",
			StoreProductID:        "price_premium_monthly",
			RawPayload:            []byte(`{}`),
		}
		err := lineageRepo.ApplyLocked(ctx, event.Provider, event.OriginalTransactionID,
			func(current *billing.SubscriptionLineage) (*billing.SubscriptionLineage, error) {
				lineage, err := billing.NewSubscriptionLineage(42, 3, event)
				if err != nil {
					return nil, err
				}
				if _, err := lineage.ApplyEvent(event); err != nil {
					return nil, err
				}
				if _, err := lineage.ApplyEvent(expireEvent); err != nil {
					return nil, err
				}
				return lineage, nil
			})
		require.NoError(t, err)

		uc := NewGetEntitlementUseCase(lineageRepo, entCache, &mockLogger{})
		result, err := uc.Execute(ctx, GetEntitlementQuery{UserID: 42})
		require.NoError(t, err)
		assert.False(t, result.Entitled)
	})

	t.Run("zero user id is rejected", func(t *testing.T) {
		uc := NewGetEntitlementUseCase(newFakeLineageRepository(), newMockEntitlementCache(), &mockLogger{})
		_, err := uc.Execute(ctx, GetEntitlementQuery{})
		require.Error(t, err)
	})
}
