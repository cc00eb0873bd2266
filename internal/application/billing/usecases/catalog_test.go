package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solacehq/solace/internal/domain/billing"
	vo "github.com/solacehq/solace/internal/domain/billing/valueobjects"
	"github.com/solacehq/solace/internal/shared/errors"
)

func TestUpsertCatalogEntryUseCase_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("upserts a valid entry", func(t *testing.T) {
		var upserted *billing.CatalogEntry
		catalogRepo := &mockCatalogRepository{
			UpsertFunc: func(ctx context.Context, entry *billing.CatalogEntry) error {
				upserted = entry
				return nil
			},
		}
		uc := NewUpsertCatalogEntryUseCase(catalogRepo, &mockLogger{})

		err := uc.Execute(ctx, UpsertCatalogEntryCommand{
			Provider:       "apple_store",
			StoreProductID: "com.solace.premium.monthly",
			Environment:    "production",
			PlanID:         3,
			Active:         true,
		})
		require.NoError(t, err)
		require.NotNil(t, upserted)
		assert.Equal(t, vo.ProviderAppleStore, upserted.Provider)
		assert.Equal(t, uint(3), upserted.PlanID)
		assert.True(t, upserted.Active)
	})

	t.Run("can deactivate a mapping", func(t *testing.T) {
		var upserted *billing.CatalogEntry
		catalogRepo := &mockCatalogRepository{
			UpsertFunc: func(ctx context.Context, entry *billing.CatalogEntry) error {
				upserted = entry
				return nil
			},
		}
		uc := NewUpsertCatalogEntryUseCase(catalogRepo, &mockLogger{})

		err := uc.Execute(ctx, UpsertCatalogEntryCommand{
			Provider:       "google_play",
			StoreProductID: "premium_monthly",
			Environment:    "production",
			PlanID:         3,
		})
		require.NoError(t, err)
		require.NotNil(t, upserted)
		assert.False(t, upserted.Active)
	})

	t.Run("rejects unknown provider", func(t *testing.T) {
		uc := NewUpsertCatalogEntryUseCase(&mockCatalogRepository{}, &mockLogger{})
		err := uc.Execute(ctx, UpsertCatalogEntryCommand{
			Provider:       "paddle",
			StoreProductID: "premium_monthly",
			Environment:    "production",
			PlanID:         3,
		})
		require.Error(t, err)
		assert.True(t, errors.IsValidationError(err))
	})

	t.Run("rejects unknown environment", func(t *testing.T) {
		uc := NewUpsertCatalogEntryUseCase(&mockCatalogRepository{}, &mockLogger{})
		err := uc.Execute(ctx, UpsertCatalogEntryCommand{
			Provider:       "apple_store",
			StoreProductID: "premium_monthly",
			Environment:    "staging",
			PlanID:         3,
		})
		require.Error(t, err)
		assert.True(t, errors.IsValidationError(err))
	})

	t.Run("rejects zero plan", func(t *testing.T) {
		uc := NewUpsertCatalogEntryUseCase(&mockCatalogRepository{}, &mockLogger{})
		err := uc.Execute(ctx, UpsertCatalogEntryCommand{
			Provider:       "apple_store",
			StoreProductID: "premium_monthly",
			Environment:    "production",
		})
		require.Error(t, err)
		assert.True(t, errors.IsValidationError(err))
	})
}

func TestListCatalogEntriesUseCase_Execute(t *testing.T) {
	ctx := context.Background()

	entry, err := billing.NewCatalogEntry(vo.ProviderAppleStore, "com.solace.premium.monthly", vo.EnvironmentProduction, 3)
	require.NoError(t, err)

	catalogRepo := &mockCatalogRepository{
		ListFunc: func(ctx context.Context) ([]*billing.CatalogEntry, error) {
			return []*billing.CatalogEntry{entry}, nil
		},
	}
	uc := NewListCatalogEntriesUseCase(catalogRepo, &mockLogger{})

	dtos, err := uc.Execute(ctx)
	require.NoError(t, err)
	require.Len(t, dtos, 1)
	assert.Equal(t, "apple_store", dtos[0].Provider)
	assert.Equal(t, "com.solace.premium.monthly", dtos[0].StoreProductID)
	assert.Equal(t, uint(3), dtos[0].PlanID)
}

func TestLinkExternalAccountUseCase_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("records a link", func(t *testing.T) {
		var upserted *billing.AccountLink
		linkRepo := &mockAccountLinkRepository{
			UpsertFunc: func(ctx context.Context, link *billing.AccountLink) error {
				upserted = link
				return nil
			},
		}
		uc := NewLinkExternalAccountUseCase(linkRepo, &mockLogger{})

		err := uc.Execute(ctx, LinkExternalAccountCommand{
			UserID:     42,
			Provider:   "stripe",
			Kind:       "customer",
			ExternalID: "cus_100",
		})
		require.NoError(t, err)
		require.NotNil(t, upserted)
		assert.Equal(t, uint(42), upserted.UserID)
		assert.Equal(t, billing.LinkKindCustomer, upserted.Kind)
	})

	t.Run("rejects invalid kind", func(t *testing.T) {
		uc := NewLinkExternalAccountUseCase(&mockAccountLinkRepository{}, &mockLogger{})
		err := uc.Execute(ctx, LinkExternalAccountCommand{
			UserID:     42,
			Provider:   "stripe",
			Kind:       "email",
			ExternalID: "cus_100",
		})
		require.Error(t, err)
		assert.True(t, errors.IsValidationError(err))
	})

	t.Run("rejects empty external id", func(t *testing.T) {
		uc := NewLinkExternalAccountUseCase(&mockAccountLinkRepository{}, &mockLogger{})
		err := uc.Execute(ctx, LinkExternalAccountCommand{
			UserID:   42,
			Provider: "stripe",
			Kind:     "customer",
		})
		require.Error(t, err)
		assert.True(t, errors.IsValidationError(err))
	})
}
