package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solacehq/solace/internal/domain/billing"
	vo "github.com/solacehq/solace/internal/domain/billing/valueobjects"
	"github.com/solacehq/solace/internal/shared/logger"
)

func TestAccountLinkRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAccountLinkRepository(db, logger.NewLogger())
	ctx := context.Background()

	t.Run("upsert and resolve", func(t *testing.T) {
		link, err := billing.NewAccountLink(42, vo.ProviderGooglePlay, billing.LinkKindObfuscatedAccount, "obf-account-1")
		require.NoError(t, err)
		require.NoError(t, repo.Upsert(ctx, link))

		userID, err := repo.ResolveUserID(ctx, vo.ProviderGooglePlay, billing.LinkKindObfuscatedAccount, "obf-account-1")
		require.NoError(t, err)
		assert.Equal(t, uint(42), userID)
	})

	t.Run("unknown identifier returns ErrIdentityUnresolved", func(t *testing.T) {
		_, err := repo.ResolveUserID(ctx, vo.ProviderGooglePlay, billing.LinkKindObfuscatedAccount, "never-seen")
		assert.ErrorIs(t, err, billing.ErrIdentityUnresolved)
	})

	t.Run("kind scopes the identifier", func(t *testing.T) {
		link, err := billing.NewAccountLink(7, vo.ProviderGooglePlay, billing.LinkKindObfuscatedProfile, "shared-id")
		require.NoError(t, err)
		require.NoError(t, repo.Upsert(ctx, link))

		_, err = repo.ResolveUserID(ctx, vo.ProviderGooglePlay, billing.LinkKindObfuscatedAccount, "shared-id")
		assert.ErrorIs(t, err, billing.ErrIdentityUnresolved)
	})

	t.Run("re-upsert rebinds the user", func(t *testing.T) {
		first, err := billing.NewAccountLink(10, vo.ProviderStripe, billing.LinkKindCustomer, "cus_123")
		require.NoError(t, err)
		require.NoError(t, repo.Upsert(ctx, first))

		second, err := billing.NewAccountLink(11, vo.ProviderStripe, billing.LinkKindCustomer, "cus_123")
		require.NoError(t, err)
		require.NoError(t, repo.Upsert(ctx, second))

		userID, err := repo.ResolveUserID(ctx, vo.ProviderStripe, billing.LinkKindCustomer, "cus_123")
		require.NoError(t, err)
		assert.Equal(t, uint(11), userID)
	})
}
