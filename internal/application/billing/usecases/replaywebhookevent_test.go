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

func TestReplayWebhookEventUseCase_Execute(t *testing.T) {
	ctx := context.Background()
	payload := subscriptionEventPayload("customer.subscription.created", "sub_1", "active", 1764590400)

	t.Run("replay after linking applies the event", func(t *testing.T) {
		linkRepo := &mockAccountLinkRepository{}
		f := newEngineFixture(knownCatalog(3), linkRepo)

		quarantined, err := f.uc.Execute(ctx, ApplyNotificationCommand{Provider: vo.ProviderStripe, Payload: payload})
		require.NoError(t, err)
		require.Equal(t, billing.OutcomeQuarantinedUnlinked, quarantined.Outcome)
		record := f.eventRepo.lastRecorded()
		require.NotNil(t, record)

		// Operator links the customer, then replays.
		linkRepo.ResolveUserIDFunc = func(ctx context.Context, provider vo.Provider, kind billing.LinkKind, externalID string) (uint, error) {
			if kind == billing.LinkKindCustomer && externalID == "cus_100" {
				return 42, nil
			}
			return 0, billing.ErrIdentityUnresolved
		}

		replayUC := NewReplayWebhookEventUseCase(f.uc, f.eventRepo, &mockLogger{})
		result, err := replayUC.Execute(ctx, ReplayWebhookEventCommand{EventID: record.ID})
		require.NoError(t, err)
		assert.Equal(t, billing.OutcomeApplied, result.Outcome)
		assert.NotEmpty(t, result.LineageSID)

		lineage, err := f.lineageRepo.GetByNaturalKey(ctx, vo.ProviderStripe, "sub_1")
		require.NoError(t, err)
		assert.Equal(t, uint(42), lineage.UserID())

		assert.Equal(t, billing.OutcomeApplied, record.Outcome)
		assert.NotNil(t, record.ReplayedAt)
	})

	t.Run("replay without a fix quarantines again", func(t *testing.T) {
		f := newEngineFixture(knownCatalog(3), &mockAccountLinkRepository{})

		_, err := f.uc.Execute(ctx, ApplyNotificationCommand{Provider: vo.ProviderStripe, Payload: payload})
		require.NoError(t, err)
		record := f.eventRepo.lastRecorded()

		replayUC := NewReplayWebhookEventUseCase(f.uc, f.eventRepo, &mockLogger{})
		result, err := replayUC.Execute(ctx, ReplayWebhookEventCommand{EventID: record.ID})
		require.NoError(t, err)
		assert.Equal(t, billing.OutcomeQuarantinedUnlinked, result.Outcome)
		assert.NotNil(t, record.ReplayedAt)
	})

	t.Run("replay of already applied event is a noop duplicate", func(t *testing.T) {
		f := newEngineFixture(knownCatalog(3), linkedCustomer(42, "cus_100"))

		applied, err := f.uc.Execute(ctx, ApplyNotificationCommand{Provider: vo.ProviderStripe, Payload: payload})
		require.NoError(t, err)
		require.Equal(t, billing.OutcomeApplied, applied.Outcome)
		record := f.eventRepo.lastRecorded()

		replayUC := NewReplayWebhookEventUseCase(f.uc, f.eventRepo, &mockLogger{})
		result, err := replayUC.Execute(ctx, ReplayWebhookEventCommand{EventID: record.ID})
		require.NoError(t, err)
		assert.Equal(t, billing.OutcomeNoOpDuplicate, result.Outcome)
	})

	t.Run("replay of a record that still does not normalize keeps it rejected", func(t *testing.T) {
		f := newEngineFixture(knownCatalog(3), linkedCustomer(42, "cus_100"))

		rejected, err := f.uc.Execute(ctx, ApplyNotificationCommand{Provider: vo.ProviderStripe, Payload: []byte("not json")})
		require.NoError(t, err)
		require.Equal(t, billing.OutcomeRejectedMalformed, rejected.Outcome)
		record := f.eventRepo.lastRecorded()
		require.NotNil(t, record)

		replayUC := NewReplayWebhookEventUseCase(f.uc, f.eventRepo, &mockLogger{})
		result, err := replayUC.Execute(ctx, ReplayWebhookEventCommand{EventID: record.ID})
		require.NoError(t, err)
		assert.Equal(t, billing.OutcomeRejectedMalformed, result.Outcome)
		assert.NotNil(t, record.ReplayedAt)
	})

	t.Run("unknown event id is not found", func(t *testing.T) {
		f := newEngineFixture(knownCatalog(3), linkedCustomer(42, "cus_100"))
		replayUC := NewReplayWebhookEventUseCase(f.uc, f.eventRepo, &mockLogger{})

		_, err := replayUC.Execute(ctx, ReplayWebhookEventCommand{EventID: 999})
		require.Error(t, err)
		assert.True(t, errors.IsNotFoundError(err))
	})
}
