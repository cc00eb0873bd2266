package usecases

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/solacehq/solace/internal/application/billing/providers"
	"github.com/solacehq/solace/internal/application/billing/services"
	"github.com/solacehq/solace/internal/domain/billing"
	vo "github.com/solacehq/solace/internal/domain/billing/valueobjects"
	"github.com/solacehq/solace/internal/infrastructure/cache"
	"github.com/solacehq/solace/internal/shared/errors"
	"github.com/solacehq/solace/internal/shared/goroutine"
	"github.com/solacehq/solace/internal/shared/logger"
)

const cacheInvalidateTimeout = 5 * time.Second

type ApplyNotificationCommand struct {
	Provider vo.Provider
	Payload  []byte
}

type ApplyNotificationResult struct {
	Outcome    billing.Outcome
	EventSID   string
	LineageSID string
}

// ApplyNotificationUseCase is the reconciliation core: it normalizes one
// provider webhook, resolves the product and the owning user, and applies the
// event to its lineage under the per-lineage lock. Every event ends in a
// ledger record whatever its outcome.
type ApplyNotificationUseCase struct {
	registry    *providers.Registry
	identity    *services.IdentityResolver
	lineageRepo billing.LineageRepository
	catalogRepo billing.CatalogRepository
	eventRepo   billing.WebhookEventRepository
	entCache    cache.EntitlementCache
	logger      logger.Interface
}

func NewApplyNotificationUseCase(
	registry *providers.Registry,
	identity *services.IdentityResolver,
	lineageRepo billing.LineageRepository,
	catalogRepo billing.CatalogRepository,
	eventRepo billing.WebhookEventRepository,
	entCache cache.EntitlementCache,
	logger logger.Interface,
) *ApplyNotificationUseCase {
	return &ApplyNotificationUseCase{
		registry:    registry,
		identity:    identity,
		lineageRepo: lineageRepo,
		catalogRepo: catalogRepo,
		eventRepo:   eventRepo,
		entCache:    entCache,
		logger:      logger,
	}
}

func (uc *ApplyNotificationUseCase) Execute(ctx context.Context, cmd ApplyNotificationCommand) (*ApplyNotificationResult, error) {
	normalizer, ok := uc.registry.Get(cmd.Provider)
	if !ok {
		return nil, errors.NewValidationError(fmt.Sprintf("unsupported provider: %s", cmd.Provider))
	}

	event, err := normalizer.Normalize(cmd.Payload)
	if err != nil {
		if stderrors.Is(err, billing.ErrUnsupportedNotification) {
			record := billing.NewWebhookEvent(cmd.Provider, "", "", "", cmd.Payload, billing.OutcomeIgnoredUnsupported, err.Error())
			uc.recordLedger(ctx, record)
			uc.logger.Infow("ignored unsupported notification",
				"provider", cmd.Provider.String(), "event_sid", record.SID)
			return &ApplyNotificationResult{Outcome: billing.OutcomeIgnoredUnsupported, EventSID: record.SID}, nil
		}
		// A payload that will never parse is still ledgered and acknowledged;
		// a non-2xx would only make the provider redeliver it forever.
		record := billing.NewWebhookEvent(cmd.Provider, "", "", "", cmd.Payload, billing.OutcomeRejectedMalformed, err.Error())
		uc.recordLedger(ctx, record)
		uc.logger.Warnw("failed to normalize webhook payload",
			"provider", cmd.Provider.String(), "event_sid", record.SID, "error", err)
		return &ApplyNotificationResult{Outcome: billing.OutcomeRejectedMalformed, EventSID: record.SID}, nil
	}

	outcome, lineageSID, ownerID, detail, err := uc.apply(ctx, event)
	if err != nil {
		return nil, err
	}

	record := billing.NewWebhookEvent(event.Provider, event.ProviderEventType, event.Kind,
		event.OriginalTransactionID, event.RawPayload, outcome, detail)
	uc.recordLedger(ctx, record)

	if outcome == billing.OutcomeApplied {
		uc.invalidateEntitlement(ownerID)
	}

	uc.logger.Infow("webhook event processed",
		"provider", event.Provider.String(),
		"event_type", event.ProviderEventType,
		"kind", event.Kind.String(),
		"outcome", string(outcome),
		"lineage_sid", lineageSID,
		"event_sid", record.SID)

	return &ApplyNotificationResult{
		Outcome:    outcome,
		EventSID:   record.SID,
		LineageSID: lineageSID,
	}, nil
}

// apply runs the catalog, identity, and lineage stages for an already
// normalized event. Replay shares this path so a replayed event is judged by
// exactly the same rules as a fresh delivery.
func (uc *ApplyNotificationUseCase) apply(ctx context.Context, event *billing.NotificationEvent) (outcome billing.Outcome, lineageSID string, ownerID uint, detail string, err error) {
	planID, err := uc.catalogRepo.ResolvePlan(ctx, event.Provider, event.StoreProductID, event.Environment)
	if err != nil {
		if stderrors.Is(err, billing.ErrPlanNotFound) {
			uc.logger.Warnw("no plan mapped for store product",
				"provider", event.Provider.String(),
				"store_product_id", event.StoreProductID,
				"environment", event.Environment.String())
			return billing.OutcomeRejectedUnknownProduct, "", 0,
				fmt.Sprintf("no plan mapped for store product %s in %s", event.StoreProductID, event.Environment), nil
		}
		return "", "", 0, "", fmt.Errorf("failed to resolve plan: %w", err)
	}

	userID, err := uc.identity.Resolve(ctx, event)
	if err != nil {
		if stderrors.Is(err, billing.ErrIdentityUnresolved) {
			uc.logger.Warnw("event identifiers resolve to no user",
				"provider", event.Provider.String(),
				"original_transaction_id", event.OriginalTransactionID)
			return billing.OutcomeQuarantinedUnlinked, "", 0,
				"no user resolved for event identifiers", nil
		}
		return "", "", 0, "", err
	}

	err = uc.lineageRepo.ApplyLocked(ctx, event.Provider, event.OriginalTransactionID,
		func(current *billing.SubscriptionLineage) (*billing.SubscriptionLineage, error) {
			if current == nil {
				lineage, err := billing.NewSubscriptionLineage(userID, planID, event)
				if err != nil {
					return nil, err
				}
				if _, err := lineage.ApplyEvent(event); err != nil {
					return nil, err
				}
				outcome = billing.OutcomeApplied
				lineageSID = lineage.SID()
				ownerID = userID
				return lineage, nil
			}

			lineageSID = current.SID()
			ownerID = current.UserID()
			if current.UserID() != userID {
				// The natural key is never reassigned; later events stay with
				// the original owner even when their identifiers resolve
				// elsewhere.
				uc.logger.Warnw("event identity differs from lineage owner",
					"lineage_sid", current.SID(),
					"owner_user_id", current.UserID(),
					"resolved_user_id", userID)
			}

			if current.IsDuplicateOf(event) {
				outcome = billing.OutcomeNoOpDuplicate
				return nil, nil
			}

			if _, err := current.ApplyEvent(event); err != nil {
				return nil, err
			}
			outcome = billing.OutcomeApplied
			return current, nil
		})
	if err != nil {
		return "", "", 0, "", fmt.Errorf("failed to apply event to lineage: %w", err)
	}

	return outcome, lineageSID, ownerID, "", nil
}

// recordLedger appends the audit record. The lineage transition has already
// committed, so a ledger write failure is logged rather than surfaced; the
// provider would otherwise redeliver an event we already applied.
func (uc *ApplyNotificationUseCase) recordLedger(ctx context.Context, record *billing.WebhookEvent) {
	if err := uc.eventRepo.Record(ctx, record); err != nil {
		uc.logger.Errorw("failed to record webhook event",
			"provider", record.Provider.String(),
			"event_sid", record.SID,
			"outcome", string(record.Outcome),
			"error", err)
	}
}

func (uc *ApplyNotificationUseCase) invalidateEntitlement(userID uint) {
	if uc.entCache == nil || userID == 0 {
		return
	}
	goroutine.SafeGo(uc.logger, "invalidate-entitlement-cache", func() {
		ctx, cancel := context.WithTimeout(context.Background(), cacheInvalidateTimeout)
		defer cancel()
		if err := uc.entCache.InvalidateEntitlement(ctx, userID); err != nil {
			uc.logger.Warnw("failed to invalidate entitlement cache",
				"user_id", userID, "error", err)
		}
	})
}
