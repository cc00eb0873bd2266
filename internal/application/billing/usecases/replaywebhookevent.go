package usecases

import (
	"context"
	stderrors "errors"

	"github.com/solacehq/solace/internal/domain/billing"
	"github.com/solacehq/solace/internal/shared/errors"
	"github.com/solacehq/solace/internal/shared/logger"
)

type ReplayWebhookEventCommand struct {
	EventID uint
}

type ReplayWebhookEventResult struct {
	Outcome    billing.Outcome
	LineageSID string
}

// ReplayWebhookEventUseCase re-runs a recorded event through the engine after
// an operator has fixed whatever sent it to the ledger, typically a missing
// catalog entry or an unlinked account. The stored payload goes through the
// same normalize-and-apply path as a live delivery.
type ReplayWebhookEventUseCase struct {
	applyUC   *ApplyNotificationUseCase
	eventRepo billing.WebhookEventRepository
	logger    logger.Interface
}

func NewReplayWebhookEventUseCase(
	applyUC *ApplyNotificationUseCase,
	eventRepo billing.WebhookEventRepository,
	logger logger.Interface,
) *ReplayWebhookEventUseCase {
	return &ReplayWebhookEventUseCase{
		applyUC:   applyUC,
		eventRepo: eventRepo,
		logger:    logger,
	}
}

func (uc *ReplayWebhookEventUseCase) Execute(ctx context.Context, cmd ReplayWebhookEventCommand) (*ReplayWebhookEventResult, error) {
	record, err := uc.eventRepo.GetByID(ctx, cmd.EventID)
	if err != nil {
		if stderrors.Is(err, billing.ErrEventNotFound) {
			return nil, errors.NewNotFoundError("webhook event not found")
		}
		return nil, err
	}

	normalizer, ok := uc.applyUC.registry.Get(record.Provider)
	if !ok {
		return nil, errors.NewValidationError("no normalizer for recorded provider")
	}

	event, err := normalizer.Normalize(record.Payload)
	if err != nil {
		if stderrors.Is(err, billing.ErrUnsupportedNotification) {
			record.MarkReplayed(billing.OutcomeIgnoredUnsupported)
			if err := uc.eventRepo.UpdateOutcome(ctx, record); err != nil {
				return nil, err
			}
			return &ReplayWebhookEventResult{Outcome: billing.OutcomeIgnoredUnsupported}, nil
		}
		record.MarkReplayed(billing.OutcomeRejectedMalformed)
		if err := uc.eventRepo.UpdateOutcome(ctx, record); err != nil {
			return nil, err
		}
		return &ReplayWebhookEventResult{Outcome: billing.OutcomeRejectedMalformed}, nil
	}

	outcome, lineageSID, ownerID, _, err := uc.applyUC.apply(ctx, event)
	if err != nil {
		return nil, err
	}

	record.MarkReplayed(outcome)
	if err := uc.eventRepo.UpdateOutcome(ctx, record); err != nil {
		uc.logger.Errorw("failed to record replay outcome",
			"event_sid", record.SID, "outcome", string(outcome), "error", err)
		return nil, err
	}

	if outcome == billing.OutcomeApplied {
		uc.applyUC.invalidateEntitlement(ownerID)
	}

	uc.logger.Infow("webhook event replayed",
		"event_sid", record.SID,
		"outcome", string(outcome),
		"lineage_sid", lineageSID)

	return &ReplayWebhookEventResult{
		Outcome:    outcome,
		LineageSID: lineageSID,
	}, nil
}
