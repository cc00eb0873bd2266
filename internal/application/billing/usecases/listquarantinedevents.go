package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/solacehq/solace/internal/domain/billing"
	"github.com/solacehq/solace/internal/shared/errors"
	"github.com/solacehq/solace/internal/shared/logger"
)

type ListQuarantinedEventsQuery struct {
	// Outcome filters the ledger; empty means quarantined_unlinked.
	Outcome string
}

type WebhookEventDTO struct {
	ID                    uint       `json:"id"`
	SID                   string     `json:"sid"`
	Provider              string     `json:"provider"`
	ProviderEventType     string     `json:"provider_event_type"`
	Kind                  string     `json:"kind"`
	OriginalTransactionID string     `json:"original_transaction_id"`
	Outcome               string     `json:"outcome"`
	ErrorDetail           string     `json:"error_detail,omitempty"`
	ReceivedAt            time.Time  `json:"received_at"`
	ReplayedAt            *time.Time `json:"replayed_at,omitempty"`
}

// ListQuarantinedEventsUseCase surfaces ledger entries awaiting operator
// action, oldest first.
type ListQuarantinedEventsUseCase struct {
	eventRepo billing.WebhookEventRepository
	logger    logger.Interface
}

func NewListQuarantinedEventsUseCase(eventRepo billing.WebhookEventRepository, logger logger.Interface) *ListQuarantinedEventsUseCase {
	return &ListQuarantinedEventsUseCase{eventRepo: eventRepo, logger: logger}
}

func (uc *ListQuarantinedEventsUseCase) Execute(ctx context.Context, query ListQuarantinedEventsQuery) ([]WebhookEventDTO, error) {
	outcome := billing.OutcomeQuarantinedUnlinked
	if query.Outcome != "" {
		outcome = billing.Outcome(query.Outcome)
		switch outcome {
		case billing.OutcomeApplied, billing.OutcomeNoOpDuplicate,
			billing.OutcomeRejectedUnknownProduct, billing.OutcomeQuarantinedUnlinked,
			billing.OutcomeIgnoredUnsupported, billing.OutcomeRejectedMalformed:
		default:
			return nil, errors.NewValidationError(fmt.Sprintf("invalid outcome: %s", query.Outcome))
		}
	}

	events, err := uc.eventRepo.ListByOutcome(ctx, outcome)
	if err != nil {
		uc.logger.Errorw("failed to list webhook events", "outcome", string(outcome), "error", err)
		return nil, err
	}

	dtos := make([]WebhookEventDTO, 0, len(events))
	for _, event := range events {
		dtos = append(dtos, WebhookEventDTO{
			ID:                    event.ID,
			SID:                   event.SID,
			Provider:              event.Provider.String(),
			ProviderEventType:     event.ProviderEventType,
			Kind:                  event.Kind.String(),
			OriginalTransactionID: event.OriginalTransactionID,
			Outcome:               string(event.Outcome),
			ErrorDetail:           event.ErrorDetail,
			ReceivedAt:            event.ReceivedAt,
			ReplayedAt:            event.ReplayedAt,
		})
	}
	return dtos, nil
}
