package handlers

import (
	"context"

	billingUsecases "github.com/solacehq/solace/internal/application/billing/usecases"
)

// Use case interfaces for the billing handlers

type applyNotificationUseCase interface {
	Execute(ctx context.Context, cmd billingUsecases.ApplyNotificationCommand) (*billingUsecases.ApplyNotificationResult, error)
}

type getEntitlementUseCase interface {
	Execute(ctx context.Context, query billingUsecases.GetEntitlementQuery) (*billingUsecases.GetEntitlementResult, error)
}

type issueAccountTokenUseCase interface {
	Execute(ctx context.Context, cmd billingUsecases.IssueAccountTokenCommand) (*billingUsecases.IssueAccountTokenResult, error)
}

type deactivateAccountTokenUseCase interface {
	Execute(ctx context.Context, cmd billingUsecases.DeactivateAccountTokenCommand) error
}

type linkExternalAccountUseCase interface {
	Execute(ctx context.Context, cmd billingUsecases.LinkExternalAccountCommand) error
}

type upsertCatalogEntryUseCase interface {
	Execute(ctx context.Context, cmd billingUsecases.UpsertCatalogEntryCommand) error
}

type listCatalogEntriesUseCase interface {
	Execute(ctx context.Context) ([]billingUsecases.CatalogEntryDTO, error)
}

type listQuarantinedEventsUseCase interface {
	Execute(ctx context.Context, query billingUsecases.ListQuarantinedEventsQuery) ([]billingUsecases.WebhookEventDTO, error)
}

type replayWebhookEventUseCase interface {
	Execute(ctx context.Context, cmd billingUsecases.ReplayWebhookEventCommand) (*billingUsecases.ReplayWebhookEventResult, error)
}
