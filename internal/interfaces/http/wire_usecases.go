package http

import (
	billingUsecases "github.com/solacehq/solace/internal/application/billing/usecases"
)

type useCases struct {
	applyNotification  *billingUsecases.ApplyNotificationUseCase
	getEntitlement     *billingUsecases.GetEntitlementUseCase
	issueToken         *billingUsecases.IssueAccountTokenUseCase
	deactivateToken    *billingUsecases.DeactivateAccountTokenUseCase
	linkAccount        *billingUsecases.LinkExternalAccountUseCase
	upsertCatalogEntry *billingUsecases.UpsertCatalogEntryUseCase
	listCatalogEntries *billingUsecases.ListCatalogEntriesUseCase
	listQuarantined    *billingUsecases.ListQuarantinedEventsUseCase
	replayEvent        *billingUsecases.ReplayWebhookEventUseCase
}

func (c *Container) wireUseCases() {
	ucLog := c.log.Named("usecase")

	applyUC := billingUsecases.NewApplyNotificationUseCase(
		c.registry,
		c.identityResolver,
		c.repos.lineage,
		c.repos.catalog,
		c.repos.webhookEvent,
		c.entCache,
		ucLog,
	)

	c.ucs = &useCases{
		applyNotification:  applyUC,
		getEntitlement:     billingUsecases.NewGetEntitlementUseCase(c.repos.lineage, c.entCache, ucLog),
		issueToken:         billingUsecases.NewIssueAccountTokenUseCase(c.repos.accountToken, ucLog),
		deactivateToken:    billingUsecases.NewDeactivateAccountTokenUseCase(c.repos.accountToken, ucLog),
		linkAccount:        billingUsecases.NewLinkExternalAccountUseCase(c.repos.accountLink, ucLog),
		upsertCatalogEntry: billingUsecases.NewUpsertCatalogEntryUseCase(c.repos.catalog, ucLog),
		listCatalogEntries: billingUsecases.NewListCatalogEntriesUseCase(c.repos.catalog, ucLog),
		listQuarantined:    billingUsecases.NewListQuarantinedEventsUseCase(c.repos.webhookEvent, ucLog),
		replayEvent:        billingUsecases.NewReplayWebhookEventUseCase(applyUC, c.repos.webhookEvent, ucLog),
	}
}
