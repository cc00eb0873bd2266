package http

import (
	"github.com/solacehq/solace/internal/infrastructure/repository"
)

func (c *Container) wireRepositories() {
	repoLog := c.log.Named("repository")
	c.repos = &repositories{
		lineage:      repository.NewSubscriptionLineageRepository(c.db, repoLog),
		accountToken: repository.NewAccountTokenRepository(c.db, repoLog),
		accountLink:  repository.NewAccountLinkRepository(c.db, repoLog),
		catalog:      repository.NewCatalogRepository(c.db, repoLog),
		webhookEvent: repository.NewWebhookEventRepository(c.db, repoLog),
	}
}
