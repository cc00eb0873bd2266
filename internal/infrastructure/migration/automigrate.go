package migration

import (
	"github.com/solacehq/solace/internal/infrastructure/persistence/models"
)

func AutoMigrateModels() []interface{} {
	return []interface{}{
		&models.CatalogEntryModel{},
		&models.AccountTokenModel{},
		&models.AccountLinkModel{},
		&models.SubscriptionLineageModel{},
		&models.WebhookEventModel{},
	}
}
