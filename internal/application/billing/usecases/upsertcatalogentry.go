package usecases

import (
	"context"
	"fmt"

	"github.com/solacehq/solace/internal/domain/billing"
	vo "github.com/solacehq/solace/internal/domain/billing/valueobjects"
	"github.com/solacehq/solace/internal/shared/errors"
	"github.com/solacehq/solace/internal/shared/logger"
)

type UpsertCatalogEntryCommand struct {
	Provider       string
	StoreProductID string
	Environment    string
	PlanID         uint
	Active         bool
}

// UpsertCatalogEntryUseCase maintains the product catalog. Remapping a store
// product only affects lineages created afterwards; existing lineages keep
// the plan resolved at creation.
type UpsertCatalogEntryUseCase struct {
	catalogRepo billing.CatalogRepository
	logger      logger.Interface
}

func NewUpsertCatalogEntryUseCase(catalogRepo billing.CatalogRepository, logger logger.Interface) *UpsertCatalogEntryUseCase {
	return &UpsertCatalogEntryUseCase{catalogRepo: catalogRepo, logger: logger}
}

func (uc *UpsertCatalogEntryUseCase) Execute(ctx context.Context, cmd UpsertCatalogEntryCommand) error {
	provider := vo.Provider(cmd.Provider)
	if !provider.IsValid() {
		return errors.NewValidationError(fmt.Sprintf("invalid provider: %s", cmd.Provider))
	}
	environment := vo.Environment(cmd.Environment)
	if !environment.IsValid() {
		return errors.NewValidationError(fmt.Sprintf("invalid environment: %s", cmd.Environment))
	}

	entry, err := billing.NewCatalogEntry(provider, cmd.StoreProductID, environment, cmd.PlanID)
	if err != nil {
		return errors.NewValidationError(err.Error())
	}
	entry.Active = cmd.Active

	if err := uc.catalogRepo.Upsert(ctx, entry); err != nil {
		uc.logger.Errorw("failed to upsert catalog entry",
			"provider", cmd.Provider, "store_product_id", cmd.StoreProductID, "error", err)
		return err
	}

	uc.logger.Infow("catalog entry upserted",
		"provider", cmd.Provider,
		"store_product_id", cmd.StoreProductID,
		"environment", cmd.Environment,
		"plan_id", cmd.PlanID,
		"active", cmd.Active)
	return nil
}
