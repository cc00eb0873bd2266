package usecases

import (
	"context"
	"time"

	"github.com/solacehq/solace/internal/domain/billing"
	"github.com/solacehq/solace/internal/shared/logger"
)

type CatalogEntryDTO struct {
	Provider       string    `json:"provider"`
	StoreProductID string    `json:"store_product_id"`
	Environment    string    `json:"environment"`
	PlanID         uint      `json:"plan_id"`
	Active         bool      `json:"active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type ListCatalogEntriesUseCase struct {
	catalogRepo billing.CatalogRepository
	logger      logger.Interface
}

func NewListCatalogEntriesUseCase(catalogRepo billing.CatalogRepository, logger logger.Interface) *ListCatalogEntriesUseCase {
	return &ListCatalogEntriesUseCase{catalogRepo: catalogRepo, logger: logger}
}

func (uc *ListCatalogEntriesUseCase) Execute(ctx context.Context) ([]CatalogEntryDTO, error) {
	entries, err := uc.catalogRepo.List(ctx)
	if err != nil {
		uc.logger.Errorw("failed to list catalog entries", "error", err)
		return nil, err
	}

	dtos := make([]CatalogEntryDTO, 0, len(entries))
	for _, entry := range entries {
		dtos = append(dtos, CatalogEntryDTO{
			Provider:       entry.Provider.String(),
			StoreProductID: entry.StoreProductID,
			Environment:    entry.Environment.String(),
			PlanID:         entry.PlanID,
			Active:         entry.Active,
			CreatedAt:      entry.CreatedAt,
			UpdatedAt:      entry.UpdatedAt,
		})
	}
	return dtos, nil
}
