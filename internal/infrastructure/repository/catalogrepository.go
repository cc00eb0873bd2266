package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/solacehq/solace/internal/domain/billing"
	vo "github.com/solacehq/solace/internal/domain/billing/valueobjects"
	"github.com/solacehq/solace/internal/infrastructure/persistence/mappers"
	"github.com/solacehq/solace/internal/infrastructure/persistence/models"
	"github.com/solacehq/solace/internal/shared/logger"
)

type CatalogRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.CatalogEntryMapper
	logger logger.Interface
}

func NewCatalogRepository(
	db *gorm.DB,
	logger logger.Interface,
) billing.CatalogRepository {
	return &CatalogRepositoryImpl{
		db:     db,
		mapper: mappers.NewCatalogEntryMapper(),
		logger: logger,
	}
}

func (r *CatalogRepositoryImpl) ResolvePlan(
	ctx context.Context,
	provider vo.Provider,
	storeProductID string,
	environment vo.Environment,
) (uint, error) {
	var model models.CatalogEntryModel

	err := r.db.WithContext(ctx).
		Where("provider = ? AND store_product_id = ? AND environment = ? AND active = ?",
			provider.String(), storeProductID, environment.String(), true).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, billing.ErrPlanNotFound
		}
		r.logger.Errorw("failed to resolve plan",
			"provider", provider.String(),
			"store_product_id", storeProductID,
			"error", err)
		return 0, fmt.Errorf("failed to resolve plan: %w", err)
	}

	return model.PlanID, nil
}

func (r *CatalogRepositoryImpl) Upsert(ctx context.Context, entry *billing.CatalogEntry) error {
	model := r.mapper.ToModel(entry)

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "provider"},
				{Name: "store_product_id"},
				{Name: "environment"},
			},
			DoUpdates: clause.AssignmentColumns([]string{"plan_id", "active", "updated_at"}),
		}).
		Create(model).Error
	if err != nil {
		r.logger.Errorw("failed to upsert catalog entry",
			"provider", model.Provider,
			"store_product_id", model.StoreProductID,
			"error", err)
		return fmt.Errorf("failed to upsert catalog entry: %w", err)
	}

	entry.ID = model.ID
	r.logger.Infow("catalog entry upserted",
		"provider", model.Provider,
		"store_product_id", model.StoreProductID,
		"plan_id", model.PlanID)
	return nil
}

func (r *CatalogRepositoryImpl) List(ctx context.Context) ([]*billing.CatalogEntry, error) {
	var entryModels []*models.CatalogEntryModel

	if err := r.db.WithContext(ctx).
		Order("provider, store_product_id").
		Find(&entryModels).Error; err != nil {
		r.logger.Errorw("failed to list catalog entries", "error", err)
		return nil, fmt.Errorf("failed to list catalog entries: %w", err)
	}

	return r.mapper.ToEntities(entryModels), nil
}
