package mappers

import (
	vo "github.com/solacehq/solace/internal/domain/billing/valueobjects"

	"github.com/solacehq/solace/internal/domain/billing"
	"github.com/solacehq/solace/internal/infrastructure/persistence/models"
)

type CatalogEntryMapper interface {
	ToEntity(model *models.CatalogEntryModel) *billing.CatalogEntry
	ToModel(entity *billing.CatalogEntry) *models.CatalogEntryModel
	ToEntities(models []*models.CatalogEntryModel) []*billing.CatalogEntry
}

type CatalogEntryMapperImpl struct{}

func NewCatalogEntryMapper() CatalogEntryMapper {
	return &CatalogEntryMapperImpl{}
}

func (m *CatalogEntryMapperImpl) ToEntity(model *models.CatalogEntryModel) *billing.CatalogEntry {
	if model == nil {
		return nil
	}

	return &billing.CatalogEntry{
		ID:             model.ID,
		Provider:       vo.Provider(model.Provider),
		StoreProductID: model.StoreProductID,
		Environment:    vo.Environment(model.Environment),
		PlanID:         model.PlanID,
		Active:         model.Active,
		CreatedAt:      model.CreatedAt,
		UpdatedAt:      model.UpdatedAt,
	}
}

func (m *CatalogEntryMapperImpl) ToModel(entity *billing.CatalogEntry) *models.CatalogEntryModel {
	if entity == nil {
		return nil
	}

	return &models.CatalogEntryModel{
		ID:             entity.ID,
		Provider:       entity.Provider.String(),
		StoreProductID: entity.StoreProductID,
		Environment:    entity.Environment.String(),
		PlanID:         entity.PlanID,
		Active:         entity.Active,
		CreatedAt:      entity.CreatedAt,
		UpdatedAt:      entity.UpdatedAt,
	}
}

func (m *CatalogEntryMapperImpl) ToEntities(entryModels []*models.CatalogEntryModel) []*billing.CatalogEntry {
	entities := make([]*billing.CatalogEntry, 0, len(entryModels))
	for _, model := range entryModels {
		entities = append(entities, m.ToEntity(model))
	}
	return entities
}
