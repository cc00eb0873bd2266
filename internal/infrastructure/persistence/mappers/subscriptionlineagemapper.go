package mappers

import (
	"fmt"

	"gorm.io/datatypes"

	"github.com/solacehq/solace/internal/domain/billing"
	vo "github.com/solacehq/solace/internal/domain/billing/valueobjects"
	"github.com/solacehq/solace/internal/infrastructure/persistence/models"
)

type SubscriptionLineageMapper interface {
	ToEntity(model *models.SubscriptionLineageModel) (*billing.SubscriptionLineage, error)
	ToModel(entity *billing.SubscriptionLineage) (*models.SubscriptionLineageModel, error)
	ToEntities(models []*models.SubscriptionLineageModel) ([]*billing.SubscriptionLineage, error)
}

type SubscriptionLineageMapperImpl struct{}

func NewSubscriptionLineageMapper() SubscriptionLineageMapper {
	return &SubscriptionLineageMapperImpl{}
}

func (m *SubscriptionLineageMapperImpl) ToEntity(model *models.SubscriptionLineageModel) (*billing.SubscriptionLineage, error) {
	if model == nil {
		return nil, nil
	}

	entity, err := billing.ReconstructSubscriptionLineage(billing.LineageReconstructParams{
		ID:                    model.ID,
		SID:                   model.SID,
		UserID:                model.UserID,
		Provider:              vo.Provider(model.Provider),
		Environment:           vo.Environment(model.Environment),
		StoreProductID:        model.StoreProductID,
		PlanID:                model.PlanID,
		OriginalTransactionID: model.OriginalTransactionID,
		LatestTransactionID:   model.LatestTransactionID,
		LastEventKind:         vo.EventKind(model.LastEventKind),
		Status:                vo.LineageStatus(model.Status),
		ExpiresAt:             model.ExpiresAt,
		AutoRenewEnabled:      model.AutoRenewEnabled,
		AppAccountToken:       model.AppAccountToken,
		ObfuscatedAccountID:   model.ObfuscatedAccountID,
		ObfuscatedProfileID:   model.ObfuscatedProfileID,
		CustomerID:            model.CustomerID,
		LastNotification:      model.LastNotification,
		LastRenewalInfo:       model.LastRenewalInfo,
		LastTransactionInfo:   model.LastTransactionInfo,
		Version:               model.Version,
		CreatedAt:             model.CreatedAt,
		UpdatedAt:             model.UpdatedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct lineage entity: %w", err)
	}

	return entity, nil
}

func (m *SubscriptionLineageMapperImpl) ToModel(entity *billing.SubscriptionLineage) (*models.SubscriptionLineageModel, error) {
	if entity == nil {
		return nil, nil
	}

	return &models.SubscriptionLineageModel{
		ID:                    entity.ID(),
		SID:                   entity.SID(),
		UserID:                entity.UserID(),
		PlanID:                entity.PlanID(),
		Provider:              entity.Provider().String(),
		Environment:           entity.Environment().String(),
		OriginalTransactionID: entity.OriginalTransactionID(),
		LatestTransactionID:   entity.LatestTransactionID(),
		StoreProductID:        entity.StoreProductID(),
		Status:                entity.Status().String(),
		LastEventKind:         entity.LastEventKind().String(),
		ExpiresAt:             entity.ExpiresAt(),
		AutoRenewEnabled:      entity.AutoRenewEnabled(),
		AppAccountToken:       entity.AppAccountToken(),
		ObfuscatedAccountID:   entity.ObfuscatedAccountID(),
		ObfuscatedProfileID:   entity.ObfuscatedProfileID(),
		CustomerID:            entity.CustomerID(),
		LastNotification:      datatypes.JSON(entity.LastNotification()),
		LastRenewalInfo:       datatypes.JSON(entity.LastRenewalInfo()),
		LastTransactionInfo:   datatypes.JSON(entity.LastTransactionInfo()),
		Version:               entity.Version(),
		CreatedAt:             entity.CreatedAt(),
		UpdatedAt:             entity.UpdatedAt(),
	}, nil
}

func (m *SubscriptionLineageMapperImpl) ToEntities(lineageModels []*models.SubscriptionLineageModel) ([]*billing.SubscriptionLineage, error) {
	entities := make([]*billing.SubscriptionLineage, 0, len(lineageModels))
	for _, model := range lineageModels {
		entity, err := m.ToEntity(model)
		if err != nil {
			return nil, err
		}
		entities = append(entities, entity)
	}
	return entities, nil
}
