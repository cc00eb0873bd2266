package mappers

import (
	"gorm.io/datatypes"

	"github.com/solacehq/solace/internal/domain/billing"
	vo "github.com/solacehq/solace/internal/domain/billing/valueobjects"
	"github.com/solacehq/solace/internal/infrastructure/persistence/models"
)

type WebhookEventMapper interface {
	ToEntity(model *models.WebhookEventModel) *billing.WebhookEvent
	ToModel(entity *billing.WebhookEvent) *models.WebhookEventModel
	ToEntities(models []*models.WebhookEventModel) []*billing.WebhookEvent
}

type WebhookEventMapperImpl struct{}

func NewWebhookEventMapper() WebhookEventMapper {
	return &WebhookEventMapperImpl{}
}

func (m *WebhookEventMapperImpl) ToEntity(model *models.WebhookEventModel) *billing.WebhookEvent {
	if model == nil {
		return nil
	}

	return &billing.WebhookEvent{
		ID:                    model.ID,
		SID:                   model.SID,
		Provider:              vo.Provider(model.Provider),
		ProviderEventType:     model.ProviderEventType,
		Kind:                  vo.EventKind(model.Kind),
		OriginalTransactionID: model.OriginalTransactionID,
		Payload:               model.Payload,
		Outcome:               billing.Outcome(model.Outcome),
		ErrorDetail:           model.ErrorDetail,
		ReceivedAt:            model.ReceivedAt,
		ReplayedAt:            model.ReplayedAt,
	}
}

func (m *WebhookEventMapperImpl) ToModel(entity *billing.WebhookEvent) *models.WebhookEventModel {
	if entity == nil {
		return nil
	}

	return &models.WebhookEventModel{
		ID:                    entity.ID,
		SID:                   entity.SID,
		Provider:              entity.Provider.String(),
		ProviderEventType:     entity.ProviderEventType,
		Kind:                  entity.Kind.String(),
		OriginalTransactionID: entity.OriginalTransactionID,
		Payload:               datatypes.JSON(entity.Payload),
		Outcome:               string(entity.Outcome),
		ErrorDetail:           entity.ErrorDetail,
		ReceivedAt:            entity.ReceivedAt,
		ReplayedAt:            entity.ReplayedAt,
	}
}

func (m *WebhookEventMapperImpl) ToEntities(eventModels []*models.WebhookEventModel) []*billing.WebhookEvent {
	entities := make([]*billing.WebhookEvent, 0, len(eventModels))
	for _, model := range eventModels {
		entities = append(entities, m.ToEntity(model))
	}
	return entities
}
