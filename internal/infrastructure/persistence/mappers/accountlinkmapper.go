package mappers

import (
	vo "github.com/solacehq/solace/internal/domain/billing/valueobjects"

	"github.com/solacehq/solace/internal/domain/billing"
	"github.com/solacehq/solace/internal/infrastructure/persistence/models"
)

type AccountLinkMapper interface {
	ToEntity(model *models.AccountLinkModel) *billing.AccountLink
	ToModel(entity *billing.AccountLink) *models.AccountLinkModel
}

type AccountLinkMapperImpl struct{}

func NewAccountLinkMapper() AccountLinkMapper {
	return &AccountLinkMapperImpl{}
}

func (m *AccountLinkMapperImpl) ToEntity(model *models.AccountLinkModel) *billing.AccountLink {
	if model == nil {
		return nil
	}

	return &billing.AccountLink{
		ID:         model.ID,
		UserID:     model.UserID,
		Provider:   vo.Provider(model.Provider),
		Kind:       billing.LinkKind(model.Kind),
		ExternalID: model.ExternalID,
		CreatedAt:  model.CreatedAt,
	}
}

func (m *AccountLinkMapperImpl) ToModel(entity *billing.AccountLink) *models.AccountLinkModel {
	if entity == nil {
		return nil
	}

	return &models.AccountLinkModel{
		ID:         entity.ID,
		Provider:   entity.Provider.String(),
		Kind:       string(entity.Kind),
		ExternalID: entity.ExternalID,
		UserID:     entity.UserID,
		CreatedAt:  entity.CreatedAt,
	}
}
