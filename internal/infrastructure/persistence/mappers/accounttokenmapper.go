package mappers

import (
	"fmt"

	"github.com/solacehq/solace/internal/domain/billing"
	"github.com/solacehq/solace/internal/infrastructure/persistence/models"
)

type AccountTokenMapper interface {
	ToEntity(model *models.AccountTokenModel) (*billing.AccountToken, error)
	ToModel(entity *billing.AccountToken) (*models.AccountTokenModel, error)
}

type AccountTokenMapperImpl struct{}

func NewAccountTokenMapper() AccountTokenMapper {
	return &AccountTokenMapperImpl{}
}

func (m *AccountTokenMapperImpl) ToEntity(model *models.AccountTokenModel) (*billing.AccountToken, error) {
	if model == nil {
		return nil, nil
	}

	entity, err := billing.ReconstructAccountToken(
		model.ID,
		model.Token,
		model.UserID,
		model.IsActive,
		model.CreatedAt,
		model.DeactivatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct account token entity: %w", err)
	}

	return entity, nil
}

func (m *AccountTokenMapperImpl) ToModel(entity *billing.AccountToken) (*models.AccountTokenModel, error) {
	if entity == nil {
		return nil, nil
	}

	return &models.AccountTokenModel{
		ID:            entity.ID(),
		Token:         entity.Token(),
		UserID:        entity.UserID(),
		IsActive:      entity.IsActive(),
		CreatedAt:     entity.CreatedAt(),
		DeactivatedAt: entity.DeactivatedAt(),
	}, nil
}
