package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/solacehq/solace/internal/domain/billing"
	"github.com/solacehq/solace/internal/infrastructure/persistence/mappers"
	"github.com/solacehq/solace/internal/infrastructure/persistence/models"
	"github.com/solacehq/solace/internal/shared/logger"
)

type AccountTokenRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.AccountTokenMapper
	logger logger.Interface
}

func NewAccountTokenRepository(
	db *gorm.DB,
	logger logger.Interface,
) billing.AccountTokenRepository {
	return &AccountTokenRepositoryImpl{
		db:     db,
		mapper: mappers.NewAccountTokenMapper(),
		logger: logger,
	}
}

func (r *AccountTokenRepositoryImpl) Create(ctx context.Context, token *billing.AccountToken) error {
	model, err := r.mapper.ToModel(token)
	if err != nil {
		r.logger.Errorw("failed to map account token entity to model", "error", err)
		return fmt.Errorf("failed to map account token entity: %w", err)
	}

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create account token", "user_id", model.UserID, "error", err)
		return fmt.Errorf("failed to create account token: %w", err)
	}

	if err := token.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set account token ID: %w", err)
	}

	r.logger.Infow("account token created", "id", model.ID, "user_id", model.UserID)
	return nil
}

func (r *AccountTokenRepositoryImpl) GetByToken(ctx context.Context, token string) (*billing.AccountToken, error) {
	var model models.AccountTokenModel

	if err := r.db.WithContext(ctx).Where("token = ?", token).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, billing.ErrTokenNotFound
		}
		r.logger.Errorw("failed to get account token", "error", err)
		return nil, fmt.Errorf("failed to get account token: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

func (r *AccountTokenRepositoryImpl) Update(ctx context.Context, token *billing.AccountToken) error {
	model, err := r.mapper.ToModel(token)
	if err != nil {
		r.logger.Errorw("failed to map account token entity to model", "error", err)
		return fmt.Errorf("failed to map account token entity: %w", err)
	}

	result := r.db.WithContext(ctx).Model(&models.AccountTokenModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"is_active":      model.IsActive,
			"deactivated_at": model.DeactivatedAt,
		})
	if result.Error != nil {
		r.logger.Errorw("failed to update account token", "id", model.ID, "error", result.Error)
		return fmt.Errorf("failed to update account token: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return billing.ErrTokenNotFound
	}

	return nil
}
