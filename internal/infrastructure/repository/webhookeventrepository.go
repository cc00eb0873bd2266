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

type WebhookEventRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.WebhookEventMapper
	logger logger.Interface
}

func NewWebhookEventRepository(
	db *gorm.DB,
	logger logger.Interface,
) billing.WebhookEventRepository {
	return &WebhookEventRepositoryImpl{
		db:     db,
		mapper: mappers.NewWebhookEventMapper(),
		logger: logger,
	}
}

func (r *WebhookEventRepositoryImpl) Record(ctx context.Context, event *billing.WebhookEvent) error {
	model := r.mapper.ToModel(event)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		r.logger.Errorw("failed to record webhook event",
			"provider", model.Provider,
			"outcome", model.Outcome,
			"error", err)
		return fmt.Errorf("failed to record webhook event: %w", err)
	}

	event.ID = model.ID
	return nil
}

func (r *WebhookEventRepositoryImpl) GetByID(ctx context.Context, eventID uint) (*billing.WebhookEvent, error) {
	var model models.WebhookEventModel

	if err := r.db.WithContext(ctx).First(&model, eventID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, billing.ErrEventNotFound
		}
		r.logger.Errorw("failed to get webhook event", "id", eventID, "error", err)
		return nil, fmt.Errorf("failed to get webhook event: %w", err)
	}

	return r.mapper.ToEntity(&model), nil
}

func (r *WebhookEventRepositoryImpl) ListByOutcome(ctx context.Context, outcome billing.Outcome) ([]*billing.WebhookEvent, error) {
	var eventModels []*models.WebhookEventModel

	if err := r.db.WithContext(ctx).
		Where("outcome = ?", string(outcome)).
		Order("received_at ASC").
		Find(&eventModels).Error; err != nil {
		r.logger.Errorw("failed to list webhook events", "outcome", string(outcome), "error", err)
		return nil, fmt.Errorf("failed to list webhook events: %w", err)
	}

	return r.mapper.ToEntities(eventModels), nil
}

func (r *WebhookEventRepositoryImpl) UpdateOutcome(ctx context.Context, event *billing.WebhookEvent) error {
	result := r.db.WithContext(ctx).Model(&models.WebhookEventModel{}).
		Where("id = ?", event.ID).
		Updates(map[string]interface{}{
			"outcome":     string(event.Outcome),
			"replayed_at": event.ReplayedAt,
		})
	if result.Error != nil {
		r.logger.Errorw("failed to update webhook event outcome", "id", event.ID, "error", result.Error)
		return fmt.Errorf("failed to update webhook event outcome: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return billing.ErrEventNotFound
	}

	return nil
}
