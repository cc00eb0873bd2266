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

type AccountLinkRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.AccountLinkMapper
	logger logger.Interface
}

func NewAccountLinkRepository(
	db *gorm.DB,
	logger logger.Interface,
) billing.AccountLinkRepository {
	return &AccountLinkRepositoryImpl{
		db:     db,
		mapper: mappers.NewAccountLinkMapper(),
		logger: logger,
	}
}

func (r *AccountLinkRepositoryImpl) Upsert(ctx context.Context, link *billing.AccountLink) error {
	model := r.mapper.ToModel(link)

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "provider"},
				{Name: "kind"},
				{Name: "external_id"},
			},
			DoUpdates: clause.AssignmentColumns([]string{"user_id"}),
		}).
		Create(model).Error
	if err != nil {
		r.logger.Errorw("failed to upsert account link",
			"provider", model.Provider,
			"kind", model.Kind,
			"error", err)
		return fmt.Errorf("failed to upsert account link: %w", err)
	}

	link.ID = model.ID
	r.logger.Infow("account link upserted",
		"provider", model.Provider,
		"kind", model.Kind,
		"user_id", model.UserID)
	return nil
}

func (r *AccountLinkRepositoryImpl) ResolveUserID(
	ctx context.Context,
	provider vo.Provider,
	kind billing.LinkKind,
	externalID string,
) (uint, error) {
	var model models.AccountLinkModel

	err := r.db.WithContext(ctx).
		Where("provider = ? AND kind = ? AND external_id = ?",
			provider.String(), string(kind), externalID).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, billing.ErrIdentityUnresolved
		}
		r.logger.Errorw("failed to resolve account link",
			"provider", provider.String(),
			"kind", string(kind),
			"error", err)
		return 0, fmt.Errorf("failed to resolve account link: %w", err)
	}

	return model.UserID, nil
}
