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
	apperrors "github.com/solacehq/solace/internal/shared/errors"
	"github.com/solacehq/solace/internal/shared/logger"
)

type SubscriptionLineageRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.SubscriptionLineageMapper
	logger logger.Interface
}

func NewSubscriptionLineageRepository(
	db *gorm.DB,
	logger logger.Interface,
) billing.LineageRepository {
	return &SubscriptionLineageRepositoryImpl{
		db:     db,
		mapper: mappers.NewSubscriptionLineageMapper(),
		logger: logger,
	}
}

// ApplyLocked serializes all writers of one lineage behind a row lock on its
// (provider, original_transaction_id) key. When the row does not exist yet
// there is nothing to lock, so concurrent first deliveries race on the
// unique index instead: the loser's insert fails with a duplicate key error
// and the operation is retried once against the now-existing row.
func (r *SubscriptionLineageRepositoryImpl) ApplyLocked(
	ctx context.Context,
	provider vo.Provider,
	originalTransactionID string,
	fn func(current *billing.SubscriptionLineage) (*billing.SubscriptionLineage, error),
) error {
	err := r.applyOnce(ctx, provider, originalTransactionID, fn)
	if err != nil && apperrors.IsDuplicateError(err) {
		r.logger.Infow("lineage create race detected, retrying against existing row",
			"provider", provider.String(),
			"original_transaction_id", originalTransactionID)
		return r.applyOnce(ctx, provider, originalTransactionID, fn)
	}
	return err
}

func (r *SubscriptionLineageRepositoryImpl) applyOnce(
	ctx context.Context,
	provider vo.Provider,
	originalTransactionID string,
	fn func(current *billing.SubscriptionLineage) (*billing.SubscriptionLineage, error),
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var model models.SubscriptionLineageModel
		var current *billing.SubscriptionLineage

		query := tx
		// SQLite has no row locks; its single-writer model serializes the
		// transaction anyway.
		if tx.Dialector.Name() == "mysql" {
			query = tx.Clauses(clause.Locking{Strength: "UPDATE"})
		}
		err := query.
			Where("provider = ? AND original_transaction_id = ?", provider.String(), originalTransactionID).
			First(&model).Error
		switch {
		case err == nil:
			current, err = r.mapper.ToEntity(&model)
			if err != nil {
				r.logger.Errorw("failed to map lineage model to entity",
					"provider", provider.String(),
					"original_transaction_id", originalTransactionID,
					"error", err)
				return fmt.Errorf("failed to map lineage: %w", err)
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			current = nil
		default:
			r.logger.Errorw("failed to lock lineage row",
				"provider", provider.String(),
				"original_transaction_id", originalTransactionID,
				"error", err)
			return fmt.Errorf("failed to lock lineage: %w", err)
		}

		result, err := fn(current)
		if err != nil {
			return err
		}
		if result == nil {
			return nil
		}

		resultModel, err := r.mapper.ToModel(result)
		if err != nil {
			return fmt.Errorf("failed to map lineage entity: %w", err)
		}

		if result.ID() == 0 {
			if err := tx.Create(resultModel).Error; err != nil {
				if apperrors.IsDuplicateError(err) {
					return err
				}
				r.logger.Errorw("failed to create lineage",
					"provider", provider.String(),
					"original_transaction_id", originalTransactionID,
					"error", err)
				return fmt.Errorf("failed to create lineage: %w", err)
			}
			if err := result.SetID(resultModel.ID); err != nil {
				return fmt.Errorf("failed to set lineage ID: %w", err)
			}
			r.logger.Infow("lineage created",
				"id", resultModel.ID,
				"sid", resultModel.SID,
				"provider", resultModel.Provider,
				"original_transaction_id", resultModel.OriginalTransactionID)
			return nil
		}

		// Optimistic guard on top of the row lock: the version must still be
		// the one we loaded plus the increments ApplyEvent made.
		saved := tx.Model(&models.SubscriptionLineageModel{}).
			Where("id = ? AND version < ?", resultModel.ID, resultModel.Version).
			Updates(map[string]interface{}{
				"latest_transaction_id": resultModel.LatestTransactionID,
				"store_product_id":      resultModel.StoreProductID,
				"status":                resultModel.Status,
				"last_event_kind":       resultModel.LastEventKind,
				"expires_at":            resultModel.ExpiresAt,
				"auto_renew_enabled":    resultModel.AutoRenewEnabled,
				"app_account_token":     resultModel.AppAccountToken,
				"obfuscated_account_id": resultModel.ObfuscatedAccountID,
				"obfuscated_profile_id": resultModel.ObfuscatedProfileID,
				"customer_id":           resultModel.CustomerID,
				"last_notification":     resultModel.LastNotification,
				"last_renewal_info":     resultModel.LastRenewalInfo,
				"last_transaction_info": resultModel.LastTransactionInfo,
				"version":               resultModel.Version,
				"updated_at":            resultModel.UpdatedAt,
			})
		if saved.Error != nil {
			r.logger.Errorw("failed to update lineage",
				"id", resultModel.ID,
				"error", saved.Error)
			return fmt.Errorf("failed to update lineage: %w", saved.Error)
		}
		if saved.RowsAffected == 0 {
			return fmt.Errorf("lineage %d version conflict", resultModel.ID)
		}

		return nil
	})
}

func (r *SubscriptionLineageRepositoryImpl) GetByNaturalKey(
	ctx context.Context,
	provider vo.Provider,
	originalTransactionID string,
) (*billing.SubscriptionLineage, error) {
	var model models.SubscriptionLineageModel

	err := r.db.WithContext(ctx).
		Where("provider = ? AND original_transaction_id = ?", provider.String(), originalTransactionID).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, billing.ErrLineageNotFound
		}
		r.logger.Errorw("failed to get lineage by natural key",
			"provider", provider.String(),
			"original_transaction_id", originalTransactionID,
			"error", err)
		return nil, fmt.Errorf("failed to get lineage: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

func (r *SubscriptionLineageRepositoryImpl) ListByUserID(ctx context.Context, userID uint) ([]*billing.SubscriptionLineage, error) {
	var lineageModels []*models.SubscriptionLineageModel

	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&lineageModels).Error; err != nil {
		r.logger.Errorw("failed to list lineages by user ID", "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to list lineages: %w", err)
	}

	return r.mapper.ToEntities(lineageModels)
}
