package usecases

import (
	"context"
	stderrors "errors"

	"github.com/solacehq/solace/internal/domain/billing"
	"github.com/solacehq/solace/internal/shared/errors"
	"github.com/solacehq/solace/internal/shared/logger"
)

type DeactivateAccountTokenCommand struct {
	UserID uint
	Token  string
}

// DeactivateAccountTokenUseCase retires an issued token. The token keeps
// resolving events already in flight; it only stops being valid for new
// purchases.
type DeactivateAccountTokenUseCase struct {
	tokenRepo billing.AccountTokenRepository
	logger    logger.Interface
}

func NewDeactivateAccountTokenUseCase(tokenRepo billing.AccountTokenRepository, logger logger.Interface) *DeactivateAccountTokenUseCase {
	return &DeactivateAccountTokenUseCase{tokenRepo: tokenRepo, logger: logger}
}

func (uc *DeactivateAccountTokenUseCase) Execute(ctx context.Context, cmd DeactivateAccountTokenCommand) error {
	if cmd.Token == "" {
		return errors.NewValidationError("token is required")
	}

	token, err := uc.tokenRepo.GetByToken(ctx, cmd.Token)
	if err != nil {
		if stderrors.Is(err, billing.ErrTokenNotFound) {
			return errors.NewNotFoundError("account token not found")
		}
		return err
	}

	if cmd.UserID != 0 && token.UserID() != cmd.UserID {
		// Tokens are only ever deactivated by their owner.
		return errors.NewNotFoundError("account token not found")
	}

	if !token.IsActive() {
		return nil
	}

	token.Deactivate()
	if err := uc.tokenRepo.Update(ctx, token); err != nil {
		uc.logger.Errorw("failed to deactivate account token", "user_id", token.UserID(), "error", err)
		return err
	}

	uc.logger.Infow("account token deactivated", "user_id", token.UserID())
	return nil
}
