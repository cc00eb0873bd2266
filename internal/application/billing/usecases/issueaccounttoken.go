package usecases

import (
	"context"
	"time"

	"github.com/solacehq/solace/internal/domain/billing"
	"github.com/solacehq/solace/internal/shared/errors"
	"github.com/solacehq/solace/internal/shared/logger"
)

type IssueAccountTokenCommand struct {
	UserID uint
}

type IssueAccountTokenResult struct {
	Token     string
	CreatedAt time.Time
}

// IssueAccountTokenUseCase mints the token a client embeds in a store
// purchase so later notifications can be tied back to the user.
type IssueAccountTokenUseCase struct {
	tokenRepo billing.AccountTokenRepository
	logger    logger.Interface
}

func NewIssueAccountTokenUseCase(tokenRepo billing.AccountTokenRepository, logger logger.Interface) *IssueAccountTokenUseCase {
	return &IssueAccountTokenUseCase{tokenRepo: tokenRepo, logger: logger}
}

func (uc *IssueAccountTokenUseCase) Execute(ctx context.Context, cmd IssueAccountTokenCommand) (*IssueAccountTokenResult, error) {
	if cmd.UserID == 0 {
		return nil, errors.NewValidationError("user ID is required")
	}

	token, err := billing.NewAccountToken(cmd.UserID)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.tokenRepo.Create(ctx, token); err != nil {
		uc.logger.Errorw("failed to persist account token", "user_id", cmd.UserID, "error", err)
		return nil, err
	}

	uc.logger.Infow("account token issued", "user_id", cmd.UserID)

	return &IssueAccountTokenResult{
		Token:     token.Token(),
		CreatedAt: token.CreatedAt(),
	}, nil
}
