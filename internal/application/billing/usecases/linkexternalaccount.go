package usecases

import (
	"context"
	"fmt"

	"github.com/solacehq/solace/internal/domain/billing"
	vo "github.com/solacehq/solace/internal/domain/billing/valueobjects"
	"github.com/solacehq/solace/internal/shared/errors"
	"github.com/solacehq/solace/internal/shared/logger"
)

type LinkExternalAccountCommand struct {
	UserID     uint
	Provider   string
	Kind       string
	ExternalID string
}

// LinkExternalAccountUseCase binds a provider-side identifier to a user so
// quarantined events carrying that identifier can be replayed.
type LinkExternalAccountUseCase struct {
	linkRepo billing.AccountLinkRepository
	logger   logger.Interface
}

func NewLinkExternalAccountUseCase(linkRepo billing.AccountLinkRepository, logger logger.Interface) *LinkExternalAccountUseCase {
	return &LinkExternalAccountUseCase{linkRepo: linkRepo, logger: logger}
}

func (uc *LinkExternalAccountUseCase) Execute(ctx context.Context, cmd LinkExternalAccountCommand) error {
	provider := vo.Provider(cmd.Provider)
	if !provider.IsValid() {
		return errors.NewValidationError(fmt.Sprintf("invalid provider: %s", cmd.Provider))
	}
	kind := billing.LinkKind(cmd.Kind)
	if !kind.IsValid() {
		return errors.NewValidationError(fmt.Sprintf("invalid link kind: %s", cmd.Kind))
	}

	link, err := billing.NewAccountLink(cmd.UserID, provider, kind, cmd.ExternalID)
	if err != nil {
		return errors.NewValidationError(err.Error())
	}

	if err := uc.linkRepo.Upsert(ctx, link); err != nil {
		uc.logger.Errorw("failed to upsert account link",
			"user_id", cmd.UserID, "provider", cmd.Provider, "kind", cmd.Kind, "error", err)
		return err
	}

	uc.logger.Infow("account link recorded",
		"user_id", cmd.UserID, "provider", cmd.Provider, "kind", cmd.Kind)
	return nil
}
