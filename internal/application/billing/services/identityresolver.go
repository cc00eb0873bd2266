package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/solacehq/solace/internal/domain/billing"
	"github.com/solacehq/solace/internal/shared/logger"
)

// IdentityResolver maps the opaque identifiers carried by a provider event to
// an internal user id. Resolution is attempted in order of identifier
// strength: the pre-issued app-account token first (it was minted by us), then
// the linked obfuscated account/profile ids, then the processor customer id.
// No resolvable identifier yields billing.ErrIdentityUnresolved; the caller
// quarantines the event rather than guessing.
type IdentityResolver struct {
	tokenRepo billing.AccountTokenRepository
	linkRepo  billing.AccountLinkRepository
	logger    logger.Interface
}

func NewIdentityResolver(
	tokenRepo billing.AccountTokenRepository,
	linkRepo billing.AccountLinkRepository,
	logger logger.Interface,
) *IdentityResolver {
	return &IdentityResolver{
		tokenRepo: tokenRepo,
		linkRepo:  linkRepo,
		logger:    logger,
	}
}

// Resolve returns the internal user id owning the event's identifiers.
func (r *IdentityResolver) Resolve(ctx context.Context, event *billing.NotificationEvent) (uint, error) {
	ids := event.Identifiers

	if ids.AppAccountToken != "" {
		userID, err := r.resolveToken(ctx, ids.AppAccountToken)
		if err == nil {
			return userID, nil
		}
		if !errors.Is(err, billing.ErrIdentityUnresolved) {
			return 0, err
		}
		r.logger.Debugw("app account token did not resolve",
			"provider", event.Provider.String())
	}

	type attempt struct {
		kind       billing.LinkKind
		externalID string
	}
	attempts := []attempt{
		{billing.LinkKindObfuscatedAccount, ids.ObfuscatedAccountID},
		{billing.LinkKindObfuscatedProfile, ids.ObfuscatedProfileID},
		{billing.LinkKindCustomer, ids.CustomerID},
	}

	for _, a := range attempts {
		if a.externalID == "" {
			continue
		}
		userID, err := r.linkRepo.ResolveUserID(ctx, event.Provider, a.kind, a.externalID)
		if err == nil {
			return userID, nil
		}
		if !errors.Is(err, billing.ErrIdentityUnresolved) {
			return 0, fmt.Errorf("failed to resolve %s link: %w", a.kind, err)
		}
	}

	return 0, billing.ErrIdentityUnresolved
}

func (r *IdentityResolver) resolveToken(ctx context.Context, token string) (uint, error) {
	entry, err := r.tokenRepo.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, billing.ErrTokenNotFound) {
			return 0, billing.ErrIdentityUnresolved
		}
		return 0, fmt.Errorf("failed to look up account token: %w", err)
	}
	if !entry.IsActive() {
		// A deactivated token still identifies its user for events already in
		// flight; it only stops being handed out for new purchases.
		r.logger.Debugw("resolved via deactivated account token", "user_id", entry.UserID())
	}
	return entry.UserID(), nil
}
