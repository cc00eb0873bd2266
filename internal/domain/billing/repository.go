package billing

import (
	"context"

	vo "github.com/solacehq/solace/internal/domain/billing/valueobjects"
)

// LineageRepository defines persistence operations for subscription lineages.
type LineageRepository interface {
	// ApplyLocked runs fn while holding exclusive access to the lineage keyed
	// by (provider, originalTransactionID) — the serialization boundary for
	// the reconciliation engine. fn receives the current lineage, or nil when
	// none exists yet, and returns the lineage to persist (created or
	// mutated). Returning (nil, nil) persists nothing. The whole operation
	// commits atomically; callers retry on transient failure.
	ApplyLocked(ctx context.Context, provider vo.Provider, originalTransactionID string,
		fn func(current *SubscriptionLineage) (*SubscriptionLineage, error)) error

	// GetByNaturalKey retrieves a lineage by its provider-scoped natural key.
	GetByNaturalKey(ctx context.Context, provider vo.Provider, originalTransactionID string) (*SubscriptionLineage, error)

	// ListByUserID retrieves all lineages owned by a user.
	ListByUserID(ctx context.Context, userID uint) ([]*SubscriptionLineage, error)
}

// AccountTokenRepository defines persistence for the token-issuance ledger.
type AccountTokenRepository interface {
	Create(ctx context.Context, token *AccountToken) error
	GetByToken(ctx context.Context, token string) (*AccountToken, error)
	Update(ctx context.Context, token *AccountToken) error
}

// AccountLinkRepository defines persistence for provider identifier links.
type AccountLinkRepository interface {
	// Upsert records a link, replacing any previous link with the same
	// (provider, kind, externalID) key.
	Upsert(ctx context.Context, link *AccountLink) error

	// ResolveUserID looks up the user bound to an external identifier.
	// Returns ErrIdentityUnresolved when no link exists.
	ResolveUserID(ctx context.Context, provider vo.Provider, kind LinkKind, externalID string) (uint, error)
}

// CatalogRepository defines persistence for the product catalog.
type CatalogRepository interface {
	// ResolvePlan maps a store product to an internal plan. Returns
	// ErrPlanNotFound for unmapped products; that is a normal outcome.
	ResolvePlan(ctx context.Context, provider vo.Provider, storeProductID string, environment vo.Environment) (uint, error)

	Upsert(ctx context.Context, entry *CatalogEntry) error
	List(ctx context.Context) ([]*CatalogEntry, error)
}

// WebhookEventRepository defines persistence for the event audit ledger.
type WebhookEventRepository interface {
	Record(ctx context.Context, event *WebhookEvent) error
	GetByID(ctx context.Context, eventID uint) (*WebhookEvent, error)
	ListByOutcome(ctx context.Context, outcome Outcome) ([]*WebhookEvent, error)
	UpdateOutcome(ctx context.Context, event *WebhookEvent) error
}
