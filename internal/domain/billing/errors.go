package billing

import "errors"

var (
	// ErrLineageNotFound is returned when a subscription lineage is not found
	ErrLineageNotFound = errors.New("subscription lineage not found")

	// ErrPlanNotFound is returned when the catalog has no mapping for a
	// (provider, store product, environment) triple
	ErrPlanNotFound = errors.New("no plan mapped for store product")

	// ErrIdentityUnresolved is returned when provider identifiers resolve to
	// no internal user
	ErrIdentityUnresolved = errors.New("provider identifiers resolve to no user")

	// ErrTokenNotFound is returned when an account token is not in the ledger
	ErrTokenNotFound = errors.New("account token not found")

	// ErrTokenInactive is returned when an account token has been deactivated
	ErrTokenInactive = errors.New("account token is inactive")

	// ErrEventNotFound is returned when a webhook event record is not found
	ErrEventNotFound = errors.New("webhook event not found")

	// ErrLineageOwnerConflict is returned when an event would reassign an
	// existing lineage to a different user; the natural key is never
	// reassigned once set
	ErrLineageOwnerConflict = errors.New("lineage already owned by a different user")

	// ErrUnsupportedNotification is returned by a normalizer for payloads it
	// recognizes but that carry no subscription-state information
	ErrUnsupportedNotification = errors.New("notification carries no subscription state")
)
