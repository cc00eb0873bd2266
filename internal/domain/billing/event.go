package billing

import (
	"fmt"
	"time"

	vo "github.com/solacehq/solace/internal/domain/billing/valueobjects"
)

// Identifiers carries the provider-specific opaque identifiers used to
// resolve the owning user. Exactly which fields are populated depends on the
// provider: Apple supplies the pre-issued app-account token, Google supplies
// obfuscated account/profile ids captured at linking time, and the card
// processor supplies its own customer id.
type Identifiers struct {
	AppAccountToken     string
	ObfuscatedAccountID string
	ObfuscatedProfileID string
	CustomerID          string
}

// NotificationEvent is the canonical, provider-independent form of a billing
// notification produced by a normalizer. The raw payloads are preserved
// byte-for-byte for audit and are never parsed again for decision-making.
type NotificationEvent struct {
	Provider              vo.Provider
	Environment           vo.Environment
	Kind                  vo.EventKind
	ProviderEventType     string
	OriginalTransactionID string
	LatestTransactionID   string
	StoreProductID        string
	ExpiresAt             *time.Time
	AutoRenewEnabled      bool
	Identifiers           Identifiers
	RawPayload            []byte
	RawRenewalInfo        []byte
	RawTransactionInfo    []byte
}

// Validate checks that a normalizer produced a structurally usable event.
func (e *NotificationEvent) Validate() error {
	if !e.Provider.IsValid() {
		return fmt.Errorf("invalid provider: %s", e.Provider)
	}
	if !e.Environment.IsValid() {
		return fmt.Errorf("invalid environment: %s", e.Environment)
	}
	if !e.Kind.IsValid() {
		return fmt.Errorf("invalid event kind: %s", e.Kind)
	}
	if e.OriginalTransactionID == "" {
		return fmt.Errorf("original transaction ID is required")
	}
	if e.LatestTransactionID == "" {
		return fmt.Errorf("latest transaction ID is required")
	}
	if e.StoreProductID == "" {
		return fmt.Errorf("store product ID is required")
	}
	if len(e.RawPayload) == 0 {
		return fmt.Errorf("raw payload is required")
	}
	return nil
}
