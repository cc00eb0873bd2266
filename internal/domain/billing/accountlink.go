package billing

import (
	"fmt"
	"time"

	vo "github.com/solacehq/solace/internal/domain/billing/valueobjects"
	"github.com/solacehq/solace/internal/shared/biztime"
)

// LinkKind names which provider-side identifier an AccountLink records.
type LinkKind string

const (
	LinkKindObfuscatedAccount LinkKind = "obfuscated_account"
	LinkKindObfuscatedProfile LinkKind = "obfuscated_profile"
	LinkKindCustomer          LinkKind = "customer"
)

func (k LinkKind) IsValid() bool {
	return k == LinkKindObfuscatedAccount || k == LinkKindObfuscatedProfile || k == LinkKindCustomer
}

// AccountLink binds a provider-side opaque identifier to an internal user.
// Google obfuscated account/profile ids are captured at the app's linking
// step; card processor customer ids are captured at checkout.
type AccountLink struct {
	ID         uint
	UserID     uint
	Provider   vo.Provider
	Kind       LinkKind
	ExternalID string
	CreatedAt  time.Time
}

// NewAccountLink creates a link after validating its key.
func NewAccountLink(userID uint, provider vo.Provider, kind LinkKind, externalID string) (*AccountLink, error) {
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}
	if !provider.IsValid() {
		return nil, fmt.Errorf("invalid provider: %s", provider)
	}
	if !kind.IsValid() {
		return nil, fmt.Errorf("invalid link kind: %s", kind)
	}
	if externalID == "" {
		return nil, fmt.Errorf("external ID is required")
	}

	return &AccountLink{
		UserID:     userID,
		Provider:   provider,
		Kind:       kind,
		ExternalID: externalID,
		CreatedAt:  biztime.NowUTC(),
	}, nil
}
