package billing

import (
	"fmt"
	"time"

	vo "github.com/solacehq/solace/internal/domain/billing/valueobjects"
	"github.com/solacehq/solace/internal/shared/biztime"
)

// CatalogEntry maps a store-facing product identifier to an internal plan.
// Entries are owned by an administrative collaborator and consumed read-only
// by the reconciliation core; a missing entry is a normal data-quality
// outcome, not a fault.
type CatalogEntry struct {
	ID             uint
	Provider       vo.Provider
	StoreProductID string
	Environment    vo.Environment
	PlanID         uint
	Active         bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// NewCatalogEntry creates a catalog entry after validating its key.
func NewCatalogEntry(provider vo.Provider, storeProductID string, environment vo.Environment, planID uint) (*CatalogEntry, error) {
	if !provider.IsValid() {
		return nil, fmt.Errorf("invalid provider: %s", provider)
	}
	if storeProductID == "" {
		return nil, fmt.Errorf("store product ID is required")
	}
	if !environment.IsValid() {
		return nil, fmt.Errorf("invalid environment: %s", environment)
	}
	if planID == 0 {
		return nil, fmt.Errorf("plan ID is required")
	}

	now := biztime.NowUTC()
	return &CatalogEntry{
		Provider:       provider,
		StoreProductID: storeProductID,
		Environment:    environment,
		PlanID:         planID,
		Active:         true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}, nil
}
