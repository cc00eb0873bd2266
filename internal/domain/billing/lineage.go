package billing

import (
	"fmt"
	"time"

	vo "github.com/solacehq/solace/internal/domain/billing/valueobjects"
	"github.com/solacehq/solace/internal/shared/biztime"
	"github.com/solacehq/solace/internal/shared/id"
)

// SubscriptionLineage is the aggregate root for one real-world subscription
// instance: the full renewal history identified by
// (provider, originalTransactionID). It is created on the first accepted
// event for a previously-unseen natural key, mutated only through ApplyEvent,
// and never deleted; cancellation and expiry are states, not deletions.
type SubscriptionLineage struct {
	id                    uint
	sid                   string
	userID                uint
	provider              vo.Provider
	environment           vo.Environment
	storeProductID        string
	planID                uint
	originalTransactionID string
	latestTransactionID   string
	lastEventKind         vo.EventKind
	status                vo.LineageStatus
	expiresAt             *time.Time
	autoRenewEnabled      bool
	appAccountToken       *string
	obfuscatedAccountID   *string
	obfuscatedProfileID   *string
	customerID            *string
	lastNotification      []byte
	lastRenewalInfo       []byte
	lastTransactionInfo   []byte
	version               int
	createdAt             time.Time
	updatedAt             time.Time
}

// NewSubscriptionLineage creates a lineage in Pending state for its first
// observed event. The event itself is applied afterwards through ApplyEvent.
func NewSubscriptionLineage(userID, planID uint, event *NotificationEvent) (*SubscriptionLineage, error) {
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}
	if planID == 0 {
		return nil, fmt.Errorf("plan ID is required")
	}
	if event == nil {
		return nil, fmt.Errorf("event is required")
	}
	if err := event.Validate(); err != nil {
		return nil, fmt.Errorf("invalid event: %w", err)
	}

	now := biztime.NowUTC()
	return &SubscriptionLineage{
		sid:                   id.MustGenerateWithPrefix(id.PrefixLineage, id.DefaultLength),
		userID:                userID,
		provider:              event.Provider,
		environment:           event.Environment,
		storeProductID:        event.StoreProductID,
		planID:                planID,
		originalTransactionID: event.OriginalTransactionID,
		status:                vo.StatusPending,
		version:               1,
		createdAt:             now,
		updatedAt:             now,
	}, nil
}

// LineageReconstructParams carries all persisted fields for reconstruction.
type LineageReconstructParams struct {
	ID                    uint
	SID                   string
	UserID                uint
	Provider              vo.Provider
	Environment           vo.Environment
	StoreProductID        string
	PlanID                uint
	OriginalTransactionID string
	LatestTransactionID   string
	LastEventKind         vo.EventKind
	Status                vo.LineageStatus
	ExpiresAt             *time.Time
	AutoRenewEnabled      bool
	AppAccountToken       *string
	ObfuscatedAccountID   *string
	ObfuscatedProfileID   *string
	CustomerID            *string
	LastNotification      []byte
	LastRenewalInfo       []byte
	LastTransactionInfo   []byte
	Version               int
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// ReconstructSubscriptionLineage reconstructs a lineage from persistence.
func ReconstructSubscriptionLineage(p LineageReconstructParams) (*SubscriptionLineage, error) {
	if p.ID == 0 {
		return nil, fmt.Errorf("lineage ID cannot be zero")
	}
	if p.UserID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}
	if !p.Provider.IsValid() {
		return nil, fmt.Errorf("invalid provider: %s", p.Provider)
	}
	if !p.Status.IsValid() {
		return nil, fmt.Errorf("invalid lineage status: %s", p.Status)
	}
	if p.OriginalTransactionID == "" {
		return nil, fmt.Errorf("original transaction ID is required")
	}

	return &SubscriptionLineage{
		id:                    p.ID,
		sid:                   p.SID,
		userID:                p.UserID,
		provider:              p.Provider,
		environment:           p.Environment,
		storeProductID:        p.StoreProductID,
		planID:                p.PlanID,
		originalTransactionID: p.OriginalTransactionID,
		latestTransactionID:   p.LatestTransactionID,
		lastEventKind:         p.LastEventKind,
		status:                p.Status,
		expiresAt:             p.ExpiresAt,
		autoRenewEnabled:      p.AutoRenewEnabled,
		appAccountToken:       p.AppAccountToken,
		obfuscatedAccountID:   p.ObfuscatedAccountID,
		obfuscatedProfileID:   p.ObfuscatedProfileID,
		customerID:            p.CustomerID,
		lastNotification:      p.LastNotification,
		lastRenewalInfo:       p.LastRenewalInfo,
		lastTransactionInfo:   p.LastTransactionInfo,
		version:               p.Version,
		createdAt:             p.CreatedAt,
		updatedAt:             p.UpdatedAt,
	}, nil
}

// IsDuplicateOf reports whether the event has already been applied to this
// lineage: matching latest transaction ID, event kind, and expiry means the
// redelivery is a true no-op. An event without an expiry cannot move the
// stored one, so transaction ID and kind alone decide.
func (l *SubscriptionLineage) IsDuplicateOf(event *NotificationEvent) bool {
	if l.latestTransactionID == "" || l.latestTransactionID != event.LatestTransactionID {
		return false
	}
	if l.lastEventKind != event.Kind {
		return false
	}
	if event.ExpiresAt == nil {
		return true
	}
	return biztime.EqualNullable(l.expiresAt, event.ExpiresAt)
}

// ApplyEvent applies a canonical event to the lineage. The status moves
// through the transition table; a (status, kind) pair without a defined
// transition keeps the status but still refreshes latest transaction,
// auto-renew, cross-links, audit payloads, and the expiry when the event
// carries one, because provider events always carry the freshest truth about
// renewal and expiry.
//
// The returned flag reports whether the status actually changed.
func (l *SubscriptionLineage) ApplyEvent(event *NotificationEvent) (bool, error) {
	if event == nil {
		return false, fmt.Errorf("event is required")
	}
	if event.Provider != l.provider || event.OriginalTransactionID != l.originalTransactionID {
		return false, fmt.Errorf("event lineage key %s/%s does not match %s/%s",
			event.Provider, event.OriginalTransactionID, l.provider, l.originalTransactionID)
	}

	previous := l.status
	next, _ := l.status.Next(event.Kind)
	l.status = next

	l.latestTransactionID = event.LatestTransactionID
	l.lastEventKind = event.Kind
	// Expiry-less events (renewal status toggles, some refunds) must not
	// erase the persisted period end.
	if event.ExpiresAt != nil {
		l.expiresAt = event.ExpiresAt
	}
	l.autoRenewEnabled = event.AutoRenewEnabled
	l.applyCrossLinks(event.Identifiers)

	l.lastNotification = event.RawPayload
	if len(event.RawRenewalInfo) > 0 {
		l.lastRenewalInfo = event.RawRenewalInfo
	}
	if len(event.RawTransactionInfo) > 0 {
		l.lastTransactionInfo = event.RawTransactionInfo
	}

	l.updatedAt = biztime.NowUTC()
	l.version++

	return l.status != previous, nil
}

func (l *SubscriptionLineage) applyCrossLinks(ids Identifiers) {
	if ids.AppAccountToken != "" {
		v := ids.AppAccountToken
		l.appAccountToken = &v
	}
	if ids.ObfuscatedAccountID != "" {
		v := ids.ObfuscatedAccountID
		l.obfuscatedAccountID = &v
	}
	if ids.ObfuscatedProfileID != "" {
		v := ids.ObfuscatedProfileID
		l.obfuscatedProfileID = &v
	}
	if ids.CustomerID != "" {
		v := ids.CustomerID
		l.customerID = &v
	}
}

// GrantsEntitlement reports whether this lineage currently entitles its owner
// to paid access.
func (l *SubscriptionLineage) GrantsEntitlement() bool {
	return l.status.GrantsEntitlement()
}

// SelectEntitled picks the lineage that determines a user's entitlement:
// among lineages in an entitling status, the one with the latest expiry, ties
// broken by most recent write. Returns nil when none qualify.
func SelectEntitled(lineages []*SubscriptionLineage) *SubscriptionLineage {
	var best *SubscriptionLineage
	for _, l := range lineages {
		if !l.GrantsEntitlement() {
			continue
		}
		if best == nil {
			best = l
			continue
		}
		switch {
		case laterExpiry(l.expiresAt, best.expiresAt):
			best = l
		case biztime.EqualNullable(l.expiresAt, best.expiresAt) && l.updatedAt.After(best.updatedAt):
			best = l
		}
	}
	return best
}

// laterExpiry treats a nil expiry as unbounded, which outranks any finite one.
func laterExpiry(a, b *time.Time) bool {
	if a == nil && b != nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	return a.After(*b)
}

func (l *SubscriptionLineage) ID() uint {
	return l.id
}

// SID returns the Stripe-style public identifier.
func (l *SubscriptionLineage) SID() string {
	return l.sid
}

func (l *SubscriptionLineage) UserID() uint {
	return l.userID
}

func (l *SubscriptionLineage) Provider() vo.Provider {
	return l.provider
}

func (l *SubscriptionLineage) Environment() vo.Environment {
	return l.environment
}

func (l *SubscriptionLineage) StoreProductID() string {
	return l.storeProductID
}

func (l *SubscriptionLineage) PlanID() uint {
	return l.planID
}

func (l *SubscriptionLineage) OriginalTransactionID() string {
	return l.originalTransactionID
}

func (l *SubscriptionLineage) LatestTransactionID() string {
	return l.latestTransactionID
}

func (l *SubscriptionLineage) LastEventKind() vo.EventKind {
	return l.lastEventKind
}

func (l *SubscriptionLineage) Status() vo.LineageStatus {
	return l.status
}

func (l *SubscriptionLineage) ExpiresAt() *time.Time {
	return l.expiresAt
}

func (l *SubscriptionLineage) AutoRenewEnabled() bool {
	return l.autoRenewEnabled
}

func (l *SubscriptionLineage) AppAccountToken() *string {
	return l.appAccountToken
}

func (l *SubscriptionLineage) ObfuscatedAccountID() *string {
	return l.obfuscatedAccountID
}

func (l *SubscriptionLineage) ObfuscatedProfileID() *string {
	return l.obfuscatedProfileID
}

func (l *SubscriptionLineage) CustomerID() *string {
	return l.customerID
}

func (l *SubscriptionLineage) LastNotification() []byte {
	return l.lastNotification
}

func (l *SubscriptionLineage) LastRenewalInfo() []byte {
	return l.lastRenewalInfo
}

func (l *SubscriptionLineage) LastTransactionInfo() []byte {
	return l.lastTransactionInfo
}

// Version returns the aggregate version for optimistic locking.
func (l *SubscriptionLineage) Version() int {
	return l.version
}

func (l *SubscriptionLineage) CreatedAt() time.Time {
	return l.createdAt
}

func (l *SubscriptionLineage) UpdatedAt() time.Time {
	return l.updatedAt
}

// SetID sets the lineage ID (only for persistence layer use).
func (l *SubscriptionLineage) SetID(lineageID uint) error {
	if l.id != 0 {
		return fmt.Errorf("lineage ID is already set")
	}
	if lineageID == 0 {
		return fmt.Errorf("lineage ID cannot be zero")
	}
	l.id = lineageID
	return nil
}
