package usecases

import (
	"context"
	"fmt"
	"sync"

	"github.com/solacehq/solace/internal/domain/billing"
	vo "github.com/solacehq/solace/internal/domain/billing/valueobjects"
	"github.com/solacehq/solace/internal/infrastructure/cache"
	"github.com/solacehq/solace/internal/shared/logger"
)

// fakeLineageRepository keeps lineages in memory keyed by their natural key.
// ApplyLocked is serialized with a mutex, which is all a single-process test
// needs.
type fakeLineageRepository struct {
	mu       sync.Mutex
	lineages map[string]*billing.SubscriptionLineage
	nextID   uint

	ApplyLockedErr error
}

func newFakeLineageRepository() *fakeLineageRepository {
	return &fakeLineageRepository{lineages: make(map[string]*billing.SubscriptionLineage)}
}

func lineageKey(provider vo.Provider, originalTransactionID string) string {
	return fmt.Sprintf("%s|%s", provider, originalTransactionID)
}

func (f *fakeLineageRepository) ApplyLocked(ctx context.Context, provider vo.Provider, originalTransactionID string,
	fn func(current *billing.SubscriptionLineage) (*billing.SubscriptionLineage, error)) error {
	if f.ApplyLockedErr != nil {
		return f.ApplyLockedErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	key := lineageKey(provider, originalTransactionID)
	result, err := fn(f.lineages[key])
	if err != nil {
		return err
	}
	if result == nil {
		return nil
	}
	if result.ID() == 0 {
		f.nextID++
		if err := result.SetID(f.nextID); err != nil {
			return err
		}
	}
	f.lineages[key] = result
	return nil
}

func (f *fakeLineageRepository) GetByNaturalKey(ctx context.Context, provider vo.Provider, originalTransactionID string) (*billing.SubscriptionLineage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	lineage, ok := f.lineages[lineageKey(provider, originalTransactionID)]
	if !ok {
		return nil, billing.ErrLineageNotFound
	}
	return lineage, nil
}

func (f *fakeLineageRepository) ListByUserID(ctx context.Context, userID uint) ([]*billing.SubscriptionLineage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*billing.SubscriptionLineage
	for _, lineage := range f.lineages {
		if lineage.UserID() == userID {
			out = append(out, lineage)
		}
	}
	return out, nil
}

type mockCatalogRepository struct {
	ResolvePlanFunc func(ctx context.Context, provider vo.Provider, storeProductID string, environment vo.Environment) (uint, error)
	UpsertFunc      func(ctx context.Context, entry *billing.CatalogEntry) error
	ListFunc        func(ctx context.Context) ([]*billing.CatalogEntry, error)
}

func (m *mockCatalogRepository) ResolvePlan(ctx context.Context, provider vo.Provider, storeProductID string, environment vo.Environment) (uint, error) {
	if m.ResolvePlanFunc != nil {
		return m.ResolvePlanFunc(ctx, provider, storeProductID, environment)
	}
	return 0, billing.ErrPlanNotFound
}

func (m *mockCatalogRepository) Upsert(ctx context.Context, entry *billing.CatalogEntry) error {
	if m.UpsertFunc != nil {
		return m.UpsertFunc(ctx, entry)
	}
	return nil
}

func (m *mockCatalogRepository) List(ctx context.Context) ([]*billing.CatalogEntry, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return nil, nil
}

type mockAccountTokenRepository struct {
	CreateFunc     func(ctx context.Context, token *billing.AccountToken) error
	GetByTokenFunc func(ctx context.Context, token string) (*billing.AccountToken, error)
	UpdateFunc     func(ctx context.Context, token *billing.AccountToken) error
}

func (m *mockAccountTokenRepository) Create(ctx context.Context, token *billing.AccountToken) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, token)
	}
	return nil
}

func (m *mockAccountTokenRepository) GetByToken(ctx context.Context, token string) (*billing.AccountToken, error) {
	if m.GetByTokenFunc != nil {
		return m.GetByTokenFunc(ctx, token)
	}
	return nil, billing.ErrTokenNotFound
}

func (m *mockAccountTokenRepository) Update(ctx context.Context, token *billing.AccountToken) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, token)
	}
	return nil
}

type mockAccountLinkRepository struct {
	UpsertFunc        func(ctx context.Context, link *billing.AccountLink) error
	ResolveUserIDFunc func(ctx context.Context, provider vo.Provider, kind billing.LinkKind, externalID string) (uint, error)
}

func (m *mockAccountLinkRepository) Upsert(ctx context.Context, link *billing.AccountLink) error {
	if m.UpsertFunc != nil {
		return m.UpsertFunc(ctx, link)
	}
	return nil
}

func (m *mockAccountLinkRepository) ResolveUserID(ctx context.Context, provider vo.Provider, kind billing.LinkKind, externalID string) (uint, error) {
	if m.ResolveUserIDFunc != nil {
		return m.ResolveUserIDFunc(ctx, provider, kind, externalID)
	}
	return 0, billing.ErrIdentityUnresolved
}

// mockWebhookEventRepository records ledger writes in memory.
type mockWebhookEventRepository struct {
	mu       sync.Mutex
	recorded []*billing.WebhookEvent
	nextID   uint

	GetByIDFunc       func(ctx context.Context, eventID uint) (*billing.WebhookEvent, error)
	ListByOutcomeFunc func(ctx context.Context, outcome billing.Outcome) ([]*billing.WebhookEvent, error)
	UpdateOutcomeFunc func(ctx context.Context, event *billing.WebhookEvent) error
}

func (m *mockWebhookEventRepository) Record(ctx context.Context, event *billing.WebhookEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	event.ID = m.nextID
	m.recorded = append(m.recorded, event)
	return nil
}

func (m *mockWebhookEventRepository) GetByID(ctx context.Context, eventID uint) (*billing.WebhookEvent, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, eventID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, event := range m.recorded {
		if event.ID == eventID {
			return event, nil
		}
	}
	return nil, billing.ErrEventNotFound
}

func (m *mockWebhookEventRepository) ListByOutcome(ctx context.Context, outcome billing.Outcome) ([]*billing.WebhookEvent, error) {
	if m.ListByOutcomeFunc != nil {
		return m.ListByOutcomeFunc(ctx, outcome)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*billing.WebhookEvent
	for _, event := range m.recorded {
		if event.Outcome == outcome {
			out = append(out, event)
		}
	}
	return out, nil
}

func (m *mockWebhookEventRepository) UpdateOutcome(ctx context.Context, event *billing.WebhookEvent) error {
	if m.UpdateOutcomeFunc != nil {
		return m.UpdateOutcomeFunc(ctx, event)
	}
	return nil
}

func (m *mockWebhookEventRepository) lastRecorded() *billing.WebhookEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.recorded) == 0 {
		return nil
	}
	return m.recorded[len(m.recorded)-1]
}

// mockEntitlementCache records cache traffic in memory.
type mockEntitlementCache struct {
	mu          sync.Mutex
	entries     map[uint]*cache.CachedEntitlement
	invalidated []uint
	nullMarked  []uint

	GetFunc func(ctx context.Context, userID uint) (*cache.CachedEntitlement, error)
}

func newMockEntitlementCache() *mockEntitlementCache {
	return &mockEntitlementCache{entries: make(map[uint]*cache.CachedEntitlement)}
}

func (m *mockEntitlementCache) GetEntitlement(ctx context.Context, userID uint) (*cache.CachedEntitlement, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, userID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.entries[userID], nil
}

func (m *mockEntitlementCache) SetEntitlement(ctx context.Context, userID uint, entitlement *cache.CachedEntitlement) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[userID] = entitlement
	return nil
}

func (m *mockEntitlementCache) InvalidateEntitlement(ctx context.Context, userID uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, userID)
	m.invalidated = append(m.invalidated, userID)
	return nil
}

func (m *mockEntitlementCache) SetNullMarker(ctx context.Context, userID uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[userID] = &cache.CachedEntitlement{NotFound: true}
	m.nullMarked = append(m.nullMarked, userID)
	return nil
}

type mockLogger struct{}

func (m *mockLogger) With(args ...any) logger.Interface               { return m }
func (m *mockLogger) Named(name string) logger.Interface              { return m }
func (m *mockLogger) Debugw(msg string, keysAndValues ...interface{}) {}
func (m *mockLogger) Infow(msg string, keysAndValues ...interface{})  {}
func (m *mockLogger) Warnw(msg string, keysAndValues ...interface{})  {}
func (m *mockLogger) Errorw(msg string, keysAndValues ...interface{}) {}
