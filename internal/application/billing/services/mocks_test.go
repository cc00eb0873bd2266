package services

import (
	"context"

	"github.com/solacehq/solace/internal/domain/billing"
	vo "github.com/solacehq/solace/internal/domain/billing/valueobjects"
	"github.com/solacehq/solace/internal/shared/logger"
)

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

type mockLogger struct{}

func (m *mockLogger) With(args ...any) logger.Interface               { return m }
func (m *mockLogger) Named(name string) logger.Interface              { return m }
func (m *mockLogger) Debugw(msg string, keysAndValues ...interface{}) {}
func (m *mockLogger) Infow(msg string, keysAndValues ...interface{})  {}
func (m *mockLogger) Warnw(msg string, keysAndValues ...interface{})  {}
func (m *mockLogger) Errorw(msg string, keysAndValues ...interface{}) {}
