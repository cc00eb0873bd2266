package handlers

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	billingUsecases "github.com/solacehq/solace/internal/application/billing/usecases"
	"github.com/solacehq/solace/internal/interfaces/http/handlers/testutil"
	"github.com/solacehq/solace/internal/shared/errors"
)

type mockIssueAccountTokenUC struct {
	result  *billingUsecases.IssueAccountTokenResult
	err     error
	lastCmd billingUsecases.IssueAccountTokenCommand
}

func (m *mockIssueAccountTokenUC) Execute(ctx context.Context, cmd billingUsecases.IssueAccountTokenCommand) (*billingUsecases.IssueAccountTokenResult, error) {
	m.lastCmd = cmd
	return m.result, m.err
}

type mockDeactivateAccountTokenUC struct {
	err     error
	lastCmd billingUsecases.DeactivateAccountTokenCommand
}

func (m *mockDeactivateAccountTokenUC) Execute(ctx context.Context, cmd billingUsecases.DeactivateAccountTokenCommand) error {
	m.lastCmd = cmd
	return m.err
}

func TestAccountTokenHandler_Issue(t *testing.T) {
	mockUC := &mockIssueAccountTokenUC{
		result: &billingUsecases.IssueAccountTokenResult{
			Token:     "4f2c8e61-9b7a-4d5e-8f3a-1c2b3d4e5f6a",
			CreatedAt: time.Now().UTC(),
		},
	}
	handler := NewAccountTokenHandler(mockUC, &mockDeactivateAccountTokenUC{}, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodPost, "/billing/account-tokens", nil)
	testutil.SetAuthContext(c, 42)

	handler.Issue(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, uint(42), mockUC.lastCmd.UserID)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	assert.True(t, resp.Success)
	assert.Contains(t, string(resp.Data), mockUC.result.Token)
}

func TestAccountTokenHandler_Issue_Unauthenticated(t *testing.T) {
	handler := NewAccountTokenHandler(&mockIssueAccountTokenUC{}, &mockDeactivateAccountTokenUC{}, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodPost, "/billing/account-tokens", nil)

	handler.Issue(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAccountTokenHandler_Deactivate(t *testing.T) {
	mockUC := &mockDeactivateAccountTokenUC{}
	handler := NewAccountTokenHandler(&mockIssueAccountTokenUC{}, mockUC, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodDelete, "/billing/account-tokens/tok-1", nil)
	testutil.SetAuthContext(c, 42)
	testutil.SetURLParam(c, "token", "tok-1")

	handler.Deactivate(c)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, uint(42), mockUC.lastCmd.UserID)
	assert.Equal(t, "tok-1", mockUC.lastCmd.Token)
}

func TestAccountTokenHandler_Deactivate_NotFound(t *testing.T) {
	mockUC := &mockDeactivateAccountTokenUC{err: errors.NewNotFoundError("account token not found")}
	handler := NewAccountTokenHandler(&mockIssueAccountTokenUC{}, mockUC, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodDelete, "/billing/account-tokens/unknown", nil)
	testutil.SetAuthContext(c, 42)
	testutil.SetURLParam(c, "token", "unknown")

	handler.Deactivate(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

type mockLinkExternalAccountUC struct {
	err     error
	lastCmd billingUsecases.LinkExternalAccountCommand
}

func (m *mockLinkExternalAccountUC) Execute(ctx context.Context, cmd billingUsecases.LinkExternalAccountCommand) error {
	m.lastCmd = cmd
	return m.err
}

func TestAccountLinkHandler_Create(t *testing.T) {
	mockUC := &mockLinkExternalAccountUC{}
	handler := NewAccountLinkHandler(mockUC, testutil.NewMockLogger())

	reqBody := CreateAccountLinkRequest{
		Provider:   "stripe",
		Kind:       "customer",
		ExternalID: "cus_100",
	}
	c, w := testutil.NewTestContext(http.MethodPost, "/billing/links", reqBody)
	testutil.SetAuthContext(c, 42)

	handler.Create(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, uint(42), mockUC.lastCmd.UserID)
	assert.Equal(t, "stripe", mockUC.lastCmd.Provider)
	assert.Equal(t, "customer", mockUC.lastCmd.Kind)
	assert.Equal(t, "cus_100", mockUC.lastCmd.ExternalID)
}

func TestAccountLinkHandler_Create_InvalidKind(t *testing.T) {
	handler := NewAccountLinkHandler(&mockLinkExternalAccountUC{}, testutil.NewMockLogger())

	reqBody := CreateAccountLinkRequest{
		Provider:   "google_play",
		Kind:       "email",
		ExternalID: "someone@example.com",
	}
	c, w := testutil.NewTestContext(http.MethodPost, "/billing/links", reqBody)
	testutil.SetAuthContext(c, 42)

	handler.Create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAccountLinkHandler_Create_UseCaseError(t *testing.T) {
	mockUC := &mockLinkExternalAccountUC{err: errors.NewValidationError("unknown provider")}
	handler := NewAccountLinkHandler(mockUC, testutil.NewMockLogger())

	reqBody := CreateAccountLinkRequest{
		Provider:   "paddle",
		Kind:       "customer",
		ExternalID: "cus_999",
	}
	c, w := testutil.NewTestContext(http.MethodPost, "/billing/links", reqBody)
	testutil.SetAuthContext(c, 42)

	handler.Create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	assert.False(t, resp.Success)
}
