package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	billingUsecases "github.com/solacehq/solace/internal/application/billing/usecases"
	"github.com/solacehq/solace/internal/domain/billing"
	vo "github.com/solacehq/solace/internal/domain/billing/valueobjects"
	"github.com/solacehq/solace/internal/interfaces/http/handlers/testutil"
	"github.com/solacehq/solace/internal/shared/errors"
)

type mockApplyNotificationUC struct {
	result  *billingUsecases.ApplyNotificationResult
	err     error
	lastCmd billingUsecases.ApplyNotificationCommand
}

func (m *mockApplyNotificationUC) Execute(ctx context.Context, cmd billingUsecases.ApplyNotificationCommand) (*billingUsecases.ApplyNotificationResult, error) {
	m.lastCmd = cmd
	return m.result, m.err
}

func TestWebhookHandler_Applied(t *testing.T) {
	mockUC := &mockApplyNotificationUC{
		result: &billingUsecases.ApplyNotificationResult{
			Outcome:  billing.OutcomeApplied,
			EventSID: "evt_123",
		},
	}
	handler := NewWebhookHandler(mockUC, testutil.NewMockLogger())

	payload := []byte(`{"id":"evt_1","type":"customer.subscription.updated"}`)
	c, w := testutil.NewRawTestContext(http.MethodPost, "/billing/webhooks/stripe", payload)

	handler.HandleStripe(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, vo.ProviderStripe, mockUC.lastCmd.Provider)
	assert.Equal(t, payload, mockUC.lastCmd.Payload)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	assert.True(t, resp.Success)
	assert.Contains(t, string(resp.Data), "applied")
}

func TestWebhookHandler_QuarantinedStillAcknowledged(t *testing.T) {
	mockUC := &mockApplyNotificationUC{
		result: &billingUsecases.ApplyNotificationResult{
			Outcome:  billing.OutcomeQuarantinedUnlinked,
			EventSID: "evt_456",
		},
	}
	handler := NewWebhookHandler(mockUC, testutil.NewMockLogger())

	c, w := testutil.NewRawTestContext(http.MethodPost, "/billing/webhooks/google", []byte(`{"message":{}}`))

	handler.HandleGooglePlay(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, vo.ProviderGooglePlay, mockUC.lastCmd.Provider)
}

func TestWebhookHandler_MalformedPayloadStillAcknowledged(t *testing.T) {
	mockUC := &mockApplyNotificationUC{
		result: &billingUsecases.ApplyNotificationResult{
			Outcome:  billing.OutcomeRejectedMalformed,
			EventSID: "evt_789",
		},
	}
	handler := NewWebhookHandler(mockUC, testutil.NewMockLogger())

	c, w := testutil.NewRawTestContext(http.MethodPost, "/billing/webhooks/apple", []byte(`not json`))

	handler.HandleAppleStore(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	assert.True(t, resp.Success)
	assert.Contains(t, string(resp.Data), "rejected_malformed")
}

func TestWebhookHandler_ValidationError(t *testing.T) {
	mockUC := &mockApplyNotificationUC{
		err: errors.NewValidationError("unsupported provider: paddle"),
	}
	handler := NewWebhookHandler(mockUC, testutil.NewMockLogger())

	c, w := testutil.NewRawTestContext(http.MethodPost, "/billing/webhooks/apple", []byte(`{}`))

	handler.HandleAppleStore(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	assert.False(t, resp.Success)
}

func TestWebhookHandler_InfrastructureFailure(t *testing.T) {
	mockUC := &mockApplyNotificationUC{err: assert.AnError}
	handler := NewWebhookHandler(mockUC, testutil.NewMockLogger())

	c, w := testutil.NewRawTestContext(http.MethodPost, "/billing/webhooks/stripe", []byte(`{"id":"evt_1"}`))

	handler.HandleStripe(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	assert.False(t, resp.Success)
}
