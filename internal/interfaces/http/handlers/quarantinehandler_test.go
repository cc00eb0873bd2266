package handlers

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	billingUsecases "github.com/solacehq/solace/internal/application/billing/usecases"
	"github.com/solacehq/solace/internal/domain/billing"
	"github.com/solacehq/solace/internal/interfaces/http/handlers/testutil"
	"github.com/solacehq/solace/internal/shared/errors"
)

type mockListQuarantinedEventsUC struct {
	result    []billingUsecases.WebhookEventDTO
	err       error
	lastQuery billingUsecases.ListQuarantinedEventsQuery
}

func (m *mockListQuarantinedEventsUC) Execute(ctx context.Context, query billingUsecases.ListQuarantinedEventsQuery) ([]billingUsecases.WebhookEventDTO, error) {
	m.lastQuery = query
	return m.result, m.err
}

type mockReplayWebhookEventUC struct {
	result  *billingUsecases.ReplayWebhookEventResult
	err     error
	lastCmd billingUsecases.ReplayWebhookEventCommand
}

func (m *mockReplayWebhookEventUC) Execute(ctx context.Context, cmd billingUsecases.ReplayWebhookEventCommand) (*billingUsecases.ReplayWebhookEventResult, error) {
	m.lastCmd = cmd
	return m.result, m.err
}

func TestQuarantineHandler_List(t *testing.T) {
	mockUC := &mockListQuarantinedEventsUC{
		result: []billingUsecases.WebhookEventDTO{
			{
				ID:                    7,
				SID:                   "evt_7",
				Provider:              "google_play",
				Kind:                  "initial_purchase",
				OriginalTransactionID: "GPA.1234-5678",
				Outcome:               "quarantined_unlinked",
				ReceivedAt:            time.Now().UTC(),
			},
		},
	}
	handler := NewQuarantineHandler(mockUC, &mockReplayWebhookEventUC{}, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodGet, "/admin/billing/quarantine", nil)

	handler.List(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, mockUC.lastQuery.Outcome)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	assert.True(t, resp.Success)
	assert.Contains(t, string(resp.Data), "GPA.1234-5678")
}

func TestQuarantineHandler_List_OutcomeFilter(t *testing.T) {
	mockUC := &mockListQuarantinedEventsUC{}
	handler := NewQuarantineHandler(mockUC, &mockReplayWebhookEventUC{}, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodGet, "/admin/billing/quarantine", nil)
	testutil.SetQueryParams(c, map[string]string{"outcome": "rejected_unknown_product"})

	handler.List(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "rejected_unknown_product", mockUC.lastQuery.Outcome)
}

func TestQuarantineHandler_List_InvalidOutcome(t *testing.T) {
	mockUC := &mockListQuarantinedEventsUC{err: errors.NewValidationError("unknown outcome")}
	handler := NewQuarantineHandler(mockUC, &mockReplayWebhookEventUC{}, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodGet, "/admin/billing/quarantine", nil)
	testutil.SetQueryParams(c, map[string]string{"outcome": "bogus"})

	handler.List(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestQuarantineHandler_Replay(t *testing.T) {
	mockUC := &mockReplayWebhookEventUC{
		result: &billingUsecases.ReplayWebhookEventResult{
			Outcome:    billing.OutcomeApplied,
			LineageSID: "lin_9",
		},
	}
	handler := NewQuarantineHandler(&mockListQuarantinedEventsUC{}, mockUC, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodPost, "/admin/billing/quarantine/7/replay", nil)
	testutil.SetURLParam(c, "id", "7")

	handler.Replay(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, uint(7), mockUC.lastCmd.EventID)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	assert.True(t, resp.Success)
	assert.Contains(t, string(resp.Data), "applied")
	assert.Contains(t, string(resp.Data), "lin_9")
}

func TestQuarantineHandler_Replay_InvalidID(t *testing.T) {
	handler := NewQuarantineHandler(&mockListQuarantinedEventsUC{}, &mockReplayWebhookEventUC{}, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodPost, "/admin/billing/quarantine/abc/replay", nil)
	testutil.SetURLParam(c, "id", "abc")

	handler.Replay(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestQuarantineHandler_Replay_NotFound(t *testing.T) {
	mockUC := &mockReplayWebhookEventUC{err: errors.NewNotFoundError("webhook event not found")}
	handler := NewQuarantineHandler(&mockListQuarantinedEventsUC{}, mockUC, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodPost, "/admin/billing/quarantine/99/replay", nil)
	testutil.SetURLParam(c, "id", "99")

	handler.Replay(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
