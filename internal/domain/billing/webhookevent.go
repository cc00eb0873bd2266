package billing

import (
	"time"

	vo "github.com/solacehq/solace/internal/domain/billing/valueobjects"
	"github.com/solacehq/solace/internal/shared/biztime"
	"github.com/solacehq/solace/internal/shared/id"
)

// Outcome classifies the terminal result of applying one provider event.
type Outcome string

const (
	// OutcomeApplied means a transition (or a field-refreshing no-op
	// transition) was persisted.
	OutcomeApplied Outcome = "applied"
	// OutcomeNoOpDuplicate means the event had already been applied;
	// redelivery changed nothing. Expected and frequent.
	OutcomeNoOpDuplicate Outcome = "noop_duplicate"
	// OutcomeRejectedUnknownProduct means the catalog has no mapping for the
	// event's product; a configuration gap requiring catalog update and
	// manual replay.
	OutcomeRejectedUnknownProduct Outcome = "rejected_unknown_product"
	// OutcomeQuarantinedUnlinked means no user could be resolved for the
	// event's identifiers; the event waits for manual linking and replay.
	OutcomeQuarantinedUnlinked Outcome = "quarantined_unlinked"
	// OutcomeIgnoredUnsupported means the payload was well formed but carried
	// no subscription state, such as a store test ping. Kept for audit only.
	OutcomeIgnoredUnsupported Outcome = "ignored_unsupported"
	// OutcomeRejectedMalformed means the payload could not be normalized into
	// a canonical event. The raw bytes are kept so the failure can be
	// inspected, and the delivery is acknowledged so the provider stops
	// retrying a payload that will never parse.
	OutcomeRejectedMalformed Outcome = "rejected_malformed"
)

// WebhookEvent is the durable audit record of one received provider
// notification: the verbatim payload plus the outcome of applying it.
// Quarantined and rejected events live here until an operator replays them.
// Append-only; the only mutation is recording a replay outcome.
type WebhookEvent struct {
	ID                    uint
	SID                   string
	Provider              vo.Provider
	ProviderEventType     string
	Kind                  vo.EventKind
	OriginalTransactionID string
	Payload               []byte
	Outcome               Outcome
	ErrorDetail           string
	ReceivedAt            time.Time
	ReplayedAt            *time.Time
}

// NewWebhookEvent records a received notification with its outcome.
func NewWebhookEvent(provider vo.Provider, providerEventType string, kind vo.EventKind, originalTransactionID string, payload []byte, outcome Outcome, errorDetail string) *WebhookEvent {
	return &WebhookEvent{
		SID:                   id.MustGenerateWithPrefix(id.PrefixWebhookEvent, id.DefaultLength),
		Provider:              provider,
		ProviderEventType:     providerEventType,
		Kind:                  kind,
		OriginalTransactionID: originalTransactionID,
		Payload:               payload,
		Outcome:               outcome,
		ErrorDetail:           errorDetail,
		ReceivedAt:            biztime.NowUTC(),
	}
}

// MarkReplayed records the outcome of an administrative replay.
func (e *WebhookEvent) MarkReplayed(outcome Outcome) {
	now := biztime.NowUTC()
	e.Outcome = outcome
	e.ReplayedAt = &now
}
