package providers

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/solacehq/solace/internal/domain/billing"
	vo "github.com/solacehq/solace/internal/domain/billing/valueobjects"
	"github.com/solacehq/solace/internal/shared/biztime"
)

// StripeNormalizer maps card processor webhook events to canonical events.
// The processor's subscription id is the lineage key; invoice ids serve as
// the per-delivery transaction id on billing events.
type StripeNormalizer struct{}

func NewStripeNormalizer() *StripeNormalizer {
	return &StripeNormalizer{}
}

func (n *StripeNormalizer) Provider() vo.Provider {
	return vo.ProviderStripe
}

type stripeEvent struct {
	Type     string `json:"type"`
	Livemode bool   `json:"livemode"`
	Data     struct {
		Object json.RawMessage `json:"object"`
	} `json:"data"`
}

type stripeSubscriptionObject struct {
	ID                string `json:"id"`
	Customer          string `json:"customer"`
	Status            string `json:"status"`
	CancelAtPeriodEnd bool   `json:"cancel_at_period_end"`
	CurrentPeriodEnd  int64  `json:"current_period_end"`
	Items             struct {
		Data []struct {
			Price struct {
				ID string `json:"id"`
			} `json:"price"`
		} `json:"data"`
	} `json:"items"`
}

type stripeInvoiceObject struct {
	ID           string `json:"id"`
	Customer     string `json:"customer"`
	Subscription string `json:"subscription"`
	PeriodEnd    int64  `json:"period_end"`
	Lines        struct {
		Data []struct {
			Subscription string `json:"subscription"`
			PeriodEnd    int64  `json:"period_end"`
			Price        struct {
				ID string `json:"id"`
			} `json:"price"`
			Period struct {
				End int64 `json:"end"`
			} `json:"period"`
		} `json:"data"`
	} `json:"lines"`
}

func (n *StripeNormalizer) Normalize(payload []byte) (*billing.NotificationEvent, error) {
	var event stripeEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return nil, fmt.Errorf("invalid event body: %w", err)
	}
	if event.Type == "" {
		return nil, fmt.Errorf("event has no type")
	}

	environment := vo.EnvironmentSandbox
	if event.Livemode {
		environment = vo.EnvironmentProduction
	}

	switch event.Type {
	case "customer.subscription.created",
		"customer.subscription.updated",
		"customer.subscription.deleted":
		return n.fromSubscription(payload, event, environment)
	case "invoice.paid", "invoice.payment_failed":
		return n.fromInvoice(payload, event, environment)
	default:
		return nil, fmt.Errorf("%w: card processor event type %s", billing.ErrUnsupportedNotification, event.Type)
	}
}

func (n *StripeNormalizer) fromSubscription(payload []byte, event stripeEvent, environment vo.Environment) (*billing.NotificationEvent, error) {
	var sub stripeSubscriptionObject
	if err := json.Unmarshal(event.Data.Object, &sub); err != nil {
		return nil, fmt.Errorf("invalid subscription object: %w", err)
	}

	var kind vo.EventKind
	switch event.Type {
	case "customer.subscription.created":
		kind = vo.KindInitialPurchase
	case "customer.subscription.deleted":
		kind = vo.KindExpired
	default:
		switch sub.Status {
		case "past_due":
			kind = vo.KindGraceEntered
		case "unpaid":
			kind = vo.KindBillingRetry
		case "canceled":
			kind = vo.KindCancelled
		default:
			kind = vo.KindRenewalStatusChanged
		}
	}

	priceID := ""
	if len(sub.Items.Data) > 0 {
		priceID = sub.Items.Data[0].Price.ID
	}

	var expiresAt *time.Time
	if sub.CurrentPeriodEnd > 0 {
		t := biztime.FromUnixSeconds(sub.CurrentPeriodEnd)
		expiresAt = &t
	}

	out := &billing.NotificationEvent{
		Provider:              vo.ProviderStripe,
		Environment:           environment,
		Kind:                  kind,
		ProviderEventType:     event.Type,
		OriginalTransactionID: sub.ID,
		LatestTransactionID:   sub.ID,
		StoreProductID:        priceID,
		ExpiresAt:             expiresAt,
		AutoRenewEnabled:      !sub.CancelAtPeriodEnd && sub.Status != "canceled",
		Identifiers: billing.Identifiers{
			CustomerID: sub.Customer,
		},
		RawPayload:         payload,
		RawTransactionInfo: event.Data.Object,
	}

	if err := out.Validate(); err != nil {
		return nil, fmt.Errorf("normalized event invalid: %w", err)
	}
	return out, nil
}

func (n *StripeNormalizer) fromInvoice(payload []byte, event stripeEvent, environment vo.Environment) (*billing.NotificationEvent, error) {
	var invoice stripeInvoiceObject
	if err := json.Unmarshal(event.Data.Object, &invoice); err != nil {
		return nil, fmt.Errorf("invalid invoice object: %w", err)
	}

	subscriptionID := invoice.Subscription
	priceID := ""
	periodEnd := invoice.PeriodEnd
	if len(invoice.Lines.Data) > 0 {
		line := invoice.Lines.Data[0]
		if subscriptionID == "" {
			subscriptionID = line.Subscription
		}
		priceID = line.Price.ID
		if line.Period.End > 0 {
			periodEnd = line.Period.End
		}
	}
	if subscriptionID == "" {
		return nil, fmt.Errorf("%w: invoice not tied to a subscription", billing.ErrUnsupportedNotification)
	}

	kind := vo.KindRenewed
	autoRenew := true
	if event.Type == "invoice.payment_failed" {
		kind = vo.KindBillingRetry
	}

	var expiresAt *time.Time
	if periodEnd > 0 {
		t := biztime.FromUnixSeconds(periodEnd)
		expiresAt = &t
	}

	out := &billing.NotificationEvent{
		Provider:              vo.ProviderStripe,
		Environment:           environment,
		Kind:                  kind,
		ProviderEventType:     event.Type,
		OriginalTransactionID: subscriptionID,
		LatestTransactionID:   invoice.ID,
		StoreProductID:        priceID,
		ExpiresAt:             expiresAt,
		AutoRenewEnabled:      autoRenew,
		Identifiers: billing.Identifiers{
			CustomerID: invoice.Customer,
		},
		RawPayload:         payload,
		RawTransactionInfo: event.Data.Object,
	}

	if err := out.Validate(); err != nil {
		return nil, fmt.Errorf("normalized event invalid: %w", err)
	}
	return out, nil
}
