package providers

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"

	"github.com/solacehq/solace/internal/domain/billing"
	vo "github.com/solacehq/solace/internal/domain/billing/valueobjects"
	"github.com/solacehq/solace/internal/shared/biztime"
)

// GooglePlayNormalizer maps Play real-time developer notifications to
// canonical events. Notifications arrive as Pub/Sub push envelopes whose
// data field base64-encodes the developer notification. The upstream
// receiver enriches the notification with the subscription purchase resource
// (expiry, order id, obfuscated identifiers) before it reaches the engine,
// because the raw RTDN carries only the purchase token and a type code.
type GooglePlayNormalizer struct{}

func NewGooglePlayNormalizer() *GooglePlayNormalizer {
	return &GooglePlayNormalizer{}
}

func (n *GooglePlayNormalizer) Provider() vo.Provider {
	return vo.ProviderGooglePlay
}

// Play RTDN subscription notification type codes.
const (
	googleSubscriptionRecovered     = 1
	googleSubscriptionRenewed       = 2
	googleSubscriptionCanceled      = 3
	googleSubscriptionPurchased     = 4
	googleSubscriptionOnHold        = 5
	googleSubscriptionInGracePeriod = 6
	googleSubscriptionRestarted     = 7
	googleSubscriptionRevoked       = 12
	googleSubscriptionExpired       = 13
)

type googlePushEnvelope struct {
	Message struct {
		Data string `json:"data"`
	} `json:"message"`
}

type googleDeveloperNotification struct {
	PackageName              string `json:"packageName"`
	SubscriptionNotification *struct {
		NotificationType int    `json:"notificationType"`
		PurchaseToken    string `json:"purchaseToken"`
		SubscriptionID   string `json:"subscriptionId"`
	} `json:"subscriptionNotification"`
	SubscriptionPurchase *struct {
		OrderID                     string `json:"orderId"`
		ExpiryTimeMillis            int64  `json:"expiryTimeMillis,string"`
		AutoRenewing                bool   `json:"autoRenewing"`
		ObfuscatedExternalAccountID string `json:"obfuscatedExternalAccountId"`
		ObfuscatedExternalProfileID string `json:"obfuscatedExternalProfileId"`
	} `json:"subscriptionPurchase"`
	TestNotification *struct {
		Version string `json:"version"`
	} `json:"testNotification"`
}

func (n *GooglePlayNormalizer) Normalize(payload []byte) (*billing.NotificationEvent, error) {
	var envelope googlePushEnvelope
	if err := json.Unmarshal(payload, &envelope); err != nil {
		return nil, fmt.Errorf("invalid push envelope: %w", err)
	}
	if envelope.Message.Data == "" {
		return nil, fmt.Errorf("push envelope has no data")
	}

	decoded, err := base64.StdEncoding.DecodeString(envelope.Message.Data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode envelope data: %w", err)
	}

	var notification googleDeveloperNotification
	if err := json.Unmarshal(decoded, &notification); err != nil {
		return nil, fmt.Errorf("invalid developer notification: %w", err)
	}

	if notification.TestNotification != nil {
		return nil, fmt.Errorf("%w: google test notification", billing.ErrUnsupportedNotification)
	}
	if notification.SubscriptionNotification == nil {
		return nil, fmt.Errorf("%w: google notification without subscription state", billing.ErrUnsupportedNotification)
	}

	sub := notification.SubscriptionNotification
	kind, err := googleEventKind(sub.NotificationType)
	if err != nil {
		return nil, err
	}

	latestTxID := sub.PurchaseToken
	var expiresAt *time.Time
	autoRenew := false
	identifiers := billing.Identifiers{}
	var purchaseJSON []byte

	if purchase := notification.SubscriptionPurchase; purchase != nil {
		if purchase.OrderID != "" {
			latestTxID = purchase.OrderID
		}
		if purchase.ExpiryTimeMillis > 0 {
			t := biztime.FromUnixMillis(purchase.ExpiryTimeMillis)
			expiresAt = &t
		}
		autoRenew = purchase.AutoRenewing
		identifiers.ObfuscatedAccountID = purchase.ObfuscatedExternalAccountID
		identifiers.ObfuscatedProfileID = purchase.ObfuscatedExternalProfileID
		purchaseJSON, _ = json.Marshal(purchase)
	}

	event := &billing.NotificationEvent{
		Provider:              vo.ProviderGooglePlay,
		Environment:           vo.EnvironmentProduction,
		Kind:                  kind,
		ProviderEventType:     fmt.Sprintf("subscription_notification.%d", sub.NotificationType),
		OriginalTransactionID: sub.PurchaseToken,
		LatestTransactionID:   latestTxID,
		StoreProductID:        sub.SubscriptionID,
		ExpiresAt:             expiresAt,
		AutoRenewEnabled:      autoRenew,
		Identifiers:           identifiers,
		RawPayload:            payload,
		RawTransactionInfo:    purchaseJSON,
	}

	if err := event.Validate(); err != nil {
		return nil, fmt.Errorf("normalized event invalid: %w", err)
	}
	return event, nil
}

func googleEventKind(notificationType int) (vo.EventKind, error) {
	switch notificationType {
	case googleSubscriptionPurchased:
		return vo.KindInitialPurchase, nil
	case googleSubscriptionRecovered, googleSubscriptionRenewed, googleSubscriptionRestarted:
		return vo.KindRenewed, nil
	case googleSubscriptionCanceled:
		return vo.KindCancelled, nil
	case googleSubscriptionOnHold:
		return vo.KindBillingRetry, nil
	case googleSubscriptionInGracePeriod:
		return vo.KindGraceEntered, nil
	case googleSubscriptionRevoked:
		return vo.KindRefunded, nil
	case googleSubscriptionExpired:
		return vo.KindExpired, nil
	default:
		return "", fmt.Errorf("%w: google notification type %d", billing.ErrUnsupportedNotification, notificationType)
	}
}
