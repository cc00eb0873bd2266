package providers

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/solacehq/solace/internal/domain/billing"
	vo "github.com/solacehq/solace/internal/domain/billing/valueobjects"
	"github.com/solacehq/solace/internal/shared/biztime"
)

// AppleStoreNormalizer maps App Store Server Notifications V2 to canonical
// events. The notification body wraps a JWS whose claims wrap two more JWS
// blobs (transaction info and renewal info); the gateway has already verified
// the signatures, so only the claim segments are decoded here.
type AppleStoreNormalizer struct{}

func NewAppleStoreNormalizer() *AppleStoreNormalizer {
	return &AppleStoreNormalizer{}
}

func (n *AppleStoreNormalizer) Provider() vo.Provider {
	return vo.ProviderAppleStore
}

type appleNotificationBody struct {
	SignedPayload string `json:"signedPayload"`
}

type appleNotificationPayload struct {
	NotificationType string `json:"notificationType"`
	Subtype          string `json:"subtype"`
	Data             struct {
		Environment           string `json:"environment"`
		SignedTransactionInfo string `json:"signedTransactionInfo"`
		SignedRenewalInfo     string `json:"signedRenewalInfo"`
	} `json:"data"`
}

type appleTransactionInfo struct {
	OriginalTransactionID string `json:"originalTransactionId"`
	TransactionID         string `json:"transactionId"`
	ProductID             string `json:"productId"`
	ExpiresDate           int64  `json:"expiresDate"`
	AppAccountToken       string `json:"appAccountToken"`
}

type appleRenewalInfo struct {
	AutoRenewStatus        int   `json:"autoRenewStatus"`
	GracePeriodExpiresDate int64 `json:"gracePeriodExpiresDate"`
}

func (n *AppleStoreNormalizer) Normalize(payload []byte) (*billing.NotificationEvent, error) {
	var body appleNotificationBody
	if err := json.Unmarshal(payload, &body); err != nil {
		return nil, fmt.Errorf("invalid notification body: %w", err)
	}
	if body.SignedPayload == "" {
		return nil, fmt.Errorf("notification body has no signedPayload")
	}

	claims, err := decodeJWSClaims(body.SignedPayload)
	if err != nil {
		return nil, fmt.Errorf("failed to decode signed payload: %w", err)
	}

	var notification appleNotificationPayload
	if err := json.Unmarshal(claims, &notification); err != nil {
		return nil, fmt.Errorf("invalid notification payload: %w", err)
	}

	kind, err := appleEventKind(notification.NotificationType, notification.Subtype)
	if err != nil {
		return nil, err
	}

	if notification.Data.SignedTransactionInfo == "" {
		return nil, fmt.Errorf("notification has no transaction info")
	}
	txClaims, err := decodeJWSClaims(notification.Data.SignedTransactionInfo)
	if err != nil {
		return nil, fmt.Errorf("failed to decode transaction info: %w", err)
	}
	var tx appleTransactionInfo
	if err := json.Unmarshal(txClaims, &tx); err != nil {
		return nil, fmt.Errorf("invalid transaction info: %w", err)
	}

	var renewalClaims []byte
	var renewal appleRenewalInfo
	if notification.Data.SignedRenewalInfo != "" {
		renewalClaims, err = decodeJWSClaims(notification.Data.SignedRenewalInfo)
		if err != nil {
			return nil, fmt.Errorf("failed to decode renewal info: %w", err)
		}
		if err := json.Unmarshal(renewalClaims, &renewal); err != nil {
			return nil, fmt.Errorf("invalid renewal info: %w", err)
		}
	}

	var expiresAt *time.Time
	if tx.ExpiresDate > 0 {
		t := biztime.FromUnixMillis(tx.ExpiresDate)
		expiresAt = &t
	}

	event := &billing.NotificationEvent{
		Provider:              vo.ProviderAppleStore,
		Environment:           appleEnvironment(notification.Data.Environment),
		Kind:                  kind,
		ProviderEventType:     appleProviderEventType(notification.NotificationType, notification.Subtype),
		OriginalTransactionID: tx.OriginalTransactionID,
		LatestTransactionID:   tx.TransactionID,
		StoreProductID:        tx.ProductID,
		ExpiresAt:             expiresAt,
		AutoRenewEnabled:      renewal.AutoRenewStatus == 1,
		Identifiers: billing.Identifiers{
			AppAccountToken: tx.AppAccountToken,
		},
		RawPayload:         payload,
		RawRenewalInfo:     renewalClaims,
		RawTransactionInfo: txClaims,
	}

	if err := event.Validate(); err != nil {
		return nil, fmt.Errorf("normalized event invalid: %w", err)
	}
	return event, nil
}

func appleProviderEventType(notificationType, subtype string) string {
	if subtype == "" {
		return notificationType
	}
	return notificationType + "." + subtype
}

func appleEventKind(notificationType, subtype string) (vo.EventKind, error) {
	switch notificationType {
	case "SUBSCRIBED":
		if subtype == "RESUBSCRIBE" {
			return vo.KindRenewed, nil
		}
		return vo.KindInitialPurchase, nil
	case "DID_RENEW":
		return vo.KindRenewed, nil
	case "DID_FAIL_TO_RENEW":
		if subtype == "GRACE_PERIOD" {
			return vo.KindGraceEntered, nil
		}
		return vo.KindBillingRetry, nil
	case "GRACE_PERIOD_EXPIRED":
		// Grace ended without recovery; the store keeps retrying billing.
		return vo.KindBillingRetry, nil
	case "EXPIRED":
		return vo.KindExpired, nil
	case "DID_CHANGE_RENEWAL_STATUS":
		return vo.KindRenewalStatusChanged, nil
	case "REFUND", "REVOKE":
		return vo.KindRefunded, nil
	default:
		return "", fmt.Errorf("%w: apple notification type %s", billing.ErrUnsupportedNotification, notificationType)
	}
}

func appleEnvironment(env string) vo.Environment {
	if strings.EqualFold(env, "Sandbox") {
		return vo.EnvironmentSandbox
	}
	return vo.EnvironmentProduction
}

// decodeJWSClaims extracts the claims segment of a compact JWS without
// re-verifying the signature.
func decodeJWSClaims(token string) ([]byte, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return nil, fmt.Errorf("malformed JWS: expected 3 segments, got %d", len(parts))
	}
	claims, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return nil, fmt.Errorf("malformed JWS claims segment: %w", err)
	}
	return claims, nil
}
