package providers

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solacehq/solace/internal/domain/billing"
	vo "github.com/solacehq/solace/internal/domain/billing/valueobjects"
)

func signUnchecked(t *testing.T, claims interface{}) string {
	t.Helper()
	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"ES256"}`))
	body, err := json.Marshal(claims)
	require.NoError(t, err)
	return fmt.Sprintf("%s.%s.sig", header, base64.RawURLEncoding.EncodeToString(body))
}

func appleNotification(t *testing.T, notificationType, subtype string, tx, renewal map[string]interface{}) []byte {
	t.Helper()

	data := map[string]interface{}{
		"environment": "Production",
	}
	if tx != nil {
		data["signedTransactionInfo"] = signUnchecked(t, tx)
	}
	if renewal != nil {
		data["signedRenewalInfo"] = signUnchecked(t, renewal)
	}

	payload := map[string]interface{}{
		"notificationType": notificationType,
		"data":             data,
	}
	if subtype != "" {
		payload["subtype"] = subtype
	}

	body, err := json.Marshal(map[string]string{
		"signedPayload": signUnchecked(t, payload),
	})
	require.NoError(t, err)
	return body
}

func TestAppleStoreNormalizer_Normalize(t *testing.T) {
	n := NewAppleStoreNormalizer()
	expiresMs := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC).UnixMilli()

	tx := map[string]interface{}{
		"originalTransactionId": "100000001",
		"transactionId":         "100000002",
		"productId":             "com.solace.premium.monthly",
		"expiresDate":           expiresMs,
		"appAccountToken":       "7389a31a-fb6d-4d16-a3b6-9f0ac9f7d9b1",
	}
	renewal := map[string]interface{}{
		"autoRenewStatus": 1,
	}

	t.Run("DID_RENEW maps to renewed", func(t *testing.T) {
		event, err := n.Normalize(appleNotification(t, "DID_RENEW", "", tx, renewal))
		require.NoError(t, err)

		assert.Equal(t, vo.ProviderAppleStore, event.Provider)
		assert.Equal(t, vo.EnvironmentProduction, event.Environment)
		assert.Equal(t, vo.KindRenewed, event.Kind)
		assert.Equal(t, "100000001", event.OriginalTransactionID)
		assert.Equal(t, "100000002", event.LatestTransactionID)
		assert.Equal(t, "com.solace.premium.monthly", event.StoreProductID)
		require.NotNil(t, event.ExpiresAt)
		assert.Equal(t, expiresMs, event.ExpiresAt.UnixMilli())
		assert.True(t, event.AutoRenewEnabled)
		assert.Equal(t, "7389a31a-fb6d-4d16-a3b6-9f0ac9f7d9b1", event.Identifiers.AppAccountToken)
		assert.NotEmpty(t, event.RawPayload)
		assert.NotEmpty(t, event.RawTransactionInfo)
		assert.NotEmpty(t, event.RawRenewalInfo)
	})

	t.Run("notification type mapping", func(t *testing.T) {
		cases := []struct {
			notificationType string
			subtype          string
			want             vo.EventKind
		}{
			{"SUBSCRIBED", "INITIAL_BUY", vo.KindInitialPurchase},
			{"SUBSCRIBED", "RESUBSCRIBE", vo.KindRenewed},
			{"DID_FAIL_TO_RENEW", "GRACE_PERIOD", vo.KindGraceEntered},
			{"DID_FAIL_TO_RENEW", "", vo.KindBillingRetry},
			{"GRACE_PERIOD_EXPIRED", "", vo.KindBillingRetry},
			{"EXPIRED", "VOLUNTARY", vo.KindExpired},
			{"DID_CHANGE_RENEWAL_STATUS", "AUTO_RENEW_DISABLED", vo.KindRenewalStatusChanged},
			{"REFUND", "", vo.KindRefunded},
			{"REVOKE", "", vo.KindRefunded},
		}
		for _, tc := range cases {
			event, err := n.Normalize(appleNotification(t, tc.notificationType, tc.subtype, tx, renewal))
			require.NoError(t, err, "type %s subtype %s", tc.notificationType, tc.subtype)
			assert.Equal(t, tc.want, event.Kind, "type %s subtype %s", tc.notificationType, tc.subtype)
		}
	})

	t.Run("unsupported notification type", func(t *testing.T) {
		_, err := n.Normalize(appleNotification(t, "CONSUMPTION_REQUEST", "", tx, renewal))
		assert.ErrorIs(t, err, billing.ErrUnsupportedNotification)
	})

	t.Run("auto renew disabled reflected", func(t *testing.T) {
		event, err := n.Normalize(appleNotification(t, "DID_CHANGE_RENEWAL_STATUS", "AUTO_RENEW_DISABLED", tx,
			map[string]interface{}{"autoRenewStatus": 0}))
		require.NoError(t, err)
		assert.False(t, event.AutoRenewEnabled)
	})

	t.Run("sandbox environment", func(t *testing.T) {
		data := map[string]interface{}{
			"environment":           "Sandbox",
			"signedTransactionInfo": signUnchecked(t, tx),
		}
		body, err := json.Marshal(map[string]string{
			"signedPayload": signUnchecked(t, map[string]interface{}{
				"notificationType": "DID_RENEW",
				"data":             data,
			}),
		})
		require.NoError(t, err)

		event, err := n.Normalize(body)
		require.NoError(t, err)
		assert.Equal(t, vo.EnvironmentSandbox, event.Environment)
	})

	t.Run("malformed body rejected", func(t *testing.T) {
		_, err := n.Normalize([]byte(`not json`))
		assert.Error(t, err)

		_, err = n.Normalize([]byte(`{"signedPayload":"onesegment"}`))
		assert.Error(t, err)

		_, err = n.Normalize([]byte(`{}`))
		assert.Error(t, err)
	})

	t.Run("ignores unrelated payload fields", func(t *testing.T) {
		txExtra := map[string]interface{}{
			"originalTransactionId": "100000001",
			"transactionId":         "100000002",
			"productId":             "com.solace.premium.monthly",
			"expiresDate":           expiresMs,
			"bundleId":              "com.solace.app",
			"storefront":            "USA",
			"price":                 9990,
		}
		event, err := n.Normalize(appleNotification(t, "DID_RENEW", "", txExtra, renewal))
		require.NoError(t, err)
		assert.Equal(t, vo.KindRenewed, event.Kind)
	})
}
