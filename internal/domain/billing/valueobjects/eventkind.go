package valueobjects

// EventKind is the canonical, provider-independent category of a billing
// notification. Per-provider normalizers map each provider's vocabulary of
// transaction/renewal/refund states into this one set.
type EventKind string

const (
	KindInitialPurchase      EventKind = "initial_purchase"
	KindRenewed              EventKind = "renewed"
	KindCancelled            EventKind = "cancelled"
	KindExpired              EventKind = "expired"
	KindRefunded             EventKind = "refunded"
	KindGraceEntered         EventKind = "grace_period_entered"
	KindBillingRetry         EventKind = "billing_retry"
	KindRenewalStatusChanged EventKind = "renewal_status_changed"
)

func (k EventKind) String() string {
	return string(k)
}

func (k EventKind) IsValid() bool {
	return ValidEventKinds[k]
}

var ValidEventKinds = map[EventKind]bool{
	KindInitialPurchase:      true,
	KindRenewed:              true,
	KindCancelled:            true,
	KindExpired:              true,
	KindRefunded:             true,
	KindGraceEntered:         true,
	KindBillingRetry:         true,
	KindRenewalStatusChanged: true,
}
