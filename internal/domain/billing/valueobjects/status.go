package valueobjects

// LineageStatus is the canonical subscription lineage status.
type LineageStatus string

const (
	StatusPending      LineageStatus = "pending"
	StatusActive       LineageStatus = "active"
	StatusCancelled    LineageStatus = "cancelled"
	StatusExpired      LineageStatus = "expired"
	StatusPastDue      LineageStatus = "past_due"
	StatusInGrace      LineageStatus = "in_grace"
	StatusBillingRetry LineageStatus = "billing_retry"
)

func (s LineageStatus) String() string {
	return string(s)
}

// GrantsEntitlement reports whether a lineage in this status still entitles
// the owning user to paid access. Grace and billing-retry are soft-degraded
// but still entitled.
func (s LineageStatus) GrantsEntitlement() bool {
	return s == StatusActive || s == StatusInGrace || s == StatusBillingRetry
}

// transitions is the canonical transition table. A (status, kind) pair absent
// from the table keeps the current status; renewal always reactivates, which
// covers resubscription after voluntary cancellation within the paid period.
var transitions = map[LineageStatus]map[EventKind]LineageStatus{
	StatusPending: {
		KindInitialPurchase: StatusActive,
		KindRenewed:         StatusActive,
		KindCancelled:       StatusCancelled,
		KindExpired:         StatusExpired,
		KindRefunded:        StatusExpired,
		KindGraceEntered:    StatusInGrace,
		KindBillingRetry:    StatusBillingRetry,
	},
	StatusActive: {
		KindRenewed:      StatusActive,
		KindCancelled:    StatusCancelled,
		KindExpired:      StatusExpired,
		KindRefunded:     StatusExpired,
		KindGraceEntered: StatusInGrace,
		KindBillingRetry: StatusBillingRetry,
	},
	StatusInGrace: {
		KindRenewed:      StatusActive,
		KindCancelled:    StatusCancelled,
		KindExpired:      StatusExpired,
		KindRefunded:     StatusExpired,
		KindGraceEntered: StatusInGrace,
		KindBillingRetry: StatusBillingRetry,
	},
	StatusBillingRetry: {
		KindRenewed:      StatusActive,
		KindCancelled:    StatusCancelled,
		KindExpired:      StatusExpired,
		KindRefunded:     StatusExpired,
		KindGraceEntered: StatusInGrace,
		KindBillingRetry: StatusBillingRetry,
	},
	StatusCancelled: {
		KindRenewed:   StatusActive,
		KindCancelled: StatusCancelled,
		KindExpired:   StatusExpired,
		KindRefunded:  StatusExpired,
	},
	StatusExpired: {
		KindRenewed: StatusActive,
		KindExpired: StatusExpired,
	},
}

// Next returns the status after applying an event of the given kind. The
// second return value reports whether the table defines a transition for the
// pair; when it does not, the current status is kept.
func (s LineageStatus) Next(kind EventKind) (LineageStatus, bool) {
	next, ok := transitions[s][kind]
	if !ok {
		return s, false
	}
	return next, true
}

func (s LineageStatus) IsValid() bool {
	return ValidStatuses[s]
}

var ValidStatuses = map[LineageStatus]bool{
	StatusPending:      true,
	StatusActive:       true,
	StatusCancelled:    true,
	StatusExpired:      true,
	StatusPastDue:      true,
	StatusInGrace:      true,
	StatusBillingRetry: true,
}
