// Package biztime provides time utilities for the billing core.
// All storage and transport use UTC. Implicit Local timezone is prohibited:
// provider notification timestamps arrive as Unix milliseconds or seconds
// and are normalized to UTC before they touch persistence.
package biztime

import "time"

// NowUTC returns current time in UTC.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// FromUnixMillis converts a Unix millisecond timestamp (the format used by
// both app-store providers) to UTC. Zero input yields the zero time.
func FromUnixMillis(ms int64) time.Time {
	if ms == 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms).UTC()
}

// FromUnixSeconds converts a Unix second timestamp to UTC. Zero input yields
// the zero time.
func FromUnixSeconds(sec int64) time.Time {
	if sec == 0 {
		return time.Time{}
	}
	return time.Unix(sec, 0).UTC()
}

// EqualNullable compares two nullable timestamps for equality at second
// precision, which is the precision providers deliver expiry times at.
func EqualNullable(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Truncate(time.Second).Equal(b.Truncate(time.Second))
}
