package reservation

import "time"

const DefaultRefundWindow = 24 * time.Hour

// RefundEligible reports whether cancelling at now still returns the credit.
// The boundary itself (exactly window before start) is eligible.
func RefundEligible(start, now time.Time, window time.Duration, skipTimeCheck bool) bool {
	if skipTimeCheck {
		return true
	}
	return start.Sub(now) >= window
}

// RefundWindow picks the instructor override when set.
func RefundWindow(overrideHours *int, fallback time.Duration) time.Duration {
	if overrideHours != nil && *overrideHours >= 0 {
		return time.Duration(*overrideHours) * time.Hour
	}
	if fallback <= 0 {
		return DefaultRefundWindow
	}
	return fallback
}
