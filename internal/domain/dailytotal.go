package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the calendar-date format used for daily-limit tracking.
// Daily totals reset at the server-local date boundary; callers supply the
// date explicitly so the reset never depends on a clock read deep in the core.
const DateLayout = "2006-01-02"

// Date normalizes a point in time to the tracking date string.
func Date(t time.Time) string {
	return t.Format(DateLayout)
}

// DailyTotal accumulates the amount debited from one account on one calendar date.
// There is at most one row per (account, date); the total never decreases within a day.
type DailyTotal struct {
	AccountID        int64           `json:"account_id"`
	Date             string          `json:"date"`
	TotalTransferred decimal.Decimal `json:"total_transferred"`
}

// Remaining returns how much may still be debited today under the given daily limit,
// never negative.
func (d DailyTotal) Remaining(dailyLimit decimal.Decimal) decimal.Decimal {
	remaining := dailyLimit.Sub(d.TotalTransferred)
	if remaining.IsNegative() {
		return decimal.Zero
	}

	return remaining
}

// WouldExceed reports whether debiting amount on top of today's total breaks the daily limit.
func (d DailyTotal) WouldExceed(dailyLimit, amount decimal.Decimal) bool {
	return d.TotalTransferred.Add(amount).GreaterThan(dailyLimit)
}
