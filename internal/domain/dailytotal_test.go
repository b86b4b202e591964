package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestDate(t *testing.T) {
	t.Parallel()

	at := time.Date(2024, 5, 1, 23, 59, 59, 0, time.Local)

	if got := Date(at); got != "2024-05-01" {
		t.Errorf("Date(%v) = %v, want 2024-05-01", at, got)
	}
}

func TestRemaining(t *testing.T) {
	t.Parallel()

	dailyLimit := decimal.NewFromInt(500)

	testCases := []struct {
		name             string
		totalTransferred int64
		want             int64
	}{
		{name: "NothingSpent", totalTransferred: 0, want: 500},
		{name: "PartiallySpent", totalTransferred: 450, want: 50},
		{name: "FullySpent", totalTransferred: 500, want: 0},
		{name: "OverspentAfterLimitCut", totalTransferred: 600, want: 0},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			total := DailyTotal{TotalTransferred: decimal.NewFromInt(tc.totalTransferred)}

			got := total.Remaining(dailyLimit)
			if !got.Equal(decimal.NewFromInt(tc.want)) {
				t.Errorf("Remaining(%v) = %v, want %v", dailyLimit, got, tc.want)
			}
		})
	}
}

func TestWouldExceed(t *testing.T) {
	t.Parallel()

	dailyLimit := decimal.NewFromInt(500)

	testCases := []struct {
		name             string
		totalTransferred int64
		amount           int64
		want             bool
	}{
		{name: "WellBelow", totalTransferred: 0, amount: 450, want: false},
		{name: "ExactlyAtLimit", totalTransferred: 450, amount: 50, want: false},
		{name: "OneOver", totalTransferred: 450, amount: 51, want: true},
		{name: "SingleLargeDebit", totalTransferred: 0, amount: 600, want: true},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			total := DailyTotal{TotalTransferred: decimal.NewFromInt(tc.totalTransferred)}

			got := total.WouldExceed(dailyLimit, decimal.NewFromInt(tc.amount))
			if got != tc.want {
				t.Errorf("WouldExceed(%v, %v) = %v, want %v", dailyLimit, tc.amount, got, tc.want)
			}
		})
	}
}
