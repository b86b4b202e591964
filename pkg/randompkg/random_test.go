package randompkg

import (
	"regexp"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestIBANFormat(t *testing.T) {
	format := regexp.MustCompile(`^NL\d{2}BANK\d{10}$`)

	for i := 0; i < 100; i++ {
		iban := IBAN()
		require.Regexp(t, format, iban)
	}
}

func TestString(t *testing.T) {
	s := String(10)
	require.Len(t, s, 10)
}

func TestMoneyAmountBetween(t *testing.T) {
	for i := 0; i < 100; i++ {
		amount := MoneyAmountBetween(100, 1_000)
		require.True(t, amount.GreaterThanOrEqual(decimal.NewFromInt(100)))
		require.True(t, amount.LessThanOrEqual(decimal.NewFromInt(1_000)))
	}
}
