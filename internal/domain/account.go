// Package domain provides definitions of all entities.
package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// ErrAccountNotFound indicates that the account is not found.
	ErrAccountNotFound = errors.New("account not found")
	// ErrAccountInactive indicates that the account is closed.
	ErrAccountInactive = errors.New("account is not active")
	// ErrAccountOwnerMismatch indicates that the account does not belong to the acting user.
	ErrAccountOwnerMismatch = errors.New("account does not belong to the user")
	// ErrOwnerNotFound indicates that the owner for the account is not found.
	ErrOwnerNotFound = errors.New("owner not found")
	// ErrIBANAlreadyExists indicates an IBAN collision on account creation.
	ErrIBANAlreadyExists = errors.New("account IBAN already exists")
	// ErrSameAccountTransfer indicates that source and destination accounts are the same.
	ErrSameAccountTransfer = errors.New("cannot transfer to the same account")
	// ErrAccountTypeViolation indicates a transfer from a non-checking account.
	ErrAccountTypeViolation = errors.New("transfers must originate from a checking account")
	// ErrDifferentOwners indicates an internal transfer between accounts of different users.
	ErrDifferentOwners = errors.New("internal transfer accounts must share the owner")
	// ErrInsufficientBalance indicates that the account balance is below the requested amount.
	ErrInsufficientBalance = errors.New("insufficient balance")
	// ErrAbsoluteLimitExceeded indicates a debit that would push the balance below the absolute limit.
	ErrAbsoluteLimitExceeded = errors.New("balance may not go below the absolute limit")
	// ErrDailyLimitExceeded indicates a debit that would push today's outflow over the daily limit.
	ErrDailyLimitExceeded = errors.New("daily transfer limit exceeded")
	// ErrBalanceNotZero indicates an attempt to close an account that still holds funds.
	ErrBalanceNotZero = errors.New("account balance must be zero to close")
	// ErrNegativeAbsoluteLimit indicates an absolute limit below zero.
	ErrNegativeAbsoluteLimit = errors.New("absolute limit must not be negative")
	// ErrNonPositiveDailyLimit indicates a daily limit of zero or less.
	ErrNonPositiveDailyLimit = errors.New("daily limit must be positive")
	// ErrAbsoluteLimitAboveBalance indicates an absolute limit above the current balance.
	ErrAbsoluteLimitAboveBalance = errors.New("absolute limit must not exceed the current balance")
)

// AccountType distinguishes checking from savings accounts.
type AccountType string

// Supported account types.
const (
	Checking AccountType = "CHECKING"
	Savings  AccountType = "SAVINGS"
)

// IsValidAccountType returns true for a supported account type.
func IsValidAccountType(t string) bool {
	return AccountType(t) == Checking || AccountType(t) == Savings
}

// Account holds balance and limit configuration for a single IBAN.
type Account struct {
	ID            int64           `json:"id"`
	IBAN          string          `json:"iban"`
	Owner         string          `json:"owner"`
	Type          AccountType     `json:"type"`
	Balance       decimal.Decimal `json:"balance"`
	AbsoluteLimit decimal.Decimal `json:"absolute_limit"`
	DailyLimit    decimal.Decimal `json:"daily_limit"`
	Active        bool            `json:"active"`
	CreatedAt     time.Time       `json:"created_at"`
}

// AvailableBalance returns how much can be debited before hitting the absolute limit,
// never negative.
func (a Account) AvailableBalance() decimal.Decimal {
	available := a.Balance.Sub(a.AbsoluteLimit)
	if available.IsNegative() {
		return decimal.Zero
	}

	return available
}

// CreateAccountParams is the input data to create an account.
type CreateAccountParams struct {
	IBAN          string          `json:"iban"`
	Owner         string          `json:"owner"`
	Type          AccountType     `json:"type"`
	Balance       decimal.Decimal `json:"balance"`
	AbsoluteLimit decimal.Decimal `json:"absolute_limit"`
	DailyLimit    decimal.Decimal `json:"daily_limit"`
}

// AccountSummary is the read-only view of an account's balance and limit state.
type AccountSummary struct {
	IBAN                string          `json:"iban"`
	Type                AccountType     `json:"type"`
	Balance             decimal.Decimal `json:"balance"`
	AvailableBalance    decimal.Decimal `json:"available_balance"`
	DailyLimit          decimal.Decimal `json:"daily_limit"`
	RemainingDailyLimit decimal.Decimal `json:"remaining_daily_limit"`
}
