package domain

import "github.com/shopspring/decimal"

// The validators below hold every precondition of the ledger operations.
// They are pure so the ledger repository can run them after locking the rows
// they were computed from, keeping check and mutation in one atomic unit.

// ValidateDeposit checks the preconditions of crediting an account.
func ValidateDeposit(account Account, amount decimal.Decimal, actor Actor) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	if !account.Active {
		return ErrAccountInactive
	}

	if !actor.CanAccess(account.Owner) {
		return ErrAccountOwnerMismatch
	}

	return nil
}

// ValidateWithdrawal checks the preconditions of debiting an account, including
// the absolute-limit floor and the daily cap accumulated in today's total.
func ValidateWithdrawal(account Account, today DailyTotal, amount decimal.Decimal, actor Actor) error {
	if err := ValidateDeposit(account, amount, actor); err != nil {
		return err
	}

	return validateDebit(account, today, amount, actor)
}

// ValidateTransfer checks the preconditions of moving funds between two accounts.
// Transfers originate only from checking accounts.
func ValidateTransfer(from, to Account, today DailyTotal, amount decimal.Decimal, actor Actor) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	if from.IBAN == to.IBAN {
		return ErrSameAccountTransfer
	}

	if !from.Active || !to.Active {
		return ErrAccountInactive
	}

	if from.Type != Checking {
		return ErrAccountTypeViolation
	}

	if !actor.CanAccess(from.Owner) {
		return ErrAccountOwnerMismatch
	}

	return validateDebit(from, today, amount, actor)
}

// ValidateInternalTransfer checks the preconditions of moving funds between two
// accounts of the same owner. The checking-only restriction does not apply and the
// amount is exempt from daily tracking; the absolute-limit floor still holds.
func ValidateInternalTransfer(from, to Account, amount decimal.Decimal, actor Actor) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	if from.IBAN == to.IBAN {
		return ErrSameAccountTransfer
	}

	if !from.Active || !to.Active {
		return ErrAccountInactive
	}

	if from.Owner != to.Owner {
		return ErrDifferentOwners
	}

	if !actor.CanAccess(from.Owner) {
		return ErrAccountOwnerMismatch
	}

	if from.Balance.LessThan(amount) {
		return ErrInsufficientBalance
	}

	if from.Balance.Sub(amount).LessThan(from.AbsoluteLimit) {
		return ErrAbsoluteLimitExceeded
	}

	return nil
}

// ValidateLimitUpdate checks the new limit configuration for an account.
// Only administrators may change limits; a tightened absolute limit must not
// exceed the current balance.
func ValidateLimitUpdate(account Account, absoluteLimit, dailyLimit decimal.Decimal, actor Actor) error {
	if actor.Role != RoleAdmin {
		return ErrPermissionDenied
	}

	if absoluteLimit.IsNegative() {
		return ErrNegativeAbsoluteLimit
	}

	if dailyLimit.LessThanOrEqual(decimal.Zero) {
		return ErrNonPositiveDailyLimit
	}

	if absoluteLimit.GreaterThan(account.Balance) {
		return ErrAbsoluteLimitAboveBalance
	}

	return nil
}

func validateDebit(account Account, today DailyTotal, amount decimal.Decimal, actor Actor) error {
	if account.Balance.LessThan(amount) {
		return ErrInsufficientBalance
	}

	if account.Balance.Sub(amount).LessThan(account.AbsoluteLimit) {
		return ErrAbsoluteLimitExceeded
	}

	if !actor.BypassesDailyLimit() && today.WouldExceed(account.DailyLimit, amount) {
		return ErrDailyLimitExceeded
	}

	return nil
}
