package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidAmount indicates an amount that is not a positive number.
	ErrInvalidAmount = errors.New("amount must be a positive number")
	// ErrTransactionNotFound indicates that the transaction is not found.
	ErrTransactionNotFound = errors.New("transaction not found")
)

// TransactionType classifies a fund movement.
type TransactionType string

// Supported transaction types.
const (
	TransactionDeposit          TransactionType = "DEPOSIT"
	TransactionWithdrawal       TransactionType = "WITHDRAWAL"
	TransactionTransfer         TransactionType = "TRANSFER"
	TransactionInternalTransfer TransactionType = "INTERNAL_TRANSFER"
	TransactionATMDeposit       TransactionType = "ATM_DEPOSIT"
	TransactionATMWithdrawal    TransactionType = "ATM_WITHDRAWAL"
)

// Transaction is an immutable record of a single fund movement.
// FromIBAN is empty for deposits, ToIBAN is empty for withdrawals.
type Transaction struct {
	ID          int64           `json:"id"`
	FromIBAN    string          `json:"from_iban,omitempty"`
	ToIBAN      string          `json:"to_iban,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	Type        TransactionType `json:"type"`
	InitiatedBy string          `json:"initiated_by"`
	CreatedAt   time.Time       `json:"created_at"`
}

// CreateTransactionParams is the input data to append a transaction record.
type CreateTransactionParams struct {
	FromIBAN    string          `json:"from_iban,omitempty"`
	ToIBAN      string          `json:"to_iban,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	Type        TransactionType `json:"type"`
	InitiatedBy string          `json:"initiated_by"`
}

// ListTransactionsParams is the input data to page through an account's history.
type ListTransactionsParams struct {
	IBAN   string `json:"iban"`
	Limit  int32  `json:"limit"`
	Offset int32  `json:"offset"`
}

// DepositParams is the input data for the deposit transaction.
type DepositParams struct {
	IBAN   string          `json:"iban"`
	Amount decimal.Decimal `json:"amount"`
	Type   TransactionType `json:"type"`
	Actor  Actor           `json:"actor"`
	Date   string          `json:"date"`
}

// DepositResult is the result of the deposit transaction.
type DepositResult struct {
	Account     Account     `json:"account"`
	Transaction Transaction `json:"transaction"`
}

// WithdrawParams is the input data for the withdrawal transaction.
type WithdrawParams struct {
	IBAN   string          `json:"iban"`
	Amount decimal.Decimal `json:"amount"`
	Type   TransactionType `json:"type"`
	Actor  Actor           `json:"actor"`
	Date   string          `json:"date"`
}

// WithdrawResult is the result of the withdrawal transaction.
type WithdrawResult struct {
	Account             Account         `json:"account"`
	Transaction         Transaction     `json:"transaction"`
	RemainingDailyLimit decimal.Decimal `json:"remaining_daily_limit"`
}

// TransferParams is the input data for the transfer transaction.
type TransferParams struct {
	FromIBAN string          `json:"from_iban"`
	ToIBAN   string          `json:"to_iban"`
	Amount   decimal.Decimal `json:"amount"`
	Actor    Actor           `json:"actor"`
	Date     string          `json:"date"`
}

// TransferResult is the result of the transfer transaction.
type TransferResult struct {
	Transaction         Transaction     `json:"transaction"`
	FromAccount         Account         `json:"from_account"`
	ToAccount           Account         `json:"to_account"`
	RemainingDailyLimit decimal.Decimal `json:"remaining_daily_limit"`
}

// UpdateLimitsParams is the input data to change an account's limit configuration.
type UpdateLimitsParams struct {
	IBAN          string          `json:"iban"`
	AbsoluteLimit decimal.Decimal `json:"absolute_limit"`
	DailyLimit    decimal.Decimal `json:"daily_limit"`
	Actor         Actor           `json:"actor"`
}
