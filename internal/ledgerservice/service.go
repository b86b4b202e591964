// Package ledgerservice manages business logic layer of ledger operations.
package ledgerservice

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/naseer6/bankapp/internal/domain"
)

// Repo provides the atomic ledger operations needed by the service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package ledgerservice
type Repo interface {
	DepositTx(ctx context.Context, arg domain.DepositParams) (domain.DepositResult, error)
	WithdrawTx(ctx context.Context, arg domain.WithdrawParams) (domain.WithdrawResult, error)
	TransferTx(ctx context.Context, arg domain.TransferParams) (domain.TransferResult, error)
	InternalTransferTx(ctx context.Context, arg domain.TransferParams) (domain.TransferResult, error)
	UpdateLimitsTx(ctx context.Context, arg domain.UpdateLimitsParams) (domain.Account, error)
}

// Service facilitates ledger service layer logic. It parses and screens the
// request data; the invariant checks run inside the repository's transaction
// scope where the account rows are locked.
type Service struct {
	repo Repo
}

// New returns ledger service struct to manage ledger business logic.
func New(lr Repo) *Service {
	return &Service{repo: lr}
}

// Deposit credits the account. The asOf time is supplied by the caller so the
// core never reads the wall clock itself.
func (s *Service) Deposit(ctx context.Context, iban, amount string, actor domain.Actor, asOf time.Time, atm bool) (domain.DepositResult, error) {
	amountDec, err := parseAmount(ctx, amount)
	if err != nil {
		return domain.DepositResult{}, err
	}

	kind := domain.TransactionDeposit
	if atm {
		kind = domain.TransactionATMDeposit
	}

	return s.repo.DepositTx(ctx, domain.DepositParams{
		IBAN:   iban,
		Amount: amountDec,
		Type:   kind,
		Actor:  actor,
		Date:   domain.Date(asOf),
	})
}

// Withdraw debits the account, counting the amount against the daily limit.
func (s *Service) Withdraw(ctx context.Context, iban, amount string, actor domain.Actor, asOf time.Time, atm bool) (domain.WithdrawResult, error) {
	amountDec, err := parseAmount(ctx, amount)
	if err != nil {
		return domain.WithdrawResult{}, err
	}

	kind := domain.TransactionWithdrawal
	if atm {
		kind = domain.TransactionATMWithdrawal
	}

	return s.repo.WithdrawTx(ctx, domain.WithdrawParams{
		IBAN:   iban,
		Amount: amountDec,
		Type:   kind,
		Actor:  actor,
		Date:   domain.Date(asOf),
	})
}

// Transfer moves funds between two accounts, counting the amount against the
// source account's daily limit.
func (s *Service) Transfer(ctx context.Context, fromIBAN, toIBAN, amount string, actor domain.Actor, asOf time.Time) (domain.TransferResult, error) {
	amountDec, err := parseAmount(ctx, amount)
	if err != nil {
		return domain.TransferResult{}, err
	}

	return s.repo.TransferTx(ctx, domain.TransferParams{
		FromIBAN: fromIBAN,
		ToIBAN:   toIBAN,
		Amount:   amountDec,
		Actor:    actor,
		Date:     domain.Date(asOf),
	})
}

// InternalTransfer moves funds between two accounts of the same owner. The
// amount does not count against the daily limit.
func (s *Service) InternalTransfer(ctx context.Context, fromIBAN, toIBAN, amount string, actor domain.Actor, asOf time.Time) (domain.TransferResult, error) {
	amountDec, err := parseAmount(ctx, amount)
	if err != nil {
		return domain.TransferResult{}, err
	}

	return s.repo.InternalTransferTx(ctx, domain.TransferParams{
		FromIBAN: fromIBAN,
		ToIBAN:   toIBAN,
		Amount:   amountDec,
		Actor:    actor,
		Date:     domain.Date(asOf),
	})
}

// UpdateLimits changes an account's limit configuration. Administrator only.
func (s *Service) UpdateLimits(ctx context.Context, iban, absoluteLimit, dailyLimit string, actor domain.Actor) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	absoluteDec, err := decimal.NewFromString(absoluteLimit)
	if err != nil {
		l.Info().Err(err).Send()
		return domain.Account{}, domain.ErrNegativeAbsoluteLimit
	}

	dailyDec, err := decimal.NewFromString(dailyLimit)
	if err != nil {
		l.Info().Err(err).Send()
		return domain.Account{}, domain.ErrNonPositiveDailyLimit
	}

	return s.repo.UpdateLimitsTx(ctx, domain.UpdateLimitsParams{
		IBAN:          iban,
		AbsoluteLimit: absoluteDec,
		DailyLimit:    dailyDec,
		Actor:         actor,
	})
}

func parseAmount(ctx context.Context, amount string) (decimal.Decimal, error) {
	l := zerolog.Ctx(ctx)

	amountDec, err := decimal.NewFromString(amount)
	if err != nil {
		l.Info().Err(err).Send()
		return decimal.Decimal{}, domain.ErrInvalidAmount
	}

	if amountDec.LessThanOrEqual(decimal.Zero) {
		return decimal.Decimal{}, domain.ErrInvalidAmount
	}

	return amountDec, nil
}
